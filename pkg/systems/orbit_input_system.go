package systems

import (
	"log"
	"math"

	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/event"
	"github.com/gonewx/portfolio/pkg/utils"
)

// PointerSource 指针拖拽状态来源（utils.DragManager 实现该接口）
type PointerSource interface {
	Update()
	GetInfo() utils.DragInfo
}

// OrbitInputSystem 将指针输入转换为相机拖拽和卡片点击
//
// 按下后移动距离小于 DragDeadZone 再抬起视为点击，点击命中的卡片
// 通过事件桥发布；超过阈值则按水平位移旋转相机。
// blocked 返回 true 时（例如面板打开）不处理新的按下。
type OrbitInputSystem struct {
	orbit   *OrbitSystem
	camera  *CameraSystem
	router  *event.Router
	pointer PointerSource
	blocked func() bool

	active bool
	moved  bool
	lastX  int
	ratio  float64 // 渲染倍率，指针坐标除以它得到逻辑坐标
}

// NewOrbitInputSystem 创建轨道输入系统
func NewOrbitInputSystem(orbit *OrbitSystem, camera *CameraSystem, router *event.Router, pointer PointerSource, blocked func() bool) *OrbitInputSystem {
	return &OrbitInputSystem{
		orbit:   orbit,
		camera:  camera,
		router:  router,
		pointer: pointer,
		blocked: blocked,
		ratio:   1,
	}
}

// SetPixelRatio 设置渲染倍率
func (s *OrbitInputSystem) SetPixelRatio(ratio float64) {
	if !(ratio > 0) {
		ratio = 1
	}
	s.ratio = ratio
}

// Update 读取指针状态并处理
func (s *OrbitInputSystem) Update() {
	if s.pointer == nil {
		return
	}
	s.pointer.Update()
	s.Handle(s.pointer.GetInfo().Scaled(s.ratio))
}

// Handle 处理一帧的拖拽状态，返回本帧是否触发了卡片点击
func (s *OrbitInputSystem) Handle(info utils.DragInfo) bool {
	switch info.State {
	case utils.DragStateStarted:
		s.active = s.blocked == nil || !s.blocked()
		s.moved = false
		s.lastX = info.CurrentX

	case utils.DragStateDragging:
		if !s.active {
			return false
		}
		if !s.moved {
			dx, dy := info.DragDistance()
			dist := math.Hypot(float64(dx), float64(dy))
			s.moved = dist > config.DragDeadZone
		}
		if s.moved {
			s.camera.Drag(float64(info.CurrentX - s.lastX))
		}
		s.lastX = info.CurrentX

	case utils.DragStateEnded:
		if !s.active {
			return false
		}
		s.active = false
		s.camera.EndDrag()
		if s.moved {
			return false
		}
		return s.click(float64(info.CurrentX), float64(info.CurrentY))
	}
	return false
}

func (s *OrbitInputSystem) click(x, y float64) bool {
	id, ok := s.orbit.HitTest(x, y)
	if !ok {
		return false
	}
	card, ok := s.orbit.CardAt(id)
	if !ok {
		return false
	}
	log.Printf("[OrbitInputSystem] 点击卡片 %s", card.ID)
	return s.router.Select(event.SourceOrbitCard, card.ID)
}

// Cancel 放弃当前手势（场景切换或面板打开时调用）
func (s *OrbitInputSystem) Cancel() {
	if s.active {
		s.camera.EndDrag()
	}
	s.active = false
	s.moved = false
}

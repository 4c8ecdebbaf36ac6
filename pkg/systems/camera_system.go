package systems

import (
	"log"
	"math"
	"time"

	"github.com/gonewx/portfolio/pkg/components"
	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/ecs"
	"github.com/gonewx/portfolio/pkg/game"
	"github.com/gonewx/portfolio/pkg/orbit"
	"github.com/gonewx/portfolio/pkg/utils"
)

// snapEpsilon 旋转量小于该值（度）时直接吸附，不启动动画
const snapEpsilon = 1e-9

// CameraSystem 管理相机方位角
//
// 两种状态：
//   - 空闲：拖拽直接修改方位角，松手后按阻尼做惯性旋转
//   - 动画：RotateTo 触发，沿最短路径缓入缓出转到目标卡片，期间忽略拖拽
//
// 动画进度按时钟计算 (now - start) / duration，与帧率无关。
// 新的 RotateTo 会从当前方位角重新开始，旧动画不再写入方位角。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	registry      *config.CardRegistry
	clock         game.Clock
	profile       config.QualityProfile
	cameraEntity  ecs.EntityID
}

// NewCameraSystem 创建相机系统，初始朝向第 0 张卡片
func NewCameraSystem(em *ecs.EntityManager, registry *config.CardRegistry, clock game.Clock, profile config.QualityProfile) *CameraSystem {
	if clock == nil {
		clock = game.SystemClock{}
	}
	cs := &CameraSystem{
		entityManager: em,
		registry:      registry,
		clock:         clock,
		profile:       profile,
	}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		Azimuth: cs.homeAzimuth(),
	})

	return cs
}

// homeAzimuth 第 0 张卡片的角度
func (cs *CameraSystem) homeAzimuth() float64 {
	if card, ok := cs.registry.At(0); ok {
		return orbit.NormalizeDegrees(card.Angle)
	}
	return 0
}

func (cs *CameraSystem) camera() *components.CameraComponent {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return nil
	}
	return cam
}

// Entity 返回相机实体 ID
func (cs *CameraSystem) Entity() ecs.EntityID {
	return cs.cameraEntity
}

// RotateTo 旋转到指定索引的卡片
//
// 越界索引记录日志后忽略。动画进行中调用会取代当前动画，
// 从当前方位角出发重新计算最短路径。返回是否接受了请求。
func (cs *CameraSystem) RotateTo(index int) bool {
	card, ok := cs.registry.At(index)
	if !ok {
		log.Printf("[CameraSystem] 忽略越界卡片索引: %d", index)
		return false
	}
	cam := cs.camera()
	if cam == nil {
		return false
	}

	target := orbit.NormalizeDegrees(card.Angle)
	start := cam.Azimuth
	delta := orbit.ShortestDelta(start, target)

	if cam.IsAnimating {
		log.Printf("[CameraSystem] rotateTo %s 取代进行中的动画 (目标 %.1f°)", card.ID, cam.TargetAzimuth)
	}

	cam.Velocity = 0
	cam.DragAccum = 0
	cam.Dragging = false

	// 起点与目标重合或时长为 0：直接吸附
	if math.Abs(delta) < snapEpsilon || cs.profile.AnimationDuration <= 0 {
		cam.Azimuth = target
		cam.IsAnimating = false
		cam.TargetIndex = index
		cam.TargetAzimuth = target
		cam.Delta = 0
		log.Printf("[CameraSystem] rotateTo %s 直接吸附到 %.1f°", card.ID, target)
		return true
	}

	cam.IsAnimating = true
	cam.TargetIndex = index
	cam.TargetAzimuth = target
	cam.StartAzimuth = start
	cam.Delta = delta
	cam.StartTime = cs.clock.Now()
	cam.Duration = cs.profile.AnimationDuration

	log.Printf("[CameraSystem] rotateTo %s (%.1f° → %.1f°, %+.1f°, %v)", card.ID, start, target, delta, cam.Duration)
	return true
}

// RotateToID 按卡片 id 旋转，未知 id 记录日志后忽略
func (cs *CameraSystem) RotateToID(id string) bool {
	index, ok := cs.registry.IndexOf(id)
	if !ok {
		log.Printf("[CameraSystem] 忽略未知卡片 id: %q", id)
		return false
	}
	return cs.RotateTo(index)
}

// Drag 处理本帧的水平拖拽位移（像素）
//
// 向右拖拽使方位角减小。动画期间忽略，返回 false。
func (cs *CameraSystem) Drag(dx float64) bool {
	cam := cs.camera()
	if cam == nil || cam.IsAnimating {
		return false
	}
	if math.IsNaN(dx) || math.IsInf(dx, 0) {
		return false
	}

	deg := -dx * cs.profile.RotateSpeed
	cam.Dragging = true
	cam.Velocity = 0
	cam.DragAccum += deg
	cam.Azimuth = orbit.NormalizeDegrees(cam.Azimuth + deg)
	return true
}

// EndDrag 结束拖拽，保留最近一帧的速度用于惯性旋转
func (cs *CameraSystem) EndDrag() {
	cam := cs.camera()
	if cam == nil {
		return
	}
	cam.Dragging = false
	cam.DragAccum = 0
}

// Update 推进动画或惯性旋转
func (cs *CameraSystem) Update(dt float64) {
	cam := cs.camera()
	if cam == nil {
		return
	}

	if cam.IsAnimating {
		cs.updateAnimation(cam)
		return
	}

	if cam.Dragging {
		if dt > 0 {
			cam.Velocity = cam.DragAccum / dt
		}
		cam.DragAccum = 0
		return
	}

	cs.updateInertia(cam, dt)
}

func (cs *CameraSystem) updateAnimation(cam *components.CameraComponent) {
	elapsed := cs.clock.Now().Sub(cam.StartTime)
	progress := 1.0
	if cam.Duration > 0 {
		progress = utils.Clamp01(float64(elapsed) / float64(cam.Duration))
	}

	if progress >= 1 {
		// 精确吸附到目标，消除浮点残差
		cam.Azimuth = cam.TargetAzimuth
		cam.IsAnimating = false
		cam.Delta = 0
		log.Printf("[CameraSystem] rotateTo 完成: %.1f°", cam.Azimuth)
		return
	}

	cam.Azimuth = orbit.NormalizeDegrees(cam.StartAzimuth + cam.Delta*utils.EaseInOutQuad(progress))
}

func (cs *CameraSystem) updateInertia(cam *components.CameraComponent, dt float64) {
	if cam.Velocity == 0 || !(dt > 0) {
		return
	}
	if math.Abs(cam.Velocity) < config.InertiaStopSpeed || math.IsNaN(cam.Velocity) {
		cam.Velocity = 0
		return
	}

	cam.Azimuth = orbit.NormalizeDegrees(cam.Azimuth + cam.Velocity*dt)
	// 阻尼按 60fps 的每帧衰减比例定义，换算到实际 dt
	cam.Velocity *= math.Pow(1-cs.profile.DampingFactor, dt*60)
}

// StopAnimation 立即结束动画并吸附到目标
func (cs *CameraSystem) StopAnimation() {
	cam := cs.camera()
	if cam == nil || !cam.IsAnimating {
		return
	}
	cam.IsAnimating = false
	cam.Azimuth = cam.TargetAzimuth
	cam.Delta = 0
}

// Reset 回到第 0 张卡片，清除动画和惯性（场景挂载时调用）
func (cs *CameraSystem) Reset() {
	cam := cs.camera()
	if cam == nil {
		return
	}
	*cam = components.CameraComponent{Azimuth: cs.homeAzimuth()}
}

// SnapTo 不经动画直接朝向指定卡片（切换引擎时保留焦点卡片）
func (cs *CameraSystem) SnapTo(index int) bool {
	card, ok := cs.registry.At(index)
	if !ok {
		return false
	}
	cam := cs.camera()
	if cam == nil {
		return false
	}
	target := orbit.NormalizeDegrees(card.Angle)
	*cam = components.CameraComponent{Azimuth: target, TargetIndex: index, TargetAzimuth: target}
	return true
}

// SetProfile 更新画质参数
//
// 进行中的动画保留原目标和时长，只有之后的动画与拖拽使用新参数。
func (cs *CameraSystem) SetProfile(p config.QualityProfile) {
	cs.profile = p
}

// Profile 返回当前画质参数
func (cs *CameraSystem) Profile() config.QualityProfile {
	return cs.profile
}

// Azimuth 返回当前方位角（度）
func (cs *CameraSystem) Azimuth() float64 {
	if cam := cs.camera(); cam != nil {
		return cam.Azimuth
	}
	return 0
}

// IsAnimating 返回是否正在执行 rotateTo 动画
func (cs *CameraSystem) IsAnimating() bool {
	cam := cs.camera()
	return cam != nil && cam.IsAnimating
}

// Target 返回动画目标卡片索引，空闲时返回 false
func (cs *CameraSystem) Target() (int, bool) {
	cam := cs.camera()
	if cam == nil || !cam.IsAnimating {
		return 0, false
	}
	return cam.TargetIndex, true
}

// Remaining 返回动画剩余时间
func (cs *CameraSystem) Remaining() time.Duration {
	cam := cs.camera()
	if cam == nil || !cam.IsAnimating {
		return 0
	}
	left := cam.Duration - cs.clock.Now().Sub(cam.StartTime)
	if left < 0 {
		return 0
	}
	return left
}

// FocusedIndex 返回与当前方位角最近的卡片索引
//
// 动画中返回目标卡片。距离相同时取索引较小者。
func (cs *CameraSystem) FocusedIndex() int {
	cam := cs.camera()
	if cam == nil {
		return 0
	}
	if cam.IsAnimating {
		return cam.TargetIndex
	}

	best, bestDist := 0, math.Inf(1)
	for i, a := range cs.registry.Angles() {
		if d := orbit.AngularDistance(a, cam.Azimuth); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

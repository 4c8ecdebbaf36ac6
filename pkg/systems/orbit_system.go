package systems

import (
	"math"
	"sort"

	"github.com/gonewx/portfolio/pkg/components"
	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/ecs"
	"github.com/gonewx/portfolio/pkg/orbit"
)

// minFacing 侧面卡片水平压缩的下限，避免卡片缩成一条线
const minFacing = 0.2

// OrbitSystem 每帧根据相机方位角重算所有卡片的状态和屏幕矩形
//
// 卡片的水平位置固定不变，只有垂直偏移、缩放和透明度随方位角变化。
// 背面区和透明度为 0 的卡片标记为不可见，不参与绘制与点击检测。
type OrbitSystem struct {
	entityManager *ecs.EntityManager
	camera        *CameraSystem
	profile       config.QualityProfile
	params        orbit.Params
	cards         []ecs.EntityID
	angles        []float64
	elapsed       float64
	width         float64
	height        float64
}

// NewOrbitSystem 为注册表中的每张卡片创建实体
func NewOrbitSystem(em *ecs.EntityManager, registry *config.CardRegistry, camera *CameraSystem, profile config.QualityProfile) *OrbitSystem {
	s := &OrbitSystem{
		entityManager: em,
		camera:        camera,
		width:         config.GameWindowWidth,
		height:        config.GameWindowHeight,
	}
	s.SetProfile(profile)

	for _, card := range registry.Cards() {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.CardComponent{
			ID:          card.ID,
			Index:       card.Index,
			Angle:       card.Angle,
			Title:       card.Title,
			Description: card.Description,
			Color:       card.Color,
		})
		ecs.AddComponent(em, id, &components.OrbitStateComponent{})
		ecs.AddComponent(em, id, &components.ScreenRectComponent{})
		s.cards = append(s.cards, id)
		s.angles = append(s.angles, card.Angle)
	}

	return s
}

// SetProfile 更新档位相关的几何常量（半径、卡片尺寸、相机距离）
func (s *OrbitSystem) SetProfile(p config.QualityProfile) {
	s.profile = p
	s.params = orbit.DefaultParams()
	s.params.Radius = p.OrbitRadius
}

// SetViewport 更新逻辑视口尺寸
func (s *OrbitSystem) SetViewport(width, height int) {
	w, h := config.ClampViewport(width, height)
	s.width, s.height = float64(w), float64(h)
}

// Viewport 返回逻辑视口尺寸
func (s *OrbitSystem) Viewport() (float64, float64) {
	return s.width, s.height
}

// Params 返回当前几何参数
func (s *OrbitSystem) Params() orbit.Params {
	return s.params
}

// Elapsed 返回场景经过时间（秒）
func (s *OrbitSystem) Elapsed() float64 {
	return s.elapsed
}

// Cards 返回卡片实体（按注册表顺序）
func (s *OrbitSystem) Cards() []ecs.EntityID {
	return s.cards
}

// ViewCamera 返回用于投影的相机
func (s *OrbitSystem) ViewCamera() orbit.Camera {
	return orbit.Camera{
		Azimuth:  s.camera.Azimuth(),
		Distance: s.profile.CameraDistance,
		TargetY:  orbit.DefaultTargetY,
		FOV:      s.profile.FOV,
	}
}

// Update 重算所有卡片
func (s *OrbitSystem) Update(dt float64) {
	if dt > 0 {
		s.elapsed += dt
	}

	view := s.ViewCamera()
	azimuth := view.Azimuth

	// 正对相机的卡片在屏幕上恰好为配置的像素尺寸
	pos := view.Position()
	refDepth := math.Hypot(pos[0], pos[2]) - s.params.Radius
	if refDepth < orbit.NearPlane {
		refDepth = orbit.NearPlane
	}

	for i, id := range s.cards {
		state := orbit.Evaluate(s.angles[i], azimuth, s.elapsed, s.params)

		if st, ok := ecs.GetComponent[*components.OrbitStateComponent](s.entityManager, id); ok {
			st.State = state
		}
		rect, ok := ecs.GetComponent[*components.ScreenRectComponent](s.entityManager, id)
		if !ok {
			continue
		}

		*rect = components.ScreenRectComponent{}
		if state.Occluded || state.Opacity <= 0 {
			continue
		}
		proj, visible := view.Project(state.Position, s.width, s.height)
		if !visible {
			continue
		}

		facing := math.Abs(view.FacingFactor(state.Yaw))
		if facing < minFacing {
			facing = minFacing
		}
		perspective := refDepth / proj.Depth
		w := float64(s.profile.CardWidth) * state.Scale * perspective * facing
		h := float64(s.profile.CardHeight) * state.Scale * perspective

		rect.X = proj.X - w/2
		rect.Y = proj.Y - h/2
		rect.Width = w
		rect.Height = h
		rect.Depth = proj.Depth
		rect.Facing = facing
		rect.Opacity = state.Opacity
		rect.Visible = true
	}
}

// VisibleCards 返回可见卡片，按深度从远到近排序（绘制顺序）
func (s *OrbitSystem) VisibleCards() []ecs.EntityID {
	out := make([]ecs.EntityID, 0, len(s.cards))
	for _, id := range s.cards {
		if rect, ok := ecs.GetComponent[*components.ScreenRectComponent](s.entityManager, id); ok && rect.Visible {
			out = append(out, id)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, _ := ecs.GetComponent[*components.ScreenRectComponent](s.entityManager, out[i])
		rj, _ := ecs.GetComponent[*components.ScreenRectComponent](s.entityManager, out[j])
		return ri.Depth > rj.Depth
	})
	return out
}

// HitTest 返回屏幕坐标处最靠前的可见卡片
func (s *OrbitSystem) HitTest(x, y float64) (ecs.EntityID, bool) {
	var (
		hit       ecs.EntityID
		found     bool
		bestDepth = math.Inf(1)
	)
	for _, id := range s.cards {
		rect, ok := ecs.GetComponent[*components.ScreenRectComponent](s.entityManager, id)
		if !ok || !rect.Contains(x, y) {
			continue
		}
		if rect.Depth < bestDepth {
			hit, found, bestDepth = id, true, rect.Depth
		}
	}
	return hit, found
}

// CardAt 返回实体对应的卡片组件
func (s *OrbitSystem) CardAt(id ecs.EntityID) (*components.CardComponent, bool) {
	return ecs.GetComponent[*components.CardComponent](s.entityManager, id)
}

// Dispose 销毁卡片实体
func (s *OrbitSystem) Dispose() {
	for _, id := range s.cards {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
	s.cards = nil
	s.angles = nil
}

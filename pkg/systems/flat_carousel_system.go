package systems

import (
	"log"

	"github.com/gonewx/portfolio/pkg/components"
	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/ecs"
	"github.com/gonewx/portfolio/pkg/event"
	"github.com/gonewx/portfolio/pkg/utils"
)

// Rect 屏幕矩形
type Rect struct {
	X, Y, W, H float64
}

// Contains 检查点是否在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// FlatCarouselLayout 平面轮播的布局
type FlatCarouselLayout struct {
	Card Rect   // 当前卡片
	Prev Rect   // 上一张按钮
	Next Rect   // 下一张按钮
	Dots []Rect // 指示点（点击区域）
}

// flat carousel 布局参数
const (
	flatButtonSize = 40.0
	flatDotsMargin = 28.0
)

// FlatCarouselSystem 低端设备使用的线性轮播
//
// 每 4 秒自动前进一张；手动切换（按钮、指示点、Focus 事件）后
// 暂停自动前进 10 秒。点击当前卡片通过事件桥发布 SourceFlatCard。
type FlatCarouselSystem struct {
	entityManager *ecs.EntityManager
	registry      *config.CardRegistry
	router        *event.Router
	profile       config.QualityProfile
	entity        ecs.EntityID
	width         float64
	height        float64
}

// NewFlatCarouselSystem 创建平面轮播，从 start 索引开始显示
func NewFlatCarouselSystem(em *ecs.EntityManager, registry *config.CardRegistry, router *event.Router, profile config.QualityProfile, start int) *FlatCarouselSystem {
	if _, ok := registry.At(start); !ok {
		start = 0
	}
	s := &FlatCarouselSystem{
		entityManager: em,
		registry:      registry,
		router:        router,
		profile:       profile,
		width:         config.GameWindowWidth,
		height:        config.GameWindowHeight,
	}
	s.entity = em.CreateEntity()
	ecs.AddComponent(em, s.entity, &components.FlatCarouselComponent{
		Current:  start,
		Previous: start,
	})
	return s
}

func (s *FlatCarouselSystem) state() *components.FlatCarouselComponent {
	c, ok := ecs.GetComponent[*components.FlatCarouselComponent](s.entityManager, s.entity)
	if !ok {
		return nil
	}
	return c
}

// SetProfile 更新画质参数
func (s *FlatCarouselSystem) SetProfile(p config.QualityProfile) {
	s.profile = p
}

// SetViewport 更新逻辑视口尺寸
func (s *FlatCarouselSystem) SetViewport(width, height int) {
	w, h := config.ClampViewport(width, height)
	s.width, s.height = float64(w), float64(h)
}

// Current 返回当前卡片索引
func (s *FlatCarouselSystem) Current() int {
	if st := s.state(); st != nil {
		return st.Current
	}
	return 0
}

// Paused 返回自动前进是否处于暂停状态
func (s *FlatCarouselSystem) Paused() bool {
	st := s.state()
	return st != nil && st.PauseRemaining > 0
}

// Update 推进滑动动画和自动前进计时
func (s *FlatCarouselSystem) Update(dt float64) {
	st := s.state()
	if st == nil || !(dt > 0) {
		return
	}

	if st.Sliding {
		st.SlideElapsed += dt
		if st.SlideElapsed >= config.FlatCarouselSlideDuration {
			st.Sliding = false
			st.SlideElapsed = 0
		}
	}

	if st.PauseRemaining > 0 {
		st.PauseRemaining -= dt
		if st.PauseRemaining <= 0 {
			st.PauseRemaining = 0
			log.Printf("[FlatCarousel] 恢复自动播放")
		}
		return
	}

	st.AutoTimer += dt
	if st.AutoTimer >= config.FlatCarouselAutoAdvance {
		s.jump((st.Current+1)%s.registry.Len(), false)
	}
}

// JumpTo 跳转到指定卡片（手动操作，暂停自动前进）
//
// 越界索引记录日志后忽略。
func (s *FlatCarouselSystem) JumpTo(index int) bool {
	if _, ok := s.registry.At(index); !ok {
		log.Printf("[FlatCarousel] 忽略越界卡片索引: %d", index)
		return false
	}
	s.jump(index, true)
	return true
}

// Next 手动前进一张
func (s *FlatCarouselSystem) Next() {
	n := s.registry.Len()
	s.jump((s.Current()+1)%n, true)
}

// Prev 手动后退一张
func (s *FlatCarouselSystem) Prev() {
	n := s.registry.Len()
	s.jump((s.Current()-1+n)%n, true)
}

func (s *FlatCarouselSystem) jump(index int, manual bool) {
	st := s.state()
	if st == nil {
		return
	}
	st.AutoTimer = 0
	if manual {
		st.PauseRemaining = config.FlatCarouselResumeDelay
	}
	if index == st.Current {
		return
	}
	st.Previous = st.Current
	st.Current = index
	st.Sliding = true
	st.SlideElapsed = 0
}

// Position 返回当前显示位置（卡片索引的连续值，滑动中介于两张卡片之间）
//
// 环绕切换（最后一张到第一张）沿最短方向滑动，返回值可能超出 [0, N)。
func (s *FlatCarouselSystem) Position() float64 {
	st := s.state()
	if st == nil {
		return 0
	}
	if !st.Sliding {
		return float64(st.Current)
	}
	n := s.registry.Len()
	delta := st.Current - st.Previous
	if delta > n/2 {
		delta -= n
	} else if delta < -n/2 {
		delta += n
	}
	progress := utils.EaseOutCubic(utils.Clamp01(st.SlideElapsed / config.FlatCarouselSlideDuration))
	return utils.Lerp(float64(st.Previous), float64(st.Previous+delta), progress)
}

// Layout 计算当前视口下的布局
func (s *FlatCarouselSystem) Layout() FlatCarouselLayout {
	cw := float64(s.profile.CardWidth)
	ch := float64(s.profile.CardHeight)
	if cw > s.width-2*flatButtonSize-40 {
		cw = s.width - 2*flatButtonSize - 40
	}
	cx, cy := s.width/2, s.height/2

	l := FlatCarouselLayout{
		Card: Rect{X: cx - cw/2, Y: cy - ch/2, W: cw, H: ch},
		Prev: Rect{X: cx - cw/2 - flatButtonSize - 12, Y: cy - flatButtonSize/2, W: flatButtonSize, H: flatButtonSize},
		Next: Rect{X: cx + cw/2 + 12, Y: cy - flatButtonSize/2, W: flatButtonSize, H: flatButtonSize},
	}

	n := s.registry.Len()
	spacing := config.FlatCarouselDotSpacing
	startX := cx - spacing*float64(n-1)/2
	dotY := cy + ch/2 + flatDotsMargin
	for i := 0; i < n; i++ {
		dx := startX + spacing*float64(i)
		l.Dots = append(l.Dots, Rect{X: dx - spacing/2, Y: dotY - spacing/2, W: spacing, H: spacing})
	}
	return l
}

// HandleClick 处理点击：按钮和指示点切换卡片，点击当前卡片发布选择事件
//
// 返回点击是否命中了轮播的任何控件。
func (s *FlatCarouselSystem) HandleClick(x, y float64) bool {
	l := s.Layout()
	switch {
	case l.Prev.Contains(x, y):
		s.Prev()
		return true
	case l.Next.Contains(x, y):
		s.Next()
		return true
	case l.Card.Contains(x, y):
		card, ok := s.registry.At(s.Current())
		if !ok {
			return false
		}
		log.Printf("[FlatCarousel] 点击卡片 %s", card.ID)
		return s.router.Select(event.SourceFlatCard, card.ID)
	}
	for i, dot := range l.Dots {
		if dot.Contains(x, y) {
			s.JumpTo(i)
			return true
		}
	}
	return false
}

// Dispose 销毁轮播实体
func (s *FlatCarouselSystem) Dispose() {
	s.entityManager.DestroyEntity(s.entity)
	s.entityManager.RemoveMarkedEntities()
}

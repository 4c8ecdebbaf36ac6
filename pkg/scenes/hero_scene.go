package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/device"
	"github.com/gonewx/portfolio/pkg/ecs"
	"github.com/gonewx/portfolio/pkg/event"
	"github.com/gonewx/portfolio/pkg/game"
	"github.com/gonewx/portfolio/pkg/modules"
	"github.com/gonewx/portfolio/pkg/systems"
	"github.com/gonewx/portfolio/pkg/utils"
)

var heroBackground = color.RGBA{R: 0x0b, G: 0x0d, B: 0x12, A: 0xff}

// HeroSceneOptions HeroScene 的依赖
type HeroSceneOptions struct {
	Registry *config.CardRegistry
	Quality  *config.QualityTable  // nil 时使用默认画质表
	Provider device.Provider       // 档位提供者，nil 时按 low 处理
	Clock    game.Clock            // nil 时使用系统时钟
	Pointer  systems.PointerSource // nil 时不处理拖拽（测试直接调用输入系统）
	Face     text.Face
}

// HeroScene 主场景：3D 轨道卡片、头像、导航栏和详情面板
//
// 两套卡片引擎（3D 轨道和平面轮播）同时存在，按当前档位的
// FallbackToFlatCarousel 只驱动其中一套。窗口尺寸变化时重新检测档位，
// 档位变化后更新所有系统的画质参数，必要时切换引擎并保留焦点卡片。
//
// 相机状态只存在于会话内，每次挂载都从第 0 张卡片开始。
//
// 触发方和消费方都通过本场景创建的事件桥通信：
//   - focus-card → 相机旋转 / 平面轮播跳转
//   - open-panel → 面板打开（由 PanelModule 自行订阅）
type HeroScene struct {
	entityManager *ecs.EntityManager
	bus           *event.Bus
	router        *event.Router
	registry      *config.CardRegistry
	quality       *config.QualityTable
	provider      device.Provider

	tier    config.Tier
	profile config.QualityProfile

	camera       *systems.CameraSystem
	orbit        *systems.OrbitSystem
	orbitInput   *systems.OrbitInputSystem
	cardRender   *systems.CardRenderSystem
	avatarRender *systems.AvatarRenderSystem
	flat         *systems.FlatCarouselSystem
	flatRender   *systems.FlatCarouselRenderSystem

	panel *modules.PanelModule
	nav   *modules.NavigationModule

	subscriptions []*event.Subscription

	// 本帧的按下已被导航栏、面板或平面轮播消费
	pressConsumed bool

	width, height int
	pixelRatio    float64
	disposed      bool
}

// NewHeroScene 创建主场景
func NewHeroScene(opts HeroSceneOptions) *HeroScene {
	quality := opts.Quality
	if quality == nil {
		quality = config.NewQualityTable()
	}

	s := &HeroScene{
		entityManager: ecs.NewEntityManager(),
		bus:           event.NewBus(),
		registry:      opts.Registry,
		quality:       quality,
		provider:      opts.Provider,
		width:         config.GameWindowWidth,
		height:        config.GameWindowHeight,
		pixelRatio:    1,
	}
	s.router = event.NewRouter(s.bus, s.registry)

	s.tier = device.Resolve(s.provider)
	s.profile = quality.Profile(s.tier)
	log.Printf("[HeroScene] 设备档位: %s", s.tier)

	s.camera = systems.NewCameraSystem(s.entityManager, s.registry, opts.Clock, s.profile)
	s.camera.Reset()
	s.orbit = systems.NewOrbitSystem(s.entityManager, s.registry, s.camera, s.profile)
	s.cardRender = systems.NewCardRenderSystem(s.entityManager, s.orbit, s.profile, opts.Face)
	s.avatarRender = systems.NewAvatarRenderSystem(s.orbit, s.profile)

	s.flat = systems.NewFlatCarouselSystem(s.entityManager, s.registry, s.router, s.profile, 0)
	s.flatRender = systems.NewFlatCarouselRenderSystem(s.flat, s.registry, opts.Face)

	s.panel = modules.NewPanelModule(s.entityManager, s.bus, s.registry, opts.Face)
	s.nav = modules.NewNavigationModule(s.registry, s.router, opts.Face)
	s.nav.SetFocused(0)

	s.orbitInput = systems.NewOrbitInputSystem(s.orbit, s.camera, s.router, opts.Pointer, s.orbitBlocked)

	s.subscriptions = append(s.subscriptions, s.bus.Subscribe(event.TopicFocus, s.onFocus))

	log.Printf("[HeroScene] Initialized with %d cards (flat=%v)", s.registry.Len(), s.FlatActive())
	return s
}

// onFocus focus-card 事件：驱动当前引擎转到卡片
func (s *HeroScene) onFocus(sel event.Selection) {
	if s.FlatActive() {
		s.flat.JumpTo(sel.Index)
	} else {
		s.camera.RotateTo(sel.Index)
	}
	s.nav.SetFocused(sel.Index)
}

// orbitBlocked 轨道输入是否被阻塞
func (s *HeroScene) orbitBlocked() bool {
	return s.pressConsumed || s.panel.IsOpen() || s.FlatActive()
}

// FlatActive 当前是否使用平面轮播
func (s *HeroScene) FlatActive() bool {
	return s.profile.FallbackToFlatCarousel
}

// Tier 返回当前设备档位
func (s *HeroScene) Tier() config.Tier {
	return s.tier
}

// PixelRatioCap 返回当前档位的像素比上限
func (s *HeroScene) PixelRatioCap() float64 {
	return s.profile.PixelRatioCap
}

// SetPixelRatio 设置渲染倍率：绘制时放大，指针坐标按倍率换算回逻辑坐标
func (s *HeroScene) SetPixelRatio(ratio float64) {
	if !(ratio > 0) {
		ratio = 1
	}
	if ratio != s.pixelRatio {
		log.Printf("[HeroScene] 渲染倍率: %.2f", ratio)
	}
	s.pixelRatio = ratio
	s.orbitInput.SetPixelRatio(ratio)
}

// PixelRatio 返回当前渲染倍率
func (s *HeroScene) PixelRatio() float64 {
	return s.pixelRatio
}

// Bus 返回场景的事件桥
func (s *HeroScene) Bus() *event.Bus {
	return s.bus
}

// FocusedIndex 返回当前焦点卡片索引
func (s *HeroScene) FocusedIndex() int {
	if s.FlatActive() {
		return s.flat.Current()
	}
	return s.camera.FocusedIndex()
}

// Update 处理输入并推进所有系统
func (s *HeroScene) Update(deltaTime float64) {
	if s.disposed {
		return
	}
	s.pollInput()
	s.advance(deltaTime)
}

// pollInput 读取本帧的 ebiten 输入
func (s *HeroScene) pollInput() {
	s.pressConsumed = false
	if pressed, x, y := utils.IsJustTouchedOrClicked(); pressed {
		s.pressConsumed = s.handlePress(float64(x)/s.pixelRatio, float64(y)/s.pixelRatio)
	}
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		s.handleKey(key)
	}
	s.orbitInput.Update()
}

// handlePress 按优先级分发按下：面板 > 导航栏 > 平面轮播
//
// 返回 true 表示按下已被消费，轨道输入不再处理这次手势。
func (s *HeroScene) handlePress(x, y float64) bool {
	if s.panel.IsOpen() {
		return s.panel.HandleClick(x, y)
	}
	if s.nav.HandleClick(x, y) {
		return true
	}
	if s.FlatActive() {
		s.flat.HandleClick(x, y)
		return true
	}
	return false
}

// handleKey 键盘导航
//
// 数字键 1-9 直接跳到对应卡片，只覆盖前 9 张；超出卡片数量的数字键忽略。
func (s *HeroScene) handleKey(key ebiten.Key) {
	if key == ebiten.KeyEscape {
		s.panel.HandleEscape()
		return
	}
	if s.panel.IsOpen() {
		return
	}

	n := s.registry.Len()
	focused := s.FocusedIndex()
	switch {
	case key == ebiten.KeyArrowLeft:
		s.router.SelectIndex(event.SourceKeyNavigate, (focused-1+n)%n)
	case key == ebiten.KeyArrowRight:
		s.router.SelectIndex(event.SourceKeyNavigate, (focused+1)%n)
	case key == ebiten.KeyEnter || key == ebiten.KeyNumpadEnter:
		s.router.SelectIndex(event.SourceKeyConfirm, focused)
	case key >= ebiten.KeyDigit1 && key <= ebiten.KeyDigit9:
		if i := int(key - ebiten.KeyDigit1); i < n {
			s.router.SelectIndex(event.SourceKeyNavigate, i)
		}
	}
}

// advance 推进当前引擎和面板
func (s *HeroScene) advance(dt float64) {
	if s.FlatActive() {
		s.flat.Update(dt)
	} else {
		s.camera.Update(dt)
		s.orbit.Update(dt)
	}
	s.nav.SetFocused(s.FocusedIndex())
	s.panel.Update(dt)
}

// Resize 视口尺寸变化：更新布局并重新检测档位
func (s *HeroScene) Resize(width, height int) {
	s.width, s.height = config.ClampViewport(width, height)
	s.orbit.SetViewport(s.width, s.height)
	s.flat.SetViewport(s.width, s.height)
	s.panel.SetViewport(s.width, s.height)
	s.nav.SetViewport(s.width, s.height)

	if va, ok := s.provider.(device.ViewportAware); ok {
		va.SetViewport(s.width)
	}
	s.ReevaluateTier()
}

// ReevaluateTier 重新查询设备档位，变化时切换画质参数
func (s *HeroScene) ReevaluateTier() {
	tier := device.Resolve(s.provider)
	if tier == s.tier {
		return
	}
	s.applyTier(tier)
}

// applyTier 切换档位
//
// 进行中的相机动画保留原时长；引擎切换时把焦点卡片带到新引擎。
func (s *HeroScene) applyTier(tier config.Tier) {
	focused := s.FocusedIndex()
	wasFlat := s.FlatActive()

	log.Printf("[HeroScene] 设备档位变化: %s → %s", s.tier, tier)
	s.tier = tier
	s.profile = s.quality.Profile(tier)

	s.camera.SetProfile(s.profile)
	s.orbit.SetProfile(s.profile)
	s.cardRender.SetProfile(s.profile)
	s.avatarRender.SetProfile(s.profile)
	s.flat.SetProfile(s.profile)

	if wasFlat == s.FlatActive() {
		return
	}
	s.orbitInput.Cancel()
	if s.FlatActive() {
		log.Printf("[HeroScene] 切换到平面轮播 (卡片 %d)", focused)
		s.flat.JumpTo(focused)
	} else {
		log.Printf("[HeroScene] 切换到 3D 轨道 (卡片 %d)", focused)
		s.camera.SnapTo(focused)
		s.orbit.Update(0)
	}
}

// Draw 绘制场景
func (s *HeroScene) Draw(screen *ebiten.Image) {
	c := systems.NewCanvas(screen, s.pixelRatio)
	c.Fill(heroBackground)
	if s.FlatActive() {
		s.flatRender.Draw(c)
	} else {
		// 可见卡片总在头像前方
		s.avatarRender.Draw(c)
		s.cardRender.Draw(c)
	}
	s.nav.Draw(c)
	s.panel.Draw(c)
}

// Dispose 取消所有订阅并销毁实体
func (s *HeroScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, sub := range s.subscriptions {
		sub.Unsubscribe()
	}
	s.subscriptions = nil
	s.orbitInput.Cancel()
	s.panel.Dispose()
	s.flat.Dispose()
	s.orbit.Dispose()
	log.Printf("[HeroScene] Disposed")
}

var (
	_ game.Scene           = (*HeroScene)(nil)
	_ game.Disposable      = (*HeroScene)(nil)
	_ game.Resizable       = (*HeroScene)(nil)
	_ game.PixelRatioAware = (*HeroScene)(nil)
)

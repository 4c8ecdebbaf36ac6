package scenes

import (
	"fmt"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/device"
	"github.com/gonewx/portfolio/pkg/event"
	"github.com/gonewx/portfolio/pkg/game"
)

func newTestRegistry(t *testing.T, n int) *config.CardRegistry {
	t.Helper()
	cfgs := make([]config.CardConfig, n)
	for i := range cfgs {
		cfgs[i] = config.CardConfig{
			ID:    fmt.Sprintf("card-%d", i),
			Title: fmt.Sprintf("Card %d", i),
			Color: "#446688",
		}
	}
	r, err := config.NewCardRegistry(cfgs)
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	return r
}

// tierSwitch 可在测试中修改返回值的档位提供者
type tierSwitch struct {
	tier config.Tier
}

func (ts *tierSwitch) Tier() (config.Tier, error) {
	return ts.tier, nil
}

func newTestScene(t *testing.T, provider device.Provider) (*HeroScene, *game.ManualClock) {
	t.Helper()
	clock := game.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewHeroScene(HeroSceneOptions{
		Registry: newTestRegistry(t, 6),
		Provider: provider,
		Clock:    clock,
	})
	return s, clock
}

// TestHeroScene_NavigationRotatesAndOpens 点击导航项：相机旋转并打开面板
func TestHeroScene_NavigationRotatesAndOpens(t *testing.T) {
	s, clock := newTestScene(t, device.StaticProvider{Value: config.TierHigh})
	if s.FlatActive() {
		t.Fatal("high tier should use the orbit engine")
	}

	item := s.nav.Items()[2]
	if !s.handlePress(item.X+item.W/2, item.Y+item.H/2) {
		t.Fatal("expected navigation to consume the press")
	}
	target, ok := s.camera.Target()
	if !ok || target != 2 {
		t.Fatalf("expected camera animating to 2, got %d (animating=%v)", target, ok)
	}
	if !s.panel.IsOpen() || s.panel.CardID() != "card-2" {
		t.Fatalf("expected panel open on card-2, got open=%v id=%q", s.panel.IsOpen(), s.panel.CardID())
	}
	if !s.orbitBlocked() {
		t.Error("orbit input should be blocked while the panel is open")
	}

	clock.Advance(2 * time.Second)
	s.advance(1.0 / 60)
	if s.camera.IsAnimating() {
		t.Error("animation should have completed")
	}
	if s.FocusedIndex() != 2 || s.nav.Focused() != 2 {
		t.Errorf("expected focus 2, got scene=%d nav=%d", s.FocusedIndex(), s.nav.Focused())
	}
}

// TestHeroScene_PanelConsumesPresses 面板打开时所有按下都被面板消费
func TestHeroScene_PanelConsumesPresses(t *testing.T) {
	s, _ := newTestScene(t, device.StaticProvider{Value: config.TierHigh})
	s.panel.Open("card-1")

	r := s.panel.Rect()
	if !s.handlePress(r.X+r.W/2, r.Y+r.H/2) {
		t.Error("press inside panel should be consumed")
	}
	if !s.panel.IsOpen() {
		t.Error("press inside panel should keep it open")
	}

	// 即使点在导航栏上，也只关闭面板
	item := s.nav.Items()[4]
	if !s.handlePress(item.X+1, item.Y+1) {
		t.Error("press outside panel should be consumed")
	}
	if s.panel.IsOpen() {
		t.Error("press outside panel should close it")
	}
	if _, animating := s.camera.Target(); animating {
		t.Error("press that closes the panel must not reach the navigation bar")
	}
}

// TestHeroScene_Keyboard 方向键、数字键、回车和 Esc
func TestHeroScene_Keyboard(t *testing.T) {
	s, clock := newTestScene(t, device.StaticProvider{Value: config.TierHigh})

	s.handleKey(ebiten.KeyArrowRight)
	if target, _ := s.camera.Target(); target != 1 {
		t.Errorf("expected target 1, got %d", target)
	}
	if s.panel.IsOpen() {
		t.Error("arrow keys should not open the panel")
	}

	s.handleKey(ebiten.KeyEnter)
	if !s.panel.IsOpen() || s.panel.CardID() != "card-1" {
		t.Errorf("expected Enter to open card-1, got %q", s.panel.CardID())
	}

	// 面板打开时忽略导航键
	s.handleKey(ebiten.KeyDigit4)
	if target, _ := s.camera.Target(); target != 1 {
		t.Errorf("navigation keys should be ignored while the panel is open, got %d", target)
	}

	s.handleKey(ebiten.KeyEscape)
	if s.panel.IsOpen() {
		t.Error("Esc should close the panel")
	}

	s.handleKey(ebiten.KeyDigit4)
	if target, _ := s.camera.Target(); target != 3 {
		t.Errorf("expected Digit4 to target 3, got %d", target)
	}

	// 超出卡片数量的数字键忽略
	s.handleKey(ebiten.KeyDigit9)
	if target, _ := s.camera.Target(); target != 3 {
		t.Errorf("out of range digit should be ignored, got %d", target)
	}

	clock.Advance(2 * time.Second)
	s.advance(1.0 / 60)
	s.handleKey(ebiten.KeyArrowLeft)
	if target, _ := s.camera.Target(); target != 2 {
		t.Errorf("expected ArrowLeft to target 2, got %d", target)
	}
}

// TestHeroScene_DigitKeysCoverFirstNine 卡片多于 9 张时数字键只覆盖前 9 张
func TestHeroScene_DigitKeysCoverFirstNine(t *testing.T) {
	clock := game.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewHeroScene(HeroSceneOptions{
		Registry: newTestRegistry(t, 12),
		Provider: device.StaticProvider{Value: config.TierHigh},
		Clock:    clock,
	})

	s.handleKey(ebiten.KeyDigit9)
	if target, _ := s.camera.Target(); target != 8 {
		t.Errorf("expected Digit9 to target 8, got %d", target)
	}
	clock.Advance(2 * time.Second)
	s.advance(1.0 / 60)

	// 第 10 张以后通过方向键到达
	s.handleKey(ebiten.KeyArrowRight)
	if target, _ := s.camera.Target(); target != 9 {
		t.Errorf("expected ArrowRight to reach 9, got %d", target)
	}
}

// TestHeroScene_LowTierUsesFlatCarousel low 档位使用平面轮播，focus 事件驱动跳转
func TestHeroScene_LowTierUsesFlatCarousel(t *testing.T) {
	s, _ := newTestScene(t, device.StaticProvider{Value: config.TierLow})
	if !s.FlatActive() {
		t.Fatal("low tier should use the flat carousel")
	}
	if !s.orbitBlocked() {
		t.Error("orbit input should be blocked on the flat carousel")
	}

	s.bus.Publish(event.TopicFocus, event.Selection{CardID: "card-4", Index: 4})
	if s.flat.Current() != 4 {
		t.Errorf("expected flat carousel at 4, got %d", s.flat.Current())
	}
	if _, animating := s.camera.Target(); animating {
		t.Error("camera must not animate while the flat carousel is active")
	}

	// 点击轮播卡片打开面板
	l := s.flat.Layout()
	s.handlePress(l.Card.X+l.Card.W/2, l.Card.Y+l.Card.H/2)
	if !s.panel.IsOpen() || s.panel.CardID() != "card-4" {
		t.Errorf("expected panel on card-4, got %q", s.panel.CardID())
	}
}

// TestHeroScene_TierChangeOnResize 尺寸变化重新检测档位并切换引擎，焦点卡片保持
func TestHeroScene_TierChangeOnResize(t *testing.T) {
	provider := &tierSwitch{tier: config.TierHigh}
	s, clock := newTestScene(t, provider)

	s.handleKey(ebiten.KeyDigit3)
	clock.Advance(2 * time.Second)
	s.advance(1.0 / 60)

	s.Resize(1280, 720)
	if s.Tier() != config.TierHigh || s.FlatActive() {
		t.Fatal("tier should not change when the provider result is unchanged")
	}

	provider.tier = config.TierMedium
	s.Resize(1200, 700)
	if s.Tier() != config.TierMedium || s.FlatActive() {
		t.Fatalf("expected medium orbit, got %s flat=%v", s.Tier(), s.FlatActive())
	}
	if s.camera.Profile().AnimationDuration != config.ProfileFor(config.TierMedium).AnimationDuration {
		t.Error("camera should use the medium profile")
	}

	provider.tier = config.TierLow
	s.Resize(800, 600)
	if !s.FlatActive() {
		t.Fatal("expected flat carousel after switching to low")
	}
	if s.FocusedIndex() != 2 {
		t.Errorf("expected focus 2 carried into the flat carousel, got %d", s.FocusedIndex())
	}

	s.flat.JumpTo(5)
	provider.tier = config.TierHigh
	s.Resize(1024, 640)
	if s.FlatActive() {
		t.Fatal("expected orbit engine after switching back to high")
	}
	if s.camera.IsAnimating() || s.FocusedIndex() != 5 {
		t.Errorf("expected camera snapped to 5, got %d (animating=%v)", s.FocusedIndex(), s.camera.IsAnimating())
	}
}

// TestHeroScene_ProviderFailureFallsBackToLow 档位检测失败回退到 low
func TestHeroScene_ProviderFailureFallsBackToLow(t *testing.T) {
	s, _ := newTestScene(t, device.ProviderFunc(func() (config.Tier, error) {
		panic("gpu probe crashed")
	}))
	if s.Tier() != config.TierLow || !s.FlatActive() {
		t.Errorf("expected low flat carousel, got %s", s.Tier())
	}
}

// TestHeroScene_MountsAtFirstCard 相机状态只存在于会话内，新场景总是从第 0 张卡片开始
func TestHeroScene_MountsAtFirstCard(t *testing.T) {
	s, clock := newTestScene(t, device.StaticProvider{Value: config.TierHigh})
	s.handleKey(ebiten.KeyDigit4)
	clock.Advance(2 * time.Second)
	s.advance(1.0 / 60)
	if s.FocusedIndex() != 3 {
		t.Fatalf("expected focus 3 before remount, got %d", s.FocusedIndex())
	}
	s.Dispose()

	for _, tier := range []config.Tier{config.TierHigh, config.TierLow} {
		next, _ := newTestScene(t, device.StaticProvider{Value: tier})
		if next.FocusedIndex() != 0 || next.nav.Focused() != 0 {
			t.Errorf("%s: expected new scene at card 0, got %d", tier, next.FocusedIndex())
		}
		if next.camera.Azimuth() != 0 || next.camera.IsAnimating() {
			t.Errorf("%s: expected camera at 0° and idle, got %v (animating=%v)", tier, next.camera.Azimuth(), next.camera.IsAnimating())
		}
	}
}

// TestHeroScene_PixelRatioCapFollowsTier 像素比上限随档位变化
func TestHeroScene_PixelRatioCapFollowsTier(t *testing.T) {
	provider := &tierSwitch{tier: config.TierHigh}
	s, _ := newTestScene(t, provider)
	if got := s.PixelRatioCap(); got != config.ProfileFor(config.TierHigh).PixelRatioCap {
		t.Errorf("expected high cap, got %v", got)
	}

	provider.tier = config.TierLow
	s.Resize(800, 600)
	if got := s.PixelRatioCap(); got != config.ProfileFor(config.TierLow).PixelRatioCap {
		t.Errorf("expected low cap, got %v", got)
	}

	if s.PixelRatio() != 1 {
		t.Errorf("expected default ratio 1, got %v", s.PixelRatio())
	}
	s.SetPixelRatio(1.5)
	if s.PixelRatio() != 1.5 {
		t.Errorf("expected ratio 1.5, got %v", s.PixelRatio())
	}
	s.SetPixelRatio(0)
	if s.PixelRatio() != 1 {
		t.Errorf("invalid ratio should fall back to 1, got %v", s.PixelRatio())
	}
}

// TestHeroScene_Dispose 销毁后取消全部订阅
func TestHeroScene_Dispose(t *testing.T) {
	s, _ := newTestScene(t, device.StaticProvider{Value: config.TierHigh})
	bus := s.Bus()
	if bus.Count(event.TopicFocus) == 0 || bus.Count(event.TopicOpenPanel) == 0 {
		t.Fatal("expected subscriptions after construction")
	}

	s.Dispose()
	if n := bus.Count(event.TopicFocus) + bus.Count(event.TopicOpenPanel); n != 0 {
		t.Errorf("expected no subscriptions after dispose, got %d", n)
	}
	s.Dispose()
	s.Update(1.0 / 60)
}

// TestHeroScene_SceneManagerLifecycle 场景管理器切换时释放旧场景
func TestHeroScene_SceneManagerLifecycle(t *testing.T) {
	sm := game.NewSceneManager()
	first, _ := newTestScene(t, device.StaticProvider{Value: config.TierHigh})
	second, _ := newTestScene(t, device.StaticProvider{Value: config.TierHigh})

	sm.Resize(900, 600)
	sm.SwitchTo(first)
	if first.width != 900 {
		t.Errorf("expected resized scene, got width %d", first.width)
	}

	sm.SwitchTo(second)
	if !first.disposed {
		t.Error("expected first scene to be disposed")
	}
	if first.Bus().Count(event.TopicFocus) != 0 {
		t.Error("disposed scene should not keep subscriptions")
	}
}

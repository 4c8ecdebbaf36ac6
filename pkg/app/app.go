// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/device"
	"github.com/gonewx/portfolio/pkg/game"
	"github.com/gonewx/portfolio/pkg/scenes"
	"github.com/gonewx/portfolio/pkg/utils"
)

// StorageAppName gdata 存储使用的应用名
const StorageAppName = "portfolio"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Tier 命令行强制档位（low/medium/high），为空则按配置文件、用户设置、自动检测的顺序决定
	Tier string
	// AppConfig portfolio.toml 的内容
	AppConfig config.AppConfig
}

// App 应用核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	windowWidth              int
	windowHeight             int
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	pixelRatio               float64
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	appCfg := cfg.AppConfig
	if err := appCfg.Validate(); err != nil {
		return nil, err
	}

	registry, err := config.LoadCardRegistry(appCfg.Data.Cards)
	if err != nil {
		return nil, fmt.Errorf("卡片注册表加载失败: %w", err)
	}

	quality, err := config.LoadQualityTable(appCfg.Data.Quality)
	if err != nil {
		return nil, fmt.Errorf("画质配置加载失败: %w", err)
	}

	settings := game.NewSettingsManager(openStorage())

	provider, err := SelectProvider(cfg.Tier, appCfg, settings)
	if err != nil {
		return nil, err
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewHeroScene(scenes.HeroSceneOptions{
		Registry: registry,
		Quality:  quality,
		Provider: provider,
		Pointer:  utils.NewDragManager(),
	}))

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
		windowWidth:  appCfg.Window.Width,
		windowHeight: appCfg.Window.Height,
		pixelRatio:   1,
	}, nil
}

// openStorage 打开 gdata 存储，失败时返回 nil（偏好只保存在内存中）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: 存储目录不可用: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: StorageAppName})
	if err != nil {
		log.Printf("[App] Warning: gdata 初始化失败: %v (偏好不会被保存)", err)
		return nil
	}
	return m
}

// SelectProvider 决定档位来源
//
// 优先级：命令行 --tier > portfolio.toml [quality] tier > 用户设置 > 自动检测。
// 命令行档位名非法时返回错误；其余来源已在加载时校验。
func SelectProvider(flagTier string, appCfg config.AppConfig, settings *game.SettingsManager) (device.Provider, error) {
	if flagTier != "" {
		tier, err := config.ParseTier(flagTier)
		if err != nil {
			return nil, fmt.Errorf("--tier: %w", err)
		}
		log.Printf("[App] 使用命令行档位: %s", tier)
		return device.StaticProvider{Value: tier}, nil
	}
	if tier, ok := appCfg.ForcedTier(); ok {
		log.Printf("[App] 使用配置文件档位: %s", tier)
		return device.StaticProvider{Value: tier}, nil
	}
	if settings != nil {
		if tier, ok := settings.QualityOverride(); ok {
			log.Printf("[App] 使用用户设置档位: %s", tier)
			return device.StaticProvider{Value: tier}, nil
		}
	}
	return device.NewHeuristicProvider(), nil
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.SaveOnExit()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.windowWidth, a.windowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.windowWidth, a.windowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	a.settings.SetFullscreen(true)
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
//
// 实现了 LayoutF 时 ebiten 不会调用这里，保留以满足 ebiten.Game 接口。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := config.ClampViewport(outsideWidth, outsideHeight)
	a.sceneManager.Resize(w, h)
	return w, h
}

// LayoutF 返回渲染分辨率
//
// 场景按逻辑尺寸（设备无关像素）布局；渲染分辨率为逻辑尺寸乘以
// min(设备像素比, 当前档位的像素比上限)。
func (a *App) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return a.layoutWithScale(outsideWidth, outsideHeight, deviceScaleFactor())
}

func (a *App) layoutWithScale(outsideWidth, outsideHeight, deviceScale float64) (float64, float64) {
	w, h := config.ClampViewport(int(outsideWidth), int(outsideHeight))
	// 先通知尺寸变化：档位可能随视口改变，上限要按新档位取
	a.sceneManager.Resize(w, h)

	ratio := EffectivePixelRatio(deviceScale, a.sceneManager.PixelRatioCap())
	if ratio != a.pixelRatio {
		log.Printf("[App] 渲染倍率 %.2f (设备像素比 %.2f)", ratio, deviceScale)
		a.pixelRatio = ratio
	}
	a.sceneManager.SetPixelRatio(ratio)
	return float64(w) * ratio, float64(h) * ratio
}

// EffectivePixelRatio 返回 min(设备像素比, 上限)，结果不小于 1
func EffectivePixelRatio(deviceScale, ratioCap float64) float64 {
	if !(deviceScale >= 1) {
		deviceScale = 1
	}
	if !(ratioCap >= 1) {
		ratioCap = 1
	}
	return math.Min(deviceScale, ratioCap)
}

func deviceScaleFactor() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

// PixelRatio 返回当前渲染倍率
func (a *App) PixelRatio() float64 {
	return a.pixelRatio
}

// SaveOnExit 保存当前场景状态和用户设置
func (a *App) SaveOnExit() bool {
	ok := a.sceneManager.SaveOnExit()
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] 保存设置失败: %v", err)
		return false
	}
	return ok
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Settings 返回用户设置
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

var (
	_ ebiten.Game              = (*App)(nil)
	_ ebiten.LayoutFer         = (*App)(nil)
	_ ebiten.FinalScreenDrawer = (*App)(nil)
)

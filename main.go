package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/portfolio/pkg/app"
	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志")
	tier := flag.String("tier", "", "强制画质档位 (low|medium|high)")
	configPath := flag.String("config", config.DefaultAppConfigPath, "应用配置文件路径")
	flag.Parse()

	appCfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:   *verbose || appCfg.Verbose,
		Tier:      *tier,
		AppConfig: appCfg,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(appCfg.Window.Width, appCfg.Window.Height)
	ebiten.SetWindowTitle(appCfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	if gameApp.Settings().Fullscreen() {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

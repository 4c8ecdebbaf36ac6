package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a top-level screen of the application.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Disposable 可选接口：场景被替换时释放订阅等资源
//
// 每个在挂载时注册的监听器都必须在这里对称地取消。
type Disposable interface {
	Dispose()
}

// Resizable 可选接口：逻辑视口尺寸变化时收到通知
type Resizable interface {
	Resize(width, height int)
}

// Saveable 可选接口：窗口关闭时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 窗口关闭
//   - 用户通过 OS 命令关闭程序
type Saveable interface {
	// SaveOnExit 返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}

// PixelRatioAware 可选接口：场景按渲染倍率绘制
//
// PixelRatioCap 返回当前画质允许的最大像素比；App 在 LayoutF 中
// 取 min(设备像素比, 上限) 作为渲染倍率，再通过 SetPixelRatio 告知场景。
type PixelRatioAware interface {
	PixelRatioCap() float64
	SetPixelRatio(ratio float64)
}

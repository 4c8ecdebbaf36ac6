package config

// 布局配置常量
// 本文件定义了主场景的布局参数，包括窗口尺寸、导航栏、面板和平面轮播的位置
// 所有坐标使用逻辑屏幕坐标（Layout 返回的尺寸），实际像素由设备像素比决定

// Window Configuration (窗口配置)
const (
	// GameWindowWidth 默认窗口宽度（逻辑像素）
	GameWindowWidth = 1024

	// GameWindowHeight 默认窗口高度（逻辑像素）
	GameWindowHeight = 640

	// MinWindowWidth 窗口允许的最小宽度，防止布局计算出现负值
	MinWindowWidth = 320

	// MinWindowHeight 窗口允许的最小高度
	MinWindowHeight = 240

	// NarrowViewportWidth 低于此宽度视为竖屏/窄屏，设备档位最多为 medium
	NarrowViewportWidth = 640
)

// Navigation Bar Configuration (导航栏配置)
const (
	// NavBarHeight 顶部导航栏高度
	NavBarHeight = 40.0

	// NavItemPaddingX 导航项左右内边距
	NavItemPaddingX = 12.0

	// NavItemSpacing 导航项间距
	NavItemSpacing = 4.0
)

// Panel Configuration (面板配置)
const (
	// PanelMarginRatio 面板四周留白占屏幕的比例
	PanelMarginRatio = 0.1

	// PanelPadding 面板内边距
	PanelPadding = 24.0

	// PanelLineHeight 面板正文行高
	PanelLineHeight = 18.0

	// PanelFadeDuration 面板淡入时长（秒）
	PanelFadeDuration = 0.3
)

// Flat Carousel Configuration (平面轮播配置)
const (
	// FlatCarouselAutoAdvance 自动切换间隔（秒）
	FlatCarouselAutoAdvance = 4.0

	// FlatCarouselResumeDelay 手动操作后恢复自动播放的等待时间（秒）
	FlatCarouselResumeDelay = 10.0

	// FlatCarouselSlideDuration 切换动画时长（秒）
	FlatCarouselSlideDuration = 0.5

	// FlatCarouselDotRadius 指示点半径
	FlatCarouselDotRadius = 5.0

	// FlatCarouselDotSpacing 指示点间距
	FlatCarouselDotSpacing = 18.0
)

// Orbit Interaction Configuration (轨道交互配置)
const (
	// DragDeadZone 拖拽判定阈值（像素），小于此距离的按下-抬起视为点击
	DragDeadZone = 6.0

	// InertiaStopSpeed 惯性速度低于此值（度/秒）时停止
	InertiaStopSpeed = 0.5
)

// ClampViewport 将视口尺寸限制在最小值以上
func ClampViewport(w, h int) (int, int) {
	if w < MinWindowWidth {
		w = MinWindowWidth
	}
	if h < MinWindowHeight {
		h = MinWindowHeight
	}
	return w, h
}

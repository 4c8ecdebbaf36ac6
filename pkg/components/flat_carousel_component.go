package components

// FlatCarouselComponent 平面轮播状态（低端设备的回退界面）
type FlatCarouselComponent struct {
	// Current 当前显示的卡片索引
	Current int
	// Previous 滑动动画的起始索引
	Previous int
	// SlideElapsed 当前滑动动画已进行的时间（秒）
	SlideElapsed float64
	// Sliding 是否正在滑动
	Sliding bool
	// AutoTimer 距上次自动前进的时间（秒）
	AutoTimer float64
	// PauseRemaining 手动操作后自动前进暂停的剩余时间（秒）
	PauseRemaining float64
}

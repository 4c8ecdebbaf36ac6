package components

import "time"

// CameraComponent 相机方位角与动画状态
//
// Azimuth 是拖拽输入与动画驱动之间唯一共享的可变状态，
// 同一时刻只有一方可以写入：IsAnimating 为 true 时拖拽被忽略。
type CameraComponent struct {
	// Azimuth 当前方位角（度，归一化到 [0, 360)）
	Azimuth float64

	// IsAnimating 是否正在执行 rotateTo 动画
	IsAnimating bool

	// TargetIndex 目标卡片索引（仅动画中有效）
	TargetIndex int

	// TargetAzimuth 目标方位角（仅动画中有效）
	TargetAzimuth float64

	// StartAzimuth 动画起始方位角
	StartAzimuth float64

	// Delta 沿最短路径的有符号旋转量（度，|Delta| ≤ 180）
	Delta float64

	// StartTime 动画开始时刻
	StartTime time.Time

	// Duration 动画时长（启动时从画质参数取值，档位切换不影响进行中的动画）
	Duration time.Duration

	// Dragging 用户是否正在拖拽
	Dragging bool

	// DragAccum 本帧累计的拖拽角度（度），Update 时换算为速度
	DragAccum float64

	// Velocity 拖拽惯性速度（度/秒），松手后按阻尼衰减
	Velocity float64
}

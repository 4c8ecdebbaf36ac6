package game

import "time"

// Clock 时间源
//
// 相机动画按 (now - start) / duration 计算进度，而不是按帧计数，
// 掉帧或慢帧不会让动画失去同步。测试中使用 ManualClock 控制时间。
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系统时间
type SystemClock struct{}

// Now 返回当前时间
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock 手动推进的时钟（测试和离线工具使用）
type ManualClock struct {
	now time.Time
}

// NewManualClock 创建手动时钟
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now 返回当前时间
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance 推进时间
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set 设置当前时间
func (c *ManualClock) Set(t time.Time) {
	c.now = t
}

package components

// ScreenRectComponent 卡片投影到屏幕后的矩形
//
// Visible 为 false 的卡片（背面区、透明度为 0 或在相机后方）
// 不参与渲染和点击检测。
type ScreenRectComponent struct {
	X, Y          float64 // 左上角
	Width, Height float64
	Depth         float64 // 相机空间深度，用于绘制排序和点击优先级
	Facing        float64 // 卡片法线与视线的夹角余弦，控制水平压缩
	Opacity       float64
	Visible       bool
}

// Contains 检查点是否落在矩形内
func (r *ScreenRectComponent) Contains(x, y float64) bool {
	return r.Visible && x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

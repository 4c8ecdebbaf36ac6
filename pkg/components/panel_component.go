package components

// PanelComponent 信息面板状态
type PanelComponent struct {
	// CardID 面板对应的卡片，空字符串表示没有打开的面板
	CardID string
	// Open 面板是否处于打开状态（关闭动画期间为 false）
	Open bool
	// Alpha 淡入淡出进度 [0, 1]
	Alpha float64
}

// Visible 面板是否需要绘制
func (p *PanelComponent) Visible() bool {
	return p.CardID != "" && (p.Open || p.Alpha > 0)
}

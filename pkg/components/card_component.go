package components

import "image/color"

// CardComponent 轨道卡片的静态描述（来自卡片注册表，创建后不修改）
type CardComponent struct {
	ID          string
	Index       int
	Angle       float64 // 固定角度（度）
	Title       string
	Description string
	Color       color.RGBA
}

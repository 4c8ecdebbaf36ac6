package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas 按渲染倍率绘制的目标屏幕
//
// 场景布局和命中检测都使用逻辑坐标，Canvas 在绘制时乘以渲染倍率，
// 倍率即 min(设备像素比, 档位像素比上限)。
type Canvas struct {
	Target *ebiten.Image
	Scale  float64
}

// NewCanvas 创建画布，非法倍率按 1 处理
func NewCanvas(target *ebiten.Image, scale float64) Canvas {
	if !(scale > 0) {
		scale = 1
	}
	return Canvas{Target: target, Scale: scale}
}

func (c Canvas) px(v float64) float32 {
	return float32(v * c.Scale)
}

// LogicalSize 返回目标屏幕的逻辑尺寸
func (c Canvas) LogicalSize() (float64, float64) {
	b := c.Target.Bounds()
	return float64(b.Dx()) / c.Scale, float64(b.Dy()) / c.Scale
}

// Fill 填充整个屏幕
func (c Canvas) Fill(clr color.Color) {
	c.Target.Fill(clr)
}

// FillRect 填充矩形
func (c Canvas) FillRect(x, y, w, h float64, clr color.Color, aa bool) {
	vector.DrawFilledRect(c.Target, c.px(x), c.px(y), c.px(w), c.px(h), clr, aa)
}

// StrokeRect 描边矩形
func (c Canvas) StrokeRect(x, y, w, h, width float64, clr color.Color, aa bool) {
	vector.StrokeRect(c.Target, c.px(x), c.px(y), c.px(w), c.px(h), c.px(width), clr, aa)
}

// FillCircle 填充圆形
func (c Canvas) FillCircle(cx, cy, r float64, clr color.Color, aa bool) {
	vector.DrawFilledCircle(c.Target, c.px(cx), c.px(cy), c.px(r), clr, aa)
}

// StrokeLine 绘制线段
func (c Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color, aa bool) {
	vector.StrokeLine(c.Target, c.px(x0), c.px(y0), c.px(x1), c.px(y1), c.px(width), clr, aa)
}

// DrawText 绘制文字，op.GeoM 使用逻辑坐标
func (c Canvas) DrawText(s string, face text.Face, op *text.DrawOptions) {
	if c.Scale != 1 {
		op.GeoM.Scale(c.Scale, c.Scale)
		op.Filter = ebiten.FilterLinear
	}
	text.Draw(c.Target, s, face, op)
}

// DrawImage 绘制贴图，op.GeoM 使用逻辑坐标
func (c Canvas) DrawImage(img *ebiten.Image, op *ebiten.DrawImageOptions) {
	if c.Scale != 1 {
		op.GeoM.Scale(c.Scale, c.Scale)
		op.Filter = ebiten.FilterLinear
	}
	c.Target.DrawImage(img, op)
}

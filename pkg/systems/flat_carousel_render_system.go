package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/utils"
)

const flatCardGap = 32.0

var (
	flatButtonColor = color.NRGBA{R: 255, G: 255, B: 255, A: 0xb0}
	flatDotColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 0x60}
	flatDotActive   = color.NRGBA{R: 255, G: 255, B: 255, A: 0xff}
)

// FlatCarouselRenderSystem 绘制平面轮播
type FlatCarouselRenderSystem struct {
	carousel *FlatCarouselSystem
	registry *config.CardRegistry
	face     text.Face
}

// NewFlatCarouselRenderSystem 创建平面轮播渲染系统
func NewFlatCarouselRenderSystem(carousel *FlatCarouselSystem, registry *config.CardRegistry, face text.Face) *FlatCarouselRenderSystem {
	if face == nil {
		face = utils.DefaultFace()
	}
	return &FlatCarouselRenderSystem{carousel: carousel, registry: registry, face: face}
}

// SlotOffset 卡片 i 相对显示位置的偏移（以卡片为单位，环绕到 (-N/2, N/2]）
func SlotOffset(i int, position float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	off := math.Mod(float64(i)-position, float64(n))
	if off > float64(n)/2 {
		off -= float64(n)
	} else if off <= -float64(n)/2 {
		off += float64(n)
	}
	return off
}

// Draw 绘制轮播
func (s *FlatCarouselRenderSystem) Draw(c Canvas) {
	l := s.carousel.Layout()
	pos := s.carousel.Position()
	n := s.registry.Len()

	for _, card := range s.registry.Cards() {
		off := SlotOffset(card.Index, pos, n)
		if math.Abs(off) >= 1.5 {
			continue
		}
		alpha := utils.Clamp01(1 - math.Abs(off)*0.6)
		x := l.Card.X + off*(l.Card.W+flatCardGap)

		c.FillRect(x, l.Card.Y, l.Card.W, l.Card.H, CardFill(card.Color, alpha), false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+cardTextPadding, l.Card.Y+cardTextPadding)
		op.ColorScale.ScaleWithColor(color.White)
		op.ColorScale.ScaleAlpha(float32(alpha))
		c.DrawText(card.Title, s.face, op)

		y := l.Card.Y + cardTextPadding + utils.DefaultLineHeight + 10
		for _, line := range utils.WrapText(card.Description, s.face, l.Card.W-2*cardTextPadding) {
			if y+utils.DefaultLineHeight > l.Card.Y+l.Card.H-cardTextPadding {
				break
			}
			op := &text.DrawOptions{}
			op.GeoM.Translate(x+cardTextPadding, y)
			op.ColorScale.ScaleWithColor(color.White)
			op.ColorScale.ScaleAlpha(float32(alpha * 0.85))
			c.DrawText(line, s.face, op)
			y += utils.DefaultLineHeight + 4
		}
	}

	drawChevron(c, l.Prev, -1)
	drawChevron(c, l.Next, 1)

	current := s.carousel.Current()
	for i, dot := range l.Dots {
		cx := dot.X + dot.W/2
		cy := dot.Y + dot.H/2
		if i == current {
			c.FillCircle(cx, cy, config.FlatCarouselDotRadius+1, flatDotActive, false)
		} else {
			c.FillCircle(cx, cy, config.FlatCarouselDotRadius, flatDotColor, false)
		}
	}
}

// drawChevron 绘制左右箭头按钮，dir 为 -1 向左，1 向右
func drawChevron(c Canvas, r Rect, dir float64) {
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	arm := r.W / 4
	tipX := cx + dir*arm/2
	backX := cx - dir*arm/2
	c.StrokeLine(backX, cy-arm, tipX, cy, 3, flatButtonColor, false)
	c.StrokeLine(tipX, cy, backX, cy+arm, 3, flatButtonColor, false)
}

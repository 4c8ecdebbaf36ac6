package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/portfolio/pkg/components"
	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/ecs"
	"github.com/gonewx/portfolio/pkg/orbit"
	"github.com/gonewx/portfolio/pkg/utils"
)

// 卡片绘制参数
const (
	cardFillAlpha     = 0.92 // 卡片底色不透明度
	cardTextPadding   = 12.0
	cardMinTextFacing = 0.6 // 侧面压缩到该值以下时不绘制文字
	cardShadowOffsetX = 6.0
	cardShadowOffsetY = 10.0
	cardShadowAlpha   = 0.35
)

// CardRenderSystem 绘制轨道卡片
//
// 按 OrbitSystem 给出的深度顺序从远到近绘制，只绘制可见卡片。
// 阴影只在画质参数开启时绘制，并且只给中心区卡片。
type CardRenderSystem struct {
	entityManager *ecs.EntityManager
	orbit         *OrbitSystem
	profile       config.QualityProfile
	face          text.Face
}

// NewCardRenderSystem 创建卡片渲染系统
func NewCardRenderSystem(em *ecs.EntityManager, orbit *OrbitSystem, profile config.QualityProfile, face text.Face) *CardRenderSystem {
	if face == nil {
		face = utils.DefaultFace()
	}
	return &CardRenderSystem{
		entityManager: em,
		orbit:         orbit,
		profile:       profile,
		face:          face,
	}
}

// SetProfile 更新画质参数
func (s *CardRenderSystem) SetProfile(p config.QualityProfile) {
	s.profile = p
}

// Draw 绘制所有可见卡片
func (s *CardRenderSystem) Draw(c Canvas) {
	aa := s.profile.AntialiasEnabled

	for _, id := range s.orbit.VisibleCards() {
		rect, ok := ecs.GetComponent[*components.ScreenRectComponent](s.entityManager, id)
		if !ok {
			continue
		}
		card, ok := ecs.GetComponent[*components.CardComponent](s.entityManager, id)
		if !ok {
			continue
		}
		st, ok := ecs.GetComponent[*components.OrbitStateComponent](s.entityManager, id)
		if !ok {
			continue
		}

		x, y := rect.X, rect.Y
		w, h := rect.Width, rect.Height

		if s.profile.ShadowsEnabled && st.Zone == orbit.ZoneCenter {
			shadow := color.NRGBA{A: alpha8(cardShadowAlpha * st.CenterProgress * rect.Opacity)}
			c.FillRect(x+cardShadowOffsetX, y+cardShadowOffsetY, w, h, shadow, aa)
		}

		c.FillRect(x, y, w, h, CardFill(card.Color, rect.Opacity), aa)

		border := color.NRGBA{R: 255, G: 255, B: 255, A: alpha8(rect.Opacity * (0.3 + 0.7*st.CenterProgress))}
		c.StrokeRect(x, y, w, h, 1+2*st.CenterProgress, border, aa)

		if rect.Facing < cardMinTextFacing {
			continue
		}
		s.drawText(c, card, rect)
	}
}

func (s *CardRenderSystem) drawText(c Canvas, card *components.CardComponent, rect *components.ScreenRectComponent) {
	maxWidth := rect.Width - 2*cardTextPadding
	if maxWidth <= 0 {
		return
	}

	y := rect.Y + cardTextPadding
	lines := []string{card.Title}
	lines = append(lines, utils.WrapText(card.Description, s.face, maxWidth)...)

	for i, line := range lines {
		if y+utils.DefaultLineHeight > rect.Y+rect.Height-cardTextPadding {
			break
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(rect.X+cardTextPadding, y)
		op.ColorScale.ScaleWithColor(color.White)
		if i > 0 {
			op.ColorScale.Scale(0.85, 0.85, 0.85, 1)
		}
		op.ColorScale.ScaleAlpha(float32(rect.Opacity))
		c.DrawText(line, s.face, op)

		y += utils.DefaultLineHeight + 4
		if i == 0 {
			y += 6
		}
	}
}

// CardFill 返回按透明度调整后的卡片底色
func CardFill(c color.RGBA, opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha8(cardFillAlpha * opacity)}
}

// alpha8 将 [0, 1] 的透明度转换为 8 位
func alpha8(a float64) uint8 {
	return uint8(utils.Clamp01(a)*255 + 0.5)
}

package modules

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/event"
	"github.com/gonewx/portfolio/pkg/systems"
	"github.com/gonewx/portfolio/pkg/utils"
)

var (
	navBarColor       = color.NRGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xc0}
	navHighlightColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x30}
)

// NavigationModule 顶部导航栏
//
// 每张卡片一个导航项，点击后以 SourceNavigation 通过事件桥发布，
// 同时触发相机旋转和面板打开。当前焦点卡片高亮。
type NavigationModule struct {
	registry *config.CardRegistry
	router   *event.Router
	face     text.Face

	focused     int
	windowWidth int
	items       []systems.Rect
}

// NewNavigationModule 创建导航栏
func NewNavigationModule(registry *config.CardRegistry, router *event.Router, face text.Face) *NavigationModule {
	if face == nil {
		face = utils.DefaultFace()
	}
	m := &NavigationModule{
		registry:    registry,
		router:      router,
		face:        face,
		windowWidth: config.GameWindowWidth,
	}
	m.layout()
	return m
}

// SetViewport 更新逻辑视口尺寸并重新布局
func (m *NavigationModule) SetViewport(width, height int) {
	m.windowWidth, _ = config.ClampViewport(width, height)
	m.layout()
}

// layout 按标题宽度排列导航项，整体水平居中
//
// 总宽度超过视口时从左侧开始排列，超出部分不可见。
func (m *NavigationModule) layout() {
	cards := m.registry.Cards()
	m.items = m.items[:0]

	total := 0.0
	widths := make([]float64, len(cards))
	for i, card := range cards {
		widths[i] = utils.MeasureText(card.Title, m.face) + 2*config.NavItemPaddingX
		total += widths[i]
	}
	if len(cards) > 1 {
		total += config.NavItemSpacing * float64(len(cards)-1)
	}

	x := (float64(m.windowWidth) - total) / 2
	if x < config.NavItemSpacing {
		x = config.NavItemSpacing
	}
	for _, w := range widths {
		m.items = append(m.items, systems.Rect{X: x, Y: 0, W: w, H: config.NavBarHeight})
		x += w + config.NavItemSpacing
	}
}

// Items 返回导航项矩形（与卡片索引一一对应）
func (m *NavigationModule) Items() []systems.Rect {
	out := make([]systems.Rect, len(m.items))
	copy(out, m.items)
	return out
}

// SetFocused 设置高亮的卡片索引
func (m *NavigationModule) SetFocused(index int) {
	m.focused = index
}

// Focused 返回高亮的卡片索引
func (m *NavigationModule) Focused() int {
	return m.focused
}

// Contains 点是否落在导航栏内
func (m *NavigationModule) Contains(x, y float64) bool {
	return y >= 0 && y < config.NavBarHeight && x >= 0 && x < float64(m.windowWidth)
}

// HandleClick 处理点击，返回是否命中导航栏
func (m *NavigationModule) HandleClick(x, y float64) bool {
	if !m.Contains(x, y) {
		return false
	}
	for i, item := range m.items {
		if item.Contains(x, y) {
			log.Printf("[NavigationModule] 点击导航项 %d", i)
			m.router.SelectIndex(event.SourceNavigation, i)
			return true
		}
	}
	return true
}

// Draw 绘制导航栏
func (m *NavigationModule) Draw(c systems.Canvas) {
	c.FillRect(0, 0, float64(m.windowWidth), config.NavBarHeight, navBarColor, false)

	cards := m.registry.Cards()
	for i, item := range m.items {
		if i == m.focused {
			c.FillRect(item.X, item.Y, item.W, item.H, navHighlightColor, false)
			c.StrokeLine(item.X, item.H-2, item.X+item.W, item.H-2, 2, systems.CardFill(cards[i].Color, 1), false)
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(item.X+config.NavItemPaddingX, (config.NavBarHeight-utils.DefaultLineHeight)/2)
		op.ColorScale.ScaleWithColor(color.White)
		c.DrawText(cards[i].Title, m.face, op)
	}
}

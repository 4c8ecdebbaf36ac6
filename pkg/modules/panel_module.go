package modules

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/portfolio/pkg/components"
	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/ecs"
	"github.com/gonewx/portfolio/pkg/event"
	"github.com/gonewx/portfolio/pkg/systems"
	"github.com/gonewx/portfolio/pkg/utils"
)

var (
	panelOverlayColor    = color.NRGBA{A: 0xa0}
	panelBackgroundColor = color.NRGBA{R: 0x1c, G: 0x1f, B: 0x26, A: 0xf0}
)

// PanelModule 卡片详情面板
// 封装面板的打开/关闭状态、淡入淡出动画、输入处理和渲染。
//
// 面板订阅 open-panel 主题，由事件桥驱动打开；
// Esc 或点击面板外部关闭。面板打开期间轨道输入被阻塞（见 IsOpen）。
type PanelModule struct {
	entityManager *ecs.EntityManager
	registry      *config.CardRegistry
	face          text.Face

	panelEntity  ecs.EntityID
	subscription *event.Subscription

	windowWidth  int
	windowHeight int
}

// NewPanelModule 创建面板模块并订阅 open-panel 主题
func NewPanelModule(em *ecs.EntityManager, bus *event.Bus, registry *config.CardRegistry, face text.Face) *PanelModule {
	if face == nil {
		face = utils.DefaultFace()
	}
	m := &PanelModule{
		entityManager: em,
		registry:      registry,
		face:          face,
		windowWidth:   config.GameWindowWidth,
		windowHeight:  config.GameWindowHeight,
	}
	m.panelEntity = em.CreateEntity()
	ecs.AddComponent(em, m.panelEntity, &components.PanelComponent{})
	m.subscription = bus.Subscribe(event.TopicOpenPanel, func(sel event.Selection) {
		m.Open(sel.CardID)
	})
	log.Printf("[PanelModule] Initialized")
	return m
}

func (m *PanelModule) panel() *components.PanelComponent {
	p, ok := ecs.GetComponent[*components.PanelComponent](m.entityManager, m.panelEntity)
	if !ok {
		return nil
	}
	return p
}

// SetViewport 更新逻辑视口尺寸
func (m *PanelModule) SetViewport(width, height int) {
	m.windowWidth, m.windowHeight = config.ClampViewport(width, height)
}

// Open 打开指定卡片的面板，未知 id 忽略
//
// 已有面板打开时直接切换内容，不重新淡入。
func (m *PanelModule) Open(cardID string) bool {
	p := m.panel()
	if p == nil {
		return false
	}
	if _, ok := m.registry.ByID(cardID); !ok {
		log.Printf("[PanelModule] 忽略未知卡片: %q", cardID)
		return false
	}
	p.CardID = cardID
	p.Open = true
	log.Printf("[PanelModule] 打开面板: %s", cardID)
	return true
}

// Close 关闭面板（淡出后清除内容）
func (m *PanelModule) Close() {
	p := m.panel()
	if p == nil || !p.Open {
		return
	}
	p.Open = false
	log.Printf("[PanelModule] 关闭面板: %s", p.CardID)
}

// IsOpen 面板是否打开（淡出过程中返回 false）
func (m *PanelModule) IsOpen() bool {
	p := m.panel()
	return p != nil && p.Open
}

// CardID 返回当前面板显示的卡片 id
func (m *PanelModule) CardID() string {
	if p := m.panel(); p != nil {
		return p.CardID
	}
	return ""
}

// Alpha 返回当前不透明度
func (m *PanelModule) Alpha() float64 {
	if p := m.panel(); p != nil {
		return p.Alpha
	}
	return 0
}

// Update 推进淡入淡出
func (m *PanelModule) Update(dt float64) {
	p := m.panel()
	if p == nil || !(dt > 0) {
		return
	}
	step := dt / config.PanelFadeDuration
	if p.Open {
		p.Alpha = utils.Clamp01(p.Alpha + step)
		return
	}
	if p.Alpha > 0 {
		p.Alpha = utils.Clamp01(p.Alpha - step)
	}
	if p.Alpha == 0 {
		p.CardID = ""
	}
}

// Rect 返回面板矩形
func (m *PanelModule) Rect() systems.Rect {
	w, h := float64(m.windowWidth), float64(m.windowHeight)
	mx, my := w*config.PanelMarginRatio, h*config.PanelMarginRatio
	return systems.Rect{X: mx, Y: my, W: w - 2*mx, H: h - 2*my}
}

// HandleClick 处理点击，返回点击是否被面板消费
//
// 面板打开时所有点击都被消费，点击面板外部关闭面板。
func (m *PanelModule) HandleClick(x, y float64) bool {
	if !m.IsOpen() {
		return false
	}
	if !m.Rect().Contains(x, y) {
		m.Close()
	}
	return true
}

// HandleEscape 处理 Esc，返回是否关闭了面板
func (m *PanelModule) HandleEscape() bool {
	if !m.IsOpen() {
		return false
	}
	m.Close()
	return true
}

// Draw 绘制遮罩和面板
func (m *PanelModule) Draw(c systems.Canvas) {
	p := m.panel()
	if p == nil || !p.Visible() {
		return
	}
	card, ok := m.registry.ByID(p.CardID)
	if !ok {
		return
	}
	alpha := p.Alpha

	c.FillRect(0, 0, float64(m.windowWidth), float64(m.windowHeight), scaleAlpha(panelOverlayColor, alpha), false)

	r := m.Rect()
	c.FillRect(r.X, r.Y, r.W, r.H, scaleAlpha(panelBackgroundColor, alpha), false)
	c.StrokeRect(r.X, r.Y, r.W, r.H, 2, systems.CardFill(card.Color, alpha), true)

	x := r.X + config.PanelPadding
	y := r.Y + config.PanelPadding
	maxWidth := r.W - 2*config.PanelPadding
	bottom := r.Y + r.H - config.PanelPadding

	y = m.drawLine(c, card.Title, x, y, alpha)
	y += config.PanelLineHeight / 2
	for _, line := range utils.WrapText(card.Description, m.face, maxWidth) {
		if y+config.PanelLineHeight > bottom {
			return
		}
		y = m.drawLine(c, line, x, y, alpha*0.85)
	}
	y += config.PanelLineHeight / 2
	for _, paragraph := range card.Body {
		for _, line := range utils.WrapText(paragraph, m.face, maxWidth) {
			if y+config.PanelLineHeight > bottom {
				return
			}
			y = m.drawLine(c, line, x, y, alpha*0.75)
		}
	}
}

func (m *PanelModule) drawLine(c systems.Canvas, s string, x, y, alpha float64) float64 {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	op.ColorScale.ScaleAlpha(float32(alpha))
	c.DrawText(s, m.face, op)
	return y + config.PanelLineHeight
}

// Dispose 取消订阅并销毁面板实体
func (m *PanelModule) Dispose() {
	m.subscription.Unsubscribe()
	m.entityManager.DestroyEntity(m.panelEntity)
	m.entityManager.RemoveMarkedEntities()
}

func scaleAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A)*utils.Clamp01(alpha) + 0.5)
	return c
}

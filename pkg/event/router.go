package event

import (
	"log"

	"github.com/gonewx/portfolio/pkg/config"
)

// DefaultRoutes 触发来源到事件主题的静态映射表
//
//   - 点击 3D 卡片：转到该卡片并打开面板
//   - 点击平面轮播卡片：只打开面板（轮播自身已在该卡片上）
//   - 点击导航菜单：转到该卡片并打开面板
//   - 方向键/数字键：只转到该卡片
//   - 回车：只打开面板
func DefaultRoutes() map[Source][]Topic {
	return map[Source][]Topic{
		SourceOrbitCard:   {TopicFocus, TopicOpenPanel},
		SourceFlatCard:    {TopicOpenPanel},
		SourceNavigation:  {TopicFocus, TopicOpenPanel},
		SourceKeyNavigate: {TopicFocus},
		SourceKeyConfirm:  {TopicOpenPanel},
	}
}

// Router 将触发解析为卡片并按映射表发布事件
type Router struct {
	bus      *Bus
	registry *config.CardRegistry
	routes   map[Source][]Topic
}

// NewRouter 使用默认映射表创建路由器
func NewRouter(bus *Bus, registry *config.CardRegistry) *Router {
	return NewRouterWithRoutes(bus, registry, DefaultRoutes())
}

// NewRouterWithRoutes 使用自定义映射表创建路由器
func NewRouterWithRoutes(bus *Bus, registry *config.CardRegistry, routes map[Source][]Topic) *Router {
	return &Router{bus: bus, registry: registry, routes: routes}
}

// Select 按卡片 id 触发选择，未知 id 记录日志后忽略
func (r *Router) Select(source Source, cardID string) bool {
	card, ok := r.registry.ByID(cardID)
	if !ok {
		log.Printf("[Router] 忽略未知卡片 id: %q (来源 %s)", cardID, source)
		return false
	}
	return r.dispatch(source, card)
}

// SelectIndex 按卡片索引触发选择，越界索引记录日志后忽略
func (r *Router) SelectIndex(source Source, index int) bool {
	card, ok := r.registry.At(index)
	if !ok {
		log.Printf("[Router] 忽略越界卡片索引: %d (来源 %s)", index, source)
		return false
	}
	return r.dispatch(source, card)
}

func (r *Router) dispatch(source Source, card config.Card) bool {
	topics, ok := r.routes[source]
	if !ok {
		log.Printf("[Router] 来源 %s 没有路由", source)
		return false
	}

	sel := Selection{CardID: card.ID, Index: card.Index, Source: source}
	for _, topic := range topics {
		r.bus.Publish(topic, sel)
	}
	return true
}

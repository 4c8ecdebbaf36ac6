// Package event 提供卡片选择事件桥
//
// 触发方（3D 卡片、平面轮播卡片、导航菜单）与消费方（面板、相机）
// 之间只通过 Bus 通信，互不引用。Bus 每个场景创建一次，显式传给各方。
package event

import (
	"log"
	"sync"
)

// Topic 事件主题
type Topic string

const (
	// TopicFocus 将视图转到指定卡片（相机旋转或平面轮播跳转）
	TopicFocus Topic = "focus-card"
	// TopicOpenPanel 打开卡片对应的面板
	TopicOpenPanel Topic = "open-panel"
)

// Source 触发来源
type Source int

const (
	// SourceOrbitCard 点击 3D 轨道卡片
	SourceOrbitCard Source = iota
	// SourceFlatCard 点击平面轮播卡片
	SourceFlatCard
	// SourceNavigation 点击导航菜单
	SourceNavigation
	// SourceKeyNavigate 方向键或数字键切换卡片
	SourceKeyNavigate
	// SourceKeyConfirm 回车打开当前卡片
	SourceKeyConfirm
)

// String 返回来源名称
func (s Source) String() string {
	switch s {
	case SourceOrbitCard:
		return "orbit-card"
	case SourceFlatCard:
		return "flat-card"
	case SourceNavigation:
		return "navigation"
	case SourceKeyNavigate:
		return "key-navigate"
	case SourceKeyConfirm:
		return "key-confirm"
	}
	return "unknown"
}

// Selection 事件负载
type Selection struct {
	CardID string
	Index  int
	Source Source
}

// Handler 事件处理函数
type Handler func(Selection)

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus 类型化发布/订阅通道
//
// 支持每个主题零个、一个或多个订阅者。发布方不需要知道当前有谁在监听。
type Bus struct {
	mu     sync.Mutex
	subs   map[Topic][]subscriber
	nextID uint64
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscriber)}
}

// Subscription 订阅句柄，组件卸载时必须调用 Unsubscribe
type Subscription struct {
	bus   *Bus
	topic Topic
	id    uint64
	once  sync.Once
}

// Subscribe 注册处理函数，返回对应的取消句柄
func (b *Bus) Subscribe(topic Topic, fn Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscriber{id: id, handler: fn})
	return &Subscription{bus: b, topic: topic, id: id}
}

// Unsubscribe 取消订阅，重复调用无副作用
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.once.Do(func() {
		s.bus.remove(s.topic, s.id)
	})
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[topic]
	for i, sub := range list {
		if sub.id != id {
			continue
		}
		next := make([]subscriber, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(b.subs, topic)
		} else {
			b.subs[topic] = next
		}
		return
	}
}

// Publish 向主题的所有订阅者同步分发事件，返回收到事件的订阅者数量
//
// 分发基于发布时刻的订阅快照：处理函数中新增或取消订阅不影响本次分发。
func (b *Bus) Publish(topic Topic, sel Selection) int {
	b.mu.Lock()
	snapshot := b.subs[topic]
	b.mu.Unlock()

	if len(snapshot) == 0 {
		log.Printf("[EventBus] %s(%s) 没有订阅者", topic, sel.CardID)
		return 0
	}
	for _, sub := range snapshot {
		sub.handler(sel)
	}
	return len(snapshot)
}

// Count 返回主题当前的订阅者数量
func (b *Bus) Count(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}

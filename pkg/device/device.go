// Package device 提供设备性能档位检测
//
// 场景只消费检测结果（config.Tier），不关心检测方式。
// 检测在挂载时执行一次，窗口尺寸变化时重新执行，不在每帧调用。
package device

import (
	"fmt"
	"log"

	"github.com/gonewx/portfolio/pkg/config"
)

// Provider 设备档位提供者
type Provider interface {
	// Tier 返回当前设备档位，检测失败时返回错误
	Tier() (config.Tier, error)
}

// ViewportAware 可选接口：档位结果依赖视口宽度的提供者
type ViewportAware interface {
	SetViewport(width int)
}

// ProviderFunc 函数适配器
type ProviderFunc func() (config.Tier, error)

// Tier 实现 Provider 接口
func (f ProviderFunc) Tier() (config.Tier, error) {
	return f()
}

// StaticProvider 固定档位（命令行 --tier 或用户设置覆盖）
type StaticProvider struct {
	Value config.Tier
}

// Tier 实现 Provider 接口
func (s StaticProvider) Tier() (config.Tier, error) {
	if !s.Value.Valid() {
		return config.TierLow, fmt.Errorf("invalid static tier %d", int(s.Value))
	}
	return s.Value, nil
}

// Resolve 查询档位，永不失败
//
// 提供者返回错误、非法值或发生 panic 时一律回退到 low。
func Resolve(p Provider) (tier config.Tier) {
	if p == nil {
		log.Printf("[Device] 未配置档位提供者，使用 low")
		return config.TierLow
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Device] 档位检测 panic: %v，使用 low", r)
			tier = config.TierLow
		}
	}()

	t, err := p.Tier()
	if err != nil {
		log.Printf("[Device] 档位检测失败: %v，使用 low", err)
		return config.TierLow
	}
	if !t.Valid() {
		log.Printf("[Device] 档位检测返回非法值 %d，使用 low", int(t))
		return config.TierLow
	}
	return t
}

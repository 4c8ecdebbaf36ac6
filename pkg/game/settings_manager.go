package game

import (
	"fmt"
	"log"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/portfolio/pkg/config"
)

// Preferences 用户偏好
//
// 属于应用外壳状态：轨道核心本身只在会话内存在，不读写这些值。
type Preferences struct {
	// QualityOverride 强制档位，空字符串表示自动检测
	QualityOverride string `yaml:"qualityOverride"`
	// Fullscreen 启动时是否全屏
	Fullscreen bool `yaml:"fullscreen"`
}

// DefaultPreferences 返回默认偏好
func DefaultPreferences() *Preferences {
	return &Preferences{}
}

// SettingsManager 偏好管理器
// 负责偏好的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	prefs        *Preferences
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "preferences"
)

// NewSettingsManager 创建偏好管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
//
// 加载失败不影响创建，使用默认偏好。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		prefs:        DefaultPreferences(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load preferences: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载偏好
//
// gdataManager 为 nil 或数据不存在时使用默认偏好。
// 存储的档位名非法时清空该字段而不是整体失败。
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.prefs = DefaultPreferences()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.prefs = DefaultPreferences()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.prefs = DefaultPreferences()
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	var loaded Preferences
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.prefs = DefaultPreferences()
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	if loaded.QualityOverride != "" {
		if _, err := config.ParseTier(loaded.QualityOverride); err != nil {
			log.Printf("[SettingsManager] 忽略非法档位覆盖: %q", loaded.QualityOverride)
			loaded.QualityOverride = ""
		}
	}

	sm.prefs = &loaded
	log.Printf("[SettingsManager] Preferences loaded successfully")
	return nil
}

// Save 保存偏好到 gdata
//
// gdataManager 为 nil 时返回 nil（降级模式，不报错）。
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	log.Printf("[SettingsManager] Preferences saved successfully")
	return nil
}

// GetPreferences 返回当前偏好的副本
func (sm *SettingsManager) GetPreferences() Preferences {
	return *sm.prefs
}

// QualityOverride 返回用户强制的档位
func (sm *SettingsManager) QualityOverride() (config.Tier, bool) {
	if sm.prefs.QualityOverride == "" {
		return config.TierLow, false
	}
	t, err := config.ParseTier(sm.prefs.QualityOverride)
	if err != nil {
		return config.TierLow, false
	}
	return t, true
}

// SetQualityOverride 设置强制档位，空字符串表示恢复自动检测
//
// 注意：仅修改内存中的偏好，需调用 Save() 持久化
func (sm *SettingsManager) SetQualityOverride(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name != "" {
		if _, err := config.ParseTier(name); err != nil {
			return err
		}
	}
	sm.prefs.QualityOverride = name
	return nil
}

// Fullscreen 返回启动时是否全屏
func (sm *SettingsManager) Fullscreen() bool {
	return sm.prefs.Fullscreen
}

// SetFullscreen 设置全屏模式
//
// 注意：仅修改内存中的偏好，需调用 Save() 持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.prefs.Fullscreen = enabled
}

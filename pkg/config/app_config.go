package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultAppConfigPath 应用配置文件默认路径（相对工作目录）
const DefaultAppConfigPath = "portfolio.toml"

// AppConfig 应用级配置（portfolio.toml）
type AppConfig struct {
	Verbose bool          `toml:"verbose"`
	Window  WindowConfig  `toml:"window"`
	Quality QualityConfig `toml:"quality"`
	Data    DataConfig    `toml:"data"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// QualityConfig 画质配置
type QualityConfig struct {
	// Tier 强制使用的档位，空字符串表示自动检测
	Tier string `toml:"tier"`
}

// DataConfig 数据文件路径（嵌入文件系统中的路径）
type DataConfig struct {
	Cards   string `toml:"cards"`
	Quality string `toml:"quality"`
}

// DefaultAppConfig 返回默认应用配置
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Window: WindowConfig{
			Width:  GameWindowWidth,
			Height: GameWindowHeight,
			Title:  "Portfolio",
		},
		Data: DataConfig{
			Cards:   DefaultCardsPath,
			Quality: DefaultQualityPath,
		},
	}
}

// ParseAppConfig 解析 TOML 内容，未出现的字段保持默认值
func ParseAppConfig(data []byte) (AppConfig, error) {
	cfg := DefaultAppConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultAppConfig(), fmt.Errorf("failed to parse app config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultAppConfig(), err
	}
	return cfg, nil
}

// LoadAppConfig 从磁盘读取应用配置
//
// 文件不存在时返回默认配置且不报错。
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultAppConfig(), nil
	}
	if err != nil {
		return DefaultAppConfig(), fmt.Errorf("failed to read app config %s: %w", path, err)
	}
	return ParseAppConfig(data)
}

// Validate 校验配置并修正窗口尺寸
func (c *AppConfig) Validate() error {
	c.Window.Width, c.Window.Height = ClampViewport(c.Window.Width, c.Window.Height)
	if c.Quality.Tier != "" {
		if _, err := ParseTier(c.Quality.Tier); err != nil {
			return fmt.Errorf("app config: %w", err)
		}
	}
	if c.Data.Cards == "" {
		c.Data.Cards = DefaultCardsPath
	}
	if c.Data.Quality == "" {
		c.Data.Quality = DefaultQualityPath
	}
	return nil
}

// ForcedTier 返回配置中强制指定的档位
func (c AppConfig) ForcedTier() (Tier, bool) {
	if c.Quality.Tier == "" {
		return TierLow, false
	}
	t, err := ParseTier(c.Quality.Tier)
	if err != nil {
		return TierLow, false
	}
	return t, true
}

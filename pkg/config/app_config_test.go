package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestParseAppConfig 测试 TOML 配置解析
func TestParseAppConfig(t *testing.T) {
	cfg, err := ParseAppConfig([]byte(`
verbose = true

[window]
width = 800

[quality]
tier = "medium"
`))
	if err != nil {
		t.Fatalf("ParseAppConfig failed: %v", err)
	}

	if !cfg.Verbose {
		t.Error("Verbose should be true")
	}
	if cfg.Window.Width != 800 {
		t.Errorf("Window.Width = %d, want 800", cfg.Window.Width)
	}
	// 未出现的字段保持默认
	if cfg.Window.Height != GameWindowHeight {
		t.Errorf("Window.Height = %d, want %d", cfg.Window.Height, GameWindowHeight)
	}
	if cfg.Data.Cards != DefaultCardsPath {
		t.Errorf("Data.Cards = %q, want %q", cfg.Data.Cards, DefaultCardsPath)
	}

	tier, ok := cfg.ForcedTier()
	if !ok || tier != TierMedium {
		t.Errorf("ForcedTier() = %v, %v", tier, ok)
	}
}

// TestParseAppConfig_Invalid 测试非法配置
func TestParseAppConfig_Invalid(t *testing.T) {
	if _, err := ParseAppConfig([]byte(`[quality]
tier = "ultra"`)); err == nil {
		t.Error("Expected error for unknown tier")
	}

	if _, err := ParseAppConfig([]byte(`verbose = `)); err == nil {
		t.Error("Expected error for malformed toml")
	}

	cfg, err := ParseAppConfig([]byte(`[window]
width = 10
height = 10`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != MinWindowWidth || cfg.Window.Height != MinWindowHeight {
		t.Errorf("Window not clamped: %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
}

// TestLoadAppConfig 测试从磁盘加载
func TestLoadAppConfig(t *testing.T) {
	dir := t.TempDir()

	// 文件不存在：默认配置
	cfg, err := LoadAppConfig(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("LoadAppConfig(missing) error: %v", err)
	}
	if cfg != DefaultAppConfig() {
		t.Error("Expected default config for a missing file")
	}
	if _, ok := cfg.ForcedTier(); ok {
		t.Error("Default config should not force a tier")
	}

	path := filepath.Join(dir, "portfolio.toml")
	if err := os.WriteFile(path, []byte("[window]\ntitle = \"Hello\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig error: %v", err)
	}
	if cfg.Window.Title != "Hello" {
		t.Errorf("Window.Title = %q, want Hello", cfg.Window.Title)
	}
}

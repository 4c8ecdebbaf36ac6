package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gonewx/portfolio/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultQualityPath 画质配置的默认嵌入路径
const DefaultQualityPath = "data/quality.yaml"

// Tier 设备性能档位
type Tier int

const (
	// TierLow 低端设备：使用平面轮播，不渲染 3D 场景
	TierLow Tier = iota
	// TierMedium 中端设备（移动端）：缩短动画、关闭阴影
	TierMedium
	// TierHigh 高端设备：完整效果
	TierHigh
)

// AllTiers 按从低到高的顺序列出所有档位
var AllTiers = []Tier{TierLow, TierMedium, TierHigh}

// String 返回档位名称
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Valid 检查档位取值是否合法
func (t Tier) Valid() bool {
	return t >= TierLow && t <= TierHigh
}

// ParseTier 解析档位名称（大小写不敏感）
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return TierLow, nil
	case "medium":
		return TierMedium, nil
	case "high":
		return TierHigh, nil
	}
	return TierLow, fmt.Errorf("unknown quality tier %q", s)
}

// QualityProfile 某一档位的画质与交互参数
type QualityProfile struct {
	OrbitRadius            float64       `yaml:"orbitRadius"`            // 轨道半径（世界单位）
	CardWidth              int           `yaml:"cardWidth"`              // 卡片基准宽度（像素，正对相机时）
	CardHeight             int           `yaml:"cardHeight"`             // 卡片基准高度
	ShadowsEnabled         bool          `yaml:"shadowsEnabled"`         // 头像接触阴影与焦点卡片投影
	AntialiasEnabled       bool          `yaml:"antialiasEnabled"`       // 矢量绘制抗锯齿
	AnimationDuration      time.Duration `yaml:"animationDuration"`      // rotateTo 动画时长
	PixelRatioCap          float64       `yaml:"pixelRatioCap"`          // 设备像素比上限
	FallbackToFlatCarousel bool          `yaml:"fallbackToFlatCarousel"` // 使用平面轮播替代 3D 场景
	CameraDistance         float64       `yaml:"cameraDistance"`         // 相机到中心距离
	FOV                    float64       `yaml:"fov"`                    // 垂直视场角（度）
	RotateSpeed            float64       `yaml:"rotateSpeed"`            // 拖拽灵敏度（度/像素）
	DampingFactor          float64       `yaml:"dampingFactor"`          // 拖拽惯性阻尼（每帧衰减比例）
	BreatheIntensity       float64       `yaml:"breatheIntensity"`       // 头像呼吸幅度
	AvatarScale            float64       `yaml:"avatarScale"`            // 头像缩放
}

// DefaultQualityProfiles 返回各档位的默认画质参数
func DefaultQualityProfiles() map[Tier]QualityProfile {
	return map[Tier]QualityProfile{
		TierLow: {
			OrbitRadius:            8,
			CardWidth:              200,
			CardHeight:             140,
			ShadowsEnabled:         false,
			AntialiasEnabled:       false,
			AnimationDuration:      1050 * time.Millisecond,
			PixelRatioCap:          1,
			FallbackToFlatCarousel: true,
			CameraDistance:         20,
			FOV:                    65,
			RotateSpeed:            0.2,
			DampingFactor:          0.05,
			BreatheIntensity:       0.01,
			AvatarScale:            9,
		},
		TierMedium: {
			OrbitRadius:            10,
			CardWidth:              220,
			CardHeight:             152,
			ShadowsEnabled:         false,
			AntialiasEnabled:       true,
			AnimationDuration:      1050 * time.Millisecond,
			PixelRatioCap:          1.5,
			FallbackToFlatCarousel: false,
			CameraDistance:         20,
			FOV:                    65,
			RotateSpeed:            0.2,
			DampingFactor:          0.05,
			BreatheIntensity:       0.02,
			AvatarScale:            10,
		},
		TierHigh: {
			OrbitRadius:            10,
			CardWidth:              260,
			CardHeight:             180,
			ShadowsEnabled:         true,
			AntialiasEnabled:       true,
			AnimationDuration:      1500 * time.Millisecond,
			PixelRatioCap:          2,
			FallbackToFlatCarousel: false,
			CameraDistance:         25,
			FOV:                    60,
			RotateSpeed:            0.25,
			DampingFactor:          0.1,
			BreatheIntensity:       0.02,
			AvatarScale:            11,
		},
	}
}

// ProfileFor 返回档位的默认画质参数，非法档位按 low 处理
func ProfileFor(tier Tier) QualityProfile {
	defaults := DefaultQualityProfiles()
	if p, ok := defaults[tier]; ok {
		return p
	}
	return defaults[TierLow]
}

// sanitize 修正非法数值，保证下游几何计算不会除零或产生 NaN
func (p QualityProfile) sanitize(fallback QualityProfile) QualityProfile {
	if !(p.OrbitRadius > 0) {
		p.OrbitRadius = fallback.OrbitRadius
	}
	if p.CardWidth <= 0 {
		p.CardWidth = fallback.CardWidth
	}
	if p.CardHeight <= 0 {
		p.CardHeight = fallback.CardHeight
	}
	if p.AnimationDuration < 0 {
		p.AnimationDuration = 0
	}
	if !(p.PixelRatioCap >= 1) {
		p.PixelRatioCap = 1
	}
	if !(p.CameraDistance > p.OrbitRadius) {
		p.CameraDistance = p.OrbitRadius * 2.5
	}
	if !(p.FOV > 1 && p.FOV < 179) {
		p.FOV = fallback.FOV
	}
	if !(p.RotateSpeed > 0) {
		p.RotateSpeed = fallback.RotateSpeed
	}
	if !(p.DampingFactor > 0 && p.DampingFactor <= 1) {
		p.DampingFactor = fallback.DampingFactor
	}
	if !(p.AvatarScale > 0) {
		p.AvatarScale = fallback.AvatarScale
	}
	return p
}

// QualityTable 档位到画质参数的映射
type QualityTable struct {
	profiles map[Tier]QualityProfile
}

// NewQualityTable 使用默认参数创建画质表
func NewQualityTable() *QualityTable {
	return &QualityTable{profiles: DefaultQualityProfiles()}
}

// ParseQualityTable 解析 quality.yaml
//
// 文件以档位名为键，只需写出要覆盖的字段；未出现的档位和字段保持默认值。
func ParseQualityTable(data []byte) (*QualityTable, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse quality yaml: %w", err)
	}

	table := NewQualityTable()
	defaults := DefaultQualityProfiles()
	for name, node := range raw {
		tier, err := ParseTier(name)
		if err != nil {
			return nil, err
		}
		p := defaults[tier]
		if err := node.Decode(&p); err != nil {
			return nil, fmt.Errorf("quality tier %s: %w", tier, err)
		}
		table.profiles[tier] = p.sanitize(defaults[tier])
	}
	return table, nil
}

// LoadQualityTable 从嵌入文件系统加载画质表
//
// 文件不存在时返回默认画质表（不是错误）。
func LoadQualityTable(path string) (*QualityTable, error) {
	if !embedded.Exists(path) {
		log.Printf("[Config] 画质配置 %s 不存在，使用默认值", path)
		return NewQualityTable(), nil
	}

	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quality table %s: %w", path, err)
	}

	table, err := ParseQualityTable(data)
	if err != nil {
		return nil, fmt.Errorf("invalid quality table %s: %w", path, err)
	}
	log.Printf("[Config] 加载画质配置: %s", path)
	return table, nil
}

// Profile 返回档位的画质参数，非法档位按 low 处理
func (q *QualityTable) Profile(tier Tier) QualityProfile {
	if p, ok := q.profiles[tier]; ok {
		return p
	}
	return q.profiles[TierLow]
}

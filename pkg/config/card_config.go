package config

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/gonewx/portfolio/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultCardsPath 卡片注册表的默认嵌入路径
const DefaultCardsPath = "data/cards.yaml"

// angleTolerance 校验 YAML 中显式角度时允许的误差
const angleTolerance = 1e-6

// CardsFile cards.yaml 的顶层结构
type CardsFile struct {
	Cards []CardConfig `yaml:"cards"`
}

// CardConfig 单张卡片的 YAML 配置
type CardConfig struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Color       string   `yaml:"color"`                // "#rrggbb"
	Background  string   `yaml:"background,omitempty"` // 背景图引用，仅作标识
	Angle       *float64 `yaml:"angle,omitempty"`      // 可选：若指定必须等于 index*360/N
	Body        []string `yaml:"body,omitempty"`       // 面板正文
}

// Card 卡片描述符（构造后不可变）
type Card struct {
	ID          string
	Index       int
	Angle       float64 // 固定角度（度），均匀分布
	Title       string
	Description string
	Color       color.RGBA
	Background  string
	Body        []string
}

// CardRegistry 有序的卡片注册表
//
// 卡片角度由索引均匀计算，场景生命周期内不会改变。
type CardRegistry struct {
	cards []Card
	byID  map[string]int
}

// 注册表校验错误
var (
	ErrNoCards       = errors.New("card registry is empty")
	ErrDuplicateCard = errors.New("duplicate card id")
	ErrEmptyCardID   = errors.New("card id is empty")
	ErrUnevenSpacing = errors.New("card angles must be evenly spaced")
)

// NewCardRegistry 从配置列表创建注册表
//
// 校验规则：
//   - 至少一张卡片
//   - id 非空且唯一
//   - 显式指定的 angle 必须等于 index*360/N（角度间距必须均匀）
//   - color 必须是 #rrggbb 或 #rgb
func NewCardRegistry(cfgs []CardConfig) (*CardRegistry, error) {
	if len(cfgs) == 0 {
		return nil, ErrNoCards
	}

	step := 360.0 / float64(len(cfgs))
	r := &CardRegistry{
		cards: make([]Card, 0, len(cfgs)),
		byID:  make(map[string]int, len(cfgs)),
	}

	for i, c := range cfgs {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return nil, fmt.Errorf("card #%d: %w", i, ErrEmptyCardID)
		}
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("card %q: %w", id, ErrDuplicateCard)
		}

		angle := float64(i) * step
		if c.Angle != nil && math.Abs(*c.Angle-angle) > angleTolerance {
			return nil, fmt.Errorf("card %q: angle %.2f, expected %.2f: %w", id, *c.Angle, angle, ErrUnevenSpacing)
		}

		clr, err := ParseHexColor(c.Color)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", id, err)
		}

		body := make([]string, len(c.Body))
		copy(body, c.Body)

		r.byID[id] = i
		r.cards = append(r.cards, Card{
			ID:          id,
			Index:       i,
			Angle:       angle,
			Title:       c.Title,
			Description: c.Description,
			Color:       clr,
			Background:  c.Background,
			Body:        body,
		})
	}

	return r, nil
}

// ParseCardRegistry 解析 cards.yaml 内容
func ParseCardRegistry(data []byte) (*CardRegistry, error) {
	var file CardsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse cards yaml: %w", err)
	}
	return NewCardRegistry(file.Cards)
}

// LoadCardRegistry 从嵌入文件系统加载卡片注册表
func LoadCardRegistry(path string) (*CardRegistry, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read card registry %s: %w", path, err)
	}

	r, err := ParseCardRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("invalid card registry %s: %w", path, err)
	}

	log.Printf("[Config] 加载卡片注册表: %s (%d 张卡片)", path, r.Len())
	return r, nil
}

// Len 返回卡片数量
func (r *CardRegistry) Len() int {
	return len(r.cards)
}

// At 按索引获取卡片，越界返回 false
func (r *CardRegistry) At(index int) (Card, bool) {
	if index < 0 || index >= len(r.cards) {
		return Card{}, false
	}
	return r.cards[index], true
}

// ByID 按 id 获取卡片
func (r *CardRegistry) ByID(id string) (Card, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Card{}, false
	}
	return r.cards[i], true
}

// IndexOf 返回 id 对应的索引
func (r *CardRegistry) IndexOf(id string) (int, bool) {
	i, ok := r.byID[id]
	return i, ok
}

// Cards 返回卡片列表的副本
func (r *CardRegistry) Cards() []Card {
	out := make([]Card, len(r.cards))
	copy(out, r.cards)
	return out
}

// Angles 按顺序返回所有卡片的固定角度
func (r *CardRegistry) Angles() []float64 {
	out := make([]float64, len(r.cards))
	for i, c := range r.cards {
		out[i] = c.Angle
	}
	return out
}

// Step 相邻卡片的角度间距
func (r *CardRegistry) Step() float64 {
	if len(r.cards) == 0 {
		return 0
	}
	return 360.0 / float64(len(r.cards))
}

// ParseHexColor 解析 "#rrggbb" 或 "#rgb" 格式颜色
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return color.RGBA{}, fmt.Errorf("invalid color %q", "#"+s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", "#"+s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

package utils

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var (
	defaultFaceOnce sync.Once
	defaultFace     text.Face
)

// DefaultFace 返回内置的 7x13 位图字体
//
// 卡片标题、面板正文和导航标签共用同一个字体，只支持 ASCII。
func DefaultFace() text.Face {
	defaultFaceOnce.Do(func() {
		defaultFace = text.NewGoXFace(basicfont.Face7x13)
	})
	return defaultFace
}

// DefaultLineHeight 默认字体的行高（像素）
const DefaultLineHeight = 13

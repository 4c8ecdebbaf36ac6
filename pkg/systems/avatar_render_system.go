package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/orbit"
)

// 头像参数
const (
	avatarBreatheFreq = 0.5  // 呼吸频率（弧度/秒）
	avatarWorldUnit   = 0.25 // AvatarScale 每单位对应的世界半径
	shadowTexSize     = 64
)

var (
	avatarBodyColor = color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	avatarHeadColor = color.RGBA{R: 0xf1, G: 0xc2, B: 0x7d, A: 0xff}
)

// AvatarBreath 头像呼吸缩放系数：1 + sin(t × 0.5) × intensity
func AvatarBreath(elapsed, intensity float64) float64 {
	if math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return 1
	}
	return 1 + math.Sin(elapsed*avatarBreatheFreq)*intensity
}

// AvatarRenderSystem 绘制轨道中心的头像和接触阴影
type AvatarRenderSystem struct {
	orbit   *OrbitSystem
	profile config.QualityProfile
	shadow  *ebiten.Image
}

// NewAvatarRenderSystem 创建头像渲染系统
func NewAvatarRenderSystem(orbit *OrbitSystem, profile config.QualityProfile) *AvatarRenderSystem {
	return &AvatarRenderSystem{orbit: orbit, profile: profile}
}

// SetProfile 更新画质参数
func (s *AvatarRenderSystem) SetProfile(p config.QualityProfile) {
	s.profile = p
}

// shadowTexture 懒加载阴影贴图（圆形，绘制时纵向压扁成椭圆）
func (s *AvatarRenderSystem) shadowTexture() *ebiten.Image {
	if s.shadow == nil {
		s.shadow = ebiten.NewImage(shadowTexSize, shadowTexSize)
		r := float32(shadowTexSize) / 2
		vector.DrawFilledCircle(s.shadow, r, r, r, color.NRGBA{A: 0x60}, true)
	}
	return s.shadow
}

// Draw 绘制头像
//
// 头像位于轨道中心，画在卡片之前，被前方卡片遮挡。
func (s *AvatarRenderSystem) Draw(c Canvas) {
	view := s.orbit.ViewCamera()
	w, h := s.orbit.Viewport()
	base, ok := view.Project(orbit.Vec3{0, orbit.DefaultTargetY, 0}, w, h)
	if !ok {
		return
	}

	radius := s.profile.AvatarScale * avatarWorldUnit * base.Scale
	radius *= AvatarBreath(s.orbit.Elapsed(), s.profile.BreatheIntensity)
	aa := s.profile.AntialiasEnabled

	if s.profile.ShadowsEnabled {
		tex := s.shadowTexture()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-shadowTexSize/2, -shadowTexSize/2)
		op.GeoM.Scale(radius*2.2/shadowTexSize, radius*0.5/shadowTexSize)
		op.GeoM.Translate(base.X, base.Y+radius)
		c.DrawImage(tex, op)
	}

	c.FillCircle(base.X, base.Y, radius, avatarBodyColor, aa)
	c.FillCircle(base.X, base.Y-radius*1.3, radius*0.55, avatarHeadColor, aa)
}

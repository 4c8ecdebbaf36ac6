package orbit

import "math"

// 投影相关常量
const (
	// NearPlane 近裁剪距离，深度小于此值的点不投影
	NearPlane = 0.1
	// DefaultFOV 默认垂直视场角（度）
	DefaultFOV = 60.0
	// DefaultCameraDistance 默认相机到轨道中心的距离
	DefaultCameraDistance = 25.0
	// DefaultTargetY 相机注视点高度
	DefaultTargetY = -2.0
)

// Camera 绕轨道中心水平旋转的透视相机
//
// 相机位于 (D·sinθ, TargetY, D·cosθ)，始终看向轨道中心轴。
type Camera struct {
	Azimuth  float64 // 方位角（度）
	Distance float64 // 到中心轴的距离
	TargetY  float64 // 注视点高度
	FOV      float64 // 垂直视场角（度）
}

// Projected 投影结果（屏幕坐标）
type Projected struct {
	X, Y  float64 // 屏幕坐标（像素）
	Scale float64 // 每个世界单位对应的像素数
	Depth float64 // 沿视线方向的深度，越大越远
}

// Position 返回相机世界坐标
func (c Camera) Position() Vec3 {
	rad := Deg2Rad(c.Azimuth)
	d := c.distance()
	return Vec3{d * math.Sin(rad), c.TargetY, d * math.Cos(rad)}
}

func (c Camera) distance() float64 {
	if !(c.Distance > 0) || math.IsInf(c.Distance, 0) {
		return DefaultCameraDistance
	}
	return c.Distance
}

func (c Camera) fov() float64 {
	if !(c.FOV > 1) || c.FOV >= 179 {
		return DefaultFOV
	}
	return c.FOV
}

// Project 将世界坐标投影到 screenW × screenH 的屏幕
//
// 点位于相机后方（或近裁剪面以内）时返回 false。
func (c Camera) Project(p Vec3, screenW, screenH float64) (Projected, bool) {
	rad := Deg2Rad(c.Azimuth)
	forward := Vec3{-math.Sin(rad), 0, -math.Cos(rad)}
	right := Vec3{math.Cos(rad), 0, -math.Sin(rad)}

	rel := p.Sub(c.Position())
	depth := rel.Dot(forward)
	if depth < NearPlane || math.IsNaN(depth) {
		return Projected{}, false
	}

	focal := (screenH / 2) / math.Tan(Deg2Rad(c.fov())/2)
	scale := focal / depth
	return Projected{
		X:     screenW/2 + rel.Dot(right)*scale,
		Y:     screenH/2 - (p[1]-c.TargetY)*scale,
		Scale: scale,
		Depth: depth,
	}, true
}

// FacingFactor 返回卡片正面朝向相机的程度 cos(yaw - θ)
//
// 1 表示正对相机，0 表示侧面，负值表示背面。用于在 2D 中模拟卡片的透视压缩。
func (c Camera) FacingFactor(yaw float64) float64 {
	return math.Cos(yaw - Deg2Rad(c.Azimuth))
}

// Package orbit 实现轨道卡片的几何计算
//
// 所有函数都是纯函数：给定卡片固定角度与相机方位角（以及经过时间），
// 返回确定的可见性、缩放、垂直偏移与世界坐标。包内不保存任何可变状态，
// 每帧重新计算，不依赖渲染上下文，便于单元测试。
//
// 角度约定：
//   - 所有对外参数使用角度制（度），允许任意实数，内部会归一化
//   - 卡片在角度 φ 处的世界坐标为 (R·sinφ, y, R·cosφ)
//   - 相机方位角 θ 与卡片角度使用同一约定：θ == φ 时相机正对该卡片
package orbit

import "math"

// FullTurn 一整圈的角度
const FullTurn = 360.0

// NormalizeDegrees 将任意角度归一化到 [0, 360)
//
// NaN 和 ±Inf 返回 0，避免非法值沿着每帧计算继续传播。
func NormalizeDegrees(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	// math.Mod(-1e-18, 360) + 360 会得到 360
	if a >= FullTurn {
		a = 0
	}
	return a
}

// AngularDistance 返回两个角度之间的最短无符号距离，范围 [0, 180]
//
// 示例：AngularDistance(350, 10) == 20
func AngularDistance(a, b float64) float64 {
	diff := math.Abs(a - b)
	if math.IsNaN(diff) || math.IsInf(diff, 0) {
		return 0
	}
	d := math.Mod(diff, FullTurn)
	if d > FullTurn/2 {
		d = FullTurn - d
	}
	return d
}

// ShortestDelta 返回从 from 旋转到 to 的最短有符号角度，范围 (-180, 180]
//
// 正值表示角度递增方向。恰好相差 180° 时返回 +180。
func ShortestDelta(from, to float64) float64 {
	d := NormalizeDegrees(to - from)
	if d > FullTurn/2 {
		d -= FullTurn
	}
	return d
}

// Deg2Rad 角度转弧度
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg 弧度转角度
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// clamp01 将值限制在 [0, 1]
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

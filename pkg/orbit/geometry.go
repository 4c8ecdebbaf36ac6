package orbit

import "math"

// 区域阈值（角度）
//
// 数值来自视觉调校，属于产品设计参数而非正确性要求。
const (
	// CenterThreshold 中心区半宽：距离 ≤ 15° 的卡片视为正对用户
	CenterThreshold = 15.0
	// SideThreshold 背面截止角：距离 > 75° 的卡片完全隐藏
	SideThreshold = 75.0
)

// 默认几何参数
const (
	DefaultRadius          = 10.0  // 轨道半径（世界单位）
	DefaultCenterY         = 0.5   // 轨道中心高度
	DefaultOffscreenOffset = -15.0 // 卡片从屏幕下方进入的起始偏移
	DefaultMinScale        = 0.94  // 非中心卡片的缩放
	DefaultEmphasisGain    = 0.40  // 中心强调系数（最大 40%）
	DefaultElevationGain   = 0.8   // 强调时额外抬升
	DefaultBreatheAmp      = 0.2   // 呼吸浮动幅度
	DefaultBreatheFreq     = 0.8   // 呼吸浮动频率（弧度/秒）
)

// Zone 卡片所处的角度区域
type Zone int

const (
	// ZoneCenter 中心区：用户正在看的卡片
	ZoneCenter Zone = iota
	// ZoneSide 侧面区：可见但非焦点
	ZoneSide
	// ZoneOccluded 背面区：完全隐藏，不参与渲染和点击检测
	ZoneOccluded
)

// String 返回区域名称（用于日志和调试工具）
func (z Zone) String() string {
	switch z {
	case ZoneCenter:
		return "center"
	case ZoneSide:
		return "side"
	case ZoneOccluded:
		return "occluded"
	}
	return "unknown"
}

// Params 几何参数
//
// 由设备档位决定半径，其余使用默认值。零值 Params 不可直接使用，
// 请通过 DefaultParams 创建后再修改。
type Params struct {
	Radius          float64
	CenterY         float64
	OffscreenOffset float64
	MinScale        float64
	EmphasisGain    float64
	ElevationGain   float64
	BreatheAmp      float64
	BreatheFreq     float64
}

// DefaultParams 返回默认几何参数
func DefaultParams() Params {
	return Params{
		Radius:          DefaultRadius,
		CenterY:         DefaultCenterY,
		OffscreenOffset: DefaultOffscreenOffset,
		MinScale:        DefaultMinScale,
		EmphasisGain:    DefaultEmphasisGain,
		ElevationGain:   DefaultElevationGain,
		BreatheAmp:      DefaultBreatheAmp,
		BreatheFreq:     DefaultBreatheFreq,
	}
}

// sanitized 修正非法参数
// 档位切换时半径可能被设为 0 或 NaN，这里回退到默认值，保证输出不出现 NaN
func (p Params) sanitized() Params {
	if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
		p.Radius = DefaultRadius
	}
	if !(p.MinScale > 0) || p.MinScale > 1 {
		p.MinScale = DefaultMinScale
	}
	if math.IsNaN(p.CenterY) || math.IsInf(p.CenterY, 0) {
		p.CenterY = DefaultCenterY
	}
	if math.IsNaN(p.OffscreenOffset) || math.IsInf(p.OffscreenOffset, 0) {
		p.OffscreenOffset = DefaultOffscreenOffset
	}
	return p
}

// State 单张卡片在某一帧的派生状态（不跨帧缓存）
type State struct {
	AngularDistance float64 // 与相机方位角的最短距离 [0, 180]
	Zone            Zone
	CenterProgress  float64 // 中心强调进度 [0, 1]，距离 0 时为 1
	Emphasis        float64 // CenterProgress × EmphasisGain
	Opacity         float64 // [0, 1]
	Scale           float64 // [MinScale, 1]
	VerticalOffset  float64 // 入场偏移（不含呼吸和抬升）
	Occluded        bool
	Position        Vec3    // 最终世界坐标（含垂直偏移、呼吸、抬升）
	Yaw             float64 // 卡片朝向（弧度），始终从轨道中心指向外
}

// Classify 根据角度距离划分区域
func Classify(d float64) Zone {
	switch {
	case d <= CenterThreshold:
		return ZoneCenter
	case d <= SideThreshold:
		return ZoneSide
	default:
		return ZoneOccluded
	}
}

// CenterProgress 中心强调进度
//
// 公式：clamp((CENTER - d) / CENTER, 0, 1)
// 在 d = CENTER 处为 0，与中心区以外连续。
func CenterProgress(d float64) float64 {
	if d > CenterThreshold {
		return 0
	}
	return clamp01((CenterThreshold - d) / CenterThreshold)
}

// EnterProgress 入场进度（已应用三次缓出）
//
// 公式：enter = clamp((SIDE - d) / SIDE, 0, 1)，smooth = 1 - (1 - enter)³
// 在 d = SIDE 处为 0，与背面区连续。
func EnterProgress(d float64) float64 {
	if d > SideThreshold {
		return 0
	}
	enter := clamp01((SideThreshold - d) / SideThreshold)
	inv := 1 - enter
	return 1 - inv*inv*inv
}

// WorldAnchor 返回卡片在轨道上的固定水平位置（y 为轨道中心高度）
func WorldAnchor(fixedAngle float64, p Params) Vec3 {
	p = p.sanitized()
	rad := Deg2Rad(fixedAngle)
	return Vec3{p.Radius * math.Sin(rad), p.CenterY, p.Radius * math.Cos(rad)}
}

// FacingYaw 返回卡片朝向：从轨道中心指向卡片位置的方向（绕 Y 轴，弧度）
//
// 与相机当前位置无关，卡片始终朝外。
func FacingYaw(position Vec3, center Vec3) float64 {
	dir := Vec3{position[0] - center[0], 0, position[2] - center[2]}
	if dir.Length() == 0 {
		return 0
	}
	return math.Atan2(dir[0], dir[2])
}

// Evaluate 计算单张卡片在给定相机方位角与经过时间下的状态
//
// 参数：
//   - fixedAngle: 卡片固定角度（度）
//   - cameraAzimuth: 相机方位角（度，任意实数）
//   - elapsed: 场景经过时间（秒），仅用于中心卡片的呼吸浮动
//   - p: 几何参数
func Evaluate(fixedAngle, cameraAzimuth, elapsed float64, p Params) State {
	p = p.sanitized()
	d := AngularDistance(fixedAngle, cameraAzimuth)

	s := State{
		AngularDistance: d,
		Zone:            Classify(d),
	}
	s.Occluded = s.Zone == ZoneOccluded

	s.CenterProgress = CenterProgress(d)
	s.Emphasis = s.CenterProgress * p.EmphasisGain
	s.Scale = p.MinScale + (1-p.MinScale)*s.CenterProgress

	smooth := EnterProgress(d)
	s.Opacity = smooth
	s.VerticalOffset = (1 - smooth) * p.OffscreenOffset

	anchor := WorldAnchor(fixedAngle, p)

	var floatOffset, elevation float64
	if s.Emphasis > 0 {
		if !math.IsNaN(elapsed) && !math.IsInf(elapsed, 0) {
			floatOffset = math.Sin(elapsed*p.BreatheFreq) * p.BreatheAmp * s.Emphasis
		}
		elevation = s.Emphasis * p.ElevationGain
	}

	s.Position = Vec3{anchor[0], anchor[1] + s.VerticalOffset + floatOffset + elevation, anchor[2]}
	s.Yaw = FacingYaw(s.Position, Vec3{0, p.CenterY, 0})
	return s
}

// EvaluateAll 按卡片顺序批量计算状态，结果写入 dst（复用切片避免每帧分配）
func EvaluateAll(dst []State, angles []float64, cameraAzimuth, elapsed float64, p Params) []State {
	dst = dst[:0]
	for _, a := range angles {
		dst = append(dst, Evaluate(a, cameraAzimuth, elapsed, p))
	}
	return dst
}

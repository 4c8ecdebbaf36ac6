package systems

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/portfolio/pkg/components"
	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/ecs"
	"github.com/gonewx/portfolio/pkg/orbit"
)

const frame = time.Second / 60

func TestCameraSystem_StartsAtFirstCard(t *testing.T) {
	f := newCameraFixture(t, 6, time.Second)
	assert.Equal(t, 0.0, f.camera.Azimuth())
	assert.False(t, f.camera.IsAnimating())
	_, ok := f.camera.Target()
	assert.False(t, ok)
}

// 从 10° 转到 350° 必须经过 0°，而不是绕远路经过 180°
func TestCameraSystem_ShortestPath(t *testing.T) {
	f := newCameraFixture(t, 36, time.Second)
	cam, ok := ecs.GetComponent[*components.CameraComponent](f.em, f.camera.Entity())
	require.True(t, ok)
	cam.Azimuth = 10

	require.True(t, f.camera.RotateTo(35))
	require.True(t, f.camera.IsAnimating())

	prev := f.camera.Azimuth()
	traversed := 0.0
	for f.camera.IsAnimating() {
		f.step(frame)
		cur := f.camera.Azimuth()
		step := orbit.ShortestDelta(prev, cur)
		assert.LessOrEqual(t, step, 1e-9, "azimuth must decrease through 0°")
		traversed += math.Abs(step)
		// 始终位于 350°..10° 这段短弧上
		assert.LessOrEqual(t, orbit.AngularDistance(cur, 0), 10+1e-9)
		prev = cur
	}

	assert.Equal(t, 350.0, f.camera.Azimuth())
	assert.InDelta(t, 20, traversed, 1e-6)
	assert.LessOrEqual(t, traversed, 180.0)
}

func TestCameraSystem_MidpointAndMonotonic(t *testing.T) {
	f := newCameraFixture(t, 6, time.Second)
	require.True(t, f.camera.RotateTo(2))

	f.step(500 * time.Millisecond)
	mid := f.camera.Azimuth()
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 120.0)

	prev := mid
	for i := 0; i < 30; i++ {
		f.step(50 * time.Millisecond)
		cur := f.camera.Azimuth()
		assert.GreaterOrEqual(t, cur, prev)
		assert.LessOrEqual(t, cur, 120.0)
		prev = cur
	}
	assert.Equal(t, 120.0, f.camera.Azimuth())
	assert.False(t, f.camera.IsAnimating())
}

// 进度只取决于经过的时间，与帧数无关
func TestCameraSystem_TimeBasedProgress(t *testing.T) {
	a := newCameraFixture(t, 6, time.Second)
	b := newCameraFixture(t, 6, time.Second)
	a.camera.RotateTo(2)
	b.camera.RotateTo(2)

	a.step(300 * time.Millisecond)
	for i := 0; i < 20; i++ {
		b.step(15 * time.Millisecond)
	}
	assert.InDelta(t, a.camera.Azimuth(), b.camera.Azimuth(), 1e-9)
}

func TestCameraSystem_Supersession(t *testing.T) {
	f := newCameraFixture(t, 6, time.Second)
	require.True(t, f.camera.RotateTo(1))
	f.step(400 * time.Millisecond)
	mid := f.camera.Azimuth()
	require.Greater(t, mid, 0.0)

	require.True(t, f.camera.RotateTo(4))
	idx, ok := f.camera.Target()
	require.True(t, ok)
	assert.Equal(t, 4, idx)

	// 新动画从当前方位角开始，不跳变
	f.step(0)
	assert.InDelta(t, mid, f.camera.Azimuth(), 1e-9)

	for f.camera.IsAnimating() {
		f.step(frame)
	}
	assert.Equal(t, 240.0, f.camera.Azimuth())

	// 旧动画不会在之后继续写入
	f.step(2 * time.Second)
	assert.Equal(t, 240.0, f.camera.Azimuth())
}

// 相同输入重复运行得到逐位相同的最终方位角
func TestCameraSystem_IdempotentSnap(t *testing.T) {
	run := func() float64 {
		f := newCameraFixture(t, 7, 1500*time.Millisecond)
		f.camera.RotateTo(3)
		f.step(700 * time.Millisecond)
		f.camera.RotateTo(5)
		for i := 0; i < 200; i++ {
			f.step(frame)
		}
		return f.camera.Azimuth()
	}

	first := run()
	second := run()
	assert.Equal(t, math.Float64bits(first), math.Float64bits(second))
	step := 360.0 / 7
	assert.Equal(t, float64(5)*step, first)
}

func TestCameraSystem_DragSuppressedWhileAnimating(t *testing.T) {
	f := newCameraFixture(t, 6, time.Second)
	f.camera.RotateTo(1)
	f.step(100 * time.Millisecond)
	before := f.camera.Azimuth()

	assert.False(t, f.camera.Drag(200))
	assert.Equal(t, before, f.camera.Azimuth())

	for f.camera.IsAnimating() {
		f.step(frame)
	}

	// 动画结束后恢复拖拽；向右拖拽方位角减小
	require.True(t, f.camera.Drag(10))
	speed := f.camera.Profile().RotateSpeed
	assert.InDelta(t, 60-10*speed, f.camera.Azimuth(), 1e-9)
}

func TestCameraSystem_DegenerateSnap(t *testing.T) {
	f := newCameraFixture(t, 6, time.Second)

	// 起点与目标重合
	require.True(t, f.camera.RotateTo(0))
	assert.False(t, f.camera.IsAnimating())
	assert.Equal(t, 0.0, f.camera.Azimuth())

	// 时长为 0
	f.camera.SetProfile(testProfile(0))
	require.True(t, f.camera.RotateTo(3))
	assert.False(t, f.camera.IsAnimating())
	assert.Equal(t, 180.0, f.camera.Azimuth())
}

func TestCameraSystem_InvalidReferencesIgnored(t *testing.T) {
	f := newCameraFixture(t, 6, time.Second)
	f.camera.RotateTo(2)

	assert.False(t, f.camera.RotateTo(6))
	assert.False(t, f.camera.RotateTo(-1))
	assert.False(t, f.camera.RotateToID("nope"))

	idx, ok := f.camera.Target()
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	assert.True(t, f.camera.RotateToID("card-5"))
	idx, _ = f.camera.Target()
	assert.Equal(t, 5, idx)
}

// 动画中途切换档位：目标与时长不变，不产生 NaN
func TestCameraSystem_TierChangeMidFlight(t *testing.T) {
	f := newCameraFixture(t, 6, 1500*time.Millisecond)
	require.True(t, f.camera.RotateTo(2))
	f.step(750 * time.Millisecond)

	medium := config.ProfileFor(config.TierMedium)
	medium.OrbitRadius = 0
	f.camera.SetProfile(medium)

	f.step(300 * time.Millisecond)
	require.True(t, f.camera.IsAnimating(), "animation must keep its original duration")
	assert.False(t, math.IsNaN(f.camera.Azimuth()))
	idx, _ := f.camera.Target()
	assert.Equal(t, 2, idx)

	f.step(450 * time.Millisecond)
	assert.False(t, f.camera.IsAnimating())
	assert.Equal(t, 120.0, f.camera.Azimuth())
}

func TestCameraSystem_Inertia(t *testing.T) {
	f := newCameraFixture(t, 6, time.Second)

	require.True(t, f.camera.Drag(-20))
	f.step(frame)
	f.camera.EndDrag()
	afterDrag := f.camera.Azimuth()

	f.step(frame)
	assert.Greater(t, orbit.ShortestDelta(afterDrag, f.camera.Azimuth()), 0.0, "inertia keeps rotating")

	for i := 0; i < 600; i++ {
		f.step(frame)
	}
	settled := f.camera.Azimuth()
	f.step(frame)
	assert.Equal(t, settled, f.camera.Azimuth(), "inertia must come to rest")

	// RotateTo 丢弃惯性
	f.camera.Drag(-20)
	f.step(frame)
	f.camera.EndDrag()
	f.camera.RotateTo(1)
	for f.camera.IsAnimating() {
		f.step(frame)
	}
	f.step(frame)
	assert.Equal(t, 60.0, f.camera.Azimuth())
}

func TestCameraSystem_ResetAndFocus(t *testing.T) {
	f := newCameraFixture(t, 6, time.Second)
	f.camera.RotateTo(4)
	assert.Equal(t, 4, f.camera.FocusedIndex())
	assert.Greater(t, f.camera.Remaining(), time.Duration(0))

	f.camera.StopAnimation()
	assert.Equal(t, 240.0, f.camera.Azimuth())
	assert.Equal(t, 4, f.camera.FocusedIndex())

	f.camera.Drag(-20)
	f.camera.EndDrag()
	assert.Equal(t, 4, f.camera.FocusedIndex())

	f.camera.Reset()
	assert.Equal(t, 0.0, f.camera.Azimuth())
	assert.False(t, f.camera.IsAnimating())
	assert.Equal(t, 0, f.camera.FocusedIndex())
}

func TestCameraSystem_SnapTo(t *testing.T) {
	f := newCameraFixture(t, 6, time.Second)
	f.camera.RotateTo(2)
	f.step(100 * time.Millisecond)

	require.True(t, f.camera.SnapTo(5))
	assert.False(t, f.camera.IsAnimating())
	assert.Equal(t, 300.0, f.camera.Azimuth())
	assert.Equal(t, 5, f.camera.FocusedIndex())

	assert.False(t, f.camera.SnapTo(6))
	assert.Equal(t, 300.0, f.camera.Azimuth())
}

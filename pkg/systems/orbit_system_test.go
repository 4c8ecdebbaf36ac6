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
	"github.com/gonewx/portfolio/pkg/event"
	"github.com/gonewx/portfolio/pkg/orbit"
)

type orbitFixture struct {
	*cameraFixture
	orbit  *OrbitSystem
	bus    *event.Bus
	router *event.Router
}

func newOrbitFixture(t *testing.T) *orbitFixture {
	t.Helper()
	cf := newCameraFixture(t, 6, time.Second)
	registry := newTestRegistry(t, 6)
	o := NewOrbitSystem(cf.em, registry, cf.camera, cf.camera.Profile())
	o.SetViewport(1024, 640)
	bus := event.NewBus()
	return &orbitFixture{
		cameraFixture: cf,
		orbit:         o,
		bus:           bus,
		router:        event.NewRouter(bus, registry),
	}
}

func (f *orbitFixture) rect(t *testing.T, index int) *components.ScreenRectComponent {
	t.Helper()
	r, ok := ecs.GetComponent[*components.ScreenRectComponent](f.em, f.orbit.Cards()[index])
	require.True(t, ok)
	return r
}

func (f *orbitFixture) state(t *testing.T, index int) orbit.State {
	t.Helper()
	s, ok := ecs.GetComponent[*components.OrbitStateComponent](f.em, f.orbit.Cards()[index])
	require.True(t, ok)
	return s.State
}

func TestOrbitSystem_SixCardsFacingFirst(t *testing.T) {
	f := newOrbitFixture(t)
	f.orbit.Update(1.0 / 60)

	require.Len(t, f.orbit.Cards(), 6)

	assert.False(t, f.state(t, 0).Occluded)
	assert.Equal(t, 1.0, f.state(t, 0).CenterProgress)
	assert.True(t, f.state(t, 3).Occluded)

	front := f.rect(t, 0)
	require.True(t, front.Visible)
	assert.InDelta(t, 512, front.X+front.Width/2, 1e-6)
	assert.InDelta(t, float64(f.camera.Profile().CardWidth), front.Width, 1e-6)
	assert.InDelta(t, float64(f.camera.Profile().CardHeight), front.Height, 1e-6)

	for _, i := range []int{2, 3, 4} {
		assert.False(t, f.rect(t, i).Visible, "card %d must be hidden", i)
	}

	right := f.rect(t, 1)
	left := f.rect(t, 5)
	require.True(t, right.Visible)
	require.True(t, left.Visible)
	assert.Greater(t, right.X, front.X)
	assert.Less(t, left.X, front.X)
	assert.InDelta(t, right.Opacity, left.Opacity, 1e-9)
	assert.Less(t, right.Width, front.Width)
}

func TestOrbitSystem_DrawOrderAndHitTest(t *testing.T) {
	f := newOrbitFixture(t)
	f.orbit.Update(1.0 / 60)

	visible := f.orbit.VisibleCards()
	require.Len(t, visible, 3)
	assert.Equal(t, f.orbit.Cards()[0], visible[len(visible)-1], "nearest card is drawn last")

	front := f.rect(t, 0)
	id, ok := f.orbit.HitTest(front.X+front.Width/2, front.Y+front.Height/2)
	require.True(t, ok)
	card, ok := f.orbit.CardAt(id)
	require.True(t, ok)
	assert.Equal(t, "card-0", card.ID)

	_, ok = f.orbit.HitTest(1, 1)
	assert.False(t, ok)
}

// 背面区卡片不参与点击检测
func TestOrbitSystem_OccludedExcluded(t *testing.T) {
	f := newOrbitFixture(t)
	for az := 0.0; az < 360; az += 7 {
		cam, _ := ecs.GetComponent[*components.CameraComponent](f.em, f.camera.Entity())
		cam.Azimuth = az
		f.orbit.Update(1.0 / 60)

		for i := range f.orbit.Cards() {
			st := f.state(t, i)
			r := f.rect(t, i)
			if st.Occluded || st.Opacity == 0 {
				assert.False(t, r.Visible, "az=%v card=%d", az, i)
				assert.False(t, r.Contains(r.X, r.Y))
			}
		}
	}
}

// 档位切换为非法半径时不产生 NaN
func TestOrbitSystem_DegenerateProfile(t *testing.T) {
	f := newOrbitFixture(t)
	p := config.ProfileFor(config.TierMedium)
	p.OrbitRadius = 0
	f.orbit.SetProfile(p)
	f.orbit.SetViewport(0, 0)
	f.orbit.Update(1.0 / 60)

	for i := range f.orbit.Cards() {
		r := f.rect(t, i)
		assert.False(t, math.IsNaN(r.X), "card %d", i)
		assert.False(t, math.IsNaN(r.Width), "card %d", i)
	}
	assert.Equal(t, orbit.DefaultRadius, orbit.WorldAnchor(0, f.orbit.Params())[2])
}

func TestOrbitSystem_Dispose(t *testing.T) {
	f := newOrbitFixture(t)
	before := f.em.Count()
	f.orbit.Dispose()
	assert.Equal(t, before-6, f.em.Count())
	assert.Empty(t, f.orbit.VisibleCards())
}

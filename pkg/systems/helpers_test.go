package systems

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/ecs"
	"github.com/gonewx/portfolio/pkg/game"
)

var testEpoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// newTestRegistry 创建 n 张均匀分布的卡片
func newTestRegistry(t *testing.T, n int) *config.CardRegistry {
	t.Helper()
	cfgs := make([]config.CardConfig, n)
	for i := range cfgs {
		cfgs[i] = config.CardConfig{ID: fmt.Sprintf("card-%d", i), Title: fmt.Sprintf("Card %d", i), Color: "#336699"}
	}
	r, err := config.NewCardRegistry(cfgs)
	require.NoError(t, err)
	return r
}

// testProfile 返回指定动画时长的 high 档参数
func testProfile(d time.Duration) config.QualityProfile {
	p := config.ProfileFor(config.TierHigh)
	p.AnimationDuration = d
	return p
}

type cameraFixture struct {
	em     *ecs.EntityManager
	clock  *game.ManualClock
	camera *CameraSystem
}

func newCameraFixture(t *testing.T, cards int, d time.Duration) *cameraFixture {
	t.Helper()
	em := ecs.NewEntityManager()
	clock := game.NewManualClock(testEpoch)
	return &cameraFixture{
		em:     em,
		clock:  clock,
		camera: NewCameraSystem(em, newTestRegistry(t, cards), clock, testProfile(d)),
	}
}

// step 推进时钟并执行一帧更新
func (f *cameraFixture) step(d time.Duration) {
	f.clock.Advance(d)
	f.camera.Update(d.Seconds())
}

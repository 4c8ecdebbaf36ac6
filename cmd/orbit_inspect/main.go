// orbit_inspect - 轨道几何检查工具
//
// 不打开窗口，直接打印每张卡片在给定相机方位角下的派生状态，
// 或模拟一次 rotateTo 动画并逐帧输出方位角。用于调校阈值和动画时长。
//
// 用法：
//
//	go run ./cmd/orbit_inspect --azimuth 30
//	go run ./cmd/orbit_inspect --from 0 --to 4 --tier medium --samples 10
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/ecs"
	"github.com/gonewx/portfolio/pkg/embedded"
	"github.com/gonewx/portfolio/pkg/game"
	"github.com/gonewx/portfolio/pkg/orbit"
	"github.com/gonewx/portfolio/pkg/systems"
)

func main() {
	root := flag.String("root", ".", "仓库根目录（包含 data/）")
	cardsPath := flag.String("cards", config.DefaultCardsPath, "卡片注册表路径")
	azimuth := flag.Float64("azimuth", 0, "相机方位角（度），未指定 --to 时使用")
	elapsed := flag.Float64("elapsed", 0, "场景经过时间（秒），影响中心卡片的呼吸浮动")
	from := flag.Int("from", 0, "rotateTo 起始卡片索引")
	to := flag.Int("to", -1, "rotateTo 目标卡片索引，-1 表示不模拟动画")
	tierName := flag.String("tier", "high", "画质档位 (low|medium|high)")
	samples := flag.Int("samples", 8, "动画采样次数")
	verbose := flag.Bool("verbose", false, "输出系统日志")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS(*root))
	registry, err := config.LoadCardRegistry(*cardsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载卡片失败: %v\n", err)
		os.Exit(1)
	}

	tier, err := config.ParseTier(*tierName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	profile := config.ProfileFor(tier)
	params := orbit.DefaultParams()
	params.Radius = profile.OrbitRadius

	if *to < 0 {
		printStates(registry, *azimuth, *elapsed, params)
		return
	}

	final, err := simulate(registry, tier, profile, *from, *to, *samples)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	printStates(registry, final, *elapsed, params)
}

// simulate 用手动时钟模拟 rotateTo，返回结束时的方位角
func simulate(registry *config.CardRegistry, tier config.Tier, profile config.QualityProfile, from, to, samples int) (float64, error) {
	if samples < 1 {
		samples = 1
	}
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := game.NewManualClock(epoch)
	camera := systems.NewCameraSystem(ecs.NewEntityManager(), registry, clock, profile)

	if !camera.SnapTo(from) {
		return 0, fmt.Errorf("起始索引越界: %d", from)
	}
	if !camera.RotateTo(to) {
		return 0, fmt.Errorf("目标索引越界: %d", to)
	}

	fmt.Printf("rotateTo %d → %d (tier %s, duration %v)\n", from, to, tier, profile.AnimationDuration)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "t\tazimuth\tanimating\tfocused")
	step := profile.AnimationDuration / time.Duration(samples)
	for i := 0; i <= samples; i++ {
		if i > 0 {
			clock.Advance(step)
		}
		camera.Update(0)
		fmt.Fprintf(w, "%v\t%.2f\t%v\t%d\n", clock.Now().Sub(epoch), camera.Azimuth(), camera.IsAnimating(), camera.FocusedIndex())
	}
	w.Flush()
	return camera.Azimuth(), nil
}

func printStates(registry *config.CardRegistry, azimuth, elapsed float64, params orbit.Params) {
	fmt.Printf("camera azimuth %.2f°, elapsed %.2fs, radius %.1f\n", orbit.NormalizeDegrees(azimuth), elapsed, params.Radius)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "idx\tid\tangle\tdist\tzone\tcenter\topacity\tscale\ty\tyaw")
	for _, card := range registry.Cards() {
		s := orbit.Evaluate(card.Angle, azimuth, elapsed, params)
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%.2f\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.1f\n",
			card.Index, card.ID, card.Angle, s.AngularDistance, s.Zone,
			s.CenterProgress, s.Opacity, s.Scale, s.Position[1], orbit.NormalizeDegrees(orbit.Rad2Deg(s.Yaw)))
	}
	w.Flush()
}

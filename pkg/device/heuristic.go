package device

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/utils"
)

// 检测阈值
const (
	LowCoreCount    = 2                     // 核心数 ≤ 2 视为低端
	LowMemoryBytes  = 2 << 30               // 内存 ≤ 2GB 视为低端
	BenchmarkIters  = 100000                // 基准测试迭代次数
	BenchmarkBudget = 50 * time.Millisecond // 基准测试超过该耗时视为低端
	meminfoPath     = "/proc/meminfo"
)

// ErrMemoryUnknown 无法获取内存容量
var ErrMemoryUnknown = errors.New("memory size unknown")

// HeuristicProvider 基于启发式规则的档位检测
//
// 规则：
//   - 移动设备或窄视口 → medium
//   - 核心数 ≤ 2、内存 ≤ 2GB 或基准测试超过 50ms → low
//   - 其余 → high
//
// 各探针均可替换，便于测试。内存未知时不参与判断。
type HeuristicProvider struct {
	CPUs          func() int
	MemoryBytes   func() (uint64, error)
	Mobile        func() bool
	Benchmark     func() time.Duration
	ViewportWidth int // 逻辑视口宽度，0 表示未知
}

// NewHeuristicProvider 创建使用真实探针的检测器
func NewHeuristicProvider() *HeuristicProvider {
	return &HeuristicProvider{
		CPUs:        runtime.NumCPU,
		MemoryBytes: SystemMemory,
		Mobile:      utils.IsMobile,
		Benchmark:   RunBenchmark,
	}
}

// SetViewport 更新视口宽度（窗口尺寸变化时调用）
func (h *HeuristicProvider) SetViewport(width int) {
	h.ViewportWidth = width
}

// Tier 实现 Provider 接口
func (h *HeuristicProvider) Tier() (config.Tier, error) {
	if h.Mobile != nil && h.Mobile() {
		return config.TierMedium, nil
	}
	if h.ViewportWidth > 0 && h.ViewportWidth < config.NarrowViewportWidth {
		return config.TierMedium, nil
	}

	if h.CPUs != nil && h.CPUs() <= LowCoreCount {
		return config.TierLow, nil
	}

	if h.MemoryBytes != nil {
		mem, err := h.MemoryBytes()
		switch {
		case errors.Is(err, ErrMemoryUnknown):
		case err != nil:
			return config.TierLow, fmt.Errorf("memory probe: %w", err)
		case mem <= LowMemoryBytes:
			return config.TierLow, nil
		}
	}

	if h.Benchmark != nil && h.Benchmark() > BenchmarkBudget {
		return config.TierLow, nil
	}

	return config.TierHigh, nil
}

// benchSink 防止编译器优化掉基准测试循环
var benchSink float64

// RunBenchmark 执行 sqrt·sin 微基准测试并返回耗时
func RunBenchmark() time.Duration {
	start := time.Now()
	var acc float64
	for i := 0; i < BenchmarkIters; i++ {
		acc += math.Sqrt(float64(i)) * math.Sin(float64(i))
	}
	benchSink = acc
	return time.Since(start)
}

// SystemMemory 读取系统内存总量
//
// 仅 Linux/Android 可读 /proc/meminfo，其他平台返回 ErrMemoryUnknown。
func SystemMemory() (uint64, error) {
	data, err := os.ReadFile(meminfoPath)
	if err != nil {
		return 0, ErrMemoryUnknown
	}
	return parseMeminfo(data)
}

// parseMeminfo 解析 MemTotal 行（单位 kB）
func parseMeminfo(data []byte) (uint64, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, "MemTotal:"))
		if len(fields) == 0 {
			break
		}
		kb, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse MemTotal %q: %w", fields[0], err)
		}
		return kb * 1024, nil
	}
	return 0, ErrMemoryUnknown
}

var _ ViewportAware = (*HeuristicProvider)(nil)

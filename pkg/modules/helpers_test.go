package modules

import (
	"fmt"
	"testing"

	"github.com/gonewx/portfolio/pkg/config"
)

// newTestRegistry 创建 n 张卡片的注册表，id 为 card-0..card-(n-1)
func newTestRegistry(t *testing.T, n int) *config.CardRegistry {
	t.Helper()
	cfgs := make([]config.CardConfig, n)
	for i := range cfgs {
		cfgs[i] = config.CardConfig{
			ID:          fmt.Sprintf("card-%d", i),
			Title:       fmt.Sprintf("Card %d", i),
			Description: "A short description of the card",
			Color:       "#336699",
			Body:        []string{"First paragraph.", "Second paragraph."},
		}
	}
	r, err := config.NewCardRegistry(cfgs)
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	return r
}

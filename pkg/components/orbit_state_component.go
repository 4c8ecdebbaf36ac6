package components

import "github.com/gonewx/portfolio/pkg/orbit"

// OrbitStateComponent 卡片本帧的派生状态
//
// 由 OrbitSystem 每帧完整重算，不跨帧保留任何值。
type OrbitStateComponent struct {
	orbit.State
}

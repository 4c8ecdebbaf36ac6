// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// ============================================================================
// 拖拽状态管理器 - 用于轨道相机的拖拽旋转与点击判定
// ============================================================================

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// DragInfo 拖拽信息
type DragInfo struct {
	// State 当前拖拽状态
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置（屏幕坐标）
	CurrentX, CurrentY int
	// TouchID 当前跟踪的触摸ID（-1表示鼠标）
	TouchID ebiten.TouchID
	// IsTouchInput 是否为触摸输入（区分触摸和鼠标）
	IsTouchInput bool
}

// DragDistance 获取拖拽距离（从起点到当前位置）
func (i DragInfo) DragDistance() (dx, dy int) {
	return i.CurrentX - i.StartX, i.CurrentY - i.StartY
}

// Scaled 将屏幕像素坐标换算为逻辑坐标（除以渲染倍率）
func (i DragInfo) Scaled(ratio float64) DragInfo {
	if !(ratio > 0) || ratio == 1 {
		return i
	}
	conv := func(v int) int { return int(math.Round(float64(v) / ratio)) }
	i.StartX, i.StartY = conv(i.StartX), conv(i.StartY)
	i.CurrentX, i.CurrentY = conv(i.CurrentX), conv(i.CurrentY)
	return i
}

// DragManager 拖拽管理器
// 跟踪触摸/鼠标的拖拽状态
type DragManager struct {
	info         DragInfo
	lastTouchIDs []ebiten.TouchID
}

// NewDragManager 创建拖拽管理器
//
// 每个需要拖拽的场景持有自己的实例，场景切换时不会残留上一个场景的手势。
func NewDragManager() *DragManager {
	return &DragManager{
		info: DragInfo{
			State:   DragStateNone,
			TouchID: -1,
		},
	}
}

// Update 更新拖拽状态（每帧调用一次）
func (dm *DragManager) Update() {
	// 获取当前触摸ID列表
	currentTouchIDs := ebiten.AppendTouchIDs(nil)

	switch dm.info.State {
	case DragStateNone:
		// 检测新的拖拽开始
		dm.checkDragStart(currentTouchIDs)

	case DragStateStarted:
		// 从开始状态转换到拖拽中
		dm.info.State = DragStateDragging
		dm.updateCurrentPosition(currentTouchIDs)

	case DragStateDragging:
		// 检测拖拽结束或更新位置
		if dm.checkDragEnd(currentTouchIDs) {
			dm.info.State = DragStateEnded
		} else {
			dm.updateCurrentPosition(currentTouchIDs)
		}

	case DragStateEnded:
		// 结束状态只持续一帧，下一帧重置
		dm.Reset()
	}

	// 保存当前触摸ID列表用于下一帧比较
	dm.lastTouchIDs = make([]ebiten.TouchID, len(currentTouchIDs))
	copy(dm.lastTouchIDs, currentTouchIDs)
}

// checkDragStart 检测拖拽开始
func (dm *DragManager) checkDragStart(currentTouchIDs []ebiten.TouchID) {
	// 优先检测触摸输入
	justPressedTouchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(justPressedTouchIDs) > 0 {
		touchID := justPressedTouchIDs[0]
		x, y := ebiten.TouchPosition(touchID)
		dm.info = DragInfo{
			State:        DragStateStarted,
			StartX:       x,
			StartY:       y,
			CurrentX:     x,
			CurrentY:     y,
			TouchID:      touchID,
			IsTouchInput: true,
		}
		return
	}

	// 检测鼠标输入
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		dm.info = DragInfo{
			State:        DragStateStarted,
			StartX:       x,
			StartY:       y,
			CurrentX:     x,
			CurrentY:     y,
			TouchID:      -1,
			IsTouchInput: false,
		}
	}
}

// checkDragEnd 检测拖拽结束
func (dm *DragManager) checkDragEnd(currentTouchIDs []ebiten.TouchID) bool {
	if dm.info.IsTouchInput {
		// 检测触摸释放
		for _, id := range currentTouchIDs {
			if id == dm.info.TouchID {
				return false // 触摸仍然活跃
			}
		}
		return true // 触摸已释放
	}

	// 检测鼠标释放
	return !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// updateCurrentPosition 更新当前位置
func (dm *DragManager) updateCurrentPosition(currentTouchIDs []ebiten.TouchID) {
	if dm.info.IsTouchInput {
		// 更新触摸位置
		for _, id := range currentTouchIDs {
			if id == dm.info.TouchID {
				dm.info.CurrentX, dm.info.CurrentY = ebiten.TouchPosition(id)
				return
			}
		}
	} else {
		// 更新鼠标位置
		dm.info.CurrentX, dm.info.CurrentY = ebiten.CursorPosition()
	}
}

// Reset 重置拖拽状态
func (dm *DragManager) Reset() {
	dm.info = DragInfo{
		State:   DragStateNone,
		TouchID: -1,
	}
}

// GetInfo 获取完整拖拽信息
func (dm *DragManager) GetInfo() DragInfo {
	return dm.info
}

// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RawPointer 某一帧的原始指针输入
// 由 ebiten 采集，测试中可以直接构造
type RawPointer struct {
	// Touching 是否有活动的触摸
	Touching bool
	// TouchX, TouchY 第一个触摸点位置
	TouchX, TouchY int
	// MouseX, MouseY 鼠标位置
	MouseX, MouseY int
	// MousePressed 鼠标左键是否按下
	MousePressed bool
}

// PointerState 统一的指针状态（鼠标和触摸）
type PointerState struct {
	// Pressed 是否按下（鼠标左键或触摸）
	Pressed bool
	// X, Y 指针位置（屏幕坐标）
	X, Y int
	// Touch 当前指针是否来自触摸
	Touch bool
	// JustPressed 本帧刚按下
	JustPressed bool
	// JustReleased 本帧刚释放
	JustReleased bool
}

// PointerTracker 指针状态跟踪器
//
// 每个使用者持有自己的实例，不共享全局状态。
// 触摸释放后 ebiten 不再报告触摸位置，跟踪器保留最后的触摸位置，
// 并在鼠标移动或按下之前保持触摸模式（移动设备上鼠标位置没有意义）。
type PointerTracker struct {
	prev                   PointerState
	lastTouchX, lastTouchY int
	lastMouseX, lastMouseY int
	mouseSeen              bool
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{}
}

// Poll 读取 ebiten 当前输入并更新状态（每帧调用一次）
func (pt *PointerTracker) Poll() PointerState {
	raw := RawPointer{}
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		raw.Touching = true
		raw.TouchX, raw.TouchY = ebiten.TouchPosition(touchIDs[0])
	}
	raw.MouseX, raw.MouseY = ebiten.CursorPosition()
	raw.MousePressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return pt.Observe(raw)
}

// Observe 根据原始输入计算本帧的指针状态
//
// 优先级：活动触摸 > 刚结束的触摸（沿用最后位置）> 鼠标
func (pt *PointerTracker) Observe(raw RawPointer) PointerState {
	var state PointerState

	mouseMoved := !pt.mouseSeen || raw.MouseX != pt.lastMouseX || raw.MouseY != pt.lastMouseY
	pt.lastMouseX, pt.lastMouseY = raw.MouseX, raw.MouseY
	pt.mouseSeen = true

	switch {
	case raw.Touching:
		pt.lastTouchX, pt.lastTouchY = raw.TouchX, raw.TouchY
		state = PointerState{Pressed: true, X: raw.TouchX, Y: raw.TouchY, Touch: true}
	case pt.prev.Touch && !raw.MousePressed && !mouseMoved:
		state = PointerState{X: pt.lastTouchX, Y: pt.lastTouchY, Touch: true}
	default:
		state = PointerState{Pressed: raw.MousePressed, X: raw.MouseX, Y: raw.MouseY}
	}

	state.JustPressed = state.Pressed && !pt.prev.Pressed
	state.JustReleased = !state.Pressed && pt.prev.Pressed
	pt.prev = state
	return state
}

// Last 返回最近一次计算的状态
func (pt *PointerTracker) Last() PointerState {
	return pt.prev
}

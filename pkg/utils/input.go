// Package utils 提供输入与平台相关的工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerZone 点击/触摸在屏幕上的水平区域
// 触摸设备没有键盘，用三等分区域代替方向键和 Tab。
type PointerZone int

const (
	ZoneNone     PointerZone = iota
	ZoneDecrease             // 左侧三分之一：减小选中的控件
	ZoneSelect               // 中间三分之一：切换选中的控件
	ZoneIncrease             // 右侧三分之一：增大选中的控件
)

// ZoneAt 根据点击位置和屏幕宽度返回所在区域
//
// 参数:
//   - x: 点击位置的X坐标
//   - width: 屏幕宽度
//
// 返回:
//   - PointerZone: 宽度非正或 x 在屏幕外时返回 ZoneNone
func ZoneAt(x, width int) PointerZone {
	if width <= 0 || x < 0 || x >= width {
		return ZoneNone
	}
	switch third := x * 3 / width; third {
	case 0:
		return ZoneDecrease
	case 1:
		return ZoneSelect
	default:
		return ZoneIncrease
	}
}

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

// JustPressedZone 本帧刚发生的点击/触摸所在区域，没有点击时返回 ZoneNone
func JustPressedZone(width int) PointerZone {
	pressed, x, _ := IsJustTouchedOrClicked()
	if !pressed {
		return ZoneNone
	}
	return ZoneAt(x, width)
}

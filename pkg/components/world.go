package components

// WorldComponent 世界边界（由前端在窗口大小变化时更新，核心只读）
type WorldComponent struct {
	Width  float64
	Height float64
}

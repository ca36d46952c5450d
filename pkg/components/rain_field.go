package components

// RainFieldComponent 保存所有活跃雨滴（结构数组布局）
//
// X、Y 是平行数组：下标 i 在两个数组中始终对应同一个雨滴。
// PrevY 是推进阶段拍下的本帧移动前Y坐标快照，在同一帧内与 X、Y 保持平行。
// 所有删除都必须通过 Remove 同时作用于三个数组。
type RainFieldComponent struct {
	X     []float64
	Y     []float64
	PrevY []float64

	// SpawnAccumulator 小数累加器：每帧累加 spawnRate*dt，满 1 生成一个雨滴
	SpawnAccumulator float64
}

// NewRainField 创建空雨滴集合
func NewRainField(capacity int) *RainFieldComponent {
	return &RainFieldComponent{
		X:     make([]float64, 0, capacity),
		Y:     make([]float64, 0, capacity),
		PrevY: make([]float64, 0, capacity),
	}
}

// Len 活跃雨滴数量
func (r *RainFieldComponent) Len() int {
	return len(r.X)
}

// Add 添加一个雨滴
//
// 新雨滴的 PrevY 等于 Y（本帧尚未移动）。
func (r *RainFieldComponent) Add(x, y float64) {
	r.X = append(r.X, x)
	r.Y = append(r.Y, y)
	r.PrevY = append(r.PrevY, y)
}

// SnapshotPrevY 记录本帧移动前的Y坐标
func (r *RainFieldComponent) SnapshotPrevY() {
	r.PrevY = append(r.PrevY[:0], r.Y...)
}

// Remove 删除下标 i 的雨滴，保持其余雨滴的相对顺序
//
// 倒序遍历时删除当前下标不会影响尚未访问的较小下标。
func (r *RainFieldComponent) Remove(i int) {
	r.X = append(r.X[:i], r.X[i+1:]...)
	r.Y = append(r.Y[:i], r.Y[i+1:]...)
	if i < len(r.PrevY) {
		r.PrevY = append(r.PrevY[:i], r.PrevY[i+1:]...)
	}
}

// Clear 删除所有雨滴（保留容量）
func (r *RainFieldComponent) Clear() {
	r.X = r.X[:0]
	r.Y = r.Y[:0]
	r.PrevY = r.PrevY[:0]
	r.SpawnAccumulator = 0
}

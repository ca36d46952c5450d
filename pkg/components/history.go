package components

import "github.com/gonewx/raindrops/pkg/geometry"

// HitEvent 一次被记录的雨滴撞击
type HitEvent struct {
	Time float64 // 秒
	Side geometry.Side
}

// MovementSample 障碍物某一帧的名义位移
type MovementSample struct {
	Time     float64
	Distance float64 // 像素
}

// FrameTimeSample 某一帧的处理耗时
type FrameTimeSample struct {
	Time    float64
	Latency float64 // 毫秒
}

// Timed 所有历史记录的公共约束：带时间戳
type Timed interface {
	timestamp() float64
}

func (e HitEvent) timestamp() float64        { return e.Time }
func (s MovementSample) timestamp() float64  { return s.Time }
func (s FrameTimeSample) timestamp() float64 { return s.Time }

// History 只追加、按时间淘汰的记录
type History[T Timed] struct {
	entries []T
}

// Append 追加一条记录
func (h *History[T]) Append(e T) {
	h.entries = append(h.entries, e)
}

// Prune 删除时间戳早于 cutoff 的记录，保留其余记录的顺序
func (h *History[T]) Prune(cutoff float64) {
	n := 0
	for _, e := range h.entries {
		if e.timestamp() >= cutoff {
			h.entries[n] = e
			n++
		}
	}
	clear(h.entries[n:])
	h.entries = h.entries[:n]
}

// Len 记录条数
func (h *History[T]) Len() int {
	return len(h.entries)
}

// Entries 返回当前记录（只读，调用方不得修改）
func (h *History[T]) Entries() []T {
	return h.entries
}

// Reset 清空记录
func (h *History[T]) Reset() {
	clear(h.entries)
	h.entries = h.entries[:0]
}

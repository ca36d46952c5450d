package systems

import (
	"fmt"

	"github.com/gonewx/raindrops/pkg/components"
	"github.com/gonewx/raindrops/pkg/geometry"
)

// 统计默认参数
const (
	DefaultStatsWindow   = 5.0 // 秒
	DefaultStatsInterval = 0.1 // 秒
)

// Stats 一次统计更新的结果
type Stats struct {
	HitsPerSecond      float64
	HitsPer100Distance float64
	// SidePercent 各边命中百分比，下标为 geometry.Side
	SidePercent  [5]float64
	AvgFrameTime float64 // 毫秒

	Counts StatsCounts
}

// StatsCounts 窗口内的原始计数
type StatsCounts struct {
	Hits         int
	Distance     float64
	FrameSamples int
}

// StatsText 供显示层使用的格式化结果
type StatsText struct {
	HitsPerSecond string
	HitsPer100    string
	LeftPercent   string
	TopPercent    string
	RightPercent  string
	AvgFrameTime  string
}

// Percent 返回某条边的命中百分比
func (s Stats) Percent(side geometry.Side) float64 {
	return s.SidePercent[side]
}

// Format 按固定精度格式化：速率保留2位，百分比与帧时间保留1位
func (s Stats) Format() StatsText {
	return StatsText{
		HitsPerSecond: fmt.Sprintf("%.2f", s.HitsPerSecond),
		HitsPer100:    fmt.Sprintf("%.2f", s.HitsPer100Distance),
		LeftPercent:   fmt.Sprintf("%.1f", s.Percent(geometry.SideLeft)),
		TopPercent:    fmt.Sprintf("%.1f", s.Percent(geometry.SideTop)),
		RightPercent:  fmt.Sprintf("%.1f", s.Percent(geometry.SideRight)),
		AvgFrameTime:  fmt.Sprintf("%.1f", s.AvgFrameTime),
	}
}

// StatsSystem 滚动时间窗口统计
//
// 维护三份只追加、按时间淘汰的历史：撞击、障碍物位移、帧耗时。
// 是这三份历史唯一的写入者。
type StatsSystem struct {
	window   float64
	interval float64

	hits   components.History[components.HitEvent]
	moves  components.History[components.MovementSample]
	frames components.History[components.FrameTimeSample]

	lastUpdate float64
	latest     Stats
}

// NewStatsSystem 创建统计系统
//
// 参数:
//   - window: 统计窗口长度（秒），<= 0 时使用默认值 5 秒
//   - interval: 两次统计更新之间的最小间隔（秒），< 0 时使用默认值 0.1 秒
func NewStatsSystem(window, interval float64) *StatsSystem {
	if window <= 0 {
		window = DefaultStatsWindow
	}
	if interval < 0 {
		interval = DefaultStatsInterval
	}
	return &StatsSystem{
		window:   window,
		interval: interval,
	}
}

// Window 统计窗口长度（秒）
func (s *StatsSystem) Window() float64 {
	return s.window
}

// RecordHit 记录一次撞击
func (s *StatsSystem) RecordHit(now float64, side geometry.Side) {
	s.hits.Append(components.HitEvent{Time: now, Side: side})
}

// RecordMovement 记录障碍物本帧位移
func (s *StatsSystem) RecordMovement(now, distance float64) {
	s.moves.Append(components.MovementSample{Time: now, Distance: distance})
}

// RecordFrameTime 记录帧耗时（毫秒）
func (s *StatsSystem) RecordFrameTime(now, latencyMs float64) {
	s.frames.Append(components.FrameTimeSample{Time: now, Latency: latencyMs})
}

// Prune 删除早于 now - window 的所有记录
func (s *StatsSystem) Prune(now float64) {
	cutoff := now - s.window
	s.hits.Prune(cutoff)
	s.moves.Prune(cutoff)
	s.frames.Prune(cutoff)
}

// Update 限频更新统计
//
// 距上次更新不足 interval 时不做任何事。
//
// 参数:
//   - now: 当前时间（秒）
//
// 返回:
//   - Stats: 最新统计（未更新时为上一次的结果）
//   - bool: 本次是否进行了更新
func (s *StatsSystem) Update(now float64) (Stats, bool) {
	if now-s.lastUpdate < s.interval {
		return s.latest, false
	}
	s.lastUpdate = now

	s.Prune(now)
	s.latest = s.compute()
	return s.latest, true
}

// Latest 最近一次更新的统计结果
func (s *StatsSystem) Latest() Stats {
	return s.latest
}

// Hits 当前窗口内的撞击记录（只读）
func (s *StatsSystem) Hits() []components.HitEvent {
	return s.hits.Entries()
}

// HistoryLens 返回三份历史的长度（撞击、位移、帧耗时）
func (s *StatsSystem) HistoryLens() (hits, moves, frames int) {
	return s.hits.Len(), s.moves.Len(), s.frames.Len()
}

// Reset 清空所有历史并重置限频时间
func (s *StatsSystem) Reset() {
	s.hits.Reset()
	s.moves.Reset()
	s.frames.Reset()
	s.lastUpdate = 0
	s.latest = Stats{}
}

func (s *StatsSystem) compute() Stats {
	var st Stats

	hitCount := s.hits.Len()
	st.Counts.Hits = hitCount
	st.HitsPerSecond = float64(hitCount) / s.window

	for _, m := range s.moves.Entries() {
		st.Counts.Distance += m.Distance
	}
	if st.Counts.Distance != 0 {
		st.HitsPer100Distance = float64(hitCount) / (st.Counts.Distance / 100)
	}

	if hitCount > 0 {
		var perSide [5]int
		for _, h := range s.hits.Entries() {
			perSide[h.Side]++
		}
		for _, side := range geometry.AllSides {
			st.SidePercent[side] = float64(perSide[side]) / float64(hitCount) * 100
		}
	}

	frames := s.frames.Entries()
	st.Counts.FrameSamples = len(frames)
	if len(frames) > 0 {
		total := 0.0
		for _, f := range frames {
			total += f.Latency
		}
		st.AvgFrameTime = total / float64(len(frames))
	}

	return st
}

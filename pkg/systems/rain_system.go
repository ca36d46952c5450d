package systems

import (
	"math/rand"

	"github.com/gonewx/raindrops/pkg/components"
)

// RainSystem 管理雨滴的生成、下落和越界清理
//
// 生成使用小数累加器：每帧累加 spawnRate*dt，每满 1 生成一个雨滴。
// 长期来看期望生成速率精确，且不受帧间隔不均的影响。
type RainSystem struct {
	field *components.RainFieldComponent
	world *components.WorldComponent
	rng   *rand.Rand

	SpawnRate  float64 // 雨滴/秒
	FallSpeed  float64 // 像素/秒
	DropLength float64 // 像素，新雨滴生成在 y = -DropLength
}

// NewRainSystem 创建雨滴系统
//
// 参数:
//   - field: 雨滴集合
//   - world: 世界边界
//   - rng: 随机数源（测试时传入固定种子）
//   - spawnRate: 每秒生成雨滴数
//   - fallSpeed: 下落速度（像素/秒）
//   - dropLength: 雨滴长度（像素）
func NewRainSystem(field *components.RainFieldComponent, world *components.WorldComponent, rng *rand.Rand,
	spawnRate, fallSpeed, dropLength float64) *RainSystem {
	return &RainSystem{
		field:      field,
		world:      world,
		rng:        rng,
		SpawnRate:  spawnRate,
		FallSpeed:  fallSpeed,
		DropLength: dropLength,
	}
}

// Update 生成、推进并清理雨滴
func (s *RainSystem) Update(dt float64) {
	s.Spawn(dt)
	s.Advance(dt)
	s.Cull()
}

// Spawn 根据累加器生成雨滴
//
// 返回:
//   - int: 本帧生成的雨滴数
func (s *RainSystem) Spawn(dt float64) int {
	f := s.field
	f.SpawnAccumulator += s.SpawnRate * dt

	spawned := 0
	for f.SpawnAccumulator >= 1 {
		f.Add(s.rng.Float64()*s.world.Width, -s.DropLength)
		f.SpawnAccumulator--
		spawned++
	}
	return spawned
}

// Advance 拍下Y坐标快照后推进所有雨滴
func (s *RainSystem) Advance(dt float64) {
	f := s.field
	f.SnapshotPrevY()

	dy := s.FallSpeed * dt
	for i := range f.Y {
		f.Y[i] += dy
	}
}

// Cull 删除越过世界下边界的雨滴
//
// 返回:
//   - int: 删除的雨滴数
func (s *RainSystem) Cull() int {
	f := s.field
	removed := 0
	for i := f.Len() - 1; i >= 0; i-- {
		if f.Y[i] > s.world.Height {
			f.Remove(i)
			removed++
		}
	}
	return removed
}

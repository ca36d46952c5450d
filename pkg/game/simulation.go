package game

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/gonewx/raindrops/pkg/components"
	"github.com/gonewx/raindrops/pkg/config"
	"github.com/gonewx/raindrops/pkg/systems"
)

// FrameResult 一帧模拟的结果
type FrameResult struct {
	Dt           float64
	Wrapped      bool
	Spawned      int
	Culled       int
	Collisions   []systems.Collision // 在下一帧复用，调用方不得保留
	Stats        systems.Stats
	StatsUpdated bool
}

// Simulation 模拟状态与按固定顺序执行的帧管线
//
// 每帧依次执行：障碍物运动 → 雨滴生成/推进/清理 → 碰撞检测 → 帧耗时记录 → 统计更新，
// 每个阶段都看到上一阶段完全结束后的状态。
//
// Simulation 不是并发安全的，只能在前端的帧循环中调用。
type Simulation struct {
	cfg *config.SimulationConfig

	World    *components.WorldComponent
	Obstacle *components.ObstacleComponent
	Rain     *components.RainFieldComponent

	motionSystem    *systems.ObstacleMotionSystem
	rainSystem      *systems.RainSystem
	collisionSystem *systems.CollisionSystem
	statsSystem     *systems.StatsSystem

	controls Controls

	// clock 用于测量帧处理耗时，测试中可替换
	clock func() time.Time

	lastTimestamp float64
	hasTimestamp  bool

	onStats func(systems.StatsText)
}

// NewSimulation 根据配置创建模拟
//
// 参数:
//   - cfg: 已验证的配置
//   - rng: 随机数源，为 nil 时根据 cfg.Seed 创建（Seed 为 0 时使用当前时间）
//
// 返回:
//   - *Simulation: 障碍物位于最左侧、垂直居中
func NewSimulation(cfg *config.SimulationConfig, rng *rand.Rand) *Simulation {
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	world := &components.WorldComponent{Width: cfg.World.Width, Height: cfg.World.Height}
	obstacle := components.NewObstacle(
		cfg.Obstacle.Width,
		cfg.Obstacle.Height,
		cfg.Obstacle.AngleDegrees*math.Pi/180,
		cfg.PixelsPerSecond(cfg.Obstacle.Speed),
	)
	obstacle.PlaceAtLeft()
	obstacle.CenterVertically(world.Height)

	rain := components.NewRainField(initialRainCapacity(cfg))
	stats := systems.NewStatsSystem(cfg.Stats.WindowSeconds, cfg.Stats.UpdateIntervalSeconds)

	sim := &Simulation{
		cfg:      cfg,
		World:    world,
		Obstacle: obstacle,
		Rain:     rain,

		motionSystem: systems.NewObstacleMotionSystem(obstacle, world, stats),
		rainSystem: systems.NewRainSystem(rain, world, rng,
			cfg.Rain.SpawnRate, cfg.PixelsPerSecond(cfg.Rain.FallSpeed), cfg.Rain.DropLength),
		collisionSystem: systems.NewCollisionSystem(obstacle, rain, stats),
		statsSystem:     stats,

		controls: DefaultControls(cfg),
		clock:    time.Now,
	}

	log.Printf("[Simulation] Created: world=%.0fx%.0f obstacle=%.0fx%.0f spawnRate=%.0f/s",
		world.Width, world.Height, obstacle.Width, obstacle.Height, cfg.Rain.SpawnRate)
	return sim
}

// maxInitialRainCapacity 雨滴数组预分配上限
const maxInitialRainCapacity = 1 << 16

// initialRainCapacity 估算同时存活的雨滴数：生成速率 × 下落穿过世界所需时间
func initialRainCapacity(cfg *config.SimulationConfig) int {
	fall := cfg.PixelsPerSecond(cfg.Rain.FallSpeed)
	if fall <= 0 {
		return 0
	}
	estimate := cfg.Rain.SpawnRate * (cfg.World.Height + cfg.Rain.DropLength) / fall
	if !(estimate > 0) {
		return 0
	}
	if estimate > maxInitialRainCapacity {
		return maxInitialRainCapacity
	}
	return int(estimate) + 1
}

// Config 当前配置
func (s *Simulation) Config() *config.SimulationConfig {
	return s.cfg
}

// Stats 统计系统（只读访问）
func (s *Simulation) Stats() *systems.StatsSystem {
	return s.statsSystem
}

// Controls 当前控件值
func (s *Simulation) Controls() Controls {
	return s.controls
}

// SetClock 替换用于测量帧耗时的时钟
func (s *Simulation) SetClock(clock func() time.Time) {
	s.clock = clock
}

// OnStats 注册统计更新回调（每次统计实际更新时调用一次）
func (s *Simulation) OnStats(fn func(systems.StatsText)) {
	s.onStats = fn
}

// ApplyControls 应用已验证的控件值
//
// 速度从 米/秒 换算为 像素/秒，角度从度换算为弧度；
// 角度变化立即刷新障碍物的三角函数缓存并在必要时贴边。
// 非法的控件值会被拒绝并保留当前值。
func (s *Simulation) ApplyControls(c Controls) error {
	if err := c.Validate(); err != nil {
		return err
	}

	s.rainSystem.FallSpeed = s.cfg.PixelsPerSecond(c.RainSpeed)
	s.Obstacle.Speed = s.cfg.PixelsPerSecond(c.ObstacleSpeed)
	if angle := c.AngleDegrees * math.Pi / 180; angle != s.Obstacle.Angle {
		s.Obstacle.SetAngle(angle, s.World.Width)
	}
	s.controls = c
	return nil
}

// SetWorldSize 更新世界边界（窗口大小变化）
//
// 障碍物随之重新垂直居中，并在超出右边界时贴边放回。
func (s *Simulation) SetWorldSize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == s.World.Width && height == s.World.Height {
		return
	}
	s.World.Width = width
	s.World.Height = height
	s.Obstacle.CenterVertically(height)
	s.Obstacle.ClampRight(width)
	log.Printf("[Simulation] World resized to %.0fx%.0f", width, height)
}

// ResetClock 重置上一帧时间戳
//
// 暂停或窗口重新获得焦点后调用，避免下一帧的 dt 过大导致穿透和生成尖峰。
func (s *Simulation) ResetClock(now float64) {
	s.lastTimestamp = now
	s.hasTimestamp = true
}

// Tick 根据帧时间戳推进模拟
//
// dt = now - 上一帧时间戳，并被限制在 [0, MaxDeltaTime] 内。
// 第一次调用时 dt 为 0。
//
// 参数:
//   - now: 当前时间戳（秒）
func (s *Simulation) Tick(now float64) FrameResult {
	if !s.hasTimestamp {
		s.ResetClock(now)
	}

	dt := now - s.lastTimestamp
	s.lastTimestamp = now
	if dt < 0 {
		dt = 0
	}
	if maxDt := s.cfg.Timing.MaxDeltaTime; maxDt > 0 && dt > maxDt {
		dt = maxDt
	}

	return s.Advance(dt, now)
}

// Advance 按固定顺序推进一帧
//
// 参数:
//   - dt: 帧间隔（秒），调用方负责保证其合理
//   - now: 当前时间戳（秒），用于所有历史记录
func (s *Simulation) Advance(dt, now float64) FrameResult {
	start := s.clock()

	s.motionSystem.Update(dt, now)

	spawned := s.rainSystem.Spawn(dt)
	s.rainSystem.Advance(dt)
	culled := s.rainSystem.Cull()

	collisions := s.collisionSystem.Update(now)

	latency := s.clock().Sub(start)
	s.statsSystem.RecordFrameTime(now, float64(latency)/float64(time.Millisecond))

	stats, updated := s.statsSystem.Update(now)
	if updated && s.onStats != nil {
		s.onStats(stats.Format())
	}

	return FrameResult{
		Dt:           dt,
		Wrapped:      s.Obstacle.DidWrap,
		Spawned:      spawned,
		Culled:       culled,
		Collisions:   collisions,
		Stats:        stats,
		StatsUpdated: updated,
	}
}

// Reset 清空雨滴和统计，障碍物回到最左侧
func (s *Simulation) Reset() {
	s.Rain.Clear()
	s.statsSystem.Reset()
	s.Obstacle.PlaceAtLeft()
	s.Obstacle.DidWrap = false
	s.hasTimestamp = false
	log.Printf("[Simulation] Reset")
}

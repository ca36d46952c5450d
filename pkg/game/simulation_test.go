package game

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/gonewx/raindrops/pkg/config"
	"github.com/gonewx/raindrops/pkg/geometry"
	"github.com/gonewx/raindrops/pkg/systems"
)

func newTestSimulation() *Simulation {
	return NewSimulation(config.DefaultSimulationConfig(), rand.New(rand.NewSource(1)))
}

// fakeClock 每次调用前进 step
func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestNewSimulationPlacement(t *testing.T) {
	sim := newTestSimulation()

	if sim.Obstacle.X != 0 {
		t.Errorf("Obstacle.X = %v, want 0", sim.Obstacle.X)
	}
	if sim.Obstacle.Y != 260 {
		t.Errorf("Obstacle.Y = %v, want 260", sim.Obstacle.Y)
	}
	if sim.Obstacle.Speed != 100 {
		t.Errorf("Obstacle.Speed = %v px/s, want 100", sim.Obstacle.Speed)
	}
	if sim.rainSystem.FallSpeed != 1000 {
		t.Errorf("FallSpeed = %v px/s, want 1000", sim.rainSystem.FallSpeed)
	}
	if sim.Rain.Len() != 0 {
		t.Errorf("Rain.Len() = %d, want 0", sim.Rain.Len())
	}
}

// TestSimulationParallelArrays 随机帧序列下三个并行数组长度始终一致
func TestSimulationParallelArrays(t *testing.T) {
	sim := newTestSimulation()
	sim.SetClock(fakeClock(time.Millisecond))
	r := rand.New(rand.NewSource(42))

	now := 0.0
	totalHits := 0
	for frame := 0; frame < 600; frame++ {
		if frame%97 == 0 {
			c := Controls{
				RainSpeed:     0.5 + r.Float64()*20,
				ObstacleSpeed: r.Float64()*10 - 5,
				AngleDegrees:  r.Float64()*360 - 180,
			}
			if err := sim.ApplyControls(c); err != nil {
				t.Fatalf("ApplyControls(%+v) error: %v", c, err)
			}
		}

		dt := r.Float64() * 0.05
		now += dt
		res := sim.Advance(dt, now)
		totalHits += len(res.Collisions)

		f := sim.Rain
		if len(f.X) != len(f.Y) || len(f.Y) != len(f.PrevY) {
			t.Fatalf("frame %d: len(X)=%d len(Y)=%d len(PrevY)=%d", frame, len(f.X), len(f.Y), len(f.PrevY))
		}
		for i, y := range f.Y {
			if y > sim.World.Height {
				t.Fatalf("frame %d: drop %d at y=%v below world", frame, i, y)
			}
		}
		if res.Wrapped && len(res.Collisions) != 0 {
			t.Fatalf("frame %d: wrap frame reported %d collisions", frame, len(res.Collisions))
		}
	}

	if totalHits == 0 {
		t.Error("expected at least one collision over 600 frames")
	}
}

func TestSimulationTickClampsDelta(t *testing.T) {
	sim := newTestSimulation()

	tests := []struct {
		name   string
		now    float64
		wantDt float64
	}{
		{"首帧 dt 为 0", 1.0, 0},
		{"正常帧", 1.016, 0.016},
		{"长时间停顿被限制", 5.0, 0.1},
		{"时间倒退", 4.0, 0},
	}

	for _, tt := range tests {
		res := sim.Tick(tt.now)
		if math.Abs(res.Dt-tt.wantDt) > 1e-9 {
			t.Errorf("%s: Tick(%v).Dt = %v, want %v", tt.name, tt.now, res.Dt, tt.wantDt)
		}
	}
}

func TestSimulationResetClock(t *testing.T) {
	sim := newTestSimulation()
	sim.Tick(0)

	// 重新获得焦点
	sim.ResetClock(30)
	res := sim.Tick(30.02)
	if math.Abs(res.Dt-0.02) > 1e-9 {
		t.Errorf("Dt after ResetClock = %v, want 0.02", res.Dt)
	}
	if res.Spawned > 21 {
		t.Errorf("Spawned = %d after ResetClock, want no burst", res.Spawned)
	}
}

func TestSimulationCollisionPipeline(t *testing.T) {
	sim := newTestSimulation()
	sim.SetClock(fakeClock(2 * time.Millisecond))

	var text systems.StatsText
	calls := 0
	sim.OnStats(func(st systems.StatsText) {
		text = st
		calls++
	})

	// 障碍物中心 (25, 360)，上边 y=260
	sim.Rain.Add(25, 250)

	res := sim.Advance(0.016, 0.1)

	if len(res.Collisions) != 1 {
		t.Fatalf("len(Collisions) = %d, want 1", len(res.Collisions))
	}
	if res.Collisions[0].Side != geometry.SideTop {
		t.Errorf("Side = %v, want top", res.Collisions[0].Side)
	}
	if res.Collisions[0].Time != 0.1 {
		t.Errorf("Time = %v, want 0.1", res.Collisions[0].Time)
	}
	if sim.Rain.Len() != res.Spawned {
		t.Errorf("Rain.Len() = %d, want %d (only new drops)", sim.Rain.Len(), res.Spawned)
	}

	if !res.StatsUpdated {
		t.Fatal("StatsUpdated = false, want true")
	}
	if res.Stats.Counts.Hits != 1 {
		t.Errorf("Counts.Hits = %d, want 1", res.Stats.Counts.Hits)
	}
	if res.Stats.Percent(geometry.SideTop) != 100 {
		t.Errorf("top percent = %v, want 100", res.Stats.Percent(geometry.SideTop))
	}
	if res.Stats.AvgFrameTime != 2 {
		t.Errorf("AvgFrameTime = %v ms, want 2", res.Stats.AvgFrameTime)
	}
	if calls != 1 || text.TopPercent != "100.0" || text.AvgFrameTime != "2.0" {
		t.Errorf("OnStats calls=%d text=%+v", calls, text)
	}

	// 间隔不足，不更新
	res = sim.Advance(0.016, 0.15)
	if res.StatsUpdated || calls != 1 {
		t.Errorf("stats updated again within interval (calls=%d)", calls)
	}
}

func TestSimulationWrapFrame(t *testing.T) {
	sim := newTestSimulation()
	o := sim.Obstacle

	o.X = sim.World.Width - o.Width - 0.5
	o.PrevX = o.X

	// 位于环绕后位置内部的雨滴
	sim.Rain.Add(10, 300)
	// 位于环绕前位置上方、本帧会穿过上边的雨滴
	sim.Rain.Add(sim.World.Width-25, 255)

	res := sim.Advance(0.016, 1)

	if !res.Wrapped {
		t.Fatal("Wrapped = false, want true")
	}
	if len(res.Collisions) != 0 {
		t.Errorf("len(Collisions) = %d, want 0 on wrap frame", len(res.Collisions))
	}
	if o.X != 0 || o.PrevX != o.X {
		t.Errorf("after wrap X=%v PrevX=%v, want 0", o.X, o.PrevX)
	}
	if hits, _, _ := sim.Stats().HistoryLens(); hits != 0 {
		t.Errorf("hit history = %d, want 0", hits)
	}
	for i := range sim.Rain.X {
		if sim.Rain.X[i] == 10 {
			t.Error("drop inside wrapped obstacle was not removed")
		}
	}
}

func TestSimulationApplyControls(t *testing.T) {
	sim := newTestSimulation()

	c := Controls{RainSpeed: 5, ObstacleSpeed: -2, AngleDegrees: 90}
	if err := sim.ApplyControls(c); err != nil {
		t.Fatalf("ApplyControls() error: %v", err)
	}
	if sim.rainSystem.FallSpeed != 500 {
		t.Errorf("FallSpeed = %v, want 500", sim.rainSystem.FallSpeed)
	}
	if sim.Obstacle.Speed != -200 {
		t.Errorf("Obstacle.Speed = %v, want -200", sim.Obstacle.Speed)
	}
	if math.Abs(sim.Obstacle.Angle-math.Pi/2) > 1e-12 {
		t.Errorf("Angle = %v, want pi/2", sim.Obstacle.Angle)
	}
	if math.Abs(sim.Obstacle.XExtent-100) > 1e-9 {
		t.Errorf("XExtent = %v, want 100", sim.Obstacle.XExtent)
	}

	if err := sim.ApplyControls(Controls{RainSpeed: -1}); err == nil {
		t.Error("ApplyControls() with negative rain speed should fail")
	}
	if sim.Controls() != c {
		t.Errorf("Controls() = %+v, want %+v", sim.Controls(), c)
	}
}

func TestSimulationSetWorldSize(t *testing.T) {
	sim := newTestSimulation()

	sim.SetWorldSize(800, 600)
	if sim.World.Width != 800 || sim.World.Height != 600 {
		t.Errorf("World = %vx%v, want 800x600", sim.World.Width, sim.World.Height)
	}

	sim.SetWorldSize(0, -1)
	if sim.World.Width != 800 || sim.World.Height != 600 {
		t.Errorf("invalid size changed world to %vx%v", sim.World.Width, sim.World.Height)
	}
}

func TestSimulationReset(t *testing.T) {
	sim := newTestSimulation()
	for i := 1; i <= 30; i++ {
		sim.Advance(0.016, float64(i)*0.016)
	}
	if sim.Rain.Len() == 0 {
		t.Fatal("expected drops before Reset")
	}

	sim.Reset()
	if sim.Rain.Len() != 0 {
		t.Errorf("Rain.Len() = %d after Reset", sim.Rain.Len())
	}
	if h, m, f := sim.Stats().HistoryLens(); h+m+f != 0 {
		t.Errorf("histories = %d/%d/%d after Reset", h, m, f)
	}
	if sim.Obstacle.X != 0 {
		t.Errorf("Obstacle.X = %v after Reset, want 0", sim.Obstacle.X)
	}
}

// TestSimulationSetWorldSizeRepositionsObstacle 世界缩小后障碍物重新居中并留在世界内，仍能被击中
func TestSimulationSetWorldSizeRepositionsObstacle(t *testing.T) {
	sim := newTestSimulation()
	sim.SetClock(fakeClock(time.Millisecond))

	// 80×23 的终端画面区域
	sim.SetWorldSize(640, 368)

	o := sim.Obstacle
	if o.Y < 0 || o.Y+o.Height > sim.World.Height {
		t.Fatalf("obstacle spans y=[%v, %v], want inside [0, %v]", o.Y, o.Y+o.Height, sim.World.Height)
	}
	if want := (368 - o.Height) / 2; o.Y != want {
		t.Errorf("Obstacle.Y = %v, want %v", o.Y, want)
	}

	hits := 0
	now := 0.0
	for i := 0; i < 600; i++ {
		now += 1.0 / 60.0
		res := sim.Advance(1.0/60.0, now)
		hits += len(res.Collisions)
	}
	if hits == 0 {
		t.Error("no collisions after resize, want obstacle to be reachable by drops")
	}
}

// TestSimulationSetWorldSizeClampsRight 世界变窄时障碍物被放回右边界内
func TestSimulationSetWorldSizeClampsRight(t *testing.T) {
	sim := newTestSimulation()
	sim.Obstacle.X = 1000
	sim.Obstacle.PrevX = 1000

	sim.SetWorldSize(640, 720)

	o := sim.Obstacle
	if right := o.CenterX() + o.XExtent; right > 640+1e-9 {
		t.Errorf("rightmost extent = %v, want <= 640", right)
	}
	if o.PrevX != o.X {
		t.Errorf("PrevX = %v, X = %v, want equal", o.PrevX, o.X)
	}
}

func TestInitialRainCapacity(t *testing.T) {
	tests := []struct {
		name      string
		spawnRate float64
		want      int
	}{
		{"默认配置", 1000, 729},
		{"不生成", 0, 0},
		{"极大生成速率被限制", 1e10, maxInitialRainCapacity},
	}

	for _, tt := range tests {
		cfg := config.DefaultSimulationConfig()
		cfg.Rain.SpawnRate = tt.spawnRate
		if got := initialRainCapacity(cfg); got != tt.want {
			t.Errorf("%s: initialRainCapacity() = %d, want %d", tt.name, got, tt.want)
		}
	}

	cfg := config.DefaultSimulationConfig()
	cfg.Rain.SpawnRate = 1e10
	sim := NewSimulation(cfg, rand.New(rand.NewSource(1)))
	if c := cap(sim.Rain.X); c > maxInitialRainCapacity {
		t.Errorf("cap(Rain.X) = %d, want <= %d", c, maxInitialRainCapacity)
	}
}

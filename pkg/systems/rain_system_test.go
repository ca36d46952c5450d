package systems

import (
	"math"
	"testing"

	"github.com/gonewx/raindrops/pkg/components"
)

// TestRainSystem_SpawnAccumulator spawnRate=1000, dt=0.0015 → 生成 1 个，余 0.5
func TestRainSystem_SpawnAccumulator(t *testing.T) {
	world := &components.WorldComponent{Width: 800, Height: 600}
	field := components.NewRainField(0)
	sys := NewRainSystem(field, world, newTestRand(), 1000, 1000, 8)

	spawned := sys.Spawn(0.0015)

	if spawned != 1 || field.Len() != 1 {
		t.Fatalf("spawned = %d, Len() = %d, want 1", spawned, field.Len())
	}
	if math.Abs(field.SpawnAccumulator-0.5) > 1e-12 {
		t.Errorf("SpawnAccumulator = %v, want 0.5", field.SpawnAccumulator)
	}

	// 余数累积到下一帧
	sys.Spawn(0.0015)
	if field.Len() != 3 {
		t.Errorf("Len() after second frame = %d, want 3", field.Len())
	}
}

// TestRainSystem_SpawnRateInTheLimit 不规则帧间隔下长期生成数与期望一致
func TestRainSystem_SpawnRateInTheLimit(t *testing.T) {
	world := &components.WorldComponent{Width: 800, Height: 600}
	field := components.NewRainField(0)
	sys := NewRainSystem(field, world, newTestRand(), 37, 1000, 8)

	dts := []float64{0.016, 0.033, 0.001, 0.05, 0.0167}
	total := 0
	elapsed := 0.0
	for i := 0; i < 1000; i++ {
		dt := dts[i%len(dts)]
		total += sys.Spawn(dt)
		elapsed += dt
	}

	expected := 37 * elapsed
	if math.Abs(float64(total)-expected) >= 1 {
		t.Errorf("spawned %d, want within 1 of %v", total, expected)
	}
}

// TestRainSystem_SpawnPosition 新雨滴在世界宽度内、顶边上方生成
func TestRainSystem_SpawnPosition(t *testing.T) {
	world := &components.WorldComponent{Width: 800, Height: 600}
	field := components.NewRainField(0)
	sys := NewRainSystem(field, world, newTestRand(), 100, 1000, 8)

	sys.Spawn(1)
	if field.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", field.Len())
	}
	for i := 0; i < field.Len(); i++ {
		if field.X[i] < 0 || field.X[i] >= world.Width {
			t.Errorf("drop %d X = %v, want within [0, %v)", i, field.X[i], world.Width)
		}
		if field.Y[i] != -8 {
			t.Errorf("drop %d Y = %v, want -8", i, field.Y[i])
		}
	}
}

// TestRainSystem_AdvanceAndCull 推进并删除越过下边界的雨滴
func TestRainSystem_AdvanceAndCull(t *testing.T) {
	world := &components.WorldComponent{Width: 800, Height: 1000}
	field := components.NewRainField(0)
	sys := NewRainSystem(field, world, newTestRand(), 0, 1000, 8)

	field.Add(10, 100)
	field.Add(20, 995) // 推进 10 后越界
	field.Add(30, 990) // 推进 10 后恰好位于边界，保留

	sys.Update(0.01)

	if field.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", field.Len())
	}
	if field.X[0] != 10 || field.Y[0] != 110 || field.PrevY[0] != 100 {
		t.Errorf("drop 0 = (%v, %v, prev %v), want (10, 110, prev 100)", field.X[0], field.Y[0], field.PrevY[0])
	}
	if field.X[1] != 30 || field.Y[1] != 1000 || field.PrevY[1] != 990 {
		t.Errorf("drop 1 = (%v, %v, prev %v), want (30, 1000, prev 990)", field.X[1], field.Y[1], field.PrevY[1])
	}
}

package components

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

// TestObstacle_OnAngleChanged 测试角度变化后缓存与角度保持一致
func TestObstacle_OnAngleChanged(t *testing.T) {
	o := NewObstacle(50, 200, 0, 100)

	if o.HalfW != 25 || o.HalfH != 100 {
		t.Fatalf("HalfW/HalfH = %v/%v, want 25/100", o.HalfW, o.HalfH)
	}
	if o.XExtent != 25 {
		t.Errorf("XExtent at 0° = %v, want 25", o.XExtent)
	}

	o.SetAngle(math.Pi/2, 10000)
	if math.Abs(o.Rotation.Cos) > 1e-12 || math.Abs(o.Rotation.Sin-1) > 1e-12 {
		t.Errorf("Rotation at 90° = %+v", o.Rotation)
	}
	if math.Abs(o.XExtent-100) > 1e-9 {
		t.Errorf("XExtent at 90° = %v, want 100", o.XExtent)
	}
}

// TestObstacle_SetAngle_ReclampsToWorld 测试角度变化使矩形超出右边界时贴边放回
func TestObstacle_SetAngle_ReclampsToWorld(t *testing.T) {
	tests := []struct {
		name       string
		startX     float64
		angle      float64
		worldWidth float64
		wantX      float64
	}{
		{
			name:       "超出右边界-贴边",
			startX:     900, // 中心 925，0° 时右端 950
			angle:      math.Pi / 2,
			worldWidth: 1000, // 90° 时右端 925+100 > 1000
			wantX:      1000 - 100 - 25,
		},
		{
			name:       "仍在世界内-不移动",
			startX:     100,
			angle:      math.Pi / 2,
			worldWidth: 1000,
			wantX:      100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewObstacle(50, 200, 0, 0)
			o.X = tt.startX
			o.SetAngle(tt.angle, tt.worldWidth)
			if math.Abs(o.X-tt.wantX) > 1e-9 {
				t.Errorf("X = %v, want %v", o.X, tt.wantX)
			}
			if right := o.CenterX() + o.XExtent; right > tt.worldWidth+1e-9 {
				t.Errorf("rightmost extent %v exceeds world width %v", right, tt.worldWidth)
			}
		})
	}
}

// TestObstacle_ClampRight 测试世界缩小后贴边放回
func TestObstacle_ClampRight(t *testing.T) {
	tests := []struct {
		name       string
		startX     float64
		worldWidth float64
		wantX      float64
	}{
		{"超出右边界-贴边", 900, 640, 640 - 50},
		{"仍在世界内-不移动", 100, 640, 100},
		{"世界比障碍物窄-贴左", 900, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewObstacle(50, 200, 0, 0)
			o.X = tt.startX
			o.PrevX = tt.startX
			o.ClampRight(tt.worldWidth)
			if math.Abs(o.X-tt.wantX) > 1e-9 {
				t.Errorf("X = %v, want %v", o.X, tt.wantX)
			}
			if o.PrevX != o.X {
				t.Errorf("PrevX = %v, want %v", o.PrevX, o.X)
			}
		})
	}
}

// TestObstacle_PlaceAtLeft 测试初始放置：旋转后最左点位于 X=0
func TestObstacle_PlaceAtLeft(t *testing.T) {
	for _, deg := range []float64{0, 30, 45, 90, 135} {
		o := NewObstacle(50, 200, deg*math.Pi/180, 100)
		o.PlaceAtLeft()

		if left := o.CenterX() - o.XExtent; math.Abs(left) > 1e-9 {
			t.Errorf("%v°: leftmost extent = %v, want 0", deg, left)
		}
		if o.PrevX != o.X {
			t.Errorf("%v°: PrevX = %v, want %v", deg, o.PrevX, o.X)
		}

		minX := math.Inf(1)
		for _, c := range o.Corners() {
			minX = math.Min(minX, c.X)
		}
		if math.Abs(minX) > 1e-9 {
			t.Errorf("%v°: min corner X = %v, want 0", deg, minX)
		}
	}
}

// TestObstacle_ContainsPoint 测试世界坐标包含判断
func TestObstacle_ContainsPoint(t *testing.T) {
	o := NewObstacle(50, 200, math.Pi/2, 0)
	o.X = 475 // 中心 (500, 300)
	o.Y = 200

	tests := []struct {
		name string
		p    r2.Point
		want bool
	}{
		{"中心", r2.Point{X: 500, Y: 300}, true},
		{"旋转后水平方向的长边内", r2.Point{X: 590, Y: 300}, true},
		{"旋转前的竖直方向已在外部", r2.Point{X: 500, Y: 380}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.ContainsPoint(tt.p); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

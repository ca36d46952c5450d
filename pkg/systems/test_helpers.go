package systems

import (
	"math/rand"

	"github.com/gonewx/raindrops/pkg/components"
)

// newTestRand 返回固定种子的随机数源
func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// newTestObstacle 创建 50×200、角度为 angle 的障碍物，中心位于 (cx, cy)
func newTestObstacle(cx, cy, angle, speed float64) *components.ObstacleComponent {
	o := components.NewObstacle(50, 200, angle, speed)
	o.X = cx - o.HalfW
	o.Y = cy - o.HalfH
	o.PrevX = o.X
	return o
}

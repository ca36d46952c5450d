package systems

import (
	"math"

	"github.com/gonewx/raindrops/pkg/components"
)

// wrapTolerance 反向环绕落点的浮点误差容限（像素）
const wrapTolerance = 1e-9

// ObstacleMotionSystem 推进障碍物位置并处理环绕
//
// 障碍物的前缘即将离开世界边界时，直接瞬移回起始位置（而不是裁剪或反弹），
// 并把本帧的表观位移强制为 0，使碰撞系统跳过扫掠检测。
type ObstacleMotionSystem struct {
	obstacle *components.ObstacleComponent
	world    *components.WorldComponent
	stats    *StatsSystem
}

// NewObstacleMotionSystem 创建障碍物运动系统
//
// 参数:
//   - obstacle: 障碍物
//   - world: 世界边界
//   - stats: 统计系统，用于记录位移样本，可为 nil
func NewObstacleMotionSystem(obstacle *components.ObstacleComponent, world *components.WorldComponent, stats *StatsSystem) *ObstacleMotionSystem {
	return &ObstacleMotionSystem{
		obstacle: obstacle,
		world:    world,
		stats:    stats,
	}
}

// Update 推进障碍物一帧
//
// 参数:
//   - dt: 帧间隔（秒）
//   - now: 当前时间（秒），用于位移样本的时间戳
func (s *ObstacleMotionSystem) Update(dt, now float64) {
	o := s.obstacle

	o.PrevX = o.X
	o.X += o.Speed * dt

	o.DidWrap = false
	// 前缘检测对任意速度方向都生效；反向运动时恰好贴在右边界（反向环绕的落点）不算越界
	right := o.CenterX() + o.XExtent
	switch {
	case right > s.world.Width+wrapTolerance || (o.Speed >= 0 && right >= s.world.Width):
		// 最左侧旋转后的点贴在 X=0
		o.X = o.XExtent - o.HalfW
		o.PrevX = o.X
		o.DidWrap = true
	case o.Speed < 0 && o.CenterX()-o.XExtent <= 0:
		// 反向运动：最右侧旋转后的点贴在世界右边界
		o.X = s.world.Width - o.XExtent - o.HalfW
		o.PrevX = o.X
		o.DidWrap = true
	}

	// 名义位移：环绕帧也按 speed*dt 记录，取绝对值
	if s.stats != nil {
		s.stats.RecordMovement(now, math.Abs(o.Speed*dt))
	}
}

package systems

import (
	"github.com/golang/geo/r2"

	"github.com/gonewx/raindrops/pkg/components"
	"github.com/gonewx/raindrops/pkg/geometry"
)

// Collision 一次扫掠检测命中
type Collision struct {
	Time  float64
	Point r2.Point // 世界坐标命中点
	Side  geometry.Side
}

// CollisionSystem 检测雨滴与障碍物的碰撞（连续碰撞检测）
//
// 普通帧：雨滴本帧的路径转换到障碍物局部空间后与四条边求交，命中即删除并记录。
// 环绕帧：障碍物本帧位移被强制为 0，扫掠检测没有意义，改为静态包含检测，
// 被包含的雨滴直接删除，不记录撞击。
//
// 路径起点相对移动前的中心、终点相对移动后的中心，混合了两个参考系。
// 同一帧内障碍物只平移不旋转，在常规帧率下误差可接受。
type CollisionSystem struct {
	obstacle *components.ObstacleComponent
	field    *components.RainFieldComponent
	stats    *StatsSystem

	collisions []Collision
}

// NewCollisionSystem 创建碰撞系统
//
// 参数:
//   - obstacle: 障碍物
//   - field: 雨滴集合（必须已由 RainSystem 拍下 PrevY 快照）
//   - stats: 统计系统，用于记录撞击，可为 nil
func NewCollisionSystem(obstacle *components.ObstacleComponent, field *components.RainFieldComponent, stats *StatsSystem) *CollisionSystem {
	return &CollisionSystem{
		obstacle: obstacle,
		field:    field,
		stats:    stats,
	}
}

// Update 对所有雨滴进行碰撞检测
//
// 参数:
//   - now: 当前时间（秒），用于撞击记录
//
// 返回:
//   - []Collision: 本帧扫掠检测的命中（切片在下一次 Update 时复用）
func (s *CollisionSystem) Update(now float64) []Collision {
	s.collisions = s.collisions[:0]

	if s.obstacle.DidWrap {
		s.removeContained()
		return s.collisions
	}

	o := s.obstacle
	f := s.field
	prevCenter := o.PrevCenter()
	curCenter := o.Center()
	rot := o.Rotation

	// 倒序遍历，删除当前雨滴不影响尚未访问的下标
	for i := f.Len() - 1; i >= 0; i-- {
		x := f.X[i]
		start := rot.ToLocal(r2.Point{X: x, Y: f.PrevY[i]}.Sub(prevCenter))
		end := rot.ToLocal(r2.Point{X: x, Y: f.Y[i]}.Sub(curCenter))

		res := geometry.PerformCCD(start, end, o.HalfW, o.HalfH)
		if !res.HasHit {
			continue
		}

		hit := rot.ToWorld(res.LocalHitPoint).Add(prevCenter)
		s.collisions = append(s.collisions, Collision{Time: now, Point: hit, Side: res.Side})
		if s.stats != nil {
			s.stats.RecordHit(now, res.Side)
		}
		f.Remove(i)
	}

	return s.collisions
}

// removeContained 环绕帧：删除位于障碍物当前位置内部的雨滴
func (s *CollisionSystem) removeContained() int {
	f := s.field
	removed := 0
	for i := f.Len() - 1; i >= 0; i-- {
		if s.obstacle.ContainsPoint(r2.Point{X: f.X[i], Y: f.Y[i]}) {
			f.Remove(i)
			removed++
		}
	}
	return removed
}

package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Side 矩形被击中的边
type Side int

const (
	SideNone Side = iota
	SideTop
	SideRight
	SideBottom
	SideLeft
)

// AllSides 按边的检测顺序排列
var AllSides = [4]Side{SideTop, SideRight, SideBottom, SideLeft}

// String 返回边的名称
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	default:
		return "none"
	}
}

// Edge 局部空间中矩形的一条边
type Edge struct {
	A, B r2.Point
	Side Side
}

// RectEdges 返回局部空间中 [-halfW,halfW]×[-halfH,halfH] 矩形的四条边
// 顺序固定为 top、right、bottom、left，绕向一致（Y 向下时为顺时针）。
func RectEdges(halfW, halfH float64) [4]Edge {
	return [4]Edge{
		{A: r2.Point{X: -halfW, Y: -halfH}, B: r2.Point{X: halfW, Y: -halfH}, Side: SideTop},
		{A: r2.Point{X: halfW, Y: -halfH}, B: r2.Point{X: halfW, Y: halfH}, Side: SideRight},
		{A: r2.Point{X: halfW, Y: halfH}, B: r2.Point{X: -halfW, Y: halfH}, Side: SideBottom},
		{A: r2.Point{X: -halfW, Y: halfH}, B: r2.Point{X: -halfW, Y: -halfH}, Side: SideLeft},
	}
}

// CCDResult 连续碰撞检测结果
type CCDResult struct {
	HasHit        bool
	T             float64  // 沿路径的最早命中参数
	LocalHitPoint r2.Point // 局部空间中的命中点
	Side          Side
}

// PerformCCD 对局部空间中的移动路径做扫掠检测（四条边逐一求交）
//
// 取 t 最小的命中边；t 完全相等时保留先检测的边（top、right、bottom、left）。
// 结果只取决于输入，不依赖任何外部状态。
//
// 参数:
//   - start, end: 局部空间中的路径起点和终点
//   - halfW, halfH: 矩形半宽、半高
//
// 返回:
//   - CCDResult: 未命中时 HasHit 为 false
func PerformCCD(start, end r2.Point, halfW, halfH float64) CCDResult {
	var best CCDResult

	for _, edge := range RectEdges(halfW, halfH) {
		hit, ok := Intersect(start, end, edge.A, edge.B)
		if !ok {
			continue
		}
		// 严格小于：相等时先检测的边胜出
		if !best.HasHit || hit.T < best.T {
			best = CCDResult{
				HasHit:        true,
				T:             hit.T,
				LocalHitPoint: start.Add(end.Sub(start).Mul(hit.T)),
				Side:          edge.Side,
			}
		}
	}

	return best
}

// ContainsLocal 判断局部空间中的点是否在矩形内（含边界）
func ContainsLocal(p r2.Point, halfW, halfH float64) bool {
	return math.Abs(p.X) <= halfW && math.Abs(p.Y) <= halfH
}

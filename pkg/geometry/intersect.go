package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// DeterminantEpsilon 行列式绝对值小于该值时视为平行或退化
const DeterminantEpsilon = 1e-8

// SegmentHit 描述移动路径与一条边的参数化交点
type SegmentHit struct {
	T float64 // 沿移动路径 start→end 的参数，∈ [0, 1]
	U float64 // 沿边 a→b 的参数，∈ [0, 1]
}

// Intersect 求移动点路径 start→end 与线段 a→b 的交点
//
// 求解线性方程组：
//
//	[ dRx  -dEx ] [ t ]   [ a.x - start.x ]
//	[ dRy  -dEy ] [ u ] = [ a.y - start.y ]
//
// 参数:
//   - start, end: 本帧移动点的起点和终点
//   - a, b: 边的两个端点
//
// 返回:
//   - SegmentHit: 交点参数
//   - bool: 平行/退化，或 t、u 落在 [0, 1] 之外时返回 false
func Intersect(start, end, a, b r2.Point) (SegmentHit, bool) {
	dR := end.Sub(start)
	dE := b.Sub(a)

	det := dR.X*(-dE.Y) - dR.Y*(-dE.X)
	// 必须先于除法检查
	if math.Abs(det) < DeterminantEpsilon {
		return SegmentHit{}, false
	}

	invDet := 1 / det
	r := a.Sub(start)
	t := (r.X*(-dE.Y) - r.Y*(-dE.X)) * invDet
	u := (dR.X*r.Y - dR.Y*r.X) * invDet

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return SegmentHit{}, false
	}
	return SegmentHit{T: t, U: u}, true
}

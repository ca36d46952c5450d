// Package geometry 提供雨滴与旋转矩形之间碰撞检测所需的几何工具
//
// 坐标约定：
//   - 世界空间：屏幕坐标，X 向右，Y 向下
//   - 局部空间：以矩形中心为原点、随矩形旋转的坐标系，矩形在其中轴对齐
//
// 所有函数都是纯函数，不依赖任何全局状态。
package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Rotation 缓存某个角度的 cos/sin 值
//
// 角度只在配置变化时改变，每帧对每个雨滴重复计算三角函数没有意义，
// 因此由持有者在角度变化时重新构建。
type Rotation struct {
	Angle float64 // 弧度
	Cos   float64
	Sin   float64
}

// NewRotation 根据角度（弧度）创建 Rotation
func NewRotation(angle float64) Rotation {
	return Rotation{
		Angle: angle,
		Cos:   math.Cos(angle),
		Sin:   math.Sin(angle),
	}
}

// ToLocal 将相对于矩形中心的点转换到矩形局部空间（旋转 -θ）
//
// 参数:
//   - p: 相对于矩形中心的世界空间点
//   - cos, sin: 矩形角度的余弦、正弦
//
// 返回:
//   - r2.Point: 局部空间中的点
func ToLocal(p r2.Point, cos, sin float64) r2.Point {
	return r2.Point{
		X: p.X*cos + p.Y*sin,
		Y: -p.X*sin + p.Y*cos,
	}
}

// ToWorld 将局部空间中的点转换回相对于矩形中心的世界空间（旋转 +θ）
// 对同一组 (cos, sin)，ToWorld 是 ToLocal 的逆变换。
func ToWorld(p r2.Point, cos, sin float64) r2.Point {
	return r2.Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// ToLocal 使用缓存的三角函数值转换到局部空间
func (r Rotation) ToLocal(p r2.Point) r2.Point {
	return ToLocal(p, r.Cos, r.Sin)
}

// ToWorld 使用缓存的三角函数值转换回世界空间
func (r Rotation) ToWorld(p r2.Point) r2.Point {
	return ToWorld(p, r.Cos, r.Sin)
}

// XExtent 返回半宽 halfW、半高 halfH 的矩形旋转后在 X 轴上的半投影长度
//
// 公式：|cosθ|·halfW + |sinθ|·halfH
func (r Rotation) XExtent(halfW, halfH float64) float64 {
	return math.Abs(r.Cos)*halfW + math.Abs(r.Sin)*halfH
}

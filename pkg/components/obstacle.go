package components

import (
	"github.com/golang/geo/r2"

	"github.com/gonewx/raindrops/pkg/geometry"
)

// ObstacleComponent 被雨滴击中的旋转矩形障碍物
//
// X、Y 是未旋转矩形的左上角；旋转围绕矩形中心进行。
// HalfW、HalfH、Rotation、XExtent 是派生缓存，只能通过 SetAngle / OnAngleChanged 更新，
// 保证每次碰撞检测时与 Angle 一致。
type ObstacleComponent struct {
	X      float64 // 左上角X坐标（像素）
	Y      float64 // 左上角Y坐标（像素）
	Width  float64
	Height float64
	Angle  float64 // 弧度
	Speed  float64 // 水平速度（像素/秒），可为 0 或负值

	// 派生缓存
	HalfW    float64
	HalfH    float64
	Rotation geometry.Rotation
	XExtent  float64 // 旋转后在 X 轴上的半投影

	PrevX   float64 // 本帧移动前的 X
	DidWrap bool    // 仅对当前帧有效
}

// NewObstacle 创建障碍物并初始化派生缓存
func NewObstacle(width, height, angle, speed float64) *ObstacleComponent {
	o := &ObstacleComponent{
		Width:  width,
		Height: height,
		Angle:  angle,
		Speed:  speed,
	}
	o.OnAngleChanged()
	return o
}

// OnAngleChanged 根据当前 Angle 重新计算半宽、半高、三角函数和 X 半投影
func (o *ObstacleComponent) OnAngleChanged() {
	o.HalfW = o.Width / 2
	o.HalfH = o.Height / 2
	o.Rotation = geometry.NewRotation(o.Angle)
	o.XExtent = o.Rotation.XExtent(o.HalfW, o.HalfH)
}

// SetAngle 修改角度并刷新缓存
//
// 如果新的包围范围使矩形超出世界右边界，将其贴边放回世界内。
//
// 参数:
//   - angle: 新角度（弧度）
//   - worldWidth: 世界宽度（像素）
func (o *ObstacleComponent) SetAngle(angle, worldWidth float64) {
	o.Angle = angle
	o.OnAngleChanged()
	o.ClampRight(worldWidth)
}

// ClampRight 旋转后的最右点超出 worldWidth 时贴边放回
// 世界比障碍物还窄时改为贴在左侧。
func (o *ObstacleComponent) ClampRight(worldWidth float64) {
	if o.CenterX()+o.XExtent <= worldWidth {
		return
	}
	o.X = worldWidth - o.XExtent - o.HalfW
	if o.CenterX()-o.XExtent < 0 {
		o.X = o.XExtent - o.HalfW
	}
	o.PrevX = o.X
}

// PlaceAtLeft 将障碍物放置在最左侧：旋转后的最左点恰好位于 X=0
func (o *ObstacleComponent) PlaceAtLeft() {
	o.X = o.XExtent - o.HalfW
	o.PrevX = o.X
}

// CenterVertically 将障碍物垂直居中
func (o *ObstacleComponent) CenterVertically(worldHeight float64) {
	o.Y = worldHeight/2 - o.HalfH
}

// CenterX 当前中心X坐标
func (o *ObstacleComponent) CenterX() float64 {
	return o.X + o.HalfW
}

// Center 当前帧移动后的中心
func (o *ObstacleComponent) Center() r2.Point {
	return r2.Point{X: o.X + o.HalfW, Y: o.Y + o.HalfH}
}

// PrevCenter 本帧移动前的中心
func (o *ObstacleComponent) PrevCenter() r2.Point {
	return r2.Point{X: o.PrevX + o.HalfW, Y: o.Y + o.HalfH}
}

// Corners 返回旋转后四个角点的世界坐标（顺序与 geometry.RectEdges 的起点一致）
// 供渲染使用。
func (o *ObstacleComponent) Corners() [4]r2.Point {
	c := o.Center()
	var out [4]r2.Point
	for i, e := range geometry.RectEdges(o.HalfW, o.HalfH) {
		out[i] = o.Rotation.ToWorld(e.A).Add(c)
	}
	return out
}

// ContainsPoint 判断世界坐标点是否位于障碍物内部（含边界）
func (o *ObstacleComponent) ContainsPoint(p r2.Point) bool {
	local := o.Rotation.ToLocal(p.Sub(o.Center()))
	return geometry.ContainsLocal(local, o.HalfW, o.HalfH)
}

package types

// Vec2 二维向量（尺寸、背景坐标）
type Vec2 struct {
	X, Y float64
}

// Vec3 三维向量，Z 用于同一层内的绘制先后
//
// 坐标系：原点在屏幕中心，X 向右，Y 向上（脚本作者使用的坐标系），
// 渲染器负责换算为屏幕坐标
type Vec3 struct {
	X, Y, Z float64
}

// Add 向量相加
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// XY 丢弃 Z 分量
func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// RGBA 浮点颜色，各分量取值 0~1
type RGBA struct {
	R, G, B, A float64
}

// White 不透明白色（默认文本颜色）
var White = RGBA{R: 1, G: 1, B: 1, A: 1}

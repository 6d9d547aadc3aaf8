package components

// PositionComponent 实体位置（脚本坐标系：原点在屏幕中心，Y 向上）
type PositionComponent struct {
	X, Y, Z float64
}

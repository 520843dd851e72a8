package components

// PositionComponent 实体的屏幕位置（左上角，像素）
type PositionComponent struct {
	X, Y float64
}

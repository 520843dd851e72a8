package components

// HoverHighlightComponent 悬停高亮组件
// 轮播中被悬停（或触摸点按）的卡片去掉单色遮罩并显示详情
//
// Intensity 随时间从 0 过渡到 1，切换卡片时重新开始
type HoverHighlightComponent struct {
	// Index 高亮的卡片索引，-1 表示没有
	Index int

	// Intensity 高亮强度（0.0 - 1.0）
	// 1.0 = 完全去掉遮罩，0.0 = 无效果
	Intensity float64

	// IsActive 是否激活
	IsActive bool
}

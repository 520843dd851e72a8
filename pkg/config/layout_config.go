package config

// 布局配置常量
// 本文件定义了展示页面的布局参数，所有坐标都是逻辑屏幕坐标

// Window Configuration (窗口配置)
const (
	// WindowWidth 是逻辑屏幕宽度，Ebitengine 负责缩放到实际窗口
	WindowWidth = 1280

	// WindowHeight 是逻辑屏幕高度
	WindowHeight = 720

	// WindowTitle 窗口标题
	WindowTitle = "showreel"
)

// Section Layout (区块布局)
// 页面自上而下依次为：项目标题、项目轮播、合作伙伴标题、合作伙伴轮播、操作提示
const (
	// SectionMarginX 是标题文字的左边距
	SectionMarginX = 64.0

	// SectionTop 是第一个区块标题的Y坐标
	SectionTop = 32.0

	// HeadingHeight 是区块标题占用的高度（标题与轮播之间）
	HeadingHeight = 48.0

	// SectionSpacing 是上一个轮播底部与下一个区块标题之间的距离
	SectionSpacing = 40.0

	// CarouselPaddingY 是轮播视口上下各留出的空白，卡片垂直居中
	CarouselPaddingY = 12.0

	// HintMarginBottom 是操作提示距离屏幕底部的距离
	HintMarginBottom = 28.0
)

// Section 描述一个区块（标题 + 轮播视口）的位置
type Section struct {
	HeadingY float64 // 标题文字的Y坐标
	X, Y     float64 // 轮播视口左上角
	Width    float64 // 视口宽度（占满屏幕宽度）
	Height   float64 // 视口高度
}

// StackSections 按卡片高度自上而下排列区块
//
// 参数:
//   - itemHeights: 每个区块中卡片的高度
//
// 返回:
//   - []Section: 每个区块的位置，顺序与 itemHeights 相同
func StackSections(itemHeights ...float64) []Section {
	sections := make([]Section, 0, len(itemHeights))
	y := SectionTop
	for _, h := range itemHeights {
		s := Section{
			HeadingY: y,
			X:        0,
			Y:        y + HeadingHeight,
			Width:    WindowWidth,
			Height:   h + 2*CarouselPaddingY,
		}
		sections = append(sections, s)
		y = s.Y + s.Height + SectionSpacing
	}
	return sections
}

// HintY 返回操作提示文字的Y坐标
func HintY() float64 {
	return WindowHeight - HintMarginBottom
}

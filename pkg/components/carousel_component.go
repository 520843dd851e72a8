package components

import (
	"image/color"

	"github.com/decker502/showreel/pkg/carousel"
)

// CarouselComponent 无限轮播组件
//
// Track 持有卡片数据和状态机，其余字段是渲染参数和本实例的指针交互状态。
// 交互状态只属于本实例，多个轮播之间互不影响。
type CarouselComponent struct {
	// Name 实例名称（日志、遥测）
	Name string

	// Track 卡片条和状态机
	Track *carousel.Track[Slide]

	// 视口尺寸（像素），位置由 PositionComponent 提供
	Width  float64
	Height float64

	// EdgeFade 视口两侧渐隐宽度
	EdgeFade float64

	// Background 背景色，渐隐从该颜色过渡到透明
	Background color.RGBA

	// Locale 当前语言
	Locale string

	// 指针交互状态
	PointerInside bool // 鼠标是否在视口内
	Pressed       bool // 是否在本视口内按下且尚未释放
	PressTouch    bool // 本次按下是否来自触摸
	HoverIndex    int  // 鼠标下的卡片索引，-1 表示没有

	// OnItemOpen 鼠标点击卡片时的回调（甩动后的误触点击不会触发）
	OnItemOpen func(index int)
}

// NewCarouselComponent 创建轮播组件
func NewCarouselComponent(name string, slides []Slide, opts carousel.Options, width, height float64) *CarouselComponent {
	opts.Name = name
	return &CarouselComponent{
		Name:       name,
		Track:      carousel.NewTrack(slides, opts),
		Width:      width,
		Height:     height,
		HoverIndex: -1,
	}
}

// Carousel 返回状态机
func (c *CarouselComponent) Carousel() *carousel.Carousel {
	return c.Track.Carousel()
}

// Contains 判断屏幕坐标是否在视口内
func (c *CarouselComponent) Contains(pos *PositionComponent, x, y float64) bool {
	return x >= pos.X && x < pos.X+c.Width && y >= pos.Y && y < pos.Y+c.Height
}

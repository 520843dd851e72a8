package carousel

import "math"

// minCopies 为保证接缝处连续，卡片序列至少渲染的份数
const minCopies = 3

// Placement 一个可见卡片的渲染位置
type Placement[T any] struct {
	Item        T
	Index       int     // 在原始序列中的索引
	RenderIndex int     // 在复制后的卡片条中的索引（copy × n + index）
	X           float64 // 相对视口左边缘的X坐标（已施加 -offset 位移）
}

// Track 持有卡片序列和对应的轮播状态机
//
// 卡片条由序列重复 Copies 份组成，整体平移 -offset。
// 构造时复制调用方的切片，之后不会修改卡片数据。
type Track[T any] struct {
	items    []T
	carousel *Carousel
}

// NewTrack 创建卡片条，opts.ItemCount 由 items 长度决定
func NewTrack[T any](items []T, opts Options) *Track[T] {
	owned := make([]T, len(items))
	copy(owned, items)
	opts.ItemCount = len(owned)
	return &Track[T]{
		items:    owned,
		carousel: New(opts),
	}
}

// Carousel 返回状态机
func (t *Track[T]) Carousel() *Carousel {
	return t.carousel
}

// Len 返回卡片数量
func (t *Track[T]) Len() int {
	return len(t.items)
}

// Item 返回指定索引的卡片
func (t *Track[T]) Item(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(t.items) {
		return zero, false
	}
	return t.items[index], true
}

// Copies 返回覆盖指定视口宽度所需的序列份数（至少 3 份）
func (t *Track[T]) Copies(viewportWidth float64) int {
	total := t.carousel.TotalWidth()
	if total <= 0 {
		return 0
	}
	// offset 最大接近 total，此时第一份几乎完全移出视口
	need := 1 + int(math.Ceil(viewportWidth/total))
	if need < minCopies {
		need = minCopies
	}
	return need
}

// Placements 返回与视口相交的所有卡片位置
//
// 首次 Update 之前只静态返回前 StaticPreviewCount 个卡片。
func (t *Track[T]) Placements(viewportWidth float64) []Placement[T] {
	n := len(t.items)
	c := t.carousel
	if n == 0 || c.TotalWidth() <= 0 {
		return nil
	}

	itemWidth := c.opts.ItemWidth
	stride := c.Stride()

	if !c.Started() {
		count := n
		if count > StaticPreviewCount {
			count = StaticPreviewCount
		}
		out := make([]Placement[T], 0, count)
		for i := 0; i < count; i++ {
			out = append(out, Placement[T]{Item: t.items[i], Index: i, RenderIndex: i, X: float64(i) * stride})
		}
		return out
	}

	tx := c.Translation()
	total := c.TotalWidth()
	copies := t.Copies(viewportWidth)

	out := make([]Placement[T], 0, n)
	for k := 0; k < copies; k++ {
		base := tx + float64(k)*total
		for i, item := range t.items {
			x := base + float64(i)*stride
			if x+itemWidth <= 0 || x >= viewportWidth {
				continue
			}
			out = append(out, Placement[T]{Item: item, Index: i, RenderIndex: k*n + i, X: x})
		}
	}
	return out
}

// ItemAt 返回视口X坐标处的卡片索引，落在间距中时返回 false
func (t *Track[T]) ItemAt(viewportX float64) (int, bool) {
	c := t.carousel
	if len(t.items) == 0 || c.TotalWidth() <= 0 || c.Stride() <= 0 {
		return -1, false
	}
	var p float64
	if c.Started() {
		p = Normalize(viewportX+c.Offset(), c.TotalWidth())
	} else {
		if viewportX < 0 {
			return -1, false
		}
		p = viewportX
	}
	index := int(p / c.Stride())
	if index >= len(t.items) || (!c.Started() && index >= StaticPreviewCount) {
		return -1, false
	}
	if p-float64(index)*c.Stride() > c.opts.ItemWidth {
		return -1, false
	}
	return index, true
}

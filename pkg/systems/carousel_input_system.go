package systems

import (
	"github.com/decker502/showreel/pkg/components"
	"github.com/decker502/showreel/pkg/ecs"
	"github.com/decker502/showreel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// CarouselPointerInput 轮播输入接口
// 用于依赖注入，支持测试时 mock
type CarouselPointerInput interface {
	// Pointer 返回本帧的统一指针状态（鼠标或触摸）
	Pointer() utils.PointerState
	// IsFocused 窗口是否有焦点，失去焦点时取消进行中的拖拽
	IsFocused() bool
}

// ebitenCarouselInput Ebitengine 默认实现
// 每个实例持有自己的指针跟踪器
type ebitenCarouselInput struct {
	tracker *utils.PointerTracker
}

func (e *ebitenCarouselInput) Pointer() utils.PointerState {
	return e.tracker.Poll()
}

func (e *ebitenCarouselInput) IsFocused() bool {
	return ebiten.IsFocused()
}

// CarouselInputSystem 轮播指针交互系统
//
// 职责：
//   - 鼠标进入/离开视口 → PointerEnter / PointerLeave
//   - 在视口内按下 → PointerDown，按住移动 → PointerMove（离开视口后继续跟踪）
//   - 释放 → PointerUp；指针没有离开物理参数的 TapSlop 范围时视为点击：
//     鼠标点击调用 Click，未被抑制时触发 OnItemOpen；触摸点按调用 TapItem
//   - 窗口失去焦点 → PointerCancel
//   - 更新悬停卡片索引（仅鼠标）
//
// 每帧只读取一次输入，所有轮播共享同一份指针状态。
type CarouselInputSystem struct {
	entityManager *ecs.EntityManager
	input         CarouselPointerInput
}

// NewEbitenPointerInput 返回读取 Ebitengine 鼠标/触摸的输入实现
// Pointer() 每次调用都会推进跟踪器，每帧只应调用一次
func NewEbitenPointerInput() CarouselPointerInput {
	return &ebitenCarouselInput{tracker: utils.NewPointerTracker()}
}

// NewCarouselInputSystem 创建轮播交互系统
func NewCarouselInputSystem(em *ecs.EntityManager) *CarouselInputSystem {
	return NewCarouselInputSystemWithInput(em, NewEbitenPointerInput())
}

// NewCarouselInputSystemWithInput 创建带自定义输入的轮播交互系统（用于测试）
func NewCarouselInputSystemWithInput(em *ecs.EntityManager, input CarouselPointerInput) *CarouselInputSystem {
	return &CarouselInputSystem{
		entityManager: em,
		input:         input,
	}
}

// Update 处理本帧的指针输入
func (s *CarouselInputSystem) Update(deltaTime float64) {
	ptr := s.input.Pointer()
	focused := s.input.IsFocused()

	entities := ecs.GetEntitiesWith2[*components.CarouselComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		comp, _ := ecs.GetComponent[*components.CarouselComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if comp == nil || pos == nil || comp.Track == nil {
			continue
		}
		s.updateCarousel(comp, pos, ptr, focused)
	}
}

func (s *CarouselInputSystem) updateCarousel(comp *components.CarouselComponent, pos *components.PositionComponent, ptr utils.PointerState, focused bool) {
	c := comp.Carousel()
	px, py := float64(ptr.X), float64(ptr.Y)
	localX := px - pos.X
	inside := comp.Contains(pos, px, py)

	// 失去焦点：取消拖拽，离开视口
	if !focused {
		if comp.Pressed {
			comp.Pressed = false
			c.PointerCancel()
		}
		if comp.PointerInside {
			comp.PointerInside = false
			c.PointerLeave()
		}
		comp.HoverIndex = -1
		return
	}

	// 悬停只对鼠标生效，触摸没有 hover
	if !ptr.Touch {
		if inside && !comp.PointerInside {
			c.PointerEnter()
		} else if !inside && comp.PointerInside {
			c.PointerLeave()
		}
		comp.PointerInside = inside
	} else if comp.PointerInside {
		comp.PointerInside = false
		c.PointerLeave()
	}

	switch {
	case ptr.Pressed && !comp.Pressed:
		// 只接受在视口内开始的按下；按住从外部拖入不算
		if ptr.JustPressed && inside {
			comp.Pressed = true
			comp.PressTouch = ptr.Touch
			c.PointerDown(localX)
		}

	case ptr.Pressed && comp.Pressed:
		c.PointerMove(localX)

	case !ptr.Pressed && comp.Pressed:
		comp.Pressed = false
		c.PointerUp(localX)
		if !c.DragMoved() && inside {
			s.handleTap(comp, localX)
		}
	}

	comp.HoverIndex = -1
	if inside && !ptr.Touch && !comp.Pressed {
		if index, ok := comp.Track.ItemAt(localX); ok {
			comp.HoverIndex = index
		}
	}
}

// handleTap 处理一次点击/点按（按下后没有拖动）
func (s *CarouselInputSystem) handleTap(comp *components.CarouselComponent, localX float64) {
	index, ok := comp.Track.ItemAt(localX)
	if !ok {
		return
	}
	c := comp.Carousel()

	if comp.PressTouch {
		c.TapItem(index)
		return
	}

	if c.Click(index) && comp.OnItemOpen != nil {
		comp.OnItemOpen(index)
	}
}

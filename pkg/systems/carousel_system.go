package systems

import (
	"time"

	"github.com/decker502/showreel/pkg/carousel"
	"github.com/decker502/showreel/pkg/components"
	"github.com/decker502/showreel/pkg/ecs"
	"github.com/decker502/showreel/pkg/telemetry"
)

const (
	// HoverFadeDuration 悬停高亮从 0 过渡到 1 的时间（秒）
	HoverFadeDuration = 0.5

	// DefaultPublishInterval 模式不变时两次遥测快照的最小间隔
	DefaultPublishInterval = 100 * time.Millisecond
)

// publishState 每个轮播最近一次发布的状态
type publishState struct {
	mode   carousel.Mode
	active int
	at     time.Time
}

// CarouselSystem 轮播推进系统
//
// 职责：
//   - 每帧调用 Carousel.Update（恢复计时、惯性滚动、交还 Auto）
//   - 更新悬停高亮（悬停卡片或触摸激活的卡片）
//   - 发布遥测快照：模式或激活卡片变化时立即发布，否则按间隔节流
type CarouselSystem struct {
	entityManager   *ecs.EntityManager
	sink            telemetry.Sink
	publishInterval time.Duration
	published       map[ecs.EntityID]publishState
}

// NewCarouselSystem 创建轮播推进系统
//
// 参数:
//   - em: 实体管理器
//   - sink: 遥测接收者，可为 nil（不发布）
func NewCarouselSystem(em *ecs.EntityManager, sink telemetry.Sink) *CarouselSystem {
	return &CarouselSystem{
		entityManager:   em,
		sink:            sink,
		publishInterval: DefaultPublishInterval,
		published:       make(map[ecs.EntityID]publishState),
	}
}

// SetPublishInterval 设置遥测节流间隔
func (s *CarouselSystem) SetPublishInterval(d time.Duration) {
	s.publishInterval = d
}

// Update 推进所有轮播
func (s *CarouselSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CarouselComponent](s.entityManager) {
		comp, _ := ecs.GetComponent[*components.CarouselComponent](s.entityManager, id)
		if comp == nil || comp.Track == nil {
			continue
		}
		c := comp.Carousel()
		c.Update()

		if highlight, ok := ecs.GetComponent[*components.HoverHighlightComponent](s.entityManager, id); ok {
			updateHighlight(highlight, comp, deltaTime)
		}

		s.publish(id, c)
	}
}

// updateHighlight 计算高亮目标并推进强度
// 触摸激活的卡片优先于鼠标悬停
func updateHighlight(h *components.HoverHighlightComponent, comp *components.CarouselComponent, deltaTime float64) {
	target := comp.HoverIndex
	if active, ok := comp.Carousel().ActiveItem(); ok {
		target = active
	}

	if target < 0 {
		h.IsActive = false
		h.Index = -1
		h.Intensity = 0
		return
	}

	if !h.IsActive || h.Index != target {
		h.IsActive = true
		h.Index = target
		h.Intensity = 0
	}
	h.Intensity += deltaTime / HoverFadeDuration
	if h.Intensity > 1 {
		h.Intensity = 1
	}
}

func (s *CarouselSystem) publish(id ecs.EntityID, c *carousel.Carousel) {
	if s.sink == nil {
		return
	}
	snap := c.Snapshot()
	last, seen := s.published[id]
	changed := !seen || last.mode != snap.Mode || last.active != snap.ActiveItem
	if !changed && snap.At.Sub(last.at) < s.publishInterval {
		return
	}
	s.published[id] = publishState{mode: snap.Mode, active: snap.ActiveItem, at: snap.At}
	s.sink.Publish(telemetry.FromCarousel(snap))
}

// Forget 清除实体的发布记录（实体删除时调用）
func (s *CarouselSystem) Forget(id ecs.EntityID) {
	delete(s.published, id)
}

package systems

import (
	"testing"
	"time"

	"github.com/decker502/showreel/pkg/carousel"
	"github.com/decker502/showreel/pkg/components"
	"github.com/decker502/showreel/pkg/telemetry"
)

// recordingSink 记录收到的快照
type recordingSink struct {
	snapshots []telemetry.Snapshot
}

func (r *recordingSink) Publish(s telemetry.Snapshot) {
	r.snapshots = append(r.snapshots, s)
}

func TestCarouselSystem_AdvancesMomentum(t *testing.T) {
	f := newCarouselFixture(t)
	system := NewCarouselSystem(f.em, nil)

	f.flick()
	c := f.carousel()
	before := c.Offset()

	f.clock.Advance(16 * time.Millisecond)
	system.Update(0.016)

	if c.Offset() <= before {
		t.Errorf("momentum should move the strip forward: %v -> %v", before, c.Offset())
	}
	if c.Velocity() >= carousel.DefaultMaxVelocity {
		t.Errorf("velocity should decay, got %v", c.Velocity())
	}

	// 足够多的帧之后交还 Auto
	for i := 0; i < 400 && c.Mode() == carousel.ModeMomentum; i++ {
		f.clock.Advance(16 * time.Millisecond)
		system.Update(0.016)
	}
	if c.Mode() != carousel.ModeAuto {
		t.Errorf("momentum should hand off to Auto, got %v", c.Mode())
	}
}

func TestCarouselSystem_ResumesAfterTap(t *testing.T) {
	f := newCarouselFixture(t)
	system := NewCarouselSystem(f.em, nil)
	c := f.carousel()

	c.TapItem(2)
	f.clock.Advance(2 * time.Second)
	system.Update(2)
	if c.Mode() != carousel.ModePaused {
		t.Fatalf("should still be paused before the deadline, got %v", c.Mode())
	}

	f.clock.Advance(time.Second)
	system.Update(1)
	if c.Mode() != carousel.ModeAuto {
		t.Errorf("should resume Auto at the deadline, got %v", c.Mode())
	}
}

func TestCarouselSystem_HoverHighlight(t *testing.T) {
	f := newCarouselFixture(t)
	highlight := &components.HoverHighlightComponent{Index: -1}
	f.em.AddComponent(f.entity, highlight)
	system := NewCarouselSystem(f.em, nil)

	f.comp.HoverIndex = 1
	system.Update(0.25)
	if !highlight.IsActive || highlight.Index != 1 {
		t.Fatalf("expected highlight on item 1, got %+v", highlight)
	}
	if highlight.Intensity != 0.5 {
		t.Errorf("expected intensity 0.5 after 0.25s, got %v", highlight.Intensity)
	}

	system.Update(1)
	if highlight.Intensity != 1 {
		t.Errorf("intensity should be capped at 1, got %v", highlight.Intensity)
	}

	// 切换卡片重新开始
	f.comp.HoverIndex = 3
	system.Update(0.1)
	if highlight.Index != 3 || highlight.Intensity != 0.2 {
		t.Errorf("switching items should restart the fade, got %+v", highlight)
	}

	// 触摸激活的卡片优先
	f.carousel().TapItem(4)
	system.Update(0.1)
	if highlight.Index != 4 {
		t.Errorf("active item should take precedence, got %+v", highlight)
	}

	f.comp.HoverIndex = -1
	f.clock.Advance(3 * time.Second)
	system.Update(0.1)
	if highlight.IsActive || highlight.Intensity != 0 {
		t.Errorf("highlight should clear when nothing is hovered or active, got %+v", highlight)
	}
}

func TestCarouselSystem_PublishThrottling(t *testing.T) {
	f := newCarouselFixture(t)
	sink := &recordingSink{}
	system := NewCarouselSystem(f.em, sink)

	system.Update(0.016)
	if len(sink.snapshots) != 1 {
		t.Fatalf("first update should publish, got %d", len(sink.snapshots))
	}
	if sink.snapshots[0].Carousel != "projects" || sink.snapshots[0].Mode != "auto" {
		t.Errorf("unexpected snapshot %+v", sink.snapshots[0])
	}

	// 间隔内不重复发布
	f.clock.Advance(50 * time.Millisecond)
	system.Update(0.05)
	if len(sink.snapshots) != 1 {
		t.Errorf("should throttle within interval, got %d", len(sink.snapshots))
	}

	f.clock.Advance(50 * time.Millisecond)
	system.Update(0.05)
	if len(sink.snapshots) != 2 {
		t.Errorf("should publish after interval, got %d", len(sink.snapshots))
	}

	// 模式变化立即发布
	f.carousel().TapItem(0)
	system.Update(0)
	if len(sink.snapshots) != 3 {
		t.Fatalf("mode change should publish immediately, got %d", len(sink.snapshots))
	}
	last := sink.snapshots[2]
	if last.Mode != "paused" || last.PauseReason != "item" || last.ActiveItem != 0 {
		t.Errorf("unexpected snapshot %+v", last)
	}

	// 激活卡片变化同样立即发布
	f.carousel().TapItem(1)
	system.Update(0)
	if len(sink.snapshots) != 4 {
		t.Errorf("active item change should publish immediately, got %d", len(sink.snapshots))
	}
}

func TestCarouselSystem_InertCarousel(t *testing.T) {
	f := newCarouselFixture(t)
	empty := components.NewCarouselComponent("empty", nil, carousel.Options{Clock: f.clock}, 800, 100)
	id := f.em.CreateEntity()
	f.em.AddComponent(id, empty)

	sink := &recordingSink{}
	system := NewCarouselSystem(f.em, sink)
	f.clock.Advance(time.Second)
	system.Update(1)

	if empty.Carousel().Animating() || empty.Carousel().Offset() != 0 {
		t.Error("empty carousel must stay inert")
	}
	if len(sink.snapshots) != 2 {
		t.Errorf("both carousels should publish once, got %d", len(sink.snapshots))
	}
}

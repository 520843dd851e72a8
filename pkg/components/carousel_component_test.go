package components

import (
	"testing"

	"github.com/decker502/showreel/pkg/carousel"
	"github.com/decker502/showreel/pkg/config"
)

func TestNewCarouselComponent(t *testing.T) {
	slides := []Slide{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	opts := carousel.DefaultOptions()
	opts.Name = "ignored"

	comp := NewCarouselComponent("projects", slides, opts, 800, 360)

	if comp.Carousel().Options().Name != "projects" {
		t.Errorf("component name should override options name, got %q", comp.Carousel().Options().Name)
	}
	if comp.Track.Len() != 3 {
		t.Errorf("expected 3 slides, got %d", comp.Track.Len())
	}
	if comp.HoverIndex != -1 {
		t.Errorf("HoverIndex should start at -1, got %d", comp.HoverIndex)
	}
	if comp.Carousel().TotalWidth() != 3*(carousel.DefaultItemWidth+carousel.DefaultGap) {
		t.Errorf("unexpected total width %v", comp.Carousel().TotalWidth())
	}
}

func TestCarouselComponent_Contains(t *testing.T) {
	comp := NewCarouselComponent("c", nil, carousel.DefaultOptions(), 200, 100)
	pos := &PositionComponent{X: 10, Y: 20}

	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{209, 119, true},
		{210, 50, false},
		{50, 120, false},
		{9, 50, false},
	}
	for _, tt := range tests {
		if got := comp.Contains(pos, tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSlide_DisplayTitle(t *testing.T) {
	project := Slide{Kind: SlideProject}
	if got := project.DisplayTitle("en"); got != config.DefaultProjectTitle {
		t.Errorf("untitled project should use default title, got %q", got)
	}

	logo := Slide{Kind: SlideLogo}
	if got := logo.DisplayTitle("en"); got != "" {
		t.Errorf("untitled logo should stay empty, got %q", got)
	}

	named := Slide{Kind: SlideLogo, Title: config.LocalizedText{"en": "YG"}}
	if got := named.DisplayTitle("ko"); got != "YG" {
		t.Errorf("expected YG, got %q", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/decker502/showreel/pkg/carousel"
)

func TestLoadCarouselConfigFromBytes(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *CarouselConfig)
	}{
		{
			name:        "empty file keeps defaults",
			yamlContent: ``,
			validate: func(t *testing.T, cfg *CarouselConfig) {
				if cfg.Defaults.Speed != carousel.DefaultSpeed {
					t.Errorf("expected default speed %v, got %v", carousel.DefaultSpeed, cfg.Defaults.Speed)
				}
				if cfg.Defaults.EdgeFade != DefaultEdgeFade {
					t.Errorf("expected default edge fade, got %v", cfg.Defaults.EdgeFade)
				}
				if cfg.Defaults.PauseOnHover == nil || !*cfg.Defaults.PauseOnHover {
					t.Error("pauseOnHover should default to true")
				}
			},
		},
		{
			name: "overrides and physics",
			yamlContent: `
defaults:
  speed: 60
  pauseOnHover: false
carousels:
  partners:
    speed: 40
    itemWidth: 160
physics:
  friction: 0.9
  resumeDelayMs: 1500
`,
			validate: func(t *testing.T, cfg *CarouselConfig) {
				if cfg.Defaults.Speed != 60 {
					t.Errorf("expected speed 60, got %v", cfg.Defaults.Speed)
				}
				// 未出现的字段保留默认值
				if cfg.Defaults.ItemWidth != carousel.DefaultItemWidth {
					t.Errorf("expected default item width, got %v", cfg.Defaults.ItemWidth)
				}
				p := cfg.Physics.ToPhysics()
				if p.Friction != 0.9 {
					t.Errorf("expected friction 0.9, got %v", p.Friction)
				}
				if p.ResumeDelay != 1500*time.Millisecond {
					t.Errorf("expected resume delay 1.5s, got %v", p.ResumeDelay)
				}
				if p.MaxVelocity != carousel.DefaultMaxVelocity {
					t.Errorf("missing physics fields should use defaults, got max velocity %v", p.MaxVelocity)
				}
			},
		},
		{
			name:        "negative speed",
			yamlContent: "defaults:\n  speed: -5\n",
			wantErr:     true,
			errContains: "speed must be >= 0",
		},
		{
			name:        "negative override gap",
			yamlContent: "carousels:\n  projects:\n    gap: -1\n",
			wantErr:     true,
			errContains: "projects: gap",
		},
		{
			name:        "friction out of range",
			yamlContent: "physics:\n  friction: 1.2\n",
			wantErr:     true,
			errContains: "friction",
		},
		{
			name:        "negative physics field",
			yamlContent: "physics:\n  maxVelocity: -1\n",
			wantErr:     true,
			errContains: "maxVelocity",
		},
		{
			name:        "malformed yaml",
			yamlContent: "defaults: [1, 2",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadCarouselConfigFromBytes([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestCarouselConfig_LayoutFor(t *testing.T) {
	cfg, err := LoadCarouselConfigFromBytes([]byte(`
defaults:
  speed: 50
  itemWidth: 240
  itemHeight: 360
  gap: 24
carousels:
  partners:
    speed: 40
    itemWidth: 160
    itemHeight: 80
    pauseOnHover: false
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	partners := cfg.LayoutFor("partners")
	if partners.Speed != 40 || partners.ItemWidth != 160 || partners.ItemHeight != 80 {
		t.Errorf("override not applied: %+v", partners)
	}
	if partners.Gap != 24 {
		t.Errorf("gap should be inherited from defaults, got %v", partners.Gap)
	}
	if partners.PauseOnHover == nil || *partners.PauseOnHover {
		t.Error("pauseOnHover override should be false")
	}

	unknown := cfg.LayoutFor("unknown")
	if unknown.Speed != 50 || unknown.ItemWidth != 240 {
		t.Errorf("unknown carousel should use defaults, got %+v", unknown)
	}
}

// TestCarouselConfig_LayoutForZeroOverride 覆盖项中的 0 也会覆盖公共布局
func TestCarouselConfig_LayoutForZeroOverride(t *testing.T) {
	cfg, err := LoadCarouselConfigFromBytes([]byte(`
defaults:
  speed: 50
  gap: 24
  edgeFade: 80
carousels:
  still:
    speed: 0
    gap: 0
    edgeFade: 0
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	still := cfg.LayoutFor("still")
	if still.Speed != 0 || still.Gap != 0 || still.EdgeFade != 0 {
		t.Errorf("zero overrides should apply, got %+v", still)
	}
	if still.ItemWidth != cfg.Defaults.ItemWidth {
		t.Errorf("absent fields should be inherited, got item width %v", still.ItemWidth)
	}
	if got := cfg.Options("still", 2, nil).Speed; got != 0 {
		t.Errorf("speed 0 override should stay 0 after scaling, got %v", got)
	}
}

func TestCarouselConfig_Options(t *testing.T) {
	cfg := DefaultCarouselConfig()
	clock := carousel.NewManualClock(time.Unix(0, 0))

	opts := cfg.Options("projects", 2, clock)
	if opts.Name != "projects" {
		t.Errorf("expected name projects, got %q", opts.Name)
	}
	if opts.Speed != 2*carousel.DefaultSpeed {
		t.Errorf("speed scale not applied: %v", opts.Speed)
	}
	if !opts.PauseOnHover {
		t.Error("pauseOnHover should default to true")
	}
	if opts.Clock != clock {
		t.Error("clock should be passed through")
	}
	if opts.Physics != carousel.DefaultPhysics() {
		t.Errorf("expected default physics, got %+v", opts.Physics)
	}

	// 非正倍率按 1 处理
	if got := cfg.Options("projects", 0, nil).Speed; got != carousel.DefaultSpeed {
		t.Errorf("zero speed scale should be ignored, got %v", got)
	}
}

func TestLoadCarouselConfig_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carousel.yaml")
	if err := os.WriteFile(path, []byte("defaults:\n  speed: 75\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCarouselConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Speed != 75 {
		t.Errorf("expected speed 75, got %v", cfg.Defaults.Speed)
	}
}

// TestShippedCarouselConfig 验证仓库内置的 data/carousel.yaml
func TestShippedCarouselConfig(t *testing.T) {
	cfg, err := LoadCarouselConfig(filepath.Join("..", "..", CarouselConfigPath))
	if err != nil {
		t.Fatalf("shipped carousel config should load: %v", err)
	}
	if cfg.Physics.ToPhysics() != carousel.DefaultPhysics() {
		t.Errorf("shipped physics should match defaults, got %+v", cfg.Physics.ToPhysics())
	}
	if cfg.LayoutFor("partners").ItemWidth != 160 {
		t.Errorf("partners override missing: %+v", cfg.LayoutFor("partners"))
	}
}

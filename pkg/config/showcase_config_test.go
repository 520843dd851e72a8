package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalizedText_Get(t *testing.T) {
	tests := []struct {
		name   string
		text   LocalizedText
		locale string
		want   string
	}{
		{"exact", LocalizedText{"ko": "프로젝트", "en": "Projects"}, "ko", "프로젝트"},
		{"fallback to en", LocalizedText{"en": "Projects"}, "ko", "Projects"},
		{"fallback to other", LocalizedText{"ko": "프로젝트"}, "en", "프로젝트"},
		{"empty value skipped", LocalizedText{"ko": "", "en": "Projects"}, "ko", "Projects"},
		{"sorted fallback", LocalizedText{"zh": "项目", "ja": "プロジェクト"}, "en", "プロジェクト"},
		{"nil", nil, "en", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.text.Get(tt.locale); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestProjectItem_DisplayTitle(t *testing.T) {
	p := ProjectItem{ID: 1}
	if got := p.DisplayTitle("ko"); got != DefaultProjectTitle {
		t.Errorf("missing title should fall back to %q, got %q", DefaultProjectTitle, got)
	}

	p.Title = LocalizedText{"en": "Magic Lamp Poster"}
	if got := p.DisplayTitle("ko"); got != "Magic Lamp Poster" {
		t.Errorf("expected english fallback, got %q", got)
	}
}

func TestLoadShowcaseConfigFromBytes(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *ShowcaseConfig)
	}{
		{
			name:        "empty uses en",
			yamlContent: ``,
			validate: func(t *testing.T, cfg *ShowcaseConfig) {
				if cfg.DefaultLocale != "en" || len(cfg.Locales) != 1 {
					t.Errorf("unexpected locales %q %v", cfg.DefaultLocale, cfg.Locales)
				}
				if len(cfg.Projects) != 0 {
					t.Error("no projects expected")
				}
			},
		},
		{
			name: "projects and partners",
			yamlContent: `
defaultLocale: ko
locales: [en, ko]
labels:
  duration: { ko: "기간", en: "Duration" }
projects:
  - id: 1
    title: { en: "Wine" }
    gradient: { from: "#fde68a", to: "#fca5a5" }
partners:
  - { name: "YG", color: "#111827" }
`,
			validate: func(t *testing.T, cfg *ShowcaseConfig) {
				if cfg.DefaultLocale != "ko" {
					t.Errorf("expected ko, got %q", cfg.DefaultLocale)
				}
				if cfg.Label("duration", "ko") != "기간" {
					t.Errorf("unexpected label %q", cfg.Label("duration", "ko"))
				}
				if cfg.Label("missing", "en") != "missing" {
					t.Errorf("missing label should return key, got %q", cfg.Label("missing", "en"))
				}
				if len(cfg.Projects) != 1 || cfg.Projects[0].Gradient.From != "#fde68a" {
					t.Errorf("unexpected projects %+v", cfg.Projects)
				}
				if len(cfg.Partners) != 1 || cfg.Partners[0].Name != "YG" {
					t.Errorf("unexpected partners %+v", cfg.Partners)
				}
			},
		},
		{
			name:        "default locale not supported",
			yamlContent: "defaultLocale: fr\nlocales: [en, ko]\n",
			wantErr:     true,
			errContains: "defaultLocale",
		},
		{
			name:        "duplicate project id",
			yamlContent: "projects:\n  - id: 1\n  - id: 1\n",
			wantErr:     true,
			errContains: "duplicate id 1",
		},
		{
			name:        "bad gradient",
			yamlContent: "projects:\n  - id: 1\n    gradient: { from: \"red\" }\n",
			wantErr:     true,
			errContains: "invalid color",
		},
		{
			name:        "partner without name",
			yamlContent: "partners:\n  - { color: \"#000000\" }\n",
			wantErr:     true,
			errContains: "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadShowcaseConfigFromBytes([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestShowcaseConfig_NextLocale(t *testing.T) {
	cfg := &ShowcaseConfig{DefaultLocale: "en", Locales: []string{"en", "ko"}}

	if got := cfg.NextLocale("en"); got != "ko" {
		t.Errorf("NextLocale(en) = %q, want ko", got)
	}
	if got := cfg.NextLocale("ko"); got != "en" {
		t.Errorf("NextLocale(ko) = %q, want en", got)
	}
	if got := cfg.NextLocale("fr"); got != "en" {
		t.Errorf("unsupported locale should reset to default, got %q", got)
	}
}

// TestShippedShowcaseConfig 验证仓库内置的 data/showcase.yaml
func TestShippedShowcaseConfig(t *testing.T) {
	cfg, err := LoadShowcaseConfig(filepath.Join("..", "..", ShowcaseConfigPath))
	if err != nil {
		t.Fatalf("shipped showcase config should load: %v", err)
	}
	if len(cfg.Projects) != 6 {
		t.Errorf("expected 6 projects, got %d", len(cfg.Projects))
	}
	if len(cfg.Partners) == 0 {
		t.Error("expected partner logos")
	}
	if !cfg.HasLocale("ko") || !cfg.HasLocale("en") {
		t.Errorf("expected ko and en locales, got %v", cfg.Locales)
	}
	for _, p := range cfg.Projects {
		if p.DisplayTitle("ko") == DefaultProjectTitle {
			t.Errorf("project %d has no title", p.ID)
		}
	}
}

package utils

import (
	"strings"
	"testing"
)

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	font, err := NewFontCache().Face("", 16)
	if err != nil {
		t.Fatalf("builtin font should load: %v", err)
	}

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		expectMin int // 期望最少的行数
	}{
		{
			name:      "短文本不换行",
			input:     "Projects",
			maxWidth:  1000,
			expectMin: 1,
		},
		{
			name:      "长文本自动换行",
			input:     "Infinite Lee Seong Yeol China Fan Meeting 1,2",
			maxWidth:  120,
			expectMin: 2,
		},
		{
			name:      "空文本",
			input:     "",
			maxWidth:  100,
			expectMin: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)
			if len(lines) < tt.expectMin {
				t.Errorf("expected at least %d lines, got %d: %q", tt.expectMin, len(lines), lines)
			}
			if tt.input != "" {
				joined := strings.ReplaceAll(strings.Join(lines, ""), " ", "")
				if joined != strings.ReplaceAll(tt.input, " ", "") {
					t.Errorf("wrapping lost characters: %q", lines)
				}
			}
		})
	}
}

// TestWrapText_WordBoundaries 在空格处断行，超长单词按字符拆分
func TestWrapText_WordBoundaries(t *testing.T) {
	font, err := NewFontCache().Face("", 16)
	if err != nil {
		t.Fatalf("builtin font should load: %v", err)
	}

	words := "Fan Meeting Homepage Production"
	for _, line := range WrapText(words, font, MeasureTextWidth("Homepage", font)+1) {
		if strings.HasPrefix(line, " ") || strings.HasSuffix(line, " ") {
			t.Errorf("line %q should be trimmed", line)
		}
		for _, w := range strings.Fields(line) {
			if !strings.Contains(words, w) {
				t.Errorf("line %q split a word", line)
			}
		}
	}

	long := "Supercalifragilistic"
	lines := WrapText(long, font, 40)
	if len(lines) < 2 {
		t.Fatalf("a word wider than the line should be split, got %q", lines)
	}
	if strings.Join(lines, "") != long {
		t.Errorf("split lost characters: %q", lines)
	}
	for _, line := range lines {
		if n := len([]rune(line)); n > 1 && MeasureTextWidth(line, font) > 40 {
			t.Errorf("line %q exceeds 40px", line)
		}
	}
}

func TestWrapText_NilFont(t *testing.T) {
	lines := WrapText("anything", nil, 100)
	if len(lines) != 1 || lines[0] != "anything" {
		t.Errorf("nil font should return input unchanged, got %q", lines)
	}
}

func TestTruncateText(t *testing.T) {
	font, err := NewFontCache().Face("", 16)
	if err != nil {
		t.Fatalf("builtin font should load: %v", err)
	}

	if got := TruncateText("YG", font, 200); got != "YG" {
		t.Errorf("short text should not be truncated, got %q", got)
	}

	long := "CLNL Body wipes, DNS Perfume Oil, Mas Den Bruno"
	got := TruncateText(long, font, 100)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated text should end with ellipsis, got %q", got)
	}
	if MeasureTextWidth(got, font) > 100 {
		t.Errorf("truncated text %q is wider than 100px", got)
	}
}

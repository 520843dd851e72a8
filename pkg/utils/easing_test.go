package utils

import (
	"math"
	"testing"
)

func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		t        float64
		expected float64
	}{
		{"起点", 0, 0},
		{"中点", 0.5, 0.875},
		{"终点", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EaseOutCubic(tt.t); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.t, got, tt.expected)
			}
		})
	}

	// 缓出：前半段完成的进度超过一半，且单调递增
	prev := 0.0
	for i := 1; i <= 10; i++ {
		v := EaseOutCubic(float64(i) / 10)
		if v < prev {
			t.Fatalf("EaseOutCubic 不单调: f(%v)=%v < %v", float64(i)/10, v, prev)
		}
		prev = v
	}
}

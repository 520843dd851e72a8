package carousel

import "time"

// velocitySpan 估算松手速度时使用的最近采样数
const velocitySpan = 3

// Sample 一次指针采样
type Sample struct {
	X  float64   // 指针X坐标（px）
	At time.Time // 采样时间
}

// SampleHistory 拖拽期间的指针采样历史
//
// 只保留距最新采样 window 以内的采样，且最多 max 个。
type SampleHistory struct {
	samples []Sample
	window  time.Duration
	max     int
}

// NewSampleHistory 创建采样历史
func NewSampleHistory(window time.Duration, max int) *SampleHistory {
	if max < 2 {
		max = DefaultMaxSamples
	}
	if window <= 0 {
		window = DefaultSampleWindow
	}
	return &SampleHistory{
		samples: make([]Sample, 0, max),
		window:  window,
		max:     max,
	}
}

// Reset 清空历史并以一个采样开始
func (h *SampleHistory) Reset(s Sample) {
	h.samples = append(h.samples[:0], s)
}

// Clear 清空历史
func (h *SampleHistory) Clear() {
	h.samples = h.samples[:0]
}

// Add 追加采样并剪除过期采样
func (h *SampleHistory) Add(s Sample) {
	h.samples = append(h.samples, s)

	cutoff := s.At.Add(-h.window)
	drop := 0
	for drop < len(h.samples)-1 && h.samples[drop].At.Before(cutoff) {
		drop++
	}
	if over := len(h.samples) - drop - h.max; over > 0 {
		drop += over
	}
	if drop > 0 {
		h.samples = append(h.samples[:0], h.samples[drop:]...)
	}
}

// Len 返回当前保留的采样数
func (h *SampleHistory) Len() int {
	return len(h.samples)
}

// Samples 返回采样副本（从旧到新）
func (h *SampleHistory) Samples() []Sample {
	out := make([]Sample, len(h.samples))
	copy(out, h.samples)
	return out
}

// Velocity 估算当前速度（px/s）
//
// 取最近 2~3 个采样，用最早与最新采样的位移除以时间差。
// 采样不足 2 个或时间差为 0 时返回 0。
func (h *SampleHistory) Velocity() float64 {
	n := len(h.samples)
	if n < 2 {
		return 0
	}
	first := h.samples[0]
	if n > velocitySpan {
		first = h.samples[n-velocitySpan]
	}
	last := h.samples[n-1]

	dt := last.At.Sub(first.At).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.X - first.X) / dt
}

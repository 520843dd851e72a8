package utils

// EaseOutCubic 三次方缓出，开始快、结束慢
// t ∈ [0, 1]，公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

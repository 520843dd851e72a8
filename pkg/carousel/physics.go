package carousel

import (
	"math"
	"time"
)

// 物理参数默认值
const (
	// DefaultFriction 每个参考帧的速度保留比例
	DefaultFriction = 0.95
	// DefaultReferenceTick 摩擦系数对应的参考帧时长（约 60fps）
	DefaultReferenceTick = 16 * time.Millisecond
	// DefaultMinVelocity 惯性滚动的最小速度（px/s），低于此值交还给自动滚动
	DefaultMinVelocity = 0.5
	// DefaultAmplification 松手速度放大倍数
	DefaultAmplification = 2.5
	// DefaultMaxVelocity 惯性初速度上限（px/s）
	DefaultMaxVelocity = 3000.0
	// DefaultSampleWindow 指针采样保留窗口
	DefaultSampleWindow = 100 * time.Millisecond
	// DefaultMaxSamples 指针采样最大保留数量
	DefaultMaxSamples = 10
	// DefaultResumeDelay 点按卡片后自动恢复的延迟
	DefaultResumeDelay = 3 * time.Second
	// DefaultClickSuppressVelocity 松手惯性速度超过此值时，随后的点击视为误触（px/s）
	DefaultClickSuppressVelocity = 100.0
	// DefaultClickSuppressWindow 误触抑制的有效时长
	DefaultClickSuppressWindow = 300 * time.Millisecond
	// DefaultTapSlop 按下后指针移动不超过该距离（px）时松手仍视为点击
	DefaultTapSlop = 6.0
)

// maxRestTicks TicksToRest 的迭代上限
const maxRestTicks = 1 << 20

// Physics 拖拽与惯性的物理参数
//
// 零值字段在 WithDefaults 中被替换为默认值，因为这些参数的零值都没有意义。
type Physics struct {
	// Friction 每个参考帧的速度保留比例，取值 (0, 1)
	Friction float64
	// ReferenceTick Friction 所对应的帧时长
	ReferenceTick time.Duration
	// MinVelocity 惯性滚动的最小速度（px/s）
	MinVelocity float64
	// Amplification 松手速度放大倍数（> 1）
	Amplification float64
	// MaxVelocity 惯性初速度绝对值上限（px/s）
	MaxVelocity float64
	// SampleWindow 指针采样保留窗口
	SampleWindow time.Duration
	// MaxSamples 指针采样最大保留数量
	MaxSamples int
	// ResumeDelay 点按卡片暂停后自动恢复的延迟
	ResumeDelay time.Duration
	// ClickSuppressVelocity 触发误触抑制的惯性速度阈值（px/s）
	ClickSuppressVelocity float64
	// ClickSuppressWindow 误触抑制的有效时长
	ClickSuppressWindow time.Duration
	// TapSlop 点击容差：整个按下期间位移不超过该值时松手不产生惯性
	TapSlop float64
}

// DefaultPhysics 返回默认物理参数
func DefaultPhysics() Physics {
	return Physics{
		Friction:              DefaultFriction,
		ReferenceTick:         DefaultReferenceTick,
		MinVelocity:           DefaultMinVelocity,
		Amplification:         DefaultAmplification,
		MaxVelocity:           DefaultMaxVelocity,
		SampleWindow:          DefaultSampleWindow,
		MaxSamples:            DefaultMaxSamples,
		ResumeDelay:           DefaultResumeDelay,
		ClickSuppressVelocity: DefaultClickSuppressVelocity,
		ClickSuppressWindow:   DefaultClickSuppressWindow,
		TapSlop:               DefaultTapSlop,
	}
}

// WithDefaults 将无效或未设置的字段替换为默认值
func (p Physics) WithDefaults() Physics {
	d := DefaultPhysics()
	if p.Friction <= 0 || p.Friction >= 1 {
		p.Friction = d.Friction
	}
	if p.ReferenceTick <= 0 {
		p.ReferenceTick = d.ReferenceTick
	}
	if p.MinVelocity <= 0 {
		p.MinVelocity = d.MinVelocity
	}
	if p.Amplification <= 0 {
		p.Amplification = d.Amplification
	}
	if p.MaxVelocity <= 0 {
		p.MaxVelocity = d.MaxVelocity
	}
	if p.SampleWindow <= 0 {
		p.SampleWindow = d.SampleWindow
	}
	if p.MaxSamples < 2 {
		p.MaxSamples = d.MaxSamples
	}
	if p.ResumeDelay <= 0 {
		p.ResumeDelay = d.ResumeDelay
	}
	if p.ClickSuppressVelocity <= 0 {
		p.ClickSuppressVelocity = d.ClickSuppressVelocity
	}
	if p.ClickSuppressWindow <= 0 {
		p.ClickSuppressWindow = d.ClickSuppressWindow
	}
	if p.TapSlop <= 0 {
		p.TapSlop = d.TapSlop
	}
	return p
}

// Normalize 将 x 归一化到 [0, width)
//
// 等价于 ((x % width) + width) % width，但对已在区间内的值原样返回，
// 因此 Normalize(Normalize(x)) == Normalize(x) 严格成立。
// width <= 0 或 x 非有限值时返回 0。
func Normalize(x, width float64) float64 {
	if width <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	r := math.Mod(x, width)
	if r < 0 {
		r += width
	}
	// 极小的负数加上 width 后可能舍入为 width
	if r >= width {
		r = 0
	}
	return r
}

// SeedVelocity 根据松手速度计算惯性初速度
//
// 指针向右拖动时内容向右移动（offset 减小），因此惯性延续同一方向需要取反。
// 结果乘以放大倍数并按 MaxVelocity 截断，保留符号。
func SeedVelocity(release float64, p Physics) float64 {
	v := -release * p.Amplification
	if v > p.MaxVelocity {
		return p.MaxVelocity
	}
	if v < -p.MaxVelocity {
		return -p.MaxVelocity
	}
	return v
}

// decayRate 返回连续时间衰减率 k（每秒），v(t) = v0·e^(k·t)
func decayRate(p Physics) float64 {
	return math.Log(p.Friction) / p.ReferenceTick.Seconds()
}

// Decay 返回经过 dt 后的速度
// v(dt) = v0 × Friction^(dt / ReferenceTick)，与帧率无关
func Decay(v float64, dt time.Duration, p Physics) float64 {
	if dt <= 0 {
		return v
	}
	return v * math.Pow(p.Friction, dt.Seconds()/p.ReferenceTick.Seconds())
}

// Distance 返回初速度 v 在 dt 内的位移（指数衰减速度的精确积分）
// 无论 dt 被拆成多少帧，累计位移都相同
func Distance(v float64, dt time.Duration, p Physics) float64 {
	if dt <= 0 || v == 0 {
		return 0
	}
	k := decayRate(p)
	return v * (math.Exp(k*dt.Seconds()) - 1) / k
}

// TicksToRest 返回以参考帧步进时速度降到 MinVelocity 以下所需的帧数
// |v0| 已低于阈值时返回 0
func TicksToRest(v0 float64, p Physics) int {
	v := math.Abs(v0)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	ticks := 0
	for v >= p.MinVelocity && ticks < maxRestTicks {
		v *= p.Friction
		ticks++
	}
	return ticks
}

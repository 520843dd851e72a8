// Package carousel 实现无限循环轮播的运动状态机
//
// 轮播维护一个连续的水平偏移量 offset（px），空闲时匀速自动前进，
// 指针按下后交给拖拽控制，松手后按指数衰减做惯性滚动，并支持悬停暂停
// 与点按卡片暂停（超时自动恢复）。
//
// 本包不依赖任何渲染引擎：ebiten 前端（pkg/systems）和终端前端（pkg/tui）
// 都只调用这里的事件方法和 Update，并读取 Offset/Translation 绘制卡片条。
//
// 所有方法都假定在同一个 UI 线程上调用，不做加锁。
package carousel

import (
	"log"
	"math"
	"time"
)

// 原版组件的默认属性
const (
	DefaultSpeed      = 50.0  // px/s
	DefaultItemWidth  = 240.0 // px
	DefaultItemHeight = 360.0 // px
	DefaultGap        = 24.0  // px

	// StaticPreviewCount 首次 Update 之前静态渲染的卡片数
	StaticPreviewCount = 4
)

// Options 轮播构造参数
type Options struct {
	// Name 实例名称，仅用于日志和遥测
	Name string

	ItemCount  int
	ItemWidth  float64
	ItemHeight float64
	Gap        float64

	// Speed 自动滚动速度（px/s），负值按 0 处理
	Speed float64

	// PauseOnHover 用户交互过一次后，悬停是否暂停
	PauseOnHover bool

	// Physics 拖拽与惯性参数，零值字段使用默认值
	Physics Physics

	// Clock 时间源，nil 时使用系统时间
	Clock Clock
}

// DefaultOptions 返回默认构造参数（与原版组件的默认属性一致）
func DefaultOptions() Options {
	return Options{
		ItemWidth:    DefaultItemWidth,
		ItemHeight:   DefaultItemHeight,
		Gap:          DefaultGap,
		Speed:        DefaultSpeed,
		PauseOnHover: true,
		Physics:      DefaultPhysics(),
	}
}

// Snapshot 轮播状态的只读快照
type Snapshot struct {
	Name        string
	Mode        Mode
	PauseReason PauseReason
	Offset      float64
	Velocity    float64
	ActiveItem  int // -1 表示没有激活的卡片
	Hovered     bool
	Interacted  bool
	TotalWidth  float64
	At          time.Time
}

// Carousel 无限轮播状态机
//
// offset 只有一个权威来源：Auto 模式下由锚点和经过时间推导，
// 其他模式下为 offset 字段。所有模式切换都经过 transition。
type Carousel struct {
	opts  Options
	phys  Physics
	clock Clock

	stride     float64 // itemWidth + gap
	totalWidth float64

	mode        Mode
	pauseReason PauseReason

	// Auto 模式锚点
	anchorOffset float64
	anchorTime   time.Time

	// 非 Auto 模式下的偏移
	offset float64

	// 拖拽状态
	dragStartOffset float64
	dragStartX      float64
	dragLastX       float64
	dragMoved       bool
	history         *SampleHistory

	// 惯性状态
	velocity float64
	lastTick time.Time

	// 点按暂停
	activeItem int
	resumeAt   time.Time // 零值表示没有待触发的恢复计时器

	hovered            bool
	interacted         bool
	suppressClickUntil time.Time

	started bool
	closed  bool
}

// New 创建轮播
//
// totalWidth = ItemCount × (ItemWidth + Gap)。totalWidth 不为正时轮播处于惰性状态：
// 不前进、不响应事件、Animating 恒为 false。
func New(opts Options) *Carousel {
	if opts.ItemCount < 0 {
		opts.ItemCount = 0
	}
	if opts.ItemWidth < 0 {
		opts.ItemWidth = 0
	}
	if opts.ItemHeight < 0 {
		opts.ItemHeight = 0
	}
	if opts.Gap < 0 {
		opts.Gap = 0
	}
	if opts.Speed < 0 || math.IsNaN(opts.Speed) {
		opts.Speed = 0
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}

	phys := opts.Physics.WithDefaults()
	stride := opts.ItemWidth + opts.Gap

	c := &Carousel{
		opts:       opts,
		phys:       phys,
		clock:      opts.Clock,
		stride:     stride,
		totalWidth: float64(opts.ItemCount) * stride,
		mode:       ModeAuto,
		anchorTime: opts.Clock.Now(),
		history:    NewSampleHistory(phys.SampleWindow, phys.MaxSamples),
		activeItem: -1,
	}
	return c
}

// inert 轮播是否不可运动（没有卡片或已卸载）
func (c *Carousel) inert() bool {
	return c.closed || c.totalWidth <= 0
}

// TotalWidth 返回循环周期宽度
func (c *Carousel) TotalWidth() float64 {
	return c.totalWidth
}

// Stride 返回单个卡片占用的宽度（卡片宽度 + 间距）
func (c *Carousel) Stride() float64 {
	return c.stride
}

// Options 返回规范化后的构造参数
func (c *Carousel) Options() Options {
	return c.opts
}

// Physics 返回生效的物理参数
func (c *Carousel) Physics() Physics {
	return c.phys
}

// LoopDuration 返回自动滚动一整圈所需时间，速度为 0 或没有卡片时返回 0
func (c *Carousel) LoopDuration() time.Duration {
	if c.opts.Speed <= 0 || c.totalWidth <= 0 {
		return 0
	}
	return time.Duration(math.Round(c.totalWidth / c.opts.Speed * float64(time.Second)))
}

// Mode 返回当前运动模式
func (c *Carousel) Mode() Mode {
	return c.mode
}

// PauseReason 返回暂停原因（非暂停模式下为 PauseNone）
func (c *Carousel) PauseReason() PauseReason {
	return c.pauseReason
}

// Velocity 返回惯性速度（px/s），非惯性模式下为 0
func (c *Carousel) Velocity() float64 {
	return c.velocity
}

// DragMoved 最近一次按下后指针是否离开过 TapSlop 范围
// 为 false 时松手应按点击处理
func (c *Carousel) DragMoved() bool {
	return c.dragMoved
}

// ActiveItem 返回点按激活的卡片索引
func (c *Carousel) ActiveItem() (int, bool) {
	return c.activeItem, c.activeItem >= 0
}

// Hovered 返回指针是否在轮播容器上
func (c *Carousel) Hovered() bool {
	return c.hovered
}

// Interacted 返回用户是否交互过
func (c *Carousel) Interacted() bool {
	return c.interacted
}

// Started 返回是否已经执行过至少一次 Update
func (c *Carousel) Started() bool {
	return c.started
}

// Closed 返回是否已卸载
func (c *Carousel) Closed() bool {
	return c.closed
}

// Animating 返回是否需要持续的动画帧驱动
// 只有 Auto 和 Momentum 模式需要；惰性轮播永远不需要
func (c *Carousel) Animating() bool {
	if c.inert() {
		return false
	}
	return c.mode == ModeAuto || c.mode == ModeMomentum
}

// ResumeDeadline 返回点按暂停的自动恢复时间
func (c *Carousel) ResumeDeadline() (time.Time, bool) {
	return c.resumeAt, !c.resumeAt.IsZero()
}

// Offset 返回当前偏移，范围 [0, TotalWidth)
func (c *Carousel) Offset() float64 {
	return c.offsetAt(c.clock.Now())
}

// Translation 返回卡片条应施加的水平位移（-offset）
func (c *Carousel) Translation() float64 {
	return -c.Offset()
}

// offsetAt 计算指定时刻的偏移
func (c *Carousel) offsetAt(now time.Time) float64 {
	if c.totalWidth <= 0 {
		return 0
	}
	if c.mode == ModeAuto && !c.closed {
		elapsed := now.Sub(c.anchorTime).Seconds()
		if elapsed < 0 {
			elapsed = 0
		}
		return Normalize(c.anchorOffset+c.opts.Speed*elapsed, c.totalWidth)
	}
	return c.offset
}

// Snapshot 返回当前状态快照
func (c *Carousel) Snapshot() Snapshot {
	now := c.clock.Now()
	return Snapshot{
		Name:        c.opts.Name,
		Mode:        c.mode,
		PauseReason: c.pauseReason,
		Offset:      c.offsetAt(now),
		Velocity:    c.velocity,
		ActiveItem:  c.activeItem,
		Hovered:     c.hovered,
		Interacted:  c.interacted,
		TotalWidth:  c.totalWidth,
		At:          now,
	}
}

// transition 唯一的模式切换入口
//
// 切换前先把当前偏移固化到 offset 字段，然后按目标模式重置相关状态：
//   - Auto：以当前偏移和时间重新锚定，清除激活卡片和恢复计时器
//   - Dragging：取消惯性和恢复计时器
//   - Momentum：记录惯性起始帧时间
//   - Paused：冻结偏移，停止惯性
func (c *Carousel) transition(to Mode, now time.Time) {
	from := c.mode
	c.offset = c.offsetAt(now)

	switch to {
	case ModeAuto:
		c.anchorOffset = c.offset
		c.anchorTime = now
		c.velocity = 0
		c.pauseReason = PauseNone
		c.activeItem = -1
		c.resumeAt = time.Time{}
	case ModeDragging:
		c.velocity = 0
		c.pauseReason = PauseNone
		c.activeItem = -1
		c.resumeAt = time.Time{}
	case ModeMomentum:
		c.lastTick = now
		c.pauseReason = PauseNone
	case ModePaused:
		c.velocity = 0
	}

	c.mode = to
	if from != to {
		log.Printf("[Carousel] %s: %s -> %s (offset=%.1f)", c.opts.Name, from, to, c.offset)
	}
}

// PointerDown 指针在轨道内按下，进入拖拽
// 进行中的惯性和待触发的恢复计时器都会被取消
func (c *Carousel) PointerDown(x float64) {
	if c.inert() {
		return
	}
	now := c.clock.Now()
	c.interacted = true
	c.transition(ModeDragging, now)

	c.dragStartOffset = c.offset
	c.dragStartX = x
	c.dragLastX = x
	c.dragMoved = false
	c.history.Reset(Sample{X: x, At: now})
}

// PointerMove 拖拽中指针移动
// offset = normalize(拖拽起点偏移 - 指针位移)
func (c *Carousel) PointerMove(x float64) {
	if c.inert() || c.mode != ModeDragging {
		return
	}
	now := c.clock.Now()
	c.dragLastX = x
	if math.Abs(x-c.dragStartX) > c.phys.TapSlop {
		c.dragMoved = true
	}
	c.offset = Normalize(c.dragStartOffset-(x-c.dragStartX), c.totalWidth)
	c.history.Add(Sample{X: x, At: now})
}

// PointerUp 结束拖拽
//
// 指针始终没有离开 TapSlop 范围时视为点击：直接回到 Auto，不产生惯性也不抑制点击。
// 否则根据保留的采样估算松手速度；放大后的速度超过 MinVelocity 进入惯性滚动，
// 否则直接回到 Auto。速度超过 ClickSuppressVelocity 时，随后短时间内的点击被抑制。
func (c *Carousel) PointerUp(x float64) {
	if c.inert() || c.mode != ModeDragging {
		return
	}
	c.PointerMove(x)

	now := c.clock.Now()
	release := c.history.Velocity()
	c.history.Clear()
	if !c.dragMoved {
		c.transition(ModeAuto, now)
		return
	}
	seed := SeedVelocity(release, c.phys)

	if math.Abs(seed) > c.phys.ClickSuppressVelocity {
		c.suppressClickUntil = now.Add(c.phys.ClickSuppressWindow)
	}

	if math.Abs(seed) > c.phys.MinVelocity {
		c.transition(ModeMomentum, now)
		c.velocity = seed
		return
	}
	c.transition(ModeAuto, now)
}

// PointerCancel 拖拽被系统取消（例如触摸被打断），按最后位置松手处理
func (c *Carousel) PointerCancel() {
	if c.inert() || c.mode != ModeDragging {
		return
	}
	c.PointerUp(c.dragLastX)
}

// PointerEnter 指针进入轮播容器
// 开启 PauseOnHover 且用户交互过时，Auto 进入悬停暂停
func (c *Carousel) PointerEnter() {
	if c.inert() {
		return
	}
	c.hovered = true
	if c.mode == ModeAuto && c.opts.PauseOnHover && c.interacted {
		c.transition(ModePaused, c.clock.Now())
		c.pauseReason = PauseHover
	}
}

// PointerLeave 指针离开轮播容器
// 悬停暂停（非拖拽、无激活卡片）时恢复 Auto
func (c *Carousel) PointerLeave() {
	if c.inert() {
		return
	}
	c.hovered = false
	if c.mode == ModePaused && c.pauseReason == PauseHover {
		c.transition(ModeAuto, c.clock.Now())
	}
}

// TapItem 触摸点按单个卡片（非拖拽）
// 激活该卡片并暂停，ResumeDelay 后自动恢复；重复点按会重置计时器
func (c *Carousel) TapItem(index int) {
	if c.inert() || c.mode == ModeDragging {
		return
	}
	if index < 0 || index >= c.opts.ItemCount {
		return
	}
	now := c.clock.Now()
	c.interacted = true
	c.transition(ModePaused, now)
	c.pauseReason = PauseItem
	c.activeItem = index
	c.resumeAt = now.Add(c.phys.ResumeDelay)
}

// Click 报告对卡片的点击是否应当生效
// 拖拽中或刚刚快速甩动之后的点击返回 false（抑制一次）
func (c *Carousel) Click(index int) bool {
	if c.inert() || c.mode == ModeDragging {
		return false
	}
	if index < 0 || index >= c.opts.ItemCount {
		return false
	}
	now := c.clock.Now()
	if !c.suppressClickUntil.IsZero() && now.Before(c.suppressClickUntil) {
		c.suppressClickUntil = time.Time{}
		log.Printf("[Carousel] %s: click on item %d suppressed after flick", c.opts.Name, index)
		return false
	}
	return true
}

// Update 推进一帧
//
// 检查点按暂停的恢复时间，推进惯性滚动。Auto 模式的偏移由时间直接推导，
// 这里无需处理。惰性或已卸载的轮播直接返回。
func (c *Carousel) Update() {
	if c.inert() {
		return
	}
	now := c.clock.Now()
	c.started = true

	switch c.mode {
	case ModePaused:
		if c.pauseReason == PauseItem && !c.resumeAt.IsZero() && !now.Before(c.resumeAt) {
			c.transition(ModeAuto, now)
		}
	case ModeMomentum:
		c.stepMomentum(now)
	}
}

// stepMomentum 惯性滚动一步
func (c *Carousel) stepMomentum(now time.Time) {
	dt := now.Sub(c.lastTick)
	if dt <= 0 {
		return
	}
	c.lastTick = now

	v0 := c.velocity
	c.velocity = Decay(v0, dt, c.phys)
	c.offset = Normalize(c.offset+Distance(v0, dt, c.phys), c.totalWidth)

	if math.Abs(c.velocity) < c.phys.MinVelocity {
		c.transition(ModeAuto, now)
	}
}

// Close 卸载轮播
// 取消恢复计时器和惯性滚动，此后所有事件和 Update 都不再生效
func (c *Carousel) Close() {
	if c.closed {
		return
	}
	now := c.clock.Now()
	c.offset = c.offsetAt(now)
	c.velocity = 0
	c.resumeAt = time.Time{}
	c.history.Clear()
	c.closed = true
	log.Printf("[Carousel] %s: closed", c.opts.Name)
}

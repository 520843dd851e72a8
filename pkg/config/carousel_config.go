package config

import (
	"fmt"
	"time"

	"github.com/decker502/showreel/pkg/carousel"
	"github.com/decker502/showreel/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// CarouselConfigPath 内置轮播配置路径
const CarouselConfigPath = "data/carousel.yaml"

// CarouselConfig 轮播布局与物理参数配置
//
// 配置文件位置: data/carousel.yaml
//
// defaults 为所有轮播的公共布局，carousels 按实例名称覆盖其中出现的字段（包括 0）。
type CarouselConfig struct {
	// Defaults 公共布局
	Defaults LayoutConfig `yaml:"defaults"`

	// Carousels 按实例名称覆盖布局（如 "projects", "partners"）
	Carousels map[string]LayoutOverride `yaml:"carousels"`

	// Physics 拖拽与惯性参数，缺省字段使用默认值
	Physics PhysicsConfig `yaml:"physics"`
}

// LayoutConfig 单个轮播的布局参数
type LayoutConfig struct {
	// Speed 自动滚动速度（px/s）
	Speed float64 `yaml:"speed"`

	// ItemWidth / ItemHeight 卡片尺寸（px）
	ItemWidth  float64 `yaml:"itemWidth"`
	ItemHeight float64 `yaml:"itemHeight"`

	// Gap 卡片间距（px）
	Gap float64 `yaml:"gap"`

	// PauseOnHover 交互过后悬停是否暂停，nil 表示沿用默认值
	PauseOnHover *bool `yaml:"pauseOnHover"`

	// EdgeFade 视口两侧渐隐宽度（px）
	EdgeFade float64 `yaml:"edgeFade"`
}

// LayoutOverride 单个轮播对公共布局的覆盖
// nil 字段沿用公共布局，非 nil 字段（包括 0）覆盖公共布局
type LayoutOverride struct {
	Speed        *float64 `yaml:"speed"`
	ItemWidth    *float64 `yaml:"itemWidth"`
	ItemHeight   *float64 `yaml:"itemHeight"`
	Gap          *float64 `yaml:"gap"`
	PauseOnHover *bool    `yaml:"pauseOnHover"`
	EdgeFade     *float64 `yaml:"edgeFade"`
}

// apply 将覆盖项应用到 base 上
func (o LayoutOverride) apply(base LayoutConfig) LayoutConfig {
	if o.Speed != nil {
		base.Speed = *o.Speed
	}
	if o.ItemWidth != nil {
		base.ItemWidth = *o.ItemWidth
	}
	if o.ItemHeight != nil {
		base.ItemHeight = *o.ItemHeight
	}
	if o.Gap != nil {
		base.Gap = *o.Gap
	}
	if o.PauseOnHover != nil {
		base.PauseOnHover = o.PauseOnHover
	}
	if o.EdgeFade != nil {
		base.EdgeFade = *o.EdgeFade
	}
	return base
}

// PhysicsConfig 物理参数（时间以毫秒表示）
type PhysicsConfig struct {
	Friction              float64 `yaml:"friction"`
	ReferenceTickMs       float64 `yaml:"referenceTickMs"`
	MinVelocity           float64 `yaml:"minVelocity"`
	Amplification         float64 `yaml:"amplification"`
	MaxVelocity           float64 `yaml:"maxVelocity"`
	SampleWindowMs        float64 `yaml:"sampleWindowMs"`
	MaxSamples            int     `yaml:"maxSamples"`
	ResumeDelayMs         float64 `yaml:"resumeDelayMs"`
	ClickSuppressVelocity float64 `yaml:"clickSuppressVelocity"`
	ClickSuppressWindowMs float64 `yaml:"clickSuppressWindowMs"`
	TapSlop               float64 `yaml:"tapSlop"`
}

// DefaultEdgeFade 默认渐隐宽度
const DefaultEdgeFade = 80.0

// DefaultCarouselConfig 返回与原版组件默认属性一致的配置
func DefaultCarouselConfig() *CarouselConfig {
	pauseOnHover := true
	return &CarouselConfig{
		Defaults: LayoutConfig{
			Speed:        carousel.DefaultSpeed,
			ItemWidth:    carousel.DefaultItemWidth,
			ItemHeight:   carousel.DefaultItemHeight,
			Gap:          carousel.DefaultGap,
			PauseOnHover: &pauseOnHover,
			EdgeFade:     DefaultEdgeFade,
		},
		Carousels: map[string]LayoutOverride{},
	}
}

// LoadCarouselConfig 加载轮播配置
//
// 优先读取磁盘上的 path，不存在时读取嵌入资源。
//
// 参数:
//   - path: 配置文件路径（如 "data/carousel.yaml"）
//
// 返回:
//   - *CarouselConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadCarouselConfig(path string) (*CarouselConfig, error) {
	data, _, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read carousel config: %w", err)
	}
	return LoadCarouselConfigFromBytes(data)
}

// LoadCarouselConfigFromBytes 从 YAML 内容解析轮播配置
// 未出现的字段保留默认值
func LoadCarouselConfigFromBytes(data []byte) (*CarouselConfig, error) {
	config := DefaultCarouselConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse carousel config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid carousel config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 尺寸、速度、间距不能为负
//   - 摩擦系数必须在 (0, 1) 内（0 表示使用默认值）
//   - 其余物理参数不能为负
//
// 返回:
//   - error: 验证失败时返回错误，成功返回 nil
func (c *CarouselConfig) Validate() error {
	if err := c.Defaults.validate("defaults"); err != nil {
		return err
	}
	for name, override := range c.Carousels {
		if name == "" {
			return fmt.Errorf("carousel override with empty name")
		}
		if err := override.apply(c.Defaults).validate(name); err != nil {
			return err
		}
	}
	return c.Physics.validate()
}

func (l LayoutConfig) validate(name string) error {
	if l.Speed < 0 {
		return fmt.Errorf("%s: speed must be >= 0, got %.1f", name, l.Speed)
	}
	if l.ItemWidth < 0 || l.ItemHeight < 0 {
		return fmt.Errorf("%s: item size must be >= 0, got %.1fx%.1f", name, l.ItemWidth, l.ItemHeight)
	}
	if l.Gap < 0 {
		return fmt.Errorf("%s: gap must be >= 0, got %.1f", name, l.Gap)
	}
	if l.EdgeFade < 0 {
		return fmt.Errorf("%s: edgeFade must be >= 0, got %.1f", name, l.EdgeFade)
	}
	return nil
}

func (p PhysicsConfig) validate() error {
	if p.Friction < 0 || p.Friction >= 1 {
		return fmt.Errorf("physics: friction must be in [0, 1), got %.3f", p.Friction)
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"referenceTickMs", p.ReferenceTickMs},
		{"minVelocity", p.MinVelocity},
		{"amplification", p.Amplification},
		{"maxVelocity", p.MaxVelocity},
		{"sampleWindowMs", p.SampleWindowMs},
		{"maxSamples", float64(p.MaxSamples)},
		{"resumeDelayMs", p.ResumeDelayMs},
		{"clickSuppressVelocity", p.ClickSuppressVelocity},
		{"clickSuppressWindowMs", p.ClickSuppressWindowMs},
		{"tapSlop", p.TapSlop},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("physics: %s must be >= 0, got %v", f.name, f.value)
		}
	}
	return nil
}

// LayoutFor 返回指定轮播的布局：覆盖项中出现的字段覆盖公共布局
func (c *CarouselConfig) LayoutFor(name string) LayoutConfig {
	override, ok := c.Carousels[name]
	if !ok {
		return c.Defaults
	}
	return override.apply(c.Defaults)
}

// ToPhysics 转换为 carousel.Physics，零值字段由 WithDefaults 补齐
func (p PhysicsConfig) ToPhysics() carousel.Physics {
	return carousel.Physics{
		Friction:              p.Friction,
		ReferenceTick:         msToDuration(p.ReferenceTickMs),
		MinVelocity:           p.MinVelocity,
		Amplification:         p.Amplification,
		MaxVelocity:           p.MaxVelocity,
		SampleWindow:          msToDuration(p.SampleWindowMs),
		MaxSamples:            p.MaxSamples,
		ResumeDelay:           msToDuration(p.ResumeDelayMs),
		ClickSuppressVelocity: p.ClickSuppressVelocity,
		ClickSuppressWindow:   msToDuration(p.ClickSuppressWindowMs),
		TapSlop:               p.TapSlop,
	}.WithDefaults()
}

// Options 生成指定轮播的构造参数
//
// 参数:
//   - name: 轮播实例名称
//   - speedScale: 用户设置中的速度倍率（<=0 时按 1 处理）
//   - clock: 时间源，nil 使用系统时间
func (c *CarouselConfig) Options(name string, speedScale float64, clock carousel.Clock) carousel.Options {
	layout := c.LayoutFor(name)
	if speedScale <= 0 {
		speedScale = 1
	}
	pauseOnHover := true
	if layout.PauseOnHover != nil {
		pauseOnHover = *layout.PauseOnHover
	}
	return carousel.Options{
		Name:         name,
		ItemWidth:    layout.ItemWidth,
		ItemHeight:   layout.ItemHeight,
		Gap:          layout.Gap,
		Speed:        layout.Speed * speedScale,
		PauseOnHover: pauseOnHover,
		Physics:      c.Physics.ToPhysics(),
		Clock:        clock,
	}
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

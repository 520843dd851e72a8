package config

import (
	"fmt"
	"sort"

	"github.com/decker502/showreel/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// ShowcaseConfigPath 内置展示内容路径
const ShowcaseConfigPath = "data/showcase.yaml"

// DefaultProjectTitle 项目标题缺失时显示的占位文字
const DefaultProjectTitle = "Project"

// LocalizedText 多语言文本，key 为语言代码（"ko", "en"）
type LocalizedText map[string]string

// Get 返回指定语言的文本
//
// 查找顺序：locale → "en" → 其余语言（按语言代码排序）→ 空字符串
func (t LocalizedText) Get(locale string) string {
	if s := t[locale]; s != "" {
		return s
	}
	if s := t["en"]; s != "" {
		return s
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if t[k] != "" {
			return t[k]
		}
	}
	return ""
}

// ShowcaseConfig 展示内容配置
//
// 配置文件位置: data/showcase.yaml
type ShowcaseConfig struct {
	// DefaultLocale 默认语言
	DefaultLocale string `yaml:"defaultLocale"`

	// Locales 支持的语言列表，切换语言时按此顺序循环
	Locales []string `yaml:"locales"`

	// Labels 界面文字（如 "projects", "partners", "duration", "teamSize"）
	Labels map[string]LocalizedText `yaml:"labels"`

	// Projects 项目卡片
	Projects []ProjectItem `yaml:"projects"`

	// Partners 合作伙伴标志
	Partners []PartnerItem `yaml:"partners"`
}

// ProjectItem 项目卡片
type ProjectItem struct {
	ID          int           `yaml:"id"`
	Title       LocalizedText `yaml:"title"`
	Category    LocalizedText `yaml:"category"`
	Description LocalizedText `yaml:"description"`
	Duration    string        `yaml:"duration"`
	TeamSize    string        `yaml:"teamSize"`
	Type        string        `yaml:"type"`

	// Gradient 卡片背景渐变（"#rrggbb"）
	Gradient GradientConfig `yaml:"gradient"`
}

// GradientConfig 渐变起止颜色
type GradientConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// PartnerItem 合作伙伴标志
type PartnerItem struct {
	Name  string `yaml:"name"`
	Alt   string `yaml:"alt"`
	Color string `yaml:"color"`
}

// DisplayTitle 返回项目标题，缺失时返回 DefaultProjectTitle
func (p ProjectItem) DisplayTitle(locale string) string {
	if s := p.Title.Get(locale); s != "" {
		return s
	}
	return DefaultProjectTitle
}

// LoadShowcaseConfig 加载展示内容配置
//
// 优先读取磁盘上的 path，不存在时读取嵌入资源。
func LoadShowcaseConfig(path string) (*ShowcaseConfig, error) {
	data, _, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read showcase config: %w", err)
	}
	return LoadShowcaseConfigFromBytes(data)
}

// LoadShowcaseConfigFromBytes 从 YAML 内容解析展示内容配置
func LoadShowcaseConfigFromBytes(data []byte) (*ShowcaseConfig, error) {
	var config ShowcaseConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse showcase config: %w", err)
	}

	if config.DefaultLocale == "" {
		config.DefaultLocale = "en"
	}
	if len(config.Locales) == 0 {
		config.Locales = []string{config.DefaultLocale}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid showcase config: %w", err)
	}

	return &config, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 默认语言在支持列表中
//   - 项目 ID 唯一
//   - 合作伙伴名称非空
//   - 所有颜色可以解析
//
// 空的项目或合作伙伴列表是合法的（对应的轮播处于惰性状态）。
func (c *ShowcaseConfig) Validate() error {
	if !c.HasLocale(c.DefaultLocale) {
		return fmt.Errorf("defaultLocale %q not in locales %v", c.DefaultLocale, c.Locales)
	}

	seen := make(map[int]bool, len(c.Projects))
	for i, p := range c.Projects {
		if seen[p.ID] {
			return fmt.Errorf("project[%d]: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = true
		for _, hex := range []string{p.Gradient.From, p.Gradient.To} {
			if hex == "" {
				continue
			}
			if _, err := ParseHexColor(hex); err != nil {
				return fmt.Errorf("project %d: %w", p.ID, err)
			}
		}
	}

	for i, p := range c.Partners {
		if p.Name == "" {
			return fmt.Errorf("partner[%d]: name is required", i)
		}
		if p.Color != "" {
			if _, err := ParseHexColor(p.Color); err != nil {
				return fmt.Errorf("partner %q: %w", p.Name, err)
			}
		}
	}

	return nil
}

// HasLocale 检查语言是否受支持
func (c *ShowcaseConfig) HasLocale(locale string) bool {
	for _, l := range c.Locales {
		if l == locale {
			return true
		}
	}
	return false
}

// NextLocale 返回支持列表中 locale 的下一个语言（循环）
// locale 不受支持时返回默认语言
func (c *ShowcaseConfig) NextLocale(locale string) string {
	for i, l := range c.Locales {
		if l == locale {
			return c.Locales[(i+1)%len(c.Locales)]
		}
	}
	return c.DefaultLocale
}

// Label 返回界面文字，缺失时返回 key 本身
func (c *ShowcaseConfig) Label(key, locale string) string {
	if s := c.Labels[key].Get(locale); s != "" {
		return s
	}
	return key
}

package components

import (
	"image/color"

	"github.com/decker502/showreel/pkg/config"
)

// SlideKind 卡片类型，决定渲染方式
type SlideKind int

const (
	// SlideProject 项目卡片：渐变背景 + 悬停详情
	SlideProject SlideKind = iota
	// SlideLogo 合作伙伴标志卡片
	SlideLogo
)

// SlideMeta 卡片附加信息（如 "duration: 12개월"）
type SlideMeta struct {
	// LabelKey 界面文字的 key，由 ShowcaseConfig.Label 翻译
	LabelKey string
	Value    string
}

// Slide 轮播卡片的渲染数据
//
// 卡片数据在创建后不再修改，轮播只改变卡片的位置。
type Slide struct {
	ID          string
	Kind        SlideKind
	Title       config.LocalizedText
	Category    config.LocalizedText
	Description config.LocalizedText
	Meta        []SlideMeta

	// From / To 背景渐变颜色
	From, To color.RGBA
}

// DisplayTitle 返回本地化标题
// 项目卡片缺少标题时返回默认占位文字
func (s Slide) DisplayTitle(locale string) string {
	if t := s.Title.Get(locale); t != "" {
		return t
	}
	if s.Kind == SlideProject {
		return config.DefaultProjectTitle
	}
	return ""
}

package components

import (
	"image/color"
	"log"
	"strconv"

	"github.com/decker502/showreel/pkg/config"
)

// 颜色解析失败时的回退色
var (
	fallbackGradientFrom = color.RGBA{229, 231, 235, 255}
	fallbackGradientTo   = color.RGBA{156, 163, 175, 255}
	fallbackLogoColor    = color.RGBA{55, 65, 81, 255}
)

// ProjectSlides 将项目配置转换为轮播卡片
//
// 时长、团队规模为空时不生成对应的附加信息。
func ProjectSlides(cfg *config.ShowcaseConfig) []Slide {
	slides := make([]Slide, 0, len(cfg.Projects))
	for _, p := range cfg.Projects {
		slide := Slide{
			ID:          "project-" + strconv.Itoa(p.ID),
			Kind:        SlideProject,
			Title:       p.Title,
			Category:    p.Category,
			Description: p.Description,
			From:        parseColor(p.Gradient.From, fallbackGradientFrom),
			To:          parseColor(p.Gradient.To, fallbackGradientTo),
		}
		if p.Duration != "" {
			slide.Meta = append(slide.Meta, SlideMeta{LabelKey: "duration", Value: p.Duration})
		}
		if p.TeamSize != "" {
			slide.Meta = append(slide.Meta, SlideMeta{LabelKey: "teamSize", Value: p.TeamSize})
		}
		slides = append(slides, slide)
	}
	return slides
}

// PartnerSlides 将合作伙伴配置转换为标志卡片
// 名称不区分语言，Alt 作为描述
func PartnerSlides(cfg *config.ShowcaseConfig) []Slide {
	slides := make([]Slide, 0, len(cfg.Partners))
	for i, p := range cfg.Partners {
		c := parseColor(p.Color, fallbackLogoColor)
		slides = append(slides, Slide{
			ID:          "partner-" + strconv.Itoa(i),
			Kind:        SlideLogo,
			Title:       config.LocalizedText{cfg.DefaultLocale: p.Name},
			Description: config.LocalizedText{cfg.DefaultLocale: p.Alt},
			From:        c,
			To:          c,
		})
	}
	return slides
}

func parseColor(s string, fallback color.RGBA) color.RGBA {
	if s == "" {
		return fallback
	}
	c, err := config.ParseHexColor(s)
	if err != nil {
		log.Printf("[Slide] %v, using fallback", err)
		return fallback
	}
	return c
}

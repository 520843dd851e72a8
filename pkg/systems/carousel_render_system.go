package systems

import (
	"image"
	"image/color"

	"github.com/decker502/showreel/pkg/components"
	"github.com/decker502/showreel/pkg/ecs"
	"github.com/decker502/showreel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// 卡片背景渐变的条带数
	gradientBands = 12
	// 边缘渐隐的条带数
	fadeBands = 16
	// 卡片内边距
	cardPadding = 16.0

	// 未悬停时单色遮罩的不透明度
	projectOverlayAlpha = 0.6
	logoOverlayAlpha    = 0.35
	// 悬停详情层的不透明度
	detailOverlayAlpha = 0.95
)

var (
	overlayGray  = color.RGBA{107, 114, 128, 255}
	detailColor  = color.RGBA{189, 185, 220, 255} // #bdb9dc
	logoCardFill = color.RGBA{255, 255, 255, 255}
	textWhite    = color.RGBA{255, 255, 255, 255}
	textMuted    = color.RGBA{255, 255, 255, 204}
)

// LabelFunc 翻译界面文字（如 "duration"）
type LabelFunc func(key, locale string) string

// CarouselRenderSystem 轮播渲染系统
//
// 在视口子图像内绘制所有可见卡片（子图像负责裁剪），然后在两侧绘制渐隐。
// 卡片数据只读，位置完全来自 Track.Placements。
type CarouselRenderSystem struct {
	entityManager *ecs.EntityManager
	titleFace     *text.GoTextFace
	bodyFace      *text.GoTextFace
	labels        LabelFunc
}

// NewCarouselRenderSystem 创建轮播渲染系统
//
// 参数:
//   - em: 实体管理器
//   - titleFace, bodyFace: 标题和正文字体
//   - labels: 界面文字翻译，可为 nil（直接显示 key）
func NewCarouselRenderSystem(em *ecs.EntityManager, titleFace, bodyFace *text.GoTextFace, labels LabelFunc) *CarouselRenderSystem {
	if labels == nil {
		labels = func(key, _ string) string { return key }
	}
	return &CarouselRenderSystem{
		entityManager: em,
		titleFace:     titleFace,
		bodyFace:      bodyFace,
		labels:        labels,
	}
}

// Draw 绘制所有轮播
func (s *CarouselRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.CarouselComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		comp, _ := ecs.GetComponent[*components.CarouselComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if comp == nil || pos == nil || comp.Track == nil {
			continue
		}
		highlight, _ := ecs.GetComponent[*components.HoverHighlightComponent](s.entityManager, id)
		s.drawCarousel(screen, comp, pos, highlight)
	}
}

func (s *CarouselRenderSystem) drawCarousel(screen *ebiten.Image, comp *components.CarouselComponent, pos *components.PositionComponent, highlight *components.HoverHighlightComponent) {
	rect := image.Rect(int(pos.X), int(pos.Y), int(pos.X+comp.Width), int(pos.Y+comp.Height))
	viewport, ok := screen.SubImage(rect).(*ebiten.Image)
	if !ok {
		return
	}

	opts := comp.Carousel().Options()
	for _, p := range comp.Track.Placements(comp.Width) {
		x := pos.X + p.X
		y := pos.Y + (comp.Height-opts.ItemHeight)/2
		intensity := 0.0
		if highlight != nil && highlight.IsActive && highlight.Index == p.Index {
			intensity = highlight.Intensity
		}

		switch p.Item.Kind {
		case components.SlideLogo:
			s.drawLogoCard(viewport, p.Item, x, y, opts.ItemWidth, opts.ItemHeight, intensity, comp.Locale)
		default:
			s.drawProjectCard(viewport, p.Item, x, y, opts.ItemWidth, opts.ItemHeight, intensity, comp.Locale)
		}
	}

	for _, band := range edgeFadeBands(comp.Width, comp.EdgeFade, fadeBands) {
		c := comp.Background
		c.A = uint8(float64(c.A) * band.Alpha)
		vector.DrawFilledRect(viewport, float32(pos.X+band.X), float32(pos.Y), float32(band.Width), float32(comp.Height), premultiply(c), false)
	}
}

func (s *CarouselRenderSystem) drawProjectCard(dst *ebiten.Image, slide components.Slide, x, y, w, h, intensity float64, locale string) {
	// 渐变背景
	for _, band := range gradientStripes(slide.From, slide.To, h, gradientBands) {
		vector.DrawFilledRect(dst, float32(x), float32(y+band.Y), float32(w), float32(band.Height), band.Color, false)
	}

	// 单色遮罩随悬停淡出
	eased := utils.EaseOutCubic(intensity)
	if a := overlayAlpha(projectOverlayAlpha, intensity); a > 0 {
		vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), withAlpha(overlayGray, a), false)
	}

	if intensity <= 0 {
		s.drawText(dst, utils.TruncateText(slide.DisplayTitle(locale), s.titleFace, w-2*cardPadding), s.titleFace, x+cardPadding, y+h-cardPadding-s.lineHeight(s.titleFace), textWhite)
		return
	}

	// 详情层随悬停淡入
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), withAlpha(detailColor, detailOverlayAlpha*eased), false)

	textWidth := w - 2*cardPadding
	cy := y + cardPadding
	for _, line := range utils.WrapText(slide.DisplayTitle(locale), s.titleFace, textWidth) {
		s.drawText(dst, line, s.titleFace, x+cardPadding, cy, withAlpha(textWhite, eased))
		cy += s.lineHeight(s.titleFace)
	}
	cy += 4
	if category := slide.Category.Get(locale); category != "" {
		for _, line := range utils.WrapText(category, s.bodyFace, textWidth) {
			s.drawText(dst, line, s.bodyFace, x+cardPadding, cy, withAlpha(textMuted, eased))
			cy += s.lineHeight(s.bodyFace)
		}
	}
	if description := slide.Description.Get(locale); description != "" {
		cy += 4
		for _, line := range utils.WrapText(description, s.bodyFace, textWidth) {
			s.drawText(dst, line, s.bodyFace, x+cardPadding, cy, withAlpha(textMuted, eased))
			cy += s.lineHeight(s.bodyFace)
		}
	}

	// 附加信息（时长、团队规模）贴底显示
	my := y + h - cardPadding - float64(len(slide.Meta))*s.lineHeight(s.bodyFace)
	for _, meta := range slide.Meta {
		if meta.Value == "" {
			continue
		}
		line := s.labels(meta.LabelKey, locale) + ": " + meta.Value
		s.drawText(dst, utils.TruncateText(line, s.bodyFace, textWidth), s.bodyFace, x+cardPadding, my, withAlpha(textWhite, eased))
		my += s.lineHeight(s.bodyFace)
	}
}

func (s *CarouselRenderSystem) drawLogoCard(dst *ebiten.Image, slide components.Slide, x, y, w, h, intensity float64, locale string) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), logoCardFill, false)
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), 1, slide.To, false)

	name := utils.TruncateText(slide.DisplayTitle(locale), s.titleFace, w-2*cardPadding)
	tw := utils.MeasureTextWidth(name, s.titleFace)
	s.drawText(dst, name, s.titleFace, x+(w-tw)/2, y+(h-s.lineHeight(s.titleFace))/2, slide.From)

	if a := overlayAlpha(logoOverlayAlpha, intensity); a > 0 {
		vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), withAlpha(overlayGray, a), false)
	}
}

func (s *CarouselRenderSystem) drawText(dst *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.RGBA) {
	if face == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, face, op)
}

func (s *CarouselRenderSystem) lineHeight(face *text.GoTextFace) float64 {
	if face == nil {
		return 0
	}
	return face.Size * 1.3
}

// fadeBand 渐隐条带（相对视口左边缘）
type fadeBand struct {
	X, Width float64
	Alpha    float64
}

// edgeFadeBands 计算视口两侧的渐隐条带
// 左侧从不透明过渡到透明，右侧对称；fade 超过半个视口时按半个视口处理
func edgeFadeBands(width, fade float64, bands int) []fadeBand {
	if width <= 0 || fade <= 0 || bands <= 0 {
		return nil
	}
	if fade > width/2 {
		fade = width / 2
	}
	bw := fade / float64(bands)
	out := make([]fadeBand, 0, 2*bands)
	for i := 0; i < bands; i++ {
		alpha := 1 - (float64(i)+0.5)/float64(bands)
		out = append(out,
			fadeBand{X: float64(i) * bw, Width: bw, Alpha: alpha},
			fadeBand{X: width - float64(i+1)*bw, Width: bw, Alpha: alpha},
		)
	}
	return out
}

// stripe 渐变条带（相对卡片顶部）
type stripe struct {
	Y, Height float64
	Color     color.RGBA
}

// gradientStripes 将纵向渐变拆成 n 条纯色条带
func gradientStripes(from, to color.RGBA, height float64, n int) []stripe {
	if height <= 0 || n <= 0 {
		return nil
	}
	sh := height / float64(n)
	out := make([]stripe, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = stripe{Y: float64(i) * sh, Height: sh, Color: utils.LerpColor(from, to, t)}
	}
	return out
}

// overlayAlpha 悬停强度对应的遮罩不透明度
func overlayAlpha(base, intensity float64) float64 {
	return base * (1 - utils.EaseOutCubic(clamp01(intensity)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// withAlpha 返回预乘后的半透明颜色
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	alpha = clamp01(alpha)
	c.A = uint8(float64(c.A)*alpha + 0.5)
	return premultiply(c)
}

// premultiply color.RGBA 要求预乘 alpha
func premultiply(c color.RGBA) color.RGBA {
	a := float64(c.A) / 255
	return color.RGBA{
		R: uint8(float64(c.R)*a + 0.5),
		G: uint8(float64(c.G)*a + 0.5),
		B: uint8(float64(c.B)*a + 0.5),
		A: c.A,
	}
}

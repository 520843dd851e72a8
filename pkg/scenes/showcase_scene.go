package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/showreel/pkg/carousel"
	"github.com/decker502/showreel/pkg/components"
	"github.com/decker502/showreel/pkg/config"
	"github.com/decker502/showreel/pkg/ecs"
	"github.com/decker502/showreel/pkg/game"
	"github.com/decker502/showreel/pkg/systems"
	"github.com/decker502/showreel/pkg/telemetry"
	"github.com/decker502/showreel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 速度倍率每次调整的比例
const speedScaleStep = 1.25

// 展示页面字号
const (
	headingFontSize      = 28.0
	cardTitleFontSize    = 20.0
	cardBodyFontSize     = 14.0
	overlayTitleFontSize = 30.0
	hintFontSize         = 13.0
)

// 打开卡片的详情层尺寸
const (
	overlayWidth   = 560.0
	overlayHeight  = 360.0
	overlayPadding = 28.0
)

var (
	pageBackground = color.RGBA{250, 250, 250, 255}
	headingColor   = color.RGBA{17, 24, 39, 255}
	hintColor      = color.RGBA{107, 114, 128, 255}
	dimColor       = color.RGBA{0, 0, 0, 140}
	overlayText    = color.RGBA{17, 24, 39, 255}
	overlayMuted   = color.RGBA{55, 65, 81, 255}
)

// KeyInput 键盘输入接口
// 用于依赖注入，支持测试时 mock
type KeyInput interface {
	IsKeyJustPressed(key ebiten.Key) bool
}

// ebitenKeyInput Ebitengine 默认实现
type ebitenKeyInput struct{}

func (ebitenKeyInput) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// frameInput 每帧只读取一次底层指针输入，并在详情层打开时屏蔽轮播交互
//
// 屏蔽表现为"失去焦点"：进行中的拖拽被取消，鼠标离开视口。
type frameInput struct {
	source  systems.CarouselPointerInput
	state   utils.PointerState
	focused bool
	blocked bool
}

func (f *frameInput) beginFrame(blocked bool) {
	f.state = f.source.Pointer()
	f.focused = f.source.IsFocused()
	f.blocked = blocked
}

func (f *frameInput) Pointer() utils.PointerState {
	return f.state
}

func (f *frameInput) IsFocused() bool {
	return f.focused && !f.blocked
}

// ShowcaseOptions 展示场景的依赖
type ShowcaseOptions struct {
	// Content 展示内容（必需）
	Content *config.ShowcaseConfig
	// Carousels 轮播布局与物理参数，nil 使用默认配置
	Carousels *config.CarouselConfig
	// Settings 用户设置，nil 时使用默认设置且不持久化
	Settings *game.SettingsManager
	// Sink 遥测接收者，可为 nil
	Sink telemetry.Sink
	// Clock 轮播时间源，nil 使用系统时间
	Clock carousel.Clock

	// Fonts 字体缓存，nil 时新建
	Fonts *utils.FontCache
	// FontPath 字体文件路径，为空使用内置字体（内置字体不含韩文字形）
	FontPath string

	// PointerInput / KeyInput 输入源，nil 使用 Ebitengine
	PointerInput systems.CarouselPointerInput
	KeyInput     KeyInput

	// OnSettingsChanged 设置变更后需要重建场景时调用（如速度倍率）
	OnSettingsChanged func()
}

// showcaseSection 页面中的一个轮播区块
type showcaseSection struct {
	name     string
	labelKey string
	entity   ecs.EntityID
	layout   config.Section
}

// openedItem 详情层显示的卡片
type openedItem struct {
	carousel string
	slide    components.Slide
}

// ShowcaseScene 展示页面
//
// 两个互相独立的无限轮播：项目卡片和合作伙伴标志。
// 鼠标点击卡片打开详情层；L 切换语言，P 切换悬停暂停，+/- 调整速度。
type ShowcaseScene struct {
	entityManager  *ecs.EntityManager
	inputSystem    *systems.CarouselInputSystem
	carouselSystem *systems.CarouselSystem
	renderSystem   *systems.CarouselRenderSystem

	content  *config.ShowcaseConfig
	settings *game.SettingsManager
	locale   string

	input             *frameInput
	keys              KeyInput
	onSettingsChanged func()

	sections []showcaseSection
	opened   *openedItem

	headingFace      *text.GoTextFace
	hintFace         *text.GoTextFace
	overlayTitleFace *text.GoTextFace
	overlayBodyFace  *text.GoTextFace

	closed bool
}

// NewShowcaseScene 创建展示场景
//
// 参数:
//   - opts: 场景依赖，Content 必须非 nil
//
// 返回:
//   - *ShowcaseScene: 场景实例，轮播在第一次 Update 时开始计时
func NewShowcaseScene(opts ShowcaseOptions) *ShowcaseScene {
	carouselCfg := opts.Carousels
	if carouselCfg == nil {
		carouselCfg = config.DefaultCarouselConfig()
	}
	settings := game.DefaultSettings()
	if opts.Settings != nil {
		settings = opts.Settings.GetSettings()
	}
	fonts := opts.Fonts
	if fonts == nil {
		fonts = utils.NewFontCache()
	}
	pointer := opts.PointerInput
	if pointer == nil {
		pointer = systems.NewEbitenPointerInput()
	}
	keys := opts.KeyInput
	if keys == nil {
		keys = ebitenKeyInput{}
	}

	locale := settings.Locale
	if !opts.Content.HasLocale(locale) {
		locale = opts.Content.DefaultLocale
	}

	em := ecs.NewEntityManager()
	input := &frameInput{source: pointer}
	scene := &ShowcaseScene{
		entityManager:     em,
		inputSystem:       systems.NewCarouselInputSystemWithInput(em, input),
		carouselSystem:    systems.NewCarouselSystem(em, opts.Sink),
		content:           opts.Content,
		settings:          opts.Settings,
		locale:            locale,
		input:             input,
		keys:              keys,
		onSettingsChanged: opts.OnSettingsChanged,
	}

	scene.loadFonts(fonts, opts.FontPath)
	titleFace := scene.face(fonts, opts.FontPath, cardTitleFontSize)
	bodyFace := scene.face(fonts, opts.FontPath, cardBodyFontSize)
	scene.renderSystem = systems.NewCarouselRenderSystem(em, titleFace, bodyFace, opts.Content.Label)

	projects := carouselCfg.Options("projects", settings.SpeedScale, opts.Clock)
	partners := carouselCfg.Options("partners", settings.SpeedScale, opts.Clock)
	if !settings.PauseOnHover {
		projects.PauseOnHover = false
		partners.PauseOnHover = false
	}

	layouts := config.StackSections(projects.ItemHeight, partners.ItemHeight)
	scene.addCarousel("projects", "projects", components.ProjectSlides(opts.Content), projects, carouselCfg.LayoutFor("projects").EdgeFade, layouts[0])
	scene.addCarousel("partners", "partners", components.PartnerSlides(opts.Content), partners, carouselCfg.LayoutFor("partners").EdgeFade, layouts[1])

	log.Printf("[ShowcaseScene] Created with %d projects, %d partners (locale=%s, speedScale=%.2f, pauseOnHover=%v)",
		len(opts.Content.Projects), len(opts.Content.Partners), locale, settings.SpeedScale, settings.PauseOnHover)
	return scene
}

func (s *ShowcaseScene) loadFonts(fonts *utils.FontCache, path string) {
	s.headingFace = s.face(fonts, path, headingFontSize)
	s.hintFace = s.face(fonts, path, hintFontSize)
	s.overlayTitleFace = s.face(fonts, path, overlayTitleFontSize)
	s.overlayBodyFace = s.face(fonts, path, cardBodyFontSize+2)
}

// face 加载字体，失败时 FontCache 已回退到内置字体
func (s *ShowcaseScene) face(fonts *utils.FontCache, path string, size float64) *text.GoTextFace {
	face, err := fonts.Face(path, size)
	if err != nil {
		log.Printf("[ShowcaseScene] Warning: font %q unavailable: %v", path, err)
	}
	return face
}

func (s *ShowcaseScene) addCarousel(name, labelKey string, slides []components.Slide, opts carousel.Options, edgeFade float64, layout config.Section) {
	id := s.entityManager.CreateEntity()

	comp := components.NewCarouselComponent(name, slides, opts, layout.Width, layout.Height)
	comp.EdgeFade = edgeFade
	comp.Background = pageBackground
	comp.Locale = s.locale
	comp.OnItemOpen = func(index int) {
		s.openItem(name, comp, index)
	}

	s.entityManager.AddComponent(id, comp)
	s.entityManager.AddComponent(id, &components.PositionComponent{X: layout.X, Y: layout.Y})
	s.entityManager.AddComponent(id, &components.HoverHighlightComponent{Index: -1})

	s.sections = append(s.sections, showcaseSection{
		name:     name,
		labelKey: labelKey,
		entity:   id,
		layout:   layout,
	})
}

// openItem 打开卡片详情层
func (s *ShowcaseScene) openItem(name string, comp *components.CarouselComponent, index int) {
	slide, ok := comp.Track.Item(index)
	if !ok {
		return
	}
	s.opened = &openedItem{carousel: name, slide: slide}
	log.Printf("[ShowcaseScene] Opened %s item %d (%s)", name, index, slide.ID)
}

// closeItem 关闭详情层
func (s *ShowcaseScene) closeItem() {
	if s.opened == nil {
		return
	}
	log.Printf("[ShowcaseScene] Closed %s item %s", s.opened.carousel, s.opened.slide.ID)
	s.opened = nil
}

// Update 更新场景
func (s *ShowcaseScene) Update(deltaTime float64) {
	if s.closed {
		return
	}

	// 本帧开始时打开的详情层屏蔽整帧的轮播输入，
	// 关闭详情层的那次按下不会落到卡片上
	s.input.beginFrame(s.opened != nil)

	s.handleKeys()
	if s.opened != nil && s.input.state.JustPressed {
		s.closeItem()
	}

	s.inputSystem.Update(deltaTime)
	s.carouselSystem.Update(deltaTime)
}

func (s *ShowcaseScene) handleKeys() {
	if s.keys.IsKeyJustPressed(ebiten.KeyEscape) {
		s.closeItem()
	}
	if s.keys.IsKeyJustPressed(ebiten.KeyL) {
		s.SetLocale(s.content.NextLocale(s.locale))
	}
	if s.keys.IsKeyJustPressed(ebiten.KeyP) {
		s.changeSettings(func(sm *game.SettingsManager) {
			sm.SetPauseOnHover(!sm.GetSettings().PauseOnHover)
		})
	}
	if s.keys.IsKeyJustPressed(ebiten.KeyEqual) || s.keys.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		s.changeSettings(func(sm *game.SettingsManager) {
			sm.SetSpeedScale(sm.GetSettings().SpeedScale * speedScaleStep)
		})
	}
	if s.keys.IsKeyJustPressed(ebiten.KeyMinus) || s.keys.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		s.changeSettings(func(sm *game.SettingsManager) {
			sm.SetSpeedScale(sm.GetSettings().SpeedScale / speedScaleStep)
		})
	}
}

// changeSettings 修改并保存设置，然后请求重建场景
// 轮播参数在创建时确定，修改后需要重建才能生效
func (s *ShowcaseScene) changeSettings(apply func(sm *game.SettingsManager)) {
	if s.settings == nil {
		log.Printf("[ShowcaseScene] No settings manager, ignoring settings change")
		return
	}
	apply(s.settings)
	if err := s.settings.Save(); err != nil {
		log.Printf("[ShowcaseScene] Warning: Failed to save settings: %v", err)
	}
	if s.onSettingsChanged != nil {
		s.onSettingsChanged()
	}
}

// SetLocale 切换语言
// 不支持的语言会被忽略；语言只影响显示文字，不影响轮播状态
func (s *ShowcaseScene) SetLocale(locale string) {
	if !s.content.HasLocale(locale) || locale == s.locale {
		return
	}
	s.locale = locale
	for _, section := range s.sections {
		if comp, ok := ecs.GetComponent[*components.CarouselComponent](s.entityManager, section.entity); ok {
			comp.Locale = locale
		}
	}
	if s.settings != nil {
		s.settings.SetLocale(locale)
		if err := s.settings.Save(); err != nil {
			log.Printf("[ShowcaseScene] Warning: Failed to save locale: %v", err)
		}
	}
	log.Printf("[ShowcaseScene] Locale switched to %s", locale)
}

// Locale 返回当前语言
func (s *ShowcaseScene) Locale() string {
	return s.locale
}

// Carousel 返回指定名称的轮播组件
func (s *ShowcaseScene) Carousel(name string) (*components.CarouselComponent, bool) {
	for _, section := range s.sections {
		if section.name == name {
			return ecs.GetComponent[*components.CarouselComponent](s.entityManager, section.entity)
		}
	}
	return nil, false
}

// OpenedItem 返回详情层中的卡片
func (s *ShowcaseScene) OpenedItem() (components.Slide, bool) {
	if s.opened == nil {
		return components.Slide{}, false
	}
	return s.opened.slide, true
}

// Close 卸载场景：停止所有轮播的动画和计时，之后的事件不再生效
func (s *ShowcaseScene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, section := range s.sections {
		s.carouselSystem.Forget(section.entity)
		s.entityManager.DestroyEntity(section.entity)
	}
	// 被删除实体上的轮播在这里停止动画和计时
	closed := 0
	for _, comp := range s.entityManager.RemoveMarkedEntities() {
		if carouselComp, ok := comp.(*components.CarouselComponent); ok {
			carouselComp.Carousel().Close()
			closed++
		}
	}
	s.opened = nil
	log.Printf("[ShowcaseScene] Closed %d carousels", closed)
}

// Draw 绘制场景
func (s *ShowcaseScene) Draw(screen *ebiten.Image) {
	screen.Fill(pageBackground)

	for _, section := range s.sections {
		drawText(screen, s.content.Label(section.labelKey, s.locale), s.headingFace, config.SectionMarginX, section.layout.HeadingY, headingColor)
	}

	s.renderSystem.Draw(screen)

	// 移动端没有键盘，不显示快捷键提示
	if !utils.IsMobile() {
		hint := s.content.Label("hint", s.locale)
		drawText(screen, utils.TruncateText(hint, s.hintFace, config.WindowWidth-2*config.SectionMarginX), s.hintFace, config.SectionMarginX, config.HintY(), hintColor)
	}

	if s.opened != nil {
		s.drawOverlay(screen, s.opened.slide)
	}
}

// drawOverlay 绘制卡片详情层
func (s *ShowcaseScene) drawOverlay(screen *ebiten.Image, slide components.Slide) {
	vector.DrawFilledRect(screen, 0, 0, config.WindowWidth, config.WindowHeight, dimColor, false)

	x := (config.WindowWidth - overlayWidth) / 2
	y := (config.WindowHeight - overlayHeight) / 2
	fill := utils.LerpColor(slide.From, slide.To, 0.5)
	if slide.Kind == components.SlideLogo {
		fill = color.RGBA{255, 255, 255, 255}
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), overlayWidth, overlayHeight, fill, false)
	vector.StrokeRect(screen, float32(x), float32(y), overlayWidth, overlayHeight, 2, slide.To, false)

	textWidth := overlayWidth - 2*overlayPadding
	cy := y + overlayPadding
	for _, line := range utils.WrapText(slide.DisplayTitle(s.locale), s.overlayTitleFace, textWidth) {
		drawText(screen, line, s.overlayTitleFace, x+overlayPadding, cy, overlayText)
		cy += lineHeight(s.overlayTitleFace)
	}
	cy += 8

	body := []string{}
	if category := slide.Category.Get(s.locale); category != "" {
		body = append(body, s.content.Label("category", s.locale)+": "+category)
	}
	if description := slide.Description.Get(s.locale); description != "" {
		body = append(body, description)
	}
	for _, meta := range slide.Meta {
		body = append(body, s.content.Label(meta.LabelKey, s.locale)+": "+meta.Value)
	}
	for _, paragraph := range body {
		for _, line := range utils.WrapText(paragraph, s.overlayBodyFace, textWidth) {
			drawText(screen, line, s.overlayBodyFace, x+overlayPadding, cy, overlayMuted)
			cy += lineHeight(s.overlayBodyFace)
		}
		cy += 4
	}

	closeHint := s.content.Label("close", s.locale)
	drawText(screen, closeHint, s.hintFace, x+overlayPadding, y+overlayHeight-overlayPadding-lineHeight(s.hintFace), overlayMuted)
}

func drawText(dst *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.RGBA) {
	if face == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, face, op)
}

func lineHeight(face *text.GoTextFace) float64 {
	if face == nil {
		return 0
	}
	return face.Size * 1.3
}

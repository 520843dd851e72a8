// Package tui 在终端中运行同一套轮播状态机
//
// 一个终端单元格在水平方向对应 CellWidth 个布局像素，轮播的偏移、速度和
// 点击判定全部在像素坐标中完成，终端只负责把像素坐标量化到单元格。
package tui

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/decker502/showreel/pkg/carousel"
	"github.com/decker502/showreel/pkg/components"
	"github.com/decker502/showreel/pkg/config"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	// CellWidth 一个终端单元格对应的布局像素宽度
	CellWidth = 8.0

	// TickInterval 动画帧间隔
	TickInterval = 16 * time.Millisecond

	// 卡片条占用的行数
	projectRows = 5
	logoRows    = 3
)

var (
	headingStyle = tcell.StyleDefault.Bold(true)
	hintStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	overlayStyle = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	cardText     = tcell.ColorBlack
)

// section 终端中的一个轮播区块
type section struct {
	name     string
	labelKey string
	track    *carousel.Track[components.Slide]
	heading  int // 标题所在行
	top      int // 卡片条第一行
	rows     int // 卡片条行数
	inside   bool
}

func (s *section) contains(y int) bool {
	return y >= s.top && y < s.top+s.rows
}

// Options 终端展示的依赖
type Options struct {
	// Content 展示内容（必需）
	Content *config.ShowcaseConfig
	// Carousels 轮播参数，nil 使用默认配置
	Carousels *config.CarouselConfig
	// Locale 初始语言，不受支持时使用默认语言
	Locale string
	// SpeedScale 自动滚动速度倍率
	SpeedScale float64
	// Clock 时间源，nil 使用系统时间
	Clock carousel.Clock
}

// Viewer 终端轮播展示
//
// 事件处理、推进和绘制都在 Run 所在的 goroutine 中进行，
// 轮播状态不会被并发访问。
type Viewer struct {
	screen  tcell.Screen
	content *config.ShowcaseConfig
	locale  string

	sections []*section

	// 指针状态只属于本实例
	pressed   *section
	lastMouse tcell.ButtonMask

	opened *components.Slide
	closed bool
}

// NewViewer 创建终端展示
//
// 参数:
//   - screen: 已初始化的 tcell 屏幕
//   - opts: 内容与参数
func NewViewer(screen tcell.Screen, opts Options) *Viewer {
	carouselCfg := opts.Carousels
	if carouselCfg == nil {
		carouselCfg = config.DefaultCarouselConfig()
	}
	locale := opts.Locale
	if !opts.Content.HasLocale(locale) {
		locale = opts.Content.DefaultLocale
	}

	v := &Viewer{
		screen:  screen,
		content: opts.Content,
		locale:  locale,
	}

	row := 0
	add := func(name, labelKey string, slides []components.Slide, rows int) {
		o := carouselCfg.Options(name, opts.SpeedScale, opts.Clock)
		v.sections = append(v.sections, &section{
			name:     name,
			labelKey: labelKey,
			track:    carousel.NewTrack(slides, o),
			heading:  row,
			top:      row + 1,
			rows:     rows,
		})
		row += rows + 2
	}
	add("projects", "projects", components.ProjectSlides(opts.Content), projectRows)
	add("partners", "partners", components.PartnerSlides(opts.Content), logoRows)

	screen.EnableMouse()
	screen.EnableFocus()
	return v
}

// Locale 返回当前语言
func (v *Viewer) Locale() string {
	return v.locale
}

// Carousel 返回指定名称的轮播
func (v *Viewer) Carousel(name string) (*carousel.Carousel, bool) {
	for _, s := range v.sections {
		if s.name == name {
			return s.track.Carousel(), true
		}
	}
	return nil, false
}

// OpenedItem 返回详情层中的卡片
func (v *Viewer) OpenedItem() (components.Slide, bool) {
	if v.opened == nil {
		return components.Slide{}, false
	}
	return *v.opened, true
}

// viewportWidth 返回视口宽度（像素）
func (v *Viewer) viewportWidth() float64 {
	w, _ := v.screen.Size()
	return float64(w) * CellWidth
}

// cellToPx 单元格列转换为该单元格中心的像素坐标
func cellToPx(col int) float64 {
	return float64(col)*CellWidth + CellWidth/2
}

// pxToCell 像素坐标转换为单元格列
func pxToCell(x float64) int {
	return int(math.Floor(x / CellWidth))
}

// NeedsTick 返回是否需要持续推进（有轮播在运动或等待自动恢复）
func (v *Viewer) NeedsTick() bool {
	if v.closed {
		return false
	}
	for _, s := range v.sections {
		c := s.track.Carousel()
		if c.Animating() {
			return true
		}
		if _, pending := c.ResumeDeadline(); pending {
			return true
		}
	}
	return false
}

// Tick 推进所有轮播一帧
func (v *Viewer) Tick() {
	if v.closed {
		return
	}
	for _, s := range v.sections {
		s.track.Carousel().Update()
	}
}

// HandleEvent 处理一个终端事件
//
// 返回:
//   - bool: false 表示用户请求退出
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	if v.closed {
		return false
	}
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventFocus:
		if !ev.Focused {
			v.cancelPointer()
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}
	if v.opened != nil {
		// 详情层打开时任意键都只关闭详情层
		v.opened = nil
		return true
	}
	switch {
	case ev.Key() == tcell.KeyEscape:
		return false
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
		return false
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'l':
		v.locale = v.content.NextLocale(v.locale)
		log.Printf("[TUI] Locale switched to %s", v.locale)
	}
	return true
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	buttons := ev.Buttons() & tcell.Button1
	wasDown := v.lastMouse != 0
	v.lastMouse = buttons
	down := buttons != 0

	// 进入/离开：详情层盖住了卡片条，打开期间指针不在任何轮播上
	for _, s := range v.sections {
		inside := v.opened == nil && s.contains(row)
		c := s.track.Carousel()
		if inside && !s.inside {
			c.PointerEnter()
		} else if !inside && s.inside {
			c.PointerLeave()
		}
		s.inside = inside
	}

	if v.opened != nil {
		// 详情层打开时按下只关闭详情层
		if down && !wasDown {
			v.opened = nil
		}
		return
	}

	x := cellToPx(col)
	switch {
	case down && !wasDown:
		for _, s := range v.sections {
			if s.contains(row) {
				v.pressed = s
				s.track.Carousel().PointerDown(x)
				break
			}
		}

	case down && v.pressed != nil:
		v.pressed.track.Carousel().PointerMove(x)

	case !down && v.pressed != nil:
		s := v.pressed
		v.pressed = nil
		c := s.track.Carousel()
		c.PointerUp(x)
		// 一个单元格宽于点击容差，换列即为拖拽
		if c.DragMoved() || !s.contains(row) {
			return
		}
		index, ok := s.track.ItemAt(x)
		if !ok || !c.Click(index) {
			return
		}
		if slide, ok := s.track.Item(index); ok {
			v.opened = &slide
			log.Printf("[TUI] Opened %s item %d (%s)", s.name, index, slide.ID)
		}
	}
}

// cancelPointer 终端失去焦点：取消拖拽，指针离开所有轮播
func (v *Viewer) cancelPointer() {
	if v.pressed != nil {
		v.pressed.track.Carousel().PointerCancel()
		v.pressed = nil
	}
	v.lastMouse = 0
	for _, s := range v.sections {
		if s.inside {
			s.inside = false
			s.track.Carousel().PointerLeave()
		}
	}
}

// Draw 绘制整个屏幕
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	for _, s := range v.sections {
		drawString(v.screen, 1, s.heading, v.content.Label(s.labelKey, v.locale), headingStyle, w)
		v.drawStrip(s, w)
	}

	drawString(v.screen, 1, h-1, "q quit · l "+v.locale+" · click to open, drag to scroll", hintStyle, w)

	if v.opened != nil {
		v.drawOverlay(*v.opened, w, h)
	}
	v.screen.Show()
}

func (v *Viewer) drawStrip(s *section, screenWidth int) {
	c := s.track.Carousel()
	opts := c.Options()
	cardCols := int(opts.ItemWidth / CellWidth)
	active, hasActive := c.ActiveItem()

	for _, p := range s.track.Placements(v.viewportWidth()) {
		left := pxToCell(p.X)
		bg := tcell.NewRGBColor(int32(p.Item.From.R), int32(p.Item.From.G), int32(p.Item.From.B))
		style := tcell.StyleDefault.Background(bg).Foreground(cardText)
		if hasActive && active == p.Index {
			style = style.Reverse(true)
		}

		for dy := 0; dy < s.rows; dy++ {
			for dx := 0; dx < cardCols; dx++ {
				x := left + dx
				if x < 0 || x >= screenWidth {
					continue
				}
				v.screen.SetContent(x, s.top+dy, ' ', nil, style)
			}
		}

		lines := v.cardLines(p.Item, s.rows)
		for i, line := range lines {
			drawClipped(v.screen, left+1, s.top+i, line, style, cardCols-2, screenWidth)
		}
	}
}

// cardLines 卡片中显示的文字行
func (v *Viewer) cardLines(slide components.Slide, rows int) []string {
	if slide.Kind == components.SlideLogo {
		lines := make([]string, rows)
		lines[rows/2] = slide.DisplayTitle(v.locale)
		return lines
	}
	lines := []string{"", slide.DisplayTitle(v.locale), slide.Category.Get(v.locale)}
	for _, m := range slide.Meta {
		lines = append(lines, v.content.Label(m.LabelKey, v.locale)+": "+m.Value)
	}
	if len(lines) > rows {
		lines = lines[:rows]
	}
	return lines
}

func (v *Viewer) drawOverlay(slide components.Slide, w, h int) {
	lines := []string{slide.DisplayTitle(v.locale)}
	if category := slide.Category.Get(v.locale); category != "" {
		lines = append(lines, category)
	}
	if description := slide.Description.Get(v.locale); description != "" {
		lines = append(lines, description)
	}
	for _, m := range slide.Meta {
		lines = append(lines, v.content.Label(m.LabelKey, v.locale)+": "+m.Value)
	}
	lines = append(lines, "", v.content.Label("close", v.locale))

	boxW := w * 2 / 3
	boxH := len(lines) + 2
	left := (w - boxW) / 2
	top := (h - boxH) / 2
	for y := top; y < top+boxH; y++ {
		for x := left; x < left+boxW; x++ {
			v.screen.SetContent(x, y, ' ', nil, overlayStyle)
		}
	}
	for i, line := range lines {
		style := overlayStyle
		if i == 0 {
			style = style.Bold(true)
		}
		drawClipped(v.screen, left+2, top+1+i, line, style, boxW-4, w)
	}
}

// Close 卸载所有轮播，之后的事件和推进都不再生效
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	for _, s := range v.sections {
		s.track.Carousel().Close()
	}
	log.Printf("[TUI] Closed")
}

// Run 运行事件循环，直到用户退出或 ctx 取消
//
// 只有 NeedsTick 为真时才启动帧定时器；悬停暂停等静止状态下只等待事件。
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	var ticker *time.Ticker
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
		}
	}
	defer stopTicker()
	defer v.Close()

	v.Tick()
	v.Draw()
	for {
		var tick <-chan time.Time
		if v.NeedsTick() {
			if ticker == nil {
				ticker = time.NewTicker(TickInterval)
			}
			tick = ticker.C
		} else {
			stopTicker()
		}

		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
			v.Tick()
			v.Draw()
		case <-tick:
			v.Tick()
			v.Draw()
		}
	}
}

// drawString 从 (x, y) 开始绘制一行文字，超出屏幕宽度的部分被裁掉
func drawString(screen tcell.Screen, x, y int, str string, style tcell.Style, screenWidth int) {
	drawClipped(screen, x, y, str, style, screenWidth-x, screenWidth)
}

// drawClipped 最多绘制 maxCols 列，并裁掉屏幕外的部分
// 全角字符（如韩文）占两列，放不下的宽字符不绘制
func drawClipped(screen tcell.Screen, x, y int, str string, style tcell.Style, maxCols, screenWidth int) {
	col := 0
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > maxCols {
			break
		}
		if px := x + col; px >= 0 && px+w <= screenWidth {
			screen.SetContent(px, y, r, nil, style)
		}
		col += w
	}
}

// Package app 提供展示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/decker502/showreel/pkg/config"
	"github.com/decker502/showreel/pkg/game"
	"github.com/decker502/showreel/pkg/scenes"
	"github.com/decker502/showreel/pkg/telemetry"
	"github.com/decker502/showreel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// StorageAppName gdata 存储目录名称
const StorageAppName = "showreel"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// CarouselConfigPath 轮播布局与物理参数文件，为空使用 data/carousel.yaml
	CarouselConfigPath string
	// ContentPath 展示内容文件，为空使用 data/showcase.yaml
	ContentPath string
	// Locale 启动语言，覆盖已保存的设置
	Locale string
	// FontPath 字体文件，为空使用内置字体
	FontPath string
	// TelemetryAddr 遥测 HTTP/WebSocket 监听地址（如 ":8080"），为空不启动
	TelemetryAddr string
	// MQTTBroker 遥测 MQTT broker 地址（如 "tcp://localhost:1883"），为空不连接
	MQTTBroker string
}

// App 是展示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	verbose         bool

	carouselConfig *config.CarouselConfig
	content        *config.ShowcaseConfig
	fonts          *utils.FontCache
	fontPath       string

	// 遥测
	hub          *telemetry.Hub
	mqtt         *telemetry.MQTTPublisher
	sink         telemetry.Sink
	cancelServer context.CancelFunc

	pendingReload            bool // 设置变更后在帧末重建场景
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	closed                   bool
}

// NewApp 创建并初始化展示程序
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	carouselPath := cfg.CarouselConfigPath
	if carouselPath == "" {
		carouselPath = config.CarouselConfigPath
	}
	carouselConfig, err := config.LoadCarouselConfig(carouselPath)
	if err != nil {
		return nil, fmt.Errorf("轮播配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载轮播配置: %s", carouselPath)

	contentPath := cfg.ContentPath
	if contentPath == "" {
		contentPath = config.ShowcaseConfigPath
	}
	content, err := config.LoadShowcaseConfig(contentPath)
	if err != nil {
		return nil, fmt.Errorf("展示内容加载失败: %w", err)
	}
	log.Printf("[Config] 加载展示内容: %s (%d projects, %d partners)", contentPath, len(content.Projects), len(content.Partners))

	settingsManager, _ := game.NewSettingsManager(openStorage())
	if cfg.Locale != "" {
		if !content.HasLocale(cfg.Locale) {
			return nil, fmt.Errorf("不支持的语言 %q（可用: %v）", cfg.Locale, content.Locales)
		}
		settingsManager.SetLocale(cfg.Locale)
	}

	a := &App{
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
		carouselConfig:  carouselConfig,
		content:         content,
		fonts:           utils.NewFontCache(),
		fontPath:        cfg.FontPath,
	}
	a.startTelemetry(cfg)

	// 创建场景管理器
	a.sceneManager = game.NewSceneManager()
	a.sceneManager.SetSceneFactory(a.createScene)
	if !a.sceneManager.LoadScene(scenes.ShowcaseSceneName) {
		a.Close()
		return nil, fmt.Errorf("无法创建场景 %s", scenes.ShowcaseSceneName)
	}

	return a, nil
}

// openStorage 打开 gdata 存储，失败时返回 nil（设置仅保存在内存中）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	} else if path := utils.GetStoragePath(); path != "" {
		log.Printf("[App] Storage root: %s", path)
	}
	manager, err := gdata.Open(gdata.Config{
		AppName: StorageAppName,
	})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		return nil
	}
	return manager
}

// startTelemetry 按配置启动遥测；任何失败都只记录日志
func (a *App) startTelemetry(cfg Config) {
	var sinks telemetry.MultiSink

	if cfg.TelemetryAddr != "" {
		a.hub = telemetry.NewHub()
		ctx, cancel := context.WithCancel(context.Background())
		a.cancelServer = cancel
		go func(hub *telemetry.Hub, addr string) {
			if err := hub.Run(ctx, addr); err != nil {
				log.Printf("[Telemetry] Server stopped: %v", err)
			}
		}(a.hub, cfg.TelemetryAddr)
		sinks = append(sinks, a.hub)
	}

	if cfg.MQTTBroker != "" {
		clientID := "showreel-" + strconv.Itoa(os.Getpid())
		publisher, err := telemetry.NewMQTTPublisher(cfg.MQTTBroker, clientID)
		if err != nil {
			log.Printf("[Telemetry] Warning: MQTT disabled: %v", err)
		} else {
			a.mqtt = publisher
			sinks = append(sinks, publisher)
		}
	}

	if len(sinks) > 0 {
		a.sink = sinks
	}
}

// createScene 场景工厂
func (a *App) createScene(name string) game.Scene {
	switch name {
	case scenes.ShowcaseSceneName:
		return scenes.NewShowcaseScene(scenes.ShowcaseOptions{
			Content:   a.content,
			Carousels: a.carouselConfig,
			Settings:  a.settingsManager,
			Sink:      a.sink,
			Fonts:     a.fonts,
			FontPath:  a.fontPath,
			OnSettingsChanged: func() {
				a.pendingReload = true
			},
		})
	default:
		return nil
	}
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)

	// 场景在自己的 Update 中请求重建，等它返回后再替换
	if a.pendingReload {
		a.pendingReload = false
		a.sceneManager.Reload()
	}
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settingsManager.SetFullscreen(!a.settingsManager.GetSettings().Fullscreen)
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save fullscreen setting: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settingsManager
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Close 卸载场景、停止遥测并保存设置
// 可重复调用
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true

	if a.sceneManager != nil {
		a.sceneManager.Close()
	}
	if a.cancelServer != nil {
		a.cancelServer()
	}
	if a.hub != nil {
		a.hub.Close()
	}
	if a.mqtt != nil {
		a.mqtt.Close()
	}
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings on exit: %v", err)
	}
	log.Printf("[App] Closed")
}

// showreel_tui - 在终端中运行展示轮播
// 与桌面端共用 data/ 下的配置和 pkg/carousel 状态机，鼠标拖拽、点击打开卡片
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/decker502/showreel/pkg/config"
	"github.com/decker502/showreel/pkg/tui"
	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", config.CarouselConfigPath, "轮播布局与物理参数文件")
	contentPath := flag.String("content", config.ShowcaseConfigPath, "展示内容文件")
	locale := flag.String("locale", "", "启动语言（如 en, ko），为空使用内容文件的默认语言")
	speed := flag.Float64("speed", 1, "自动滚动速度倍率")
	logFile := flag.String("log", "", "日志文件路径，为空不输出日志（终端被界面占用）")
	flag.Parse()

	if err := run(*configPath, *contentPath, *locale, *speed, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "showreel_tui: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, contentPath, locale string, speed float64, logFile string) error {
	log.SetOutput(io.Discard)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("打开日志文件失败: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	carousels, err := config.LoadCarouselConfig(configPath)
	if err != nil {
		return fmt.Errorf("轮播配置加载失败: %w", err)
	}
	content, err := config.LoadShowcaseConfig(contentPath)
	if err != nil {
		return fmt.Errorf("展示内容加载失败: %w", err)
	}
	if locale != "" && !content.HasLocale(locale) {
		return fmt.Errorf("不支持的语言 %q（可用: %v）", locale, content.Locales)
	}
	if speed <= 0 {
		speed = 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("创建终端屏幕失败: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("初始化终端失败: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewer := tui.NewViewer(screen, tui.Options{
		Content:    content,
		Carousels:  carousels,
		Locale:     locale,
		SpeedScale: speed,
	})
	log.Printf("[TUI] Started (locale=%s, speed=%.2f)", viewer.Locale(), speed)
	return viewer.Run(ctx)
}

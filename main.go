package main

import (
	"flag"
	"log"

	"github.com/decker502/showreel/pkg/app"
	"github.com/decker502/showreel/pkg/config"
	"github.com/decker502/showreel/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose       = flag.Bool("verbose", false, "显示详细调试信息")
	configPath    = flag.String("config", config.CarouselConfigPath, "轮播布局与物理参数文件（磁盘优先，否则使用内置）")
	contentPath   = flag.String("content", config.ShowcaseConfigPath, "展示内容文件（磁盘优先，否则使用内置）")
	locale        = flag.String("locale", "", "启动语言（如 en、ko），为空使用已保存的设置")
	fontPath      = flag.String("font", "", "字体文件（显示韩文需要 CJK 字体），为空使用内置字体")
	telemetryAddr = flag.String("telemetry-addr", "", "遥测 HTTP/WebSocket 监听地址（如 :8080）")
	mqttBroker    = flag.String("mqtt-broker", "", "遥测 MQTT broker（如 tcp://localhost:1883）")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	showreel, err := app.NewApp(app.Config{
		Verbose:            *verbose,
		CarouselConfigPath: *configPath,
		ContentPath:        *contentPath,
		Locale:             *locale,
		FontPath:           *fontPath,
		TelemetryAddr:      *telemetryAddr,
		MQTTBroker:         *mqttBroker,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer showreel.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if showreel.Settings().GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(showreel); err != nil {
		showreel.Close()
		log.Fatal(err)
	}
}

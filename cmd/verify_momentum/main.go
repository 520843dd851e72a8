// verify_momentum - 轮播惯性滚动验证程序
// 用手动时钟重放一次快速甩动，逐帧打印速度与偏移，并核对状态机的关键行为
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/decker502/showreel/pkg/carousel"
	"github.com/decker502/showreel/pkg/config"
)

// ========== 验证报告结构 ==========

type ValidationReport struct {
	TestName string
	Passed   bool
	Message  string
}

var validationReports []ValidationReport

func addReport(testName string, passed bool, message string) {
	validationReports = append(validationReports, ValidationReport{
		TestName: testName,
		Passed:   passed,
		Message:  message,
	})
	status := "✗ FAIL"
	if passed {
		status = "✓ PASS"
	}
	log.Printf("%s | %-30s | %s", status, testName, message)
}

var (
	configPath = flag.String("config", config.CarouselConfigPath, "轮播配置文件")
	name       = flag.String("carousel", "projects", "使用的轮播布局")
	dragPx     = flag.Float64("drag", 120, "甩动距离（px，向左为正）")
	dragMs     = flag.Int("drag-ms", 30, "甩动耗时（毫秒）")
	tickMs     = flag.Int("tick-ms", 16, "模拟帧间隔（毫秒）")
	every      = flag.Int("every", 10, "每隔多少帧打印一行")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	cfg, err := config.LoadCarouselConfig(*configPath)
	if err != nil {
		log.Printf("[verify_momentum] %v, using defaults", err)
		cfg = config.DefaultCarouselConfig()
	}

	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := carousel.NewManualClock(epoch)
	opts := cfg.Options(*name, 1, clock)
	opts.ItemCount = 6
	c := carousel.New(opts)
	p := c.Physics()

	fmt.Printf("轮播 %s: 宽度 %.0f, 速度 %.0f px/s, 摩擦 %.2f / %v\n\n",
		*name, c.TotalWidth(), opts.Speed, p.Friction, p.ReferenceTick)

	// 1. 甩动：三次等距移动
	c.Update()
	start := 600.0
	c.PointerDown(start)
	steps := 3
	for i := 1; i <= steps; i++ {
		clock.Advance(time.Duration(*dragMs) * time.Millisecond / time.Duration(steps))
		c.PointerMove(start - *dragPx*float64(i)/float64(steps))
	}
	releaseOffset := c.Offset()
	c.PointerUp(start - *dragPx)

	release := -*dragPx / (float64(*dragMs) / 1000)
	seed := carousel.SeedVelocity(release, p)
	addReport("flick enters momentum", c.Mode() == carousel.ModeMomentum,
		fmt.Sprintf("mode=%s velocity=%.1f (seed %.1f)", c.Mode(), c.Velocity(), seed))

	// 2. 甩动后的第一次点击被抑制
	clock.Advance(50 * time.Millisecond)
	first := c.Click(0)
	second := c.Click(0)
	addReport("click suppressed once", !first && second,
		fmt.Sprintf("first=%v second=%v", first, second))

	// 3. 逐帧推进直到交还自动滚动
	tick := time.Duration(*tickMs) * time.Millisecond
	fmt.Printf("\n%6s %10s %12s %8s\n", "tick", "t(ms)", "velocity", "offset")
	ticks := 0
	elapsed := 50 * time.Millisecond
	c.Update()
	for c.Mode() == carousel.ModeMomentum && ticks < 100000 {
		clock.Advance(tick)
		elapsed += tick
		v := c.Velocity()
		c.Update()
		ticks++
		if ticks%*every == 0 || c.Mode() != carousel.ModeMomentum {
			fmt.Printf("%6d %10d %12.2f %8.1f\n", ticks, elapsed.Milliseconds(), v, c.Offset())
		}
	}
	fmt.Println()

	addReport("momentum returns to auto", c.Mode() == carousel.ModeAuto,
		fmt.Sprintf("mode=%s after %d ticks", c.Mode(), ticks))

	// 精确积分：总位移与帧划分无关
	want := carousel.Normalize(releaseOffset+carousel.Distance(seed, elapsed, p), c.TotalWidth())
	got := c.Offset()
	addReport("displacement matches integral", math.Abs(got-want) < 1.0,
		fmt.Sprintf("offset=%.2f integral=%.2f", got, want))

	if *tickMs == int(p.ReferenceTick/time.Millisecond) {
		expected := carousel.TicksToRest(seed, p)
		addReport("ticks to rest", absInt(ticks-expected) <= 4,
			fmt.Sprintf("simulated=%d predicted=%d", ticks, expected))
	}

	// 4. 交互过后悬停暂停，离开恢复
	c.PointerEnter()
	paused := c.Mode() == carousel.ModePaused && c.PauseReason() == carousel.PauseHover
	c.PointerLeave()
	addReport("hover pause after interaction", paused && c.Mode() == carousel.ModeAuto,
		fmt.Sprintf("paused=%v mode after leave=%s", paused, c.Mode()))

	failed := 0
	for _, r := range validationReports {
		if !r.Passed {
			failed++
		}
	}
	fmt.Printf("\n%d/%d checks passed\n", len(validationReports)-failed, len(validationReports))
	if failed > 0 {
		os.Exit(1)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

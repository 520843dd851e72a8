// Package telemetry 将轮播状态快照发布到外部观察者
//
// 遥测只接收值快照，从不持有或修改轮播状态。游戏循环调用 Publish，
// 具体的网络发送在各自的 goroutine 中完成，不阻塞渲染。
package telemetry

import (
	"time"

	"github.com/decker502/showreel/pkg/carousel"
)

// Snapshot 轮播状态快照（JSON）
type Snapshot struct {
	Carousel    string    `json:"carousel"`
	Mode        string    `json:"mode"`
	PauseReason string    `json:"pauseReason"`
	Offset      float64   `json:"offset"`
	Velocity    float64   `json:"velocity"`
	ActiveItem  int       `json:"activeItem"`
	Hovered     bool      `json:"hovered"`
	TotalWidth  float64   `json:"totalWidth"`
	Timestamp   time.Time `json:"timestamp"`
}

// FromCarousel 从轮播快照构造遥测快照
func FromCarousel(s carousel.Snapshot) Snapshot {
	return Snapshot{
		Carousel:    s.Name,
		Mode:        s.Mode.String(),
		PauseReason: s.PauseReason.String(),
		Offset:      s.Offset,
		Velocity:    s.Velocity,
		ActiveItem:  s.ActiveItem,
		Hovered:     s.Hovered,
		TotalWidth:  s.TotalWidth,
		Timestamp:   s.At,
	}
}

// Sink 快照接收者
// Publish 必须是非阻塞的，会在游戏循环中调用
type Sink interface {
	Publish(s Snapshot)
}

// MultiSink 将快照分发给多个接收者
type MultiSink []Sink

// Publish 依次发布给每个接收者
func (m MultiSink) Publish(s Snapshot) {
	for _, sink := range m {
		if sink != nil {
			sink.Publish(s)
		}
	}
}

// SinkFunc 函数适配器
type SinkFunc func(s Snapshot)

// Publish 调用函数本身
func (f SinkFunc) Publish(s Snapshot) {
	f(s)
}

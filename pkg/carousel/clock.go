package carousel

import (
	"sync"
	"time"
)

// Clock 时间源
// 轮播的所有推进都基于墙钟时间差，测试时可注入 ManualClock
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系统时间的默认时钟
type SystemClock struct{}

// Now 返回当前系统时间
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock 手动推进的时钟
// 用于测试和无头模拟（cmd/verify_momentum）
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock 创建从指定时间开始的手动时钟
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now 返回当前模拟时间
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance 将时钟向前推进 d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set 将时钟设置为指定时间
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

package carousel

// Mode 轮播的运动模式
// 任一时刻只有一个模式驱动 offset
type Mode int

const (
	// ModeAuto 空闲时以恒定速度自动前进
	ModeAuto Mode = iota
	// ModeDragging offset 由指针位移直接决定
	ModeDragging
	// ModeMomentum 松手后按指数衰减的惯性滚动
	ModeMomentum
	// ModePaused offset 冻结（悬停或点按单个卡片）
	ModePaused
)

// String 返回模式名称（用于日志和遥测）
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeDragging:
		return "dragging"
	case ModeMomentum:
		return "momentum"
	case ModePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// PauseReason 暂停原因，决定 ModePaused 的退出规则
type PauseReason int

const (
	// PauseNone 未暂停
	PauseNone PauseReason = iota
	// PauseHover 桌面端悬停暂停，指针离开时恢复
	PauseHover
	// PauseItem 触摸端点按卡片暂停，计时器到期后恢复
	PauseItem
)

// String 返回暂停原因名称
func (r PauseReason) String() string {
	switch r {
	case PauseNone:
		return "none"
	case PauseHover:
		return "hover"
	case PauseItem:
		return "item"
	default:
		return "unknown"
	}
}

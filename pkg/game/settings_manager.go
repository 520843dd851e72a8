package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 速度倍率范围
const (
	MinSpeedScale = 0.25
	MaxSpeedScale = 4.0

	// DefaultLocale 默认界面语言
	DefaultLocale = "en"
)

// Settings 全局展示设置
// 注意：这些设置是全局的，所有轮播实例共用
type Settings struct {
	// 内容设置
	Locale string `yaml:"locale"` // 界面语言，如 "en"、"ko"

	// 轮播设置
	PauseOnHover bool    `yaml:"pauseOnHover"` // 交互过后悬停是否暂停
	SpeedScale   float64 `yaml:"speedScale"`   // 自动滚动速度倍率 0.25 ~ 4.0

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return &Settings{
		Locale:       DefaultLocale,
		PauseOnHover: true,
		SpeedScale:   1.0,
		Fullscreen:   false,
	}
}

// normalize 修正旧版本或手工编辑的存档中缺失、越界的字段
func (s *Settings) normalize() {
	if s.Locale == "" {
		s.Locale = DefaultLocale
	}
	if s.SpeedScale == 0 {
		s.SpeedScale = 1.0
	}
	s.SpeedScale = clampSpeedScale(s.SpeedScale)
}

// SettingsManager 设置管理器
// 负责展示设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *Settings      // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方判断，加载失败不影响创建
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，缺失字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.normalize()

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully (locale=%s, speedScale=%.2f)",
		loaded.Locale, loaded.SpeedScale)
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
//
// 返回：
//   - error: 如果序列化或保存失败返回错误
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// IsPersistent 返回设置是否能够持久化（非降级模式）
func (sm *SettingsManager) IsPersistent() bool {
	return sm.gdataManager != nil
}

// GetSettings 获取当前设置
//
// 返回：
//   - *Settings: 当前设置实例
func (sm *SettingsManager) GetSettings() *Settings {
	return sm.settings
}

// SetLocale 设置界面语言
//
// 空字符串会回退为默认语言
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
//
// 参数：
//   - locale: 语言代码
func (sm *SettingsManager) SetLocale(locale string) {
	if locale == "" {
		locale = DefaultLocale
	}
	sm.settings.Locale = locale
}

// SetPauseOnHover 设置悬停暂停开关
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetPauseOnHover(enabled bool) {
	sm.settings.PauseOnHover = enabled
}

// SetSpeedScale 设置自动滚动速度倍率
//
// 倍率会被限制在 MinSpeedScale ~ MaxSpeedScale 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
//
// 参数：
//   - scale: 速度倍率
func (sm *SettingsManager) SetSpeedScale(scale float64) {
	sm.settings.SpeedScale = clampSpeedScale(scale)
}

// SetFullscreen 设置全屏模式
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
//
// 参数：
//   - enabled: 是否启用全屏
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// clampSpeedScale 将速度倍率限制在允许范围内
func clampSpeedScale(scale float64) float64 {
	if scale < MinSpeedScale {
		return MinSpeedScale
	}
	if scale > MaxSpeedScale {
		return MaxSpeedScale
	}
	return scale
}

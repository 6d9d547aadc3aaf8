package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// PlayerSettings 玩家偏好设置
// 与脚本无关，对所有脚本生效
type PlayerSettings struct {
	// 语音设置
	VoiceVolume  float64 `yaml:"voiceVolume"`  // 语音提示音量 0.0 ~ 1.0
	VoiceEnabled bool    `yaml:"voiceEnabled"` // 语音提示开关

	// 阅读设置
	TextSpeedScale float64 `yaml:"textSpeedScale"` // 打字机速度倍率，乘在脚本的 box_text_speed 上

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// 文字速度倍率范围
const (
	MinTextSpeedScale = 0.25
	MaxTextSpeedScale = 4.0
)

// DefaultSettings 返回默认设置
func DefaultSettings() *PlayerSettings {
	return &PlayerSettings{
		VoiceVolume:    0.8,
		VoiceEnabled:   true,
		TextSpeedScale: 1.0,
		Fullscreen:     false,
	}
}

// SettingsManager 设置管理器
// 负责玩家设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *PlayerSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "player"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留以便调用方统一处理（加载失败只记录日志，不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置。
// 缺失的字段保留默认值，超出范围的值会被修正。
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (sm *SettingsManager) Load() error {
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

	// 在默认值上反序列化，旧版本数据缺少的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	loaded.VoiceVolume = clampVolume(loaded.VoiceVolume)
	loaded.TextSpeedScale = clampSpeedScale(loaded.TextSpeedScale)
	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
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

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *PlayerSettings {
	return sm.settings
}

// SetVoiceVolume 设置语音音量
//
// 音量值会被限制在 0.0 ~ 1.0 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetVoiceVolume(volume float64) {
	sm.settings.VoiceVolume = clampVolume(volume)
}

// SetVoiceEnabled 设置语音开关
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetVoiceEnabled(enabled bool) {
	sm.settings.VoiceEnabled = enabled
}

// SetTextSpeedScale 设置打字机速度倍率
//
// 倍率会被限制在 MinTextSpeedScale ~ MaxTextSpeedScale 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetTextSpeedScale(scale float64) {
	sm.settings.TextSpeedScale = clampSpeedScale(scale)
}

// SetFullscreen 设置全屏模式
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}

func clampSpeedScale(scale float64) float64 {
	if scale < MinTextSpeedScale {
		return MinTextSpeedScale
	}
	if scale > MaxTextSpeedScale {
		return MaxTextSpeedScale
	}
	return scale
}

package game

import (
	"log"

	"github.com/decker502/birdsong/pkg/types"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 语音提示播放器
// 职责：
//   - 实现运行时的 AudioPlayer 接口，播放角色的语音提示
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 按资源路径缓存播放器，同一提示重复播放时复用
//
// 语音提示即发即忘：再次播放同一提示会从头开始，不会叠加。
// 资源尚未加载完成或加载失败时静默跳过。
type AudioManager struct {
	resourceManager *ResourceManager         // 资源管理器（提供解码后的 PCM 数据）
	settingsManager *SettingsManager         // 设置管理器（用于读取音量设置，可为 nil）
	voicePlayers    map[string]*audio.Player // 语音播放器缓存（资源路径 -> 播放器）
	playCount       int                      // 实际播放次数
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于获取音频数据）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		voicePlayers:    make(map[string]*audio.Player),
	}
}

// Play 播放语音提示
// 语音提示使用 VoiceVolume 设置控制音量，单次播放后停止
//
// 参数：
//   - h: 语音资源句柄（由 ResourceManager.Load 返回）
func (am *AudioManager) Play(h types.Handle) {
	am.PlayVoice(h)
}

// PlayVoice 播放语音提示，返回是否真正开始播放
func (am *AudioManager) PlayVoice(h types.Handle) bool {
	if h == nil {
		return false
	}

	if am.settingsManager != nil {
		if !am.settingsManager.GetSettings().VoiceEnabled {
			return false // 语音已禁用
		}
	}

	player := am.getVoicePlayer(h)
	if player == nil {
		return false
	}

	player.SetVolume(am.getVoiceVolume())

	// 重置并播放
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind voice %s: %v", h.Path(), err)
	}
	player.Play()
	am.playCount++

	return true
}

// PlayCount 返回实际开始播放的次数
func (am *AudioManager) PlayCount() int {
	return am.playCount
}

// GetVoiceVolume 获取当前语音音量
func (am *AudioManager) GetVoiceVolume() float64 {
	return am.getVoiceVolume()
}

// getVoicePlayer 获取或创建语音播放器
func (am *AudioManager) getVoicePlayer(h types.Handle) *audio.Player {
	if player, exists := am.voicePlayers[h.Path()]; exists {
		return player
	}

	if am.resourceManager == nil || am.resourceManager.AudioContext() == nil {
		return nil
	}

	// 尚未加载完成，下次再试
	pcm := am.resourceManager.Sound(h)
	if pcm == nil {
		return nil
	}

	player := am.resourceManager.AudioContext().NewPlayerFromBytes(pcm)
	am.voicePlayers[h.Path()] = player
	return player
}

// getVoiceVolume 获取语音音量设置
func (am *AudioManager) getVoiceVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().VoiceVolume
	}
	return 0.8 // 默认值
}

// Close 停止并释放所有播放器
func (am *AudioManager) Close() {
	for path, player := range am.voicePlayers {
		if err := player.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close voice %s: %v", path, err)
		}
	}
	am.voicePlayers = make(map[string]*audio.Player)
}

package components

import (
	"github.com/decker502/birdsong/pkg/ecs"
	"github.com/decker502/birdsong/pkg/types"
)

// ActorComponent 说话角色（立绘 + 周期性语音）状态
type ActorComponent struct {
	Enabled bool
	Created bool
	// Dirty 角色切换，需要刷新立绘
	Dirty bool

	// Name 当前角色名（ACTORS 表中的键）
	Name string

	// Entity 立绘渲染对象
	Entity ecs.EntityID

	// Position 立绘当前所在位置，portrait_position 变化时需要同步
	Position types.Vec3

	// VoiceTimer 语音提示计时器，周期为 voice_frequency 秒
	VoiceTimer TimerComponent
}

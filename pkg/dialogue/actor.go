package dialogue

import (
	"math"

	"github.com/decker502/birdsong/pkg/components"
	"github.com/decker502/birdsong/pkg/ecs"
)

// updateActor 角色状态机的一步：立绘生命周期 + 语音提示
//
// 立绘在角色切换或 portrait_position 变化时同步。
// 语音计时器周期为 voice_frequency，设置变化时重建；
// 只有对话框正在逐字显示时，计时器每完成一个周期播放一次语音。
func updateActor(c *Context, r Renderer, audio AudioPlayer, dt float64) Transition {
	a := &c.Actor
	step := lifecycle(a.Enabled, a.Created)

	actor, known := c.Actors[a.Name]
	if step == TransitionCreate && !known {
		// 解释器只会用已知角色启用；表被替换后名称可能失效
		a.Enabled = false
		return TransitionNone
	}

	pos := c.Settings.PortraitPosition
	switch step {
	case TransitionCreate:
		a.Entity = r.CreateSprite(actor.Portrait, components.LayerPortrait, pos)
		a.Created = true
		a.Dirty = false
		a.Position = pos

	case TransitionDestroy:
		r.Destroy(a.Entity)
		a.Entity = ecs.InvalidEntity
		a.Created = false
		return step

	case TransitionNone:
		if a.Enabled && known && (a.Dirty || a.Position != pos) {
			r.UpdateSprite(a.Entity, actor.Portrait, pos)
			a.Dirty = false
			a.Position = pos
			step = TransitionRefresh
		}
	}

	if !a.Enabled {
		return step
	}

	if a.VoiceTimer.TargetTime != c.Settings.VoiceFrequency {
		a.VoiceTimer = components.TimerComponent{Name: a.VoiceTimer.Name, TargetTime: c.Settings.VoiceFrequency}
	}
	tickTimer(&a.VoiceTimer, dt)
	if a.VoiceTimer.JustFired && c.Box.Printing && audio != nil && known {
		audio.Play(actor.Voice)
	}
	return step
}

// tickTimer 推进重复计时器；一次 tick 最多触发一次
func tickTimer(t *components.TimerComponent, dt float64) {
	t.JustFired = false
	if t.TargetTime <= 0 {
		return
	}
	t.CurrentTime += dt
	if t.CurrentTime >= t.TargetTime {
		t.JustFired = true
		t.CurrentTime = math.Mod(t.CurrentTime, t.TargetTime)
	}
}

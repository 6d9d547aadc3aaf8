package dialogue

import (
	"github.com/decker502/birdsong/pkg/components"
	"github.com/decker502/birdsong/pkg/ecs"
	"github.com/decker502/birdsong/pkg/types"
)

// updateBackground 背景状态机的一步，背景位于表中记录的坐标（Z 为 0）
func updateBackground(c *Context, r Renderer) Transition {
	b := &c.Background
	step := lifecycle(b.Enabled, b.Created)

	bg, known := c.Backgrounds[b.Name]
	if step == TransitionCreate && !known {
		b.Enabled = false
		return TransitionNone
	}
	pos := types.Vec3{X: bg.Position.X, Y: bg.Position.Y}

	switch step {
	case TransitionCreate:
		b.Entity = r.CreateSprite(bg.Image, components.LayerBackground, pos)
		b.Created = true
		b.Dirty = false

	case TransitionDestroy:
		r.Destroy(b.Entity)
		b.Entity = ecs.InvalidEntity
		b.Created = false

	case TransitionNone:
		if b.Enabled && b.Dirty && known {
			r.UpdateSprite(b.Entity, bg.Image, pos)
			b.Dirty = false
			step = TransitionRefresh
		}
	}
	return step
}

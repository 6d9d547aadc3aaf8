package dialogue

import (
	"math"

	"github.com/decker502/birdsong/pkg/ecs"
	"github.com/rivo/uniseg"
)

// updateDialogueBox 对话框（打字机）状态机的一步
//
// 可见期间每步 cursor = min(length, cursor + speed*dt)，
// 包括创建渲染对象的那一步。显示文本取正文前 floor(cursor) 个字素簇。
func updateDialogueBox(c *Context, r Renderer, dt, speedScale float64) Transition {
	box := &c.Box
	step := lifecycle(box.Enabled, box.Created)

	switch step {
	case TransitionCreate:
		box.Shown = ""
		box.Entity = r.CreateTextBox("", c.Settings.TextStyle(), c.Settings.BoxSize, c.Settings.BoxPosition)
		box.Created = true

	case TransitionDestroy:
		r.Destroy(box.Entity)
		box.Entity = ecs.InvalidEntity
		box.Created = false
		box.Shown = ""
		box.Printing = false
		return step
	}

	if !box.Enabled {
		return step
	}

	box.EntryIndex = c.Index
	advance := math.Max(0, c.Settings.BoxTextSpeed*speedScale*dt)
	box.Cursor = math.Min(float64(box.Length), box.Cursor+advance)
	box.Printing = box.Cursor < float64(box.Length)

	shown := graphemePrefix(box.Text, int(math.Floor(box.Cursor)))
	if shown != box.Shown || step == TransitionCreate {
		box.Shown = shown
		r.UpdateTextBox(box.Entity, shown, c.Settings.TextStyle())
		if step == TransitionNone {
			step = TransitionRefresh
		}
	}
	return step
}

// setBoxText 载入新条目的正文，cursor 归零
func setBoxText(c *Context, text string) {
	c.Box.Text = text
	c.Box.Length = uniseg.GraphemeClusterCount(text)
	c.Box.Cursor = 0
	c.Box.Printing = c.Box.Length > 0
	c.Box.TextEntry = c.Index
}

// graphemePrefix 返回 s 的前 n 个字素簇
func graphemePrefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	g := uniseg.NewGraphemes(s)
	end := 0
	for i := 0; i < n && g.Next(); i++ {
		_, end = g.Positions()
	}
	return s[:end]
}

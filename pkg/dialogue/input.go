package dialogue

import "github.com/decker502/birdsong/pkg/types"

// handleInput 消费本周期的输入动作
// 输入只影响解释器和选项状态，从不触发解析
func handleInput(c *Context, actions types.ActionSet, report func(error), conclude func()) {
	if actions.Empty() {
		return
	}

	if actions.Has(types.ActionNavigateUp) {
		moveSelection(&c.Choices, -1)
	}
	if actions.Has(types.ActionNavigateDown) {
		moveSelection(&c.Choices, 1)
	}

	if c.Choices.Enabled {
		if actions.Has(types.ActionConfirm) {
			confirmChoice(c, report)
		}
		return
	}

	if actions.Has(types.ActionAdvance) {
		advance(c, conclude)
	}
}

// confirmChoice 跳转到选中项的目标
// 目标越界时拒绝跳转并报告 RangeError，菜单保持打开
func confirmChoice(c *Context, report func(error)) {
	ch := &c.Choices
	if !ch.Created || ch.Count == 0 {
		return
	}
	target := ch.Options[ch.Selected].Target
	if target < 0 || target >= len(c.Entries) {
		report(&RangeError{Target: target, Count: len(c.Entries), EntryIndex: c.Index})
		return
	}

	ch.Pending = target
	c.Index = target
	c.Box.Cursor = 0
	ch.Enabled = false
	c.entered = -1
	c.Processing = true
	c.Concluded = false
}

// advance 推进：正在打字时立即显示全文，否则前进到下一个条目
// 在最后一个条目上推进会结束运行
func advance(c *Context, conclude func()) {
	if !c.Processing || c.Concluded || c.entered != c.Index {
		return
	}
	entry, ok := c.CurrentEntry()
	if !ok || !isWaiting(entry) {
		return
	}

	if c.Box.Printing && c.Box.TextEntry == c.Index {
		c.Box.Cursor = float64(c.Box.Length)
		return
	}

	if c.Index < len(c.Entries)-1 {
		c.Index++
		c.Box.Cursor = 0
		return
	}
	conclude()
}

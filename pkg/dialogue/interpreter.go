package dialogue

import (
	"strings"

	"github.com/decker502/birdsong/internal/script"
)

const speakerDelimiter = "@"

// processEntry 解释当前条目
//
// 每个条目的效果只在进入时应用一次（entered 记录已进入的索引），
// 因此闸门打开期间每周期调用都是安全的。
// s 和 i 是“免费”条目：应用后立即前进一位；位于最后一位时直接结束运行。
func processEntry(c *Context, report func(error), conclude func()) {
	if !c.Processing || c.Concluded || len(c.Entries) == 0 {
		return
	}
	if c.entered == c.Index {
		return
	}
	entry, ok := c.CurrentEntry()
	if !ok {
		return
	}
	c.entered = c.Index

	switch entry.Type {
	case script.EntrySettings:
		for _, err := range applySettings(&c.Settings, entry.Payload, c.Fonts, c.CursorSprites, c.Index) {
			report(err)
		}
		advanceFree(c, conclude)

	case script.EntryImage:
		name := strings.TrimSpace(entry.Payload)
		if _, ok := c.Backgrounds[name]; ok {
			c.Background.Name = name
			c.Background.Enabled = true
			c.Background.Dirty = true
		} else {
			report(&ReferenceError{Table: TableBackgrounds, Name: name, EntryIndex: c.Index})
		}
		advanceFree(c, conclude)

	case script.EntryText:
		body := entry.Payload
		if speaker, rest, found := strings.Cut(entry.Payload, speakerDelimiter); found {
			body = rest
			if _, ok := c.Actors[speaker]; ok {
				c.Actor.Name = speaker
				c.Actor.Enabled = true
				c.Actor.Dirty = true
			} else {
				report(&ReferenceError{Table: TableActors, Name: speaker, EntryIndex: c.Index})
			}
		}
		setBoxText(c, body)
		c.Box.Enabled = true

	case script.EntryChoice:
		c.Box.Enabled = false
		c.Actor.Enabled = false
		c.Choices.Enabled = true
		c.Choices.Source = c.Index

	default:
		report(&UnknownEntryError{Tag: entry.Type, EntryIndex: c.Index})
	}
}

// advanceFree 免费条目之后前进一位
func advanceFree(c *Context, conclude func()) {
	if c.Index < len(c.Entries)-1 {
		c.Index++
		return
	}
	conclude()
}

// isWaiting 当前条目是否在等待推进输入
// 文本条目等待推进；无法识别的条目也允许推进跳过
func isWaiting(entry script.Entry) bool {
	switch entry.Type {
	case script.EntrySettings, script.EntryImage, script.EntryChoice:
		return false
	}
	return true
}

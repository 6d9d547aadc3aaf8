package dialogue

import (
	"errors"
	"strconv"
	"strings"

	"github.com/decker502/birdsong/pkg/components"
	"github.com/decker502/birdsong/pkg/types"
)

const (
	optionDelimiter = "|"
	targetDelimiter = "@"
)

var errMissingTarget = errors.New("missing '@' before jump target")

// parseOptions 把选项条目负载拆成选项列表
// 无法解析的目标记为 -1，确认时报告 RangeError
func parseOptions(payload string, entryIndex int) ([]components.ChoiceOption, []error) {
	var errs []error
	parts := strings.Split(payload, optionDelimiter)
	options := make([]components.ChoiceOption, 0, len(parts))

	for _, part := range parts {
		opt, err := parseOption(part, entryIndex)
		if err != nil {
			errs = append(errs, err)
		}
		options = append(options, opt)
	}
	return options, errs
}

// parseOption 解析 label@target
func parseOption(part string, entryIndex int) (components.ChoiceOption, error) {
	label, target, ok := strings.Cut(part, targetDelimiter)
	opt := components.ChoiceOption{Label: label, Target: -1}
	if !ok {
		return opt, &ValueError{Key: "choice", Value: part, EntryIndex: entryIndex, Err: errMissingTarget}
	}
	n, err := strconv.Atoi(strings.TrimSpace(target))
	if err != nil {
		return opt, &ValueError{Key: "choice", Value: part, EntryIndex: entryIndex, Err: err}
	}
	opt.Target = n
	return opt, nil
}

// updateChoices 选项菜单状态机的一步
//
// 第 i 个选项的锚点为 box_position 下移 i*choice_spacing，
// 文本右移 choice_indent，光标在锚点基础上下移 cursor_offset。
// 只有选中项的光标可见。
func updateChoices(c *Context, r Renderer, report func(error)) Transition {
	ch := &c.Choices
	step := lifecycle(ch.Enabled, ch.Created)

	// 从一个选项跳到另一个选项：旧菜单仍在，但来源条目变了
	if step == TransitionNone && ch.Enabled && ch.EntryIndex != ch.Source {
		destroyChoices(ch, r)
		step = TransitionCreate
	}

	switch step {
	case TransitionCreate:
		buildChoices(c, r, report)

	case TransitionDestroy:
		destroyChoices(ch, r)

	case TransitionNone:
		if ch.Enabled && ch.Dirty {
			syncChoiceCursors(ch, r)
			step = TransitionRefresh
		}
	}
	return step
}

func buildChoices(c *Context, r Renderer, report func(error)) {
	ch := &c.Choices
	s := &c.Settings

	payload := ""
	if ch.Source >= 0 && ch.Source < len(c.Entries) {
		payload = c.Entries[ch.Source].Payload
	}
	options, errs := parseOptions(payload, ch.Source)
	for _, err := range errs {
		report(err)
	}

	style := s.TextStyle()
	for i := range options {
		delta := float64(i) * s.ChoiceSpacing
		anchor := s.BoxPosition.Add(types.Vec3{Y: -delta})
		options[i].Anchor = anchor
		options[i].LabelEntity = r.CreateChoiceItem(i, options[i].Label, style, s.BoxSize,
			s.BoxPosition.Add(types.Vec3{X: s.ChoiceIndent, Y: -delta}))
		options[i].CursorEntity = r.CreateChoiceCursor(i, s.Cursor,
			anchor.Add(types.Vec3{Y: -s.CursorOffset}), i == 0)
	}

	ch.Options = options
	ch.Count = len(options)
	ch.Selected = 0
	ch.Pending = options[0].Target
	ch.EntryIndex = ch.Source
	ch.Created = true
	ch.Dirty = false
}

func destroyChoices(ch *components.ChoiceComponent, r Renderer) {
	for _, opt := range ch.Options {
		r.Destroy(opt.LabelEntity)
		r.Destroy(opt.CursorEntity)
	}
	ch.Options = nil
	ch.Count = 0
	ch.Selected = 0
	ch.Pending = 0
	ch.EntryIndex = -1
	ch.Created = false
	ch.Dirty = false
}

func syncChoiceCursors(ch *components.ChoiceComponent, r Renderer) {
	for i, opt := range ch.Options {
		r.SetVisible(opt.CursorEntity, i == ch.Selected)
	}
	ch.Pending = ch.Options[ch.Selected].Target
	ch.Dirty = false
}

// moveSelection 选中项移动 delta，夹在 [0, Count-1]，不回绕
func moveSelection(ch *components.ChoiceComponent, delta int) {
	if !ch.Enabled || !ch.Created || ch.Count == 0 {
		return
	}
	next := ch.Selected + delta
	if next < 0 {
		next = 0
	}
	if next > ch.Count-1 {
		next = ch.Count - 1
	}
	if next != ch.Selected {
		ch.Selected = next
		ch.Dirty = true
	}
}

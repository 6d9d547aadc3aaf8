package components

import (
	"github.com/decker502/birdsong/pkg/ecs"
	"github.com/decker502/birdsong/pkg/types"
)

// ChoiceOption 一个分支选项
type ChoiceOption struct {
	// Label 选项显示文本
	Label string

	// Target 确认后跳转到的条目索引（解析失败时为 -1）
	Target int

	// Anchor 选项锚点（光标以此为基准下移 cursor_offset）
	Anchor types.Vec3

	// LabelEntity 选项文本渲染对象
	LabelEntity ecs.EntityID

	// CursorEntity 选项光标渲染对象（仅当前选中项可见）
	CursorEntity ecs.EntityID
}

// ChoiceComponent 分支选项菜单状态（纯数据）
type ChoiceComponent struct {
	// Enabled 菜单是否应该显示
	Enabled bool

	// Created 菜单渲染对象是否已创建
	Created bool

	// Dirty 选中项变化，需要同步光标可见性
	Dirty bool

	// Selected 当前选中项索引，Count > 0 时取值 [0, Count)
	Selected int

	// Pending 当前选中项的跳转目标
	Pending int

	// Count 选项数量
	Count int

	// Options 选项列表
	Options []ChoiceOption

	// EntryIndex 已创建的菜单来自哪个条目
	EntryIndex int

	// Source 解释器请求显示的选项条目
	// 与 EntryIndex 不同时（选项跳转到另一个选项）菜单需要重建
	Source int
}

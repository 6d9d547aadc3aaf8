package components

import "github.com/decker502/birdsong/pkg/ecs"

// DialogueBoxState 对话框的生命周期状态
type DialogueBoxState int

const (
	// DialogueBoxHidden 不可见（初始状态或销毁完成后）
	DialogueBoxHidden DialogueBoxState = iota

	// DialogueBoxCreating 已启用但渲染对象尚未创建（下一步创建）
	DialogueBoxCreating

	// DialogueBoxRevealing 打字机效果进行中
	DialogueBoxRevealing

	// DialogueBoxSettled 全文已显示，等待推进
	DialogueBoxSettled

	// DialogueBoxDestroying 已禁用但渲染对象仍存在（下一步销毁）
	DialogueBoxDestroying
)

// String 返回 DialogueBoxState 的字符串表示
func (s DialogueBoxState) String() string {
	switch s {
	case DialogueBoxHidden:
		return "Hidden"
	case DialogueBoxCreating:
		return "Creating"
	case DialogueBoxRevealing:
		return "Revealing"
	case DialogueBoxSettled:
		return "Settled"
	case DialogueBoxDestroying:
		return "Destroying"
	default:
		return "Unknown"
	}
}

// DialogueBoxComponent 对话框（打字机）状态（纯数据，无逻辑）
//
// 生命周期:
//  1. 运行时启动时创建，处于禁用状态
//  2. 文本条目启用对话框，下一步创建渲染对象
//  3. 每步推进 Cursor，直到全文显示
//  4. 选项条目禁用对话框，下一步销毁渲染对象
//
// 注意事项:
//   - Enabled 表示“应该显示”，Created 表示“已经渲染”，两者相差一步
//   - 所有状态转换逻辑在 dialogue 包中实现
type DialogueBoxComponent struct {
	// ==========================================================================
	// 可见性 (Visibility)
	// ==========================================================================

	// Enabled 对话框是否应该显示
	Enabled bool

	// Created 对话框渲染对象是否已创建
	Created bool

	// Entity 渲染对象实体（未创建时为 ecs.InvalidEntity）
	Entity ecs.EntityID

	// ==========================================================================
	// 打字机 (Typewriter)
	// ==========================================================================

	// Cursor 已显示的字符数（浮点，向下取整后使用）
	// 打字过程中单调不减，仅在切换条目时归零
	Cursor float64

	// Text 当前条目的正文（已去除说话人前缀）
	Text string

	// Length 正文的字符数（按字素簇计算）
	Length int

	// Shown 渲染对象当前显示的文本
	Shown string

	// Printing 是否仍在逐字显示
	Printing bool

	// ==========================================================================
	// 进度 (Progress)
	// ==========================================================================

	// EntryIndex 解释器当前所在的条目索引
	EntryIndex int

	// TextEntry 当前 Text 来自哪个条目（-1 表示尚未加载）
	TextEntry int
}

// State 根据 Enabled/Created/Printing 推导生命周期状态
func (c *DialogueBoxComponent) State() DialogueBoxState {
	switch {
	case c.Enabled && !c.Created:
		return DialogueBoxCreating
	case !c.Enabled && c.Created:
		return DialogueBoxDestroying
	case !c.Enabled:
		return DialogueBoxHidden
	case c.Printing:
		return DialogueBoxRevealing
	default:
		return DialogueBoxSettled
	}
}

package components

import "github.com/decker502/birdsong/pkg/types"

// TextBoxComponent 文本渲染对象（对话框或选项文本）
type TextBoxComponent struct {
	Text  string
	Style types.TextStyle

	// Width, Height 文本区域尺寸，超出宽度自动换行
	Width, Height float64
}

// DialogueTextComponent 标记对话框实体
type DialogueTextComponent struct{}

// ChoiceItemComponent 标记选项菜单中的实体（文本与光标）
type ChoiceItemComponent struct {
	// Index 所属选项序号
	Index int
}

// ChoiceCursorComponent 标记选项光标实体
type ChoiceCursorComponent struct {
	Index int
}

package dialogue

import "fmt"

// 名称表，用于 ReferenceError.Table
const (
	TableFonts         = "fonts"
	TableCursorSprites = "cursor sprites"
	TableBackgrounds   = "backgrounds"
	TableActors        = "actors"
)

// ReferenceError 条目引用了表中不存在的名称
// 只跳过出错的那一个子动作，运行继续
type ReferenceError struct {
	Table      string
	Name       string
	EntryIndex int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("entry %d: %s has no entry named %q", e.EntryIndex, e.Table, e.Name)
}

// RangeError 选项的跳转目标超出条目列表
// 确认被拒绝，菜单保持打开
type RangeError struct {
	Target     int
	Count      int
	EntryIndex int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("entry %d: jump target %d outside [0, %d)", e.EntryIndex, e.Target, e.Count)
}

// ValueError 设置值或选项目标无法解析
type ValueError struct {
	Key        string
	Value      string
	EntryIndex int
	Err        error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("entry %d: invalid value %q for %s: %v", e.EntryIndex, e.Value, e.Key, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// UnknownEntryError 无法识别的条目类型
// 该条目不会自动推进，需要玩家推进跳过
type UnknownEntryError struct {
	Tag        string
	EntryIndex int
}

func (e *UnknownEntryError) Error() string {
	return fmt.Sprintf("entry %d: unknown entry type %q", e.EntryIndex, e.Tag)
}

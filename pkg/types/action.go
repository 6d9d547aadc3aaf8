// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// Action 对话运行时消费的输入动作
// 宿主负责把键盘/鼠标/触摸映射为动作，映射本身不属于运行时
type Action int

const (
	// ActionAdvance 推进对话（打字中则立即显示全文）
	ActionAdvance Action = iota
	// ActionNavigateUp 选项上移
	ActionNavigateUp
	// ActionNavigateDown 选项下移
	ActionNavigateDown
	// ActionConfirm 确认当前选项
	ActionConfirm
)

// String 返回动作的字符串表示
func (a Action) String() string {
	switch a {
	case ActionAdvance:
		return "Advance"
	case ActionNavigateUp:
		return "NavigateUp"
	case ActionNavigateDown:
		return "NavigateDown"
	case ActionConfirm:
		return "Confirm"
	default:
		return "Unknown"
	}
}

// ActionSet 一个轮询周期内采集到的动作集合
// 两次轮询之间的多次按键合并为一次（边沿触发）
type ActionSet uint8

// NewActionSet 由若干动作构造集合
func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

// With 返回加入动作 a 后的集合
func (s ActionSet) With(a Action) ActionSet {
	return s | 1<<uint(a)
}

// Has 检查集合是否包含动作 a
func (s ActionSet) Has(a Action) bool {
	return s&(1<<uint(a)) != 0
}

// Empty 集合是否为空
func (s ActionSet) Empty() bool {
	return s == 0
}

package dialogue

// Transition 呈现状态机一步的结果，决定需要对渲染对象做什么
type Transition int

const (
	// TransitionNone 无需改动
	TransitionNone Transition = iota
	// TransitionCreate 创建渲染对象
	TransitionCreate
	// TransitionRefresh 更新已存在的渲染对象
	TransitionRefresh
	// TransitionDestroy 销毁渲染对象
	TransitionDestroy
)

// String 返回 Transition 的字符串表示
func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "None"
	case TransitionCreate:
		return "Create"
	case TransitionRefresh:
		return "Refresh"
	case TransitionDestroy:
		return "Destroy"
	default:
		return "Unknown"
	}
}

// lifecycle 由 enabled/created 推导基本转换，两者一致时返回 TransitionNone
func lifecycle(enabled, created bool) Transition {
	switch {
	case enabled && !created:
		return TransitionCreate
	case !enabled && created:
		return TransitionDestroy
	default:
		return TransitionNone
	}
}

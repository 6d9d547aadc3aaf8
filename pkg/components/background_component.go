package components

import "github.com/decker502/birdsong/pkg/ecs"

// BackgroundComponent 背景图状态
type BackgroundComponent struct {
	Enabled bool
	Created bool
	Dirty   bool

	// Name 当前背景名（BACKGROUNDS 表中的键）
	Name string

	// Entity 背景渲染对象
	Entity ecs.EntityID
}

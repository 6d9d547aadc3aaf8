package systems

import (
	"sort"

	"github.com/decker502/birdsong/pkg/components"
	"github.com/decker502/birdsong/pkg/ecs"
)

// ChoiceView 一个选项的显示状态
type ChoiceView struct {
	Label  string
	Active bool
}

// View 当前画面的文字描述
// 终端前端据此绘制，测试据此断言画面内容
type View struct {
	// Background, Portrait 图片路径（未显示时为空）
	Background string
	Portrait   string

	// Dialogue 对话框当前显示的文本
	Dialogue      string
	DialogueShown bool
	DialogueWidth float64

	Choices []ChoiceView
}

// CollectView 从实体中收集画面内容
// 已标记删除的实体不计入
func CollectView(em *ecs.EntityManager) View {
	var v View

	for _, id := range ecs.GetEntitiesWith2[*components.SpriteComponent, *components.PositionComponent](em) {
		if em.IsPendingDestroy(id) {
			continue
		}
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
		if sprite.Image == nil || !sprite.Visible {
			continue
		}
		switch sprite.Layer {
		case components.LayerBackground:
			v.Background = sprite.Image.Path()
		case components.LayerPortrait:
			v.Portrait = sprite.Image.Path()
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TextBoxComponent, *components.DialogueTextComponent](em) {
		if em.IsPendingDestroy(id) {
			continue
		}
		tb, _ := ecs.GetComponent[*components.TextBoxComponent](em, id)
		v.Dialogue = tb.Text
		v.DialogueShown = true
		v.DialogueWidth = tb.Width
	}

	labels := make(map[int]string)
	active := make(map[int]bool)
	for _, id := range ecs.GetEntitiesWith1[*components.ChoiceItemComponent](em) {
		if em.IsPendingDestroy(id) {
			continue
		}
		item, _ := ecs.GetComponent[*components.ChoiceItemComponent](em, id)
		if tb, ok := ecs.GetComponent[*components.TextBoxComponent](em, id); ok {
			labels[item.Index] = tb.Text
		}
		if ecs.HasComponent[*components.ChoiceCursorComponent](em, id) {
			if sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id); ok && sprite.Visible {
				active[item.Index] = true
			}
		}
	}

	indexes := make([]int, 0, len(labels))
	for i := range labels {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	for _, i := range indexes {
		v.Choices = append(v.Choices, ChoiceView{Label: labels[i], Active: active[i]})
	}

	return v
}

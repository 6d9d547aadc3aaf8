package systems

import (
	"github.com/decker502/birdsong/pkg/components"
	"github.com/decker502/birdsong/pkg/dialogue"
	"github.com/decker502/birdsong/pkg/ecs"
	"github.com/decker502/birdsong/pkg/types"
)

var _ dialogue.Renderer = (*EntityRenderer)(nil)

// EntityRenderer 把对话运行时的渲染请求转换为 ECS 实体
//
// 职责：
//   - 每个文本框、选项、光标、立绘、背景对应一个实体
//   - 实体由 PositionComponent + TextBoxComponent/SpriteComponent 描述
//   - 销毁是延迟的：宿主在帧末调用 RemoveMarkedEntities
//
// 不依赖 Ebitengine，图形前端和终端前端共用
type EntityRenderer struct {
	entityManager *ecs.EntityManager
}

// NewEntityRenderer 创建实体渲染器
func NewEntityRenderer(em *ecs.EntityManager) *EntityRenderer {
	return &EntityRenderer{entityManager: em}
}

// CreateTextBox 创建对话框文本实体
func (r *EntityRenderer) CreateTextBox(text string, style types.TextStyle, size types.Vec2, pos types.Vec3) ecs.EntityID {
	id := r.entityManager.CreateEntity()
	ecs.AddComponent(r.entityManager, id, &components.PositionComponent{X: pos.X, Y: pos.Y, Z: pos.Z})
	ecs.AddComponent(r.entityManager, id, &components.TextBoxComponent{
		Text:   text,
		Style:  style,
		Width:  size.X,
		Height: size.Y,
	})
	ecs.AddComponent(r.entityManager, id, &components.DialogueTextComponent{})
	return id
}

// UpdateTextBox 更新文本与样式
func (r *EntityRenderer) UpdateTextBox(id ecs.EntityID, text string, style types.TextStyle) {
	tb, ok := ecs.GetComponent[*components.TextBoxComponent](r.entityManager, id)
	if !ok {
		return
	}
	tb.Text = text
	tb.Style = style
}

// CreateChoiceItem 创建选项文本实体
func (r *EntityRenderer) CreateChoiceItem(index int, label string, style types.TextStyle, size types.Vec2, pos types.Vec3) ecs.EntityID {
	id := r.entityManager.CreateEntity()
	ecs.AddComponent(r.entityManager, id, &components.PositionComponent{X: pos.X, Y: pos.Y, Z: pos.Z})
	ecs.AddComponent(r.entityManager, id, &components.TextBoxComponent{
		Text:   label,
		Style:  style,
		Width:  size.X,
		Height: size.Y,
	})
	ecs.AddComponent(r.entityManager, id, &components.ChoiceItemComponent{Index: index})
	return id
}

// CreateChoiceCursor 创建选项光标实体
func (r *EntityRenderer) CreateChoiceCursor(index int, image types.Handle, pos types.Vec3, visible bool) ecs.EntityID {
	id := r.entityManager.CreateEntity()
	ecs.AddComponent(r.entityManager, id, &components.PositionComponent{X: pos.X, Y: pos.Y, Z: pos.Z})
	ecs.AddComponent(r.entityManager, id, &components.SpriteComponent{
		Image:   image,
		Layer:   components.LayerCursor,
		Visible: visible,
	})
	ecs.AddComponent(r.entityManager, id, &components.ChoiceItemComponent{Index: index})
	ecs.AddComponent(r.entityManager, id, &components.ChoiceCursorComponent{Index: index})
	return id
}

// SetVisible 切换精灵可见性
func (r *EntityRenderer) SetVisible(id ecs.EntityID, visible bool) {
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](r.entityManager, id); ok {
		sprite.Visible = visible
	}
}

// CreateSprite 创建立绘或背景实体
func (r *EntityRenderer) CreateSprite(image types.Handle, layer components.SpriteLayer, pos types.Vec3) ecs.EntityID {
	id := r.entityManager.CreateEntity()
	ecs.AddComponent(r.entityManager, id, &components.PositionComponent{X: pos.X, Y: pos.Y, Z: pos.Z})
	ecs.AddComponent(r.entityManager, id, &components.SpriteComponent{
		Image:   image,
		Layer:   layer,
		Visible: true,
	})
	return id
}

// UpdateSprite 替换图片并移动
func (r *EntityRenderer) UpdateSprite(id ecs.EntityID, image types.Handle, pos types.Vec3) {
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](r.entityManager, id); ok {
		sprite.Image = image
	}
	if p, ok := ecs.GetComponent[*components.PositionComponent](r.entityManager, id); ok {
		p.X, p.Y, p.Z = pos.X, pos.Y, pos.Z
	}
}

// Destroy 标记实体待删除
func (r *EntityRenderer) Destroy(id ecs.EntityID) {
	if id == ecs.InvalidEntity {
		return
	}
	r.entityManager.DestroyEntity(id)
}

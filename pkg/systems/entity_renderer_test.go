package systems

import (
	"testing"

	"github.com/decker502/birdsong/pkg/components"
	"github.com/decker502/birdsong/pkg/config"
	"github.com/decker502/birdsong/pkg/dialogue"
	"github.com/decker502/birdsong/pkg/ecs"
	"github.com/decker502/birdsong/pkg/types"
)

func TestEntityRenderer_TextBox(t *testing.T) {
	em := ecs.NewEntityManager()
	r := NewEntityRenderer(em)

	style := types.TextStyle{Font: types.PathHandle("builtin:goregular"), Size: 30, Color: types.White}
	id := r.CreateTextBox("", style, types.Vec2{X: 350, Y: 600}, types.Vec3{X: -600, Y: 100, Z: 1})
	r.UpdateTextBox(id, "Hel", style)

	tb, ok := ecs.GetComponent[*components.TextBoxComponent](em, id)
	if !ok {
		t.Fatal("text box component missing")
	}
	if tb.Text != "Hel" || tb.Width != 350 || tb.Height != 600 {
		t.Errorf("text box = %+v", tb)
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.X != -600 || pos.Y != 100 || pos.Z != 1 {
		t.Errorf("position = %+v", pos)
	}
	if !ecs.HasComponent[*components.DialogueTextComponent](em, id) {
		t.Error("dialogue marker missing")
	}
}

func TestEntityRenderer_SpritesAndDestroy(t *testing.T) {
	em := ecs.NewEntityManager()
	r := NewEntityRenderer(em)

	id := r.CreateSprite(types.PathHandle("images/a.png"), components.LayerPortrait, types.Vec3{X: 1, Y: 2})
	r.UpdateSprite(id, types.PathHandle("images/b.png"), types.Vec3{X: 3, Y: 4, Z: 5})

	sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
	if sprite.Image.Path() != "images/b.png" || sprite.Layer != components.LayerPortrait {
		t.Errorf("sprite = %+v", sprite)
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.X != 3 || pos.Y != 4 || pos.Z != 5 {
		t.Errorf("position = %+v", pos)
	}

	// 销毁是延迟的
	r.Destroy(id)
	if !em.Exists(id) {
		t.Fatal("entity removed before RemoveMarkedEntities")
	}
	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("entity should be gone after RemoveMarkedEntities")
	}

	// 无效 ID 不做任何事
	r.Destroy(ecs.InvalidEntity)
	if em.IsPendingDestroy(ecs.InvalidEntity) {
		t.Error("invalid entity should never be marked")
	}
}

// TestEntityRenderer_WithRuntime 运行时驱动实体渲染器，画面内容随条目变化
func TestEntityRenderer_WithRuntime(t *testing.T) {
	em := ecs.NewEntityManager()
	rt := dialogue.NewRuntime(config.DefaultPresentationConfig(), pathLoader{}, NewEntityRenderer(em), nil)
	rt.SetErrorHandler(func(err error) { t.Errorf("unexpected error: %v", err) })

	rt.Start(`## BACKGROUNDS
sky#images/sky.png@0x0
## ACTORS
bird#images/bird.png|audio/chirp.wav
## ENTRIES
i#sky
t#bird@Hi
c#Up@3|Down@3
t#end
`)

	step := func(actions ...types.Action) View {
		rt.Update(1, types.NewActionSet(actions...))
		em.RemoveMarkedEntities()
		return CollectView(em)
	}

	step()
	v := step()
	if v.Background != "images/sky.png" || v.Portrait != "images/bird.png" {
		t.Errorf("view = %+v", v)
	}
	if !v.DialogueShown || v.Dialogue != "Hi" {
		t.Errorf("dialogue = %q shown=%v", v.Dialogue, v.DialogueShown)
	}

	v = step(types.ActionAdvance)
	if v.DialogueShown || v.Portrait != "" {
		t.Errorf("dialogue box and portrait should be gone while choosing: %+v", v)
	}
	if len(v.Choices) != 2 || !v.Choices[0].Active || v.Choices[1].Active {
		t.Fatalf("choices = %+v", v.Choices)
	}

	v = step(types.ActionNavigateDown)
	if v.Choices[0].Active || !v.Choices[1].Active || v.Choices[1].Label != "Down" {
		t.Errorf("choices after navigate = %+v", v.Choices)
	}

	v = step(types.ActionConfirm)
	if len(v.Choices) != 0 || v.Dialogue != "end" {
		t.Errorf("view after confirm = %+v", v)
	}
	if em.EntityCount() != 2 {
		t.Errorf("entity count = %d, want 2 (background + dialogue box)", em.EntityCount())
	}
}

type pathLoader struct{}

func (pathLoader) Load(path string) types.Handle { return types.PathHandle(path) }

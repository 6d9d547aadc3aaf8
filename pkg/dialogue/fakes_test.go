package dialogue

import (
	"github.com/decker502/birdsong/pkg/components"
	"github.com/decker502/birdsong/pkg/config"
	"github.com/decker502/birdsong/pkg/ecs"
	"github.com/decker502/birdsong/pkg/types"
)

// fakeLoader 立即返回只带路径的句柄
type fakeLoader struct {
	loads map[string]int
}

func (l *fakeLoader) Load(path string) types.Handle {
	if l.loads == nil {
		l.loads = make(map[string]int)
	}
	l.loads[path]++
	return types.PathHandle(path)
}

type fakeEntity struct {
	kind    string
	text    string
	image   types.Handle
	layer   components.SpriteLayer
	pos     types.Vec3
	visible bool
	style   types.TextStyle
}

// fakeRenderer 记录所有渲染调用
type fakeRenderer struct {
	next      ecs.EntityID
	entities  map[ecs.EntityID]*fakeEntity
	creates   map[string]int
	updates   map[string]int
	destroyed []ecs.EntityID
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		entities: make(map[ecs.EntityID]*fakeEntity),
		creates:  make(map[string]int),
		updates:  make(map[string]int),
	}
}

func (r *fakeRenderer) add(e *fakeEntity) ecs.EntityID {
	r.next++
	r.entities[r.next] = e
	r.creates[e.kind]++
	return r.next
}

func (r *fakeRenderer) CreateTextBox(text string, style types.TextStyle, size types.Vec2, pos types.Vec3) ecs.EntityID {
	return r.add(&fakeEntity{kind: "textbox", text: text, style: style, pos: pos, visible: true})
}

func (r *fakeRenderer) UpdateTextBox(id ecs.EntityID, text string, style types.TextStyle) {
	if e, ok := r.entities[id]; ok {
		e.text = text
		e.style = style
		r.updates["textbox"]++
	}
}

func (r *fakeRenderer) CreateChoiceItem(index int, label string, style types.TextStyle, size types.Vec2, pos types.Vec3) ecs.EntityID {
	return r.add(&fakeEntity{kind: "choice", text: label, style: style, pos: pos, visible: true})
}

func (r *fakeRenderer) CreateChoiceCursor(index int, image types.Handle, pos types.Vec3, visible bool) ecs.EntityID {
	return r.add(&fakeEntity{kind: "cursor", image: image, pos: pos, visible: visible})
}

func (r *fakeRenderer) SetVisible(id ecs.EntityID, visible bool) {
	if e, ok := r.entities[id]; ok {
		e.visible = visible
		r.updates["visible"]++
	}
}

func (r *fakeRenderer) CreateSprite(image types.Handle, layer components.SpriteLayer, pos types.Vec3) ecs.EntityID {
	kind := "portrait"
	if layer == components.LayerBackground {
		kind = "background"
	}
	return r.add(&fakeEntity{kind: kind, image: image, layer: layer, pos: pos, visible: true})
}

func (r *fakeRenderer) UpdateSprite(id ecs.EntityID, image types.Handle, pos types.Vec3) {
	if e, ok := r.entities[id]; ok {
		e.image = image
		e.pos = pos
		r.updates[e.kind]++
	}
}

func (r *fakeRenderer) Destroy(id ecs.EntityID) {
	delete(r.entities, id)
	r.destroyed = append(r.destroyed, id)
}

// live 返回指定类型的存活实体
func (r *fakeRenderer) live(kind string) []*fakeEntity {
	var out []*fakeEntity
	for id := ecs.EntityID(1); id <= r.next; id++ {
		if e, ok := r.entities[id]; ok && e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

type fakeAudio struct {
	played []string
}

func (a *fakeAudio) Play(h types.Handle) {
	a.played = append(a.played, h.Path())
}

type harness struct {
	rt       *Runtime
	renderer *fakeRenderer
	audio    *fakeAudio
	loader   *fakeLoader
	errs     []error
}

func newHarness(cfg *config.PresentationConfig) *harness {
	h := &harness{renderer: newFakeRenderer(), audio: &fakeAudio{}, loader: &fakeLoader{}}
	h.rt = NewRuntime(cfg, h.loader, h.renderer, h.audio)
	h.rt.SetErrorHandler(func(err error) { h.errs = append(h.errs, err) })
	return h
}

// step 执行一个周期
func (h *harness) step(dt float64, actions ...types.Action) {
	h.rt.Update(dt, types.NewActionSet(actions...))
}

const testTables = `## FONTS
mono#builtin:gomono
## CURSOR SPRITES
star#images/star.png
## BACKGROUNDS
forest#images/forest.png@10x-20
town#images/town.png@0x0
## ACTORS
bird#images/bird.png|audio/chirp.wav
owl#images/owl.png|audio/hoot.wav
`

// withEntries 在测试用表之后拼接条目
func withEntries(lines ...string) string {
	text := testTables + "## ENTRIES\n"
	for _, l := range lines {
		text += l + "\n"
	}
	return text
}

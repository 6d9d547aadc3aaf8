// Package dialogue 实现对话运行时：条目解释器和四个呈现状态机
//
// 每个轮询周期按固定顺序执行：
//
//	解析 → 输入 → 解释条目 → 对话框 → 选项 → 背景 → 角色 → 进度
//
// 所有状态保存在一个 Context 中，按指针显式传入各步骤函数；
// 渲染、资源加载和音频通过 Renderer、AssetLoader、AudioPlayer 委托给宿主。
package dialogue

import (
	"github.com/decker502/birdsong/internal/script"
	"github.com/decker502/birdsong/pkg/components"
	"github.com/decker502/birdsong/pkg/ecs"
	"github.com/decker502/birdsong/pkg/types"
)

// Background 已解析的背景：位置 + 图片
type Background struct {
	Position types.Vec2
	Image    types.Handle
}

// Actor 已解析的角色：立绘 + 语音
type Actor struct {
	Portrait types.Handle
	Voice    types.Handle
}

// Context 解释器上下文，持有一次运行的全部状态
type Context struct {
	// 名称表（每次解析成功后整体替换）
	Fonts         map[string]types.Handle
	CursorSprites map[string]types.Handle
	Backgrounds   map[string]Background
	Actors        map[string]Actor
	Entries       []script.Entry

	Settings Settings

	// Index 当前条目索引
	Index int
	// Processing 解释器闸门：解析成功后打开，运行结束后关闭
	Processing bool
	// Concluded 已越过最后一个条目
	Concluded bool

	Box        components.DialogueBoxComponent
	Choices    components.ChoiceComponent
	Actor      components.ActorComponent
	Background components.BackgroundComponent

	// entered 最近一次应用过效果的条目索引（-1 表示需要重新进入）
	entered int
}

func newContext(settings Settings) *Context {
	c := &Context{
		Fonts:         make(map[string]types.Handle),
		CursorSprites: make(map[string]types.Handle),
		Backgrounds:   make(map[string]Background),
		Actors:        make(map[string]Actor),
		Settings:      settings,
		entered:       -1,
	}
	c.Box.Entity = ecs.InvalidEntity
	c.Box.TextEntry = -1
	c.Choices.EntryIndex = -1
	c.Actor.VoiceTimer = components.TimerComponent{Name: "voice", TargetTime: settings.VoiceFrequency}
	return c
}

// CurrentEntry 返回当前条目；没有条目时 ok 为 false
func (c *Context) CurrentEntry() (script.Entry, bool) {
	if c.Index < 0 || c.Index >= len(c.Entries) {
		return script.Entry{}, false
	}
	return c.Entries[c.Index], true
}

// install 用新解析出的表替换旧表，并从 index 开始新的运行
//
// 四个呈现状态全部禁用，已存在的渲染对象在本周期的状态机步骤中销毁
// （若新脚本的第一个条目再次启用它们则直接复用）。
// 选项菜单例外：旧菜单的标签和目标属于旧脚本，必须重建。
func (c *Context) install(tables resolvedTables, settings Settings, index int) {
	c.Fonts = tables.fonts
	c.CursorSprites = tables.cursors
	c.Backgrounds = tables.backgrounds
	c.Actors = tables.actors
	c.Entries = tables.entries

	c.Settings = settings
	c.Index = index
	c.Processing = len(c.Entries) > 0
	c.Concluded = false
	c.entered = -1

	c.Box.Enabled = false
	c.Box.Cursor = 0
	c.Box.Printing = false
	c.Box.TextEntry = -1
	c.Choices.Enabled = false
	c.Choices.EntryIndex = -1
	c.Actor.Enabled = false
	c.Background.Enabled = false
}

// resolvedTables 已通过 AssetLoader 请求过资源的脚本表
type resolvedTables struct {
	fonts       map[string]types.Handle
	cursors     map[string]types.Handle
	backgrounds map[string]Background
	actors      map[string]Actor
	entries     []script.Entry
}

func resolveTables(s *script.Script, loader AssetLoader) resolvedTables {
	t := resolvedTables{
		fonts:       make(map[string]types.Handle, len(s.Fonts)),
		cursors:     make(map[string]types.Handle, len(s.CursorSprites)),
		backgrounds: make(map[string]Background, len(s.Backgrounds)),
		actors:      make(map[string]Actor, len(s.Actors)),
		entries:     s.Entries,
	}
	for name, path := range s.Fonts {
		t.fonts[name] = loader.Load(path)
	}
	for name, path := range s.CursorSprites {
		t.cursors[name] = loader.Load(path)
	}
	for name, bg := range s.Backgrounds {
		t.backgrounds[name] = Background{
			Position: types.Vec2{X: bg.X, Y: bg.Y},
			Image:    loader.Load(bg.Path),
		}
	}
	for name, a := range s.Actors {
		t.actors[name] = Actor{
			Portrait: loader.Load(a.Portrait),
			Voice:    loader.Load(a.Voice),
		}
	}
	return t
}

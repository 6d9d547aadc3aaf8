package dialogue

import (
	"log"
	"strings"

	"github.com/decker502/birdsong/internal/script"
	"github.com/decker502/birdsong/pkg/config"
	"github.com/decker502/birdsong/pkg/types"
)

// Runtime 对话运行时
//
// 单线程、按周期轮询：宿主每帧调用一次 Update。
// Runtime 不是并发安全的，所有方法都应在游戏循环所在的 goroutine 中调用。
type Runtime struct {
	ctx *Context
	cfg *config.PresentationConfig

	loader   AssetLoader
	renderer Renderer
	audio    AudioPlayer

	// 待解析的脚本
	source  string
	dirty   bool
	startAt int

	progress   int
	speedScale float64

	onError    func(error)
	onConclude func()
}

// NewRuntime 创建对话运行时
//
// 参数：
//   - cfg: 呈现参数初始值，为 nil 时使用默认值
//   - loader: 资源加载器
//   - renderer: 渲染器
//   - audio: 语音播放器，可以为 nil（不播放语音）
func NewRuntime(cfg *config.PresentationConfig, loader AssetLoader, renderer Renderer, audio AudioPlayer) *Runtime {
	if cfg == nil {
		cfg = config.DefaultPresentationConfig()
	}
	r := &Runtime{
		cfg:        cfg,
		loader:     loader,
		renderer:   renderer,
		audio:      audio,
		speedScale: 1,
		onError: func(err error) {
			log.Printf("[Birdsong] %v", err)
		},
	}
	r.ctx = newContext(NewSettings(cfg, loader))
	return r
}

// Start 安装新的脚本文本，下一次 Update 时解析并从第一个条目开始
func (r *Runtime) Start(text string) {
	r.StartAt(text, 0)
}

// StartAt 与 Start 相同，但从 index 处开始（用于恢复书签）
//
// index 之前的设置条目和最后一个背景条目会被重放，
// 使恢复后的呈现与顺序播放到此处时一致。
func (r *Runtime) StartAt(text string, index int) {
	r.source = text
	r.dirty = true
	r.startAt = index
}

// CurrentEntryIndex 当前条目索引，供宿主显示进度或保存书签
func (r *Runtime) CurrentEntryIndex() int {
	return r.progress
}

// Concluded 运行是否已经结束
func (r *Runtime) Concluded() bool {
	return r.ctx.Concluded
}

// Context 返回运行时状态（只读使用）
func (r *Runtime) Context() *Context {
	return r.ctx
}

// SetErrorHandler 设置错误回调；默认写日志
// 所有错误都不会中断轮询
func (r *Runtime) SetErrorHandler(fn func(error)) {
	if fn == nil {
		fn = func(error) {}
	}
	r.onError = fn
}

// SetOnConclude 设置运行结束回调
func (r *Runtime) SetOnConclude(fn func()) {
	r.onConclude = fn
}

// SetTextSpeedScale 设置打字速度倍率（玩家偏好），不影响脚本设置
func (r *Runtime) SetTextSpeedScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	r.speedScale = scale
}

// Update 执行一个轮询周期
//
// 参数：
//   - dt: 距上一周期的时间（秒）
//   - actions: 本周期采集到的输入动作
func (r *Runtime) Update(dt float64, actions types.ActionSet) {
	c := r.ctx

	if r.dirty {
		r.parse()
	}

	handleInput(c, actions, r.report, r.conclude)
	processEntry(c, r.report, r.conclude)

	updateDialogueBox(c, r.renderer, dt, r.speedScale)
	updateChoices(c, r.renderer, r.report)
	updateBackground(c, r.renderer)
	updateActor(c, r.renderer, r.audio, dt)

	r.progress = c.Index
}

// parse 解析待处理的脚本；失败时保留旧的表和条目
func (r *Runtime) parse() {
	r.dirty = false

	s, err := script.Parse(r.source)
	if err != nil {
		r.report(err)
		return
	}

	index := r.startAt
	if index < 0 || (index > 0 && index >= len(s.Entries)) {
		r.report(&RangeError{Target: index, Count: len(s.Entries), EntryIndex: index})
		index = 0
	}

	c := r.ctx
	c.install(resolveTables(s, r.loader), NewSettings(r.cfg, r.loader), index)
	r.replay(index)

	log.Printf("[Birdsong] Script loaded: %d entries, starting at %d", len(c.Entries), index)
}

// replay 重放 index 之前的设置条目和最后一个背景
func (r *Runtime) replay(index int) {
	c := r.ctx
	background := ""
	for i := 0; i < index; i++ {
		e := c.Entries[i]
		switch e.Type {
		case script.EntrySettings:
			for _, err := range applySettings(&c.Settings, e.Payload, c.Fonts, c.CursorSprites, i) {
				r.report(err)
			}
		case script.EntryImage:
			background = strings.TrimSpace(e.Payload)
		}
	}
	if _, ok := c.Backgrounds[background]; ok {
		c.Background.Name = background
		c.Background.Enabled = true
		c.Background.Dirty = true
	}
}

func (r *Runtime) report(err error) {
	if r.onError != nil {
		r.onError(err)
	}
}

func (r *Runtime) conclude() {
	c := r.ctx
	c.Concluded = true
	c.Processing = false
	if r.onConclude != nil {
		r.onConclude()
	}
}

package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/birdsong/pkg/config"
	"github.com/decker502/birdsong/pkg/dialogue"
	"github.com/decker502/birdsong/pkg/ecs"
	"github.com/decker502/birdsong/pkg/game"
	"github.com/decker502/birdsong/pkg/systems"
	"github.com/decker502/birdsong/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// errorOverlaySeconds 运行时错误在画面左上角保留的时间
const errorOverlaySeconds = 5.0

// DialogueOptions 对话场景的可选依赖
type DialogueOptions struct {
	// ScriptPath 脚本路径，用作书签的键；嵌入的示例脚本为空
	ScriptPath string
	// Source 脚本文本
	Source string
	// StartAt 起始条目（恢复书签时使用）
	StartAt int

	// Bookmarks 书签管理器，为 nil 时不记录进度
	Bookmarks *game.BookmarkManager
	// Watcher 脚本监视器，为 nil 时不热重载
	Watcher *game.ScriptWatcher
	// TextSpeedScale 玩家设置的打字速度倍率，<= 0 时为 1
	TextSpeedScale float64
}

// DialogueScene 运行一个对话脚本
//
// 每帧的处理顺序：
//  1. 推进资源加载队列
//  2. 脚本文件变化时重新安装脚本
//  3. 采集输入并执行一个运行时周期
//  4. 清理本帧销毁的实体
//  5. 条目变化时更新书签
type DialogueScene struct {
	entityManager *ecs.EntityManager
	runtime       *dialogue.Runtime
	resources     *game.ResourceManager
	renderSystem  *systems.RenderSystem
	inputSystem   *systems.InputSystem
	poll          func() types.ActionSet

	scriptPath string
	bookmarks  *game.BookmarkManager
	watcher    *game.ScriptWatcher
	lastMarked int

	lastError      string
	errorRemaining float64
}

// NewDialogueScene 创建对话场景
//
// 参数：
//   - rm: 资源管理器（同时作为运行时的 AssetLoader 和渲染系统的 AssetSource）
//   - audio: 语音播放器，可为 nil
//   - cfg: 呈现参数，可为 nil（使用默认值）
//   - opts: 脚本与可选依赖
func NewDialogueScene(rm *game.ResourceManager, audio dialogue.AudioPlayer, cfg *config.PresentationConfig, opts DialogueOptions) *DialogueScene {
	if cfg == nil {
		cfg = config.DefaultPresentationConfig()
	}

	em := ecs.NewEntityManager()
	s := &DialogueScene{
		entityManager: em,
		resources:     rm,
		renderSystem:  systems.NewRenderSystem(em, rm, cfg.Window.Width, cfg.Window.Height),
		inputSystem:   systems.NewInputSystem(),
		scriptPath:    opts.ScriptPath,
		bookmarks:     opts.Bookmarks,
		watcher:       opts.Watcher,
		lastMarked:    -1,
	}
	s.poll = s.inputSystem.Poll

	s.runtime = dialogue.NewRuntime(cfg, rm, systems.NewEntityRenderer(em), audio)
	s.runtime.SetErrorHandler(s.onError)
	s.runtime.SetOnConclude(s.onConclude)
	if opts.TextSpeedScale > 0 {
		s.runtime.SetTextSpeedScale(opts.TextSpeedScale)
	}
	s.runtime.StartAt(opts.Source, opts.StartAt)

	return s
}

// Runtime 返回场景使用的对话运行时
func (s *DialogueScene) Runtime() *dialogue.Runtime {
	return s.runtime
}

// EntityManager 返回场景的实体管理器
func (s *DialogueScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Update 实现 Scene 接口
func (s *DialogueScene) Update(deltaTime float64) {
	s.resources.Update()

	if s.watcher != nil {
		if text, ok := s.watcher.Poll(); ok {
			// 热重载从头开始，保证与顺序播放一致
			s.runtime.Start(text)
			log.Printf("[DialogueScene] Reloading script %s", s.scriptPath)
		}
	}

	s.runtime.Update(deltaTime, s.poll())
	s.entityManager.RemoveMarkedEntities()

	s.markProgress()

	if s.errorRemaining > 0 {
		s.errorRemaining -= deltaTime
	}
}

// Draw 实现 Scene 接口
func (s *DialogueScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	s.renderSystem.Draw(screen)

	if s.errorRemaining > 0 && s.lastError != "" {
		ebitenutil.DebugPrintAt(screen, s.lastError, 10, 10)
	}
}

// SaveOnExit 实现 Saveable 接口：写入书签
func (s *DialogueScene) SaveOnExit() bool {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			log.Printf("[DialogueScene] Warning: failed to stop watcher: %v", err)
		}
	}

	if s.bookmarks == nil || s.scriptPath == "" {
		return true
	}
	if s.runtime.Concluded() {
		s.bookmarks.Clear(s.scriptPath)
	} else {
		s.bookmarks.Set(s.scriptPath, s.runtime.CurrentEntryIndex())
	}
	if err := s.bookmarks.Save(); err != nil {
		log.Printf("[DialogueScene] Warning: failed to save bookmark: %v", err)
		return false
	}
	return true
}

// markProgress 条目变化时记录书签（仅内存，退出时持久化）
func (s *DialogueScene) markProgress() {
	if s.bookmarks == nil || s.scriptPath == "" || s.runtime.Concluded() {
		return
	}
	index := s.runtime.CurrentEntryIndex()
	if index == s.lastMarked {
		return
	}
	s.lastMarked = index
	s.bookmarks.Set(s.scriptPath, index)
}

func (s *DialogueScene) onError(err error) {
	log.Printf("[DialogueScene] %v", err)
	s.lastError = err.Error()
	s.errorRemaining = errorOverlaySeconds
}

func (s *DialogueScene) onConclude() {
	log.Printf("[DialogueScene] Script concluded: %s", s.scriptPath)
	if s.bookmarks == nil || s.scriptPath == "" {
		return
	}
	s.bookmarks.Clear(s.scriptPath)
	if err := s.bookmarks.Save(); err != nil {
		log.Printf("[DialogueScene] Warning: failed to clear bookmark: %v", err)
	}
}

// Package app 提供对话播放器的核心包装器
//
// 该包把初始化逻辑从命令行入口提取出来：命令行只负责解析参数，
// 然后通过 NewApp() 创建应用并调用 Run()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/decker502/birdsong/pkg/config"
	"github.com/decker502/birdsong/pkg/embedded"
	"github.com/decker502/birdsong/pkg/game"
	"github.com/decker502/birdsong/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// LogOutput 日志输出目标，非 nil 时优先于 Verbose
	LogOutput io.Writer
	// ScriptPath 要播放的脚本，为空则播放嵌入的示例脚本
	ScriptPath string
	// Presentation 呈现参数，为 nil 时使用默认值
	Presentation *config.PresentationConfig
	// Watch 脚本文件保存后自动重新加载
	Watch bool
	// Resume 从书签处继续
	Resume bool
	// NoAudio 不创建音频上下文（语音提示静默）
	NoAudio bool
}

// App 是播放器的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	presentation    *config.PresentationConfig
	verbose         bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	switch {
	case cfg.LogOutput != nil:
		log.SetOutput(cfg.LogOutput)
	case !cfg.Verbose:
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	presentation := cfg.Presentation
	if presentation == nil {
		presentation = config.DefaultPresentationConfig()
	}

	// 初始化音频上下文
	var audioContext *audio.Context
	if !cfg.NoAudio {
		audioContext = audio.NewContext(config.AudioSampleRate)
	}

	// gdata 打开失败时降级为仅内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: config.AppName})
	if err != nil {
		log.Printf("[App] Warning: persistent storage unavailable: %v", err)
		gdataManager = nil
	}

	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}
	bookmarkManager, err := game.NewBookmarkManager(gdataManager)
	if err != nil {
		log.Printf("[App] Warning: %v (bookmarks reset)", err)
	}

	resourceManager := game.NewResourceManager(audioContext)
	audioManager := game.NewAudioManager(resourceManager, settingsManager)
	log.Printf("[App] AudioManager initialized (audio enabled: %v)", audioContext != nil)

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(scriptPath string) (game.Scene, error) {
		source, err := readScript(scriptPath)
		if err != nil {
			return nil, err
		}

		opts := scenes.DialogueOptions{
			ScriptPath:     scriptPath,
			Source:         source,
			Bookmarks:      bookmarkManager,
			TextSpeedScale: settingsManager.GetSettings().TextSpeedScale,
		}

		if scriptPath != "" {
			resourceManager.SetBaseDir(filepath.Dir(scriptPath))
		}
		if cfg.Resume && scriptPath != "" {
			if b, ok := bookmarkManager.Get(scriptPath); ok {
				opts.StartAt = b.EntryIndex
				log.Printf("[App] Resuming %s at entry %d", scriptPath, b.EntryIndex)
			}
		}
		if cfg.Watch && scriptPath != "" {
			watcher, err := game.NewScriptWatcher(scriptPath, game.DefaultReloadDelay)
			if err != nil {
				log.Printf("[App] Warning: hot reload disabled: %v", err)
			} else {
				opts.Watcher = watcher
			}
		}

		return scenes.NewDialogueScene(resourceManager, audioManager, presentation, opts), nil
	})

	if err := sceneManager.LoadScript(cfg.ScriptPath); err != nil {
		return nil, fmt.Errorf("脚本加载失败: %w", err)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		audioManager:    audioManager,
		presentation:    presentation,
		verbose:         cfg.Verbose,
	}, nil
}

// readScript 读取脚本文件；路径为空时读取嵌入的示例脚本
func readScript(scriptPath string) (string, error) {
	if scriptPath == "" {
		data, err := embedded.ReadFile(config.DemoScriptPath)
		if err != nil {
			return "", fmt.Errorf("无法读取示例脚本: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return "", fmt.Errorf("无法读取脚本 %s: %w", scriptPath, err)
	}
	return string(data), nil
}

// Run 打开窗口并运行游戏循环，窗口关闭后保存书签和设置
func (a *App) Run() error {
	window := a.presentation.Window
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(a.settingsManager.GetSettings().Fullscreen)

	err := ebiten.RunGame(a)
	a.shutdown()
	if err == ebiten.Termination {
		return nil
	}
	return err
}

func (a *App) shutdown() {
	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Warning: scene state was not saved")
	}
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	a.audioManager.Close()
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.presentation.Window.Width, a.presentation.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.presentation.Window.Width, a.presentation.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，并记住偏好
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settingsManager.SetFullscreen(false)
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
			a.settingsManager.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(config.TicksPerSecond)
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear // 使用线性滤波减少锯齿和模糊
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.presentation.Window.Width, a.presentation.Window.Height
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

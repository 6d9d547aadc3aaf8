package config

// 窗口与运行参数
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 1280

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 720

	// GameWindowTitle 窗口标题
	GameWindowTitle = "Birdsong"

	// AssetsPerFrame 每帧最多完成加载的资源数量
	// 避免一次性加载大量资源导致卡顿
	AssetsPerFrame = 4

	// AudioSampleRate 音频上下文采样率
	AudioSampleRate = 48000

	// TicksPerSecond 固定步长（与 Ebitengine 默认 TPS 一致）
	TicksPerSecond = 60

	// AppName gdata 存储使用的应用名（设置与书签）
	AppName = "birdsong"

	// DemoScriptPath 嵌入的示例脚本
	DemoScriptPath = "data/scripts/demo.txt"
)

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// DefaultWindowConfig 返回默认窗口配置
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:  GameWindowWidth,
		Height: GameWindowHeight,
		Title:  GameWindowTitle,
	}
}

// ScriptToScreen 把脚本坐标（原点居中，Y 向上）换算为屏幕坐标（原点左上，Y 向下）
func ScriptToScreen(x, y float64, width, height int) (float64, float64) {
	return float64(width)/2 + x, float64(height)/2 - y
}

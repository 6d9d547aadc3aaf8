package types

// Handle 资源句柄
//
// 资源可能异步加载完成：Ready 在加载完成前返回 false。
// 运行时只保存和传递句柄，从不等待；渲染器和音频播放器每次读取时自行判断是否可用。
type Handle interface {
	// Path 资源请求时使用的路径
	Path() string
	// Ready 资源是否已加载完成
	Ready() bool
}

// TextStyle 文本样式
type TextStyle struct {
	Font  Handle
	Size  float64
	Color RGBA
}

// PathHandle 立即可用的句柄，只携带路径
// 用于不需要真正加载资源的场合（终端前端、脚本检查）
type PathHandle string

// Path 实现 Handle
func (h PathHandle) Path() string { return string(h) }

// Ready 实现 Handle，总是返回 true
func (h PathHandle) Ready() bool { return true }

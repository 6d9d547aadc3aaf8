package components

import "github.com/decker502/birdsong/pkg/types"

// SpriteLayer 精灵所在的绘制层（数值越小越先绘制）
type SpriteLayer int

const (
	// LayerBackground 背景层
	LayerBackground SpriteLayer = iota
	// LayerPortrait 立绘层
	LayerPortrait
	// LayerCursor 选项光标层
	LayerCursor
)

// SpriteComponent 存储实体的视觉表现
// Image 可能尚未加载完成，渲染系统每帧重新检查
type SpriteComponent struct {
	Image   types.Handle
	Layer   SpriteLayer
	Visible bool
}

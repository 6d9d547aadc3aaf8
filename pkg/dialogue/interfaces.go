package dialogue

import (
	"github.com/decker502/birdsong/pkg/components"
	"github.com/decker502/birdsong/pkg/ecs"
	"github.com/decker502/birdsong/pkg/types"
)

// AssetLoader 把资源路径解析为句柄
//
// Load 不得阻塞：返回的句柄可能尚未加载完成，调用方每帧重新读取其状态。
// 同一路径多次请求应返回同一个句柄。
type AssetLoader interface {
	Load(path string) types.Handle
}

// Renderer 渲染对象的创建、更新与销毁
//
// 运行时只持有 Renderer 返回的实体 ID，从不直接访问渲染对象。
// 所有坐标都使用脚本坐标系（原点在屏幕中心，Y 向上）。
type Renderer interface {
	// CreateTextBox 创建对话框文本
	CreateTextBox(text string, style types.TextStyle, size types.Vec2, pos types.Vec3) ecs.EntityID
	// UpdateTextBox 更新对话框显示的文本和样式
	UpdateTextBox(id ecs.EntityID, text string, style types.TextStyle)

	// CreateChoiceItem 创建第 index 个选项的文本
	CreateChoiceItem(index int, label string, style types.TextStyle, size types.Vec2, pos types.Vec3) ecs.EntityID
	// CreateChoiceCursor 创建第 index 个选项的光标
	CreateChoiceCursor(index int, image types.Handle, pos types.Vec3, visible bool) ecs.EntityID
	// SetVisible 切换实体可见性
	SetVisible(id ecs.EntityID, visible bool)

	// CreateSprite 创建立绘或背景精灵
	CreateSprite(image types.Handle, layer components.SpriteLayer, pos types.Vec3) ecs.EntityID
	// UpdateSprite 替换精灵图片并移动到 pos
	UpdateSprite(id ecs.EntityID, image types.Handle, pos types.Vec3)

	// Destroy 销毁实体
	Destroy(id ecs.EntityID)
}

// AudioPlayer 播放语音提示（即发即忘）
type AudioPlayer interface {
	Play(h types.Handle)
}

package systems

import (
	"image/color"
	"sort"

	"github.com/decker502/birdsong/pkg/components"
	"github.com/decker502/birdsong/pkg/config"
	"github.com/decker502/birdsong/pkg/ecs"
	"github.com/decker502/birdsong/pkg/types"
	"github.com/decker502/birdsong/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// AssetSource 把句柄换成可绘制的资源
// 资源尚未加载完成或加载失败时返回 nil
type AssetSource interface {
	Image(h types.Handle) *ebiten.Image
	Face(h types.Handle, size float64) *text.GoTextFace
}

// RenderSystem 绘制对话场景的实体
//
// 绘制顺序：
//  1. 精灵，按层（背景 → 立绘 → 光标）、Z、实体 ID 排序，以中心为锚点
//  2. 文本（对话框与选项），以左上角为锚点，超出宽度自动换行
//
// 实体使用脚本坐标（原点在屏幕中心，Y 向上），绘制时换算为屏幕坐标。
// 句柄未就绪的实体本帧跳过。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	assets        AssetSource
	windowWidth   int
	windowHeight  int
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, assets AssetSource, windowWidth, windowHeight int) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		assets:        assets,
		windowWidth:   windowWidth,
		windowHeight:  windowHeight,
	}
}

// Draw 绘制所有实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	s.drawSprites(screen)
	s.drawTexts(screen)
}

func (s *RenderSystem) drawSprites(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.SpriteComponent, *components.PositionComponent](s.entityManager)

	type drawable struct {
		id     ecs.EntityID
		sprite *components.SpriteComponent
		pos    *components.PositionComponent
	}
	list := make([]drawable, 0, len(entities))
	for _, id := range entities {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !sprite.Visible || sprite.Image == nil || !sprite.Image.Ready() {
			continue
		}
		list = append(list, drawable{id: id, sprite: sprite, pos: pos})
	}

	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.sprite.Layer != b.sprite.Layer {
			return a.sprite.Layer < b.sprite.Layer
		}
		if a.pos.Z != b.pos.Z {
			return a.pos.Z < b.pos.Z
		}
		return a.id < b.id
	})

	for _, d := range list {
		img := s.assets.Image(d.sprite.Image)
		if img == nil {
			continue
		}
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		x, y := config.ScriptToScreen(d.pos.X, d.pos.Y, s.windowWidth, s.windowHeight)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x-float64(w)/2, y-float64(h)/2)
		screen.DrawImage(img, op)
	}
}

func (s *RenderSystem) drawTexts(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.TextBoxComponent, *components.PositionComponent](s.entityManager) {
		tb, _ := ecs.GetComponent[*components.TextBoxComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if tb.Text == "" || tb.Style.Font == nil || !tb.Style.Font.Ready() {
			continue
		}
		face := s.assets.Face(tb.Style.Font, tb.Style.Size)
		if face == nil {
			continue
		}

		x, y := config.ScriptToScreen(pos.X, pos.Y, s.windowWidth, s.windowHeight)
		lineHeight := tb.Style.Size * lineSpacing
		for i, line := range utils.WrapText(tb.Text, face, tb.Width) {
			top := y + float64(i)*lineHeight
			if tb.Height > 0 && top+lineHeight > y+tb.Height {
				break
			}
			op := &text.DrawOptions{}
			op.GeoM.Translate(x, top)
			op.ColorScale.ScaleWithColor(toColor(tb.Style.Color))
			text.Draw(screen, line, face, op)
		}
	}
}

// lineSpacing 行高与字号之比
const lineSpacing = 1.2

// toColor 浮点颜色转换为 color.RGBA（预乘 alpha）
func toColor(c types.RGBA) color.RGBA {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	a := clamp(c.A)
	return color.RGBA{
		R: uint8(clamp(c.R)*a*255 + 0.5),
		G: uint8(clamp(c.G)*a*255 + 0.5),
		B: uint8(clamp(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

package systems

import (
	"github.com/decker502/birdsong/pkg/types"
	"github.com/decker502/birdsong/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 按键映射
var (
	// AdvanceKeys 推进对话 / 确认选项
	AdvanceKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter}
	// UpKeys 选项上移
	UpKeys = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyZ, ebiten.KeyW}
	// DownKeys 选项下移
	DownKeys = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}
)

// InputSystem 把键盘、鼠标和触摸输入转换为对话动作
// 每帧调用一次 Poll，同一帧内多次按键合并为一个动作
type InputSystem struct {
	justPressed func(ebiten.Key) bool
	justClicked func() bool
}

// NewInputSystem 创建输入系统
func NewInputSystem() *InputSystem {
	return &InputSystem{
		justPressed: inpututil.IsKeyJustPressed,
		justClicked: func() bool {
			clicked, _, _ := utils.IsJustTouchedOrClicked()
			return clicked
		},
	}
}

// Poll 采集本帧的动作
// 推进键与点击同时产生 Advance 和 Confirm，运行时根据是否处于选项中取其一
func (s *InputSystem) Poll() types.ActionSet {
	var actions types.ActionSet

	if s.anyPressed(AdvanceKeys) || s.justClicked() {
		actions = actions.With(types.ActionAdvance).With(types.ActionConfirm)
	}
	if s.anyPressed(UpKeys) {
		actions = actions.With(types.ActionNavigateUp)
	}
	if s.anyPressed(DownKeys) {
		actions = actions.With(types.ActionNavigateDown)
	}
	return actions
}

func (s *InputSystem) anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if s.justPressed(k) {
			return true
		}
	}
	return false
}

package dialogue

import (
	"errors"
	"testing"

	"github.com/decker502/birdsong/pkg/config"
	"github.com/decker502/birdsong/pkg/types"
)

func TestApplySettings(t *testing.T) {
	fonts := map[string]types.Handle{"mono": types.PathHandle("builtin:gomono")}
	cursors := map[string]types.Handle{"star": types.PathHandle("images/star.png")}

	tests := []struct {
		name    string
		payload string
		check   func(s Settings) bool
		errs    int
	}{
		{
			name:    "单个数值",
			payload: "font_size:30",
			check:   func(s Settings) bool { return s.FontSize == 30 },
		},
		{
			name:    "多个键值对",
			payload: "box_text_speed:12|choice_spacing:50|choice_indent:10|cursor_offset:4",
			check: func(s Settings) bool {
				return s.BoxTextSpeed == 12 && s.ChoiceSpacing == 50 && s.ChoiceIndent == 10 && s.CursorOffset == 4
			},
		},
		{
			name:    "二维位置保留Z",
			payload: "box_position:10x20",
			check:   func(s Settings) bool { return s.BoxPosition == types.Vec3{X: 10, Y: 20, Z: 1} },
		},
		{
			name:    "三维位置",
			payload: "portrait_position:1x2x3",
			check:   func(s Settings) bool { return s.PortraitPosition == types.Vec3{X: 1, Y: 2, Z: 3} },
		},
		{
			name:    "尺寸",
			payload: "box_size:200x100",
			check:   func(s Settings) bool { return s.BoxSize == types.Vec2{X: 200, Y: 100} },
		},
		{
			name:    "颜色",
			payload: "font_color:0.5x0.25x0x1",
			check:   func(s Settings) bool { return s.FontColor == types.RGBA{R: 0.5, G: 0.25, A: 1} },
		},
		{
			name:    "名称引用",
			payload: "font:mono|cursor:star",
			check: func(s Settings) bool {
				return s.Font.Path() == "builtin:gomono" && s.Cursor.Path() == "images/star.png"
			},
		},
		{
			name:    "未知键被忽略",
			payload: "sparkle:yes|voice_frequency:0.2",
			check:   func(s Settings) bool { return s.VoiceFrequency == 0.2 },
		},
		{
			name:    "无效数值跳过该键",
			payload: "font_size:big|box_text_speed:5",
			check:   func(s Settings) bool { return s.FontSize == config.DefaultFontSize && s.BoxTextSpeed == 5 },
			errs:    1,
		},
		{
			name:    "颜色分量不足",
			payload: "font_color:1x1x1",
			check:   func(s Settings) bool { return s.FontColor == config.DefaultTextColor },
			errs:    1,
		},
		{
			name:    "缺少冒号",
			payload: "font_size",
			check:   func(s Settings) bool { return s.FontSize == config.DefaultFontSize },
			errs:    1,
		},
		{
			name:    "负的打字速度被拒绝",
			payload: "box_text_speed:-5",
			check:   func(s Settings) bool { return s.BoxTextSpeed == config.DefaultBoxTextSpeed },
			errs:    1,
		},
		{
			name:    "负的语音周期被拒绝",
			payload: "voice_frequency:-0.1|choice_indent:-3",
			check: func(s Settings) bool {
				return s.VoiceFrequency == config.DefaultVoiceFrequency && s.ChoiceIndent == -3
			},
			errs: 1,
		},
		{
			name:    "空键值对",
			payload: "font_size:22||",
			check:   func(s Settings) bool { return s.FontSize == 22 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettings(config.DefaultPresentationConfig(), &fakeLoader{})
			errs := applySettings(&s, tt.payload, fonts, cursors, 7)
			if len(errs) != tt.errs {
				t.Fatalf("got %d errors, want %d: %v", len(errs), tt.errs, errs)
			}
			for _, err := range errs {
				var ve *ValueError
				if errors.As(err, &ve) && ve.EntryIndex != 7 {
					t.Errorf("EntryIndex = %d, want 7", ve.EntryIndex)
				}
			}
			if !tt.check(s) {
				t.Errorf("settings after %q: %+v", tt.payload, s)
			}
		})
	}
}

func TestNewSettings_LoadsDefaults(t *testing.T) {
	loader := &fakeLoader{}
	s := NewSettings(config.DefaultPresentationConfig(), loader)

	if s.Font.Path() != config.DefaultFontPath || s.Cursor.Path() != config.DefaultCursorPath {
		t.Errorf("font=%q cursor=%q", s.Font.Path(), s.Cursor.Path())
	}
	if loader.loads[config.DefaultFontPath] != 1 {
		t.Errorf("default font requested %d times", loader.loads[config.DefaultFontPath])
	}
	if s.PortraitPosition != config.DefaultPortraitPosition {
		t.Errorf("portrait position = %+v", s.PortraitPosition)
	}
}

package dialogue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/decker502/birdsong/pkg/config"
	"github.com/decker502/birdsong/pkg/types"
)

// 设置条目使用的键
const (
	KeyFont             = "font"
	KeyFontSize         = "font_size"
	KeyFontColor        = "font_color"
	KeyCursor           = "cursor"
	KeyBoxSize          = "box_size"
	KeyBoxPosition      = "box_position"
	KeyBoxTextSpeed     = "box_text_speed"
	KeyVoiceFrequency   = "voice_frequency"
	KeyChoiceSpacing    = "choice_spacing"
	KeyChoiceIndent     = "choice_indent"
	KeyCursorOffset     = "cursor_offset"
	KeyPortraitPosition = "portrait_position"
)

const (
	settingsPairDelimiter  = "|"
	settingsValueDelimiter = ":"
	vectorDelimiter        = "x"
)

var (
	errMissingValue = errors.New("missing ':' between key and value")
	errNegative     = errors.New("must not be negative")
)

// Settings 呈现参数
// 只有设置条目会修改它，修改一直有效到下一次修改
type Settings struct {
	Font      types.Handle
	FontSize  float64
	FontColor types.RGBA

	Cursor types.Handle

	BoxSize          types.Vec2
	BoxPosition      types.Vec3
	BoxTextSpeed     float64
	VoiceFrequency   float64
	ChoiceSpacing    float64
	ChoiceIndent     float64
	CursorOffset     float64
	PortraitPosition types.Vec3
}

// NewSettings 由配置创建初始呈现参数，字体与光标通过 loader 请求
func NewSettings(cfg *config.PresentationConfig, loader AssetLoader) Settings {
	return Settings{
		Font:             loader.Load(cfg.FontPath),
		FontSize:         cfg.FontSize,
		FontColor:        cfg.FontColor,
		Cursor:           loader.Load(cfg.CursorPath),
		BoxSize:          cfg.BoxSize,
		BoxPosition:      cfg.BoxPosition,
		BoxTextSpeed:     cfg.BoxTextSpeed,
		VoiceFrequency:   cfg.VoiceFrequency,
		ChoiceSpacing:    cfg.ChoiceSpacing,
		ChoiceIndent:     cfg.ChoiceIndent,
		CursorOffset:     cfg.CursorOffset,
		PortraitPosition: cfg.PortraitPosition,
	}
}

// TextStyle 当前文本样式
func (s *Settings) TextStyle() types.TextStyle {
	return types.TextStyle{Font: s.Font, Size: s.FontSize, Color: s.FontColor}
}

// applySettings 应用一个设置条目的全部 key:value
//
// 每个出错的键值对单独报告并跳过，其余键值对照常生效。
// 未知键被忽略。
func applySettings(s *Settings, payload string, fonts, cursors map[string]types.Handle, entryIndex int) []error {
	var errs []error
	for _, pair := range strings.Split(payload, settingsPairDelimiter) {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, settingsValueDelimiter)
		key = strings.TrimSpace(key)
		if !isSettingKey(key) {
			continue
		}
		if !ok {
			errs = append(errs, &ValueError{Key: key, Value: pair, EntryIndex: entryIndex, Err: errMissingValue})
			continue
		}
		if err := applySetting(s, key, strings.TrimSpace(value), fonts, cursors); err != nil {
			switch e := err.(type) {
			case *ReferenceError:
				e.EntryIndex = entryIndex
			case *ValueError:
				e.EntryIndex = entryIndex
			}
			errs = append(errs, err)
		}
	}
	return errs
}

func isSettingKey(key string) bool {
	switch key {
	case KeyFont, KeyFontSize, KeyFontColor, KeyCursor,
		KeyBoxSize, KeyBoxPosition, KeyBoxTextSpeed, KeyVoiceFrequency,
		KeyChoiceSpacing, KeyChoiceIndent, KeyCursorOffset, KeyPortraitPosition:
		return true
	}
	return false
}

// applySetting 修改一个字段；返回 *ReferenceError 或 *ValueError 时 s 保持不变
func applySetting(s *Settings, key, value string, fonts, cursors map[string]types.Handle) error {
	switch key {
	case KeyFont:
		h, ok := fonts[value]
		if !ok {
			return &ReferenceError{Table: TableFonts, Name: value}
		}
		s.Font = h

	case KeyCursor:
		h, ok := cursors[value]
		if !ok {
			return &ReferenceError{Table: TableCursorSprites, Name: value}
		}
		s.Cursor = h

	case KeyFontColor:
		v, err := parseFloats(value, 4, 4)
		if err != nil {
			return &ValueError{Key: key, Value: value, Err: err}
		}
		s.FontColor = types.RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}

	case KeyBoxSize:
		v, err := parseFloats(value, 2, 3)
		if err != nil {
			return &ValueError{Key: key, Value: value, Err: err}
		}
		s.BoxSize = types.Vec2{X: v[0], Y: v[1]}

	case KeyBoxPosition:
		v, err := parseFloats(value, 2, 3)
		if err != nil {
			return &ValueError{Key: key, Value: value, Err: err}
		}
		s.BoxPosition = toVec3(v, s.BoxPosition.Z)

	case KeyPortraitPosition:
		v, err := parseFloats(value, 2, 3)
		if err != nil {
			return &ValueError{Key: key, Value: value, Err: err}
		}
		s.PortraitPosition = toVec3(v, s.PortraitPosition.Z)

	default:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return &ValueError{Key: key, Value: value, Err: err}
		}
		if f < 0 && (key == KeyBoxTextSpeed || key == KeyVoiceFrequency) {
			return &ValueError{Key: key, Value: value, Err: errNegative}
		}
		switch key {
		case KeyFontSize:
			s.FontSize = f
		case KeyBoxTextSpeed:
			s.BoxTextSpeed = f
		case KeyVoiceFrequency:
			s.VoiceFrequency = f
		case KeyChoiceSpacing:
			s.ChoiceSpacing = f
		case KeyChoiceIndent:
			s.ChoiceIndent = f
		case KeyCursorOffset:
			s.CursorOffset = f
		}
	}
	return nil
}

// parseFloats 解析以 x 连接的浮点数，数量必须在 [least, most] 之间
func parseFloats(value string, least, most int) ([]float64, error) {
	parts := strings.Split(value, vectorDelimiter)
	if len(parts) < least || len(parts) > most {
		if least == most {
			return nil, fmt.Errorf("want %d numbers, got %d", least, len(parts))
		}
		return nil, fmt.Errorf("want %d to %d numbers, got %d", least, most, len(parts))
	}
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// toVec3 只给出两个分量时保留原来的 Z
func toVec3(v []float64, z float64) types.Vec3 {
	if len(v) == 3 {
		z = v[2]
	}
	return types.Vec3{X: v[0], Y: v[1], Z: z}
}

package config

import (
	"fmt"
	"os"

	"github.com/decker502/birdsong/pkg/types"
	"gopkg.in/yaml.v3"
)

// 呈现默认值
// 脚本中的 s 条目可以在运行时覆盖这些值
const (
	// DefaultFontPath 默认字体（内置 Go 字体，无需外部文件）
	DefaultFontPath = "builtin:goregular"

	// DefaultFontSize 默认字号
	DefaultFontSize = 45.0

	// DefaultCursorPath 默认选项光标图片
	DefaultCursorPath = "assets/images/cursor.png"

	// DefaultBoxTextSpeed 打字机速度（字符/秒）
	DefaultBoxTextSpeed = 100.0

	// DefaultVoiceFrequency 语音提示周期（秒）
	DefaultVoiceFrequency = 0.1

	// DefaultChoiceSpacing 选项行距
	DefaultChoiceSpacing = 40.0

	// DefaultChoiceIndent 选项文本相对光标的缩进
	DefaultChoiceIndent = 25.0

	// DefaultCursorOffset 光标相对选项锚点的下移距离
	DefaultCursorOffset = 16.0
)

var (
	// DefaultTextColor 默认文本颜色（不透明白色）
	DefaultTextColor = types.White

	// DefaultBoxSize 对话框文本区域尺寸
	DefaultBoxSize = types.Vec2{X: 350, Y: 600}

	// DefaultBoxPosition 对话框位置
	DefaultBoxPosition = types.Vec3{X: -600, Y: 100, Z: 1}

	// DefaultPortraitPosition 立绘位置
	DefaultPortraitPosition = types.Vec3{X: -425, Y: 225, Z: 1}
)

// PresentationConfig 呈现参数的初始值
// 可从 YAML 文件加载，文件中缺省的字段保持默认值
type PresentationConfig struct {
	FontPath         string       `yaml:"font_path"`
	FontSize         float64      `yaml:"font_size"`
	FontColor        types.RGBA   `yaml:"font_color"`
	CursorPath       string       `yaml:"cursor_path"`
	BoxSize          types.Vec2   `yaml:"box_size"`
	BoxPosition      types.Vec3   `yaml:"box_position"`
	BoxTextSpeed     float64      `yaml:"box_text_speed"`
	VoiceFrequency   float64      `yaml:"voice_frequency"`
	ChoiceSpacing    float64      `yaml:"choice_spacing"`
	ChoiceIndent     float64      `yaml:"choice_indent"`
	CursorOffset     float64      `yaml:"cursor_offset"`
	PortraitPosition types.Vec3   `yaml:"portrait_position"`
	Window           WindowConfig `yaml:"window"`
}

// DefaultPresentationConfig 返回默认呈现参数
func DefaultPresentationConfig() *PresentationConfig {
	return &PresentationConfig{
		FontPath:         DefaultFontPath,
		FontSize:         DefaultFontSize,
		FontColor:        DefaultTextColor,
		CursorPath:       DefaultCursorPath,
		BoxSize:          DefaultBoxSize,
		BoxPosition:      DefaultBoxPosition,
		BoxTextSpeed:     DefaultBoxTextSpeed,
		VoiceFrequency:   DefaultVoiceFrequency,
		ChoiceSpacing:    DefaultChoiceSpacing,
		ChoiceIndent:     DefaultChoiceIndent,
		CursorOffset:     DefaultCursorOffset,
		PortraitPosition: DefaultPortraitPosition,
		Window:           DefaultWindowConfig(),
	}
}

// LoadPresentationConfig 从 YAML 文件加载呈现参数
//
// 参数：
//   - path: 配置文件路径；为空时直接返回默认值
//
// 返回：
//   - *PresentationConfig: 默认值叠加文件内容后的配置
//   - error: 读取或解析错误
func LoadPresentationConfig(path string) (*PresentationConfig, error) {
	cfg := DefaultPresentationConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}

	return ParsePresentationConfig(data)
}

// ParsePresentationConfig 解析 YAML 数据，缺省字段保持默认值
func ParsePresentationConfig(data []byte) (*PresentationConfig, error) {
	cfg := DefaultPresentationConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析呈现配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置取值是否合理
func (c *PresentationConfig) Validate() error {
	if c.FontSize <= 0 {
		return fmt.Errorf("font_size 必须大于 0，当前为 %v", c.FontSize)
	}
	if c.BoxTextSpeed < 0 {
		return fmt.Errorf("box_text_speed 不能为负数，当前为 %v", c.BoxTextSpeed)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window 尺寸无效: %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

package dialogue

import (
	"strings"

	"github.com/decker502/birdsong/internal/script"
	"github.com/decker502/birdsong/pkg/types"
)

// Lint 静态检查脚本，返回运行时会报告的全部错误
//
// 检查内容：设置值与名称引用、文本条目的说话人、背景名、
// 选项目标是否在条目范围内，以及无法识别的条目类型。
// 这些错误都不会阻止脚本运行，Lint 只是让作者提前发现它们。
func Lint(s *script.Script) []error {
	fonts := pathHandles(s.Fonts)
	cursors := pathHandles(s.CursorSprites)

	var errs []error
	var scratch Settings
	for i, e := range s.Entries {
		switch e.Type {
		case script.EntrySettings:
			errs = append(errs, applySettings(&scratch, e.Payload, fonts, cursors, i)...)

		case script.EntryImage:
			name := strings.TrimSpace(e.Payload)
			if _, ok := s.Backgrounds[name]; !ok {
				errs = append(errs, &ReferenceError{Table: TableBackgrounds, Name: name, EntryIndex: i})
			}

		case script.EntryText:
			if speaker, _, found := strings.Cut(e.Payload, speakerDelimiter); found {
				if _, ok := s.Actors[speaker]; !ok {
					errs = append(errs, &ReferenceError{Table: TableActors, Name: speaker, EntryIndex: i})
				}
			}

		case script.EntryChoice:
			for _, part := range strings.Split(e.Payload, optionDelimiter) {
				opt, err := parseOption(part, i)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if opt.Target < 0 || opt.Target >= len(s.Entries) {
					errs = append(errs, &RangeError{Target: opt.Target, Count: len(s.Entries), EntryIndex: i})
				}
			}

		default:
			errs = append(errs, &UnknownEntryError{Tag: e.Type, EntryIndex: i})
		}
	}
	return errs
}

func pathHandles(table map[string]string) map[string]types.Handle {
	out := make(map[string]types.Handle, len(table))
	for name, path := range table {
		out[name] = types.PathHandle(path)
	}
	return out
}

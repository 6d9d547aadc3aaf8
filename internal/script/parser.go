package script

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FormatError reports a malformed script line. A parse that returns a
// FormatError produces no tables at all.
type FormatError struct {
	Section Section
	Line    int    // 1-based
	Raw     string // the offending line as written
	Reason  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("script: %s line %d: %s: %q", e.Section, e.Line, e.Reason, e.Raw)
}

// Parse parses script text.
//
// Blank lines are skipped everywhere. Lines before the first header are parsed
// as FONTS rows. Every table row and entry is cut on its first '#'.
//
// Parsing is all-or-nothing: the first malformed line aborts with a
// *FormatError and nothing else is returned.
//
// Example:
//
//	s, err := script.Parse("## ENTRIES\nt#Hello")
//	if err != nil {
//	    var fe *script.FormatError
//	    if errors.As(err, &fe) { ... }
//	}
func Parse(text string) (*Script, error) {
	s := newScript()
	section := SectionFonts
	seenHeader := false

	scanner := bufio.NewScanner(strings.NewReader(text))
	// 长台词可能超过默认 64KB 的行缓冲
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			continue
		}

		if next, ok := headerSection(trimmed); ok {
			section = next
			seenHeader = true
			continue
		}

		if !seenHeader {
			s.Preamble++
		}

		// 行首行尾空白不属于行内容
		if err := parseLine(s, section, lineNo, trimmed); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("script: failed to scan: %w", err)
	}

	return s, nil
}

// ParseFile reads and parses a script file.
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file '%s': %w", path, err)
	}
	return Parse(string(data))
}

func headerSection(line string) (Section, bool) {
	switch line {
	case HeaderFonts:
		return SectionFonts, true
	case HeaderCursorSprites:
		return SectionCursorSprites, true
	case HeaderBackgrounds:
		return SectionBackgrounds, true
	case HeaderActors:
		return SectionActors, true
	case HeaderEntries:
		return SectionEntries, true
	}
	return 0, false
}

func parseLine(s *Script, section Section, lineNo int, line string) error {
	fail := func(reason string) error {
		return &FormatError{Section: section, Line: lineNo, Raw: line, Reason: reason}
	}

	name, descriptor, ok := strings.Cut(line, NameDelimiter)
	if !ok {
		return fail("missing '" + NameDelimiter + "' delimiter")
	}

	switch section {
	case SectionFonts:
		s.Fonts[name] = descriptor

	case SectionCursorSprites:
		s.CursorSprites[name] = descriptor

	case SectionBackgrounds:
		path, pos, ok := strings.Cut(descriptor, PositionDelimiter)
		if !ok {
			return fail("missing '" + PositionDelimiter + "' before background position")
		}
		xs, ys, ok := strings.Cut(pos, AxisDelimiter)
		if !ok {
			return fail("missing '" + AxisDelimiter + "' in background position")
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return fail(fmt.Sprintf("invalid x coordinate %q", xs))
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return fail(fmt.Sprintf("invalid y coordinate %q", ys))
		}
		s.Backgrounds[name] = BackgroundDef{Path: path, X: x, Y: y}

	case SectionActors:
		portrait, voice, ok := strings.Cut(descriptor, ActorDelimiter)
		if !ok {
			return fail("missing '" + ActorDelimiter + "' between portrait and voice")
		}
		s.Actors[name] = ActorDef{Portrait: portrait, Voice: voice}

	case SectionEntries:
		s.Entries = append(s.Entries, Entry{Type: name, Payload: descriptor, Line: lineNo})
	}

	return nil
}

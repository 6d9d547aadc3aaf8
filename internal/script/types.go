// Package script parses birdsong dialogue scripts.
//
// A script is a line-oriented text file split into sections:
//
//	## FONTS
//	<name>#<path>
//	## CURSOR SPRITES
//	<name>#<path>
//	## BACKGROUNDS
//	<name>#<path>@<x>x<y>
//	## ACTORS
//	<name>#<portraitPath>|<voicePath>
//	## ENTRIES
//	<type>#<payload>
//
// The parser only understands the section layout and the table rows. Entry payloads
// are kept verbatim; their grammar belongs to the interpreter.
package script

// Section identifies which part of a script a line belongs to.
type Section int

const (
	// SectionFonts is also the section in effect before the first header.
	SectionFonts Section = iota
	SectionCursorSprites
	SectionBackgrounds
	SectionActors
	SectionEntries
)

// Section headers, matched against the whole (trimmed) line.
const (
	HeaderFonts         = "## FONTS"
	HeaderCursorSprites = "## CURSOR SPRITES"
	HeaderBackgrounds   = "## BACKGROUNDS"
	HeaderActors        = "## ACTORS"
	HeaderEntries       = "## ENTRIES"
)

// Reserved delimiters.
const (
	NameDelimiter     = "#"
	PositionDelimiter = "@"
	AxisDelimiter     = "x"
	ActorDelimiter    = "|"
)

// String returns the section header text without the "## " prefix.
func (s Section) String() string {
	switch s {
	case SectionFonts:
		return "FONTS"
	case SectionCursorSprites:
		return "CURSOR SPRITES"
	case SectionBackgrounds:
		return "BACKGROUNDS"
	case SectionActors:
		return "ACTORS"
	case SectionEntries:
		return "ENTRIES"
	default:
		return "UNKNOWN"
	}
}

// Entry types understood by the interpreter.
const (
	EntrySettings = "s"
	EntryChoice   = "c"
	EntryText     = "t"
	EntryImage    = "i"
)

// Entry is one (type, payload) unit of the ENTRIES section.
type Entry struct {
	Type    string
	Payload string
	Line    int // 1-based source line, for diagnostics
}

// BackgroundDef is a BACKGROUNDS row: image path plus position.
type BackgroundDef struct {
	Path string
	X, Y float64
}

// ActorDef is an ACTORS row.
type ActorDef struct {
	Portrait string
	Voice    string
}

// Script is the result of a successful parse. Tables map names to asset paths;
// resolving the paths into loaded resources is the caller's job.
type Script struct {
	Fonts         map[string]string
	CursorSprites map[string]string
	Backgrounds   map[string]BackgroundDef
	Actors        map[string]ActorDef
	Entries       []Entry

	// Preamble counts the non-blank lines that appeared before any section
	// header. They were parsed as FONTS rows.
	Preamble int
}

func newScript() *Script {
	return &Script{
		Fonts:         make(map[string]string),
		CursorSprites: make(map[string]string),
		Backgrounds:   make(map[string]BackgroundDef),
		Actors:        make(map[string]ActorDef),
		Entries:       make([]Entry, 0),
	}
}

package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/decker502/birdsong/pkg/config"
	"github.com/decker502/birdsong/pkg/dialogue"
	"github.com/decker502/birdsong/pkg/ecs"
	"github.com/decker502/birdsong/pkg/systems"
	"github.com/decker502/birdsong/pkg/types"
	"github.com/decker502/birdsong/pkg/utils"
	"github.com/mattn/go-runewidth"
)

const (
	tickInterval  = time.Second / config.TicksPerSecond
	maxTickDelta  = 0.25 // seconds; longer gaps (suspended terminal) are clamped
	voiceFrames   = 20   // ticks the voice marker stays visible
	maxErrorLines = 3
	defaultWidth  = 80
	maxBoxWidth   = 72
)

type tickMsg time.Time

// pathLoader resolves every asset to a ready path handle; nothing is decoded.
type pathLoader struct{}

func (pathLoader) Load(path string) types.Handle { return types.PathHandle(path) }

// voiceCue counts voice cues so the view can flash a marker.
type voiceCue struct {
	plays     int
	remaining int
	last      string
}

func (v *voiceCue) Play(h types.Handle) {
	v.plays++
	v.remaining = voiceFrames
	if h != nil {
		v.last = h.Path()
	}
}

// Model is the bubbletea model of the terminal player.
type Model struct {
	title    string
	runtime  *dialogue.Runtime
	em       *ecs.EntityManager
	voice    *voiceCue
	pending  types.ActionSet
	lastTick time.Time
	width    int
	errors   []string
}

// New creates a terminal player for the script source.
// cfg may be nil to use the default presentation parameters.
func New(title, source string, cfg *config.PresentationConfig, startAt int) *Model {
	em := ecs.NewEntityManager()
	m := &Model{
		title: title,
		em:    em,
		voice: &voiceCue{},
		width: defaultWidth,
	}
	m.runtime = dialogue.NewRuntime(cfg, pathLoader{}, systems.NewEntityRenderer(em), m.voice)
	m.runtime.SetErrorHandler(m.addError)
	m.runtime.StartAt(source, startAt)
	return m
}

// Runtime returns the dialogue runtime driven by the model.
func (m *Model) Runtime() *dialogue.Runtime {
	return m.runtime
}

func (m *Model) addError(err error) {
	m.errors = append(m.errors, err.Error())
	if len(m.errors) > maxErrorLines {
		m.errors = m.errors[len(m.errors)-maxErrorLines:]
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter":
			m.pending = m.pending.With(types.ActionAdvance).With(types.ActionConfirm)
		case "up", "k", "w", "z":
			m.pending = m.pending.With(types.ActionNavigateUp)
		case "down", "j", "s":
			m.pending = m.pending.With(types.ActionNavigateDown)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.step(time.Time(msg))
		return m, tick()
	}

	return m, nil
}

// step runs one runtime cycle with the actions collected since the last tick.
func (m *Model) step(now time.Time) {
	dt := 1.0 / float64(config.TicksPerSecond)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
		if dt < 0 {
			dt = 0
		}
		if dt > maxTickDelta {
			dt = maxTickDelta
		}
	}
	m.lastTick = now

	m.runtime.Update(dt, m.pending)
	m.pending = 0
	m.em.RemoveMarkedEntities()

	if m.voice.remaining > 0 {
		m.voice.remaining--
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	view := systems.CollectView(m.em)
	ctx := m.runtime.Context()

	header := TitleStyle.Render(m.title)
	if n := len(ctx.Entries); n > 0 {
		header += SceneStyle.Render(fmt.Sprintf(" entry %d/%d", ctx.Index+1, n))
	}
	b.WriteString(header + "\n")

	if line := sceneLine(view); line != "" {
		b.WriteString(SceneStyle.Render(line) + "\n")
	}

	boxWidth := m.boxWidth()
	if view.DialogueShown {
		lines := utils.WrapTextFunc(view.Dialogue, cellWidth, float64(boxWidth))
		box := DialogueBoxStyle.Width(boxWidth + 2).Render(strings.Join(lines, "\n"))
		if m.voice.remaining > 0 {
			box = lipgloss.JoinHorizontal(lipgloss.Top, box, VoiceStyle.Render(" ♪"))
		}
		b.WriteString(box + "\n")
	}

	for _, c := range view.Choices {
		if c.Active {
			b.WriteString(ChoiceActiveStyle.Render("> "+c.Label) + "\n")
		} else {
			b.WriteString(ChoiceStyle.Render(c.Label) + "\n")
		}
	}

	if m.runtime.Concluded() {
		b.WriteString(SceneStyle.Render("(end of script)") + "\n")
	}

	for _, e := range m.errors {
		b.WriteString(ErrorStyle.Render(runewidth.Truncate(e, m.width, "…")) + "\n")
	}

	b.WriteString(HelpStyle.Render("space/enter: advance · ↑/↓: choose · q: quit"))
	return b.String()
}

func (m *Model) boxWidth() int {
	w := m.width - 4
	if w > maxBoxWidth {
		w = maxBoxWidth
	}
	if w < 10 {
		w = 10
	}
	return w
}

func sceneLine(v systems.View) string {
	var parts []string
	if v.Background != "" {
		parts = append(parts, "scene: "+assetName(v.Background))
	}
	if v.Portrait != "" {
		parts = append(parts, "speaker: "+assetName(v.Portrait))
	}
	return strings.Join(parts, "  ")
}

func assetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func cellWidth(s string) float64 {
	return float64(runewidth.StringWidth(s))
}

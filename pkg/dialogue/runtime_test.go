package dialogue

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/birdsong/internal/script"
	"github.com/decker502/birdsong/pkg/config"
	"github.com/decker502/birdsong/pkg/types"
)

// TestRuntime_SingleLineConcludes 单条文本：推进显示全文，再推进结束运行
func TestRuntime_SingleLineConcludes(t *testing.T) {
	h := newHarness(nil)
	concluded := 0
	h.rt.SetOnConclude(func() { concluded++ })

	h.rt.Start("## ENTRIES\nt#Hello")
	h.step(0.01)

	box := h.rt.Context().Box
	if !box.Created || !box.Printing {
		t.Fatalf("box should be revealing after first cycle, got %v", box.State())
	}

	// 打字中推进：立即显示全文
	h.step(0.01, types.ActionAdvance)
	box = h.rt.Context().Box
	if box.Printing || box.Shown != "Hello" {
		t.Fatalf("advance while printing should reveal all, shown=%q printing=%v", box.Shown, box.Printing)
	}
	if h.rt.Concluded() {
		t.Fatal("run concluded too early")
	}

	// 最后一个条目上推进：结束
	h.step(0.01, types.ActionAdvance)
	if !h.rt.Concluded() {
		t.Fatal("run should conclude on advance at last entry")
	}
	if h.rt.CurrentEntryIndex() != 0 {
		t.Errorf("index = %d, want 0", h.rt.CurrentEntryIndex())
	}
	if concluded != 1 {
		t.Errorf("OnConclude called %d times, want 1", concluded)
	}

	// 结束后输入无效
	for i := 0; i < 5; i++ {
		h.step(0.01, types.ActionAdvance, types.ActionConfirm)
	}
	if concluded != 1 || h.rt.CurrentEntryIndex() != 0 {
		t.Errorf("interpreter must stay idle after conclusion (concluded=%d, index=%d)", concluded, h.rt.CurrentEntryIndex())
	}

	// 新脚本重新打开闸门
	h.rt.Start("## ENTRIES\nt#Again")
	h.step(0.01)
	if h.rt.Concluded() {
		t.Error("Start should reset the concluded state")
	}
	if got := h.rt.Context().Box.Text; got != "Again" {
		t.Errorf("box text = %q, want Again", got)
	}
}

// TestRuntime_ChoiceScenario 选项分支：下移后确认跳到第二个目标
func TestRuntime_ChoiceScenario(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start("## ENTRIES\nt#Hi\nc#Yes@2|No@3\nt#You picked A\nt#You picked B\n")

	h.step(1) // 全文显示
	h.step(0.01, types.ActionAdvance)

	c := h.rt.Context()
	if c.Index != 1 {
		t.Fatalf("index = %d, want 1", c.Index)
	}
	if !c.Choices.Enabled || !c.Choices.Created || c.Choices.Count != 2 {
		t.Fatalf("choices = %+v, want two created options", c.Choices)
	}
	if c.Box.Created || c.Box.Enabled {
		t.Error("dialogue box should be destroyed while choosing")
	}

	h.step(0.01, types.ActionNavigateDown)
	if c.Choices.Selected != 1 || c.Choices.Pending != 3 {
		t.Fatalf("selected=%d pending=%d, want 1 and 3", c.Choices.Selected, c.Choices.Pending)
	}

	h.step(0.01, types.ActionConfirm)
	if h.rt.CurrentEntryIndex() != 3 {
		t.Fatalf("index = %d, want 3", h.rt.CurrentEntryIndex())
	}
	if c.Box.Text != "You picked B" {
		t.Errorf("box text = %q, want 'You picked B'", c.Box.Text)
	}
	if c.Choices.Created || len(h.renderer.live("choice")) != 0 || len(h.renderer.live("cursor")) != 0 {
		t.Error("choice items should be destroyed after confirm")
	}
}

// TestRuntime_TypewriterLaw cursor = min(length, speed * Σdt)
func TestRuntime_TypewriterLaw(t *testing.T) {
	cfg := config.DefaultPresentationConfig()
	cfg.BoxTextSpeed = 8

	h := newHarness(cfg)
	h.rt.Start("## ENTRIES\nt#abcdefghij")

	steps := []struct {
		dt       float64
		cursor   float64
		shown    string
		printing bool
	}{
		{0.25, 2, "ab", true},
		{0.5, 6, "abcdef", true},
		{0.125, 7, "abcdefg", true},
		{1.0, 10, "abcdefghij", false},
		{1.0, 10, "abcdefghij", false},
	}

	for i, s := range steps {
		h.step(s.dt)
		box := h.rt.Context().Box
		if math.Abs(box.Cursor-s.cursor) > 1e-9 {
			t.Errorf("step %d: cursor = %v, want %v", i, box.Cursor, s.cursor)
		}
		if box.Shown != s.shown {
			t.Errorf("step %d: shown = %q, want %q", i, box.Shown, s.shown)
		}
		if box.Printing != s.printing {
			t.Errorf("step %d: printing = %v, want %v", i, box.Printing, s.printing)
		}
	}
}

// TestRuntime_TextSpeedScale 玩家倍率与脚本速度相乘
func TestRuntime_TextSpeedScale(t *testing.T) {
	cfg := config.DefaultPresentationConfig()
	cfg.BoxTextSpeed = 4

	h := newHarness(cfg)
	h.rt.SetTextSpeedScale(2)
	h.rt.Start("## ENTRIES\nt#abcdefghij")
	h.step(0.5)

	if got := h.rt.Context().Box.Cursor; got != 4 {
		t.Errorf("cursor = %v, want 4", got)
	}
}

// TestRuntime_NavigationClamps 选择索引夹在 [0, count)
func TestRuntime_NavigationClamps(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start("## ENTRIES\nc#A@1|B@2|C@3\nt#a\nt#b\nt#c\n")
	h.step(0.01)

	c := h.rt.Context()
	h.step(0.01, types.ActionNavigateUp)
	if c.Choices.Selected != 0 {
		t.Errorf("NavigateUp at 0: selected = %d", c.Choices.Selected)
	}
	if h.renderer.updates["visible"] != 0 {
		t.Errorf("no-op navigation should not touch cursors, got %d updates", h.renderer.updates["visible"])
	}

	for i := 0; i < 5; i++ {
		h.step(0.01, types.ActionNavigateDown)
	}
	if c.Choices.Selected != 2 {
		t.Errorf("selected = %d, want 2", c.Choices.Selected)
	}

	visible := 0
	for _, cur := range h.renderer.live("cursor") {
		if cur.visible {
			visible++
		}
	}
	if visible != 1 {
		t.Errorf("%d cursors visible, want exactly 1", visible)
	}
}

// TestRuntime_ConfirmUsesActiveOption 确认总是跳到当前选中项的目标
func TestRuntime_ConfirmUsesActiveOption(t *testing.T) {
	tests := []struct {
		name  string
		downs int
		want  int
	}{
		{"第一项", 0, 1},
		{"第二项", 1, 3},
		{"第三项", 2, 2},
		{"越过末尾", 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(nil)
			h.rt.Start("## ENTRIES\nc#A@1|B@3|C@2\nt#one\nt#two\nt#three\n")
			h.step(0.01)
			for i := 0; i < tt.downs; i++ {
				h.step(0.01, types.ActionNavigateDown)
			}
			h.step(0.01, types.ActionConfirm)
			if got := h.rt.CurrentEntryIndex(); got != tt.want {
				t.Errorf("index = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestRuntime_NavigateAndConfirmSameCycle 同一周期内移动并确认，以移动后的选项为准
func TestRuntime_NavigateAndConfirmSameCycle(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start("## ENTRIES\nc#A@1|B@2\nt#a\nt#b\n")
	h.step(0.01)
	h.step(0.01, types.ActionNavigateDown, types.ActionConfirm)

	if got := h.rt.CurrentEntryIndex(); got != 2 {
		t.Errorf("index = %d, want 2", got)
	}
}

// TestRuntime_ChoicePositions 选项文本与光标的位置
func TestRuntime_ChoicePositions(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start("## ENTRIES\nc#A@1|B@1\nt#a\n")
	h.step(0.01)

	labels := h.renderer.live("choice")
	cursors := h.renderer.live("cursor")
	if len(labels) != 2 || len(cursors) != 2 {
		t.Fatalf("got %d labels and %d cursors", len(labels), len(cursors))
	}

	// 默认 box_position (-600,100,1)，spacing 40，indent 25，offset 16
	if want := (types.Vec3{X: -575, Y: 60, Z: 1}); labels[1].pos != want {
		t.Errorf("label[1] at %+v, want %+v", labels[1].pos, want)
	}
	if want := (types.Vec3{X: -600, Y: 44, Z: 1}); cursors[1].pos != want {
		t.Errorf("cursor[1] at %+v, want %+v", cursors[1].pos, want)
	}
	if want := (types.Vec3{X: -600, Y: 60, Z: 1}); h.rt.Context().Choices.Options[1].Anchor != want {
		t.Errorf("anchor[1] = %+v, want %+v", h.rt.Context().Choices.Options[1].Anchor, want)
	}
	if !cursors[0].visible || cursors[1].visible {
		t.Error("only the first cursor should be visible initially")
	}
}

// TestRuntime_ChoiceToChoice 选项跳到另一个选项时菜单重建
func TestRuntime_ChoiceToChoice(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start("## ENTRIES\nc#Next@1\nc#X@2|Y@2|Z@2\nt#end\n")
	h.step(0.01)
	h.step(0.01, types.ActionConfirm)

	c := h.rt.Context()
	if c.Index != 1 || !c.Choices.Created || c.Choices.Count != 3 {
		t.Fatalf("index=%d choices=%+v, want rebuilt three-option menu", c.Index, c.Choices)
	}
	if n := len(h.renderer.live("choice")); n != 3 {
		t.Errorf("%d live labels, want 3", n)
	}
}

// TestRuntime_IdempotentEnable 连续启用只创建一次
func TestRuntime_IdempotentEnable(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start(withEntries("i#forest", "i#town", "t#bird@one", "t#bird@two", "t#owl@three"))

	for i := 0; i < 5; i++ {
		h.step(1, types.ActionAdvance)
	}

	if n := h.renderer.creates["textbox"]; n != 1 {
		t.Errorf("CreateTextBox called %d times, want 1", n)
	}
	if n := h.renderer.creates["background"]; n != 1 {
		t.Errorf("background created %d times, want 1", n)
	}
	if n := h.renderer.creates["portrait"]; n != 1 {
		t.Errorf("portrait created %d times, want 1", n)
	}

	bgs := h.renderer.live("background")
	if len(bgs) != 1 || bgs[0].image.Path() != "images/town.png" {
		t.Errorf("background should show town, got %+v", bgs)
	}
	portraits := h.renderer.live("portrait")
	if len(portraits) != 1 || portraits[0].image.Path() != "images/owl.png" {
		t.Errorf("portrait should show owl, got %+v", portraits)
	}
}

// TestRuntime_AtomicReparse 错误的脚本不影响已加载的脚本
func TestRuntime_AtomicReparse(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start(withEntries("t#first", "t#second"))
	h.step(1)
	h.step(1, types.ActionAdvance)

	before := h.rt.Context().Entries
	h.rt.Start("## BACKGROUNDS\nbroken#images/x.png\n## ENTRIES\nt#new\n")
	h.step(1)

	if len(h.errs) != 1 {
		t.Fatalf("got %d errors, want exactly 1: %v", len(h.errs), h.errs)
	}
	var fe *script.FormatError
	if !errors.As(h.errs[0], &fe) || fe.Line != 2 {
		t.Errorf("error = %v, want FormatError on line 2", h.errs[0])
	}

	c := h.rt.Context()
	if len(c.Entries) != len(before) || c.Entries[1].Payload != "second" {
		t.Errorf("entries replaced by failed parse: %+v", c.Entries)
	}
	if _, ok := c.Backgrounds["forest"]; !ok {
		t.Error("tables replaced by failed parse")
	}
	if c.Index != 1 || c.Box.Text != "second" {
		t.Errorf("run state changed: index=%d text=%q", c.Index, c.Box.Text)
	}
}

// TestRuntime_ReferenceErrors 名称查找失败只跳过对应子动作
func TestRuntime_ReferenceErrors(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start(withEntries("s#font:nope|font_size:30", "i#nowhere", "t#ghost@Boo"))
	for i := 0; i < 3; i++ {
		h.step(1)
	}

	c := h.rt.Context()
	if c.Settings.FontSize != 30 {
		t.Errorf("font_size = %v, want 30 (valid pair must still apply)", c.Settings.FontSize)
	}
	if c.Index != 2 || c.Box.Text != "Boo" || !c.Box.Created {
		t.Errorf("index=%d text=%q, want the text entry shown", c.Index, c.Box.Text)
	}
	if c.Actor.Enabled || c.Background.Enabled {
		t.Error("unknown actor/background must not be enabled")
	}

	wantTables := []string{TableFonts, TableBackgrounds, TableActors}
	if len(h.errs) != len(wantTables) {
		t.Fatalf("got %d errors, want %d: %v", len(h.errs), len(wantTables), h.errs)
	}
	for i, want := range wantTables {
		var re *ReferenceError
		if !errors.As(h.errs[i], &re) || re.Table != want {
			t.Errorf("errs[%d] = %v, want ReferenceError in %s", i, h.errs[i], want)
		}
	}
}

// TestRuntime_RangeError 越界目标拒绝跳转，菜单保持打开
func TestRuntime_RangeError(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start("## ENTRIES\nc#Bad@9|Good@1\nt#ok\n")
	h.step(0.01)
	h.step(0.01, types.ActionConfirm)

	c := h.rt.Context()
	var re *RangeError
	if len(h.errs) != 1 || !errors.As(h.errs[0], &re) || re.Target != 9 {
		t.Fatalf("errs = %v, want one RangeError for target 9", h.errs)
	}
	if c.Index != 0 || !c.Choices.Enabled || !c.Choices.Created {
		t.Fatalf("choice should stay open at index 0, got index=%d choices=%+v", c.Index, c.Choices)
	}

	h.step(0.01, types.ActionNavigateDown)
	h.step(0.01, types.ActionConfirm)
	if c.Index != 1 {
		t.Errorf("index = %d, want 1 after choosing the valid option", c.Index)
	}
}

// TestRuntime_VoiceCues 只有在逐字显示时计时器触发才播放语音
func TestRuntime_VoiceCues(t *testing.T) {
	cfg := config.DefaultPresentationConfig()
	cfg.BoxTextSpeed = 10
	cfg.VoiceFrequency = 0.5

	h := newHarness(cfg)
	h.rt.Start(withEntries("t#bird@abcdefghijklmnopqrst"))

	// 20 个字符，速度 10：第 8 个周期结束打字；计时器在第 2/4/6/8 周期触发
	for i := 0; i < 12; i++ {
		h.step(0.25)
	}

	if len(h.audio.played) != 3 {
		t.Fatalf("played %d cues, want 3: %v", len(h.audio.played), h.audio.played)
	}
	for _, p := range h.audio.played {
		if p != "audio/chirp.wav" {
			t.Errorf("played %q, want audio/chirp.wav", p)
		}
	}
}

// TestRuntime_VoiceFrequencyChangeRebuildsTimer 修改 voice_frequency 后计时器重建
func TestRuntime_VoiceFrequencyChangeRebuildsTimer(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start(withEntries("t#bird@hello", "s#voice_frequency:0.75", "t#bird@again"))
	h.step(0.05)

	c := h.rt.Context()
	if c.Actor.VoiceTimer.TargetTime != config.DefaultVoiceFrequency {
		t.Fatalf("timer period = %v, want default", c.Actor.VoiceTimer.TargetTime)
	}

	h.step(1, types.ActionAdvance) // 全文显示
	h.step(0.05, types.ActionAdvance)
	h.step(0.05)
	if c.Actor.VoiceTimer.TargetTime != 0.75 {
		t.Errorf("timer period = %v, want 0.75", c.Actor.VoiceTimer.TargetTime)
	}
}

// TestRuntime_UnknownEntry 未知条目只报告一次，可以推进跳过
func TestRuntime_UnknownEntry(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start("## ENTRIES\nx#mystery\nt#after\n")
	for i := 0; i < 4; i++ {
		h.step(0.01)
	}

	if len(h.errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(h.errs), h.errs)
	}
	var ue *UnknownEntryError
	if !errors.As(h.errs[0], &ue) || ue.Tag != "x" {
		t.Errorf("error = %v, want UnknownEntryError for x", h.errs[0])
	}
	if h.rt.CurrentEntryIndex() != 0 {
		t.Fatalf("unknown entry must not advance by itself")
	}

	h.step(0.01, types.ActionAdvance)
	if h.rt.CurrentEntryIndex() != 1 {
		t.Errorf("index = %d, want 1 after advance", h.rt.CurrentEntryIndex())
	}
}

// TestRuntime_FreeEntryAtEnd 最后一个条目是免费条目时应用后结束
func TestRuntime_FreeEntryAtEnd(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start(withEntries("t#bye", "i#forest"))
	h.step(1)
	h.step(0.01, types.ActionAdvance)

	if !h.rt.Concluded() {
		t.Fatal("run should conclude after the trailing image entry")
	}
	if h.rt.CurrentEntryIndex() != 1 {
		t.Errorf("index = %d, want 1", h.rt.CurrentEntryIndex())
	}
	if bg := h.renderer.live("background"); len(bg) != 1 || bg[0].pos != (types.Vec3{X: 10, Y: -20}) {
		t.Errorf("background = %+v, want forest at (10,-20,0)", bg)
	}
}

// TestRuntime_FreeEntriesAutoAdvance 设置与背景条目不等待输入
func TestRuntime_FreeEntriesAutoAdvance(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start(withEntries("s#font:mono|font_size:20|font_color:1x0x0x1", "i#forest", "t#hi"))

	// 输入在免费条目上无效
	h.step(0.01, types.ActionAdvance)
	h.step(0.01, types.ActionAdvance)
	h.step(0.01)

	c := h.rt.Context()
	if c.Index != 2 {
		t.Fatalf("index = %d, want 2", c.Index)
	}
	if c.Settings.Font.Path() != "builtin:gomono" || c.Settings.FontSize != 20 {
		t.Errorf("settings not applied: %+v", c.Settings)
	}
	if c.Settings.FontColor != (types.RGBA{R: 1, A: 1}) {
		t.Errorf("font color = %+v", c.Settings.FontColor)
	}
	if tb := h.renderer.live("textbox"); len(tb) != 1 || tb[0].style.Size != 20 {
		t.Errorf("text box should use the new style: %+v", tb)
	}
}

// TestRuntime_StartAtReplaysSettings 从书签恢复时重放之前的设置与背景
func TestRuntime_StartAtReplaysSettings(t *testing.T) {
	h := newHarness(nil)
	h.rt.StartAt(withEntries("s#font_size:30", "i#forest", "i#town", "t#a", "t#b"), 4)
	h.step(0.01)

	c := h.rt.Context()
	if c.Index != 4 || c.Box.Text != "b" {
		t.Fatalf("index=%d text=%q, want resume at 4", c.Index, c.Box.Text)
	}
	if c.Settings.FontSize != 30 {
		t.Errorf("font_size = %v, want 30", c.Settings.FontSize)
	}
	if c.Background.Name != "town" || !c.Background.Created {
		t.Errorf("background = %+v, want town", c.Background)
	}
}

// TestRuntime_StartAtOutOfRange 越界书签从头开始并报告
func TestRuntime_StartAtOutOfRange(t *testing.T) {
	h := newHarness(nil)
	h.rt.StartAt("## ENTRIES\nt#a\n", 7)
	h.step(0.01)

	if h.rt.CurrentEntryIndex() != 0 {
		t.Errorf("index = %d, want 0", h.rt.CurrentEntryIndex())
	}
	var re *RangeError
	if len(h.errs) != 1 || !errors.As(h.errs[0], &re) {
		t.Errorf("errs = %v, want one RangeError", h.errs)
	}
}

// TestRuntime_RestartDestroysPresentation 新脚本会清理旧的呈现对象
func TestRuntime_RestartDestroysPresentation(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start(withEntries("i#forest", "t#bird@hi"))
	h.step(0.01)
	h.step(0.01)

	h.rt.Start("## ENTRIES\nc#Only@0\n")
	h.step(0.01)

	for _, kind := range []string{"textbox", "portrait", "background"} {
		if n := len(h.renderer.live(kind)); n != 0 {
			t.Errorf("%d live %s entities after restart, want 0", n, kind)
		}
	}
	if len(h.renderer.live("choice")) != 1 {
		t.Error("new script's choice should be shown")
	}
}

// TestRuntime_RestartReplacesOpenChoice 选项菜单打开时重新开始，新脚本的同位置选项重建菜单
func TestRuntime_RestartReplacesOpenChoice(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start("## ENTRIES\nc#Old A@1|Old B@2\nt#old one\nt#old two\n")
	h.step(0.01)
	h.step(0.01)

	h.rt.Start("## ENTRIES\nc#New@2\nt#x\nt#y\n")
	h.step(0.01)

	c := h.rt.Context()
	if c.Choices.Count != 1 || len(c.Choices.Options) != 1 {
		t.Fatalf("option count = %d, want 1", c.Choices.Count)
	}
	if c.Choices.Options[0].Label != "New" {
		t.Errorf("label = %q, want %q", c.Choices.Options[0].Label, "New")
	}
	labels := h.renderer.live("choice")
	if len(labels) != 1 || labels[0].text != "New" {
		t.Fatalf("live labels = %d, want only the new one", len(labels))
	}
	if n := len(h.renderer.live("cursor")); n != 1 {
		t.Errorf("%d live cursors, want 1", n)
	}

	// 越过末尾被夹住，确认仍跳到新选项的目标
	h.step(0.01, types.ActionNavigateDown)
	h.step(0.01, types.ActionConfirm)
	if got := h.rt.CurrentEntryIndex(); got != 2 {
		t.Errorf("index after confirm = %d, want 2", got)
	}
	if c.Box.Text != "y" {
		t.Errorf("text = %q, want %q", c.Box.Text, "y")
	}
}

// TestRuntime_StartAtReplacesOpenChoice 书签恢复到同一位置的选项时同样重建
func TestRuntime_StartAtReplacesOpenChoice(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start("## ENTRIES\nt#a\nc#Left@0|Right@0\n")
	h.step(0.01)
	h.step(0.01, types.ActionAdvance)
	h.step(0.01)

	h.rt.StartAt("## ENTRIES\nt#a\nc#Up@2|Down@3|Stay@1\nt#up\nt#down\n", 1)
	h.step(0.01)

	labels := h.renderer.live("choice")
	if len(labels) != 3 || labels[0].text != "Up" {
		t.Fatalf("live labels = %d, want the three new options", len(labels))
	}
	h.step(0.01, types.ActionNavigateDown, types.ActionConfirm)
	if got := h.rt.CurrentEntryIndex(); got != 3 {
		t.Errorf("index after confirm = %d, want 3", got)
	}
}

// TestRuntime_CursorNeverDecreases 打字机光标单调不减
func TestRuntime_CursorNeverDecreases(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start("## ENTRIES\nt#hello world\n")
	h.step(0.02)

	c := h.rt.Context()
	before := c.Box.Cursor
	c.Settings.BoxTextSpeed = -500
	h.step(0.02)
	if c.Box.Cursor < before {
		t.Errorf("cursor went from %v to %v", before, c.Box.Cursor)
	}
}

// TestRuntime_SpeakerSplitsOnFirstDelimiter 说话人取第一个 @ 之前的部分，其余都是正文
func TestRuntime_SpeakerSplitsOnFirstDelimiter(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start(withEntries("t#bird@mail me @ home"))
	h.step(10)

	c := h.rt.Context()
	if c.Actor.Name != "bird" {
		t.Errorf("speaker = %q, want bird", c.Actor.Name)
	}
	if c.Box.Text != "mail me @ home" {
		t.Errorf("text = %q", c.Box.Text)
	}
	if len(h.errs) != 0 {
		t.Errorf("unexpected errors: %v", h.errs)
	}
}

// TestRuntime_EmptyScript 没有条目时闸门保持关闭
func TestRuntime_EmptyScript(t *testing.T) {
	h := newHarness(nil)
	h.rt.Start(testTables)
	h.step(0.01, types.ActionAdvance)

	c := h.rt.Context()
	if c.Processing || c.Concluded {
		t.Errorf("processing=%v concluded=%v, want both false", c.Processing, c.Concluded)
	}
	if len(h.renderer.creates) != 0 {
		t.Errorf("nothing should be rendered, got %v", h.renderer.creates)
	}
	if len(c.Actors) != 2 {
		t.Errorf("tables should still load, got %d actors", len(c.Actors))
	}
}

package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/celebration/internal/config"
	"github.com/vovakirdan/celebration/internal/core"
	"github.com/vovakirdan/celebration/internal/diag"
	"github.com/vovakirdan/celebration/internal/minigame"
)

var epoch = time.Unix(1_700_000_000, 0)

func newTestModel(t *testing.T, w, h int) Model {
	t.Helper()
	return NewModel(
		core.RuntimeConfig{ScreenW: w, ScreenH: h, FrameRate: 30, Seed: 7},
		config.DefaultMinigameConfig(),
		ModelOptions{SessionID: "tui-test", Now: func() time.Time { return epoch }},
	)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return model, cmd
}

// startAndSpawn starts a run and advances the clock by n spawn ticks.
func startAndSpawn(t *testing.T, m Model, n int) Model {
	t.Helper()
	m, _ = update(t, m, runeKey("s"))
	tick := config.DefaultMinigameConfig().TickInterval()
	m, _ = update(t, m, FrameMsg(epoch.Add(time.Duration(n)*tick)))
	return m
}

func TestStartKeyBeginsRun(t *testing.T) {
	m := newTestModel(t, 80, 24)

	for _, msg := range []tea.KeyMsg{runeKey("s"), {Type: tea.KeyEnter}} {
		m := newTestModel(t, 80, 24)
		m, _ = update(t, m, msg)
		if m.Session().State() != minigame.StateRunning {
			t.Errorf("%q should start the run, state = %v", msg.String(), m.Session().State())
		}
	}

	if m.Session().State() != minigame.StateIdle {
		t.Error("session should stay idle until started")
	}
}

func TestFrameAdvancesClock(t *testing.T) {
	m := startAndSpawn(t, newTestModel(t, 80, 24), 3)

	if got := m.Session().LiveCount(); got != 3 {
		t.Errorf("LiveCount() = %d after three ticks, expected 3", got)
	}
}

func TestFrameReschedules(t *testing.T) {
	m := newTestModel(t, 80, 24)
	if _, cmd := update(t, m, FrameMsg(epoch)); cmd == nil {
		t.Error("frame message should schedule the next frame")
	}
}

func TestMouseClickPopsBalloon(t *testing.T) {
	m := startAndSpawn(t, newTestModel(t, 80, 24), 1)

	e, ok := m.Session().Snapshot().Nth(1)
	if !ok {
		t.Fatal("expected one balloon")
	}

	click := tea.MouseMsg{
		X:      1 + e.X,
		Y:      core.HUDRows + 1 + e.Y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}
	m, _ = update(t, m, click)

	if m.Session().Score() != 1 {
		t.Errorf("Score() = %d after clicking the balloon, expected 1", m.Session().Score())
	}
	if m.Session().LiveCount() != 0 {
		t.Error("popped balloon should be gone")
	}
}

func TestMouseIgnoresMissesAndOtherButtons(t *testing.T) {
	m := startAndSpawn(t, newTestModel(t, 80, 24), 1)
	e, _ := m.Session().Snapshot().Nth(1)

	inside := tea.MouseMsg{X: 1 + e.X, Y: core.HUDRows + 1 + e.Y}

	right := inside
	right.Action, right.Button = tea.MouseActionPress, tea.MouseButtonRight
	release := inside
	release.Action, release.Button = tea.MouseActionRelease, tea.MouseButtonLeft
	hud := tea.MouseMsg{X: 5, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	for _, msg := range []tea.MouseMsg{right, release, hud} {
		m, _ = update(t, m, msg)
	}

	if m.Session().Score() != 0 || m.Session().LiveCount() != 1 {
		t.Errorf("stray mouse events changed the game: score=%d live=%d",
			m.Session().Score(), m.Session().LiveCount())
	}
}

func TestDigitKeyClaimsNthBalloon(t *testing.T) {
	m := startAndSpawn(t, newTestModel(t, 80, 24), 3)
	second, _ := m.Session().Snapshot().Nth(2)

	m, _ = update(t, m, runeKey("2"))

	if m.Session().Score() != 1 {
		t.Fatalf("Score() = %d, expected 1", m.Session().Score())
	}
	for _, e := range m.Session().Snapshot().Entities {
		if e.ID == second.ID {
			t.Error("key 2 should pop the second balloon")
		}
	}

	m, _ = update(t, m, runeKey("9"))
	if m.Session().Score() != 1 {
		t.Error("claiming an empty slot should do nothing")
	}
}

func TestResetKey(t *testing.T) {
	m := startAndSpawn(t, newTestModel(t, 80, 24), 2)
	m, _ = update(t, m, runeKey("1"))
	m, _ = update(t, m, runeKey("r"))

	s := m.Session()
	if s.State() != minigame.StateStopped || s.Score() != 0 || s.LiveCount() != 0 {
		t.Errorf("after reset: state=%v score=%d live=%d", s.State(), s.Score(), s.LiveCount())
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, 80, 24)
	m, cmd := update(t, m, runeKey("q"))

	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, 80, 24)
	m, _ = update(t, m, runeKey("?"))
	if !m.help.ShowAll {
		t.Error("? should expand the help")
	}
	m, _ = update(t, m, runeKey("?"))
	if m.help.ShowAll {
		t.Error("second ? should collapse the help")
	}
}

func TestViewShowsHUD(t *testing.T) {
	m := startAndSpawn(t, newTestModel(t, 80, 24), 1)
	view := m.View()

	for _, want := range []string{"Happy Birthday", "Score: 0", "running", config.DefaultMinigameConfig().Messages.Start} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q", want)
		}
	}
}

func TestTinyTerminalDisablesGame(t *testing.T) {
	var events []diag.Event
	m := NewModel(
		core.RuntimeConfig{ScreenW: 2, ScreenH: 4, Seed: 1},
		config.DefaultMinigameConfig(),
		ModelOptions{
			Now:      func() time.Time { return epoch },
			Recorder: diag.RecorderFunc(func(e diag.Event) { events = append(events, e) }),
		},
	)

	if !m.Session().Disabled() {
		t.Fatal("session without room for a play area should be disabled")
	}
	if len(events) != 1 || events[0].Kind != diag.KindDisabled {
		t.Errorf("expected a disabled event, got %+v", events)
	}

	m, _ = update(t, m, runeKey("s"))
	if m.Session().State() != minigame.StateIdle {
		t.Error("disabled session must ignore start")
	}
}

func TestResizeOnlyAffectsNewSpawns(t *testing.T) {
	m := startAndSpawn(t, newTestModel(t, 80, 24), 1)
	before, _ := m.Session().Snapshot().Nth(1)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 12})

	after, _ := m.Session().Snapshot().Nth(1)
	if after.X != before.X || after.Y != before.Y {
		t.Error("resize moved a live balloon")
	}

	w, h := m.area.Size()
	if w != 18 || h != 6 {
		t.Errorf("play area after resize = %dx%d, expected 18x6", w, h)
	}
}

func TestKeyMapCommands(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		slot   int
	}{
		{runeKey("s"), core.ActionStart, 0},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart, 0},
		{runeKey("r"), core.ActionReset, 0},
		{runeKey("7"), core.ActionClaim, 7},
		{runeKey("?"), core.ActionHelp, 0},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, 0},
		{runeKey("x"), core.ActionNone, 0},
	}

	for _, tc := range tests {
		cmd := keys.Command(tc.msg)
		if cmd.Action != tc.action || cmd.Slot != tc.slot {
			t.Errorf("Command(%q) = %+v, expected action %v slot %d", tc.msg.String(), cmd, tc.action, tc.slot)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "pop", core.ColorRed)
	s.DrawText(4, 0, "pop", core.ColorBlue)

	out := RenderScreen(s)
	if strings.Count(out, "pop") != 2 {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}

func TestDrawBalloonLabelsSlot(t *testing.T) {
	s := core.NewScreen(10, 4)
	drawBalloon(s, core.NewRect(1, 1, 4, 2), 3, core.ColorRed)

	if s.GetCell(1, 1).Rune != '(' || s.GetCell(4, 1).Rune != ')' {
		t.Errorf("balloon body = %q", s.Row(1))
	}
	if s.GetCell(3, 1).Rune != '3' {
		t.Errorf("slot label missing: %q", s.Row(1))
	}
	if s.GetCell(3, 2).Rune != '╿' {
		t.Errorf("balloon string missing: %q", s.Row(2))
	}
}

func TestDrawPlayfieldSkipsBalloonsOutsideFrame(t *testing.T) {
	s := core.NewScreen(12, 6)
	frame := core.NewRect(0, 0, 12, 6)
	snap := minigame.Snapshot{
		State: minigame.StateRunning,
		Entities: []minigame.EntityView{
			{Seq: 1, X: 0, Y: 0, W: 4, H: 2},
			{Seq: 2, X: 8, Y: 2, W: 4, H: 2}, // Left behind by a shrink
		},
	}

	drawPlayfield(s, frame, snap)

	if s.GetCell(1, 1).Rune != '(' {
		t.Errorf("balloon inside the frame not drawn: %q", s.Row(1))
	}
	if r := s.GetCell(11, 3).Rune; r != '│' {
		t.Errorf("right border overwritten by clipped balloon: %q", r)
	}
}

func TestFrameIntervalFollowsFrameRate(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		gameRate int
		expected time.Duration
	}{
		{"runtime rate wins", 50, 30, 20 * time.Millisecond},
		{"game rate when unset", 0, 20, 50 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gameCfg := config.DefaultMinigameConfig()
			gameCfg.FrameRate = tc.gameRate
			m := NewModel(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, FrameRate: tc.rate, Seed: 1}, gameCfg, ModelOptions{})
			if m.frame != tc.expected {
				t.Errorf("frame = %v, expected %v", m.frame, tc.expected)
			}
		})
	}
}

func TestPlayFrameTracksScreen(t *testing.T) {
	m := newTestModel(t, 40, 20)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 16})

	expected := core.NewRect(0, core.HUDRows, 30, 16-core.FooterRows-core.HUDRows)
	if got := m.playFrame(); got != expected {
		t.Errorf("playFrame() = %+v, expected %+v", got, expected)
	}
}

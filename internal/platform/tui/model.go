package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/celebration/internal/config"
	"github.com/vovakirdan/celebration/internal/core"
	"github.com/vovakirdan/celebration/internal/diag"
	"github.com/vovakirdan/celebration/internal/minigame"
	"github.com/vovakirdan/celebration/internal/sched"
)

// ModelOptions wires a Model to its collaborators.
type ModelOptions struct {
	SessionID string
	Recorder  diag.Recorder
	Logger    *log.Logger
	Now       func() time.Time // Clock origin, time.Now when nil
}

// Model is the Bubble Tea model for one celebration page session.
// The session and its scheduler are only touched from Update, which Bubble
// Tea serializes, so the game needs no locking.
type Model struct {
	session *minigame.Session
	clock   *sched.Scheduler
	area    *minigame.Area
	screen  *core.Screen
	config  core.RuntimeConfig
	keys    KeyMap
	help    help.Model
	logger  *log.Logger
	frame   time.Duration

	quitting bool
}

// NewModel creates a model with an Idle session sized to cfg.
// A terminal too small to hold any play area gets a disabled session.
func NewModel(cfg core.RuntimeConfig, gameCfg config.MinigameConfig, opts ModelOptions) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.FrameRate > 0 {
		gameCfg.FrameRate = cfg.FrameRate
	}
	cfg.FrameRate = gameCfg.FrameRate
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	clock := sched.New(now())

	var area *minigame.Area
	var playArea minigame.PlayArea
	if w, h := cfg.PlayArea(); w > 0 && h > 0 {
		area = minigame.NewArea(w, h)
		playArea = area
	}

	session := minigame.NewSession(gameCfg, clock, playArea, minigame.Options{
		ID:       opts.SessionID,
		Seed:     cfg.Seed,
		Recorder: opts.Recorder,
	})

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		session: session,
		clock:   clock,
		area:    area,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH-core.FooterRows),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    h,
		logger:  logger,
		frame:   gameCfg.FrameInterval(),
	}
}

// Session returns the session driven by this model.
func (m Model) Session() *minigame.Session {
	return m.session
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.frame)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		m.clock.AdvanceTo(time.Time(msg))
		return m, frameCmd(m.frame)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.keys.Command(msg)

	switch cmd.Action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionStart:
		if m.session.Start() {
			m.logger.Debug("run started", "session", m.session.ID())
		}
	case core.ActionReset:
		m.session.Reset()
	case core.ActionClaim:
		if e, ok := m.session.Snapshot().Nth(cmd.Slot); ok {
			m.session.Click(e.ID)
		}
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	x, y, ok := m.toPlayArea(msg.X, msg.Y)
	if !ok {
		return m, nil
	}

	if e, hit := m.session.Snapshot().EntityAt(x, y); hit {
		if m.session.Click(e.ID) {
			m.logger.Debug("balloon popped", "session", m.session.ID(), "seq", e.Seq)
		}
	}
	return m, nil
}

// toPlayArea converts terminal coordinates to play-area cells.
func (m Model) toPlayArea(x, y int) (int, int, bool) {
	inner := m.playFrame().Inset(1)
	if !inner.Contains(x, y) {
		return 0, 0, false
	}
	return x - inner.X, y - inner.Y, true
}

// playFrame is the box drawn around the play area: everything on the screen
// buffer below the HUD.
func (m Model) playFrame() core.Rect {
	b := m.screen.Bounds()
	return core.NewRect(b.X, b.Y+core.HUDRows, b.W, b.H-core.HUDRows)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-core.FooterRows)
	m.help.Width = msg.Width

	// Live balloons keep their cells; only future spawns see the new size.
	if m.area != nil {
		w, h := m.config.PlayArea()
		m.area.Resize(max(w, 0), max(h, 0))
	}
	return m, nil
}

// View renders the HUD, the play area and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.session.Snapshot()

	m.screen.Clear()
	drawHUD(m.screen, snap)
	drawPlayfield(m.screen, m.playFrame(), snap)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts a local Bubble Tea program for one session.
func Run(cfg core.RuntimeConfig, gameCfg config.MinigameConfig, opts ModelOptions) error {
	model := NewModel(cfg, gameCfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

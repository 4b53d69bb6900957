package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/replay"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Options controls how a run is presented and archived.
type Options struct {
	FPS       int           // Display frame rate; the simulation keeps its own tick rate
	Hold      time.Duration // How long a steering key counts as held
	Player    string        // Stored with finished runs
	ReplayDir string        // Where finished runs are saved; empty disables replays
	Logger    *log.Logger
}

func (o Options) withDefaults() Options {
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.Hold <= 0 {
		o.Hold = 180 * time.Millisecond
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	store   *storage.Store
	config  core.RuntimeConfig
	opts    Options
	keys    *KeyMapper
	held    heldKeys
	stepper stepper
	alpha   float64

	pending    core.InputFrame // One-shot actions waiting for the next tick
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	backCmd    tea.Cmd // Issued on back; nil when a session model takes over
	runSaved   bool    // Whether the current finished run has been archived
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) *Model {
	opts = opts.withDefaults()
	return &Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   store,
		config:  cfg,
		opts:    opts,
		keys:    NewKeyMapper(),
		held:    newHeldKeys(opts.Hold),
		stepper: newStepper(cfg.TickRate),
		alpha:   1,
		pending: core.NewInputFrame(),
		backCmd: tea.Quit,
	}
}

// Init starts the game and the frame loop.
func (m *Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return frameCmd(m.opts.FPS)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case frameMsg:
		m.handleFrame(time.Time(msg))
		return m, frameCmd(m.opts.FPS)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		if m.gameState.Paused || m.gameState.GameOver {
			m.backToMenu = true
			return m, m.backCmd
		}
	case core.ActionLeft, core.ActionRight:
		m.held.press(action, time.Now())
	case core.ActionServe, core.ActionPause, core.ActionRestart:
		m.pending.Set(action)
	}
	return m, nil
}

// handleResize follows the terminal size. Games that cannot resize in place
// are restarted unless their run is over.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
		return
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.stepper.reset()
	}
}

// handleFrame runs every tick that is due and archives a finished run.
func (m *Model) handleFrame(now time.Time) {
	ticks, alpha := m.stepper.advance(now)
	m.alpha = alpha

	for range ticks {
		in := core.NewInputFrame()
		for a := range m.pending.Actions {
			in.Set(a)
		}
		m.pending.Clear()
		m.held.apply(&in, now)

		wasOver := m.gameState.GameOver
		m.gameState = m.game.Step(in).State

		if wasOver && !m.gameState.GameOver {
			// Restarted
			m.runSaved = false
			m.held.release()
		}
	}

	if m.gameState.Paused || m.gameState.GameOver {
		m.alpha = 1
	}
	if m.gameState.GameOver && !m.runSaved {
		m.archiveRun()
		m.runSaved = true
	}
}

// archiveRun stores the finished run and its replay. Both are best effort:
// the game continues regardless.
func (m *Model) archiveRun() {
	rec, recorded := m.game.(registry.Recorded)

	run := storage.Run{
		GameID:    m.game.ID(),
		Player:    m.opts.Player,
		Seed:      m.config.Seed,
		Score:     m.gameState.Score,
		Penalties: m.gameState.Penalties,
		ComboMax:  m.gameState.ComboMax,
		Rank:      m.gameState.Rank,
		Cleared:   m.gameState.Cleared,
	}
	if recorded {
		r := rec.Recording()
		run.RunID = r.ID
		run.Seed = r.Seed
		run.Ticks = r.Ticks()

		if m.opts.ReplayDir != "" {
			path := filepath.Join(m.opts.ReplayDir, replay.FileName(r))
			if err := replay.Save(path, r); err != nil {
				m.opts.Logger.Warn("cannot save replay", "err", err)
			} else {
				m.opts.Logger.Info("replay saved", "path", path)
			}
		}
	}

	if m.store != nil {
		if _, err := m.store.SaveRun(run); err != nil {
			m.opts.Logger.Warn("cannot save run", "err", err)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "err", err)
	}
}

func (m *Model) render() {
	if g, ok := m.game.(registry.Interpolated); ok {
		g.RenderAt(m.screen, m.alpha)
		return
	}
	m.game.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m *Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user left a paused or finished run.
func (m *Model) BackToMenu() bool {
	return m.backToMenu
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, store, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

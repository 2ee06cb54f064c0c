package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stackcats/internal/asset"
	"github.com/vovakirdan/stackcats/internal/config"
	"github.com/vovakirdan/stackcats/internal/core"
	"github.com/vovakirdan/stackcats/internal/games/catstack"
)

// chromeRows is the number of terminal rows used by the HUD and help lines.
const chromeRows = 2

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model running one Cat Stack game.
type Model struct {
	game      *catstack.Game
	canvas    *core.Canvas
	styles    styleCache
	hud       *hud
	countdown *countdown
	keys      KeyMap
	help      help.Model
	config    core.RuntimeConfig
	logger    *log.Logger
	quitting  bool
}

// NewModel builds the game for a terminal of cfg.ScreenW x cfg.ScreenH
// cells. The playfield keeps that size for the life of the program.
func NewModel(gameCfg config.Config, atlas *asset.Atlas, cfg core.RuntimeConfig, logger *log.Logger) (Model, error) {
	if cfg.TickRate <= 0 {
		return Model{}, fmt.Errorf("tui: tick rate must be positive, got %d", cfg.TickRate)
	}
	rows := cfg.ScreenH - chromeRows
	if cfg.ScreenW <= 0 || rows <= 0 {
		return Model{}, fmt.Errorf("tui: terminal too small (%dx%d)", cfg.ScreenW, cfg.ScreenH)
	}
	if logger == nil {
		logger = log.Default()
	}

	canvas := core.NewCanvas(
		core.NewScreen(cfg.ScreenW, rows),
		gameCfg.Render.CellWidth, gameCfg.Render.CellHeight,
		atlas,
	)
	width, height := canvas.Size()

	h := &hud{}
	cd := &countdown{}
	game, err := catstack.New(gameCfg, width, height, atlas,
		catstack.WithDisplay(h),
		catstack.WithCountdown(cd),
		catstack.WithNotifier(h),
		catstack.WithLogger(logger.WithPrefix("catstack")),
		catstack.WithSeed(cfg.Seed),
	)
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	hp := help.New()
	hp.Width = cfg.ScreenW

	logger.Debug("viewport fixed", "cols", cfg.ScreenW, "rows", rows, "width", width, "height", height)

	return Model{
		game:      game,
		canvas:    canvas,
		styles:    styleCache{},
		hud:       h,
		countdown: cd,
		keys:      DefaultKeyMap(),
		help:      hp,
		config:    cfg,
		logger:    logger,
	}, nil
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.game.Frame(time.Time(msg))
		return m, frameCmd(m.config.TickRate)

	case countdownMsg:
		if !m.countdown.accepts(msg) {
			return m, nil
		}
		m.game.Tick()
		return m, m.countdown.next()
	}

	return m, nil
}

// handleKey processes keyboard input. While the round-over message is open
// it holds all input except quit.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.hud.modalOpen() {
		if action == core.ActionAcknowledge || action == core.ActionTrigger {
			m.hud.dismiss()
			m.logger.Debug("round over acknowledged")
		}
		return m, nil
	}

	if action == core.ActionTrigger {
		m.game.Trigger()
		return m, m.countdown.start()
	}
	return m, nil
}

// View renders the HUD, the playfield and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	screen := m.canvas.Screen()
	var field string
	if m.hud.modalOpen() {
		field = m.hud.modal(screen.Width(), screen.Height())
	} else {
		m.game.Render(m.canvas)
		field = renderScreen(screen, m.styles)
	}

	return m.hud.view(m.game.Title(), screen.Width()) + "\n" +
		field + "\n" +
		helpStyle.Render(m.help.View(m.keys))
}

// Game returns the hosted game.
func (m Model) Game() *catstack.Game {
	return m.game
}

// Run starts the Bubble Tea program with the given model and blocks until
// the player quits or ctx is cancelled.
func Run(ctx context.Context, model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
	"github.com/vovakirdan/tui-runner/internal/telemetry"
)

// revealTicks is the delay between breakdown lines on the game over panel.
const revealTicks = 20

// Publisher receives telemetry frames.
type Publisher interface {
	Publish(v any) error
}

// Options configures the platform side of a run.
type Options struct {
	Store        *storage.Store
	Publisher    Publisher
	PublishEvery int    // Ticks between telemetry frames; 0 sends only the final frame
	Session      string // Session ID stamped on telemetry frames
	Logger       *log.Logger
	Embedded     bool // B returns to the caller instead of quitting
}

// Model is the Bubble Tea model for running one mode.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	opts      Options
	config    core.RuntimeConfig
	keys      *KeyMapper
	input     *HeldInput
	gameState core.GameState

	// Game over bookkeeping
	saved     bool
	runID     string
	final     int
	prevBest  int
	breakdown []ScoreLine
	overTicks int
	lastFrame uint64 // Tick of the last periodic telemetry frame

	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given mode.
func NewModel(game registry.Game, opts Options, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:   opts,
		config: cfg,
		keys:   NewKeyMapper(),
		input:  NewHeldInput(),
	}
}

// Init starts the run and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The simulation does not depend on screen size, so the run keeps going.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		if m.opts.Embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionRestart && !m.gameState.GameOver {
		return m, nil
	}
	m.input.Press(action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.gameState.GameOver && m.input.Pending(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.input.Release()
		m.saved = false
		m.runID = ""
		m.final = 0
		m.prevBest = 0
		m.breakdown = nil
		m.overTicks = 0
		m.lastFrame = 0
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.input.Frame())
	m.gameState = result.State

	if m.gameState.GameOver {
		if !m.saved {
			m.finishRun()
		}
		m.overTicks++
	} else if every := m.opts.PublishEvery; every > 0 && m.opts.Publisher != nil {
		if stats := m.game.Stats(); stats.Tick != m.lastFrame && stats.Tick%uint64(every) == 0 {
			m.lastFrame = stats.Tick
			m.publish(stats)
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// finishRun computes the final score, saves the run once and sends the
// last telemetry frame.
func (m *Model) finishRun() {
	m.saved = true
	stats := m.game.Stats()
	m.final = FinalScore(stats)
	m.breakdown = Breakdown(stats)

	if m.opts.Publisher != nil {
		m.publish(stats)
	}

	if m.opts.Store == nil || m.final <= 0 {
		return
	}
	best, err := m.opts.Store.HighScore(m.game.ID())
	if err != nil {
		m.logError("cannot read high score", err)
	}
	m.prevBest = best

	id, err := m.opts.Store.SaveRun(storage.RunRecord{
		Mode:       m.game.ID(),
		Score:      stats.Score,
		Donuts:     stats.Donuts,
		Distance:   stats.Distance,
		MaxHeight:  stats.MaxHeight,
		FinalScore: m.final,
		Laps:       stats.Laps,
		Cause:      stats.Cause,
	})
	if err != nil {
		m.logError("cannot save run", err)
		return
	}
	m.runID = id
	if m.opts.Logger != nil {
		m.opts.Logger.Info("run saved", "id", id, "mode", m.game.ID(), "final", m.final, "cause", stats.Cause)
	}
}

func (m *Model) publish(stats core.RunStats) {
	frame := telemetry.NewFrame(m.opts.Session, m.game.ID(), m.gameState, stats)
	if err := m.opts.Publisher.Publish(frame); err != nil {
		m.logError("cannot publish telemetry", err)
	}
}

func (m *Model) logError(msg string, err error) {
	if m.opts.Logger != nil {
		m.opts.Logger.Error(msg, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".runner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	if m.gameState.GameOver && m.breakdown != nil {
		return m.gameOverView()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Game over panel styles
var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(1, 3)
	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// gameOverView reveals the score breakdown one line at a time.
func (m Model) gameOverView() string {
	var b strings.Builder

	cause := m.game.Stats().Cause
	b.WriteString(panelTitleStyle.Render("GAME OVER"))
	if cause != "" {
		b.WriteString(hintStyle.Render("  (" + cause + ")"))
	}
	b.WriteString("\n\n")

	shown := min(len(m.breakdown), m.overTicks/revealTicks+1)
	for _, line := range m.breakdown[:shown] {
		b.WriteString(labelStyle.Render(line.Label))
		b.WriteString(valueStyle.Render(line.Value))
		b.WriteString("\n")
	}

	if shown == len(m.breakdown) {
		b.WriteString("\n")
		switch {
		case m.runID != "" && m.final > m.prevBest:
			b.WriteString(valueStyle.Render("New best!"))
			b.WriteString("\n")
		case m.prevBest > 0:
			b.WriteString(hintStyle.Render(fmt.Sprintf("Best: %d", m.prevBest)))
			b.WriteString("\n")
		}
		hint := "R: restart  Q: quit"
		if m.opts.Embedded {
			hint = "R: restart  B: menu  Q: quit"
		}
		b.WriteString(hintStyle.Render(hint))
	}

	panel := panelStyle.Render(b.String())
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, panel)
}

// Final returns the final score of the finished run, or 0 while running.
func (m Model) Final() int {
	return m.final
}

// RunID returns the storage ID of the saved run, if any.
func (m Model) RunID() string {
	return m.runID
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, opts Options, cfg core.RuntimeConfig) error {
	model := NewModel(game, opts, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duckstorm/internal/config"
	"github.com/vovakirdan/duckstorm/internal/core"
	"github.com/vovakirdan/duckstorm/internal/game"
	"github.com/vovakirdan/duckstorm/internal/lobby"
	"github.com/vovakirdan/duckstorm/internal/session"
	"github.com/vovakirdan/duckstorm/internal/storage"
)

const (
	// holdTicks is how long a single turn key press keeps rotating the
	// cannon. Terminals deliver key repeats, not key-up events.
	holdTicks = 6

	// noticeTicks is how long a lobby announcement stays on screen.
	noticeTicks = 240
)

// RunRecorder stores finished rounds.
type RunRecorder interface {
	SaveRun(r storage.Run) (int64, error)
}

// Options configure one terminal game.
type Options struct {
	Config  config.Config
	Mode    string // difficulty preset recorded with each run
	Runtime core.RuntimeConfig
	Best    session.BestScoreStore
	Runs    RunRecorder
	Audio   core.Audio
	Log     *log.Logger

	// Lobby and Player connect a remote session to the other players on
	// the same server. Both are nil for local games.
	Lobby  *lobby.Registry
	Player *lobby.Session
}

// Model is the Bubble Tea model for one duckstorm session.
type Model struct {
	game     *game.Game
	hud      *HUD
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	config   core.RuntimeConfig
	input    core.InputFrame
	held     map[core.Action]int
	quitting bool

	player      *lobby.Session
	notice      string
	noticeTicks int
}

// lobbyMsg carries an announcement from another player.
type lobbyMsg lobby.Event

// NewModel builds the game and its view.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	hud := NewHUD()
	g := game.New(opts.Config, game.Deps{
		Audio: opts.Audio,
		UI:    hud,
		Store: opts.Best,
		Log:   opts.Log,
		Seed:  cfg.Seed,
	})
	if opts.Lobby != nil && opts.Player != nil {
		g.OnRoundEnd(func(r game.Round) {
			if r.NewBest {
				opts.Lobby.Broadcast(opts.Player.ID(), lobby.Event{
					Kind:  lobby.EventNewBest,
					User:  opts.Player.User(),
					Score: r.Score,
				})
			}
		})
	}
	if opts.Runs != nil {
		logger := g.Env().Log
		g.OnRoundEnd(func(r game.Round) {
			run := storage.Run{
				Mode:     opts.Mode,
				Score:    r.Score,
				Level:    r.Level,
				Kills:    r.Kills,
				Duration: r.Duration,
			}
			if _, err := opts.Runs.SaveRun(run); err != nil {
				logger.Warn("cannot save run", "err", err)
			}
		})
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		game:   g,
		hud:    hud,
		screen: core.NewScreen(cfg.ScreenW, viewHeight(cfg.ScreenH)),
		keys:   DefaultKeyMap(),
		help:   h,
		config: cfg,
		input:  core.NewInputFrame(),
		held:   make(map[core.Action]int),
		player: opts.Player,
	}
}

// viewHeight leaves one row for the help line.
func viewHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Init enters the main menu and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Start()
	if m.player != nil {
		return tea.Batch(tickCmd(m.config.TickRate), waitForEvent(m.player))
	}
	return tickCmd(m.config.TickRate)
}

// waitForEvent blocks until the next lobby announcement.
func waitForEvent(s *lobby.Session) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-s.Events():
			return lobbyMsg(evt)
		case <-s.Done():
			return nil
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, viewHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case lobbyMsg:
		m.notice = lobby.Event(msg).Text()
		m.noticeTicks = noticeTicks
		return m, waitForEvent(m.player)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionLeft, core.ActionRight:
		delete(m.held, core.ActionLeft)
		delete(m.held, core.ActionRight)
		m.held[action] = holdTicks
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	for action, n := range m.held {
		m.input.Set(action)
		if n <= 1 {
			delete(m.held, action)
		} else {
			m.held[action] = n - 1
		}
	}

	m.game.Step(m.config.TickDuration(), m.input)
	m.input.Clear()

	if m.noticeTicks > 0 {
		m.noticeTicks--
		if m.noticeTicks == 0 {
			m.notice = ""
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	DrawGame(m.screen, m.game, m.hud)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".duckstorm", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("duckstorm_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawGame(m.screen, m.game, m.hud)
	if m.notice != "" {
		m.screen.DrawText(2, m.screen.Height()-1, " "+m.notice+" ", core.ColorBrightMagenta)
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Game returns the running session.
func (m Model) Game() *game.Game { return m.game }

// Run starts the Bubble Tea program for one local player.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

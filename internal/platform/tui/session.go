package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

// difficultySetter is implemented by games that accept a per-instance preset.
type difficultySetter interface {
	SetDifficulty(preset string)
}

type screenKind int

const (
	screenMenu screenKind = iota
	screenScores
	screenGame
)

// SessionModel manages the whole flow in one program: menu, scoreboard and
// games, returning to the menu after each.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	player     string
	difficulty string
	log        *log.Logger
	current    screenKind
	menu       MenuModel
	scores     ScoreboardModel
	game       *GameModel
	quitting   bool
}

// NewSessionModel creates a session for player. store may be nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, player, difficulty string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:      store,
		config:     cfg,
		player:     player,
		difficulty: difficulty,
		log:        logger,
		menu:       NewMenuModel(store, cfg, difficulty),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen. Child models end themselves
// with tea.Quit; the session swallows that and switches screens instead.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenScores:
		return m.updateScores(msg)
	case screenGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.current = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().GameID)
	}
	return m, cmd
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.log.Error("cannot create game", "game", id, "err", err)
		m.menu = NewMenuModel(m.store, m.config, m.difficulty)
		return m, nil
	}

	m.difficulty = m.menu.Difficulty(false)
	if ds, ok := game.(difficultySetter); ok {
		ds.SetDifficulty(m.difficulty)
	}

	gm := NewGameModel(game, m.store, m.config, m.player).WithLogger(m.log)
	m.game = &gm
	m.current = screenGame
	m.log.Info("game started", "player", m.player, "game", id, "difficulty", m.menu.Difficulty(true))
	return m, m.game.Init()
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		m.closeGame()
		return m, tea.Quit
	case m.game.BackToMenu():
		m.closeGame()
		return m.backToMenu()
	}
	return m, cmd
}

func (m *SessionModel) closeGame() {
	if c, ok := m.game.game.(registry.Closer); ok {
		if err := c.Close(); err != nil {
			m.log.Warn("closing game", "err", err)
		}
	}
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.game = nil
	m.current = screenMenu
	m.menu = NewMenuModel(m.store, m.config, m.difficulty)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current {
	case screenScores:
		return m.scores.View()
	case screenGame:
		return m.game.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the interactive menu locally.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, player, difficulty string, logger *log.Logger) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, player, difficulty, logger),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

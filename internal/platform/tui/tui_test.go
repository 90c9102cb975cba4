package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

// stubGame ends its session on the first Restart-free frame after Confirm.
type stubGame struct {
	state      core.GameState
	frames     []core.InputFrame
	difficulty string
}

func (g *stubGame) ID() string                  { return "tui_stub" }
func (g *stubGame) Title() string               { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)    { g.state = core.GameState{} }
func (g *stubGame) Render(dst *core.Screen)     { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState       { return g.state }
func (g *stubGame) SetDifficulty(preset string) { g.difficulty = preset }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	switch {
	case in.Has(core.ActionConfirm):
		g.state = core.GameState{Active: true}
	case g.state.Active:
		g.state = core.GameState{Score: 7, Food: 3, Bonus: 4, GameOver: true, Ticks: 12, Elapsed: 720 * time.Millisecond}
	}
	return core.StepResult{State: g.state}
}

var lastStub *stubGame

func init() {
	registry.Register(registry.GameInfo{ID: "tui_stub", Title: "Stub"}, func() registry.Game {
		lastStub = &stubGame{}
		return lastStub
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runes("s"), core.ActionDown, false},
		{runes("h"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runes("r"), core.ActionRestart, false},
		{runes("m"), core.ActionMute, false},
		{runes("p"), core.ActionPause, false},
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runes("x"), core.ActionNone, false},
	}
	for _, tc := range tests {
		action, quit := km.MapKey(tc.msg)
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runes("a"), MenuActionLeft},
		{runes("l"), MenuActionRight},
		{tea.KeyMsg{Type: tea.KeySpace}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runes("b"), MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("z"), MenuActionNone},
	}
	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestRenderScreenPlainCells(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(0, 1, "cd")

	if got := RenderScreen(s); got != "ab    \ncd    " {
		t.Errorf("RenderScreen() = %q", got)
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func step(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return gm
}

func TestGameModelSavesEachRunOnce(t *testing.T) {
	store := openStore(t)
	game := &stubGame{}
	m := NewGameModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, "ada")
	m.Init()

	at := time.Unix(1_700_000_000, 0)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, TickMsg(at))
	if !game.frames[0].At.Equal(at) || !game.frames[0].Has(core.ActionConfirm) {
		t.Errorf("first frame = %+v, expected Confirm stamped at the tick", game.frames[0])
	}

	for i := 1; i <= 3; i++ {
		m = step(t, m, TickMsg(at.Add(time.Duration(i)*time.Second)))
	}
	if game.frames[1].Has(core.ActionConfirm) {
		t.Error("input should be cleared after each tick")
	}

	runs, err := store.TopScores("tui_stub", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs))
	}
	r := runs[0]
	if r.Player != "ada" || r.Score != 7 || r.Food != 3 || r.Bonus != 4 || r.Ticks != 12 || r.DurationMS != 720 {
		t.Errorf("saved run = %+v", r)
	}
}

func TestGameModelBack(t *testing.T) {
	game := &stubGame{}
	m := NewGameModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10}, "")
	m.Init()

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, TickMsg(time.Unix(1, 0)))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back should be ignored while a session is active")
	}

	m = step(t, m, TickMsg(time.Unix(2, 0))) // session ends
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("BackToMenu() = %v, IsQuitting() = %v after the session", m.BackToMenu(), m.IsQuitting())
	}
}

func TestMenuDifficultyCycle(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "hard")
	if m.Difficulty(false) != "hard" {
		t.Fatalf("Difficulty() = %q, expected hard", m.Difficulty(false))
	}

	next, _ := m.Update(runes("l"))
	m = next.(MenuModel)
	if m.Difficulty(false) != "fixed" {
		t.Errorf("after right: %q, expected fixed", m.Difficulty(false))
	}
	next, _ = m.Update(runes("l"))
	m = next.(MenuModel)
	if m.Difficulty(false) != "" || m.Difficulty(true) != "config" {
		t.Errorf("after wrap: %q / %q", m.Difficulty(false), m.Difficulty(true))
	}
	next, _ = m.Update(runes("h"))
	m = next.(MenuModel)
	if m.Difficulty(false) != "fixed" {
		t.Errorf("after left: %q, expected fixed", m.Difficulty(false))
	}
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	store.SaveScore("tui_stub", 5)

	s := NewSessionModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, "ada", "easy", nil)
	for i, item := range s.menu.items {
		if item.GameID == "tui_stub" {
			s.menu.cursor = i
			if item.HighScore != 5 {
				t.Errorf("menu high score = %d, expected 5", item.HighScore)
			}
		}
	}

	update := func(msg tea.Msg) tea.Cmd {
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	update(tea.KeyMsg{Type: tea.KeyTab})
	if s.current != screenScores {
		t.Fatalf("screen = %v, expected scoreboard", s.current)
	}
	update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.current != screenMenu || s.quitting {
		t.Fatalf("screen = %v, expected menu after back", s.current)
	}

	update(tea.KeyMsg{Type: tea.KeyEnter})
	if s.current != screenGame || lastStub == nil {
		t.Fatalf("screen = %v, expected game", s.current)
	}
	if lastStub.difficulty != "easy" {
		t.Errorf("difficulty = %q, expected easy", lastStub.difficulty)
	}

	update(tea.KeyMsg{Type: tea.KeyEnter})
	update(TickMsg(time.Unix(1, 0)))
	update(TickMsg(time.Unix(2, 0)))
	update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.current != screenMenu {
		t.Fatalf("screen = %v, expected menu after the game", s.current)
	}
	if high, _ := store.HighScore("tui_stub"); high != 7 {
		t.Errorf("high score = %d, expected the stub's 7", high)
	}

	if cmd := update(runes("q")); cmd == nil || !s.quitting {
		t.Error("q in the menu should quit the session")
	}
}

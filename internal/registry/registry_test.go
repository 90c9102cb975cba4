package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/snake-arena/internal/core"
)

type stubGame struct {
	id    string
	state core.GameState
}

func (g *stubGame) ID() string               { return g.id }
func (g *stubGame) Title() string            { return strings.ToUpper(g.id) }
func (g *stubGame) Reset(core.RuntimeConfig) { g.state = core.GameState{} }
func (g *stubGame) Render(*core.Screen)      {}
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.state.Score++
	return core.StepResult{State: g.state}
}

func TestRegisterCreate(t *testing.T) {
	Register(GameInfo{ID: "zz_stub", Description: "stub"}, func() Game { return &stubGame{id: "zz_stub"} })

	info, ok := Lookup("zz_stub")
	if !ok {
		t.Fatal("Lookup() should find a registered game")
	}
	if info.Title != "zz_stub" {
		t.Errorf("Title = %q, expected the id as fallback", info.Title)
	}

	a, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	b, _ := Create("zz_stub")
	a.Step(core.NewInputFrame())
	if b.State().Score != 0 {
		t.Error("Create() should return independent instances")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "zz_dup"}, func() Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("Register() of a duplicate id should panic")
		}
	}()
	Register(GameInfo{ID: "zz_dup"}, func() Game { return &stubGame{id: "zz_dup"} })
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-game"); err == nil {
		t.Error("Create() of an unknown id should fail")
	}
	if Exists("no-such-game") {
		t.Error("Exists() = true for an unknown id")
	}
}

func TestListSorted(t *testing.T) {
	Register(GameInfo{ID: "zz_b"}, func() Game { return &stubGame{id: "zz_b"} })
	Register(GameInfo{ID: "zz_a"}, func() Game { return &stubGame{id: "zz_a"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

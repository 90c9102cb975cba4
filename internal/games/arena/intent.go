package arena

import (
	sim "github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/grid"
)

// steering lists direction actions by precedence when several arrive in one frame.
var steering = []struct {
	action core.Action
	dir    grid.Direction
}{
	{core.ActionUp, grid.Up},
	{core.ActionDown, grid.Down},
	{core.ActionRight, grid.Right},
	{core.ActionLeft, grid.Left},
}

// intentFor converts platform actions into the world's input.
func intentFor(in core.InputFrame) sim.Intent {
	var it sim.Intent
	for _, s := range steering {
		if in.Has(s.action) {
			it.Dir = s.dir
			it.Held = true
			break
		}
	}
	it.Start = in.Has(core.ActionConfirm) || in.Has(core.ActionRestart)
	return it
}

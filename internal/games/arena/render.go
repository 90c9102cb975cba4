package arena

import (
	"fmt"

	sim "github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/grid"
)

const (
	hudRows = 1
	minCols = 16
	minRows = 8
)

// Sprite is a renderable entity with its presentation.
type Sprite struct {
	sim.Renderable
	Color core.Color
	Glyph rune
}

func colorOf(k sim.Kind) core.Color {
	switch k {
	case sim.KindPlayerHead:
		return core.ColorBrightGreen
	case sim.KindPlayerBody:
		return core.ColorGreen
	case sim.KindEnemyHead:
		return core.ColorBrightRed
	case sim.KindEnemyBody:
		return core.ColorRed
	case sim.KindFood:
		return core.ColorBrightYellow
	}
	return core.ColorDefault
}

// glyphOf picks a character whose weight follows the entity's render size.
func glyphOf(r sim.Renderable) rune {
	big := r.Size.W >= 0.75
	switch {
	case r.Kind == sim.KindFood && big:
		return '●'
	case r.Kind == sim.KindFood:
		return '•'
	case big:
		return '█'
	default:
		return '▓'
	}
}

// viewport maps arena cells onto a screen rectangle. Arena y grows upward,
// screen y grows downward.
type viewport struct {
	inner  core.Rect
	arena  grid.Bounds
	aw, ah int
}

// newViewport fits the arena below the HUD, aiming for two columns per row
// so cells look square in a terminal.
func newViewport(screenW, screenH, aw, ah int) (viewport, bool) {
	availW, availH := screenW-2, screenH-hudRows-2
	if availW < minCols || availH < minRows {
		return viewport{}, false
	}

	rows := min(availH, ah)
	cols := 2 * rows * aw / ah
	if cols > availW {
		cols = availW
		rows = max(cols*ah/(2*aw), 1)
	}
	cols = max(cols, 1)

	box := core.NewRect((screenW-cols-2)/2, hudRows, cols+2, rows+2)
	return viewport{
		inner: box.Inset(1),
		arena: grid.ArenaBounds(aw, ah),
		aw:    aw,
		ah:    ah,
	}, true
}

// box returns the frame drawn around the arena.
func (v viewport) box() core.Rect {
	return core.NewRect(v.inner.X-1, v.inner.Y-1, v.inner.W+2, v.inner.H+2)
}

// project returns the screen columns [x0, x1) and row covering p.
// Positions outside the arena are not drawn.
func (v viewport) project(p grid.Position) (x0, x1, y int, ok bool) {
	if !v.arena.Contains(p) {
		return 0, 0, 0, false
	}
	x0 = v.inner.X + p.X*v.inner.W/v.aw
	x1 = max(v.inner.X+(p.X+1)*v.inner.W/v.aw, x0+1)
	y = v.inner.Y + (v.ah-1-p.Y)*v.inner.H/v.ah
	return x0, x1, y, true
}

// Render draws the arena, HUD and phase overlays.
func (g *Game) Render(dst *core.Screen) {
	if g.world == nil {
		return
	}
	vp, ok := newViewport(dst.Width(), dst.Height(), g.cfg.Arena.Width, g.cfg.Arena.Height)
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorYellow)
		return
	}

	g.renderHUD(dst)
	dst.DrawBox(vp.box(), core.ColorGray)

	phase := g.world.Phase()
	if phase == sim.PhaseGameOver && !g.world.Visible() {
		g.renderMask(dst, vp)
	} else {
		for _, s := range g.Snapshot() {
			x0, x1, y, ok := vp.project(s.Pos)
			if !ok {
				continue
			}
			for x := x0; x < x1; x++ {
				dst.SetColored(x, y, s.Glyph, s.Color)
			}
		}
	}

	switch {
	case phase == sim.PhaseMenu:
		g.renderMenu(dst, vp)
	case g.paused:
		g.renderPanel(dst, vp, core.ColorYellow, "PAUSED", "P to resume")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	s := g.State()
	left := fmt.Sprintf(" %s  Score: %d", g.Title(), s.Score)
	if g.world.Phase() != sim.PhaseMenu {
		left += fmt.Sprintf("  Length: %d", g.world.PlayerLen())
		if g.mode == ModeArena {
			left += fmt.Sprintf("  Enemies: %d", g.world.Enemies())
		}
	}
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	right := "Q quit"
	if g.audio != nil && g.audio.Muted() {
		right = "muted  " + right
	}
	dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, core.ColorGray)
}

// renderMask covers the board during the dark half of the end-of-game flash.
func (g *Game) renderMask(dst *core.Screen, vp viewport) {
	for y := vp.inner.Y; y < vp.inner.Bottom(); y++ {
		for x := vp.inner.X; x < vp.inner.Right(); x++ {
			dst.SetColored(x, y, '░', core.ColorRed)
		}
	}
}

func (g *Game) renderMenu(dst *core.Screen, vp viewport) {
	if r, ok := g.world.LastResult(); ok {
		g.renderPanel(dst, vp, core.ColorBrightYellow,
			"GAME OVER",
			fmt.Sprintf("Food %d + Bonus %d", r.Food, r.Bonus),
			fmt.Sprintf("Score: %d", r.Score),
			"ENTER or R to play again",
		)
		return
	}
	g.renderPanel(dst, vp, core.ColorBrightCyan,
		g.Title(),
		"Arrows / WASD / HJKL to steer",
		"ENTER to start",
	)
}

// renderPanel draws a boxed block of centred lines over the board.
func (g *Game) renderPanel(dst *core.Screen, vp viewport, c core.Color, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	r := vp.inner.Centered(w, h)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r, c)
	for i, l := range lines {
		x := r.X + (w-len([]rune(l)))/2
		dst.DrawTextColored(x, r.Y+1+i, l, c)
	}
}

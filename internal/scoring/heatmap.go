// Package scoring turns a session's heat-map of player head positions into a
// bonus score.
package scoring

import "github.com/vovakirdan/snake-arena/internal/grid"

const (
	// Panels is the number of side-by-side images the arena is split into.
	Panels = 2
	// Side is the edge length of one panel in cells.
	Side = 28
	// PanelCells is the flattened size of one panel.
	PanelCells = Side * Side
)

// Heatmap counts how often the player's head visited each region of the
// arena. The left half of the arena maps to panel 0, the right half to panel 1.
type Heatmap struct {
	Cells [Panels][Side][Side]float32
}

// Record adds one visit for a head at p in a w x h arena. Positions outside
// the arena are ignored.
func (h *Heatmap) Record(p grid.Position, w, hgt int) {
	half := w / Panels
	if half <= 0 || hgt <= 0 || !grid.ArenaBounds(half*Panels, hgt).Contains(p) {
		return
	}
	panel := p.X / half
	col := (p.X % half) * Side / half
	row := p.Y * Side / hgt
	h.Cells[panel][row][col]++
}

// Total returns the number of recorded visits.
func (h *Heatmap) Total() float32 {
	var sum float32
	for p := range h.Cells {
		for r := range h.Cells[p] {
			for _, v := range h.Cells[p][r] {
				sum += v
			}
		}
	}
	return sum
}

// Reset clears every cell.
func (h *Heatmap) Reset() {
	*h = Heatmap{}
}

// Flatten returns panel i as row-major values scaled to [0, 1] by the
// panel's peak. An empty panel flattens to zeros.
func (h *Heatmap) Flatten(i int) []float64 {
	out := make([]float64, PanelCells)
	var peak float32
	for r := range h.Cells[i] {
		for _, v := range h.Cells[i][r] {
			peak = max(peak, v)
		}
	}
	if peak == 0 {
		return out
	}
	for r := range h.Cells[i] {
		for c, v := range h.Cells[i][r] {
			out[r*Side+c] = float64(v / peak)
		}
	}
	return out
}

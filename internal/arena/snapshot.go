package arena

import (
	"sort"

	"github.com/vovakirdan/snake-arena/internal/grid"
)

// Renderable is everything a presentation layer needs to draw one entity.
type Renderable struct {
	Kind Kind
	Pos  grid.Position
	Size Size
}

// Snapshot returns every renderable entity ordered for drawing: food first,
// then bodies, then heads.
func (w *World) Snapshot() []Renderable {
	var out []Renderable

	fq := w.renderFoodFilt.Query()
	for fq.Next() {
		p, sz, _ := fq.Get()
		out = append(out, Renderable{Kind: KindFood, Pos: *p, Size: *sz})
	}

	sq := w.segmentFilter.Query()
	for sq.Next() {
		p, sz, seg := sq.Get()
		out = append(out, Renderable{Kind: seg.Kind, Pos: *p, Size: *sz})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

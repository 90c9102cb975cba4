package grid

// Bounds is a half-open rectangle [MinX, MaxX) x [MinY, MaxY).
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
}

// ArenaBounds returns the area the player must stay inside.
func ArenaBounds(w, h int) Bounds {
	return Bounds{MinX: 0, MinY: 0, MaxX: w, MaxY: h}
}

// ExtendedBounds returns the larger area enemies may roam before they are
// culled: half an arena of margin on every side.
func ExtendedBounds(w, h int) Bounds {
	return Bounds{MinX: -w / 2, MinY: -h / 2, MaxX: w + w/2, MaxY: h + h/2}
}

// Contains reports whether p lies inside the bounds.
func (b Bounds) Contains(p Position) bool {
	return p.X >= b.MinX && p.X < b.MaxX && p.Y >= b.MinY && p.Y < b.MaxY
}

// Width returns the horizontal extent.
func (b Bounds) Width() int {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent.
func (b Bounds) Height() int {
	return b.MaxY - b.MinY
}

// Quadrant identifies one quarter of the arena.
type Quadrant int

const (
	QuadrantNone Quadrant = iota // outside the arena
	QuadrantBottomLeft
	QuadrantBottomRight
	QuadrantTopLeft
	QuadrantTopRight
)

// QuadrantOf returns the arena quadrant containing p, or QuadrantNone when p
// is outside the w x h arena.
func QuadrantOf(p Position, w, h int) Quadrant {
	if !ArenaBounds(w, h).Contains(p) {
		return QuadrantNone
	}
	right := p.X >= w/2
	top := p.Y >= h/2
	switch {
	case top && right:
		return QuadrantTopRight
	case top:
		return QuadrantTopLeft
	case right:
		return QuadrantBottomRight
	default:
		return QuadrantBottomLeft
	}
}

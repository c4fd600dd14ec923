// Package arena reports overlaps between circular bodies in the 800x600
// play field. It knows nothing about damage; callers decide what an
// overlap means.
package arena

import (
	"github.com/vovakirdan/park-guardian/internal/core"
)

// Bounds is the play field, with the origin at the top-left corner.
type Bounds struct {
	W, H float64
}

// Default is the standard arena size.
var Default = Bounds{W: 800, H: 600}

// Clamp keeps a body of the given radius fully inside the field.
func (b Bounds) Clamp(pos core.Vec, radius float64) core.Vec {
	return core.Vec{
		X: core.ClampF(pos.X, radius, b.W-radius),
		Y: core.ClampF(pos.Y, radius, b.H-radius),
	}
}

// Contains reports whether a point lies inside the field.
func (b Bounds) Contains(pos core.Vec) bool {
	return pos.X >= 0 && pos.X <= b.W && pos.Y >= 0 && pos.Y <= b.H
}

// Circle is a body for overlap tests. ID is chosen by the caller.
type Circle struct {
	ID     int
	Pos    core.Vec
	Radius float64
}

// Overlaps reports whether two circles touch or intersect.
func Overlaps(a, b Circle) bool {
	r := a.Radius + b.Radius
	d := a.Pos.Sub(b.Pos)
	return d.X*d.X+d.Y*d.Y <= r*r
}

// Pair is one overlap between an element of the first and second set.
type Pair struct {
	A, B int // IDs
}

// Pairs returns every overlapping (a, b) combination, ordered by the
// position of a in as and then b in bs.
func Pairs(as, bs []Circle) []Pair {
	var out []Pair
	for _, a := range as {
		for _, b := range bs {
			if Overlaps(a, b) {
				out = append(out, Pair{A: a.ID, B: b.ID})
			}
		}
	}
	return out
}

// Grid maps arena coordinates to terminal cells.
type Grid struct {
	Bounds
	Cols, Rows int
}

// ToCell converts an arena point to a cell.
func (g Grid) ToCell(p core.Vec) (int, int) {
	if g.W <= 0 || g.H <= 0 || g.Cols <= 0 || g.Rows <= 0 {
		return 0, 0
	}
	x := int(p.X / g.W * float64(g.Cols))
	y := int(p.Y / g.H * float64(g.Rows))
	return core.Clamp(x, 0, g.Cols-1), core.Clamp(y, 0, g.Rows-1)
}

// ToWorld converts a cell to the arena point at its center.
func (g Grid) ToWorld(x, y int) core.Vec {
	if g.Cols <= 0 || g.Rows <= 0 {
		return core.Vec{}
	}
	return core.Vec{
		X: (float64(x) + 0.5) * g.W / float64(g.Cols),
		Y: (float64(y) + 0.5) * g.H / float64(g.Rows),
	}
}

package placement

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NeighborCellRadius is the cell search radius for separation checks. With
// cells of minDistance/√3, two points closer than minDistance differ by less
// than √3 cells per axis, so at most 2 cell indices.
const NeighborCellRadius = 2

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y, Z int
}

// Grid is a uniform 3D grid over a Bounds volume holding at most one point per
// cell. Cells live in a map keyed by coordinate, so memory scales with the
// number of accepted points rather than with the volume, and occupancy is map
// presence (a point at the origin is an ordinary occupant).
type Grid struct {
	bounds   Bounds
	cellSize float64
	dims     Cell
	cells    map[Cell]r3.Vec
}

// NewGrid builds an empty grid with cell size minDistance/√3.
func NewGrid(bounds Bounds, minDistance float64) (*Grid, error) {
	if !(minDistance > 0) {
		return nil, fmt.Errorf("%w: min distance must be positive, got %v", ErrInvalidParams, minDistance)
	}
	if _, err := NewBounds(bounds.Size); err != nil {
		return nil, err
	}
	cellSize := minDistance / math.Sqrt(3)
	// floor+1 so a point exactly on the +half face still has a cell.
	dims := Cell{
		X: int(math.Floor(bounds.Size.X/cellSize)) + 1,
		Y: int(math.Floor(bounds.Size.Y/cellSize)) + 1,
		Z: int(math.Floor(bounds.Size.Z/cellSize)) + 1,
	}
	return &Grid{
		bounds:   bounds,
		cellSize: cellSize,
		dims:     dims,
		cells:    make(map[Cell]r3.Vec),
	}, nil
}

// CellSize returns the edge length of one cell.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Dims returns the number of cells per axis.
func (g *Grid) Dims() Cell { return g.dims }

// Len returns the number of occupied cells.
func (g *Grid) Len() int { return len(g.cells) }

// rawCell computes floor((p+half)/cellSize) per axis without range checks.
func (g *Grid) rawCell(p r3.Vec) Cell {
	h := g.bounds.Half()
	return Cell{
		X: int(math.Floor((p.X + h.X) / g.cellSize)),
		Y: int(math.Floor((p.Y + h.Y) / g.cellSize)),
		Z: int(math.Floor((p.Z + h.Z) / g.cellSize)),
	}
}

func (g *Grid) inRange(c Cell) bool {
	return c.X >= 0 && c.X < g.dims.X &&
		c.Y >= 0 && c.Y < g.dims.Y &&
		c.Z >= 0 && c.Z < g.dims.Z
}

// CellOf returns the cell containing p. ok is false when p is outside the
// bounds or its index falls outside the grid.
func (g *Grid) CellOf(p r3.Vec) (Cell, bool) {
	if !g.bounds.Contains(p) {
		return Cell{}, false
	}
	c := g.rawCell(p)
	if !g.inRange(c) {
		return Cell{}, false
	}
	return c, true
}

// Occupant returns the point stored in c, if any.
func (g *Grid) Occupant(c Cell) (r3.Vec, bool) {
	p, ok := g.cells[c]
	return p, ok
}

// Insert stores p in its cell. The first writer wins: an occupied cell is
// left untouched and ErrCellOccupied is returned.
func (g *Grid) Insert(p r3.Vec) error {
	c, ok := g.CellOf(p)
	if !ok {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	if _, taken := g.cells[c]; taken {
		return fmt.Errorf("%w: cell %v", ErrCellOccupied, c)
	}
	g.cells[c] = p
	return nil
}

// Neighbors returns the occupants of every cell within cellRadius (Chebyshev
// distance in cells) of the cell containing p, including p's own cell.
func (g *Grid) Neighbors(p r3.Vec, cellRadius int) []r3.Vec {
	var out []r3.Vec
	g.eachNeighbor(p, cellRadius, func(q r3.Vec) bool {
		out = append(out, q)
		return true
	})
	return out
}

// HasNeighborCloserThan reports whether any stored point lies strictly closer
// than dist to p, scanning NeighborCellRadius cells around p. dist must not
// exceed the minDistance the grid was built with.
func (g *Grid) HasNeighborCloserThan(p r3.Vec, dist float64) bool {
	d2 := dist * dist
	found := false
	g.eachNeighbor(p, NeighborCellRadius, func(q r3.Vec) bool {
		if r3.Norm2(r3.Sub(q, p)) < d2 {
			found = true
			return false
		}
		return true
	})
	return found
}

// eachNeighbor visits occupants around p until fn returns false.
func (g *Grid) eachNeighbor(p r3.Vec, cellRadius int, fn func(r3.Vec) bool) {
	base := g.rawCell(p)
	for dx := -cellRadius; dx <= cellRadius; dx++ {
		for dy := -cellRadius; dy <= cellRadius; dy++ {
			for dz := -cellRadius; dz <= cellRadius; dz++ {
				c := Cell{X: base.X + dx, Y: base.Y + dy, Z: base.Z + dz}
				if !g.inRange(c) {
					continue
				}
				q, ok := g.cells[c]
				if !ok {
					continue
				}
				if !fn(q) {
					return
				}
			}
		}
	}
}

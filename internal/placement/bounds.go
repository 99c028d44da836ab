package placement

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// Bounds is an axis-aligned generation volume centred at the origin. Size is
// the full extent per axis; the valid region is [-Size/2, +Size/2].
type Bounds struct {
	Size r3.Vec
}

// NewBounds validates that every component of size is positive.
func NewBounds(size r3.Vec) (Bounds, error) {
	if !(size.X > 0 && size.Y > 0 && size.Z > 0) {
		return Bounds{}, fmt.Errorf("%w: bounds must be positive on every axis, got %v", ErrInvalidParams, size)
	}
	return Bounds{Size: size}, nil
}

// Half returns the half-extent per axis.
func (b Bounds) Half() r3.Vec {
	return r3.Scale(0.5, b.Size)
}

// Contains reports whether p lies inside the closed box.
func (b Bounds) Contains(p r3.Vec) bool {
	h := b.Half()
	return p.X >= -h.X && p.X <= h.X &&
		p.Y >= -h.Y && p.Y <= h.Y &&
		p.Z >= -h.Z && p.Z <= h.Z
}

// Sample draws a point uniformly inside the box.
func (b Bounds) Sample(rng *rand.Rand) r3.Vec {
	h := b.Half()
	return r3.Vec{
		X: (rng.Float64()*2 - 1) * h.X,
		Y: (rng.Float64()*2 - 1) * h.Y,
		Z: (rng.Float64()*2 - 1) * h.Z,
	}
}

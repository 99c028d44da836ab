package placement

import (
	"fmt"
	"math"

	"github.com/banshee-data/fisheye-placement/internal/fisheye"
	"gonum.org/v1/gonum/spatial/r3"
)

// Projector is the camera behaviour the oracle needs. *fisheye.Camera
// implements it.
type Projector interface {
	Project(world r3.Vec) (fisheye.Viewport, bool)
	Right() r3.Vec
	Up() r3.Vec
}

// Projectors adapts a camera slice for Sampler and Oracle.
func Projectors(cams []*fisheye.Camera) []Projector {
	out := make([]Projector, len(cams))
	for i, c := range cams {
		out[i] = c
	}
	return out
}

// Oracle tests whether an object of a given radius is fully on-screen for a
// set of cameras.
type Oracle struct {
	Padding float64
}

// NewOracle validates padding ∈ [0, 0.5).
func NewOracle(padding float64) (Oracle, error) {
	if !(padding >= 0 && padding < 0.5) {
		return Oracle{}, fmt.Errorf("%w: viewport padding must be in [0, 0.5), got %v", ErrInvalidParams, padding)
	}
	return Oracle{Padding: padding}, nil
}

// OffsetPattern returns the nine sample points of an object of the given
// radius centred at p, laid out in the plane spanned by right and up: centre,
// ±right, ±up and the four diagonals (normalized before scaling).
func OffsetPattern(p, right, up r3.Vec, radius float64) [9]r3.Vec {
	diag := func(sr, su float64) r3.Vec {
		d := r3.Add(r3.Scale(sr, right), r3.Scale(su, up))
		if n := r3.Norm(d); n > 0 {
			d = r3.Scale(1/n, d)
		}
		return r3.Add(p, r3.Scale(radius, d))
	}
	return [9]r3.Vec{
		p,
		r3.Add(p, r3.Scale(radius, right)),
		r3.Sub(p, r3.Scale(radius, right)),
		r3.Add(p, r3.Scale(radius, up)),
		r3.Sub(p, r3.Scale(radius, up)),
		diag(1, 1),
		diag(1, -1),
		diag(-1, 1),
		diag(-1, -1),
	}
}

// InsideViewport reports whether v lies in [padding, 1-padding] on both axes.
// The interval is closed: a coordinate exactly on the padding edge counts as
// inside. NaN never does.
func (o Oracle) InsideViewport(v fisheye.Viewport) bool {
	lo, hi := o.Padding, 1-o.Padding
	return v.X >= lo && v.X <= hi && v.Y >= lo && v.Y <= hi && !math.IsNaN(v.X) && !math.IsNaN(v.Y)
}

// VisibleTo reports whether all nine pattern points of the object at p
// project inside the padded viewport of cam. A point behind the camera fails.
func (o Oracle) VisibleTo(cam Projector, p r3.Vec, radius float64) bool {
	for _, q := range OffsetPattern(p, cam.Right(), cam.Up(), radius) {
		v, ok := cam.Project(q)
		if !ok || !o.InsideViewport(v) {
			return false
		}
	}
	return true
}

// FullyVisible reports whether the object at p is visible to every camera.
// An empty camera set rejects everything.
func (o Oracle) FullyVisible(p r3.Vec, radius float64, cams []Projector) bool {
	if len(cams) == 0 {
		return false
	}
	for _, cam := range cams {
		if !o.VisibleTo(cam, p, radius) {
			return false
		}
	}
	return true
}

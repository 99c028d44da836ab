// Package testutil provides shared camera fixtures and placement assertions
// for tests across packages.
package testutil

import (
	"sort"
	"testing"

	"github.com/banshee-data/fisheye-placement/internal/fisheye"
	"gonum.org/v1/gonum/spatial/r3"
)

// ScenarioLens and ScenarioFrustum describe the wide-angle reference rig.
var (
	ScenarioLens    = fisheye.Intrinsics{Xi: 0.3, Lambda: 0.3, Alpha: 0.4}
	ScenarioFrustum = fisheye.Frustum{FovYDeg: 170, Aspect: 1, Near: 0.01, Far: 100}
)

// NewLookAtCamera builds a camera at position facing target with +Y up.
func NewLookAtCamera(t testing.TB, name string, position, target r3.Vec, frustum fisheye.Frustum, lens fisheye.Intrinsics) *fisheye.Camera {
	t.Helper()
	pose, err := fisheye.LookAt(position, target, r3.Vec{Y: 1})
	if err != nil {
		t.Fatalf("look-at pose for %s: %v", name, err)
	}
	cam, err := fisheye.NewCamera(name, pose, frustum, lens)
	if err != nil {
		t.Fatalf("camera %s: %v", name, err)
	}
	return cam
}

// ScenarioCamera is the reference rig camera: at (-0.3, 0.3, -0.3) looking at
// the origin with a 170° field of view.
func ScenarioCamera(t testing.TB) *fisheye.Camera {
	t.Helper()
	return NewLookAtCamera(t, "scenario", r3.Vec{X: -0.3, Y: 0.3, Z: -0.3}, r3.Vec{}, ScenarioFrustum, ScenarioLens)
}

// OverheadCamera looks straight down the -Y axis from height h above the
// origin, so a cube of half-extent well below h is fully in view.
func OverheadCamera(t testing.TB, h float64) *fisheye.Camera {
	t.Helper()
	pose, err := fisheye.LookAt(r3.Vec{Y: h}, r3.Vec{}, r3.Vec{Z: -1})
	if err != nil {
		t.Fatalf("overhead pose: %v", err)
	}
	cam, err := fisheye.NewCamera("overhead", pose, ScenarioFrustum, ScenarioLens)
	if err != nil {
		t.Fatalf("overhead camera: %v", err)
	}
	return cam
}

// ClosestPair returns the smallest pairwise distance among points (and the
// indices involved), or -1 when there are fewer than two points. Points are
// swept in X order, so it stays fast for large sequences.
func ClosestPair(points []r3.Vec) (dist float64, i, j int) {
	if len(points) < 2 {
		return -1, -1, -1
	}
	order := make([]int, len(points))
	for k := range order {
		order[k] = k
	}
	sort.Slice(order, func(a, b int) bool { return points[order[a]].X < points[order[b]].X })

	best := -1.0
	for a := 0; a < len(order); a++ {
		p := points[order[a]]
		for b := a + 1; b < len(order); b++ {
			q := points[order[b]]
			if best >= 0 && q.X-p.X >= best {
				break
			}
			if d := r3.Norm(r3.Sub(p, q)); best < 0 || d < best {
				best, i, j = d, order[a], order[b]
			}
		}
	}
	return best, i, j
}

// AssertMinSeparation fails t if any two points are closer than minDist.
func AssertMinSeparation(t testing.TB, points []r3.Vec, minDist float64) {
	t.Helper()
	d, i, j := ClosestPair(points)
	if d >= 0 && d < minDist {
		t.Errorf("points %d %v and %d %v are %.6f apart, want >= %.6f", i, points[i], j, points[j], d, minDist)
	}
}

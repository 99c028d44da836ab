package fisheye

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// undistortIterations bounds the bisection over θ; 64 halvings of
	// [0, π/2] reach float64 resolution.
	undistortIterations = 64
	// ndcEpsilon treats smaller distorted radii as the optical axis.
	ndcEpsilon = 1e-15
)

// Undistort is the inverse of the lens part of Project: given a distorted
// viewport coordinate it returns the pinhole viewport coordinate of the same
// ray. A render pass uses it to look up which undistorted pixel lands on each
// output pixel. ok is false outside the image circle (no ray in front of the
// camera maps there).
//
// Near the optical axis Project pins the factor to 1, so two pinhole radii can
// map to the same distorted radius there. Undistort prefers the distorted
// branch and falls back to the identity. rDist rises monotonically up to
// Intrinsics.PeakAngle; rays beyond it fold back inside the image circle and
// Undistort returns the inner preimage, the one at or below the peak.
func (c *Camera) Undistort(v Viewport) (Viewport, bool) {
	dx := (v.X - 0.5) * 2
	dy := (v.Y - 0.5) * 2
	rd := math.Hypot(dx, dy)
	if rd < ndcEpsilon {
		return v, true
	}
	ux, uy := dx/rd, dy/rd

	// Pinhole NDC radius r along (ux, uy) corresponds to tanθ = r·m.
	tanHalf := c.frustum.TanHalfFovY()
	m := math.Hypot(ux*c.frustum.Aspect*tanHalf, uy*tanHalf)

	// Distorted NDC radius is rDist(θ)/m on the distorted branch.
	target := rd * m
	if target > c.lens.DistortedRadius(c.peak) {
		return Viewport{}, false
	}

	// rDist(θ) < tanθ for d > 0, so anything at or below rDist at the floor
	// angle can only come from the identity branch.
	lo := math.Atan(UndistortedRadiusFloor)
	if target <= c.lens.DistortedRadius(lo) {
		return v, true
	}
	hi := c.peak
	for i := 0; i < undistortIterations; i++ {
		mid := 0.5 * (lo + hi)
		if c.lens.DistortedRadius(mid) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	r := math.Tan(0.5*(lo+hi)) / m
	return Viewport{X: ux*r*0.5 + 0.5, Y: uy*r*0.5 + 0.5}, true
}

// Unproject returns the unit world-space direction of the ray that Project
// maps to v.
func (c *Camera) Unproject(v Viewport) (r3.Vec, bool) {
	lin, ok := c.Undistort(v)
	if !ok {
		return r3.Vec{}, false
	}
	tanHalf := c.frustum.TanHalfFovY()
	cam := r3.Vec{
		X: (lin.X - 0.5) * 2 * c.frustum.Aspect * tanHalf,
		Y: (lin.Y - 0.5) * 2 * tanHalf,
		Z: -1,
	}
	return r3.Unit(c.pose.ToWorldDirection(cam)), true
}

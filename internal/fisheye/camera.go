package fisheye

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Viewport is a normalized image coordinate; the visible image spans [0,1]².
type Viewport struct {
	X, Y float64
}

// Camera is an immutable fisheye camera. Build it with NewCamera.
type Camera struct {
	name     string
	pose     Pose
	frustum  Frustum
	lens     Intrinsics
	viewProj [16]float64 // row-major projection·view
	peak     float64     // lens.PeakAngle, cached for Undistort
}

// NewCamera validates its inputs and precomputes the view-projection matrix.
// Degenerate intrinsics fail here rather than surfacing as NaN in Project.
func NewCamera(name string, pose Pose, frustum Frustum, lens Intrinsics) (*Camera, error) {
	if err := lens.Validate(); err != nil {
		return nil, fmt.Errorf("camera %q: %w", name, err)
	}
	if err := pose.Validate(); err != nil {
		return nil, fmt.Errorf("camera %q: %w", name, err)
	}
	if err := frustum.Validate(); err != nil {
		return nil, fmt.Errorf("camera %q: %w", name, err)
	}

	var vp mat.Dense
	vp.Mul(frustum.projectionMatrix(), pose.viewMatrix())

	c := &Camera{name: name, pose: pose, frustum: frustum, lens: lens, peak: lens.PeakAngle()}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			c.viewProj[i*4+j] = vp.At(i, j)
		}
	}
	return c, nil
}

// MustNewCamera is NewCamera that panics on error, intended for tests and
// fixed rigs.
func MustNewCamera(name string, pose Pose, frustum Frustum, lens Intrinsics) *Camera {
	c, err := NewCamera(name, pose, frustum, lens)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Camera) Name() string           { return c.name }
func (c *Camera) Pose() Pose             { return c.pose }
func (c *Camera) Frustum() Frustum       { return c.frustum }
func (c *Camera) Intrinsics() Intrinsics { return c.lens }

// Right is the camera's world-space right axis.
func (c *Camera) Right() r3.Vec { return c.pose.Right }

// Up is the camera's world-space up axis.
func (c *Camera) Up() r3.Vec { return c.pose.Up }

// IncidenceAngle returns θ, the angle between the optical axis and the ray to
// world, and whether the point is in front of the camera.
func (c *Camera) IncidenceAngle(world r3.Vec) (float64, bool) {
	p := c.pose.ToCamera(world)
	if p.Z >= 0 {
		return 0, false
	}
	return math.Atan2(math.Hypot(p.X, p.Y), -p.Z), true
}

// Project maps a world point to distorted viewport coordinates. ok is false
// when the point is at or behind the camera plane; the returned Viewport is
// then meaningless.
//
// The distortion factor depends only on θ and the intrinsics and is applied
// as a multiplier to the pinhole NDC, so lens math stays independent of the
// field of view and clip planes.
func (c *Camera) Project(world r3.Vec) (Viewport, bool) {
	theta, ok := c.IncidenceAngle(world)
	if !ok {
		return Viewport{}, false
	}
	scale := c.lens.ScaleFactor(theta)

	m := &c.viewProj
	x := m[0]*world.X + m[1]*world.Y + m[2]*world.Z + m[3]
	y := m[4]*world.X + m[5]*world.Y + m[6]*world.Z + m[7]
	w := m[12]*world.X + m[13]*world.Y + m[14]*world.Z + m[15]

	ndcX := x / w * scale
	ndcY := y / w * scale
	return Viewport{X: ndcX*0.5 + 0.5, Y: ndcY*0.5 + 0.5}, true
}

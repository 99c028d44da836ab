package fisheye

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// BasisTolerance bounds the deviation from unit length, orthogonality and
// det = 1 accepted by Pose.Validate.
const BasisTolerance = 0.01

// Pose is a camera's world placement: position and an orthonormal
// right/up/forward basis. Right × Up = -Forward (right-handed camera space
// looking down -Z).
type Pose struct {
	Position r3.Vec
	Right    r3.Vec
	Up       r3.Vec
	Forward  r3.Vec
}

// LookAt builds a pose at position facing target. worldUp fixes the roll and
// must not be parallel to the viewing direction.
func LookAt(position, target, worldUp r3.Vec) (Pose, error) {
	dir := r3.Sub(target, position)
	if r3.Norm(dir) == 0 {
		return Pose{}, fmt.Errorf("%w: position and target coincide", ErrInvalidPose)
	}
	forward := r3.Unit(dir)
	right := r3.Cross(forward, worldUp)
	if r3.Norm(right) < 1e-9 {
		return Pose{}, fmt.Errorf("%w: world up %v is parallel to view direction", ErrInvalidPose, worldUp)
	}
	right = r3.Unit(right)
	up := r3.Cross(right, forward)
	return Pose{Position: position, Right: right, Up: up, Forward: forward}, nil
}

// Validate checks that the basis is orthonormal and right-handed.
func (p Pose) Validate() error {
	for _, axis := range []struct {
		name string
		v    r3.Vec
	}{{"right", p.Right}, {"up", p.Up}, {"forward", p.Forward}} {
		if math.Abs(r3.Norm(axis.v)-1) > BasisTolerance {
			return fmt.Errorf("%w: %s axis not unit length (|v|=%.4f)", ErrInvalidPose, axis.name, r3.Norm(axis.v))
		}
	}
	if math.Abs(r3.Dot(p.Right, p.Up)) > BasisTolerance ||
		math.Abs(r3.Dot(p.Right, p.Forward)) > BasisTolerance ||
		math.Abs(r3.Dot(p.Up, p.Forward)) > BasisTolerance {
		return fmt.Errorf("%w: basis is not orthogonal", ErrInvalidPose)
	}
	// det[right, up, -forward] must be +1 (proper rotation, not reflection)
	det := -r3.Dot(r3.Cross(p.Right, p.Up), p.Forward)
	if math.Abs(det-1) > BasisTolerance {
		return fmt.Errorf("%w: basis determinant %.4f, want 1", ErrInvalidPose, det)
	}
	return nil
}

// ToCamera maps a world point into camera space.
func (p Pose) ToCamera(world r3.Vec) r3.Vec {
	d := r3.Sub(world, p.Position)
	return r3.Vec{
		X: r3.Dot(d, p.Right),
		Y: r3.Dot(d, p.Up),
		Z: -r3.Dot(d, p.Forward),
	}
}

// ToWorldDirection maps a camera-space direction back to world space.
func (p Pose) ToWorldDirection(cam r3.Vec) r3.Vec {
	return r3.Add(r3.Add(r3.Scale(cam.X, p.Right), r3.Scale(cam.Y, p.Up)), r3.Scale(-cam.Z, p.Forward))
}

// viewMatrix returns the 4x4 world-to-camera transform.
func (p Pose) viewMatrix() *mat.Dense {
	back := r3.Scale(-1, p.Forward)
	return mat.NewDense(4, 4, []float64{
		p.Right.X, p.Right.Y, p.Right.Z, -r3.Dot(p.Right, p.Position),
		p.Up.X, p.Up.Y, p.Up.Z, -r3.Dot(p.Up, p.Position),
		back.X, back.Y, back.Z, -r3.Dot(back, p.Position),
		0, 0, 0, 1,
	})
}

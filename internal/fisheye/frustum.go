package fisheye

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Frustum is the linear (pinhole) part of a camera: symmetric perspective
// with a vertical field of view.
type Frustum struct {
	FovYDeg float64 `json:"fov_y_deg"`
	Aspect  float64 `json:"aspect"`
	Near    float64 `json:"near"`
	Far     float64 `json:"far"`
}

// Validate checks 0 < fov < 180, aspect > 0 and 0 < near < far.
func (f Frustum) Validate() error {
	if !(f.FovYDeg > 0 && f.FovYDeg < 180) {
		return fmt.Errorf("%w: fov_y_deg must be in (0, 180), got %v", ErrInvalidFrustum, f.FovYDeg)
	}
	if !(f.Aspect > 0) {
		return fmt.Errorf("%w: aspect must be positive, got %v", ErrInvalidFrustum, f.Aspect)
	}
	if !(f.Near > 0) || !(f.Far > f.Near) {
		return fmt.Errorf("%w: need 0 < near < far, got near=%v far=%v", ErrInvalidFrustum, f.Near, f.Far)
	}
	return nil
}

// TanHalfFovY returns tan(fovY/2).
func (f Frustum) TanHalfFovY() float64 {
	return math.Tan(f.FovYDeg * math.Pi / 360.0)
}

// projectionMatrix returns the OpenGL-style perspective matrix.
func (f Frustum) projectionMatrix() *mat.Dense {
	focal := 1 / f.TanHalfFovY()
	nf := f.Near - f.Far
	return mat.NewDense(4, 4, []float64{
		focal / f.Aspect, 0, 0, 0,
		0, focal, 0, 0,
		0, 0, (f.Far + f.Near) / nf, 2 * f.Far * f.Near / nf,
		0, 0, -1, 0,
	})
}

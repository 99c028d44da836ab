package fisheye

import (
	"fmt"
	"math"
)

// UndistortedRadiusFloor is the pinhole radius (tanθ) below which the
// distortion factor is pinned to 1, removing the 0/0 at the optical axis.
const UndistortedRadiusFloor = 1e-4

// Intrinsics are the three shift parameters of the fisheye model.
type Intrinsics struct {
	Xi     float64 `json:"xi"`     // first spherical shift, |ξ| < 1
	Lambda float64 `json:"lambda"` // second spherical shift, |λ| < 1
	Alpha  float64 `json:"alpha"`  // pinhole shift, 0 < α < 1
}

// Validate checks |ξ| < 1, |λ| < 1 and 0 < α < 1. At α = 1 the displacement
// α/(1-α) diverges.
func (in Intrinsics) Validate() error {
	switch {
	case math.IsNaN(in.Xi) || math.Abs(in.Xi) >= 1:
		return fmt.Errorf("%w: xi must be in (-1, 1), got %v", ErrDegenerateIntrinsics, in.Xi)
	case math.IsNaN(in.Lambda) || math.Abs(in.Lambda) >= 1:
		return fmt.Errorf("%w: lambda must be in (-1, 1), got %v", ErrDegenerateIntrinsics, in.Lambda)
	case math.IsNaN(in.Alpha) || in.Alpha <= 0 || in.Alpha >= 1:
		return fmt.Errorf("%w: alpha must be in (0, 1), got %v", ErrDegenerateIntrinsics, in.Alpha)
	}
	return nil
}

// Displacement returns d = α/(1-α).
func (in Intrinsics) Displacement() float64 {
	return in.Alpha / (1 - in.Alpha)
}

// shift evaluates s·cosθ + sqrt(1 - s²sin²θ). The radicand stays positive
// for |s| < 1.
func shift(s, sinT, cosT float64) float64 {
	return s*cosT + math.Sqrt(1-s*s*sinT*sinT)
}

// DistortedRadius returns the image-plane radius of a ray at incidence angle
// theta (radians):
//
//	rDist = t2·t3·sinθ / (t2·t3·cosθ + d)
func (in Intrinsics) DistortedRadius(theta float64) float64 {
	sinT, cosT := math.Sincos(theta)
	t23 := shift(in.Xi, sinT, cosT) * shift(in.Lambda, sinT, cosT)
	return t23 * sinT / (t23*cosT + in.Displacement())
}

const (
	// peakScanSteps is the coarse grid used to bracket the peak of rDist.
	peakScanSteps = 512
	// peakRefineIterations of golden-section search shrink the bracket
	// below float64 resolution.
	peakRefineIterations = 100
)

// PeakAngle returns the incidence angle in (0, π/2] at which DistortedRadius
// is largest. rDist rises from the optical axis up to this angle; for strong
// shifts it turns over before 90° and rays further out fold back onto radii
// already used.
func (in Intrinsics) PeakAngle() float64 {
	step := (math.Pi / 2) / peakScanSteps
	best, bestR := 1, in.DistortedRadius(step)
	for i := 2; i <= peakScanSteps; i++ {
		if r := in.DistortedRadius(float64(i) * step); r > bestR {
			best, bestR = i, r
		}
	}
	// Still rising at 90°: the rim itself is the peak.
	if best == peakScanSteps && in.DistortedRadius(math.Pi/2) >= in.DistortedRadius(math.Pi/2-1e-7) {
		return math.Pi / 2
	}

	lo := float64(best-1) * step
	hi := math.Min(float64(best+1)*step, math.Pi/2)
	invPhi := (math.Sqrt(5) - 1) / 2
	a := hi - invPhi*(hi-lo)
	b := lo + invPhi*(hi-lo)
	ra, rb := in.DistortedRadius(a), in.DistortedRadius(b)
	for i := 0; i < peakRefineIterations && hi-lo > 1e-15; i++ {
		if ra < rb {
			lo, a, ra = a, b, rb
			b = lo + invPhi*(hi-lo)
			rb = in.DistortedRadius(b)
		} else {
			hi, b, rb = b, a, ra
			a = hi - invPhi*(hi-lo)
			ra = in.DistortedRadius(a)
		}
	}
	return 0.5 * (lo + hi)
}

// MaxDistortedRadius is the distorted radius at PeakAngle, the rim of the
// image circle.
func (in Intrinsics) MaxDistortedRadius() float64 {
	return in.DistortedRadius(in.PeakAngle())
}

// ScaleFactor is the multiplicative correction applied to the pinhole
// projection: rDist/tanθ, or 1 when tanθ is at or below
// UndistortedRadiusFloor.
func (in Intrinsics) ScaleFactor(theta float64) float64 {
	rUndist := math.Tan(theta)
	if rUndist <= UndistortedRadiusFloor {
		return 1.0
	}
	return in.DistortedRadius(theta) / rUndist
}

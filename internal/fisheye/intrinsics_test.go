package fisheye

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntrinsics_Validate(t *testing.T) {
	tests := []struct {
		name    string
		lens    Intrinsics
		wantErr bool
	}{
		{"typical", Intrinsics{Xi: 0.3, Lambda: 0.3, Alpha: 0.4}, false},
		{"negative shifts", Intrinsics{Xi: -0.9, Lambda: -0.5, Alpha: 0.1}, false},
		{"xi at one", Intrinsics{Xi: 1, Lambda: 0.3, Alpha: 0.4}, true},
		{"lambda below minus one", Intrinsics{Xi: 0.3, Lambda: -1.2, Alpha: 0.4}, true},
		{"alpha at one", Intrinsics{Xi: 0.3, Lambda: 0.3, Alpha: 1}, true},
		{"alpha zero", Intrinsics{Xi: 0.3, Lambda: 0.3, Alpha: 0}, true},
		{"alpha NaN", Intrinsics{Xi: 0.3, Lambda: 0.3, Alpha: math.NaN()}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lens.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrDegenerateIntrinsics), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIntrinsics_DistortedRadius_HalfAngleCase(t *testing.T) {
	// ξ = λ = 0, α = 0.5 ⇒ t2 = t3 = 1, d = 1, rDist = sinθ/(cosθ+1) = tan(θ/2).
	lens := Intrinsics{Xi: 0, Lambda: 0, Alpha: 0.5}
	for _, theta := range []float64{0.1, 0.5, 1.0, 1.4} {
		assert.InDelta(t, math.Tan(theta/2), lens.DistortedRadius(theta), 1e-12, "theta=%v", theta)
	}
	assert.InDelta(t, 1.0, lens.MaxDistortedRadius(), 1e-12)
}

func TestIntrinsics_ScaleFactor(t *testing.T) {
	lens := Intrinsics{Xi: 0.3, Lambda: 0.3, Alpha: 0.4}

	assert.Equal(t, 1.0, lens.ScaleFactor(0))
	assert.Equal(t, 1.0, lens.ScaleFactor(math.Atan(UndistortedRadiusFloor)/2))

	theta := 0.8
	want := lens.DistortedRadius(theta) / math.Tan(theta)
	assert.InDelta(t, want, lens.ScaleFactor(theta), 1e-15)
	assert.Less(t, lens.ScaleFactor(theta), 1.0, "fisheye compresses off-axis rays")
}

func TestIntrinsics_DistortedRadiusMonotone(t *testing.T) {
	lens := Intrinsics{Xi: 0.3, Lambda: 0.3, Alpha: 0.4}
	prev := 0.0
	for i := 1; i < 1000; i++ {
		theta := float64(i) / 1000 * math.Pi / 2
		r := lens.DistortedRadius(theta)
		assert.Greater(t, r, prev, "theta=%v", theta)
		assert.Less(t, r, math.Tan(theta))
		prev = r
	}
}

func TestIntrinsics_PeakAngle(t *testing.T) {
	tests := []struct {
		name    string
		lens    Intrinsics
		wantDeg float64
	}{
		{"scenario lens rises to the rim", Intrinsics{Xi: 0.3, Lambda: 0.3, Alpha: 0.4}, 90},
		{"strong first shift", Intrinsics{Xi: 0.9, Lambda: 0, Alpha: 0.4}, 71.2237},
		{"strong shifts", Intrinsics{Xi: 0.9, Lambda: 0.9, Alpha: 0.9}, 41.5996},
		{"near-limit shifts", Intrinsics{Xi: 0.99, Lambda: 0.99, Alpha: 0.99}, 35.9055},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			peak := tt.lens.PeakAngle()
			assert.InDelta(t, tt.wantDeg, peak*180/math.Pi, 1e-3)
			assert.Equal(t, tt.lens.DistortedRadius(peak), tt.lens.MaxDistortedRadius())

			rPeak := tt.lens.DistortedRadius(peak)
			prev := 0.0
			for i := 1; i <= 1000; i++ {
				theta := float64(i) / 1000 * math.Pi / 2
				r := tt.lens.DistortedRadius(theta)
				assert.LessOrEqual(t, r, rPeak+1e-12, "theta=%v exceeds the peak", theta)
				if theta < peak {
					assert.Greater(t, r, prev, "not rising below the peak at theta=%v", theta)
				}
				prev = r
			}
		})
	}
}

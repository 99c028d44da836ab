package fisheye

import "errors"

var (
	// ErrDegenerateIntrinsics is returned when ξ, λ or α fall outside the
	// range where the projection is defined.
	ErrDegenerateIntrinsics = errors.New("fisheye: degenerate intrinsics")
	// ErrInvalidPose is returned for a non-orthonormal or reflected basis.
	ErrInvalidPose = errors.New("fisheye: invalid pose")
	// ErrInvalidFrustum is returned for an unusable perspective setup.
	ErrInvalidFrustum = errors.New("fisheye: invalid frustum")
)

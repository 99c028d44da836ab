package fisheye

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLookAt_Basis(t *testing.T) {
	pose, err := LookAt(r3.Vec{X: -0.3, Y: 0.3, Z: -0.3}, r3.Vec{}, r3.Vec{Y: 1})
	require.NoError(t, err)
	require.NoError(t, pose.Validate())

	assert.InDelta(t, 1, r3.Norm(pose.Forward), 1e-12)
	assert.InDelta(t, 0, r3.Dot(pose.Right, pose.Forward), 1e-12)
	// Target sits on the optical axis.
	cam := pose.ToCamera(r3.Vec{})
	assert.InDelta(t, 0, cam.X, 1e-12)
	assert.InDelta(t, 0, cam.Y, 1e-12)
	assert.Less(t, cam.Z, 0.0)
}

func TestLookAt_AxisAligned(t *testing.T) {
	pose, err := LookAt(r3.Vec{}, r3.Vec{Z: -1}, r3.Vec{Y: 1})
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 1}, pose.Right)
	assert.Equal(t, r3.Vec{Y: 1}, pose.Up)
	assert.Equal(t, r3.Vec{Z: -1}, pose.Forward)
}

func TestLookAt_Degenerate(t *testing.T) {
	_, err := LookAt(r3.Vec{X: 1}, r3.Vec{X: 1}, r3.Vec{Y: 1})
	assert.True(t, errors.Is(err, ErrInvalidPose))

	_, err = LookAt(r3.Vec{}, r3.Vec{Y: 5}, r3.Vec{Y: 1})
	assert.True(t, errors.Is(err, ErrInvalidPose))
}

func TestPose_Validate(t *testing.T) {
	good := Pose{Right: r3.Vec{X: 1}, Up: r3.Vec{Y: 1}, Forward: r3.Vec{Z: -1}}
	require.NoError(t, good.Validate())

	reflected := good
	reflected.Forward = r3.Vec{Z: 1}
	assert.True(t, errors.Is(reflected.Validate(), ErrInvalidPose))

	skewed := good
	skewed.Up = r3.Unit(r3.Vec{X: 0.3, Y: 1})
	assert.True(t, errors.Is(skewed.Validate(), ErrInvalidPose))

	scaled := good
	scaled.Right = r3.Vec{X: 2}
	assert.True(t, errors.Is(scaled.Validate(), ErrInvalidPose))
}

func TestPose_ToWorldDirectionInvertsToCamera(t *testing.T) {
	pose, err := LookAt(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: -1, Y: 0.5}, r3.Vec{Y: 1})
	require.NoError(t, err)

	world := r3.Vec{X: 0.2, Y: -0.7, Z: 1.1}
	cam := pose.ToCamera(world)
	back := r3.Add(pose.Position, pose.ToWorldDirection(cam))
	assert.InDelta(t, world.X, back.X, 1e-12)
	assert.InDelta(t, world.Y, back.Y, 1e-12)
	assert.InDelta(t, world.Z, back.Z, 1e-12)
}

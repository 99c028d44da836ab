package fisheye

import (
	"fmt"

	"github.com/banshee-data/fisheye-placement/internal/config"
	"gonum.org/v1/gonum/spatial/r3"
)

func vec(v config.Vec3) r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }

// CameraFromConfig builds a Camera from a config entry, ignoring its enabled
// flag.
func CameraFromConfig(cfg config.CameraConfig) (*Camera, error) {
	pose, err := LookAt(vec(cfg.Position), vec(cfg.LookAt), vec(cfg.GetUp()))
	if err != nil {
		return nil, fmt.Errorf("camera %q: %w", cfg.Name, err)
	}
	frustum := Frustum{
		FovYDeg: cfg.FovYDeg,
		Aspect:  cfg.GetAspect(),
		Near:    cfg.GetNear(),
		Far:     cfg.GetFar(),
	}
	lens := Intrinsics{Xi: cfg.Xi, Lambda: cfg.Lambda, Alpha: cfg.Alpha}
	return NewCamera(cfg.Name, pose, frustum, lens)
}

// CamerasFromConfig builds the active camera set: the enabled entries of cfg
// in declaration order. The first invalid camera aborts the build.
func CamerasFromConfig(cfg *config.GenerationConfig) ([]*Camera, error) {
	active := cfg.ActiveCameras()
	cams := make([]*Camera, 0, len(active))
	for _, c := range active {
		cam, err := CameraFromConfig(c)
		if err != nil {
			return nil, err
		}
		cams = append(cams, cam)
	}
	return cams, nil
}

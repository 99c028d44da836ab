package placement

import (
	"github.com/banshee-data/fisheye-placement/internal/config"
	"gonum.org/v1/gonum/spatial/r3"
)

// ParamsFromConfig maps the generation fields of cfg onto Params, applying
// the config defaults for unset fields. The result is not validated.
func ParamsFromConfig(cfg *config.GenerationConfig) Params {
	b := cfg.GetBounds()
	return Params{
		MinDistance:     cfg.GetMinDistance(),
		Bounds:          r3.Vec{X: b[0], Y: b[1], Z: b[2]},
		MaxAttempts:     cfg.GetMaxAttempts(),
		ObjectRadius:    cfg.GetObjectRadius(),
		ViewportPadding: cfg.GetViewportPadding(),
	}
}

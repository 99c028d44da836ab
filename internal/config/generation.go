package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/fisheye-placement/internal/fsutil"
)

// DefaultConfigPath is the path to the canonical generation defaults file.
const DefaultConfigPath = "config/generation.defaults.json"

// maxConfigSize caps config files at 1MB.
const maxConfigSize = 1 * 1024 * 1024

// Vec3 is a JSON [x, y, z] triple.
type Vec3 [3]float64

// CameraConfig declares one rig camera. Only enabled cameras gate placement.
type CameraConfig struct {
	Name     string  `json:"name"`
	Enabled  *bool   `json:"enabled,omitempty"`
	Position Vec3    `json:"position"`
	LookAt   Vec3    `json:"look_at"`
	Up       *Vec3   `json:"up,omitempty"` // defaults to +Y
	FovYDeg  float64 `json:"fov_y_deg"`
	Aspect   float64 `json:"aspect,omitempty"` // defaults to 1
	Near     float64 `json:"near,omitempty"`   // defaults to 0.01
	Far      float64 `json:"far,omitempty"`    // defaults to 1000
	Xi       float64 `json:"xi"`
	Lambda   float64 `json:"lambda"`
	Alpha    float64 `json:"alpha"`
}

// GenerationConfig is the root configuration for a placement run. Fields
// omitted from JSON fall back to the Get* defaults.
type GenerationConfig struct {
	MinDistance     *float64       `json:"min_distance,omitempty"`
	Bounds          *Vec3          `json:"bounds,omitempty"` // full extent per axis
	MaxAttempts     *int           `json:"max_attempts,omitempty"`
	ObjectRadius    *float64       `json:"object_radius,omitempty"`
	ViewportPadding *float64       `json:"viewport_padding,omitempty"`
	Seed            *int64         `json:"seed,omitempty"`
	Cameras         []CameraConfig `json:"cameras,omitempty"`
}

// EmptyGenerationConfig returns a GenerationConfig with all fields unset.
func EmptyGenerationConfig() *GenerationConfig {
	return &GenerationConfig{}
}

// LoadGenerationConfig loads a GenerationConfig from a JSON file on disk.
func LoadGenerationConfig(path string) (*GenerationConfig, error) {
	return LoadGenerationConfigFS(fsutil.OSFileSystem{}, path)
}

// LoadGenerationConfigFS loads and validates a GenerationConfig from fsys.
// The file must have a .json extension and be at most 1MB.
func LoadGenerationConfigFS(fsys fsutil.FileSystem, path string) (*GenerationConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyGenerationConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents. Panics if the file cannot be loaded; intended
// for tests.
func MustLoadDefaultConfig() *GenerationConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadGenerationConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks ranges of the fields that are set. Lens and pose checks on
// cameras happen when the cameras are built.
func (c *GenerationConfig) Validate() error {
	if c.MinDistance != nil && !(*c.MinDistance > 0) {
		return fmt.Errorf("min_distance must be positive, got %v", *c.MinDistance)
	}
	if c.Bounds != nil {
		for i, v := range c.Bounds {
			if !(v > 0) {
				return fmt.Errorf("bounds[%d] must be positive, got %v", i, v)
			}
		}
	}
	if c.MaxAttempts != nil && *c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", *c.MaxAttempts)
	}
	if c.ObjectRadius != nil && !(*c.ObjectRadius >= 0) {
		return fmt.Errorf("object_radius must be non-negative, got %v", *c.ObjectRadius)
	}
	if c.ViewportPadding != nil && !(*c.ViewportPadding >= 0 && *c.ViewportPadding < 0.5) {
		return fmt.Errorf("viewport_padding must be in [0, 0.5), got %v", *c.ViewportPadding)
	}
	seen := make(map[string]bool, len(c.Cameras))
	for i, cam := range c.Cameras {
		if cam.Name == "" {
			return fmt.Errorf("cameras[%d]: name is required", i)
		}
		if seen[cam.Name] {
			return fmt.Errorf("cameras[%d]: duplicate name %q", i, cam.Name)
		}
		seen[cam.Name] = true
	}
	return nil
}

// GetMinDistance returns min_distance or the default.
func (c *GenerationConfig) GetMinDistance() float64 {
	if c.MinDistance == nil {
		return 0.1
	}
	return *c.MinDistance
}

// GetBounds returns bounds or the default unit cube.
func (c *GenerationConfig) GetBounds() Vec3 {
	if c.Bounds == nil {
		return Vec3{1, 1, 1}
	}
	return *c.Bounds
}

// GetMaxAttempts returns max_attempts or the default.
func (c *GenerationConfig) GetMaxAttempts() int {
	if c.MaxAttempts == nil {
		return 30
	}
	return *c.MaxAttempts
}

// GetObjectRadius returns object_radius or the default.
func (c *GenerationConfig) GetObjectRadius() float64 {
	if c.ObjectRadius == nil {
		return 0.05
	}
	return *c.ObjectRadius
}

// GetViewportPadding returns viewport_padding or the default.
func (c *GenerationConfig) GetViewportPadding() float64 {
	if c.ViewportPadding == nil {
		return 0.05
	}
	return *c.ViewportPadding
}

// GetSeed returns the configured seed and whether one was set. Callers pick
// a fresh seed when it is not.
func (c *GenerationConfig) GetSeed() (int64, bool) {
	if c.Seed == nil {
		return 0, false
	}
	return *c.Seed, true
}

// ActiveCameras returns the enabled camera entries in declaration order.
func (c *GenerationConfig) ActiveCameras() []CameraConfig {
	var out []CameraConfig
	for _, cam := range c.Cameras {
		if cam.IsEnabled() {
			out = append(out, cam)
		}
	}
	return out
}

// IsEnabled returns enabled, defaulting to true.
func (c CameraConfig) IsEnabled() bool {
	if c.Enabled == nil {
		return true
	}
	return *c.Enabled
}

// GetUp returns the world up hint, defaulting to +Y.
func (c CameraConfig) GetUp() Vec3 {
	if c.Up == nil {
		return Vec3{0, 1, 0}
	}
	return *c.Up
}

// GetAspect returns aspect, defaulting to 1.
func (c CameraConfig) GetAspect() float64 {
	if c.Aspect == 0 {
		return 1
	}
	return c.Aspect
}

// GetNear returns the near plane, defaulting to 0.01.
func (c CameraConfig) GetNear() float64 {
	if c.Near == 0 {
		return 0.01
	}
	return c.Near
}

// GetFar returns the far plane, defaulting to 1000.
func (c CameraConfig) GetFar() float64 {
	if c.Far == 0 {
		return 1000
	}
	return c.Far
}

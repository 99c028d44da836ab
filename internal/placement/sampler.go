package placement

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/banshee-data/fisheye-placement/internal/monitoring"
	"github.com/banshee-data/fisheye-placement/internal/timeutil"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultMaxAttempts is the usual Bridson attempt budget per active point.
const DefaultMaxAttempts = 30

// Params are the generation inputs.
type Params struct {
	MinDistance     float64 // required pairwise separation, > 0
	Bounds          r3.Vec  // full extent per axis, all > 0
	MaxAttempts     int     // attempts for the seed and per active-point draw, >= 1
	ObjectRadius    float64 // radius of the offset ring, >= 0
	ViewportPadding float64 // margin on every viewport edge, in [0, 0.5)
}

// Validate reports every precondition violation as ErrInvalidParams.
func (p Params) Validate() error {
	if !(p.MinDistance > 0) {
		return fmt.Errorf("%w: min distance must be positive, got %v", ErrInvalidParams, p.MinDistance)
	}
	if _, err := NewBounds(p.Bounds); err != nil {
		return err
	}
	if p.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrInvalidParams, p.MaxAttempts)
	}
	if !(p.ObjectRadius >= 0) {
		return fmt.Errorf("%w: object radius must be non-negative, got %v", ErrInvalidParams, p.ObjectRadius)
	}
	if _, err := NewOracle(p.ViewportPadding); err != nil {
		return err
	}
	return nil
}

// Stats summarises one generation run.
type Stats struct {
	RunID               string
	SeedAttempts        int  // uniform draws spent finding the first point
	NoSeed              bool // no visible seed within MaxAttempts
	Candidates          int  // expansion candidates proposed
	Accepted            int  // points in the returned sequence
	RejectedOutOfBounds int
	RejectedTooClose    int
	RejectedNotVisible  int
	Retired             int // active points that exhausted their attempts
	Elapsed             time.Duration
}

// Sampler is a Bridson dart-throwing sampler gated by an Oracle. A Sampler is
// not safe for concurrent use; build one per run.
type Sampler struct {
	params  Params
	bounds  Bounds
	cameras []Projector
	oracle  Oracle
	rng     *rand.Rand

	// Clock times the run. Defaults to timeutil.RealClock.
	Clock timeutil.Clock
	// RunID tags log lines and Stats. Defaults to a random UUID.
	RunID string
}

// NewSampler validates params and captures the camera set and RNG. The
// sequence is reproducible for a given RNG seed and camera set.
func NewSampler(params Params, cameras []Projector, rng *rand.Rand) (*Sampler, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: rng is required", ErrInvalidParams)
	}
	cams := make([]Projector, len(cameras))
	copy(cams, cameras)
	return &Sampler{
		params:  params,
		bounds:  Bounds{Size: params.Bounds},
		cameras: cams,
		oracle:  Oracle{Padding: params.ViewportPadding},
		rng:     rng,
		Clock:   timeutil.RealClock{},
		RunID:   uuid.NewString(),
	}, nil
}

// Generate runs the sampler to completion. The returned sequence is in
// acceptance order. An empty sequence with Stats.NoSeed set is a normal
// outcome. ctx is polled between expansion steps; on cancellation the points
// accepted so far are returned with ctx.Err().
func (s *Sampler) Generate(ctx context.Context) ([]r3.Vec, Stats, error) {
	start := s.Clock.Now()
	stats := Stats{RunID: s.RunID}
	finish := func(points []r3.Vec, err error) ([]r3.Vec, Stats, error) {
		stats.Accepted = len(points)
		stats.Elapsed = s.Clock.Since(start)
		s.logSummary(stats, err)
		return points, stats, err
	}

	if len(s.cameras) == 0 {
		stats.NoSeed = true
		return finish([]r3.Vec{}, nil)
	}

	grid, err := NewGrid(s.bounds, s.params.MinDistance)
	if err != nil {
		return finish(nil, err)
	}

	seed, ok := s.findSeed(&stats)
	if !ok {
		stats.NoSeed = true
		return finish([]r3.Vec{}, nil)
	}
	if err := grid.Insert(seed); err != nil {
		return finish(nil, fmt.Errorf("insert seed: %w", err))
	}
	points := []r3.Vec{seed}
	active := []int{0}

	for len(active) > 0 {
		if err := ctx.Err(); err != nil {
			return finish(points, err)
		}

		ai := s.rng.Intn(len(active))
		origin := points[active[ai]]

		placed := false
		for k := 0; k < s.params.MaxAttempts; k++ {
			candidate := r3.Add(origin, s.annulusOffset())
			stats.Candidates++
			if !s.accept(grid, candidate, &stats) {
				continue
			}
			if err := grid.Insert(candidate); err != nil {
				// Unreachable after the separation check; count and move on.
				stats.RejectedTooClose++
				continue
			}
			points = append(points, candidate)
			active = append(active, len(points)-1)
			placed = true
			break
		}

		if !placed {
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
			stats.Retired++
		}
	}

	return finish(points, nil)
}

// findSeed draws up to MaxAttempts uniform points and returns the first one
// the oracle accepts.
func (s *Sampler) findSeed(stats *Stats) (r3.Vec, bool) {
	for i := 0; i < s.params.MaxAttempts; i++ {
		stats.SeedAttempts++
		p := s.bounds.Sample(s.rng)
		if s.oracle.FullyVisible(p, s.params.ObjectRadius, s.cameras) {
			return p, true
		}
	}
	return r3.Vec{}, false
}

// annulusOffset returns an offset with length in [minD, 2·minD] along a
// direction given by two independent uniform angles.
func (s *Sampler) annulusOffset() r3.Vec {
	radius := s.params.MinDistance * (1 + s.rng.Float64())
	azimuth := s.rng.Float64() * 2 * math.Pi
	polar := s.rng.Float64() * math.Pi
	sinP, cosP := math.Sincos(polar)
	sinA, cosA := math.Sincos(azimuth)
	return r3.Scale(radius, r3.Vec{X: sinP * cosA, Y: sinP * sinA, Z: cosP})
}

// accept applies the bounds, separation and visibility tests in that order,
// cheapest first.
func (s *Sampler) accept(grid *Grid, p r3.Vec, stats *Stats) bool {
	if _, ok := grid.CellOf(p); !ok {
		stats.RejectedOutOfBounds++
		monitoring.Debugf("run %s: reject %v out of bounds", s.RunID, p)
		return false
	}
	if grid.HasNeighborCloserThan(p, s.params.MinDistance) {
		stats.RejectedTooClose++
		monitoring.Debugf("run %s: reject %v too close", s.RunID, p)
		return false
	}
	if !s.oracle.FullyVisible(p, s.params.ObjectRadius, s.cameras) {
		stats.RejectedNotVisible++
		monitoring.Debugf("run %s: reject %v not visible", s.RunID, p)
		return false
	}
	return true
}

func (s *Sampler) logSummary(stats Stats, err error) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		monitoring.Logf("placement run %s: stopped after %d points: %v", stats.RunID, stats.Accepted, err)
	case err != nil:
		monitoring.Logf("placement run %s: failed: %v", stats.RunID, err)
	case stats.NoSeed:
		monitoring.Logf("placement run %s: no visible seed in %d attempts (%d cameras)", stats.RunID, stats.SeedAttempts, len(s.cameras))
	default:
		monitoring.Logf("placement run %s: accepted=%d candidates=%d rejected(bounds=%d close=%d visibility=%d) elapsed=%v",
			stats.RunID, stats.Accepted, stats.Candidates,
			stats.RejectedOutOfBounds, stats.RejectedTooClose, stats.RejectedNotVisible, stats.Elapsed)
	}
}

// GeneratePoints is the one-shot entry point: validate, sample, return the
// sequence. Only precondition violations produce an error; zero cameras or no
// visible seed yield an empty sequence.
func GeneratePoints(minDistance float64, bounds r3.Vec, maxAttempts int, cameras []Projector, objectRadius, viewportPadding float64, rng *rand.Rand) ([]r3.Vec, error) {
	s, err := NewSampler(Params{
		MinDistance:     minDistance,
		Bounds:          bounds,
		MaxAttempts:     maxAttempts,
		ObjectRadius:    objectRadius,
		ViewportPadding: viewportPadding,
	}, cameras, rng)
	if err != nil {
		return nil, err
	}
	points, _, err := s.Generate(context.Background())
	return points, err
}

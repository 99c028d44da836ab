package placement

import (
	"context"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// RunResult is the outcome of one run in GenerateMany.
type RunResult struct {
	Seed   int64
	Points []r3.Vec
	Stats  Stats
	Err    error
}

// GenerateMany runs one independent sampler per seed concurrently. Each run
// owns its grid, active list and RNG, so results are reproducible per seed;
// cameras are immutable and shared. Results are returned in seed order.
func GenerateMany(ctx context.Context, params Params, cameras []Projector, seeds []int64) ([]RunResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	results := make([]RunResult, len(seeds))
	var wg sync.WaitGroup
	for i, seed := range seeds {
		wg.Add(1)
		go func(i int, seed int64) {
			defer wg.Done()
			res := RunResult{Seed: seed}
			s, err := NewSampler(params, cameras, rand.New(rand.NewSource(seed)))
			if err != nil {
				res.Err = err
				results[i] = res
				return
			}
			res.Points, res.Stats, res.Err = s.Generate(ctx)
			results[i] = res
		}(i, seed)
	}
	wg.Wait()
	return results, nil
}

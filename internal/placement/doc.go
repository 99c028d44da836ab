// Package placement generates object placements that are mutually separated
// and fully visible to every active fisheye camera.
//
// Responsibilities: the generation volume (Bounds), the uniform grid used
// for separation checks (Grid), the multi-camera visibility test (Oracle) and
// the Bridson dart-throwing sampler (Sampler) that ties them together.
// Key types: Params, Sampler, Stats, Grid, Oracle.
//
// A Sampler is single-threaded and owns its grid, active list and RNG.
// Independent samplers may run concurrently (see GenerateMany).
package placement

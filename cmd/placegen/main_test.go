package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/banshee-data/fisheye-placement/internal/config"
	"github.com/banshee-data/fisheye-placement/internal/fsutil"
	"github.com/banshee-data/fisheye-placement/internal/monitoring"
	"github.com/banshee-data/fisheye-placement/internal/placement"
	"github.com/banshee-data/fisheye-placement/internal/report"
	"github.com/banshee-data/fisheye-placement/internal/testutil"
	"github.com/banshee-data/fisheye-placement/internal/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const smallConfig = `{
	"min_distance": 0.1,
	"bounds": [0.5, 0.5, 0.5],
	"seed": 11,
	"cameras": [
		{"name": "overhead", "position": [0, 3, 0], "look_at": [0, 0, 0], "up": [0, 0, -1],
		 "fov_y_deg": 170, "xi": 0.3, "lambda": 0.3, "alpha": 0.4},
		{"name": "spare", "enabled": false, "position": [0, 0, 3], "look_at": [0, 0, 0],
		 "fov_y_deg": 170, "xi": 0.3, "lambda": 0.3, "alpha": 0.4}
	]
}`

func newTestApp(t *testing.T) (*app, *fsutil.MemoryFileSystem, *bytes.Buffer) {
	t.Helper()
	prev := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.SetLogger(prev) })

	fsys := fsutil.NewMemoryFileSystem()
	fsys.WriteFile("gen.json", []byte(smallConfig))
	var stdout bytes.Buffer
	return &app{
		fs:     fsys,
		clock:  timeutil.NewMockClock(time.Unix(1700000000, 0)),
		stdout: &stdout,
	}, fsys, &stdout
}

func mustParse(t *testing.T, args ...string) options {
	t.Helper()
	o, err := parseFlags(args, io.Discard)
	require.NoError(t, err)
	return o
}

func TestParseFlags(t *testing.T) {
	o := mustParse(t)
	assert.Equal(t, config.DefaultConfigPath, o.configPath)
	assert.False(t, o.seedSet)
	assert.Equal(t, 1, o.runs)

	o = mustParse(t, "-seed", "0", "-runs", "3", "-plot")
	assert.True(t, o.seedSet, "explicit -seed 0 must count as set")
	assert.Equal(t, 3, o.runs)
	assert.True(t, o.plot)

	var stderr bytes.Buffer
	_, err := parseFlags([]string{"-runs", "0"}, &stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "-runs must be at least 1, got 0")
	assert.Contains(t, stderr.String(), "Usage of placegen")
}

func TestVersion(t *testing.T) {
	a, fsys, stdout := newTestApp(t)
	require.NoError(t, a.run(context.Background(), mustParse(t, "-version")))
	assert.True(t, strings.HasPrefix(stdout.String(), "placegen "))
	assert.Equal(t, []string{"gen.json"}, fsys.Files(), "version must not write artifacts")
}

func TestRun_WritesArtifacts(t *testing.T) {
	a, fsys, stdout := newTestApp(t)
	o := mustParse(t, "-config", "gen.json", "-out", "out", "-plot", "-html")
	require.NoError(t, a.run(context.Background(), o))

	assert.Equal(t, []string{"gen.json", "out/coverage.png", "out/frames.csv", "out/scatter.html"}, fsys.Files())
	assert.Contains(t, stdout.String(), "seed=11")

	data, err := fsys.ReadFile("out/frames.csv")
	require.NoError(t, err)
	points, err := report.ReadFrameLog(bytes.NewReader(data))
	require.NoError(t, err)
	require.NotEmpty(t, points)
	// Six-decimal rounding can shave at most ~2e-6 off a pair distance.
	testutil.AssertMinSeparation(t, points, 0.1-2e-6)
}

func TestRun_Reproducible(t *testing.T) {
	a, fsys, _ := newTestApp(t)
	require.NoError(t, a.run(context.Background(), mustParse(t, "-config", "gen.json", "-out", "a")))
	require.NoError(t, a.run(context.Background(), mustParse(t, "-config", "gen.json", "-out", "b")))

	first, err := fsys.ReadFile("a/frames.csv")
	require.NoError(t, err)
	second, err := fsys.ReadFile("b/frames.csv")
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRun_MultipleRuns(t *testing.T) {
	a, fsys, stdout := newTestApp(t)
	require.NoError(t, a.run(context.Background(), mustParse(t, "-config", "gen.json", "-out", "out", "-runs", "2", "-seed", "5")))

	assert.Equal(t, []string{"gen.json", "out/run-000/frames.csv", "out/run-001/frames.csv"}, fsys.Files())
	assert.Contains(t, stdout.String(), "seed=5 ")
	assert.Contains(t, stdout.String(), "seed=6 ")
}

func TestRun_Errors(t *testing.T) {
	a, fsys, _ := newTestApp(t)
	fsys.WriteFile("badcam.json", []byte(`{"cameras": [{"name": "x", "position": [0, 0, 0], "look_at": [0, 0, 0], "fov_y_deg": 90, "alpha": 0.5}]}`))
	fsys.WriteFile("badparams.json", []byte(`{"viewport_padding": 0.7}`))

	assert.ErrorContains(t, a.run(context.Background(), mustParse(t, "-config", "missing.json")), "load config")
	assert.ErrorContains(t, a.run(context.Background(), mustParse(t, "-config", "badcam.json")), "build cameras")
	assert.ErrorContains(t, a.run(context.Background(), mustParse(t, "-config", "badparams.json")), "viewport_padding")
}

func TestResolveSeed(t *testing.T) {
	a, _, _ := newTestApp(t)
	seed := int64(9)
	withSeed := &config.GenerationConfig{Seed: &seed}

	assert.Equal(t, int64(3), a.resolveSeed(options{seed: 3, seedSet: true}, withSeed))
	assert.Equal(t, int64(9), a.resolveSeed(options{}, withSeed))
	assert.Equal(t, time.Unix(1700000000, 0).UnixNano(), a.resolveSeed(options{}, config.EmptyGenerationConfig()))
}

func TestWriteRun_KeepsPartialSequence(t *testing.T) {
	partial := []r3.Vec{{X: 0.1}, {Y: -0.1}}

	for _, stopErr := range []error{context.Canceled, context.DeadlineExceeded} {
		t.Run(stopErr.Error(), func(t *testing.T) {
			a, fsys, stdout := newTestApp(t)
			res := placement.RunResult{Seed: 3, Points: partial, Err: stopErr}

			err := a.writeRun("out", options{}, res, nil, placement.Params{})
			assert.ErrorIs(t, err, stopErr)
			assert.Contains(t, stdout.String(), "placements=2")

			data, err := fsys.ReadFile("out/frames.csv")
			require.NoError(t, err)
			got, err := report.ReadFrameLog(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Len(t, got, len(partial))
		})
	}
}

func TestWriteRun_FailedRunWritesNothing(t *testing.T) {
	a, fsys, _ := newTestApp(t)
	failure := errors.New("sampler broke")

	err := a.writeRun("out", options{}, placement.RunResult{Err: failure}, nil, placement.Params{})
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, []string{"gen.json"}, fsys.Files())
}

// Command placegen generates a placement sequence for a fisheye camera rig and
// writes the per-frame log plus optional coverage and scatter reports.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/banshee-data/fisheye-placement/internal/config"
	"github.com/banshee-data/fisheye-placement/internal/fisheye"
	"github.com/banshee-data/fisheye-placement/internal/fsutil"
	"github.com/banshee-data/fisheye-placement/internal/monitoring"
	"github.com/banshee-data/fisheye-placement/internal/placement"
	"github.com/banshee-data/fisheye-placement/internal/report"
	"github.com/banshee-data/fisheye-placement/internal/timeutil"
	"github.com/banshee-data/fisheye-placement/internal/version"
)

const (
	frameLogName = "frames.csv"
	coverageName = "coverage.png"
	scatterName  = "scatter.html"
)

// options are the parsed command-line flags.
type options struct {
	configPath string
	seed       int64
	seedSet    bool
	runs       int
	outDir     string
	plot       bool
	html       bool
	verbose    bool
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("placegen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", config.DefaultConfigPath, "Path to generation config JSON")
	fs.Int64Var(&o.seed, "seed", 0, "RNG seed (overrides config; default from config or clock)")
	fs.IntVar(&o.runs, "runs", 1, "Number of independent runs with consecutive seeds")
	fs.StringVar(&o.outDir, "out", "out", "Output directory")
	fs.BoolVar(&o.plot, "plot", false, "Write a viewport coverage PNG")
	fs.BoolVar(&o.html, "html", false, "Write an interactive 3D scatter HTML page")
	fs.BoolVar(&o.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&o.version, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			o.seedSet = true
		}
	})
	if o.runs < 1 {
		err := fmt.Errorf("-runs must be at least 1, got %d", o.runs)
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return o, err
	}
	return o, nil
}

// app carries the seams run needs so tests can swap them.
type app struct {
	fs     fsutil.FileSystem
	clock  timeutil.Clock
	stdout io.Writer
}

// resolveSeed picks the flag seed, then the config seed, then the clock.
func (a *app) resolveSeed(o options, cfg *config.GenerationConfig) int64 {
	if o.seedSet {
		return o.seed
	}
	if seed, ok := cfg.GetSeed(); ok {
		return seed
	}
	seed := a.clock.Now().UnixNano()
	monitoring.Logf("no seed configured, using %d", seed)
	return seed
}

func (a *app) run(ctx context.Context, o options) error {
	if o.version {
		fmt.Fprintf(a.stdout, "placegen %s\n", version.String())
		return nil
	}
	monitoring.SetVerbose(o.verbose)

	cfg, err := config.LoadGenerationConfigFS(a.fs, o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cams, err := fisheye.CamerasFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("build cameras: %w", err)
	}
	params := placement.ParamsFromConfig(cfg)
	if err := params.Validate(); err != nil {
		return err
	}
	monitoring.Logf("placegen: %d active camera(s), bounds=%v min_distance=%g", len(cams), params.Bounds, params.MinDistance)

	base := a.resolveSeed(o, cfg)
	seeds := make([]int64, o.runs)
	for i := range seeds {
		seeds[i] = base + int64(i)
	}

	results, err := placement.GenerateMany(ctx, params, placement.Projectors(cams), seeds)
	if err != nil {
		return err
	}

	named := make([]report.NamedProjector, len(cams))
	for i, c := range cams {
		named[i] = c
	}

	var errs []error
	for i, res := range results {
		dir := o.outDir
		if o.runs > 1 {
			dir = filepath.Join(o.outDir, fmt.Sprintf("run-%03d", i))
		}
		if err := a.writeRun(dir, o, res, named, params); err != nil {
			errs = append(errs, fmt.Errorf("seed %d: %w", res.Seed, err))
		}
	}
	return errors.Join(errs...)
}

// stoppedEarly reports whether err ended a run that still holds the points
// accepted before it stopped.
func stoppedEarly(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// writeRun writes the artifacts of one run. A cancelled or timed-out run
// still writes the points accepted before it stopped.
func (a *app) writeRun(dir string, o options, res placement.RunResult, cams []report.NamedProjector, params placement.Params) error {
	if res.Err != nil && !stoppedEarly(res.Err) {
		return res.Err
	}
	fmt.Fprintf(a.stdout, "run %s seed=%d placements=%d no_seed=%t\n", res.Stats.RunID, res.Seed, len(res.Points), res.Stats.NoSeed)

	w := &report.Writer{FS: a.fs, Dir: dir}
	if _, err := w.FrameLog(frameLogName, res.Points); err != nil {
		return err
	}
	if o.plot {
		if _, err := w.Coverage(coverageName, res.Stats.RunID, res.Points, cams, params.ViewportPadding); err != nil {
			return err
		}
	}
	if o.html {
		if _, err := w.Scatter(scatterName, res.Stats.RunID, res.Points, params.Bounds); err != nil {
			return err
		}
	}
	return res.Err
}

func main() {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		// parseFlags has already written err and the usage to stderr.
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{fs: fsutil.OSFileSystem{}, clock: timeutil.RealClock{}, stdout: os.Stdout}
	if err := a.run(ctx, o); err != nil {
		log.Fatalf("placegen: %v", err)
	}
}

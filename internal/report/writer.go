package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/banshee-data/fisheye-placement/internal/fsutil"
	"github.com/banshee-data/fisheye-placement/internal/monitoring"
	"github.com/banshee-data/fisheye-placement/internal/security"
	"gonum.org/v1/gonum/spatial/r3"
)

// Writer places run artifacts under Dir on FS.
type Writer struct {
	FS  fsutil.FileSystem
	Dir string
}

// NewWriter returns a Writer on the OS filesystem.
func NewWriter(dir string) *Writer {
	return &Writer{FS: fsutil.OSFileSystem{}, Dir: dir}
}

// create opens Dir/name for writing, creating Dir if needed.
func (w *Writer) create(name string) (io.WriteCloser, string, error) {
	if err := security.ValidatePathWithinDirectory(name, w.Dir); err != nil {
		return nil, "", err
	}
	if err := w.FS.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(w.Dir, name)
	f, err := w.FS.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, path, nil
}

func (w *Writer) write(name string, fn func(io.Writer) error) (string, error) {
	f, path, err := w.create(name)
	if err != nil {
		return "", err
	}
	if err := fn(f); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	monitoring.Logf("wrote %s", path)
	return path, nil
}

// FrameLog writes the frame log as name and returns its path.
func (w *Writer) FrameLog(name string, points []r3.Vec) (string, error) {
	return w.write(name, func(out io.Writer) error {
		return WriteFrameLog(out, points)
	})
}

// Coverage writes the viewport coverage PNG as name and returns its path.
func (w *Writer) Coverage(name, runID string, points []r3.Vec, cams []NamedProjector, padding float64) (string, error) {
	p, err := CoveragePlot(runID, points, cams, padding)
	if err != nil {
		return "", err
	}
	return w.write(name, func(out io.Writer) error {
		return WritePNG(out, p, CoverageWidth, CoverageHeight)
	})
}

// Scatter writes the 3D scatter page as name and returns its path.
func (w *Writer) Scatter(name, runID string, points []r3.Vec, bounds r3.Vec) (string, error) {
	return w.write(name, func(out io.Writer) error {
		return Scatter3D(out, runID, points, bounds)
	})
}

package report

import (
	"fmt"
	"image/color"
	"io"

	"github.com/banshee-data/fisheye-placement/internal/fisheye"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg" // registers the png format
)

// Default coverage image size.
const (
	CoverageWidth  = 8 * vg.Inch
	CoverageHeight = 8 * vg.Inch
)

// NamedProjector is a camera that can be labelled in a plot legend.
type NamedProjector interface {
	Name() string
	Project(world r3.Vec) (fisheye.Viewport, bool)
}

// CoveragePlot builds a viewport-space scatter of the projected placement
// centres, one series per camera, with the padded acceptance window drawn as
// a rectangle. Points behind a camera are left out of its series.
func CoveragePlot(runID string, points []r3.Vec, cams []NamedProjector, padding float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Viewport coverage - run %s (%d placements)", runID, len(points))
	p.X.Label.Text = "u"
	p.Y.Label.Text = "v"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	window, err := plotter.NewLine(plotter.XYs{
		{X: padding, Y: padding},
		{X: 1 - padding, Y: padding},
		{X: 1 - padding, Y: 1 - padding},
		{X: padding, Y: 1 - padding},
		{X: padding, Y: padding},
	})
	if err != nil {
		return nil, fmt.Errorf("padding window: %w", err)
	}
	window.Width = vg.Points(1)
	window.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(window)
	p.Legend.Add("padding", window)

	colors := generateColors(len(cams))
	for i, cam := range cams {
		xys := make(plotter.XYs, 0, len(points))
		for _, pt := range points {
			v, ok := cam.Project(pt)
			if !ok {
				continue
			}
			xys = append(xys, plotter.XY{X: v.X, Y: v.Y})
		}
		if len(xys) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("camera %s: %w", cam.Name(), err)
		}
		sc.GlyphStyle.Color = colors[i]
		sc.GlyphStyle.Radius = vg.Points(1.5)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(cam.Name(), sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WritePNG renders p as a PNG of the given size.
func WritePNG(w io.Writer, p *plot.Plot, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("png canvas: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// generateColors returns n evenly spaced hues.
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		r, g, b := hslToRGB(float64(i)/float64(n), 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL in [0, 1] to 8-bit RGB.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := uint8(l * 255)
		return v, v, v
	}
	q := l + s - l*s
	if l < 0.5 {
		q = l * (1 + s)
	}
	p := 2*l - q
	return uint8(hueToRGB(p, q, h+1.0/3.0) * 255),
		uint8(hueToRGB(p, q, h) * 255),
		uint8(hueToRGB(p, q, h-1.0/3.0) * 255)
}

func hueToRGB(p, q, t float64) float64 {
	switch {
	case t < 0:
		t++
	case t > 1:
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/spatial/r3"
)

// Scatter3D renders the sequence as an interactive 3D scatter page. Axis
// ranges follow the half-extent of bounds.
func Scatter3D(w io.Writer, runID string, points []r3.Vec, bounds r3.Vec) error {
	data := make([]opts.Chart3DData, 0, len(points))
	for i, p := range points {
		data = append(data, opts.Chart3DData{
			Name:  fmt.Sprintf("frame %d", i),
			Value: []interface{}{p.X, p.Y, p.Z},
		})
	}

	half := r3.Scale(0.5, bounds)
	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Placement sequence", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Placement sequence", Subtitle: fmt.Sprintf("run=%s points=%d", runID, len(points))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X", Min: -half.X, Max: half.X}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y", Min: -half.Y, Max: half.Y}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z", Min: -half.Z, Max: half.Z}),
	)
	scatter.AddSeries("placements", data)

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render scatter: %w", err)
	}
	return nil
}

package app

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/relabs-tech/sphere_trajectory/internal/orientation"
	"github.com/relabs-tech/sphere_trajectory/internal/store"
)

const arcSteps = 64

func chart3DData(points []r3.Vec) []opts.Chart3DData {
	data := make([]opts.Chart3DData, len(points))
	for i, p := range points {
		data[i] = opts.Chart3DData{Value: []interface{}{p.X, p.Y, p.Z}}
	}
	return data
}

// renderChart writes a standalone HTML page with the run's points in 3D and
// the great-circle arc between its first and last noise-free positions.
func renderChart(w io.Writer, run store.Run, points []store.Point) error {
	positions := make([]r3.Vec, len(points))
	for i, p := range points {
		positions[i] = p.Position
	}

	pad := 1.2 * run.Radius
	if pad <= 0 {
		pad = 1
	}

	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Sphere trajectory", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    run.Source,
			Subtitle: fmt.Sprintf("run=%s radius=%.4f m samples=%d rule=%s", run.ID, run.Radius, run.Samples, run.Rule),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X (m)", Min: -pad, Max: pad}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y (m)", Min: -pad, Max: pad}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z (m)", Min: -pad, Max: pad}),
	)
	scatter.AddSeries("trajectory", chart3DData(positions))

	if n := len(points); n >= 2 {
		start := r3.Sub(points[0].Position, points[0].Noise)
		end := r3.Sub(points[n-1].Position, points[n-1].Noise)
		scatter.AddSeries("reference arc", chart3DData(orientation.ArcPoints(start, end, run.Radius, arcSteps)))
	}

	return scatter.Render(w)
}

package app

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// projection maps a 3D point onto one of the coordinate planes.
type projection struct {
	name           string
	xLabel, yLabel string
	x, y           func(r3.Vec) float64
}

var projections = []projection{
	{"xy", "X (m)", "Y (m)", func(v r3.Vec) float64 { return v.X }, func(v r3.Vec) float64 { return v.Y }},
	{"xz", "X (m)", "Z (m)", func(v r3.Vec) float64 { return v.X }, func(v r3.Vec) float64 { return v.Z }},
	{"yz", "Y (m)", "Z (m)", func(v r3.Vec) float64 { return v.Y }, func(v r3.Vec) float64 { return v.Z }},
}

var trajectoryColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// saveProjections writes one PNG per coordinate plane, each axis fixed to
// ±limit so runs can be compared by eye.
func saveProjections(dir, prefix string, points []r3.Vec, limit float64) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create plot directory: %w", err)
	}

	files := make([]string, 0, len(projections))
	for _, proj := range projections {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s: %s projection", prefix, proj.name)
		p.X.Label.Text = proj.xLabel
		p.Y.Label.Text = proj.yLabel
		p.Add(plotter.NewGrid())

		xys := make(plotter.XYs, len(points))
		for i, pt := range points {
			xys[i].X = proj.x(pt)
			xys[i].Y = proj.y(pt)
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("%s projection: %w", proj.name, err)
		}
		line.Width = vg.Points(1)
		line.Color = trajectoryColor
		p.Add(line)

		// after Add, which widens the axes to the data
		p.X.Min, p.X.Max = -limit, limit
		p.Y.Min, p.Y.Max = -limit, limit

		file := filepath.Join(dir, fmt.Sprintf("%s_%s.png", prefix, proj.name))
		if err := p.Save(6*vg.Inch, 6*vg.Inch, file); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", file, err)
		}
		files = append(files, file)
	}
	return files, nil
}

// writeRunImages renders the projections and the status preview for a run.
func writeRunImages(dir string, r *Report, limit float64) ([]string, error) {
	files, err := saveProjections(dir, r.Run.ID, r.Result.Points, limit)
	if err != nil {
		return nil, err
	}
	status := filepath.Join(dir, r.Run.ID+"_status.png")
	if err := saveStatus(status, r.Run); err != nil {
		return nil, err
	}
	return append(files, status), nil
}

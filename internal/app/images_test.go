package app

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/relabs-tech/sphere_trajectory/internal/store"
)

func TestRenderStatus(t *testing.T) {
	img := renderStatus(statusLines(store.Run{Radius: 0.5, Samples: 101, SampleFreq: 100, RadiusWindows: 1}))
	assert.Equal(t, displayWidth, img.Bounds().Dx())
	assert.Equal(t, displayHeight, img.Bounds().Dy())

	lit := 0
	for _, v := range img.Pix {
		if v != 0 {
			lit++
		}
	}
	assert.Positive(t, lit)
}

func TestRenderStatusBlank(t *testing.T) {
	img := renderStatus(nil)
	for _, v := range img.Pix {
		require.Zero(t, v)
	}
}

func TestStatusLines(t *testing.T) {
	lines := statusLines(store.Run{Radius: 0.4567, Samples: 1000, SampleFreq: 100, RadiusWindows: 8, SkippedWindows: 2, NoisePeak: 0.0123})
	assert.Equal(t, []string{"R: 0.457 m", "N: 1000 @100Hz", "W: 8/10", "Noise: 0.012"}, lines)
}

func TestSaveStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.png")
	require.NoError(t, saveStatus(path, store.Run{Radius: 0.5}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, displayWidth, img.Bounds().Dx())
}

func TestSaveProjections(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "plots")
	points := []r3.Vec{{Y: 0.5}, {X: 0.1, Y: 0.49}, {X: 0.2, Y: 0.46, Z: 0.01}}

	files, err := saveProjections(dir, "run", points, 0.5)
	require.NoError(t, err)
	require.Len(t, files, 3)
	for i, name := range []string{"run_xy.png", "run_xz.png", "run_yz.png"} {
		assert.Equal(t, filepath.Join(dir, name), files[i])
		info, err := os.Stat(files[i])
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestRenderChart(t *testing.T) {
	run := store.Run{ID: "r1", Source: "sweep.txt", Radius: 0.5, Samples: 2, Rule: "midpoint"}
	points := []store.Point{
		{Index: 0, Position: r3.Vec{Y: 0.5}},
		{Index: 1, Position: r3.Vec{X: 0.5}},
	}

	var buf bytes.Buffer
	require.NoError(t, renderChart(&buf, run, points))
	html := buf.String()
	assert.Contains(t, html, "scatter3D")
	assert.Contains(t, html, "reference arc")
	assert.Contains(t, html, "sweep.txt")
}

func TestRunMockWritesRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock.txt")
	require.NoError(t, RunMock(path, sweepMockParams()))

	p := &Processor{Params: testParams()}
	report, err := p.ProcessFile(t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, "mock.txt", report.Run.Source)
	assert.InEpsilon(t, sweepRadius, report.Run.Radius, 0.05)
}

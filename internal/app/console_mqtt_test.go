package app

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestFormatRadius(t *testing.T) {
	payload, err := json.Marshal(RadiusMessage{RunID: "abc", Source: "sweep.txt", Radius: 0.5, Windows: 9, Skipped: 1})
	require.NoError(t, err)

	out, err := formatRadius(payload)
	require.NoError(t, err)
	assert.Contains(t, out, "[RADIUS] sweep.txt")
	assert.Contains(t, out, "R=0.5000 m")
	assert.Contains(t, out, "windows=9 skipped=1")
	assert.Contains(t, out, "run=abc")
}

func TestFormatTrajectoryElides(t *testing.T) {
	msg := TrajectoryMessage{RunID: "abc", Source: "sweep.txt", Radius: 0.5}
	for i := 0; i < 10; i++ {
		msg.Points = append(msg.Points, TrajectoryPoint{Index: i, Position: r3.Vec{Y: 0.5}})
	}
	payload, err := json.Marshal(msg)
	require.NoError(t, err)

	out, err := formatTrajectory(payload)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// header, 3 first, ellipsis, 3 last
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "10 points")
	assert.Contains(t, lines[1], "#0 ")
	assert.Contains(t, lines[4], "...")
	assert.Contains(t, lines[7], "#9 ")
}

func TestFormatTrajectoryShort(t *testing.T) {
	msg := TrajectoryMessage{Points: []TrajectoryPoint{{Index: 0}, {Index: 1}}}
	payload, err := json.Marshal(msg)
	require.NoError(t, err)

	out, err := formatTrajectory(payload)
	require.NoError(t, err)
	assert.NotContains(t, out, "...")
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 3)
}

func TestFormatRejectsGarbage(t *testing.T) {
	_, err := formatRadius([]byte("{"))
	assert.Error(t, err)
	_, err = formatTrajectory([]byte("nope"))
	assert.Error(t, err)
}

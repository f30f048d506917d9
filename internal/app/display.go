package app

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/relabs-tech/sphere_trajectory/internal/store"
)

// Same geometry as the probe's OLED so the preview can be pushed to it as is.
const (
	displayWidth  = 128
	displayHeight = 64
	lineHeight    = 13
)

func statusLines(run store.Run) []string {
	return []string{
		fmt.Sprintf("R: %.3f m", run.Radius),
		fmt.Sprintf("N: %d @%dHz", run.Samples, run.SampleFreq),
		fmt.Sprintf("W: %d/%d", run.RadiusWindows, run.RadiusWindows+run.SkippedWindows),
		fmt.Sprintf("Noise: %.3f", run.NoisePeak),
	}
}

// renderStatus draws up to four lines of text in white on black.
func renderStatus(lines []string) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, displayWidth, displayHeight))

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
	}

	for i, line := range lines {
		if (i+1)*lineHeight > displayHeight {
			break
		}
		drawer.Dot = fixed.P(0, (i+1)*lineHeight)
		drawer.DrawString(line)
	}
	return img
}

func saveStatus(path string, run store.Run) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create status image: %w", err)
	}
	if err := png.Encode(f, renderStatus(statusLines(run))); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode status image: %w", err)
	}
	return f.Close()
}

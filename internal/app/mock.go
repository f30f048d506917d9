package app

import (
	"log"

	"github.com/relabs-tech/sphere_trajectory/internal/imu"
)

// RunMock writes a synthetic recording to outPath.
func RunMock(outPath string, p imu.MockParams) error {
	rec := imu.MockRecording(p)
	if err := imu.SaveRecording(outPath, rec); err != nil {
		return err
	}
	log.Printf("mock: wrote %d samples (%.1f s at %d Hz, radius %.3f m) to %s",
		len(rec.Samples), rec.Duration(), p.SampleFreq, p.Radius, outPath)
	return nil
}

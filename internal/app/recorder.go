package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/sphere_trajectory/internal/config"
	"github.com/relabs-tech/sphere_trajectory/internal/imu"
)

// captureLines copies lines from r to w, normalising line endings, until r
// is exhausted or ctx is cancelled. Blank lines are kept since the recording
// format is positional; only a blank run at the very end is dropped. It
// returns the number of lines written.
func captureLines(ctx context.Context, r io.Reader, w io.Writer) (int, error) {
	reader := bufio.NewReader(r)
	out := bufio.NewWriter(w)
	lines := 0
	pendingBlank := 0

	for {
		raw, readErr := reader.ReadString('\n')
		if raw != "" {
			line := strings.TrimRight(raw, "\r\n")
			if strings.TrimSpace(line) == "" {
				pendingBlank++
			} else {
				for ; pendingBlank > 0; pendingBlank-- {
					if _, err := fmt.Fprintln(out); err != nil {
						return lines, err
					}
					lines++
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return lines, err
				}
				lines++
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) || ctx.Err() != nil {
				break
			}
			out.Flush()
			return lines, fmt.Errorf("serial read error: %w", readErr)
		}
	}
	return lines, out.Flush()
}

// RunRecorder captures a recording streamed by the probe over its serial link
// into outPath. Capture ends when the port closes or on Ctrl+C; the file is
// then checked with the recording parser.
func RunRecorder(outPath string) error {
	cfg := config.Get()

	serialOpts := serial.OpenOptions{
		PortName:              cfg.SerialPort,
		BaudRate:              uint(cfg.SerialBaudRate),
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}
	defer port.Close()
	log.Printf("recorder: serial port opened on %s at %d baud", serialOpts.PortName, serialOpts.BaudRate)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create recording: %w", err)
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// unblocks the pending read
		<-ctx.Done()
		port.Close()
	}()

	log.Println("recorder: capturing, press Ctrl+C to stop")
	lines, err := captureLines(ctx, port, f)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write recording: %w", err)
	}
	log.Printf("recorder: captured %d lines to %s", lines, outPath)

	rec, err := imu.ReadRecording(outPath)
	if err != nil {
		return fmt.Errorf("captured file is not a usable recording: %w", err)
	}
	log.Printf("recorder: %d samples, %.1f s at %d Hz", len(rec.Samples), rec.Duration(), rec.Calibration.SampleFreq)
	return nil
}

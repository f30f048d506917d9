package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/relabs-tech/sphere_trajectory/internal/config"
	"github.com/relabs-tech/sphere_trajectory/internal/imu"
	"github.com/relabs-tech/sphere_trajectory/internal/store"
	"github.com/relabs-tech/sphere_trajectory/internal/trajectory"
)

// Processor runs recordings through the trajectory pipeline and fans the
// result out to whichever sinks are set. Nil sinks are skipped.
type Processor struct {
	Params trajectory.Params

	Store     *store.Store
	Publisher Publisher
	Hub       *Hub

	TopicRadius     string
	TopicTrajectory string

	PlotDir       string // empty disables plots
	PlotAxisLimit float64
}

// Report is everything produced for one recording.
type Report struct {
	Run       store.Run
	Recording *imu.Recording
	Result    *trajectory.Result
	Files     []string // plots and status image
}

// NewProcessor configures a processor from cfg without any sinks attached.
func NewProcessor(cfg *config.Config) *Processor {
	return &Processor{
		Params:          cfg.TrajectoryParams(),
		TopicRadius:     cfg.TopicRadius,
		TopicTrajectory: cfg.TopicTrajectory,
		PlotDir:         cfg.PlotOutputDir,
		PlotAxisLimit:   cfg.PlotAxisLimit,
	}
}

// ProcessFile loads and processes one recording file.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Report, error) {
	rec, err := imu.ReadRecording(path)
	if err != nil {
		return nil, err
	}
	return p.Process(ctx, filepath.Base(path), rec)
}

// Process runs the pipeline on rec. The computation happens off the calling
// goroutine; cancelling ctx returns immediately and discards the result.
func (p *Processor) Process(ctx context.Context, source string, rec *imu.Recording) (*Report, error) {
	var out trajectory.Outcome
	select {
	case out = <-trajectory.RunAsync(ctx, rec.Input(), p.Params):
	case <-ctx.Done():
		return nil, fmt.Errorf("process %s: %w", source, ctx.Err())
	}
	if out.Err != nil {
		return nil, fmt.Errorf("process %s: %w", source, out.Err)
	}

	res := out.Result
	noiseMean, noisePeak := res.NoiseMagnitude()
	run := store.Run{
		Source:         source,
		SampleFreq:     rec.Calibration.SampleFreq,
		Samples:        len(rec.Samples),
		Rule:           p.Params.Rule.String(),
		FloatingWindow: p.Params.FloatingWindow,
		Radius:         res.Radius.Radius,
		RadiusWindows:  res.Radius.Windows,
		SkippedWindows: res.Radius.Skipped,
		NoiseMean:      noiseMean,
		NoisePeak:      noisePeak,
	}

	if p.Store != nil {
		saved, err := p.Store.SaveRun(ctx, run, resultPoints(res))
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", source, err)
		}
		run = saved
	} else {
		run.ID = uuid.NewString()
		run.CreatedAt = time.Now().UTC()
	}

	report := &Report{Run: run, Recording: rec, Result: res}

	if p.PlotDir != "" {
		files, err := writeRunImages(p.PlotDir, report, p.PlotAxisLimit)
		if err != nil {
			if p.Store != nil {
				// a failed run must not stay in history
				if delErr := p.Store.DeleteRun(context.WithoutCancel(ctx), run.ID); delErr != nil {
					log.Printf("process: %s: rollback of run %s: %v", source, run.ID, delErr)
				}
			}
			return nil, fmt.Errorf("process %s: %w", source, err)
		}
		report.Files = files
	}

	// sinks below are best effort: the run is already stored
	if p.Publisher != nil {
		if err := publishReport(p.Publisher, p.TopicRadius, p.TopicTrajectory, report); err != nil {
			log.Printf("process: %s: %v", source, err)
		}
	}
	if p.Hub != nil {
		if err := p.Hub.BroadcastJSON(radiusMessage(report)); err != nil {
			log.Printf("process: %s: broadcast: %v", source, err)
		}
	}
	return report, nil
}

// ProcessFiles processes independent recordings concurrently. The first
// failure cancels the rest; on success reports are in input order.
func (p *Processor) ProcessFiles(ctx context.Context, paths []string) ([]*Report, error) {
	reports := make([]*Report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			r, err := p.ProcessFile(ctx, path)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func resultPoints(res *trajectory.Result) []store.Point {
	points := make([]store.Point, len(res.Points))
	for i, pos := range res.Points {
		points[i] = store.Point{Index: i, Position: pos, Noise: res.Noise[i]}
	}
	return points
}

// RunProcess is the batch entry point: process every file, store and
// publish the results.
func RunProcess(paths []string) error {
	if len(paths) == 0 {
		return errors.New("no recording files given")
	}
	cfg := config.Get()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer st.Close()

	proc := NewProcessor(cfg)
	proc.Store = st

	if cfg.MQTTBroker != "" {
		pub, err := NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTClientIDProcessor)
		if err != nil {
			log.Printf("process: MQTT unavailable, results will not be published: %v", err)
		} else {
			defer pub.Close()
			proc.Publisher = pub
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("process: %d recording(s), rule=%s window=%d", len(paths), proc.Params.Rule, proc.Params.FloatingWindow)
	reports, err := proc.ProcessFiles(ctx, paths)
	if err != nil {
		return err
	}

	for _, r := range reports {
		log.Printf("process: %s radius=%.4f m windows=%d skipped=%d noise mean=%.4f peak=%.4f run=%s",
			r.Run.Source, r.Run.Radius, r.Run.RadiusWindows, r.Run.SkippedWindows,
			r.Run.NoiseMean, r.Run.NoisePeak, r.Run.ID)
		for _, f := range r.Files {
			log.Printf("process:   wrote %s", f)
		}
	}
	return nil
}

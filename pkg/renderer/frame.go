package renderer

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// FrameConfig contains the parameters of a single frame
type FrameConfig struct {
	Width           int                    // Image width in pixels
	Height          int                    // Image height in pixels
	SamplesPerPixel int                    // Camera samples averaged per pixel
	MaxBounces      int                    // Scatter events before a path is cut off
	NumWorkers      int                    // Parallel workers (0 = runtime.NumCPU())
	Seed            int64                  // Seed for all per-row random generators
	Sky             integrator.SkyGradient // Environment; zero value selects integrator.DefaultSky
}

// DefaultFrameConfig returns the default frame parameters
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		Width:           1280,
		Height:          800,
		SamplesPerPixel: 10,
		MaxBounces:      integrator.DefaultMaxBounces,
		Seed:            1,
	}
}

// Validate reports the first invalid field wrapped in ErrInvalidFrame
func (c FrameConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width %d must be positive", ErrInvalidFrame, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height %d must be positive", ErrInvalidFrame, c.Height)
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samples per pixel %d must be at least 1", ErrInvalidFrame, c.SamplesPerPixel)
	case c.MaxBounces < 1:
		return fmt.Errorf("%w: max bounces %d must be at least 1", ErrInvalidFrame, c.MaxBounces)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: worker count %d must not be negative", ErrInvalidFrame, c.NumWorkers)
	}
	return nil
}

// Renderer renders frames of a fixed world and camera
type Renderer struct {
	world      core.Hitable
	camera     *geometry.Camera
	integrator integrator.Integrator
	config     FrameConfig
	progress   *Progress
}

// NewRenderer validates config and prepares a renderer
func NewRenderer(world core.Hitable, camera *geometry.Camera, config FrameConfig) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if world == nil {
		return nil, fmt.Errorf("%w: nil world", ErrInvalidFrame)
	}
	if camera == nil {
		return nil, fmt.Errorf("%w: nil camera", ErrInvalidFrame)
	}

	if config.NumWorkers == 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	// More workers than rows would only idle
	config.NumWorkers = min(config.NumWorkers, config.Height)

	sky := config.Sky
	if sky == (integrator.SkyGradient{}) {
		sky = integrator.DefaultSky
	}

	return &Renderer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(config.MaxBounces, sky),
		config:     config,
		progress:   NewProgress(config.Height),
	}, nil
}

// Config returns the effective configuration, with the worker count resolved
func (r *Renderer) Config() FrameConfig {
	return r.config
}

// Progress returns the row counter updated during Render
func (r *Renderer) Progress() *Progress {
	return r.progress
}

// Render renders the frame, row 0 at the top of the image.
//
// If ctx is cancelled the rows finished so far are kept, the remaining rows
// stay black, and the error wraps both ErrInterrupted and ctx.Err().
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, FrameStats, error) {
	cfg := r.config
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	stats := FrameStats{
		Width:           cfg.Width,
		Height:          cfg.Height,
		SamplesPerPixel: cfg.SamplesPerPixel,
		Workers:         make([]WorkerStats, cfg.NumWorkers),
	}
	for i := range stats.Workers {
		stats.Workers[i].ID = i
	}
	r.progress.reset(cfg.Height)

	logger.Infof("rendering %dx%d frame, %d spp, %d bounces, %d workers",
		cfg.Width, cfg.Height, cfg.SamplesPerPixel, cfg.MaxBounces, cfg.NumWorkers)
	start := time.Now()

	pool := newWorkerPool(&frameJob{renderer: r, img: img}, cfg.NumWorkers)
	pool.Start(ctx)
	for y := 0; y < cfg.Height; y++ {
		pool.SubmitTask(RowTask{Row: y})
	}

	var interruptErr error
	for received := 0; received < cfg.Height; received++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Err != nil {
			interruptErr = result.Err
			continue
		}
		stats.add(result)
		r.progress.rowDone()
	}
	pool.Stop()

	stats.RenderTime = time.Since(start)
	for _, w := range stats.Workers {
		logger.Debugf("worker %d: %d rows, %d samples in %s", w.ID, w.Rows, w.Samples, w.BusyTime)
	}

	if interruptErr != nil {
		stats.Interrupted = true
		logger.Warningf("render interrupted after %d of %d rows: %v", stats.RowsCompleted, cfg.Height, interruptErr)
		return img, stats, fmt.Errorf("%w: %w", ErrInterrupted, interruptErr)
	}

	logger.Infof("frame rendered in %s", stats.RenderTime)
	return img, stats, nil
}

// RenderFrame renders a single frame of world as seen by camera
func RenderFrame(ctx context.Context, world core.Hitable, camera *geometry.Camera, config FrameConfig) (*image.RGBA, FrameStats, error) {
	r, err := NewRenderer(world, camera, config)
	if err != nil {
		return nil, FrameStats{}, err
	}
	return r.Render(ctx)
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/pkg/sysinfo"
	"github.com/urfave/cli"
)

// renderOptions holds the render command flags. Zero values fall back to
// the configuration and then to the scene defaults.
type renderOptions struct {
	Scene     string
	Width     int
	Height    int
	SPP       int
	Bounces   int
	Workers   int
	Seed      int64
	Out       string
	OutputDir string
	NoBVH     bool
	Timeout   time.Duration
	Thumbnail uint
	S3Key     string
}

func renderOptionsFromFlags(ctx *cli.Context, cfg config.Config) renderOptions {
	opts := renderOptions{
		Scene:     ctx.String("scene"),
		Width:     ctx.Int("width"),
		Height:    ctx.Int("height"),
		SPP:       ctx.Int("spp"),
		Bounces:   ctx.Int("bounces"),
		Workers:   ctx.Int("workers"),
		Seed:      ctx.Int64("seed"),
		Out:       ctx.String("out"),
		OutputDir: cfg.OutputDir,
		NoBVH:     ctx.Bool("no-bvh"),
		Timeout:   ctx.Duration("timeout"),
		Thumbnail: ctx.Uint("thumbnail"),
		S3Key:     ctx.String("s3-key"),
	}

	if opts.Workers == 0 {
		opts.Workers = cfg.Workers
	}
	if opts.Workers == 0 {
		opts.Workers = sysinfo.LogicalCores()
	}
	if opts.Seed == 0 {
		opts.Seed = cfg.ResolveSeed()
	}
	return opts
}

// RenderFrame renders a single frame of a built-in scene and writes it to disk.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	opts := renderOptionsFromFlags(ctx, cfg)

	var uploader output.Uploader
	if opts.S3Key != "" {
		if uploader, err = output.NewS3Uploader(cfg.S3); err != nil {
			return err
		}
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, opts.Timeout)
		defer cancel()
	}

	_, err = runRender(runCtx, opts, uploader, os.Stderr)
	return err
}

// runRender renders opts.Scene and returns the path of the written frame.
// An interrupted render writes nothing.
func runRender(ctx context.Context, opts renderOptions, uploader output.Uploader, progressOut io.Writer) (string, error) {
	logger.Infof("host: %s", sysinfo.Detect())

	sc, err := scene.Prepare(scene.Options{
		Name:            opts.Scene,
		Width:           opts.Width,
		Height:          opts.Height,
		SamplesPerPixel: opts.SPP,
		MaxBounces:      opts.Bounces,
		NumWorkers:      opts.Workers,
		Seed:            opts.Seed,
		Linear:          opts.NoBVH,
	})
	if err != nil {
		return "", err
	}
	logger.Noticef("rendering scene %q (%d primitives, seed %d)", sc.Name, sc.PrimitiveCount(), sc.Frame.Seed)
	if sc.BVH != nil {
		displayBVHStats(sc.BVH.Stats())
	}

	r, err := renderer.NewRenderer(sc.World, sc.Camera, sc.Frame)
	if err != nil {
		return "", err
	}

	progressCtx, stopProgress := context.WithCancel(ctx)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		r.Progress().Report(progressCtx, time.Second, func(fraction float64) {
			drawProgressBar(progressOut, fraction)
		})
	}()

	img, stats, err := r.Render(ctx)
	stopProgress()
	<-progressDone
	fmt.Fprintln(progressOut)

	displayFrameStats(stats)
	if err != nil {
		return "", err
	}

	path := opts.Out
	if path == "" {
		path = defaultOutputPath(opts.OutputDir, sc.Name, time.Now())
	}
	if err := output.SaveImage(path, img); err != nil {
		return "", err
	}
	logger.Noticef("wrote frame to %s", path)

	if opts.Thumbnail > 0 {
		thumbPath := output.ThumbnailPath(path)
		if err := output.SaveImage(thumbPath, output.Thumbnail(img, opts.Thumbnail)); err != nil {
			return "", err
		}
		logger.Infof("wrote %dpx thumbnail to %s", opts.Thumbnail, thumbPath)
	}

	if uploader != nil && opts.S3Key != "" {
		format, err := output.FormatFromPath(path)
		if err != nil {
			return "", err
		}
		data, err := output.EncodeBytes(img, format)
		if err != nil {
			return "", err
		}
		if err := uploader.Upload(ctx, opts.S3Key, data, format.ContentType()); err != nil {
			return "", err
		}
	}

	return path, nil
}

// defaultOutputPath returns <dir>/<scene>/render_<timestamp>.png
func defaultOutputPath(dir, sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join(dir, sceneName, fmt.Sprintf("render_%s.png", timestamp))
}

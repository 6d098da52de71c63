package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/df07/go-pathtracer/web/server"
	"github.com/urfave/cli"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the HTTP render service until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	opts := server.Options{
		Address:       cfg.ServerAddress,
		RenderTimeout: cfg.RenderTimeout,
		Workers:       cfg.Workers,
	}
	if addr := ctx.String("addr"); addr != "" {
		opts.Address = addr
	}
	if timeout := ctx.Duration("timeout"); timeout > 0 {
		opts.RenderTimeout = timeout
	}

	srv := server.NewServer(opts)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	logger.Notice("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

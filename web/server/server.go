package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

var logger = log.New("server")

// Limits on render request parameters
const (
	maxDimension = 2000
	maxSamples   = 1000
	maxBounces   = 200
)

// Options configures the render service
type Options struct {
	Address       string        // Listen address, e.g. ":8080"
	RenderTimeout time.Duration // Upper bound on a single render (0 = none)
	Workers       int           // Workers per render (0 = one per CPU)
}

// Server handles web requests for the path tracer
type Server struct {
	opts Options
	echo *echo.Echo
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string        // Registered scene name
	Width      int           // Image width (0 = scene default)
	Height     int           // Image height (0 = scene default)
	Samples    int           // Samples per pixel (0 = scene default)
	MaxBounces int           // Bounce limit (0 = scene default)
	Seed       int64         // Sampling seed
	Format     output.Format // Response encoding
}

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

// NewServer creates a new web server
func NewServer(opts Options) *Server {
	s := &Server{opts: opts, echo: echo.New()}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(requestLogger)

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/render", s.handleRender)
	return s
}

// Handler exposes the routes for embedding or testing
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the configured address until Shutdown is called
func (s *Server) Start() error {
	logger.Noticef("starting web server on http://localhost%s", s.opts.Address)
	if err := s.echo.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight renders
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		logger.Infof("%s %s -> %d in %s", c.Request().Method, c.Request().URL.RequestURI(),
			c.Response().Status, time.Since(start))
		return err
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the registered scenes
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.Describe())
}

// handleRender renders one frame and returns the encoded image
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	sc, err := scene.Prepare(scene.Options{
		Name:            req.Scene,
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
		MaxBounces:      req.MaxBounces,
		NumWorkers:      s.opts.Workers,
		Seed:            req.Seed,
	})
	if errors.Is(err, scene.ErrUnknownScene) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	// The request context cancels the render when the client goes away
	ctx := c.Request().Context()
	if s.opts.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RenderTimeout)
		defer cancel()
	}

	img, stats, err := renderer.RenderFrame(ctx, sc.World, sc.Camera, sc.Frame)
	switch {
	case errors.Is(err, renderer.ErrInvalidFrame):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "render timed out"})
	case err != nil:
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	}

	data, err := output.EncodeBytes(img, req.Format)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	header := c.Response().Header()
	header.Set("X-Render-Time", stats.RenderTime.String())
	header.Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	return c.Blob(http.StatusOK, req.Format.ContentType(), data)
}

// parseRenderRequest parses and validates the query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "default", Seed: 1}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "spp", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(values, "bounces", 0, 1, maxBounces); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}
	if value := values.Get("format"); value != "" {
		if req.Format, err = output.ParseFormat(value); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

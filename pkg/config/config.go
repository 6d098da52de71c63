package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/joho/godotenv"
)

var ErrInvalidValue = errors.New("config: invalid value")

// Config holds settings read from the environment
type Config struct {
	OutputDir     string
	Workers       int           // 0 = one per logical CPU
	Seed          int64         // 0 = derive from the clock
	ServerAddress string
	RenderTimeout time.Duration // Deadline for HTTP renders
	S3            output.S3Config
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		OutputDir:     "output",
		ServerAddress: ":8080",
		RenderTimeout: 2 * time.Minute,
	}
}

// Load reads envFile, if it exists, into the process environment and then
// builds a Config from the environment. Variables already set win over
// the file. A missing file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := Default()
	cfg.OutputDir = getEnv("PATHTRACER_OUTPUT_DIR", cfg.OutputDir)
	cfg.ServerAddress = getEnv("PATHTRACER_SERVER_ADDRESS", cfg.ServerAddress)

	var err error
	if cfg.Workers, err = getInt("PATHTRACER_WORKERS", cfg.Workers); err != nil {
		return Config{}, err
	}
	if cfg.Workers < 0 {
		return Config{}, fmt.Errorf("%w: PATHTRACER_WORKERS=%d must not be negative", ErrInvalidValue, cfg.Workers)
	}
	if cfg.Seed, err = getInt64("PATHTRACER_SEED", cfg.Seed); err != nil {
		return Config{}, err
	}
	if cfg.RenderTimeout, err = getDuration("PATHTRACER_RENDER_TIMEOUT", cfg.RenderTimeout); err != nil {
		return Config{}, err
	}

	cfg.S3 = output.S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		Bucket:    os.Getenv("S3_BUCKET"),
	}

	return cfg, nil
}

// ResolveSeed returns Seed, or a clock-derived seed when Seed is 0
func (c Config) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidValue, key, value)
	}
	return n, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidValue, key, value)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a positive duration", ErrInvalidValue, key, value)
	}
	return d, nil
}

// ABOUTME: Runtime configuration for the wavplay command
// ABOUTME: Reads an optional .env file and WAVPLAY_* environment variables
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/gtRZync/wav-player/pkg/sound"
	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvBackend      = "WAVPLAY_BACKEND"
	EnvDrainTimeout = "WAVPLAY_DRAIN_TIMEOUT"
	EnvLogFile      = "WAVPLAY_LOG_FILE"
	EnvNoTUI        = "WAVPLAY_NO_TUI"
	EnvMaxDataSize  = "WAVPLAY_MAX_DATA_SIZE"
)

// DefaultLogFile is where logs go when nothing else is configured
const DefaultLogFile = "wavplay.log"

// Config holds the command configuration
type Config struct {
	Backend      string
	DrainTimeout time.Duration
	LogFile      string
	NoTUI        bool
	MaxDataSize  uint32
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DrainTimeout: sound.DefaultDrainTimeout,
		LogFile:      DefaultLogFile,
	}
}

// Load reads the given env files (".env" when none are given) into the
// process environment and builds the configuration from it. Missing env
// files are not an error; variables already set in the environment win.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a variable lookup
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := Default()

	if v := getenv(EnvBackend); v != "" {
		cfg.Backend = v
	}
	if v := getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := getenv(EnvDrainTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvDrainTimeout, err)
		}
		cfg.DrainTimeout = d
	}
	if v := getenv(EnvNoTUI); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvNoTUI, err)
		}
		cfg.NoTUI = b
	}
	if v := getenv(EnvMaxDataSize); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvMaxDataSize, err)
		}
		cfg.MaxDataSize = uint32(n)
	}

	return cfg, nil
}

// Engine returns the engine configuration
func (c *Config) Engine() sound.Config {
	return sound.Config{
		Backend:      c.Backend,
		DrainTimeout: c.DrainTimeout,
		MaxDataSize:  c.MaxDataSize,
	}
}

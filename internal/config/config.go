package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// LogLevelEnv selects the log level when neither the config file nor a flag
// sets one.
const LogLevelEnv = "IMAGE_RECOLOR_LOG_LEVEL"

// Defaults applied by Resolve.
const (
	DefaultWorkers     = 1
	DefaultJPEGQuality = 95
	DefaultLogLevel    = "info"
	DefaultSuffix      = "-purple"
)

// Config holds the settings of one recolor run.
type Config struct {
	// Paths
	Source      string `json:"source"`
	Destination string `json:"destination"`

	// Partitioning
	Workers       int  `json:"workers"`
	MaxConcurrent int  `json:"max_concurrent"`
	KeepRowGap    bool `json:"keep_row_gap"`

	// Output
	JPEGQuality int    `json:"jpeg_quality"`
	LogLevel    string `json:"log_level"`
}

// Flags carries command-line values that override the config file.
// Zero values mean "not set".
type Flags struct {
	Source        string
	Destination   string
	Workers       int
	MaxConcurrent int
	KeepRowGap    bool
	JPEGQuality   int
	LogLevel      string
}

// Load reads a JSON config file. Fields not set in the file keep their zero
// values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies flag overrides and fills empty fields with defaults.
//
// Flags win when non-zero. The log level falls back to LogLevelEnv, then to
// DefaultLogLevel. An empty destination is derived from the source by adding
// DefaultSuffix before the extension.
func (c *Config) Resolve(flags Flags) {
	if flags.Source != "" {
		c.Source = flags.Source
	}
	if flags.Destination != "" {
		c.Destination = flags.Destination
	}
	if flags.Workers != 0 {
		c.Workers = flags.Workers
	}
	if flags.MaxConcurrent != 0 {
		c.MaxConcurrent = flags.MaxConcurrent
	}
	if flags.KeepRowGap {
		c.KeepRowGap = true
	}
	if flags.JPEGQuality != 0 {
		c.JPEGQuality = flags.JPEGQuality
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.LogLevel == "" {
		c.LogLevel = os.Getenv(LogLevelEnv)
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.LogLevel = strings.ToLower(c.LogLevel)

	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = runtime.GOMAXPROCS(0)
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = DefaultJPEGQuality
	}
	if c.Destination == "" && c.Source != "" {
		c.Destination = DerivedDestination(c.Source)
	}
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Source == "" {
		errs = append(errs, errors.New("source image is required"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg_quality must be 1-100, got %d", c.JPEGQuality))
	}
	if c.Source != "" && c.Destination != "" && filepath.Clean(c.Source) == filepath.Clean(c.Destination) {
		errs = append(errs, errors.New("destination must differ from source"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// DerivedDestination returns source with DefaultSuffix inserted before the
// extension, e.g. "flowers.jpg" -> "flowers-purple.jpg".
func DerivedDestination(source string) string {
	ext := filepath.Ext(source)
	return strings.TrimSuffix(source, ext) + DefaultSuffix + ext
}

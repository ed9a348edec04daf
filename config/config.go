package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the settings for the timing harnesses
type Config struct {
	// DUDECT-style timing suite settings
	Dudect struct {
		Samples      int     `toml:"samples"`       // samples per class
		Reps         int     `toml:"reps"`          // primitive invocations per sample
		BufSize      int     `toml:"buf_size"`      // working buffer size in bytes
		TThreshold   float64 `toml:"t_threshold"`   // |t| above this is a leak
		ThrashBytes  int     `toml:"thrash_bytes"`  // cache-thrash buffer size (0 disables)
		ThrashStride int     `toml:"thrash_stride"` // thrash read stride
		Seed         uint64  `toml:"seed"`          // PRNG seed for input generation
	} `toml:"dudect"`

	// Throughput bench settings
	Bench struct {
		TargetBytes int   `toml:"target_bytes"` // total traffic per measurement
		Sizes       []int `toml:"sizes"`        // buffer sizes to sweep
	} `toml:"bench"`

	// Display settings
	Display struct {
		ColorOutput bool `toml:"color_output"`
		RefreshMS   int  `toml:"refresh_ms"` // passed to the TUI, which redraws per result and does not read it
	} `toml:"display"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Dudect.Samples = 20000
	cfg.Dudect.Reps = 8
	cfg.Dudect.BufSize = 1024
	cfg.Dudect.TThreshold = 10.0
	cfg.Dudect.ThrashBytes = 16 * 1024 * 1024
	cfg.Dudect.ThrashStride = 64
	cfg.Dudect.Seed = 0x123456789ABCDEF0

	cfg.Bench.TargetBytes = 64 * 1024 * 1024
	cfg.Bench.Sizes = []int{
		1, 8, 16, 32, 64, 128, 256, 512,
		1024, 2048, 4096, 16384, 65536, 262144, 1048576,
	}

	cfg.Display.ColorOutput = true
	cfg.Display.RefreshMS = 250

	return cfg
}

// GetConfigPath returns the platform-specific config file path
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "flatline")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "flatline")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file
// yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// Validate checks that the harness settings are usable
func (c *Config) Validate() error {
	if c.Dudect.Samples < 2 {
		return fmt.Errorf("dudect.samples must be at least 2, got %d", c.Dudect.Samples)
	}
	if c.Dudect.Reps < 1 {
		return fmt.Errorf("dudect.reps must be at least 1, got %d", c.Dudect.Reps)
	}
	if c.Dudect.BufSize < 1 {
		return fmt.Errorf("dudect.buf_size must be at least 1, got %d", c.Dudect.BufSize)
	}
	if c.Dudect.TThreshold <= 0 {
		return fmt.Errorf("dudect.t_threshold must be positive, got %g", c.Dudect.TThreshold)
	}
	if c.Dudect.ThrashBytes < 0 {
		return fmt.Errorf("dudect.thrash_bytes must not be negative, got %d", c.Dudect.ThrashBytes)
	}
	if c.Dudect.ThrashBytes > 0 && c.Dudect.ThrashStride < 1 {
		return fmt.Errorf("dudect.thrash_stride must be at least 1, got %d", c.Dudect.ThrashStride)
	}
	if c.Bench.TargetBytes < 1 {
		return fmt.Errorf("bench.target_bytes must be at least 1, got %d", c.Bench.TargetBytes)
	}
	for _, s := range c.Bench.Sizes {
		if s < 1 {
			return fmt.Errorf("bench.sizes entries must be at least 1, got %d", s)
		}
	}
	return nil
}

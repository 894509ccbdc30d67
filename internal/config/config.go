// Package config loads the service configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration.
type Config struct {
	Listen          string   `toml:"listen"`
	DataDir         string   `toml:"data_dir"`
	StaticDir       string   `toml:"static_dir"`
	FFmpeg          string   `toml:"ffmpeg"`
	ProcessTimeout  Duration `toml:"process_timeout"`
	DiagnosticLimit int      `toml:"diagnostic_limit"`
	MaxUploadMB     int64    `toml:"max_upload_mb"`
	LogLevel        string   `toml:"log_level"`
	LogFormat       string   `toml:"log_format"`
	Watch           Watch    `toml:"watch"`
}

// Watch configures watch-folder processing.
type Watch struct {
	Dir     string   `toml:"dir"`
	OutDir  string   `toml:"out_dir"`
	Filters []string `toml:"filters"`
	Workers int      `toml:"workers"`
}

// Duration is a time.Duration written as a Go duration string ("90s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:          ":8000",
		DataDir:         "data",
		StaticDir:       "static",
		FFmpeg:          "ffmpeg",
		ProcessTimeout:  Duration{10 * time.Minute},
		DiagnosticLimit: 400,
		MaxUploadMB:     2048,
		LogLevel:        "info",
		LogFormat:       "text",
		Watch: Watch{
			OutDir:  "processed",
			Workers: 1,
		},
	}
}

// Load reads path over Default. An empty path returns the defaults. Keys
// the file sets but Config does not know are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}

	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}

		return Config{}, fmt.Errorf("config: load %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks required fields and limits.
func (c Config) Validate() error {
	var errs []error

	if c.Listen == "" {
		errs = append(errs, errors.New("listen must not be empty"))
	}

	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir must not be empty"))
	}

	if c.FFmpeg == "" {
		errs = append(errs, errors.New("ffmpeg must not be empty"))
	}

	if c.ProcessTimeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("process_timeout must be positive, got %s", c.ProcessTimeout))
	}

	if c.DiagnosticLimit <= 0 {
		errs = append(errs, fmt.Errorf("diagnostic_limit must be positive, got %d", c.DiagnosticLimit))
	}

	if c.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}

	if c.Watch.Workers <= 0 {
		errs = append(errs, fmt.Errorf("watch.workers must be positive, got %d", c.Watch.Workers))
	}

	return errors.Join(errs...)
}

// MaxUploadBytes returns the upload limit in bytes.
func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

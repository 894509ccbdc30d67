package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-mms/internal/cli"
	"github.com/cwbudde/algo-mms/internal/config"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config    string      `short:"c" type:"path" help:"Path to TOML config file (optional)."`
	LogLevel  string      `help:"Log level: debug, info, warn or error." placeholder:"LEVEL"`
	LogFormat string      `help:"Log format: text or json." placeholder:"FORMAT"`
	FFmpeg    string      `help:"Path to the ffmpeg binary." placeholder:"PATH"`
	Version   versionFlag `short:"v" help:"Show version information."`

	ctx context.Context
}

// context returns the signal-aware context of the invocation.
func (g *Globals) context() context.Context {
	if g.ctx == nil {
		return context.Background()
	}

	return g.ctx
}

type versionFlag bool

// BeforeReset prints the version and exits before flags are validated.
func (versionFlag) BeforeReset(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(vars["version"])
	app.Exit(0)

	return nil
}

// load reads the config file and applies flag overrides.
func (g *Globals) load() (config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return config.Config{}, err
	}

	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}

	if g.LogFormat != "" {
		cfg.LogFormat = g.LogFormat
	}

	if g.FFmpeg != "" {
		cfg.FFmpeg = g.FFmpeg
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}

	if err := setupLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func setupLogging(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)

	if format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return nil
}

// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/tomtom215/closetmate/internal/config"
	"github.com/tomtom215/closetmate/internal/logging"
	"github.com/tomtom215/closetmate/internal/metrics"
)

// Build information, set via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		logging.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}

// app carries the configuration loaded in the root Before hook.
type app struct {
	cfg *config.Config
}

func newApp() *cli.Command {
	a := &app{}
	return &cli.Command{
		Name:    "closetmate",
		Usage:   "Wardrobe outfit recommendation from historical outfit embeddings",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "model-dir",
				Usage: "Bundle store directory (overrides MODEL_DIR)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Minimum log level (overrides LOG_LEVEL)",
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			a.trainCommand(),
			a.recommendCommand(),
			a.inspectCommand(),
			a.listCommand(),
			a.pruneCommand(),
		},
	}
}

// before loads configuration, applies root flag overrides, and initializes logging.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return ctx, fmt.Errorf("config file: %w", err)
		}
		if err := os.Setenv(config.ConfigPathEnvVar, path); err != nil {
			return ctx, err
		}
	}

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return ctx, err
	}
	if dir := cmd.String("model-dir"); dir != "" {
		cfg.Model.Dir = dir
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.Logging.Level = level
		if err := cfg.Validate(); err != nil {
			return ctx, err
		}
	}
	a.cfg = cfg

	logging.Init(cfg.LoggingConfig())
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx = logging.ContextWithNewCorrelationID(ctx)
	return ctx, nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kjkrol/gokdraw/internal/config"
	"github.com/kjkrol/gokdraw/internal/platform"
	"github.com/kjkrol/gokdraw/pkg/gfx"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "gokdraw:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("gokdraw", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "path to a TOML config file")
	shape := flags.String("shape", "", "shape to draw: fan, indexed-quad or flat-quad")
	points := flags.Int("points", 0, "perimeter points of the fan")
	seed := flags.Uint64("seed", 0, "seed for the fan vertex colors")
	logLevel := flags.String("log-level", "", "debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if flags.Changed("shape") {
		cfg.Surface.Shape = *shape
	}
	if flags.Changed("points") {
		cfg.Surface.Points = *points
	}
	if flags.Changed("seed") {
		cfg.Surface.Seed = *seed
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	gfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gfx.Logger().Info("starting", "shape", cfg.Surface.Shape, "points", cfg.Surface.Points)
	return platform.Run(ctx, cfg.WindowConfig(), gfx.NewSurfaceFactory(cfg.SurfaceConfig()))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-boids-seeker/internal/game"
	"github.com/lao-tseu-is-alive/go-boids-seeker/internal/headless"
	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/report"
	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/simulation"
	"github.com/tochemey/goakt/v3/log"
	"github.com/urfave/cli"
)

const (
	targetPointer = "pointer"
	targetLeader  = "leader"
	targetFixed   = "fixed"
)

func main() {
	app := makeapp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "boids:", err)
		os.Exit(1)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "boids"
	app.Usage = "a flock of boids chasing a moving target"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "JSON or TOML configuration file; defaults are used when empty"},
		cli.BoolFlag{Name: "headless", Usage: "run without a window"},
		cli.IntFlag{Name: "frames", Value: 600, Usage: "number of frames in headless mode"},
		cli.Float64Flag{Name: "dt", Value: 1.0 / 60, Usage: "time step in seconds in headless mode"},
		cli.StringFlag{Name: "target", Value: "", Usage: "target source: pointer, leader or fixed (headless defaults to leader)"},
		cli.StringFlag{Name: "report", Value: "", Usage: "write the run metrics as JSON to this file"},
		cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
	}
	app.Action = run
	return app
}

func run(c *cli.Context) error {
	level := log.InfoLevel
	if c.Bool("debug") {
		level = log.DebugLevel
	}
	logger := log.New(level, os.Stderr)

	cfg := simulation.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := simulation.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Infof("loaded configuration from %s", path)
	}

	flock, err := simulation.NewFlock(*cfg, simulation.WithLogger(logger))
	if err != nil {
		return err
	}

	isHeadless := c.Bool("headless")
	source, err := targetSource(c.String("target"), isHeadless, *cfg, logger)
	if err != nil {
		return err
	}

	runID := report.NewRunID()
	logger.Infof("run %s: %d agents", runID, flock.Len())

	if isHeadless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		start := time.Now()
		n, err := headless.Run(ctx, flock, source, c.Int("frames"), c.Float64("dt"))
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Infof("stepped %d frames in %s", n, time.Since(start))
	} else {
		ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
		ebiten.SetWindowTitle("Boids: seek the target")
		if err := ebiten.RunGame(game.New(flock, source, logger)); err != nil {
			return fmt.Errorf("viewer: %w", err)
		}
	}

	if last, ok := flock.Metrics().Last(); ok {
		logger.Infof("final average distance %.2f, total collisions %d", last.AverageDistance, flock.Metrics().TotalCollisions())
	}

	if path := c.String("report"); path != "" {
		doc, err := report.Build(runID, flock.Config(), flock.Metrics().Frames(), time.Now())
		if err != nil {
			return err
		}
		if err := report.WriteFile(path, doc); err != nil {
			return err
		}
		logger.Infof("report written to %s", path)
	}
	return nil
}

// targetSource returns nil for the pointer, which the viewer resolves to the cursor.
func targetSource(name string, isHeadless bool, cfg simulation.Config, logger log.Logger) (simulation.TargetSource, error) {
	if name == "" {
		name = targetPointer
		if isHeadless {
			name = targetLeader
		}
	}
	switch strings.ToLower(name) {
	case targetPointer:
		if isHeadless {
			return nil, fmt.Errorf("target %q needs a window", name)
		}
		return nil, nil
	case targetLeader:
		return simulation.NewLeaderTarget(simulation.LeaderConfig(cfg), simulation.WithLogger(logger))
	case targetFixed:
		return simulation.FixedTarget{X: cfg.WorldWidth / 2, Y: cfg.WorldHeight / 2}, nil
	default:
		return nil, fmt.Errorf("unknown target %q: want pointer, leader or fixed", name)
	}
}

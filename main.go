package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/game"
	"github.com/pthm-cable/nebula/viewer"
)

type cliFlags struct {
	configPath string
	headless   bool
	maxTicks   int
	debug      bool
	opts       game.Options
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flag.BoolVar(&f.headless, "headless", false, "Run without graphics")
	flag.IntVar(&f.maxTicks, "max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	flag.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&f.opts.LogStats, "log-stats", false, "Output stats via slog")
	flag.Float64Var(&f.opts.StatsWindowSec, "stats-window", 0, "Stats window size in seconds (0 = use config)")
	flag.StringVar(&f.opts.OutputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	flag.Int64Var(&f.opts.Seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.StringVar(&f.opts.TrackerSource, "tracker", "", "Landmark source: none, replay, sweep (empty = use config)")
	flag.StringVar(&f.opts.ReplayPath, "replay", "", "Replay a landmark session CSV")
	flag.Parse()

	f.opts.Headless = f.headless
	if f.opts.Seed == 0 {
		f.opts.Seed = time.Now().UnixNano()
	}
	return f
}

func main() {
	f := parseFlags()

	level := slog.LevelInfo
	if f.debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := run(f); err != nil {
		slog.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func run(f cliFlags) error {
	if err := config.Init(f.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if f.headless {
		return runHeadless(f)
	}
	return runWindow(f)
}

// runHeadless steps at a fixed rate until max-ticks or an interrupt.
func runHeadless(f cliFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := game.NewGameWithOptions(f.opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless run",
		"seed", f.opts.Seed,
		"stats_window", f.opts.StatsWindowSec,
		"max_ticks", f.maxTicks,
	)

	for ctx.Err() == nil {
		g.UpdateHeadless()
		if f.maxTicks > 0 && int(g.Tick()) >= f.maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return nil
		}
	}
	slog.Info("interrupted", "tick", g.Tick())
	return nil
}

func runWindow(f cliFlags) error {
	cfg := config.Cfg()

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(f.opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	v := viewer.New(g)
	defer v.Unload()

	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()
		if f.maxTicks > 0 && int(g.Tick()) >= f.maxTicks {
			break
		}
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snake-battle/config"
	"snake-battle/game"
	"snake-battle/game/manager"
	"snake-battle/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, level.Allow(level.ParseDefault(lvl, level.InfoValue())))
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

func main() {
	cfg, opts, err := config.ParseArgs("snake-battle", os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(opts.LogLevel)
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Greedy {
		cfg.Weights = config.GreedyWeights()
	}
	if opts.Headless {
		cfg.AIOnly = true
	}

	stats := manager.NewStateManager(cfg.StatsFile)
	if err := stats.LoadStats(); err != nil {
		_ = level.Warn(logger).Log("msg", "could not load stats, starting fresh", "err", err)
	}

	g, err := game.NewGame(cfg, stats, logger)
	if err != nil {
		_ = level.Error(logger).Log("msg", "invalid configuration", "err", err)
		os.Exit(1)
	}
	_ = level.Info(logger).Log("msg", "configured", "seed", cfg.Seed, "grid", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"tick_ms", cfg.TickMS, "match_seconds", cfg.MatchSeconds, "ai_only", cfg.AIOnly)

	if opts.Headless {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		if err := runHeadless(ctx, g, stats, opts.Matches, logger); err != nil {
			_ = level.Error(logger).Log("msg", "headless run failed", "err", err)
			os.Exit(1)
		}
		return
	}
	runWindow(g, stats, logger)
}

func runWindow(g *game.Game, stats *manager.StateManager, logger log.Logger) {
	cfg := g.Config()

	rl.InitWindow(800, 860, "Snake Battle")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	stopSpectate := startSpectator(cfg.SpectateAddr, logger)
	defer stopSpectate()

	renderer := ui.NewRenderer(cfg.TickMS, stats)
	lastUpdate := time.Now()
	updateInterval := cfg.TickInterval()

	for !rl.WindowShouldClose() {
		if ui.QuitPressed() {
			break
		}
		if rl.IsWindowResized() {
			renderer.UpdateDimensions()
		}
		if dir, ok := ui.DirectionPressed(); ok {
			g.SetPlayerDirection(dir)
		}

		switch g.Phase() {
		case game.Start:
			if ui.StartPressed() {
				g.Start()
				lastUpdate = time.Now()
			}
		case game.GameOver:
			if ui.StartPressed() {
				g.Reset()
				g.Start()
				lastUpdate = time.Now()
			}
		case game.Playing:
			if time.Since(lastUpdate) >= updateInterval {
				g.Update()
				lastUpdate = time.Now()
				broadcast(g.Snapshot())
			}
		}

		renderer.Draw(g.Snapshot())
	}
}

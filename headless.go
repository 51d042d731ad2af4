package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"snake-battle/game"
	"snake-battle/game/manager"
	"snake-battle/spectate"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// broadcast forwards frames to the spectator hub when one is running.
var broadcast = func(game.Snapshot) {}

// startSpectator serves the websocket feed on addr and returns a function
// that shuts it down. An empty addr disables the feed.
func startSpectator(addr string, logger log.Logger) func() {
	if addr == "" {
		return func() {}
	}
	hub := spectate.NewHub(log.With(logger, "component", "spectate"))
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		_ = level.Info(logger).Log("msg", "spectator feed listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			_ = level.Error(logger).Log("msg", "spectator server", "err", err)
		}
	}()
	broadcast = hub.Broadcast

	return func() {
		broadcast = func(game.Snapshot) {}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// runHeadless plays matches back to back until the requested number is
// reached or ctx is cancelled, then prints a summary.
func runHeadless(ctx context.Context, g *game.Game, stats *manager.StateManager, matches int, logger log.Logger) error {
	cfg := g.Config()
	stopSpectate := startSpectator(cfg.SpectateAddr, logger)
	defer stopSpectate()

	// Pace the ticks only when someone may be watching.
	var interval time.Duration
	if cfg.SpectateAddr != "" {
		interval = cfg.TickInterval()
	}

	var batch game.Batch
	runner := game.NewRunner(g, interval, matches, logger)
	runner.OnFrame(func(snap game.Snapshot) {
		broadcast(snap)
		if snap.Phase == game.GameOver {
			batch.Add(snap)
		}
	})

	runner.Start()
	select {
	case <-ctx.Done():
		_ = level.Info(logger).Log("msg", "interrupted", "matches", runner.Played())
	case <-runner.Done():
	}
	runner.Stop()

	fmt.Printf("matches: %d  ties: %d  best score: %d  average score: %.2f\n",
		batch.Matches, batch.Ties, batch.BestScore, batch.AverageScore())
	fmt.Println("all time:", summaryLine(stats.Summary()))
	if ctx.Err() != nil && batch.Matches == 0 {
		return fmt.Errorf("interrupted before a match finished: %w", ctx.Err())
	}
	return nil
}

// summaryLine formats the persisted statistics.
func summaryLine(sum manager.Summary) string {
	return fmt.Sprintf("games: %d  average: %.2f  median: %.1f  max: %d  wins: %v",
		sum.Games, sum.AverageScore, sum.MedianScore, sum.MaxScore, sum.Wins)
}

// Package config holds every tunable of a match. Nothing in the simulation
// reads process-wide state; a Config is passed to each component when it is
// built.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
)

// Weights are the coefficients of the move scoring formula:
//
//	score = -Food*dist(food) + Opponent*min(dist(opponent), OpponentRadius)
//	        + Space*openSpace - Memory*[recently visited] + PowerUp*[on power-up]
//
// An OpponentRadius of 0 leaves the opponent distance uncapped.
type Weights struct {
	Food           float64 `json:"food"`
	Opponent       float64 `json:"opponent"`
	OpponentRadius int     `json:"opponent_radius"`
	Space          float64 `json:"space"`
	Memory         float64 `json:"memory"`
	PowerUp        float64 `json:"power_up"`
}

// Stuck controls oscillation detection. An agent whose full history holds
// fewer than MinDistinct positions is stuck for that tick; more than Limit
// consecutive stuck ticks force a random safe move.
type Stuck struct {
	MinDistinct int `json:"min_distinct"`
	Limit       int `json:"limit"`
}

type PowerUps struct {
	Enabled       bool `json:"enabled"`
	SpawnInterval int  `json:"spawn_interval"` // ticks between spawn attempts
	Lifetime      int  `json:"lifetime"`       // ticks before an untouched power-up expires
	MaxActive     int  `json:"max_active"`
}

type Config struct {
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	TickMS           int      `json:"tick_ms"`
	MatchSeconds     int      `json:"match_seconds"`
	Seed             int64    `json:"seed"` // 0 picks a seed from the clock
	AIOnly           bool     `json:"ai_only"`
	AllowTailOverlap bool     `json:"allow_tail_overlap"`
	FloodFillLimit   int      `json:"flood_fill_limit"`
	HistorySize      int      `json:"history_size"`
	Stuck            Stuck    `json:"stuck"`
	Weights          Weights  `json:"weights"`
	PowerUps         PowerUps `json:"power_ups"`
	StatsFile        string   `json:"stats_file"`
	SpectateAddr     string   `json:"spectate_addr"`
}

// DefaultWeights favours food, keeps a small distance from the opponent and
// strongly avoids pockets with little room.
func DefaultWeights() Weights {
	return Weights{
		Food:           2,
		Opponent:       1,
		OpponentRadius: 3,
		Space:          1,
		Memory:         5,
		PowerUp:        10,
	}
}

// GreedyWeights only looks at the distance to food.
func GreedyWeights() Weights {
	return Weights{Food: 1}
}

func Default() Config {
	return Config{
		Width:          20,
		Height:         20,
		TickMS:         100,
		MatchSeconds:   100,
		FloodFillLimit: 20,
		HistorySize:    20,
		Stuck: Stuck{
			MinDistinct: 5,
			Limit:       3,
		},
		Weights: DefaultWeights(),
		PowerUps: PowerUps{
			SpawnInterval: 50,
			Lifetime:      200,
			MaxActive:     2,
		},
		StatsFile: "data/stats.json",
	}
}

// Load reads a JSON file over the defaults. Missing keys keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as indented JSON.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// RegisterFlags binds the most used fields to fs. Values already in c are
// the flag defaults, so flags override a loaded file.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "Grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "Grid height in cells")
	fs.IntVar(&c.TickMS, "tick", c.TickMS, "Milliseconds per simulation tick")
	fs.IntVar(&c.MatchSeconds, "duration", c.MatchSeconds, "Match length in seconds")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed (0 = from clock)")
	fs.BoolVar(&c.AIOnly, "ai-only", c.AIOnly, "Let the heuristic drive both snakes")
	fs.BoolVar(&c.AllowTailOverlap, "tail-overlap", c.AllowTailOverlap, "Treat the own tail as free on normal moves")
	fs.BoolVar(&c.PowerUps.Enabled, "powerups", c.PowerUps.Enabled, "Spawn power-ups")
	fs.StringVar(&c.StatsFile, "stats", c.StatsFile, "Match statistics file (empty disables)")
	fs.StringVar(&c.SpectateAddr, "spectate", c.SpectateAddr, "Serve a websocket spectator feed on this address")
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// MatchTicks is the match clock expressed in ticks.
func (c Config) MatchTicks() int {
	if c.TickMS <= 0 {
		return 0
	}
	return c.MatchSeconds * 1000 / c.TickMS
}

var (
	ErrGridTooSmall = errors.New("grid must be at least 5x5")
	ErrBadTick      = errors.New("tick must be positive")
)

func (c Config) Validate() error {
	if c.Width < 5 || c.Height < 5 {
		return fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, c.Width, c.Height)
	}
	if c.TickMS <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadTick, c.TickMS)
	}
	if c.MatchSeconds <= 0 {
		return fmt.Errorf("match_seconds must be positive, got %d", c.MatchSeconds)
	}
	if c.FloodFillLimit < 0 {
		return fmt.Errorf("flood_fill_limit must not be negative, got %d", c.FloodFillLimit)
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("history_size must be at least 1, got %d", c.HistorySize)
	}
	if c.Stuck.MinDistinct < 1 || c.Stuck.Limit < 0 {
		return fmt.Errorf("stuck thresholds out of range: %+v", c.Stuck)
	}
	if c.Weights.OpponentRadius < 0 {
		return fmt.Errorf("opponent_radius must not be negative, got %d", c.Weights.OpponentRadius)
	}
	if c.PowerUps.Enabled && (c.PowerUps.SpawnInterval <= 0 || c.PowerUps.Lifetime <= 0 || c.PowerUps.MaxActive <= 0) {
		return fmt.Errorf("power-up settings out of range: %+v", c.PowerUps)
	}
	return nil
}

// Package driver runs a single game at a fixed cadence for interactive hosts.
package driver

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"idlarz/internal/domain/realm"
)

const (
	DefaultInterval      = time.Second
	DefaultAutosaveEvery = 30
)

type Config struct {
	Interval      time.Duration
	AutosaveEvery int
	Now           func() time.Time
	// OnSave persists a snapshot. A nil hook disables autosave.
	OnSave func(ctx context.Context, snap realm.Snapshot) error
	// OnTick observes every step after it is applied.
	OnTick func(res realm.TickResult, view realm.View)
}

// Runner serializes ticks and player actions against one Game.
type Runner struct {
	cfg   Config
	game  *realm.Game
	clock *Clock

	mu    sync.Mutex
	ticks int64
}

func NewRunner(game *realm.Game, cfg Config) *Runner {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.AutosaveEvery <= 0 {
		cfg.AutosaveEvery = DefaultAutosaveEvery
	}
	return &Runner{cfg: cfg, game: game, clock: NewClock(cfg.Now)}
}

// Step advances the game by the wall time since the previous step and
// autosaves every AutosaveEvery steps.
func (r *Runner) Step(ctx context.Context) realm.TickResult {
	r.mu.Lock()
	res := r.game.Tick(r.clock.Elapsed())
	r.ticks++
	view := r.game.View()
	due := r.cfg.OnSave != nil && r.ticks%int64(r.cfg.AutosaveEvery) == 0
	var snap realm.Snapshot
	if due {
		snap = r.game.Snapshot()
	}
	r.mu.Unlock()

	if res.LevelsGained > 0 {
		slog.Info("level up", "level", view.Level.Level, "points", view.Stats.AvailablePoints)
	}
	if r.cfg.OnTick != nil {
		r.cfg.OnTick(res, view)
	}
	if due {
		if err := r.cfg.OnSave(ctx, snap); err != nil {
			slog.Error("autosave failed", "tick", r.Ticks(), "err", err)
		}
	}
	return res
}

// Run steps until ctx is cancelled, then saves once more.
func (r *Runner) Run(ctx context.Context) error {
	slog.Info("game loop started", "interval", r.cfg.Interval, "autosave_every", r.cfg.AutosaveEvery)
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	r.Step(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("game loop stopped", "ticks", r.Ticks())
			return r.Save(context.WithoutCancel(ctx))
		case <-ticker.C:
			r.Step(ctx)
		}
	}
}

// Do runs fn with exclusive access to the game, between ticks.
func (r *Runner) Do(fn func(g *realm.Game)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.game)
}

func (r *Runner) Save(ctx context.Context) error {
	if r.cfg.OnSave == nil {
		return nil
	}
	r.mu.Lock()
	snap := r.game.Snapshot()
	r.mu.Unlock()
	return r.cfg.OnSave(ctx, snap)
}

func (r *Runner) Ticks() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks
}

func (r *Runner) View() realm.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.View()
}

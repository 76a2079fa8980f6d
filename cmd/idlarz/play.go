package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	sqliterepo "idlarz/internal/adapter/repo/sqlite"
	"idlarz/internal/app/driver"
	"idlarz/internal/domain/realm"
)

type playConfig struct {
	SavePath      string
	Interval      time.Duration
	AutosaveEvery int
	Duration      time.Duration
	AutoAcquire   bool
	Name          string
}

func newPlayCmd(opts *options) *cobra.Command {
	cfg := playConfig{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Keep a realm growing in real time",
		Long: `Loads the realm from the save file, credits the production earned while
away and ticks it until interrupted. The realm is saved periodically and on exit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			balance, err := loadBalance(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return play(ctx, cmd.OutOrStdout(), balance.Engine(), cfg, time.Now)
		},
	}
	cmd.Flags().StringVarP(&cfg.SavePath, "save", "s", "idlarz.db", "Path to the SQLite save file")
	cmd.Flags().DurationVar(&cfg.Interval, "interval", driver.DefaultInterval, "Tick interval")
	cmd.Flags().IntVar(&cfg.AutosaveEvery, "autosave", driver.DefaultAutosaveEvery, "Save every N ticks")
	cmd.Flags().DurationVarP(&cfg.Duration, "duration", "d", 0, "Stop after this long (0 runs until interrupted)")
	cmd.Flags().BoolVarP(&cfg.AutoAcquire, "auto-acquire", "a", false, "Buy parcels greedily")
	cmd.Flags().StringVar(&cfg.Name, "name", "", "Rename the player before starting")
	return cmd
}

func play(ctx context.Context, w io.Writer, engine realm.Engine, cfg playConfig, now func() time.Time) error {
	save, err := sqliterepo.OpenSaveFile(cfg.SavePath)
	if err != nil {
		return err
	}
	defer save.Close()

	game, offline, found, err := save.Load(ctx, engine, now())
	if err != nil {
		return err
	}
	infoColor := color.New(color.FgYellow)
	if found {
		infoColor.Fprintf(w, "Welcome back, %s. %s of production credited while away.\n", game.PlayerName(), formatMillis(offline.ElapsedMillis))
	} else {
		infoColor.Fprintf(w, "A new realm is founded in %s.\n", cfg.SavePath)
	}
	if cfg.Name != "" && !game.SetPlayerName(cfg.Name) {
		return fmt.Errorf("invalid player name %q", cfg.Name)
	}

	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	var runner *driver.Runner
	runner = driver.NewRunner(game, driver.Config{
		Interval:      cfg.Interval,
		AutosaveEvery: cfg.AutosaveEvery,
		Now:           now,
		OnSave: func(ctx context.Context, snap realm.Snapshot) error {
			if err := save.Save(ctx, snap, now()); err != nil {
				return err
			}
			slog.Debug("saved", "path", cfg.SavePath)
			return nil
		},
		OnTick: func(_ realm.TickResult, view realm.View) {
			if cfg.AutoAcquire {
				runner.Do(buyFrontier)
				view = runner.View()
			}
			printStatusLine(w, view)
		},
	})

	if err := runner.Run(ctx); err != nil {
		return err
	}
	color.New(color.FgGreen, color.Bold).Fprintf(w, "\n✓ Saved %s after %s ticks\n", cfg.SavePath, humanize.Comma(runner.Ticks()))
	return nil
}

// buyFrontier acquires frontier parcels until one is refused.
func buyFrontier(g *realm.Game) {
	for {
		x, y, ok := frontier(g.Grid())
		if !ok || !g.AcquireParcel(x, y, "") {
			return
		}
	}
}

func printStatusLine(w io.Writer, v realm.View) {
	fmt.Fprintf(w, "\r%s  lvl %d  parcels %d  gold %s (+%s/s)  food %s  wood %s  stone %s  next %s   ",
		v.PlayerName,
		v.Level.Level,
		v.OwnedParcels,
		humanize.CommafWithDigits(v.Resources.Gold, 0),
		humanize.CommafWithDigits(v.Rates.Gold.Total, 2),
		humanize.CommafWithDigits(v.Resources.Food, 0),
		humanize.CommafWithDigits(v.Resources.Wood, 0),
		humanize.CommafWithDigits(v.Resources.Stone, 0),
		humanize.Comma(int64(v.NextParcelCost)),
	)
}

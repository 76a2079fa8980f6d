package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"idlarz/internal/domain/realm"
)

type simConfig struct {
	Duration    time.Duration
	Step        time.Duration
	AutoAcquire bool
}

type acquisition struct {
	AtMillis float64
	X, Y     int
	Biome    realm.BiomeKind
	Cost     int
}

type simReport struct {
	ElapsedMillis float64
	Ticks         int
	LevelsGained  int
	Acquisitions  []acquisition
	View          realm.View
}

func newSimulateCmd(opts *options) *cobra.Command {
	cfg := simConfig{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Fast-forward a new realm without waiting",
		Long: `Runs a fresh realm for the given duration in fixed steps. With
--auto-acquire every affordable parcel closest to the castle is bought as
soon as gold allows.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Duration <= 0 || cfg.Step <= 0 {
				return errors.New("duration and step must be positive")
			}
			balance, err := loadBalance(cmd, opts)
			if err != nil {
				return err
			}
			slog.Info("simulating", "duration", cfg.Duration, "step", cfg.Step, "seed", balance.Seed, "biome_assignment", balance.BiomeAssignment)
			rep := simulate(balance.Engine(), cfg)
			printReport(cmd.OutOrStdout(), opts, rep)
			return nil
		},
	}
	cmd.Flags().DurationVarP(&cfg.Duration, "duration", "d", time.Hour, "Simulated play time")
	cmd.Flags().DurationVar(&cfg.Step, "step", time.Second, "Tick length")
	cmd.Flags().BoolVarP(&cfg.AutoAcquire, "auto-acquire", "a", false, "Buy parcels greedily")
	return cmd
}

func simulate(engine realm.Engine, cfg simConfig) simReport {
	s := engine.NewGame()
	step := float64(cfg.Step) / float64(time.Millisecond)
	total := float64(cfg.Duration) / float64(time.Millisecond)

	var rep simReport
	for rep.ElapsedMillis < total {
		res := engine.Tick(s, math.Min(step, total-rep.ElapsedMillis))
		if res.ElapsedMillis <= 0 {
			break
		}
		rep.ElapsedMillis += res.ElapsedMillis
		rep.LevelsGained += res.LevelsGained
		rep.Ticks++
		if cfg.AutoAcquire {
			rep.Acquisitions = append(rep.Acquisitions, acquireAffordable(engine, s, rep.ElapsedMillis)...)
		}
	}
	rep.View = engine.View(s)
	return rep
}

// acquireAffordable buys frontier parcels until gold runs out or the grid is full.
func acquireAffordable(engine realm.Engine, s *realm.State, at float64) []acquisition {
	var out []acquisition
	for {
		x, y, ok := frontier(s.Grid)
		if !ok {
			return out
		}
		res, err := engine.AcquireParcel(s, x, y, "")
		if err != nil {
			return out
		}
		out = append(out, acquisition{AtMillis: at, X: x, Y: y, Biome: res.Biome, Cost: res.Cost})
	}
}

// frontier picks the unowned parcel next to the realm that is closest to the
// castle, breaking ties in row-major order.
func frontier(g realm.Grid) (int, int, bool) {
	cx, cy := g.Width/2, g.Height/2
	if castle, ok := g.Castle(); ok {
		cx, cy = castle.X, castle.Y
	}
	best, bx, by := -1, 0, 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p, _ := g.At(x, y)
			if p.Owned || !g.IsAdjacentToOwned(x, y) {
				continue
			}
			d := abs(x-cx) + abs(y-cy)
			if best < 0 || d < best {
				best, bx, by = d, x, y
			}
		}
	}
	return bx, by, best >= 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func printReport(w io.Writer, opts *options, rep simReport) {
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)

	successColor.Fprintf(w, "✓ Simulated %s in %s ticks\n", formatMillis(rep.ElapsedMillis), humanize.Comma(int64(rep.Ticks)))
	infoColor.Fprintf(w, "  %s owns %d parcels, level %d (%d gained), castle level %d\n",
		rep.View.PlayerName, rep.View.OwnedParcels, rep.View.Level.Level, rep.LevelsGained, rep.View.CastleLevel)
	infoColor.Fprintf(w, "  Next parcel costs %s gold\n", humanize.Comma(int64(rep.View.NextParcelCost)))

	if len(rep.Acquisitions) > 0 && !opts.quiet {
		printTitle(w, opts, "Acquisitions")
		table := tablewriter.NewTable(w,
			tablewriter.WithHeader([]string{"#", "At", "Parcel", "Biome", "Cost"}),
		)
		for i, a := range rep.Acquisitions {
			_ = table.Append([]string{
				strconv.Itoa(i + 1),
				formatMillis(a.AtMillis),
				fmt.Sprintf("(%d,%d)", a.X, a.Y),
				string(a.Biome),
				humanize.Comma(int64(a.Cost)),
			})
		}
		_ = table.Render()
	}

	printTitle(w, opts, "Resources")
	printResourceTable(w, rep.View)
}

func printResourceTable(w io.Writer, v realm.View) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Resource", "Amount", "Per second"}),
	)
	for _, kind := range realm.ResourceKinds() {
		_ = table.Append([]string{
			string(kind),
			humanize.CommafWithDigits(v.Resources.Get(kind), 2),
			humanize.CommafWithDigits(v.Rates.Get(kind).Total, 2),
		})
	}
	_ = table.Render()
}

func formatMillis(ms float64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Second).String()
}

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"idlarz/internal/app/catalog"
	"idlarz/internal/domain/realm"
)

func newCostsCmd(opts *options) *cobra.Command {
	var rows int
	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Show parcel and castle upgrade costs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			balance, err := loadBalance(cmd, opts)
			if err != nil {
				return err
			}
			out := catalog.UseCase{Tuning: balance.Tuning}.Execute(catalog.Request{ParcelRows: rows})
			w := cmd.OutOrStdout()
			printTitle(w, opts, "Parcel costs")
			printParcelCosts(w, out.ParcelCosts)
			printTitle(w, opts, "Castle upgrades")
			printCastleCosts(w, out.CastleCosts)
			return nil
		},
	}
	cmd.Flags().IntVarP(&rows, "rows", "n", 30, "Number of parcel cost rows")
	return cmd
}

func newLevelsCmd(opts *options) *cobra.Command {
	var levels int
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Show the experience curve",
		RunE: func(cmd *cobra.Command, _ []string) error {
			balance, err := loadBalance(cmd, opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printTitle(w, opts, "Player levels")
			printLevels(w, balance.Tuning, levels)
			return nil
		},
	}
	cmd.Flags().IntVarP(&levels, "levels", "n", 20, "Number of levels to list")
	return cmd
}

func newBiomesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "biomes",
		Short: "Show biome production and building costs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			printTitle(w, opts, "Biomes")
			printBiomes(w, realm.Biomes())
			return nil
		},
	}
}

func newAnimalsCmd(opts *options) *cobra.Command {
	var levels int
	cmd := &cobra.Command{
		Use:   "animals",
		Short: "Show farm animal prices and meat production",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			printTitle(w, opts, "Farm animals")
			printAnimals(w, realm.Animals(), levels)
			return nil
		},
	}
	cmd.Flags().IntVarP(&levels, "levels", "n", 5, "Number of levels per animal")
	return cmd
}

func printParcelCosts(w io.Writer, rows []catalog.ParcelCostRow) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Owned", "Next parcel", "Cumulative"}),
	)
	total := 0
	for _, r := range rows {
		total += r.Cost
		_ = table.Append([]string{
			strconv.Itoa(r.Owned),
			humanize.Comma(int64(r.Cost)),
			humanize.Comma(int64(total)),
		})
	}
	_ = table.Render()
}

func printCastleCosts(w io.Writer, rows []catalog.CastleCostRow) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"From", "To", "Cost"}),
	)
	for _, r := range rows {
		_ = table.Append([]string{
			strconv.Itoa(r.Level),
			strconv.Itoa(r.Level + 1),
			formatResources(r.Cost),
		})
	}
	_ = table.Render()
}

func printLevels(w io.Writer, t realm.Tuning, n int) {
	if n > t.MaxPlayerLevel-1 {
		n = t.MaxPlayerLevel - 1
	}
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Level", "XP to next", "Total XP", "Stat points"}),
	)
	total := 0.0
	for level := 1; level <= n; level++ {
		need := t.XPThreshold(level)
		total += need
		_ = table.Append([]string{
			fmt.Sprintf("%d → %d", level, level+1),
			humanize.Comma(int64(need)),
			humanize.Comma(int64(total)),
			strconv.Itoa(level * t.StatPointsPerLevel),
		})
	}
	_ = table.Render()
}

func printBiomes(w io.Writer, defs []realm.BiomeDefinition) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Biome", "Kind", "Per second", "Build cost", "Notes"}),
	)
	for _, d := range defs {
		var notes []string
		if d.Unique {
			notes = append(notes, "unique")
		}
		if d.SupportsBuildings {
			notes = append(notes, "buildable")
		}
		if d.Building {
			notes = append(notes, "building")
		}
		build := "-"
		if !d.BuildCost.IsZero() {
			build = formatResources(d.BuildCost)
		}
		_ = table.Append([]string{
			d.Name,
			string(d.Kind),
			formatResources(d.Generation),
			build,
			strings.Join(notes, ", "),
		})
	}
	_ = table.Render()
}

func printAnimals(w io.Writer, defs []realm.AnimalDefinition, levels int) {
	if levels < 1 {
		levels = 1
	}
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Animal", "Level", "Cost (food)", "Meat/s"}),
	)
	for _, d := range defs {
		for level := 0; level < levels; level++ {
			_ = table.Append([]string{
				d.Name,
				strconv.Itoa(level + 1),
				humanize.Commaf(d.Cost(level)),
				humanize.CommafWithDigits(d.Production(level+1), 2),
			})
		}
	}
	_ = table.Render()
}

// formatResources lists the non-zero amounts of r in catalog order.
func formatResources(r realm.Resources) string {
	var parts []string
	for _, kind := range realm.ResourceKinds() {
		v := r.Get(kind)
		if v == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", humanize.CommafWithDigits(v, 2), kind))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

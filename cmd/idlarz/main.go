package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"idlarz/internal/config"
)

// options holds the flags every subcommand shares.
type options struct {
	balanceFile string
	seed        int64
	logLevel    string
	quiet       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "idlarz",
		Short: "Idle territory builder",
		Long: `Inspect the balance tables, fast-forward a realm headlessly,
or keep a realm growing in the terminal with a local save file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogger(cmd.ErrOrStderr(), opts.logLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.balanceFile, "balance", "b", "", "Path to a balance YAML file")
	root.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "Override the biome seed from the balance file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Minimal output")

	root.AddCommand(
		newCostsCmd(opts),
		newLevelsCmd(opts),
		newBiomesCmd(opts),
		newAnimalsCmd(opts),
		newSimulateCmd(opts),
		newPlayCmd(opts),
	)
	return root
}

// loadBalance reads the balance file and applies the seed override when the
// flag was set explicitly.
func loadBalance(cmd *cobra.Command, opts *options) (config.Balance, error) {
	balance, err := config.Load(opts.balanceFile)
	if err != nil {
		return config.Balance{}, err
	}
	if cmd.Flags().Changed("seed") {
		balance.Seed = opts.seed
	}
	return balance, nil
}

func setupLogger(w io.Writer, level string) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
	slog.SetDefault(logger)
}

func parseLevel(v string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func printTitle(w io.Writer, opts *options, title string) {
	if opts.quiet {
		return
	}
	titleColor := color.New(color.FgCyan, color.Bold)
	titleColor.Fprintf(w, "\n%s\n", title)
	titleColor.Fprintln(w, strings.Repeat("─", len([]rune(title))))
	fmt.Fprintln(w)
}

package cli

import (
	"errors"

	"github.com/Zhima-Mochi/minishop-inventory/internal/config"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	envFile    string
	file       string
	threshold  int
	metricsOut string
}

// NewRootCommand builds the inventory command tree. Run without a
// subcommand it performs the demonstration sequence.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}
	var a *app

	rootCmd := &cobra.Command{
		Use:   "inventory",
		Short: "In-memory inventory tracker backed by a JSON file",
		Long: `inventory keeps item quantities, rejects invalid additions, persists the
stock to a JSON file and reports items running low.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.envFile)
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)

			a, err = newApp(cfg, cmd.OutOrStdout())
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a == nil {
				return nil
			}
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), a)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", "", "Env file to read before the environment (default .env)")
	pf.StringVar(&flags.file, "file", "", "Inventory data file (overrides INVENTORY_FILE)")
	pf.IntVar(&flags.threshold, "threshold", 0, "Low-stock threshold (overrides LOW_STOCK_THRESHOLD)")
	pf.StringVar(&flags.metricsOut, "metrics-out", "", "Write Prometheus metrics to this file on exit")

	rootCmd.AddCommand(
		newDemoCommand(&a),
		newAddCommand(&a),
		newRemoveCommand(&a),
		newQuantityCommand(&a),
		newLowCommand(&a),
		newReportCommand(&a),
	)

	return rootCmd
}

func (f *rootFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("file") {
		cfg.Store.Path = f.file
	}
	if fs.Changed("threshold") {
		cfg.Store.LowStockThreshold = f.threshold
	}
	if fs.Changed("metrics-out") {
		cfg.Metrics.Output = f.metricsOut
	}
}

// ErrOperationFailed is returned by subcommands whose operation was rejected.
// The reason has already been printed.
var ErrOperationFailed = errors.New("operation failed")

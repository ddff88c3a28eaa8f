package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newDemoCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the demonstration sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), *a)
		},
	}
}

func newAddCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <item> <qty>",
		Short: "Add a quantity of an item and save the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, app := cmd.Context(), *a
			if err := app.loadExisting(ctx); err != nil {
				return app.fail(err)
			}

			if _, err := app.addText(ctx, args[0], args[1]); err != nil {
				return app.fail(err)
			}
			if entries := app.journal.Entries(); len(entries) > 0 {
				app.printf("%s\n", entries[len(entries)-1])
			}
			return app.save(ctx)
		},
	}
}

func newRemoveCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item> <qty>",
		Short: "Remove a quantity of an item and save the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, app := cmd.Context(), *a
			if err := app.loadExisting(ctx); err != nil {
				return app.fail(err)
			}

			qty, err := parseQuantityArg(args[1])
			if err != nil {
				return app.fail(err)
			}
			if _, err := app.store.Remove(ctx, args[0], qty); err != nil {
				return app.fail(err)
			}
			app.printf("%s stock: %d\n", args[0], app.store.Quantity(ctx, args[0]))
			for _, alert := range app.watcher.Alerts() {
				app.printf("Low stock alert: %s (%d left)\n", alert.Item, alert.Remaining)
			}
			return app.save(ctx)
		},
	}
}

func newQuantityCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:     "qty <item>",
		Aliases: []string{"quantity"},
		Short:   "Print the stock of an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, app := cmd.Context(), *a
			app.loadQuietly(ctx)
			app.printf("%s stock: %d\n", args[0], app.store.Quantity(ctx, args[0]))
			return nil
		},
	}
}

func newLowCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "low",
		Short: "List items below the low-stock threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, app := cmd.Context(), *a
			app.loadQuietly(ctx)
			low := app.store.LowStockItems(ctx, app.cfg.Store.LowStockThreshold)
			if len(low) == 0 {
				app.printf("No low stock items\n")
				return nil
			}
			app.printf("Low stock items: %s\n", strings.Join(low, ", "))
			return nil
		},
	}
}

func newReportCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print every item and its quantity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, app := cmd.Context(), *a
			app.loadQuietly(ctx)
			app.printf("%s", app.store.Report(ctx))
			return nil
		},
	}
}

package cli

import (
	"context"
	"strings"
)

// runDemo walks through the store's operations with a fixed script: two valid
// additions, two rejected ones, a removal, a removal of an unknown item, then
// queries, a save/load round trip and the report.
func runDemo(ctx context.Context, a *app) error {
	store := a.store
	status := func(_ bool, err error) {
		if err != nil {
			a.printf("%s\n", describe(err))
		}
	}

	status(store.Add(ctx, "apple", 10, a.journal))
	status(store.Add(ctx, "orange", 7, a.journal))

	status(store.Add(ctx, "banana", -2, a.journal))
	status(a.addText(ctx, "", "ten"))

	status(store.Remove(ctx, "apple", 3))
	status(store.Remove(ctx, "grape", 1))

	a.printf("Apple stock: %d\n", store.Quantity(ctx, "apple"))

	if low := store.LowStockItems(ctx, a.cfg.Store.LowStockThreshold); len(low) > 0 {
		a.printf("Low stock items: %s\n", strings.Join(low, ", "))
	}

	path := a.cfg.Store.Path
	status(store.Save(ctx, path))
	_, err := store.Load(ctx, path)
	status(err == nil, err)

	a.printf("%s", store.Report(ctx))
	return nil
}

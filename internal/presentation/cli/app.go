package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	appinv "github.com/Zhima-Mochi/minishop-inventory/internal/application/inventory"
	"github.com/Zhima-Mochi/minishop-inventory/internal/config"
	dominv "github.com/Zhima-Mochi/minishop-inventory/internal/domain/inventory"
	"github.com/Zhima-Mochi/minishop-inventory/internal/infrastructure/jsonfile"
	"github.com/Zhima-Mochi/minishop-inventory/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/minishop-inventory/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-inventory/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/minishop-inventory/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-inventory/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-inventory/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/minishop-inventory/internal/observability"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const metricsNamespace = "inventory"

// app is everything one command invocation works with.
type app struct {
	cfg      *config.Config
	store    *appinv.Store
	watcher  *appinv.Watcher
	journal  *dominv.Journal
	registry *prometheus.Registry
	logger   *zaplogger.Logger
	out      io.Writer
}

func newApp(cfg *config.Config, out io.Writer) (*app, error) {
	logger, err := zaplogger.New(zaplogger.Options{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	},
		observability.F("service", cfg.App.Name),
		observability.F("env", cfg.App.Environment),
		observability.F("run_id", uuid.NewString()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	registry := prometheus.NewRegistry()
	tel := infraobs.NewInventory(
		oteltrace.New(""),
		logger,
		prometrics.New(registry, metricsNamespace, ""),
	)

	bus := outbox.NewBus(tel)
	watcher := appinv.NewWatcher(bus, cfg.Store.LowStockThreshold, tel)
	watcher.Start()

	store := appinv.NewStore(memory.NewInventoryRepository(), jsonfile.New(), bus, tel)

	return &app{
		cfg:      cfg,
		store:    store,
		watcher:  watcher,
		journal:  &dominv.Journal{},
		registry: registry,
		logger:   logger,
		out:      out,
	}, nil
}

// close writes the metrics dump, when configured, and flushes the logger.
func (a *app) close() error {
	var dumpErr error
	if a.cfg.Metrics.Output != "" {
		dumpErr = a.dumpMetrics(a.cfg.Metrics.Output)
	}
	_ = a.logger.Sync()
	return dumpErr
}

func (a *app) dumpMetrics(path string) error {
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	defer f.Close()

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return f.Close()
}

// loadExisting reads the configured file before a mutation. Only a missing
// file is tolerated; anything else would be overwritten by the next save.
func (a *app) loadExisting(ctx context.Context) error {
	_, err := a.store.Load(ctx, a.cfg.Store.Path)
	if err == nil || dominv.Kind(err) == dominv.KindFileNotFound {
		return nil
	}
	return err
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// describe formats err as a status line. A missing data file is a warning,
// everything else an error.
func describe(err error) string {
	if dominv.Kind(err) == dominv.KindFileNotFound {
		return "Warning: " + err.Error() + ", starting with current inventory"
	}
	return "Error: " + err.Error()
}

// addText adds a quantity given as text, the way a user types it.
func (a *app) addText(ctx context.Context, item, qtyText string) (bool, error) {
	return a.store.AddText(ctx, item, qtyText, a.journal)
}

func (a *app) save(ctx context.Context) error {
	if _, err := a.store.Save(ctx, a.cfg.Store.Path); err != nil {
		return a.fail(err)
	}
	return nil
}

// fail reports an inventory error as a status line and turns it into
// ErrOperationFailed. Errors outside the inventory taxonomy, such as a
// cancelled context, are returned unchanged.
func (a *app) fail(err error) error {
	if !dominv.Recoverable(err) {
		return err
	}
	a.printf("%s\n", describe(err))
	return ErrOperationFailed
}

// loadQuietly reads the configured file for read-only commands. Problems are
// logged by the store and the command carries on with what it has.
func (a *app) loadQuietly(ctx context.Context) {
	_, _ = a.store.Load(ctx, a.cfg.Store.Path)
}

func parseQuantityArg(text string) (int, error) {
	qty, err := dominv.ParseQuantity(text)
	if err != nil {
		return 0, &dominv.Error{Op: "remove", Err: err}
	}
	return qty, nil
}

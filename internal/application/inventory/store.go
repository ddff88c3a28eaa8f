package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	dominv "github.com/Zhima-Mochi/minishop-inventory/internal/domain/inventory"
	domoutbox "github.com/Zhima-Mochi/minishop-inventory/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-inventory/internal/observability"
	"github.com/Zhima-Mochi/minishop-inventory/internal/observability/logctx"
)

const (
	inventoryService = "inventory-service"
	reportTitle      = "Items Report"
	reportEmpty      = "Inventory is empty"
	reportRuleWidth  = 40
)

// Option customises a Store.
type Option func(*Store)

// WithClock replaces time.Now for log entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store is the inventory: add/remove mutations, quantity and low-stock
// queries, JSON persistence and a text report over one stock mapping.
// It is not safe for concurrent use.
type Store struct {
	repo      dominv.Repository
	files     dominv.FileStore
	publisher domoutbox.Publisher
	now       func() time.Time

	log          observability.Logger
	tracer       observability.Tracer
	reqCounter   observability.Counter
	durHistogram observability.Histogram
	mutations    observability.Counter
}

func NewStore(repo dominv.Repository, files dominv.FileStore, publisher domoutbox.Publisher, tel observability.Observability, opts ...Option) *Store {
	if tel == nil {
		tel = observability.Nop()
	}
	metricsProvider := tel.Metrics()

	s := &Store{
		repo:         repo,
		files:        files,
		publisher:    publisher,
		now:          time.Now,
		log:          tel.Logger().With(observability.F("service", inventoryService)),
		tracer:       tel.Tracer(),
		reqCounter:   metricsProvider.Counter(observability.MUsecaseRequests),
		durHistogram: metricsProvider.Histogram(observability.MUsecaseDuration),
		mutations:    metricsProvider.Counter(observability.MStockMutations),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add increases the stock of item by qty, creating the entry when needed, and
// appends a log entry to sink when sink is non-nil. An empty item, a negative
// qty or a total beyond the int range is rejected with a validation error and
// changes nothing.
func (s *Store) Add(ctx context.Context, item string, qty int, sink dominv.LogSink) (bool, error) {
	return s.add(ctx, item, qty, nil, sink)
}

// AddText is Add for a quantity typed as text. Text that is not an integer
// is rejected like a negative quantity; an empty item is reported first.
func (s *Store) AddText(ctx context.Context, item, qtyText string, sink dominv.LogSink) (bool, error) {
	qty, perr := dominv.ParseQuantity(qtyText)
	return s.add(ctx, item, qty, perr, sink)
}

func (s *Store) add(ctx context.Context, item string, qty int, parseErr error, sink dominv.LogSink) (_ bool, err error) {
	op := s.begin(ctx, "Add", observability.F("item", item), observability.F("quantity", qty))
	ctx = op.ctx
	total := 0
	defer func() { op.end(err, observability.F("total", total)) }()

	verr := (dominv.AddCommand{Item: item, Quantity: qty}).Validate()
	if verr == nil {
		verr = parseErr
	}

	current, gerr := s.repo.Get(ctx, item)
	if verr == nil && gerr == nil && qty > math.MaxInt-current {
		verr = fmt.Errorf("%w, got %d on top of %d", dominv.ErrInvalidQuantity, qty, current)
	}
	if verr != nil {
		err = &dominv.Error{Op: "add", Item: item, Err: verr}
		op.logger.Error("inventory_add_rejected", observability.Err(err))
		return false, err
	}
	if gerr != nil && !errors.Is(gerr, dominv.ErrNotFound) {
		err = &dominv.Error{Op: "add", Item: item, Err: gerr}
		return false, err
	}

	total = current + qty
	if perr := s.repo.Put(ctx, item, total); perr != nil {
		err = &dominv.Error{Op: "add", Item: item, Err: perr}
		return false, err
	}

	if sink != nil {
		sink.Append(dominv.NewAddedEntry(item, qty, s.now()))
	}
	s.mutations.Add(float64(qty), observability.L("direction", "in"))
	s.publish(ctx, op.logger, dominv.NewStockAddedEvent(item, qty, total))

	return true, nil
}

// Remove subtracts qty from item and deletes the entry once it reaches zero
// or less. qty is not validated, so a negative qty increases the stock,
// unless the result would leave the int range.
// Removing an absent item fails with a not-found error and changes nothing.
func (s *Store) Remove(ctx context.Context, item string, qty int) (_ bool, err error) {
	op := s.begin(ctx, "Remove", observability.F("item", item), observability.F("quantity", qty))
	ctx = op.ctx
	remaining := 0
	defer func() { op.end(err, observability.F("remaining", remaining)) }()

	current, gerr := s.repo.Get(ctx, item)
	if gerr != nil {
		err = &dominv.Error{Op: "remove", Item: item, Err: gerr}
		if errors.Is(gerr, dominv.ErrNotFound) {
			op.logger.Error("inventory_remove_missing", observability.Err(err))
		}
		return false, err
	}
	if qty < 0 && current > math.MaxInt+qty {
		err = &dominv.Error{Op: "remove", Item: item,
			Err: fmt.Errorf("%w, got %d against %d in stock", dominv.ErrInvalidQuantity, qty, current)}
		op.logger.Error("inventory_remove_rejected", observability.Err(err))
		return false, err
	}

	remaining = current - qty
	var werr error
	if remaining <= 0 {
		werr = s.repo.Delete(ctx, item)
	} else {
		werr = s.repo.Put(ctx, item, remaining)
	}
	if werr != nil {
		err = &dominv.Error{Op: "remove", Item: item, Err: werr}
		return false, err
	}

	if qty >= 0 {
		s.mutations.Add(float64(qty), observability.L("direction", "out"))
	} else {
		s.mutations.Add(-float64(qty), observability.L("direction", "in"))
	}
	s.publish(ctx, op.logger, dominv.NewStockRemovedEvent(item, qty, remaining))

	return true, nil
}

// Quantity returns the stock of item, or 0 when it is not stocked.
func (s *Store) Quantity(ctx context.Context, item string) int {
	qty, err := s.repo.Get(ctx, item)
	if err != nil {
		if !errors.Is(err, dominv.ErrNotFound) {
			logctx.FromOr(ctx, s.log).Error("inventory_quantity_failed",
				observability.F("item", item),
				observability.Err(err),
			)
		}
		return 0
	}
	return qty
}

// LowStockItems returns the items whose quantity is strictly below threshold, sorted by name.
func (s *Store) LowStockItems(ctx context.Context, threshold int) []string {
	low := []string{}
	for item, qty := range s.Snapshot(ctx) {
		if qty < threshold {
			low = append(low, item)
		}
	}
	slices.Sort(low)
	return low
}

// Snapshot returns a copy of the stock mapping.
func (s *Store) Snapshot(ctx context.Context) map[string]int {
	all, err := s.repo.All(ctx)
	if err != nil {
		logctx.FromOr(ctx, s.log).Error("inventory_snapshot_failed", observability.Err(err))
		return map[string]int{}
	}
	if all == nil {
		all = map[string]int{}
	}
	return all
}

// Load overlays the stock file at path onto the mapping: loaded items
// overwrite, others are kept, and an item loaded with quantity 0 is cleared. A missing file is logged as a warning and a
// malformed one as an error; either way the mapping is left unchanged and
// the classified error is returned alongside the current snapshot.
func (s *Store) Load(ctx context.Context, path string) (_ map[string]int, err error) {
	op := s.begin(ctx, "Load", observability.F("path", path))
	ctx = op.ctx
	loadedItems := 0
	defer func() { op.end(err, observability.F("loaded_items", loadedItems)) }()

	loaded, rerr := s.files.Read(ctx, path)
	if rerr != nil {
		err = &dominv.Error{Op: "load", Path: path, Err: rerr}
		switch dominv.Kind(rerr) {
		case dominv.KindFileNotFound:
			op.logger.Warn("inventory_load_missing",
				observability.F("detail", "file not found, continuing with current inventory"),
			)
		case dominv.KindParse:
			op.logger.Error("inventory_load_malformed", observability.Err(err))
		default:
			op.logger.Error("inventory_load_failed", observability.Err(err))
		}
		return s.Snapshot(ctx), err
	}

	for item, qty := range loaded {
		if perr := s.repo.Put(ctx, item, qty); perr != nil {
			err = &dominv.Error{Op: "load", Item: item, Path: path, Err: perr}
			op.logger.Error("inventory_load_failed", observability.Err(err))
			return s.Snapshot(ctx), err
		}
		loadedItems++
	}

	return s.Snapshot(ctx), nil
}

// Save writes the whole mapping to path. A write failure is logged and
// returned as an I/O error; the mapping is unaffected.
func (s *Store) Save(ctx context.Context, path string) (_ bool, err error) {
	op := s.begin(ctx, "Save", observability.F("path", path))
	ctx = op.ctx
	stock := s.Snapshot(ctx)
	defer func() { op.end(err, observability.F("items", len(stock))) }()

	if werr := s.files.Write(ctx, path, stock); werr != nil {
		err = &dominv.Error{Op: "save", Path: path, Err: werr}
		op.logger.Error("inventory_save_failed", observability.Err(err))
		return false, err
	}
	return true, nil
}

// Report renders every item and its quantity, sorted by name.
func (s *Store) Report(ctx context.Context) string {
	stock := s.Snapshot(ctx)

	var b strings.Builder
	b.WriteString(reportTitle)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", reportRuleWidth))
	b.WriteByte('\n')

	if len(stock) == 0 {
		b.WriteString(reportEmpty)
		b.WriteByte('\n')
		return b.String()
	}

	items := make([]string, 0, len(stock))
	for item := range stock {
		items = append(items, item)
	}
	slices.Sort(items)
	for _, item := range items {
		fmt.Fprintf(&b, "%s -> %d\n", item, stock[item])
	}
	return b.String()
}

func (s *Store) publish(ctx context.Context, logger observability.Logger, event domoutbox.Event) {
	if s.publisher == nil || event == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("inventory_event_publish_failed",
			observability.F("event", event.EventName()),
			observability.Err(err),
		)
	}
}

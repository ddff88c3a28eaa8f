package inventory

import (
	"context"

	dominv "github.com/Zhima-Mochi/minishop-inventory/internal/domain/inventory"
	domoutbox "github.com/Zhima-Mochi/minishop-inventory/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-inventory/internal/observability"
	"github.com/Zhima-Mochi/minishop-inventory/internal/observability/logctx"
)

const watcherService = "low_stock_watcher"

// Alert describes a removal that left an item below the threshold.
type Alert struct {
	Item      string
	Remaining int
	Depleted  bool
}

// Watcher listens for removals and raises a low-stock alert whenever one
// leaves an item below its threshold.
type Watcher struct {
	subscriber domoutbox.Subscriber
	threshold  int
	log        observability.Logger
	alerts     observability.BoundCounter
	raised     []Alert
}

func NewWatcher(subscriber domoutbox.Subscriber, threshold int, tel observability.Observability) *Watcher {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Watcher{
		subscriber: subscriber,
		threshold:  threshold,
		log:        tel.Logger().With(observability.F("service", watcherService)),
		alerts:     tel.Metrics().Counter(observability.MLowStockAlerts).Bind(),
	}
}

func (w *Watcher) Start() {
	if w.subscriber == nil {
		return
	}
	w.subscriber.Subscribe(dominv.StockRemovedEvent{}.EventName(), w.handleStockRemoved)
}

// Alerts returns the alerts raised so far, oldest first.
func (w *Watcher) Alerts() []Alert {
	out := make([]Alert, len(w.raised))
	copy(out, w.raised)
	return out
}

func (w *Watcher) handleStockRemoved(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(dominv.StockRemovedEvent)
	if !ok {
		return nil
	}
	if !evt.Depleted && evt.Remaining >= w.threshold {
		return nil
	}

	logger := logctx.FromOr(ctx, w.log).With(
		observability.F("component", watcherService),
		observability.F("event_id", evt.EventID),
		observability.F("item", evt.Item),
		observability.F("remaining", evt.Remaining),
		observability.F("threshold", w.threshold),
	)
	if evt.Depleted {
		logger.Warn("stock_depleted")
	} else {
		logger.Warn("low_stock_detected")
	}

	w.alerts.Add(1)
	w.raised = append(w.raised, Alert{Item: evt.Item, Remaining: evt.Remaining, Depleted: evt.Depleted})
	return nil
}

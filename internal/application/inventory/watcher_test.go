package inventory

import (
	"context"
	"testing"

	dominv "github.com/Zhima-Mochi/minishop-inventory/internal/domain/inventory"
	"go.uber.org/zap/zapcore"
)

func TestWatcherRaisesLowStockAlerts(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	w := NewWatcher(h.bus, dominv.DefaultLowStockThreshold, h.tel)
	w.Start()

	h.seed(t, map[string]int{"apple": 10, "pear": 6})

	_, _ = h.store.Remove(ctx, "apple", 3) // 7 left, above threshold
	_, _ = h.store.Remove(ctx, "apple", 4) // 3 left
	_, _ = h.store.Remove(ctx, "pear", 6)  // depleted
	_, _ = h.store.Remove(ctx, "grape", 1) // not found, no event

	alerts := w.Alerts()
	if len(alerts) != 2 {
		t.Fatalf("alerts = %+v, want 2", alerts)
	}
	if alerts[0] != (Alert{Item: "apple", Remaining: 3}) {
		t.Fatalf("alerts[0] = %+v", alerts[0])
	}
	if alerts[1] != (Alert{Item: "pear", Remaining: 0, Depleted: true}) {
		t.Fatalf("alerts[1] = %+v", alerts[1])
	}

	if n := h.logs.FilterMessage("low_stock_detected").FilterLevelExact(zapcore.WarnLevel).Len(); n != 1 {
		t.Fatalf("low_stock_detected = %d, want 1", n)
	}
	if n := h.logs.FilterMessage("stock_depleted").Len(); n != 1 {
		t.Fatalf("stock_depleted = %d, want 1", n)
	}
	if got := h.counterValue(t, "inventory_low_stock_alerts_total", nil); got != 2 {
		t.Fatalf("low_stock_alerts_total = %v, want 2", got)
	}
}

func TestWatcherIgnoresAdditions(t *testing.T) {
	h := newHarness(t)
	w := NewWatcher(h.bus, 100, nil)
	w.Start()

	h.seed(t, map[string]int{"apple": 1})
	if len(w.Alerts()) != 0 {
		t.Fatalf("alerts = %+v, want none", w.Alerts())
	}
}

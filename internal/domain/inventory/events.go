package inventory

import (
	"time"

	"github.com/google/uuid"
)

// StockAddedEvent is emitted after units of an item were added.
type StockAddedEvent struct {
	EventID    string
	Item       string
	Quantity   int
	Total      int
	OccurredAt time.Time
}

func (StockAddedEvent) EventName() string { return "inventory.stock_added" }

func NewStockAddedEvent(item string, quantity, total int) StockAddedEvent {
	return StockAddedEvent{
		EventID:    uuid.NewString(),
		Item:       item,
		Quantity:   quantity,
		Total:      total,
		OccurredAt: time.Now().UTC(),
	}
}

// StockRemovedEvent is emitted after units of an item were removed. Depleted
// is set when the removal deleted the item.
type StockRemovedEvent struct {
	EventID    string
	Item       string
	Quantity   int
	Remaining  int
	Depleted   bool
	OccurredAt time.Time
}

func (StockRemovedEvent) EventName() string { return "inventory.stock_removed" }

func NewStockRemovedEvent(item string, quantity, remaining int) StockRemovedEvent {
	depleted := remaining <= 0
	if depleted {
		remaining = 0
	}
	return StockRemovedEvent{
		EventID:    uuid.NewString(),
		Item:       item,
		Quantity:   quantity,
		Remaining:  remaining,
		Depleted:   depleted,
		OccurredAt: time.Now().UTC(),
	}
}

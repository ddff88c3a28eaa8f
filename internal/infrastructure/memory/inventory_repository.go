package memory

import (
	"context"
	"maps"

	domain "github.com/Zhima-Mochi/minishop-inventory/internal/domain/inventory"
)

// InventoryRepository keeps the stock mapping in a plain map. It is meant for
// a single caller and does no locking.
type InventoryRepository struct {
	items map[string]int
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		items: make(map[string]int),
	}
}

func (r *InventoryRepository) Get(ctx context.Context, item string) (int, error) {
	_ = ctx

	qty, ok := r.items[item]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return qty, nil
}

// Put stores quantity for item. A quantity of zero or less removes the item.
func (r *InventoryRepository) Put(ctx context.Context, item string, quantity int) error {
	_ = ctx

	if quantity <= 0 {
		delete(r.items, item)
		return nil
	}
	r.items[item] = quantity
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, item string) error {
	_ = ctx

	if _, ok := r.items[item]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, item)
	return nil
}

// All returns a copy of the mapping.
func (r *InventoryRepository) All(ctx context.Context) (map[string]int, error) {
	_ = ctx
	return maps.Clone(r.items), nil
}

func (r *InventoryRepository) Len() int {
	return len(r.items)
}

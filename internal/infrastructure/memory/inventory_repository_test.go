package memory

import (
	"context"
	"errors"
	"testing"

	domain "github.com/Zhima-Mochi/minishop-inventory/internal/domain/inventory"
)

func TestInventoryRepositoryPutGet(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	if _, err := repo.Get(ctx, "apple"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get(absent) error = %v, want ErrNotFound", err)
	}

	if err := repo.Put(ctx, "apple", 10); err != nil {
		t.Fatalf("Put: %v", err)
	}
	qty, err := repo.Get(ctx, "apple")
	if err != nil || qty != 10 {
		t.Fatalf("Get(apple) = %d, %v; want 10, nil", qty, err)
	}
}

func TestInventoryRepositoryPutNonPositiveDeletes(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	for _, qty := range []int{0, -3} {
		_ = repo.Put(ctx, "apple", 5)
		if err := repo.Put(ctx, "apple", qty); err != nil {
			t.Fatalf("Put(%d): %v", qty, err)
		}
		if _, err := repo.Get(ctx, "apple"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Put(%d) must delete the item, Get error = %v", qty, err)
		}
		if repo.Len() != 0 {
			t.Fatalf("Len() = %d, want 0", repo.Len())
		}
	}
}

func TestInventoryRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	if err := repo.Delete(ctx, "apple"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete(absent) error = %v, want ErrNotFound", err)
	}
	_ = repo.Put(ctx, "apple", 1)
	if err := repo.Delete(ctx, "apple"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", repo.Len())
	}
}

func TestInventoryRepositoryAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()
	_ = repo.Put(ctx, "apple", 10)

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	all["apple"] = 99
	all["pear"] = 1

	if qty, _ := repo.Get(ctx, "apple"); qty != 10 {
		t.Fatalf("mutating All() result changed the repository: apple = %d", qty)
	}
	if repo.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", repo.Len())
	}
}

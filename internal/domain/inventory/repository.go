package inventory

import (
	"context"
)

// Repository holds the stock mapping. Implementations keep only strictly
// positive quantities; Get returns ErrNotFound for anything else.
type Repository interface {
	Get(ctx context.Context, item string) (int, error)
	Put(ctx context.Context, item string, quantity int) error
	Delete(ctx context.Context, item string) error
	All(ctx context.Context) (map[string]int, error)
}

// FileStore reads and writes whole stock mappings.
type FileStore interface {
	Read(ctx context.Context, path string) (map[string]int, error)
	Write(ctx context.Context, path string, stock map[string]int) error
}

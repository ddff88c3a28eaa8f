// Package jsonfile persists the stock mapping as a single JSON object.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	domain "github.com/Zhima-Mochi/minishop-inventory/internal/domain/inventory"
)

// DefaultPath is the data file used when none is configured.
const DefaultPath = "inventory.json"

const indent = "  "

// Store reads and writes stock files. The zero value is ready to use.
type Store struct{}

func New() *Store { return &Store{} }

// Read decodes the object at path. A missing file yields ErrFileNotFound,
// undecodable content or invalid entries yield ErrMalformedFile, any other
// read failure yields ErrPersist. Zero quantities are kept so that the caller
// can clear items the file lists as empty.
func (s *Store) Read(ctx context.Context, path string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", domain.ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", domain.ErrPersist, err)
	}

	return decode(raw)
}

func decode(raw []byte) (map[string]int, error) {
	var stock map[string]int
	if err := json.Unmarshal(bytes.TrimSpace(raw), &stock); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedFile, err)
	}
	if stock == nil {
		return nil, fmt.Errorf("%w: top-level value is not an object", domain.ErrMalformedFile)
	}

	out := make(map[string]int, len(stock))
	for item, qty := range stock {
		switch {
		case item == "":
			return nil, fmt.Errorf("%w: empty item name", domain.ErrMalformedFile)
		case qty < 0:
			return nil, fmt.Errorf("%w: negative quantity %d for %q", domain.ErrMalformedFile, qty, item)
		}
		out[item] = qty
	}
	return out, nil
}

// Write replaces the file at path with stock, indented by two spaces. The
// content goes to a temporary file in the same directory first so a failed
// write never leaves a truncated file behind. An existing file keeps its
// permission bits; a new one is created 0644.
func (s *Store) Write(ctx context.Context, path string, stock map[string]int) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if stock == nil {
		stock = map[string]int{}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", indent)
	if err = enc.Encode(stock); err != nil {
		return fmt.Errorf("%w: encode: %w", domain.ErrPersist, err)
	}
	if err = tmp.Chmod(fileMode(path)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	return nil
}

func fileMode(path string) fs.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return 0o644
}

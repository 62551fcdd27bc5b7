package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/iliyamo/hostel-management/internal/model"
)

// JSONFile stores a collection as an indented JSON array in one file.
type JSONFile[T any] struct {
	Path string
	// Strict makes an undecodable file an error. When false the file is
	// logged and treated as empty.
	Strict bool
}

func NewJSONFile[T any](dir, file string, strict bool) *JSONFile[T] {
	return &JSONFile[T]{Path: filepath.Join(dir, file), Strict: strict}
}

func (f *JSONFile[T]) Name() string { return filepath.Base(f.Path) }

func (f *JSONFile[T]) Load(_ context.Context) ([]T, error) {
	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		if f.Strict {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, f.Path, err)
		}
		log.Printf("store: %s is unreadable, starting empty: %v", f.Path, err)
		return nil, nil
	}
	return items, nil
}

// Save replaces the file through a temp file in the same directory, so a
// reader never sees a partially written array.
func (f *JSONFile[T]) Save(_ context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	body, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, f.Name()+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}

// OpenJSON opens a table backed by dir/file.
func OpenJSON[T model.Record[T]](ctx context.Context, dir, file string, strict bool) (*Table[T], error) {
	return Open[T](ctx, NewJSONFile[T](dir, file, strict))
}

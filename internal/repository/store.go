package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/iliyamo/hostel-management/internal/model"
)

// Store is the persistence contract of one entity type. Mutations only
// touch the in-memory copy; Persist writes the whole collection to the
// backend.
type Store[T model.Record[T]] interface {
	Participant
	Get(ctx context.Context, id int) (T, error)
	List(ctx context.Context) ([]T, error)
	Add(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, rec T) error
	Delete(ctx context.Context, id int) error
	Len() int
}

// Backend loads and saves a whole collection.
type Backend[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
	Name() string
}

// Table is the in-memory collection shared by all backends. Records keep
// their insertion order.
type Table[T model.Record[T]] struct {
	mu      sync.RWMutex
	saveMu  sync.Mutex
	items   []T
	backend Backend[T]
}

// Open loads the collection from the backend. A nil backend yields a
// memory-only table whose Persist is a no-op.
func Open[T model.Record[T]](ctx context.Context, b Backend[T]) (*Table[T], error) {
	t := &Table[T]{backend: b}
	if b == nil {
		return t, nil
	}
	items, err := b.Load(ctx)
	if err != nil {
		return nil, err
	}
	t.items = items
	return t, nil
}

// NewMemory returns an empty table that is never written anywhere.
func NewMemory[T model.Record[T]]() *Table[T] { return &Table[T]{} }

func (t *Table[T]) Get(_ context.Context, id int) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i := t.index(id); i >= 0 {
		return t.items[i], nil
	}
	var zero T
	return zero, fmt.Errorf("%s #%d: %w", t.name(), id, ErrNotFound)
}

func (t *Table[T]) List(_ context.Context) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, len(t.items))
	copy(out, t.items)
	return out, nil
}

// Add appends rec. A zero id is replaced by max(id)+1, or 1 for an empty
// table; a non-zero id is kept but must not already exist.
func (t *Table[T]) Add(_ context.Context, rec T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if rec.RecordID() == 0 {
		next := 1
		for _, it := range t.items {
			if it.RecordID() >= next {
				next = it.RecordID() + 1
			}
		}
		rec = rec.WithRecordID(next)
	} else if t.index(rec.RecordID()) >= 0 {
		var zero T
		return zero, fmt.Errorf("%s #%d: %w", t.name(), rec.RecordID(), ErrConflict)
	}
	t.items = append(t.items, rec)
	return rec, nil
}

// Update replaces the record with the same id in place.
func (t *Table[T]) Update(_ context.Context, rec T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(rec.RecordID())
	if i < 0 {
		return fmt.Errorf("%s #%d: %w", t.name(), rec.RecordID(), ErrNotFound)
	}
	t.items[i] = rec
	return nil
}

// Delete removes the record with id. Deleting a missing id is a no-op.
func (t *Table[T]) Delete(_ context.Context, id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := t.index(id); i >= 0 {
		t.items = append(t.items[:i], t.items[i+1:]...)
	}
	return nil
}

func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

// Persist writes the current collection to the backend. Concurrent calls
// are serialised so an older snapshot never overwrites a newer one.
func (t *Table[T]) Persist(ctx context.Context) error {
	if t.backend == nil {
		return nil
	}
	t.saveMu.Lock()
	defer t.saveMu.Unlock()
	t.mu.RLock()
	items := make([]T, len(t.items))
	copy(items, t.items)
	t.mu.RUnlock()
	if err := t.backend.Save(ctx, items); err != nil {
		return fmt.Errorf("persist %s: %w", t.backend.Name(), err)
	}
	return nil
}

func (t *Table[T]) checkpoint() func() {
	t.mu.RLock()
	saved := make([]T, len(t.items))
	copy(saved, t.items)
	t.mu.RUnlock()
	return func() {
		t.mu.Lock()
		t.items = saved
		t.mu.Unlock()
	}
}

func (t *Table[T]) index(id int) int {
	for i, it := range t.items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}

func (t *Table[T]) name() string {
	if t.backend == nil {
		return "record"
	}
	return t.backend.Name()
}

package record

import (
	"context"
	"fmt"
	"sync"
)

// Repository allocates identifiers and stores records of one entity kind.
// Create, Update and Delete are serialized so that reading the counter,
// advancing it and writing the record happen as one unit.
type Repository[T any] struct {
	mu sync.Mutex
	s  Storage[T]
}

func NewRepository[T any](s Storage[T]) *Repository[T] {
	return &Repository[T]{s: s}
}

// Create stores v under the next identifier and returns it. The counter is
// advanced before the record is written, so a failed write leaves a gap
// instead of an identifier that could later be issued twice.
func (r *Repository[T]) Create(ctx context.Context, v T) (ID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.s.NextID(ctx)
	if err != nil {
		return 0, fmt.Errorf("record: read counter: %w", err)
	}
	if id == MaxID {
		return 0, ErrCounterOverflow
	}
	if err := r.s.SetNextID(ctx, id+1); err != nil {
		return 0, fmt.Errorf("record: advance counter: %w", err)
	}
	if err := r.s.Insert(ctx, id, v); err != nil {
		return 0, fmt.Errorf("record: insert %d: %w", id, err)
	}

	return id, nil
}

func (r *Repository[T]) Read(ctx context.Context, id ID) (T, bool, error) {
	v, ok, err := r.s.Get(ctx, id)
	if err != nil {
		return v, false, fmt.Errorf("record: get %d: %w", id, err)
	}
	return v, ok, nil
}

// Update replaces the record stored under id. It reports false, and writes
// nothing, when id is not present.
func (r *Repository[T]) Update(ctx context.Context, id ID, v T) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ok, err := r.s.Contains(ctx, id)
	if err != nil {
		return false, fmt.Errorf("record: lookup %d: %w", id, err)
	}
	if !ok {
		return false, nil
	}
	if err := r.s.Insert(ctx, id, v); err != nil {
		return false, fmt.Errorf("record: replace %d: %w", id, err)
	}

	return true, nil
}

// Delete removes the record stored under id and reports whether it existed.
func (r *Repository[T]) Delete(ctx context.Context, id ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ok, err := r.s.Remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("record: remove %d: %w", id, err)
	}
	return ok, nil
}

// List returns the surviving records in ascending identifier order.
func (r *Repository[T]) List(ctx context.Context) ([]Entry[T], error) {
	entries, err := r.s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("record: list: %w", err)
	}
	return entries, nil
}

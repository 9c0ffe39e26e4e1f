package record

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Slots stores at most one record per caller. Putting a record for a caller
// that already has one overwrites it.
type Slots[T any] struct {
	mu sync.Mutex
	s  SlotStorage[T]
}

func NewSlots[T any](s SlotStorage[T]) *Slots[T] {
	return &Slots[T]{s: s}
}

func (sl *Slots[T]) Put(ctx context.Context, caller string, v T) error {
	caller, err := normalizeCaller(caller)
	if err != nil {
		return err
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	if err := sl.s.PutSlot(ctx, caller, v); err != nil {
		return fmt.Errorf("record: put slot: %w", err)
	}
	return nil
}

func (sl *Slots[T]) Get(ctx context.Context, caller string) (T, bool, error) {
	var zero T
	caller, err := normalizeCaller(caller)
	if err != nil {
		return zero, false, err
	}

	v, ok, err := sl.s.GetSlot(ctx, caller)
	if err != nil {
		return zero, false, fmt.Errorf("record: get slot: %w", err)
	}
	return v, ok, nil
}

func (sl *Slots[T]) Delete(ctx context.Context, caller string) (bool, error) {
	caller, err := normalizeCaller(caller)
	if err != nil {
		return false, err
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	ok, err := sl.s.RemoveSlot(ctx, caller)
	if err != nil {
		return false, fmt.Errorf("record: remove slot: %w", err)
	}
	return ok, nil
}

func normalizeCaller(caller string) (string, error) {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return "", ErrEmptyCaller
	}
	return caller, nil
}

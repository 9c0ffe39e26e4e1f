// Package memory provides in-process record storage. Nothing survives a
// restart; it backs tests and the default local configuration.
package memory

import (
	"agenda/record"
	"context"
	"slices"
	"sync"
)

// Store implements [record.Storage] over a map.
type Store[T any] struct {
	mu      sync.RWMutex
	records map[record.ID]T
	next    record.ID
}

var _ record.Storage[struct{}] = (*Store[struct{}])(nil)

func NewStore[T any]() *Store[T] {
	return &Store[T]{records: make(map[record.ID]T)}
}

func (s *Store[T]) Get(_ context.Context, id record.ID) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[id]
	return v, ok, nil
}

func (s *Store[T]) Insert(_ context.Context, id record.ID, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = v
	return nil
}

func (s *Store[T]) Remove(_ context.Context, id record.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[id]
	delete(s.records, id)
	return ok, nil
}

func (s *Store[T]) Contains(_ context.Context, id record.ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[id]
	return ok, nil
}

func (s *Store[T]) List(_ context.Context) ([]record.Entry[T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]record.Entry[T], 0, len(s.records))
	ids := make([]record.ID, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		entries = append(entries, record.Entry[T]{ID: id, Value: s.records[id]})
	}
	return entries, nil
}

func (s *Store[T]) NextID(_ context.Context) (record.ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.next, nil
}

func (s *Store[T]) SetNextID(_ context.Context, next record.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = next
	return nil
}

// Slots implements [record.SlotStorage] over a map keyed by caller.
type Slots[T any] struct {
	mu    sync.RWMutex
	slots map[string]T
}

var _ record.SlotStorage[struct{}] = (*Slots[struct{}])(nil)

func NewSlots[T any]() *Slots[T] {
	return &Slots[T]{slots: make(map[string]T)}
}

func (s *Slots[T]) GetSlot(_ context.Context, caller string) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[caller]
	return v, ok, nil
}

func (s *Slots[T]) PutSlot(_ context.Context, caller string, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[caller] = v
	return nil
}

func (s *Slots[T]) RemoveSlot(_ context.Context, caller string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.slots[caller]
	delete(s.slots, caller)
	return ok, nil
}

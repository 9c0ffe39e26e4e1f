// Package redis keeps agenda records in Redis. Each entity kind owns a hash
// of JSON payloads keyed by identifier, a counter key and a hash of caller
// slots.
package redis

import (
	"agenda/record"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "agenda"

type Option func(*keys)

// WithPrefix sets the namespace for every key. Default is "agenda".
func WithPrefix(prefix string) Option {
	return func(k *keys) {
		if prefix != "" {
			k.prefix = prefix
		}
	}
}

type keys struct {
	prefix string
	kind   string
}

func newKeys(kind string, opts []Option) keys {
	k := keys{prefix: defaultPrefix, kind: kind}
	for _, opt := range opts {
		opt(&k)
	}
	return k
}

func (k keys) records() string { return k.prefix + ":" + k.kind + ":records" }
func (k keys) next() string    { return k.prefix + ":" + k.kind + ":next" }
func (k keys) slots() string   { return k.prefix + ":" + k.kind + ":slots" }

// Store implements [record.Storage] for one entity kind.
type Store[T any] struct {
	client *redis.Client
	keys   keys
}

var _ record.Storage[struct{}] = (*Store[struct{}])(nil)

// NewStore creates a Redis-backed store.
//
// Example:
//
//	contacts := NewStore[contact.Contact](
//	    redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
//	    "contact",
//	    WithPrefix("agenda"),
//	)
func NewStore[T any](client *redis.Client, kind string, opts ...Option) *Store[T] {
	return &Store[T]{client: client, keys: newKeys(kind, opts)}
}

func field(id record.ID) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (s *Store[T]) Get(ctx context.Context, id record.ID) (T, bool, error) {
	var v T
	data, err := s.client.HGet(ctx, s.keys.records(), field(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return v, false, nil
		}
		return v, false, fmt.Errorf("redis hget failed: %w", err)
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("failed to unmarshal %s %d: %w", s.keys.kind, id, err)
	}
	return v, true, nil
}

func (s *Store[T]) Insert(ctx context.Context, id record.ID, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s %d: %w", s.keys.kind, id, err)
	}
	if err := s.client.HSet(ctx, s.keys.records(), field(id), data).Err(); err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}
	return nil
}

func (s *Store[T]) Remove(ctx context.Context, id record.ID) (bool, error) {
	n, err := s.client.HDel(ctx, s.keys.records(), field(id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis hdel failed: %w", err)
	}
	return n > 0, nil
}

func (s *Store[T]) Contains(ctx context.Context, id record.ID) (bool, error) {
	ok, err := s.client.HExists(ctx, s.keys.records(), field(id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis hexists failed: %w", err)
	}
	return ok, nil
}

func (s *Store[T]) List(ctx context.Context) ([]record.Entry[T], error) {
	all, err := s.client.HGetAll(ctx, s.keys.records()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	entries := make([]record.Entry[T], 0, len(all))
	for f, data := range all {
		id, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid %s field %q: %w", s.keys.kind, f, err)
		}
		var v T
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s %d: %w", s.keys.kind, id, err)
		}
		entries = append(entries, record.Entry[T]{ID: record.ID(id), Value: v})
	}

	slices.SortFunc(entries, func(a, b record.Entry[T]) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return entries, nil
}

func (s *Store[T]) NextID(ctx context.Context) (record.ID, error) {
	n, err := s.client.Get(ctx, s.keys.next()).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get failed: %w", err)
	}
	return record.ID(n), nil
}

func (s *Store[T]) SetNextID(ctx context.Context, next record.ID) error {
	if err := s.client.Set(ctx, s.keys.next(), uint64(next), 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Slots implements [record.SlotStorage] for one entity kind.
type Slots[T any] struct {
	client *redis.Client
	keys   keys
}

var _ record.SlotStorage[struct{}] = (*Slots[struct{}])(nil)

func NewSlots[T any](client *redis.Client, kind string, opts ...Option) *Slots[T] {
	return &Slots[T]{client: client, keys: newKeys(kind, opts)}
}

func (s *Slots[T]) GetSlot(ctx context.Context, caller string) (T, bool, error) {
	var v T
	data, err := s.client.HGet(ctx, s.keys.slots(), caller).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return v, false, nil
		}
		return v, false, fmt.Errorf("redis hget failed: %w", err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("failed to unmarshal %s slot: %w", s.keys.kind, err)
	}
	return v, true, nil
}

func (s *Slots[T]) PutSlot(ctx context.Context, caller string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s slot: %w", s.keys.kind, err)
	}
	if err := s.client.HSet(ctx, s.keys.slots(), caller, data).Err(); err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}
	return nil
}

func (s *Slots[T]) RemoveSlot(ctx context.Context, caller string) (bool, error) {
	n, err := s.client.HDel(ctx, s.keys.slots(), caller).Result()
	if err != nil {
		return false, fmt.Errorf("redis hdel failed: %w", err)
	}
	return n > 0, nil
}

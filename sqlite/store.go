package sqlite

import (
	"agenda/record"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Store implements [record.Storage] for one entity kind.
type Store[T any] struct {
	d    *DB
	kind string
}

var _ record.Storage[struct{}] = (*Store[struct{}])(nil)

func NewStore[T any](d *DB, kind string) *Store[T] {
	return &Store[T]{d: d, kind: kind}
}

func (s *Store[T]) Get(ctx context.Context, id record.ID) (T, bool, error) {
	var v T
	if err := validateKind(s.kind); err != nil {
		return v, false, err
	}

	var payload []byte
	err := s.d.db.QueryRowContext(ctx,
		`SELECT payload FROM records WHERE kind = ? AND id = ?`, s.kind, int64(id),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("sqlite: get %s %d: %w", s.kind, id, err)
	}

	if err := json.Unmarshal(payload, &v); err != nil {
		return v, false, fmt.Errorf("sqlite: decode %s %d: %w", s.kind, id, err)
	}
	return v, true, nil
}

func (s *Store[T]) Insert(ctx context.Context, id record.ID, v T) error {
	if err := validateKind(s.kind); err != nil {
		return err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sqlite: encode %s %d: %w", s.kind, id, err)
	}

	_, err = s.d.db.ExecContext(ctx,
		`INSERT INTO records (kind, id, payload) VALUES (?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET payload = excluded.payload`,
		s.kind, int64(id), payload,
	)
	if err != nil {
		return fmt.Errorf("sqlite: put %s %d: %w", s.kind, id, err)
	}
	return nil
}

func (s *Store[T]) Remove(ctx context.Context, id record.ID) (bool, error) {
	if err := validateKind(s.kind); err != nil {
		return false, err
	}

	res, err := s.d.db.ExecContext(ctx,
		`DELETE FROM records WHERE kind = ? AND id = ?`, s.kind, int64(id),
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: delete %s %d: %w", s.kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: delete %s %d: %w", s.kind, id, err)
	}
	return n > 0, nil
}

func (s *Store[T]) Contains(ctx context.Context, id record.ID) (bool, error) {
	if err := validateKind(s.kind); err != nil {
		return false, err
	}

	ok, err := s.d.exists(ctx, `SELECT 1 FROM records WHERE kind = ? AND id = ?`, s.kind, int64(id))
	if err != nil {
		return false, fmt.Errorf("sqlite: lookup %s %d: %w", s.kind, id, err)
	}
	return ok, nil
}

func (s *Store[T]) List(ctx context.Context) ([]record.Entry[T], error) {
	if err := validateKind(s.kind); err != nil {
		return nil, err
	}

	rows, err := s.d.db.QueryContext(ctx,
		`SELECT id, payload FROM records WHERE kind = ? ORDER BY id`, s.kind,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list %s: %w", s.kind, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []record.Entry[T]
	for rows.Next() {
		var (
			id      int64
			payload []byte
			v       T
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("sqlite: scan %s: %w", s.kind, err)
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, fmt.Errorf("sqlite: decode %s %d: %w", s.kind, id, err)
		}
		entries = append(entries, record.Entry[T]{ID: record.ID(id), Value: v})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list %s: %w", s.kind, err)
	}
	return entries, nil
}

func (s *Store[T]) NextID(ctx context.Context) (record.ID, error) {
	if err := validateKind(s.kind); err != nil {
		return 0, err
	}

	var next int64
	err := s.d.db.QueryRowContext(ctx, `SELECT next FROM sequences WHERE kind = ?`, s.kind).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("sqlite: read sequence %s: %w", s.kind, err)
	}
	return record.ID(next), nil
}

func (s *Store[T]) SetNextID(ctx context.Context, next record.ID) error {
	if err := validateKind(s.kind); err != nil {
		return err
	}

	_, err := s.d.db.ExecContext(ctx,
		`INSERT INTO sequences (kind, next) VALUES (?, ?)
		ON CONFLICT (kind) DO UPDATE SET next = excluded.next`,
		s.kind, int64(next),
	)
	if err != nil {
		return fmt.Errorf("sqlite: write sequence %s: %w", s.kind, err)
	}
	return nil
}

// Slots implements [record.SlotStorage] for one entity kind.
type Slots[T any] struct {
	d    *DB
	kind string
}

var _ record.SlotStorage[struct{}] = (*Slots[struct{}])(nil)

func NewSlots[T any](d *DB, kind string) *Slots[T] {
	return &Slots[T]{d: d, kind: kind}
}

func (s *Slots[T]) GetSlot(ctx context.Context, caller string) (T, bool, error) {
	var v T
	var payload []byte
	err := s.d.db.QueryRowContext(ctx,
		`SELECT payload FROM slots WHERE kind = ? AND caller = ?`, s.kind, caller,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("sqlite: get %s slot: %w", s.kind, err)
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, false, fmt.Errorf("sqlite: decode %s slot: %w", s.kind, err)
	}
	return v, true, nil
}

func (s *Slots[T]) PutSlot(ctx context.Context, caller string, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sqlite: encode %s slot: %w", s.kind, err)
	}
	_, err = s.d.db.ExecContext(ctx,
		`INSERT INTO slots (kind, caller, payload) VALUES (?, ?, ?)
		ON CONFLICT (kind, caller) DO UPDATE SET payload = excluded.payload`,
		s.kind, caller, payload,
	)
	if err != nil {
		return fmt.Errorf("sqlite: put %s slot: %w", s.kind, err)
	}
	return nil
}

func (s *Slots[T]) RemoveSlot(ctx context.Context, caller string) (bool, error) {
	res, err := s.d.db.ExecContext(ctx, `DELETE FROM slots WHERE kind = ? AND caller = ?`, s.kind, caller)
	if err != nil {
		return false, fmt.Errorf("sqlite: delete %s slot: %w", s.kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: delete %s slot: %w", s.kind, err)
	}
	return n > 0, nil
}

package record

import (
	"agenda/errs"
	"context"
	"math"
)

// ID is the stable handle of a record within one entity kind.
type ID = uint32

// MaxID is the counter value at which no further identifiers can be issued.
const MaxID ID = math.MaxUint32

var (
	ErrCounterOverflow = errs.Errorf(errs.EINTERNAL, "record: identifier counter exhausted")
	ErrEmptyCaller     = errs.Errorf(errs.EINVALID, "record: caller identity is required")
)

// Entry pairs a stored value with its identifier.
type Entry[T any] struct {
	ID    ID
	Value T
}

// Storage is the key-value substrate a Repository persists into. Besides the
// records themselves it keeps the next identifier to issue, so that the
// counter survives restarts of durable backends.
type Storage[T any] interface {
	Get(ctx context.Context, id ID) (T, bool, error)
	Insert(ctx context.Context, id ID, v T) error
	Remove(ctx context.Context, id ID) (bool, error)
	Contains(ctx context.Context, id ID) (bool, error)
	// List returns every stored entry in ascending id order.
	List(ctx context.Context) ([]Entry[T], error)

	NextID(ctx context.Context) (ID, error)
	SetNextID(ctx context.Context, next ID) error
}

// SlotStorage holds at most one value per caller.
type SlotStorage[T any] interface {
	GetSlot(ctx context.Context, caller string) (T, bool, error)
	PutSlot(ctx context.Context, caller string, v T) error
	RemoveSlot(ctx context.Context, caller string) (bool, error)
}

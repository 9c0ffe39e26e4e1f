package contact

import (
	"agenda/errs"
	"agenda/record"
	"context"
)

var ErrSlotsDisabled = errs.Errorf(errs.ENOTIMPLEMENTED, "contact: per-caller contacts are not enabled")

type Service interface {
	CreateContact(ctx context.Context, c Contact) (record.ID, error)
	ReadContact(ctx context.Context, id record.ID) (Contact, bool, error)
	UpdateContact(ctx context.Context, id record.ID, c Contact) error
	DeleteContact(ctx context.Context, id record.ID) (bool, error)
	ListContacts(ctx context.Context) ([]record.Entry[Contact], error)

	PutCallerContact(ctx context.Context, caller string, c Contact) error
	CallerContact(ctx context.Context, caller string) (Contact, bool, error)
	DeleteCallerContact(ctx context.Context, caller string) (bool, error)
}

type Repository interface {
	Create(ctx context.Context, c Contact) (record.ID, error)
	Read(ctx context.Context, id record.ID) (Contact, bool, error)
	Update(ctx context.Context, id record.ID, c Contact) (bool, error)
	Delete(ctx context.Context, id record.ID) (bool, error)
	List(ctx context.Context) ([]record.Entry[Contact], error)
}

// SlotRepository keeps at most one contact per caller.
type SlotRepository interface {
	Put(ctx context.Context, caller string, c Contact) error
	Get(ctx context.Context, caller string) (Contact, bool, error)
	Delete(ctx context.Context, caller string) (bool, error)
}

type Option func(uc *Usecase)

// WithoutValidation skips field validation on create and update. Category
// values are still checked.
func WithoutValidation() Option {
	return func(uc *Usecase) {
		uc.skipValidation = true
	}
}

// WithSlots enables the per-caller operations.
func WithSlots(s SlotRepository) Option {
	return func(uc *Usecase) {
		uc.slots = s
	}
}

type Usecase struct {
	r              Repository
	slots          SlotRepository
	skipValidation bool
}

func NewUsecase(r Repository, opts ...Option) *Usecase {
	uc := &Usecase{r: r}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *Usecase) CreateContact(ctx context.Context, c Contact) (record.ID, error) {
	c, err := uc.check(c)
	if err != nil {
		return 0, err
	}
	return uc.r.Create(ctx, c)
}

func (uc *Usecase) ReadContact(ctx context.Context, id record.ID) (Contact, bool, error) {
	return uc.r.Read(ctx, id)
}

func (uc *Usecase) UpdateContact(ctx context.Context, id record.ID, c Contact) error {
	c, err := uc.check(c)
	if err != nil {
		return err
	}

	ok, err := uc.r.Update(ctx, id, c)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (uc *Usecase) DeleteContact(ctx context.Context, id record.ID) (bool, error) {
	return uc.r.Delete(ctx, id)
}

func (uc *Usecase) ListContacts(ctx context.Context) ([]record.Entry[Contact], error) {
	return uc.r.List(ctx)
}

func (uc *Usecase) PutCallerContact(ctx context.Context, caller string, c Contact) error {
	if uc.slots == nil {
		return ErrSlotsDisabled
	}
	c, err := uc.check(c)
	if err != nil {
		return err
	}
	return uc.slots.Put(ctx, caller, c)
}

func (uc *Usecase) CallerContact(ctx context.Context, caller string) (Contact, bool, error) {
	if uc.slots == nil {
		return Contact{}, false, ErrSlotsDisabled
	}
	return uc.slots.Get(ctx, caller)
}

func (uc *Usecase) DeleteCallerContact(ctx context.Context, caller string) (bool, error) {
	if uc.slots == nil {
		return false, ErrSlotsDisabled
	}
	return uc.slots.Delete(ctx, caller)
}

func (uc *Usecase) check(c Contact) (Contact, error) {
	c = c.Normalize()
	if uc.skipValidation {
		if !c.Category.Valid() {
			return c, ErrInvalidCategory
		}
		return c, nil
	}
	return c, c.Validate()
}

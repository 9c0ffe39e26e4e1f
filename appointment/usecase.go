package appointment

import (
	"agenda/errs"
	"agenda/record"
	"context"
)

var ErrSlotsDisabled = errs.Errorf(errs.ENOTIMPLEMENTED, "appointment: per-caller appointments are not enabled")

type Service interface {
	CreateAppointment(ctx context.Context, a Appointment) (record.ID, error)
	ReadAppointment(ctx context.Context, id record.ID) (Appointment, bool, error)
	UpdateAppointment(ctx context.Context, id record.ID, a Appointment) error
	DeleteAppointment(ctx context.Context, id record.ID) (bool, error)
	ListAppointments(ctx context.Context) ([]record.Entry[Appointment], error)

	PutCallerAppointment(ctx context.Context, caller string, a Appointment) error
	CallerAppointment(ctx context.Context, caller string) (Appointment, bool, error)
	DeleteCallerAppointment(ctx context.Context, caller string) (bool, error)
}

type Repository interface {
	Create(ctx context.Context, a Appointment) (record.ID, error)
	Read(ctx context.Context, id record.ID) (Appointment, bool, error)
	Update(ctx context.Context, id record.ID, a Appointment) (bool, error)
	Delete(ctx context.Context, id record.ID) (bool, error)
	List(ctx context.Context) ([]record.Entry[Appointment], error)
}

// SlotRepository keeps at most one appointment per caller.
type SlotRepository interface {
	Put(ctx context.Context, caller string, a Appointment) error
	Get(ctx context.Context, caller string) (Appointment, bool, error)
	Delete(ctx context.Context, caller string) (bool, error)
}

type Option func(uc *Usecase)

// WithoutValidation skips field validation on create and update. Priority
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

func (uc *Usecase) CreateAppointment(ctx context.Context, a Appointment) (record.ID, error) {
	a, err := uc.check(a)
	if err != nil {
		return 0, err
	}
	return uc.r.Create(ctx, a)
}

func (uc *Usecase) ReadAppointment(ctx context.Context, id record.ID) (Appointment, bool, error) {
	return uc.r.Read(ctx, id)
}

func (uc *Usecase) UpdateAppointment(ctx context.Context, id record.ID, a Appointment) error {
	a, err := uc.check(a)
	if err != nil {
		return err
	}

	ok, err := uc.r.Update(ctx, id, a)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (uc *Usecase) DeleteAppointment(ctx context.Context, id record.ID) (bool, error) {
	return uc.r.Delete(ctx, id)
}

func (uc *Usecase) ListAppointments(ctx context.Context) ([]record.Entry[Appointment], error) {
	return uc.r.List(ctx)
}

func (uc *Usecase) PutCallerAppointment(ctx context.Context, caller string, a Appointment) error {
	if uc.slots == nil {
		return ErrSlotsDisabled
	}
	a, err := uc.check(a)
	if err != nil {
		return err
	}
	return uc.slots.Put(ctx, caller, a)
}

func (uc *Usecase) CallerAppointment(ctx context.Context, caller string) (Appointment, bool, error) {
	if uc.slots == nil {
		return Appointment{}, false, ErrSlotsDisabled
	}
	return uc.slots.Get(ctx, caller)
}

func (uc *Usecase) DeleteCallerAppointment(ctx context.Context, caller string) (bool, error) {
	if uc.slots == nil {
		return false, ErrSlotsDisabled
	}
	return uc.slots.Delete(ctx, caller)
}

func (uc *Usecase) check(a Appointment) (Appointment, error) {
	a = a.Normalize()
	if uc.skipValidation {
		if !a.Priority.Valid() {
			return a, ErrInvalidPriority
		}
		return a, nil
	}
	return a, a.Validate()
}

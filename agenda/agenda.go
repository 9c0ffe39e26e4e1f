// Package agenda is the public face of the record manager. It wires the
// contact and appointment usecases onto storage and exposes their
// operations with logging and metrics around every call.
package agenda

import (
	"agenda/appointment"
	"agenda/contact"
	"agenda/errs"
	"agenda/pkg/logger"
	"agenda/pkg/metrics"
	"agenda/record"
	"context"

	"go.uber.org/zap"
)

const (
	kindContact     = "contact"
	kindAppointment = "appointment"
)

// Service is the full operation surface for both entity kinds.
type Service interface {
	contact.Service
	appointment.Service
}

// Backend supplies the storage for each entity kind. The slot storages are
// optional; per-caller operations report ENOTIMPLEMENTED without them.
type Backend struct {
	Contacts         record.Storage[contact.Contact]
	Appointments     record.Storage[appointment.Appointment]
	ContactSlots     record.SlotStorage[contact.Contact]
	AppointmentSlots record.SlotStorage[appointment.Appointment]
}

type Option func(a *Agenda)

// WithoutValidation builds usecases that skip field validation.
func WithoutValidation() Option {
	return func(a *Agenda) {
		a.skipValidation = true
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(a *Agenda) {
		a.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Agenda) {
		a.metrics = m
	}
}

type Agenda struct {
	contacts     contact.Service
	appointments appointment.Service

	logger         *zap.SugaredLogger
	metrics        *metrics.Metrics
	skipValidation bool
}

var _ Service = (*Agenda)(nil)

func New(b Backend, opts ...Option) *Agenda {
	a := &Agenda{logger: logger.NOOPLogger}
	for _, opt := range opts {
		opt(a)
	}

	var (
		contactOpts     []contact.Option
		appointmentOpts []appointment.Option
	)
	if a.skipValidation {
		contactOpts = append(contactOpts, contact.WithoutValidation())
		appointmentOpts = append(appointmentOpts, appointment.WithoutValidation())
	}
	if b.ContactSlots != nil {
		contactOpts = append(contactOpts, contact.WithSlots(record.NewSlots(b.ContactSlots)))
	}
	if b.AppointmentSlots != nil {
		appointmentOpts = append(appointmentOpts, appointment.WithSlots(record.NewSlots(b.AppointmentSlots)))
	}

	a.contacts = contact.NewUsecase(record.NewRepository(b.Contacts), contactOpts...)
	a.appointments = appointment.NewUsecase(record.NewRepository(b.Appointments), appointmentOpts...)

	return a
}

func (a *Agenda) CreateContact(ctx context.Context, c contact.Contact) (record.ID, error) {
	id, err := a.contacts.CreateContact(ctx, c)
	a.observe(kindContact, "create", err, "id", id)
	return id, err
}

func (a *Agenda) ReadContact(ctx context.Context, id record.ID) (contact.Contact, bool, error) {
	c, ok, err := a.contacts.ReadContact(ctx, id)
	a.observe(kindContact, "read", err, "id", id, "found", ok)
	return c, ok, err
}

func (a *Agenda) UpdateContact(ctx context.Context, id record.ID, c contact.Contact) error {
	err := a.contacts.UpdateContact(ctx, id, c)
	a.observe(kindContact, "update", err, "id", id)
	return err
}

func (a *Agenda) DeleteContact(ctx context.Context, id record.ID) (bool, error) {
	ok, err := a.contacts.DeleteContact(ctx, id)
	a.observe(kindContact, "delete", err, "id", id, "deleted", ok)
	return ok, err
}

func (a *Agenda) ListContacts(ctx context.Context) ([]record.Entry[contact.Contact], error) {
	entries, err := a.contacts.ListContacts(ctx)
	a.observe(kindContact, "list", err, "count", len(entries))
	return entries, err
}

func (a *Agenda) PutCallerContact(ctx context.Context, caller string, c contact.Contact) error {
	err := a.contacts.PutCallerContact(ctx, caller, c)
	a.observe(kindContact, "put_caller", err, "caller", caller)
	return err
}

func (a *Agenda) CallerContact(ctx context.Context, caller string) (contact.Contact, bool, error) {
	c, ok, err := a.contacts.CallerContact(ctx, caller)
	a.observe(kindContact, "get_caller", err, "caller", caller, "found", ok)
	return c, ok, err
}

func (a *Agenda) DeleteCallerContact(ctx context.Context, caller string) (bool, error) {
	ok, err := a.contacts.DeleteCallerContact(ctx, caller)
	a.observe(kindContact, "delete_caller", err, "caller", caller, "deleted", ok)
	return ok, err
}

func (a *Agenda) CreateAppointment(ctx context.Context, ap appointment.Appointment) (record.ID, error) {
	id, err := a.appointments.CreateAppointment(ctx, ap)
	a.observe(kindAppointment, "create", err, "id", id)
	return id, err
}

func (a *Agenda) ReadAppointment(ctx context.Context, id record.ID) (appointment.Appointment, bool, error) {
	ap, ok, err := a.appointments.ReadAppointment(ctx, id)
	a.observe(kindAppointment, "read", err, "id", id, "found", ok)
	return ap, ok, err
}

func (a *Agenda) UpdateAppointment(ctx context.Context, id record.ID, ap appointment.Appointment) error {
	err := a.appointments.UpdateAppointment(ctx, id, ap)
	a.observe(kindAppointment, "update", err, "id", id)
	return err
}

func (a *Agenda) DeleteAppointment(ctx context.Context, id record.ID) (bool, error) {
	ok, err := a.appointments.DeleteAppointment(ctx, id)
	a.observe(kindAppointment, "delete", err, "id", id, "deleted", ok)
	return ok, err
}

func (a *Agenda) ListAppointments(ctx context.Context) ([]record.Entry[appointment.Appointment], error) {
	entries, err := a.appointments.ListAppointments(ctx)
	a.observe(kindAppointment, "list", err, "count", len(entries))
	return entries, err
}

func (a *Agenda) PutCallerAppointment(ctx context.Context, caller string, ap appointment.Appointment) error {
	err := a.appointments.PutCallerAppointment(ctx, caller, ap)
	a.observe(kindAppointment, "put_caller", err, "caller", caller)
	return err
}

func (a *Agenda) CallerAppointment(ctx context.Context, caller string) (appointment.Appointment, bool, error) {
	ap, ok, err := a.appointments.CallerAppointment(ctx, caller)
	a.observe(kindAppointment, "get_caller", err, "caller", caller, "found", ok)
	return ap, ok, err
}

func (a *Agenda) DeleteCallerAppointment(ctx context.Context, caller string) (bool, error) {
	ok, err := a.appointments.DeleteCallerAppointment(ctx, caller)
	a.observe(kindAppointment, "delete_caller", err, "caller", caller, "deleted", ok)
	return ok, err
}

func (a *Agenda) observe(kind, op string, err error, kv ...interface{}) {
	a.metrics.Observe(kind, op, err)

	kv = append(kv, "kind", kind, "op", op)
	switch {
	case err == nil:
		a.logger.Debugw("agenda operation", kv...)
	case errs.ErrorCode(err) == errs.EINTERNAL:
		a.logger.Errorw("agenda operation failed", append(kv, "error", err)...)
	default:
		a.logger.Infow("agenda operation rejected", append(kv, "error", err)...)
	}
}

package httpserver_test

import (
	"agenda/appointment"
	"agenda/contact"
	"agenda/record"
	"context"

	"github.com/stretchr/testify/mock"
)

type MockContactService struct {
	mock.Mock
}

var _ contact.Service = (*MockContactService)(nil)

func (m *MockContactService) CreateContact(ctx context.Context, c contact.Contact) (record.ID, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(record.ID), args.Error(1)
}

func (m *MockContactService) ReadContact(ctx context.Context, id record.ID) (contact.Contact, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(contact.Contact), args.Bool(1), args.Error(2)
}

func (m *MockContactService) UpdateContact(ctx context.Context, id record.ID, c contact.Contact) error {
	args := m.Called(ctx, id, c)
	return args.Error(0)
}

func (m *MockContactService) DeleteContact(ctx context.Context, id record.ID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContactService) ListContacts(ctx context.Context) ([]record.Entry[contact.Contact], error) {
	args := m.Called(ctx)
	return args.Get(0).([]record.Entry[contact.Contact]), args.Error(1)
}

func (m *MockContactService) PutCallerContact(ctx context.Context, caller string, c contact.Contact) error {
	args := m.Called(ctx, caller, c)
	return args.Error(0)
}

func (m *MockContactService) CallerContact(ctx context.Context, caller string) (contact.Contact, bool, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).(contact.Contact), args.Bool(1), args.Error(2)
}

func (m *MockContactService) DeleteCallerContact(ctx context.Context, caller string) (bool, error) {
	args := m.Called(ctx, caller)
	return args.Bool(0), args.Error(1)
}

type MockAppointmentService struct {
	mock.Mock
}

var _ appointment.Service = (*MockAppointmentService)(nil)

func (m *MockAppointmentService) CreateAppointment(ctx context.Context, a appointment.Appointment) (record.ID, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(record.ID), args.Error(1)
}

func (m *MockAppointmentService) ReadAppointment(ctx context.Context, id record.ID) (appointment.Appointment, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(appointment.Appointment), args.Bool(1), args.Error(2)
}

func (m *MockAppointmentService) UpdateAppointment(ctx context.Context, id record.ID, a appointment.Appointment) error {
	args := m.Called(ctx, id, a)
	return args.Error(0)
}

func (m *MockAppointmentService) DeleteAppointment(ctx context.Context, id record.ID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentService) ListAppointments(ctx context.Context) ([]record.Entry[appointment.Appointment], error) {
	args := m.Called(ctx)
	return args.Get(0).([]record.Entry[appointment.Appointment]), args.Error(1)
}

func (m *MockAppointmentService) PutCallerAppointment(ctx context.Context, caller string, a appointment.Appointment) error {
	args := m.Called(ctx, caller, a)
	return args.Error(0)
}

func (m *MockAppointmentService) CallerAppointment(ctx context.Context, caller string) (appointment.Appointment, bool, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).(appointment.Appointment), args.Bool(1), args.Error(2)
}

func (m *MockAppointmentService) DeleteCallerAppointment(ctx context.Context, caller string) (bool, error) {
	args := m.Called(ctx, caller)
	return args.Bool(0), args.Error(1)
}

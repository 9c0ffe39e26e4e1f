package appointment_test

import (
	"agenda/appointment"
	"agenda/errs"
	"agenda/record"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, a appointment.Appointment) (record.ID, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(record.ID), args.Error(1)
}

func (m *MockAppointmentRepository) Read(ctx context.Context, id record.ID) (appointment.Appointment, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(appointment.Appointment), args.Bool(1), args.Error(2)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, id record.ID, a appointment.Appointment) (bool, error) {
	args := m.Called(ctx, id, a)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id record.ID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context) ([]record.Entry[appointment.Appointment], error) {
	args := m.Called(ctx)
	return args.Get(0).([]record.Entry[appointment.Appointment]), args.Error(1)
}

func dentist() appointment.Appointment {
	return appointment.Appointment{
		Title:    "Dentist",
		Date:     "15/03/2025",
		Time:     "09:30",
		Priority: appointment.PriorityHigh,
		Duration: 45,
	}
}

func TestCreateAppointment(t *testing.T) {
	r := new(MockAppointmentRepository)
	uc := appointment.NewUsecase(r)

	t.Run("should store a valid appointment", func(t *testing.T) {
		a := dentist()
		r.On("Create", mock.Anything, a).Return(record.ID(0), nil).Once()

		id, err := uc.CreateAppointment(context.Background(), a)

		assert.NoError(t, err)
		assert.Equal(t, record.ID(0), id)
		r.AssertExpectations(t)
	})

	t.Run("should default the priority to low", func(t *testing.T) {
		a := dentist()
		a.Priority = ""
		stored := a
		stored.Priority = appointment.PriorityLow
		r.On("Create", mock.Anything, stored).Return(record.ID(1), nil).Once()

		_, err := uc.CreateAppointment(context.Background(), a)

		assert.NoError(t, err)
		r.AssertExpectations(t)
	})

	t.Run("should accept a negative duration", func(t *testing.T) {
		a := dentist()
		a.Duration = -30
		r.On("Create", mock.Anything, a).Return(record.ID(2), nil).Once()

		_, err := uc.CreateAppointment(context.Background(), a)

		assert.NoError(t, err)
	})

	tests := []struct {
		name     string
		mutate   func(a *appointment.Appointment)
		expected error
	}{
		{name: "should fail on empty title", mutate: func(a *appointment.Appointment) { a.Title = "" }, expected: appointment.ErrEmptyTitle},
		{name: "should fail on non leap day", mutate: func(a *appointment.Appointment) { a.Date = "29/02/2023" }, expected: appointment.ErrInvalidDate},
		{name: "should fail on thirteenth month", mutate: func(a *appointment.Appointment) { a.Date = "15/13/2025" }, expected: appointment.ErrInvalidDate},
		{name: "should fail on hour 24", mutate: func(a *appointment.Appointment) { a.Time = "24:00" }, expected: appointment.ErrInvalidTime},
		{name: "should fail on minute 60", mutate: func(a *appointment.Appointment) { a.Time = "12:60" }, expected: appointment.ErrInvalidTime},
		{name: "should fail on unknown priority", mutate: func(a *appointment.Appointment) { a.Priority = "urgent" }, expected: appointment.ErrInvalidPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := dentist()
			tt.mutate(&a)

			_, err := uc.CreateAppointment(context.Background(), a)

			assert.Equal(t, tt.expected, err)
			assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
			r.AssertNotCalled(t, "Create", mock.Anything, a)
		})
	}
}

func TestCreateAppointment_WithoutValidation(t *testing.T) {
	r := new(MockAppointmentRepository)
	uc := appointment.NewUsecase(r, appointment.WithoutValidation())
	a := appointment.Appointment{Date: "someday", Time: "noon", Priority: appointment.PriorityMedium}
	r.On("Create", mock.Anything, a).Return(record.ID(0), nil).Once()

	_, err := uc.CreateAppointment(context.Background(), a)

	assert.NoError(t, err)
	r.AssertExpectations(t)
}

func TestUpdateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("should replace an existing appointment", func(t *testing.T) {
		r := new(MockAppointmentRepository)
		uc := appointment.NewUsecase(r)
		r.On("Update", mock.Anything, record.ID(3), dentist()).Return(true, nil).Once()

		require.NoError(t, uc.UpdateAppointment(ctx, 3, dentist()))
		r.AssertExpectations(t)
	})

	t.Run("should return not found for a missing appointment", func(t *testing.T) {
		r := new(MockAppointmentRepository)
		uc := appointment.NewUsecase(r)
		r.On("Update", mock.Anything, record.ID(3), dentist()).Return(false, nil).Once()

		err := uc.UpdateAppointment(ctx, 3, dentist())

		assert.Equal(t, appointment.ErrNotFound, err)
	})

	t.Run("should not touch storage on invalid time", func(t *testing.T) {
		r := new(MockAppointmentRepository)
		uc := appointment.NewUsecase(r)
		a := dentist()
		a.Time = "9"

		err := uc.UpdateAppointment(ctx, 3, a)

		assert.Equal(t, appointment.ErrInvalidTime, err)
		r.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListAppointments(t *testing.T) {
	r := new(MockAppointmentRepository)
	uc := appointment.NewUsecase(r)
	entries := []record.Entry[appointment.Appointment]{{ID: 1, Value: dentist()}}
	r.On("List", mock.Anything).Return(entries, nil).Once()

	result, err := uc.ListAppointments(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entries, result)
}

func TestCallerAppointment_Disabled(t *testing.T) {
	uc := appointment.NewUsecase(new(MockAppointmentRepository))

	err := uc.PutCallerAppointment(context.Background(), "alice", dentist())

	assert.Equal(t, appointment.ErrSlotsDisabled, err)
	assert.Equal(t, errs.ENOTIMPLEMENTED, errs.ErrorCode(err))
}

func TestParsePriority(t *testing.T) {
	p, err := appointment.ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, appointment.PriorityLow, p)

	p, err = appointment.ParsePriority("High")
	require.NoError(t, err)
	assert.Equal(t, appointment.PriorityHigh, p)

	_, err = appointment.ParsePriority("asap")
	assert.Equal(t, appointment.ErrInvalidPriority, err)
}

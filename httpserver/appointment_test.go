package httpserver_test

import (
	"agenda/appointment"
	"agenda/httpserver"
	"agenda/record"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const standupJSON = `{"title":"Standup","date":"02/06/2025","time":"09:00","priority":"medium","duration":15}`

func standupAppointment() appointment.Appointment {
	return appointment.Appointment{Title: "Standup", Date: "02/06/2025", Time: "09:00", Priority: appointment.PriorityMedium, Duration: 15}
}

func newAppointmentServer() (*httpserver.Server, *MockAppointmentService) {
	server := httpserver.Default(testConfig())
	svc := new(MockAppointmentService)
	server.AppointmentService = svc
	return server, svc
}

func TestListAppointments(t *testing.T) {
	server, svc := newAppointmentServer()
	svc.On("ListAppointments", mock.Anything).Return([]record.Entry[appointment.Appointment]{
		{ID: 1, Value: standupAppointment()},
	}, nil).Once()
	recorder := httptest.NewRecorder()

	server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodGet, "/api/appointments", "", ""))

	assert.Equal(t, http.StatusOK, recorder.Code)
	var result struct {
		Data []httpserver.AppointmentResponse `json:"data"`
	}
	decodeAPIResult(t, decodeAPIResponse(t, recorder).Result, &result)
	require.Len(t, result.Data, 1)
	assert.Equal(t, record.ID(1), result.Data[0].ID)
	assert.Equal(t, standupAppointment(), result.Data[0].Appointment)
	svc.AssertExpectations(t)
}

func TestGetAppointment_NotFound(t *testing.T) {
	server, svc := newAppointmentServer()
	svc.On("ReadAppointment", mock.Anything, record.ID(7)).Return(appointment.Appointment{}, false, nil).Once()
	recorder := httptest.NewRecorder()

	server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodGet, "/api/appointments/7", "", ""))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "appointment: not found", decodeAPIResponse(t, recorder).Message)
}

func TestCreateAppointment(t *testing.T) {
	server, svc := newAppointmentServer()
	token := mustSignTestToken(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{name: "invalid time", body: `{"title":"Standup","date":"02/06/2025","time":"24:00"}`, expectedStatus: http.StatusBadRequest},
		{name: "invalid date", body: `{"title":"Standup","date":"2025-06-02","time":"09:00"}`, expectedStatus: http.StatusBadRequest},
		{name: "missing title", body: `{"date":"02/06/2025","time":"09:00"}`, expectedStatus: http.StatusBadRequest},
		{name: "unknown priority", body: `{"title":"Standup","date":"02/06/2025","time":"09:00","priority":"urgent"}`, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPost, "/api/appointments", tt.body, token))

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			assert.Equal(t, "100010", decodeAPIResponse(t, recorder).Code)
		})
	}

	t.Run("created", func(t *testing.T) {
		svc.On("CreateAppointment", mock.Anything, standupAppointment()).Return(record.ID(3), nil).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPost, "/api/appointments", standupJSON, token))

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.JSONEq(t, `{"id":3}`, string(decodeAPIResponse(t, recorder).Result))
	})

	svc.AssertExpectations(t)
	svc.AssertNumberOfCalls(t, "CreateAppointment", 1)
}

func TestUpdateAppointment_NotFound(t *testing.T) {
	server, svc := newAppointmentServer()
	svc.On("UpdateAppointment", mock.Anything, record.ID(42), standupAppointment()).Return(appointment.ErrNotFound).Once()
	recorder := httptest.NewRecorder()

	server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPut, "/api/appointments/42", standupJSON, mustSignTestToken(t)))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	svc.AssertExpectations(t)
}

func TestDeleteAppointment(t *testing.T) {
	server, svc := newAppointmentServer()
	svc.On("DeleteAppointment", mock.Anything, record.ID(0)).Return(true, nil).Once()
	recorder := httptest.NewRecorder()

	server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodDelete, "/api/appointments/0", "", mustSignTestToken(t)))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"deleted":true}`, string(decodeAPIResponse(t, recorder).Result))
	svc.AssertExpectations(t)
}

func TestCreateAppointment_PrioritySpelling(t *testing.T) {
	tests := []struct {
		priority string
		expected appointment.Priority
	}{
		{priority: "High", expected: appointment.PriorityHigh},
		{priority: "MEDIUM", expected: appointment.PriorityMedium},
		{priority: "low", expected: appointment.PriorityLow},
		{priority: "", expected: appointment.DefaultPriority},
	}

	for _, tt := range tests {
		t.Run("priority "+tt.priority, func(t *testing.T) {
			server, svc := newAppointmentServer()
			want := standupAppointment()
			want.Priority = tt.expected
			svc.On("CreateAppointment", mock.Anything, want).Return(record.ID(0), nil).Once()
			body := `{"title":"Standup","date":"02/06/2025","time":"09:00","priority":"` + tt.priority + `","duration":15}`
			recorder := httptest.NewRecorder()

			server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPost, "/api/appointments", body, mustSignTestToken(t)))

			assert.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

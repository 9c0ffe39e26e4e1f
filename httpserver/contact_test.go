package httpserver_test

import (
	"agenda/contact"
	"agenda/httpserver"
	"agenda/record"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const anaJSON = `{"name":"Ana","phone":"555","age":20,"birthdate":"01/01/2000","category":"friend"}`

func anaContact() contact.Contact {
	return contact.Contact{Name: "Ana", Phone: "555", Age: 20, Birthdate: "01/01/2000", Category: contact.CategoryFriend}
}

func newContactServer() (*httpserver.Server, *MockContactService) {
	server := httpserver.Default(testConfig())
	svc := new(MockContactService)
	server.ContactService = svc
	return server, svc
}

func TestListContacts(t *testing.T) {
	server, svc := newContactServer()
	svc.On("ListContacts", mock.Anything).Return([]record.Entry[contact.Contact]{
		{ID: 0, Value: anaContact()},
		{ID: 2, Value: contact.Contact{Name: "Carla", Phone: "777", Birthdate: "05/05/1990", Category: contact.CategoryFamily}},
	}, nil).Once()
	recorder := httptest.NewRecorder()

	server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodGet, "/api/contacts", "", ""))

	assert.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeAPIResponse(t, recorder)
	var result struct {
		Data []httpserver.ContactResponse `json:"data"`
	}
	decodeAPIResult(t, resp.Result, &result)
	require.Len(t, result.Data, 2)
	assert.Equal(t, record.ID(0), result.Data[0].ID)
	assert.Equal(t, "Ana", result.Data[0].Name)
	assert.Equal(t, record.ID(2), result.Data[1].ID)
	svc.AssertExpectations(t)
}

func TestGetContact(t *testing.T) {
	server, svc := newContactServer()

	t.Run("should returns 200 with the stored contact", func(t *testing.T) {
		svc.On("ReadContact", mock.Anything, record.ID(3)).Return(anaContact(), true, nil).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodGet, "/api/contacts/3", "", ""))

		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		var got httpserver.ContactResponse
		decodeAPIResult(t, resp.Result, &got)
		assert.Equal(t, record.ID(3), got.ID)
		assert.Equal(t, anaContact(), got.Contact)
	})

	t.Run("should returns 404 when contact is absent", func(t *testing.T) {
		svc.On("ReadContact", mock.Anything, record.ID(9)).Return(contact.Contact{}, false, nil).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodGet, "/api/contacts/9", "", ""))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "100404", decodeAPIResponse(t, recorder).Code)
	})

	t.Run("should returns 400 when id is not a number", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodGet, "/api/contacts/abc", "", ""))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "100010", decodeAPIResponse(t, recorder).Code)
	})

	t.Run("should returns 400 when id overflows 32 bits", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodGet, "/api/contacts/4294967296", "", ""))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	svc.AssertExpectations(t)
}

func TestCreateContact(t *testing.T) {
	server, svc := newContactServer()
	token := mustSignTestToken(t)

	t.Run("should returns 201 when added new contact", func(t *testing.T) {
		svc.On("CreateContact", mock.Anything, anaContact()).Return(record.ID(0), nil).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPost, "/api/contacts", anaJSON, token))

		assert.Equal(t, http.StatusCreated, recorder.Code, "Expected 201 Created")
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "201", resp.Code)
		assert.Equal(t, "OK", resp.Message)
		assert.JSONEq(t, `{"id":0}`, string(resp.Result))
		svc.AssertExpectations(t)
	})

	t.Run("should returns 400 when request is invalid", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		body := `{"phone":"555","birthdate":"01/01/2000"}`

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPost, "/api/contacts", body, token))

		assert.Equal(t, http.StatusBadRequest, recorder.Code, "Expected 400 Bad Request")
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100010", resp.Code)
		assert.Equal(t, "validation error: name failed on required", resp.Message)
	})

	t.Run("should returns 400 when birthdate is not a calendar date", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		body := `{"name":"Ana","phone":"555","birthdate":"31/04/2025"}`

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPost, "/api/contacts", body, token))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "100010", decodeAPIResponse(t, recorder).Code)
	})

	t.Run("should returns 400 when JSON is malformed", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPost, "/api/contacts", `{"name":`, token))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "100010", decodeAPIResponse(t, recorder).Code)
	})

	t.Run("should returns 401 without a token", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPost, "/api/contacts", anaJSON, ""))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "100401", decodeAPIResponse(t, recorder).Code)
	})

	t.Run("should returns 500 when the service fails", func(t *testing.T) {
		svc.On("CreateContact", mock.Anything, anaContact()).Return(record.ID(0), record.ErrCounterOverflow).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPost, "/api/contacts", anaJSON, token))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Equal(t, "Internal server error", decodeAPIResponse(t, recorder).Message)
	})

	svc.AssertNotCalled(t, "CreateContact", mock.Anything, mock.MatchedBy(func(c contact.Contact) bool { return c.Name == "" }))
}

func TestCreateContact_WithoutRequestValidation(t *testing.T) {
	cfg := testConfig()
	cfg.Agenda.Validate = false
	server := httpserver.Default(cfg)
	svc := new(MockContactService)
	server.ContactService = svc
	body := `{"name":"","phone":"","birthdate":"nope"}`
	svc.On("CreateContact", mock.Anything, contact.Contact{Birthdate: "nope", Category: contact.CategoryColleague}).Return(record.ID(4), nil).Once()
	recorder := httptest.NewRecorder()

	server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPost, "/api/contacts", body, mustSignTestToken(t)))

	assert.Equal(t, http.StatusCreated, recorder.Code)
	svc.AssertExpectations(t)
}

func TestUpdateContact(t *testing.T) {
	server, svc := newContactServer()
	token := mustSignTestToken(t)

	t.Run("should returns 200 when contact is replaced", func(t *testing.T) {
		svc.On("UpdateContact", mock.Anything, record.ID(1), anaContact()).Return(nil).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPut, "/api/contacts/1", anaJSON, token))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"id":1}`, string(decodeAPIResponse(t, recorder).Result))
	})

	t.Run("should returns 404 when contact is absent", func(t *testing.T) {
		svc.On("UpdateContact", mock.Anything, record.ID(42), anaContact()).Return(contact.ErrNotFound).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPut, "/api/contacts/42", anaJSON, token))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("should returns 400 when the usecase rejects the contact", func(t *testing.T) {
		svc.On("UpdateContact", mock.Anything, record.ID(2), anaContact()).Return(contact.ErrEmptyPhone).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPut, "/api/contacts/2", anaJSON, token))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "contact: phone is required", decodeAPIResponse(t, recorder).Message)
	})

	svc.AssertExpectations(t)
}

func TestDeleteContact(t *testing.T) {
	server, svc := newContactServer()
	token := mustSignTestToken(t)
	svc.On("DeleteContact", mock.Anything, record.ID(5)).Return(true, nil).Once()
	svc.On("DeleteContact", mock.Anything, record.ID(5)).Return(false, nil).Once()

	first := httptest.NewRecorder()
	server.Router.ServeHTTP(first, newJSONRequest(http.MethodDelete, "/api/contacts/5", "", token))
	second := httptest.NewRecorder()
	server.Router.ServeHTTP(second, newJSONRequest(http.MethodDelete, "/api/contacts/5", "", token))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, `{"deleted":true}`, string(decodeAPIResponse(t, first).Result))
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, `{"deleted":false}`, string(decodeAPIResponse(t, second).Result))
	svc.AssertExpectations(t)
}

func TestDeleteContact_StorageError(t *testing.T) {
	server, svc := newContactServer()
	svc.On("DeleteContact", mock.Anything, record.ID(5)).Return(false, errors.New("connection reset")).Once()
	recorder := httptest.NewRecorder()

	server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodDelete, "/api/contacts/5", "", mustSignTestToken(t)))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "100500", decodeAPIResponse(t, recorder).Code)
}

func TestCreateContact_CategorySpelling(t *testing.T) {
	tests := []struct {
		name     string
		category string
		expected contact.Category
	}{
		{name: "capitalized", category: "Friend", expected: contact.CategoryFriend},
		{name: "upper case", category: "FAMILY", expected: contact.CategoryFamily},
		{name: "padded", category: " colleague ", expected: contact.CategoryColleague},
		{name: "absent uses default", category: "", expected: contact.DefaultCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, svc := newContactServer()
			want := anaContact()
			want.Category = tt.expected
			svc.On("CreateContact", mock.Anything, want).Return(record.ID(0), nil).Once()
			body := `{"name":"Ana","phone":"555","age":20,"birthdate":"01/01/2000","category":"` + tt.category + `"}`
			recorder := httptest.NewRecorder()

			server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPost, "/api/contacts", body, mustSignTestToken(t)))

			assert.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestCreateContact_UnknownCategory(t *testing.T) {
	for _, validate := range []bool{true, false} {
		cfg := testConfig()
		cfg.Agenda.Validate = validate
		server := httpserver.Default(cfg)
		svc := new(MockContactService)
		server.ContactService = svc
		body := `{"name":"Ana","phone":"555","birthdate":"01/01/2000","category":"neighbour"}`
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPost, "/api/contacts", body, mustSignTestToken(t)))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, contact.ErrInvalidCategory.Message, decodeAPIResponse(t, recorder).Message)
		svc.AssertNotCalled(t, "CreateContact", mock.Anything, mock.Anything)
	}
}

func TestCreateContact_RequestRulesMatchCore(t *testing.T) {
	server, svc := newContactServer()
	whitespace := contact.Contact{Name: "   ", Phone: "555", Age: 200, Birthdate: "01/01/2000", Category: contact.CategoryColleague}
	svc.On("CreateContact", mock.Anything, whitespace).Return(record.ID(0), nil).Once()
	body := `{"name":"   ","phone":"555","age":200,"birthdate":"01/01/2000"}`
	recorder := httptest.NewRecorder()

	server.Router.ServeHTTP(recorder, newJSONRequest(http.MethodPost, "/api/contacts", body, mustSignTestToken(t)))

	assert.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	svc.AssertExpectations(t)
	assert.NoError(t, whitespace.Validate())
}

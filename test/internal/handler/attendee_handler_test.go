package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"event-registration-api/internal/handler"
	"event-registration-api/internal/model"
	apperrors "event-registration-api/pkg/app_errors"
	mocks "event-registration-api/test/internal/mocks/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAttendeeTestRouter(mockService *mocks.AttendeeServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	attendeeHandler := handler.NewAttendeeHandler(mockService)
	attendeeHandler.RegisterRoutes(router)

	return router
}

func TestRegisterAttendee(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewAttendeeServiceMock()
		router := setupAttendeeTestRouter(mockService)

		mockService.On("Register", mock.Anything, 1, mock.Anything).Return(&model.Attendee{
			ID:      1,
			EventID: 1,
			Name:    "Asha",
			Email:   "asha@example.com",
		}, nil).Once()

		body := model.RegisterAttendeeRequest{Name: "Asha", Email: "asha@example.com"}
		req := createJSONHTTPRequest("POST", "/api/v1/events/1/register", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		envelope := decodeEnvelope(w.Body)
		assert.Equal(t, true, envelope["success"])
		assert.Equal(t, "Attendee registered successfully", envelope["message"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - EventNotFound", func(t *testing.T) {
		mockService := mocks.NewAttendeeServiceMock()
		router := setupAttendeeTestRouter(mockService)

		mockService.On("Register", mock.Anything, 42, mock.Anything).Return(nil, apperrors.ErrEventNotFound).Once()

		body := model.RegisterAttendeeRequest{Name: "Asha", Email: "asha@example.com"}
		req := createJSONHTTPRequest("POST", "/api/v1/events/42/register", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - DuplicateEmail", func(t *testing.T) {
		mockService := mocks.NewAttendeeServiceMock()
		router := setupAttendeeTestRouter(mockService)

		mockService.On("Register", mock.Anything, 1, mock.Anything).Return(nil, apperrors.ErrDuplicateEmail).Once()

		body := model.RegisterAttendeeRequest{Name: "Asha", Email: "asha@example.com"}
		req := createJSONHTTPRequest("POST", "/api/v1/events/1/register", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		envelope := decodeEnvelope(w.Body)
		errs := envelope["errors"].(map[string]interface{})
		// duplicate email is scoped to the email field
		assert.Contains(t, errs, "email")
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - CapacityExceeded", func(t *testing.T) {
		mockService := mocks.NewAttendeeServiceMock()
		router := setupAttendeeTestRouter(mockService)

		mockService.On("Register", mock.Anything, 1, mock.Anything).Return(nil, apperrors.ErrCapacityExceeded).Once()

		body := model.RegisterAttendeeRequest{Name: "Asha", Email: "asha@example.com"}
		req := createJSONHTTPRequest("POST", "/api/v1/events/1/register", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - MissingEmail", func(t *testing.T) {
		mockService := mocks.NewAttendeeServiceMock()
		router := setupAttendeeTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/events/1/register", map[string]string{"name": "Asha"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		envelope := decodeEnvelope(w.Body)
		errs := envelope["errors"].(map[string]interface{})
		assert.Contains(t, errs, "email")
		mockService.AssertNotCalled(t, "Register")
	})

	t.Run("Failed - MalformedEmail", func(t *testing.T) {
		mockService := mocks.NewAttendeeServiceMock()
		router := setupAttendeeTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/events/1/register",
			map[string]string{"name": "Asha", "email": "not-an-email"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockService.AssertNotCalled(t, "Register")
	})

	t.Run("Failed - InvalidEventID", func(t *testing.T) {
		mockService := mocks.NewAttendeeServiceMock()
		router := setupAttendeeTestRouter(mockService)

		body := model.RegisterAttendeeRequest{Name: "Asha", Email: "asha@example.com"}
		req := createJSONHTTPRequest("POST", "/api/v1/events/abc/register", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Register")
	})
}

func TestListAttendees(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewAttendeeServiceMock()
		router := setupAttendeeTestRouter(mockService)

		mockService.On("ListByEvent", mock.Anything, 1, mock.Anything).Return(&model.AttendeeListResult{
			Data:       []*model.Attendee{{ID: 1, EventID: 1, Name: "Asha", Email: "asha@example.com"}},
			Pagination: model.NewPagination(1, 15, 1, 1),
			Event:      model.EventSummary{ID: 1, Name: "Meetup", CurrentAttendees: 1, MaxCapacity: 10},
		}, nil).Once()

		req := httptest.NewRequest("GET", "/api/v1/events/1/attendees", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		envelope := decodeEnvelope(w.Body)
		data := envelope["data"].(map[string]interface{})
		assert.Contains(t, data, "pagination")
		assert.Contains(t, data, "event")
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - EventNotFound", func(t *testing.T) {
		mockService := mocks.NewAttendeeServiceMock()
		router := setupAttendeeTestRouter(mockService)

		mockService.On("ListByEvent", mock.Anything, 42, mock.Anything).Return(nil, apperrors.ErrEventNotFound).Once()

		req := httptest.NewRequest("GET", "/api/v1/events/42/attendees", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}

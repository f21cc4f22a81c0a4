package handler

import (
	"errors"
	"net/http"
	"strconv"

	"event-registration-api/internal/model"
	"event-registration-api/internal/service"
	apperrors "event-registration-api/pkg/app_errors"
	"event-registration-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AttendeeHandler struct {
	service service.AttendeeService
}

func NewAttendeeHandler(service service.AttendeeService) *AttendeeHandler {
	return &AttendeeHandler{service: service}
}

// RegisterRoutes wires the attendee endpoints. The registration route takes
// extra middleware (the rate limiter) because it is the abuse target.
func (h *AttendeeHandler) RegisterRoutes(r *gin.Engine, registerMiddleware ...gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		handlers := append(registerMiddleware, h.Register)
		router.POST("events/:event_id/register", handlers...)
		router.GET("events/:event_id/attendees", h.ListByEvent)
	}
}

func (h *AttendeeHandler) Register(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid event id", nil)
		return
	}

	var req model.RegisterAttendeeRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	attendee, err := h.service.Register(c, eventID, req)
	if err != nil {
		h.handleError(c, err, "Register")
		return
	}

	createdResponse(c, "Attendee registered successfully", attendee)
}

func (h *AttendeeHandler) ListByEvent(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid event id", nil)
		return
	}

	var query model.ListAttendeesQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	result, err := h.service.ListByEvent(c, eventID, query)
	if err != nil {
		h.handleError(c, err, "ListByEvent")
		return
	}

	successResponse(c, http.StatusOK, "Attendees retrieved successfully", result)
}

func (h *AttendeeHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		notFoundResponse(c, "Event not found")
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		log.Warn("Duplicate registration")
		validationErrorResponse(c, map[string][]string{
			"email": {"This email is already registered for the event."},
		})
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		log.Warn("Event full")
		errorResponse(c, http.StatusConflict, "Event has reached maximum capacity", nil)
	default:
		log.Error("Unexpected error")
		internalErrorResponse(c, "Failed to process request", err)
	}
}

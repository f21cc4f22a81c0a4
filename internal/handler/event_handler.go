package handler

import (
	"errors"
	"net/http"

	"event-registration-api/internal/model"
	"event-registration-api/internal/service"
	apperrors "event-registration-api/pkg/app_errors"
	"event-registration-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("events", h.Create)
		router.GET("events", h.List)
		router.GET("events/locations", h.Locations)
	}
}

func (h *EventHandler) Create(c *gin.Context) {
	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Create(c, req)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}

	createdResponse(c, "Event created successfully", created)
}

func (h *EventHandler) List(c *gin.Context) {
	var query model.ListEventsQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	result, err := h.service.List(c, query)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}

	successResponse(c, http.StatusOK, "Events retrieved successfully", result)
}

func (h *EventHandler) Locations(c *gin.Context) {
	locations, err := h.service.Locations(c)
	if err != nil {
		h.handleError(c, err, "Locations")
		return
	}

	successResponse(c, http.StatusOK, "Locations retrieved successfully", locations)
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var vErr *apperrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		log.Warn("Validation failed")
		validationErrorResponse(c, vErr.Fields)
	case errors.Is(err, apperrors.ErrInvalidTimezone):
		log.Warn("Invalid timezone")
		errorResponse(c, http.StatusUnprocessableEntity, "Invalid timezone provided",
			"Timezone must be a valid IANA timezone identifier")
	default:
		log.Error("Unexpected error")
		internalErrorResponse(c, "Failed to process request", err)
	}
}

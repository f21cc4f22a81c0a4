package service

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"event-registration-api/internal/model"
	"event-registration-api/internal/repository"
	apperrors "event-registration-api/pkg/app_errors"
	"event-registration-api/pkg/timeparse"
)

type EventService interface {
	Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	List(ctx context.Context, query model.ListEventsQuery) (*model.EventListResult, error)
	Locations(ctx context.Context) ([]string, error)
}

type EventServiceImpl struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &EventServiceImpl{repo: repo}
}

// inputLocation is the timezone naive create-event datetimes are interpreted
// in. Values carrying an explicit offset keep it; storage is always UTC.
var inputLocation = mustLoadLocation(model.DefaultTimezone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s *EventServiceImpl) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	vErr := apperrors.NewValidationError()

	if strings.TrimSpace(req.Name) == "" {
		vErr.Add("name", "The name field is required.")
	} else if utf8.RuneCountInString(req.Name) > 255 {
		vErr.Add("name", "The name may not be greater than 255 characters.")
	}

	if strings.TrimSpace(req.Location) == "" {
		vErr.Add("location", "The location field is required.")
	} else if utf8.RuneCountInString(req.Location) > 255 {
		vErr.Add("location", "The location may not be greater than 255 characters.")
	}

	var startTime, endTime time.Time
	if req.StartTime == "" {
		vErr.Add("start_time", "The start time field is required.")
	} else {
		t, err := timeparse.ParseDateTime(req.StartTime, inputLocation)
		if err != nil {
			vErr.Add("start_time", "The start time is not a valid date.")
		} else if !t.After(time.Now()) {
			vErr.Add("start_time", "Start time must be in the future.")
		} else {
			startTime = t
		}
	}

	if req.EndTime == "" {
		vErr.Add("end_time", "The end time field is required.")
	} else {
		t, err := timeparse.ParseDateTime(req.EndTime, inputLocation)
		if err != nil {
			vErr.Add("end_time", "The end time is not a valid date.")
		} else if !startTime.IsZero() && !t.After(startTime) {
			vErr.Add("end_time", "End time must be after start time.")
		} else {
			endTime = t
		}
	}

	if req.MaxCapacity < 1 {
		vErr.Add("max_capacity", "Maximum capacity must be at least 1.")
	} else if req.MaxCapacity > 10000 {
		vErr.Add("max_capacity", "Maximum capacity cannot exceed 10000.")
	}

	if vErr.HasErrors() {
		return nil, vErr
	}

	event := &model.Event{
		Name:        req.Name,
		Location:    req.Location,
		StartTime:   startTime,
		EndTime:     endTime,
		MaxCapacity: req.MaxCapacity,
	}
	return s.repo.Create(ctx, event)
}

func (s *EventServiceImpl) List(ctx context.Context, query model.ListEventsQuery) (*model.EventListResult, error) {
	timezone := query.Timezone
	if timezone == "" {
		timezone = model.DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, apperrors.ErrInvalidTimezone
	}

	params := normalizeEventsQuery(query)

	events, total, err := s.repo.ListUpcoming(ctx, params)
	if err != nil {
		return nil, err
	}

	data := make([]model.EventResponse, 0, len(events))
	for _, event := range events {
		data = append(data, event.ToTimezone(loc))
	}

	searchIn := query.SearchIn
	if searchIn == "" {
		searchIn = "name"
	}

	return &model.EventListResult{
		Data:       data,
		Pagination: model.NewPagination(params.Page, params.PerPage, total, len(data)),
		FiltersApplied: model.FiltersApplied{
			SortBy:              params.SortBy,
			SortOrder:           params.SortOrder,
			SearchFor:           params.SearchFor,
			SearchIn:            searchIn,
			FilterByLocation:    params.Locations,
			SeatAvailableEvents: params.SeatAvailableOnly,
		},
	}, nil
}

func (s *EventServiceImpl) Locations(ctx context.Context) ([]string, error) {
	return s.repo.ListLocations(ctx)
}

// normalizeEventsQuery applies the graceful-default rules: clamped paging,
// whitelisted sorting (an invalid sort_by or sort_order resets both), and
// search fields resolved against the whitelist.
func normalizeEventsQuery(query model.ListEventsQuery) model.ListEventsParams {
	params := model.ListEventsParams{
		Page:      clampPage(query.Page),
		PerPage:   clampPerPage(query.PerPage, model.DefaultEventsPerPage),
		SortBy:    model.DefaultSortBy,
		SortOrder: model.DefaultSortOrder,
		SearchFor: query.SearchFor,
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = model.DefaultSortBy
	}
	sortOrder := strings.ToLower(query.SortOrder)
	if sortOrder == "" {
		sortOrder = model.DefaultSortOrder
	}
	if isSortField(sortBy) && (sortOrder == "asc" || sortOrder == "desc") {
		params.SortBy = sortBy
		params.SortOrder = sortOrder
	}

	if query.SearchFor != "" {
		params.SearchFields = resolveSearchFields(query.SearchIn)
	}

	// accepts both the repeated-param and the comma-separated form
	for _, raw := range query.FilterByLocation {
		for _, location := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(location); trimmed != "" {
				params.Locations = append(params.Locations, trimmed)
			}
		}
	}

	params.SeatAvailableOnly = query.SeatAvailableEvents == "true" || query.SeatAvailableEvents == "1"

	return params
}

func clampPage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func clampPerPage(raw string, fallback int) int {
	perPage, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if perPage < 1 {
		return 1
	}
	if perPage > model.MaxPerPage {
		return model.MaxPerPage
	}
	return perPage
}

func isSortField(field string) bool {
	for _, f := range model.EventSortFields {
		if f == field {
			return true
		}
	}
	return false
}

// resolveSearchFields maps search_in ("all" or a comma list) onto the
// whitelist; unknown fields are dropped, absent input means name only.
func resolveSearchFields(searchIn string) []string {
	if searchIn == "" {
		return []string{"name"}
	}
	if searchIn == "all" {
		return model.EventSortFields
	}

	fields := []string{}
	for _, field := range strings.Split(searchIn, ",") {
		if trimmed := strings.TrimSpace(field); isSortField(trimmed) {
			fields = append(fields, trimmed)
		}
	}
	return fields
}

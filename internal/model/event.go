package model

import "time"

type Event struct {
	ID               int       `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Location         string    `json:"location" db:"location"`
	StartTime        time.Time `json:"start_time" db:"start_time"`
	EndTime          time.Time `json:"end_time" db:"end_time"`
	MaxCapacity      int       `json:"max_capacity" db:"max_capacity"`
	CurrentAttendees int       `json:"current_attendees" db:"current_attendees"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// HasAvailableCapacity checks whether another attendee can register.
func (e *Event) HasAvailableCapacity() bool {
	return e.CurrentAttendees < e.MaxCapacity
}

// AvailableCapacity is the number of seats still open.
func (e *Event) AvailableCapacity() int {
	return e.MaxCapacity - e.CurrentAttendees
}

// IsUpcoming checks whether the event starts strictly in the future.
func (e *Event) IsUpcoming() bool {
	return e.StartTime.After(time.Now())
}

// ToTimezone projects the event into a display timezone. Instants are stored
// and compared in UTC everywhere; this is the only place a display conversion
// happens, so converted values are never fed back into another conversion.
func (e *Event) ToTimezone(loc *time.Location) EventResponse {
	return EventResponse{
		ID:                e.ID,
		Name:              e.Name,
		Location:          e.Location,
		StartTime:         e.StartTime.In(loc).Format(time.RFC3339),
		EndTime:           e.EndTime.In(loc).Format(time.RFC3339),
		MaxCapacity:       e.MaxCapacity,
		CurrentAttendees:  e.CurrentAttendees,
		AvailableCapacity: e.AvailableCapacity(),
		CreatedAt:         e.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:         e.UpdatedAt.In(loc).Format(time.RFC3339),
	}
}

// CreateEventRequest carries the raw create-event body. Datetimes arrive as
// strings so the service can parse and validate them with field-scoped errors.
type CreateEventRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	MaxCapacity int    `json:"max_capacity"`
}

// EventResponse is an event projected into a display timezone.
type EventResponse struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Location          string `json:"location"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	MaxCapacity       int    `json:"max_capacity"`
	CurrentAttendees  int    `json:"current_attendees"`
	AvailableCapacity int    `json:"available_capacity"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// EventSummary is the parent-event block attached to attendee listings.
type EventSummary struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	CurrentAttendees int    `json:"current_attendees"`
	MaxCapacity      int    `json:"max_capacity"`
}

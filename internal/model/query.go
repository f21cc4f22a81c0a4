package model

// EventSortFields is the whitelist of sortable and searchable event columns.
var EventSortFields = []string{"name", "location", "start_time", "end_time", "max_capacity", "current_attendees"}

const (
	DefaultSortBy    = "start_time"
	DefaultSortOrder = "asc"

	DefaultEventsPerPage    = 10
	DefaultAttendeesPerPage = 15
	MaxPerPage              = 100

	DefaultTimezone = "Asia/Kolkata"
)

// ListEventsQuery is the raw query string of GET /events. Everything is
// optional; invalid values degrade to defaults rather than erroring, except
// the timezone which is validated.
type ListEventsQuery struct {
	Timezone            string   `form:"timezone"`
	PerPage             string   `form:"per_page"`
	Page                string   `form:"page"`
	SortBy              string   `form:"sort_by"`
	SortOrder           string   `form:"sort_order"`
	SearchFor           string   `form:"search_for"`
	SearchIn            string   `form:"search_in"`
	FilterByLocation    []string `form:"filter_by_location"`
	SeatAvailableEvents string   `form:"seat_available_events"`
}

// ListAttendeesQuery is the raw query string of GET /events/:event_id/attendees.
type ListAttendeesQuery struct {
	PerPage   string `form:"per_page"`
	Page      string `form:"page"`
	SearchFor string `form:"search_for"`
}

// ListEventsParams is the normalized form the repository executes: clamped
// paging, whitelisted sort, resolved search fields.
type ListEventsParams struct {
	Page              int
	PerPage           int
	SortBy            string
	SortOrder         string
	SearchFor         string
	SearchFields      []string
	Locations         []string
	SeatAvailableOnly bool
}

// ListAttendeesParams is the normalized attendee listing input.
type ListAttendeesParams struct {
	Page      int
	PerPage   int
	SearchFor string
}

// Pagination matches the page metadata block of every listing response.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// NewPagination computes page metadata for a page holding count items.
// From/To are 1-based item indexes; both are 0 on an empty page.
func NewPagination(page, perPage, total, count int) Pagination {
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	from, to := 0, 0
	if count > 0 {
		from = (page-1)*perPage + 1
		to = from + count - 1
	}

	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
		From:        from,
		To:          to,
	}
}

// FiltersApplied echoes the effective listing filters back to the caller.
type FiltersApplied struct {
	SortBy              string   `json:"sort_by"`
	SortOrder           string   `json:"sort_order"`
	SearchFor           string   `json:"search_for,omitempty"`
	SearchIn            string   `json:"search_in"`
	FilterByLocation    []string `json:"filter_by_location,omitempty"`
	SeatAvailableEvents bool     `json:"seat_available_events"`
}

// EventListResult is the data payload of GET /events.
type EventListResult struct {
	Data           []EventResponse `json:"data"`
	Pagination     Pagination      `json:"pagination"`
	FiltersApplied FiltersApplied  `json:"filters_applied"`
}

// AttendeeListResult is the data payload of GET /events/:event_id/attendees.
type AttendeeListResult struct {
	Data       []*Attendee  `json:"data"`
	Pagination Pagination   `json:"pagination"`
	Event      EventSummary `json:"event"`
}

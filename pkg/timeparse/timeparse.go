package timeparse

import (
	"time"

	dateparser "github.com/markusmobius/go-dateparser"
)

// Layouts tried before falling back to the natural-language parser. The first
// two are what API clients actually send; the rest cover common variants.
var layouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDateTime parses a client-supplied datetime string. Naive values (no
// offset) are interpreted in loc; values carrying an offset keep it. The
// result is always normalized to UTC before storage.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.UTC(), nil
		}
	}

	dt, err := dateparser.Parse(&dateparser.Configuration{
		DefaultTimezone: loc,
	}, value)
	if err != nil {
		return time.Time{}, err
	}
	return dt.Time.UTC(), nil
}

// ParseCalendarDate parses a search term as a calendar date, returning the
// date truncated to midnight UTC. ok is false when the term is not a date.
func ParseCalendarDate(value string) (time.Time, bool) {
	t, err := ParseDateTime(value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"event-registration-api/internal/model"
	apperrors "event-registration-api/pkg/app_errors"
	"event-registration-api/pkg/timeparse"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindByID(ctx context.Context, id int) (*model.Event, error)
	ListUpcoming(ctx context.Context, params model.ListEventsParams) ([]*model.Event, int, error)
	ListLocations(ctx context.Context) ([]string, error)

	// Transaction methods
	TryIncrementAttendees(ctx context.Context, tx pgx.Tx, id int) (bool, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `id, name, location, start_time, end_time, max_capacity, current_attendees, created_at, updated_at`

func scanEvent(row pgx.Row, event *model.Event) error {
	return row.Scan(
		&event.ID,
		&event.Name,
		&event.Location,
		&event.StartTime,
		&event.EndTime,
		&event.MaxCapacity,
		&event.CurrentAttendees,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (name, location, start_time, end_time, max_capacity, current_attendees)
		VALUES ($1, $2, $3, $4, $5, 0)
		RETURNING ` + eventColumns

	err := scanEvent(r.pool.QueryRow(ctx, query,
		event.Name, event.Location, event.StartTime, event.EndTime, event.MaxCapacity,
	), event)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`

	var event model.Event
	err := scanEvent(r.pool.QueryRow(ctx, query, id), &event)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}

// ListUpcoming returns one page of upcoming events matching params plus the
// total match count. Sort inputs must already be normalized against the
// whitelist; they are interpolated into ORDER BY.
func (r *EventRepositoryImpl) ListUpcoming(ctx context.Context, params model.ListEventsParams) ([]*model.Event, int, error) {
	where, args := buildEventFilters(params)
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM events WHERE %s`, whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limitPos := len(args) + 1
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, eventColumns, whereClause, params.SortBy, strings.ToUpper(params.SortOrder), limitPos, limitPos+1)

	args = append(args, params.PerPage, (params.Page-1)*params.PerPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		var event model.Event
		if err := scanEvent(rows, &event); err != nil {
			return nil, 0, err
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// buildEventFilters assembles the WHERE conditions and positional args shared
// by the count and page queries. Only upcoming events are ever visible.
func buildEventFilters(params model.ListEventsParams) ([]string, []interface{}) {
	where := []string{"start_time > now()"}
	args := []interface{}{}
	argPos := 1

	if len(params.Locations) > 0 {
		where = append(where, fmt.Sprintf("location = ANY($%d)", argPos))
		args = append(args, params.Locations)
		argPos++
	}

	if params.SeatAvailableOnly {
		where = append(where, "max_capacity > current_attendees")
	}

	if params.SearchFor != "" && len(params.SearchFields) > 0 {
		clauses := []string{}
		for _, field := range params.SearchFields {
			switch field {
			case "name", "location":
				clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", field, argPos))
				args = append(args, "%"+params.SearchFor+"%")
				argPos++
			case "max_capacity", "current_attendees":
				// numeric columns match only when the term is a number
				if n, err := strconv.Atoi(strings.TrimSpace(params.SearchFor)); err == nil {
					clauses = append(clauses, fmt.Sprintf("%s = $%d", field, argPos))
					args = append(args, n)
					argPos++
				}
			case "start_time", "end_time":
				// datetime columns match on the calendar day (UTC session)
				if day, ok := timeparse.ParseCalendarDate(params.SearchFor); ok {
					clauses = append(clauses, fmt.Sprintf("%s::date = $%d::date", field, argPos))
					args = append(args, day.Format("2006-01-02"))
					argPos++
				}
			}
		}
		if len(clauses) > 0 {
			where = append(where, "("+strings.Join(clauses, " OR ")+")")
		}
	}

	return where, args
}

func (r *EventRepositoryImpl) ListLocations(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT location
		FROM events
		WHERE start_time > now() AND location <> ''
		ORDER BY location
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]string, 0)
	for rows.Next() {
		var location string
		if err := rows.Scan(&location); err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return locations, nil
}

// TryIncrementAttendees performs the capacity check and counter increment as
// one guarded update. A false return means the event was at capacity (or
// missing) at the moment of the update; racing registrations can never push
// current_attendees past max_capacity.
func (r *EventRepositoryImpl) TryIncrementAttendees(ctx context.Context, tx pgx.Tx, id int) (bool, error) {
	query := `
		UPDATE events
		SET current_attendees = current_attendees + 1, updated_at = now()
		WHERE id = $1 AND current_attendees < max_capacity
	`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() > 0, nil
}

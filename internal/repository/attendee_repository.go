package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"event-registration-api/internal/model"
	apperrors "event-registration-api/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AttendeeRepository interface {
	ExistsByEventAndEmail(ctx context.Context, eventID int, email string) (bool, error)
	ListByEvent(ctx context.Context, eventID int, params model.ListAttendeesParams) ([]*model.Attendee, int, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, attendee *model.Attendee) (*model.Attendee, error)
}

type AttendeeRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewAttendeeRepository(pool *pgxpool.Pool) AttendeeRepository {
	return &AttendeeRepositoryImpl{
		pool: pool,
	}
}

const attendeeColumns = `id, event_id, name, email, created_at, updated_at`

func scanAttendee(row pgx.Row, attendee *model.Attendee) error {
	return row.Scan(
		&attendee.ID,
		&attendee.EventID,
		&attendee.Name,
		&attendee.Email,
		&attendee.CreatedAt,
		&attendee.UpdatedAt,
	)
}

// Create inserts an attendee inside the registration transaction. The
// (event_id, email) unique constraint is the correctness guarantee against
// two concurrent registrations with the same email; its violation surfaces
// as ErrDuplicateEmail here.
func (r *AttendeeRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, attendee *model.Attendee) (*model.Attendee, error) {
	query := `
		INSERT INTO attendees (event_id, name, email)
		VALUES ($1, $2, $3)
		RETURNING ` + attendeeColumns

	err := scanAttendee(tx.QueryRow(ctx, query,
		attendee.EventID, attendee.Name, attendee.Email,
	), attendee)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, err
	}

	return attendee, nil
}

func (r *AttendeeRepositoryImpl) ExistsByEventAndEmail(ctx context.Context, eventID int, email string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendees WHERE event_id = $1 AND email = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, eventID, email).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *AttendeeRepositoryImpl) ListByEvent(ctx context.Context, eventID int, params model.ListAttendeesParams) ([]*model.Attendee, int, error) {
	where := []string{"event_id = $1"}
	args := []interface{}{eventID}
	argPos := 2

	if params.SearchFor != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+params.SearchFor+"%")
		argPos++
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM attendees WHERE %s`, whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendees
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, attendeeColumns, whereClause, argPos, argPos+1)

	args = append(args, params.PerPage, (params.Page-1)*params.PerPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	attendees := make([]*model.Attendee, 0)
	for rows.Next() {
		var attendee model.Attendee
		if err := scanAttendee(rows, &attendee); err != nil {
			return nil, 0, err
		}
		attendees = append(attendees, &attendee)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return attendees, total, nil
}

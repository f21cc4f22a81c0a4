package service

import (
	"context"

	"event-registration-api/internal/model"
	"event-registration-api/internal/repository"
	apperrors "event-registration-api/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AttendeeService interface {
	// Register creates an attendee and increments the event counter as one
	// atomic unit.
	Register(ctx context.Context, eventID int, req model.RegisterAttendeeRequest) (*model.Attendee, error)
	ListByEvent(ctx context.Context, eventID int, query model.ListAttendeesQuery) (*model.AttendeeListResult, error)
}

type AttendeeServiceImpl struct {
	pool            *pgxpool.Pool
	repository      repository.AttendeeRepository
	eventRepository repository.EventRepository
}

func NewAttendeeService(
	pool *pgxpool.Pool,
	attendeeRepository repository.AttendeeRepository,
	eventRepository repository.EventRepository,
) AttendeeService {
	return &AttendeeServiceImpl{
		pool:            pool,
		repository:      attendeeRepository,
		eventRepository: eventRepository,
	}
}

func (s *AttendeeServiceImpl) Register(ctx context.Context, eventID int, req model.RegisterAttendeeRequest) (*model.Attendee, error) {
	event, err := s.eventRepository.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// Pre-checks outside the transaction give friendly errors on the common
	// paths; correctness under races is carried by the guarded increment and
	// the unique constraint below.
	exists, err := s.repository.ExistsByEventAndEmail(ctx, eventID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateEmail
	}

	if !event.HasAvailableCapacity() {
		return nil, apperrors.ErrCapacityExceeded
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	incremented, err := s.eventRepository.TryIncrementAttendees(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}
	if !incremented {
		return nil, apperrors.ErrCapacityExceeded
	}

	attendee, err := s.repository.Create(ctx, tx, &model.Attendee{
		EventID: eventID,
		Name:    req.Name,
		Email:   req.Email,
	})
	if err != nil {
		// rolls back the increment as well
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return attendee, nil
}

func (s *AttendeeServiceImpl) ListByEvent(ctx context.Context, eventID int, query model.ListAttendeesQuery) (*model.AttendeeListResult, error) {
	event, err := s.eventRepository.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	params := model.ListAttendeesParams{
		Page:      clampPage(query.Page),
		PerPage:   clampPerPage(query.PerPage, model.DefaultAttendeesPerPage),
		SearchFor: query.SearchFor,
	}

	attendees, total, err := s.repository.ListByEvent(ctx, eventID, params)
	if err != nil {
		return nil, err
	}

	return &model.AttendeeListResult{
		Data:       attendees,
		Pagination: model.NewPagination(params.Page, params.PerPage, total, len(attendees)),
		Event: model.EventSummary{
			ID:               event.ID,
			Name:             event.Name,
			CurrentAttendees: event.CurrentAttendees,
			MaxCapacity:      event.MaxCapacity,
		},
	}, nil
}

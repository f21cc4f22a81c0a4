package service

import (
	"context"
	"testing"
	"time"

	"event-registration-api/internal/model"
	"event-registration-api/internal/repository"
	"event-registration-api/internal/service"
	apperrors "event-registration-api/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttendeeService() service.AttendeeService {
	return service.NewAttendeeService(
		getTestDB(),
		repository.NewAttendeeRepository(getTestDB()),
		repository.NewEventRepository(getTestDB()),
	)
}

func TestRegister(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newAttendeeService()
	eventID := createTestEvent(t, "Meetup", "Delhi", 24*time.Hour, 10, 0)

	attendee, err := svc.Register(ctx, eventID, model.RegisterAttendeeRequest{
		Name:  "Asha",
		Email: "asha@example.com",
	})
	require.NoError(t, err)

	assert.NotZero(t, attendee.ID)
	assert.Equal(t, eventID, attendee.EventID)
	assert.Equal(t, 1, currentAttendeeCount(t, eventID))
	assert.Equal(t, 1, attendeeRowCount(t, eventID))
}

func TestRegisterEventNotFound(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newAttendeeService()

	_, err := svc.Register(ctx, 99999, model.RegisterAttendeeRequest{
		Name:  "Asha",
		Email: "asha@example.com",
	})
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newAttendeeService()
	eventID := createTestEvent(t, "Meetup", "Delhi", 24*time.Hour, 10, 0)

	_, err := svc.Register(ctx, eventID, model.RegisterAttendeeRequest{
		Name:  "Asha",
		Email: "asha@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, eventID, model.RegisterAttendeeRequest{
		Name:  "Asha Again",
		Email: "asha@example.com",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)

	// the failed attempt must leave no partial state
	assert.Equal(t, 1, currentAttendeeCount(t, eventID))
	assert.Equal(t, 1, attendeeRowCount(t, eventID))
}

func TestRegisterSameEmailDifferentEvents(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newAttendeeService()
	firstID := createTestEvent(t, "Meetup", "Delhi", 24*time.Hour, 10, 0)
	secondID := createTestEvent(t, "Conference", "Mumbai", 48*time.Hour, 10, 0)

	_, err := svc.Register(ctx, firstID, model.RegisterAttendeeRequest{Name: "Asha", Email: "asha@example.com"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, secondID, model.RegisterAttendeeRequest{Name: "Asha", Email: "asha@example.com"})
	require.NoError(t, err)

	assert.Equal(t, 1, attendeeRowCount(t, firstID))
	assert.Equal(t, 1, attendeeRowCount(t, secondID))
}

func TestRegisterCapacityExceeded(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newAttendeeService()
	eventID := createTestEvent(t, "Tiny Meetup", "Delhi", 24*time.Hour, 2, 0)

	_, err := svc.Register(ctx, eventID, model.RegisterAttendeeRequest{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, eventID, model.RegisterAttendeeRequest{Name: "B", Email: "b@example.com"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, eventID, model.RegisterAttendeeRequest{Name: "C", Email: "c@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	assert.Equal(t, 2, currentAttendeeCount(t, eventID))
	assert.Equal(t, 2, attendeeRowCount(t, eventID))
}

func TestListAttendees(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newAttendeeService()
	eventID := createTestEvent(t, "Meetup", "Delhi", 24*time.Hour, 50, 0)

	_, err := svc.Register(ctx, eventID, model.RegisterAttendeeRequest{Name: "Asha Kumar", Email: "asha@example.com"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, eventID, model.RegisterAttendeeRequest{Name: "Ravi Iyer", Email: "ravi@example.com"})
	require.NoError(t, err)

	result, err := svc.ListByEvent(ctx, eventID, model.ListAttendeesQuery{})
	require.NoError(t, err)

	assert.Len(t, result.Data, 2)
	assert.Equal(t, 15, result.Pagination.PerPage)
	assert.Equal(t, 2, result.Pagination.Total)
	assert.Equal(t, "Meetup", result.Event.Name)
	assert.Equal(t, 2, result.Event.CurrentAttendees)

	result, err = svc.ListByEvent(ctx, eventID, model.ListAttendeesQuery{SearchFor: "ravi"})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "ravi@example.com", result.Data[0].Email)

	_, err = svc.ListByEvent(ctx, 99999, model.ListAttendeesQuery{})
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

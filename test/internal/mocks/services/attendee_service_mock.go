package services

import (
	"context"
	"event-registration-api/internal/model"

	"github.com/stretchr/testify/mock"
)

type AttendeeServiceMock struct {
	mock.Mock
}

func NewAttendeeServiceMock() *AttendeeServiceMock {
	return &AttendeeServiceMock{}
}

func (m *AttendeeServiceMock) Register(ctx context.Context, eventID int, req model.RegisterAttendeeRequest) (*model.Attendee, error) {
	args := m.Called(ctx, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attendee), args.Error(1)
}

func (m *AttendeeServiceMock) ListByEvent(ctx context.Context, eventID int, query model.ListAttendeesQuery) (*model.AttendeeListResult, error) {
	args := m.Called(ctx, eventID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AttendeeListResult), args.Error(1)
}

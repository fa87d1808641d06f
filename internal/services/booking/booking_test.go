package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *RepoMock) ListBookingsByStudent(ctx context.Context, studentUID string) ([]*models.BookingInfo, error) {
	args := m.Called(ctx, studentUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BookingInfo), args.Error(1)
}
func (m *RepoMock) ListBookingsByTutor(ctx context.Context, tutorUID string) ([]*models.BookingInfo, error) {
	args := m.Called(ctx, tutorUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BookingInfo), args.Error(1)
}
func (m *RepoMock) ListAllBookings(ctx context.Context) ([]*models.BookingInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BookingInfo), args.Error(1)
}
func (m *RepoMock) UpdateBookingStatus(ctx context.Context, id int, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *RepoMock) ExtendBooking(ctx context.Context, id int, newEndDate time.Time, entry models.Extension) error {
	return m.Called(ctx, id, newEndDate, entry).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestService(repo *RepoMock, now time.Time) *BookingService {
	svc := NewBookingService(repo, newNoopLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func TestBookingService_List_LazyCompletion(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	expired := &models.BookingInfo{Booking: models.Booking{
		ID:         1,
		StudentUID: "student-1",
		Status:     models.BookingStatusActive,
		EndDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}}
	running := &models.BookingInfo{Booking: models.Booking{
		ID:         2,
		StudentUID: "student-1",
		Status:     models.BookingStatusActive,
		EndDate:    time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	}}
	cancelled := &models.BookingInfo{Booking: models.Booking{
		ID:         3,
		StudentUID: "student-1",
		Status:     models.BookingStatusCancelled,
		EndDate:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}}

	repo := new(RepoMock)
	svc := newTestService(repo, now)

	repo.On("ListBookingsByStudent", mock.Anything, "student-1").
		Return([]*models.BookingInfo{expired, running, cancelled}, nil).Once()
	repo.On("UpdateBookingStatus", mock.Anything, 1, models.BookingStatusCompleted).
		Return(nil).Once()

	got, err := svc.List(context.Background(), "student-1", models.RoleStudent)
	assert.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, models.BookingStatusCompleted, got[0].Booking.Status)
	assert.Equal(t, models.BookingStatusActive, got[1].Booking.Status)
	assert.Equal(t, models.BookingStatusCancelled, got[2].Booking.Status)

	repo.AssertExpectations(t)
}

func TestBookingService_List_LazyCompletionLostRace(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	expired := &models.BookingInfo{Booking: models.Booking{
		ID:         1,
		StudentUID: "student-1",
		Status:     models.BookingStatusActive,
		EndDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}}

	repo := new(RepoMock)
	svc := newTestService(repo, now)

	// второй читатель успел перевести бронирование в completed между
	// выборкой и записью: нулевая мутация не должна ломать выдачу
	repo.On("ListBookingsByStudent", mock.Anything, "student-1").
		Return([]*models.BookingInfo{expired}, nil).Once()
	repo.On("UpdateBookingStatus", mock.Anything, 1, models.BookingStatusCompleted).
		Return(apperr.ErrInvalidTransition).Once()

	got, err := svc.List(context.Background(), "student-1", models.RoleStudent)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, models.BookingStatusCompleted, got[0].Booking.Status)

	repo.AssertExpectations(t)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	active := models.Booking{
		ID:         7,
		StudentUID: "student-1",
		TutorUID:   "tutor-1",
		Status:     models.BookingStatusActive,
	}

	tests := []struct {
		name       string
		uid        string
		role       string
		newStatus  string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:      "student cancels active booking",
			uid:       "student-1",
			role:      models.RoleStudent,
			newStatus: models.BookingStatusCancelled,
			setupMocks: func(r *RepoMock) {
				b := active
				r.On("GetBooking", mock.Anything, 7).Return(&b, nil).Once()
				r.On("UpdateBookingStatus", mock.Anything, 7, models.BookingStatusCancelled).
					Return(nil).Once()
			},
		},
		{
			name:      "tutor completes active booking",
			uid:       "tutor-1",
			role:      models.RoleTutor,
			newStatus: models.BookingStatusCompleted,
			setupMocks: func(r *RepoMock) {
				b := active
				r.On("GetBooking", mock.Anything, 7).Return(&b, nil).Once()
				r.On("UpdateBookingStatus", mock.Anything, 7, models.BookingStatusCompleted).
					Return(nil).Once()
			},
		},
		{
			name:      "cancelled booking cannot be reactivated",
			uid:       "student-1",
			role:      models.RoleStudent,
			newStatus: models.BookingStatusActive,
			setupMocks: func(r *RepoMock) {
				b := active
				b.Status = models.BookingStatusCancelled
				r.On("GetBooking", mock.Anything, 7).Return(&b, nil).Once()
			},
			wantErr: apperr.ErrInvalidTransition,
		},
		{
			name:      "completed booking is terminal",
			uid:       "student-1",
			role:      models.RoleStudent,
			newStatus: models.BookingStatusCancelled,
			setupMocks: func(r *RepoMock) {
				b := active
				b.Status = models.BookingStatusCompleted
				r.On("GetBooking", mock.Anything, 7).Return(&b, nil).Once()
			},
			wantErr: apperr.ErrInvalidTransition,
		},
		{
			name:      "outsider is rejected",
			uid:       "student-2",
			role:      models.RoleStudent,
			newStatus: models.BookingStatusCancelled,
			setupMocks: func(r *RepoMock) {
				b := active
				r.On("GetBooking", mock.Anything, 7).Return(&b, nil).Once()
			},
			wantErr: apperr.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := newTestService(repo, time.Now())

			tt.setupMocks(repo)

			booking, err := svc.UpdateStatus(context.Background(), tt.uid, tt.role, 7, tt.newStatus)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.newStatus, booking.Status)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestBookingService_Extend(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	active := models.Booking{
		ID:         4,
		StudentUID: "student-1",
		TutorUID:   "tutor-1",
		Status:     models.BookingStatusActive,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("shifts end date and records history", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo, now)

		b := active
		wantEndDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		repo.On("GetBooking", mock.Anything, 4).Return(&b, nil).Once()
		repo.On("ExtendBooking", mock.Anything, 4, wantEndDate, models.Extension{
			PreviousEndDate: active.EndDate,
			NewEndDate:      wantEndDate,
			ExtendedOn:      now,
		}).Return(nil).Once()

		booking, err := svc.Extend(context.Background(), "student-1", models.RoleStudent, 4, 2)
		assert.NoError(t, err)
		assert.Equal(t, wantEndDate, booking.EndDate)
		assert.True(t, booking.Extended)
		assert.Len(t, booking.ExtensionHistory, 1)
		assert.Equal(t, active.EndDate, booking.ExtensionHistory[0].PreviousEndDate)

		repo.AssertExpectations(t)
	})

	t.Run("only the owning student extends", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo, now)

		b := active
		repo.On("GetBooking", mock.Anything, 4).Return(&b, nil).Once()

		_, err := svc.Extend(context.Background(), "student-2", models.RoleStudent, 4, 2)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		repo.AssertExpectations(t)
	})

	t.Run("tutor cannot extend", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo, now)

		_, err := svc.Extend(context.Background(), "tutor-1", models.RoleTutor, 4, 2)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		repo.AssertNotCalled(t, "GetBooking", mock.Anything, mock.Anything)
	})

	t.Run("inactive booking is not extendable", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo, now)

		b := active
		b.Status = models.BookingStatusCompleted
		repo.On("GetBooking", mock.Anything, 4).Return(&b, nil).Once()

		_, err := svc.Extend(context.Background(), "student-1", models.RoleStudent, 4, 2)
		assert.ErrorIs(t, err, apperr.ErrNotActive)
		repo.AssertExpectations(t)
	})
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

func TestStorage_CreateAndGetUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	uid, err := storage.CreateUser(ctx, models.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleStudent,
		IsActive:     true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	byEmail, err := storage.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, uid, byEmail.UID)
	assert.Equal(t, models.RoleStudent, byEmail.Role)

	_, err = storage.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// повторная вставка того же email бьется об уникальный индекс
	_, err = storage.CreateUser(ctx, models.User{
		Name:         "Alice Again",
		Email:        "alice@example.com",
		PasswordHash: "otherhash",
		Role:         models.RoleStudent,
		IsActive:     true,
	})
	assert.ErrorIs(t, err, apperr.ErrEmailTaken)
}

func TestStorage_AcceptRequest(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	studentUID := factory.CreateUser(t, "Alice", "alice@example.com", models.RoleStudent)
	tutorUID := factory.CreateUser(t, "Boris", "boris@example.com", models.RoleTutor)
	requestID := factory.CreateRequest(t, studentUID, tutorUID, models.RequestStatusPending)

	booking, err := storage.AcceptRequest(ctx, requestID)
	require.NoError(t, err)
	assert.Equal(t, requestID, booking.RequestID)
	assert.Equal(t, models.BookingStatusActive, booking.Status)
	assert.Equal(t, []string{"Monday", "Wednesday"}, booking.DaysOfWeek)
	assert.Equal(t, "17:00", booking.TimeSlot)

	verify.VerifyRequestStatus(t, requestID, models.RequestStatusAccepted)
	verify.VerifyBookingCount(t, requestID, 1)

	// Повторное принятие проигрывает guard по статусу
	_, err = storage.AcceptRequest(ctx, requestID)
	assert.ErrorIs(t, err, apperr.ErrAlreadyProcessed)
	verify.VerifyBookingCount(t, requestID, 1)
}

func TestStorage_RejectRequest(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	studentUID := factory.CreateUser(t, "Alice", "alice@example.com", models.RoleStudent)
	tutorUID := factory.CreateUser(t, "Boris", "boris@example.com", models.RoleTutor)
	requestID := factory.CreateRequest(t, studentUID, tutorUID, models.RequestStatusPending)

	require.NoError(t, storage.RejectRequest(ctx, requestID))
	verify.VerifyRequestStatus(t, requestID, models.RequestStatusRejected)
	verify.VerifyBookingCount(t, requestID, 0)

	err := storage.RejectRequest(ctx, requestID)
	assert.ErrorIs(t, err, apperr.ErrAlreadyProcessed)

	_, err = storage.AcceptRequest(ctx, requestID)
	assert.ErrorIs(t, err, apperr.ErrAlreadyProcessed)
	verify.VerifyBookingCount(t, requestID, 0)
}

func TestStorage_ExtendBooking(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	studentUID := factory.CreateUser(t, "Alice", "alice@example.com", models.RoleStudent)
	tutorUID := factory.CreateUser(t, "Boris", "boris@example.com", models.RoleTutor)
	requestID := factory.CreateRequest(t, studentUID, tutorUID, models.RequestStatusAccepted)

	endDate := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	bookingID := factory.CreateBooking(t, requestID, studentUID, tutorUID, models.BookingStatusActive, endDate)

	newEndDate := endDate.AddDate(0, 2, 0)
	entry := models.Extension{
		PreviousEndDate: endDate,
		NewEndDate:      newEndDate,
		ExtendedOn:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, storage.ExtendBooking(ctx, bookingID, newEndDate, entry))

	booking, err := storage.GetBooking(ctx, bookingID)
	require.NoError(t, err)
	assert.True(t, booking.Extended)
	assert.True(t, booking.EndDate.Equal(newEndDate))
	require.Len(t, booking.ExtensionHistory, 1)
	assert.True(t, booking.ExtensionHistory[0].PreviousEndDate.Equal(endDate))

	// Завершенное бронирование не продлевается
	require.NoError(t, storage.UpdateBookingStatus(ctx, bookingID, models.BookingStatusCompleted))
	err = storage.ExtendBooking(ctx, bookingID, newEndDate.AddDate(0, 1, 0), entry)
	assert.ErrorIs(t, err, apperr.ErrNotActive)
}

func TestStorage_ListActiveTutors(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	factory.CreateUser(t, "Alice", "alice@example.com", models.RoleStudent)
	visibleUID := factory.CreateUser(t, "Boris", "boris@example.com", models.RoleTutor)
	blockedUID := factory.CreateUser(t, "Clara", "clara@example.com", models.RoleTutor)

	_, err := storage.DB.Exec("UPDATE users SET is_blocked = TRUE WHERE uid = $1", blockedUID)
	require.NoError(t, err)

	tutors, err := storage.ListActiveTutors(ctx)
	require.NoError(t, err)
	require.Len(t, tutors, 1)
	assert.Equal(t, visibleUID, tutors[0].User.UID)
}

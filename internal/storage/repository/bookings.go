package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

const bookingColumns = `b.id, b.request_id, b.student_uid, b.tutor_uid, b.subject,
			  b.start_date, b.end_date, b.days_of_week, b.time_slot, b.monthly_fee,
			  b.status, b.extended, b.extension_history, b.created_at`

func scanBooking(days, history *[]byte, b *models.Booking) []any {
	return []any{&b.ID, &b.RequestID, &b.StudentUID, &b.TutorUID, &b.Subject,
		&b.StartDate, &b.EndDate, days, &b.TimeSlot, &b.MonthlyFee,
		&b.Status, &b.Extended, history, &b.CreatedAt}
}

// GetBooking возвращает бронирование по его ID.
func (s *Storage) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	const op = "storage.GetBooking"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`
	var b models.Booking
	var days, history []byte
	err := s.DB.QueryRowContext(ctx, query, id).Scan(scanBooking(&days, &history, &b)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = unmarshalJSONB(days, &b.DaysOfWeek); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = unmarshalJSONB(history, &b.ExtensionHistory); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}

// listBookings выполняет выборку бронирований с карточками студента
// и репетитора по переданному условию WHERE.
func (s *Storage) listBookings(ctx context.Context, op, where string, args ...any) ([]*models.BookingInfo, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + bookingColumns + `,
			      st.uid, st.name, st.email, tu.uid, tu.name, tu.email
			  FROM bookings b
			  JOIN users st ON st.uid = b.student_uid
			  JOIN users tu ON tu.uid = b.tutor_uid
			  ` + where + `
			  ORDER BY b.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.BookingInfo
	for rows.Next() {
		var info models.BookingInfo
		var days, history []byte
		dest := scanBooking(&days, &history, &info.Booking)
		dest = append(dest,
			&info.Student.UID, &info.Student.Name, &info.Student.Email,
			&info.Tutor.UID, &info.Tutor.Name, &info.Tutor.Email)
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = unmarshalJSONB(days, &info.Booking.DaysOfWeek); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = unmarshalJSONB(history, &info.Booking.ExtensionHistory); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListBookingsByStudent возвращает бронирования студента.
func (s *Storage) ListBookingsByStudent(ctx context.Context, studentUID string) ([]*models.BookingInfo, error) {
	return s.listBookings(ctx, "storage.ListBookingsByStudent", "WHERE b.student_uid = $1", studentUID)
}

// ListBookingsByTutor возвращает бронирования репетитора.
func (s *Storage) ListBookingsByTutor(ctx context.Context, tutorUID string) ([]*models.BookingInfo, error) {
	return s.listBookings(ctx, "storage.ListBookingsByTutor", "WHERE b.tutor_uid = $1", tutorUID)
}

// ListAllBookings возвращает все бронирования (для админской панели).
func (s *Storage) ListAllBookings(ctx context.Context) ([]*models.BookingInfo, error) {
	return s.listBookings(ctx, "storage.ListAllBookings", "")
}

// UpdateBookingStatus выставляет бронированию новый статус.
// Проверка допустимости перехода выполняется на уровне сервиса;
// guard по текущему статусу active защищает от гонки двух записей.
func (s *Storage) UpdateBookingStatus(ctx context.Context, id int, status string) error {
	const op = "storage.UpdateBookingStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE bookings
			  SET status = $2
			  WHERE id = $1 AND status = $3`
	result, err := s.DB.ExecContext(ctx, query, id, status, models.BookingStatusActive)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrInvalidTransition)
	}
	return nil
}

// ExtendBooking сдвигает дату окончания активного бронирования вперед,
// выставляет флаг extended и дописывает запись в журнал продлений.
func (s *Storage) ExtendBooking(ctx context.Context, id int, newEndDate time.Time, entry models.Extension) error {
	const op = "storage.ExtendBooking"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	entryJSON, err := marshalJSONB(entry)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE bookings
			  SET end_date = $2,
			      extended = TRUE,
			      extension_history = extension_history || $3::jsonb
			  WHERE id = $1 AND status = $4`
	result, err := s.DB.ExecContext(ctx, query, id, newEndDate, entryJSON, models.BookingStatusActive)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotActive)
	}
	return nil
}

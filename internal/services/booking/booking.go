// Package services содержит бизнес-логику жизненного цикла бронирований:
// списки с ленивым завершением, смену статуса и продление срока.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/month"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// BookingRepository определяет методы хранилища для бронирований.
type BookingRepository interface {
	// GetBooking возвращает бронирование по ID или apperr.ErrNotFound.
	GetBooking(ctx context.Context, id int) (*models.Booking, error)
	// ListBookingsByStudent возвращает бронирования студента с карточками сторон.
	ListBookingsByStudent(ctx context.Context, studentUID string) ([]*models.BookingInfo, error)
	// ListBookingsByTutor возвращает бронирования репетитора с карточками сторон.
	ListBookingsByTutor(ctx context.Context, tutorUID string) ([]*models.BookingInfo, error)
	// ListAllBookings возвращает все бронирования.
	ListAllBookings(ctx context.Context) ([]*models.BookingInfo, error)
	// UpdateBookingStatus выставляет новый статус активному бронированию.
	UpdateBookingStatus(ctx context.Context, id int, status string) error
	// ExtendBooking сдвигает дату окончания и дописывает журнал продлений.
	ExtendBooking(ctx context.Context, id int, newEndDate time.Time, entry models.Extension) error
}

// BookingService реализует операции над бронированиями.
type BookingService struct {
	repo BookingRepository
	log  *slog.Logger
	// now подменяется в тестах для детерминированного ленивого завершения.
	now func() time.Time
}

// NewBookingService создает новый экземпляр BookingService.
func NewBookingService(repo BookingRepository, log *slog.Logger) *BookingService {
	return &BookingService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// List возвращает бронирования вызывающего: студент видит свои,
// репетитор — свои, администратор — все. Побочный эффект чтения:
// активное бронирование с истекшей датой окончания перед возвратом
// переводится в completed и сохраняется (ленивое завершение вместо
// фонового обхода).
func (s *BookingService) List(ctx context.Context, uid, role string) ([]*models.BookingInfo, error) {
	const op = "services.booking.List"

	var (
		result []*models.BookingInfo
		err    error
	)
	switch role {
	case models.RoleStudent:
		result, err = s.repo.ListBookingsByStudent(ctx, uid)
	case models.RoleTutor:
		result, err = s.repo.ListBookingsByTutor(ctx, uid)
	default:
		result, err = s.repo.ListAllBookings(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	for _, info := range result {
		if info.Booking.Status != models.BookingStatusActive {
			continue
		}
		if !month.Expired(info.Booking.EndDate, now) {
			continue
		}
		err = s.repo.UpdateBookingStatus(ctx, info.Booking.ID, models.BookingStatusCompleted)
		switch {
		case err == nil:
			s.log.Info("booking lazily completed", slog.Int("id", info.Booking.ID))
		case errors.Is(err, apperr.ErrInvalidTransition):
			// параллельное чтение успело завершить бронирование первым
			s.log.Debug("booking already completed elsewhere", slog.Int("id", info.Booking.ID))
		default:
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		info.Booking.Status = models.BookingStatusCompleted
	}
	return result, nil
}

// UpdateStatus меняет статус бронирования по запросу владеющего студента
// или репетитора. Таблица переходов явная: разрешены только
// active → completed и active → cancelled, остальное дает
// apperr.ErrInvalidTransition.
func (s *BookingService) UpdateStatus(ctx context.Context, uid, role string, id int, status string) (*models.Booking, error) {
	const op = "services.booking.UpdateStatus"

	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = ownedBy(booking, uid, role); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if booking.Status != models.BookingStatusActive ||
		(status != models.BookingStatusCompleted && status != models.BookingStatusCancelled) {
		return nil, fmt.Errorf("%s: cannot move booking from %s to %s: %w",
			op, booking.Status, status, apperr.ErrInvalidTransition)
	}

	if err = s.repo.UpdateBookingStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	booking.Status = status

	s.log.Info("booking status updated", slog.Int("id", id), slog.String("status", status))
	return booking, nil
}

// Extend продлевает активное бронирование на additionalMonths календарных
// месяцев по запросу владеющего студента. Новая дата окончания выводится
// из текущей; запись {предыдущая дата, новая дата, момент продления}
// дописывается в журнал, флаг extended выставляется.
func (s *BookingService) Extend(ctx context.Context, studentUID, role string, bookingID, additionalMonths int) (*models.Booking, error) {
	const op = "services.booking.Extend"

	if role != models.RoleStudent {
		return nil, fmt.Errorf("%s: only students can extend bookings: %w", op, apperr.ErrForbidden)
	}

	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if booking.StudentUID != studentUID {
		return nil, fmt.Errorf("%s: booking belongs to another student: %w", op, apperr.ErrForbidden)
	}
	if booking.Status != models.BookingStatusActive {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotActive)
	}

	entry := models.Extension{
		PreviousEndDate: booking.EndDate,
		NewEndDate:      month.EndDate(booking.EndDate, additionalMonths),
		ExtendedOn:      s.now(),
	}
	if err = s.repo.ExtendBooking(ctx, bookingID, entry.NewEndDate, entry); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booking.EndDate = entry.NewEndDate
	booking.Extended = true
	booking.ExtensionHistory = append(booking.ExtensionHistory, entry)

	s.log.Info("booking extended", slog.Int("id", bookingID),
		slog.Int("additional_months", additionalMonths),
		slog.Time("new_end_date", entry.NewEndDate))
	return booking, nil
}

// ownedBy проверяет, что вызывающий является студентом или репетитором
// данного бронирования.
func ownedBy(b *models.Booking, uid, role string) error {
	switch role {
	case models.RoleStudent:
		if b.StudentUID != uid {
			return fmt.Errorf("booking belongs to another student: %w", apperr.ErrForbidden)
		}
	case models.RoleTutor:
		if b.TutorUID != uid {
			return fmt.Errorf("booking belongs to another tutor: %w", apperr.ErrForbidden)
		}
	default:
		return fmt.Errorf("role %s cannot manage bookings: %w", role, apperr.ErrForbidden)
	}
	return nil
}

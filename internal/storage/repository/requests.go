package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// CreateRequest вставляет новую заявку на обучение и возвращает её ID.
// Дата окончания должна быть вычислена вызывающей стороной до сохранения.
func (s *Storage) CreateRequest(ctx context.Context, req models.TuitionRequest) (int, error) {
	const op = "storage.CreateRequest"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	days, err := marshalJSONB(req.PreferredDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO tuition_requests (student_uid, tutor_uid, subject, grade_level,
			      preferred_days, preferred_time, duration_months, start_date, end_date,
			      status, monthly_fee, notes)
			  VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		req.StudentUID, req.TutorUID, req.Subject, req.GradeLevel, days,
		req.PreferredTime, req.DurationMonths, req.StartDate, req.EndDate,
		req.Status, req.MonthlyFee, req.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

const requestColumns = `r.id, r.student_uid, r.tutor_uid, r.subject, r.grade_level,
			  r.preferred_days, r.preferred_time, r.duration_months, r.start_date,
			  r.end_date, r.status, r.monthly_fee, r.notes, r.created_at`

func scanRequest(days *[]byte, r *models.TuitionRequest) []any {
	return []any{&r.ID, &r.StudentUID, &r.TutorUID, &r.Subject, &r.GradeLevel,
		days, &r.PreferredTime, &r.DurationMonths, &r.StartDate,
		&r.EndDate, &r.Status, &r.MonthlyFee, &r.Notes, &r.CreatedAt}
}

// GetRequest возвращает заявку по её ID.
func (s *Storage) GetRequest(ctx context.Context, id int) (*models.TuitionRequest, error) {
	const op = "storage.GetRequest"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + requestColumns + ` FROM tuition_requests r WHERE r.id = $1`
	var r models.TuitionRequest
	var days []byte
	err := s.DB.QueryRowContext(ctx, query, id).Scan(scanRequest(&days, &r)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = unmarshalJSONB(days, &r.PreferredDays); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &r, nil
}

// listRequests выполняет выборку заявок с карточками студента и репетитора
// по переданному условию WHERE.
func (s *Storage) listRequests(ctx context.Context, op, where string, args ...any) ([]*models.TuitionRequestInfo, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + requestColumns + `,
			      st.uid, st.name, st.email, tu.uid, tu.name, tu.email
			  FROM tuition_requests r
			  JOIN users st ON st.uid = r.student_uid
			  JOIN users tu ON tu.uid = r.tutor_uid
			  ` + where + `
			  ORDER BY r.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.TuitionRequestInfo
	for rows.Next() {
		var info models.TuitionRequestInfo
		var days []byte
		dest := scanRequest(&days, &info.Request)
		dest = append(dest,
			&info.Student.UID, &info.Student.Name, &info.Student.Email,
			&info.Tutor.UID, &info.Tutor.Name, &info.Tutor.Email)
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = unmarshalJSONB(days, &info.Request.PreferredDays); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListRequestsByStudent возвращает заявки, созданные студентом.
func (s *Storage) ListRequestsByStudent(ctx context.Context, studentUID string) ([]*models.TuitionRequestInfo, error) {
	return s.listRequests(ctx, "storage.ListRequestsByStudent", "WHERE r.student_uid = $1", studentUID)
}

// ListRequestsByTutor возвращает заявки, адресованные репетитору.
func (s *Storage) ListRequestsByTutor(ctx context.Context, tutorUID string) ([]*models.TuitionRequestInfo, error) {
	return s.listRequests(ctx, "storage.ListRequestsByTutor", "WHERE r.tutor_uid = $1", tutorUID)
}

// ListAllRequests возвращает все заявки (для админской панели).
func (s *Storage) ListAllRequests(ctx context.Context) ([]*models.TuitionRequestInfo, error) {
	return s.listRequests(ctx, "storage.ListAllRequests", "")
}

// RejectRequest переводит заявку из pending в rejected.
// Возвращает ErrAlreadyProcessed, если заявка уже обработана:
// условие по статусу входит в сам UPDATE, поэтому гонка двух решений
// по одной заявке разрешается на стороне базы.
func (s *Storage) RejectRequest(ctx context.Context, id int) error {
	const op = "storage.RejectRequest"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE tuition_requests
			  SET status = $2
			  WHERE id = $1 AND status = $3`
	result, err := s.DB.ExecContext(ctx, query, id, models.RequestStatusRejected, models.RequestStatusPending)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrAlreadyProcessed)
	}
	return nil
}

// AcceptRequest атомарно переводит заявку из pending в accepted и создает
// ровно одно бронирование с полями расписания, скопированными из заявки.
// Обе записи становятся видимыми вместе или не видимыми вовсе: смена
// статуса и вставка бронирования выполняются в одной транзакции, а guard
// по статусу в UPDATE повторно проверяет состояние уже под транзакцией.
func (s *Storage) AcceptRequest(ctx context.Context, id int) (*models.Booking, error) {
	const op = "storage.AcceptRequest"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updateQuery := `UPDATE tuition_requests
			  SET status = $2
			  WHERE id = $1 AND status = $3
			  RETURNING student_uid, tutor_uid, subject, start_date, end_date,
			      preferred_days, preferred_time, monthly_fee`
	var b models.Booking
	var days []byte
	err = tx.QueryRowContext(ctx, updateQuery, id, models.RequestStatusAccepted, models.RequestStatusPending).
		Scan(&b.StudentUID, &b.TutorUID, &b.Subject, &b.StartDate, &b.EndDate,
			&days, &b.TimeSlot, &b.MonthlyFee)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrAlreadyProcessed)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = unmarshalJSONB(days, &b.DaysOfWeek); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b.RequestID = id
	b.Status = models.BookingStatusActive

	insertQuery := `INSERT INTO bookings (request_id, student_uid, tutor_uid, subject,
			      start_date, end_date, days_of_week, time_slot, monthly_fee, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10)
			  RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, insertQuery,
		b.RequestID, b.StudentUID, b.TutorUID, b.Subject, b.StartDate, b.EndDate,
		days, b.TimeSlot, b.MonthlyFee, b.Status).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}

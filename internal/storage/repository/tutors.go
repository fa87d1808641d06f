package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// CreateTutorProfile создает пустой профиль репетитора для пользователя.
func (s *Storage) CreateTutorProfile(ctx context.Context, userUID string) error {
	const op = "storage.CreateTutorProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO tutor_profiles (user_uid) VALUES ($1)`
	if _, err := s.DB.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetTutorProfile возвращает профиль репетитора по UID пользователя.
func (s *Storage) GetTutorProfile(ctx context.Context, userUID string) (*models.TutorProfile, error) {
	const op = "storage.GetTutorProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, subjects, experience, availability, monthly_rate,
			      rating, num_reviews, education, about, created_at
			  FROM tutor_profiles WHERE user_uid = $1`
	p := &models.TutorProfile{}
	var subjects, education []byte
	err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&p.UserUID, &subjects,
		&p.Experience, &p.Availability, &p.MonthlyRate, &p.Rating, &p.NumReviews,
		&education, &p.About, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = unmarshalJSONB(subjects, &p.Subjects); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = unmarshalJSONB(education, &p.Education); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// UpdateTutorProfile обновляет заполненные поля профиля репетитора
// и возвращает количество изменённых строк.
func (s *Storage) UpdateTutorProfile(ctx context.Context, userUID string, req models.DummyTutorProfileUpdate) (int, error) {
	const op = "storage.UpdateTutorProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var subjects, education []byte
	var err error
	if req.Subjects != nil {
		if subjects, err = marshalJSONB(req.Subjects); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}
	if req.Education != nil {
		if education, err = marshalJSONB(req.Education); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	query := `UPDATE tutor_profiles
			  SET subjects = COALESCE($2::jsonb, subjects),
			      experience = COALESCE($3, experience),
			      availability = COALESCE(NULLIF($4, ''), availability),
			      monthly_rate = COALESCE($5, monthly_rate),
			      education = COALESCE($6::jsonb, education),
			      about = COALESCE(NULLIF($7, ''), about)
			  WHERE user_uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID,
		subjects, req.Experience, req.Availability, req.MonthlyRate, education, req.About)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListActiveTutors возвращает активных незаблокированных репетиторов
// вместе с их профилями. Дополнительные фильтры каталога применяются
// в памяти на уровне сервиса.
func (s *Storage) ListActiveTutors(ctx context.Context) ([]*models.Tutor, error) {
	const op = "storage.ListActiveTutors"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.uid, u.name, u.email, u.role, u.phone_number, u.address,
			      u.is_active, u.is_blocked, u.created_at,
			      p.subjects, p.experience, p.availability, p.monthly_rate,
			      p.rating, p.num_reviews, p.education, p.about
			  FROM users u
			  JOIN tutor_profiles p ON p.user_uid = u.uid
			  WHERE u.role = 'tutor' AND u.is_active AND NOT u.is_blocked
			  ORDER BY p.rating DESC, u.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Tutor
	for rows.Next() {
		var t models.Tutor
		var subjects, education []byte
		if err = rows.Scan(&t.User.UID, &t.User.Name, &t.User.Email, &t.User.Role,
			&t.User.PhoneNumber, &t.User.Address, &t.User.IsActive, &t.User.IsBlocked,
			&t.User.CreatedAt, &subjects, &t.Profile.Experience, &t.Profile.Availability,
			&t.Profile.MonthlyRate, &t.Profile.Rating, &t.Profile.NumReviews,
			&education, &t.Profile.About); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		t.Profile.UserUID = t.User.UID
		if err = unmarshalJSONB(subjects, &t.Profile.Subjects); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = unmarshalJSONB(education, &t.Profile.Education); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

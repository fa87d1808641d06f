// Package services содержит бизнес-логику работы с собственным профилем пользователя.
package services

import (
	"context"
	"fmt"

	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// UserRepository описывает контракт для чтения и обновления пользователей.
type UserRepository interface {
	// GetUser возвращает пользователя по UID или apperr.ErrNotFound.
	GetUser(ctx context.Context, uid string) (*models.User, error)

	// UpdateUser обновляет разрешенные поля и возвращает обновленную запись.
	UpdateUser(ctx context.Context, uid, name, phoneNumber, address string) (*models.User, error)

	// GetTutorProfile возвращает профиль репетитора по UID пользователя.
	GetTutorProfile(ctx context.Context, userUID string) (*models.TutorProfile, error)
}

// UserService реализует операции над собственной учетной записью.
type UserService struct {
	repo UserRepository
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Me возвращает учетную запись вызывающего; репетиторам дополнительно
// подгружается их профиль (явный read-side join).
func (s *UserService) Me(ctx context.Context, uid string) (*models.User, *models.TutorProfile, error) {
	const op = "services.user.Me"

	user, err := s.repo.GetUser(ctx, uid)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = ""

	if user.Role != models.RoleTutor {
		return user, nil, nil
	}
	profile, err := s.repo.GetTutorProfile(ctx, uid)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, profile, nil
}

// UpdateMe обновляет только разрешенные поля собственного профиля:
// имя, телефон и адрес. Пустые поля запроса оставляют прежние значения.
func (s *UserService) UpdateMe(ctx context.Context, uid string, req models.DummyUserUpdate) (*models.User, error) {
	const op = "services.user.UpdateMe"

	user, err := s.repo.UpdateUser(ctx, uid, req.Name, req.PhoneNumber, req.Address)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = ""
	return user, nil
}

// Package services содержит бизнес-логику регистрации и аутентификации пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/jwt"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/password"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или apperr.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateTutorProfile создает пустой профиль репетитора для пользователя.
	CreateTutorProfile(ctx context.Context, userUID string) error
}

// AuthService отвечает за регистрацию и вход пользователей.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Email приводится к нижнему регистру; занятый email дает apperr.ErrEmailTaken.
// Для роли tutor дополнительно создается пустой профиль репетитора.
// Возвращает созданного пользователя и токен сессии.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (*models.User, string, error) {
	const op = "services.auth.Register"

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("%s: %w", op, apperr.ErrEmailTaken)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hashed,
		Role:         req.Role,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		GradeLevel:   req.GradeLevel,
		IsActive:     true,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user.UID = uid

	if user.Role == models.RoleTutor {
		if err = s.users.CreateTutorProfile(ctx, uid); err != nil {
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}
	}

	token, err := s.jwtMaker.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = ""
	return &user, token, nil
}

// Login проверяет учетные данные пользователя и выпускает токен сессии.
// Неизвестный email и неверный пароль неразличимы для вызывающего
// (оба дают apperr.ErrInvalidCredentials); несовпадение роли, если она
// передана, также считается неверными учетными данными. Заблокированные
// пользователи получают apperr.ErrBlocked независимо от пароля.
func (s *AuthService) Login(ctx context.Context, email, rawPassword, role string) (*models.User, string, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, "", fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
	}
	if role != "" && user.Role != role {
		return nil, "", fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
	}
	if user.IsBlocked {
		return nil, "", fmt.Errorf("%s: %w", op, apperr.ErrBlocked)
	}

	token, err := s.jwtMaker.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = ""
	return user, token, nil
}

// ValidateToken проверяет JWT и возвращает данные пользователя из claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	const op = "services.auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return claims, nil
}

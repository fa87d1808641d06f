// Package admin содержит бизнес-логику административных сводок:
// агрегаты по пользователям и заявкам, переключение блокировки.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tutorconnectpro/tutorconnect/internal/models"
	tutorservice "github.com/tutorconnectpro/tutorconnect/internal/services/tutor"
)

// AdminRepository определяет методы хранилища для административных выборок.
type AdminRepository interface {
	// ListUsers возвращает всех пользователей системы.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// ListAllRequests возвращает все заявки с карточками сторон.
	ListAllRequests(ctx context.Context) ([]*models.TuitionRequestInfo, error)
	// ToggleBlock инвертирует флаг блокировки и возвращает запись.
	ToggleBlock(ctx context.Context, uid string) (*models.User, error)
}

// UserCounts — количество пользователей по ролям.
type UserCounts struct {
	Total    int
	Students int
	Tutors   int
	Admins   int
}

// RequestCounts — количество заявок по статусам.
type RequestCounts struct {
	Total    int
	Pending  int
	Accepted int
	Rejected int
}

// Cache описывает сброс ключей каталога репетиторов при блокировке.
type Cache interface {
	Invalidate(key string) error
}

// AdminService реализует административный надзор.
type AdminService struct {
	repo  AdminRepository
	cache Cache
	log   *slog.Logger
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(repo AdminRepository, cache Cache, log *slog.Logger) *AdminService {
	return &AdminService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListUsers возвращает всех пользователей и их количество по ролям.
func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, UserCounts, error) {
	const op = "services.admin.ListUsers"

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, UserCounts{}, fmt.Errorf("%s: %w", op, err)
	}

	counts := UserCounts{Total: len(users)}
	for _, u := range users {
		u.PasswordHash = ""
		switch u.Role {
		case models.RoleStudent:
			counts.Students++
		case models.RoleTutor:
			counts.Tutors++
		case models.RoleAdmin:
			counts.Admins++
		}
	}
	return users, counts, nil
}

// ListRequests возвращает все заявки с карточками студентов и репетиторов
// и их количество по статусам.
func (s *AdminService) ListRequests(ctx context.Context) ([]*models.TuitionRequestInfo, RequestCounts, error) {
	const op = "services.admin.ListRequests"

	requests, err := s.repo.ListAllRequests(ctx)
	if err != nil {
		return nil, RequestCounts{}, fmt.Errorf("%s: %w", op, err)
	}

	counts := RequestCounts{Total: len(requests)}
	for _, r := range requests {
		switch r.Request.Status {
		case models.RequestStatusPending:
			counts.Pending++
		case models.RequestStatusAccepted:
			counts.Accepted++
		case models.RequestStatusRejected:
			counts.Rejected++
		}
	}
	return requests, counts, nil
}

// ToggleBlock инвертирует флаг блокировки пользователя. Заблокированный
// пользователь с этого момента не может войти в систему.
func (s *AdminService) ToggleBlock(ctx context.Context, uid string) (*models.User, error) {
	const op = "services.admin.ToggleBlock"

	user, err := s.repo.ToggleBlock(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = ""

	// каталог отдает только незаблокированных: кеш не должен пережить блокировку
	if user.Role == models.RoleTutor {
		for _, key := range []string{tutorservice.DirectoryCacheKey, tutorservice.CacheKey(uid)} {
			if err := s.cache.Invalidate(key); err != nil {
				s.log.Warn("failed to invalidate cache", slog.String("key", key), slog.Any("err", err))
			}
		}
	}

	s.log.Info("user block toggled",
		slog.String("uid", uid), slog.Bool("is_blocked", user.IsBlocked))
	return user, nil
}

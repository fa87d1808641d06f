// Package services содержит бизнес-логику каталога репетиторов и их профилей,
// включая кеширование несфильтрованной выдачи каталога.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// DirectoryCacheKey — ключ кеша несфильтрованного каталога репетиторов.
// Экспортируется, чтобы админская блокировка могла сбросить выдачу.
const DirectoryCacheKey = "tutors:directory"

const cacheTTL = time.Hour

// CacheKey возвращает ключ кеша карточки репетитора.
func CacheKey(uid string) string {
	return "tutor:" + uid
}

// TutorRepository определяет методы хранилища для каталога репетиторов.
type TutorRepository interface {
	// ListActiveTutors возвращает активных незаблокированных репетиторов с профилями.
	ListActiveTutors(ctx context.Context) ([]*models.Tutor, error)
	// GetUser возвращает пользователя по UID или apperr.ErrNotFound.
	GetUser(ctx context.Context, uid string) (*models.User, error)
	// GetTutorProfile возвращает профиль репетитора по UID пользователя.
	GetTutorProfile(ctx context.Context, userUID string) (*models.TutorProfile, error)
	// UpdateTutorProfile обновляет заполненные поля профиля, возвращает число строк.
	UpdateTutorProfile(ctx context.Context, userUID string, req models.DummyTutorProfileUpdate) (int, error)
}

// Cache описывает методы для кэширования данных каталога.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// TutorService реализует каталог репетиторов и обновление профиля.
type TutorService struct {
	repo  TutorRepository
	cache Cache
	log   *slog.Logger
}

// NewTutorService создает новый экземпляр TutorService.
func NewTutorService(repo TutorRepository, cache Cache, log *slog.Logger) *TutorService {
	return &TutorService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает каталог репетиторов с фильтрами. Начальная выборка —
// активные незаблокированные репетиторы; фильтры по предмету, адресу
// (подстрока без учета регистра) и минимальному опыту применяются в памяти.
// Кешируется только несфильтрованная выдача.
func (s *TutorService) List(ctx context.Context, filter models.TutorFilter) ([]*models.Tutor, error) {
	const op = "services.tutor.List"

	unfiltered := filter.Subject == "" && filter.Location == "" && filter.MinExperience == 0

	var tutors []*models.Tutor
	if unfiltered {
		found, err := s.cache.Get(DirectoryCacheKey, &tutors)
		if err != nil {
			s.log.Warn("failed to read tutors directory from cache", slog.Any("err", err))
		}
		if found {
			return tutors, nil
		}
	}

	tutors, err := s.repo.ListActiveTutors(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if unfiltered {
		if err = s.cache.Set(DirectoryCacheKey, tutors, cacheTTL); err != nil {
			s.log.Warn("failed to cache tutors directory", slog.Any("err", err))
		}
		return tutors, nil
	}

	var result []*models.Tutor
	for _, t := range tutors {
		if filter.Subject != "" && !matchesSubject(t.Profile.Subjects, filter.Subject) {
			continue
		}
		if filter.Location != "" &&
			!strings.Contains(strings.ToLower(t.User.Address), strings.ToLower(filter.Location)) {
			continue
		}
		if t.Profile.Experience < filter.MinExperience {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

// matchesSubject сообщает, содержит ли хотя бы один из предметов подстроку
// фильтра без учета регистра.
func matchesSubject(subjects []string, filter string) bool {
	needle := strings.ToLower(filter)
	for _, s := range subjects {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// Read возвращает репетитора с профилем. Пользователь с другой ролью
// невидим через каталог и дает apperr.ErrNotFound. Результат кешируется.
func (s *TutorService) Read(ctx context.Context, uid string) (*models.Tutor, error) {
	const op = "services.tutor.Read"

	cacheKey := CacheKey(uid)
	var cached models.Tutor
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read tutor from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	user, err := s.repo.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.Role != models.RoleTutor {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	profile, err := s.repo.GetTutorProfile(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = ""

	tutor := &models.Tutor{User: *user, Profile: *profile}
	if err = s.cache.Set(cacheKey, tutor, cacheTTL); err != nil {
		s.log.Warn("failed to cache tutor", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return tutor, nil
}

// UpdateProfile обновляет профиль репетитора. Профиль может менять только
// его владелец: несовпадение uid вызывающего и uid в пути дает
// apperr.ErrForbidden. Кеш каталога и карточки инвалидируется.
func (s *TutorService) UpdateProfile(ctx context.Context, callerUID, tutorUID string, req models.DummyTutorProfileUpdate) (*models.TutorProfile, error) {
	const op = "services.tutor.UpdateProfile"

	if callerUID != tutorUID {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrForbidden)
	}

	count, err := s.repo.UpdateTutorProfile(ctx, tutorUID, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}

	for _, key := range []string{DirectoryCacheKey, CacheKey(tutorUID)} {
		if err = s.cache.Invalidate(key); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", key), slog.Any("err", err))
		}
	}

	profile, err := s.repo.GetTutorProfile(ctx, tutorUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}

// Package services содержит бизнес-логику заявок на обучение:
// создание студентом, принятие и отклонение репетитором.
// Принятие заявки атомарно порождает ровно одно бронирование.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/month"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// RequestRepository определяет методы хранилища для заявок на обучение.
type RequestRepository interface {
	// CreateRequest вставляет новую заявку и возвращает её ID.
	CreateRequest(ctx context.Context, req models.TuitionRequest) (int, error)
	// GetRequest возвращает заявку по ID или apperr.ErrNotFound.
	GetRequest(ctx context.Context, id int) (*models.TuitionRequest, error)
	// GetUser возвращает пользователя по UID или apperr.ErrNotFound.
	GetUser(ctx context.Context, uid string) (*models.User, error)
	// ListRequestsByStudent возвращает заявки студента с карточками сторон.
	ListRequestsByStudent(ctx context.Context, studentUID string) ([]*models.TuitionRequestInfo, error)
	// ListRequestsByTutor возвращает заявки репетитора с карточками сторон.
	ListRequestsByTutor(ctx context.Context, tutorUID string) ([]*models.TuitionRequestInfo, error)
	// ListAllRequests возвращает все заявки.
	ListAllRequests(ctx context.Context) ([]*models.TuitionRequestInfo, error)
	// AcceptRequest атомарно принимает заявку и создает бронирование.
	AcceptRequest(ctx context.Context, id int) (*models.Booking, error)
	// RejectRequest переводит заявку в rejected или возвращает ErrAlreadyProcessed.
	RejectRequest(ctx context.Context, id int) error
}

// RequestService реализует процесс рассмотрения заявок на обучение.
type RequestService struct {
	repo RequestRepository
	log  *slog.Logger
}

// NewRequestService создает новый экземпляр RequestService.
func NewRequestService(repo RequestRepository, log *slog.Logger) *RequestService {
	return &RequestService{
		repo: repo,
		log:  log,
	}
}

// Create создает новую заявку от имени студента. Заявку может создать
// только студент; адресат должен существовать и иметь роль tutor.
// Дата окончания выводится из даты начала и длительности в месяцах
// до сохранения.
func (s *RequestService) Create(ctx context.Context, studentUID, role string, req models.DummyTuitionRequest) (*models.TuitionRequest, error) {
	const op = "services.request.Create"

	if role != models.RoleStudent {
		return nil, fmt.Errorf("%s: only students can create tuition requests: %w", op, apperr.ErrForbidden)
	}

	tutor, err := s.repo.GetUser(ctx, req.TutorUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if tutor.Role != models.RoleTutor {
		return nil, fmt.Errorf("%s: no tutor with that uid: %w", op, apperr.ErrNotFound)
	}

	startDate, err := time.Parse("02-01-2006", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid start date: %w", op, err)
	}

	request := models.TuitionRequest{
		StudentUID:     studentUID,
		TutorUID:       req.TutorUID,
		Subject:        req.Subject,
		GradeLevel:     req.GradeLevel,
		PreferredDays:  req.PreferredDays,
		PreferredTime:  req.PreferredTime,
		DurationMonths: req.DurationMonths,
		StartDate:      startDate,
		EndDate:        month.EndDate(startDate, req.DurationMonths),
		Status:         models.RequestStatusPending,
		MonthlyFee:     req.MonthlyFee,
		Notes:          req.Notes,
	}

	id, err := s.repo.CreateRequest(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	request.ID = id

	s.log.Info("created new tuition request",
		slog.Int("id", id), slog.String("student_uid", studentUID), slog.String("tutor_uid", req.TutorUID))
	return &request, nil
}

// List возвращает заявки в зависимости от роли вызывающего:
// студент видит созданные им, репетитор — адресованные ему,
// администратор — все.
func (s *RequestService) List(ctx context.Context, uid, role string) ([]*models.TuitionRequestInfo, error) {
	const op = "services.request.List"

	var (
		result []*models.TuitionRequestInfo
		err    error
	)
	switch role {
	case models.RoleStudent:
		result, err = s.repo.ListRequestsByStudent(ctx, uid)
	case models.RoleTutor:
		result, err = s.repo.ListRequestsByTutor(ctx, uid)
	default:
		result, err = s.repo.ListAllRequests(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// authorizeDecision проверяет, что решение по заявке принимает назначенный
// репетитор, и что заявка все еще ожидает решения.
func (s *RequestService) authorizeDecision(ctx context.Context, tutorUID, role string, id int) error {
	if role != models.RoleTutor {
		return fmt.Errorf("only tutors can process tuition requests: %w", apperr.ErrForbidden)
	}
	request, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	if request.TutorUID != tutorUID {
		return fmt.Errorf("request is assigned to another tutor: %w", apperr.ErrForbidden)
	}
	if request.Status != models.RequestStatusPending {
		return fmt.Errorf("request is already %s: %w", request.Status, apperr.ErrAlreadyProcessed)
	}
	return nil
}

// Accept принимает заявку от имени назначенного репетитора. Повторное
// решение по обработанной заявке дает apperr.ErrAlreadyProcessed. Смена
// статуса и создание бронирования выполняются хранилищем в одной
// транзакции; в ней же состояние заявки проверяется повторно.
func (s *RequestService) Accept(ctx context.Context, tutorUID, role string, id int) (*models.TuitionRequest, *models.Booking, error) {
	const op = "services.request.Accept"

	if err := s.authorizeDecision(ctx, tutorUID, role, id); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	booking, err := s.repo.AcceptRequest(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	request, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("accepted tuition request",
		slog.Int("request_id", id), slog.Int("booking_id", booking.ID))
	return request, booking, nil
}

// Reject отклоняет заявку от имени назначенного репетитора.
// Бронирование при этом не создается.
func (s *RequestService) Reject(ctx context.Context, tutorUID, role string, id int) (*models.TuitionRequest, error) {
	const op = "services.request.Reject"

	if err := s.authorizeDecision(ctx, tutorUID, role, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.RejectRequest(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	request, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("rejected tuition request", slog.Int("request_id", id))
	return request, nil
}

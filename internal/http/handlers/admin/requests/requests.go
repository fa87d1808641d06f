// Package requests реализует HTTP-обработчик административного списка заявок.
package requests

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/tutorconnectpro/tutorconnect/internal/http/response"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/sl"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
	"github.com/tutorconnectpro/tutorconnect/internal/services/admin"
)

// Handler обрабатывает административные запросы списка заявок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс административной бизнес-логики.
type Service interface {
	ListRequests(ctx context.Context) ([]*models.TuitionRequestInfo, admin.RequestCounts, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список всех заявок
// @Description Возвращает все заявки платформы со сводкой по статусам. Доступно только администратору.
// @Tags Admin
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response "Заявки и сводка"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 403 {object} response.Response "Требуется роль администратора"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /admin/requests [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.requests"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, counts, err := h.service.ListRequests(r.Context())
	if err != nil {
		log.Error("failed to list requests", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list requests"))
		return
	}

	log.Info("requests listed", slog.Int("count", len(list)))
	render.JSON(w, r, response.OKWithList(map[string]any{
		"requests": list,
		"counts":   counts,
	}, len(list)))
}

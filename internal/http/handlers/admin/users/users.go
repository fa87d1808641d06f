// Package users реализует HTTP-обработчик административного списка пользователей.
package users

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

// Handler обрабатывает административные запросы списка пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс административной бизнес-логики.
type Service interface {
	ListUsers(ctx context.Context) ([]*models.User, admin.UserCounts, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список всех пользователей
// @Description Возвращает всех пользователей платформы со сводкой по ролям. Доступно только администратору.
// @Tags Admin
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response "Пользователи и сводка"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 403 {object} response.Response "Требуется роль администратора"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.users"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, counts, err := h.service.ListUsers(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	log.Info("users listed", slog.Int("count", len(list)))
	render.JSON(w, r, response.OKWithList(map[string]any{
		"users":  list,
		"counts": counts,
	}, len(list)))
}

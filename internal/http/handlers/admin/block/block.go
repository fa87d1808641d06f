// Package block реализует HTTP-обработчик блокировки и разблокировки пользователя.
// Повторный вызов снимает блокировку.
package block

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tutorconnectpro/tutorconnect/internal/http/response"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/sl"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// Handler обрабатывает запросы блокировки пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс административной бизнес-логики.
type Service interface {
	ToggleBlock(ctx context.Context, uid string) (*models.User, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Заблокировать или разблокировать пользователя
// @Description Переключает флаг блокировки. Заблокированный пользователь не может войти в систему. Доступно только администратору.
// @Tags Admin
// @Security BearerAuth
// @Produce  json
// @Param id path string true "UID пользователя"
// @Success 200 {object} response.Response "Пользователь с обновленным флагом"
// @Failure 400 {object} response.Response "Некорректный идентификатор"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 403 {object} response.Response "Требуется роль администратора"
// @Failure 404 {object} response.Response "Пользователь не найден"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /admin/users/{id}/block [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.block"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "id")
	if _, err := uuid.Parse(uid); err != nil {
		log.Error("invalid user uid", slog.String("uid", uid))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Fail("user id must be a valid uuid"))
		return
	}

	user, err := h.service.ToggleBlock(r.Context(), uid)
	if err != nil {
		log.Error("failed to toggle block", sl.Err(err))
		code := apperr.HTTPStatus(err)
		msg := apperr.Message(err)
		if msg == "" {
			msg = "could not toggle block"
		}
		w.WriteHeader(code)
		render.JSON(w, r, response.FromStatus(code, msg))
		return
	}

	log.Info("user block toggled",
		slog.String("uid", user.UID),
		slog.Bool("is_blocked", user.IsBlocked))
	render.JSON(w, r, response.OKWithData(map[string]any{"user": user}))
}

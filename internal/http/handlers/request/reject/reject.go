// Package reject реализует HTTP-обработчик отклонения заявки репетитором.
package reject

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/tutorconnectpro/tutorconnect/internal/http/middlewarectx"
	"github.com/tutorconnectpro/tutorconnect/internal/http/response"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/sl"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// Handler обрабатывает запросы отклонения заявки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики заявок.
type Service interface {
	Reject(ctx context.Context, tutorUID, role string, id int) (*models.TuitionRequest, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отклонить заявку
// @Description Репетитор отклоняет адресованную ему заявку. Бронирование не создается.
// @Tags Requests
// @Security BearerAuth
// @Produce  json
// @Param id path int true "ID заявки"
// @Success 200 {object} response.Response "Отклоненная заявка"
// @Failure 400 {object} response.Response "Некорректный идентификатор"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 403 {object} response.Response "Заявка адресована другому репетитору"
// @Failure 404 {object} response.Response "Заявка не найдена"
// @Failure 409 {object} response.Response "Заявка уже обработана"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /requests/{id}/reject [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.reject"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Error("invalid request id", slog.String("id", chi.URLParam(r, "id")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Fail("request id must be a positive number"))
		return
	}

	tutorUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || tutorUID == "" {
		log.Error("missing user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Fail("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	request, err := h.service.Reject(r.Context(), tutorUID, role, id)
	if err != nil {
		log.Error("failed to reject request", sl.Err(err))
		code := apperr.HTTPStatus(err)
		msg := apperr.Message(err)
		if msg == "" {
			msg = "could not reject request"
		}
		w.WriteHeader(code)
		render.JSON(w, r, response.FromStatus(code, msg))
		return
	}

	log.Info("request rejected", slog.Int("request_id", request.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{"request": request}))
}

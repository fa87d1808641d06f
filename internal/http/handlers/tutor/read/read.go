// Package read реализует HTTP-обработчик просмотра карточки репетитора.
package read

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

// Handler обрабатывает запросы просмотра репетитора.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	Read(ctx context.Context, uid string) (*models.Tutor, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Карточка репетитора
// @Description Возвращает профиль репетитора по его идентификатору.
// @Tags Tutors
// @Produce  json
// @Param id path string true "UID репетитора"
// @Success 200 {object} response.Response "Репетитор"
// @Failure 400 {object} response.Response "Некорректный идентификатор"
// @Failure 404 {object} response.Response "Репетитор не найден"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /tutors/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tutor.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tutorUID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(tutorUID); err != nil {
		log.Error("invalid tutor uid", slog.String("uid", tutorUID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Fail("tutor id must be a valid uuid"))
		return
	}

	tutor, err := h.service.Read(r.Context(), tutorUID)
	if err != nil {
		log.Error("failed to read tutor", sl.Err(err))
		code := apperr.HTTPStatus(err)
		msg := apperr.Message(err)
		if msg == "" {
			msg = "could not read tutor"
		}
		w.WriteHeader(code)
		render.JSON(w, r, response.FromStatus(code, msg))
		return
	}

	log.Info("tutor read", slog.String("uid", tutorUID))
	render.JSON(w, r, response.OKWithData(map[string]any{"tutor": tutor}))
}

// Package status реализует HTTP-обработчик смены статуса бронирования.
// Допустимы переходы только из active в completed или cancelled.
package status

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/tutorconnectpro/tutorconnect/internal/http/middlewarectx"
	"github.com/tutorconnectpro/tutorconnect/internal/http/response"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/sl"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// Handler обрабатывает запросы смены статуса бронирования.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики бронирований.
type Service interface {
	UpdateStatus(ctx context.Context, uid, role string, id int, status string) (*models.Booking, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сменить статус бронирования
// @Description Участник бронирования завершает или отменяет активное бронирование.
// @Tags Bookings
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path int true "ID бронирования"
// @Param input body models.DummyBookingStatus true "Новый статус"
// @Success 200 {object} response.Response "Обновленное бронирование"
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 403 {object} response.Response "Бронирование принадлежит другим пользователям"
// @Failure 404 {object} response.Response "Бронирование не найдено"
// @Failure 409 {object} response.Response "Недопустимый переход статуса"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /bookings/{id}/status [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Error("invalid booking id", slog.String("id", chi.URLParam(r, "id")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Fail("booking id must be a positive number"))
		return
	}

	var req models.DummyBookingStatus
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Fail("failed to decode request"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("failed to validate request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	uid, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || uid == "" {
		log.Error("missing user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Fail("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	booking, err := h.service.UpdateStatus(r.Context(), uid, role, id, req.Status)
	if err != nil {
		log.Error("failed to update booking status", sl.Err(err))
		code := apperr.HTTPStatus(err)
		msg := apperr.Message(err)
		if msg == "" {
			msg = "could not update booking status"
		}
		w.WriteHeader(code)
		render.JSON(w, r, response.FromStatus(code, msg))
		return
	}

	log.Info("booking status updated",
		slog.Int("booking_id", booking.ID),
		slog.String("status", booking.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{"booking": booking}))
}

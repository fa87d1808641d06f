// Package extend реализует HTTP-обработчик продления бронирования.
// Продлевать может только студент-владелец, и только активное бронирование.
package extend

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/tutorconnectpro/tutorconnect/internal/http/middlewarectx"
	"github.com/tutorconnectpro/tutorconnect/internal/http/response"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/apperr"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/sl"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// Handler обрабатывает запросы продления бронирования.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики бронирований.
type Service interface {
	Extend(ctx context.Context, studentUID, role string, bookingID, additionalMonths int) (*models.Booking, error)
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
// @Summary Продлить бронирование
// @Description Студент продлевает активное бронирование на указанное число месяцев. Прежняя дата окончания сохраняется в истории продлений.
// @Tags Bookings
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param input body models.DummyExtend true "Бронирование и срок продления"
// @Success 200 {object} response.Response "Продленное бронирование"
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 403 {object} response.Response "Бронирование принадлежит другому студенту"
// @Failure 404 {object} response.Response "Бронирование не найдено"
// @Failure 409 {object} response.Response "Бронирование не активно"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /requests/extend [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.extend"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyExtend
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

	studentUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || studentUID == "" {
		log.Error("missing user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Fail("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	booking, err := h.service.Extend(r.Context(), studentUID, role, req.BookingID, req.AdditionalMonths)
	if err != nil {
		log.Error("failed to extend booking", sl.Err(err))
		code := apperr.HTTPStatus(err)
		msg := apperr.Message(err)
		if msg == "" {
			msg = "could not extend booking"
		}
		w.WriteHeader(code)
		render.JSON(w, r, response.FromStatus(code, msg))
		return
	}

	log.Info("booking extended",
		slog.Int("booking_id", booking.ID),
		slog.Int("months", req.AdditionalMonths))
	render.JSON(w, r, response.OKWithData(map[string]any{"booking": booking}))
}

// Package list реализует HTTP-обработчик списка бронирований текущего пользователя.
// Истекшие активные бронирования помечаются завершенными при чтении.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/tutorconnectpro/tutorconnect/internal/http/middlewarectx"
	"github.com/tutorconnectpro/tutorconnect/internal/http/response"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/sl"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// Handler обрабатывает запросы списка бронирований.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики бронирований.
type Service interface {
	List(ctx context.Context, uid, role string) ([]*models.BookingInfo, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список бронирований
// @Description Возвращает бронирования, связанные с текущим пользователем.
// @Tags Bookings
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response "Список бронирований"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /bookings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || uid == "" {
		log.Error("missing user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Fail("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	bookings, err := h.service.List(r.Context(), uid, role)
	if err != nil {
		log.Error("failed to list bookings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list bookings"))
		return
	}

	log.Info("bookings listed", slog.Int("count", len(bookings)))
	render.JSON(w, r, response.OKWithList(map[string]any{"bookings": bookings}, len(bookings)))
}

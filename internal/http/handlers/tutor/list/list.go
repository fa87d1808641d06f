// Package list реализует HTTP-обработчик каталога репетиторов
// с фильтрами по предмету, месту и минимальному опыту.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/tutorconnectpro/tutorconnect/internal/http/response"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/sl"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
)

// Handler обрабатывает запросы каталога репетиторов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	List(ctx context.Context, filter models.TutorFilter) ([]*models.Tutor, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог репетиторов
// @Description Возвращает активных незаблокированных репетиторов. Фильтры: подстрока предмета, подстрока адреса, минимальный опыт в годах.
// @Tags Tutors
// @Produce  json
// @Param subject query string false "Подстрока предмета"
// @Param location query string false "Подстрока города или района"
// @Param experience query int false "Минимальный опыт в годах"
// @Success 200 {object} response.Response "Список репетиторов"
// @Failure 400 {object} response.Response "Некорректный параметр experience"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /tutors [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tutor.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.TutorFilter{
		Subject:  r.URL.Query().Get("subject"),
		Location: r.URL.Query().Get("location"),
	}
	if raw := r.URL.Query().Get("experience"); raw != "" {
		minExperience, err := strconv.Atoi(raw)
		if err != nil || minExperience < 0 {
			log.Error("invalid experience filter", slog.String("experience", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Fail("experience must be a non-negative number"))
			return
		}
		filter.MinExperience = minExperience
	}

	tutors, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list tutors", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list tutors"))
		return
	}

	log.Info("tutors listed", slog.Int("count", len(tutors)))
	render.JSON(w, r, response.OKWithList(map[string]any{"tutors": tutors}, len(tutors)))
}

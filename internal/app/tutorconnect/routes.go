// Package tutorconnect предоставляет маршруты для основного приложения.
package tutorconnect

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	adminblock "github.com/tutorconnectpro/tutorconnect/internal/http/handlers/admin/block"
	adminrequests "github.com/tutorconnectpro/tutorconnect/internal/http/handlers/admin/requests"
	adminusers "github.com/tutorconnectpro/tutorconnect/internal/http/handlers/admin/users"
	"github.com/tutorconnectpro/tutorconnect/internal/http/handlers/auth/login"
	"github.com/tutorconnectpro/tutorconnect/internal/http/handlers/auth/register"
	"github.com/tutorconnectpro/tutorconnect/internal/http/handlers/booking/extend"
	bookinglist "github.com/tutorconnectpro/tutorconnect/internal/http/handlers/booking/list"
	bookingstatus "github.com/tutorconnectpro/tutorconnect/internal/http/handlers/booking/status"
	"github.com/tutorconnectpro/tutorconnect/internal/http/handlers/request/accept"
	"github.com/tutorconnectpro/tutorconnect/internal/http/handlers/request/create"
	requestlist "github.com/tutorconnectpro/tutorconnect/internal/http/handlers/request/list"
	"github.com/tutorconnectpro/tutorconnect/internal/http/handlers/request/reject"
	tutorlist "github.com/tutorconnectpro/tutorconnect/internal/http/handlers/tutor/list"
	tutorread "github.com/tutorconnectpro/tutorconnect/internal/http/handlers/tutor/read"
	tutorupdate "github.com/tutorconnectpro/tutorconnect/internal/http/handlers/tutor/update"
	"github.com/tutorconnectpro/tutorconnect/internal/http/handlers/user/me"
	userupdate "github.com/tutorconnectpro/tutorconnect/internal/http/handlers/user/update"
	"github.com/tutorconnectpro/tutorconnect/internal/http/middlewarectx"
	"github.com/tutorconnectpro/tutorconnect/internal/models"
	adminservice "github.com/tutorconnectpro/tutorconnect/internal/services/admin"
	authservice "github.com/tutorconnectpro/tutorconnect/internal/services/auth"
	bookingservice "github.com/tutorconnectpro/tutorconnect/internal/services/booking"
	requestservice "github.com/tutorconnectpro/tutorconnect/internal/services/request"
	tutorservice "github.com/tutorconnectpro/tutorconnect/internal/services/tutor"
	userservice "github.com/tutorconnectpro/tutorconnect/internal/services/user"
)

// Services собирает бизнес-логику, необходимую маршрутам.
type Services struct {
	Auth    *authservice.AuthService
	User    *userservice.UserService
	Tutor   *tutorservice.TutorService
	Request *requestservice.RequestService
	Booking *bookingservice.BookingService
	Admin   *adminservice.AdminService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/tutors", tutorlist.New(logger, s.Tutor).ServeHTTP)
		r.Get("/tutors/{id}", tutorread.New(logger, s.Tutor).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/users/me", me.New(logger, s.User).ServeHTTP)
			r.Put("/users/update", userupdate.New(logger, s.User).ServeHTTP)
			r.Put("/tutors/{id}", tutorupdate.New(logger, s.Tutor).ServeHTTP)

			r.Post("/requests", create.New(logger, s.Request).ServeHTTP)
			r.Get("/requests", requestlist.New(logger, s.Request).ServeHTTP)
			r.Put("/requests/{id}/accept", accept.New(logger, s.Request).ServeHTTP)
			r.Put("/requests/{id}/reject", reject.New(logger, s.Request).ServeHTTP)
			r.Post("/requests/extend", extend.New(logger, s.Booking).ServeHTTP)

			r.Get("/bookings", bookinglist.New(logger, s.Booking).ServeHTTP)
			r.Put("/bookings/{id}/status", bookingstatus.New(logger, s.Booking).ServeHTTP)

			// Административная группа
			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
				r.Get("/users", adminusers.New(logger, s.Admin).ServeHTTP)
				r.Get("/requests", adminrequests.New(logger, s.Admin).ServeHTTP)
				r.Put("/users/{id}/block", adminblock.New(logger, s.Admin).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

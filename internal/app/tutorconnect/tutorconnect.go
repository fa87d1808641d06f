// Package tutorconnect собирает приложение: хранилище, кэш, сервисы,
// маршруты и HTTP-сервер с корректным завершением.
package tutorconnect

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/tutorconnectpro/tutorconnect/internal/cache"
	"github.com/tutorconnectpro/tutorconnect/internal/config"
	"github.com/tutorconnectpro/tutorconnect/internal/lib/jwt"
	"github.com/tutorconnectpro/tutorconnect/internal/migrations"
	adminservice "github.com/tutorconnectpro/tutorconnect/internal/services/admin"
	authservice "github.com/tutorconnectpro/tutorconnect/internal/services/auth"
	bookingservice "github.com/tutorconnectpro/tutorconnect/internal/services/booking"
	requestservice "github.com/tutorconnectpro/tutorconnect/internal/services/request"
	tutorservice "github.com/tutorconnectpro/tutorconnect/internal/services/tutor"
	userservice "github.com/tutorconnectpro/tutorconnect/internal/services/user"
	"github.com/tutorconnectpro/tutorconnect/internal/storage/repository"
)

// App объединяет зависимости запущенного сервиса.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создает приложение: подключает Postgres, применяет миграции,
// подключает Redis и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	services := Services{
		Auth:    authservice.NewAuthService(db, jwtMaker),
		User:    userservice.NewUserService(db),
		Tutor:   tutorservice.NewTutorService(db, cacheRedis, logger),
		Request: requestservice.NewRequestService(db, logger),
		Booking: bookingservice.NewBookingService(db, logger),
		Admin:   adminservice.NewAdminService(db, cacheRedis, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до ошибки или отмены контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}

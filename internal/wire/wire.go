package wire

import (
	"net/http"

	"hostal-booking/internal/adaptor"
	"hostal-booking/internal/data/repository"
	"hostal-booking/internal/events"
	"hostal-booking/internal/notify"
	"hostal-booking/internal/usecase"
	"hostal-booking/pkg/middleware"
	"hostal-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	notifier notify.Notifier,
	publisher events.Publisher,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, notifier, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, repo, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireRoom(r, handler.Room, repo, logger)
	wireReservation(r, handler.Reservation, repo, logger)
	wireGuest(r, handler.Guest, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

package wire

import (
	"net/http"

	"answerq/internal/adaptor"
	"answerq/internal/data/repository"
	"answerq/internal/usecase"
	"answerq/pkg/mailer"
	"answerq/pkg/middleware"
	"answerq/pkg/token"
	"answerq/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes from their dependencies.
func Wiring(
	repo *repository.Repository,
	notifier usecase.Notifier,
	composer *mailer.Composer,
	issuer token.Issuer,
	config *utils.Config,
	logger *zap.Logger,
	opts ...usecase.Option,
) *App {
	service := usecase.NewService(repo, notifier, composer, config, logger, opts...)
	handler := adaptor.NewHandler(service, issuer, logger)

	router := setupRouter(handler, repo, issuer, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	issuer token.Issuer,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))
	if config.App.RequestTimeout > 0 {
		r.Use(chimw.Timeout(config.App.RequestTimeout))
	}
	r.Use(middleware.Authenticate(issuer, repo.User, logger))

	wireAuth(r, handler.Auth)
	wireUser(r, handler.User)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RequireAuth())

		wireUserDetails(r, handler.User)
		wireForm(r, handler.Form)
		wireQuestion(r, handler.Question)
		wireAnswer(r, handler.Answer)
		wireUserAnswer(r, handler.UserAnswer)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

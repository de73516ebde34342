package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"verifyserver/internal/verify"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

type Settings struct {
	RequestIPLimit  int
	RequestIPWindow time.Duration
}

// Verifier runs one issuance attempt. Satisfied by *verify.Service.
type Verifier interface {
	Issue(ctx context.Context, email string) (verify.Result, error)
}

type API struct {
	verifier Verifier
	logger   *slog.Logger
	settings Settings
}

func New(verifier Verifier, settings Settings, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		verifier: verifier,
		logger:   logger,
		settings: settings,
	}
}

func (a *API) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(15 * time.Second))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route("/verify", func(r chi.Router) {
		r.With(httprate.Limit(a.settings.RequestIPLimit, a.settings.RequestIPWindow, httprate.WithKeyFuncs(httprate.KeyByIP))).
			Post("/get-code", a.handleGetVerifyCode)
	})

	return router
}

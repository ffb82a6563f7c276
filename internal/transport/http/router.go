package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"atmgate/internal/platform/metrics"
	"atmgate/internal/platform/middleware"
)

// NewRouter wires the public ATM endpoints plus health and metrics.
func NewRouter(h *Handler, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Latency(m))

	r.Post("/atm/authenticate", h.handleAuthenticate)
	r.Post("/atm/withdraw", h.handleWithdraw)
	r.Post("/atm/deposit", h.handleDeposit)
	r.Post("/atm/balance", h.handleBalance)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(h.sessions, logger))
		r.Get("/atm/session", h.handleSession)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/insights-dashboard/pkg/logger"
)

func TestLoggerMiddleware_PutsLoggerInContext(t *testing.T) {
	base := slog.New(logger.NewTestHandler(slog.LevelDebug))
	var got *slog.Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logger.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	h := chimiddleware.RequestID(NewLoggerMiddleware(base).LoggerMiddleware(next))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if got == nil || got == slog.Default() || got == base {
		t.Fatal("expected a request-scoped logger")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
}

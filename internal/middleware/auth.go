package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/insights-dashboard/pkg/logger"
)

// LocalUID is the uid every request runs as when auth is disabled.
const LocalUID = "local"

type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type Middleware struct {
	Verifier tokenVerifier
}

// NewMiddleware builds the auth middleware. A nil verifier disables token
// checks and every request is served as LocalUID.
func NewMiddleware(verifier tokenVerifier) *Middleware {
	return &Middleware{Verifier: verifier}
}

// context key
type contextKey string

const UIDKey contextKey = "uid"

func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Verifier == nil {
			next.ServeHTTP(w, r.WithContext(WithUID(r.Context(), LocalUID)))
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		token, err := m.Verifier.VerifyIDToken(r.Context(), parts[1])
		if err != nil {
			logger.FromContext(r.Context()).Warn("token verification failed", "error", err)
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		_, ctx := logger.With(WithUID(r.Context(), token.UID), "uid", token.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithUID returns a copy of ctx carrying uid.
func WithUID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, UIDKey, uid)
}

// Helper to extract UID
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}

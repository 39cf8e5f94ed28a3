package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/model"
	"github.com/unclebandit/brandplay-backend/internal/service"
)

// RequestLogger logs one line per request: 5xx at error, 4xx at warn.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		entry := logrus.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     status,
			"latency":    time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		})
		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	})
}

// Authenticator resolves a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (service.Principal, *model.User, error)
}

type ctxKey int

const (
	principalKey ctxKey = iota
	userKey
)

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func withSession(ctx context.Context, p service.Principal, u *model.User) context.Context {
	ctx = context.WithValue(ctx, principalKey, p)
	return context.WithValue(ctx, userKey, u)
}

// RequireUser rejects requests without a live session.
func RequireUser(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearer(r)
			if raw == "" {
				WriteError(w, appErrors.ErrUnauthenticated)
				return
			}
			p, u, err := a.Authenticate(r.Context(), raw)
			if err != nil {
				WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), p, u)))
		})
	}
}

// OptionalUser attaches the session when one is presented and valid, and
// lets anonymous visitors through otherwise.
func OptionalUser(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := bearer(r); raw != "" {
				if p, u, err := a.Authenticate(r.Context(), raw); err == nil {
					r = r.WithContext(withSession(r.Context(), p, u))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFrom returns the signed-in user, or nil for anonymous requests.
func UserFrom(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey).(*model.User)
	return u
}

func PrincipalFrom(ctx context.Context) (service.Principal, bool) {
	p, ok := ctx.Value(principalKey).(service.Principal)
	return p, ok
}

package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Spok95/geosites/internal/apperr"
	"github.com/Spok95/geosites/internal/domain/access"
	"github.com/Spok95/geosites/internal/infra/metrics"
)

type TokenParser interface {
	Parse(raw string) (access.Actor, error)
}

// Authenticate puts the bearer token's actor into the request context. A
// request without a token passes through anonymous; a bad token is rejected.
func Authenticate(tokens TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				next.ServeHTTP(w, r)
				return
			}
			raw, found := strings.CutPrefix(h, "Bearer ")
			if !found || raw == "" {
				fail(w, log, apperr.Unauthorized("INVALID_TOKEN", "Malformed Authorization header"))
				return
			}
			actor, err := tokens.Parse(raw)
			if err != nil {
				fail(w, log, apperr.Unauthorized("INVALID_TOKEN", "Invalid or expired token").Wrap(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(access.WithActor(r.Context(), actor)))
		})
	}
}

func RequireAuth(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := access.FromContext(r.Context()); !ok {
				fail(w, log, apperr.Unauthorized("UNAUTHORIZED", "Authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, _ := access.FromContext(r.Context())
			if !actor.IsAdmin() {
				fail(w, log, apperr.Forbidden("ADMIN_ONLY", "Admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Observe logs each request and records it in the HTTP metrics under its
// route pattern.
func Observe(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			metrics.HTTPDuration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())

			log.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration", elapsed,
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func actorFrom(r *http.Request) access.Actor {
	a, _ := access.FromContext(r.Context())
	return a
}

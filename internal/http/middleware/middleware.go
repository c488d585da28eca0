// Package middleware holds the net/http middleware wrapped around the router:
// request IDs, request logging, panic recovery and CORS.
//
// Every middleware is an alice.Constructor so the router can stack them
// with alice.New(...).Then(mux).
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/justinas/alice"
	"github.com/rs/cors"

	"github.com/aanand-mishra/drivers-api/internal/utils/response"
)

// RequestIDHeader carries the correlation ID in both directions.
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// RequestID reuses the caller's X-Request-ID or generates a new UUID, stores
// it in the request context and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), ctxKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Logger emits one structured log line per request. 5xx responses are
// logged at ERROR, 4xx at WARN, everything else at INFO.
func Logger(log *slog.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			level := slog.LevelInfo
			switch {
			case m.Code >= 500:
				level = slog.LevelError
			case m.Code >= 400:
				level = slog.LevelWarn
			}

			log.LogAttrs(r.Context(), level, "request",
				slog.String("request_id", GetRequestID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", m.Code),
				slog.Int64("bytes", m.Written),
				slog.Duration("duration", m.Duration),
			)
		})
	}
}

// Recover turns a panicking handler into a 500 response instead of a
// dropped connection.
func Recover(log *slog.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rv := recover(); rv != nil {
					if rv == http.ErrAbortHandler {
						panic(rv)
					}
					log.Error("panic while handling request",
						slog.String("request_id", GetRequestID(r.Context())),
						slog.Any("panic", rv),
					)
					response.WriteJSON(w, http.StatusInternalServerError, response.InternalError())
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// CORS allows browsers on the given origins to call the API with any
// method and header, credentials included. An empty list allows no
// cross-origin requests at all.
func CORS(allowedOrigins []string) alice.Constructor {
	if len(allowedOrigins) == 0 {
		// rs/cors treats an empty list as "*".
		return func(next http.Handler) http.Handler { return next }
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler
}

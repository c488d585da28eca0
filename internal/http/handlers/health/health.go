// Package health exposes a status endpoint that load balancers and uptime
// monitors can poll.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/drivers-api/internal/utils/response"
)

const pingTimeout = 5 * time.Second

// Pinger is anything that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the body returned by Check.
type Status struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// Check handles GET /health
//
// Responds 200 when the database answers a ping within five seconds and
// 503 otherwise.
func Check(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		status := Status{Status: "healthy", Database: "healthy", Timestamp: time.Now().UTC()}
		code := http.StatusOK

		if err := db.Ping(ctx); err != nil {
			slog.Error("database health check failed", slog.String("error", err.Error()))
			status.Status = "unhealthy"
			status.Database = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		response.WriteJSON(w, code, status)
	}
}

// Package router wires every HTTP route to its handler and wraps the result
// in the global middleware stack.
package router

import (
	"log/slog"
	"net/http"

	"github.com/justinas/alice"

	"github.com/aanand-mishra/drivers-api/internal/config"
	"github.com/aanand-mishra/drivers-api/internal/http/handlers/driver"
	"github.com/aanand-mishra/drivers-api/internal/http/handlers/health"
	"github.com/aanand-mishra/drivers-api/internal/http/middleware"
	"github.com/aanand-mishra/drivers-api/internal/storage"
)

// New returns the application's http.Handler.
//
// Route table:
//
//	GET    /drivers/            → list drivers (?skip=&limit=)
//	GET    /drivers/{id}        → get one driver
//	POST   /createDriver/       → create a driver
//	DELETE /deleteDriver/{id}   → delete a driver
//	GET    /health              → liveness + database ping
func New(cfg *config.Config, log *slog.Logger, store storage.Storage) http.Handler {
	mux := http.NewServeMux()

	// {$} anchors the pattern so "/drivers/" does not swallow "/drivers/{id}".
	mux.HandleFunc("GET /drivers/{$}", driver.GetList(store))
	mux.HandleFunc("GET /drivers/{id}", driver.GetByID(store))
	mux.HandleFunc("POST /createDriver/{$}", driver.New(store))
	mux.HandleFunc("DELETE /deleteDriver/{id}", driver.Delete(store))

	mux.HandleFunc("GET /health", health.Check(store))

	return alice.New(
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recover(log),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	).Then(mux)
}

// Package storage defines the Storage interface that any database backend
// must satisfy. Handlers depend only on this interface.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/drivers-api/internal/types"
)

// ErrNotFound is returned when no driver matches the requested ID.
var ErrNotFound = errors.New("driver not found")

// Storage is the database contract.
//
// Every method receives the request context; implementations acquire a
// database session for the duration of the call and release it before
// returning, whatever the outcome.
type Storage interface {
	// ListDrivers returns drivers ordered by ID within the given window.
	// Returns an empty slice (not nil) if there are none.
	ListDrivers(ctx context.Context, page types.Page) ([]types.Driver, error)

	// GetDriverByID fetches a single driver by primary key.
	// Returns ErrNotFound if no such driver exists.
	GetDriverByID(ctx context.Context, id int64) (types.Driver, error)

	// CreateDriver inserts a new driver, filling in defaults for any nil
	// optional field, and returns the row as stored.
	CreateDriver(ctx context.Context, driver types.DriverCreate) (types.Driver, error)

	// DeleteDriverByID removes a driver and reports whether one was removed.
	DeleteDriverByID(ctx context.Context, id int64) (bool, error)

	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error
}

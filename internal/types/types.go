// Package types holds the shared data structures used across the
// application. Handlers, storage and utils all import it without depending
// on each other.
package types

// Defaults applied to a driver when the caller leaves a field out.
const (
	DefaultCountry  = "Unknown"
	DefaultTeam     = "none"
	DefaultIsActive = true
)

// Default pagination window for listing drivers.
const (
	DefaultSkip  = 0
	DefaultLimit = 100
)

// Driver is the persisted form of a driver record, and the shape every
// endpoint returns. ID is assigned by the database and never changes.
type Driver struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Country   string `json:"country"`
	Team      string `json:"team"`
	IsActive  bool   `json:"is_active"`
}

// DriverCreate is the request body accepted when creating a driver.
//
// The optional-looking fields are pointers so that "missing" can be told
// apart from the zero value: `"is_active": false` is a perfectly valid
// request, but leaving is_active out is not. validate:"required" on a
// pointer only checks that the key was present.
//
// Storage treats a nil Country, Team or IsActive as "use the default",
// which is how rows written by older clients still get sensible values.
type DriverCreate struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name"  validate:"required"`
	Country   *string `json:"country"    validate:"required"`
	Team      *string `json:"team"       validate:"required"`
	IsActive  *bool   `json:"is_active"  validate:"required"`
}

// Page is the naive offset/limit window applied when listing drivers.
type Page struct {
	Skip  int `json:"skip"  validate:"gte=0"`
	Limit int `json:"limit" validate:"gte=0"`
}

// DefaultPage returns the window used when the client sends no parameters.
func DefaultPage() Page {
	return Page{Skip: DefaultSkip, Limit: DefaultLimit}
}

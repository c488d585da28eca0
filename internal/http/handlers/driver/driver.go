// Package driver contains all HTTP handlers related to the Driver resource.
//
// Handlers are built by factory functions that receive their dependencies
// and return an http.HandlerFunc closing over them:
//
//	router.HandleFunc("GET /drivers/{id}", driver.GetByID(store))
//
// The factory runs once at startup; the returned closure runs per request.
package driver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/drivers-api/internal/storage"
	"github.com/aanand-mishra/drivers-api/internal/types"
	"github.com/aanand-mishra/drivers-api/internal/utils/response"
	"github.com/aanand-mishra/drivers-api/internal/validation"
)

const (
	msgNotFound = "Driver not found"
	msgDeleted  = "Driver deleted"
)

const maxBodyBytes = 1 << 20

// createKeys are the JSON keys DriverCreate accepts, spelled exactly.
var createKeys = jsonKeys(reflect.TypeOf(types.DriverCreate{}))

// New handles POST /createDriver/
//
// Request body (JSON), every key required:
//
//	{ "first_name": "Max", "last_name": "Verstappen",
//	  "country": "NL", "team": "RedBull", "is_active": true }
//
// Responds 200 with the stored driver, 413 when the body exceeds
// maxBodyBytes, 422 on an empty or malformed body or failed validation, 500
// on a database error.
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a driver")

		var in types.DriverCreate
		if !decodeBody(w, r, &in) {
			return
		}

		if !validRequest(w, in) {
			return
		}

		driver, err := store.CreateDriver(r.Context(), in)
		if err != nil {
			internalError(w, "error creating driver", err)
			return
		}

		slog.Info("driver created", slog.Int64("id", driver.ID))
		response.WriteJSON(w, http.StatusOK, driver)
	}
}

// GetByID handles GET /drivers/{id}
//
// Responds 200 with the driver, 404 {"detail":"Driver not found"} when it
// does not exist, 422 when {id} is not an integer.
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a driver", slog.Int64("id", id))

		driver, err := store.GetDriverByID(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.Detail(msgNotFound))
			return
		}
		if err != nil {
			internalError(w, "error getting driver", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, driver)
	}
}

// GetList handles GET /drivers/?skip=0&limit=100
//
// Returns a JSON array (never null) of drivers ordered by id. Both query
// parameters are optional and must be non-negative integers.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, ok := pageParams(w, r)
		if !ok {
			return
		}
		slog.Info("getting drivers",
			slog.Int("skip", page.Skip),
			slog.Int("limit", page.Limit))

		drivers, err := store.ListDrivers(r.Context(), page)
		if err != nil {
			internalError(w, "error getting drivers", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, drivers)
	}
}

// Delete handles DELETE /deleteDriver/{id}
//
// Responds 200 {"detail":"Driver deleted"}, or 404 when nothing was removed.
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a driver", slog.Int64("id", id))

		deleted, err := store.DeleteDriverByID(r.Context(), id)
		if err != nil {
			internalError(w, "error deleting driver", err)
			return
		}
		if !deleted {
			response.WriteJSON(w, http.StatusNotFound, response.Detail(msgNotFound))
			return
		}

		slog.Info("driver deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.Detail(msgDeleted))
	}
}

// decodeBody reads a single JSON object into dst. Only keys spelled exactly
// as in dst's json tags are kept; encoding/json alone would also accept
// "FIRST_NAME".
func decodeBody(w http.ResponseWriter, r *http.Request, dst *types.DriverCreate) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	var raw map[string]json.RawMessage
	err := dec.Decode(&raw)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusUnprocessableEntity,
			response.GeneralError(errors.New("request body is empty")))
		return false
	}
	if err == nil {
		if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = errors.New("body must contain a single JSON object")
			var tooLarge *http.MaxBytesError
			if errors.As(extra, &tooLarge) {
				err = extra
			}
		}
	}
	if bodyError(w, err) {
		return false
	}

	exact := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		if createKeys[k] {
			exact[k] = v
		}
	}

	b, err := json.Marshal(exact)
	if err == nil {
		err = json.Unmarshal(b, dst)
	}
	return !bodyError(w, err)
}

// bodyError writes the response for a failed body decode and reports
// whether it did.
func bodyError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.WriteJSON(w, http.StatusRequestEntityTooLarge,
			response.GeneralError(fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)))
		return true
	}

	response.WriteJSON(w, http.StatusUnprocessableEntity,
		response.GeneralError(fmt.Errorf("invalid request body: %w", err)))
	return true
}

func jsonKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}

// pathID parses the {id} path segment, writing a 422 if it is not an integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusUnprocessableEntity,
			response.GeneralError(fmt.Errorf("invalid id %q: must be an integer", raw)))
		return 0, false
	}

	return id, true
}

// pageParams reads skip/limit from the query string, falling back to the
// defaults for absent keys.
func pageParams(w http.ResponseWriter, r *http.Request) (types.Page, bool) {
	page := types.DefaultPage()
	q := r.URL.Query()

	for _, p := range []struct {
		key string
		dst *int
	}{
		{"skip", &page.Skip},
		{"limit", &page.Limit},
	} {
		raw := q.Get(p.key)
		if raw == "" {
			continue
		}

		n, err := strconv.Atoi(raw)
		if err != nil {
			response.WriteJSON(w, http.StatusUnprocessableEntity,
				response.GeneralError(fmt.Errorf("invalid %s %q: must be an integer", p.key, raw)))
			return types.Page{}, false
		}
		*p.dst = n
	}

	if !validRequest(w, page) {
		return types.Page{}, false
	}

	return page, true
}

// validRequest runs struct validation and writes the field-level 422
// response when it fails.
func validRequest(w http.ResponseWriter, v any) bool {
	err := validation.Struct(v)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.WriteJSON(w, http.StatusUnprocessableEntity, response.ValidationError(verrs))
		return false
	}

	internalError(w, "error validating request", err)
	return false
}

func internalError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.InternalError())
}

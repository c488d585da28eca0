// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// Error responses always carry a "detail" key:
//
//	{ "detail": "Driver not found" }
//
// Validation failures additionally list every offending field:
//
//	{ "detail": "validation failed",
//	  "errors": [ { "field": "first_name", "error": "is required" } ] }
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope returned for error cases and for
// plain confirmations such as {"detail": "Driver deleted"}.
type Response struct {
	Detail string       `json:"detail"`
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

const validationFailed = "validation failed"

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Detail wraps a fixed message into the standard Response shape.
func Detail(msg string) Response {
	return Response{Detail: msg}
}

// GeneralError wraps any Go error into the standard Response shape.
// Only use this for errors that are safe to show to a client (decode
// errors, bad parameters); internal failures go through InternalError.
func GeneralError(err error) Response {
	return Response{Detail: err.Error()}
}

// InternalError is the generic body for 500 responses. The real error is
// logged by the caller and never leaves the process.
func InternalError() Response {
	return Response{Detail: http.StatusText(http.StatusInternalServerError)}
}

// ValidationError converts validator.ValidationErrors into a field-level
// Response. Field names come from the validator's tag name func, so they
// match the JSON keys the client sent.
func ValidationError(errs validator.ValidationErrors) Response {
	fields := make([]FieldError, 0, len(errs))

	for _, e := range errs {
		var msg string
		switch e.ActualTag() {
		case "required":
			msg = "is required"
		case "gte":
			msg = fmt.Sprintf("must be greater than or equal to %s", e.Param())
		case "lte":
			msg = fmt.Sprintf("must be less than or equal to %s", e.Param())
		default:
			msg = "is invalid"
		}

		fields = append(fields, FieldError{Field: e.Field(), Error: msg})
	}

	return Response{
		Detail: validationFailed,
		Errors: fields,
	}
}

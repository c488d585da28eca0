// Package validation wraps the go-playground validator used for every
// request payload.
//
// A single *validator.Validate is shared by the whole process. Field names in
// errors are taken from the json tag, so clients see "first_name" rather than
// "FirstName".
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Struct validates s against its validate:"..." tags.
// On failure the returned error is a validator.ValidationErrors.
func Struct(s any) error {
	return validate.Struct(s)
}

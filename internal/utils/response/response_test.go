package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/drivers-api/internal/types"
	"github.com/aanand-mishra/drivers-api/internal/validation"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteJSON(rec, http.StatusNotFound, Detail("Driver not found"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"detail":"Driver not found"}`, rec.Body.String())
}

func TestGeneralAndInternalError(t *testing.T) {
	assert.Equal(t, "boom", GeneralError(errors.New("boom")).Detail)
	assert.Equal(t, "Internal Server Error", InternalError().Detail)
}

func TestValidationError(t *testing.T) {
	err := validation.Struct(types.DriverCreate{LastName: "Hamilton"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	resp := ValidationError(verrs)
	assert.Equal(t, "validation failed", resp.Detail)
	assert.Contains(t, resp.Errors, FieldError{Field: "first_name", Error: "is required"})
	assert.Contains(t, resp.Errors, FieldError{Field: "is_active", Error: "is required"})
	assert.Len(t, resp.Errors, 4)

	body, err := json.Marshal(Detail("ok"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"detail":"ok"}`, string(body))
}

func TestValidationError_Page(t *testing.T) {
	err := validation.Struct(types.Page{Skip: -1})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, FieldError{Field: "skip", Error: "must be greater than or equal to 0"}, resp.Errors[0])
}

package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes bounds the size of a decoded request body.
const MaxRequestBodyBytes = 1 << 20

// ErrNoInput is returned by DecodeJSON when the body is empty or is not a
// JSON document.
var ErrNoInput = errors.New("no input provided")

// Global validator instance for reuse. Field errors report JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldTypeError reports a JSON field whose value has the wrong type.
type FieldTypeError struct {
	Field string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("%s has invalid type", e.Field)
}

// DecodeJSON decodes the request body into v. It returns ErrNoInput for an
// empty or malformed body and a *FieldTypeError when a field has the wrong
// JSON type.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrNoInput
	}

	err := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodyBytes)).Decode(v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &FieldTypeError{Field: typeErr.Field}
	}
	return fmt.Errorf("%w: %v", ErrNoInput, err)
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

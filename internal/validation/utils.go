// Package validation runs struct-tag validation with the `validator`
// library and converts its errors into field-level errors keyed by
// configuration names rather than Go field names.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/statcast-tools/baseball-utilities/internal/errs"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// instance returns a validator that reports fields by their koanf tag,
// so a missing Config.Database.SSLMode shows up as "database.ssl_mode".
func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return strings.ToLower(fld.Name)
			}
			return name
		})
	})
	return validate
}

// Struct validates v and returns an *errs.ValidationError listing every
// failing field, or nil.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	return &errs.ValidationError{
		Message: "Validation failed",
		Errors:  FieldErrors(validationErrors),
	}
}

// FieldErrors converts validator errors into user-friendly messages.
func FieldErrors(validationErrors validator.ValidationErrors) []errs.FieldError {
	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))

	for _, err := range validationErrors {
		field := fieldPath(err.Namespace())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return fieldErrors
}

// fieldPath drops the root struct name: "Config.database.host" -> "database.host".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

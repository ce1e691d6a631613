package errs

import "strings"

// FieldError represents a single invalid setting.
// Example:
//
//	{ "field": "database.port", "error": "must not exceed 65535" }
type FieldError struct {
	// Field is the dotted config key the error relates to.
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ValidationError is returned when a struct fails tag validation.
type ValidationError struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// Error lists each failing field after the message, e.g.
// "Validation failed: database.host is required; database.port must be at least 1".
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}

	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+" "+fe.Error)
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// Is reports whether target is also a *ValidationError, regardless of
// its fields.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// Fields returns the names of every failing field.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

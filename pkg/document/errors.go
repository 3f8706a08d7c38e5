package document

import "fmt"

// ErrorClass classifies a validation failure for diagnostics and metrics.
type ErrorClass string

const (
	// ClassMissingField indicates a required field was absent with no default.
	ClassMissingField ErrorClass = "missing_field"

	// ClassWrongType indicates a present value failed its type check.
	ClassWrongType ErrorClass = "wrong_type"

	// ClassUnresolvedReference indicates a value that must be a key of some
	// registry was not found there.
	ClassUnresolvedReference ErrorClass = "unresolved_reference"

	// ClassKeyCollision indicates a value that must be a fresh key already
	// claims one.
	ClassKeyCollision ErrorClass = "key_collision"

	// ClassOverwrite indicates a registry entry was replaced by a later
	// registration. Overwrites are warnings, not errors.
	ClassOverwrite ErrorClass = "overwrite"

	// ClassNotImplemented indicates a recognized but unimplemented
	// configuration feature. Treated as a warning.
	ClassNotImplemented ErrorClass = "not_implemented"
)

// FieldError is a classified validation failure tied to one field of one
// record. It is logged and counted, never propagated to the loader.
type FieldError struct {
	// Class is the error classification.
	Class ErrorClass

	// Key is the field name that failed, if applicable.
	Key string

	// Message is the human-readable failure description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("[%s] field %q: %s", e.Class, e.Key, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Class, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is implements error equality checking for errors.Is.
func (e *FieldError) Is(target error) bool {
	t, ok := target.(*FieldError)
	if !ok {
		return false
	}
	return e.Class == t.Class
}

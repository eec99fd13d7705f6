package reservation

import "fmt"

// BookingError carries a machine-readable code for the write path.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeInvalidInput = "invalidInput"
	CodeNotFound     = "notFound"
	CodeRestricted   = "restricted"
	// CodeConflict means the interval was taken between evaluation and
	// commit. The advisory slot query cannot prevent this; the write
	// path detects it and rejects.
	CodeConflict = "conflict"
)

func NewInvalidInputError(msg string) error {
	return &BookingError{Code: CodeInvalidInput, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &BookingError{Code: CodeNotFound, Message: msg}
}

func NewRestrictedError(msg string) error {
	return &BookingError{Code: CodeRestricted, Message: msg}
}

func NewConflictError(msg string) error {
	return &BookingError{Code: CodeConflict, Message: msg}
}

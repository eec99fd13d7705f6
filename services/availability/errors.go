package availability

import "fmt"

// QueryError is a caller error: malformed input or an unknown room.
// Upstream fetch failures are never wrapped in it; those propagate as
// plain errors so they cannot be mistaken for "no conflicts".
type QueryError struct {
	Code    string
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeInvalidInput = "invalidInput"
	CodeNotFound     = "notFound"
)

func NewInvalidInputError(msg string) error {
	return &QueryError{Code: CodeInvalidInput, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &QueryError{Code: CodeNotFound, Message: msg}
}

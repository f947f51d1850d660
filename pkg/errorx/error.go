package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string

	// Field is the name of the request field which caused a validation error.
	Field string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

// NewField returns a BadRequest error keyed by the request field.
func NewField(field, format string, a ...any) Error {
	return Error{Code: BadRequest, Message: fmt.Sprintf(format, a...), Field: field}
}

func (e Error) Error() string {
	return e.Message
}

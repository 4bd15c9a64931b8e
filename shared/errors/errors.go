package errors

import (
	"errors"
	"fmt"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// ValidationError reports rejected user input: empty or oversized title/text,
// missing identity, unknown filter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("Validation error: %s", e.Message)
	}
	return fmt.Sprintf("Validation error: %s: %s", e.Field, e.Message)
}

// NotFoundError reports an operation on a discussion id that does not exist.
type NotFoundError struct {
	Id int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("discussion %d not found", e.Id)
}

// Check if err (or anything it wraps) is instance of T for custom error types
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// As is errors.As, re-exported so callers need a single errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

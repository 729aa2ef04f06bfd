package api

import (
	"errors"

	"github.com/minhvu/todo-api/internal/domain"
	"github.com/minhvu/todo-api/internal/service"
)

// isValidationError reports whether the error stems from malformed or
// missing entity fields and therefore warrants a 400 response rather
// than a 500.
func isValidationError(err error) bool {
	switch {
	case errors.Is(err, domain.ErrEmptyUsername),
		errors.Is(err, domain.ErrEmptyFullName),
		errors.Is(err, domain.ErrEmptyHashedPassword),
		errors.Is(err, domain.ErrEmptyTaskTitle),
		errors.Is(err, domain.ErrEmptyTaskUser),
		errors.Is(err, service.ErrEmptyPassword):
		return true
	default:
		return false
	}
}

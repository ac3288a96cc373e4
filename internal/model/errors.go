package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a lookup by ID finds no record.
var ErrNotFound = errors.New("not found")

// ValidationError lists the required fields missing from a submission.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// IsValidationError reports whether err (or any error in its chain) is a
// ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound                 = errors.New("record not found")
	ErrInsufficientAvailability = errors.New("not enough tickets available")
	ErrCategoryInUse            = errors.New("category is referenced by events")
	ErrEventInUse               = errors.New("event is referenced by tickets")
)

// ValidationError lists the offending fields by their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// PersistenceError wraps a storage failure. The transaction it happened in
// has been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// isDomainError reports whether err is one of the errors callers are expected
// to handle, as opposed to a storage failure.
func isDomainError(err error) bool {
	var verr *ValidationError
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientAvailability) ||
		errors.Is(err, ErrCategoryInUse) ||
		errors.Is(err, ErrEventInUse) ||
		errors.As(err, &verr)
}

func wrapPersistence(op string, err error) error {
	if err == nil || isDomainError(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

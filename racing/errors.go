// Package racing implements the race computation core: elapsed time and
// velocity calculation, entry ranking, the entry lifecycle, race copying and
// cross-race pigeon lookup. It is pure in-memory logic with no persistence.
package racing

import (
	"errors"
	"fmt"
)

// ErrInvalidTiming is returned when a trapping time is at or before the
// release time.
var ErrInvalidTiming = errors.New("trapping time must be after release time")

// ErrEntryNotFound is returned when an edit or delete references an entry id
// that does not exist in the race.
var ErrEntryNotFound = errors.New("entry not found")

// ValidationError reports a rejected draft: a missing required field, a
// malformed time, a non-positive distance, or a returned status without a
// trapping time. The race is left unchanged.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

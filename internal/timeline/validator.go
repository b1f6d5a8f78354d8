// Package timeline enforces the write-time rules for item and sub-item
// date pairs. Validation runs only on the fields a request actually
// carries; stored fields outside the request are never re-checked, so
// historical rows may violate the rules once "today" has moved on.
package timeline

import (
	"errors"

	"github.com/hammad535/task-manager/internal/dates"
)

var (
	ErrInvalidStart  = errors.New("invalid start date format")
	ErrInvalidEnd    = errors.New("invalid deadline/end date format")
	ErrPastDeadline  = errors.New("deadline cannot be in the past")
	ErrStartAfterEnd = errors.New("start date cannot be after deadline")
)

// Timeline holds the normalized dates to persist. A nil field was not
// part of the request; a pointer to "" clears the stored date.
type Timeline struct {
	Start *string
	End   *string
}

// Validate normalizes and checks an optional start/end pair against
// today (a local YYYY-MM-DD date, normally dates.Today(); injected so
// tests can pin the clock). On any failure nothing is returned to
// persist: the date fields of a request are all-or-nothing.
func Validate(start, end *string, today string) (Timeline, error) {
	var result Timeline

	if start != nil {
		normalized, err := dates.Normalize(*start)
		if err != nil {
			return Timeline{}, ErrInvalidStart
		}
		result.Start = &normalized
	}

	if end != nil {
		normalized, err := dates.Normalize(*end)
		if err != nil {
			return Timeline{}, ErrInvalidEnd
		}
		result.End = &normalized
	}

	if result.End != nil && *result.End != "" && *result.End < today {
		return Timeline{}, ErrPastDeadline
	}

	if result.Start != nil && result.End != nil &&
		*result.Start != "" && *result.End != "" && *result.Start > *result.End {
		return Timeline{}, ErrStartAfterEnd
	}

	return result, nil
}

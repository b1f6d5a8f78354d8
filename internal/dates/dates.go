// Package dates reduces heterogeneous date inputs to canonical local
// calendar dates (YYYY-MM-DD). Dates are deliberately kept in the
// process's local timezone end to end: converting through UTC is what
// causes a date picked near midnight to land on the previous day.
package dates

import (
	"errors"
	"regexp"
	"time"

	"github.com/hammad535/task-manager/internal/model"
)

// Layout is the canonical local date format.
const Layout = "2006-01-02"

// ErrInvalidDate is returned when a non-empty value cannot be parsed as
// a date. Callers must treat it as a validation failure, not as "no date".
var ErrInvalidDate = errors.New("invalid date")

var dateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// parseLayouts are tried in order for values that are not already plain
// calendar dates.
var parseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123,
}

// Normalize converts a date input to a local YYYY-MM-DD string.
// An empty value normalizes to "" with no error: that is the explicit
// "no date" signal. A value already in YYYY-MM-DD form is returned
// unchanged without re-parsing. Anything else is parsed as a date-time
// and reduced to its local calendar date.
func Normalize(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if dateOnly.MatchString(value) {
		return value, nil
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return FromTime(t), nil
		}
	}
	return "", ErrInvalidDate
}

// FromTime returns the calendar date of t as perceived in the process's
// local timezone.
func FromTime(t time.Time) string {
	return t.In(time.Local).Format(Layout)
}

// Today returns the current local calendar date.
func Today() string {
	return FromTime(time.Now())
}

// AddPeriod shifts a local date forward by one recurrence period:
// one day, seven days, or one calendar month. An unrecognized frequency
// falls back to one day. Month addition uses time.AddDate overflow
// normalization, so Jan 31 + 1 month lands in early March rather than
// clamping to the end of February.
func AddPeriod(date, frequency string) string {
	t, err := time.ParseInLocation(Layout, date, time.Local)
	if err != nil {
		return ""
	}
	switch frequency {
	case model.FrequencyDaily:
		t = t.AddDate(0, 0, 1)
	case model.FrequencyWeekly:
		t = t.AddDate(0, 0, 7)
	case model.FrequencyMonthly:
		t = t.AddDate(0, 1, 0)
	default:
		t = t.AddDate(0, 0, 1)
	}
	return t.Format(Layout)
}

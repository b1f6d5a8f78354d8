package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// LocalDate is a local calendar date (YYYY-MM-DD) backed by a Postgres
// date column. The pgx driver hands date values back as time.Time;
// scanning through this type keeps the models on plain calendar-date
// strings instead of leaking RFC3339 timestamps.
type LocalDate string

func (d *LocalDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case time.Time:
		// The driver's value is midnight in its own location; format it
		// there. Converting zones here could slide the calendar date.
		*d = LocalDate(v.Format(time.DateOnly))
	case string:
		*d = LocalDate(v)
	case []byte:
		*d = LocalDate(v)
	default:
		return fmt.Errorf("unsupported date value of type %T", value)
	}
	return nil
}

func (d LocalDate) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

func (d LocalDate) String() string {
	return string(d)
}

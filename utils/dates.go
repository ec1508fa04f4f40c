package utils

import (
	"time"
)

// UTCFormat is the fixed wire format for query-bound dates.
const UTCFormat = "2006-01-02T15:04:05Z"

// ParseUTC parses a date string in the fixed wire format. A bare
// "2006-01-02" is accepted and normalized to midnight UTC.
func ParseUTC(value string) (time.Time, error) {
	if t, err := time.Parse(UTCFormat, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ToUTC renders a time in the fixed wire format.
func ToUTC(t time.Time) string {
	return t.UTC().Format(UTCFormat)
}

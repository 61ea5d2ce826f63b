package utils

import (
	"time"
)

// timestampLayout renders modification times down to the minute.
const timestampLayout = "2006-01-02 15:04"

// FormatTimestamp returns the provided time formatted in the local time zone,
// or an empty string for the zero time.
func FormatTimestamp(value time.Time) string {
	if value.IsZero() {
		return EmptyString
	}
	return value.In(time.Local).Format(timestampLayout)
}

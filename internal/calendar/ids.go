package calendar

import (
	"time"

	"github.com/google/uuid"
)

// isoMillis matches the millisecond ISO-8601 form browsers emit for dates.
const isoMillis = "2006-01-02T15:04:05.000Z"

// NewRandomID returns a fresh random event id.
func NewRandomID() string {
	return uuid.NewString()
}

// DerivedID builds an id from the start instant and the title, e.g.
// "2024-01-02T09:00:00.000Z-Standup".
func DerivedID(start time.Time, title string) string {
	return start.UTC().Format(isoMillis) + "-" + title
}

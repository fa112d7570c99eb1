package visibility

import (
	"time"
)

//nolint:gochecknoglobals //parse order matters
var dateMarkerFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// MidnightToday returns the start of the day of now in now's location.
func MidnightToday(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ParseDateMarker parses an ISO-8601 date marker. Markers without an
// offset are read in loc.
func ParseDateMarker(marker string, loc *time.Location) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, marker); err == nil {
		return t, true
	}

	for _, format := range dateMarkerFormats {
		if t, err := time.ParseInLocation(format, marker, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// HidePast hides every entity dated before midnight of now. Entities with a
// malformed date marker stay as they are.
func HidePast[E Entity](entities []E, now time.Time) {
	today := MidnightToday(now)

	for _, entity := range entities {
		date, ok := ParseDateMarker(entity.DateMarker(), now.Location())
		if !ok {
			continue
		}

		if date.Before(today) {
			entity.SetHidden(true)
		}
	}
}

// IsPast reports whether date lies before midnight of now.
func IsPast(date time.Time, now time.Time) bool {
	return date.Before(MidnightToday(now))
}

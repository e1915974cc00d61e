package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date string matches none of the accepted layouts.
var ErrInvalidDate = errors.New("invalid date")

// zonedLayouts carry their own offset; the parsed instant is converted to
// the caller's location.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// naiveLayouts have no offset and are read as wall-clock time in the
// caller's location.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// DisplayLayout is the layout used when showing dates to the user.
const DisplayLayout = "02/01/2006 15:04"

// ParseDate parses s using the accepted layouts.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), nil
		}
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatDate renders a stored date string for display. Unparsable dates
// are returned unchanged.
func FormatDate(s string, loc *time.Location) string {
	t, err := ParseDate(s, loc)
	if err != nil {
		return s
	}

	return t.Format(DisplayLayout)
}

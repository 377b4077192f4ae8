package textnorm

import (
	"fmt"
	"strings"
	"time"
)

// Source exports write dates as free text, usually weekday plus month and
// day with the year kept elsewhere in the file. Layouts are tried in order.
var dateLayouts = []string{
	"January 2",
	"Jan 2",
	"2 January",
	"2 Jan",
	"January 2, 2006",
	"2006-01-02",
	"02/01/2006",
}

// ResolveDate resolves a free-text date against a supplied year. A leading
// weekday ("Saturday, August 18") is stripped before parsing; layouts that
// carry their own year ignore the supplied one.
func ResolveDate(raw string, year int) (time.Time, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	text = stripWeekday(text)

	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		if parsed.Year() == 0 {
			if year <= 0 {
				return time.Time{}, fmt.Errorf("date %q has no year and none was supplied", raw)
			}
			parsed = time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		}
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date format %q", raw)
}

func stripWeekday(text string) string {
	head, tail, found := strings.Cut(text, ",")
	if !found {
		return text
	}
	switch strings.ToLower(strings.TrimSpace(head)) {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return strings.TrimSpace(tail)
	default:
		return text
	}
}

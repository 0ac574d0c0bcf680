package cli

import (
	"fmt"
	"strings"
	"time"
)

// parseDueDate accepts the handful of shapes people actually type. Date-only
// input lands at local midnight so it groups under the right calendar day.
func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return time.Time{}, nil
	case "today":
		return startOfDay(time.Now()), nil
	case "tomorrow":
		return startOfDay(time.Now().AddDate(0, 0, 1)), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due date: %q (want YYYY-MM-DD, RFC3339, today, or tomorrow)", s)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package schedule

import (
	"fmt"
	"strings"
	"time"
)

// WeekKey scopes fairness history to one ISO week.
type WeekKey struct {
	Year int
	Week int
}

func (w WeekKey) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}

// dateLayouts are the label formats seen in stored availability, tried in
// order. Year-less labels assume the current year.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"1/2",
}

// WeekOf derives the ISO week of a date label. A label that matches no
// layout falls back to the week containing now; the second return
// distinguishes the fallback so callers can log degraded matches.
func WeekOf(dateLabel string, now time.Time) (WeekKey, bool) {
	label := strings.TrimSpace(dateLabel)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, label)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			t = t.AddDate(now.Year(), 0, 0)
		}
		y, w := t.ISOWeek()
		return WeekKey{Year: y, Week: w}, true
	}
	y, w := now.ISOWeek()
	return WeekKey{Year: y, Week: w}, false
}

// SameDate compares two date labels case-insensitively, preserving the
// stored casing for the caller.
func SameDate(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

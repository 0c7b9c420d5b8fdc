// README: Clock-string parsing and strict interval overlap.
package schedule

import (
	"strconv"
	"strings"
)

// ParseClock converts "HH:MM", optionally suffixed with AM/PM, to minutes
// since midnight. Hours of 13 or more are treated as already 24-hour and the
// suffix is ignored, so "19:00 PM" and "7:00 PM" both resolve to 1140.
// "12 AM" is midnight; "12 PM" stays noon.
//
// Anything unparseable resolves to (0, false). The zero fallback is load
// bearing: stored availability contains historical malformed strings, and a
// hard failure here would block matching for the whole pool. Callers log
// the fallback and carry on.
func ParseClock(s string) (int, bool) {
	text := strings.ToUpper(strings.TrimSpace(s))

	meridiem := ""
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(text, suffix) {
			meridiem = suffix
			text = strings.TrimSpace(strings.TrimSuffix(text, suffix))
			break
		}
	}

	hourStr, minuteStr, hasMinutes := strings.Cut(text, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil || hour < 0 {
		return 0, false
	}
	minute := 0
	if hasMinutes {
		minute, err = strconv.Atoi(strings.TrimSpace(minuteStr))
		if err != nil || minute < 0 || minute > 59 {
			return 0, false
		}
	}

	// Hours >= 13 are already 24-hour; never adjust them.
	if hour < 13 {
		switch meridiem {
		case "PM":
			if hour != 12 {
				hour += 12
			}
		case "AM":
			if hour == 12 {
				hour = 0
			}
		}
	}
	if hour > 23 {
		return 0, false
	}
	return hour*60 + minute, true
}

// Overlaps reports whether two half-open minute intervals intersect.
// Touching endpoints (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return max(aStart, bStart) < min(aEnd, bEnd)
}

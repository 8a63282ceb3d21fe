package venue

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var hoursPattern = regexp.MustCompile(`(?i)^\s*(\d{1,2})(?::(\d{2}))?\s*(AM|PM)\s*-\s*(\d{1,2})(?::(\d{2}))?\s*(AM|PM)\s*$`)

// IsOpen reports whether a venue with opening hours like "7AM - 9PM" is open
// at now. ok is false when the hours cannot be parsed. Ranges that close
// after midnight ("5PM - 2AM") wrap into the next day.
func IsOpen(hours string, now time.Time) (open, ok bool) {
	m := hoursPattern.FindStringSubmatch(hours)
	if m == nil {
		return false, false
	}

	start, ok1 := minuteOfDay(m[1], m[2], m[3])
	end, ok2 := minuteOfDay(m[4], m[5], m[6])
	if !ok1 || !ok2 {
		return false, false
	}

	cur := now.Hour()*60 + now.Minute()
	switch {
	case start == end:
		return true, true
	case start < end:
		return cur >= start && cur < end, true
	default:
		return cur >= start || cur < end, true
	}
}

func minuteOfDay(hour, minute, meridiem string) (int, bool) {
	h, err := strconv.Atoi(hour)
	if err != nil || h < 1 || h > 12 {
		return 0, false
	}
	m := 0
	if minute != "" {
		m, err = strconv.Atoi(minute)
		if err != nil || m > 59 {
			return 0, false
		}
	}
	h %= 12
	if strings.EqualFold(meridiem, "PM") {
		h += 12
	}
	return h*60 + m, true
}

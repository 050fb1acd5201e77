package present

import (
	"fmt"
	"strconv"
	"strings"
)

// AnyTimeLabel is shown when no time filter is active.
const AnyTimeLabel = "(any time)"

// FormatMinute renders a minute of day as a 12-hour clock ("3:07 PM").
// -1 renders as AnyTimeLabel.
func FormatMinute(minute int) string {
	if minute < 0 {
		return AnyTimeLabel
	}

	h, m := (minute/60)%24, minute%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, suffix)
}

// ParseClock turns "HH:MM" (24-hour) into a minute of day.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return h*60 + m, nil
}

package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// formatInterval renders whole minutes as "25" and anything finer as "1:30".
func formatInterval(value time.Duration) string {
	if value <= 0 {
		return ""
	}
	seconds := int(value / time.Second)
	if seconds%60 == 0 {
		return strconv.Itoa(seconds / 60)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// parseInterval accepts minutes ("25") or minutes and seconds ("1:30").
// An empty field is zero, which leaves the custom rule unconfigured.
func parseInterval(text string) (time.Duration, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, true
	}
	minutesText, secondsText, hasSeconds := strings.Cut(text, ":")
	minutes, ok := parseNonNegativeInt(minutesText)
	if !ok {
		return 0, false
	}
	seconds := 0
	if hasSeconds {
		if len(strings.TrimSpace(secondsText)) != 2 {
			return 0, false
		}
		seconds, ok = parseNonNegativeInt(secondsText)
		if !ok || seconds >= 60 {
			return 0, false
		}
	}
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, true
}

func formatSeconds(value time.Duration) string {
	if value <= 0 {
		return ""
	}
	return strconv.Itoa(int(value / time.Second))
}

func parseSeconds(text string) (time.Duration, bool) {
	seconds, ok := parseNonNegativeInt(text)
	if !ok {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

func parseNonNegativeInt(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, true
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}

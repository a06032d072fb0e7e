package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

// Minute arithmetic constants.
const (
	minutesPerDay    = 24 * 60
	noonMinutes      = 12 * 60
	lateNightMinutes = 22 * 60
)

// clockPattern matches a 12-hour clock reading like "6:30pm".
var clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})(am|pm)`)

// ToMinutes converts a 12-hour clock string to minutes after midnight.
// "midnight" and "noon" are accepted as literals. Unparsable input maps
// to 0 so a single bad timestamp never aborts a schedule build.
func ToMinutes(timeStr string) int {
	normalized := strings.ToLower(strings.TrimSpace(timeStr))
	if normalized == "" {
		return 0
	}

	// 12:00 is ambiguous in 12-hour notation, so both spellings are
	// resolved before the clock pattern runs.
	if normalized == "12:00am" || normalized == "midnight" {
		return 0
	}
	if normalized == "12:00pm" || normalized == "noon" {
		return noonMinutes
	}

	match := clockPattern.FindStringSubmatch(normalized)
	if match == nil {
		return 0
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])

	if match[3] == "pm" && hours < 12 {
		hours += 12
	} else if match[3] == "am" && hours == 12 {
		hours = 0
	}

	return hours*60 + minutes
}

// Duration returns the length of a show in minutes. An end time at or
// before the start is treated as a wrap past midnight.
func Duration(startTime, endTime string) int {
	diff := (ToMinutes(endTime) - ToMinutes(startTime)) % minutesPerDay
	if diff < 0 {
		diff += minutesPerDay
	}

	return diff
}

// IsLateNight reports whether a show starts at 10pm or later.
func IsLateNight(startTime string) bool {
	return ToMinutes(startTime) >= lateNightMinutes
}

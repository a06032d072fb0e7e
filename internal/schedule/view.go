package schedule

import (
	"sort"
	"strings"

	"github.com/alessandroseni/spotisync/internal/models"
)

// BuildView groups shows into the weekly view. Days follow the
// canonical Monday through Sunday order and each day's shows sort by
// start time, stable on ties. A day filter narrows the view to one
// weekday; a filter matching no data yields an empty view, which the
// caller reports as an empty result rather than an error.
func BuildView(shows []models.Show, dayFilter string) models.Schedule {
	byDay := make(map[string][]models.Show)
	for _, show := range shows {
		byDay[show.Day] = append(byDay[show.Day], show)
	}

	days := models.WeekDays
	if dayFilter != "" {
		days = []string{CapitalizeDay(dayFilter)}
	}

	view := models.Schedule{
		Shows:      shows,
		TotalShows: len(shows),
	}

	for _, day := range days {
		dayShows, ok := byDay[day]
		if !ok {
			continue
		}

		sort.SliceStable(dayShows, func(i, j int) bool {
			return ToMinutes(dayShows[i].StartTime) < ToMinutes(dayShows[j].StartTime)
		})

		view.Days = append(view.Days, models.DaySchedule{Day: day, Shows: dayShows})
	}

	return view
}

// CapitalizeDay normalizes a user-supplied day name: first letter
// upper, remainder lower.
func CapitalizeDay(day string) string {
	trimmed := strings.TrimSpace(day)
	if trimmed == "" {
		return ""
	}

	return strings.ToUpper(trimmed[:1]) + strings.ToLower(trimmed[1:])
}

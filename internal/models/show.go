// Package models defines the data types shared across the pipeline.
package models

// WeekDays holds the seven weekday names in schedule order.
var WeekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Show represents one scheduled program occupying a day/time slot.
// StartTime and EndTime use the canonical 12-hour form "H:MMam"/"H:MMpm".
type Show struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	ShowName  string `json:"showName"`
	Artist    string `json:"artist"`
}

// Key returns the identity triple used for deduplication.
func (s *Show) Key() string {
	return s.Day + "|" + s.StartTime + "|" + s.EndTime
}

// ScheduleRow is a pre-structured row exposed by the rendered schedule DOM,
// before time-range validation and artist extraction.
type ScheduleRow struct {
	Day       string `json:"day"`
	TimeRange string `json:"timeRange"`
	ShowName  string `json:"showName"`
}

// DaySchedule groups the shows of a single weekday for presentation.
type DaySchedule struct {
	Day   string `json:"day"`
	Shows []Show `json:"shows"`
}

// Schedule is the canonical deduplicated show list for one run.
type Schedule struct {
	Shows      []Show        `json:"shows"`
	Days       []DaySchedule `json:"days"`
	TotalShows int           `json:"totalShows"`
}

package schedule

import (
	"regexp"
	"strings"

	"github.com/alessandroseni/spotisync/internal/logger"
	"github.com/alessandroseni/spotisync/internal/models"
)

// Extractor converts pre-structured schedule rows from the renderer
// into shows. Rows come from a known markup schema, so this path is
// treated as higher fidelity than free-text parsing.
type Extractor struct {
	rangePattern *regexp.Regexp
	log          *logger.Logger
}

// NewExtractor creates an extractor with its time-range pattern compiled.
func NewExtractor(log *logger.Logger) *Extractor {
	return &Extractor{
		// A full time range like "10:00am - 12:00pm", nothing else on
		// the line
		rangePattern: regexp.MustCompile(`(?i)^\s*(\d{1,2}:\d{2}(?:am|pm))\s*-\s*(\d{1,2}:\d{2}(?:am|pm))\s*$`),
		log:          log,
	}
}

// ExtractRows converts renderer rows into shows. Rows with an unknown
// day label, a malformed time range, or a blank title are skipped, and
// the skip count is returned for reporting.
func (e *Extractor) ExtractRows(rows []models.ScheduleRow) ([]models.Show, int) {
	var shows []models.Show
	skipped := 0

	for _, row := range rows {
		day, ok := matchWeekday(row.Day)
		if !ok {
			e.log.Warn("skipping row with unknown day label", "day", row.Day)
			skipped++

			continue
		}

		match := e.rangePattern.FindStringSubmatch(row.TimeRange)
		if match == nil {
			e.log.Warn("skipping row with invalid time range", "day", day, "time_range", row.TimeRange)
			skipped++

			continue
		}

		showName := strings.TrimSpace(row.ShowName)
		if showName == "" {
			e.log.Warn("skipping row with empty show name", "day", day, "time_range", row.TimeRange)
			skipped++

			continue
		}

		shows = append(shows, newShow(day, match[1], match[2], showName))
	}

	return shows, skipped
}

// Helper functions

// newShow builds a Show with its times lowercased for stable identity
// keys and the artist derived from the title.
func newShow(day, startTime, endTime, showName string) models.Show {
	return models.Show{
		Day:       day,
		StartTime: strings.ToLower(startTime),
		EndTime:   strings.ToLower(endTime),
		ShowName:  showName,
		Artist:    ExtractArtist(showName),
	}
}

// matchWeekday normalizes a day label to its canonical capitalized
// form, matching case-insensitively.
func matchWeekday(label string) (string, bool) {
	trimmed := strings.TrimSpace(label)
	for _, day := range models.WeekDays {
		if strings.EqualFold(trimmed, day) {
			return day, true
		}
	}

	return "", false
}

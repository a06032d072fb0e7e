// Package schedule implements schedule extraction for the station's
// rendered page: structured-row conversion, free-text parsing, time
// arithmetic, artist derivation, and the merge into a canonical weekly
// show list.
package schedule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alessandroseni/spotisync/internal/config"
	"github.com/alessandroseni/spotisync/internal/logger"
	"github.com/alessandroseni/spotisync/internal/models"
)

// Extraction errors.
var (
	ErrNoScheduleContent = errors.New("no schedule content found in rendered page")
)

// Pipeline ties the extraction stages together: structured rows first,
// the free-text cascade when coverage falls short, then the merge.
type Pipeline struct {
	extractor *Extractor
	parser    *TextParser
	cfg       config.ExtractionConfig
	log       *logger.Logger
}

// NewPipeline creates a pipeline with the given extraction tuning.
func NewPipeline(cfg config.ExtractionConfig, log *logger.Logger) *Pipeline {
	return &Pipeline{
		extractor: NewExtractor(log),
		parser:    NewTextParser(cfg.AltPassThreshold, log),
		cfg:       cfg,
		log:       log,
	}
}

// Stats captures extraction counts for reporting.
type Stats struct {
	StructuredShows int
	SkippedRows     int
	TextShows       int
	TotalShows      int
	TextParseUsed   bool
}

// String returns a one-line summary of the extraction counts.
func (s *Stats) String() string {
	return fmt.Sprintf(
		"Extraction{Structured: %d, Skipped: %d, Text: %d, Total: %d}",
		s.StructuredShows,
		s.SkippedRows,
		s.TextShows,
		s.TotalShows,
	)
}

// Run produces the canonical show list for one render of the page.
// Structured rows are authoritative: when they reach the completeness
// threshold, text parsing is skipped entirely. The returned error is
// terminal only when neither structured rows nor a schedule-bearing
// text block exist.
func (p *Pipeline) Run(rawText string, rows []models.ScheduleRow) ([]models.Show, *Stats, error) {
	stats := &Stats{}

	structured, skipped := p.extractor.ExtractRows(rows)
	stats.StructuredShows = len(structured)
	stats.SkippedRows = skipped

	if len(structured) >= p.cfg.CompletenessThreshold {
		p.log.Info("structured rows complete, skipping text parse",
			"shows", len(structured), "threshold", p.cfg.CompletenessThreshold)
		merged := Merge(structured, nil)
		stats.TotalShows = len(merged)

		return merged, stats, nil
	}

	if len(structured) > 0 {
		p.log.Warn("structured rows below threshold, parsing text as well",
			"shows", len(structured), "threshold", p.cfg.CompletenessThreshold)
	}

	scheduleLine := p.findScheduleLine(rawText)
	if scheduleLine == "" {
		if len(structured) == 0 {
			return nil, stats, ErrNoScheduleContent
		}

		p.log.Warn("no schedule line in rendered text, keeping structured rows only")
		merged := Merge(structured, nil)
		stats.TotalShows = len(merged)

		return merged, stats, nil
	}

	p.log.Debug("schedule line located", "chars", len(scheduleLine))

	textShows := p.parser.Parse(scheduleLine)
	stats.TextShows = len(textShows)
	stats.TextParseUsed = true

	merged := Merge(structured, textShows)
	stats.TotalShows = len(merged)

	p.reportDayCoverage(merged)

	return merged, stats, nil
}

// findScheduleLine scans the rendered text for the single long line
// carrying the weekly schedule. The station's page collapses the whole
// grid into one text run, so a day name plus length identifies it.
func (p *Pipeline) findScheduleLine(rawText string) string {
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		if !strings.Contains(lower, "monday") && !strings.Contains(lower, "tuesday") {
			continue
		}

		if len(line) > p.cfg.MinScheduleLineChars {
			return line
		}
	}

	return ""
}

// reportDayCoverage warns about weekdays with no recovered shows.
func (p *Pipeline) reportDayCoverage(shows []models.Show) {
	counts := make(map[string]int)
	for _, show := range shows {
		counts[show.Day]++
	}

	for _, day := range models.WeekDays {
		if counts[day] == 0 {
			p.log.Warn("no shows recovered for day", "day", day)
		}
	}
}

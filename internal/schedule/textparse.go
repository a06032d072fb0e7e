package schedule

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/alessandroseni/spotisync/internal/logger"
	"github.com/alessandroseni/spotisync/internal/models"
)

// TextParser recovers shows from the rendered page text when the
// structured source is absent or incomplete. It runs a fixed sequence
// of extraction strategies of decreasing confidence, folding every
// pass into one accumulator that suppresses duplicate (day, start,
// end) identities.
type TextParser struct {
	altPassThreshold int
	log              *logger.Logger

	dayPattern       *regexp.Regexp
	rangePattern     *regexp.Regexp
	lateNightPattern *regexp.Regexp
	timeTokenPattern *regexp.Regexp
}

// NewTextParser creates a parser with all patterns compiled. The
// threshold controls when the substring-bounded fallback pass joins
// in: it runs only if the primary pass found fewer shows than this.
func NewTextParser(altPassThreshold int, log *logger.Logger) *TextParser {
	return &TextParser{
		altPassThreshold: altPassThreshold,
		log:              log,
		// Weekday names, for locating day windows in one scan
		dayPattern: regexp.MustCompile(`(?i)monday|tuesday|wednesday|thursday|friday|saturday|sunday`),
		// A hyphen-joined time range like "1:00pm - 2:00pm"
		rangePattern: regexp.MustCompile(`(?i)(\d{1,2}:\d{2}(?:am|pm))\s*-\s*(\d{1,2}:\d{2}(?:am|pm))`),
		// A pm start rolling over into an am end, e.g. "10:00pm - 12:00am"
		lateNightPattern: regexp.MustCompile(`(?i)(\d{1,2}:\d{2}pm)\s*-\s*(\d{1,2}:\d{2}am)`),
		// A standalone clock token, used for title clipping and pairing
		timeTokenPattern: regexp.MustCompile(`(?i)\d{1,2}:\d{2}(?:am|pm)`),
	}
}

// Parse runs the full pass sequence over one block of schedule text
// and returns the accumulated shows in discovery order.
func (tp *TextParser) Parse(scheduleText string) []models.Show {
	acc := newAccumulator()

	acc.addAll(tp.passDayWindows(scheduleText))
	primary := acc.count()
	tp.log.Debug("day window pass complete", "shows", primary)

	if primary < tp.altPassThreshold {
		tp.log.Info("primary pass below threshold, trying substring windows",
			"shows", primary, "threshold", tp.altPassThreshold)
		acc.addAll(tp.passSubstringWindows(scheduleText))
	}

	acc.addAll(tp.passLateNight(scheduleText))
	acc.addAll(tp.passAdjacentTokens(scheduleText))
	acc.addAll(tp.passLongShows(scheduleText))

	tp.log.Debug("text parsing complete", "shows", acc.count())

	return acc.shows
}

// passDayWindows extracts shows from day windows located with a single
// case-insensitive scan for weekday names.
func (tp *TextParser) passDayWindows(text string) []models.Show {
	var shows []models.Show

	occurrences := tp.dayPattern.FindAllStringIndex(text, -1)
	for _, day := range models.WeekDays {
		window, ok := scanWindow(text, occurrences, day)
		if !ok {
			continue
		}

		shows = append(shows, tp.extractRanges(window, day)...)
	}

	return shows
}

// passSubstringWindows re-derives day windows with plain substring
// search and reruns the range extraction. Some renderings interleave
// markup that defeats the scanning pattern but not an index lookup.
func (tp *TextParser) passSubstringWindows(text string) []models.Show {
	var shows []models.Show

	for _, day := range models.WeekDays {
		window, ok := substringWindow(text, day)
		if !ok {
			continue
		}

		shows = append(shows, tp.extractRanges(window, day)...)
	}

	return shows
}

// passLateNight targets pm starts rolling over into am ends. The close
// boundary of a day window can truncate a show spanning midnight, so
// the general range pattern under-matches these.
func (tp *TextParser) passLateNight(text string) []models.Show {
	var shows []models.Show

	for _, day := range models.WeekDays {
		window, ok := substringWindow(text, day)
		if !ok {
			continue
		}

		shows = append(shows, tp.extractWithPattern(tp.lateNightPattern, window, day)...)
	}

	return shows
}

// passAdjacentTokens pairs consecutive clock tokens joined by pure
// punctuation. Schedules that separate times with an en dash or tilde
// instead of a hyphen fail the range pattern but still carry a valid
// start and end; the title then follows the second token.
func (tp *TextParser) passAdjacentTokens(text string) []models.Show {
	var shows []models.Show

	for _, day := range models.WeekDays {
		window, ok := substringWindow(text, day)
		if !ok {
			continue
		}

		tokens := tp.timeTokenPattern.FindAllStringIndex(window, -1)
		for i := 0; i+1 < len(tokens); i++ {
			if !isSeparatorOnly(window[tokens[i][1]:tokens[i+1][0]]) {
				continue
			}

			titleEnd := len(window)
			if i+2 < len(tokens) {
				titleEnd = tokens[i+2][0]
			}

			title := tp.clipTitle(window[tokens[i+1][1]:titleEnd])
			if title == "" {
				continue
			}

			start := window[tokens[i][0]:tokens[i][1]]
			end := window[tokens[i+1][0]:tokens[i+1][1]]
			shows = append(shows, newShow(day, start, end, title))
		}
	}

	return shows
}

// passLongShows reruns the range extraction and keeps only entries
// longer than an hour. A stricter title boundary in earlier passes can
// split or miss long-form shows.
func (tp *TextParser) passLongShows(text string) []models.Show {
	var shows []models.Show

	for _, day := range models.WeekDays {
		window, ok := substringWindow(text, day)
		if !ok {
			continue
		}

		for _, show := range tp.extractRanges(window, day) {
			if Duration(show.StartTime, show.EndTime) > longShowMinutes {
				shows = append(shows, show)
			}
		}
	}

	return shows
}

// extractRanges finds "start - end title" triples in a day window.
func (tp *TextParser) extractRanges(window, day string) []models.Show {
	return tp.extractWithPattern(tp.rangePattern, window, day)
}

// extractWithPattern runs a two-group time-range pattern over a day
// window. The title for each match runs from the end of the range to
// the start of the next one, clipped at the first clock token inside
// it so trailing schedule text never leaks into a show name.
func (tp *TextParser) extractWithPattern(pattern *regexp.Regexp, window, day string) []models.Show {
	var shows []models.Show

	matches := pattern.FindAllStringSubmatchIndex(window, -1)
	for i, m := range matches {
		titleEnd := len(window)
		if i+1 < len(matches) {
			titleEnd = matches[i+1][0]
		}

		title := tp.clipTitle(window[m[1]:titleEnd])
		if title == "" {
			continue
		}

		shows = append(shows, newShow(day, window[m[2]:m[3]], window[m[4]:m[5]], title))
	}

	return shows
}

// clipTitle trims a candidate title, cutting at the next clock token.
func (tp *TextParser) clipTitle(fragment string) string {
	if loc := tp.timeTokenPattern.FindStringIndex(fragment); loc != nil {
		fragment = fragment[:loc[0]]
	}

	return strings.TrimSpace(fragment)
}

// Helper functions

// longShowMinutes is the duration floor for the final pass.
const longShowMinutes = 60

// accumulator collects shows across passes, suppressing duplicates by
// the (day, start, end) identity key.
type accumulator struct {
	shows []models.Show
	seen  map[string]bool
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(map[string]bool)}
}

func (a *accumulator) addAll(shows []models.Show) {
	for _, show := range shows {
		key := show.Key()
		if a.seen[key] {
			continue
		}

		a.seen[key] = true
		a.shows = append(a.shows, show)
	}
}

func (a *accumulator) count() int {
	return len(a.shows)
}

// scanWindow returns the slice of text from the first occurrence of
// day to the next occurrence of any other weekday, given the weekday
// occurrences found by the day pattern.
func scanWindow(text string, occurrences [][]int, day string) (string, bool) {
	start := -1
	for _, occ := range occurrences {
		if strings.EqualFold(text[occ[0]:occ[1]], day) {
			start = occ[0]
			break
		}
	}
	if start == -1 {
		return "", false
	}

	end := len(text)
	for _, occ := range occurrences {
		if occ[0] > start && !strings.EqualFold(text[occ[0]:occ[1]], day) {
			end = occ[0]
			break
		}
	}

	return text[start:end], true
}

// substringWindow slices text from the first occurrence of day to the
// nearest later occurrence of any other weekday. Matching here is
// case-sensitive on the capitalized day names.
func substringWindow(text, day string) (string, bool) {
	start := strings.Index(text, day)
	if start == -1 {
		return "", false
	}

	end := len(text)
	for _, other := range models.WeekDays {
		if other == day {
			continue
		}

		pos := strings.Index(text[start+1:], other)
		if pos == -1 {
			continue
		}

		if abs := start + 1 + pos; abs < end {
			end = abs
		}
	}

	return text[start:end], true
}

// isSeparatorOnly reports whether the text between two clock tokens is
// punctuation or spacing with at least one visible character. Letters
// or digits mean the tokens belong to different shows.
func isSeparatorOnly(between string) bool {
	if strings.TrimSpace(between) == "" {
		return false
	}

	for _, r := range between {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

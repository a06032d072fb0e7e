// Package report renders run output for the terminal and produces the
// markdown schedule artifact. All renderers return strings so callers
// decide where they go.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alessandroseni/spotisync/internal/models"
	"github.com/alessandroseni/spotisync/internal/schedule"
)

const (
	dividerWidth = 80

	// profileGenreLimit and profileSampleSize cap the genre list and
	// the artist sample printed with the library summary.
	profileGenreLimit = 10
	profileSampleSize = 10
)

// RenderSchedule renders the weekly view for the terminal, one block
// per day with shows in start order. Late-night slots get a moon mark.
func RenderSchedule(view models.Schedule) string {
	if len(view.Days) == 0 {
		return warningStyle.Render("❌ No shows to display")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("📻 THE LOT RADIO WEEKLY SCHEDULE"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("=", dividerWidth)))
	b.WriteString("\n")

	for _, day := range view.Days {
		b.WriteString("\n")
		b.WriteString(dayStyle.Render(day.Day))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(strings.Repeat("-", dividerWidth)))
		b.WriteString("\n")

		for _, show := range day.Shows {
			b.WriteString(fmt.Sprintf("  %s: %s (%s)",
				timeStyle.Render(show.StartTime+" - "+show.EndTime),
				show.ShowName,
				artistStyle.Render(show.Artist)))

			if schedule.IsLateNight(show.StartTime) {
				b.WriteString(" " + lateNightStyle.Render(lateNightMark))
			}

			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("📻 Total shows: %d\n", view.TotalShows))

	return b.String()
}

// RenderProfile prints the library summary: artist total, top genres
// and a small sample pulled from the most popular tier down.
func RenderProfile(profile *models.ListeningProfile) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎵 YOUR SPOTIFY LIBRARY"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("=", dividerWidth)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total Artists: %d\n", profile.TotalArtists))

	if len(profile.TopGenres) > 0 {
		b.WriteString("\nTop Genres:\n")

		genres := profile.TopGenres
		if len(genres) > profileGenreLimit {
			genres = genres[:profileGenreLimit]
		}

		for _, genre := range genres {
			b.WriteString(fmt.Sprintf("  - %s (%d artists)\n", genre.Genre, genre.Count))
		}
	}

	if sample := sampleArtists(profile, profileSampleSize); len(sample) > 0 {
		b.WriteString("\nArtist Sample:\n")

		for _, artist := range sample {
			b.WriteString(fmt.Sprintf("  - %s (popularity %d) %s\n",
				artist.Name, artist.Popularity, dimStyle.Render(genreLine(artist.Genres))))
		}
	}

	return b.String()
}

// sampleArtists walks the tiers from most to least popular and takes
// the first n artists it sees.
func sampleArtists(profile *models.ListeningProfile, n int) []models.Artist {
	var sample []models.Artist

	for _, tier := range profile.Tiers {
		for _, artist := range tier.Artists {
			if len(sample) == n {
				return sample
			}

			sample = append(sample, artist)
		}
	}

	return sample
}

// genreLine joins up to two genres for the one-line artist sample.
func genreLine(genres []string) string {
	if len(genres) == 0 {
		return "no genres"
	}

	if len(genres) > 2 {
		genres = genres[:2]
	}

	return strings.Join(genres, ", ")
}

// RenderAnalysis prints the compatibility verdict with its provenance
// line underneath.
func RenderAnalysis(analysis *models.Analysis) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🤖 MUSIC COMPATIBILITY ANALYSIS"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("=", dividerWidth)))
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(analysis.Text, "\n"))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s/%s, %d tokens", analysis.Provider, analysis.Model, analysis.TokensUsed)))
	b.WriteString("\n")

	return b.String()
}

// DayCount is one line of the per-day breakdown in the run summary.
type DayCount struct {
	Day   string
	Shows int
}

// Summary aggregates the counts reported at the end of a run.
type Summary struct {
	RunID          string
	TotalShows     int
	DayCounts      []DayCount
	StructuredRows int
	SkippedRows    int
	TextParseUsed  bool
	ProfileArtists int
	SourceCounts   map[string]int
	AnalysisModel  string
	AnalysisTokens int
	Duration       time.Duration
}

// NewSummary seeds a summary with the show counts from the view. The
// caller fills in the rest of the run's numbers.
func NewSummary(view models.Schedule) Summary {
	s := Summary{TotalShows: view.TotalShows}

	for _, day := range view.Days {
		s.DayCounts = append(s.DayCounts, DayCount{Day: day.Day, Shows: len(day.Shows)})
	}

	return s
}

// Render formats the end-of-run summary block.
func (s Summary) Render() string {
	var b strings.Builder

	b.WriteString("------------------------------------------------\n")
	b.WriteString("📊 Summary Report\n")
	b.WriteString("------------------------------------------------\n")

	if s.RunID != "" {
		fmt.Fprintf(&b, "Run ID: %s\n", s.RunID)
	}

	fmt.Fprintf(&b, "Total Shows: %d\n", s.TotalShows)

	for _, day := range s.DayCounts {
		fmt.Fprintf(&b, "  %-10s %d\n", day.Day, day.Shows)
	}

	fmt.Fprintf(&b, "Structured Rows: %d\n", s.StructuredRows)
	fmt.Fprintf(&b, "Skipped Rows: %d\n", s.SkippedRows)
	fmt.Fprintf(&b, "Text Parse Used: %v\n", s.TextParseUsed)

	if s.ProfileArtists > 0 {
		fmt.Fprintf(&b, "Profile Artists: %d\n", s.ProfileArtists)

		for _, source := range sortedSources(s.SourceCounts) {
			fmt.Fprintf(&b, "  %-10s %d\n", source, s.SourceCounts[source])
		}
	}

	if s.AnalysisTokens > 0 {
		fmt.Fprintf(&b, "Analysis Tokens: %d (%s)\n", s.AnalysisTokens, s.AnalysisModel)
	}

	if s.Duration > 0 {
		fmt.Fprintf(&b, "Total Duration: %s\n", s.Duration.Round(time.Millisecond))
	}

	b.WriteString("------------------------------------------------")

	return b.String()
}

func sortedSources(counts map[string]int) []string {
	sources := make([]string, 0, len(counts))
	for source := range counts {
		sources = append(sources, source)
	}

	sort.Strings(sources)

	return sources
}

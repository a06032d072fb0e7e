package integration

import (
	"path/filepath"
	"testing"

	"github.com/alessandroseni/spotisync/internal/config"
	"github.com/alessandroseni/spotisync/internal/logger"
	"github.com/alessandroseni/spotisync/internal/models"
	"github.com/alessandroseni/spotisync/internal/renderer"
	"github.com/alessandroseni/spotisync/internal/schedule"
)

// runPipeline renders a saved page and extracts its shows, mirroring
// the first two phases of the lotradio command.
func runPipeline(t *testing.T, fixture string) ([]models.Show, *schedule.Stats) {
	t.Helper()

	cfg := config.DefaultConfig()
	log := logger.NewDiscardLogger()

	page, err := renderer.NewRenderer(cfg.Station, log).RenderFile(filepath.Join("..", "fixtures", fixture))
	if err != nil {
		t.Fatalf("RenderFile failed: %v", err)
	}

	shows, stats, err := schedule.NewPipeline(cfg.Extraction, log).Run(page.Text, page.Rows)
	if err != nil {
		t.Fatalf("Pipeline run failed: %v", err)
	}

	return shows, stats
}

func artistByShow(shows []models.Show) map[string]string {
	artists := make(map[string]string, len(shows))
	for _, show := range shows {
		artists[show.ShowName] = show.Artist
	}

	return artists
}

func TestScheduleFlow_StructuredPage(t *testing.T) {
	shows, stats := runPipeline(t, "schedule_page.html")

	// 1. Extraction counts
	if len(shows) != 14 {
		t.Fatalf("Expected 14 shows, got %d", len(shows))
	}

	if stats.StructuredShows != 14 {
		t.Errorf("Expected 14 structured shows, got %d", stats.StructuredShows)
	}

	if stats.SkippedRows != 2 {
		t.Errorf("Expected 2 skipped rows, got %d", stats.SkippedRows)
	}

	if stats.TextParseUsed {
		t.Error("Expected text parse to be skipped for a page without a schedule line")
	}

	// 2. Artist derivation
	artists := artistByShow(shows)

	checks := map[string]string{
		"Morning Mass w/ Turtle Bugg":     "Turtle Bugg",
		"DJ Spinoza":                      "Spinoza",
		"Radio Gemini":                    "Gemini",
		"Dome of Doom presents Lapgan":    "Lapgan",
		"Morning Service: Love Injection": "Love Injection",
	}

	for show, want := range checks {
		if got := artists[show]; got != want {
			t.Errorf("Expected artist %q for %q, got %q", want, show, got)
		}
	}

	// 3. Weekly view
	view := schedule.BuildView(shows, "")

	if len(view.Days) != 7 {
		t.Fatalf("Expected 7 days in view, got %d", len(view.Days))
	}

	if view.Days[0].Day != "Monday" {
		t.Errorf("Expected Monday first, got %s", view.Days[0].Day)
	}

	if view.Days[6].Day != "Sunday" {
		t.Errorf("Expected Sunday last, got %s", view.Days[6].Day)
	}
}

func TestScheduleFlow_TextOnlyPage(t *testing.T) {
	shows, stats := runPipeline(t, "rendered_text_page.html")

	// 1. Extraction counts
	if len(shows) != 17 {
		t.Fatalf("Expected 17 shows, got %d", len(shows))
	}

	if stats.StructuredShows != 0 {
		t.Errorf("Expected no structured shows, got %d", stats.StructuredShows)
	}

	if !stats.TextParseUsed {
		t.Error("Expected text parse to run for a page without structured rows")
	}

	if stats.TextShows != 17 {
		t.Errorf("Expected 17 text-parsed shows, got %d", stats.TextShows)
	}

	// 2. Day coverage
	view := schedule.BuildView(shows, "")

	expected := map[string]int{
		"Monday":    3,
		"Tuesday":   2,
		"Wednesday": 2,
		"Thursday":  2,
		"Friday":    3,
		"Saturday":  3,
		"Sunday":    2,
	}

	if len(view.Days) != len(expected) {
		t.Fatalf("Expected %d days in view, got %d", len(expected), len(view.Days))
	}

	for _, day := range view.Days {
		if want := expected[day.Day]; len(day.Shows) != want {
			t.Errorf("Expected %d shows for %s, got %d", want, day.Day, len(day.Shows))
		}
	}

	// 3. Artist derivation from free text
	artists := artistByShow(shows)

	if got := artists["Transmission w/ Analog Soul"]; got != "Analog Soul" {
		t.Errorf("Expected artist 'Analog Soul', got %q", got)
	}

	if got := artists["Block Party: Papi Juice"]; got != "Papi Juice" {
		t.Errorf("Expected artist 'Papi Juice', got %q", got)
	}

	// 4. Late-night slots span midnight
	lateNight := 0
	for _, show := range shows {
		if schedule.IsLateNight(show.StartTime) {
			lateNight++
		}
	}

	if lateNight != 2 {
		t.Errorf("Expected 2 late-night shows, got %d", lateNight)
	}
}

func TestScheduleFlow_DayFilter(t *testing.T) {
	shows, _ := runPipeline(t, "rendered_text_page.html")

	view := schedule.BuildView(shows, "friday")

	if len(view.Days) != 1 {
		t.Fatalf("Expected 1 day in filtered view, got %d", len(view.Days))
	}

	if view.Days[0].Day != "Friday" {
		t.Errorf("Expected Friday, got %s", view.Days[0].Day)
	}

	if len(view.Days[0].Shows) != 3 {
		t.Fatalf("Expected 3 Friday shows, got %d", len(view.Days[0].Shows))
	}

	if view.Days[0].Shows[0].StartTime != "2:00pm" {
		t.Errorf("Expected earliest Friday show at 2:00pm, got %s", view.Days[0].Shows[0].StartTime)
	}
}

func TestScheduleFlow_UniqueIdentities(t *testing.T) {
	shows, _ := runPipeline(t, "rendered_text_page.html")

	seen := make(map[string]bool, len(shows))
	for _, show := range shows {
		if seen[show.Key()] {
			t.Errorf("Duplicate show identity %s", show.Key())
		}

		seen[show.Key()] = true
	}
}

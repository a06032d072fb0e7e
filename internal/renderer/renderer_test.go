package renderer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alessandroseni/spotisync/internal/config"
	"github.com/alessandroseni/spotisync/internal/logger"
)

const schedulePageHTML = `<!DOCTYPE html>
<html>
<head><title>The Lot Radio</title></head>
<body>
  <div class="header">Listen Live</div>
  <div class="schedule">
    <div class="schedule-day">
      <h3>Monday</h3>
      <div class="schedule-row">
        <span class="schedule-time">10:00am - 12:00pm</span>
        <span class="schedule-show">Morning Mix with Carla</span>
      </div>
      <div class="schedule-row">
        <span class="schedule-time">12:00pm - 2:00pm</span>
        <span class="schedule-show">Lunch Special</span>
      </div>
    </div>
    <div class="schedule-day">
      <h3>Tuesday</h3>
      <div class="schedule-row">
        <span class="schedule-time">6:00pm - 8:00pm</span>
        <span class="schedule-show">Deep House Radio: DJ Nova</span>
      </div>
    </div>
  </div>
</body>
</html>`

func newTestRenderer() *Renderer {
	return NewRenderer(config.DefaultConfig().Station, logger.NewDiscardLogger())
}

func writeTempPage(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp page: %v", err)
	}

	return path
}

func TestRenderer_RenderFile(t *testing.T) {
	renderer := newTestRenderer()

	result, err := renderer.RenderFile(writeTempPage(t, schedulePageHTML))
	if err != nil {
		t.Fatalf("RenderFile failed: %v", err)
	}

	if len(result.Rows) != 3 {
		t.Fatalf("Expected 3 structured rows, got %d", len(result.Rows))
	}

	first := result.Rows[0]
	if first.Day != "Monday" {
		t.Errorf("Expected day Monday, got %s", first.Day)
	}

	if first.TimeRange != "10:00am - 12:00pm" {
		t.Errorf("Expected time range '10:00am - 12:00pm', got %q", first.TimeRange)
	}

	if first.ShowName != "Morning Mix with Carla" {
		t.Errorf("Expected show 'Morning Mix with Carla', got %q", first.ShowName)
	}

	third := result.Rows[2]
	if third.Day != "Tuesday" || third.ShowName != "Deep House Radio: DJ Nova" {
		t.Errorf("Expected Tuesday row, got %+v", third)
	}
}

func TestRenderer_RenderFile_TextIncludesScheduleContent(t *testing.T) {
	renderer := newTestRenderer()

	result, err := renderer.RenderFile(writeTempPage(t, schedulePageHTML))
	if err != nil {
		t.Fatalf("RenderFile failed: %v", err)
	}

	if !strings.Contains(result.Text, "Monday") {
		t.Error("Expected visible text to contain day names")
	}

	if !strings.Contains(result.Text, "Morning Mix with Carla") {
		t.Error("Expected visible text to contain show titles")
	}

	if strings.Contains(result.Text, "schedule-row") {
		t.Error("Expected visible text to exclude markup")
	}
}

func TestRenderer_RenderFile_NoStructuredRows(t *testing.T) {
	renderer := newTestRenderer()

	plain := `<html><body><p>Monday 10:00am - 12:00pm Morning Mix</p></body></html>`
	result, err := renderer.RenderFile(writeTempPage(t, plain))
	if err != nil {
		t.Fatalf("RenderFile failed: %v", err)
	}

	if len(result.Rows) != 0 {
		t.Errorf("Expected no structured rows, got %d", len(result.Rows))
	}

	if !strings.Contains(result.Text, "Morning Mix") {
		t.Error("Expected text extraction to still work")
	}
}

func TestRenderer_RenderFile_Missing(t *testing.T) {
	renderer := newTestRenderer()

	if _, err := renderer.RenderFile("/nonexistent/page.html"); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestRenderer_Render_UsesLocalFile(t *testing.T) {
	cfg := config.DefaultConfig().Station
	cfg.LocalFile = writeTempPage(t, schedulePageHTML)

	renderer := NewRenderer(cfg, logger.NewDiscardLogger())

	result, err := renderer.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(result.Rows) != 3 {
		t.Errorf("Expected 3 rows from local file, got %d", len(result.Rows))
	}
}

package report

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/alessandroseni/spotisync/internal/models"
)

func TestAlignTables(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "basic table",
			input: `| Time | Show |
| --- | --- |
| 1:00pm - 2:00pm | A |`,
			expected: `| Time            | Show |
| --------------- | ---- |
| 1:00pm - 2:00pm | A    |`,
		},
		{
			name: "wide runes",
			input: `| Time | Show |
| --- | --- |
| 10:00pm 🌙 | Night |`,
			expected: `| Time       | Show  |
| ---------- | ----- |
| 10:00pm 🌙 | Night |`,
		},
		{
			name: "minimum column width",
			input: `| a |
| - |
| b |`,
			expected: `| a   |
| --- |
| b   |`,
		},
		{
			name: "tables keep independent widths",
			input: `| A | B |
| --- | --- |
| aaaa | b |

text between

| X |
| --- |
| longer |`,
			expected: `| A    | B   |
| ---- | --- |
| aaaa | b   |

text between

| X      |
| ------ |
| longer |`,
		},
		{
			name:     "no tables pass through",
			input:    "# Heading\n\nplain text",
			expected: "# Heading\n\nplain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlignTables(tt.input); got != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, got)
			}
		})
	}
}

func TestScheduleMarkdown(t *testing.T) {
	view := makeView(
		models.Show{Day: "Monday", StartTime: "9:00am", EndTime: "11:00am", ShowName: "Morning Mix", Artist: "Morning Mix"},
		models.Show{Day: "Monday", StartTime: "10:00pm", EndTime: "12:00am", ShowName: "Night Drive: DJ Nova", Artist: "DJ Nova"},
		models.Show{Day: "Sunday", StartTime: "1:00pm", EndTime: "3:00pm", ShowName: "Sunday Service", Artist: "Sunday Service"},
	)

	doc := ScheduleMarkdown(view)

	for _, want := range []string{
		"# The Lot Radio - Weekly Schedule",
		"## Monday",
		"## Sunday",
		"9:00am - 11:00am",
		"10:00pm - 12:00am " + lateNightMark,
		"Total shows: 3",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Expected document to contain %q, got:\n%s", want, doc)
		}
	}

	if monday, sunday := strings.Index(doc, "## Monday"), strings.Index(doc, "## Sunday"); monday > sunday {
		t.Error("Expected Monday before Sunday")
	}

	assertTablesAligned(t, doc)
}

func TestScheduleMarkdownEscapesPipes(t *testing.T) {
	view := makeView(
		models.Show{Day: "Monday", StartTime: "1:00pm", EndTime: "3:00pm", ShowName: "Dub | Plates", Artist: "Dub | Plates"},
	)

	doc := ScheduleMarkdown(view)

	if !strings.Contains(doc, `Dub \| Plates`) {
		t.Errorf("Expected escaped pipe in show name, got:\n%s", doc)
	}

	assertTablesAligned(t, doc)
}

// assertTablesAligned checks that every contiguous table in doc has
// lines of identical display width.
func assertTablesAligned(t *testing.T, doc string) {
	t.Helper()

	width := -1
	for _, line := range strings.Split(doc, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "|") {
			width = -1
			continue
		}

		w := runewidth.StringWidth(line)
		if width == -1 {
			width = w
			continue
		}

		if w != width {
			t.Errorf("Expected table line width %d, got %d for %q", width, w, line)
		}
	}
}

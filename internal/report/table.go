package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/alessandroseni/spotisync/internal/models"
	"github.com/alessandroseni/spotisync/internal/schedule"
)

// lateNightMark flags shows starting at 22:00 or later.
const lateNightMark = "🌙"

// minColumnWidth keeps separator rows at least three dashes wide.
const minColumnWidth = 3

// separatorPattern matches one cell of a markdown separator row.
var separatorPattern = regexp.MustCompile(`^:?-+:?$`)

// ScheduleMarkdown renders the weekly view as a markdown document with
// one aligned table per day. The artifact is plain text, no ANSI codes.
func ScheduleMarkdown(view models.Schedule) string {
	var b strings.Builder

	b.WriteString("# The Lot Radio - Weekly Schedule\n")

	for _, day := range view.Days {
		fmt.Fprintf(&b, "\n## %s\n\n", day.Day)
		b.WriteString("| Time | Show | Artist |\n")
		b.WriteString("| --- | --- | --- |\n")

		for _, show := range day.Shows {
			timeCell := show.StartTime + " - " + show.EndTime
			if schedule.IsLateNight(show.StartTime) {
				timeCell += " " + lateNightMark
			}

			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				escapeCell(timeCell), escapeCell(show.ShowName), escapeCell(show.Artist))
		}
	}

	fmt.Fprintf(&b, "\nTotal shows: %d\n", view.TotalShows)

	return AlignTables(b.String())
}

// escapeCell keeps pipes inside show names from splitting the row.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// AlignTables pads every markdown table in content so each column has
// a uniform display width. Widths are measured with runewidth, so
// emoji and other wide runes line up too. Non-table lines pass
// through untouched.
func AlignTables(content string) string {
	lines := strings.Split(content, "\n")

	var out []string
	var table []string

	flush := func() {
		if len(table) > 0 {
			out = append(out, alignTable(table)...)
			table = nil
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "|") {
			table = append(table, line)
			continue
		}

		flush()
		out = append(out, line)
	}

	flush()

	return strings.Join(out, "\n")
}

// alignTable rebuilds one run of table lines with padded cells.
func alignTable(lines []string) []string {
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, splitRow(line))
	}

	widths := columnWidths(rows)

	aligned := make([]string, 0, len(rows))
	for _, row := range rows {
		aligned = append(aligned, buildRow(row, widths))
	}

	return aligned
}

// splitRow breaks a table line into trimmed cells, dropping the empty
// fragments outside the outer pipes. Escaped pipes stay inside their
// cell.
func splitRow(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	var cells []string
	for _, part := range parts {
		if n := len(cells); n > 0 && strings.HasSuffix(cells[n-1], `\`) {
			cells[n-1] += "|" + part
			continue
		}

		cells = append(cells, part)
	}

	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}

	return cells
}

// columnWidths returns the display width of the widest cell per
// column. Separator rows do not count toward the measurement.
func columnWidths(rows [][]string) []int {
	var widths []int

	for _, row := range rows {
		if isSeparatorRow(row) {
			continue
		}

		for i, cell := range row {
			w := runewidth.StringWidth(cell)
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}

	for i, w := range widths {
		if w < minColumnWidth {
			widths[i] = minColumnWidth
		}
	}

	return widths
}

func isSeparatorRow(row []string) bool {
	if len(row) == 0 {
		return false
	}

	for _, cell := range row {
		if !separatorPattern.MatchString(cell) {
			return false
		}
	}

	return true
}

// buildRow renders one row with every cell padded to its column
// width. Separator cells are stretched with dashes instead of spaces.
func buildRow(row []string, widths []int) string {
	separator := isSeparatorRow(row)

	var b strings.Builder
	b.WriteString("|")

	for i, cell := range row {
		width := minColumnWidth
		if i < len(widths) {
			width = widths[i]
		}

		if separator {
			b.WriteString(" " + strings.Repeat("-", width) + " |")
			continue
		}

		pad := width - runewidth.StringWidth(cell)
		if pad < 0 {
			pad = 0
		}

		b.WriteString(" " + cell + strings.Repeat(" ", pad) + " |")
	}

	return b.String()
}

package report

import (
	"fmt"
	"regexp"
	"strings"
)

// RowError describes one malformed cell in the schedule document.
type RowError struct {
	Line    int
	Field   string
	Value   string
	Message string
}

// ValidationStats counts the data rows seen during validation.
type ValidationStats struct {
	TotalRows   int
	ValidRows   int
	InvalidRows int
}

// ValidationResult is the outcome of checking a schedule document.
type ValidationResult struct {
	Errors   []RowError
	Warnings []RowError
	Stats    ValidationStats
	IsValid  bool
}

// timeRangePattern matches the Time column: two clock times joined by
// a dash, optionally followed by the late-night mark.
var timeRangePattern = regexp.MustCompile(`(?i)^\d{1,2}:\d{2}(?:am|pm) - \d{1,2}:\d{2}(?:am|pm)( ` + lateNightMark + `)?$`)

// ValidateSchedule checks every data row in the document's tables:
// three columns, a well formed time range and a non-empty show name.
// A missing artist only warns. Header and separator rows are skipped.
func ValidateSchedule(content string) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") {
			continue
		}

		cells := splitRow(trimmed)
		if isSeparatorRow(cells) || isHeaderRow(cells) {
			continue
		}

		lineNo := i + 1
		result.Stats.TotalRows++

		errs, warns := validateRow(lineNo, cells)
		result.Errors = append(result.Errors, errs...)
		result.Warnings = append(result.Warnings, warns...)

		if len(errs) > 0 {
			result.Stats.InvalidRows++
		} else {
			result.Stats.ValidRows++
		}
	}

	result.IsValid = len(result.Errors) == 0

	return result
}

func isHeaderRow(cells []string) bool {
	return len(cells) > 0 && cells[0] == "Time"
}

func validateRow(lineNo int, cells []string) (errs, warns []RowError) {
	if len(cells) < 3 {
		errs = append(errs, RowError{
			Line:    lineNo,
			Field:   "row",
			Value:   strings.Join(cells, " | "),
			Message: fmt.Sprintf("expected 3 columns, got %d", len(cells)),
		})

		return errs, warns
	}

	if !timeRangePattern.MatchString(cells[0]) {
		errs = append(errs, RowError{
			Line:    lineNo,
			Field:   "time",
			Value:   cells[0],
			Message: "not a valid time range",
		})
	}

	if cells[1] == "" {
		errs = append(errs, RowError{
			Line:    lineNo,
			Field:   "show",
			Message: "show name is empty",
		})
	}

	if cells[2] == "" {
		warns = append(warns, RowError{
			Line:    lineNo,
			Field:   "artist",
			Message: "artist is empty",
		})
	}

	return errs, warns
}

// String summarizes the result on one line.
func (r *ValidationResult) String() string {
	status := "✅ VALID"
	if !r.IsValid {
		status = "❌ INVALID"
	}

	return fmt.Sprintf("%s | Total: %d | Valid: %d | Invalid: %d | Warnings: %d",
		status, r.Stats.TotalRows, r.Stats.ValidRows, r.Stats.InvalidRows, len(r.Warnings))
}

// RenderErrors lists every error, one line each.
func (r *ValidationResult) RenderErrors() string {
	return renderIssues("Errors", r.Errors)
}

// RenderWarnings lists every warning, one line each.
func (r *ValidationResult) RenderWarnings() string {
	return renderIssues("Warnings", r.Warnings)
}

func renderIssues(title string, issues []RowError) string {
	if len(issues) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d):\n", title, len(issues))

	for _, issue := range issues {
		fmt.Fprintf(&b, "  line %d [%s]: %s", issue.Line, issue.Field, issue.Message)

		if issue.Value != "" {
			fmt.Fprintf(&b, " (%q)", issue.Value)
		}

		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

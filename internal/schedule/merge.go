package schedule

import "github.com/alessandroseni/spotisync/internal/models"

// Merge combines structured and text-parsed shows into the canonical
// list. Structured rows are seeded first and win on identity overlap;
// text-parsed rows are purely additive for the gaps. Identity is the
// (day, start, end) key, so no further conflict resolution is needed.
func Merge(structured, textParsed []models.Show) []models.Show {
	merged := make([]models.Show, 0, len(structured)+len(textParsed))
	seen := make(map[string]bool, len(structured)+len(textParsed))

	for _, show := range structured {
		if seen[show.Key()] {
			continue
		}

		seen[show.Key()] = true
		merged = append(merged, show)
	}

	for _, show := range textParsed {
		if seen[show.Key()] {
			continue
		}

		seen[show.Key()] = true
		merged = append(merged, show)
	}

	return merged
}

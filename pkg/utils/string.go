package utils

import "strings"

// CollapseWhitespace replaces runs of whitespace with single spaces
// and trims the ends.
func CollapseWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// Chunk splits items into consecutive groups of at most size. A size
// below 1 yields everything in one group.
func Chunk(items []string, size int) [][]string {
	if len(items) == 0 {
		return nil
	}

	if size < 1 {
		return [][]string{items}
	}

	var groups [][]string
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}

		groups = append(groups, items[start:end])
	}

	return groups
}

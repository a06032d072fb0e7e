package schedule

import "strings"

// artistPrefixes are leading tokens that mark a show format rather than
// a performer name. Order matters: only the first matching prefix is
// stripped.
var artistPrefixes = []string{"DJ ", "The ", "Radio ", "Show "}

// ExtractArtist derives the performer name from a show title. Titles
// follow a few recurring conventions on the schedule: "Show Name:
// Artist", "Show Name with Artist" (or "w/"), and "Show Name presents
// Artist". Each convention narrows the string before the next rule
// runs. Collaboration markers like " b2b " are kept intact since they
// name a shared set, not a container show.
func ExtractArtist(showName string) string {
	artist := showName

	// "Show Name: Artist(s)" keeps everything after the first colon,
	// unless that segment is blank.
	if _, after, found := strings.Cut(artist, ":"); found {
		if trimmed := strings.TrimSpace(after); trimmed != "" {
			artist = trimmed
		}
	}

	if idx := strings.LastIndex(artist, " with "); idx != -1 {
		artist = artist[idx+len(" with "):]
	} else if idx := strings.LastIndex(artist, " w/ "); idx != -1 {
		artist = artist[idx+len(" w/ "):]
	}

	if idx := strings.LastIndex(artist, " presents "); idx != -1 {
		artist = artist[idx+len(" presents "):]
	}

	for _, prefix := range artistPrefixes {
		if strings.HasPrefix(artist, prefix) {
			artist = artist[len(prefix):]
			break
		}
	}

	return strings.TrimSpace(artist)
}

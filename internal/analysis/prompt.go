package analysis

import (
	"fmt"
	"strings"

	"github.com/alessandroseni/spotisync/internal/models"
)

// Prompt layout limits.
const (
	promptArtistsPerTier  = 10
	promptGenresPerArtist = 3
)

// systemPrompt frames the model as a curator and pins its output to
// plain terminal text.
const systemPrompt = "You are a music expert specializing in electronic music, underground scenes, and radio curation. You have deep knowledge of music genres, artist relationships, and can identify musical similarities across different styles. Format your output for terminal display, not markdown."

// analysisTasks closes the user prompt with the questions to answer
// and the formatting rules for the answer.
const analysisTasks = `
## ANALYSIS TASKS:

1. **EXACT MATCHES**: Find ONLY exact matches between the user's Spotify artists and Lot Radio artists who are ACTUALLY playing this week. Do not include artists who are not on this week's schedule.

2. **RECOMMENDATIONS**: Based on the user's music taste, recommend 5-10 Lot Radio shows they would likely enjoy, explaining the musical/genre connections.

3. **OVERALL SUMMARY**: Provide a concise summary of whether this user would enjoy The Lot Radio and which specific shows to prioritize.

## OUTPUT FORMAT REQUIREMENTS:
- Format your response for a terminal display (no markdown, no bold, no italics)
- Use clear section headers with ASCII decorations (e.g., "==== EXACT MATCHES ====")
- Use simple bullet points with dashes (-)
- Keep explanations concise and to the point
- For each recommendation or match, clearly state: DAY, TIME, SHOW NAME, and REASON
- Do not use markdown formatting as this will be displayed in a terminal

Please provide a structured response that covers all these areas with specific examples and reasoning.
`

// buildUserPrompt lays out the listening profile and the weekly
// schedule side by side, then appends the analysis tasks. Tiers list
// only their strongest artists so the request stays compact.
func buildUserPrompt(profile *models.ListeningProfile, schedule *models.Schedule) string {
	var b strings.Builder

	b.WriteString("You are a music expert analyzing compatibility between a user's Spotify listening habits and The Lot Radio NYC's schedule.\n\n")

	b.WriteString("## USER'S SPOTIFY DATA:\n")
	b.WriteString(fmt.Sprintf("Total Artists: %d\n", profile.TotalArtists))
	b.WriteString(fmt.Sprintf("Top Genres: %s\n", formatTopGenres(profile.TopGenres)))
	b.WriteString("\nArtist Breakdown by Popularity:\n")

	for _, tier := range profile.Tiers {
		b.WriteString(fmt.Sprintf("\n%s (%d artists):\n", tier.Name, tier.Count))

		artists := tier.Artists
		if len(artists) > promptArtistsPerTier {
			artists = artists[:promptArtistsPerTier]
		}

		for _, artist := range artists {
			b.WriteString(fmt.Sprintf("- %s (%d popularity) - %s\n", artist.Name, artist.Popularity, artistGenres(artist.Genres)))
		}
	}

	b.WriteString(fmt.Sprintf("\n## THE LOT RADIO SCHEDULE:\nTotal Shows: %d\n", schedule.TotalShows))
	b.WriteString("\nShows by Day:\n")

	for _, day := range schedule.Days {
		if len(day.Shows) == 0 {
			continue
		}

		b.WriteString(fmt.Sprintf("\n%s (%d shows):\n", day.Day, len(day.Shows)))
		for _, show := range day.Shows {
			b.WriteString(fmt.Sprintf("- %s-%s: %s (Artist: %s)\n", show.StartTime, show.EndTime, show.ShowName, show.Artist))
		}
	}

	b.WriteString(analysisTasks)

	return b.String()
}

// formatTopGenres renders the genre tally as "genre (count)" pairs.
func formatTopGenres(genres []models.GenreCount) string {
	if len(genres) == 0 {
		return "none"
	}

	parts := make([]string, 0, len(genres))
	for _, g := range genres {
		parts = append(parts, fmt.Sprintf("%s (%d)", g.Genre, g.Count))
	}

	return strings.Join(parts, ", ")
}

// artistGenres renders the first few genres of one artist.
func artistGenres(genres []string) string {
	if len(genres) == 0 {
		return "No genres"
	}

	if len(genres) > promptGenresPerArtist {
		genres = genres[:promptGenresPerArtist]
	}

	return strings.Join(genres, ", ")
}

package profile

import (
	"sort"

	"github.com/alessandroseni/spotisync/internal/models"
)

const (
	// Popularity tier boundaries.
	highPopularityMin   = 70
	mediumPopularityMin = 40

	// topTierArtists caps how many artists each tier carries forward.
	topTierArtists = 20

	// topGenreCount caps the genre list of the profile.
	topGenreCount = 15
)

// BuildProfile condenses the collected artists into popularity tiers,
// top genres and per-source counts. Empty tiers are omitted.
func BuildProfile(artists []models.Artist) *models.ListeningProfile {
	listening := &models.ListeningProfile{
		TotalArtists: len(artists),
		SourceCounts: sourceCounts(artists),
		TopGenres:    topGenres(artists, topGenreCount),
	}

	var high, medium, low []models.Artist
	for _, artist := range artists {
		switch {
		case artist.Popularity >= highPopularityMin:
			high = append(high, artist)
		case artist.Popularity >= mediumPopularityMin:
			medium = append(medium, artist)
		default:
			low = append(low, artist)
		}
	}

	for _, tier := range []struct {
		name    string
		artists []models.Artist
	}{
		{models.TierHigh, high},
		{models.TierMedium, medium},
		{models.TierLow, low},
	} {
		if len(tier.artists) == 0 {
			continue
		}

		listening.Tiers = append(listening.Tiers, models.PopularityTier{
			Name:    tier.name,
			Count:   len(tier.artists),
			Artists: topByPopularity(tier.artists, topTierArtists),
		})
	}

	return listening
}

// topByPopularity returns the limit most popular artists, most popular
// first. Ties keep collection order.
func topByPopularity(artists []models.Artist, limit int) []models.Artist {
	sorted := make([]models.Artist, len(artists))
	copy(sorted, artists)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Popularity > sorted[j].Popularity
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	return sorted
}

// topGenres counts genre occurrences across all artists, unweighted,
// and returns the limit most frequent. Ties order alphabetically.
func topGenres(artists []models.Artist, limit int) []models.GenreCount {
	counts := make(map[string]int)
	for _, artist := range artists {
		for _, genre := range artist.Genres {
			counts[genre]++
		}
	}

	genres := make([]models.GenreCount, 0, len(counts))
	for genre, count := range counts {
		genres = append(genres, models.GenreCount{Genre: genre, Count: count})
	}

	sort.Slice(genres, func(i, j int) bool {
		if genres[i].Count != genres[j].Count {
			return genres[i].Count > genres[j].Count
		}

		return genres[i].Genre < genres[j].Genre
	})

	if len(genres) > limit {
		genres = genres[:limit]
	}

	return genres
}

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alessandroseni/spotisync/internal/models"
)

// genreSummaryLimit caps the genre tally exposed to callers.
const genreSummaryLimit = 20

// Stats summarizes the stored snapshot.
type Stats struct {
	Tracks      int
	Albums      int
	Artists     int
	LastUpdated time.Time
	DataExists  bool
}

// Stats counts the stored rows. DataExists stays false unless the
// three library files are all present.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	for _, name := range []string{tracksFile, albumsFile, artistsFile} {
		if _, err := os.Stat(filepath.Join(s.dataDir, name)); err != nil {
			return stats, nil
		}
	}

	stats.DataExists = true

	tracks, err := s.LoadTracks()
	if err != nil {
		return nil, err
	}
	stats.Tracks = len(tracks)

	albums, err := s.LoadAlbums()
	if err != nil {
		return nil, err
	}
	stats.Albums = len(albums)

	artists, err := s.LoadTopArtists()
	if err != nil {
		return nil, err
	}
	stats.Artists = len(artists)

	if updated, err := s.LastUpdated(); err == nil {
		stats.LastUpdated = updated
	}

	return stats, nil
}

// LastUpdated returns the refresh timestamp recorded in the profile
// file.
func (s *Store) LastUpdated() (time.Time, error) {
	records, err := s.readCSV(profileFile)
	if err != nil {
		return time.Time{}, err
	}

	if len(records) == 0 || len(records[0]) < len(profileColumns) {
		return time.Time{}, ErrNoSnapshot
	}

	updated, err := time.Parse(time.RFC3339, records[0][2])
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse last_updated: %w", err)
	}

	return updated, nil
}

// IsStale reports whether the snapshot is older than maxAge. A missing
// or unreadable profile counts as stale.
func (s *Store) IsStale(maxAge time.Duration) bool {
	updated, err := s.LastUpdated()
	if err != nil {
		return true
	}

	return time.Since(updated) > maxAge
}

// GenreSummary tallies genres across the stored files. Top-artist
// genres weigh double; ties order by name.
func (s *Store) GenreSummary() ([]models.GenreCount, error) {
	counts := make(map[string]int)

	tracks, err := s.LoadTracks()
	if err != nil {
		return nil, err
	}
	for _, track := range tracks {
		tallyGenres(counts, track.Genres, 1)
	}

	albums, err := s.LoadAlbums()
	if err != nil {
		return nil, err
	}
	for _, album := range albums {
		tallyGenres(counts, album.Genres, 1)
	}

	artists, err := s.LoadTopArtists()
	if err != nil {
		return nil, err
	}
	for _, artist := range artists {
		tallyGenres(counts, strings.Join(artist.Genres, ", "), 2)
	}

	summary := make([]models.GenreCount, 0, len(counts))
	for genre, count := range counts {
		summary = append(summary, models.GenreCount{Genre: genre, Count: count})
	}

	sort.SliceStable(summary, func(i, j int) bool {
		if summary[i].Count != summary[j].Count {
			return summary[i].Count > summary[j].Count
		}

		return summary[i].Genre < summary[j].Genre
	})

	if len(summary) > genreSummaryLimit {
		summary = summary[:genreSummaryLimit]
	}

	return summary, nil
}

func tallyGenres(counts map[string]int, joined string, weight int) {
	for _, genre := range splitGenres(joined) {
		counts[genre] += weight
	}
}

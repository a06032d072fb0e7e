// Package store persists the library snapshot as CSV files in a data
// directory and reports its freshness.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alessandroseni/spotisync/internal/models"
)

// Snapshot file names inside the data directory.
const (
	tracksFile   = "saved_tracks.csv"
	albumsFile   = "saved_albums.csv"
	artistsFile  = "top_artists.csv"
	profileFile  = "user_profile.csv"
	manifestFile = "snapshot.manifest"
)

// ErrNoSnapshot indicates the data directory holds no usable snapshot.
var ErrNoSnapshot = errors.New("no library snapshot in data directory")

// Column orders are part of the snapshot format and stay fixed.
var (
	trackColumns   = []string{"track_id", "name", "artists", "album", "genres", "added_at", "popularity", "spotify_url"}
	albumColumns   = []string{"album_id", "name", "artists", "genres", "release_date", "total_tracks", "added_at", "spotify_url"}
	artistColumns  = []string{"artist_id", "name", "genres", "popularity", "time_range", "spotify_url"}
	profileColumns = []string{"user_id", "display_name", "last_updated"}
)

// Store reads and writes the CSV snapshot of the user's library.
type Store struct {
	dataDir string
}

// NewStore creates a store rooted at the given data directory.
func NewStore(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// DataDir returns the directory the snapshot lives in.
func (s *Store) DataDir() string {
	return s.dataDir
}

// SaveTracks writes the saved-tracks file, header included even when
// the library is empty.
func (s *Store) SaveTracks(tracks []models.SavedTrack) error {
	rows := make([][]string, 0, len(tracks)+1)
	rows = append(rows, trackColumns)

	for _, t := range tracks {
		rows = append(rows, []string{
			t.ID,
			t.Name,
			t.Artists,
			t.Album,
			t.Genres,
			t.AddedAt,
			strconv.Itoa(t.Popularity),
			t.SpotifyURL,
		})
	}

	return s.writeCSV(tracksFile, rows)
}

// LoadTracks reads the saved-tracks file. A missing file reads as an
// empty library.
func (s *Store) LoadTracks() ([]models.SavedTrack, error) {
	records, err := s.readCSV(tracksFile)
	if err != nil {
		return nil, err
	}

	tracks := make([]models.SavedTrack, 0, len(records))
	for _, rec := range records {
		if len(rec) < len(trackColumns) {
			continue
		}

		tracks = append(tracks, models.SavedTrack{
			ID:         rec[0],
			Name:       rec[1],
			Artists:    rec[2],
			Album:      rec[3],
			Genres:     rec[4],
			AddedAt:    rec[5],
			Popularity: atoi(rec[6]),
			SpotifyURL: rec[7],
		})
	}

	return tracks, nil
}

// SaveAlbums writes the saved-albums file.
func (s *Store) SaveAlbums(albums []models.SavedAlbum) error {
	rows := make([][]string, 0, len(albums)+1)
	rows = append(rows, albumColumns)

	for _, a := range albums {
		rows = append(rows, []string{
			a.ID,
			a.Name,
			a.Artists,
			a.Genres,
			a.ReleaseDate,
			strconv.Itoa(a.TotalTracks),
			a.AddedAt,
			a.SpotifyURL,
		})
	}

	return s.writeCSV(albumsFile, rows)
}

// LoadAlbums reads the saved-albums file.
func (s *Store) LoadAlbums() ([]models.SavedAlbum, error) {
	records, err := s.readCSV(albumsFile)
	if err != nil {
		return nil, err
	}

	albums := make([]models.SavedAlbum, 0, len(records))
	for _, rec := range records {
		if len(rec) < len(albumColumns) {
			continue
		}

		albums = append(albums, models.SavedAlbum{
			ID:          rec[0],
			Name:        rec[1],
			Artists:     rec[2],
			Genres:      rec[3],
			ReleaseDate: rec[4],
			TotalTracks: atoi(rec[5]),
			AddedAt:     rec[6],
			SpotifyURL:  rec[7],
		})
	}

	return albums, nil
}

// SaveTopArtists writes the top-artists file, one row per artist and
// time range.
func (s *Store) SaveTopArtists(artists []models.Artist) error {
	rows := make([][]string, 0, len(artists)+1)
	rows = append(rows, artistColumns)

	for _, a := range artists {
		rows = append(rows, []string{
			a.ID,
			a.Name,
			strings.Join(a.Genres, ", "),
			strconv.Itoa(a.Popularity),
			a.TimeRange,
			a.SpotifyURL,
		})
	}

	return s.writeCSV(artistsFile, rows)
}

// LoadTopArtists reads the top-artists file.
func (s *Store) LoadTopArtists() ([]models.Artist, error) {
	records, err := s.readCSV(artistsFile)
	if err != nil {
		return nil, err
	}

	artists := make([]models.Artist, 0, len(records))
	for _, rec := range records {
		if len(rec) < len(artistColumns) {
			continue
		}

		artists = append(artists, models.Artist{
			ID:         rec[0],
			Name:       rec[1],
			Genres:     splitGenres(rec[2]),
			Popularity: atoi(rec[3]),
			TimeRange:  rec[4],
			SpotifyURL: rec[5],
		})
	}

	return artists, nil
}

// SaveProfile writes the user-profile file stamped with the refresh
// time.
func (s *Store) SaveProfile(user models.UserProfile, updatedAt time.Time) error {
	rows := [][]string{
		profileColumns,
		{user.ID, user.DisplayName, updatedAt.Format(time.RFC3339)},
	}

	return s.writeCSV(profileFile, rows)
}

// --- Helpers ---

func (s *Store) writeCSV(name string, rows [][]string) error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	f, err := os.Create(filepath.Join(s.dataDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	if err := csv.NewWriter(f).WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}

// readCSV returns the data rows of a snapshot file with the header
// stripped. A missing file reads as no rows.
func (s *Store) readCSV(name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	return records[1:], nil
}

// atoi parses a numeric column, treating malformed values as zero.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return n
}

// splitGenres undoes the comma join used in the genre columns.
func splitGenres(joined string) []string {
	var genres []string

	for _, genre := range strings.Split(joined, ",") {
		genre = strings.TrimSpace(genre)
		if genre == "" {
			continue
		}

		genres = append(genres, genre)
	}

	return genres
}

package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alessandroseni/spotisync/internal/models"
	"github.com/alessandroseni/spotisync/pkg/metadata"
)

// seedSnapshot writes a small but complete snapshot.
func seedSnapshot(t *testing.T, s *Store) {
	t.Helper()

	tracks := []models.SavedTrack{
		{ID: "t1", Name: "One", Genres: "techno, dub techno"},
		{ID: "t2", Name: "Two", Genres: "house"},
		{ID: "t3", Name: "Three"},
	}
	albums := []models.SavedAlbum{
		{ID: "al1", Name: "Album One", Genres: "techno"},
		{ID: "al2", Name: "Album Two"},
	}
	artists := []models.Artist{
		{ID: "a1", Name: "Artist One", Genres: []string{"techno", "ambient"}},
		{ID: "a2", Name: "Artist Two", Genres: []string{"ambient"}},
	}

	if err := s.SaveTracks(tracks); err != nil {
		t.Fatalf("SaveTracks failed: %v", err)
	}
	if err := s.SaveAlbums(albums); err != nil {
		t.Fatalf("SaveAlbums failed: %v", err)
	}
	if err := s.SaveTopArtists(artists); err != nil {
		t.Fatalf("SaveTopArtists failed: %v", err)
	}
	if err := s.SaveProfile(models.UserProfile{ID: "u1", DisplayName: "Alessandro"}, time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
}

// Stats tests

func TestStats_MissingFiles(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.DataExists {
		t.Error("Expected DataExists to be false without snapshot files")
	}
	if stats.Tracks != 0 || stats.Albums != 0 || stats.Artists != 0 {
		t.Errorf("Expected zero counts, got %d/%d/%d", stats.Tracks, stats.Albums, stats.Artists)
	}
}

func TestStats_CountsRows(t *testing.T) {
	s := newTestStore(t)
	seedSnapshot(t, s)

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if !stats.DataExists {
		t.Fatal("Expected DataExists to be true")
	}
	if stats.Tracks != 3 || stats.Albums != 2 || stats.Artists != 2 {
		t.Errorf("Expected counts 3/2/2, got %d/%d/%d", stats.Tracks, stats.Albums, stats.Artists)
	}

	want := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	if !stats.LastUpdated.Equal(want) {
		t.Errorf("Expected last updated %v, got %v", want, stats.LastUpdated)
	}
}

// Staleness tests

func TestIsStale(t *testing.T) {
	s := newTestStore(t)
	maxAge := 7 * 24 * time.Hour

	if !s.IsStale(maxAge) {
		t.Error("Expected missing profile to read as stale")
	}

	if err := s.SaveProfile(models.UserProfile{ID: "u1"}, time.Now()); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if s.IsStale(maxAge) {
		t.Error("Expected fresh snapshot to read as current")
	}

	if err := s.SaveProfile(models.UserProfile{ID: "u1"}, time.Now().Add(-8*24*time.Hour)); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if !s.IsStale(maxAge) {
		t.Error("Expected eight day old snapshot to read as stale")
	}
}

// Genre summary tests

func TestGenreSummary_WeightsTopArtistsDouble(t *testing.T) {
	s := newTestStore(t)
	seedSnapshot(t, s)

	summary, err := s.GenreSummary()
	if err != nil {
		t.Fatalf("GenreSummary failed: %v", err)
	}

	want := []models.GenreCount{
		{Genre: "ambient", Count: 4},
		{Genre: "techno", Count: 4},
		{Genre: "dub techno", Count: 1},
		{Genre: "house", Count: 1},
	}

	if len(summary) != len(want) {
		t.Fatalf("Expected %d genres, got %d", len(want), len(summary))
	}

	for i, w := range want {
		if summary[i] != w {
			t.Errorf("Expected summary[%d] = %v, got %v", i, w, summary[i])
		}
	}
}

// Manifest tests

func TestManifest_RoundTripAndTamper(t *testing.T) {
	s := newTestStore(t)
	seedSnapshot(t, s)

	collected := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	if err := s.WriteManifest(collected); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	m, err := s.VerifyManifest()
	if err != nil {
		t.Fatalf("Expected manifest to verify, got %v", err)
	}

	if m.Tracks != 3 || m.Albums != 2 || m.Artists != 2 {
		t.Errorf("Expected counts 3/2/2, got %d/%d/%d", m.Tracks, m.Albums, m.Artists)
	}
	if !m.CollectedAt.Equal(collected) {
		t.Errorf("Expected collected_at %v, got %v", collected, m.CollectedAt)
	}

	// Hand-edit a library file behind the manifest's back.
	path := filepath.Join(s.DataDir(), "saved_tracks.csv")
	if err := os.WriteFile(path, []byte("track_id,name\nxx,Injected\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite tracks file: %v", err)
	}

	if _, err := s.VerifyManifest(); !errors.Is(err, metadata.ErrHashMismatch) {
		t.Errorf("Expected ErrHashMismatch after edit, got %v", err)
	}
}

func TestManifest_MissingFile(t *testing.T) {
	s := newTestStore(t)
	seedSnapshot(t, s)

	if _, err := s.VerifyManifest(); err == nil {
		t.Error("Expected an error when no manifest was written")
	}
}

package profile

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alessandroseni/spotisync/internal/logger"
	"github.com/alessandroseni/spotisync/internal/models"
	"github.com/alessandroseni/spotisync/internal/spotify"
)

var errSourceDown = errors.New("source down")

// fakeSource scripts the artist endpoints for collector tests.
type fakeSource struct {
	topPages   map[string][][]models.Artist
	topErr     error
	topOffsets map[string][]int

	followed    []models.Artist
	followedErr error

	recent    []models.Artist
	recentErr error

	full      []models.Artist
	fullErr   error
	lookupIDs []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		topPages:   make(map[string][][]models.Artist),
		topOffsets: make(map[string][]int),
	}
}

func (f *fakeSource) TopArtists(timeRange string, limit, offset int) ([]models.Artist, error) {
	f.topOffsets[timeRange] = append(f.topOffsets[timeRange], offset)

	if f.topErr != nil {
		return nil, f.topErr
	}

	pages := f.topPages[timeRange]
	idx := offset / limit
	if idx >= len(pages) {
		return nil, nil
	}

	return pages[idx], nil
}

func (f *fakeSource) FollowedArtists(limit int) ([]models.Artist, error) {
	return f.followed, f.followedErr
}

func (f *fakeSource) RecentlyPlayed(limit int) ([]models.Artist, error) {
	return f.recent, f.recentErr
}

func (f *fakeSource) Artists(ids []string) ([]models.Artist, error) {
	f.lookupIDs = append(f.lookupIDs, ids...)

	return f.full, f.fullErr
}

func testArtist(id, name string, popularity int, genres ...string) models.Artist {
	return models.Artist{ID: id, Name: name, Popularity: popularity, Genres: genres}
}

func newTestCollector(source ArtistSource) *Collector {
	return NewCollector(source, logger.NewDiscardLogger())
}

func TestCollector_Collect_MergesSources(t *testing.T) {
	source := newFakeSource()
	source.topPages[spotify.TimeRangeShort] = [][]models.Artist{{testArtist("a1", "Overmono", 65, "uk garage")}}
	source.topPages[spotify.TimeRangeMedium] = [][]models.Artist{{testArtist("a1", "Overmono", 65, "uk garage")}}
	source.followed = []models.Artist{
		testArtist("a1", "Overmono", 65, "uk garage"),
		testArtist("a2", "Avalon Emerson", 55, "techno"),
	}

	collector := newTestCollector(source)

	artists, err := collector.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(artists) != 2 {
		t.Fatalf("Expected 2 unique artists, got %d", len(artists))
	}

	if artists[0].ID != "a1" || artists[1].ID != "a2" {
		t.Errorf("Expected first-seen order [a1 a2], got [%s %s]", artists[0].ID, artists[1].ID)
	}

	wantSources := []string{models.SourceTopShortTerm, models.SourceTopMediumTerm, models.SourceFollowed}
	if len(artists[0].Sources) != len(wantSources) {
		t.Fatalf("Expected 3 sources on a1, got %v", artists[0].Sources)
	}
	for i, source := range wantSources {
		if artists[0].Sources[i] != source {
			t.Errorf("Expected source %s at position %d, got %s", source, i, artists[0].Sources[i])
		}
	}

	if len(artists[1].Sources) != 1 || artists[1].Sources[0] != models.SourceFollowed {
		t.Errorf("Expected a2 sourced from followed only, got %v", artists[1].Sources)
	}
}

func TestCollector_Collect_PagesEachTimeRange(t *testing.T) {
	fullPage := make([]models.Artist, 50)
	for i := range fullPage {
		fullPage[i] = testArtist(fmt.Sprintf("s%d", i), fmt.Sprintf("Artist %d", i), 50)
	}

	partialPage := make([]models.Artist, 20)
	for i := range partialPage {
		partialPage[i] = testArtist(fmt.Sprintf("s%d", 50+i), fmt.Sprintf("Artist %d", 50+i), 50)
	}

	source := newFakeSource()
	source.topPages[spotify.TimeRangeShort] = [][]models.Artist{fullPage, partialPage}

	collector := newTestCollector(source)

	artists, err := collector.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(artists) != 70 {
		t.Errorf("Expected 70 artists across pages, got %d", len(artists))
	}

	shortOffsets := source.topOffsets[spotify.TimeRangeShort]
	if len(shortOffsets) != 3 || shortOffsets[0] != 0 || shortOffsets[1] != 50 || shortOffsets[2] != 100 {
		t.Errorf("Expected short_term offsets [0 50 100], got %v", shortOffsets)
	}

	// Empty ranges stop after their first page.
	if got := source.topOffsets[spotify.TimeRangeMedium]; len(got) != 1 {
		t.Errorf("Expected 1 medium_term request, got %v", got)
	}
	if got := source.topOffsets[spotify.TimeRangeLong]; len(got) != 1 {
		t.Errorf("Expected 1 long_term request, got %v", got)
	}
}

func TestCollector_Collect_FollowedFailureIsNonFatal(t *testing.T) {
	source := newFakeSource()
	source.topPages[spotify.TimeRangeShort] = [][]models.Artist{{testArtist("a1", "Skee Mask", 60, "breakbeat")}}
	source.followedErr = errSourceDown

	collector := newTestCollector(source)

	artists, err := collector.Collect()
	if err != nil {
		t.Fatalf("Expected followed failure to be non-fatal, got %v", err)
	}

	if len(artists) != 1 || artists[0].ID != "a1" {
		t.Errorf("Expected the top artist to survive, got %v", artists)
	}
}

func TestCollector_Collect_EnrichesRecentPlays(t *testing.T) {
	source := newFakeSource()
	source.recent = []models.Artist{{ID: "r1", Name: "Karenn", SpotifyURL: "https://open.spotify.com/artist/r1"}}
	source.full = []models.Artist{testArtist("r1", "Karenn", 45, "techno")}

	collector := newTestCollector(source)

	artists, err := collector.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(artists) != 1 {
		t.Fatalf("Expected 1 artist, got %d", len(artists))
	}

	if artists[0].Popularity != 45 || len(artists[0].Genres) != 1 {
		t.Errorf("Expected enriched artist with popularity 45 and genres, got %+v", artists[0])
	}

	if len(artists[0].Sources) != 1 || artists[0].Sources[0] != models.SourceRecent {
		t.Errorf("Expected recently_played source, got %v", artists[0].Sources)
	}

	if len(source.lookupIDs) != 1 || source.lookupIDs[0] != "r1" {
		t.Errorf("Expected full lookup for r1, got %v", source.lookupIDs)
	}
}

func TestCollector_Collect_RecentLookupFallsBackToBasicInfo(t *testing.T) {
	source := newFakeSource()
	source.recent = []models.Artist{{ID: "r1", Name: "Karenn"}}
	source.fullErr = errSourceDown

	collector := newTestCollector(source)

	artists, err := collector.Collect()
	if err != nil {
		t.Fatalf("Expected lookup failure to be non-fatal, got %v", err)
	}

	if len(artists) != 1 || artists[0].Name != "Karenn" {
		t.Fatalf("Expected basic record kept, got %v", artists)
	}

	if artists[0].Popularity != 0 {
		t.Errorf("Expected basic record without popularity, got %d", artists[0].Popularity)
	}
}

func TestCollector_Collect_KnownRecentArtistKeepsFullRecord(t *testing.T) {
	source := newFakeSource()
	source.topPages[spotify.TimeRangeShort] = [][]models.Artist{{testArtist("a1", "Overmono", 65, "uk garage")}}
	source.recent = []models.Artist{{ID: "a1", Name: "Overmono"}}

	collector := newTestCollector(source)

	artists, err := collector.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(artists) != 1 {
		t.Fatalf("Expected 1 artist, got %d", len(artists))
	}

	if artists[0].Popularity != 65 {
		t.Errorf("Expected full record preserved, got popularity %d", artists[0].Popularity)
	}

	if !artists[0].HasSource(models.SourceTopShortTerm) || !artists[0].HasSource(models.SourceRecent) {
		t.Errorf("Expected both source labels, got %v", artists[0].Sources)
	}

	if len(source.lookupIDs) != 0 {
		t.Errorf("Expected no full lookup for known artist, got %v", source.lookupIDs)
	}
}

func TestCollector_Collect_NothingCollected(t *testing.T) {
	collector := newTestCollector(newFakeSource())

	_, err := collector.Collect()
	if !errors.Is(err, ErrNoArtistsCollected) {
		t.Errorf("Expected ErrNoArtistsCollected, got %v", err)
	}
}

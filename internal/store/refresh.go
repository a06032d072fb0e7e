package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/alessandroseni/spotisync/internal/logger"
	"github.com/alessandroseni/spotisync/internal/models"
	"github.com/alessandroseni/spotisync/internal/spotify"
)

// topArtistsPerRange is how many artists each time range contributes
// to the snapshot.
const topArtistsPerRange = 50

// LibraryAPI is the slice of the Spotify client the refresher uses.
type LibraryAPI interface {
	CurrentUser() (*models.UserProfile, error)
	AllSavedTracks() ([]models.SavedTrack, error)
	AllSavedAlbums() ([]models.SavedAlbum, error)
	TopArtists(timeRange string, limit, offset int) ([]models.Artist, error)
	Artists(ids []string) ([]models.Artist, error)
}

// Refresher rebuilds the CSV snapshot from the live library.
type Refresher struct {
	api    LibraryAPI
	store  *Store
	logger *logger.Logger
}

// NewRefresher creates a refresher writing through the given store.
func NewRefresher(api LibraryAPI, store *Store, log *logger.Logger) *Refresher {
	return &Refresher{
		api:    api,
		store:  store,
		logger: log,
	}
}

// RefreshResult reports the row counts after a refresh.
type RefreshResult struct {
	Tracks  int
	Albums  int
	Artists int
}

// RefreshAll replaces every snapshot file with fresh library data and
// stamps the manifest.
func (r *Refresher) RefreshAll() (*RefreshResult, error) {
	r.logger.Info("🔄 Refreshing Spotify data...")

	user, err := r.api.CurrentUser()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}

	collectedAt := time.Now()
	if err := r.store.SaveProfile(*user, collectedAt); err != nil {
		return nil, err
	}

	r.logger.Info("📥 Fetching saved tracks...")

	tracks, err := r.api.AllSavedTracks()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved tracks: %w", err)
	}

	r.fillTrackGenres(tracks)
	if err := r.store.SaveTracks(tracks); err != nil {
		return nil, err
	}

	r.logger.Info(fmt.Sprintf("✅ Stored %d tracks", len(tracks)))

	r.logger.Info("📥 Fetching saved albums...")

	albums, err := r.api.AllSavedAlbums()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved albums: %w", err)
	}

	r.fillAlbumGenres(albums)
	if err := r.store.SaveAlbums(albums); err != nil {
		return nil, err
	}

	r.logger.Info(fmt.Sprintf("✅ Stored %d albums", len(albums)))

	r.logger.Info("📥 Fetching top artists...")

	artists, err := r.fetchTopArtists()
	if err != nil {
		return nil, err
	}

	if err := r.store.SaveTopArtists(artists); err != nil {
		return nil, err
	}

	r.logger.Info(fmt.Sprintf("✅ Stored %d top artists", len(artists)))

	if err := r.store.WriteManifest(collectedAt); err != nil {
		r.logger.Warn(fmt.Sprintf("⚠️  Failed to write snapshot manifest: %v", err))
	}

	r.logger.Info("✨ Refresh complete!")

	return &RefreshResult{
		Tracks:  len(tracks),
		Albums:  len(albums),
		Artists: len(artists),
	}, nil
}

// fetchTopArtists collects one page of top artists per time range.
func (r *Refresher) fetchTopArtists() ([]models.Artist, error) {
	var all []models.Artist

	for _, timeRange := range spotify.TimeRanges {
		r.logger.Info(fmt.Sprintf("   Fetching %s...", timeRangeLabel(timeRange)))

		artists, err := r.api.TopArtists(timeRange, topArtistsPerRange, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s top artists: %w", timeRange, err)
		}

		all = append(all, artists...)
	}

	return all, nil
}

// fillTrackGenres resolves each track's primary artist to its genres
// before the rows are persisted.
func (r *Refresher) fillTrackGenres(tracks []models.SavedTrack) {
	ids := make([]string, 0, len(tracks))
	for _, track := range tracks {
		ids = append(ids, track.PrimaryArtistID)
	}

	genres := r.lookupGenres(ids)
	for i := range tracks {
		tracks[i].Genres = genres[tracks[i].PrimaryArtistID]
	}
}

// fillAlbumGenres resolves each album's primary artist to its genres.
func (r *Refresher) fillAlbumGenres(albums []models.SavedAlbum) {
	ids := make([]string, 0, len(albums))
	for _, album := range albums {
		ids = append(ids, album.PrimaryArtistID)
	}

	genres := r.lookupGenres(ids)
	for i := range albums {
		albums[i].Genres = genres[albums[i].PrimaryArtistID]
	}
}

// lookupGenres maps artist IDs to joined genre strings. A failed
// lookup leaves the genre column empty.
func (r *Refresher) lookupGenres(ids []string) map[string]string {
	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		return map[string]string{}
	}

	artists, err := r.api.Artists(unique)
	if err != nil {
		r.logger.Warn(fmt.Sprintf("⚠️  Artist genre lookup failed: %v", err))

		return map[string]string{}
	}

	genres := make(map[string]string, len(artists))
	for _, artist := range artists {
		genres[artist.ID] = strings.Join(artist.Genres, ", ")
	}

	return genres
}

// timeRangeLabel names a time range the way listeners think of it.
func timeRangeLabel(timeRange string) string {
	switch timeRange {
	case spotify.TimeRangeShort:
		return "last 4 weeks"
	case spotify.TimeRangeMedium:
		return "last 6 months"
	case spotify.TimeRangeLong:
		return "all time"
	default:
		return timeRange
	}
}

// uniqueIDs deduplicates artist IDs preserving first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))

	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}

		seen[id] = true
		unique = append(unique, id)
	}

	return unique
}

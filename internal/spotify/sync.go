package spotify

import (
	"fmt"

	"github.com/alessandroseni/spotisync/internal/logger"
	"github.com/alessandroseni/spotisync/internal/models"
	"github.com/alessandroseni/spotisync/pkg/utils"
)

// Syncer rebuilds a target playlist from the user's liked songs.
type Syncer struct {
	client *Client
	logger *logger.Logger
	dryRun bool
}

// NewSyncer creates a playlist syncer. With dryRun set, Sync reports
// the plan without writing to the playlist.
func NewSyncer(client *Client, dryRun bool, log *logger.Logger) *Syncer {
	return &Syncer{
		client: client,
		logger: log,
		dryRun: dryRun,
	}
}

// SyncResult summarizes one playlist rebuild.
type SyncResult struct {
	PlaylistName  string
	LikedTracks   int
	TracksRemoved int
	TracksAdded   int
	DryRun        bool
}

// Sync replaces the playlist contents with the liked songs, newest
// first. Liked songs are fetched before anything is touched so a fetch
// failure leaves the playlist intact.
func (s *Syncer) Sync(playlistID string) (*SyncResult, error) {
	result := &SyncResult{DryRun: s.dryRun}

	s.logger.Info("📥 Fetching all liked songs...")

	liked, err := s.client.AllSavedTracks()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch liked songs: %w", err)
	}

	result.LikedTracks = len(liked)
	s.logger.Info(fmt.Sprintf("✅ Found %d liked songs", len(liked)))

	if len(liked) == 0 {
		s.logger.Warn("⚠️  No liked songs found, leaving playlist untouched")

		return result, nil
	}

	playlist, err := s.client.Playlist(playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to access playlist %s: %w", playlistID, err)
	}

	result.PlaylistName = playlist.Name
	s.logger.Info(fmt.Sprintf("🎯 Using playlist: %q", playlist.Name))

	existing, err := s.collectPlaylistURIs(playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlist tracks: %w", err)
	}

	uris := likedTrackURIs(liked)

	if s.dryRun {
		s.logger.Info(fmt.Sprintf("Dry run: would remove %d tracks and add %d tracks to %q", len(existing), len(uris), playlist.Name))

		return result, nil
	}

	if len(existing) == 0 {
		s.logger.Info("   Playlist is already empty")
	} else {
		s.logger.Info(fmt.Sprintf("🧹 Clearing %d existing tracks...", len(existing)))

		for i, batch := range utils.Chunk(existing, playlistPageLimit) {
			if err := s.client.RemovePlaylistTracks(playlistID, batch); err != nil {
				return nil, fmt.Errorf("failed to clear playlist: %w", err)
			}

			result.TracksRemoved += len(batch)
			s.logger.Info(fmt.Sprintf("   Removed batch %d (%d/%d tracks)", i+1, result.TracksRemoved, len(existing)))
		}
	}

	s.logger.Info("➕ Adding liked songs to playlist (newest first)...")

	for i, batch := range utils.Chunk(uris, playlistPageLimit) {
		if err := s.client.AddPlaylistTracks(playlistID, batch); err != nil {
			return nil, fmt.Errorf("failed to add tracks: %w", err)
		}

		result.TracksAdded += len(batch)
		s.logger.Info(fmt.Sprintf("   Added batch %d (%d/%d tracks)", i+1, result.TracksAdded, len(uris)))
	}

	s.logger.Info(fmt.Sprintf("✅ Successfully added %d tracks to playlist", result.TracksAdded))

	return result, nil
}

// collectPlaylistURIs pages through every track currently on the
// playlist.
func (s *Syncer) collectPlaylistURIs(playlistID string) ([]string, error) {
	var all []string

	for offset := 0; ; offset += playlistPageLimit {
		page, err := s.client.PlaylistTrackURIs(playlistID, playlistPageLimit, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		all = append(all, page...)
	}

	return all, nil
}

// likedTrackURIs extracts the URIs to add, keeping the API's
// newest-first order.
func likedTrackURIs(tracks []models.SavedTrack) []string {
	uris := make([]string, 0, len(tracks))
	for _, track := range tracks {
		if track.URI == "" {
			continue
		}

		uris = append(uris, track.URI)
	}

	return uris
}

package spotify

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/alessandroseni/spotisync/internal/models"
	"github.com/alessandroseni/spotisync/pkg/utils"
)

// savedPageLimit is the max page size of the library endpoints.
const savedPageLimit = 50

// CurrentUser fetches the authenticated user's profile. A missing
// display name falls back to the user id.
func (c *Client) CurrentUser() (*models.UserProfile, error) {
	var user struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	}

	if err := c.get("/me", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}

	profile := &models.UserProfile{
		ID:          user.ID,
		DisplayName: user.DisplayName,
	}
	if profile.DisplayName == "" {
		profile.DisplayName = user.ID
	}

	return profile, nil
}

// TopArtists fetches one page of the user's top artists for the given
// time range. The range is recorded on each returned artist.
func (c *Client) TopArtists(timeRange string, limit, offset int) ([]models.Artist, error) {
	query := url.Values{}
	query.Set("time_range", timeRange)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var page struct {
		Items []artistObject `json:"items"`
	}

	if err := c.get("/me/top/artists", query, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch top artists (%s, offset %d): %w", timeRange, offset, err)
	}

	artists := make([]models.Artist, 0, len(page.Items))
	for _, item := range page.Items {
		artist := item.toArtist()
		artist.TimeRange = timeRange
		artists = append(artists, artist)
	}

	return artists, nil
}

// FollowedArtists fetches the artists the user follows.
func (c *Client) FollowedArtists(limit int) ([]models.Artist, error) {
	query := url.Values{}
	query.Set("type", "artist")
	query.Set("limit", strconv.Itoa(limit))

	var page struct {
		Artists struct {
			Items []artistObject `json:"items"`
		} `json:"artists"`
	}

	if err := c.get("/me/following", query, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch followed artists: %w", err)
	}

	artists := make([]models.Artist, 0, len(page.Artists.Items))
	for _, item := range page.Artists.Items {
		artists = append(artists, item.toArtist())
	}

	return artists, nil
}

// RecentlyPlayed fetches the artists referenced by the user's recently
// played tracks, deduplicated by id in play order. The returned artists
// are partial: no genres or popularity until a full lookup.
func (c *Client) RecentlyPlayed(limit int) ([]models.Artist, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var page struct {
		Items []struct {
			Track trackObject `json:"track"`
		} `json:"items"`
	}

	if err := c.get("/me/player/recently-played", query, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch recently played tracks: %w", err)
	}

	seen := make(map[string]bool)
	var artists []models.Artist

	for _, item := range page.Items {
		for _, ref := range item.Track.Artists {
			if ref.ID == "" || seen[ref.ID] {
				continue
			}

			seen[ref.ID] = true
			artists = append(artists, ref.toPartialArtist())
		}
	}

	return artists, nil
}

// Artists fetches full artist objects for the given ids, batching the
// lookups to the endpoint's id cap.
func (c *Client) Artists(ids []string) ([]models.Artist, error) {
	artists := make([]models.Artist, 0, len(ids))

	for _, batch := range utils.Chunk(ids, maxArtistsPerLookup) {
		query := url.Values{}
		query.Set("ids", strings.Join(batch, ","))

		var page struct {
			Artists []artistObject `json:"artists"`
		}

		if err := c.get("/artists", query, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch artist batch: %w", err)
		}

		for _, item := range page.Artists {
			artists = append(artists, item.toArtist())
		}
	}

	return artists, nil
}

// SavedTracks fetches one page of the user's liked songs, newest first.
func (c *Client) SavedTracks(limit, offset int) ([]models.SavedTrack, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var page struct {
		Items []struct {
			AddedAt string      `json:"added_at"`
			Track   trackObject `json:"track"`
		} `json:"items"`
	}

	if err := c.get("/me/tracks", query, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch saved tracks (offset %d): %w", offset, err)
	}

	tracks := make([]models.SavedTrack, 0, len(page.Items))
	for _, item := range page.Items {
		if item.Track.ID == "" {
			continue
		}

		tracks = append(tracks, item.Track.toSavedTrack(item.AddedAt))
	}

	return tracks, nil
}

// SavedAlbums fetches one page of the user's saved albums.
func (c *Client) SavedAlbums(limit, offset int) ([]models.SavedAlbum, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var page struct {
		Items []struct {
			AddedAt string      `json:"added_at"`
			Album   albumObject `json:"album"`
		} `json:"items"`
	}

	if err := c.get("/me/albums", query, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch saved albums (offset %d): %w", offset, err)
	}

	albums := make([]models.SavedAlbum, 0, len(page.Items))
	for _, item := range page.Items {
		if item.Album.ID == "" {
			continue
		}

		albums = append(albums, item.Album.toSavedAlbum(item.AddedAt))
	}

	return albums, nil
}

// AllSavedTracks pages through the full liked-songs library.
func (c *Client) AllSavedTracks() ([]models.SavedTrack, error) {
	var all []models.SavedTrack

	for offset := 0; ; offset += savedPageLimit {
		page, err := c.SavedTracks(savedPageLimit, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		all = append(all, page...)

		if c.logger != nil {
			c.logger.Debug(fmt.Sprintf("Retrieved %d saved tracks so far", len(all)))
		}
	}

	return all, nil
}

// AllSavedAlbums pages through the full saved-albums library.
func (c *Client) AllSavedAlbums() ([]models.SavedAlbum, error) {
	var all []models.SavedAlbum

	for offset := 0; ; offset += savedPageLimit {
		page, err := c.SavedAlbums(savedPageLimit, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		all = append(all, page...)

		if c.logger != nil {
			c.logger.Debug(fmt.Sprintf("Retrieved %d saved albums so far", len(all)))
		}
	}

	return all, nil
}

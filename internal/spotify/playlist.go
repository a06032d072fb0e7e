package spotify

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alessandroseni/spotisync/internal/models"
)

// playlistPageLimit is the max page size of the playlist items endpoint.
const playlistPageLimit = 100

// Playlist fetches the metadata of a playlist.
func (c *Client) Playlist(id string) (*models.Playlist, error) {
	if id == "" {
		return nil, ErrEmptyPlaylistID
	}

	var playlist struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Tracks struct {
			Total int `json:"total"`
		} `json:"tracks"`
	}

	if err := c.get("/playlists/"+id, nil, &playlist); err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %s: %w", id, err)
	}

	return &models.Playlist{
		ID:          playlist.ID,
		Name:        playlist.Name,
		TotalTracks: playlist.Tracks.Total,
	}, nil
}

// PlaylistTrackURIs fetches one page of track URIs from a playlist.
// Entries whose track is gone (removed from the catalog) are skipped.
func (c *Client) PlaylistTrackURIs(id string, limit, offset int) ([]string, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var page struct {
		Items []struct {
			Track *trackObject `json:"track"`
		} `json:"items"`
	}

	if err := c.get("/playlists/"+id+"/tracks", query, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch playlist tracks (offset %d): %w", offset, err)
	}

	uris := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		if item.Track == nil || item.Track.URI == "" {
			continue
		}

		uris = append(uris, item.Track.URI)
	}

	return uris, nil
}

// AddPlaylistTracks appends tracks to a playlist. The caller batches
// uris to the endpoint's cap of 100.
func (c *Client) AddPlaylistTracks(id string, uris []string) error {
	if len(uris) == 0 {
		return nil
	}

	body := map[string]interface{}{
		"uris": uris,
	}

	if err := c.send(http.MethodPost, "/playlists/"+id+"/tracks", nil, body, nil); err != nil {
		return fmt.Errorf("failed to add playlist tracks: %w", err)
	}

	return nil
}

// RemovePlaylistTracks removes every occurrence of the given tracks
// from a playlist. The caller batches uris to the endpoint's cap of 100.
func (c *Client) RemovePlaylistTracks(id string, uris []string) error {
	if len(uris) == 0 {
		return nil
	}

	tracks := make([]map[string]string, 0, len(uris))
	for _, uri := range uris {
		tracks = append(tracks, map[string]string{"uri": uri})
	}

	body := map[string]interface{}{
		"tracks": tracks,
	}

	if err := c.send(http.MethodDelete, "/playlists/"+id+"/tracks", nil, body, nil); err != nil {
		return fmt.Errorf("failed to remove playlist tracks: %w", err)
	}

	return nil
}

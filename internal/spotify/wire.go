package spotify

import (
	"strings"

	"github.com/alessandroseni/spotisync/internal/models"
)

// Wire shapes for the Web API responses this client decodes. Field sets
// are trimmed to what the pipeline consumes.

type externalURLs struct {
	Spotify string `json:"spotify"`
}

type followerInfo struct {
	Total int `json:"total"`
}

type artistObject struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Genres       []string     `json:"genres"`
	Popularity   int          `json:"popularity"`
	Followers    followerInfo `json:"followers"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// artistRef is the simplified artist object embedded in tracks and
// albums. It carries no genres or popularity.
type artistRef struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ExternalURLs externalURLs `json:"external_urls"`
}

type albumRef struct {
	Name string `json:"name"`
}

type trackObject struct {
	ID           string       `json:"id"`
	URI          string       `json:"uri"`
	Name         string       `json:"name"`
	Artists      []artistRef  `json:"artists"`
	Album        albumRef     `json:"album"`
	Popularity   int          `json:"popularity"`
	ExternalURLs externalURLs `json:"external_urls"`
}

type albumObject struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Artists      []artistRef  `json:"artists"`
	ReleaseDate  string       `json:"release_date"`
	TotalTracks  int          `json:"total_tracks"`
	ExternalURLs externalURLs `json:"external_urls"`
}

func (a artistObject) toArtist() models.Artist {
	return models.Artist{
		ID:         a.ID,
		Name:       a.Name,
		Genres:     a.Genres,
		Popularity: a.Popularity,
		Followers:  a.Followers.Total,
		SpotifyURL: a.ExternalURLs.Spotify,
	}
}

// toPartialArtist maps a simplified artist reference. Genres and
// popularity stay zero until a full lookup fills them in.
func (a artistRef) toPartialArtist() models.Artist {
	return models.Artist{
		ID:         a.ID,
		Name:       a.Name,
		SpotifyURL: a.ExternalURLs.Spotify,
	}
}

func (t trackObject) toSavedTrack(addedAt string) models.SavedTrack {
	track := models.SavedTrack{
		ID:         t.ID,
		URI:        t.URI,
		Name:       t.Name,
		Artists:    joinArtistNames(t.Artists),
		Album:      t.Album.Name,
		AddedAt:    addedAt,
		Popularity: t.Popularity,
		SpotifyURL: t.ExternalURLs.Spotify,
	}

	if len(t.Artists) > 0 {
		track.PrimaryArtistID = t.Artists[0].ID
	}

	return track
}

func (a albumObject) toSavedAlbum(addedAt string) models.SavedAlbum {
	album := models.SavedAlbum{
		ID:          a.ID,
		Name:        a.Name,
		Artists:     joinArtistNames(a.Artists),
		ReleaseDate: a.ReleaseDate,
		TotalTracks: a.TotalTracks,
		AddedAt:     addedAt,
		SpotifyURL:  a.ExternalURLs.Spotify,
	}

	if len(a.Artists) > 0 {
		album.PrimaryArtistID = a.Artists[0].ID
	}

	return album
}

func joinArtistNames(refs []artistRef) string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}

	return strings.Join(names, ", ")
}

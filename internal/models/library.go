package models

// Artist source labels recorded during profile collection.
const (
	SourceTopShortTerm  = "top_short_term"
	SourceTopMediumTerm = "top_medium_term"
	SourceTopLongTerm   = "top_long_term"
	SourceFollowed      = "followed"
	SourceRecent        = "recently_played"
)

// Artist holds the subset of Spotify artist data the pipeline uses.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Followers  int      `json:"followers"`
	SpotifyURL string   `json:"spotifyUrl"`
	Sources    []string `json:"sources"`
	TimeRange  string   `json:"timeRange,omitempty"`
}

// HasSource reports whether the artist was contributed by the given source.
func (a *Artist) HasSource(source string) bool {
	for _, s := range a.Sources {
		if s == source {
			return true
		}
	}

	return false
}

// SavedTrack is one entry of the user's liked-songs library.
// PrimaryArtistID identifies the first credited artist; the snapshot
// refresher uses it to fill Genres before the row is persisted.
type SavedTrack struct {
	ID              string `json:"id"`
	URI             string `json:"uri"`
	Name            string `json:"name"`
	Artists         string `json:"artists"`
	Album           string `json:"album"`
	Genres          string `json:"genres"`
	AddedAt         string `json:"addedAt"`
	Popularity      int    `json:"popularity"`
	SpotifyURL      string `json:"spotifyUrl"`
	PrimaryArtistID string `json:"primaryArtistId,omitempty"`
}

// SavedAlbum is one entry of the user's saved-albums library.
type SavedAlbum struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Artists         string `json:"artists"`
	Genres          string `json:"genres"`
	ReleaseDate     string `json:"releaseDate"`
	TotalTracks     int    `json:"totalTracks"`
	AddedAt         string `json:"addedAt"`
	SpotifyURL      string `json:"spotifyUrl"`
	PrimaryArtistID string `json:"primaryArtistId,omitempty"`
}

// Playlist is the metadata of a sync target playlist.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TotalTracks int    `json:"totalTracks"`
}

// UserProfile identifies the authenticated listener.
type UserProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// GenreCount pairs a genre with its weighted occurrence count.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

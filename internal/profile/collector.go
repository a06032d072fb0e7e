// Package profile collects the user's listening data and condenses it
// into the popularity tiers and genre counts analysis works from.
package profile

import (
	"errors"
	"fmt"

	"github.com/alessandroseni/spotisync/internal/logger"
	"github.com/alessandroseni/spotisync/internal/models"
	"github.com/alessandroseni/spotisync/internal/spotify"
)

// ErrNoArtistsCollected is returned when every source came back empty.
var ErrNoArtistsCollected = errors.New("no artists collected from any source")

const (
	// topPageLimit is the page size of each top-artists request.
	topPageLimit = 50

	// maxTopOffset bounds how deep each time range is paged.
	maxTopOffset = 150

	followedLimit = 50
	recentLimit   = 50
)

// ArtistSource is the slice of the Spotify client the collector needs.
type ArtistSource interface {
	TopArtists(timeRange string, limit, offset int) ([]models.Artist, error)
	FollowedArtists(limit int) ([]models.Artist, error)
	RecentlyPlayed(limit int) ([]models.Artist, error)
	Artists(ids []string) ([]models.Artist, error)
}

// Collector gathers unique artists across top ranges, follows and
// recent plays. Individual source failures are logged and skipped;
// the pipeline only fails when nothing at all was collected.
type Collector struct {
	source ArtistSource
	logger *logger.Logger
}

// NewCollector creates a collector reading from the given source.
func NewCollector(source ArtistSource, log *logger.Logger) *Collector {
	return &Collector{
		source: source,
		logger: log,
	}
}

// Collect returns the deduplicated artists in first-seen order. An
// artist contributed by several sources keeps one record carrying
// every source label.
func (c *Collector) Collect() ([]models.Artist, error) {
	col := newCollection()

	c.logger.Info("🎵 Fetching listening data...")

	c.collectTopArtists(col)
	c.collectFollowed(col)
	c.collectRecentlyPlayed(col)

	if len(col.artists) == 0 {
		return nil, ErrNoArtistsCollected
	}

	c.logger.Info(fmt.Sprintf("✅ Total unique artists collected: %d", len(col.artists)))
	c.logSourceBreakdown(col.artists)

	return col.artists, nil
}

// collectTopArtists pages each time range up to maxTopOffset.
func (c *Collector) collectTopArtists(col *collection) {
	for _, timeRange := range spotify.TimeRanges {
		c.logger.Info(fmt.Sprintf("   📊 Getting top artists (%s)...", timeRange))

		for offset := 0; offset < maxTopOffset; offset += topPageLimit {
			page, err := c.source.TopArtists(timeRange, topPageLimit, offset)
			if err != nil {
				c.logger.Warn(fmt.Sprintf("⚠️  Error getting top artists batch at offset %d: %v", offset, err))

				break
			}
			if len(page) == 0 {
				break
			}

			for _, artist := range page {
				col.add(artist, topSourceLabel(timeRange))
			}
		}
	}
}

func (c *Collector) collectFollowed(col *collection) {
	c.logger.Info("   💾 Getting followed artists...")

	followed, err := c.source.FollowedArtists(followedLimit)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("⚠️  Skipping followed artists: %v", err))

		return
	}

	for _, artist := range followed {
		col.add(artist, models.SourceFollowed)
	}
}

// collectRecentlyPlayed adds artists from recent plays. Unknown ones
// get a full lookup; when that fails their partial records are kept.
func (c *Collector) collectRecentlyPlayed(col *collection) {
	c.logger.Info("   🎧 Getting artists from recently played tracks...")

	recent, err := c.source.RecentlyPlayed(recentLimit)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("⚠️  Skipping recently played tracks: %v", err))

		return
	}

	var missing []models.Artist
	for _, partial := range recent {
		if col.has(partial.ID) {
			col.add(partial, models.SourceRecent)
		} else {
			missing = append(missing, partial)
		}
	}

	if len(missing) == 0 {
		return
	}

	ids := make([]string, 0, len(missing))
	for _, partial := range missing {
		ids = append(ids, partial.ID)
	}

	full, err := c.source.Artists(ids)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("⚠️  Could not fetch full artist info for recent plays, keeping basic info: %v", err))

		for _, partial := range missing {
			col.add(partial, models.SourceRecent)
		}

		return
	}

	byID := make(map[string]models.Artist, len(full))
	for _, artist := range full {
		byID[artist.ID] = artist
	}

	for _, partial := range missing {
		if enriched, ok := byID[partial.ID]; ok {
			col.add(enriched, models.SourceRecent)
		} else {
			col.add(partial, models.SourceRecent)
		}
	}
}

func (c *Collector) logSourceBreakdown(artists []models.Artist) {
	counts := sourceCounts(artists)

	c.logger.Info("   📊 Source breakdown:")
	for _, source := range sourceOrder {
		if counts[source] > 0 {
			c.logger.Info(fmt.Sprintf("      • %s: %d artists", source, counts[source]))
		}
	}
}

// Helper functions

// sourceOrder fixes the breakdown print order.
var sourceOrder = []string{
	models.SourceTopShortTerm,
	models.SourceTopMediumTerm,
	models.SourceTopLongTerm,
	models.SourceFollowed,
	models.SourceRecent,
}

func topSourceLabel(timeRange string) string {
	switch timeRange {
	case spotify.TimeRangeShort:
		return models.SourceTopShortTerm
	case spotify.TimeRangeMedium:
		return models.SourceTopMediumTerm
	case spotify.TimeRangeLong:
		return models.SourceTopLongTerm
	default:
		return "top_" + timeRange
	}
}

// collection accumulates artists deduplicated by id, first record wins,
// source labels merged.
type collection struct {
	artists []models.Artist
	index   map[string]int
}

func newCollection() *collection {
	return &collection{index: make(map[string]int)}
}

func (c *collection) has(id string) bool {
	_, ok := c.index[id]

	return ok
}

func (c *collection) add(artist models.Artist, source string) {
	if i, ok := c.index[artist.ID]; ok {
		if !c.artists[i].HasSource(source) {
			c.artists[i].Sources = append(c.artists[i].Sources, source)
		}

		return
	}

	artist.Sources = []string{source}
	c.index[artist.ID] = len(c.artists)
	c.artists = append(c.artists, artist)
}

func sourceCounts(artists []models.Artist) map[string]int {
	counts := make(map[string]int)
	for _, artist := range artists {
		for _, source := range artist.Sources {
			counts[source]++
		}
	}

	return counts
}

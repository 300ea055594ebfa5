// Package track provides the playable-item record used by the queue.
package track

import (
	"fmt"
	"time"
)

// Track represents a playable item from the catalog.
// Contains only information supplied by the catalog source; the
// coordination engines treat it as opaque beyond its identity.
type Track struct {
	ID         string        // Stable catalog identity
	Title      string        // Track title
	Artist     string        // Artist name
	Album      string        // Album name
	Duration   time.Duration // Track duration
	ArtworkURL string        // Artwork reference
	StreamURL  string        // Stream locator
}

// DisplayName returns "Artist - Title" for rendering, falling back to
// the title when the artist is unknown.
func (t *Track) DisplayName() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Artist + " - " + t.Title
}

// FormatDuration returns the duration formatted as m:ss.
func (t *Track) FormatDuration() string {
	total := int(t.Duration.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// TotalDuration returns the combined duration of the given tracks.
func TotalDuration(tracks []Track) time.Duration {
	var total time.Duration
	for _, t := range tracks {
		total += t.Duration
	}
	return total
}

// Package popup provides the exclusive popup coordinator.
package popup

// Kind represents a popup category.
type Kind int

const (
	KindNone     Kind = iota // No popup installed
	KindTrack                // Track context popup
	KindAlbum                // Album context popup
	KindArtist               // Artist context popup
	KindPlaylist             // Playlist context popup
	KindLiked                // Liked-collection popup
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTrack:
		return "track"
	case KindAlbum:
		return "album"
	case KindArtist:
		return "artist"
	case KindPlaylist:
		return "playlist"
	case KindLiked:
		return "liked"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind name. Returns false for unrecognized names.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "track":
		return KindTrack, true
	case "album":
		return KindAlbum, true
	case "artist":
		return KindArtist, true
	case "playlist":
		return KindPlaylist, true
	case "liked":
		return KindLiked, true
	default:
		return KindNone, false
	}
}

// Phase represents the coordinator's transition phase.
type Phase int

const (
	PhaseClosed  Phase = iota // No popup installed
	PhaseOpening              // Popup installed, enter transition pending
	PhaseOpen                 // Popup visible
	PhaseClosing              // Exit transition in flight
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpening:
		return "opening"
	case PhaseOpen:
		return "open"
	case PhaseClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Position is the screen coordinate a popup anchors to.
type Position struct {
	X int
	Y int
}

// State is an observable snapshot of the coordinator.
type State struct {
	Kind       Kind
	Phase      Phase
	Position   Position
	Payload    any
	Visible    bool
	Generation uint64
}

// Package queue provides the ordered playback queue with a live cursor.
package queue

// RepeatMode represents the playback-advance policy.
type RepeatMode int

const (
	RepeatOff   RepeatMode = iota // Stop at the end of the queue
	RepeatTrack                   // Replay the current track
	RepeatQueue                   // Wrap to the start of the queue
)

// String returns the string representation of the mode.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatTrack:
		return "track"
	case RepeatQueue:
		return "queue"
	default:
		return "unknown"
	}
}

// ParseRepeatMode parses a mode name. Returns false for unrecognized
// names.
func ParseRepeatMode(s string) (RepeatMode, bool) {
	switch s {
	case "off":
		return RepeatOff, true
	case "track":
		return RepeatTrack, true
	case "queue":
		return RepeatQueue, true
	default:
		return RepeatOff, false
	}
}

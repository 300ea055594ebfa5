package queue

import (
	"math/rand"

	"github.com/purr/campband-sub002/internal/domain/track"
)

// Shuffled returns a shuffled copy of tracks; the input is not
// modified. Callers apply it to a fresh batch before insertion when
// shuffle is enabled. Pass a seeded rng for deterministic order; nil
// uses the global source.
func Shuffled(tracks []track.Track, rng *rand.Rand) []track.Track {
	out := make([]track.Track, len(tracks))
	copy(out, tracks)

	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if rng != nil {
		rng.Shuffle(len(out), swap)
	} else {
		rand.Shuffle(len(out), swap)
	}
	return out
}

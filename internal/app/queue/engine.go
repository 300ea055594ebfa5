package queue

import (
	"sync"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/purr/campband-sub002/internal/app/notify"
	"github.com/purr/campband-sub002/internal/domain/track"
)

// ErrIndexOutOfRange is returned by checked variants when an index does
// not refer to an item in the queue.
var ErrIndexOutOfRange = errors.New("index out of range")

// NoCursor is the cursor value when the queue is empty.
const NoCursor = -1

// Player is the playback surface driven by the engine.
type Player interface {
	Play(t track.Track)
	Pause()
}

// Snapshot is an observable snapshot of the engine.
type Snapshot struct {
	Items   []track.Track
	Cursor  int
	Shuffle bool
	Repeat  RepeatMode
}

// Engine maintains the ordered playback sequence and the cursor
// identifying the current item. Insertion order is the playback order.
// Mutations are atomic; listeners observe one snapshot per mutation, in
// call order, and must not call back into the engine.
type Engine struct {
	mu      sync.RWMutex
	items   []track.Track
	cursor  int
	shuffle bool
	repeat  RepeatMode
	player  Player
	hub     *notify.Hub[Snapshot]
}

// NewEngine creates an empty queue engine. player may be nil.
func NewEngine(player Player) *Engine {
	return &Engine{
		items:  make([]track.Track, 0),
		cursor: NoCursor,
		player: player,
		hub:    notify.NewHub[Snapshot](),
	}
}

// Subscribe adds a state-change listener and returns a function that
// removes it.
func (e *Engine) Subscribe(fn func(Snapshot)) func() {
	return e.hub.Subscribe(fn)
}

// SetQueue replaces the entire queue. The cursor resets to the first
// item, or to none when the new queue is empty.
func (e *Engine) SetQueue(tracks []track.Track) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = make([]track.Track, len(tracks))
	copy(e.items, tracks)
	if len(e.items) == 0 {
		e.cursor = NoCursor
	} else {
		e.cursor = 0
	}
	e.publishLocked()
}

// InsertNext inserts a track immediately after the cursor.
func (e *Engine) InsertNext(t track.Track) {
	e.InsertNextMultiple([]track.Track{t})
}

// InsertNextMultiple inserts tracks immediately after the cursor,
// preserving their order. The cursor does not move; on an empty queue
// it lands on the first inserted track.
func (e *Engine) InsertNextMultiple(tracks []track.Track) {
	if len(tracks) == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	at := e.cursor + 1 // 0 when the queue is empty
	rest := make([]track.Track, len(e.items[at:]))
	copy(rest, e.items[at:])
	e.items = append(e.items[:at], append(append([]track.Track{}, tracks...), rest...)...)
	if e.cursor == NoCursor {
		e.cursor = 0
	}
	e.publishLocked()
}

// Add appends a track to the end of the queue.
func (e *Engine) Add(t track.Track) {
	e.AddMultiple([]track.Track{t})
}

// AddMultiple appends tracks to the end of the queue. The cursor is
// unaffected; on an empty queue it lands on the first appended track.
func (e *Engine) AddMultiple(tracks []track.Track) {
	if len(tracks) == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = append(e.items, tracks...)
	if e.cursor == NoCursor {
		e.cursor = 0
	}
	e.publishLocked()
}

// RemoveAt removes the item at index. Out-of-range indices are a no-op;
// the UI derives indices from the list it just rendered.
func (e *Engine) RemoveAt(index int) {
	_ = e.RemoveAtChecked(index)
}

// RemoveAtChecked removes the item at index, reporting out-of-range
// indices for callers that may hold stale ones.
func (e *Engine) RemoveAtChecked(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.items) {
		return errors.Wrapf(ErrIndexOutOfRange, "remove at %d with %d items", index, len(e.items))
	}

	e.items = append(e.items[:index], e.items[index+1:]...)
	switch {
	case len(e.items) == 0:
		e.cursor = NoCursor
	case index < e.cursor:
		// Same logical item stays current
		e.cursor--
	case index == e.cursor && e.cursor >= len(e.items):
		// Removed the current last item; current moves to the new last
		e.cursor = len(e.items) - 1
	}
	// Removing the current item mid-queue leaves the cursor in place,
	// now pointing at the item that shifted into the slot

	e.publishLocked()
	return nil
}

// Move relocates the item at from to final position to. Out-of-range
// indices are a no-op.
func (e *Engine) Move(from, to int) {
	_ = e.MoveChecked(from, to)
}

// MoveChecked relocates the item at from to final position to. The item
// identity under the cursor remains current after the move.
func (e *Engine) MoveChecked(from, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return errors.Wrapf(ErrIndexOutOfRange, "move %d to %d with %d items", from, to, n)
	}
	if from == to {
		return nil
	}

	moved := e.items[from]
	e.items = append(e.items[:from], e.items[from+1:]...)
	rest := make([]track.Track, len(e.items[to:]))
	copy(rest, e.items[to:])
	e.items = append(append(e.items[:to], moved), rest...)

	// Recompute the cursor so it follows the same item identity
	if e.cursor == from {
		e.cursor = to
	} else {
		cur := e.cursor
		if from < cur {
			cur--
		}
		if to <= cur {
			cur++
		}
		e.cursor = cur
	}

	e.publishLocked()
	return nil
}

// PlayAt sets the cursor to index and signals the playback surface.
// Out-of-range indices are a no-op.
func (e *Engine) PlayAt(index int) {
	_ = e.PlayAtChecked(index)
}

// PlayAtChecked sets the cursor to index and signals the playback
// surface, reporting out-of-range indices.
func (e *Engine) PlayAtChecked(index int) error {
	e.mu.Lock()

	if index < 0 || index >= len(e.items) {
		n := len(e.items)
		e.mu.Unlock()
		return errors.Wrapf(ErrIndexOutOfRange, "play at %d with %d items", index, n)
	}

	e.cursor = index
	t := e.items[index]
	e.publishLocked()
	e.mu.Unlock()

	if e.player != nil {
		e.player.Play(t)
	}
	return nil
}

// Clear empties the queue.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = e.items[:0]
	e.cursor = NoCursor
	e.publishLocked()
}

// ResolveNext resolves what "advance to next" means under the current
// repeat mode, without mutating state. Returns (NoCursor, false) when
// there is no next item.
func (e *Engine) ResolveNext() (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.resolveNextLocked()
}

func (e *Engine) resolveNextLocked() (int, bool) {
	if len(e.items) == 0 {
		return NoCursor, false
	}

	switch e.repeat {
	case RepeatTrack:
		return e.cursor, true
	case RepeatQueue:
		return (e.cursor + 1) % len(e.items), true
	default:
		if e.cursor+1 < len(e.items) {
			return e.cursor + 1, true
		}
		return NoCursor, false
	}
}

// Advance moves the cursor to the resolved next item and signals the
// playback surface, or pauses it at the end of the queue. Used when the
// current item finishes naturally. Returns false when playback stops.
func (e *Engine) Advance() bool {
	e.mu.Lock()

	next, ok := e.resolveNextLocked()
	if !ok {
		e.mu.Unlock()
		zlog.Debug().Msg("queue: end of queue, no next track")
		if e.player != nil {
			e.player.Pause()
		}
		return false
	}

	e.cursor = next
	t := e.items[next]
	e.publishLocked()
	e.mu.Unlock()

	if e.player != nil {
		e.player.Play(t)
	}
	return true
}

// Items returns a copy of the queued tracks in playback order.
func (e *Engine) Items() []track.Track {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := make([]track.Track, len(e.items))
	copy(result, e.items)
	return result
}

// Cursor returns the index of the current item, or NoCursor when the
// queue is empty.
func (e *Engine) Cursor() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursor
}

// Current returns the current item.
func (e *Engine) Current() (track.Track, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.cursor == NoCursor {
		return track.Track{}, false
	}
	return e.items[e.cursor], true
}

// Len returns the number of items in the queue.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.items)
}

// IsEmpty returns true if the queue has no items.
func (e *Engine) IsEmpty() bool {
	return e.Len() == 0
}

// ShuffleEnabled returns the shuffle flag.
func (e *Engine) ShuffleEnabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.shuffle
}

// SetShuffleEnabled sets the shuffle flag. The flag governs how callers
// order a fresh batch before insertion (see Shuffled); the live queue
// is never reordered in place.
func (e *Engine) SetShuffleEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.shuffle = enabled
	e.publishLocked()
}

// Repeat returns the repeat mode.
func (e *Engine) Repeat() RepeatMode {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.repeat
}

// SetRepeat sets the repeat mode.
func (e *Engine) SetRepeat(mode RepeatMode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.repeat = mode
	e.publishLocked()
}

// publishLocked notifies subscribers of one mutation.
// Must be called with lock held.
func (e *Engine) publishLocked() {
	zlog.Debug().Msgf("queue: len=%d cursor=%d repeat=%s shuffle=%t",
		len(e.items), e.cursor, e.repeat, e.shuffle)

	items := make([]track.Track, len(e.items))
	copy(items, e.items)
	e.hub.Publish(Snapshot{
		Items:   items,
		Cursor:  e.cursor,
		Shuffle: e.shuffle,
		Repeat:  e.repeat,
	})
}

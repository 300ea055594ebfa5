package scenario

import (
	"context"
	"time"

	"github.com/purr/campband-sub002/internal/app/queue"
	"github.com/purr/campband-sub002/internal/domain/track"
)

// trackSettings represents one playable item in a script.
type trackSettings struct {
	ID          string  `mapstructure:"id" validate:"required"`
	Title       string  `mapstructure:"title"`
	Artist      string  `mapstructure:"artist"`
	Album       string  `mapstructure:"album"`
	DurationSec float64 `mapstructure:"duration_sec" default:"180" validate:"gt=0"`
	ArtworkURL  string  `mapstructure:"artwork_url"`
	StreamURL   string  `mapstructure:"stream_url"`
}

func (s trackSettings) toTrack() track.Track {
	return track.Track{
		ID:         s.ID,
		Title:      s.Title,
		Artist:     s.Artist,
		Album:      s.Album,
		Duration:   time.Duration(s.DurationSec * float64(time.Second)),
		ArtworkURL: s.ArtworkURL,
		StreamURL:  s.StreamURL,
	}
}

func toTracks(settings []trackSettings) []track.Track {
	out := make([]track.Track, len(settings))
	for i, s := range settings {
		out[i] = s.toTrack()
	}
	return out
}

// setQueueSettings represents the settings for queue batch actions.
type setQueueSettings struct {
	Tracks []trackSettings `mapstructure:"tracks" validate:"dive"`
}

// SetQueueAction replaces the queue contents.
type SetQueueAction struct {
	settings setQueueSettings
}

func (a *SetQueueAction) Name() string { return "set_queue" }

func (a *SetQueueAction) Description() string {
	return "Replaces the queue with the given tracks; cursor resets"
}

func (a *SetQueueAction) ValidateSettings(settings map[string]any) error {
	return decodeSettings(settings, &a.settings)
}

func (a *SetQueueAction) Apply(ctx context.Context, r *Runner) error {
	r.Queue.SetQueue(toTracks(a.settings.Tracks))
	return nil
}

// batchSettings represents a non-empty batch of tracks.
type batchSettings struct {
	Tracks []trackSettings `mapstructure:"tracks" validate:"min=1,dive"`
}

// PlayAllAction replaces the queue with a fresh item set and starts
// playback from the top. The batch is pre-shuffled when shuffle is
// enabled; the live queue is never reshuffled.
type PlayAllAction struct {
	settings batchSettings
}

func (a *PlayAllAction) Name() string { return "play_all" }

func (a *PlayAllAction) Description() string {
	return "Plays the given tracks as a fresh queue, shuffling the batch when shuffle is enabled"
}

func (a *PlayAllAction) ValidateSettings(settings map[string]any) error {
	return decodeSettings(settings, &a.settings)
}

func (a *PlayAllAction) Apply(ctx context.Context, r *Runner) error {
	batch := toTracks(a.settings.Tracks)
	if r.Queue.ShuffleEnabled() {
		batch = queue.Shuffled(batch, nil)
	}
	r.Queue.SetQueue(batch)
	return r.Queue.PlayAtChecked(0)
}

// InsertNextAction inserts tracks immediately after the cursor.
type InsertNextAction struct {
	settings batchSettings
}

func (a *InsertNextAction) Name() string { return "insert_next" }

func (a *InsertNextAction) Description() string {
	return "Inserts the given tracks immediately after the current one"
}

func (a *InsertNextAction) ValidateSettings(settings map[string]any) error {
	return decodeSettings(settings, &a.settings)
}

func (a *InsertNextAction) Apply(ctx context.Context, r *Runner) error {
	r.Queue.InsertNextMultiple(toTracks(a.settings.Tracks))
	return nil
}

// AddToQueueAction appends tracks to the end of the queue.
type AddToQueueAction struct {
	settings batchSettings
}

func (a *AddToQueueAction) Name() string { return "add_to_queue" }

func (a *AddToQueueAction) Description() string {
	return "Appends the given tracks to the end of the queue"
}

func (a *AddToQueueAction) ValidateSettings(settings map[string]any) error {
	return decodeSettings(settings, &a.settings)
}

func (a *AddToQueueAction) Apply(ctx context.Context, r *Runner) error {
	r.Queue.AddMultiple(toTracks(a.settings.Tracks))
	return nil
}

// indexSettings represents a single queue index.
type indexSettings struct {
	Index int `mapstructure:"index" validate:"gte=0"`
}

// RemoveAtAction removes the item at an index.
type RemoveAtAction struct {
	settings indexSettings
}

func (a *RemoveAtAction) Name() string { return "remove_at" }

func (a *RemoveAtAction) Description() string {
	return "Removes the queue item at the given index"
}

func (a *RemoveAtAction) ValidateSettings(settings map[string]any) error {
	return decodeSettings(settings, &a.settings)
}

func (a *RemoveAtAction) Apply(ctx context.Context, r *Runner) error {
	return r.Queue.RemoveAtChecked(a.settings.Index)
}

// moveTrackSettings represents the settings for move_track.
type moveTrackSettings struct {
	From int `mapstructure:"from" validate:"gte=0"`
	To   int `mapstructure:"to" validate:"gte=0"`
}

// MoveTrackAction relocates one queue item.
type MoveTrackAction struct {
	settings moveTrackSettings
}

func (a *MoveTrackAction) Name() string { return "move_track" }

func (a *MoveTrackAction) Description() string {
	return "Moves the queue item at one index to another"
}

func (a *MoveTrackAction) ValidateSettings(settings map[string]any) error {
	return decodeSettings(settings, &a.settings)
}

func (a *MoveTrackAction) Apply(ctx context.Context, r *Runner) error {
	return r.Queue.MoveChecked(a.settings.From, a.settings.To)
}

// PlayAtAction moves the cursor and signals playback.
type PlayAtAction struct {
	settings indexSettings
}

func (a *PlayAtAction) Name() string { return "play_at" }

func (a *PlayAtAction) Description() string {
	return "Plays the queue item at the given index"
}

func (a *PlayAtAction) ValidateSettings(settings map[string]any) error {
	return decodeSettings(settings, &a.settings)
}

func (a *PlayAtAction) Apply(ctx context.Context, r *Runner) error {
	return r.Queue.PlayAtChecked(a.settings.Index)
}

// setRepeatSettings represents the settings for set_repeat.
type setRepeatSettings struct {
	Mode string `mapstructure:"mode" validate:"required,oneof=off track queue"`
}

// SetRepeatAction sets the repeat mode.
type SetRepeatAction struct {
	settings setRepeatSettings
}

func (a *SetRepeatAction) Name() string { return "set_repeat" }

func (a *SetRepeatAction) Description() string {
	return "Sets the repeat mode (off, track or queue)"
}

func (a *SetRepeatAction) ValidateSettings(settings map[string]any) error {
	return decodeSettings(settings, &a.settings)
}

func (a *SetRepeatAction) Apply(ctx context.Context, r *Runner) error {
	mode, _ := queue.ParseRepeatMode(a.settings.Mode) // validated by oneof
	r.Queue.SetRepeat(mode)
	return nil
}

// setShuffleSettings represents the settings for set_shuffle.
type setShuffleSettings struct {
	Enabled bool `mapstructure:"enabled"`
}

// SetShuffleAction sets the shuffle flag.
type SetShuffleAction struct {
	settings setShuffleSettings
}

func (a *SetShuffleAction) Name() string { return "set_shuffle" }

func (a *SetShuffleAction) Description() string {
	return "Enables or disables shuffle-on-insert"
}

func (a *SetShuffleAction) ValidateSettings(settings map[string]any) error {
	return decodeSettings(settings, &a.settings)
}

func (a *SetShuffleAction) Apply(ctx context.Context, r *Runner) error {
	r.Queue.SetShuffleEnabled(a.settings.Enabled)
	return nil
}

// AdvanceAction resolves and plays the next item, as when the current
// one finishes naturally.
type AdvanceAction struct{}

func (a *AdvanceAction) Name() string { return "advance" }

func (a *AdvanceAction) Description() string {
	return "Advances to the next item under the current repeat mode"
}

func (a *AdvanceAction) ValidateSettings(settings map[string]any) error { return nil }

func (a *AdvanceAction) Apply(ctx context.Context, r *Runner) error {
	r.Queue.Advance()
	return nil
}

// ClearQueueAction empties the queue.
type ClearQueueAction struct{}

func (a *ClearQueueAction) Name() string { return "clear_queue" }

func (a *ClearQueueAction) Description() string {
	return "Removes all items from the queue"
}

func (a *ClearQueueAction) ValidateSettings(settings map[string]any) error { return nil }

func (a *ClearQueueAction) Apply(ctx context.Context, r *Runner) error {
	r.Queue.Clear()
	return nil
}

func init() {
	Register("set_queue", func() Action { return &SetQueueAction{} })
	Register("play_all", func() Action { return &PlayAllAction{} })
	Register("insert_next", func() Action { return &InsertNextAction{} })
	Register("add_to_queue", func() Action { return &AddToQueueAction{} })
	Register("remove_at", func() Action { return &RemoveAtAction{} })
	Register("move_track", func() Action { return &MoveTrackAction{} })
	Register("play_at", func() Action { return &PlayAtAction{} })
	Register("set_repeat", func() Action { return &SetRepeatAction{} })
	Register("set_shuffle", func() Action { return &SetShuffleAction{} })
	Register("advance", func() Action { return &AdvanceAction{} })
	Register("clear_queue", func() Action { return &ClearQueueAction{} })
}

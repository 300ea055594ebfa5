package popup

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig keeps transitions short so tests stay fast; sleeps below
// are several multiples of these durations.
func testConfig() Config {
	return Config{
		EnterDelay:        5 * time.Millisecond,
		AnimationDuration: 30 * time.Millisecond,
		AnimationBuffer:   10 * time.Millisecond,
		CloseGrace:        25 * time.Millisecond,
	}
}

type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) record(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) snapshot() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]State, len(r.states))
	copy(out, r.states)
	return out
}

func TestCoordinator_OpenBecomesVisible(t *testing.T) {
	c := NewCoordinator(testConfig())
	defer c.Shutdown()

	c.Open(KindTrack, Position{X: 10, Y: 20}, "payload")

	// Installed but not yet visible: the renderer must observe the
	// pre-transition frame first
	s := c.State()
	assert.Equal(t, KindTrack, s.Kind)
	assert.Equal(t, PhaseOpening, s.Phase)
	assert.False(t, s.Visible)
	assert.Equal(t, Position{X: 10, Y: 20}, s.Position)
	assert.Equal(t, "payload", s.Payload)
	assert.Equal(t, uint64(1), s.Generation)

	time.Sleep(60 * time.Millisecond)

	s = c.State()
	assert.Equal(t, PhaseOpen, s.Phase)
	assert.True(t, s.Visible)
}

func TestCoordinator_OpenClosesPrevious(t *testing.T) {
	c := NewCoordinator(testConfig())
	defer c.Shutdown()

	rec := &recorder{}
	unsub := c.Subscribe(rec.record)
	defer unsub()

	c.Open(KindTrack, Position{}, nil)
	time.Sleep(60 * time.Millisecond)

	c.Open(KindAlbum, Position{}, nil)

	// The old popup begins its exit immediately
	s := c.State()
	assert.Equal(t, KindTrack, s.Kind)
	assert.Equal(t, PhaseClosing, s.Phase)
	assert.False(t, s.Visible)

	time.Sleep(150 * time.Millisecond)

	s = c.State()
	assert.Equal(t, KindAlbum, s.Kind)
	assert.Equal(t, PhaseOpen, s.Phase)
	assert.True(t, s.Visible)

	// The new popup never becomes visible before the old one has been
	// observed invisible at least once
	states := rec.snapshot()
	firstAlbum := -1
	for i, st := range states {
		if st.Kind == KindAlbum {
			firstAlbum = i
			break
		}
	}
	require.GreaterOrEqual(t, firstAlbum, 0, "album popup never installed")
	assert.False(t, states[firstAlbum].Visible, "album must install invisible")

	sawTrackHidden := false
	for _, st := range states[:firstAlbum] {
		if st.Kind == KindTrack && !st.Visible {
			sawTrackHidden = true
		}
	}
	assert.True(t, sawTrackHidden, "track popup never observed hidden before album installed")
}

func TestCoordinator_CloseIdempotent(t *testing.T) {
	c := NewCoordinator(testConfig())
	defer c.Shutdown()

	c.Open(KindArtist, Position{}, "artist-42")
	time.Sleep(60 * time.Millisecond)

	rec := &recorder{}
	unsub := c.Subscribe(rec.record)
	defer unsub()

	c.Close()
	c.Close()

	// Exactly one transition for the two calls
	assert.Len(t, rec.snapshot(), 1)
	assert.Equal(t, PhaseClosing, c.State().Phase)

	time.Sleep(100 * time.Millisecond)

	states := rec.snapshot()
	require.Len(t, states, 2)
	last := states[1]
	assert.Equal(t, PhaseClosed, last.Phase)
	assert.Equal(t, KindNone, last.Kind)
	assert.Nil(t, last.Payload)
}

func TestCoordinator_CloseWhenClosedIsNoop(t *testing.T) {
	c := NewCoordinator(testConfig())
	defer c.Shutdown()

	rec := &recorder{}
	unsub := c.Subscribe(rec.record)
	defer unsub()

	c.Close()
	c.CancelPendingClose()
	c.ScheduleDeferredClose()
	time.Sleep(60 * time.Millisecond)

	assert.Empty(t, rec.snapshot())
	assert.Equal(t, PhaseClosed, c.State().Phase)
}

func TestCoordinator_GraceWindowCancel(t *testing.T) {
	c := NewCoordinator(testConfig())
	defer c.Shutdown()

	c.Open(KindTrack, Position{}, nil)
	time.Sleep(60 * time.Millisecond)

	c.ScheduleDeferredClose()
	time.Sleep(5 * time.Millisecond)
	c.CancelPendingClose()

	time.Sleep(120 * time.Millisecond)

	s := c.State()
	assert.Equal(t, PhaseOpen, s.Phase)
	assert.True(t, s.Visible)
	assert.Equal(t, KindTrack, s.Kind)
}

func TestCoordinator_GraceWindowElapses(t *testing.T) {
	c := NewCoordinator(testConfig())
	defer c.Shutdown()

	c.Open(KindTrack, Position{}, nil)
	time.Sleep(60 * time.Millisecond)

	c.ScheduleDeferredClose()
	time.Sleep(150 * time.Millisecond)

	s := c.State()
	assert.Equal(t, PhaseClosed, s.Phase)
	assert.Equal(t, KindNone, s.Kind)
	assert.False(t, s.Visible)
}

func TestCoordinator_OpenCancelsDeferredClose(t *testing.T) {
	c := NewCoordinator(testConfig())
	defer c.Shutdown()

	rec := &recorder{}
	unsub := c.Subscribe(rec.record)
	defer unsub()

	c.Open(KindTrack, Position{}, nil)
	time.Sleep(60 * time.Millisecond)

	// Outside-click dismissal racing a new trigger click
	c.ScheduleDeferredClose()
	c.Open(KindAlbum, Position{}, nil)

	time.Sleep(200 * time.Millisecond)

	s := c.State()
	assert.Equal(t, KindAlbum, s.Kind)
	assert.Equal(t, PhaseOpen, s.Phase)
	assert.True(t, s.Visible)

	// The superseded deferred close never cleared the coordinator
	for _, st := range rec.snapshot() {
		assert.NotEqual(t, PhaseClosed, st.Phase)
	}
}

func TestCoordinator_ReopenDuringClose(t *testing.T) {
	c := NewCoordinator(testConfig())
	defer c.Shutdown()

	rec := &recorder{}
	unsub := c.Subscribe(rec.record)
	defer unsub()

	c.Open(KindTrack, Position{}, nil)
	time.Sleep(60 * time.Millisecond)

	c.Close()
	time.Sleep(10 * time.Millisecond) // mid exit animation
	c.Open(KindPlaylist, Position{}, nil)

	time.Sleep(200 * time.Millisecond)

	s := c.State()
	assert.Equal(t, KindPlaylist, s.Kind)
	assert.Equal(t, PhaseOpen, s.Phase)
	assert.True(t, s.Visible)

	// The cancelled clear timer must not have fired
	for _, st := range rec.snapshot() {
		assert.NotEqual(t, PhaseClosed, st.Phase)
	}
}

func TestCoordinator_RapidOpensDropStaleTimers(t *testing.T) {
	c := NewCoordinator(testConfig())
	defer c.Shutdown()

	rec := &recorder{}
	unsub := c.Subscribe(rec.record)
	defer unsub()

	c.Open(KindTrack, Position{}, nil)
	c.Open(KindAlbum, Position{}, nil) // supersedes before track is shown

	time.Sleep(200 * time.Millisecond)

	s := c.State()
	assert.Equal(t, KindAlbum, s.Kind)
	assert.Equal(t, PhaseOpen, s.Phase)

	// The superseded popup's enter transition never fired
	for _, st := range rec.snapshot() {
		if st.Kind == KindTrack {
			assert.False(t, st.Visible)
		}
	}
	assert.Equal(t, uint64(2), s.Generation)
}

func TestCoordinator_ShutdownCancelsTimers(t *testing.T) {
	c := NewCoordinator(testConfig())

	rec := &recorder{}
	unsub := c.Subscribe(rec.record)
	defer unsub()

	c.Open(KindTrack, Position{}, nil)
	c.Shutdown()

	time.Sleep(60 * time.Millisecond)

	// Only the install transition was observed; the enter transition
	// was cancelled
	assert.Len(t, rec.snapshot(), 1)
	s := c.State()
	assert.Equal(t, PhaseOpening, s.Phase)
	assert.False(t, s.Visible)
}

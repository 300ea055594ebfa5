package popup

import (
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/purr/campband-sub002/internal/app/notify"
)

// Config holds coordinator transition timing.
type Config struct {
	EnterDelay        time.Duration // Delay before the enter transition starts
	AnimationDuration time.Duration // Enter/exit animation duration
	AnimationBuffer   time.Duration // Extra slack after the exit animation
	CloseGrace        time.Duration // Grace window for deferred (outside-click) closes
}

// DefaultConfig returns the standard transition timing.
func DefaultConfig() Config {
	return Config{
		EnterDelay:        16 * time.Millisecond,
		AnimationDuration: 150 * time.Millisecond,
		AnimationBuffer:   30 * time.Millisecond,
		CloseGrace:        50 * time.Millisecond,
	}
}

// Coordinator arbitrates visibility of contextual popups so that at
// most one popup is active at a time. Opening a popup closes any other
// first, with the exit animation allowed to finish before the new popup
// installs. Deferred callbacks carry the generation token captured at
// scheduling time and no-op once a newer request has superseded them.
//
// Listeners are invoked synchronously while the coordinator lock is
// held, so the observed notification order matches call order; they
// must not call back into the coordinator.
type Coordinator struct {
	mu  sync.Mutex
	cfg Config
	hub *notify.Hub[State]

	kind       Kind
	phase      Phase
	position   Position
	payload    any
	visible    bool
	generation uint64

	// Deadline of the in-flight exit animation, valid while closing
	closeDeadline time.Time

	showTimerCancel    func()
	clearTimerCancel   func()
	installTimerCancel func()
	graceTimerCancel   func()
}

// NewCoordinator creates a new coordinator with the given timing.
func NewCoordinator(cfg Config) *Coordinator {
	return &Coordinator{
		cfg: cfg,
		hub: notify.NewHub[State](),
	}
}

// Subscribe adds a state-change listener and returns a function that
// removes it. Each logical transition produces exactly one call.
func (c *Coordinator) Subscribe(fn func(State)) func() {
	return c.hub.Subscribe(fn)
}

// State returns a snapshot of the current coordinator state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Open installs a popup of the given kind at the given position. Any
// other popup is closed first; its exit animation finishes before the
// new popup installs. Returns after scheduling, not after the enter
// transition completes.
func (c *Coordinator) Open(kind Kind, pos Position, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	gen := c.generation

	// A pending deferred close is superseded by the new open
	c.cancelGraceLocked()

	switch c.phase {
	case PhaseClosed:
		c.installLocked(gen, kind, pos, payload)
	case PhaseOpening, PhaseOpen:
		c.beginCloseLocked()
		c.scheduleInstallLocked(gen, kind, pos, payload)
	case PhaseClosing:
		c.cancelClearLocked()
		c.scheduleInstallLocked(gen, kind, pos, payload)
	}
}

// Close starts the exit transition for the current popup. No-ops when
// nothing is open or a close is already in flight.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

// ScheduleDeferredClose delays the close by the grace window so that a
// competing open arriving within it cancels the close instead of
// causing a close-then-reopen flicker. No-ops when nothing is open.
func (c *Coordinator) ScheduleDeferredClose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseClosed || c.phase == PhaseClosing {
		return
	}

	gen := c.generation
	c.cancelGraceLocked()
	c.graceTimerCancel = after(c.cfg.CloseGrace, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if gen != c.generation {
			return
		}
		c.graceTimerCancel = nil
		c.closeLocked()
	})
}

// CancelPendingClose cancels a close scheduled by ScheduleDeferredClose.
func (c *Coordinator) CancelPendingClose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelGraceLocked()
}

// Shutdown cancels all outstanding timers. Called when the owning UI
// unmounts; the coordinator must not be used afterwards.
func (c *Coordinator) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelShowLocked()
	c.cancelClearLocked()
	c.cancelInstallLocked()
	c.cancelGraceLocked()
}

// installLocked installs the popup and schedules the enter transition.
// The not-yet-visible frame is published first so the renderer observes
// visible=false before the transition, which is what drives the
// animation instead of an instant jump.
func (c *Coordinator) installLocked(gen uint64, kind Kind, pos Position, payload any) {
	c.kind = kind
	c.position = pos
	c.payload = payload
	c.visible = false
	c.phase = PhaseOpening
	c.publishLocked()

	c.cancelShowLocked()
	c.showTimerCancel = after(c.cfg.EnterDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if gen != c.generation || c.phase != PhaseOpening {
			return
		}
		c.showTimerCancel = nil
		c.visible = true
		c.phase = PhaseOpen
		c.publishLocked()
	})
}

// scheduleInstallLocked defers the install until the in-flight exit
// animation has visually finished, so an exiting and an entering popup
// never overlap.
func (c *Coordinator) scheduleInstallLocked(gen uint64, kind Kind, pos Position, payload any) {
	c.cancelInstallLocked()
	c.installTimerCancel = after(time.Until(c.closeDeadline), func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if gen != c.generation {
			return
		}
		c.installTimerCancel = nil
		c.installLocked(gen, kind, pos, payload)
	})
}

func (c *Coordinator) closeLocked() {
	if c.phase == PhaseClosed || c.phase == PhaseClosing {
		return
	}

	c.cancelGraceLocked()
	c.beginCloseLocked()
	c.scheduleClearLocked()
}

// beginCloseLocked starts the exit transition: visibility drops
// immediately, state-clear is deferred until the animation finishes.
func (c *Coordinator) beginCloseLocked() {
	c.cancelShowLocked()
	c.visible = false
	c.phase = PhaseClosing
	c.closeDeadline = time.Now().Add(c.cfg.AnimationDuration + c.cfg.AnimationBuffer)
	c.publishLocked()
}

func (c *Coordinator) scheduleClearLocked() {
	gen := c.generation
	c.cancelClearLocked()
	c.clearTimerCancel = after(time.Until(c.closeDeadline), func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if gen != c.generation || c.phase != PhaseClosing {
			return
		}
		c.clearTimerCancel = nil
		c.kind = KindNone
		c.payload = nil
		c.visible = false
		c.phase = PhaseClosed
		c.publishLocked()
	})
}

func (c *Coordinator) cancelShowLocked() {
	if c.showTimerCancel != nil {
		c.showTimerCancel()
		c.showTimerCancel = nil
	}
}

func (c *Coordinator) cancelClearLocked() {
	if c.clearTimerCancel != nil {
		c.clearTimerCancel()
		c.clearTimerCancel = nil
	}
}

func (c *Coordinator) cancelInstallLocked() {
	if c.installTimerCancel != nil {
		c.installTimerCancel()
		c.installTimerCancel = nil
	}
}

func (c *Coordinator) cancelGraceLocked() {
	if c.graceTimerCancel != nil {
		c.graceTimerCancel()
		c.graceTimerCancel = nil
	}
}

func (c *Coordinator) snapshotLocked() State {
	return State{
		Kind:       c.kind,
		Phase:      c.phase,
		Position:   c.position,
		Payload:    c.payload,
		Visible:    c.visible,
		Generation: c.generation,
	}
}

// publishLocked notifies subscribers of one logical transition.
// Must be called with lock held.
func (c *Coordinator) publishLocked() {
	zlog.Debug().Msgf("popup: %s kind=%s visible=%t gen=%d",
		c.phase, c.kind, c.visible, c.generation)
	c.hub.Publish(c.snapshotLocked())
}

// after runs callback once the duration elapses, returning a cancel
// function. Cancellation alone is not relied upon for correctness;
// callbacks re-check the generation token at fire time.
func after(d time.Duration, callback func()) func() {
	if d < 0 {
		d = 0
	}
	t := time.AfterFunc(d, callback)
	return func() { t.Stop() }
}

package export

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/andy/quotepad/internal/domain"
)

// DefaultDelay is the quiet period after the last change before an export is
// built.
const DefaultDelay = 500 * time.Millisecond

// ErrNothingScheduled is returned by Flush before any snapshot was scheduled.
var ErrNothingScheduled = errors.New("no snapshot scheduled for export")

// BuildFunc produces an artifact from a snapshot.
type BuildFunc func(inv domain.Invoice) (*Artifact, error)

// State of the trigger.
type State int

const (
	StateIdle State = iota
	StatePending
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Status is a point-in-time view of the trigger.
type Status struct {
	State    State
	Artifact *Artifact
	Err      error
}

// Trigger owns the single pending export job. Each Schedule cancels the
// pending job and starts a new quiet period; a build overtaken by a newer
// snapshot is discarded.
type Trigger struct {
	delay time.Duration
	build BuildFunc

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	latest  *domain.Invoice
	state   State
	ready   *Artifact
	err     error
	onReady func(*Artifact, error)
}

// NewTrigger creates a trigger. A non-positive delay uses DefaultDelay.
func NewTrigger(delay time.Duration, build BuildFunc) *Trigger {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Trigger{delay: delay, build: build}
}

// OnReady registers a callback invoked from the timer goroutine after each
// published build.
func (t *Trigger) OnReady(fn func(*Artifact, error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onReady = fn
}

// Schedule records inv as the latest snapshot and restarts the quiet period.
func (t *Trigger) Schedule(inv domain.Invoice) {
	snap := inv.Clone()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	seq := t.seq
	if t.timer != nil {
		t.timer.Stop()
	}
	t.latest = &snap
	t.state = StatePending
	t.ready = nil
	t.err = nil
	t.timer = time.AfterFunc(t.delay, func() { t.fire(seq, snap) })
}

func (t *Trigger) fire(seq uint64, snap domain.Invoice) {
	t.mu.Lock()
	if seq != t.seq {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.mu.Unlock()

	art, err := t.run(snap)
	t.publish(seq, art, err)
}

// run calls the build function, turning a panic into an error.
func (t *Trigger) run(snap domain.Invoice) (art *Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("export build panicked: %v", r)
		}
	}()
	return t.build(snap)
}

// publish stores a finished build unless a newer snapshot arrived meanwhile.
func (t *Trigger) publish(seq uint64, art *Artifact, err error) bool {
	t.mu.Lock()
	if seq != t.seq {
		t.mu.Unlock()
		slog.Debug("discard stale export", "seq", seq)
		return false
	}
	t.ready, t.err = art, err
	if err != nil {
		t.state = StateFailed
		slog.Warn("export build failed", "err", err)
	} else {
		t.state = StateReady
		slog.Debug("export ready", "id", art.ID, "file", art.FileName)
	}
	cb := t.onReady
	t.mu.Unlock()

	if cb != nil {
		cb(art, err)
	}
	return true
}

// Status reports the current state.
func (t *Trigger) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{State: t.state, Artifact: t.ready, Err: t.err}
}

// Flush builds the latest snapshot now instead of waiting for the timer.
func (t *Trigger) Flush() (*Artifact, error) {
	t.mu.Lock()
	if t.state == StateReady {
		art := t.ready
		t.mu.Unlock()
		return art, nil
	}
	if t.latest == nil {
		t.mu.Unlock()
		return nil, ErrNothingScheduled
	}
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
	seq := t.seq
	snap := t.latest.Clone()
	t.mu.Unlock()

	art, err := t.run(snap)
	t.publish(seq, art, err)
	return art, err
}

// Stop cancels any pending job.
func (t *Trigger) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if t.state == StatePending {
		t.state = StateIdle
	}
}

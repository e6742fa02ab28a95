package selection

import (
	"testing"
	"time"

	"wordrace/internal/protocol"
)

// fakeScheduler records scheduled callbacks so tests fire them manually.
type fakeScheduler struct {
	pending []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	s.pending = append(s.pending, t)
	return t
}

// fire runs the i-th scheduled callback as the runtime would, regardless of
// Stop; the tracker's generation guard is what must reject stale fires.
func (s *fakeScheduler) fire(i int) {
	s.pending[i].f()
}

func (s *fakeScheduler) fireLast() {
	s.fire(len(s.pending) - 1)
}

// fakeSurface is a 1xN letter row with optional terminal cells.
type fakeSurface struct {
	row      []string
	terminal map[protocol.Coord]bool
}

func (s *fakeSurface) CharAt(r, c int) (string, bool) {
	if r != 0 || c < 0 || c >= len(s.row) {
		return "", false
	}
	return s.row[c], true
}

func (s *fakeSurface) Terminal(r, c int) bool {
	return s.terminal[protocol.Coord{R: r, C: c}]
}

type harness struct {
	tracker   *Tracker
	sched     *fakeScheduler
	submitted []string
}

func newHarness(t *testing.T, letters ...string) *harness {
	t.Helper()
	h := &harness{sched: &fakeScheduler{}}
	h.tracker = NewTracker(Config{
		Scheduler: h.sched,
		Submit:    func(word string) { h.submitted = append(h.submitted, word) },
		Expire:    func(gen uint64) { h.tracker.ExpireGen(gen) },
	})
	h.tracker.Reset(&fakeSurface{row: letters, terminal: map[protocol.Coord]bool{}})
	return h
}

func TestToggleBuildsPathAndSubmitsEagerly(t *testing.T) {
	h := newHarness(t, "C", "A", "T")

	h.tracker.Toggle(0, 0)
	if len(h.submitted) != 0 {
		t.Fatalf("a single-cell path must not submit, got %v", h.submitted)
	}
	h.tracker.Toggle(0, 1)
	h.tracker.Toggle(0, 2)

	if want := []string{"CA", "CAT"}; len(h.submitted) != 2 || h.submitted[0] != want[0] || h.submitted[1] != want[1] {
		t.Errorf("expected submissions %v, got %v", want, h.submitted)
	}
	if h.tracker.Len() != 3 {
		t.Errorf("expected path length 3, got %d", h.tracker.Len())
	}
	for c := 0; c < 3; c++ {
		if !h.tracker.Selected(0, c) {
			t.Errorf("expected (0,%d) selected", c)
		}
	}
}

func TestToggleTwiceReturnsToIdle(t *testing.T) {
	h := newHarness(t, "C", "A", "T")

	h.tracker.Toggle(0, 0)
	h.tracker.Toggle(0, 0)

	if h.tracker.Len() != 0 || h.tracker.Selected(0, 0) {
		t.Error("expected deselected cell and empty path")
	}
	if len(h.submitted) != 0 {
		t.Errorf("expected no submissions, got %v", h.submitted)
	}
}

func TestBacktrackingPreservesSelectionOrder(t *testing.T) {
	h := newHarness(t, "C", "A", "T")

	h.tracker.Toggle(0, 0)
	h.tracker.Toggle(0, 1)
	h.tracker.Toggle(0, 2)
	// Remove the middle cell; the remaining cells keep first-selection order.
	h.tracker.Toggle(0, 1)

	if got := h.submitted[len(h.submitted)-1]; got != "CT" {
		t.Errorf("expected last submission CT, got %q", got)
	}
	path := h.tracker.Path()
	want := []protocol.Coord{{R: 0, C: 0}, {R: 0, C: 2}}
	if len(path) != 2 || path[0] != want[0] || path[1] != want[1] {
		t.Errorf("expected path %v, got %v", want, path)
	}
}

func TestShrinkingToOneCellDoesNotSubmit(t *testing.T) {
	h := newHarness(t, "C", "A")

	h.tracker.Toggle(0, 0)
	h.tracker.Toggle(0, 1) // submits "CA"
	h.tracker.Toggle(0, 1) // path back to length 1

	if len(h.submitted) != 1 {
		t.Errorf("expected exactly one submission, got %v", h.submitted)
	}
}

func TestTerminalCellIsCompletelyIgnored(t *testing.T) {
	h := newHarness(t, "C", "A", "T")
	h.tracker.surface.(*fakeSurface).terminal[protocol.Coord{R: 0, C: 0}] = true

	if h.tracker.Toggle(0, 0) {
		t.Error("expected toggle on a terminal cell to be rejected")
	}
	if h.tracker.Len() != 0 {
		t.Error("expected empty path")
	}
	// Not even the idle timer moves.
	if len(h.sched.pending) != 0 {
		t.Errorf("expected no timer scheduled, got %d", len(h.sched.pending))
	}
}

func TestOutOfGridToggleIgnored(t *testing.T) {
	h := newHarness(t, "C")
	if h.tracker.Toggle(1, 0) || h.tracker.Toggle(0, 5) {
		t.Error("expected out-of-grid toggles to be rejected")
	}
}

func TestIdleTimeoutClearsSelection(t *testing.T) {
	h := newHarness(t, "C", "A", "T")

	h.tracker.Toggle(0, 0)
	h.tracker.Toggle(0, 1)
	if got := h.sched.pending[len(h.sched.pending)-1].d; got != IdleTimeout {
		t.Errorf("expected %v idle timer, got %v", IdleTimeout, got)
	}

	h.sched.fireLast()
	if h.tracker.Len() != 0 || h.tracker.Selected(0, 0) {
		t.Error("expected the idle timeout to clear the selection")
	}
}

func TestToggleResetsIdleTimer(t *testing.T) {
	h := newHarness(t, "C", "A", "T")

	h.tracker.Toggle(0, 0)
	h.tracker.Toggle(0, 1) // reschedules; the first timer is now stale

	// The stale fire must be a no-op even if the runtime delivers it.
	h.sched.fire(0)
	if h.tracker.Len() != 2 {
		t.Errorf("stale timer fire cleared the path, length %d", h.tracker.Len())
	}
	// The current timer still works.
	h.sched.fire(1)
	if h.tracker.Len() != 0 {
		t.Error("expected current timer to clear the path")
	}
}

func TestReleaseDropsClaimedCellsWithoutTimerReset(t *testing.T) {
	h := newHarness(t, "C", "A", "T")

	h.tracker.Toggle(0, 0)
	h.tracker.Toggle(0, 1)
	scheduled := len(h.sched.pending)

	h.tracker.Release([]protocol.Coord{{R: 0, C: 1}, {R: 0, C: 2}})

	if h.tracker.Len() != 1 || h.tracker.Selected(0, 1) {
		t.Error("expected claimed cell released from the path")
	}
	if !h.tracker.Selected(0, 0) {
		t.Error("expected unclaimed cell to stay selected")
	}
	if len(h.sched.pending) != scheduled {
		t.Error("Release must not touch the idle timer")
	}
}

func TestClearCancelsTimer(t *testing.T) {
	h := newHarness(t, "C", "A")

	h.tracker.Toggle(0, 0)
	h.tracker.Clear()

	if h.tracker.Len() != 0 {
		t.Error("expected empty path after Clear")
	}
	if !h.sched.pending[0].stopped {
		t.Error("expected Clear to stop the pending timer")
	}
	// A stale fire after Clear stays a no-op.
	h.tracker.Toggle(0, 0)
	h.sched.fire(0)
	if h.tracker.Len() != 1 {
		t.Error("stale fire after Clear cleared a fresh selection")
	}
}

func TestNoSurfaceMeansNoSelection(t *testing.T) {
	tr := NewTracker(Config{Scheduler: &fakeScheduler{}})
	if tr.Toggle(0, 0) {
		t.Error("expected toggle without a surface to be rejected")
	}
}

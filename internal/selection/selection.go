// Package selection tracks the local player's in-progress cell path: which
// cells are transiently selected, in what order, and the idle timeout that
// clears an abandoned selection. It owns only this local layer; terminal
// cell state belongs to the board and is consulted, never mutated.
package selection

import (
	"strings"
	"time"

	"wordrace/internal/protocol"
)

// IdleTimeout bounds how long a half-made selection persists with no new
// toggle before it is cleared.
const IdleTimeout = 4000 * time.Millisecond

// Surface is the board as the tracker sees it: letters and terminal cells.
type Surface interface {
	CharAt(r, c int) (string, bool)
	Terminal(r, c int) bool
}

// Config wires a Tracker to its owner. The owner serializes all calls into
// the Tracker; the idle timer fires on a scheduler goroutine, so it only
// forwards its generation through Expire, and the owner calls ExpireGen
// under its own lock.
type Config struct {
	Scheduler Scheduler
	Timeout   time.Duration // defaults to IdleTimeout
	Submit    func(word string)
	Expire    func(gen uint64)
}

// Tracker is the selection state machine for one client session.
type Tracker struct {
	cfg     Config
	surface Surface

	path     []protocol.Coord
	selected map[protocol.Coord]bool
	timer    Timer
	gen      uint64
}

// NewTracker returns an empty tracker with no surface; toggles are ignored
// until Reset installs the round's board.
func NewTracker(cfg Config) *Tracker {
	if cfg.Scheduler == nil {
		cfg.Scheduler = SystemScheduler()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = IdleTimeout
	}
	return &Tracker{cfg: cfg, selected: make(map[protocol.Coord]bool)}
}

// Reset installs the surface for a new round and drops all transient state.
func (t *Tracker) Reset(surface Surface) {
	t.surface = surface
	t.Clear()
}

// Toggle flips the selection state of a cell. Cells outside the grid or
// already claimed by a found word are ignored entirely: no path change, no
// timer reset. Every toggle that leaves more than one cell selected submits
// the concatenated path; the server decides whether it is a word.
func (t *Tracker) Toggle(r, c int) bool {
	if t.surface == nil {
		return false
	}
	if _, ok := t.surface.CharAt(r, c); !ok {
		return false
	}
	if t.surface.Terminal(r, c) {
		return false
	}

	t.rearm()

	pos := protocol.Coord{R: r, C: c}
	if t.selected[pos] {
		delete(t.selected, pos)
		for i, p := range t.path {
			if p == pos {
				t.path = append(t.path[:i], t.path[i+1:]...)
				break
			}
		}
	} else {
		t.selected[pos] = true
		t.path = append(t.path, pos)
	}

	if len(t.path) > 1 && t.cfg.Submit != nil {
		t.cfg.Submit(t.word())
	}
	return true
}

func (t *Tracker) word() string {
	var sb strings.Builder
	for _, pos := range t.path {
		ch, _ := t.surface.CharAt(pos.R, pos.C)
		sb.WriteString(ch)
	}
	return sb.String()
}

// rearm cancels the pending idle timer and schedules a fresh one.
func (t *Tracker) rearm() {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	gen := t.gen
	t.timer = t.cfg.Scheduler.AfterFunc(t.cfg.Timeout, func() {
		if t.cfg.Expire != nil {
			t.cfg.Expire(gen)
		}
	})
}

// ExpireGen clears the selection if gen still names the pending timer. A
// toggle after the timer was scheduled bumps the generation, making the
// stale fire a no-op. Returns true if anything was cleared.
func (t *Tracker) ExpireGen(gen uint64) bool {
	if gen != t.gen || len(t.path) == 0 {
		return false
	}
	t.drop()
	return true
}

// Release removes cells claimed by a found word from the path without
// resetting the idle timer. The race between a local selection and an
// opponent's simultaneous find always resolves in favor of the find.
func (t *Tracker) Release(indices []protocol.Coord) {
	for _, pos := range indices {
		if !t.selected[pos] {
			continue
		}
		delete(t.selected, pos)
		for i, p := range t.path {
			if p == pos {
				t.path = append(t.path[:i], t.path[i+1:]...)
				break
			}
		}
	}
}

// Clear empties the selection and cancels the idle timer.
func (t *Tracker) Clear() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
	t.drop()
}

func (t *Tracker) drop() {
	t.path = t.path[:0]
	for pos := range t.selected {
		delete(t.selected, pos)
	}
}

// Selected reports whether a cell is part of the in-progress path.
func (t *Tracker) Selected(r, c int) bool {
	return t.selected[protocol.Coord{R: r, C: c}]
}

// Len is the number of currently selected cells.
func (t *Tracker) Len() int { return len(t.path) }

// Path returns a copy of the path in selection order.
func (t *Tracker) Path() []protocol.Coord {
	out := make([]protocol.Coord, len(t.path))
	copy(out, t.path)
	return out
}

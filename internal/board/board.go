// Package board holds the read-only view model of a round: the letter grid,
// the word list, and everything the server has confirmed about them. It is
// pure data derived from server pushes; rendering and input live elsewhere.
package board

import (
	"strings"

	"wordrace/internal/protocol"
)

// CellState is the renderable state of one grid cell. The states are
// mutually exclusive; FoundMe/FoundEnemy are terminal for the round.
type CellState int

const (
	CellIdle CellState = iota
	CellSelected
	CellFoundMe
	CellFoundEnemy
)

func (s CellState) String() string {
	switch s {
	case CellSelected:
		return "selected"
	case CellFoundMe:
		return "found-me"
	case CellFoundEnemy:
		return "found-enemy"
	default:
		return "idle"
	}
}

// Board is the state of the current round. It is created fresh on every
// game_start and mutated only by ApplyFound/SetScores in response to server
// pushes.
type Board struct {
	grid    [][]string
	words   []string
	crossed map[string]bool
	owners  map[protocol.Coord]string // finder id per terminal cell
	scores  map[string]int

	Theme        string
	CurrentRound int
	TotalRounds  int
}

// New builds a Board from a game_start payload, replaying its found history
// through the same path as incremental update_board events.
func New(start *protocol.GameStartPayload) *Board {
	b := &Board{
		grid:         start.Grid,
		words:        start.Words,
		crossed:      make(map[string]bool, len(start.Words)),
		owners:       make(map[protocol.Coord]string),
		scores:       make(map[string]int, len(start.Scores)),
		Theme:        start.Theme,
		CurrentRound: start.CurrentRound,
		TotalRounds:  start.TotalRounds,
	}
	// The server omits round counters on older rooms.
	if b.CurrentRound == 0 {
		b.CurrentRound = 1
	}
	if b.TotalRounds == 0 {
		b.TotalRounds = 5
	}
	for _, ev := range start.FoundHistory {
		b.ApplyFound(ev)
	}
	b.SetScores(start.Scores)
	return b
}

// Rows and Cols report the grid dimensions, derived from the received grid.
func (b *Board) Rows() int { return len(b.grid) }

func (b *Board) Cols() int {
	if len(b.grid) == 0 {
		return 0
	}
	return len(b.grid[0])
}

// CharAt returns the letter at (r, c). ok is false outside the grid.
func (b *Board) CharAt(r, c int) (string, bool) {
	if r < 0 || r >= len(b.grid) || c < 0 || c >= len(b.grid[r]) {
		return "", false
	}
	return b.grid[r][c], true
}

// Terminal reports whether the cell is permanently assigned to a found word
// for the remainder of the round.
func (b *Board) Terminal(r, c int) bool {
	_, ok := b.owners[protocol.Coord{R: r, C: c}]
	return ok
}

// ApplyFound marks a word and its cells as found. It is idempotent:
// re-applying an event for an already-crossed word only reconfirms cell
// ownership. Returns true if the word was newly crossed.
func (b *Board) ApplyFound(ev protocol.FoundEvent) bool {
	fresh := !b.crossed[ev.Word]
	b.crossed[ev.Word] = true
	for _, pos := range ev.Indices {
		b.owners[pos] = ev.Finder
	}
	return fresh
}

// SetScores replaces the score snapshot wholesale.
func (b *Board) SetScores(scores map[string]int) {
	if scores == nil {
		return
	}
	b.scores = scores
}

// Words returns the round's word list in server order.
func (b *Board) Words() []string { return b.words }

// Crossed reports whether a word has been found by anyone.
func (b *Board) Crossed(word string) bool { return b.crossed[word] }

// AllCrossed reports whether every word in the round has been found.
func (b *Board) AllCrossed() bool {
	for _, w := range b.words {
		if !b.crossed[w] {
			return false
		}
	}
	return true
}

// CellState projects the renderable state of one cell. selected is the
// transient local-selection layer owned by the selection tracker; a cell
// claimed by a found word never reports as selected.
func (b *Board) CellState(r, c int, selfID string, selected func(r, c int) bool) CellState {
	if finder, ok := b.owners[protocol.Coord{R: r, C: c}]; ok {
		if finder == selfID {
			return CellFoundMe
		}
		return CellFoundEnemy
	}
	if selected != nil && selected(r, c) {
		return CellSelected
	}
	return CellIdle
}

// MyScore returns the local player's score from the latest snapshot.
func (b *Board) MyScore(selfID string) int { return b.scores[selfID] }

// EnemyScore collapses every non-local player into a single opponent score.
// Rooms hold two players, so no information is lost in practice.
func (b *Board) EnemyScore(selfID string) int {
	enemy := 0
	for id, score := range b.scores {
		if id != selfID {
			enemy = score
		}
	}
	return enemy
}

// Scores exposes the full score snapshot.
func (b *Board) Scores() map[string]int { return b.scores }

// PathWord concatenates the letters under the given coordinates in order.
func (b *Board) PathWord(path []protocol.Coord) string {
	var sb strings.Builder
	for _, pos := range path {
		if ch, ok := b.CharAt(pos.R, pos.C); ok {
			sb.WriteString(ch)
		}
	}
	return sb.String()
}

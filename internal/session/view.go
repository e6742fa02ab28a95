package session

import "wordrace/internal/protocol"

// Read-side accessors for the rendering layer. Each takes the session lock
// so renders see a consistent view while pushes arrive on the transport
// goroutine.

// WordView is one word-list entry as rendered.
type WordView struct {
	Word    string
	Crossed bool
}

func (s *Session) UserID() string {
	return s.userID
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) RoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// GridSize returns the current round's grid dimensions, (0, 0) outside a
// round.
func (s *Session) GridSize() (rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return 0, 0
	}
	return s.board.Rows(), s.board.Cols()
}

// CharAt returns the letter at (r, c), or "" outside the grid or a round.
func (s *Session) CharAt(r, c int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return ""
	}
	ch, _ := s.board.CharAt(r, c)
	return ch
}

// CellClass projects one cell's renderable state as its CSS class name.
func (s *Session) CellClass(r, c int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return ""
	}
	return s.board.CellState(r, c, s.userID, s.sel.Selected).String()
}

// Words returns the word list with per-word crossed state.
func (s *Session) Words() []WordView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return nil
	}
	words := s.board.Words()
	out := make([]WordView, 0, len(words))
	for _, w := range words {
		out = append(out, WordView{Word: w, Crossed: s.board.Crossed(w)})
	}
	return out
}

func (s *Session) MyScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return 0
	}
	return s.board.MyScore(s.userID)
}

func (s *Session) EnemyScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return 0
	}
	return s.board.EnemyScore(s.userID)
}

func (s *Session) ThemeName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil || s.board.Theme == "" {
		return "Random"
	}
	return s.board.Theme
}

// RoundInfo returns the current and total round counters.
func (s *Session) RoundInfo() (current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return 0, 0
	}
	return s.board.CurrentRound, s.board.TotalRounds
}

// SelectionLen is the number of cells in the in-progress path.
func (s *Session) SelectionLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Len()
}

// Result reports the finished match's outcome for the local player. Only
// meaningful in PhaseGameOver.
func (s *Session) Result() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.winner {
	case s.userID:
		return OutcomeWon
	case protocol.WinnerDraw:
		return OutcomeDraw
	default:
		return OutcomeLost
	}
}

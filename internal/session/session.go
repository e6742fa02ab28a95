// Package session owns the client-side session state machine: room
// membership, phase transitions driven by server pushes, the selection
// layer, and persistence of identity and room id across reloads.
package session

import (
	"strings"
	"sync"
	"time"

	"k8s.io/klog/v2"

	"wordrace/internal/board"
	"wordrace/internal/protocol"
	"wordrace/internal/selection"
)

// Phase is the coarse lifecycle stage of a session.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseWaiting
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return "lobby"
	}
}

// Outcome of a finished match, from the local player's perspective.
type Outcome int

const (
	OutcomeLost Outcome = iota
	OutcomeWon
	OutcomeDraw
)

// RejoinDelay is how long after startup the automatic rejoin waits, giving
// the transport time to finish connecting.
const RejoinDelay = 500 * time.Millisecond

// Transport sends one named message to the game server. Ordering and
// delivery are the channel's problem; the session never assumes success and
// waits for server pushes to move its own state.
type Transport interface {
	Send(msg protocol.Message) error
}

// Config carries the session's injected dependencies. OnChange and Notice
// must not synchronously re-enter the session; the frontend dispatches
// re-renders asynchronously.
type Config struct {
	Storage   Storage
	Transport Transport
	Scheduler selection.Scheduler

	OnChange func()                    // state changed, re-render
	Confirm  func(prompt string) bool  // destructive-action confirmation; nil allows
	Notice   func(msg string)          // user-visible error/notice surface
}

// Session is the client session. All mutation happens under mu, in reaction
// to either user input or an inbound push.
type Session struct {
	mu  sync.Mutex
	cfg Config

	userID string
	rooms  RoomStore

	phase  Phase
	roomID string
	status string
	winner string

	board *board.Board
	sel   *selection.Tracker
}

// New builds a session, loading or creating the player identity.
func New(cfg Config) *Session {
	if cfg.Storage == nil {
		cfg.Storage = NewMemStorage()
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = selection.SystemScheduler()
	}
	s := &Session{
		cfg:   cfg,
		rooms: RoomStore{s: cfg.Storage},
	}
	s.userID = LoadOrCreateIdentity(cfg.Storage)
	s.sel = selection.NewTracker(selection.Config{
		Scheduler: cfg.Scheduler,
		Submit:    s.submitWord,
		Expire:    s.onSelectionExpired,
	})
	klog.V(1).Infof("session: identity %s", s.userID)
	return s
}

// CreateRoom requests a fresh room. Any previously persisted room id is
// cleared first; a create never reuses a room.
func (s *Session) CreateRoom(rounds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms.Clear()
	s.roomID = ""
	s.status = "Creating Room..."
	s.send(protocol.EventCreateRoom, protocol.CreateRoomPayload{UserID: s.userID, Rounds: rounds})
	s.notifyLocked()
}

// JoinRoom requests to join (or, with rejoin set, rejoin) a room. An empty
// or whitespace id is declined locally with no request sent.
func (s *Session) JoinRoom(id string, rejoin bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joinLocked(id, rejoin)
	s.notifyLocked()
}

func (s *Session) joinLocked(id string, rejoin bool) {
	if rejoin {
		s.status = "Rejoining previous game..."
	} else {
		// Drop any stale persisted id before attempting, then persist the
		// one being tried; a failed join is cleaned up by the error push.
		s.rooms.Clear()
		s.status = "Joining..."
	}
	s.roomID = id
	s.rooms.Save(id)
	s.send(protocol.EventJoinRoom, protocol.JoinRoomPayload{RoomID: id, UserID: s.userID})
}

// ResumeIfSaved issues a rejoin for a persisted room id, after RejoinDelay
// so the transport can finish connecting. The persisted id is re-checked at
// fire time: a concurrent create or reset invalidates the scheduled rejoin.
// Returns true if a rejoin was scheduled.
func (s *Session) ResumeIfSaved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := s.rooms.Load()
	if saved == "" {
		return false
	}
	s.status = "Rejoining previous game..."
	s.cfg.Scheduler.AfterFunc(RejoinDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.phase != PhaseLobby || s.rooms.Load() != saved {
			klog.V(1).Infof("session: scheduled rejoin for %q invalidated", saved)
			return
		}
		s.joinLocked(saved, true)
		s.notifyLocked()
	})
	s.notifyLocked()
	return true
}

// LeaveGame notifies the server that the local player quits the room. The
// server ends the match for every participant, so the injected confirmation
// gates the send. The session itself resets only when the resulting
// player_left push arrives.
func (s *Session) LeaveGame() {
	if s.cfg.Confirm != nil && !s.cfg.Confirm("Leave the game? This ends the match for all players.") {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roomID == "" {
		return
	}
	s.send(protocol.EventLeaveGame, protocol.LeaveGamePayload{RoomID: s.roomID})
}

// ToggleCell routes a cell interaction to the selection tracker.
func (s *Session) ToggleCell(r, c int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying || s.board == nil {
		return
	}
	if s.sel.Toggle(r, c) {
		s.notifyLocked()
	}
}

// submitWord is the tracker's submission hook; called with mu held.
func (s *Session) submitWord(word string) {
	s.send(protocol.EventWordFound, protocol.WordFoundPayload{
		RoomID: s.roomID,
		Word:   word,
		UserID: s.userID,
	})
}

// onSelectionExpired fires on the scheduler goroutine when the idle timer
// lapses; the generation guard inside ExpireGen discards stale fires.
func (s *Session) onSelectionExpired(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sel.ExpireGen(gen) {
		s.notifyLocked()
	}
}

// Apply interprets one inbound push and drives the session state machine.
func (s *Session) Apply(msg protocol.Message) {
	p, err := msg.Parse()
	if err != nil {
		klog.Errorf("session: failed to parse %s push: %v", msg.Event, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch pl := p.(type) {
	case *protocol.RoomCreatedPayload:
		s.roomID = pl.RoomID
		s.rooms.Save(pl.RoomID)
		s.phase = PhaseWaiting
		s.status = "Room ID: " + pl.RoomID

	case *protocol.ErrorPayload:
		klog.Warningf("session: server error: %s", pl.Message)
		s.noticeLocked("Error: " + pl.Message)
		if isFatalRoomError(pl.Message) {
			// The persisted id is now known-invalid; retrying would recur.
			s.resetLocked()
		}

	case *protocol.GameStartPayload:
		s.phase = PhasePlaying
		s.winner = ""
		s.status = ""
		if saved := s.rooms.Load(); saved != "" {
			s.roomID = saved
		}
		s.board = board.New(pl)
		s.sel.Reset(s.board)
		klog.V(1).Infof("session: round %d/%d started, %d words",
			s.board.CurrentRound, s.board.TotalRounds, len(s.board.Words()))

	case *protocol.UpdateBoardPayload:
		if s.board == nil {
			klog.Warningf("session: update_board before game_start, ignored")
			return
		}
		s.board.ApplyFound(pl.FoundEvent)
		s.board.SetScores(pl.Scores)
		// The find wins any race with an in-progress local selection.
		s.sel.Release(pl.Indices)
		if pl.Finder == s.userID {
			s.sel.Clear()
		}

	case *protocol.GameOverPayload:
		s.phase = PhaseGameOver
		s.winner = pl.Winner
		s.rooms.Clear()
		s.roomID = ""
		s.sel.Clear()

	case *protocol.PlayerLeftPayload:
		s.noticeLocked(pl.Msg)
		s.resetLocked()

	default:
		klog.Warningf("session: ignoring unexpected event %s", msg.Event)
	}

	s.notifyLocked()
}

// Reset returns the session to a fresh Lobby, discarding any finished or
// aborted match.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.notifyLocked()
}

// isFatalRoomError reports whether a server error message invalidates the
// session (room gone or full).
func isFatalRoomError(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "not found") || strings.Contains(m, "full")
}

// resetLocked returns the session to a fresh Lobby, equivalent to
// restarting the client.
func (s *Session) resetLocked() {
	s.rooms.Clear()
	s.roomID = ""
	s.phase = PhaseLobby
	s.status = ""
	s.winner = ""
	s.board = nil
	s.sel.Reset(nil)
}

func (s *Session) send(event protocol.EventType, payload any) {
	if s.cfg.Transport == nil {
		klog.Warningf("session: no transport, dropping %s", event)
		return
	}
	msg, err := protocol.NewMessage(event, payload)
	if err != nil {
		klog.Errorf("session: %v", err)
		return
	}
	if err := s.cfg.Transport.Send(msg); err != nil {
		klog.Errorf("session: send %s failed: %v", event, err)
	}
}

func (s *Session) notifyLocked() {
	if s.cfg.OnChange != nil {
		s.cfg.OnChange()
	}
}

func (s *Session) noticeLocked(msg string) {
	if s.cfg.Notice != nil {
		s.cfg.Notice(msg)
	}
}

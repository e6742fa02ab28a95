// Package protocol defines the named events and payloads exchanged with the
// word-search game server over the realtime channel. It is the only package
// that knows the wire format.
package protocol

import (
	"encoding/json"
	"fmt"
)

// EventType names a message on the realtime channel.
type EventType string

const (
	// Client -> server.
	EventCreateRoom EventType = "create_room" // request a new room with N rounds
	EventJoinRoom   EventType = "join_room"   // join or rejoin an existing room
	EventWordFound  EventType = "word_found"  // candidate word submission
	EventLeaveGame  EventType = "leave_game"  // voluntary exit, ends the match for all

	// Server -> client.
	EventRoomCreated EventType = "room_created" // room exists, waiting for an opponent
	EventError       EventType = "error"        // server-reported error message
	EventGameStart   EventType = "game_start"   // new round state (grid, words, scores)
	EventUpdateBoard EventType = "update_board" // one confirmed find + score snapshot
	EventGameOver    EventType = "game_over"    // match finished
	EventPlayerLeft  EventType = "player_left"  // room closed because a player left
)

// Message is the envelope for every event on the channel.
type Message struct {
	Event   EventType       `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage creates a Message with a marshaled payload.
func NewMessage(event EventType, payload any) (Message, error) {
	if payload == nil {
		return Message{Event: event}, nil
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}
	return Message{Event: event, Payload: payloadBytes}, nil
}

// Parse unmarshals the message payload into the payload type for its event
// (RoomCreatedPayload, GameStartPayload, etc.)
func (m *Message) Parse() (any, error) {
	var target any
	switch m.Event {
	case EventCreateRoom:
		target = &CreateRoomPayload{}
	case EventJoinRoom:
		target = &JoinRoomPayload{}
	case EventWordFound:
		target = &WordFoundPayload{}
	case EventLeaveGame:
		target = &LeaveGamePayload{}
	case EventRoomCreated:
		target = &RoomCreatedPayload{}
	case EventError:
		target = &ErrorPayload{}
	case EventGameStart:
		target = &GameStartPayload{}
	case EventUpdateBoard:
		target = &UpdateBoardPayload{}
	case EventGameOver:
		target = &GameOverPayload{}
	case EventPlayerLeft:
		target = &PlayerLeftPayload{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", m.Event)
	}

	if len(m.Payload) == 0 {
		return target, nil
	}

	err := json.Unmarshal(m.Payload, target)
	return target, err
}

// Coord references one grid cell, row-major.
type Coord struct {
	R int `json:"r"`
	C int `json:"c"`
}

// CreateRoomPayload is the payload for EventCreateRoom.
type CreateRoomPayload struct {
	UserID string `json:"userId"`
	Rounds int    `json:"rounds"`
}

// JoinRoomPayload is the payload for EventJoinRoom. Rejoining after a reload
// is the same message with the persisted room id.
type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

// WordFoundPayload is the payload for EventWordFound. The server decides
// whether Word is a valid, not-yet-found word; the client submits eagerly.
type WordFoundPayload struct {
	RoomID string `json:"roomId"`
	Word   string `json:"word"`
	UserID string `json:"userId"`
}

// LeaveGamePayload is the payload for EventLeaveGame.
type LeaveGamePayload struct {
	RoomID string `json:"roomId"`
}

// RoomCreatedPayload is the payload for EventRoomCreated.
type RoomCreatedPayload struct {
	RoomID string `json:"roomId"`
	Theme  string `json:"theme,omitempty"`
}

// ErrorPayload is the payload for EventError. The server emits a bare string
// ("Room not found!"), but an object form with a message field is accepted
// too.
type ErrorPayload struct {
	Message string `json:"message"`
}

func (e *ErrorPayload) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Message = s
		return nil
	}
	type plain ErrorPayload
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	e.Message = p.Message
	return nil
}

// FoundEvent is a server-confirmed claim that a word occupies specific grid
// cells, attributed to the player who found it.
type FoundEvent struct {
	Word    string  `json:"word"`
	Finder  string  `json:"finder"`
	Indices []Coord `json:"indices"`
}

// GameStartPayload is the payload for EventGameStart. It carries the full
// round state; FoundHistory is non-empty when (re)joining a round already in
// progress.
type GameStartPayload struct {
	Grid         [][]string     `json:"grid"`
	Words        []string       `json:"words"`
	Theme        string         `json:"theme,omitempty"`
	CurrentRound int            `json:"current_round,omitempty"`
	TotalRounds  int            `json:"total_rounds,omitempty"`
	FoundHistory []FoundEvent   `json:"found_history,omitempty"`
	Scores       map[string]int `json:"scores"`
}

// UpdateBoardPayload is the payload for EventUpdateBoard: one FoundEvent
// plus a wholesale score snapshot.
type UpdateBoardPayload struct {
	FoundEvent
	Scores map[string]int `json:"scores"`
}

// WinnerDraw is the GameOverPayload.Winner value for a tied match.
const WinnerDraw = "draw"

// GameOverPayload is the payload for EventGameOver. Winner is a player id,
// or WinnerDraw.
type GameOverPayload struct {
	Winner string `json:"winner"`
}

// PlayerLeftPayload is the payload for EventPlayerLeft.
type PlayerLeftPayload struct {
	Msg string `json:"msg"`
}

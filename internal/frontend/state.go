package frontend

import (
	"context"
	"errors"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"wordrace/internal/protocol"
	"wordrace/internal/session"
	"wordrace/internal/transport"
)

// defaultLocalServer is where the game server listens during development.
const defaultLocalServer = "ws://localhost:5000/ws"

var errNotConnected = errors.New("not connected to the game server")

// ClientState owns the session, the realtime channel, and the re-render
// fan-out. It is constructed once at startup; components register listeners
// for state updates.
type ClientState struct {
	Session *session.Session
	Channel *transport.Channel
	ConnErr string

	// Listeners for state updates.
	Listeners map[string]func()
}

var State *ClientState

// InitState creates the global client state. Safe to call during server
// prerender: storage degrades to memory and no connection is attempted.
func InitState() {
	if State != nil {
		klog.V(1).Infof("InitState: state already exists")
		return
	}
	klog.V(1).Infof("InitState: creating new state")
	State = &ClientState{Listeners: make(map[string]func())}
	State.Session = session.New(session.Config{
		Storage:   newStorage(),
		Transport: State,
		OnChange:  State.Notify,
		Confirm:   confirm,
		Notice:    notice,
	})
	if !app.IsServer {
		State.connect()
	}
}

// Send forwards one message to the live channel. Implements
// session.Transport; the session is wired before the dial completes, so a
// not-yet-connected channel is an error, not a panic.
func (s *ClientState) Send(msg protocol.Message) error {
	ch := s.Channel
	if ch == nil {
		return errNotConnected
	}
	return ch.Send(msg)
}

// connect dials the game server in the background and starts the read loop.
// Reconnection is the transport layer's concern; on a broken channel the
// error is surfaced and the user reloads.
func (s *ClientState) connect() {
	url := gameServerURL()
	go func() {
		ch, err := transport.Dial(context.Background(), url)
		if err != nil {
			klog.Errorf("connect: %v", err)
			s.ConnErr = "Could not reach the game server."
			s.Notify()
			return
		}
		s.Channel = ch
		s.ConnErr = ""
		go ch.ReadLoop(context.Background(), s.Session.Apply, func(error) {
			s.Channel = nil
			s.ConnErr = "Connection to the game server was lost. Reload to reconnect."
			s.Notify()
		})
		// Now that the transport is up, attempt the one-shot rejoin for a
		// persisted room id.
		s.Session.ResumeIfSaved()
		s.Notify()
	}()
}

// gameServerURL resolves the external game server endpoint: explicit
// environment from the shell, else the development default on localhost,
// else same-host wss.
func gameServerURL() string {
	if u := app.Getenv("WORDRACE_GAME_SERVER"); u != "" {
		return u
	}
	pageURL := app.Window().URL()
	host := pageURL.Hostname()
	if host == "localhost" || host == "127.0.0.1" {
		return defaultLocalServer
	}
	return "wss://" + pageURL.Host + "/ws"
}

// Notify re-renders every mounted component.
func (s *ClientState) Notify() {
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}

func confirm(prompt string) bool {
	if app.IsServer {
		return false
	}
	return app.Window().Call("confirm", prompt).Bool()
}

func notice(msg string) {
	klog.Infof("notice: %s", msg)
	if app.IsServer {
		return
	}
	app.Window().Call("alert", msg)
}

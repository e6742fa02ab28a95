package frontend

import (
	"fmt"
	"strconv"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"wordrace/internal/session"
)

// Home is the root component. It renders the lobby, the waiting room, or
// the game board depending on the session phase; the whole client is a
// single page so that a reload always lands back here for the rejoin check.
type Home struct {
	app.Compo
	RoomInput string
	Rounds    string

	onUpdate func()
}

func (h *Home) OnAppUpdate(ctx app.Context) {
	if State.Session.Phase() == session.PhasePlaying {
		klog.Infof("Home: app update available, not reloading mid-game")
		return
	}
	ctx.Reload()
}

func (h *Home) OnMount(ctx app.Context) {
	klog.V(1).Infof("Home: OnMount called")
	h.onUpdate = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
	State.Listeners["home"] = h.onUpdate
}

func (h *Home) OnDismount() {
	delete(State.Listeners, "home")
}

func (h *Home) OnNav(ctx app.Context) {
	// Deep link: /?room=<id> prefills the join field (the QR code target).
	if room := app.Window().URL().Query().Get("room"); room != "" {
		h.RoomInput = room
	}
}

func (h *Home) onRoomInput(ctx app.Context, e app.Event) {
	h.RoomInput = ctx.JSSrc().Get("value").String()
}

func (h *Home) onRoundsChange(ctx app.Context, e app.Event) {
	h.Rounds = ctx.JSSrc().Get("value").String()
}

func (h *Home) onCreateRoom(ctx app.Context, e app.Event) {
	e.PreventDefault()
	rounds, err := strconv.Atoi(h.Rounds)
	if err != nil || rounds <= 0 {
		rounds = 5
	}
	State.Session.CreateRoom(rounds)
}

func (h *Home) onJoinRoom(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.Session.JoinRoom(h.RoomInput, false)
}

func (h *Home) Render() app.UI {
	var content app.UI
	switch State.Session.Phase() {
	case session.PhaseWaiting:
		content = h.renderWaiting()
	case session.PhasePlaying, session.PhaseGameOver:
		content = &Game{}
	default:
		content = h.renderLobby()
	}

	return app.Main().Class("container").Body(
		&TopBar{},
		content,
	)
}

func (h *Home) renderLobby() app.UI {
	var banner app.UI = app.Text("")
	if State.ConnErr != "" {
		banner = app.P().Style("color", "red").Text(State.ConnErr)
	}

	var status app.UI = app.Text("")
	if s := State.Session.Status(); s != "" {
		status = app.P().ID("status").Text(s)
	}

	return app.Article().Body(
		app.Header().Body(
			app.H2().Text("WordRace"),
			app.P().Text("Race a friend to find every word in the grid."),
		),
		banner,
		status,
		app.Form().OnSubmit(h.onCreateRoom).Body(
			app.Label().For("roundSelect").Text("Rounds"),
			app.Select().ID("roundSelect").OnChange(h.onRoundsChange).Body(
				app.Option().Value("1").Text("1"),
				app.Option().Value("3").Text("3"),
				app.Option().Value("5").Selected(true).Text("5"),
				app.Option().Value("10").Text("10"),
			),
			app.Button().Type("submit").Text("Create Room"),
		),
		app.Form().OnSubmit(h.onJoinRoom).Body(
			app.Label().For("roomInput").Text("Room ID"),
			app.Input().
				Type("text").
				ID("roomInput").
				Placeholder("e.g. 4821").
				Value(h.RoomInput).
				OnInput(h.onRoomInput),
			app.Button().Type("submit").Class("secondary").Text("Join Room"),
		),
	)
}

func (h *Home) renderWaiting() app.UI {
	roomID := State.Session.RoomID()
	return app.Article().Body(
		app.Header().Body(
			app.H2().Text("Waiting for an opponent..."),
		),
		app.P().Text(fmt.Sprintf("Room ID: %s", roomID)),
		app.P().Text("Share the room id, or let your opponent scan:"),
		app.Img().
			Src("/qr/"+roomID).
			Alt("QR code to join room "+roomID).
			Style("width", "200px").
			Style("height", "200px"),
		app.Div().Aria("busy", "true").Text("The game starts as soon as someone joins."),
	)
}

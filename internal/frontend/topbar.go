package frontend

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"wordrace/internal/session"
)

type TopBar struct {
	app.Compo
}

func (t *TopBar) Render() app.UI {
	right := []app.UI{
		app.Li().Body(
			app.Small().Text(State.Session.UserID()),
		),
	}
	if phase := State.Session.Phase(); phase == session.PhaseWaiting || phase == session.PhasePlaying {
		right = append(right, app.Li().Body(
			app.Span().Text(fmt.Sprintf("Room %s", State.Session.RoomID())),
		))
	}

	return app.Nav().Body(
		app.Ul().Body(
			app.Li().Body(
				app.Strong().Text("WordRace 🔎"),
			),
		),
		app.Ul().Body(right...),
	)
}

package frontend

import (
	"fmt"
	"strings"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"wordrace/internal/session"
)

// Game renders the running round: the letter grid, the word list, and the
// two-party scoreboard. All state lives in the session; this component only
// projects it and forwards cell interactions.
type Game struct {
	app.Compo

	// dragging is true while the primary pointer is held down, enabling
	// drag-over selection.
	dragging bool

	onUpdate func()
}

func (g *Game) OnMount(ctx app.Context) {
	klog.V(1).Infof("Game: OnMount called")
	g.onUpdate = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
	State.Listeners["game"] = g.onUpdate
}

func (g *Game) OnDismount() {
	delete(State.Listeners, "game")
}

func (g *Game) onCellDown(r, c int) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		e.PreventDefault()
		g.dragging = true
		State.Session.ToggleCell(r, c)
	}
}

func (g *Game) onCellEnter(r, c int) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		if !g.dragging {
			return
		}
		State.Session.ToggleCell(r, c)
	}
}

func (g *Game) onCellTouch(r, c int) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		e.PreventDefault()
		State.Session.ToggleCell(r, c)
	}
}

func (g *Game) onPointerUp(ctx app.Context, e app.Event) {
	g.dragging = false
}

func (g *Game) onLeave(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.Session.LeaveGame()
}

func (g *Game) onBackToLobby(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.Session.Reset()
}

func (g *Game) Render() app.UI {
	sess := State.Session
	current, total := sess.RoundInfo()
	theme := sess.ThemeName()

	var gameOver app.UI = app.Text("")
	if sess.Phase() == session.PhaseGameOver {
		gameOver = g.renderGameOver()
	}

	return app.Div().OnMouseUp(g.onPointerUp).Body(
		gameOver,
		app.Div().Class("grid").Body(
			app.Div().Body(
				app.H3().ID("room-display").Text(fmt.Sprintf("Room: %s", sess.RoomID())),
				app.P().ID("theme-display").Text(fmt.Sprintf("Theme: %s %s", theme, themeIcon(theme))),
				app.P().ID("round-display").Text(fmt.Sprintf("Round %d/%d", current, total)),
			),
			app.Div().Body(
				app.P().Body(
					app.Text("You: "),
					app.Strong().ID("my-score").Text(fmt.Sprintf("%d", sess.MyScore())),
					app.Text(" — Opponent: "),
					app.Strong().ID("enemy-score").Text(fmt.Sprintf("%d", sess.EnemyScore())),
				),
				app.Button().
					Class("outline contrast").
					Text("Leave Game").
					OnClick(g.onLeave),
			),
		),
		g.renderGrid(),
		g.renderWordList(),
	)
}

func (g *Game) renderGrid() app.UI {
	sess := State.Session
	rows, cols := sess.GridSize()
	if rows == 0 || cols == 0 {
		return app.Div().Aria("busy", "true").Text("Waiting for the board...")
	}

	cells := make([]app.UI, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells = append(cells, app.Div().
				ID(fmt.Sprintf("cell-%d-%d", r, c)).
				Class("cell").
				Class(sess.CellClass(r, c)).
				Text(sess.CharAt(r, c)).
				OnMouseDown(g.onCellDown(r, c)).
				OnMouseEnter(g.onCellEnter(r, c)).
				On("touchstart", g.onCellTouch(r, c)))
		}
	}

	return app.Div().
		ID("grid-container").
		Style("display", "grid").
		Style("grid-template-columns", fmt.Sprintf("repeat(%d, 1fr)", cols)).
		Style("user-select", "none").
		Body(cells...)
}

func (g *Game) renderWordList() app.UI {
	words := State.Session.Words()
	items := make([]app.UI, 0, len(words))
	for _, w := range words {
		item := app.Span().
			ID("word-"+w.Word).
			Class("word-item")
		if w.Crossed {
			item = item.Class("crossed")
		}
		items = append(items, item.Text(w.Word))
	}
	return app.Div().ID("word-list").Body(items...)
}

func (g *Game) renderGameOver() app.UI {
	var msg, color string
	switch State.Session.Result() {
	case session.OutcomeWon:
		msg, color = "🏆 YOU WIN! 🏆", "green"
	case session.OutcomeDraw:
		msg, color = "🤝 DRAW!", "blue"
	default:
		msg, color = "☠️ YOU LOSE! ☠️", "red"
	}

	return app.Dialog().ID("game-over").Open(true).Body(
		app.Article().Body(
			app.Header().Text("Game Over"),
			app.H3().ID("winner-msg").Style("color", color).Text(msg),
			app.Footer().Body(
				app.Button().Text("Back to Lobby").OnClick(g.onBackToLobby),
			),
		),
	)
}

// themeIcons decorates the theme display; unknown themes fall back to a
// parcel, no theme at all to dice.
var themeIcons = map[string]string{
	"animals": "🦁", "space": "🚀", "tech": "💻", "food": "🍔",
	"sports": "⚽", "music": "🎸", "movies": "🎬", "travel": "✈️",
	"school": "📚", "nature": "🌲", "colors": "🎨", "countries": "🌍",
	"jobs": "💼", "weather": "☀️", "house": "🏠", "clothes": "👕",
	"body": "👀", "fruit": "🍎", "pirate": "🏴‍☠️", "cars": "🚗",
}

func themeIcon(theme string) string {
	if theme == "" || theme == "Random" {
		return "🎲"
	}
	if icon, ok := themeIcons[strings.ToLower(theme)]; ok {
		return icon
	}
	return "📦"
}

package results

import "strings"

// View selects which pivot of a game's history is shown.
type View string

const (
	ViewPlayers View = "players"
	ViewRounds  View = "rounds"

	DefaultView = ViewRounds
)

// ParseView accepts "players" or "rounds" in any case.
func ParseView(raw string) (View, bool) {
	switch View(strings.ToLower(strings.TrimSpace(raw))) {
	case ViewPlayers:
		return ViewPlayers, true
	case ViewRounds:
		return ViewRounds, true
	}
	return "", false
}

func (v View) Opposite() View {
	if v == ViewPlayers {
		return ViewRounds
	}
	return ViewPlayers
}

// Package session drives the menu, play and game-over cycle of one game and
// tracks score, health and the best score ever reached.
package session

// State is a game session stage.
type State int

const (
	StateNone State = iota
	StateMenu
	StatePlaying
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// edges lists the only legal transitions.
var edges = map[State]State{
	StateNone:     StateMenu,
	StateMenu:     StatePlaying,
	StatePlaying:  StateGameOver,
	StateGameOver: StateMenu,
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to State) bool {
	next, ok := edges[from]
	return ok && next == to
}

// Next returns the state that follows s in the cycle.
func Next(s State) State {
	return edges[s]
}

// Session is a snapshot of the live game state.
type Session struct {
	State State
	Score int
	Best  int
}

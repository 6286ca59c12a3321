// Package game defines the contract between the search engine and a concrete
// game implementation. The engine never inspects state internals; every rule
// of the game is mediated through the Model interface.
package game

import "errors"

// Player identifies one of the two alternating sides. The zero value means
// "nobody" (an unowned sub-objective, or a drawn game).
type Player int

const (
	NoPlayer  Player = 0
	PlayerOne Player = 1
	PlayerTwo Player = 2
)

// Other returns the opposing side. NoPlayer maps to itself.
func (p Player) Other() Player {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	}
	return p
}

// State is an opaque game position owned by the model. States must be
// immutable values: Model.NextState returns a fresh state and never alters
// its input.
type State any

// Action is a move value accepted by Model.NextState. Concrete action types
// must be comparable so the searcher can key child lookups by action.
type Action any

// SubObjectiveID names one intermediate scoring unit of a game (e.g. a
// sub-board of ultimate tic-tac-toe).
type SubObjectiveID int

// ErrNotTerminal is returned by Model.PointsValues when scoring is requested
// for a game that has not ended.
var ErrNotTerminal = errors.New("game: points requested for unfinished state")

// Model exposes the rules of a two-player, alternating-turn, perfect
// information, zero-sum game. Implementations must be pure: no method may
// mutate the state it is given.
type Model interface {
	// CurrentPlayer reports whose turn it is in the given state.
	CurrentPlayer(State) Player

	// LegalActions lists the playable actions in a stable order. An empty
	// result means the state is terminal.
	LegalActions(State) []Action

	// NextState applies an action and returns the resulting state.
	NextState(State, Action) State

	// IsEnded reports whether the game is over.
	IsEnded(State) bool

	// PointsValues reports the final score per player: 1 for the winner,
	// -1 for the loser, 0 for both on a draw. Calling it on a state that
	// has not ended is a contract violation and returns ErrNotTerminal.
	PointsValues(State) (map[Player]float64, error)
}

// SubObjectiveOwnership is an optional capability a Model may implement to
// enable heuristic-guided rollouts. Games without intermediate objectives
// simply omit it and the searcher falls back to random playouts.
type SubObjectiveOwnership interface {
	// OwnedSubObjectives maps every sub-objective to its current owner,
	// NoPlayer for the ones still contested.
	OwnedSubObjectives(State) map[SubObjectiveID]Player
}

// Package engine runs complete matches between two agents on one game model.
package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"mcts/game"
)

// Agent decides one move. searcher.MCTS satisfies this.
type Agent interface {
	Think(model game.Model, state game.State) (game.Action, error)
}

// MatchResult reports how a finished match went.
type MatchResult struct {
	Winner game.Player // NoPlayer on a draw
	Plies  int
	Scores map[game.Player]float64
	Final  game.State
}

// MoveObserver is notified after every applied move. Used by the arena for
// rendering and record keeping; nil observers are skipped.
type MoveObserver func(step int, mover game.Player, action game.Action, state game.State)

// Local plays both sides in-process, alternating agents by the model's
// current-player report.
type Local struct {
	model    game.Model
	agents   map[game.Player]Agent
	observer MoveObserver
}

func NewLocal(model game.Model, one, two Agent) *Local {
	if one == nil || two == nil {
		panic("engine: both agents are required")
	}
	return &Local{
		model: model,
		agents: map[game.Player]Agent{
			game.PlayerOne: one,
			game.PlayerTwo: two,
		},
	}
}

// WithObserver registers a move observer and returns the engine for chaining.
func (e *Local) WithObserver(observer MoveObserver) *Local {
	e.observer = observer
	return e
}

// Run plays state to termination and scores the result. An agent returning a
// nil action falls back to the first legal action, so a match always makes
// progress on a live state.
func (e *Local) Run(state game.State) (MatchResult, error) {
	plies := 0
	for !e.model.IsEnded(state) {
		mover := e.model.CurrentPlayer(state)

		action, err := e.agents[mover].Think(e.model, state)
		if err != nil {
			return MatchResult{}, fmt.Errorf("engine: agent for player %d failed: %w", mover, err)
		}
		if action == nil {
			legal := e.model.LegalActions(state)
			if len(legal) == 0 {
				return MatchResult{}, fmt.Errorf("engine: model reports live state with no legal actions")
			}
			action = legal[0]
			log.Warn().Msgf("player %d returned no action, falling back to %v", mover, action)
		}

		state = e.model.NextState(state, action)
		plies++
		log.Debug().Msgf("ply %d: player %d played %v", plies, mover, action)

		if e.observer != nil {
			e.observer(plies, mover, action, state)
		}
	}

	scores, err := e.model.PointsValues(state)
	if err != nil {
		return MatchResult{}, fmt.Errorf("engine: scoring finished match: %w", err)
	}

	result := MatchResult{
		Winner: winnerOf(scores),
		Plies:  plies,
		Scores: scores,
		Final:  state,
	}
	log.Info().Msgf("match over after %d plies, winner: %d", result.Plies, result.Winner)
	return result, nil
}

func winnerOf(scores map[game.Player]float64) game.Player {
	for _, p := range []game.Player{game.PlayerOne, game.PlayerTwo} {
		if scores[p] == 1 {
			return p
		}
	}
	return game.NoPlayer
}

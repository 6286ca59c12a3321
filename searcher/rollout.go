package searcher

import "mcts/game"

// RolloutPolicy selects how playouts pick their moves.
type RolloutPolicy int

const (
	// RandomRollout plays uniformly random legal actions.
	RandomRollout RolloutPolicy = iota
	// HeuristicRollout grabs a sub-objective whenever a single move wins
	// one, and plays randomly otherwise. Requires the model to implement
	// game.SubObjectiveOwnership; models without it get RandomRollout
	// behavior.
	HeuristicRollout
)

func (p RolloutPolicy) String() string {
	switch p {
	case RandomRollout:
		return "random"
	case HeuristicRollout:
		return "heuristic"
	}
	return "unknown"
}

// rollout plays state to termination and returns the terminal state along
// with the number of plies played. It never touches the tree. Termination is
// the model's guarantee: a game with finitely many plies always reaches a
// state with no legal actions.
func (m *MCTS) rollout(model game.Model, state game.State, identity game.Player) (game.State, int) {
	owned, _ := model.(game.SubObjectiveOwnership)

	plies := 0
	for !model.IsEnded(state) {
		legal := model.LegalActions(state)

		var action game.Action
		if m.policy == HeuristicRollout && owned != nil {
			if action = captureAction(model, owned, state, legal, identity); action != nil {
				m.collector.AddHeuristicHit()
			}
		}
		if action == nil {
			action = legal[m.rng.Intn(len(legal))]
		}

		state = model.NextState(state, action)
		plies++
	}

	m.collector.AddPlayoutPlies(plies)
	return state, plies
}

// captureAction scans the legal actions in order and returns the first one
// whose successor state flips any sub-objective into p's ownership, or nil
// when no single move wins one.
func captureAction(model game.Model, owned game.SubObjectiveOwnership, state game.State, legal []game.Action, p game.Player) game.Action {
	before := owned.OwnedSubObjectives(state)
	for _, action := range legal {
		after := owned.OwnedSubObjectives(model.NextState(state, action))
		for id, owner := range after {
			if owner == p && before[id] != p {
				return action
			}
		}
	}
	return nil
}

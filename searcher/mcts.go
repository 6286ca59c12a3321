// Package searcher implements Monte Carlo Tree Search over the abstract game
// contract in package game: UCB1 selection with an opponent-aware sign flip,
// FIFO expansion, pluggable rollout policies and iterative backpropagation.
package searcher

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"mcts/game"
	"mcts/metrics"
)

// Rand is the injectable randomness the rollout draws from. Both math/rand
// and golang.org/x/exp/rand satisfy it; seed the source for reproducible
// searches.
type Rand interface {
	Intn(n int) int
}

type Option func(m *MCTS)

// MCTS runs a fixed-budget search and recommends an action. One instance is
// single-threaded; a tree lives for exactly one Think call.
type MCTS struct {
	iterations  int
	exploration float64
	policy      RolloutPolicy
	rng         Rand
	collector   metrics.Collector
}

func WithIterations(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.iterations = n
		}
	}
}

func WithExplorationFactor(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

func WithRolloutPolicy(policy RolloutPolicy) Option {
	return func(m *MCTS) {
		m.policy = policy
	}
}

func WithRand(rng Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.collector = collector
		}
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		iterations:  DefaultIterations,
		exploration: DefaultExplorationFactor,
		policy:      RandomRollout,
		rng:         rand.New(rand.NewSource(1)),
		collector:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Think searches from state and returns the recommended action. A nil action
// with a nil error means the root has no playable children (terminal input
// state); callers decide their own fallback. The only error case is a model
// that breaks its scoring contract.
func (m *MCTS) Think(model game.Model, state game.State) (game.Action, error) {
	root, err := m.search(model, state)
	if err != nil {
		return nil, err
	}

	action := bestAction(root)
	log.Debug().
		Int("iterations", m.iterations).
		Str("policy", m.policy.String()).
		Msgf("search done, chose %v", action)
	return action, nil
}

// search grows a fresh tree for the configured iteration budget and returns
// its root. Every iteration restarts from the original input state; the
// state itself is never mutated.
func (m *MCTS) search(model game.Model, state game.State) (*node, error) {
	identity := model.CurrentPlayer(state)
	root := newNode(nil, nil, model.LegalActions(state))

	m.collector.Start()
	for i := 0; i < m.iterations; i++ {
		frontier, frontierState := m.selectFrontier(root, model, state, identity)
		leaf, leafState := m.expand(frontier, model, frontierState)
		terminal, _ := m.rollout(model, leafState, identity)

		scores, err := model.PointsValues(terminal)
		if err != nil {
			return nil, fmt.Errorf("searcher: rollout stopped on a live state: %w", err)
		}
		backpropagate(leaf, scores[identity] == Win)
		m.collector.AddIteration()
	}

	return root, nil
}

// selectFrontier descends from the root while the current node is fully
// expanded and the game is still running, always following the max-UCB1
// child. Ties go to the earliest-expanded child. The mover identity
// alternates with every step; children of an opponent-to-move node are
// scored with the exploitation term flipped.
func (m *MCTS) selectFrontier(root *node, model game.Model, state game.State, identity game.Player) (*node, game.State) {
	current := root
	currentState := state
	mover := identity

	for !current.expandable() && !model.IsEnded(currentState) {
		opponent := mover != identity

		var best *node
		var bestMove game.Action
		bestScore := math.Inf(-1)
		for i, child := range current.children {
			if score := child.ucb1(m.exploration, opponent); score > bestScore {
				bestScore = score
				best = child
				bestMove = current.tried[i]
			}
		}

		current = best
		currentState = model.NextState(currentState, bestMove)
		mover = mover.Other()
	}

	return current, currentState
}

// expand materializes the oldest untried action of n as a new child and
// returns it with its state. A terminal state has nothing to expand and
// passes through untouched.
func (m *MCTS) expand(n *node, model game.Model, state game.State) (*node, game.State) {
	if model.IsEnded(state) {
		return n, state
	}

	action := n.untried[0]
	n.untried = n.untried[1:]

	childState := model.NextState(state, action)
	child := n.addChild(action, model.LegalActions(childState))
	return child, childState
}

// backpropagate walks from the frontier leaf up to the root. Every node on
// the path gains a visit; every node except the root gains the playout's
// win credit. The walk is iterative so deep trees cost no stack.
func backpropagate(n *node, won bool) {
	credit := Loss
	if won {
		credit = Win
	}
	for ; n != nil; n = n.parent {
		n.visits++
		if n.parent != nil {
			n.wins += credit
		}
	}
}

// bestAction picks the root child to play, scanning children in expansion
// order. Historical rule, kept bug-for-bug: a candidate replaces the
// incumbent only when its win rate AND its visit count are both strictly
// greater, so the result is not necessarily the max-rate or max-visit child.
// Returns nil when the root has no children.
func bestAction(root *node) game.Action {
	bestRate := math.Inf(-1)
	bestVisits := -1
	var action game.Action

	for i, child := range root.children {
		rate := child.wins / float64(child.visits)
		if rate > bestRate && child.visits > bestVisits {
			bestRate = rate
			bestVisits = child.visits
			action = root.tried[i]
		}
	}

	return action
}

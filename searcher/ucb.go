package searcher

import "math"

// Default search hyperparameters.
const (
	DefaultIterations        = 1000
	DefaultExplorationFactor = 2.0
)

// Playout outcome credit.
const (
	Win  = 1.0
	Loss = 0.0
)

// ucb1 scores a child node for selection. opponent flips the exploitation
// term because a good position for the other side is a bad one for us.
//
// UCB1 = W/N (or 1-W/N) + c*sqrt(ln(Np)/N)
//
// Only visited nodes are ever scored, so N >= 1 holds structurally; a zero
// visit count here means the tree bookkeeping is broken.
func (n *node) ucb1(c float64, opponent bool) float64 {
	if n.parent == nil {
		// The root is never a candidate; rank it below everything.
		return math.Inf(-1)
	}
	if n.visits == 0 {
		panic("searcher: UCB1 on unvisited node")
	}

	exploit := n.wins / float64(n.visits)
	if opponent {
		exploit = 1 - exploit
	}
	explore := c * math.Sqrt(math.Log(float64(n.parent.visits))/float64(n.visits))
	return exploit + explore
}

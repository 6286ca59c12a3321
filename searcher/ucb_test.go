package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCB1(t *testing.T) {
	t.Run("computing the documented value", func(t *testing.T) {
		parent := &node{visits: 4}
		n := &node{parent: parent, wins: 1, visits: 1}

		got := n.ucb1(2.0, false)

		// 1/1 + 2*sqrt(ln(4)/1)
		require.InDelta(t, 3.3548, got, 1e-4,
			"Should compute W/N + c*sqrt(ln(Np)/N)")
		require.InDelta(t, 1.0+2.0*math.Sqrt(math.Log(4)), got, 1e-9)
	})

	t.Run("flipping exploitation on opponent nodes", func(t *testing.T) {
		parent := &node{visits: 4}
		n := &node{parent: parent, wins: 1, visits: 1}

		got := n.ucb1(2.0, true)

		// (1 - 1/1) + 2*sqrt(ln(4)/1)
		require.InDelta(t, 2.0*math.Sqrt(math.Log(4)), got, 1e-9,
			"Opponent nodes should score 1-W/N for exploitation")
	})

	t.Run("ranking the root below everything", func(t *testing.T) {
		n := &node{wins: 1, visits: 1}

		require.Equal(t, math.Inf(-1), n.ucb1(2.0, false),
			"A parentless node should get the sentinel minimum")
	})

	t.Run("panics on an unvisited node", func(t *testing.T) {
		parent := &node{visits: 4}
		n := &node{parent: parent}

		require.Panics(t, func() {
			n.ucb1(2.0, false)
		}, "Scoring a node before its first backpropagation is a defect")
	})

	t.Run("exploration grows with parent visits", func(t *testing.T) {
		small := &node{parent: &node{visits: 10}, wins: 1, visits: 2}
		large := &node{parent: &node{visits: 1000}, wins: 1, visits: 2}

		require.Greater(t, large.ucb1(2.0, false), small.ucb1(2.0, false),
			"More parent visits should increase the exploration term")
	})

	t.Run("exploration shrinks with node visits", func(t *testing.T) {
		parent := &node{visits: 100}
		fresh := &node{parent: parent, wins: 1, visits: 2}
		worn := &node{parent: parent, wins: 5, visits: 10}

		require.Greater(t, fresh.ucb1(2.0, false), worn.ucb1(2.0, false),
			"Equal win rates should favor the less-visited node")
	})
}

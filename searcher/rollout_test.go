package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mcts/game"
	"mcts/metrics"
)

// captureGame is a one-step game where only the second legal action flips a
// sub-objective to PlayerOne.
func captureGame() ownedMockModel {
	return ownedMockModel{
		mockModel: mockModel{
			turns: map[string]game.Player{"start": game.PlayerOne},
			legal: map[string][]game.Action{
				"start": {"pass", "grab"},
			},
			next: map[string]map[game.Action]string{
				"start": {"pass": "passed", "grab": "grabbed"},
			},
			scores: map[string]map[game.Player]float64{
				"passed":  {game.PlayerOne: 0, game.PlayerTwo: 0},
				"grabbed": {game.PlayerOne: 1, game.PlayerTwo: -1},
			},
		},
		owned: map[string]map[game.SubObjectiveID]game.Player{
			"start":   {7: game.NoPlayer},
			"passed":  {7: game.NoPlayer},
			"grabbed": {7: game.PlayerOne},
		},
	}
}

func TestRollout(t *testing.T) {
	t.Run("heuristic policy grabs a flipping action deterministically", func(t *testing.T) {
		model := captureGame()
		// A random fallback would pick index 0 ("pass").
		m := NewMCTS(WithRolloutPolicy(HeuristicRollout), WithRand(fixedRand{index: 0}))

		terminal, plies := m.rollout(model, "start", game.PlayerOne)

		require.Equal(t, "grabbed", terminal.(string),
			"The first sub-objective-flipping action should win the scan")
		require.Equal(t, 1, plies)
	})

	t.Run("heuristic ignores flips toward the opponent", func(t *testing.T) {
		model := captureGame()
		model.owned["grabbed"] = map[game.SubObjectiveID]game.Player{7: game.PlayerTwo}
		m := NewMCTS(WithRolloutPolicy(HeuristicRollout), WithRand(fixedRand{index: 0}))

		terminal, _ := m.rollout(model, "start", game.PlayerOne)

		require.Equal(t, "passed", terminal.(string),
			"Only flips to the acting identity should trigger the heuristic")
	})

	t.Run("heuristic falls back to random when nothing flips", func(t *testing.T) {
		model := captureGame()
		model.owned["grabbed"] = map[game.SubObjectiveID]game.Player{7: game.NoPlayer}
		m := NewMCTS(WithRolloutPolicy(HeuristicRollout), WithRand(fixedRand{index: 1}))

		terminal, _ := m.rollout(model, "start", game.PlayerOne)

		require.Equal(t, "grabbed", terminal.(string),
			"With no capture available the injected randomness should decide")
	})

	t.Run("heuristic policy degrades to random without the capability", func(t *testing.T) {
		// Same game, but the model does not expose sub-objectives.
		model := captureGame().mockModel
		m := NewMCTS(WithRolloutPolicy(HeuristicRollout), WithRand(fixedRand{index: 0}))

		terminal, _ := m.rollout(model, "start", game.PlayerOne)

		require.Equal(t, "passed", terminal.(string),
			"Models without the ownership query should get random playouts")
	})

	t.Run("random policy follows the injected source", func(t *testing.T) {
		model := captureGame()
		m := NewMCTS(WithRand(fixedRand{index: 1}))

		terminal, _ := m.rollout(model, "start", game.PlayerOne)

		require.Equal(t, "grabbed", terminal.(string))
	})

	t.Run("terminal input states pass straight through", func(t *testing.T) {
		model := captureGame()
		m := NewMCTS()

		terminal, plies := m.rollout(model, "grabbed", game.PlayerOne)

		require.Equal(t, "grabbed", terminal.(string))
		require.Zero(t, plies, "No moves should be played from a finished game")
	})

	t.Run("recording heuristic hits and playout length", func(t *testing.T) {
		model := captureGame()
		collector := metrics.NewCollector()
		collector.Start()
		m := NewMCTS(
			WithRolloutPolicy(HeuristicRollout),
			WithRand(fixedRand{index: 0}),
			WithCollector(collector),
		)

		m.rollout(model, "start", game.PlayerOne)

		metric := collector.Complete()
		require.Equal(t, int64(1), metric.HeuristicHits)
		require.Equal(t, int64(1), metric.PlayoutPlies)
	})
}

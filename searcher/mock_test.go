package searcher

import "mcts/game"

// mockModel is a scripted game: states and actions are strings, transitions
// come from tables. A state with no legal actions is terminal.
type mockModel struct {
	turns  map[string]game.Player
	legal  map[string][]game.Action
	next   map[string]map[game.Action]string
	scores map[string]map[game.Player]float64
}

func (m mockModel) CurrentPlayer(s game.State) game.Player {
	return m.turns[s.(string)]
}

func (m mockModel) LegalActions(s game.State) []game.Action {
	return m.legal[s.(string)]
}

func (m mockModel) NextState(s game.State, a game.Action) game.State {
	return m.next[s.(string)][a]
}

func (m mockModel) IsEnded(s game.State) bool {
	return len(m.legal[s.(string)]) == 0
}

func (m mockModel) PointsValues(s game.State) (map[game.Player]float64, error) {
	if !m.IsEnded(s) {
		return nil, game.ErrNotTerminal
	}
	return m.scores[s.(string)], nil
}

// ownedMockModel adds the sub-objective capability on top of mockModel.
type ownedMockModel struct {
	mockModel
	owned map[string]map[game.SubObjectiveID]game.Player
}

func (m ownedMockModel) OwnedSubObjectives(s game.State) map[game.SubObjectiveID]game.Player {
	return m.owned[s.(string)]
}

// fixedRand always picks the same index, making the random fallback visible
// in assertions.
type fixedRand struct {
	index int
}

func (r fixedRand) Intn(n int) int {
	if r.index >= n {
		return n - 1
	}
	return r.index
}

// onePlyGame returns a game where PlayerOne picks between an immediate win
// and an immediate loss.
func onePlyGame() mockModel {
	return mockModel{
		turns: map[string]game.Player{"root": game.PlayerOne},
		legal: map[string][]game.Action{
			"root": {"win", "lose"},
		},
		next: map[string]map[game.Action]string{
			"root": {"win": "won", "lose": "lost"},
		},
		scores: map[string]map[game.Player]float64{
			"won":  {game.PlayerOne: 1, game.PlayerTwo: -1},
			"lost": {game.PlayerOne: -1, game.PlayerTwo: 1},
		},
	}
}

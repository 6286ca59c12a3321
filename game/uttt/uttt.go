// Package uttt implements ultimate tic-tac-toe as a game.Model. Nine 3x3
// sub-boards form a 3x3 macro board; winning a sub-board claims its macro
// cell, and each move forces the opponent into the sub-board matching the
// cell just played. Sub-board ownership doubles as the model's sub-objective
// capability, which makes the game a natural fixture for heuristic rollouts.
package uttt

import "mcts/game"

const anyBoard = -1

// Move places the mover's mark on one cell of one sub-board. Indices are
// row-major, 0..8.
type Move struct {
	Board int
	Cell  int
}

// Position is an immutable board value; Model.NextState returns copies.
type Position struct {
	cells  [9][9]game.Player
	owners [9]game.Player
	next   int // sub-board forced by the last move, anyBoard when free
	turn   game.Player
}

// New returns the starting position with PlayerOne to move anywhere.
func New() Position {
	return Position{next: anyBoard, turn: game.PlayerOne}
}

// Turn reports whose move it is.
func (p Position) Turn() game.Player { return p.turn }

// CellAt reports the mark at a cell of a sub-board.
func (p Position) CellAt(board, cell int) game.Player { return p.cells[board][cell] }

// Owner reports who has claimed a sub-board, NoPlayer while it is contested.
func (p Position) Owner(board int) game.Player { return p.owners[board] }

// ForcedBoard reports the sub-board the next move must target, or -1 when
// the mover may play anywhere.
func (p Position) ForcedBoard() int { return p.next }

var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

func lineOwner(cells func(int) game.Player) game.Player {
	for _, line := range winLines {
		if owner := cells(line[0]); owner != game.NoPlayer &&
			owner == cells(line[1]) && owner == cells(line[2]) {
			return owner
		}
	}
	return game.NoPlayer
}

func (p Position) boardFull(board int) bool {
	for _, mark := range p.cells[board] {
		if mark == game.NoPlayer {
			return false
		}
	}
	return true
}

// closed reports whether a sub-board accepts no further moves.
func (p Position) closed(board int) bool {
	return p.owners[board] != game.NoPlayer || p.boardFull(board)
}

func (p Position) macroOwner() game.Player {
	return lineOwner(func(i int) game.Player { return p.owners[i] })
}

func (p Position) ended() bool {
	if p.macroOwner() != game.NoPlayer {
		return true
	}
	for board := range p.owners {
		if !p.closed(board) {
			return false
		}
	}
	return true
}

func (p Position) legalMoves() []game.Action {
	if p.ended() {
		return nil
	}

	boards := make([]int, 0, 9)
	if p.next != anyBoard && !p.closed(p.next) {
		boards = append(boards, p.next)
	} else {
		for board := range p.owners {
			if !p.closed(board) {
				boards = append(boards, board)
			}
		}
	}

	var moves []game.Action
	for _, board := range boards {
		for cell, mark := range p.cells[board] {
			if mark == game.NoPlayer {
				moves = append(moves, Move{Board: board, Cell: cell})
			}
		}
	}
	return moves
}

// Model adapts Position to the engine's game contract.
type Model struct{}

func (Model) CurrentPlayer(s game.State) game.Player {
	return s.(Position).turn
}

func (Model) LegalActions(s game.State) []game.Action {
	return s.(Position).legalMoves()
}

func (Model) NextState(s game.State, a game.Action) game.State {
	p := s.(Position)
	move := a.(Move)

	p.cells[move.Board][move.Cell] = p.turn
	if p.owners[move.Board] == game.NoPlayer {
		p.owners[move.Board] = lineOwner(func(i int) game.Player {
			return p.cells[move.Board][i]
		})
	}

	p.next = move.Cell
	if p.closed(p.next) {
		p.next = anyBoard
	}
	p.turn = p.turn.Other()
	return p
}

func (Model) IsEnded(s game.State) bool {
	return s.(Position).ended()
}

func (Model) PointsValues(s game.State) (map[game.Player]float64, error) {
	p := s.(Position)
	if !p.ended() {
		return nil, game.ErrNotTerminal
	}

	winner := p.macroOwner()
	if winner == game.NoPlayer {
		return map[game.Player]float64{game.PlayerOne: 0, game.PlayerTwo: 0}, nil
	}
	return map[game.Player]float64{winner: 1, winner.Other(): -1}, nil
}

// OwnedSubObjectives exposes sub-board ownership for heuristic rollouts.
func (Model) OwnedSubObjectives(s game.State) map[game.SubObjectiveID]game.Player {
	p := s.(Position)
	owned := make(map[game.SubObjectiveID]game.Player, len(p.owners))
	for board, owner := range p.owners {
		owned[game.SubObjectiveID(board)] = owner
	}
	return owned
}

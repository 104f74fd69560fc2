package board

import "errors"

// Error taxonomy for move application, per the spec's §7 error design:
// InvalidMove and TerminalState are recoverable outcomes the caller
// must check, never panics.
var (
	ErrWrongPlayer     = errors.New("board: move player does not match side to move")
	ErrWrongStoneCount = errors.New("board: wrong number of stones for this move number")
	ErrOutOfBounds     = errors.New("board: position out of bounds")
	ErrDuplicatePos    = errors.New("board: duplicate position in move")
	ErrOccupied        = errors.New("board: position already occupied")
	ErrTerminalState   = errors.New("board: state already has a winner")
)

// GameState is an immutable (value-type) snapshot of a Connect6 game
// in progress.
type GameState struct {
	Board         Board
	CurrentPlayer Cell
	MoveNumber    int
	LastMove      *Move
	Winner        Winner
}

// NewGame returns the initial state: an empty board, Black to move,
// moveNumber 0.
func NewGame() GameState {
	return GameState{
		Board:         Board{},
		CurrentPlayer: Black,
		MoveNumber:    0,
		Winner:        NoWinner,
	}
}

// IsTerminal reports whether the game has ended.
func (s GameState) IsTerminal() bool {
	return s.Winner != NoWinner
}

// ValidateMove checks a move against s without applying it.
func ValidateMove(s GameState, m Move) error {
	if s.IsTerminal() {
		return ErrTerminalState
	}
	if m.Player != s.CurrentPlayer {
		return ErrWrongPlayer
	}
	want := StonesToPlace(s.MoveNumber)
	if len(m.Positions) != want {
		return ErrWrongStoneCount
	}
	seen := make(map[Position]bool, len(m.Positions))
	for _, p := range m.Positions {
		if !p.InBounds() {
			return ErrOutOfBounds
		}
		if seen[p] {
			return ErrDuplicatePos
		}
		seen[p] = true
		if s.Board.At(p) != Empty {
			return ErrOccupied
		}
	}
	return nil
}

// Apply validates and applies m to s, returning the successor state.
// s is never mutated; on error the returned state is the zero value.
func Apply(s GameState, m Move) (GameState, error) {
	if err := ValidateMove(s, m); err != nil {
		return GameState{}, err
	}
	next := s
	next.Board = s.Board.Clone()
	for _, p := range m.Positions {
		next.Board.Set(p, m.Player)
	}
	mv := m
	next.LastMove = &mv
	next.MoveNumber = s.MoveNumber + 1
	next.CurrentPlayer = s.CurrentPlayer.Opponent()
	next.Winner = CheckWinner(&next.Board)
	return next, nil
}

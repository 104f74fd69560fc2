// Package board implements the Connect6 position: a 19x19 grid, the
// one-or-two-stone move rule, and six-in-a-row detection.
package board

import "fmt"

const (
	// Size is the board edge length.
	Size = 19
	// WinLength is the number of same-color stones in a row needed to win.
	WinLength = 6
)

// Cell is the occupant of a board square.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

func (c Cell) String() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	default:
		return "."
	}
}

// Opponent returns the other player. Empty has no opponent and is
// returned unchanged.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// Position is a board coordinate, 0 <= X,Y < Size.
type Position struct {
	X, Y int
}

// InBounds reports whether p lies on the board.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// ManhattanDist is the L1 distance between two positions.
func ManhattanDist(a, b Position) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

// ChebyshevDist is the L-infinity distance between two positions.
func ChebyshevDist(a, b Position) int {
	dx, dy := absInt(a.X-b.X), absInt(a.Y-b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Center is the single center cell of a 19x19 board.
var Center = Position{Size / 2, Size / 2}

// Move is one ply: a player and one or two distinct, in-bounds,
// previously-empty positions.
type Move struct {
	Player    Cell
	Positions []Position
}

func (m Move) String() string {
	return fmt.Sprintf("%s%v", m.Player, m.Positions)
}

// Board is the 19x19 grid of cells. Zero value is an empty board.
type Board [Size][Size]Cell

// At returns the cell at p. Callers must ensure p is in bounds.
func (b *Board) At(p Position) Cell {
	return b[p.X][p.Y]
}

// Set writes a cell at p.
func (b *Board) Set(p Position, c Cell) {
	b[p.X][p.Y] = c
}

// Clone returns a (value) copy of the board.
func (b Board) Clone() Board {
	return b
}

// IsEmpty reports whether every cell is Empty.
func (b *Board) IsEmpty() bool {
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if b[x][y] != Empty {
				return false
			}
		}
	}
	return true
}

// StoneCount counts stones of a given color.
func (b *Board) StoneCount(c Cell) int {
	n := 0
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if b[x][y] == c {
				n++
			}
		}
	}
	return n
}

// Hash returns the canonical row-major serialization of the board,
// the base material for transposition keys.
func (b *Board) Hash() string {
	buf := make([]byte, Size*Size)
	i := 0
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			switch b[x][y] {
			case Black:
				buf[i] = 'B'
			case White:
				buf[i] = 'W'
			default:
				buf[i] = '.'
			}
			i++
		}
	}
	return string(buf)
}

// Winner is the outcome of CheckWinner.
type Winner uint8

const (
	NoWinner Winner = iota
	BlackWins
	WhiteWins
	Draw
)

func (w Winner) String() string {
	switch w {
	case BlackWins:
		return "black"
	case WhiteWins:
		return "white"
	case Draw:
		return "draw"
	default:
		return "none"
	}
}

// Directions are the four line orientations a road can run along.
var Directions = [4]Position{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// CheckWinner scans the board for a six-in-a-row of either color, or a
// draw (board full, no six-in-a-row).
func CheckWinner(b *Board) Winner {
	full := true
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			cell := b[x][y]
			if cell == Empty {
				full = false
				continue
			}
			for _, d := range Directions {
				if runLength(b, Position{x, y}, d, cell) >= WinLength {
					if cell == Black {
						return BlackWins
					}
					return WhiteWins
				}
			}
		}
	}
	if full {
		return Draw
	}
	return NoWinner
}

// runLength returns the length of the same-color run starting at p and
// extending along d (forward only, caller scans every cell as a
// potential run start so every direction is covered exactly once).
func runLength(b *Board, p, d Position, color Cell) int {
	n := 0
	for p.InBounds() && b.At(p) == color {
		n++
		p = Position{p.X + d.X, p.Y + d.Y}
	}
	return n
}

// StonesToPlace returns how many stones the side to move places this
// ply: 1 on the very first ply (Black's opening move), 2 thereafter.
func StonesToPlace(moveNumber int) int {
	if moveNumber == 0 {
		return 1
	}
	return 2
}

package engine

import (
	"fmt"
	"io"

	"connect6engine/board"
)

// PrintBoard renders b as a column/row-numbered grid, following the
// teacher's ui.PrintBoard layout.
func PrintBoard(w io.Writer, b board.Board) {
	fmt.Fprint(w, "    ")
	for c := 0; c < board.Size; c++ {
		fmt.Fprintf(w, "%2d ", c)
	}
	fmt.Fprintln(w)

	for y := 0; y < board.Size; y++ {
		fmt.Fprintf(w, "%2d ", y)
		for x := 0; x < board.Size; x++ {
			cell := b.At(board.Position{X: x, Y: y})
			ch := "."
			switch cell {
			case board.Black:
				ch = "B"
			case board.White:
				ch = "W"
			}
			fmt.Fprintf(w, "  %s", ch)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

// ShowResult prints the final outcome, following the teacher's ui.ShowResult.
func ShowResult(w io.Writer, winner board.Winner) {
	switch winner {
	case board.BlackWins:
		fmt.Fprintln(w, "Black wins!")
	case board.WhiteWins:
		fmt.Fprintln(w, "White wins!")
	case board.Draw:
		fmt.Fprintln(w, "It's a draw!")
	default:
		fmt.Fprintln(w, "game is not over")
	}
}

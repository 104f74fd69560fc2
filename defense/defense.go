// Package defense implements Smart Defense: given an opponent
// live-four, it finds the cheapest way to neutralize it, spending the
// leftover stone on the best remaining candidate rather than wasting
// it on a redundant block. It generalizes the teacher repo's
// board.FindBestComplementForCritical (which always paired a block
// with the board's single best complementary cell) into the
// single-sided-safety test spec.md requires.
package defense

import (
	"sort"

	"connect6engine/board"
	"connect6engine/rzop"
	"connect6engine/vcdt"
)

// Defend returns the move that neutralizes threat, a live-four with
// exactly two empty cells, for player to move. If playing just one of
// the two empties leaves no immediate opponent win (level 0 or 1), the
// cell closer to center is played alone paired with the top RZOP
// candidate; otherwise both empties are blocked together.
func Defend(s board.GameState, player board.Cell, threat vcdt.Threat, candidates []board.Position) board.Move {
	opp := player.Opponent()
	e1, e2 := threat.Positions[0], threat.Positions[1]

	safe1 := isSafeSingleBlock(s, player, opp, e1)
	safe2 := isSafeSingleBlock(s, player, opp, e2)

	if !safe1 && !safe2 {
		return board.Move{Player: player, Positions: []board.Position{e1, e2}}
	}

	block := e1
	switch {
	case safe1 && safe2:
		if board.ManhattanDist(e2, board.Center) < board.ManhattanDist(e1, board.Center) {
			block = e2
		}
	case safe2:
		block = e2
	}

	second := topCandidateExcluding(s, player, candidates, block)
	return board.Move{Player: player, Positions: []board.Position{block, second}}
}

// isSafeSingleBlock reports whether playing a single stone at e
// removes every opponent level-0/level-1 threat.
func isSafeSingleBlock(s board.GameState, player, opp board.Cell, e board.Position) bool {
	next := s
	next.Board = s.Board.Clone()
	next.Board.Set(e, player)
	threats := vcdt.Detect(next, opp)
	return len(vcdt.SinglePointWins(threats)) == 0 && len(vcdt.TwoStoneWins(threats)) == 0
}

// topCandidateExcluding returns the center-nearest candidate other
// than exclude, falling back to the nearest RZOP candidate of s other
// than exclude if candidates holds none; exclude itself is returned
// only when neither list has another cell.
func topCandidateExcluding(s board.GameState, player board.Cell, candidates []board.Position, exclude board.Position) board.Position {
	ordered := append([]board.Position(nil), candidates...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return board.ManhattanDist(ordered[i], board.Center) < board.ManhattanDist(ordered[j], board.Center)
	})
	for _, p := range ordered {
		if p != exclude {
			return p
		}
	}
	for _, p := range rzop.Candidates(s, player) {
		if p != exclude {
			return p
		}
	}
	return exclude
}

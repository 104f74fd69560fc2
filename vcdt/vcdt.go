// Package vcdt detects near-terminal threats: roads one or two stones
// away from six-in-a-row, and live-fours that must be blocked. It
// generalizes board.FindCriticalBlocks from the teacher repo (which
// only found roads with >=4 opponent stones) into the full level
// taxonomy the PVS engine's root forcing logic needs.
package vcdt

import (
	"connect6engine/board"
	"connect6engine/roads"
)

// Threat is a near-terminal shape found in one road.
type Threat struct {
	// Positions are the road's empty cells relevant to the threat: one
	// cell for a single-point win, two for a two-stone win or live-four.
	Positions []board.Position
	IsWinning bool
	// Level is 0 (single-point win), 1 (two-stone win), or 2 (live-four,
	// not winning, but must be defended).
	Level int
}

// key identifies a threat by its unordered set of empty cells, used
// for deduplication across roads that share the same mating cells.
func key(positions []board.Position) [2]board.Position {
	if len(positions) == 1 {
		return [2]board.Position{positions[0], positions[0]}
	}
	a, b := positions[0], positions[1]
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	return [2]board.Position{a, b}
}

// Detect scans every road and returns the deduplicated set of
// single-point wins, two-stone wins, and live-fours for player in s.
func Detect(s board.GameState, player board.Cell) []Threat {
	type dedupKey struct {
		level int
		cells [2]board.Position
	}
	seen := make(map[dedupKey]bool)
	var out []Threat
	add := func(t Threat) {
		k := dedupKey{level: t.Level, cells: key(t.Positions)}
		if seen[k] {
			return
		}
		seen[k] = true
		out = append(out, t)
	}

	for _, r := range roads.AllRoads() {
		o := roads.CountOccupancy(&s.Board, r)
		mine, foe := countColorAndOpp(&s.Board, r, player)

		if foe == 0 && mine == 5 && o.Empty == 1 {
			add(Threat{Positions: roads.EmptyCells(&s.Board, r), IsWinning: true, Level: 0})
			continue
		}
		if foe == 0 && mine == 4 && o.Empty == 2 {
			empties := roads.EmptyCells(&s.Board, r)
			add(Threat{Positions: empties, IsWinning: true, Level: 1})
			add(Threat{Positions: empties, IsWinning: false, Level: 2})
		}
	}

	for _, t := range composedTwoPointMates(out) {
		add(t)
	}
	return out
}

// countColorAndOpp returns (mine, foe) counts in one road.
func countColorAndOpp(b *board.Board, r roads.Road, player board.Cell) (mine, foe int) {
	opp := player.Opponent()
	for _, cell := range r.Cells {
		switch b.At(cell) {
		case player:
			mine++
		case opp:
			foe++
		}
	}
	return mine, foe
}

// composedTwoPointMates combines any two distinct single-point wins
// into a two-cell mate, since playing both in one turn also wins.
func composedTwoPointMates(threats []Threat) []Threat {
	var singles []board.Position
	for _, t := range threats {
		if t.Level == 0 {
			singles = append(singles, t.Positions[0])
		}
	}
	var out []Threat
	for i := 0; i < len(singles); i++ {
		for j := i + 1; j < len(singles); j++ {
			out = append(out, Threat{
				Positions: []board.Position{singles[i], singles[j]},
				IsWinning: true,
				Level:     1,
			})
		}
	}
	return out
}

// FilterLevel returns the subset of threats at the given level.
func FilterLevel(threats []Threat, level int) []Threat {
	var out []Threat
	for _, t := range threats {
		if t.Level == level {
			out = append(out, t)
		}
	}
	return out
}

// SinglePointWins is a convenience accessor for level-0 threats.
func SinglePointWins(threats []Threat) []Threat { return FilterLevel(threats, 0) }

// TwoStoneWins is a convenience accessor for level-1 threats.
func TwoStoneWins(threats []Threat) []Threat { return FilterLevel(threats, 1) }

// LiveFours is a convenience accessor for level-2 threats.
func LiveFours(threats []Threat) []Threat { return FilterLevel(threats, 2) }

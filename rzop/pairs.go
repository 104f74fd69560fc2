package rzop

import (
	"sort"

	"connect6engine/board"
	"connect6engine/vcdt"
)

// MaxPairs bounds the number of two-stone moves a single node emits.
const MaxPairs = 1000

// centerPoolSize is how many of the center-nearest candidates count as
// "center" for the center*center / center*periphery preference bands.
const centerPoolSize = 30

// EnumeratePairs builds unordered two-stone Moves from candidates,
// preferring (i) urgent VCDT-driven pairs, (ii) center*center pairs,
// then (iii) center*periphery and periphery*periphery pairs,
// deduplicated and capped at MaxPairs.
func EnumeratePairs(s board.GameState, player board.Cell, candidates []board.Position) []board.Move {
	seen := make(map[[2]board.Position]bool)
	var out []board.Move

	add := func(a, b board.Position) bool {
		if a == b {
			return false
		}
		k := pairKey(a, b)
		if seen[k] {
			return false
		}
		seen[k] = true
		out = append(out, board.Move{Player: player, Positions: []board.Position{a, b}})
		return len(out) >= MaxPairs
	}

	if band1Urgent(s, player, add) {
		return out
	}
	if band2CenterCenter(candidates, add) {
		return out
	}
	band3CenterPeriphery(candidates, add)
	return out
}

func pairKey(a, b board.Position) [2]board.Position {
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	return [2]board.Position{a, b}
}

// band1Urgent emits, in order: every opponent two-stone-win pair, then
// every mover two-stone-win pair. Returns true if the MaxPairs cap was
// reached.
func band1Urgent(s board.GameState, player board.Cell, add func(a, b board.Position) bool) bool {
	opp := player.Opponent()
	oppThreats := vcdt.TwoStoneWins(vcdt.Detect(s, opp))
	for _, t := range oppThreats {
		if len(t.Positions) == 2 {
			if add(t.Positions[0], t.Positions[1]) {
				return true
			}
		}
	}
	myThreats := vcdt.TwoStoneWins(vcdt.Detect(s, player))
	for _, t := range myThreats {
		if len(t.Positions) == 2 {
			if add(t.Positions[0], t.Positions[1]) {
				return true
			}
		}
	}
	return false
}

func band2CenterCenter(candidates []board.Position, add func(a, b board.Position) bool) bool {
	center, _ := splitCenterPeriphery(candidates)
	for i := 0; i < len(center); i++ {
		for j := i + 1; j < len(center); j++ {
			if add(center[i], center[j]) {
				return true
			}
		}
	}
	return false
}

func band3CenterPeriphery(candidates []board.Position, add func(a, b board.Position) bool) bool {
	center, periphery := splitCenterPeriphery(candidates)
	for _, c := range center {
		for _, p := range periphery {
			if add(c, p) {
				return true
			}
		}
	}
	for i := 0; i < len(periphery); i++ {
		for j := i + 1; j < len(periphery); j++ {
			if add(periphery[i], periphery[j]) {
				return true
			}
		}
	}
	return false
}

// splitCenterPeriphery partitions candidates into the centerPoolSize
// cells closest to board center and the rest.
func splitCenterPeriphery(candidates []board.Position) (center, periphery []board.Position) {
	ordered := append([]board.Position(nil), candidates...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return board.ManhattanDist(ordered[i], board.Center) < board.ManhattanDist(ordered[j], board.Center)
	})
	if len(ordered) <= centerPoolSize {
		return ordered, nil
	}
	return ordered[:centerPoolSize], ordered[centerPoolSize:]
}

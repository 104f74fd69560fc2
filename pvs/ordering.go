package pvs

import (
	"sort"

	"connect6engine/board"
)

// Move ordering priorities, mirrored from hailam-chessplay's
// internal/engine/ordering.go scoring bands (TT move, killer slots,
// history) with MVV-LVA dropped since Connect6 has no captures.
const (
	ttMoveScore  = 10_000_000
	killerScore1 = 900_000
	killerScore2 = 800_000
)

const maxPly = 64

// orderer tracks killer moves and history scores across one search.
type orderer struct {
	killers [maxPly][2]moveKey
	history map[moveKey]int
}

type moveKey [2]cellPos

func newOrderer() *orderer {
	return &orderer{history: make(map[moveKey]int)}
}

func (o *orderer) clear() {
	for i := range o.killers {
		o.killers[i] = [2]moveKey{}
	}
	for k := range o.history {
		o.history[k] /= 2
	}
}

func keyOf(m board.Move) moveKey {
	var k moveKey
	for i, p := range m.Positions {
		if i >= 2 {
			break
		}
		k[i] = cellPos{p.X, p.Y}
	}
	if len(m.Positions) == 1 {
		k[1] = k[0]
	}
	if k[1].X < k[0].X || (k[1].X == k[0].X && k[1].Y < k[0].Y) {
		k[0], k[1] = k[1], k[0]
	}
	return k
}

// scoreMove ranks m for ordering at ply: TT move first, then killers,
// then history, falling back to 0 for unseen quiet moves.
func (o *orderer) scoreMove(m board.Move, ply int, ttMove bestMove) int {
	if ttMove.valid && moveMatchesBest(m, ttMove) {
		return ttMoveScore
	}
	k := keyOf(m)
	if ply < maxPly {
		if o.killers[ply][0] == k {
			return killerScore1
		}
		if o.killers[ply][1] == k {
			return killerScore2
		}
	}
	return o.history[k]
}

func moveMatchesBest(m board.Move, b bestMove) bool {
	return keyOf(m) == moveKey(b.cells)
}

// orderMoves sorts moves descending by scoreMove, stable so ties keep
// their RZOP/enumeration order (already center-distance sorted).
func (o *orderer) orderMoves(moves []board.Move, ply int, ttMove bestMove) {
	type scored struct {
		move  board.Move
		score int
	}
	paired := make([]scored, len(moves))
	for i, m := range moves {
		paired[i] = scored{move: m, score: o.scoreMove(m, ply, ttMove)}
	}
	sort.SliceStable(paired, func(i, j int) bool {
		return paired[i].score > paired[j].score
	})
	for i, p := range paired {
		moves[i] = p.move
	}
}

// updateKiller records a quiet move that caused a beta cutoff at ply.
func (o *orderer) updateKiller(m board.Move, ply int) {
	if ply >= maxPly {
		return
	}
	k := keyOf(m)
	if o.killers[ply][0] == k {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = k
}

// updateHistory rewards or penalizes a quiet move by depth^2, as in
// hailam-chessplay's UpdateHistory.
func (o *orderer) updateHistory(m board.Move, depth int, good bool) {
	k := keyOf(m)
	bonus := depth * depth
	if good {
		o.history[k] += bonus
		if o.history[k] > 400_000 {
			for kk := range o.history {
				o.history[kk] /= 2
			}
		}
	} else {
		o.history[k] -= bonus
		if o.history[k] < -400_000 {
			o.history[k] = -400_000
		}
	}
}

func toBestMove(m board.Move) bestMove {
	b := bestMove{valid: true, n: len(m.Positions)}
	for i, p := range m.Positions {
		if i >= 2 {
			break
		}
		b.cells[i] = cellPos{p.X, p.Y}
	}
	if len(m.Positions) == 1 {
		b.cells[1] = b.cells[0]
	}
	return b
}

// Package rzop implements the Relevance-Zone / Order-Preserving
// candidate generator: a bounded, ordered set of empty cells used as
// the branching set at every search node. It generalizes the teacher
// repo's board.GetPriorityPositions (a flat radius-box around
// existing stones) into the full relevance-zone + urgent-threat +
// dead-line-pruning pipeline of the spec.
package rzop

import (
	"sort"

	"connect6engine/board"
	"connect6engine/roads"
)

const (
	relevanceRadius   = 3
	perLineQuota      = 4
	minSameColorForHV = 3
)

// Candidates returns an ordered, bounded set of empty cells for
// player to consider at s: urgent blocks first (ascending distance to
// center), then filtered relevance-zone cells (also ascending distance
// to center), each row/diagonal/anti-diagonal capped at perLineQuota
// admissions among the non-urgent group.
func Candidates(s board.GameState, player board.Cell) []board.Position {
	zone := relevanceZone(&s.Board)
	urgentSet := urgentBlocks(&s.Board, player)

	urgent := make([]board.Position, 0, len(urgentSet))
	nonUrgent := make([]board.Position, 0, len(zone))
	for p := range zone {
		if urgentSet[p] {
			urgent = append(urgent, p)
		} else {
			nonUrgent = append(nonUrgent, p)
		}
	}
	// Urgent cells outside the relevance zone (possible on a sparse
	// board with a distant forced shape) are still urgent and must not
	// be dropped.
	for p := range urgentSet {
		if !zone[p] {
			urgent = append(urgent, p)
		}
	}

	// Sort before filtering/quota: applyPerLineQuota keeps cells in scan
	// order and drops the rest once a line's quota is full, so the scan
	// order must already be deterministic or the retained set (not just
	// its final ordering) would vary run to run.
	sortByCenterDistance(nonUrgent)
	filtered := filterCandidates(&s.Board, nonUrgent)
	filtered = applyPerLineQuota(filtered)

	sortByCenterDistance(urgent)

	out := append(urgent, filtered...)
	if len(out) == 0 {
		// Fallback: return the unfiltered relevance zone.
		fallback := make([]board.Position, 0, len(zone))
		for p := range zone {
			fallback = append(fallback, p)
		}
		sortByCenterDistance(fallback)
		return fallback
	}
	return out
}

// relevanceZone returns the empty cells eligible for consideration:
// center + orthogonal neighbors on an empty board, else every empty
// cell within Chebyshev radius 3 of an occupied cell.
func relevanceZone(b *board.Board) map[board.Position]bool {
	zone := make(map[board.Position]bool)
	if b.IsEmpty() {
		zone[board.Center] = true
		for _, d := range [4]board.Position{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			p := board.Position{X: board.Center.X + d.X, Y: board.Center.Y + d.Y}
			if p.InBounds() {
				zone[p] = true
			}
		}
		return zone
	}
	for x := 0; x < board.Size; x++ {
		for y := 0; y < board.Size; y++ {
			if b[x][y] == board.Empty {
				continue
			}
			for dx := -relevanceRadius; dx <= relevanceRadius; dx++ {
				for dy := -relevanceRadius; dy <= relevanceRadius; dy++ {
					p := board.Position{X: x + dx, Y: y + dy}
					if p.InBounds() && b.At(p) == board.Empty {
						zone[p] = true
					}
				}
			}
		}
	}
	return zone
}

// urgentBlocks scans every road for a block-mate shape (oppCount>=5,
// empties>=1) or a block-live-four shape (oppCount>=4, empties>=2)
// from the perspective of the opponent of player, returning every
// empty cell in such a road.
func urgentBlocks(b *board.Board, player board.Cell) map[board.Position]bool {
	opp := player.Opponent()
	urgent := make(map[board.Position]bool)
	for _, r := range roads.AllRoads() {
		o := roads.CountOccupancy(b, r)
		var oppCount int
		switch opp {
		case board.Black:
			oppCount = o.Black
		case board.White:
			oppCount = o.White
		}
		if (oppCount >= 5 && o.Empty >= 1) || (oppCount >= 4 && o.Empty >= 2) {
			for _, c := range roads.EmptyCells(b, r) {
				urgent[c] = true
			}
		}
	}
	return urgent
}

// filterCandidates keeps a non-urgent cell only if it is adjacent to a
// high-value road, is not a pure-line extension, and is not a
// dead-line cell.
func filterCandidates(b *board.Board, cells []board.Position) []board.Position {
	var out []board.Position
	for _, p := range cells {
		if !roads.IsHighValueRoadCell(b, p, minSameColorForHV) {
			continue
		}
		if isPureLineExtension(b, p) {
			continue
		}
		if isDeadLineCell(b, p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// isPureLineExtension reports whether some road through p already
// holds 5 same-color stones: such a road is already resolved by a
// single-point mate (handled as an urgent block/win elsewhere), so
// filling its sixth cell's neighbors adds no new tactical value here.
func isPureLineExtension(b *board.Board, p board.Position) bool {
	for _, id := range roads.RoadsThrough(p) {
		o := roads.CountOccupancy(b, roads.AllRoads()[id])
		if o.Black >= 5 || o.White >= 5 {
			return true
		}
	}
	return false
}

// isDeadLineCell reports whether every road through p already
// contains stones of both colors, meaning no road through p can ever
// become a six-in-a-row.
func isDeadLineCell(b *board.Board, p board.Position) bool {
	ids := roads.RoadsThrough(p)
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		o := roads.CountOccupancy(b, roads.AllRoads()[id])
		if o.Black == 0 || o.White == 0 {
			return false
		}
	}
	return true
}

// applyPerLineQuota caps admissions per row, per x-y diagonal, and per
// x+y anti-diagonal to perLineQuota each, scanning candidates in their
// given order (the caller sorts them center-nearest first) and keeping
// survivors in that order.
func applyPerLineQuota(cells []board.Position) []board.Position {
	rowCount := make(map[int]int)
	diagCount := make(map[int]int)
	antiDiagCount := make(map[int]int)
	var out []board.Position
	for _, p := range cells {
		diag := p.X - p.Y
		anti := p.X + p.Y
		if rowCount[p.X] >= perLineQuota || diagCount[diag] >= perLineQuota || antiDiagCount[anti] >= perLineQuota {
			continue
		}
		rowCount[p.X]++
		diagCount[diag]++
		antiDiagCount[anti]++
		out = append(out, p)
	}
	return out
}

// sortByCenterDistance orders cells by ascending distance to center,
// with a total X/Y tiebreak so the result is fully deterministic
// regardless of the input order (map iteration feeding this is
// randomized by Go itself).
func sortByCenterDistance(cells []board.Position) {
	sort.Slice(cells, func(i, j int) bool {
		di := board.ManhattanDist(cells[i], board.Center)
		dj := board.ManhattanDist(cells[j], board.Center)
		if di != dj {
			return di < dj
		}
		if cells[i].X != cells[j].X {
			return cells[i].X < cells[j].X
		}
		return cells[i].Y < cells[j].Y
	})
}

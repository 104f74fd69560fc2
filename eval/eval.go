// Package eval implements the static position evaluator: four additive
// terms (road terminal, pattern, threat defense, positional) combined
// into a single signed score from one player's perspective. It
// generalizes the teacher repo's board.EvaluateBoard/WeightedChainScore
// (fixed constants keyed only on run length and open ends) into a
// weighted, VCDT-aware evaluator tunable by the self-play GA.
package eval

import (
	"connect6engine/board"
	"connect6engine/roads"
	"connect6engine/vcdt"
)

// EvaluationWeights tunes the pattern term. Road3 and Road4 are carried
// for GA tunability but read by nothing in Evaluate: the pattern term
// only prices the 4-empty-2 ("live four") and 5-empty-1 ("live five")
// shapes spec.md defines, never bare 3- or 4-runs.
type EvaluationWeights struct {
	Road3     float64
	Road4     float64
	Live4     float64
	Live5     float64
	VCDTBonus float64
}

// DefaultWeights mirrors the coefficients spec.md §4.3 names explicitly.
func DefaultWeights() EvaluationWeights {
	return EvaluationWeights{
		Road3:     0,
		Road4:     0,
		Live4:     1,
		Live5:     1,
		VCDTBonus: 1,
	}
}

const (
	roadTerminalScore = 1_000_000

	threatOppSingle     = 200_000
	threatOppTwoStone   = 120_000
	threatOppLiveFourHi = 80_000
	threatOppLiveFourLo = 40_000

	threatMySingle     = 200_000
	threatMyTwoStone   = 100_000
	threatMyLiveFourHi = 30_000
	threatMyLiveFourLo = 10_000

	maxCenterDist = 2 * ((board.Size - 1) / 2)
)

// Evaluate scores state from player's perspective as the sum of the
// road-terminal, pattern, threat-defense, and positional terms.
func Evaluate(s board.GameState, player board.Cell, w EvaluationWeights) float64 {
	opp := player.Opponent()

	score := roadTerminalTerm(&s.Board, player, opp)
	score += patternTerm(&s.Board, player, opp, w)
	score += threatDefenseTerm(s, player, opp)
	score += positionalTerm(&s.Board, player, opp)
	return score
}

// roadTerminalTerm returns +-1,000,000 the instant either side already
// has six in a road; sub-six shapes are priced only by patternTerm.
func roadTerminalTerm(b *board.Board, player, opp board.Cell) float64 {
	for _, r := range roads.AllRoads() {
		o := roads.CountOccupancy(b, r)
		if myCount(o, player) >= 6 {
			return roadTerminalScore
		}
		if myCount(o, opp) >= 6 {
			return -roadTerminalScore
		}
	}
	return 0
}

func myCount(o roads.Occupancy, player board.Cell) int {
	switch player {
	case board.Black:
		return o.Black
	case board.White:
		return o.White
	default:
		return 0
	}
}

// patternTerm counts live-four and live-five shapes (one color absent
// from the road) for both sides, plus a VCDT-count differential.
func patternTerm(b *board.Board, player, opp board.Cell, w EvaluationWeights) float64 {
	var myLive4, myLive5, oppLive4, oppLive5 int
	for _, r := range roads.AllRoads() {
		o := roads.CountOccupancy(b, r)
		mine, foe := myCount(o, player), myCount(o, opp)

		if foe == 0 && mine == 4 && o.Empty == 2 {
			myLive4++
		}
		if foe == 0 && mine == 5 && o.Empty == 1 {
			myLive5++
		}
		if mine == 0 && foe == 4 && o.Empty == 2 {
			oppLive4++
		}
		if mine == 0 && foe == 5 && o.Empty == 1 {
			oppLive5++
		}
	}

	myVcdts := float64(myLive4 + myLive5)
	oppVcdts := float64(oppLive4 + oppLive5)

	return float64(myLive4)*w.Live4 + float64(myLive5)*w.Live5 -
		float64(oppLive4)*w.Live4*0.8 - float64(oppLive5)*w.Live5*0.9 +
		(myVcdts-oppVcdts)*w.VCDTBonus
}

// threatDefenseTerm heavily penalizes leaving an opponent mate
// undefended and rewards the mover holding one, dominating the
// pattern term's shape-based scoring.
func threatDefenseTerm(s board.GameState, player, opp board.Cell) float64 {
	myThreats := vcdt.Detect(s, player)
	oppThreats := vcdt.Detect(s, opp)

	score := 0.0
	score -= float64(len(vcdt.SinglePointWins(oppThreats))) * threatOppSingle
	score -= float64(len(vcdt.TwoStoneWins(oppThreats))) * threatOppTwoStone
	if n := len(vcdt.LiveFours(oppThreats)); n >= 2 {
		score -= float64(n) * threatOppLiveFourHi
	} else if n == 1 {
		score -= threatOppLiveFourLo
	}

	score += float64(len(vcdt.SinglePointWins(myThreats))) * threatMySingle
	score += float64(len(vcdt.TwoStoneWins(myThreats))) * threatMyTwoStone
	if n := len(vcdt.LiveFours(myThreats)); n >= 2 {
		score += float64(n) * threatMyLiveFourHi
	} else if n == 1 {
		score += threatMyLiveFourLo
	}

	return score
}

// positionalTerm rewards central occupation for the mover, penalizes
// it for the opponent.
func positionalTerm(b *board.Board, player, opp board.Cell) float64 {
	score := 0.0
	for x := 0; x < board.Size; x++ {
		for y := 0; y < board.Size; y++ {
			p := board.Position{X: x, Y: y}
			c := b.At(p)
			if c != player && c != opp {
				continue
			}
			weight := 2.0 * float64(maxCenterDist-board.ManhattanDist(p, board.Center))
			if c == player {
				score += weight
			} else {
				score -= weight
			}
		}
	}
	return score
}

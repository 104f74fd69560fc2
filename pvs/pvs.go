// Package pvs implements the principal-variation search engine: root
// VCDT forcing, iterative deepening with aspiration windows, negamax
// PVS with transposition-table probing/storing, killer/history move
// ordering, and quiescence search. It is grounded structurally on
// hailam-chessplay's internal/engine/search.go (negamax-PVS shape,
// PVTable-free here since only the root move is reported) and
// internal/engine/transposition.go (age/depth replacement policy,
// generalized to a map-keyed table since Connect6 has no fixed
// Zobrist width).
package pvs

import (
	"time"

	"connect6engine/board"
	"connect6engine/defense"
	"connect6engine/eval"
	"connect6engine/rzop"
	"connect6engine/vcdt"
)

const (
	infinity                = 2_000_000_000
	mateScore               = 1_000_000
	threatMyLiveFourPenalty = 80_000
	aspirationWindow        = 50_000
	quiescenceMaxPly  = 2
	quiescenceRZOPCap = 30
)

// Config bounds one search call.
type Config struct {
	MaxDepth    int
	TimeLimitMs int
}

// Meta describes how a Decision was produced.
type Meta struct {
	Engine string
	Mode   string // "vcdt_root", "normal", or "no_candidate_fallback"
	Depth  int
	Nodes  int
	TTSize int
}

// Decision is the engine's chosen move plus provenance.
type Decision struct {
	Move  board.Move
	Score int
	Meta  Meta
}

// Engine holds search state (transposition table, move orderer) that
// should persist across calls within one game, the way hailam-chessplay's
// Searcher holds a long-lived TT and MoveOrderer.
type Engine struct {
	tt      *TranspositionTable
	orderer *orderer
}

// NewEngine returns an Engine with a fresh transposition table.
func NewEngine() *Engine {
	return &Engine{tt: NewTranspositionTable(), orderer: newOrderer()}
}

// Search picks a move for player to play in s.
func (e *Engine) Search(s board.GameState, player board.Cell, weights eval.EvaluationWeights, cfg Config) Decision {
	if d, ok := e.rootVCDTForcing(s, player); ok {
		return d
	}

	candidates := rzop.Candidates(s, player)
	moves := generateMoves(s, player, candidates)
	if len(moves) == 0 {
		fallback := board.Move{Player: player}
		want := board.StonesToPlace(s.MoveNumber)
		for x := 0; x < board.Size && len(fallback.Positions) < want; x++ {
			for y := 0; y < board.Size && len(fallback.Positions) < want; y++ {
				if p := (board.Position{X: x, Y: y}); s.Board.At(p) == board.Empty {
					fallback.Positions = append(fallback.Positions, p)
				}
			}
		}
		return Decision{Move: fallback, Meta: Meta{Engine: "pvs", Mode: "no_candidate_fallback"}}
	}

	e.orderer.clear()
	search := &search{engine: e, weights: weights, deadline: time.Now().Add(time.Duration(cfg.TimeLimitMs)*time.Millisecond - 100*time.Millisecond)}

	best := moves[0]
	bestScore := -infinity
	depthReached := 0
	prevScore := 0

	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		alpha, beta := -infinity, infinity
		if depth >= 2 {
			alpha = prevScore - aspirationWindow
			beta = prevScore + aspirationWindow
		}

		move, score, aborted := search.searchRoot(s, player, moves, depth, alpha, beta)
		if aborted && depth > 1 {
			break
		}
		if score <= alpha || score >= beta {
			move, score, aborted = search.searchRoot(s, player, moves, depth, -infinity, infinity)
			if aborted && depth > 1 {
				break
			}
		}

		best, bestScore, prevScore = move, score, score
		depthReached = depth
		moves = reorderWithBestFirst(moves, best)
		if aborted {
			break
		}
	}

	return Decision{
		Move:  best,
		Score: bestScore,
		Meta: Meta{
			Engine: "pvs",
			Mode:   "normal",
			Depth:  depthReached,
			Nodes:  search.nodes,
			TTSize: e.tt.Size(),
		},
	}
}

// rootVCDTForcing implements spec's 5-step pre-search priority list:
// play a mate, block an opponent mate (favoring the common
// intersection cell of multiple pairs), occupy an opponent single
// mate point, smart-defend a live-four, or fall through.
func (e *Engine) rootVCDTForcing(s board.GameState, player board.Cell) (Decision, bool) {
	opp := player.Opponent()
	myThreats := vcdt.Detect(s, player)
	oppThreats := vcdt.Detect(s, opp)
	candidates := rzop.Candidates(s, player)

	pad := func(primary board.Position) board.Move {
		if board.StonesToPlace(s.MoveNumber) == 1 {
			return board.Move{Player: player, Positions: []board.Position{primary}}
		}
		companion := firstCandidateExcluding(candidates, primary)
		return board.Move{Player: player, Positions: []board.Position{primary, companion}}
	}

	if wins := vcdt.SinglePointWins(myThreats); len(wins) > 0 {
		return Decision{Move: pad(wins[0].Positions[0]), Score: mateScore, Meta: Meta{Engine: "pvs", Mode: "vcdt_root"}}, true
	}

	if pairs := vcdt.TwoStoneWins(oppThreats); len(pairs) > 0 {
		if len(pairs) == 1 {
			a, b := pairs[0].Positions[0], pairs[0].Positions[1]
			return Decision{Move: board.Move{Player: player, Positions: []board.Position{a, b}}, Score: -mateScore, Meta: Meta{Engine: "pvs", Mode: "vcdt_root"}}, true
		}
		if common, ok := commonIntersection(pairs); ok {
			return Decision{Move: pad(common), Score: -mateScore, Meta: Meta{Engine: "pvs", Mode: "vcdt_root"}}, true
		}
		a, b := topTwoByCoverage(pairs)
		return Decision{Move: board.Move{Player: player, Positions: []board.Position{a, b}}, Score: -mateScore, Meta: Meta{Engine: "pvs", Mode: "vcdt_root"}}, true
	}

	if wins := vcdt.SinglePointWins(oppThreats); len(wins) > 0 {
		return Decision{Move: pad(wins[0].Positions[0]), Score: -mateScore, Meta: Meta{Engine: "pvs", Mode: "vcdt_root"}}, true
	}

	if liveFours := vcdt.LiveFours(oppThreats); len(liveFours) > 0 {
		move := defense.Defend(s, player, liveFours[0], candidates)
		return Decision{Move: move, Score: -threatMyLiveFourPenalty, Meta: Meta{Engine: "pvs", Mode: "vcdt_root"}}, true
	}

	return Decision{}, false
}

func firstCandidateExcluding(candidates []board.Position, exclude board.Position) board.Position {
	for _, p := range candidates {
		if p != exclude {
			return p
		}
	}
	return exclude
}

// commonIntersection returns a cell present in every pair, if one exists.
func commonIntersection(pairs []vcdt.Threat) (board.Position, bool) {
	counts := make(map[board.Position]int)
	for _, t := range pairs {
		for _, p := range t.Positions {
			counts[p]++
		}
	}
	for p, n := range counts {
		if n == len(pairs) {
			return p, true
		}
	}
	return board.Position{}, false
}

// topTwoByCoverage returns the two cells appearing in the most pairs.
func topTwoByCoverage(pairs []vcdt.Threat) (board.Position, board.Position) {
	counts := make(map[board.Position]int)
	order := make([]board.Position, 0)
	for _, t := range pairs {
		for _, p := range t.Positions {
			if counts[p] == 0 {
				order = append(order, p)
			}
			counts[p]++
		}
	}
	bestA, bestB := order[0], order[0]
	bestACount, bestBCount := -1, -1
	for _, p := range order {
		c := counts[p]
		if c > bestACount {
			bestB, bestBCount = bestA, bestACount
			bestA, bestACount = p, c
		} else if c > bestBCount {
			bestB, bestBCount = p, c
		}
	}
	if bestA == bestB && len(order) > 1 {
		bestB = order[1]
	}
	return bestA, bestB
}

// generateMoves returns the root move list: single-stone moves on the
// opening ply, else two-stone moves enumerated from candidates.
func generateMoves(s board.GameState, player board.Cell, candidates []board.Position) []board.Move {
	if board.StonesToPlace(s.MoveNumber) == 1 {
		moves := make([]board.Move, 0, len(candidates))
		for _, p := range candidates {
			moves = append(moves, board.Move{Player: player, Positions: []board.Position{p}})
		}
		return moves
	}
	return rzop.EnumeratePairs(s, player, candidates)
}

func reorderWithBestFirst(moves []board.Move, best board.Move) []board.Move {
	bk := keyOf(best)
	for i, m := range moves {
		if keyOf(m) == bk {
			if i == 0 {
				return moves
			}
			out := make([]board.Move, 0, len(moves))
			out = append(out, m)
			out = append(out, moves[:i]...)
			out = append(out, moves[i+1:]...)
			return out
		}
	}
	return moves
}

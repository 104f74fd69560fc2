package pvs

import (
	"time"

	"connect6engine/board"
	"connect6engine/eval"
	"connect6engine/rzop"
)

// search holds the mutable state of one iterative-deepening call.
type search struct {
	engine   *Engine
	weights  eval.EvaluationWeights
	deadline time.Time
	nodes    int
	aborted  bool
}

func (sr *search) timeUp() bool {
	if sr.nodes&1023 == 0 && time.Now().After(sr.deadline) {
		sr.aborted = true
	}
	return sr.aborted
}

// searchRoot runs PVS across moves at depth and returns the best move
// and score, plus whether the search was aborted mid-iteration
// (score/move still reflect the last fully-searched child).
func (sr *search) searchRoot(s board.GameState, player board.Cell, moves []board.Move, depth, alpha, beta int) (board.Move, int, bool) {
	sr.aborted = false
	sr.engine.orderer.orderMoves(moves, 0, bestMove{})

	best := moves[0]
	bestScore := -infinity
	first := true

	for _, m := range moves {
		if sr.timeUp() {
			break
		}
		child, err := board.Apply(s, m)
		if err != nil {
			continue
		}

		var score int
		if first {
			score = -sr.negamax(child, depth-1, 1, -beta, -alpha)
			first = false
		} else {
			score = -sr.negamax(child, depth-1, 1, -alpha-1, -alpha)
			if score > alpha && score < beta {
				score = -sr.negamax(child, depth-1, 1, -beta, -alpha)
			}
		}

		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			sr.engine.orderer.updateKiller(m, 0)
			sr.engine.orderer.updateHistory(m, depth, true)
			break
		}
	}

	return best, bestScore, sr.aborted
}

// negamax evaluates s from the perspective of s.CurrentPlayer.
func (sr *search) negamax(s board.GameState, depth, ply, alpha, beta int) int {
	sr.nodes++
	if sr.timeUp() {
		return 0
	}

	if s.IsTerminal() {
		return terminalScore(s.Winner, s.CurrentPlayer, ply)
	}

	key := ttKey(s)
	origAlpha := alpha
	if entry, ok := sr.engine.tt.Probe(key); ok && entry.depth >= depth {
		switch entry.flag {
		case ttExact:
			return entry.score
		case ttLower:
			if entry.score > alpha {
				alpha = entry.score
			}
		case ttUpper:
			if entry.score < beta {
				beta = entry.score
			}
		}
		if alpha >= beta {
			return entry.score
		}
	}

	if depth <= 0 {
		return sr.quiescence(s, quiescenceMaxPly, ply, alpha, beta)
	}

	candidates := rzop.Candidates(s, s.CurrentPlayer)
	moves := generateMoves(s, s.CurrentPlayer, candidates)
	if len(moves) == 0 {
		return int(eval.Evaluate(s, s.CurrentPlayer, sr.weights))
	}

	var ttMove bestMove
	if entry, ok := sr.engine.tt.Probe(key); ok {
		ttMove = entry.move
	}
	sr.engine.orderer.orderMoves(moves, ply, ttMove)

	bestScore := -infinity
	var best board.Move
	first := true

	for _, m := range moves {
		if sr.timeUp() {
			break
		}
		child, err := board.Apply(s, m)
		if err != nil {
			continue
		}

		var score int
		if first {
			score = -sr.negamax(child, depth-1, ply+1, -beta, -alpha)
			first = false
		} else {
			score = -sr.negamax(child, depth-1, ply+1, -alpha-1, -alpha)
			if score > alpha && score < beta {
				score = -sr.negamax(child, depth-1, ply+1, -beta, -alpha)
			}
		}

		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
			sr.engine.orderer.updateHistory(m, depth, true)
		}
		if alpha >= beta {
			sr.engine.orderer.updateKiller(m, ply)
			break
		}
	}

	flag := ttExact
	if bestScore <= origAlpha {
		flag = ttUpper
	} else if bestScore >= beta {
		flag = ttLower
	}
	sr.engine.tt.Store(key, depth, bestScore, flag, toBestMove(best))

	return bestScore
}

// quiescence extends search along tactical lines only, stand-pat
// bounded, capped at quiescenceMaxPly plies and quiescenceRZOPCap
// candidates per spec.md's quiescence rule.
func (sr *search) quiescence(s board.GameState, depthLeft, ply, alpha, beta int) int {
	sr.nodes++
	if s.IsTerminal() {
		return terminalScore(s.Winner, s.CurrentPlayer, ply)
	}

	standPat := int(eval.Evaluate(s, s.CurrentPlayer, sr.weights))
	if depthLeft <= 0 {
		return standPat
	}
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	candidates := rzop.Candidates(s, s.CurrentPlayer)
	if len(candidates) > quiescenceRZOPCap {
		candidates = candidates[:quiescenceRZOPCap]
	}
	moves := generateMoves(s, s.CurrentPlayer, candidates)

	for _, m := range moves {
		if sr.timeUp() {
			break
		}
		child, err := board.Apply(s, m)
		if err != nil {
			continue
		}
		score := -sr.quiescence(child, depthLeft-1, ply+1, -beta, -alpha)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// terminalScore returns a mate-distance-adjusted score from
// sideToMove's perspective for a just-concluded game.
func terminalScore(winner board.Winner, sideToMove board.Cell, ply int) int {
	if winner == board.Draw || winner == board.NoWinner {
		return 0
	}
	winningColor := board.Black
	if winner == board.WhiteWins {
		winningColor = board.White
	}
	magnitude := mateScore - 10_000*ply
	if winningColor == sideToMove.Opponent() {
		return -magnitude
	}
	return magnitude
}

func ttKey(s board.GameState) string {
	side := byte('B')
	if s.CurrentPlayer == board.White {
		side = 'W'
	}
	return s.Board.Hash() + string(side)
}

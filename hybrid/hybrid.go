// Package hybrid selects between the PVS and MCTS engines by move
// number and position complexity, or honors an operator-forced
// traditional (PVS-only) or deep (MCTS-only) mode. It has no teacher
// analogue in the example repo (the teacher always used its single
// MCTS search); it is grounded on the same repo's game.botTurn, which
// is the one place the teacher itself chose which search to invoke.
package hybrid

import (
	"connect6engine/board"
	"connect6engine/eval"
	"connect6engine/mcts"
	"connect6engine/pvs"
	"connect6engine/roads"
)

// Mode forces a specific engine, or Auto to use the move-number/complexity rule.
type Mode int

const (
	Auto Mode = iota
	Traditional
	Deep
)

// Config bounds both underlying engines plus the selection mode.
type Config struct {
	Mode  Mode
	PVS   pvs.Config
	MCTS  mcts.Config
}

// Decision is the chosen move plus which engine(s) produced it.
type Decision struct {
	Move   board.Move
	Score  float64
	Engine string // "pvs" or "mcts": the engine whose move was returned
}

// Engine owns the long-lived PVS and MCTS engine instances so their
// transposition tables persist across calls within one game.
type Engine struct {
	pvsEngine  *pvs.Engine
	mctsEngine *mcts.Engine
}

// NewEngine returns an Engine with fresh PVS and MCTS engines.
func NewEngine() *Engine {
	return &Engine{pvsEngine: pvs.NewEngine(), mctsEngine: mcts.NewEngine()}
}

// Select picks a move for player in s, applying spec.md §4.10's
// move-number/complexity rule unless cfg.Mode forces a specific engine.
func (e *Engine) Select(s board.GameState, player board.Cell, weights eval.EvaluationWeights, oracle mcts.Evaluator, cfg Config) Decision {
	switch cfg.Mode {
	case Traditional:
		return e.fromPVS(s, player, weights, cfg)
	case Deep:
		return e.fromMCTS(s, player, oracle, cfg)
	}

	m := s.MoveNumber
	if m <= 10 || m > 30 {
		return e.fromPVS(s, player, weights, cfg)
	}

	c := Complexity(s)
	if c <= 0.6 {
		return e.fromPVS(s, player, weights, cfg)
	}

	pvsDecision := e.fromPVS(s, player, weights, cfg)
	mctsDecision := e.fromMCTS(s, player, oracle, cfg)
	if mctsDecision.Score > pvsDecision.Score {
		return mctsDecision
	}
	return pvsDecision
}

func (e *Engine) fromPVS(s board.GameState, player board.Cell, weights eval.EvaluationWeights, cfg Config) Decision {
	d := e.pvsEngine.Search(s, player, weights, cfg.PVS)
	return Decision{Move: d.Move, Score: normalizedPVSScore(d.Score), Engine: "pvs"}
}

func (e *Engine) fromMCTS(s board.GameState, player board.Cell, oracle mcts.Evaluator, cfg Config) Decision {
	d := e.mctsEngine.Search(s, player, oracle, cfg.MCTS)
	return Decision{Move: d.Move, Score: d.Score, Engine: "mcts"}
}

// normalizedPVSScore rescales a PVS mate-scale score into MCTS's
// [0,1] win-rate range so "whichever scored higher" is a meaningful
// comparison across engines; this mapping is an explicit Open
// Question resolution (see DESIGN.md), not specified in the source
// material.
func normalizedPVSScore(score int) float64 {
	const scale = 1_000_000
	v := float64(score) / scale
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return (v + 1) / 2
}

// Complexity computes c = 0.5*stonesRatio + 0.5*mixedRoadRatio, where
// mixedRoadRatio is the fraction of roads containing stones of both
// colors.
func Complexity(s board.GameState) float64 {
	stones := s.Board.StoneCount(board.Black) + s.Board.StoneCount(board.White)
	stonesRatio := float64(stones) / float64(board.Size*board.Size)

	mixed := 0
	all := roads.AllRoads()
	for _, r := range all {
		o := roads.CountOccupancy(&s.Board, r)
		if o.Black > 0 && o.White > 0 {
			mixed++
		}
	}
	mixedRatio := 0.0
	if len(all) > 0 {
		mixedRatio = float64(mixed) / float64(len(all))
	}

	return 0.5*stonesRatio + 0.5*mixedRatio
}

// Package engine wires the board, evaluator, PVS, MCTS, and hybrid
// selector into a single play loop, replacing the teacher's
// game+ui packages (which drove a single fixed MCTS against a
// terminal UI). The turn loop, human/bot split, and result reporting
// follow game/game.go and ui/ui.go; the search itself is delegated to
// the hybrid selector instead of a single hardcoded MCTS call.
package engine

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"connect6engine/board"
	"connect6engine/eval"
	"connect6engine/hybrid"
	"connect6engine/mcts"
	"connect6engine/pvs"
)

// UniformOracle is the acceptable default MCTS evaluator from the
// source material's external-interfaces section: a flat policy and a
// neutral value, usable when no trained oracle is wired in.
type UniformOracle struct{}

func (UniformOracle) Evaluate(s board.GameState) (policy [board.Size * board.Size]float64, value float64) {
	uniform := 1.0 / float64(board.Size*board.Size)
	for i := range policy {
		policy[i] = uniform
	}
	return policy, 0
}

const (
	adaptiveDepthMoveThreshold = 24
	adaptiveDepthCap           = 6
	adaptiveTimeMoveThreshold  = 16
	adaptiveTimeBonusMs        = 400
)

// AdaptiveSearchConfig grows maxDepth and timeLimitMs as the game
// progresses, per the source material's adaptive search policy: +1
// maxDepth (capped at 6) past move 24, +400ms past move 16.
func AdaptiveSearchConfig(cfg hybrid.Config, moveNumber int) hybrid.Config {
	if moveNumber > adaptiveDepthMoveThreshold && cfg.PVS.MaxDepth < adaptiveDepthCap {
		cfg.PVS.MaxDepth++
	}
	if moveNumber > adaptiveTimeMoveThreshold {
		cfg.PVS.TimeLimitMs += adaptiveTimeBonusMs
	}
	return cfg
}

// Session drives a full game, alternating a human player (reading
// moves from in) against the hybrid engine, reporting each turn to out.
type Session struct {
	Engine     *hybrid.Engine
	Weights    eval.EvaluationWeights
	Oracle     mcts.Evaluator
	BaseConfig hybrid.Config
	HumanSide  board.Cell // board.Empty means bot plays both sides

	in  *bufio.Reader
	out io.Writer
}

// NewSession wires a fresh hybrid engine with the uniform default oracle.
func NewSession(humanSide board.Cell, in io.Reader, out io.Writer) *Session {
	return &Session{
		Engine:  hybrid.NewEngine(),
		Weights: eval.DefaultWeights(),
		Oracle:  UniformOracle{},
		BaseConfig: hybrid.Config{
			PVS:  defaultPVSConfig(),
			MCTS: mcts.DefaultConfig(),
		},
		HumanSide: humanSide,
		in:        bufio.NewReader(in),
		out:       out,
	}
}

func defaultPVSConfig() pvs.Config {
	return pvs.Config{MaxDepth: 4, TimeLimitMs: 2000}
}

// Run plays until the game reaches a terminal state, printing the
// board before each move and the final result at the end.
func (sess *Session) Run() board.GameState {
	s := board.NewGame()
	for !s.IsTerminal() {
		PrintBoard(sess.out, s.Board)

		var move board.Move
		if sess.HumanSide != board.Empty && s.CurrentPlayer == sess.HumanSide {
			move = sess.readHumanMove(s)
		} else {
			cfg := AdaptiveSearchConfig(sess.BaseConfig, s.MoveNumber)
			decision := sess.Engine.Select(s, s.CurrentPlayer, sess.Weights, sess.Oracle, cfg)
			move = decision.Move
			fmt.Fprintf(sess.out, "%s plays %v (engine=%s)\n", s.CurrentPlayer, move.Positions, decision.Engine)
		}

		next, err := board.Apply(s, move)
		if err != nil {
			fmt.Fprintf(sess.out, "illegal move %v: %v, asking again\n", move, err)
			continue
		}
		s = next
	}

	PrintBoard(sess.out, s.Board)
	ShowResult(sess.out, s.Winner)
	return s
}

func (sess *Session) readHumanMove(s board.GameState) board.Move {
	want := board.StonesToPlace(s.MoveNumber)
	for {
		if want == 1 {
			fmt.Fprint(sess.out, "enter one position (x y): ")
		} else {
			fmt.Fprint(sess.out, "enter two positions (x1 y1 x2 y2): ")
		}
		line, err := sess.in.ReadString('\n')
		if err != nil {
			continue
		}
		positions, ok := parsePositions(line, want)
		if !ok {
			fmt.Fprintln(sess.out, "invalid input, try again")
			continue
		}
		move := board.Move{Player: s.CurrentPlayer, Positions: positions}
		if err := board.ValidateMove(s, move); err != nil {
			fmt.Fprintf(sess.out, "invalid move: %v\n", err)
			continue
		}
		return move
	}
}

func parsePositions(line string, want int) ([]board.Position, bool) {
	fields := strings.Fields(line)
	if len(fields) != want*2 {
		return nil, false
	}
	positions := make([]board.Position, want)
	for i := 0; i < want; i++ {
		var x, y int
		if _, err := fmt.Sscanf(fields[2*i], "%d", &x); err != nil {
			return nil, false
		}
		if _, err := fmt.Sscanf(fields[2*i+1], "%d", &y); err != nil {
			return nil, false
		}
		positions[i] = board.Position{X: x, Y: y}
	}
	return positions, true
}

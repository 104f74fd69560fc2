package mcts

import (
	"math/rand"
	"testing"

	"connect6engine/board"
)

// uniformOracle returns a flat policy and a value derived from stone
// count difference, enough to drive deterministic-ish tests without
// a trained network.
type uniformOracle struct{}

func (uniformOracle) Evaluate(s board.GameState) (policy [board.Size * board.Size]float64, value float64) {
	for i := range policy {
		policy[i] = 1e-4
	}
	black := s.Board.StoneCount(board.Black)
	white := s.Board.StoneCount(board.White)
	if s.CurrentPlayer == board.Black {
		value = float64(black-white) / 10
	} else {
		value = float64(white-black) / 10
	}
	return policy, value
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Iterations = 40
	cfg.TimeLimitMs = 500
	cfg.ExpandNodes = 4
	cfg.SimulationSteps = 2
	return cfg
}

func TestSearchReturnsLegalMove(t *testing.T) {
	s := board.NewGame()
	e := NewEngine()
	d := e.Search(s, board.Black, uniformOracle{}, smallConfig())
	if err := board.ValidateMove(s, d.Move); err != nil {
		t.Fatalf("Search returned invalid move %v: %v", d.Move, err)
	}
}

func TestSearchPlaysTwoStonesMidGame(t *testing.T) {
	s := board.NewGame()
	s.Board.Set(board.Center, board.Black)
	s.MoveNumber = 1
	s.CurrentPlayer = board.White

	e := NewEngine()
	d := e.Search(s, board.White, uniformOracle{}, smallConfig())
	if len(d.Move.Positions) != 2 {
		t.Fatalf("expected a two-stone move mid-game, got %v", d.Move)
	}
	if err := board.ValidateMove(s, d.Move); err != nil {
		t.Fatalf("Search returned invalid move %v: %v", d.Move, err)
	}
}

func TestBackupFlipsSignUpThePath(t *testing.T) {
	root := &node{state: board.NewGame()}
	child := &node{state: board.NewGame(), parent: root}
	grandchild := &node{state: board.NewGame(), parent: child}

	e := NewEngine()
	e.backup(grandchild, 1.0, board.Black)

	if grandchild.valueSum != 1.0 {
		t.Errorf("grandchild.valueSum = %v, want 1.0", grandchild.valueSum)
	}
	if child.valueSum != -1.0 {
		t.Errorf("child.valueSum = %v, want -1.0", child.valueSum)
	}
	if root.valueSum != 1.0 {
		t.Errorf("root.valueSum = %v, want 1.0", root.valueSum)
	}
	if root.visits != 1 || child.visits != 1 || grandchild.visits != 1 {
		t.Errorf("expected every node on the path visited once: root=%d child=%d grandchild=%d", root.visits, child.visits, grandchild.visits)
	}
}

func TestSampleDirichletSumsToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	samples := sampleDirichlet(0.3, 10, rng)
	total := 0.0
	for _, s := range samples {
		if s < 0 {
			t.Fatalf("negative Dirichlet sample: %v", s)
		}
		total += s
	}
	if total < 0.99 || total > 1.01 {
		t.Fatalf("Dirichlet samples sum to %v, want ~1.0", total)
	}
}

func TestSearchIsDeterministicWithFixedSeed(t *testing.T) {
	s := board.NewGame()
	s.Board.Set(board.Center, board.Black)
	s.MoveNumber = 1
	s.CurrentPlayer = board.White

	cfg := smallConfig()
	cfg.Seed = 42

	e1 := NewEngine()
	d1 := e1.Search(s, board.White, uniformOracle{}, cfg)

	e2 := NewEngine()
	d2 := e2.Search(s, board.White, uniformOracle{}, cfg)

	if d1.Move.Player != d2.Move.Player || len(d1.Move.Positions) != len(d2.Move.Positions) {
		t.Fatalf("same seed produced different moves: %v vs %v", d1.Move, d2.Move)
	}
	for i := range d1.Move.Positions {
		if d1.Move.Positions[i] != d2.Move.Positions[i] {
			t.Fatalf("same seed produced different moves: %v vs %v", d1.Move, d2.Move)
		}
	}
	if d1.Meta.Nodes != d2.Meta.Nodes {
		t.Fatalf("same seed produced different node counts: %d vs %d", d1.Meta.Nodes, d2.Meta.Nodes)
	}
}

func TestTranspositionTableEvictsLeastRecentlyVisited(t *testing.T) {
	tt := newTTTable()
	for i := 0; i < 10; i++ {
		tt.touch(string(rune('a'+i)), 0)
	}
	tt.evictIfOverflow(5)
	if tt.size() != 9 {
		t.Fatalf("expected evictIfOverflow to drop exactly 10%% of entries, got size %d", tt.size())
	}
	if _, ok := tt.lookup("a"); ok {
		t.Error("expected the least-recently-visited entry to be evicted")
	}
	if _, ok := tt.lookup(string(rune('a' + 9))); !ok {
		t.Error("expected the most-recently-visited entry to survive")
	}
}

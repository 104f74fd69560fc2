package vcdt

import (
	"testing"

	"connect6engine/board"
)

func stateWithBlack(cells ...board.Position) board.GameState {
	s := board.NewGame()
	for _, c := range cells {
		s.Board.Set(c, board.Black)
	}
	s.CurrentPlayer = board.Black
	return s
}

func TestSinglePointWin(t *testing.T) {
	s := stateWithBlack(
		board.Position{9, 9}, board.Position{9, 10}, board.Position{9, 11},
		board.Position{9, 12}, board.Position{9, 13},
	)
	threats := Detect(s, board.Black)
	wins := SinglePointWins(threats)
	if len(wins) == 0 {
		t.Fatal("expected at least one single-point win")
	}
	found := false
	for _, w := range wins {
		if len(w.Positions) == 1 && (w.Positions[0] == (board.Position{9, 14}) || w.Positions[0] == (board.Position{9, 8})) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a mate cell at (9,14) or (9,8), got %+v", wins)
	}
}

func TestTwoStoneWinAndLiveFour(t *testing.T) {
	s := stateWithBlack(
		board.Position{3, 3}, board.Position{3, 4}, board.Position{3, 5}, board.Position{3, 6},
	)
	threats := Detect(s, board.Black)
	twoStone := TwoStoneWins(threats)
	liveFour := LiveFours(threats)
	if len(twoStone) == 0 {
		t.Fatal("expected a two-stone win")
	}
	if len(liveFour) == 0 {
		t.Fatal("expected the same shape to also register as a live-four")
	}

	// Three windows hold the four: (3,1)-(3,6), (3,2)-(3,7), (3,3)-(3,8).
	want := map[board.Position]bool{{3, 1}: true, {3, 2}: true, {3, 7}: true, {3, 8}: true}
	for _, thr := range twoStone {
		if len(thr.Positions) != 2 {
			continue
		}
		for _, p := range thr.Positions {
			if !want[p] {
				t.Errorf("unexpected empty cell %v in two-stone win", p)
			}
		}
	}
}

func TestNoThreatsOnEmptyBoard(t *testing.T) {
	s := board.NewGame()
	if threats := Detect(s, board.Black); len(threats) != 0 {
		t.Fatalf("expected no threats on an empty board, got %d", len(threats))
	}
}

func TestThreatsDedupedBySharedEmptyCells(t *testing.T) {
	// A four-in-a-row emits each empty-cell pair once as a two-stone
	// win and once as a live-four, never twice within the same level.
	s := stateWithBlack(
		board.Position{10, 10}, board.Position{10, 11}, board.Position{10, 12}, board.Position{10, 13},
	)
	threats := Detect(s, board.Black)
	type levelKey struct {
		level int
		cells [2]board.Position
	}
	seenKeys := make(map[levelKey]int)
	for _, thr := range threats {
		if len(thr.Positions) == 2 {
			seenKeys[levelKey{thr.Level, key(thr.Positions)}]++
		}
	}
	for k, count := range seenKeys {
		if count > 1 {
			t.Errorf("empty-cell pair %v emitted %d times, want deduped within a level", k, count)
		}
	}
}

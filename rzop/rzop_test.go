package rzop

import (
	"testing"

	"connect6engine/board"
)

func TestCandidatesOnEmptyBoardIsCenterCross(t *testing.T) {
	s := board.NewGame()
	cands := Candidates(s, board.Black)
	if len(cands) != 5 {
		t.Fatalf("expected 5 candidates on an empty board, got %d: %v", len(cands), cands)
	}
	seen := make(map[board.Position]bool)
	for _, p := range cands {
		seen[p] = true
	}
	if !seen[board.Center] {
		t.Error("expected center to be a candidate")
	}
}

func TestCandidatesIncludeUrgentBlocks(t *testing.T) {
	s := board.NewGame()
	// White has a live-four against the board edge; Black to move must
	// see its open end (0,4) as a candidate.
	for _, p := range []board.Position{{0, 0}, {0, 1}, {0, 2}, {0, 3}} {
		s.Board.Set(p, board.White)
	}
	s.CurrentPlayer = board.Black

	cands := Candidates(s, board.Black)
	want := map[board.Position]bool{{0, 4}: true, {0, -1}: false}
	found := false
	for _, p := range cands {
		if p == (board.Position{0, 4}) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected urgent cell (0,4) among candidates, got %v (want map %v)", cands, want)
	}
}

func TestCandidatesNeverEmpty(t *testing.T) {
	s := board.NewGame()
	s.Board.Set(board.Position{0, 0}, board.Black)
	cands := Candidates(s, board.White)
	if len(cands) == 0 {
		t.Fatal("expected a non-empty candidate list (fallback should kick in if needed)")
	}
}

func TestEnumeratePairsNoDuplicateOrOccupiedCells(t *testing.T) {
	s := board.NewGame()
	s.Board.Set(board.Position{9, 9}, board.Black)
	s.CurrentPlayer = board.Black
	cands := Candidates(s, board.Black)
	pairs := EnumeratePairs(s, board.Black, cands)
	if len(pairs) == 0 {
		t.Fatal("expected at least one pair")
	}
	seen := make(map[[2]board.Position]bool)
	for _, m := range pairs {
		if len(m.Positions) != 2 {
			t.Fatalf("move %v does not have exactly 2 positions", m)
		}
		a, b := m.Positions[0], m.Positions[1]
		if a == b {
			t.Fatalf("move %v has a duplicated cell", m)
		}
		if s.Board.At(a) != board.Empty || s.Board.At(b) != board.Empty {
			t.Fatalf("move %v occupies a non-empty cell", m)
		}
		k := pairKey(a, b)
		if seen[k] {
			t.Fatalf("move %v duplicated", m)
		}
		seen[k] = true
	}
}

func TestEnumeratePairsCappedAtMaxPairs(t *testing.T) {
	s := board.NewGame()
	s.CurrentPlayer = board.Black
	// A wide-open board produces more than MaxPairs candidate pairs once
	// every empty cell is eligible; force that by seeding many stones so
	// the relevance zone covers a large area.
	for x := 0; x < board.Size; x += 2 {
		for y := 0; y < board.Size; y += 2 {
			s.Board.Set(board.Position{x, y}, board.Black)
		}
	}
	cands := Candidates(s, board.White)
	pairs := EnumeratePairs(s, board.White, cands)
	if len(pairs) > MaxPairs {
		t.Fatalf("len(pairs) = %d, want <= %d", len(pairs), MaxPairs)
	}
}

func TestCandidatesAreDeterministicAcrossRuns(t *testing.T) {
	s := board.NewGame()
	for x := 0; x < board.Size; x += 2 {
		for y := 0; y < board.Size; y += 2 {
			s.Board.Set(board.Position{x, y}, board.Black)
		}
	}
	s.CurrentPlayer = board.White

	first := Candidates(s, board.White)
	for i := 0; i < 20; i++ {
		again := Candidates(s, board.White)
		if len(again) != len(first) {
			t.Fatalf("run %d: got %d candidates, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: candidate %d = %v, want %v (nondeterministic ordering or selection)", i, j, again[j], first[j])
			}
		}
	}
}

func TestUrgentPairsPreferOpponentTwoStoneWin(t *testing.T) {
	s := board.NewGame()
	for _, p := range []board.Position{{5, 5}, {5, 6}, {5, 7}, {5, 8}} {
		s.Board.Set(p, board.White)
	}
	s.CurrentPlayer = board.Black
	cands := Candidates(s, board.Black)
	pairs := EnumeratePairs(s, board.Black, cands)
	if len(pairs) == 0 {
		t.Fatal("expected at least one pair")
	}
	first := pairs[0]
	// Road (5,3)..(5,8) is the first road scanned that holds the four.
	want := pairKey(board.Position{5, 3}, board.Position{5, 4})
	if pairKey(first.Positions[0], first.Positions[1]) != want {
		t.Fatalf("first pair = %v, want the opponent's two-stone-win block %v", first, want)
	}
}

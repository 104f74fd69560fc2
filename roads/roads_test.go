package roads

import (
	"testing"

	"connect6engine/board"
)

func TestAllRoadsInBounds(t *testing.T) {
	if Count() == 0 {
		t.Fatal("expected a non-empty road table")
	}
	for _, r := range AllRoads() {
		for _, c := range r.Cells {
			if !c.InBounds() {
				t.Fatalf("road %d has out-of-bounds cell %v", r.ID, c)
			}
		}
	}
}

func TestRoadCountMatchesNaiveEnumeration(t *testing.T) {
	// 4 directions * 19 rows * 14 valid starting columns per row for the
	// axis-aligned cases; horizontal/vertical get exactly 19*14 starts
	// each, the two diagonals get fewer due to corner pruning. Assert
	// the precise total instead of the naive upper bound.
	want := 0
	for x := 0; x < board.Size; x++ {
		for y := 0; y < board.Size; y++ {
			for _, d := range board.Directions {
				end := board.Position{X: x + d.X*5, Y: y + d.Y*5}
				if end.InBounds() {
					want++
				}
			}
		}
	}
	if got := Count(); got != want {
		t.Fatalf("Count() = %d, want %d", got, want)
	}
}

func TestRoadsThroughCenterNonEmpty(t *testing.T) {
	if len(RoadsThrough(board.Center)) == 0 {
		t.Fatal("expected center cell to lie on at least one road")
	}
}

func TestEncodeRoadInjectiveOverOccupancy(t *testing.T) {
	r := AllRoads()[0]
	var b1, b2 board.Board
	b1.Set(r.Cells[0], board.Black)
	b2.Set(r.Cells[0], board.Black)
	if EncodeRoad(&b1, r) != EncodeRoad(&b2, r) {
		t.Fatal("identical occupancy must encode identically")
	}
	b2.Set(r.Cells[1], board.White)
	if EncodeRoad(&b1, r) == EncodeRoad(&b2, r) {
		t.Fatal("different occupancy must encode differently")
	}
}

func TestIsHighValueRoadCell(t *testing.T) {
	var b board.Board
	r := AllRoads()[0]
	for i := 0; i < 3; i++ {
		b.Set(r.Cells[i], board.Black)
	}
	if !IsHighValueRoadCell(&b, r.Cells[3], 3) {
		t.Fatal("expected cell adjacent to 3 same-color stones to be high-value")
	}
	if IsHighValueRoadCell(&b, board.Position{18, 0}, 3) {
		t.Fatal("expected isolated corner cell to not be high-value")
	}
}

func TestCountOccupancyAndEmptyCells(t *testing.T) {
	var b board.Board
	r := AllRoads()[0]
	b.Set(r.Cells[0], board.Black)
	b.Set(r.Cells[1], board.White)
	o := CountOccupancy(&b, r)
	if o.Black != 1 || o.White != 1 || o.Empty != 4 {
		t.Fatalf("Occupancy = %+v, want {1 1 4}", o)
	}
	empties := EmptyCells(&b, r)
	if len(empties) != 4 {
		t.Fatalf("len(EmptyCells) = %d, want 4", len(empties))
	}
}

// Package roads precomputes every length-6 line ("road") on the
// Connect6 board once at process start and exposes fast per-cell
// lookup, mirroring the way board.Directions drives the win scan in
// package board but pre-expanded into concrete six-cell windows so
// the evaluator and VCDT detector never re-derive them.
package roads

import "connect6engine/board"

// Road is an ordered sequence of exactly six collinear positions.
type Road struct {
	ID        int
	Cells     [board.WinLength]board.Position
	Direction board.Position
}

var (
	all    []Road
	byCell [board.Size][board.Size][]int // road IDs touching each cell
)

func init() {
	buildRoadTable()
}

func buildRoadTable() {
	all = nil
	for x := 0; x < board.Size; x++ {
		for y := 0; y < board.Size; y++ {
			for _, d := range board.Directions {
				end := board.Position{
					X: x + d.X*(board.WinLength-1),
					Y: y + d.Y*(board.WinLength-1),
				}
				if !end.InBounds() {
					continue
				}
				r := Road{ID: len(all), Direction: d}
				for i := 0; i < board.WinLength; i++ {
					r.Cells[i] = board.Position{X: x + d.X*i, Y: y + d.Y*i}
				}
				all = append(all, r)
			}
		}
	}
	for i := range byCell {
		for j := range byCell[i] {
			byCell[i][j] = nil
		}
	}
	for _, r := range all {
		for _, c := range r.Cells {
			byCell[c.X][c.Y] = append(byCell[c.X][c.Y], r.ID)
		}
	}
}

// AllRoads returns every precomputed road. The slice is shared and
// must not be mutated by callers.
func AllRoads() []Road {
	return all
}

// RoadsThrough returns the IDs of every road passing through p.
func RoadsThrough(p board.Position) []int {
	return byCell[p.X][p.Y]
}

// Count is the total number of distinct roads on the board.
func Count() int {
	return len(all)
}

// EncodeRoad packs a road's six cells into a 12-bit occupancy code,
// two bits per cell: 00 empty, 01 Black, 10 White.
func EncodeRoad(b *board.Board, r Road) uint32 {
	var code uint32
	for i, c := range r.Cells {
		var bits uint32
		switch b.At(c) {
		case board.Black:
			bits = 1
		case board.White:
			bits = 2
		}
		code |= bits << uint(2*i)
	}
	return code
}

// Occupancy reports, for a road, how many stones of each color and
// how many empties it contains.
type Occupancy struct {
	Black, White, Empty int
}

// CountOccupancy scans the six cells of r once.
func CountOccupancy(b *board.Board, r Road) Occupancy {
	var o Occupancy
	for _, c := range r.Cells {
		switch b.At(c) {
		case board.Black:
			o.Black++
		case board.White:
			o.White++
		default:
			o.Empty++
		}
	}
	return o
}

// EmptyCells returns the empty positions of a road, in road order.
func EmptyCells(b *board.Board, r Road) []board.Position {
	var out []board.Position
	for _, c := range r.Cells {
		if b.At(c) == board.Empty {
			out = append(out, c)
		}
	}
	return out
}

// IsHighValueRoadCell reports whether some road through pos contains
// at least minSameColor stones of a single color.
func IsHighValueRoadCell(b *board.Board, pos board.Position, minSameColor int) bool {
	for _, id := range RoadsThrough(pos) {
		o := CountOccupancy(b, all[id])
		if o.Black >= minSameColor || o.White >= minSameColor {
			return true
		}
	}
	return false
}

// Package seatgrid holds the occupancy state of one seating zone of a
// venue. A grid is built once from the zone capacity and is never
// resized afterwards; cells move between Free and Occupied only through
// Occupy and Release.
package seatgrid

import (
	"fmt"
	"strings"
)

// RowWidth is the maximum number of seats in a row. Only the final row
// of a grid may be shorter.
const RowWidth = 10

// OccupiedLabel is printed in place of the seat number of an occupied
// cell.
const OccupiedLabel = "XX"

// State is the occupancy state of a single cell.
type State uint8

const (
	Free State = iota
	Occupied
)

func (s State) String() string {
	if s == Occupied {
		return "OCCUPIED"
	}
	return "FREE"
}

// Cell is one seat. Label is the 1-based seat number shown while the
// seat is free.
type Cell struct {
	State State
	Label int
}

// Grid is a row-major seat map for one zone.
type Grid struct {
	rows [][]Cell
}

// FromCapacity lays out capacity seats in rows of RowWidth. A capacity
// of zero or less yields an empty grid.
func FromCapacity(capacity int) *Grid {
	g := &Grid{}
	for placed := 0; placed < capacity; {
		width := RowWidth
		if remaining := capacity - placed; remaining < width {
			width = remaining
		}
		row := make([]Cell, width)
		for i := range row {
			row[i] = Cell{State: Free, Label: i + 1}
		}
		g.rows = append(g.rows, row)
		placed += width
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.rows) }

// RowWidth returns the number of seats in the given 0-based row.
func (g *Grid) RowWidth(row int) int { return len(g.rows[row]) }

// Capacity returns the total number of cells in the grid.
func (g *Grid) Capacity() int {
	n := 0
	for _, r := range g.rows {
		n += len(r)
	}
	return n
}

// OccupiedCount returns how many cells are currently occupied.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, r := range g.rows {
		for _, c := range r {
			if c.State == Occupied {
				n++
			}
		}
	}
	return n
}

// Cell returns a copy of the cell at the 0-based coordinate.
func (g *Grid) Cell(row, seat int) Cell { return g.rows[row][seat] }

// IsRowFull reports whether every cell of the 0-based row is occupied.
func (g *Grid) IsRowFull(row int) bool {
	for _, c := range g.rows[row] {
		if c.State != Occupied {
			return false
		}
	}
	return true
}

// IsSeatOccupied reports whether the 0-based cell is occupied.
func (g *Grid) IsSeatOccupied(row, seat int) bool {
	return g.rows[row][seat].State == Occupied
}

// Occupy marks the cell as occupied. It does not check the previous
// state; callers validate first.
func (g *Grid) Occupy(row, seat int) {
	g.rows[row][seat].State = Occupied
}

// Release frees the cell and restores its label to the 1-based seat
// position.
func (g *Grid) Release(row, seat int) {
	g.rows[row][seat] = Cell{State: Free, Label: seat + 1}
}

// Render draws the grid under the given title, one "Row NN:" header per
// row followed by the seat labels.
func (g *Grid) Render(title string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for i, r := range g.rows {
		fmt.Fprintf(&b, "Row %02d:\n", i+1)
		for _, c := range r {
			if c.State == Occupied {
				b.WriteString(OccupiedLabel)
			} else {
				fmt.Fprintf(&b, "%02d", c.Label)
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

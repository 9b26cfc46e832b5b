// Package reservation resolves a row and seat choice against a seat
// grid and commits it as a hold. Validation returns a result instead of
// looping; the caller owns any re-prompting.
package reservation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/venue-simulator/internal/seatgrid"
)

var (
	// ErrNotAPositiveInteger is returned when the input is not made of
	// decimal digits or is zero.
	ErrNotAPositiveInteger = errors.New("not a positive integer")
	ErrRowOutOfRange       = errors.New("row out of range")
	ErrRowFull             = errors.New("row is full")
	ErrSeatOutOfRange      = errors.New("seat out of range")
	ErrSeatOccupied        = errors.New("seat is occupied")
	// ErrHoldSettled is returned when a hold that was already confirmed
	// or released is settled again.
	ErrHoldSettled = errors.New("hold already settled")
)

// Coordinate is a committed 1-based (row, seat) pair.
type Coordinate struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

func (c Coordinate) String() string { return fmt.Sprintf("%d, %d", c.Row, c.Seat) }

// ParseCoordinate reads the "row, seat" form produced by String.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("invalid seat coordinate %q", s)
	}
	row, err := parsePositive(parts[0])
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid seat row %q: %w", s, err)
	}
	seat, err := parsePositive(parts[1])
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid seat number %q: %w", s, err)
	}
	return Coordinate{Row: row, Seat: seat}, nil
}

// parsePositive accepts only ASCII digits (surrounding blanks ignored)
// and rejects zero.
func parsePositive(input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrNotAPositiveInteger
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrNotAPositiveInteger
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, ErrNotAPositiveInteger
	}
	return n, nil
}

// ValidateRow checks a 1-based row choice. The row must exist and still
// have at least one free seat.
func ValidateRow(g *seatgrid.Grid, input string) (int, error) {
	row, err := parsePositive(input)
	if err != nil {
		return 0, err
	}
	if row > g.Rows() {
		return 0, fmt.Errorf("%w: %d not in [1, %d]", ErrRowOutOfRange, row, g.Rows())
	}
	if g.IsRowFull(row - 1) {
		return 0, ErrRowFull
	}
	return row, nil
}

// ValidateSeat checks a 1-based seat choice within an already validated
// 1-based row.
func ValidateSeat(g *seatgrid.Grid, row int, input string) (int, error) {
	seat, err := parsePositive(input)
	if err != nil {
		return 0, err
	}
	width := g.RowWidth(row - 1)
	if seat > width {
		return 0, fmt.Errorf("%w: %d not in [1, %d]", ErrSeatOutOfRange, seat, width)
	}
	if g.IsSeatOccupied(row-1, seat-1) {
		return 0, ErrSeatOccupied
	}
	return seat, nil
}

// Hold is an occupied seat whose purchase is not final yet. Exactly one
// of Confirm or Release must be called; a hold left unsettled keeps the
// seat occupied forever.
type Hold struct {
	grid    *seatgrid.Grid
	coord   Coordinate
	settled bool
}

// Take occupies the 1-based coordinate and returns the hold on it. The
// coordinate must have been validated with ValidateRow and ValidateSeat.
func Take(g *seatgrid.Grid, row, seat int) *Hold {
	g.Occupy(row-1, seat-1)
	return &Hold{grid: g, coord: Coordinate{Row: row, Seat: seat}}
}

// Coordinate returns the held seat.
func (h *Hold) Coordinate() Coordinate { return h.coord }

// Settled reports whether the hold was confirmed or released.
func (h *Hold) Settled() bool { return h.settled }

// Confirm keeps the seat occupied for good.
func (h *Hold) Confirm() error {
	if h.settled {
		return ErrHoldSettled
	}
	h.settled = true
	return nil
}

// Release frees the seat again, restoring its number label.
func (h *Hold) Release() error {
	if h.settled {
		return ErrHoldSettled
	}
	h.grid.Release(h.coord.Row-1, h.coord.Seat-1)
	h.settled = true
	return nil
}

package seatgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCapacityLayout(t *testing.T) {
	for _, capacity := range []int{0, 1, 9, 10, 11, 12, 20, 37, 100, 1234} {
		g := FromCapacity(capacity)
		assert.Equal(t, capacity, g.Capacity(), "capacity %d", capacity)
		for r := 0; r < g.Rows(); r++ {
			assert.LessOrEqual(t, g.RowWidth(r), RowWidth)
			if r < g.Rows()-1 {
				assert.Equal(t, RowWidth, g.RowWidth(r), "only the last row may be short")
			}
			for s := 0; s < g.RowWidth(r); s++ {
				assert.Equal(t, Cell{State: Free, Label: s + 1}, g.Cell(r, s))
			}
		}
	}
}

func TestFromCapacityNegative(t *testing.T) {
	g := FromCapacity(-5)
	assert.Equal(t, 0, g.Rows())
	assert.Equal(t, 0, g.Capacity())
}

func TestOccupyAndRelease(t *testing.T) {
	g := FromCapacity(25)

	g.Occupy(1, 4)
	assert.True(t, g.IsSeatOccupied(1, 4))
	assert.Equal(t, 1, g.OccupiedCount())

	g.Release(1, 4)
	assert.False(t, g.IsSeatOccupied(1, 4))
	assert.Equal(t, 5, g.Cell(1, 4).Label)
	assert.Equal(t, 0, g.OccupiedCount())
}

func TestIsRowFull(t *testing.T) {
	g := FromCapacity(13)
	require.Equal(t, 2, g.Rows())

	for s := 0; s < 3; s++ {
		assert.False(t, g.IsRowFull(1))
		g.Occupy(1, s)
	}
	assert.True(t, g.IsRowFull(1))
	assert.False(t, g.IsRowFull(0))

	g.Release(1, 2)
	assert.False(t, g.IsRowFull(1))
}

func TestGeneralCapacityTwelveScenario(t *testing.T) {
	g := FromCapacity(12)
	require.Equal(t, 2, g.Rows())
	assert.Equal(t, 10, g.RowWidth(0))
	assert.Equal(t, 2, g.RowWidth(1))

	g.Occupy(1, 0)
	assert.True(t, g.IsSeatOccupied(1, 0))
	for s := 0; s < g.RowWidth(0); s++ {
		assert.False(t, g.IsSeatOccupied(0, s))
	}
	assert.False(t, g.IsRowFull(1))

	g.Occupy(1, 1)
	assert.True(t, g.IsRowFull(1))
}

func TestRender(t *testing.T) {
	g := FromCapacity(12)
	g.Occupy(0, 2)
	g.Occupy(1, 1)

	want := "General\n" +
		"Row 01:\n01 02 XX 04 05 06 07 08 09 10 \n" +
		"Row 02:\n01 XX \n"
	assert.Equal(t, want, g.Render("General"))
}

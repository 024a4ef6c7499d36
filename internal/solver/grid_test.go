package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openroutine/timetable-api/internal/models"
)

func TestNewGridFallback(t *testing.T) {
	g := NewGrid(nil)

	assert.Equal(t, 6, g.NumDays())
	assert.Equal(t, 8, g.SlotsPerDay())
	assert.Equal(t, 48, g.TotalCells())
	assert.Equal(t, "Monday", g.Days[0])
	assert.Equal(t, "Saturday", g.Days[5])
	assert.Equal(t, 1, g.Slots[0])
	assert.Equal(t, 8, g.Slots[7])
}

func TestNewGridFromSlots(t *testing.T) {
	slots := []models.TimeSlot{
		{Day: "Wednesday", SlotNumber: 2},
		{Day: "Monday", SlotNumber: 1},
		{Day: "Wednesday", SlotNumber: 1},
		{Day: "Monday", SlotNumber: 2},
		{Day: "Monday", SlotNumber: 3},
	}

	g := NewGrid(slots)

	assert.Equal(t, []string{"Monday", "Wednesday"}, g.Days)
	assert.Equal(t, []int{1, 2, 3}, g.Slots)
	assert.Equal(t, 6, g.TotalCells())
}

func TestNewGridOrderIndependent(t *testing.T) {
	a := NewGrid([]models.TimeSlot{
		{Day: "Tuesday", SlotNumber: 4},
		{Day: "Monday", SlotNumber: 1},
	})
	b := NewGrid([]models.TimeSlot{
		{Day: "Monday", SlotNumber: 1},
		{Day: "Tuesday", SlotNumber: 4},
	})

	assert.Equal(t, a, b)
}

package solver

import (
	"sort"

	"github.com/openroutine/timetable-api/internal/models"
)

// defaultDays and defaultSlots form the fallback 6x8 grid used when a
// tenant has not configured time slots.
var defaultDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

const defaultSlotsPerDay = 8

// Grid is the addressable (day, slot) space of one week. Days and Slots
// hold display labels; all internal addressing uses their zero-based
// indices.
type Grid struct {
	Days  []string
	Slots []int
}

// NewGrid derives the grid from configured time slots, or falls back to
// the default 6-day, 8-slot week. Day labels are deduplicated and sorted
// so repeated derivations are identical regardless of row order.
func NewGrid(slots []models.TimeSlot) Grid {
	if len(slots) == 0 {
		days := make([]string, len(defaultDays))
		copy(days, defaultDays)
		nums := make([]int, defaultSlotsPerDay)
		for i := range nums {
			nums[i] = i + 1
		}
		return Grid{Days: days, Slots: nums}
	}

	daySet := make(map[string]struct{})
	slotSet := make(map[int]struct{})
	for _, ts := range slots {
		daySet[ts.Day] = struct{}{}
		slotSet[ts.SlotNumber] = struct{}{}
	}

	days := make([]string, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Strings(days)

	nums := make([]int, 0, len(slotSet))
	for n := range slotSet {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	return Grid{Days: days, Slots: nums}
}

// NumDays returns the number of days in the grid.
func (g Grid) NumDays() int { return len(g.Days) }

// SlotsPerDay returns the number of intra-day slots.
func (g Grid) SlotsPerDay() int { return len(g.Slots) }

// TotalCells returns days x slots, the number of addressable cells.
func (g Grid) TotalCells() int { return len(g.Days) * len(g.Slots) }

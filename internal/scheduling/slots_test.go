package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotGridDefaultPolicy(t *testing.T) {
	grid := DefaultSlotPolicy().SlotGrid()

	assert.Len(t, grid, 16, "09:00-17:00 in 30-minute steps yields 16 slots")
	assert.Equal(t, "09:00", grid[0])
	assert.Equal(t, "16:30", grid[len(grid)-1])
}

func TestSlotGridStrictlyAscendingAndEvenlySpaced(t *testing.T) {
	policy := DefaultSlotPolicy()
	grid := policy.SlotGrid()

	for i := 1; i < len(grid); i++ {
		prev, err := time.Parse(SlotLabelLayout, grid[i-1])
		assert.NoError(t, err)
		cur, err := time.Parse(SlotLabelLayout, grid[i])
		assert.NoError(t, err)

		assert.True(t, cur.After(prev), "grid must be strictly ascending at index %d", i)
		assert.Equal(t, time.Duration(policy.SlotMinutes)*time.Minute, cur.Sub(prev),
			"slots must be evenly spaced at index %d", i)
	}
}

func TestSlotGridIsDeterministic(t *testing.T) {
	policy := DefaultSlotPolicy()
	assert.Equal(t, policy.SlotGrid(), policy.SlotGrid())
}

func TestSlotGridFloorsNonDividingWindow(t *testing.T) {
	// 45 minutes does not divide the 8-hour window: the last slot that fits
	// starts at 16:30 and no partial slot past the window end is emitted.
	policy := SlotPolicy{DayStartHour: 9, DayEndHour: 17, SlotMinutes: 45}
	grid := policy.SlotGrid()

	assert.Len(t, grid, 11)
	assert.Equal(t, "09:00", grid[0])
	assert.Equal(t, "16:30", grid[len(grid)-1])
}

func TestSlotGridEmptyWindow(t *testing.T) {
	policy := SlotPolicy{DayStartHour: 17, DayEndHour: 17, SlotMinutes: 30}
	assert.Empty(t, policy.SlotGrid())
}

func TestSlotLabelZeroPadded(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 5, 0, 0, time.Local)
	assert.Equal(t, "09:05", SlotLabel(at))
}

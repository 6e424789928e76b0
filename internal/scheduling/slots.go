// Package scheduling implements the appointment booking core: the slot grid
// for a working day, the availability computation for a doctor and date, and
// the write-time guard that keeps a doctor's exact timestamp single-booked.
package scheduling

import (
	"fmt"
	"time"
)

// SlotLabelLayout is the time-of-day format used for slot labels.
const SlotLabelLayout = "15:04"

// SlotPolicy defines the bookable working window and slot granularity for a
// single day. The upper bound is exclusive: no slot starts at or after
// DayEndHour.
type SlotPolicy struct {
	DayStartHour int
	DayEndHour   int
	SlotMinutes  int
}

// DefaultSlotPolicy returns the clinic's standard working window:
// 09:00-17:00 in 30-minute slots.
func DefaultSlotPolicy() SlotPolicy {
	return SlotPolicy{DayStartHour: 9, DayEndHour: 17, SlotMinutes: 30}
}

// SlotGrid enumerates the candidate slot start times as zero-padded HH:MM
// labels in ascending order. The grid is independent of calendar date,
// doctor identity and booking state. If the granularity does not evenly
// divide the window, generation stops before the window end; no partial
// slot is emitted.
func (p SlotPolicy) SlotGrid() []string {
	var slots []string
	for m := p.DayStartHour * 60; m < p.DayEndHour*60; m += p.SlotMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// SlotLabel projects a timestamp onto its slot label.
func SlotLabel(t time.Time) string {
	return t.Format(SlotLabelLayout)
}

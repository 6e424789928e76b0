package scheduling

import (
	"errors"
	"time"

	"clinic-app-server/internal/models"
)

var (
	// ErrSlotTaken indicates a scheduled appointment already occupies the
	// doctor's slot at the exact requested timestamp.
	ErrSlotTaken = errors.New("this time slot is already booked")

	// ErrDateNotAfterToday indicates an availability query for today or a
	// past date. The read path is stricter than the write path on purpose:
	// booking only requires the timestamp to lie after the current instant.
	ErrDateNotAfterToday = errors.New("date must be a future date")

	// ErrPastAppointment indicates a booking whose timestamp is not strictly
	// after the current instant.
	ErrPastAppointment = errors.New("appointment date must be in the future")
)

// Clock supplies the current instant. Injected so validation and queries are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// AppointmentStore is the persistence surface the booking core depends on.
type AppointmentStore interface {
	// ScheduledTimesOn returns the timestamps of the doctor's appointments
	// with status scheduled whose date component falls on the given day, in
	// whatever order the storage engine returns them.
	ScheduledTimesOn(doctorID string, day time.Time) ([]time.Time, error)

	// CreateScheduled persists a new scheduled appointment, atomically
	// rejecting it with ErrSlotTaken when the doctor already has a scheduled
	// appointment at the exact same timestamp.
	CreateScheduled(appt *models.Appointment) error

	// SaveRescheduled persists changes to an existing appointment with the
	// same exclusivity guarantee, ignoring the appointment's own row. The
	// slot check only applies when the appointment remains scheduled.
	SaveRescheduled(appt *models.Appointment) error

	// CancelScheduled records the cancelled status on the appointment's row,
	// then removes the row when purge is set. The status write happens in
	// both modes.
	CancelScheduled(appt *models.Appointment, purge bool) error
}

// Availability is the result of an availability query: the grid minus the
// booked labels, and the booked labels themselves.
type Availability struct {
	AvailableSlots []string `json:"available_slots"`
	BookedSlots    []string `json:"booked_slots"`
}

// Service computes slot availability and guards bookings against
// double-booking a doctor's slot.
type Service struct {
	store  AppointmentStore
	clock  Clock
	policy SlotPolicy
}

// NewService creates a scheduling service over the given store and clock.
func NewService(store AppointmentStore, clock Clock, policy SlotPolicy) *Service {
	return &Service{store: store, clock: clock, policy: policy}
}

// Policy returns the slot policy the service operates under.
func (s *Service) Policy() SlotPolicy {
	return s.policy
}

// AvailableSlots partitions the slot grid for the given doctor and day into
// available and booked labels. The day must lie strictly after today. Zero
// availability is not an error; AvailableSlots is empty in that case.
func (s *Service) AvailableSlots(doctorID string, day time.Time) (*Availability, error) {
	if !startOfDay(day).After(startOfDay(s.clock.Now())) {
		return nil, ErrDateNotAfterToday
	}

	times, err := s.store.ScheduledTimesOn(doctorID, day)
	if err != nil {
		return nil, err
	}

	booked := make([]string, 0, len(times))
	bookedSet := make(map[string]bool, len(times))
	for _, t := range times {
		label := SlotLabel(t)
		booked = append(booked, label)
		bookedSet[label] = true
	}

	available := make([]string, 0)
	for _, slot := range s.policy.SlotGrid() {
		if !bookedSet[slot] {
			available = append(available, slot)
		}
	}

	return &Availability{AvailableSlots: available, BookedSlots: booked}, nil
}

// Book validates and persists a new scheduled appointment. The timestamp
// must be strictly after the current instant; the slot must be free.
func (s *Service) Book(appt *models.Appointment) error {
	if !appt.AppointmentDate.After(s.clock.Now()) {
		return ErrPastAppointment
	}
	appt.Status = models.StatusScheduled
	return s.store.CreateScheduled(appt)
}

// Reschedule persists changes to an existing appointment, enforcing slot
// exclusivity against every scheduled appointment other than itself.
func (s *Service) Reschedule(appt *models.Appointment) error {
	return s.store.SaveRescheduled(appt)
}

// Cancel marks the appointment cancelled, freeing its slot. When purge is
// set the row is removed after the status write; otherwise it is kept as a
// cancellation marker.
func (s *Service) Cancel(appt *models.Appointment, purge bool) error {
	appt.Status = models.StatusCancelled
	return s.store.CancelScheduled(appt, purge)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// AvailableStatuses returns every status an appointment may carry.
func AvailableStatuses() []AppointmentStatus {
	return []AppointmentStatus{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow}
}

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s AppointmentStatus) bool {
	for _, known := range AvailableStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Appointment represents one scheduled interaction between a patient and a
// doctor. Only a currently scheduled appointment occupies a slot; the
// composite index backs the write-time conflict check on
// (doctor, timestamp, status).
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;index" json:"patientId"`
	DoctorID        string            `gorm:"size:36;index:idx_doctor_slot,priority:1" json:"doctorId"`
	AppointmentDate time.Time         `gorm:"index:idx_doctor_slot,priority:2" json:"appointmentDate"`
	Status          AppointmentStatus `gorm:"size:20;default:'scheduled';index:idx_doctor_slot,priority:3" json:"status"`
	Reason          string            `gorm:"size:500;not null" json:"reason"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// IsScheduled reports whether the appointment currently occupies its slot.
func (a *Appointment) IsScheduled() bool {
	return a.Status == StatusScheduled
}

// IsCancelled reports whether the appointment has been cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

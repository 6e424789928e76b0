// Package policy centralizes the role-based capability checks for
// appointment operations. Handlers resolve the caller into an Actor and ask
// this package what the actor may do, instead of repeating role conditionals
// per endpoint.
package policy

import (
	"clinic-app-server/internal/models"
)

// Actor is the authenticated caller: a user id, a role, and the linked
// patient or doctor profile id where the role carries one.
type Actor struct {
	UserID    string
	Role      models.Role
	PatientID string
	DoctorID  string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// IsDoctor reports whether the actor carries the doctor role.
func (a Actor) IsDoctor() bool { return a.Role == models.RoleDoctor }

// IsPatient reports whether the actor carries the patient role.
func (a Actor) IsPatient() bool { return a.Role == models.RolePatient }

// CanViewAppointment reports whether the actor may read the appointment.
// Admins see everything; doctors and patients only appointments they are
// party to. Nurse and staff have no appointment linkage and see nothing.
func CanViewAppointment(a Actor, appt *models.Appointment) bool {
	switch a.Role {
	case models.RoleAdmin:
		return true
	case models.RoleDoctor:
		return a.DoctorID != "" && a.DoctorID == appt.DoctorID
	case models.RolePatient:
		return a.PatientID != "" && a.PatientID == appt.PatientID
	default:
		return false
	}
}

// ListScope says which appointment rows a listing may return.
type ListScope int

const (
	// ScopeNone yields an empty list. Nurses, staff, and doctor or patient
	// accounts with no linked profile land here.
	ScopeNone ListScope = iota
	// ScopeAll returns every appointment.
	ScopeAll
	// ScopeDoctor restricts the listing to the actor's own doctor profile.
	ScopeDoctor
	// ScopePatient restricts the listing to the actor's own patient profile.
	ScopePatient
)

// AppointmentListScope returns the scope of the actor's appointment listing.
func AppointmentListScope(a Actor) ListScope {
	switch {
	case a.IsAdmin():
		return ScopeAll
	case a.IsDoctor() && a.DoctorID != "":
		return ScopeDoctor
	case a.IsPatient() && a.PatientID != "":
		return ScopePatient
	default:
		return ScopeNone
	}
}

// CanCreateAppointmentFor reports whether the actor may book an appointment
// on behalf of the given patient. Patients only book for themselves; admins
// book for anyone.
func CanCreateAppointmentFor(a Actor, patientID string) bool {
	switch a.Role {
	case models.RoleAdmin:
		return true
	case models.RolePatient:
		return a.PatientID != "" && a.PatientID == patientID
	default:
		return false
	}
}

// CanUpdateAppointment reports whether the actor may modify the appointment.
// Status changes are filtered separately; see FilterStatusChange.
func CanUpdateAppointment(a Actor, appt *models.Appointment) bool {
	return CanViewAppointment(a, appt)
}

// CanDeleteAppointment reports whether the actor may delete (or cancel) the
// appointment.
func CanDeleteAppointment(a Actor, appt *models.Appointment) bool {
	return CanViewAppointment(a, appt)
}

// FilterStatusChange returns the status an update may persist. Patients
// cannot transition status through the update path: whatever they submit,
// the current status is kept. Doctors and admins pass their requested
// status through.
func FilterStatusChange(a Actor, current, requested models.AppointmentStatus) models.AppointmentStatus {
	if a.Role == models.RolePatient {
		return current
	}
	return requested
}

// CanManagePatientProfile reports whether the actor may update the given
// patient profile: the patient themself, or an admin.
func CanManagePatientProfile(a Actor, patient *models.Patient) bool {
	if a.IsAdmin() {
		return true
	}
	return a.IsPatient() && a.UserID == patient.UserID
}

// CanManageDoctorProfile reports whether the actor may update the given
// doctor profile: the doctor themself, or an admin.
func CanManageDoctorProfile(a Actor, doctor *models.Doctor) bool {
	if a.IsAdmin() {
		return true
	}
	return a.IsDoctor() && a.UserID == doctor.UserID
}

package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinic-app-server/internal/models"
)

var (
	admin        = Actor{UserID: "u-admin", Role: models.RoleAdmin}
	drSmith      = Actor{UserID: "u-smith", Role: models.RoleDoctor, DoctorID: "doc-1"}
	drJones      = Actor{UserID: "u-jones", Role: models.RoleDoctor, DoctorID: "doc-2"}
	patientAlice = Actor{UserID: "u-alice", Role: models.RolePatient, PatientID: "pat-1"}
	patientBob   = Actor{UserID: "u-bob", Role: models.RolePatient, PatientID: "pat-2"}
	nurse        = Actor{UserID: "u-nurse", Role: models.RoleNurse}
	staff        = Actor{UserID: "u-staff", Role: models.RoleStaff}
)

func aliceWithSmith() *models.Appointment {
	return &models.Appointment{PatientID: "pat-1", DoctorID: "doc-1", Status: models.StatusScheduled}
}

func TestCanViewAppointment(t *testing.T) {
	appt := aliceWithSmith()

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"admin sees any appointment", admin, true},
		{"assigned doctor sees it", drSmith, true},
		{"other doctor does not", drJones, false},
		{"owning patient sees it", patientAlice, true},
		{"other patient does not", patientBob, false},
		{"nurse has no appointment linkage", nurse, false},
		{"staff has no appointment linkage", staff, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewAppointment(tt.actor, appt))
		})
	}
}

func TestCanViewAppointmentRequiresLinkedProfile(t *testing.T) {
	appt := aliceWithSmith()

	unlinkedPatient := Actor{UserID: "u-x", Role: models.RolePatient}
	assert.False(t, CanViewAppointment(unlinkedPatient, appt))

	unlinkedDoctor := Actor{UserID: "u-y", Role: models.RoleDoctor}
	assert.False(t, CanViewAppointment(unlinkedDoctor, appt))
}

func TestAppointmentListScope(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		want  ListScope
	}{
		{"admin lists everything", admin, ScopeAll},
		{"doctor lists own appointments", drSmith, ScopeDoctor},
		{"patient lists own appointments", patientAlice, ScopePatient},
		{"nurse gets an empty list", nurse, ScopeNone},
		{"staff gets an empty list", staff, ScopeNone},
		{"doctor without linked profile gets an empty list", Actor{UserID: "u-y", Role: models.RoleDoctor}, ScopeNone},
		{"patient without linked profile gets an empty list", Actor{UserID: "u-x", Role: models.RolePatient}, ScopeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AppointmentListScope(tt.actor))
		})
	}
}

func TestCanCreateAppointmentFor(t *testing.T) {
	assert.True(t, CanCreateAppointmentFor(admin, "pat-1"), "admin books for anyone")
	assert.True(t, CanCreateAppointmentFor(patientAlice, "pat-1"), "patient books for themself")
	assert.False(t, CanCreateAppointmentFor(patientAlice, "pat-2"), "patient cannot book for others")
	assert.False(t, CanCreateAppointmentFor(drSmith, "pat-1"))
	assert.False(t, CanCreateAppointmentFor(nurse, "pat-1"))
	assert.False(t, CanCreateAppointmentFor(staff, "pat-1"))
}

func TestCanUpdateAndDeleteFollowInvolvement(t *testing.T) {
	appt := aliceWithSmith()

	assert.True(t, CanUpdateAppointment(admin, appt))
	assert.True(t, CanUpdateAppointment(drSmith, appt))
	assert.False(t, CanUpdateAppointment(drJones, appt))
	assert.True(t, CanUpdateAppointment(patientAlice, appt))
	assert.False(t, CanUpdateAppointment(patientBob, appt))

	assert.True(t, CanDeleteAppointment(admin, appt))
	assert.True(t, CanDeleteAppointment(drSmith, appt))
	assert.False(t, CanDeleteAppointment(drJones, appt))
	assert.True(t, CanDeleteAppointment(patientAlice, appt))
	assert.False(t, CanDeleteAppointment(patientBob, appt))
}

func TestFilterStatusChange(t *testing.T) {
	got := FilterStatusChange(patientAlice, models.StatusScheduled, models.StatusCompleted)
	assert.Equal(t, models.StatusScheduled, got, "patient-submitted status changes are discarded")

	got = FilterStatusChange(drSmith, models.StatusScheduled, models.StatusCompleted)
	assert.Equal(t, models.StatusCompleted, got, "doctors may transition status")

	got = FilterStatusChange(admin, models.StatusScheduled, models.StatusNoShow)
	assert.Equal(t, models.StatusNoShow, got, "admins may transition status")
}

func TestCanManagePatientProfile(t *testing.T) {
	profile := &models.Patient{BaseModel: models.BaseModel{ID: "pat-1"}, UserID: "u-alice"}

	assert.True(t, CanManagePatientProfile(admin, profile))
	assert.True(t, CanManagePatientProfile(patientAlice, profile))
	assert.False(t, CanManagePatientProfile(patientBob, profile))
	assert.False(t, CanManagePatientProfile(drSmith, profile))
}

func TestCanManageDoctorProfile(t *testing.T) {
	profile := &models.Doctor{BaseModel: models.BaseModel{ID: "doc-1"}, UserID: "u-smith"}

	assert.True(t, CanManageDoctorProfile(admin, profile))
	assert.True(t, CanManageDoctorProfile(drSmith, profile))
	assert.False(t, CanManageDoctorProfile(drJones, profile))
	assert.False(t, CanManageDoctorProfile(patientAlice, profile))
}

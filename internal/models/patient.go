package models

import (
	"time"
)

// Patient represents the clinical profile linked to a user account with the
// patient role. Demographic and contact fields live here; identity lives on
// the User row.
type Patient struct {
	BaseModel
	UserID           string     `gorm:"size:36;uniqueIndex" json:"userId"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	Gender           string     `gorm:"size:10" json:"gender"`
	Address          string     `gorm:"size:500" json:"address"`
	EmergencyContact string     `gorm:"size:255" json:"emergencyContact"`
	EmergencyPhone   string     `gorm:"size:20" json:"emergencyPhone"`
	BloodType        string     `gorm:"size:10" json:"bloodType,omitempty"`
	Allergies        string     `gorm:"type:text" json:"allergies,omitempty"`
	MedicalHistory   string     `gorm:"type:text" json:"medicalHistory,omitempty"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"user"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}

// AvailableGenders returns the accepted gender values.
func AvailableGenders() []string {
	return []string{"male", "female", "other"}
}

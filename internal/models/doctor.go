package models

// Doctor represents the professional profile linked to a user account with
// the doctor role.
type Doctor struct {
	BaseModel
	UserID          string `gorm:"size:36;uniqueIndex" json:"userId"`
	Specialization  string `gorm:"size:255" json:"specialization"`
	LicenseNumber   string `gorm:"uniqueIndex;size:50" json:"licenseNumber"`
	ExperienceYears int    `gorm:"default:0" json:"experienceYears"`
	Qualifications  string `gorm:"size:1000" json:"qualifications"`
	Bio             string `gorm:"type:text" json:"bio,omitempty"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"user"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
}

// AvailableSpecializations returns the specializations offered by the clinic.
func AvailableSpecializations() []string {
	return []string{
		"Cardiology",
		"Dermatology",
		"Endocrinology",
		"Gastroenterology",
		"General Medicine",
		"Neurology",
		"Oncology",
		"Orthopedics",
		"Pediatrics",
		"Psychiatry",
		"Radiology",
		"Surgery",
		"Urology",
	}
}

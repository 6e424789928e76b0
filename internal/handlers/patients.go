package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/policy"
	"clinic-app-server/internal/utils"
)

// defaultAccountPassword is assigned to staff-provisioned accounts until the
// owner changes it.
const defaultAccountPassword = "password"

// PatientHandler handles patient profile requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// ListPatients fetches patient profiles: all of them for admins and doctors,
// only their own for patients, none for other roles.
func (h *PatientHandler) ListPatients(c *gin.Context) {
	actor, ok := resolveActor(c, h.DB)
	if !ok {
		return
	}

	patients := make([]models.Patient, 0)
	var err error
	switch {
	case actor.IsAdmin() || actor.IsDoctor():
		err = h.DB.Preload("User").Order("created_at desc").Find(&patients).Error
	case actor.IsPatient() && actor.PatientID != "":
		err = h.DB.Preload("User").Where("id = ?", actor.PatientID).Find(&patients).Error
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	utils.Success(c, "Patients fetched successfully", patients)
}

// CreatePatientRequest represents the request body for creating a patient
// together with their user account.
type CreatePatientRequest struct {
	Name             string `json:"name" binding:"required,max=255"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone" binding:"required,max=20"`
	DateOfBirth      string `json:"dateOfBirth" binding:"required"`
	Gender           string `json:"gender" binding:"required,oneof=male female other"`
	Address          string `json:"address" binding:"required,max=500"`
	EmergencyContact string `json:"emergencyContact" binding:"required,max=255"`
	EmergencyPhone   string `json:"emergencyPhone" binding:"required,max=20"`
	BloodType        string `json:"bloodType" binding:"max=10"`
	Allergies        string `json:"allergies" binding:"max=1000"`
	MedicalHistory   string `json:"medicalHistory" binding:"max=2000"`
}

// CreatePatient creates a patient profile with its linked user account.
// Admin only.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	actor, ok := resolveActor(c, h.DB)
	if !ok {
		return
	}
	if !actor.IsAdmin() {
		utils.Forbidden(c, "Only administrators can create new patients.")
		return
	}

	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	dob, err := time.ParseInLocation(dateLayout, req.DateOfBirth, time.Local)
	if err != nil {
		utils.BadRequest(c, "Invalid dateOfBirth, expected YYYY-MM-DD")
		return
	}
	if !dob.Before(time.Now()) {
		utils.BadRequest(c, "Date of birth must be in the past.")
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  models.RolePatient,
	}
	if err := user.SetPassword(defaultAccountPassword); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	patient := models.Patient{
		DateOfBirth:      &dob,
		Gender:           req.Gender,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		BloodType:        req.BloodType,
		Allergies:        req.Allergies,
		MedicalHistory:   req.MedicalHistory,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		patient.UserID = user.ID
		return tx.Create(&patient).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		return
	}

	patient.User = user
	utils.Created(c, "Patient created successfully", patient)
}

// GetPatientByID fetches a single patient profile. Patients may only view
// their own.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, ok := h.loadPatient(c)
	if !ok {
		return
	}

	actor, ok := resolveActor(c, h.DB)
	if !ok {
		return
	}

	if actor.IsPatient() && actor.UserID != patient.UserID {
		utils.Forbidden(c, "You can only view your own profile.")
		return
	}

	utils.Success(c, "Patient fetched successfully", patient)
}

// UpdatePatientRequest represents the request body for updating a patient.
type UpdatePatientRequest struct {
	Name             string `json:"name" binding:"required,max=255"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone" binding:"required,max=20"`
	DateOfBirth      string `json:"dateOfBirth" binding:"required"`
	Gender           string `json:"gender" binding:"required,oneof=male female other"`
	Address          string `json:"address" binding:"required,max=500"`
	EmergencyContact string `json:"emergencyContact" binding:"required,max=255"`
	EmergencyPhone   string `json:"emergencyPhone" binding:"required,max=20"`
	BloodType        string `json:"bloodType" binding:"max=10"`
	Allergies        string `json:"allergies" binding:"max=1000"`
	MedicalHistory   string `json:"medicalHistory" binding:"max=2000"`
}

// UpdatePatient modifies a patient profile and its linked user account.
// Allowed for the patient themself or an admin.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patient, ok := h.loadPatient(c)
	if !ok {
		return
	}

	actor, ok := resolveActor(c, h.DB)
	if !ok {
		return
	}

	if !policy.CanManagePatientProfile(actor, patient) {
		if actor.IsPatient() {
			utils.Forbidden(c, "You can only update your own profile.")
		} else {
			utils.Forbidden(c, "Only administrators can update patient profiles.")
		}
		return
	}

	var req UpdatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	dob, err := time.ParseInLocation(dateLayout, req.DateOfBirth, time.Local)
	if err != nil {
		utils.BadRequest(c, "Invalid dateOfBirth, expected YYYY-MM-DD")
		return
	}
	if !dob.Before(time.Now()) {
		utils.BadRequest(c, "Date of birth must be in the past.")
		return
	}

	if req.Email != patient.User.Email {
		var existingUser models.User
		if err := h.DB.Where("email = ? AND id != ?", req.Email, patient.UserID).First(&existingUser).Error; err == nil {
			utils.BadRequest(c, "New email is already in use")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InternalServerError(c, "Database error checking email: "+err.Error())
			return
		}
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		patient.User.Name = req.Name
		patient.User.Email = req.Email
		patient.User.Phone = req.Phone
		if err := tx.Save(&patient.User).Error; err != nil {
			return err
		}

		patient.DateOfBirth = &dob
		patient.Gender = req.Gender
		patient.Address = req.Address
		patient.EmergencyContact = req.EmergencyContact
		patient.EmergencyPhone = req.EmergencyPhone
		patient.BloodType = req.BloodType
		patient.Allergies = req.Allergies
		patient.MedicalHistory = req.MedicalHistory
		return tx.Omit("User").Save(patient).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient updated successfully", patient)
}

// DeletePatient removes a patient profile and its user account. Admin only.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	patient, ok := h.loadPatient(c)
	if !ok {
		return
	}

	actor, ok := resolveActor(c, h.DB)
	if !ok {
		return
	}
	if !actor.IsAdmin() {
		utils.Forbidden(c, "Only administrators can delete patients.")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Patient{}, "id = ?", patient.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", patient.UserID).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient deleted successfully", nil)
}

func (h *PatientHandler) loadPatient(c *gin.Context) (*models.Patient, bool) {
	patientID := c.Param("id")
	if _, err := uuid.Parse(patientID); err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return nil, false
	}

	var patient models.Patient
	if err := h.DB.Preload("User").First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &patient, true
}

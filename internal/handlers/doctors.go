package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/policy"
	"clinic-app-server/internal/utils"
)

// DoctorHandler handles doctor profile requests.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// ListDoctors fetches all doctor profiles. Visible to every authenticated
// user, since patients need the directory to book appointments.
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	doctors := make([]models.Doctor, 0)
	if err := h.DB.Preload("User").Order("created_at desc").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", doctors)
}

// CreateDoctorRequest represents the request body for creating a doctor
// together with their user account.
type CreateDoctorRequest struct {
	Name            string `json:"name" binding:"required,max=255"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required,max=20"`
	Specialization  string `json:"specialization" binding:"required,max=255"`
	LicenseNumber   string `json:"licenseNumber" binding:"required,max=50"`
	ExperienceYears int    `json:"experienceYears" binding:"min=0,max=50"`
	Qualifications  string `json:"qualifications" binding:"required,max=1000"`
	Bio             string `json:"bio" binding:"max=2000"`
}

// CreateDoctor creates a doctor profile with its linked user account.
// Admin only.
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	actor, ok := resolveActor(c, h.DB)
	if !ok {
		return
	}
	if !actor.IsAdmin() {
		utils.Forbidden(c, "Only administrators can create new doctors.")
		return
	}

	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
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

	var existingDoctor models.Doctor
	if err := h.DB.Where("license_number = ?", req.LicenseNumber).First(&existingDoctor).Error; err == nil {
		utils.BadRequest(c, "A doctor with this license number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  models.RoleDoctor,
	}
	if err := user.SetPassword(defaultAccountPassword); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	doctor := models.Doctor{
		Specialization:  req.Specialization,
		LicenseNumber:   req.LicenseNumber,
		ExperienceYears: req.ExperienceYears,
		Qualifications:  req.Qualifications,
		Bio:             req.Bio,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		doctor.UserID = user.ID
		return tx.Create(&doctor).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	doctor.User = user
	utils.Created(c, "Doctor created successfully", doctor)
}

// GetDoctorByID fetches a single doctor profile.
func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	doctor, ok := h.loadDoctor(c)
	if !ok {
		return
	}

	utils.Success(c, "Doctor fetched successfully", doctor)
}

// UpdateDoctorRequest represents the request body for updating a doctor.
type UpdateDoctorRequest struct {
	Name            string `json:"name" binding:"required,max=255"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required,max=20"`
	Specialization  string `json:"specialization" binding:"required,max=255"`
	LicenseNumber   string `json:"licenseNumber" binding:"required,max=50"`
	ExperienceYears int    `json:"experienceYears" binding:"min=0,max=50"`
	Qualifications  string `json:"qualifications" binding:"required,max=1000"`
	Bio             string `json:"bio" binding:"max=2000"`
}

// UpdateDoctor modifies a doctor profile and its linked user account.
// Allowed for the doctor themself or an admin.
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	doctor, ok := h.loadDoctor(c)
	if !ok {
		return
	}

	actor, ok := resolveActor(c, h.DB)
	if !ok {
		return
	}

	if !policy.CanManageDoctorProfile(actor, doctor) {
		if actor.IsDoctor() {
			utils.Forbidden(c, "You can only update your own profile.")
		} else {
			utils.Forbidden(c, "Only administrators can update doctor profiles.")
		}
		return
	}

	var req UpdateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Email != doctor.User.Email {
		var existingUser models.User
		if err := h.DB.Where("email = ? AND id != ?", req.Email, doctor.UserID).First(&existingUser).Error; err == nil {
			utils.BadRequest(c, "New email is already in use")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InternalServerError(c, "Database error checking email: "+err.Error())
			return
		}
	}

	if req.LicenseNumber != doctor.LicenseNumber {
		var existingDoctor models.Doctor
		if err := h.DB.Where("license_number = ? AND id != ?", req.LicenseNumber, doctor.ID).First(&existingDoctor).Error; err == nil {
			utils.BadRequest(c, "A doctor with this license number already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InternalServerError(c, "Database error checking license number: "+err.Error())
			return
		}
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		doctor.User.Name = req.Name
		doctor.User.Email = req.Email
		doctor.User.Phone = req.Phone
		if err := tx.Save(&doctor.User).Error; err != nil {
			return err
		}

		doctor.Specialization = req.Specialization
		doctor.LicenseNumber = req.LicenseNumber
		doctor.ExperienceYears = req.ExperienceYears
		doctor.Qualifications = req.Qualifications
		doctor.Bio = req.Bio
		return tx.Omit("User").Save(doctor).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
		return
	}

	utils.Success(c, "Doctor updated successfully", doctor)
}

// DeleteDoctor removes a doctor profile and its user account. Admin only.
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	doctor, ok := h.loadDoctor(c)
	if !ok {
		return
	}

	actor, ok := resolveActor(c, h.DB)
	if !ok {
		return
	}
	if !actor.IsAdmin() {
		utils.Forbidden(c, "Only administrators can delete doctors.")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Doctor{}, "id = ?", doctor.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", doctor.UserID).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete doctor: "+err.Error())
		return
	}

	utils.Success(c, "Doctor deleted successfully", nil)
}

func (h *DoctorHandler) loadDoctor(c *gin.Context) (*models.Doctor, bool) {
	doctorID := c.Param("id")
	if _, err := uuid.Parse(doctorID); err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return nil, false
	}

	var doctor models.Doctor
	if err := h.DB.Preload("User").First(&doctor, "id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &doctor, true
}

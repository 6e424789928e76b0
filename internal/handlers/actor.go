package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/policy"
	"clinic-app-server/internal/utils"
)

// resolveActor builds the policy.Actor for the authenticated caller,
// resolving the linked patient or doctor profile for those roles. On failure
// it writes the error response and returns false.
func resolveActor(c *gin.Context, db *gorm.DB) (policy.Actor, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return policy.Actor{}, false
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	actor := policy.Actor{UserID: userID, Role: role}

	switch role {
	case models.RolePatient:
		var patient models.Patient
		if err := db.Where("user_id = ?", userID).First(&patient).Error; err == nil {
			actor.PatientID = patient.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InternalServerError(c, "Database error resolving patient profile: "+err.Error())
			return policy.Actor{}, false
		}
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := db.Where("user_id = ?", userID).First(&doctor).Error; err == nil {
			actor.DoctorID = doctor.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InternalServerError(c, "Database error resolving doctor profile: "+err.Error())
			return policy.Actor{}, false
		}
	}

	return actor, true
}

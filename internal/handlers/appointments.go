package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/policy"
	"clinic-app-server/internal/scheduling"
	"clinic-app-server/internal/utils"
)

const dateLayout = "2006-01-02"

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB        *gorm.DB
	Scheduler *scheduling.Service
	Cfg       *config.Config
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, scheduler *scheduling.Service, cfg *config.Config) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Scheduler: scheduler, Cfg: cfg}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	PatientID       string    `json:"patientId" binding:"required,uuid"`
	DoctorID        string    `json:"doctorId" binding:"required,uuid"`
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
	Reason          string    `json:"reason" binding:"required,max=500"`
	Notes           string    `json:"notes" binding:"max=1000"`
}

// CreateAppointment books a new appointment. Patients book for themselves;
// admins book for any patient.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actor, ok := resolveActor(c, h.DB)
	if !ok {
		return
	}

	if !policy.CanCreateAppointmentFor(actor, req.PatientID) {
		if actor.IsPatient() {
			utils.Forbidden(c, "You can only book appointments for yourself.")
		} else {
			utils.Forbidden(c, "Your role is not permitted to book appointments.")
		}
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	appointment := models.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		Reason:          req.Reason,
		Notes:           req.Notes,
	}

	if err := h.Scheduler.Book(&appointment); err != nil {
		switch {
		case errors.Is(err, scheduling.ErrPastAppointment):
			utils.FieldErrors(c, http.StatusBadRequest, "Validation failed",
				map[string]string{"appointmentDate": "Appointment date must be in the future."})
		case errors.Is(err, scheduling.ErrSlotTaken):
			utils.Conflict(c, "appointmentDate", "This time slot is already booked.")
		default:
			utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		}
		return
	}

	utils.Created(c, "Appointment booked successfully", appointment)
}

// ListAppointments fetches the appointments visible to the caller: all of
// them for admins, their own for doctors and patients, none for other roles.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	actor, ok := resolveActor(c, h.DB)
	if !ok {
		return
	}

	appointments := make([]models.Appointment, 0)
	query := h.DB.Preload("Patient.User").Preload("Doctor.User").Order("appointment_date desc")

	var err error
	switch policy.AppointmentListScope(actor) {
	case policy.ScopeAll:
		err = query.Find(&appointments).Error
	case policy.ScopeDoctor:
		err = query.Where("doctor_id = ?", actor.DoctorID).Find(&appointments).Error
	case policy.ScopePatient:
		err = query.Where("patient_id = ?", actor.PatientID).Find(&appointments).Error
	}
	// ScopeNone (nurse, staff, unlinked profiles) keeps the empty result,
	// matching the application's historical behavior.

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID fetches a single appointment. Accessible to the
// involved patient, the involved doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	actor, ok := resolveActor(c, h.DB)
	if !ok {
		return
	}

	if !policy.CanViewAppointment(actor, appointment) {
		utils.Forbidden(c, "You can only view your own appointments.")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// UpdateAppointmentRequest represents the request body for updating an appointment.
type UpdateAppointmentRequest struct {
	PatientID       string                   `json:"patientId" binding:"required,uuid"`
	DoctorID        string                   `json:"doctorId" binding:"required,uuid"`
	AppointmentDate time.Time                `json:"appointmentDate" binding:"required"`
	Status          models.AppointmentStatus `json:"status" binding:"required,oneof=scheduled completed cancelled no_show"`
	Reason          string                   `json:"reason" binding:"required,max=500"`
	Notes           string                   `json:"notes" binding:"max=1000"`
}

// UpdateAppointment modifies an appointment. Patients may move their own
// appointment or amend its reason and notes, but any status they submit is
// discarded and the prior status kept. Doctors and admins may also change
// status.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req UpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	actor, ok := resolveActor(c, h.DB)
	if !ok {
		return
	}

	if !policy.CanUpdateAppointment(actor, appointment) {
		utils.Forbidden(c, "You can only update your own appointments.")
		return
	}

	if req.DoctorID != appointment.DoctorID {
		var doctor models.Doctor
		if err := h.DB.First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.NotFound(c, "Doctor not found")
			} else {
				utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
			}
			return
		}
	}
	if req.PatientID != appointment.PatientID {
		var patient models.Patient
		if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.NotFound(c, "Patient not found")
			} else {
				utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
			}
			return
		}
	}

	appointment.PatientID = req.PatientID
	appointment.DoctorID = req.DoctorID
	appointment.AppointmentDate = req.AppointmentDate
	appointment.Reason = req.Reason
	appointment.Notes = req.Notes
	appointment.Status = policy.FilterStatusChange(actor, appointment.Status, req.Status)

	if err := h.Scheduler.Reschedule(appointment); err != nil {
		if errors.Is(err, scheduling.ErrSlotTaken) {
			utils.Conflict(c, "appointmentDate", "This time slot is already booked.")
		} else {
			utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		}
		return
	}

	utils.Success(c, "Appointment updated successfully", appointment)
}

// DeleteAppointment removes an appointment. A patient deleting their own
// appointment first records the cancelled status; under the hard
// cancellation policy the row is then deleted, under the soft policy it is
// kept as a cancellation marker. Doctors and admins delete outright.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	actor, ok := resolveActor(c, h.DB)
	if !ok {
		return
	}

	if !policy.CanDeleteAppointment(actor, appointment) {
		utils.Forbidden(c, "You can only cancel your own appointments.")
		return
	}

	if actor.IsPatient() {
		purge := h.Cfg.Booking.CancellationPolicy == config.CancellationPolicyHard
		if err := h.Scheduler.Cancel(appointment, purge); err != nil {
			utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
			return
		}
		if purge {
			utils.Success(c, "Appointment cancelled successfully", nil)
		} else {
			utils.Success(c, "Appointment cancelled successfully", appointment)
		}
		return
	}

	if err := h.DB.Delete(&models.Appointment{}, "id = ?", appointment.ID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment cancelled successfully", nil)
}

// GetAvailableSlots returns the free and booked slot labels for a doctor on
// a given date. The date must lie strictly after today.
func (h *AppointmentHandler) GetAvailableSlots(c *gin.Context) {
	doctorID := c.Query("doctor_id")
	if _, err := uuid.Parse(doctorID); err != nil {
		utils.BadRequest(c, "Invalid or missing doctor_id")
		return
	}

	day, err := time.ParseInLocation(dateLayout, c.Query("date"), time.Local)
	if err != nil {
		utils.BadRequest(c, "Invalid or missing date, expected YYYY-MM-DD")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	availability, err := h.Scheduler.AvailableSlots(doctorID, day)
	if err != nil {
		if errors.Is(err, scheduling.ErrDateNotAfterToday) {
			utils.FieldErrors(c, http.StatusBadRequest, "Validation failed",
				map[string]string{"date": "The date must be a date after today."})
		} else {
			utils.InternalServerError(c, "Failed to compute availability: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, availability)
}

// loadAppointment fetches the appointment addressed by the :id route
// parameter, writing the error response on failure.
func (h *AppointmentHandler) loadAppointment(c *gin.Context) (*models.Appointment, bool) {
	appointmentID := c.Param("id")
	if _, err := uuid.Parse(appointmentID); err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return nil, false
	}

	var appointment models.Appointment
	if err := h.DB.Preload("Patient.User").Preload("Doctor.User").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &appointment, true
}

package scheduling

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clinic-app-server/internal/models"
)

// GormStore is the MySQL-backed AppointmentStore. The exclusivity check and
// the write run inside one transaction with the conflicting rows locked, so
// two concurrent bookings for the same doctor and timestamp cannot both pass
// the check. MySQL has no partial unique indexes, which rules out a
// (doctor_id, appointment_date, status='scheduled') constraint; the locked
// transaction is the authoritative backstop instead. When no matching row
// exists yet, the FOR UPDATE count serializes concurrent inserts through
// InnoDB's gap locks, which requires the default REPEATABLE READ isolation
// level; under READ COMMITTED two empty counts could both proceed to insert.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates an AppointmentStore over the given gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ AppointmentStore = (*GormStore)(nil)

// ScheduledTimesOn returns the timestamps of the doctor's scheduled
// appointments on the given calendar day.
func (s *GormStore) ScheduledTimesOn(doctorID string, day time.Time) ([]time.Time, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appointments []models.Appointment
	err := s.db.
		Where("doctor_id = ? AND appointment_date >= ? AND appointment_date < ? AND status = ?",
			doctorID, dayStart, dayEnd, models.StatusScheduled).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	times := make([]time.Time, 0, len(appointments))
	for _, appt := range appointments {
		times = append(times, appt.AppointmentDate)
	}
	return times, nil
}

// CreateScheduled inserts a scheduled appointment behind a locked slot check.
func (s *GormStore) CreateScheduled(appt *models.Appointment) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := slotTaken(tx, appt.DoctorID, appt.AppointmentDate, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}
		return tx.Omit(clause.Associations).Create(appt).Error
	})
}

// SaveRescheduled saves an existing appointment behind the same locked slot
// check, excluding the appointment's own row. Appointments leaving the
// scheduled status never conflict.
func (s *GormStore) SaveRescheduled(appt *models.Appointment) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if appt.IsScheduled() {
			taken, err := slotTaken(tx, appt.DoctorID, appt.AppointmentDate, appt.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrSlotTaken
			}
		}
		return tx.Omit(clause.Associations).Save(appt).Error
	})
}

// CancelScheduled writes the cancelled status on the appointment's row and,
// when purge is set, deletes the row in the same transaction.
func (s *GormStore) CancelScheduled(appt *models.Appointment, purge bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(appt).Update("status", models.StatusCancelled).Error; err != nil {
			return err
		}
		if !purge {
			return nil
		}
		return tx.Delete(&models.Appointment{}, "id = ?", appt.ID).Error
	})
}

// slotTaken reports whether a scheduled appointment other than excludeID
// occupies the doctor's slot at the exact timestamp, locking any matching
// rows for the remainder of the transaction.
func slotTaken(tx *gorm.DB, doctorID string, at time.Time, excludeID string) (bool, error) {
	query := tx.Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ? AND appointment_date = ? AND status = ?",
			doctorID, at, models.StatusScheduled)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

package repository

import (
	"errors"
	"time"

	"clinic-booking-system/internal/domain/entity"
	domainRepo "clinic-booking-system/internal/domain/repository"
	"clinic-booking-system/internal/scheduling"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uint64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient.User").Preload("Doctor.User").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Preload("Doctor.User").Where("patient_id = ?", patientID)
	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.StartAt != "" {
			query = query.Where("appointment_date >= ?", filter.StartAt)
		}
		if filter.EndAt != "" {
			query = query.Where("appointment_date <= ?", filter.EndAt)
		}
	}

	var appointments []entity.Appointment
	err := query.Order("appointment_date DESC, start_time DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Preload("Patient.User").Where("doctor_id = ?", doctorID)
	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.StartAt != "" {
			query = query.Where("appointment_date >= ?", filter.StartAt)
		}
		if filter.EndAt != "" {
			query = query.Where("appointment_date <= ?", filter.EndAt)
		}
	}

	var appointments []entity.Appointment
	err := query.Order("appointment_date DESC, start_time DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient.User").
		Where("doctor_id = ? AND appointment_date = ?", doctorID, scheduling.DateKey(date)).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Where("doctor_id = ? AND appointment_date = ? AND status != ?",
			doctorID, scheduling.DateKey(date), entity.AppointmentStatusCancelled).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// Cancel flips a non-terminal appointment to cancelled. The status
// guard in the WHERE clause makes a double cancel (or cancelling a
// completed appointment) report zero affected rows instead of
// silently rewriting terminal state.
func (r *appointmentRepository) Cancel(db *gorm.DB, id uint64) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status IN ?", id, []entity.AppointmentStatus{
			entity.AppointmentStatusScheduled,
			entity.AppointmentStatusEmergency,
		}).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}

// Complete flips a non-terminal appointment to completed and stores
// the medical fields, guarded the same way as Cancel.
func (r *appointmentRepository) Complete(db *gorm.DB, id uint64, diagnosis, prescription, notes string) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status IN ?", id, []entity.AppointmentStatus{
			entity.AppointmentStatusScheduled,
			entity.AppointmentStatusEmergency,
		}).
		Updates(map[string]interface{}{
			"status":       entity.AppointmentStatusCompleted,
			"diagnosis":    diagnosis,
			"prescription": prescription,
			"notes":        notes,
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) BookedLoad(db *gorm.DB, doctorID uuid.UUID, start, end time.Time) (int64, int64, error) {
	var row struct {
		Count   int64
		Minutes int64
	}
	err := db.Model(&entity.Appointment{}).
		Select("COUNT(*) AS count, COALESCE(SUM(duration_minutes), 0) AS minutes").
		Where("doctor_id = ? AND appointment_date BETWEEN ? AND ? AND status IN ?",
			doctorID, scheduling.DateKey(start), scheduling.DateKey(end),
			[]entity.AppointmentStatus{entity.AppointmentStatusScheduled, entity.AppointmentStatusCompleted}).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Count, row.Minutes, nil
}

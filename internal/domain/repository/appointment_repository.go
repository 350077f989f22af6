package repository

import (
	"time"

	"clinic-booking-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uint64) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	// FindActiveByDoctorAndDate returns every non-cancelled appointment
	// for the doctor on the date; this is the set the conflict checker
	// scans.
	FindActiveByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	// Cancel atomically cancels ONLY a non-terminal appointment.
	// Returns affected rows: 0 means the appointment was already
	// completed or cancelled.
	Cancel(db *gorm.DB, id uint64) (int64, error)
	// Complete atomically completes ONLY a non-terminal appointment and
	// records the medical fields. Returns affected rows like Cancel.
	Complete(db *gorm.DB, id uint64, diagnosis, prescription, notes string) (int64, error)
	// BookedLoad sums appointment counts and booked minutes for a
	// doctor across a date range, scheduled and completed statuses only.
	BookedLoad(db *gorm.DB, doctorID uuid.UUID, start, end time.Time) (count int64, minutes int64, err error)
}

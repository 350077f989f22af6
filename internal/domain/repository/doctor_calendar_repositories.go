package repository

import (
	"time"

	"clinic-booking-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorWorkingHoursRepository interface {
	Create(db *gorm.DB, hours *entity.DoctorWorkingHours) error
	// DeleteByDoctorAndWeekday clears the prior window for the weekday;
	// setting hours is delete-then-create inside one transaction.
	DeleteByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday time.Weekday) error
	FindByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday time.Weekday) (*entity.DoctorWorkingHours, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorWorkingHours, error)
}

type DoctorBreakRepository interface {
	Create(db *gorm.DB, brk *entity.DoctorBreak) error
	FindByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday time.Weekday) ([]entity.DoctorBreak, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorBreak, error)
	Delete(db *gorm.DB, id int) (int64, error)
}

type DoctorLeaveRepository interface {
	Create(db *gorm.DB, leave *entity.DoctorLeave) error
	Exists(db *gorm.DB, doctorID uuid.UUID, date time.Time) (bool, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorLeave, error)
	Delete(db *gorm.DB, doctorID uuid.UUID, date time.Time) (int64, error)
}

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

type doctorWorkingHoursRepository struct{}

func NewDoctorWorkingHoursRepository() domainRepo.DoctorWorkingHoursRepository {
	return &doctorWorkingHoursRepository{}
}

func (r *doctorWorkingHoursRepository) Create(db *gorm.DB, hours *entity.DoctorWorkingHours) error {
	return db.Create(hours).Error
}

func (r *doctorWorkingHoursRepository) DeleteByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday time.Weekday) error {
	return db.Where("doctor_id = ? AND weekday = ?", doctorID, int(weekday)).
		Delete(&entity.DoctorWorkingHours{}).Error
}

func (r *doctorWorkingHoursRepository) FindByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday time.Weekday) (*entity.DoctorWorkingHours, error) {
	var hours entity.DoctorWorkingHours
	err := db.Where("doctor_id = ? AND weekday = ?", doctorID, int(weekday)).First(&hours).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hours, nil
}

func (r *doctorWorkingHoursRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorWorkingHours, error) {
	var hours []entity.DoctorWorkingHours
	err := db.Where("doctor_id = ?", doctorID).Order("weekday ASC").Find(&hours).Error
	if err != nil {
		return nil, err
	}
	return hours, nil
}

type doctorBreakRepository struct{}

func NewDoctorBreakRepository() domainRepo.DoctorBreakRepository {
	return &doctorBreakRepository{}
}

func (r *doctorBreakRepository) Create(db *gorm.DB, brk *entity.DoctorBreak) error {
	return db.Create(brk).Error
}

func (r *doctorBreakRepository) FindByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday time.Weekday) ([]entity.DoctorBreak, error) {
	var breaks []entity.DoctorBreak
	err := db.Where("doctor_id = ? AND weekday = ?", doctorID, int(weekday)).
		Order("break_start ASC").
		Find(&breaks).Error
	if err != nil {
		return nil, err
	}
	return breaks, nil
}

func (r *doctorBreakRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorBreak, error) {
	var breaks []entity.DoctorBreak
	err := db.Where("doctor_id = ?", doctorID).Order("weekday ASC, break_start ASC").Find(&breaks).Error
	if err != nil {
		return nil, err
	}
	return breaks, nil
}

func (r *doctorBreakRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.DoctorBreak{})
	return result.RowsAffected, result.Error
}

type doctorLeaveRepository struct{}

func NewDoctorLeaveRepository() domainRepo.DoctorLeaveRepository {
	return &doctorLeaveRepository{}
}

func (r *doctorLeaveRepository) Create(db *gorm.DB, leave *entity.DoctorLeave) error {
	return db.Create(leave).Error
}

func (r *doctorLeaveRepository) Exists(db *gorm.DB, doctorID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.DoctorLeave{}).
		Where("doctor_id = ? AND leave_date = ?", doctorID, scheduling.DateKey(date)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *doctorLeaveRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorLeave, error) {
	var leaves []entity.DoctorLeave
	err := db.Where("doctor_id = ?", doctorID).Order("leave_date ASC").Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *doctorLeaveRepository) Delete(db *gorm.DB, doctorID uuid.UUID, date time.Time) (int64, error) {
	result := db.Where("doctor_id = ? AND leave_date = ?", doctorID, scheduling.DateKey(date)).
		Delete(&entity.DoctorLeave{})
	return result.RowsAffected, result.Error
}

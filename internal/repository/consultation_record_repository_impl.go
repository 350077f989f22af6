package repository

import (
	"clinic-booking-system/internal/domain/entity"
	domainRepo "clinic-booking-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type consultationRecordRepository struct{}

func NewConsultationRecordRepository() domainRepo.ConsultationRecordRepository {
	return &consultationRecordRepository{}
}

func (r *consultationRecordRepository) Create(db *gorm.DB, record *entity.ConsultationRecord) error {
	return db.Create(record).Error
}

func (r *consultationRecordRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.ConsultationRecord, error) {
	var records []entity.ConsultationRecord
	err := db.Where("patient_id = ?", patientID).Order("recorded_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

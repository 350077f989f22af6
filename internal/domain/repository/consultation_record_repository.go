package repository

import (
	"clinic-booking-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsultationRecordRepository interface {
	Create(db *gorm.DB, record *entity.ConsultationRecord) error
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.ConsultationRecord, error)
}

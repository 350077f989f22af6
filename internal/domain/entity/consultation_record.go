package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConsultationRecord is the immutable medical history entry appended
// when an appointment is completed. It carries the same medical fields
// as the appointment but is timestamped independently and never
// updated afterwards.
type ConsultationRecord struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uint64    `gorm:"not null;index" json:"appointment_id"`
	PatientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Diagnosis     string    `gorm:"type:text" json:"diagnosis,omitempty"`
	Prescription  string    `gorm:"type:text" json:"prescription,omitempty"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	RecordedAt    time.Time `gorm:"autoCreateTime" json:"recorded_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (ConsultationRecord) TableName() string {
	return "consultation_records"
}

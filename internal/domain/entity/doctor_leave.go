package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorLeave marks a specific calendar date on which the doctor is
// wholly unavailable, overriding the weekday schedule. Unique per
// (doctor, date).
type DoctorLeave struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_doctor_leave_date,priority:1" json:"doctor_id"`
	LeaveDate time.Time `gorm:"type:date;not null;uniqueIndex:uidx_doctor_leave_date,priority:2" json:"leave_date"`
	Reason    string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorLeave) TableName() string {
	return "doctor_leaves"
}

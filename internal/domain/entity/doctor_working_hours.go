package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorWorkingHours is the recurring weekly working window of a
// doctor: at most one active window per (doctor, weekday). Assigning a
// new window for a weekday replaces the prior one.
type DoctorWorkingHours struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_working_hours_doctor_day,priority:1" json:"doctor_id"`
	Weekday   int       `gorm:"not null;uniqueIndex:uidx_working_hours_doctor_day,priority:2" json:"weekday"`
	StartTime string    `gorm:"type:time;not null" json:"start_time"`
	EndTime   string    `gorm:"type:time;not null" json:"end_time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorWorkingHours) TableName() string {
	return "doctor_working_hours"
}

// Day returns the weekday as the closed time.Weekday enumeration.
func (h *DoctorWorkingHours) Day() time.Weekday {
	return time.Weekday(h.Weekday)
}

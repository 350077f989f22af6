package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorBreak is a recurring break window within a doctor's weekday.
// Breaks are additive: inserting never replaces an existing one. A
// break lying outside the working window is not rejected at write
// time; slot generation simply never reaches it.
type DoctorBreak struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Weekday    int       `gorm:"not null;index" json:"weekday"`
	BreakStart string    `gorm:"type:time;not null" json:"break_start"`
	BreakEnd   string    `gorm:"type:time;not null" json:"break_end"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorBreak) TableName() string {
	return "doctor_breaks"
}

// Day returns the weekday as the closed time.Weekday enumeration.
func (b *DoctorBreak) Day() time.Weekday {
	return time.Weekday(b.Weekday)
}

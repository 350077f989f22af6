package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography      string    `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User         User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WorkingHours []DoctorWorkingHours `gorm:"foreignKey:DoctorID" json:"working_hours,omitempty"`
	Breaks       []DoctorBreak        `gorm:"foreignKey:DoctorID" json:"breaks,omitempty"`
	Leaves       []DoctorLeave        `gorm:"foreignKey:DoctorID" json:"leaves,omitempty"`
	Appointments []Appointment        `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

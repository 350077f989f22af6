package entity

import (
	"time"

	"clinic-booking-system/internal/scheduling"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	// AppointmentStatusScheduled is the initial state of an ordinary booking
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	// AppointmentStatusEmergency is the parallel initial state of an
	// emergency booking; it is never reached from scheduled
	AppointmentStatusEmergency AppointmentStatus = "emergency"
	// AppointmentStatusCompleted is terminal
	AppointmentStatusCompleted AppointmentStatus = "completed"
	// AppointmentStatusCancelled is terminal; cancelled appointments are
	// excluded from conflict checks so their slot becomes re-bookable
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

const DefaultAppointmentDurationMinutes = 30

// Appointment is a time-boxed consultation between a patient and a
// doctor. Records are never deleted; terminal status is the marker.
// The unique index on (doctor_id, appointment_date, start_time) is a
// storage safety net catching exact-start duplicates only — the engine's
// overlap check is the real guard against double-booking.
type Appointment struct {
	ID              uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uidx_appointments_doctor_slot,priority:1" json:"doctor_id"`
	Date            time.Time         `gorm:"column:appointment_date;type:date;not null;uniqueIndex:uidx_appointments_doctor_slot,priority:2" json:"appointment_date"`
	StartTime       string            `gorm:"type:time;not null;uniqueIndex:uidx_appointments_doctor_slot,priority:3" json:"start_time"`
	DurationMinutes int               `gorm:"not null;default:30" json:"duration_minutes"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Diagnosis       string            `gorm:"type:text" json:"diagnosis,omitempty"`
	Prescription    string            `gorm:"type:text" json:"prescription,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Interval converts the stored date, start time and duration into the
// engine's interval form.
func (a *Appointment) Interval() (scheduling.Interval, error) {
	start, err := scheduling.ParseClock(a.StartTime)
	if err != nil {
		return scheduling.Interval{}, err
	}
	return scheduling.NewInterval(a.Date, start, time.Duration(a.DurationMinutes)*time.Minute)
}

// IsTerminal reports whether the appointment reached a final state
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsActive reports whether the appointment still occupies its slot
// for conflict purposes
func (a *Appointment) IsActive() bool {
	return !a.IsCancelled()
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	Date            string    `json:"date" validate:"required"`                      // Format: YYYY-MM-DD
	PreferredTime   string    `json:"preferred_time" validate:"required,clocktime"`  // Format: HH:MM
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=5,max=240"`
}

type BookEmergencyRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
}

type CompleteAppointmentRequest struct {
	Diagnosis    string `json:"diagnosis" validate:"required"`
	Prescription string `json:"prescription" validate:"omitempty"`
	Notes        string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uint64                      `json:"id"`
	PatientID       uuid.UUID                   `json:"patient_id"`
	DoctorID        uuid.UUID                   `json:"doctor_id"`
	Doctor          *DoctorResponse             `json:"doctor,omitempty"`
	Patient         *PatientResponse            `json:"patient,omitempty"`
	Date            string                      `json:"date"`
	StartTime       string                      `json:"start_time"`
	EndTime         string                      `json:"end_time"`
	DurationMinutes int                         `json:"duration_minutes"`
	Status          string                      `json:"status"`
	Consultation    *ConsultationRecordResponse `json:"consultation,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type ConsultationRecordResponse struct {
	Diagnosis    string    `json:"diagnosis"`
	Prescription string    `json:"prescription,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	RecordedAt   time.Time `json:"recorded_at"`
}

type AvailabilityResponse struct {
	DoctorID            uuid.UUID `json:"doctor_id"`
	Date                string    `json:"date"`
	SlotDurationMinutes int       `json:"slot_duration_minutes"`
	Slots               []string  `json:"slots"`
	Total               int       `json:"total"`
}

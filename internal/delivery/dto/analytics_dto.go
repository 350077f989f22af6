package dto

import (
	"github.com/google/uuid"
)

// Response DTOs

type DoctorUtilizationResponse struct {
	DoctorID         uuid.UUID       `json:"doctor_id"`
	Doctor           *DoctorResponse `json:"doctor,omitempty"`
	From             string          `json:"from"`
	To               string          `json:"to"`
	AppointmentCount int64           `json:"appointment_count"`
	BookedMinutes    int64           `json:"booked_minutes"`
	AvailableMinutes int64           `json:"available_minutes"`
	UtilizationRate  string          `json:"utilization_rate"` // percentage, 2 decimal places
	UtilizationLevel string          `json:"utilization_level"`
}

type UtilizationReportResponse struct {
	From    string                      `json:"from"`
	To      string                      `json:"to"`
	Doctors []DoctorUtilizationResponse `json:"doctors"`
	Total   int                         `json:"total"`
}

package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type SetWorkingHoursRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Weekday   string    `json:"weekday" validate:"required,weekday"`
	StartTime string    `json:"start_time" validate:"required,clocktime"` // Format: HH:MM
	EndTime   string    `json:"end_time" validate:"required,clocktime"`   // Format: HH:MM
}

type AddBreakRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Weekday   string    `json:"weekday" validate:"required,weekday"`
	StartTime string    `json:"start_time" validate:"required,clocktime"` // Format: HH:MM
	EndTime   string    `json:"end_time" validate:"required,clocktime"`   // Format: HH:MM
}

type MarkLeaveRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Reason   string    `json:"reason" validate:"omitempty"`
}

// Response DTOs

type WorkingHoursResponse struct {
	Weekday   string `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type BreakResponse struct {
	Weekday   string `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type LeaveResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

type WeeklyScheduleResponse struct {
	DoctorID     uuid.UUID              `json:"doctor_id"`
	WorkingHours []WorkingHoursResponse `json:"working_hours"`
	Breaks       []BreakResponse        `json:"breaks"`
	Leaves       []LeaveResponse        `json:"leaves"`
}

type DayScheduleResponse struct {
	DoctorID     uuid.UUID             `json:"doctor_id"`
	Date         string                `json:"date"`
	OnLeave      bool                  `json:"on_leave"`
	WorkingHours *WorkingHoursResponse `json:"working_hours,omitempty"`
	Breaks       []BreakResponse       `json:"breaks"`
	Appointments []AppointmentResponse `json:"appointments"`
}

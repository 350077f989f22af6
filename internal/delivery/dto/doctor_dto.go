package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type UpdateDoctorRequest struct {
	Email          string `json:"email" validate:"omitempty,email"`
	Password       string `json:"password" validate:"omitempty,min=6"`
	FullName       string `json:"full_name" validate:"omitempty,min=2"`
	LicenseNumber  string `json:"license_number" validate:"omitempty"`
	Specialization string `json:"specialization" validate:"omitempty"`
	Biography      string `json:"biography" validate:"omitempty"`
	IsActive       *bool  `json:"is_active" validate:"omitempty"`
}

type DoctorUpdateSelfRequest struct {
	OldPassword string `json:"old_password" validate:"omitempty"`
	Password    string `json:"password" validate:"omitempty,min=6"`
	Biography   string `json:"biography" validate:"omitempty"`
}

// Response DTOs

type DoctorProfileResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	LicenseNumber  string    `json:"license_number"`
	Specialization string    `json:"specialization"`
	Biography      string    `json:"biography,omitempty"`
}

type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	LicenseNumber  string    `json:"license_number"`
	Specialization string    `json:"specialization"`
	Biography      string    `json:"biography,omitempty"`
	IsActive       bool      `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

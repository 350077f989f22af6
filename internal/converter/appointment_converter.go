package converter

import (
	"clinic-booking-system/internal/delivery/dto"
	"clinic-booking-system/internal/domain/entity"
	"clinic-booking-system/internal/scheduling"

	"time"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		Date:            scheduling.DateKey(appointment.Date),
		StartTime:       appointment.StartTime,
		EndTime:         appointmentEndTime(appointment),
		DurationMinutes: appointment.DurationMinutes,
		Status:          string(appointment.Status),
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	// Include doctor info if available
	if appointment.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorProfileToResponse(&appointment.Doctor)
	}

	// Include patient info if the profile and its user were preloaded
	if appointment.Patient.UserID != uuid.Nil {
		response.Patient = PatientProfileToResponse(&appointment.Patient, &appointment.Patient.User)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// ConsultationRecordToResponse converts a ConsultationRecord entity to ConsultationRecordResponse DTO
func ConsultationRecordToResponse(record *entity.ConsultationRecord) *dto.ConsultationRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.ConsultationRecordResponse{
		Diagnosis:    record.Diagnosis,
		Prescription: record.Prescription,
		Notes:        record.Notes,
		RecordedAt:   record.RecordedAt,
	}
}

func appointmentEndTime(appointment *entity.Appointment) string {
	start, err := scheduling.ParseClock(appointment.StartTime)
	if err != nil {
		return ""
	}
	return start.Add(time.Duration(appointment.DurationMinutes) * time.Minute).String()
}

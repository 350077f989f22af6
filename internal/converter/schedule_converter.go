package converter

import (
	"strings"

	"clinic-booking-system/internal/delivery/dto"
	"clinic-booking-system/internal/domain/entity"
	"clinic-booking-system/internal/scheduling"
)

// WorkingHoursToResponse converts a DoctorWorkingHours entity to WorkingHoursResponse DTO
func WorkingHoursToResponse(hours *entity.DoctorWorkingHours) *dto.WorkingHoursResponse {
	if hours == nil {
		return nil
	}

	return &dto.WorkingHoursResponse{
		Weekday:   strings.ToLower(hours.Day().String()),
		StartTime: hours.StartTime,
		EndTime:   hours.EndTime,
	}
}

// WorkingHoursToResponses converts a slice of DoctorWorkingHours entities to slice of WorkingHoursResponse DTOs
func WorkingHoursToResponses(hours []entity.DoctorWorkingHours) []dto.WorkingHoursResponse {
	responses := make([]dto.WorkingHoursResponse, len(hours))
	for i, h := range hours {
		responses[i] = *WorkingHoursToResponse(&h)
	}
	return responses
}

// BreakToResponse converts a DoctorBreak entity to BreakResponse DTO
func BreakToResponse(brk *entity.DoctorBreak) *dto.BreakResponse {
	if brk == nil {
		return nil
	}

	return &dto.BreakResponse{
		Weekday:   strings.ToLower(brk.Day().String()),
		StartTime: brk.BreakStart,
		EndTime:   brk.BreakEnd,
	}
}

// BreaksToResponses converts a slice of DoctorBreak entities to slice of BreakResponse DTOs
func BreaksToResponses(breaks []entity.DoctorBreak) []dto.BreakResponse {
	responses := make([]dto.BreakResponse, len(breaks))
	for i, b := range breaks {
		responses[i] = *BreakToResponse(&b)
	}
	return responses
}

// LeaveToResponse converts a DoctorLeave entity to LeaveResponse DTO
func LeaveToResponse(leave *entity.DoctorLeave) *dto.LeaveResponse {
	if leave == nil {
		return nil
	}

	return &dto.LeaveResponse{
		Date:   scheduling.DateKey(leave.LeaveDate),
		Reason: leave.Reason,
	}
}

// LeavesToResponses converts a slice of DoctorLeave entities to slice of LeaveResponse DTOs
func LeavesToResponses(leaves []entity.DoctorLeave) []dto.LeaveResponse {
	responses := make([]dto.LeaveResponse, len(leaves))
	for i, l := range leaves {
		responses[i] = *LeaveToResponse(&l)
	}
	return responses
}

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-booking-system/internal/delivery/dto"
	"clinic-booking-system/internal/usecase"
	"clinic-booking-system/pkg/response"
	"clinic-booking-system/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ScheduleHandler struct {
	scheduleUsecase usecase.DoctorScheduleUsecase
	validator       *validator.CustomValidator
}

func NewScheduleHandler(scheduleUsecase usecase.DoctorScheduleUsecase, validator *validator.CustomValidator) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// SetWorkingHours replaces a doctor's working window for a weekday
// @Summary Set working hours
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SetWorkingHoursRequest true "Set Working Hours Request"
// @Success 200 {object} response.Response
// @Router /schedule/working-hours [put]
func (h *ScheduleHandler) SetWorkingHours(w http.ResponseWriter, r *http.Request) {
	var req dto.SetWorkingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hours, err := h.scheduleUsecase.SetWorkingHours(r.Context(), &req)
	if err != nil {
		h.writeScheduleError(w, err, "Failed to set working hours")
		return
	}

	response.Success(w, http.StatusOK, "Working hours set successfully", hours)
}

// AddBreak adds a recurring break window for a weekday
// @Summary Add a break
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AddBreakRequest true "Add Break Request"
// @Success 201 {object} response.Response
// @Router /schedule/breaks [post]
func (h *ScheduleHandler) AddBreak(w http.ResponseWriter, r *http.Request) {
	var req dto.AddBreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	brk, err := h.scheduleUsecase.AddBreak(r.Context(), &req)
	if err != nil {
		h.writeScheduleError(w, err, "Failed to add break")
		return
	}

	response.Success(w, http.StatusCreated, "Break added successfully", brk)
}

// RemoveBreak deletes a recurring break window
// @Summary Remove a break
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param id path int true "Break ID"
// @Success 200 {object} response.Response
// @Router /schedule/breaks/{id} [delete]
func (h *ScheduleHandler) RemoveBreak(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	breakID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid break ID", nil)
		return
	}

	if err := h.scheduleUsecase.RemoveBreak(r.Context(), breakID); err != nil {
		switch err {
		case usecase.ErrBreakNotFound:
			response.NotFound(w, "Break not found")
		default:
			response.InternalServerError(w, "Failed to remove break")
		}
		return
	}

	response.Success(w, http.StatusOK, "Break removed successfully", nil)
}

// MarkLeave marks a whole calendar date unavailable
// @Summary Mark leave
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.MarkLeaveRequest true "Mark Leave Request"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /schedule/leaves [post]
func (h *ScheduleHandler) MarkLeave(w http.ResponseWriter, r *http.Request) {
	var req dto.MarkLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	leave, err := h.scheduleUsecase.MarkLeave(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrLeaveExists:
			response.Conflict(w, "Leave already marked for this date")
		default:
			h.writeScheduleError(w, err, "Failed to mark leave")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Leave marked successfully", leave)
}

// CancelLeave removes a marked leave date
// @Summary Cancel leave
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param doctorId path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /schedule/leaves/{doctorId} [delete]
func (h *ScheduleHandler) CancelLeave(w http.ResponseWriter, r *http.Request) {
	doctorID, err := doctorIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Missing date query parameter", nil)
		return
	}

	if err := h.scheduleUsecase.CancelLeave(r.Context(), doctorID, date); err != nil {
		switch err {
		case usecase.ErrLeaveNotFound:
			response.NotFound(w, "Leave not found")
		default:
			h.writeScheduleError(w, err, "Failed to cancel leave")
		}
		return
	}

	response.Success(w, http.StatusOK, "Leave cancelled successfully", nil)
}

// GetWeeklySchedule returns a doctor's recurring schedule and leaves
// @Summary Get weekly schedule
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param doctorId path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Router /doctors/{doctorId}/schedule [get]
func (h *ScheduleHandler) GetWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, err := doctorIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	schedule, err := h.scheduleUsecase.GetWeeklySchedule(r.Context(), doctorID)
	if err != nil {
		h.writeScheduleError(w, err, "Failed to get weekly schedule")
		return
	}

	response.Success(w, http.StatusOK, "Weekly schedule retrieved successfully", schedule)
}

// GetDaySchedule returns one concrete date for a doctor
// @Summary Get day schedule
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param doctorId path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /doctors/{doctorId}/schedule/day [get]
func (h *ScheduleHandler) GetDaySchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, err := doctorIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Missing date query parameter", nil)
		return
	}

	schedule, err := h.scheduleUsecase.GetDaySchedule(r.Context(), doctorID, date)
	if err != nil {
		h.writeScheduleError(w, err, "Failed to get day schedule")
		return
	}

	response.Success(w, http.StatusOK, "Day schedule retrieved successfully", schedule)
}

func (h *ScheduleHandler) writeScheduleError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrInvalidDateFormat:
		response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
	case usecase.ErrInvalidTimeFormat:
		response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
	case usecase.ErrInvalidWeekdayName:
		response.Error(w, http.StatusBadRequest, "Invalid weekday name", nil)
	case usecase.ErrInvalidWindow:
		response.Error(w, http.StatusBadRequest, "Start time must be before end time", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

func doctorIDFromPath(r *http.Request) (uuid.UUID, error) {
	vars := mux.Vars(r)
	return uuid.Parse(vars["doctorId"])
}

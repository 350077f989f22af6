package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-booking-system/internal/delivery/dto"
	"clinic-booking-system/internal/domain/entity"
	"clinic-booking-system/internal/usecase"
	"clinic-booking-system/pkg/response"
	"clinic-booking-system/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// BookAppointment books the preferred slot or the next free one after it
// @Summary Book an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookAppointmentRequest true "Book Appointment Request"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.BookAppointment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorUnavailable:
			response.Conflict(w, "Doctor is not available on this date")
		case usecase.ErrNoSlotAvailable:
			response.Conflict(w, "No free slot available near the preferred time")
		case usecase.ErrSchedulingConflict:
			response.Conflict(w, "Slot was taken by a concurrent booking, please retry")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// BookEmergency books the earliest emergency slot from now
// @Summary Book an emergency appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookEmergencyRequest true "Book Emergency Request"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/emergency [post]
func (h *AppointmentHandler) BookEmergency(w http.ResponseWriter, r *http.Request) {
	var req dto.BookEmergencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.BookEmergency(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrNoSlotAvailable:
			response.Conflict(w, "No emergency slot available within the next hours")
		case usecase.ErrSchedulingConflict:
			response.Conflict(w, "Slot was taken by a concurrent booking, please retry")
		default:
			response.InternalServerError(w, "Failed to book emergency appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Emergency appointment booked successfully", appointment)
}

// CancelAppointment cancels the patient's own appointment
// @Summary Cancel an appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := appointmentIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.CancelAppointment(r.Context(), appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrAppointmentFinal:
			response.Conflict(w, "Appointment is already completed or cancelled")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

// CompleteAppointment finishes a consultation and appends the medical record
// @Summary Complete an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body dto.CompleteAppointmentRequest true "Complete Appointment Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/complete [put]
func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := appointmentIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CompleteAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CompleteAppointment(r.Context(), appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrAppointmentFinal:
			response.Conflict(w, "Appointment is already completed or cancelled")
		default:
			response.InternalServerError(w, "Failed to complete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", appointment)
}

// GetMyAppointments lists the logged-in patient's appointments
// @Summary List my appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param start_at query string false "Range start (YYYY-MM-DD)"
// @Param end_at query string false "Range end (YYYY-MM-DD)"
// @Param status query string false "Status filter"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &entity.AppointmentFilter{
		StartAt: query.Get("start_at"),
		EndAt:   query.Get("end_at"),
		Status:  entity.AppointmentStatus(query.Get("status")),
	}

	appointments, err := h.appointmentUsecase.GetMyAppointments(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetDoctorAppointments lists the logged-in doctor's appointments
// @Summary List my appointments as a doctor
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param start_at query string false "Range start (YYYY-MM-DD)"
// @Param end_at query string false "Range end (YYYY-MM-DD)"
// @Param status query string false "Status filter"
// @Success 200 {object} response.Response
// @Router /doctors/me/appointments [get]
func (h *AppointmentHandler) GetDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &entity.AppointmentFilter{
		StartAt: query.Get("start_at"),
		EndAt:   query.Get("end_at"),
		Status:  entity.AppointmentStatus(query.Get("status")),
	}

	appointments, err := h.appointmentUsecase.GetDoctorAppointments(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetAvailability lists a doctor's free slots on a date
// @Summary Get doctor availability
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param doctorId path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /doctors/{doctorId}/availability [get]
func (h *AppointmentHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Missing date query parameter", nil)
		return
	}

	availability, err := h.appointmentUsecase.GetAvailability(r.Context(), doctorID, date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

func appointmentIDFromPath(r *http.Request) (uint64, error) {
	vars := mux.Vars(r)
	return strconv.ParseUint(vars["id"], 10, 64)
}

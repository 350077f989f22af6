package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-system/internal/delivery/dto"
	"clinic-booking-system/internal/usecase"
	"clinic-booking-system/pkg/response"
	"clinic-booking-system/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientProfileUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientProfileUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// GetSelfProfile returns the logged-in patient's profile
// @Summary Get own patient profile
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patients/me [get]
func (h *PatientHandler) GetSelfProfile(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientUsecase.GetSelfProfile(r.Context())
	if err != nil {
		if err == usecase.ErrPatientNotFound {
			response.NotFound(w, "Patient profile not found")
			return
		}
		response.InternalServerError(w, "Failed to get profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", patient)
}

// UpdateSelfProfile updates the logged-in patient's profile
// @Summary Update own patient profile
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.PatientUpdateSelfRequest true "Update Self Request"
// @Success 200 {object} response.Response
// @Router /patients/me [put]
func (h *PatientHandler) UpdateSelfProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientUpdateSelfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.UpdateSelfProfile(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		case usecase.ErrInvalidOldPassword:
			response.Error(w, http.StatusBadRequest, "Invalid old password", nil)
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", patient)
}

// GetPatientByMRN looks a patient up by medical record number
// @Summary Find a patient by MRN
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param mrn path string true "Medical Record Number"
// @Success 200 {object} response.Response
// @Router /patients/{mrn} [get]
func (h *PatientHandler) GetPatientByMRN(w http.ResponseWriter, r *http.Request) {
	mrn := mux.Vars(r)["mrn"]

	patient, err := h.patientUsecase.GetPatientByMRN(r.Context(), mrn)
	if err != nil {
		if err == usecase.ErrPatientNotFound {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

// GetConsultationHistory returns the patient's medical history
// @Summary Get consultation history
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patients/me/consultations [get]
func (h *PatientHandler) GetConsultationHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.patientUsecase.GetConsultationHistory(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get consultation history")
		return
	}

	response.Success(w, http.StatusOK, "Consultation history retrieved successfully", records)
}

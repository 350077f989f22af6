package handler

import (
	"net/http"

	"clinic-booking-system/internal/usecase"
	"clinic-booking-system/pkg/response"
)

type AnalyticsHandler struct {
	analyticsUsecase usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(analyticsUsecase usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUsecase: analyticsUsecase,
	}
}

// GetDoctorUtilization reports one doctor's booked vs offered capacity
// @Summary Get doctor utilization
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param doctorId path string true "Doctor ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /analytics/doctors/{doctorId}/utilization [get]
func (h *AnalyticsHandler) GetDoctorUtilization(w http.ResponseWriter, r *http.Request) {
	doctorID, err := doctorIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	query := r.URL.Query()
	utilization, err := h.analyticsUsecase.GetDoctorUtilization(r.Context(), doctorID, query.Get("from"), query.Get("to"))
	if err != nil {
		h.writeAnalyticsError(w, err, "Failed to get doctor utilization")
		return
	}

	response.Success(w, http.StatusOK, "Utilization retrieved successfully", utilization)
}

// GetUtilizationReport reports utilization for every doctor
// @Summary Get clinic utilization report
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /analytics/utilization [get]
func (h *AnalyticsHandler) GetUtilizationReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	report, err := h.analyticsUsecase.GetUtilizationReport(r.Context(), query.Get("from"), query.Get("to"))
	if err != nil {
		h.writeAnalyticsError(w, err, "Failed to get utilization report")
		return
	}

	response.Success(w, http.StatusOK, "Utilization report retrieved successfully", report)
}

func (h *AnalyticsHandler) writeAnalyticsError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrInvalidDateFormat:
		response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
	case usecase.ErrInvalidDateRange:
		response.Error(w, http.StatusBadRequest, "From date must not be after to date", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

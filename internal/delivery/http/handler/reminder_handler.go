package handler

import (
	"net/http"
	"strconv"

	"clinic-booking-system/internal/service"
	"clinic-booking-system/pkg/response"
)

const defaultReminderDaysBefore = 1

type ReminderHandler struct {
	reminderService *service.ReminderService
}

func NewReminderHandler(reminderService *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
	}
}

// RunReminders sends reminders for upcoming appointments
// @Summary Run appointment reminders
// @Tags Reminders
// @Security BearerAuth
// @Produce json
// @Param days_before query int false "Days ahead to remind for (default 1)"
// @Success 200 {object} response.Response
// @Router /reminders/run [post]
func (h *ReminderHandler) RunReminders(w http.ResponseWriter, r *http.Request) {
	daysBefore := defaultReminderDaysBefore
	if raw := r.URL.Query().Get("days_before"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(w, http.StatusBadRequest, "Invalid days_before", nil)
			return
		}
		daysBefore = parsed
	}

	sent, err := h.reminderService.SendUpcomingReminders(r.Context(), daysBefore)
	if err != nil {
		response.InternalServerError(w, "Failed to run reminders")
		return
	}

	response.Success(w, http.StatusOK, "Reminders sent", map[string]int{"sent": sent})
}

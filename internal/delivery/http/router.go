package http

import (
	"net/http"

	"clinic-booking-system/internal/delivery/http/handler"
	"clinic-booking-system/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	scheduleHandler    *handler.ScheduleHandler
	doctorHandler      *handler.DoctorHandler
	patientHandler     *handler.PatientHandler
	analyticsHandler   *handler.AnalyticsHandler
	auditLogHandler    *handler.AuditLogHandler
	reminderHandler    *handler.ReminderHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	scheduleHandler *handler.ScheduleHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	analyticsHandler *handler.AnalyticsHandler,
	auditLogHandler *handler.AuditLogHandler,
	reminderHandler *handler.ReminderHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		scheduleHandler:    scheduleHandler,
		doctorHandler:      doctorHandler,
		patientHandler:     patientHandler,
		analyticsHandler:   analyticsHandler,
		auditLogHandler:    auditLogHandler,
		reminderHandler:    reminderHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctor directory (any authenticated user)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{doctorId}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{doctorId}/availability", r.appointmentHandler.GetAvailability).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{doctorId}/schedule", r.scheduleHandler.GetWeeklySchedule).Methods(http.MethodGet)

	// Patient routes
	patient := api.PathPrefix("").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/appointments", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/emergency", r.appointmentHandler.BookEmergency).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{id}", r.appointmentHandler.CancelAppointment).Methods(http.MethodDelete)
	patient.HandleFunc("/patients/me", r.patientHandler.GetSelfProfile).Methods(http.MethodGet)
	patient.HandleFunc("/patients/me", r.patientHandler.UpdateSelfProfile).Methods(http.MethodPut)
	patient.HandleFunc("/patients/me/consultations", r.patientHandler.GetConsultationHistory).Methods(http.MethodGet)

	// Doctor routes
	doctor := api.PathPrefix("").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/appointments/{id}/complete", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPut)
	doctor.HandleFunc("/doctors/me/appointments", r.appointmentHandler.GetDoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/doctors/me", r.doctorHandler.UpdateSelfProfile).Methods(http.MethodPut)

	// Doctor day view (doctor or admin)
	dayView := api.PathPrefix("").Subrouter()
	dayView.Use(r.authMiddleware.Authenticate)
	dayView.Use(middleware.RequireAdminOrDoctor)
	dayView.HandleFunc("/doctors/{doctorId}/schedule/day", r.scheduleHandler.GetDaySchedule).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{doctorId}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/schedule/working-hours", r.scheduleHandler.SetWorkingHours).Methods(http.MethodPut)
	admin.HandleFunc("/schedule/breaks", r.scheduleHandler.AddBreak).Methods(http.MethodPost)
	admin.HandleFunc("/schedule/breaks/{id}", r.scheduleHandler.RemoveBreak).Methods(http.MethodDelete)
	admin.HandleFunc("/schedule/leaves", r.scheduleHandler.MarkLeave).Methods(http.MethodPost)
	admin.HandleFunc("/schedule/leaves/{doctorId}", r.scheduleHandler.CancelLeave).Methods(http.MethodDelete)
	admin.HandleFunc("/analytics/utilization", r.analyticsHandler.GetUtilizationReport).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/doctors/{doctorId}/utilization", r.analyticsHandler.GetDoctorUtilization).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{mrn}", r.patientHandler.GetPatientByMRN).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetRecentAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/reminders/run", r.reminderHandler.RunReminders).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

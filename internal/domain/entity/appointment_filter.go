package entity

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	StartAt string            // Format: YYYY-MM-DD
	EndAt   string            // Format: YYYY-MM-DD
	Status  AppointmentStatus // Optional status filter
}

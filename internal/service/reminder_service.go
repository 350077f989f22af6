package service

import (
	"context"
	"time"

	"clinic-booking-system/internal/domain/entity"
	"clinic-booking-system/internal/scheduling"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReminderService emits reminders for upcoming scheduled appointments.
// Delivery is a structured log entry; wiring an actual mail/SMS sender
// sits behind this boundary.
type ReminderService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewReminderService(db *gorm.DB, log *logrus.Logger) *ReminderService {
	return &ReminderService{db: db, log: log}
}

// SendUpcomingReminders finds every appointment still in scheduled
// status daysBefore days from now and logs one reminder per patient.
// Returns the number of reminders sent.
func (s *ReminderService) SendUpcomingReminders(ctx context.Context, daysBefore int) (int, error) {
	if daysBefore < 0 {
		daysBefore = 1
	}
	targetDate := time.Now().AddDate(0, 0, daysBefore)

	var appointments []entity.Appointment
	err := s.db.WithContext(ctx).
		Preload("Patient.User").
		Preload("Doctor.User").
		Where("appointment_date = ? AND status = ?",
			scheduling.DateKey(targetDate), entity.AppointmentStatusScheduled).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		s.log.Warnf("Failed to load appointments for reminders on %s: %+v", scheduling.DateKey(targetDate), err)
		return 0, err
	}

	for _, appointment := range appointments {
		s.log.WithFields(logrus.Fields{
			"appointment_id": appointment.ID,
			"patient":        appointment.Patient.User.FullName,
			"patient_mrn":    appointment.Patient.MRN,
			"doctor":         appointment.Doctor.User.FullName,
			"date":           scheduling.DateKey(appointment.Date),
			"time":           appointment.StartTime,
		}).Info("Appointment reminder")
	}

	s.log.Infof("Sent %d appointment reminders for %s", len(appointments), scheduling.DateKey(targetDate))
	return len(appointments), nil
}

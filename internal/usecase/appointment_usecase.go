package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-booking-system/internal/converter"
	"clinic-booking-system/internal/delivery/dto"
	"clinic-booking-system/internal/delivery/http/middleware"
	"clinic-booking-system/internal/domain/entity"
	"clinic-booking-system/internal/domain/repository"
	"clinic-booking-system/internal/scheduling"
	"clinic-booking-system/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentNotOwned = errors.New("appointment does not belong to you")
	ErrAppointmentFinal    = errors.New("appointment is already completed or cancelled")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorUnavailable   = errors.New("doctor is not available on this date")
	ErrNoSlotAvailable     = errors.New("no free slot available")
	ErrSchedulingConflict  = errors.New("slot was taken by a concurrent booking")
)

// SchedulingOptions tunes the slot search. Zero values fall back to
// the defaults below.
type SchedulingOptions struct {
	SlotDuration      time.Duration
	SearchStep        time.Duration
	SearchMaxAttempts int
	EmergencyHorizon  time.Duration
}

const (
	defaultSlotDuration      = 30 * time.Minute
	defaultSearchStep        = 30 * time.Minute
	defaultSearchMaxAttempts = 10
	defaultEmergencyHorizon  = 4 * time.Hour
)

func (o SchedulingOptions) withDefaults() SchedulingOptions {
	if o.SlotDuration <= 0 {
		o.SlotDuration = defaultSlotDuration
	}
	if o.SearchStep <= 0 {
		o.SearchStep = defaultSearchStep
	}
	if o.SearchMaxAttempts <= 0 {
		o.SearchMaxAttempts = defaultSearchMaxAttempts
	}
	if o.EmergencyHorizon <= 0 {
		o.EmergencyHorizon = defaultEmergencyHorizon
	}
	return o
}

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	BookEmergency(ctx context.Context, req *dto.BookEmergencyRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uint64) error
	CompleteAppointment(ctx context.Context, appointmentID uint64, req *dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error)
}

type appointmentUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	opts               SchedulingOptions
	appointmentRepo    repository.AppointmentRepository
	consultationRepo   repository.ConsultationRecordRepository
	workingHoursRepo   repository.DoctorWorkingHoursRepository
	breakRepo          repository.DoctorBreakRepository
	leaveRepo          repository.DoctorLeaveRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	dayLock            *service.DoctorDayLock
	availabilityCache  *service.AvailabilityCache
	auditService       service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	opts SchedulingOptions,
	appointmentRepo repository.AppointmentRepository,
	consultationRepo repository.ConsultationRecordRepository,
	workingHoursRepo repository.DoctorWorkingHoursRepository,
	breakRepo repository.DoctorBreakRepository,
	leaveRepo repository.DoctorLeaveRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	dayLock *service.DoctorDayLock,
	availabilityCache *service.AvailabilityCache,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                 db,
		log:                log,
		opts:               opts.withDefaults(),
		appointmentRepo:    appointmentRepo,
		consultationRepo:   consultationRepo,
		workingHoursRepo:   workingHoursRepo,
		breakRepo:          breakRepo,
		leaveRepo:          leaveRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		dayLock:            dayLock,
		availabilityCache:  availabilityCache,
		auditService:       auditService,
	}
}

// BookAppointment books the preferred slot or the next free one after
// it, never earlier the same day.
//
// Flow:
// 1. Parse and validate the requested date and time
// 2. Validate patient and doctor exist
// 3. Take the per-(doctor, day) lock so check and insert are atomic
// 4. Build the doctor's calendar for the date; reject leave / no hours
// 5. Forward-search from the preferred time over calendar + conflicts
// 6. Insert inside a transaction together with the audit entry
// 7. Invalidate the cached availability for that doctor-day
func (u *appointmentUsecase) BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	date, err := scheduling.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	preferred, err := scheduling.ParseClock(req.PreferredTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	duration := u.opts.SlotDuration
	if req.DurationMinutes > 0 {
		duration = time.Duration(req.DurationMinutes) * time.Minute
	}

	patient, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	dateKey := scheduling.DateKey(date)

	// Critical section: nothing may book this doctor-day between the
	// conflict scan and the insert.
	unlock := u.dayLock.Lock(req.DoctorID, dateKey)
	defer unlock()

	cal, err := u.dayCalendar(u.db.WithContext(ctx), req.DoctorID, date)
	if err != nil {
		return nil, err
	}
	if _, hasHours := cal.Hours[date.Weekday()]; !hasHours || cal.OnLeave(date) {
		return nil, ErrDoctorUnavailable
	}

	booked, err := u.bookedIntervals(ctx, req.DoctorID, date)
	if err != nil {
		return nil, err
	}

	free := func(candidate scheduling.Interval) bool {
		return cal.FitsSlot(candidate) && !scheduling.HasConflict(candidate, booked)
	}

	start, found := scheduling.NextSlot(date, preferred, duration, u.opts.SearchStep, u.opts.SearchMaxAttempts, free)
	if !found {
		return nil, ErrNoSlotAvailable
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		Date:            date,
		StartTime:       start.String(),
		DurationMinutes: int(duration / time.Minute),
		Status:          entity.AppointmentStatusScheduled,
	}

	if err := u.insertAppointment(ctx, patientID, appointment, entity.AuditActionAppointmentBook); err != nil {
		return nil, err
	}

	u.availabilityCache.Invalidate(ctx, req.DoctorID, dateKey)

	u.log.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"doctor_id":      req.DoctorID,
		"date":           dateKey,
		"start_time":     appointment.StartTime,
	}).Info("Appointment booked")

	return u.reload(ctx, appointment)
}

// BookEmergency books the earliest emergency slot from now within the
// configured horizon. Working hours, breaks and leave are deliberately
// ignored; only collisions with existing appointments matter.
func (u *appointmentUsecase) BookEmergency(ctx context.Context, req *dto.BookEmergencyRequest) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	patient, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	now := time.Now()
	date := now
	from := scheduling.ClockOf(now)
	dateKey := scheduling.DateKey(date)

	unlock := u.dayLock.Lock(req.DoctorID, dateKey)
	defer unlock()

	booked, err := u.bookedIntervals(ctx, req.DoctorID, date)
	if err != nil {
		return nil, err
	}

	start, found := scheduling.NextEmergencySlot(date, from, u.opts.SlotDuration, u.opts.SearchStep, u.opts.EmergencyHorizon, booked)
	if !found {
		return nil, ErrNoSlotAvailable
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		Date:            date,
		StartTime:       start.String(),
		DurationMinutes: int(u.opts.SlotDuration / time.Minute),
		Status:          entity.AppointmentStatusEmergency,
	}

	if err := u.insertAppointment(ctx, patientID, appointment, entity.AuditActionAppointmentEmergency); err != nil {
		return nil, err
	}

	u.availabilityCache.Invalidate(ctx, req.DoctorID, dateKey)

	u.log.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"doctor_id":      req.DoctorID,
		"date":           dateKey,
		"start_time":     appointment.StartTime,
	}).Info("Emergency appointment booked")

	return u.reload(ctx, appointment)
}

// CancelAppointment cancels the patient's own appointment. The guarded
// update refuses terminal appointments; the freed slot becomes
// bookable again because cancelled rows are excluded from conflicts.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID uint64) error {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return ErrAppointmentNotOwned
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.Cancel(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %d: %+v", appointmentID, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentFinal
	}

	if err := u.auditService.Record(tx, &patientID, entity.AuditActionAppointmentCancel, entity.JSON{
		"appointment_id": appointmentID,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.availabilityCache.Invalidate(ctx, appointment.DoctorID, scheduling.DateKey(appointment.Date))

	u.log.WithFields(logrus.Fields{
		"appointment_id": appointmentID,
		"doctor_id":      appointment.DoctorID,
	}).Info("Appointment cancelled")

	return nil
}

// CompleteAppointment finishes a consultation: the guarded update
// moves the appointment to completed and an immutable consultation
// record is appended in the same transaction.
func (u *appointmentUsecase) CompleteAppointment(ctx context.Context, appointmentID uint64, req *dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrAppointmentNotOwned
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.Complete(tx, appointmentID, req.Diagnosis, req.Prescription, req.Notes)
	if err != nil {
		u.log.Warnf("Failed to complete appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAppointmentFinal
	}

	record := &entity.ConsultationRecord{
		AppointmentID: appointmentID,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
		Notes:         req.Notes,
	}
	if err := u.consultationRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create consultation record for appointment %d: %+v", appointmentID, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &doctorID, entity.AuditActionAppointmentComplete, entity.JSON{
		"appointment_id": appointmentID,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"appointment_id": appointmentID,
		"doctor_id":      doctorID,
	}).Info("Appointment completed")

	response, err := u.reload(ctx, appointment)
	if err != nil {
		return nil, err
	}
	response.Consultation = converter.ConsultationRecordToResponse(record)
	return response, nil
}

// GetMyAppointments returns the logged-in patient's appointments,
// optionally filtered by date range and status.
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetDoctorAppointments returns the logged-in doctor's appointments,
// optionally filtered by date range and status.
func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetAvailability lists the doctor's free slots on a date, cached per
// doctor-day. A doctor with no hours that weekday, or on leave, has an
// empty slot list rather than an error.
func (u *appointmentUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error) {
	day, err := scheduling.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	dateKey := scheduling.DateKey(day)

	if slots, hit := u.availabilityCache.Get(ctx, doctorID, dateKey); hit {
		return availabilityResponse(doctorID, dateKey, u.opts.SlotDuration, slots), nil
	}

	cal, err := u.dayCalendar(u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		return nil, err
	}

	booked, err := u.bookedIntervals(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}

	starts := scheduling.FreeSlots(cal, day, booked, u.opts.SlotDuration)
	slots := make([]string, len(starts))
	for i, s := range starts {
		slots[i] = s.String()
	}

	u.availabilityCache.Set(ctx, doctorID, dateKey, slots)

	return availabilityResponse(doctorID, dateKey, u.opts.SlotDuration, slots), nil
}

// insertAppointment creates the appointment and its audit entry in one
// transaction. A unique index violation on the doctor-slot index means
// a concurrent writer won the slot despite the day lock (for example a
// second process instance) and maps to ErrSchedulingConflict.
func (u *appointmentUsecase) insertAppointment(ctx context.Context, actorID uuid.UUID, appointment *entity.Appointment, action string) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "uidx_appointments_doctor_slot") {
			return ErrSchedulingConflict
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return err
	}

	if err := u.auditService.Record(tx, &actorID, action, entity.JSON{
		"appointment_id": appointment.ID,
		"doctor_id":      appointment.DoctorID.String(),
		"date":           scheduling.DateKey(appointment.Date),
		"start_time":     appointment.StartTime,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// dayCalendar assembles the calendar slice relevant to a single date:
// that weekday's working window and breaks plus a leave marker.
func (u *appointmentUsecase) dayCalendar(db *gorm.DB, doctorID uuid.UUID, date time.Time) (scheduling.WeekCalendar, error) {
	cal := scheduling.NewWeekCalendar()
	weekday := date.Weekday()

	hours, err := u.workingHoursRepo.FindByDoctorAndWeekday(db, doctorID, weekday)
	if err != nil {
		u.log.Warnf("Failed to find working hours for doctor %s: %+v", doctorID, err)
		return cal, err
	}
	if hours != nil {
		window, err := parseWindow(hours.StartTime, hours.EndTime)
		if err != nil {
			return cal, err
		}
		cal.SetHours(weekday, window)
	}

	breaks, err := u.breakRepo.FindByDoctorAndWeekday(db, doctorID, weekday)
	if err != nil {
		u.log.Warnf("Failed to find breaks for doctor %s: %+v", doctorID, err)
		return cal, err
	}
	for _, brk := range breaks {
		window, err := parseWindow(brk.BreakStart, brk.BreakEnd)
		if err != nil {
			return cal, err
		}
		cal.AddBreak(weekday, window)
	}

	onLeave, err := u.leaveRepo.Exists(db, doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to check leave for doctor %s: %+v", doctorID, err)
		return cal, err
	}
	if onLeave {
		cal.AddLeave(date)
	}

	return cal, nil
}

func (u *appointmentUsecase) bookedIntervals(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]scheduling.Interval, error) {
	appointments, err := u.appointmentRepo.FindActiveByDoctorAndDate(u.db.WithContext(ctx), doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	intervals := make([]scheduling.Interval, 0, len(appointments))
	for _, appointment := range appointments {
		iv, err := appointment.Interval()
		if err != nil {
			u.log.Warnf("Skipping malformed appointment %d: %+v", appointment.ID, err)
			continue
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

func (u *appointmentUsecase) reload(ctx context.Context, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %d: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

func parseWindow(start, end string) (scheduling.Window, error) {
	s, err := scheduling.ParseClock(start)
	if err != nil {
		return scheduling.Window{}, ErrInvalidTimeFormat
	}
	e, err := scheduling.ParseClock(end)
	if err != nil {
		return scheduling.Window{}, ErrInvalidTimeFormat
	}
	return scheduling.Window{Start: s, End: e}, nil
}

func availabilityResponse(doctorID uuid.UUID, dateKey string, slotDuration time.Duration, slots []string) *dto.AvailabilityResponse {
	return &dto.AvailabilityResponse{
		DoctorID:            doctorID,
		Date:                dateKey,
		SlotDurationMinutes: int(slotDuration / time.Minute),
		Slots:               slots,
		Total:               len(slots),
	}
}

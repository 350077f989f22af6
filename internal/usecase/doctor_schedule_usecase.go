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
	ErrInvalidTimeFormat  = errors.New("invalid time format, use HH:MM")
	ErrInvalidWindow      = errors.New("start time must be before end time")
	ErrInvalidWeekdayName = errors.New("invalid weekday name")
	ErrLeaveExists        = errors.New("leave already marked for this date")
	ErrLeaveNotFound      = errors.New("leave not found")
	ErrBreakNotFound      = errors.New("break not found")
)

type DoctorScheduleUsecase interface {
	SetWorkingHours(ctx context.Context, req *dto.SetWorkingHoursRequest) (*dto.WorkingHoursResponse, error)
	AddBreak(ctx context.Context, req *dto.AddBreakRequest) (*dto.BreakResponse, error)
	RemoveBreak(ctx context.Context, breakID int) error
	MarkLeave(ctx context.Context, req *dto.MarkLeaveRequest) (*dto.LeaveResponse, error)
	CancelLeave(ctx context.Context, doctorID uuid.UUID, date string) error
	GetWeeklySchedule(ctx context.Context, doctorID uuid.UUID) (*dto.WeeklyScheduleResponse, error)
	GetDaySchedule(ctx context.Context, doctorID uuid.UUID, date string) (*dto.DayScheduleResponse, error)
}

type doctorScheduleUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	workingHoursRepo  repository.DoctorWorkingHoursRepository
	breakRepo         repository.DoctorBreakRepository
	leaveRepo         repository.DoctorLeaveRepository
	doctorProfileRepo repository.DoctorProfileRepository
	appointmentRepo   repository.AppointmentRepository
	auditService      service.AuditService
}

func NewDoctorScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	workingHoursRepo repository.DoctorWorkingHoursRepository,
	breakRepo repository.DoctorBreakRepository,
	leaveRepo repository.DoctorLeaveRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) DoctorScheduleUsecase {
	return &doctorScheduleUsecase{
		db:                db,
		log:               log,
		workingHoursRepo:  workingHoursRepo,
		breakRepo:         breakRepo,
		leaveRepo:         leaveRepo,
		doctorProfileRepo: doctorProfileRepo,
		appointmentRepo:   appointmentRepo,
		auditService:      auditService,
	}
}

// SetWorkingHours replaces the doctor's working window for a weekday.
// Delete-then-create inside one transaction keeps the one-window-per-
// weekday invariant without an upsert.
func (u *doctorScheduleUsecase) SetWorkingHours(ctx context.Context, req *dto.SetWorkingHoursRequest) (*dto.WorkingHoursResponse, error) {
	weekday, window, err := u.parseDayWindow(req.Weekday, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if err := u.requireDoctor(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.workingHoursRepo.DeleteByDoctorAndWeekday(tx, req.DoctorID, weekday); err != nil {
		u.log.Warnf("Failed to clear working hours for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}

	hours := &entity.DoctorWorkingHours{
		DoctorID:  req.DoctorID,
		Weekday:   int(weekday),
		StartTime: window.Start.String(),
		EndTime:   window.End.String(),
	}
	if err := u.workingHoursRepo.Create(tx, hours); err != nil {
		u.log.Warnf("Failed to create working hours for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &actorID, entity.AuditActionWorkingHoursSet, entity.JSON{
		"doctor_id":  req.DoctorID.String(),
		"weekday":    req.Weekday,
		"start_time": hours.StartTime,
		"end_time":   hours.EndTime,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.WorkingHoursToResponse(hours), nil
}

// AddBreak adds a recurring break for a weekday. Breaks accumulate; a
// break outside the working window is accepted and simply never
// blocks a slot.
func (u *doctorScheduleUsecase) AddBreak(ctx context.Context, req *dto.AddBreakRequest) (*dto.BreakResponse, error) {
	weekday, window, err := u.parseDayWindow(req.Weekday, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if err := u.requireDoctor(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	brk := &entity.DoctorBreak{
		DoctorID:   req.DoctorID,
		Weekday:    int(weekday),
		BreakStart: window.Start.String(),
		BreakEnd:   window.End.String(),
	}
	if err := u.breakRepo.Create(tx, brk); err != nil {
		u.log.Warnf("Failed to create break for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &actorID, entity.AuditActionBreakAdd, entity.JSON{
		"doctor_id":   req.DoctorID.String(),
		"weekday":     req.Weekday,
		"break_start": brk.BreakStart,
		"break_end":   brk.BreakEnd,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.BreakToResponse(brk), nil
}

// RemoveBreak deletes a recurring break by its id.
func (u *doctorScheduleUsecase) RemoveBreak(ctx context.Context, breakID int) error {
	actorID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.breakRepo.Delete(tx, breakID)
	if err != nil {
		u.log.Warnf("Failed to delete break %d: %+v", breakID, err)
		return err
	}
	if rows == 0 {
		return ErrBreakNotFound
	}

	if err := u.auditService.Record(tx, &actorID, entity.AuditActionBreakRemove, entity.JSON{
		"break_id": breakID,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// MarkLeave marks a whole calendar date unavailable for the doctor.
func (u *doctorScheduleUsecase) MarkLeave(ctx context.Context, req *dto.MarkLeaveRequest) (*dto.LeaveResponse, error) {
	date, err := scheduling.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	if err := u.requireDoctor(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	leave := &entity.DoctorLeave{
		DoctorID:  req.DoctorID,
		LeaveDate: date,
		Reason:    req.Reason,
	}
	if err := u.leaveRepo.Create(tx, leave); err != nil {
		if isDuplicateKeyError(err, "uidx_doctor_leave_date") {
			return nil, ErrLeaveExists
		}
		u.log.Warnf("Failed to create leave for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &actorID, entity.AuditActionLeaveMark, entity.JSON{
		"doctor_id": req.DoctorID.String(),
		"date":      req.Date,
		"reason":    req.Reason,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LeaveToResponse(leave), nil
}

// CancelLeave removes a marked leave so the date becomes bookable
// again.
func (u *doctorScheduleUsecase) CancelLeave(ctx context.Context, doctorID uuid.UUID, date string) error {
	day, err := scheduling.ParseDate(date)
	if err != nil {
		return ErrInvalidDateFormat
	}

	if err := u.requireDoctor(ctx, doctorID); err != nil {
		return err
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.leaveRepo.Delete(tx, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to delete leave for doctor %s: %+v", doctorID, err)
		return err
	}
	if rows == 0 {
		return ErrLeaveNotFound
	}

	if err := u.auditService.Record(tx, &actorID, entity.AuditActionLeaveCancel, entity.JSON{
		"doctor_id": doctorID.String(),
		"date":      date,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// GetWeeklySchedule returns the doctor's full recurring schedule plus
// marked leave dates.
func (u *doctorScheduleUsecase) GetWeeklySchedule(ctx context.Context, doctorID uuid.UUID) (*dto.WeeklyScheduleResponse, error) {
	if err := u.requireDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	hours, err := u.workingHoursRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find working hours for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	breaks, err := u.breakRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find breaks for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	leaves, err := u.leaveRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find leaves for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.WeeklyScheduleResponse{
		DoctorID:     doctorID,
		WorkingHours: converter.WorkingHoursToResponses(hours),
		Breaks:       converter.BreaksToResponses(breaks),
		Leaves:       converter.LeavesToResponses(leaves),
	}, nil
}

// GetDaySchedule returns one concrete date: the effective working
// window, that weekday's breaks, leave state and booked appointments.
func (u *doctorScheduleUsecase) GetDaySchedule(ctx context.Context, doctorID uuid.UUID, date string) (*dto.DayScheduleResponse, error) {
	day, err := scheduling.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	if err := u.requireDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	weekday := day.Weekday()

	hours, err := u.workingHoursRepo.FindByDoctorAndWeekday(db, doctorID, weekday)
	if err != nil {
		u.log.Warnf("Failed to find working hours for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	breaks, err := u.breakRepo.FindByDoctorAndWeekday(db, doctorID, weekday)
	if err != nil {
		u.log.Warnf("Failed to find breaks for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	onLeave, err := u.leaveRepo.Exists(db, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to check leave for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindActiveByDoctorAndDate(db, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.DayScheduleResponse{
		DoctorID:     doctorID,
		Date:         scheduling.DateKey(day),
		OnLeave:      onLeave,
		WorkingHours: converter.WorkingHoursToResponse(hours),
		Breaks:       converter.BreaksToResponses(breaks),
		Appointments: converter.AppointmentsToResponses(appointments),
	}, nil
}

func (u *doctorScheduleUsecase) requireDoctor(ctx context.Context, doctorID uuid.UUID) error {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}
	return nil
}

func (u *doctorScheduleUsecase) parseDayWindow(weekdayName, start, end string) (time.Weekday, scheduling.Window, error) {
	weekday, err := scheduling.ParseWeekday(weekdayName)
	if err != nil {
		return 0, scheduling.Window{}, ErrInvalidWeekdayName
	}

	window, err := parseWindow(start, end)
	if err != nil {
		return 0, scheduling.Window{}, err
	}
	if !window.Start.Before(window.End) {
		return 0, scheduling.Window{}, ErrInvalidWindow
	}
	return weekday, window, nil
}

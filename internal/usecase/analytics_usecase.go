package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-booking-system/internal/converter"
	"clinic-booking-system/internal/delivery/dto"
	"clinic-booking-system/internal/domain/entity"
	"clinic-booking-system/internal/domain/repository"
	"clinic-booking-system/internal/scheduling"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidDateRange = errors.New("from date must not be after to date")

// Utilization levels
const (
	UtilizationHigh   = "high"
	UtilizationMedium = "medium"
	UtilizationLow    = "low"
)

var (
	utilizationHighThreshold   = decimal.NewFromInt(70)
	utilizationMediumThreshold = decimal.NewFromInt(40)
)

type AnalyticsUsecase interface {
	GetDoctorUtilization(ctx context.Context, doctorID uuid.UUID, from, to string) (*dto.DoctorUtilizationResponse, error)
	GetUtilizationReport(ctx context.Context, from, to string) (*dto.UtilizationReportResponse, error)
}

type analyticsUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	appointmentRepo   repository.AppointmentRepository
	workingHoursRepo  repository.DoctorWorkingHoursRepository
	breakRepo         repository.DoctorBreakRepository
	leaveRepo         repository.DoctorLeaveRepository
	doctorProfileRepo repository.DoctorProfileRepository
}

func NewAnalyticsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	workingHoursRepo repository.DoctorWorkingHoursRepository,
	breakRepo repository.DoctorBreakRepository,
	leaveRepo repository.DoctorLeaveRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
) AnalyticsUsecase {
	return &analyticsUsecase{
		db:                db,
		log:               log,
		appointmentRepo:   appointmentRepo,
		workingHoursRepo:  workingHoursRepo,
		breakRepo:         breakRepo,
		leaveRepo:         leaveRepo,
		doctorProfileRepo: doctorProfileRepo,
	}
}

// GetDoctorUtilization reports how much of one doctor's offered
// capacity in the range was actually booked. Capacity counts working
// windows minus breaks and skips leave days; booked minutes count
// scheduled and completed appointments, not cancelled ones.
func (u *analyticsUsecase) GetDoctorUtilization(ctx context.Context, doctorID uuid.UUID, from, to string) (*dto.DoctorUtilizationResponse, error) {
	start, end, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	response, err := u.utilizationFor(ctx, profile, start, end)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetUtilizationReport runs the utilization computation for every
// doctor in the clinic.
func (u *analyticsUsecase) GetUtilizationReport(ctx context.Context, from, to string) (*dto.UtilizationReportResponse, error) {
	start, end, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}

	profiles, err := u.doctorProfileRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	doctors := make([]dto.DoctorUtilizationResponse, 0, len(profiles))
	for i := range profiles {
		response, err := u.utilizationFor(ctx, &profiles[i], start, end)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, *response)
	}

	return &dto.UtilizationReportResponse{
		From:    scheduling.DateKey(start),
		To:      scheduling.DateKey(end),
		Doctors: doctors,
		Total:   len(doctors),
	}, nil
}

func (u *analyticsUsecase) utilizationFor(ctx context.Context, profile *entity.DoctorProfile, start, end time.Time) (*dto.DoctorUtilizationResponse, error) {
	db := u.db.WithContext(ctx)
	doctorID := profile.UserID

	count, bookedMinutes, err := u.appointmentRepo.BookedLoad(db, doctorID, start, end)
	if err != nil {
		u.log.Warnf("Failed to compute booked load for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	availableMinutes, err := u.availableMinutes(db, doctorID, start, end)
	if err != nil {
		return nil, err
	}

	rate := decimal.Zero
	if availableMinutes > 0 {
		rate = decimal.NewFromInt(bookedMinutes).
			Div(decimal.NewFromInt(availableMinutes)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return &dto.DoctorUtilizationResponse{
		DoctorID:         doctorID,
		Doctor:           converter.DoctorProfileToResponse(profile),
		From:             scheduling.DateKey(start),
		To:               scheduling.DateKey(end),
		AppointmentCount: count,
		BookedMinutes:    bookedMinutes,
		AvailableMinutes: availableMinutes,
		UtilizationRate:  rate.StringFixed(2),
		UtilizationLevel: utilizationLevel(rate),
	}, nil
}

// availableMinutes walks every date in the range, adding the working
// window length for that weekday minus any break overlap, skipping
// leave days entirely.
func (u *analyticsUsecase) availableMinutes(db *gorm.DB, doctorID uuid.UUID, start, end time.Time) (int64, error) {
	allHours, err := u.workingHoursRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find working hours for doctor %s: %+v", doctorID, err)
		return 0, err
	}

	allBreaks, err := u.breakRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find breaks for doctor %s: %+v", doctorID, err)
		return 0, err
	}

	leaves, err := u.leaveRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find leaves for doctor %s: %+v", doctorID, err)
		return 0, err
	}

	hoursByDay := make(map[time.Weekday]scheduling.Window)
	for _, h := range allHours {
		window, err := parseWindow(h.StartTime, h.EndTime)
		if err != nil {
			return 0, err
		}
		hoursByDay[h.Day()] = window
	}

	breaksByDay := make(map[time.Weekday][]scheduling.Window)
	for _, b := range allBreaks {
		window, err := parseWindow(b.BreakStart, b.BreakEnd)
		if err != nil {
			return 0, err
		}
		breaksByDay[b.Day()] = append(breaksByDay[b.Day()], window)
	}

	leaveDays := make(map[string]struct{}, len(leaves))
	for _, l := range leaves {
		leaveDays[scheduling.DateKey(l.LeaveDate)] = struct{}{}
	}

	var minutes int64
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if _, onLeave := leaveDays[scheduling.DateKey(day)]; onLeave {
			continue
		}
		window, ok := hoursByDay[day.Weekday()]
		if !ok {
			continue
		}

		dayMinutes := int64(window.End - window.Start)
		for _, brk := range breaksByDay[day.Weekday()] {
			dayMinutes -= overlapMinutes(window, brk)
		}
		if dayMinutes > 0 {
			minutes += dayMinutes
		}
	}
	return minutes, nil
}

func overlapMinutes(a, b scheduling.Window) int64 {
	lo := a.Start
	if b.Start > lo {
		lo = b.Start
	}
	hi := a.End
	if b.End < hi {
		hi = b.End
	}
	if hi <= lo {
		return 0
	}
	return int64(hi - lo)
}

func utilizationLevel(rate decimal.Decimal) string {
	switch {
	case rate.GreaterThan(utilizationHighThreshold):
		return UtilizationHigh
	case rate.GreaterThan(utilizationMediumThreshold):
		return UtilizationMedium
	default:
		return UtilizationLow
	}
}

func parseDateRange(from, to string) (time.Time, time.Time, error) {
	start, err := scheduling.ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	end, err := scheduling.ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}

package usecase

import (
	"context"
	"errors"

	"clinic-booking-system/internal/converter"
	"clinic-booking-system/internal/delivery/dto"
	"clinic-booking-system/internal/delivery/http/middleware"
	"clinic-booking-system/internal/domain/entity"
	"clinic-booking-system/internal/domain/repository"
	"clinic-booking-system/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type PatientProfileUsecase interface {
	GetSelfProfile(ctx context.Context) (*dto.PatientResponse, error)
	UpdateSelfProfile(ctx context.Context, req *dto.PatientUpdateSelfRequest) (*dto.PatientResponse, error)
	GetConsultationHistory(ctx context.Context) ([]dto.ConsultationRecordResponse, error)
	GetPatientByMRN(ctx context.Context, mrn string) (*dto.PatientResponse, error)
}

type patientProfileUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	patientProfileRepo repository.PatientProfileRepository
	consultationRepo   repository.ConsultationRecordRepository
	auditService       service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	consultationRepo repository.ConsultationRecordRepository,
	auditService service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		patientProfileRepo: patientProfileRepo,
		consultationRepo:   consultationRepo,
		auditService:       auditService,
	}
}

func (u *patientProfileUsecase) GetSelfProfile(ctx context.Context) (*dto.PatientResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	db := u.db.WithContext(ctx)

	profile, err := u.patientProfileRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}

	return converter.PatientProfileToResponse(profile, user), nil
}

// UpdateSelfProfile updates the patient's own profile.
//
// Allowed fields: password (with old password verification),
// phone_number, address. The MRN, gender and date of birth are fixed
// clinic records and not patient-editable.
func (u *patientProfileUsecase) UpdateSelfProfile(ctx context.Context, req *dto.PatientUpdateSelfRequest) (*dto.PatientResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}

	updated := false

	if req.Password != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
			return nil, ErrInvalidOldPassword
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashedPassword)
		updated = true
	}

	if req.PhoneNumber != "" {
		profile.PhoneNumber = req.PhoneNumber
		updated = true
	}

	if req.Address != "" {
		profile.Address = req.Address
		updated = true
	}

	if !updated {
		return converter.PatientProfileToResponse(profile, user), nil
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if err := u.patientProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &userID, entity.AuditActionProfileUpdate, entity.JSON{
		"patient_id": userID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientProfileToResponse(profile, user), nil
}

// GetPatientByMRN looks a patient up by medical record number.
func (u *patientProfileUsecase) GetPatientByMRN(ctx context.Context, mrn string) (*dto.PatientResponse, error) {
	profile, err := u.patientProfileRepo.FindByMRN(u.db.WithContext(ctx), mrn)
	if err != nil {
		u.log.Warnf("Failed to find patient by MRN %s: %+v", mrn, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientProfileToResponse(profile, &profile.User), nil
}

// GetConsultationHistory returns the patient's appended medical
// history, newest first.
func (u *patientProfileUsecase) GetConsultationHistory(ctx context.Context) ([]dto.ConsultationRecordResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	records, err := u.consultationRepo.FindByPatientID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find consultation records for patient %s: %+v", userID, err)
		return nil, err
	}

	responses := make([]dto.ConsultationRecordResponse, len(records))
	for i, record := range records {
		responses[i] = *converter.ConsultationRecordToResponse(&record)
	}
	return responses, nil
}

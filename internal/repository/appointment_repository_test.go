package repository

import (
	"testing"
	"time"

	"clinic-booking-system/internal/domain/entity"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock, func() { sqlDB.Close() }
}

func TestFindActiveByDoctorAndDateExcludesCancelled(t *testing.T) {
	db, mock, cleanup := newGormMock(t)
	defer cleanup()
	repo := NewAppointmentRepository()

	doctorID := uuid.New()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "patient_id", "doctor_id", "appointment_date", "start_time", "duration_minutes", "status"}).
		AddRow(1, uuid.New().String(), doctorID.String(), date, "09:00", 30, "scheduled").
		AddRow(2, uuid.New().String(), doctorID.String(), date, "10:30", 30, "emergency")

	mock.ExpectQuery(`SELECT .* FROM "appointments" WHERE doctor_id = \$1 AND appointment_date = \$2 AND status != \$3`).
		WithArgs(doctorID, "2026-03-02", string(entity.AppointmentStatusCancelled)).
		WillReturnRows(rows)

	appointments, err := repo.FindActiveByDoctorAndDate(db, doctorID, date)
	require.NoError(t, err)
	assert.Len(t, appointments, 2)
	assert.Equal(t, "09:00", appointments[0].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelGuardsTerminalStates(t *testing.T) {
	db, mock, cleanup := newGormMock(t)
	defer cleanup()
	repo := NewAppointmentRepository()

	mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Cancel(db, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// Second cancel matches no row: the WHERE status guard filters the
	// already-cancelled record out.
	mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err = repo.Cancel(db, 42)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteGuardsTerminalStates(t *testing.T) {
	db, mock, cleanup := newGormMock(t)
	defer cleanup()
	repo := NewAppointmentRepository()

	mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Complete(db, 7, "flu", "rest", "follow up in a week")
	require.NoError(t, err)
	assert.Zero(t, affected, "completing a terminal appointment changes nothing")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookedLoadAggregates(t *testing.T) {
	db, mock, cleanup := newGormMock(t)
	defer cleanup()
	repo := NewAppointmentRepository()

	doctorID := uuid.New()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS count, COALESCE\(SUM\(duration_minutes\), 0\) AS minutes FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "minutes"}).AddRow(6, 180))

	count, minutes, err := repo.BookedLoad(db, doctorID, start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
	assert.Equal(t, int64(180), minutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

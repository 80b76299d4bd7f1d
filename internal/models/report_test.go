package models_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/models"
)

func newReport(status string) *models.Report {
	now := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
	return &models.Report{
		ID:            uuid.MustParse("9d1f6a34-7b2e-4c5d-8e9f-0a1b2c3d4e5f"),
		ReporterEmail: "a@b.com",
		LicensePlate:  "ABC123",
		PlateState:    "CA",
		VehicleMake:   "Toyota",
		VehicleColor:  "blue",
		Reason:        "72 hours",
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		models.StatusPending,
		models.StatusSubmittedToCity,
		models.StatusResolved,
		models.StatusDismissed,
	} {
		assert.True(t, models.ValidStatus(s), s)
	}
	assert.False(t, models.ValidStatus(""))
	assert.False(t, models.ValidStatus("PENDING"))
	assert.False(t, models.ValidStatus("archived"))
}

func TestReportBeforeCreateDefaultsToPending(t *testing.T) {
	db, mock := dbtest.New(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "reports"`)).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	r := newReport("")
	require.NoError(t, db.Create(r).Error)
	assert.Equal(t, models.StatusPending, r.Status)
}

func TestReportBeforeCreateRejectsUnknownStatus(t *testing.T) {
	db, mock := dbtest.New(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.Create(newReport("archived")).Error
	require.ErrorIs(t, err, models.ErrInvalidStatus)
	assert.Contains(t, err.Error(), `"archived"`)
}

func TestReportBeforeCreateKeepsKnownStatus(t *testing.T) {
	db, mock := dbtest.New(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "reports"`)).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	r := newReport(models.StatusResolved)
	require.NoError(t, db.Create(r).Error)
	assert.Equal(t, models.StatusResolved, r.Status)
}

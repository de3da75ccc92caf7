package services

import (
	"errors"
	"testing"
	"time"

	"fleetdesk/internal/domain/models"
	"fleetdesk/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRecordAll_SkipsFailingDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// only the two healthy drivers reach the upsert
	mock.ExpectExec("INSERT INTO daily_earnings").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO daily_earnings").WillReturnResult(sqlmock.NewResult(2, 1))

	earnings := stubEarnings(2000, 8, models.Driver{})
	earnings.FetchDriver = func(driverID int64) (models.Driver, error) {
		if driverID == 2 {
			return models.Driver{}, errors.New("driver record corrupt")
		}
		return models.Driver{ID: driverID}, nil
	}

	svc := RecorderService{
		Earnings:    earnings,
		DailyRepo:   repositories.DailyEarningsRepository{DB: db},
		ListDrivers: func() ([]int64, error) { return []int64{1, 2, 3}, nil },
	}

	day := time.Date(2025, 3, 9, 0, 0, 0, 0, time.Local)
	recorded, err := svc.RecordAll(day)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if recorded != 2 {
		t.Fatalf("one driver should be skipped, got %d recorded", recorded)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordAll_ListFailureAborts(t *testing.T) {
	svc := RecorderService{
		ListDrivers: func() ([]int64, error) { return nil, errors.New("db gone") },
	}

	if _, err := svc.RecordAll(time.Now()); err == nil {
		t.Fatalf("expected enumeration failure to surface")
	}
}

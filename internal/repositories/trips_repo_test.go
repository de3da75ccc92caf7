package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRevenueForPeriod_SumsPaidCompletedTrips(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.Local)

	mock.ExpectQuery("FROM trips").WithArgs(int64(7), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"revenue", "count"}).AddRow(int64(45000), 32))

	repo := TripsRepository{DB: db}
	revenue, count, err := repo.RevenueForPeriod(7, from, to)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if revenue != 45000 || count != 32 {
		t.Fatalf("unexpected aggregate: revenue=%d count=%d", revenue, count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRevenueForPeriod_EmptyWindowIsZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.Local)

	mock.ExpectQuery("FROM trips").WithArgs(int64(7), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"revenue", "count"}).AddRow(int64(0), 0))

	repo := TripsRepository{DB: db}
	revenue, count, err := repo.RevenueForPeriod(7, from, to)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if revenue != 0 || count != 0 {
		t.Fatalf("expected zero aggregate, got revenue=%d count=%d", revenue, count)
	}
}

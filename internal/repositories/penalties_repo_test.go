package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestListForPeriod_MissingTableMeansNoPenalties(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("penalties").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	repo := PenaltiesRepository{DB: db}
	penalties, err := repo.ListForPeriod(7, time.Now().AddDate(0, -1, 0), time.Now())
	if err != nil {
		t.Fatalf("absent table must not be an error, got %v", err)
	}
	if len(penalties) != 0 {
		t.Fatalf("expected empty list, got %d rows", len(penalties))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListForPeriod_ReturnsRowsInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.Local)

	mock.ExpectQuery("information_schema\\.tables").WithArgs("penalties").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("penalties"))
	mock.ExpectQuery("FROM penalties").WithArgs(int64(7), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "driver_id", "amount", "reason", "imposed_at"}).
			AddRow(int64(1), int64(7), int64(300), "terlambat setor", from.AddDate(0, 0, 3)).
			AddRow(int64(2), int64(7), int64(200), "komplain penumpang", from.AddDate(0, 0, 10)))

	repo := PenaltiesRepository{DB: db}
	penalties, err := repo.ListForPeriod(7, from, to)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(penalties) != 2 {
		t.Fatalf("expected 2 penalties, got %d", len(penalties))
	}
	if penalties[0].Amount != 300 || penalties[1].Reason != "komplain penumpang" {
		t.Fatalf("rows scanned wrong: %+v", penalties)
	}
}

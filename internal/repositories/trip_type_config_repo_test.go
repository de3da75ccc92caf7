package repositories

import (
	"database/sql/driver"
	"testing"
	"time"

	"fleetdesk/internal/domain"
	"fleetdesk/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var tripTypeConfigCols = []string{
	"id", "name", "special_price", "base_price", "base_duration", "base_distance",
	"extra_per_hour", "extra_per_half_hour", "extra_per_km", "premium_car_multiplier",
	"for_premium_cars", "distance_slabs", "status", "effective_from", "created_at", "updated_at",
}

func tripTypeConfigRow(id int64, name string) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, name, false, int64(400), 3.0, nil,
		int64(100), nil, nil, nil,
		nil, `[{"from":0,"to":50,"price":1000}]`, "ACTIVE", now, now, now,
	}
}

func TestGetActiveByName_ScansJSONColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trip_type_configs").WithArgs("CITY_ROUND", models.ConfigStatusActive).
		WillReturnRows(sqlmock.NewRows(tripTypeConfigCols).AddRow(tripTypeConfigRow(3, "CITY_ROUND")...))

	repo := TripTypeConfigRepository{DB: db}
	cfg, err := repo.GetActiveByName("CITY_ROUND")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.BasePrice == nil || *cfg.BasePrice != 400 {
		t.Fatalf("base_price scanned wrong: %+v", cfg)
	}
	if cfg.ExtraPerKm != nil {
		t.Fatalf("NULL column must stay nil so the built-in default applies")
	}
	if len(cfg.DistanceSlabs) != 1 || cfg.DistanceSlabs[0].Price != 1000 {
		t.Fatalf("distance_slabs JSON scanned wrong: %+v", cfg.DistanceSlabs)
	}
}

func TestGetActiveByName_ZeroRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trip_type_configs").WithArgs("CITY_ROUND", models.ConfigStatusActive).
		WillReturnRows(sqlmock.NewRows(tripTypeConfigCols))

	repo := TripTypeConfigRepository{DB: db}
	_, err = repo.GetActiveByName("CITY_ROUND")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetActiveByName_DuplicateActiveIsFatal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trip_type_configs").WithArgs("CITY_ROUND", models.ConfigStatusActive).
		WillReturnRows(sqlmock.NewRows(tripTypeConfigCols).
			AddRow(tripTypeConfigRow(3, "CITY_ROUND")...).
			AddRow(tripTypeConfigRow(4, "CITY_ROUND")...))

	repo := TripTypeConfigRepository{DB: db}
	_, err = repo.GetActiveByName("CITY_ROUND")
	if !domain.IsConfiguration(err) {
		t.Fatalf("two ACTIVE rows must be a configuration error, got %v", err)
	}
}

func TestReplace_DeactivatesThenInserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trip_type_configs").
		WithArgs(models.ConfigStatusInactive, "CITY_ROUND", models.ConfigStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO trip_type_configs").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	repo := TripTypeConfigRepository{DB: db}
	base := int64(450)
	id, err := repo.Replace(models.TripTypeConfig{Name: "CITY_ROUND", BasePrice: &base})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != 9 {
		t.Fatalf("expected new id 9, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeactivate_NoActiveRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE trip_type_configs").
		WithArgs(models.ConfigStatusInactive, "CITY_ROUND", models.ConfigStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := TripTypeConfigRepository{DB: db}
	if err := repo.Deactivate("CITY_ROUND"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

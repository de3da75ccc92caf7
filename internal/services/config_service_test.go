package services

import (
	"database/sql/driver"
	"testing"
	"time"

	"fleetdesk/internal/domain"
	"fleetdesk/internal/domain/models"
	"fleetdesk/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var earningsConfigCols = []string{
	"id", "scope_type", "scope_id", "daily_target_default",
	"incentive_tier1_min", "incentive_tier1_max", "incentive_tier1_type",
	"incentive_tier2_min", "incentive_tier2_percent",
	"monthly_bonus_tiers", "monthly_deduction_tiers", "is_active", "effective_from", "created_at",
}

func earningsConfigRow(id int64, scopeType string, scopeID any) []driver.Value {
	return []driver.Value{
		id, scopeType, scopeID, int64(1500),
		int64(1250), int64(2500), "full_extra",
		int64(2500), 10.0,
		`[{"min_earnings":30000,"bonus":1000}]`, `[{"max_earnings":15000,"cut_percent":5}]`,
		true, time.Now(), time.Now(),
	}
}

func TestResolveEarningsConfig_DriverScopeWins(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM driver_earnings_configs").WithArgs(models.ScopeDriver, int64(7)).
		WillReturnRows(sqlmock.NewRows(earningsConfigCols).
			AddRow(earningsConfigRow(11, models.ScopeDriver, int64(7))...))

	svc := ConfigService{EarningsRepo: repositories.EarningsConfigRepository{DB: db}}
	franchiseID := int64(3)
	cfg, scope, err := svc.ResolveEarningsConfig(7, &franchiseID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if scope != models.ScopeDriver {
		t.Fatalf("driver scope should win, got %s", scope)
	}
	if cfg.ID != 11 {
		t.Fatalf("wrong config resolved: %+v", cfg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResolveEarningsConfig_FallsThroughToGlobal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM driver_earnings_configs").WithArgs(models.ScopeDriver, int64(7)).
		WillReturnRows(sqlmock.NewRows(earningsConfigCols))
	mock.ExpectQuery("FROM driver_earnings_configs").WithArgs(models.ScopeFranchise, int64(3)).
		WillReturnRows(sqlmock.NewRows(earningsConfigCols))
	mock.ExpectQuery("FROM driver_earnings_configs").WithArgs(models.ScopeGlobal).
		WillReturnRows(sqlmock.NewRows(earningsConfigCols).
			AddRow(earningsConfigRow(5, models.ScopeGlobal, nil)...))

	svc := ConfigService{EarningsRepo: repositories.EarningsConfigRepository{DB: db}}
	franchiseID := int64(3)
	_, scope, err := svc.ResolveEarningsConfig(7, &franchiseID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if scope != models.ScopeGlobal {
		t.Fatalf("expected global scope, got %s", scope)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResolveEarningsConfig_NoFranchiseSkipsFranchiseLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM driver_earnings_configs").WithArgs(models.ScopeDriver, int64(7)).
		WillReturnRows(sqlmock.NewRows(earningsConfigCols))
	mock.ExpectQuery("FROM driver_earnings_configs").WithArgs(models.ScopeGlobal).
		WillReturnRows(sqlmock.NewRows(earningsConfigCols))

	svc := ConfigService{EarningsRepo: repositories.EarningsConfigRepository{DB: db}}
	cfg, scope, err := svc.ResolveEarningsConfig(7, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if scope != models.ScopeDefaults {
		t.Fatalf("no active row anywhere should fall back to defaults, got %s", scope)
	}
	if cfg.IncentiveTier1Min != 1250 || cfg.IncentiveTier2Percent != 10 {
		t.Fatalf("defaults config expected, got %+v", cfg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResolveEarningsConfig_DuplicateActiveIsFatal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM driver_earnings_configs").WithArgs(models.ScopeDriver, int64(7)).
		WillReturnRows(sqlmock.NewRows(earningsConfigCols).
			AddRow(earningsConfigRow(11, models.ScopeDriver, int64(7))...).
			AddRow(earningsConfigRow(12, models.ScopeDriver, int64(7))...))

	svc := ConfigService{EarningsRepo: repositories.EarningsConfigRepository{DB: db}}
	_, _, err = svc.ResolveEarningsConfig(7, nil)
	if !domain.IsConfiguration(err) {
		t.Fatalf("duplicate active rows must be a configuration error, got %v", err)
	}
}

func TestSetEarningsConfig_ValidatesScope(t *testing.T) {
	svc := ConfigService{}

	_, err := svc.SetEarningsConfig(models.EarningsConfig{ScopeType: "warehouse"})
	if domain.ValidationCode(err) != domain.CodeInvalidScope {
		t.Fatalf("expected INVALID_SCOPE, got %v", err)
	}

	_, err = svc.SetEarningsConfig(models.EarningsConfig{ScopeType: models.ScopeDriver})
	if domain.ValidationCode(err) != domain.CodeInvalidScope {
		t.Fatalf("driver scope without scope_id must fail, got %v", err)
	}
}

func TestSetEarningsConfig_ReplaceTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE driver_earnings_configs").WithArgs(models.ScopeGlobal).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO driver_earnings_configs").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectCommit()

	svc := ConfigService{EarningsRepo: repositories.EarningsConfigRepository{DB: db}}
	id, err := svc.SetEarningsConfig(models.EarningsConfig{
		ScopeType:             models.ScopeGlobal,
		IncentiveTier1Min:     1250,
		IncentiveTier1Max:     2500,
		IncentiveTier2Min:     2500,
		IncentiveTier2Percent: 10,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != 21 {
		t.Fatalf("expected new id 21, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetTripTypeConfig_RejectsNegativeRates(t *testing.T) {
	svc := ConfigService{}

	neg := int64(-500)
	_, err := svc.SetTripTypeConfig(models.TripTypeConfig{Name: "CITY_ROUND", BasePrice: &neg})
	if !domain.IsValidation(err) {
		t.Fatalf("negative base_price would quote below zero, must fail, got %v", err)
	}

	negRate := int64(-15)
	_, err = svc.SetTripTypeConfig(models.TripTypeConfig{Name: "CITY_DROPOFF", ExtraPerKm: &negRate})
	if !domain.IsValidation(err) {
		t.Fatalf("negative extra_per_km must fail, got %v", err)
	}

	negDur := -1.0
	_, err = svc.SetTripTypeConfig(models.TripTypeConfig{Name: "CITY_ROUND", BaseDurationHours: &negDur})
	if !domain.IsValidation(err) {
		t.Fatalf("negative base_duration must fail, got %v", err)
	}
}

func TestSetTripTypeConfig_RejectsBadSlabs(t *testing.T) {
	svc := ConfigService{}

	_, err := svc.SetTripTypeConfig(models.TripTypeConfig{
		Name: "LONG_DROPOFF",
		DistanceSlabs: []models.DistanceSlab{
			{FromKm: 50, ToKm: 50, Price: 1000},
		},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("empty slab range must fail, got %v", err)
	}

	_, err = svc.SetTripTypeConfig(models.TripTypeConfig{
		Name: "LONG_DROPOFF",
		DistanceSlabs: []models.DistanceSlab{
			{FromKm: 0, ToKm: 100, Price: 1000},
			{FromKm: 50, ToKm: 200, Price: 2000},
		},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("overlapping slabs must fail, got %v", err)
	}
}

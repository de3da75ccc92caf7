package services

import (
	"fmt"
	"sort"
	"time"

	"fleetdesk/internal/domain"
	"fleetdesk/internal/domain/models"
	"fleetdesk/internal/repositories"
	"fleetdesk/internal/utils"
)

// EarningsService computes a driver's daily incentive and monthly
// bonus/deduction from tiered policy tables. Every call re-resolves the
// active config and re-aggregates revenue so results always follow the
// latest policy and trip state; nothing is cached in-process.
type EarningsService struct {
	TripsRepo   repositories.TripsRepository
	DriversRepo repositories.DriversRepository
	Config      ConfigService
	RequestID   string

	// Test seams, used when non-nil (DB untouched then).
	Now          func() time.Time
	FetchDriver  func(driverID int64) (models.Driver, error)
	FetchRevenue func(driverID int64, from, to time.Time) (int64, int, error)
	LoadConfig   func(driverID int64, franchiseID *int64) (models.EarningsConfig, string, error)
}

type DailyStats struct {
	DriverID          int64  `json:"driver_id"`
	Date              string `json:"date"`
	Revenue           int64  `json:"revenue"`
	TripCount         int    `json:"trip_count"`
	DailyTarget       int64  `json:"daily_target"`
	Incentive         int64  `json:"incentive"`
	RemainingToTarget int64  `json:"remaining_to_achieve"`
	ConfigScope       string `json:"config_scope"`
}

type MonthlyStats struct {
	DriverID         int64   `json:"driver_id"`
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	Revenue          int64   `json:"revenue"`
	TripCount        int     `json:"trip_count"`
	Bonus            int64   `json:"bonus"`
	Deduction        int64   `json:"deduction"`
	DeductionPercent float64 `json:"deduction_percent,omitempty"`
	ConfigScope      string  `json:"config_scope"`
}

// DailyStats aggregates the driver's completed, fully-paid trips for one
// local calendar day and evaluates the incentive tiers. A nil date means
// today.
func (s EarningsService) DailyStats(driverID int64, date *time.Time) (DailyStats, error) {
	driver, err := s.fetchDriver(driverID)
	if err != nil {
		return DailyStats{}, err
	}

	day := s.now()
	if date != nil {
		day = *date
	}
	from, to := utils.DayWindow(day)

	cfg, scope, err := s.loadConfig(driver.ID, driver.FranchiseID)
	if err != nil {
		return DailyStats{}, err
	}

	revenue, trips, err := s.fetchRevenue(driver.ID, from, to)
	if err != nil {
		return DailyStats{}, err
	}

	target := resolveDailyTarget(cfg, scope, driver)
	incentive := incentiveFor(cfg, revenue, target)

	remaining := target - revenue
	if remaining < 0 {
		remaining = 0
	}

	utils.LogEvent(s.RequestID, "earnings", "daily_stats",
		fmt.Sprintf("driver_id=%d date=%s revenue=%d incentive=%d scope=%s", driver.ID, utils.FormatDate(from), revenue, incentive, scope))

	return DailyStats{
		DriverID:          driver.ID,
		Date:              utils.FormatDate(from),
		Revenue:           revenue,
		TripCount:         trips,
		DailyTarget:       target,
		Incentive:         incentive,
		RemainingToTarget: remaining,
		ConfigScope:       scope,
	}, nil
}

// MonthlyStats aggregates a whole calendar month and evaluates the bonus and
// deduction tiers. No tier matching is a valid zero outcome, not an error.
func (s EarningsService) MonthlyStats(driverID int64, year, month int) (MonthlyStats, error) {
	if month < 1 || month > 12 {
		return MonthlyStats{}, domain.ValidationError{
			Code:  domain.CodeInvalidMonth,
			Field: "month",
			Msg:   fmt.Sprintf("month %d is out of range 1..12", month),
		}
	}

	driver, err := s.fetchDriver(driverID)
	if err != nil {
		return MonthlyStats{}, err
	}

	from, to := utils.MonthWindow(year, month)

	cfg, scope, err := s.loadConfig(driver.ID, driver.FranchiseID)
	if err != nil {
		return MonthlyStats{}, err
	}

	revenue, trips, err := s.fetchRevenue(driver.ID, from, to)
	if err != nil {
		return MonthlyStats{}, err
	}

	bonus := bonusFor(cfg.MonthlyBonusTiers, revenue)
	deduction, cutPercent := deductionFor(cfg.MonthlyDeductionTiers, revenue)

	return MonthlyStats{
		DriverID:         driver.ID,
		Year:             year,
		Month:            month,
		Revenue:          revenue,
		TripCount:        trips,
		Bonus:            bonus,
		Deduction:        deduction,
		DeductionPercent: cutPercent,
		ConfigScope:      scope,
	}, nil
}

// resolveDailyTarget: scoped config first, then the driver's individually
// assigned target, then the hard default.
func resolveDailyTarget(cfg models.EarningsConfig, scope string, driver models.Driver) int64 {
	if scope != models.ScopeDefaults && cfg.DailyTargetDefault != nil {
		return *cfg.DailyTargetDefault
	}
	if driver.DailyTargetAmount > 0 {
		return driver.DailyTargetAmount
	}
	return models.DefaultDailyTarget
}

// Tier 1 (inclusive band, full_extra) pays everything above target; tier 2
// pays a revenue percentage above its floor. The tiers are mutually
// exclusive: tier 1 wins inside its band.
func incentiveFor(cfg models.EarningsConfig, revenue, target int64) int64 {
	if revenue >= cfg.IncentiveTier1Min && revenue <= cfg.IncentiveTier1Max &&
		cfg.IncentiveTier1Type == models.IncentiveTypeFullExtra {
		if revenue > target {
			return revenue - target
		}
		return 0
	}
	if revenue > cfg.IncentiveTier2Min {
		return utils.RoundMoney(float64(revenue) * cfg.IncentiveTier2Percent / 100)
	}
	return 0
}

// bonusFor scans tiers by min_earnings descending; the highest qualifying
// tier wins and tiers never accumulate.
func bonusFor(tiers []models.BonusTier, revenue int64) int64 {
	sorted := make([]models.BonusTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinEarnings > sorted[j].MinEarnings })

	for _, tier := range sorted {
		if tier.MinEarnings <= revenue {
			return tier.Bonus
		}
	}
	return 0
}

// deductionFor scans tiers by max_earnings ascending; the first tier whose
// ceiling covers the revenue wins.
func deductionFor(tiers []models.DeductionTier, revenue int64) (int64, float64) {
	sorted := make([]models.DeductionTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MaxEarnings < sorted[j].MaxEarnings })

	for _, tier := range sorted {
		if tier.MaxEarnings >= revenue {
			return utils.RoundMoney(float64(revenue) * tier.CutPercent / 100), tier.CutPercent
		}
	}
	return 0, 0
}

func (s EarningsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s EarningsService) fetchDriver(driverID int64) (models.Driver, error) {
	if s.FetchDriver != nil {
		return s.FetchDriver(driverID)
	}
	return s.DriversRepo.GetByID(driverID)
}

func (s EarningsService) fetchRevenue(driverID int64, from, to time.Time) (int64, int, error) {
	if s.FetchRevenue != nil {
		return s.FetchRevenue(driverID, from, to)
	}
	return s.TripsRepo.RevenueForPeriod(driverID, from, to)
}

func (s EarningsService) loadConfig(driverID int64, franchiseID *int64) (models.EarningsConfig, string, error) {
	if s.LoadConfig != nil {
		return s.LoadConfig(driverID, franchiseID)
	}
	return s.Config.ResolveEarningsConfig(driverID, franchiseID)
}

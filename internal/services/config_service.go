package services

import (
	"strings"

	"fleetdesk/internal/domain"
	"fleetdesk/internal/domain/models"
	"fleetdesk/internal/repositories"
	"fleetdesk/internal/utils"
)

// ConfigService resolves active pricing/earnings configuration and handles
// the administrative mutations. Mutation is always deactivate-then-insert;
// an ACTIVE row is never edited in place.
type ConfigService struct {
	TripTypeRepo repositories.TripTypeConfigRepository
	EarningsRepo repositories.EarningsConfigRepository
	RequestID    string
}

// ResolveTripTypeConfig returns the active config for a trip type name, or
// nil when none is stored (built-in defaults apply then).
func (s ConfigService) ResolveTripTypeConfig(name string) (*models.TripTypeConfig, error) {
	cfg, err := s.TripTypeRepo.GetActiveByName(name)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// ResolveEarningsConfig walks driver > franchise > global precedence and
// falls back to the hard-coded defaults when no scope has an active row.
// The returned scope names which level won.
func (s ConfigService) ResolveEarningsConfig(driverID int64, franchiseID *int64) (models.EarningsConfig, string, error) {
	lookups := []struct {
		scopeType string
		scopeID   *int64
	}{
		{models.ScopeDriver, &driverID},
		{models.ScopeFranchise, franchiseID},
		{models.ScopeGlobal, nil},
	}

	for _, l := range lookups {
		if l.scopeType == models.ScopeFranchise && franchiseID == nil {
			continue
		}
		configs, err := s.EarningsRepo.ListActiveByScope(l.scopeType, l.scopeID)
		if err != nil {
			return models.EarningsConfig{}, "", err
		}
		switch len(configs) {
		case 0:
			continue
		case 1:
			return configs[0], l.scopeType, nil
		default:
			return models.EarningsConfig{}, "", domain.ConfigurationError{
				Scope: l.scopeType,
				Msg:   "more than one active earnings config for this scope",
			}
		}
	}

	return models.DefaultEarningsConfig(), models.ScopeDefaults, nil
}

// SetTripTypeConfig validates and stores a new config version for a name.
func (s ConfigService) SetTripTypeConfig(cfg models.TripTypeConfig) (int64, error) {
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		return 0, domain.ValidationError{Code: domain.CodeInvalidTripType, Field: "name", Msg: "nama trip type wajib diisi"}
	}
	if err := validateSlabs(cfg.DistanceSlabs); err != nil {
		return 0, err
	}
	if err := validateRates(cfg); err != nil {
		return 0, err
	}
	if cfg.PremiumCarMultiplier != nil && *cfg.PremiumCarMultiplier < 1 {
		return 0, domain.ValidationError{Field: "premium_car_multiplier", Msg: "multiplier must be at least 1"}
	}

	id, err := s.TripTypeRepo.Replace(cfg)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "config", "set_trip_type", "name="+cfg.Name)
	return id, nil
}

// DeactivateTripTypeConfig soft-deletes the active row for a name.
func (s ConfigService) DeactivateTripTypeConfig(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ValidationError{Code: domain.CodeInvalidTripType, Field: "name", Msg: "nama trip type wajib diisi"}
	}
	if err := s.TripTypeRepo.Deactivate(name); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "config", "deactivate_trip_type", "name="+name)
	return nil
}

// SetEarningsConfig validates and stores a new policy version for a scope.
func (s ConfigService) SetEarningsConfig(cfg models.EarningsConfig) (int64, error) {
	switch cfg.ScopeType {
	case models.ScopeGlobal:
		cfg.ScopeID = nil
	case models.ScopeFranchise, models.ScopeDriver:
		if cfg.ScopeID == nil || *cfg.ScopeID <= 0 {
			return 0, domain.ValidationError{Code: domain.CodeInvalidScope, Field: "scope_id", Msg: "scope_id wajib diisi untuk scope " + cfg.ScopeType}
		}
	default:
		return 0, domain.ValidationError{Code: domain.CodeInvalidScope, Field: "scope_type", Msg: "scope harus global, franchise, atau driver"}
	}
	if cfg.IncentiveTier1Max < cfg.IncentiveTier1Min {
		return 0, domain.ValidationError{Field: "incentive_tier1_max", Msg: "tier1 max must not be below tier1 min"}
	}
	if cfg.IncentiveTier1Type == "" {
		cfg.IncentiveTier1Type = models.IncentiveTypeFullExtra
	}
	if cfg.IncentiveTier2Percent < 0 || cfg.IncentiveTier2Percent > 100 {
		return 0, domain.ValidationError{Field: "incentive_tier2_percent", Msg: "percent must be between 0 and 100"}
	}
	for _, t := range cfg.MonthlyDeductionTiers {
		if t.CutPercent < 0 || t.CutPercent > 100 {
			return 0, domain.ValidationError{Field: "monthly_deduction_tiers", Msg: "cut percent must be between 0 and 100"}
		}
	}

	id, err := s.EarningsRepo.Replace(cfg)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "config", "set_earnings", "scope="+cfg.ScopeType)
	return id, nil
}

// validateRates rejects negative amounts and rate fields; a stored negative
// rate would let a quote come out below zero.
func validateRates(cfg models.TripTypeConfig) error {
	amounts := []struct {
		field string
		value *int64
	}{
		{"base_price", cfg.BasePrice},
		{"extra_per_hour", cfg.ExtraPerHour},
		{"extra_per_half_hour", cfg.ExtraPerHalfHour},
		{"extra_per_km", cfg.ExtraPerKm},
	}
	for _, a := range amounts {
		if a.value != nil && *a.value < 0 {
			return domain.ValidationError{Field: a.field, Msg: "must not be negative"}
		}
	}
	if cfg.BaseDurationHours != nil && *cfg.BaseDurationHours < 0 {
		return domain.ValidationError{Field: "base_duration", Msg: "must not be negative"}
	}
	if cfg.BaseDistanceKm != nil && *cfg.BaseDistanceKm < 0 {
		return domain.ValidationError{Field: "base_distance", Msg: "must not be negative"}
	}
	return nil
}

func validateSlabs(slabs []models.DistanceSlab) error {
	prevTo := 0.0
	for i, slab := range slabs {
		if slab.ToKm <= slab.FromKm {
			return domain.ValidationError{Field: "distance_slabs", Msg: "slab range is empty or inverted"}
		}
		if i > 0 && slab.FromKm < prevTo {
			return domain.ValidationError{Field: "distance_slabs", Msg: "slab ranges overlap"}
		}
		if slab.Price < 0 {
			return domain.ValidationError{Field: "distance_slabs", Msg: "slab price must not be negative"}
		}
		prevTo = slab.ToKm
	}
	return nil
}

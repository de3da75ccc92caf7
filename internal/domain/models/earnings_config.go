package models

import "time"

// Config scopes, in resolution precedence order (driver wins over franchise,
// franchise over global).
const (
	ScopeDriver    = "driver"
	ScopeFranchise = "franchise"
	ScopeGlobal    = "global"

	// ScopeDefaults marks stats computed from the hard-coded fallback config
	// when no row is active at any scope.
	ScopeDefaults = "defaults"
)

const IncentiveTypeFullExtra = "full_extra"

// DefaultDailyTarget applies when neither a config row nor the driver record
// carries a target.
const DefaultDailyTarget int64 = 1250

// BonusTier pays a flat bonus once monthly earnings reach MinEarnings.
// The highest qualifying tier wins; tiers are not cumulative.
type BonusTier struct {
	MinEarnings int64 `json:"min_earnings"`
	Bonus       int64 `json:"bonus"`
}

// DeductionTier cuts CutPercent of monthly earnings when they stay at or
// below MaxEarnings. The lowest qualifying tier wins.
type DeductionTier struct {
	MaxEarnings int64   `json:"max_earnings"`
	CutPercent  float64 `json:"cut_percent"`
}

// EarningsConfig is one versioned incentive/bonus policy scoped to exactly
// one of global, one franchise, or one driver. At most one active row per
// scope key; a new row deactivates the prior one so historical settlements
// stay recomputable against the policy that was active at the time.
type EarningsConfig struct {
	ID                    int64           `json:"id"`
	ScopeType             string          `json:"scope_type"`
	ScopeID               *int64          `json:"scope_id,omitempty"`
	DailyTargetDefault    *int64          `json:"daily_target_default,omitempty"`
	IncentiveTier1Min     int64           `json:"incentive_tier1_min"`
	IncentiveTier1Max     int64           `json:"incentive_tier1_max"`
	IncentiveTier1Type    string          `json:"incentive_tier1_type"`
	IncentiveTier2Min     int64           `json:"incentive_tier2_min"`
	IncentiveTier2Percent float64         `json:"incentive_tier2_percent"`
	MonthlyBonusTiers     []BonusTier     `json:"monthly_bonus_tiers"`
	MonthlyDeductionTiers []DeductionTier `json:"monthly_deduction_tiers"`
	IsActive              bool            `json:"is_active"`
	EffectiveFrom         time.Time       `json:"effective_from"`
	CreatedAt             time.Time       `json:"created_at"`
}

// DefaultEarningsConfig is the hard-coded fallback used when no config row is
// active at any scope. Numbers mirror the long-standing operational policy:
// drivers inside the 1250..2500 daily band keep everything above target,
// high earners above 2500 get 10% of revenue instead.
func DefaultEarningsConfig() EarningsConfig {
	target := DefaultDailyTarget
	return EarningsConfig{
		ScopeType:             ScopeGlobal,
		DailyTargetDefault:    &target,
		IncentiveTier1Min:     1250,
		IncentiveTier1Max:     2500,
		IncentiveTier1Type:    IncentiveTypeFullExtra,
		IncentiveTier2Min:     2500,
		IncentiveTier2Percent: 10,
		MonthlyBonusTiers: []BonusTier{
			{MinEarnings: 30000, Bonus: 1000},
			{MinEarnings: 50000, Bonus: 2000},
			{MinEarnings: 100000, Bonus: 5000},
		},
		MonthlyDeductionTiers: []DeductionTier{
			{MaxEarnings: 15000, CutPercent: 5},
		},
		IsActive: true,
	}
}

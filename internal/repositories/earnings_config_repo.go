package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"

	intconfig "fleetdesk/internal/config"
	"fleetdesk/internal/domain/models"
)

type EarningsConfigRepository struct {
	DB *sql.DB
}

func (r EarningsConfigRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const earningsConfigColumns = `id, scope_type, scope_id, daily_target_default,
		incentive_tier1_min, incentive_tier1_max, incentive_tier1_type,
		incentive_tier2_min, incentive_tier2_percent,
		monthly_bonus_tiers, monthly_deduction_tiers, is_active, effective_from, created_at`

// ListActiveByScope returns every active row for one scope key. The caller
// decides what more than one row means (the resolver treats it as fatal).
func (r EarningsConfigRepository) ListActiveByScope(scopeType string, scopeID *int64) ([]models.EarningsConfig, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if scopeID != nil {
		rows, err = r.db().Query(`
			SELECT `+earningsConfigColumns+`
			FROM driver_earnings_configs
			WHERE scope_type = ? AND scope_id = ? AND is_active = 1
		`, scopeType, *scopeID)
	} else {
		rows, err = r.db().Query(`
			SELECT `+earningsConfigColumns+`
			FROM driver_earnings_configs
			WHERE scope_type = ? AND scope_id IS NULL AND is_active = 1
		`, scopeType)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEarningsConfigs(rows)
}

// Replace deactivates the active row for the scope key (if any) and inserts
// the new version in one transaction, preserving history for past-period
// recalculation.
func (r EarningsConfigRepository) Replace(cfg models.EarningsConfig) (int64, error) {
	bonusJSON, err := json.Marshal(cfg.MonthlyBonusTiers)
	if err != nil {
		return 0, err
	}
	deductionJSON, err := json.Marshal(cfg.MonthlyDeductionTiers)
	if err != nil {
		return 0, err
	}

	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if cfg.ScopeID != nil {
		_, err = tx.Exec(`
			UPDATE driver_earnings_configs
			SET is_active = 0
			WHERE scope_type = ? AND scope_id = ? AND is_active = 1
		`, cfg.ScopeType, *cfg.ScopeID)
	} else {
		_, err = tx.Exec(`
			UPDATE driver_earnings_configs
			SET is_active = 0
			WHERE scope_type = ? AND scope_id IS NULL AND is_active = 1
		`, cfg.ScopeType)
	}
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec(`
		INSERT INTO driver_earnings_configs (
			scope_type, scope_id, daily_target_default,
			incentive_tier1_min, incentive_tier1_max, incentive_tier1_type,
			incentive_tier2_min, incentive_tier2_percent,
			monthly_bonus_tiers, monthly_deduction_tiers, is_active, effective_from, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, NOW(), NOW())
	`,
		cfg.ScopeType,
		cfg.ScopeID,
		cfg.DailyTargetDefault,
		cfg.IncentiveTier1Min,
		cfg.IncentiveTier1Max,
		cfg.IncentiveTier1Type,
		cfg.IncentiveTier2Min,
		cfg.IncentiveTier2Percent,
		string(bonusJSON),
		string(deductionJSON),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

func scanEarningsConfigs(rows *sql.Rows) ([]models.EarningsConfig, error) {
	out := []models.EarningsConfig{}
	for rows.Next() {
		var (
			cfg           models.EarningsConfig
			scopeID       sql.NullInt64
			dailyTarget   sql.NullInt64
			bonusJSON     sql.NullString
			deductionJSON sql.NullString
			effectiveFrom sql.NullTime
		)
		if err := rows.Scan(
			&cfg.ID,
			&cfg.ScopeType,
			&scopeID,
			&dailyTarget,
			&cfg.IncentiveTier1Min,
			&cfg.IncentiveTier1Max,
			&cfg.IncentiveTier1Type,
			&cfg.IncentiveTier2Min,
			&cfg.IncentiveTier2Percent,
			&bonusJSON,
			&deductionJSON,
			&cfg.IsActive,
			&effectiveFrom,
			&cfg.CreatedAt,
		); err != nil {
			return out, err
		}

		cfg.ScopeID = nullInt(scopeID)
		cfg.DailyTargetDefault = nullInt(dailyTarget)
		if effectiveFrom.Valid {
			cfg.EffectiveFrom = effectiveFrom.Time
		}
		if bonusJSON.Valid && strings.TrimSpace(bonusJSON.String) != "" {
			if err := json.Unmarshal([]byte(bonusJSON.String), &cfg.MonthlyBonusTiers); err != nil {
				return out, err
			}
		}
		if deductionJSON.Valid && strings.TrimSpace(deductionJSON.String) != "" {
			if err := json.Unmarshal([]byte(deductionJSON.String), &cfg.MonthlyDeductionTiers); err != nil {
				return out, err
			}
		}
		out = append(out, cfg)
	}
	return out, rows.Err()
}

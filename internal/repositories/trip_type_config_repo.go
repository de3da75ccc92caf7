package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	intconfig "fleetdesk/internal/config"
	"fleetdesk/internal/domain"
	"fleetdesk/internal/domain/models"
)

type TripTypeConfigRepository struct {
	DB *sql.DB
}

func (r TripTypeConfigRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripTypeConfigColumns = `id, name, special_price, base_price, base_duration, base_distance,
		extra_per_hour, extra_per_half_hour, extra_per_km, premium_car_multiplier,
		for_premium_cars, distance_slabs, status, effective_from, created_at, updated_at`

// GetActiveByName returns the single ACTIVE config for a trip type name.
// Zero rows is a NotFoundError; more than one is a ConfigurationError and
// must not be resolved silently.
func (r TripTypeConfigRepository) GetActiveByName(name string) (models.TripTypeConfig, error) {
	rows, err := r.db().Query(`
		SELECT `+tripTypeConfigColumns+`
		FROM trip_type_configs
		WHERE name = ? AND status = ?
	`, strings.TrimSpace(name), models.ConfigStatusActive)
	if err != nil {
		return models.TripTypeConfig{}, err
	}
	defer rows.Close()

	configs, err := scanTripTypeConfigs(rows)
	if err != nil {
		return models.TripTypeConfig{}, err
	}
	switch len(configs) {
	case 0:
		return models.TripTypeConfig{}, domain.NotFoundError{Resource: "trip type config"}
	case 1:
		return configs[0], nil
	default:
		return models.TripTypeConfig{}, domain.ConfigurationError{
			Scope: "trip_type:" + name,
			Msg:   "more than one ACTIVE config for this trip type",
		}
	}
}

// ListActive returns every ACTIVE config, for the admin dashboard listing.
func (r TripTypeConfigRepository) ListActive() ([]models.TripTypeConfig, error) {
	rows, err := r.db().Query(`
		SELECT `+tripTypeConfigColumns+`
		FROM trip_type_configs
		WHERE status = ?
		ORDER BY name ASC
	`, models.ConfigStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTripTypeConfigs(rows)
}

// Replace deactivates the current ACTIVE row for the name (if any) and
// inserts the new version in one transaction. Active rows are never edited
// in place so settled trips stay reproducible.
func (r TripTypeConfigRepository) Replace(cfg models.TripTypeConfig) (int64, error) {
	slabsJSON, err := json.Marshal(cfg.DistanceSlabs)
	if err != nil {
		return 0, err
	}
	premiumJSON, err := json.Marshal(cfg.ForPremiumCars)
	if err != nil {
		return 0, err
	}

	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE trip_type_configs
		SET status = ?, updated_at = NOW()
		WHERE name = ? AND status = ?
	`, models.ConfigStatusInactive, cfg.Name, models.ConfigStatusActive); err != nil {
		return 0, err
	}

	res, err := tx.Exec(`
		INSERT INTO trip_type_configs (
			name, special_price, base_price, base_duration, base_distance,
			extra_per_hour, extra_per_half_hour, extra_per_km, premium_car_multiplier,
			for_premium_cars, distance_slabs, status, effective_from, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW(), NOW())
	`,
		cfg.Name,
		cfg.SpecialPrice,
		cfg.BasePrice,
		cfg.BaseDurationHours,
		cfg.BaseDistanceKm,
		cfg.ExtraPerHour,
		cfg.ExtraPerHalfHour,
		cfg.ExtraPerKm,
		cfg.PremiumCarMultiplier,
		string(premiumJSON),
		string(slabsJSON),
		models.ConfigStatusActive,
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

// Deactivate soft-deletes the ACTIVE config for a name (status flip only).
func (r TripTypeConfigRepository) Deactivate(name string) error {
	res, err := r.db().Exec(`
		UPDATE trip_type_configs
		SET status = ?, updated_at = NOW()
		WHERE name = ? AND status = ?
	`, models.ConfigStatusInactive, strings.TrimSpace(name), models.ConfigStatusActive)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "trip type config"}
	}
	return nil
}

func scanTripTypeConfigs(rows *sql.Rows) ([]models.TripTypeConfig, error) {
	out := []models.TripTypeConfig{}
	for rows.Next() {
		var (
			cfg           models.TripTypeConfig
			basePrice     sql.NullInt64
			baseDuration  sql.NullFloat64
			baseDistance  sql.NullFloat64
			perHour       sql.NullInt64
			perHalfHour   sql.NullInt64
			perKm         sql.NullInt64
			premiumMult   sql.NullFloat64
			premiumJSON   sql.NullString
			slabsJSON     sql.NullString
			effectiveFrom sql.NullTime
			createdAt     time.Time
			updatedAt     time.Time
		)
		if err := rows.Scan(
			&cfg.ID,
			&cfg.Name,
			&cfg.SpecialPrice,
			&basePrice,
			&baseDuration,
			&baseDistance,
			&perHour,
			&perHalfHour,
			&perKm,
			&premiumMult,
			&premiumJSON,
			&slabsJSON,
			&cfg.Status,
			&effectiveFrom,
			&createdAt,
			&updatedAt,
		); err != nil {
			return out, err
		}

		cfg.BasePrice = nullInt(basePrice)
		cfg.BaseDurationHours = nullFloat(baseDuration)
		cfg.BaseDistanceKm = nullFloat(baseDistance)
		cfg.ExtraPerHour = nullInt(perHour)
		cfg.ExtraPerHalfHour = nullInt(perHalfHour)
		cfg.ExtraPerKm = nullInt(perKm)
		cfg.PremiumCarMultiplier = nullFloat(premiumMult)
		cfg.CreatedAt = createdAt
		cfg.UpdatedAt = updatedAt
		if effectiveFrom.Valid {
			cfg.EffectiveFrom = effectiveFrom.Time
		}
		if premiumJSON.Valid && strings.TrimSpace(premiumJSON.String) != "" {
			if err := json.Unmarshal([]byte(premiumJSON.String), &cfg.ForPremiumCars); err != nil {
				return out, err
			}
		}
		if slabsJSON.Valid && strings.TrimSpace(slabsJSON.String) != "" {
			if err := json.Unmarshal([]byte(slabsJSON.String), &cfg.DistanceSlabs); err != nil {
				return out, err
			}
		}
		out = append(out, cfg)
	}
	return out, rows.Err()
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

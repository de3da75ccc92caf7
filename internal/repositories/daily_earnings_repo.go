package repositories

import (
	"database/sql"

	intconfig "fleetdesk/internal/config"
	"fleetdesk/internal/domain/models"
)

type DailyEarningsRepository struct {
	DB *sql.DB
}

func (r DailyEarningsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Upsert records one driver-day snapshot; re-running the batch for the same
// day overwrites the previous row instead of duplicating it.
func (r DailyEarningsRepository) Upsert(e models.DailyEarnings) error {
	_, err := r.db().Exec(`
		INSERT INTO daily_earnings (driver_id, stat_date, revenue, trip_count, incentive, daily_target, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			revenue = VALUES(revenue),
			trip_count = VALUES(trip_count),
			incentive = VALUES(incentive),
			daily_target = VALUES(daily_target),
			recorded_at = NOW()
	`, e.DriverID, e.StatDate, e.Revenue, e.TripCount, e.Incentive, e.DailyTarget)
	return err
}

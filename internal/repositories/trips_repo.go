package repositories

import (
	"database/sql"
	"time"

	intconfig "fleetdesk/internal/config"
)

type TripsRepository struct {
	DB *sql.DB
}

func (r TripsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// RevenueForPeriod sums realized amounts over completed, fully-paid trips for
// the driver inside the window. Realized amount is final_amount when set,
// otherwise total_amount.
func (r TripsRepository) RevenueForPeriod(driverID int64, from, to time.Time) (int64, int, error) {
	var (
		revenue sql.NullInt64
		count   int
	)
	err := r.db().QueryRow(`
		SELECT COALESCE(SUM(COALESCE(final_amount, total_amount, 0)), 0), COUNT(*)
		FROM trips
		WHERE driver_id = ?
		  AND status = 'COMPLETED'
		  AND payment_status = 'PAID'
		  AND completed_at BETWEEN ? AND ?
	`, driverID, from, to).Scan(&revenue, &count)
	if err != nil {
		return 0, 0, err
	}
	return revenue.Int64, count, nil
}

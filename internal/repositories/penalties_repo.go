package repositories

import (
	"database/sql"
	"time"

	intconfig "fleetdesk/internal/config"
	intdb "fleetdesk/internal/db"
	"fleetdesk/internal/domain/models"
)

type PenaltiesRepository struct {
	DB *sql.DB
}

func (r PenaltiesRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListForPeriod returns the driver's penalties inside the window. The
// penalties table is owned by the discipline service; when it is absent in
// this schema the settlement simply carries zero penalties.
func (r PenaltiesRepository) ListForPeriod(driverID int64, from, to time.Time) ([]models.Penalty, error) {
	db := r.db()
	if db == nil || !intdb.HasTable(db, "penalties") {
		return []models.Penalty{}, nil
	}

	rows, err := db.Query(`
		SELECT id, driver_id, COALESCE(amount, 0), COALESCE(reason, ''), imposed_at
		FROM penalties
		WHERE driver_id = ? AND imposed_at BETWEEN ? AND ?
		ORDER BY imposed_at ASC, id ASC
	`, driverID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Penalty{}
	for rows.Next() {
		var p models.Penalty
		if err := rows.Scan(&p.ID, &p.DriverID, &p.Amount, &p.Reason, &p.ImposedAt); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

package repositories

import (
	"database/sql"

	intconfig "fleetdesk/internal/config"
	"fleetdesk/internal/domain"
	"fleetdesk/internal/domain/models"
)

type DriversRepository struct {
	DB *sql.DB
}

func (r DriversRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r DriversRepository) GetByID(id int64) (models.Driver, error) {
	var (
		d           models.Driver
		franchiseID sql.NullInt64
		target      sql.NullInt64
	)
	err := r.db().QueryRow(`
		SELECT id, COALESCE(name, ''), COALESCE(phone, ''), franchise_id,
		       daily_target_amount, COALESCE(status, ''), created_at
		FROM drivers
		WHERE id = ?
	`, id).Scan(&d.ID, &d.Name, &d.Phone, &franchiseID, &target, &d.Status, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Driver{}, domain.NotFoundError{Resource: "driver"}
	}
	if err != nil {
		return models.Driver{}, err
	}
	d.FranchiseID = nullInt(franchiseID)
	if target.Valid {
		d.DailyTargetAmount = target.Int64
	}
	return d, nil
}

// ListActiveIDs feeds the nightly earnings recorder.
func (r DriversRepository) ListActiveIDs() ([]int64, error) {
	rows, err := r.db().Query(`
		SELECT id FROM drivers WHERE status = 'ACTIVE' ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return out, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

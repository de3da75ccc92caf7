package models

import "time"

// DailyEarnings is the nightly-recorded snapshot of a driver's day, upserted
// by the recorder batch so dashboards do not re-aggregate trips on every view.
type DailyEarnings struct {
	DriverID    int64     `json:"driver_id"`
	StatDate    string    `json:"stat_date"` // YYYY-MM-DD
	Revenue     int64     `json:"revenue"`
	TripCount   int       `json:"trip_count"`
	Incentive   int64     `json:"incentive"`
	DailyTarget int64     `json:"daily_target"`
	RecordedAt  time.Time `json:"recorded_at"`
}

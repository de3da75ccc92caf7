package models

import "time"

type Driver struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	FranchiseID       *int64    `json:"franchise_id,omitempty"`
	DailyTargetAmount int64     `json:"daily_target_amount"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

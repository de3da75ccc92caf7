package models

import "time"

// Penalty is a read-only fact owned by the discipline/penalty collaborator;
// settlements only sum and list them.
type Penalty struct {
	ID        int64     `json:"id"`
	DriverID  int64     `json:"driver_id"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	ImposedAt time.Time `json:"imposed_at"`
}

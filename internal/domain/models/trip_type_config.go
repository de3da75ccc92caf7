package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Built-in trip types. Names are open strings; operators may define more.
const (
	TripTypeCityRound   = "CITY_ROUND"
	TripTypeCityDropoff = "CITY_DROPOFF"
	TripTypeLongRound   = "LONG_ROUND"
	TripTypeLongDropoff = "LONG_DROPOFF"
)

const (
	ConfigStatusActive   = "ACTIVE"
	ConfigStatusInactive = "INACTIVE"
)

// Car categories recognized by the premium adjustment.
const (
	CarCategoryNormal  = "NORMAL"
	CarCategoryPremium = "PREMIUM"
	CarCategoryLuxury  = "LUXURY"
)

// DistanceSlab prices a half-open (From, To] km range with a flat amount.
type DistanceSlab struct {
	FromKm float64 `json:"from"`
	ToKm   float64 `json:"to"`
	Price  int64   `json:"price"`
}

// PremiumPlanKind closes the historically untyped for_premium_cars column
// into three checked variants.
type PremiumPlanKind int

const (
	PremiumPlanNone PremiumPlanKind = iota
	PremiumPlanMultiplier
	PremiumPlanCustomSchedule
)

// PremiumFeePlan is the decoded for_premium_cars value. A bare number means
// an explicit multiplier; any object/array is an operator-defined schedule
// kept opaque (its presence alone triggers the default multiplier fallback).
type PremiumFeePlan struct {
	Kind       PremiumPlanKind
	Multiplier float64
	Schedule   json.RawMessage
}

func (p *PremiumFeePlan) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = PremiumFeePlan{}
		return nil
	}
	var mult float64
	if err := json.Unmarshal(trimmed, &mult); err == nil {
		*p = PremiumFeePlan{Kind: PremiumPlanMultiplier, Multiplier: mult}
		return nil
	}
	// validate it is well-formed JSON before storing it opaquely
	var probe any
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return err
	}
	*p = PremiumFeePlan{Kind: PremiumPlanCustomSchedule, Schedule: append(json.RawMessage(nil), trimmed...)}
	return nil
}

func (p PremiumFeePlan) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PremiumPlanMultiplier:
		return json.Marshal(p.Multiplier)
	case PremiumPlanCustomSchedule:
		return append(json.RawMessage(nil), p.Schedule...), nil
	default:
		return []byte("null"), nil
	}
}

// TripTypeConfig is one versioned pricing rule set for a trip type name.
// Exactly one ACTIVE row may exist per name; updates deactivate the old row
// and insert a new one so settled trips stay reproducible.
//
// Numeric fields are pointers: nil means "use the built-in default for this
// trip type", so stored rows override defaults field by field.
type TripTypeConfig struct {
	ID                   int64          `json:"id"`
	Name                 string         `json:"name"`
	SpecialPrice         bool           `json:"special_price"`
	BasePrice            *int64         `json:"base_price,omitempty"`
	BaseDurationHours    *float64       `json:"base_duration,omitempty"`
	BaseDistanceKm       *float64       `json:"base_distance,omitempty"`
	ExtraPerHour         *int64         `json:"extra_per_hour,omitempty"`
	ExtraPerHalfHour     *int64         `json:"extra_per_half_hour,omitempty"`
	ExtraPerKm           *int64         `json:"extra_per_km,omitempty"`
	PremiumCarMultiplier *float64       `json:"premium_car_multiplier,omitempty"`
	ForPremiumCars       PremiumFeePlan `json:"for_premium_cars,omitempty"`
	DistanceSlabs        []DistanceSlab `json:"distance_slabs,omitempty"`
	Status               string         `json:"status"`
	EffectiveFrom        time.Time      `json:"effective_from"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// HasDurationShape reports whether the config carries the full
// flat-plus-overtime field set.
func (c TripTypeConfig) HasDurationShape() bool {
	return c.BasePrice != nil && c.BaseDurationHours != nil && c.ExtraPerHour != nil
}

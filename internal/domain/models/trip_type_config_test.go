package models

import (
	"encoding/json"
	"testing"
)

func TestPremiumFeePlan_DecodesMultiplier(t *testing.T) {
	var p PremiumFeePlan
	if err := json.Unmarshal([]byte(`1.8`), &p); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Kind != PremiumPlanMultiplier || p.Multiplier != 1.8 {
		t.Fatalf("bare number should decode as multiplier, got %+v", p)
	}
}

func TestPremiumFeePlan_DecodesNullAsNone(t *testing.T) {
	var p PremiumFeePlan
	if err := json.Unmarshal([]byte(`null`), &p); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Kind != PremiumPlanNone {
		t.Fatalf("null should decode as none, got %+v", p)
	}
}

func TestPremiumFeePlan_KeepsCustomScheduleOpaque(t *testing.T) {
	raw := `{"weekend":2.0,"weekday":1.5}`
	var p PremiumFeePlan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Kind != PremiumPlanCustomSchedule {
		t.Fatalf("object should decode as custom schedule, got %+v", p)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(out) != raw {
		t.Fatalf("schedule must survive round trip untouched, got %s", out)
	}

	if err := json.Unmarshal([]byte(`{broken`), &p); err == nil {
		t.Fatalf("malformed JSON must fail")
	}
}

func TestHasDurationShape(t *testing.T) {
	base := int64(400)
	dur := 3.0
	perHour := int64(100)

	full := TripTypeConfig{BasePrice: &base, BaseDurationHours: &dur, ExtraPerHour: &perHour}
	if !full.HasDurationShape() {
		t.Fatalf("full field set should report duration shape")
	}

	partial := TripTypeConfig{BasePrice: &base}
	if partial.HasDurationShape() {
		t.Fatalf("missing overtime fields must not report duration shape")
	}
}

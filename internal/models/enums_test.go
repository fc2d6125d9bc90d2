package models

import "testing"

func TestEventTypeValid(t *testing.T) {
	for _, et := range EventTypes {
		if !et.Valid() {
			t.Errorf("%s should be valid", et)
		}
	}

	invalid := []EventType{"", "seeded", "SPROUTED", "SEEDED ", "observation"}
	for _, et := range invalid {
		if et.Valid() {
			t.Errorf("%q should be rejected", et)
		}
	}
}

func TestDistributionTypeValid(t *testing.T) {
	for _, dt := range []DistributionType{DistributionGift, DistributionTrade} {
		if !dt.Valid() {
			t.Errorf("%s should be valid", dt)
		}
	}

	for _, dt := range []DistributionType{"", "GIFT", "sale", "loan"} {
		if dt.Valid() {
			t.Errorf("%q should be rejected", dt)
		}
	}
}

func TestCareTypeValid(t *testing.T) {
	for _, ct := range CareTypes {
		if !ct.Valid() {
			t.Errorf("%s should be valid", ct)
		}
	}

	for _, ct := range []CareType{"", "watering", "PRUNING"} {
		if ct.Valid() {
			t.Errorf("%q should be rejected", ct)
		}
	}
}

package services

import (
	"testing"
	"time"

	"github.com/plantlady/plantlady-api/internal/models"
	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStreakEndingAt(t *testing.T) {
	asOf := day(2026, 6, 10)

	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"no events", nil, 0},
		{"nothing today breaks immediately", []time.Time{day(2026, 6, 9)}, 0},
		{"single day", []time.Time{day(2026, 6, 10)}, 1},
		{
			"three consecutive days",
			[]time.Time{day(2026, 6, 10), day(2026, 6, 9), day(2026, 6, 8)},
			3,
		},
		{
			"gap stops the count",
			[]time.Time{day(2026, 6, 10), day(2026, 6, 9), day(2026, 6, 7)},
			2,
		},
		{
			"multiple events on one day count once",
			[]time.Time{day(2026, 6, 10), day(2026, 6, 10), day(2026, 6, 9)},
			2,
		},
		{
			"time of day is irrelevant",
			[]time.Time{
				time.Date(2026, 6, 10, 23, 59, 0, 0, time.UTC),
				time.Date(2026, 6, 9, 0, 1, 0, 0, time.UTC),
			},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := streakEndingAt(tt.dates, asOf); got != tt.want {
				t.Errorf("streakEndingAt = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSummarizeDistributions(t *testing.T) {
	five, three := 5, 3

	dists := []models.Distribution{
		{Recipient: "Maria", Quantity: &five, Type: models.DistributionGift},
		{Recipient: "Chris", Quantity: &three, Type: models.DistributionTrade},
		{Recipient: "Maria", Quantity: nil, Type: models.DistributionGift},
	}

	got := summarizeDistributions(dists)

	if got.Total != 3 {
		t.Errorf("Total = %d, want 3", got.Total)
	}
	// nil quantity contributes zero, not one
	if got.TotalQuantity != 8 {
		t.Errorf("TotalQuantity = %d, want 8", got.TotalQuantity)
	}
	if got.Gifts != 2 || got.Trades != 1 {
		t.Errorf("Gifts/Trades = %d/%d, want 2/1", got.Gifts, got.Trades)
	}
	if len(got.Recipients) != 2 || got.Recipients[0] != "Maria" || got.Recipients[1] != "Chris" {
		t.Errorf("Recipients = %v, want [Maria Chris]", got.Recipients)
	}
}

func TestSummarizeDistributionsEmpty(t *testing.T) {
	got := summarizeDistributions(nil)
	if got.Total != 0 || got.TotalQuantity != 0 {
		t.Errorf("empty summary should be zero, got %+v", got)
	}
	if got.Recipients == nil {
		t.Error("Recipients should be an empty slice, not nil")
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestTotalCosts(t *testing.T) {
	costs := []models.SeasonCost{
		{Category: "seed", Cost: mustDecimal(t, "4.99")},
		{Category: "seed", Cost: mustDecimal(t, "3.50")},
		{Category: "material", Cost: mustDecimal(t, "12.25")},
		// Classic float trap: 0.1 + 0.2 must come out exactly 0.3.
		{Category: "tool", Cost: mustDecimal(t, "0.1")},
		{Category: "tool", Cost: mustDecimal(t, "0.2")},
	}

	got := totalCosts(costs)

	if !got.TotalCost.Equal(mustDecimal(t, "21.04")) {
		t.Errorf("TotalCost = %s, want 21.04", got.TotalCost)
	}

	want := map[string]string{"seed": "8.49", "material": "12.25", "tool": "0.3"}
	if len(got.ByCategory) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got.ByCategory), len(want))
	}
	for _, ct := range got.ByCategory {
		if !ct.Total.Equal(mustDecimal(t, want[ct.Category])) {
			t.Errorf("category %s = %s, want %s", ct.Category, ct.Total, want[ct.Category])
		}
	}
	// First-seen order is preserved.
	if got.ByCategory[0].Category != "seed" || got.ByCategory[1].Category != "material" {
		t.Errorf("category order = %v", got.ByCategory)
	}
}

func TestTotalCostsEmpty(t *testing.T) {
	got := totalCosts(nil)
	if !got.TotalCost.IsZero() {
		t.Errorf("TotalCost = %s, want 0", got.TotalCost)
	}
	if got.ByCategory == nil {
		t.Error("ByCategory should be an empty slice, not nil")
	}
}

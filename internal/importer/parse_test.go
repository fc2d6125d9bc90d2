package importer

import (
	"testing"
	"time"
)

func TestParserDate(t *testing.T) {
	p := Parser{Year: 2026}

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"padded full year", "03/15/2026", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"unpadded full year", "3/15/2026", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"two digit year", "4/1/26", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), true},
		{"iso", "2026-05-02", time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), true},
		{"bare month day uses policy year", "2/26", time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC), true},
		{"range takes first bound", "2/26 - 3/18", time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC), true},
		{"range with full years", "3/15/2026 - 4/1/2026", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"whitespace", "   ", time.Time{}, false},
		{"garbage", "when it warms up", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Date(tt.input)
			if ok != tt.ok {
				t.Fatalf("Date(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("Date(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParserDateYearPolicy(t *testing.T) {
	// The same bare date resolves differently under different policies.
	d1, ok := Parser{Year: 2025}.Date("6/15")
	if !ok || d1.Year() != 2025 {
		t.Errorf("Year 2025 policy: got %v, ok=%v", d1, ok)
	}
	d2, ok := Parser{Year: 2026}.Date("6/15")
	if !ok || d2.Year() != 2026 {
		t.Errorf("Year 2026 policy: got %v, ok=%v", d2, ok)
	}
}

func TestIntRange(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"14-21", 14, true},
		{"7", 7, true},
		{" 10 ", 10, true},
		{"10 - 14", 10, true},
		{"", 0, false},
		{"a few", 0, false},
	}

	for _, tt := range tests {
		got, ok := IntRange(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("IntRange(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"$4.99", "4.99", true},
		{"$1,234.56", "1234.56", true},
		{"12", "12", true},
		{"0.00", "0.00", true},
		{"", "0", false},
		{"free", "0", false},
		{"$", "0", false},
	}

	for _, tt := range tests {
		got, ok := Currency(tt.input)
		if ok != tt.ok {
			t.Errorf("Currency(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("Currency(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

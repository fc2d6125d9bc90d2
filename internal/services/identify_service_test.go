package services

import (
	"errors"
	"testing"
)

func TestParseIdentifyText(t *testing.T) {
	raw := `{"common_name":"Monstera","scientific_name":"Monstera deliciosa","description":"A tropical vine.","confidence":0.92,"care_tips":["Bright indirect light","Water when dry"]}`

	result, err := parseIdentifyText(raw)
	if err != nil {
		t.Fatalf("parseIdentifyText: %v", err)
	}
	if result.CommonName != "Monstera" || result.Confidence != 0.92 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(result.CareTips) != 2 {
		t.Errorf("CareTips = %v", result.CareTips)
	}
}

func TestParseIdentifyTextStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"common_name\":\"Basil\",\"scientific_name\":\"Ocimum basilicum\",\"confidence\":0.8}\n```"

	result, err := parseIdentifyText(raw)
	if err != nil {
		t.Fatalf("parseIdentifyText: %v", err)
	}
	if result.CommonName != "Basil" {
		t.Errorf("CommonName = %q", result.CommonName)
	}
	// Absent care tips come back as an empty slice for the JSON column.
	if result.CareTips == nil {
		t.Error("CareTips should not be nil")
	}
}

func TestParseIdentifyTextRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"not json at all", "{}", `{"confidence":0.5}`} {
		_, err := parseIdentifyText(raw)
		if err == nil {
			t.Errorf("parseIdentifyText(%q) should fail", raw)
			continue
		}
		if !errors.Is(err, ErrIdentifyFailed) {
			t.Errorf("error should wrap ErrIdentifyFailed, got %v", err)
		}
	}
}

package core

import "testing"

func TestEffectiveTaxRate(t *testing.T) {
	if got := EffectiveTaxRate(nil); !got.Equal(dec("0.15")) {
		t.Fatalf("empty settings rate = %v, want 0.15", got)
	}
	if got := EffectiveTaxRate([]TaxSetting{}); !got.Equal(dec("0.15")) {
		t.Fatalf("zero-length settings rate = %v, want 0.15", got)
	}

	settings := []TaxSetting{
		{ID: "1", Name: "ISS", Percentage: dec("10")},
		{ID: "2", Name: "PIS", Percentage: dec("2.5")},
	}
	if got := EffectiveTaxRate(settings); !got.Equal(dec("0.125")) {
		t.Fatalf("rate = %v, want 0.125", got)
	}
}

package postcode

import (
	"testing"

	"solarquote_backend/platform/apperr"
)

func TestNormalize_ReformatsCompactPostcode(t *testing.T) {
	got, err := Normalize("sw1a1aa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "SW1A 1AA" {
		t.Fatalf("expected SW1A 1AA, got %q", got)
	}
}

func TestNormalize_StripsInternalWhitespace(t *testing.T) {
	got, err := Normalize("  m1   1ae ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "M1 1AE" {
		t.Fatalf("expected M1 1AE, got %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, raw := range []string{"SW1A1AA", "eh1 2ng", "cf10 1dd", "B11HQ", "ZE1 0AA"} {
		once, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", raw, err)
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(Normalize(%q)): %v", raw, err)
		}
		if once != twice {
			t.Fatalf("not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestNormalize_RejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"", "12345", "SW1A", "ABCD 123", "1W1A 1AA", "SW1A 1A"} {
		_, err := Normalize(raw)
		if err == nil {
			t.Fatalf("expected error for %q", raw)
		}
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
}

func TestArea_ExtractsLeadingLetters(t *testing.T) {
	cases := map[string]string{
		"SW1A 1AA": "SW",
		"M1 1AE":   "M",
		"EH1 2NG":  "EH",
		"B1 1HQ":   "B",
	}
	for normalized, want := range cases {
		if got := Area(normalized); got != want {
			t.Fatalf("Area(%q) = %q, want %q", normalized, got, want)
		}
	}
}

func TestRegionFor_KnownAreas(t *testing.T) {
	cases := map[string]string{
		"SW1A 1AA": "london",
		"EH1 2NG":  "scotland",
		"CF10 1DD": "wales",
		"BT1 1AA":  "northern_ireland",
		"EX4 3PB":  "south_west",
		"M1 1AE":   "north",
	}
	for normalized, want := range cases {
		got := RegionFor(normalized)
		if got.Key != want {
			t.Fatalf("RegionFor(%q) = %q, want %q", normalized, got.Key, want)
		}
		if got.YieldKWhPerKWp <= 0 {
			t.Fatalf("region %q has non-positive yield", got.Key)
		}
	}
}

func TestRegionFor_UnknownAreaFallsBackToDefault(t *testing.T) {
	got := RegionFor("XX1 1AA")
	if got.Key != "default" {
		t.Fatalf("expected default region, got %q", got.Key)
	}
	if got.YieldKWhPerKWp != 975 {
		t.Fatalf("expected default yield 975, got %v", got.YieldKWhPerKWp)
	}
	if got.PriceMultiplier != 1.0 {
		t.Fatalf("expected default multiplier 1.0, got %v", got.PriceMultiplier)
	}
}

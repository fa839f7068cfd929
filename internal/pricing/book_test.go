package pricing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_CarriesCanonicalConstants(t *testing.T) {
	book := Default()

	if book.ImportPricePerKWh != 0.28 {
		t.Fatalf("expected import price 0.28, got %v", book.ImportPricePerKWh)
	}
	if book.IrradianceFactor != 0.85 {
		t.Fatalf("expected irradiance factor 0.85, got %v", book.IrradianceFactor)
	}
	if got := book.Panel("value").Watt; got != 430 {
		t.Fatalf("expected value panel 430W, got %d", got)
	}
	if got := book.RoofCapKWp("medium"); got != 4.0 {
		t.Fatalf("expected medium cap 4.0, got %v", got)
	}
	if err := book.validate(); err != nil {
		t.Fatalf("default book invalid: %v", err)
	}
}

func TestDefault_FallbacksForUnknownKeys(t *testing.T) {
	book := Default()

	if book.Panel("solid_gold") != book.Panel("value") {
		t.Fatal("unknown panel option should fall back to value")
	}
	if book.RoofCapKWp("palace") != book.RoofCapKWp("medium") {
		t.Fatal("unknown roof size should fall back to medium")
	}
	if book.Heuristic("nocturnal") != book.Heuristic("half_day") {
		t.Fatal("unknown occupancy should fall back to half_day")
	}
}

func TestLoad_OverlaysYAMLOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	content := "cost_per_kwp: 1500\nexport_price_per_kwh: 0.12\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write pricing file: %v", err)
	}

	book, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if book.CostPerKWp != 1500 {
		t.Fatalf("expected overridden cost 1500, got %v", book.CostPerKWp)
	}
	if book.ExportPricePerKWh != 0.12 {
		t.Fatalf("expected overridden export price 0.12, got %v", book.ExportPricePerKWh)
	}
	// Untouched values keep their defaults.
	if book.BatteryCostPerKWh != 450 {
		t.Fatalf("expected default battery cost 450, got %v", book.BatteryCostPerKWh)
	}
	if !book.Bands.Covers(3000, 3000) {
		t.Fatal("default band table should still cover 3000/3000")
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	book, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if book.CostPerKWp != Default().CostPerKWp {
		t.Fatal("empty path should return defaults")
	}
}

func TestLoad_RejectsInvalidBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	if err := os.WriteFile(path, []byte("cost_per_kwp: -1\n"), 0o600); err != nil {
		t.Fatalf("write pricing file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for negative cost_per_kwp")
	}
}

func TestBands_ContainmentAndNearestFallback(t *testing.T) {
	table := Default().Bands

	// Exact containment: half_day, consumption 3000, generation 3000, no battery.
	frac, err := table.Fraction("half_day", 3000, 3000, 0)
	if err != nil {
		t.Fatalf("Fraction: %v", err)
	}
	if frac != 0.45 {
		t.Fatalf("expected 0.45, got %v", frac)
	}

	// Battery column snaps to the nearest size.
	frac, err = table.Fraction("half_day", 3000, 3000, 4)
	if err != nil {
		t.Fatalf("Fraction: %v", err)
	}
	if frac != 0.66 {
		t.Fatalf("expected 5kWh column 0.66, got %v", frac)
	}

	// Unknown occupancy falls back to half_day.
	fallback, err := table.Fraction("nocturnal", 3000, 3000, 0)
	if err != nil {
		t.Fatalf("Fraction: %v", err)
	}
	if fallback != 0.45 {
		t.Fatalf("expected half_day fallback 0.45, got %v", fallback)
	}
}

func TestBands_Covers(t *testing.T) {
	table := Default().Bands
	if !table.Covers(6000, 6000) {
		t.Fatal("6000/6000 should be covered")
	}
	if table.Covers(6001, 3000) {
		t.Fatal("generation above ceiling should not be covered")
	}
	if table.Covers(3000, 6001) {
		t.Fatal("consumption above ceiling should not be covered")
	}
}

func TestBands_MissWhenTableEmpty(t *testing.T) {
	table := BandTable{CeilingKWh: 6000, Profiles: map[string][]ConsumptionBand{}}
	if _, err := table.Fraction("half_day", 3000, 3000, 0); err == nil {
		t.Fatal("expected lookup miss for empty table")
	}
}

// Package pricing holds the immutable pricing book: every tariff, fee and
// coefficient the sizing engine and savings estimator consume. The book is
// constructed once at startup and injected, never read from a global, so
// tests can supply alternate tariffs.
package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PanelOption describes a purchasable panel model.
type PanelOption struct {
	Watt           int     `yaml:"watt"`
	CostMultiplier float64 `yaml:"cost_multiplier"`
}

// HeuristicCurve holds the self-consumption heuristic parameters for one
// occupancy profile. Anchors and MaxUplift are sampled at the fixed
// generation/consumption ratio break-points 0.5, 1.0 and 2.0.
type HeuristicCurve struct {
	Anchors      [3]float64 `yaml:"anchors"`
	MaxUplift    [3]float64 `yaml:"max_uplift"`
	BatteryScale float64    `yaml:"battery_scale"`
}

// Book is the full pricing configuration.
type Book struct {
	CostPerKWp        float64 `yaml:"cost_per_kwp"`
	BatteryCostPerKWh float64 `yaml:"battery_cost_per_kwh"`
	ScaffoldFirstRoof float64 `yaml:"scaffold_first_roof"`
	ScaffoldExtraRoof float64 `yaml:"scaffold_extra_roof"`
	PriceRangeFactor  float64 `yaml:"price_range_factor"`
	ImportPricePerKWh float64 `yaml:"import_price_per_kwh"`
	ExportPricePerKWh float64 `yaml:"export_price_per_kwh"`
	IrradianceFactor  float64 `yaml:"irradiance_factor"`
	BirdProtectionFee float64 `yaml:"bird_protection_fee"`
	EVChargerFee      float64 `yaml:"ev_charger_fee"`

	RoofSizeCapsKWp map[string]float64        `yaml:"roof_size_caps_kwp"`
	PanelOptions    map[string]PanelOption    `yaml:"panel_options"`
	Heuristics      map[string]HeuristicCurve `yaml:"heuristics"`

	Bands BandTable `yaml:"bands"`
}

// Default returns the canonical pricing snapshot. The banded-lookup-capable
// revision of the tariff book is authoritative; earlier revisions of the
// constants are superseded history.
func Default() *Book {
	return &Book{
		CostPerKWp:        1400,
		BatteryCostPerKWh: 450,
		ScaffoldFirstRoof: 800,
		ScaffoldExtraRoof: 300,
		PriceRangeFactor:  0.1,
		ImportPricePerKWh: 0.28,
		ExportPricePerKWh: 0.15,
		IrradianceFactor:  0.85,
		BirdProtectionFee: 300,
		EVChargerFee:      950,
		RoofSizeCapsKWp: map[string]float64{
			"small":  2.5,
			"medium": 4.0,
			"large":  6.5,
		},
		PanelOptions: map[string]PanelOption{
			"value":   {Watt: 430, CostMultiplier: 1.0},
			"premium": {Watt: 470, CostMultiplier: 1.15},
		},
		Heuristics: map[string]HeuristicCurve{
			"home_all_day": {
				Anchors:      [3]float64{0.75, 0.55, 0.35},
				MaxUplift:    [3]float64{0.10, 0.25, 0.40},
				BatteryScale: 4.0,
			},
			"half_day": {
				Anchors:      [3]float64{0.65, 0.45, 0.28},
				MaxUplift:    [3]float64{0.15, 0.30, 0.45},
				BatteryScale: 5.0,
			},
			"out_all_day": {
				Anchors:      [3]float64{0.55, 0.35, 0.20},
				MaxUplift:    [3]float64{0.20, 0.35, 0.50},
				BatteryScale: 6.0,
			},
		},
		Bands: defaultBands(),
	}
}

// Load returns the default book overlaid with values from the YAML file at
// path. An empty path returns the defaults unchanged.
func Load(path string) (*Book, error) {
	book := Default()
	if path == "" {
		return book, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing file: %w", err)
	}
	if err := yaml.Unmarshal(data, book); err != nil {
		return nil, fmt.Errorf("parse pricing file: %w", err)
	}
	if err := book.validate(); err != nil {
		return nil, fmt.Errorf("pricing file %s: %w", path, err)
	}
	return book, nil
}

func (b *Book) validate() error {
	if b.CostPerKWp <= 0 {
		return fmt.Errorf("cost_per_kwp must be positive")
	}
	if b.ImportPricePerKWh <= 0 {
		return fmt.Errorf("import_price_per_kwh must be positive")
	}
	if b.PriceRangeFactor < 0 || b.PriceRangeFactor >= 1 {
		return fmt.Errorf("price_range_factor must be in [0, 1)")
	}
	if _, ok := b.PanelOptions["value"]; !ok {
		return fmt.Errorf("panel_options must include the value option")
	}
	if _, ok := b.RoofSizeCapsKWp["medium"]; !ok {
		return fmt.Errorf("roof_size_caps_kwp must include medium")
	}
	return nil
}

// Panel resolves a panel option, defaulting to "value" when the requested
// option is absent or unrecognized.
func (b *Book) Panel(option string) PanelOption {
	if p, ok := b.PanelOptions[option]; ok {
		return p
	}
	return b.PanelOptions["value"]
}

// RoofCapKWp resolves the auto-sizing ceiling for a roof size, defaulting
// to "medium".
func (b *Book) RoofCapKWp(roofSize string) float64 {
	if cap, ok := b.RoofSizeCapsKWp[roofSize]; ok {
		return cap
	}
	return b.RoofSizeCapsKWp["medium"]
}

// Heuristic resolves the heuristic curve for an occupancy profile,
// defaulting to "half_day".
func (b *Book) Heuristic(occupancy string) HeuristicCurve {
	if h, ok := b.Heuristics[occupancy]; ok {
		return h
	}
	return b.Heuristics["half_day"]
}

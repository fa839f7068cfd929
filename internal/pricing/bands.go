package pricing

import (
	_ "embed"
	"fmt"
	"math"

	"solarquote_backend/platform/apperr"

	"gopkg.in/yaml.v3"
)

//go:embed bands.yaml
var defaultBandsYAML []byte

// BatteryColumn is one battery-size column inside a generation row.
type BatteryColumn struct {
	KWh      float64 `yaml:"kwh"`
	Fraction float64 `yaml:"fraction"`
}

// GenerationRow covers a range of annual generation within a consumption band.
type GenerationRow struct {
	MinKWh  float64         `yaml:"min_kwh"`
	MaxKWh  float64         `yaml:"max_kwh"`
	Columns []BatteryColumn `yaml:"columns"`
}

// ConsumptionBand covers a range of annual consumption.
type ConsumptionBand struct {
	MinKWh float64         `yaml:"min_kwh"`
	MaxKWh float64         `yaml:"max_kwh"`
	Rows   []GenerationRow `yaml:"rows"`
}

// BandTable is the banded self-consumption lookup table, measured from
// metered installation data. It only covers generation and consumption up to
// CeilingKWh; outside that domain the heuristic curve applies.
type BandTable struct {
	CeilingKWh float64                      `yaml:"ceiling_kwh"`
	Profiles   map[string][]ConsumptionBand `yaml:"profiles"`
}

func defaultBands() BandTable {
	var table BandTable
	if err := yaml.Unmarshal(defaultBandsYAML, &table); err != nil {
		// The embedded table is part of the build; a parse failure is a bug.
		panic(fmt.Sprintf("embedded bands.yaml: %v", err))
	}
	return table
}

// Covers reports whether both generation and consumption fall inside the
// table's measured domain.
func (t BandTable) Covers(generationKWh, consumptionKWh float64) bool {
	return t.CeilingKWh > 0 &&
		generationKWh <= t.CeilingKWh &&
		consumptionKWh <= t.CeilingKWh
}

// Fraction resolves a self-consumption fraction from the table. Band and row
// selection prefer range containment and fall back to the nearest midpoint;
// the battery column nearest the requested size wins. Any unresolvable step
// returns a lookup-miss error that callers recover from via the heuristic.
func (t BandTable) Fraction(occupancy string, consumptionKWh, generationKWh, batteryKWh float64) (float64, error) {
	bands, ok := t.Profiles[occupancy]
	if !ok {
		bands, ok = t.Profiles["half_day"]
	}
	if !ok || len(bands) == 0 {
		return 0, apperr.LookupMiss("no band table for occupancy profile")
	}

	band, ok := selectBand(bands, consumptionKWh)
	if !ok {
		return 0, apperr.LookupMiss("no consumption band")
	}

	row, ok := selectRow(band.Rows, generationKWh)
	if !ok {
		return 0, apperr.LookupMiss("no generation row")
	}

	column, ok := selectColumn(row.Columns, batteryKWh)
	if !ok {
		return 0, apperr.LookupMiss("no battery column")
	}

	return column.Fraction, nil
}

func selectBand(bands []ConsumptionBand, value float64) (ConsumptionBand, bool) {
	for _, b := range bands {
		if value >= b.MinKWh && value <= b.MaxKWh {
			return b, true
		}
	}
	return nearestByMidpoint(bands, value, func(b ConsumptionBand) (float64, float64) {
		return b.MinKWh, b.MaxKWh
	})
}

func selectRow(rows []GenerationRow, value float64) (GenerationRow, bool) {
	for _, r := range rows {
		if value >= r.MinKWh && value <= r.MaxKWh {
			return r, true
		}
	}
	return nearestByMidpoint(rows, value, func(r GenerationRow) (float64, float64) {
		return r.MinKWh, r.MaxKWh
	})
}

func selectColumn(columns []BatteryColumn, batteryKWh float64) (BatteryColumn, bool) {
	if len(columns) == 0 {
		return BatteryColumn{}, false
	}
	best := columns[0]
	for _, c := range columns[1:] {
		if math.Abs(c.KWh-batteryKWh) < math.Abs(best.KWh-batteryKWh) {
			best = c
		}
	}
	return best, true
}

func nearestByMidpoint[T any](items []T, value float64, bounds func(T) (float64, float64)) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	best := items[0]
	bMin, bMax := bounds(best)
	bestDist := math.Abs((bMin+bMax)/2 - value)
	for _, item := range items[1:] {
		min, max := bounds(item)
		if dist := math.Abs((min+max)/2 - value); dist < bestDist {
			best, bestDist = item, dist
		}
	}
	return best, true
}

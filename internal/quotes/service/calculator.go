package service

import (
	"math"

	"solarquote_backend/internal/postcode"
	"solarquote_backend/internal/pricing"
	"solarquote_backend/internal/quotes/transport"
)

const (
	defaultConsumptionKWh = 3000.0
	kwhPerKWpSizing       = 1000.0
	minTargetKWp          = 2.0
	minPanelCount         = 6
	heavyShadingFactor    = 0.9
	panelShareOfBase      = 0.50
	inverterShareOfBase   = 0.23
	labourMarginRate      = 0.30
)

// Costing is the sizing and cost output consumed by the savings estimator
// and merged into the final quote.
type Costing struct {
	SystemSizeKwp        float64
	PanelCount           int
	PanelWatt            int
	PriceLow             int
	PriceHigh            int
	Breakdown            transport.CostBreakdown
	AnnualGenerationKWh  int
	AnnualConsumptionKWh float64
}

// Calculate sizes the system and produces the itemized cost breakdown.
// generationOverrideKWh, when present, is the upstream irradiance estimate;
// absent, generation falls back to the flat irradiance-factor assumption.
func Calculate(book *pricing.Book, region postcode.Region, req transport.QuoteRequest, generationOverrideKWh *float64) Costing {
	panel := book.Panel(req.PanelOption)
	panelKWp := float64(panel.Watt) / 1000.0

	consumption := resolveConsumption(book, req)
	count := resolvePanelCount(book, req, panelKWp, consumption)
	capacityKWp := float64(count) * panelKWp

	regionMult := region.PriceMultiplier
	baseCost := capacityKWp * book.CostPerKWp * panel.CostMultiplier * regionMult

	roofCount := len(req.Roofs)
	if roofCount < 1 {
		roofCount = 1
	}
	scaffolding := (book.ScaffoldFirstRoof + float64(roofCount-1)*book.ScaffoldExtraRoof) * regionMult

	var battery float64
	if req.BatteryKWh > 0 {
		battery = req.BatteryKWh * book.BatteryCostPerKWh * regionMult
	}

	var extras float64
	if req.Extras.BirdProtection {
		extras += book.BirdProtectionFee * regionMult
	}
	if req.Extras.EVCharger {
		extras += book.EVChargerFee * regionMult
	}

	breakdown := transport.CostBreakdown{
		Panels:      roundInt(baseCost * panelShareOfBase),
		Inverter:    roundInt(baseCost * inverterShareOfBase),
		Scaffolding: roundInt(scaffolding),
		Battery:     roundInt(battery),
		Extras:      roundInt(extras),
	}
	directCost := breakdown.Panels + breakdown.Inverter + breakdown.Scaffolding +
		breakdown.Battery + breakdown.Extras
	breakdown.LabourAndMargin = roundInt(float64(directCost) * labourMarginRate)
	totalBasis := float64(directCost + breakdown.LabourAndMargin)

	generation := capacityKWp * book.IrradianceFactor * 1000.0
	if generationOverrideKWh != nil && isFinite(*generationOverrideKWh) {
		generation = *generationOverrideKWh
	}

	return Costing{
		SystemSizeKwp:        round2(capacityKWp),
		PanelCount:           count,
		PanelWatt:            panel.Watt,
		PriceLow:             roundInt(totalBasis * (1 - book.PriceRangeFactor)),
		PriceHigh:            roundInt(totalBasis * (1 + book.PriceRangeFactor)),
		Breakdown:            breakdown,
		AnnualGenerationKWh:  roundInt(generation),
		AnnualConsumptionKWh: consumption,
	}
}

// resolveConsumption picks the annual consumption signal: metered annual kWh
// first, then a derivation from the monthly bill, then the national default.
func resolveConsumption(book *pricing.Book, req transport.QuoteRequest) float64 {
	if req.AnnualKWh != nil && *req.AnnualKWh > 0 {
		return *req.AnnualKWh
	}
	if req.MonthlyBill != nil && *req.MonthlyBill > 0 {
		return *req.MonthlyBill * 12.0 / book.ImportPricePerKWh
	}
	return defaultConsumptionKWh
}

// resolvePanelCount applies the sizing precedence: a positive roof-derived
// total wins, then a manual override, then automatic sizing against the
// roof-size capacity ceiling.
func resolvePanelCount(book *pricing.Book, req transport.QuoteRequest, panelKWp, consumptionKWh float64) int {
	roofTotal := 0
	for _, face := range req.Roofs {
		if face.Panels > 0 {
			roofTotal += face.Panels
		}
	}
	if roofTotal > 0 {
		return roofTotal
	}

	if req.PanelCount != nil && *req.PanelCount > 0 {
		return *req.PanelCount
	}

	targetKWp := consumptionKWh / kwhPerKWpSizing
	cap := book.RoofCapKWp(req.RoofSize)
	if targetKWp < minTargetKWp {
		targetKWp = minTargetKWp
	}
	if targetKWp > cap {
		targetKWp = cap
	}
	if req.Shading == "a_lot" {
		targetKWp *= heavyShadingFactor
	}

	count := roundInt(targetKWp / panelKWp)
	if count < minPanelCount {
		count = minPanelCount
	}
	return count
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

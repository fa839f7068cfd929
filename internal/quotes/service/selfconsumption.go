package service

import (
	"math"

	"solarquote_backend/internal/pricing"
	"solarquote_backend/internal/quotes/transport"
)

// Ratio break-points the heuristic curves are sampled at.
var ratioBreakpoints = [3]float64{0.5, 1.0, 2.0}

const (
	maxSelfConsumptionFraction = 0.95
	maxBatteryUplift           = 0.80
)

// SavingsInput carries the figures the estimator consumes.
type SavingsInput struct {
	GenerationKWh  float64
	ConsumptionKWh float64
	BatteryKWh     float64
	Occupancy      string
	PriceLow       int
	PriceHigh      int
}

// SavingsResult is the self-consumption and financial outcome.
type SavingsResult struct {
	Fraction           float64
	SelfConsumptionKWh int
	AnnualBillSavings  int
	AnnualSEGIncome    int
	TotalAnnualBenefit int
	SimplePaybackYears *float64
	Model              string
}

// EstimateSavings resolves a self-consumption fraction (banded table when the
// inputs fall inside its measured domain, continuous heuristic otherwise or
// on any table miss) and converts it into bill savings, export income and a
// simple payback period.
func EstimateSavings(book *pricing.Book, in SavingsInput) SavingsResult {
	// Degenerate-input guard, not an error: no generation or no consumption
	// means nothing to estimate.
	if in.GenerationKWh <= 0 || in.ConsumptionKWh <= 0 {
		return SavingsResult{Model: transport.SavingsModelHeuristic}
	}

	fraction, model := resolveFraction(book, in)
	fraction = clamp(fraction, 0, maxSelfConsumptionFraction)

	selfKWh := roundInt(fraction * in.GenerationKWh)
	exportKWh := in.GenerationKWh - float64(selfKWh)
	if exportKWh < 0 {
		exportKWh = 0
	}

	savings := roundInt(float64(selfKWh) * book.ImportPricePerKWh)
	segIncome := roundInt(exportKWh * book.ExportPricePerKWh)
	benefit := savings + segIncome

	var payback *float64
	if benefit > 0 {
		midPrice := float64(in.PriceLow+in.PriceHigh) / 2.0
		years := math.Round(midPrice/float64(benefit)*10) / 10
		payback = &years
	}

	return SavingsResult{
		Fraction:           fraction,
		SelfConsumptionKWh: selfKWh,
		AnnualBillSavings:  savings,
		AnnualSEGIncome:    segIncome,
		TotalAnnualBenefit: benefit,
		SimplePaybackYears: payback,
		Model:              model,
	}
}

func resolveFraction(book *pricing.Book, in SavingsInput) (float64, string) {
	if book.Bands.Covers(in.GenerationKWh, in.ConsumptionKWh) {
		fraction, err := book.Bands.Fraction(in.Occupancy, in.ConsumptionKWh, in.GenerationKWh, in.BatteryKWh)
		if err == nil {
			return fraction, transport.SavingsModelTable
		}
		// Lookup miss: fall through to the heuristic.
	}
	return heuristicFraction(book.Heuristic(in.Occupancy), in), transport.SavingsModelHeuristic
}

// heuristicFraction interpolates the base fraction from the occupancy
// anchors and adds a saturating-exponential battery uplift.
func heuristicFraction(curve pricing.HeuristicCurve, in SavingsInput) float64 {
	ratio := clamp(in.GenerationKWh/in.ConsumptionKWh, ratioBreakpoints[0], ratioBreakpoints[2])

	base := interpolate(ratio, curve.Anchors)

	var uplift float64
	if in.BatteryKWh > 0 && curve.BatteryScale > 0 {
		maxAdditional := interpolate(ratio, curve.MaxUplift)
		uplift = maxAdditional * (1 - math.Exp(-in.BatteryKWh/curve.BatteryScale))
		if uplift > maxBatteryUplift {
			uplift = maxBatteryUplift
		}
	}

	return base + uplift
}

// interpolate evaluates a piecewise-linear curve sampled at the fixed ratio
// break-points, clamping outside the sampled range.
func interpolate(ratio float64, values [3]float64) float64 {
	switch {
	case ratio <= ratioBreakpoints[0]:
		return values[0]
	case ratio >= ratioBreakpoints[2]:
		return values[2]
	case ratio <= ratioBreakpoints[1]:
		t := (ratio - ratioBreakpoints[0]) / (ratioBreakpoints[1] - ratioBreakpoints[0])
		return values[0] + t*(values[1]-values[0])
	default:
		t := (ratio - ratioBreakpoints[1]) / (ratioBreakpoints[2] - ratioBreakpoints[1])
		return values[1] + t*(values[2]-values[1])
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

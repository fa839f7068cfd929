package service

import (
	"math"
	"testing"

	"solarquote_backend/internal/pricing"
	"solarquote_backend/internal/quotes/transport"
)

func TestEstimateSavingsTableBand(t *testing.T) {
	book := pricing.Default()
	got := EstimateSavings(book, SavingsInput{
		GenerationKWh:  3000,
		ConsumptionKWh: 3000,
		Occupancy:      "half_day",
		PriceLow:       5000,
		PriceHigh:      5000,
	})

	if got.Model != transport.SavingsModelTable {
		t.Fatalf("model = %q, want table inside the measured domain", got.Model)
	}
	if got.Fraction != 0.45 {
		t.Fatalf("fraction = %v, want 0.45", got.Fraction)
	}
	if got.SelfConsumptionKWh != 1350 {
		t.Fatalf("self consumption = %d, want 1350", got.SelfConsumptionKWh)
	}
	if got.AnnualBillSavings != 378 {
		t.Fatalf("bill savings = %d, want 378", got.AnnualBillSavings)
	}
	// 1650 kWh exported at £0.15.
	if got.AnnualSEGIncome != 248 {
		t.Fatalf("seg income = %d, want 248", got.AnnualSEGIncome)
	}
	if got.TotalAnnualBenefit != 626 {
		t.Fatalf("benefit = %d, want 626", got.TotalAnnualBenefit)
	}
	if got.SimplePaybackYears == nil || *got.SimplePaybackYears != 8.0 {
		t.Fatalf("payback = %v, want 8.0", got.SimplePaybackYears)
	}
}

func TestEstimateSavingsBatteryColumnSelection(t *testing.T) {
	book := pricing.Default()
	got := EstimateSavings(book, SavingsInput{
		GenerationKWh:  3000,
		ConsumptionKWh: 3000,
		BatteryKWh:     5,
		Occupancy:      "half_day",
	})
	if got.Fraction != 0.66 {
		t.Fatalf("fraction = %v, want the 5 kWh column 0.66", got.Fraction)
	}
	// 4 kWh is nearer the 5 kWh column than the 0 kWh one.
	nearest := EstimateSavings(book, SavingsInput{
		GenerationKWh:  3000,
		ConsumptionKWh: 3000,
		BatteryKWh:     4,
		Occupancy:      "half_day",
	})
	if nearest.Fraction != 0.66 {
		t.Fatalf("fraction = %v, want 0.66 via nearest column", nearest.Fraction)
	}
}

func TestEstimateSavingsHeuristicOutsideTable(t *testing.T) {
	book := pricing.Default()

	// Generation above the table ceiling forces the heuristic. Ratio 2.0
	// sits exactly on the last anchor.
	base := EstimateSavings(book, SavingsInput{
		GenerationKWh:  7000,
		ConsumptionKWh: 3500,
		Occupancy:      "half_day",
	})
	if base.Model != transport.SavingsModelHeuristic {
		t.Fatalf("model = %q, want heuristic above the table ceiling", base.Model)
	}
	if base.Fraction != 0.28 {
		t.Fatalf("fraction = %v, want the 0.28 anchor with no battery", base.Fraction)
	}

	withBattery := EstimateSavings(book, SavingsInput{
		GenerationKWh:  7000,
		ConsumptionKWh: 3500,
		BatteryKWh:     5,
		Occupancy:      "half_day",
	})
	want := 0.28 + 0.45*(1-math.Exp(-1))
	if math.Abs(withBattery.Fraction-want) > 1e-9 {
		t.Fatalf("fraction = %v, want %v", withBattery.Fraction, want)
	}
}

func TestEstimateSavingsZeroBatteryHasNoUplift(t *testing.T) {
	book := pricing.Default()
	for _, occupancy := range []string{"home_all_day", "half_day", "out_all_day"} {
		got := EstimateSavings(book, SavingsInput{
			GenerationKWh:  8000,
			ConsumptionKWh: 8000,
			BatteryKWh:     0,
			Occupancy:      occupancy,
		})
		anchor := book.Heuristic(occupancy).Anchors[1]
		if got.Fraction != anchor {
			t.Fatalf("%s: fraction = %v, want the bare anchor %v", occupancy, got.Fraction, anchor)
		}
	}
}

func TestEstimateSavingsDegenerateInput(t *testing.T) {
	book := pricing.Default()
	for _, in := range []SavingsInput{
		{GenerationKWh: 0, ConsumptionKWh: 3000},
		{GenerationKWh: 3000, ConsumptionKWh: 0},
		{GenerationKWh: -1, ConsumptionKWh: -1},
	} {
		got := EstimateSavings(book, in)
		if got.Fraction != 0 || got.SelfConsumptionKWh != 0 || got.TotalAnnualBenefit != 0 {
			t.Fatalf("degenerate input %+v produced non-zero result %+v", in, got)
		}
		if got.SimplePaybackYears != nil {
			t.Fatalf("degenerate input %+v produced a payback", in)
		}
		if got.Model != transport.SavingsModelHeuristic {
			t.Fatalf("degenerate input model = %q, want heuristic", got.Model)
		}
	}
}

func TestEstimateSavingsFractionBounds(t *testing.T) {
	book := pricing.Default()
	for _, occupancy := range []string{"home_all_day", "half_day", "out_all_day", "unknown"} {
		for _, battery := range []float64{0, 2.5, 5, 10, 25, 100} {
			for _, gen := range []float64{500, 2000, 3500, 5500, 9000} {
				for _, cons := range []float64{1000, 3000, 5000, 8000} {
					got := EstimateSavings(book, SavingsInput{
						GenerationKWh:  gen,
						ConsumptionKWh: cons,
						BatteryKWh:     battery,
						Occupancy:      occupancy,
					})
					if got.Fraction < 0 || got.Fraction > 0.95 {
						t.Fatalf("fraction %v out of [0, 0.95] for occ=%s battery=%v gen=%v cons=%v",
							got.Fraction, occupancy, battery, gen, cons)
					}
				}
			}
		}
	}
}

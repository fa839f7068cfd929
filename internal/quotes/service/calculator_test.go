package service

import (
	"math"
	"testing"

	"solarquote_backend/internal/postcode"
	"solarquote_backend/internal/pricing"
	"solarquote_backend/internal/quotes/transport"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestCalculateFromMonthlyBill(t *testing.T) {
	book := pricing.Default()
	req := transport.QuoteRequest{
		Postcode:    "SW1A 1AA",
		HouseNumber: "10",
		MonthlyBill: floatPtr(100),
		RoofSize:    "medium",
	}

	got := Calculate(book, postcode.DefaultRegion, req, nil)

	// £100/month at £0.28/kWh is 4285.7 kWh/year.
	if math.Abs(got.AnnualConsumptionKWh-4285.714285714286) > 0.01 {
		t.Fatalf("consumption = %v, want ~4285.71", got.AnnualConsumptionKWh)
	}
	// The 4.0 kWp medium-roof ceiling binds: 4.0 / 0.43 rounds to 9 panels.
	if got.PanelCount != 9 {
		t.Fatalf("panel count = %d, want 9", got.PanelCount)
	}
	if got.SystemSizeKwp != 3.87 {
		t.Fatalf("system size = %v, want 3.87", got.SystemSizeKwp)
	}
	if got.PanelWatt != 430 {
		t.Fatalf("panel watt = %d, want 430", got.PanelWatt)
	}
	// No irradiance override: flat fallback 3.87 * 0.85 * 1000.
	if got.AnnualGenerationKWh != 3290 {
		t.Fatalf("generation = %d, want 3290", got.AnnualGenerationKWh)
	}
	if got.PriceLow != 5564 || got.PriceHigh != 6800 {
		t.Fatalf("price range = [%d, %d], want [5564, 6800]", got.PriceLow, got.PriceHigh)
	}
}

func TestCalculatePanelCountPrecedence(t *testing.T) {
	book := pricing.Default()

	t.Run("roof faces win over manual count", func(t *testing.T) {
		req := transport.QuoteRequest{
			PanelCount: intPtr(20),
			Roofs: []transport.RoofFaceInput{
				{Panels: 4, Orientation: "S"},
				{Panels: 5, Orientation: "W"},
			},
		}
		got := Calculate(book, postcode.DefaultRegion, req, nil)
		if got.PanelCount != 9 {
			t.Fatalf("panel count = %d, want 9 from roof faces", got.PanelCount)
		}
		// Two roofs: first-roof scaffold plus one extra.
		if got.Breakdown.Scaffolding != 1100 {
			t.Fatalf("scaffolding = %d, want 1100", got.Breakdown.Scaffolding)
		}
	})

	t.Run("manual count wins over auto sizing", func(t *testing.T) {
		req := transport.QuoteRequest{PanelCount: intPtr(10)}
		got := Calculate(book, postcode.DefaultRegion, req, nil)
		if got.PanelCount != 10 {
			t.Fatalf("panel count = %d, want 10", got.PanelCount)
		}
		if got.SystemSizeKwp != 4.3 {
			t.Fatalf("system size = %v, want 4.3", got.SystemSizeKwp)
		}
	})

	t.Run("auto sizing floors at minimum count", func(t *testing.T) {
		req := transport.QuoteRequest{AnnualKWh: floatPtr(500), RoofSize: "small"}
		got := Calculate(book, postcode.DefaultRegion, req, nil)
		if got.PanelCount != 6 {
			t.Fatalf("panel count = %d, want floor of 6", got.PanelCount)
		}
	})

	t.Run("heavy shading shrinks the auto target", func(t *testing.T) {
		// Default 3000 kWh gives a 3.0 kWp target; a_lot derates to 2.7,
		// which rounds to 6 panels.
		req := transport.QuoteRequest{Shading: "a_lot"}
		got := Calculate(book, postcode.DefaultRegion, req, nil)
		if got.PanelCount != 6 {
			t.Fatalf("panel count = %d, want 6", got.PanelCount)
		}
	})
}

func TestCalculateBatteryComponent(t *testing.T) {
	book := pricing.Default()

	noBattery := Calculate(book, postcode.DefaultRegion, transport.QuoteRequest{}, nil)
	if noBattery.Breakdown.Battery != 0 {
		t.Fatalf("battery component = %d, want 0 without a battery", noBattery.Breakdown.Battery)
	}

	withBattery := Calculate(book, postcode.DefaultRegion, transport.QuoteRequest{BatteryKWh: 10}, nil)
	if withBattery.Breakdown.Battery != 4500 {
		t.Fatalf("battery component = %d, want 4500", withBattery.Breakdown.Battery)
	}
}

func TestCalculateExtras(t *testing.T) {
	book := pricing.Default()
	req := transport.QuoteRequest{
		Extras: transport.ExtrasInput{BirdProtection: true, EVCharger: true},
	}
	got := Calculate(book, postcode.DefaultRegion, req, nil)
	if got.Breakdown.Extras != 1250 {
		t.Fatalf("extras = %d, want 1250", got.Breakdown.Extras)
	}
}

func TestCalculateRegionMultiplier(t *testing.T) {
	book := pricing.Default()
	london := postcode.RegionFor("SW1A 1AA")
	if london.Key != "london" {
		t.Fatalf("region = %q, want london", london.Key)
	}

	got := Calculate(book, london, transport.QuoteRequest{}, nil)
	if got.Breakdown.Scaffolding != 880 {
		t.Fatalf("scaffolding = %d, want 880 with the london multiplier", got.Breakdown.Scaffolding)
	}
}

func TestCalculateGenerationOverride(t *testing.T) {
	book := pricing.Default()
	got := Calculate(book, postcode.DefaultRegion, transport.QuoteRequest{}, floatPtr(5000))
	if got.AnnualGenerationKWh != 5000 {
		t.Fatalf("generation = %d, want the 5000 override", got.AnnualGenerationKWh)
	}
}

func TestCalculatePremiumPanel(t *testing.T) {
	book := pricing.Default()
	got := Calculate(book, postcode.DefaultRegion, transport.QuoteRequest{PanelOption: "premium"}, nil)
	if got.PanelWatt != 470 {
		t.Fatalf("panel watt = %d, want 470", got.PanelWatt)
	}
	// Unknown options fall back to the value panel.
	fallback := Calculate(book, postcode.DefaultRegion, transport.QuoteRequest{PanelOption: "diamond"}, nil)
	if fallback.PanelWatt != 430 {
		t.Fatalf("panel watt = %d, want 430 fallback", fallback.PanelWatt)
	}
}

func TestCalculateBreakdownSumsToBasis(t *testing.T) {
	book := pricing.Default()
	requests := []transport.QuoteRequest{
		{},
		{MonthlyBill: floatPtr(180), RoofSize: "large", BatteryKWh: 5},
		{PanelCount: intPtr(14), PanelOption: "premium", Extras: transport.ExtrasInput{EVCharger: true}},
		{Roofs: []transport.RoofFaceInput{{Panels: 8}, {Panels: 4}}, BatteryKWh: 13.5},
	}

	for _, req := range requests {
		got := Calculate(book, postcode.RegionFor("EH1 1AA"), req, nil)
		b := got.Breakdown
		direct := b.Panels + b.Inverter + b.Scaffolding + b.Battery + b.Extras
		basis := float64(direct + b.LabourAndMargin)

		if b.LabourAndMargin != roundInt(float64(direct)*labourMarginRate) {
			t.Fatalf("labour = %d, want %d", b.LabourAndMargin, roundInt(float64(direct)*labourMarginRate))
		}
		if got.PriceLow != roundInt(basis*(1-book.PriceRangeFactor)) {
			t.Fatalf("priceLow = %d, want %d", got.PriceLow, roundInt(basis*(1-book.PriceRangeFactor)))
		}
		if got.PriceHigh != roundInt(basis*(1+book.PriceRangeFactor)) {
			t.Fatalf("priceHigh = %d, want %d", got.PriceHigh, roundInt(basis*(1+book.PriceRangeFactor)))
		}
		if got.PriceLow > got.PriceHigh {
			t.Fatalf("priceLow %d > priceHigh %d", got.PriceLow, got.PriceHigh)
		}
	}
}

// Package transport defines the wire types for the quotes module.
package transport

// RoofFaceInput is one declared roof plane in a survey submission.
type RoofFaceInput struct {
	Panels      int      `json:"panels" validate:"gte=0"`
	Tilt        *float64 `json:"tilt,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
	Shading     string   `json:"shading,omitempty"`
}

// ExtrasInput holds the optional add-ons a customer can select.
type ExtrasInput struct {
	BirdProtection bool `json:"birdProtection"`
	EVCharger      bool `json:"evCharger"`
}

// ContactInput is the survey respondent's contact details.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// QuoteRequest is the survey payload. Enum-like fields (roofSize,
// panelOption, occupancyProfile, shading) tolerate unknown spellings and are
// defaulted downstream rather than rejected; only shape violations and the
// hard preconditions (postcode, house number) abort the request.
type QuoteRequest struct {
	Postcode         string          `json:"postcode" validate:"required"`
	HouseNumber      string          `json:"houseNumber" validate:"required"`
	MonthlyBill      *float64        `json:"monthlyBill,omitempty" validate:"omitempty,gt=0"`
	AnnualKWh        *float64        `json:"annualKWh,omitempty" validate:"omitempty,gt=0"`
	RoofSize         string          `json:"roofSize,omitempty"`
	Roofs            []RoofFaceInput `json:"roofs,omitempty" validate:"dive"`
	PanelOption      string          `json:"panelOption,omitempty"`
	PanelCount       *int            `json:"panelCount,omitempty" validate:"omitempty,gt=0"`
	BatteryKWh       float64         `json:"batteryKWh,omitempty" validate:"gte=0"`
	OccupancyProfile string          `json:"occupancyProfile,omitempty"`
	Shading          string          `json:"shading,omitempty"`
	Extras           ExtrasInput     `json:"extras"`
	Contact          ContactInput    `json:"contact"`
}

// CostBreakdown itemizes the installation cost. All components are whole
// currency units; components plus labour-and-margin sum to the price basis
// before the range adjustment is applied.
type CostBreakdown struct {
	Panels          int `json:"panels"`
	Inverter        int `json:"inverter"`
	Scaffolding     int `json:"scaffolding"`
	Battery         int `json:"battery"`
	Extras          int `json:"extras"`
	LabourAndMargin int `json:"labourAndMargin"`
}

// Savings model tags identifying which estimator produced the
// self-consumption fraction.
const (
	SavingsModelTable     = "table"
	SavingsModelHeuristic = "heuristic"
)

// Quote is the computed, immutable result returned to the caller and
// snapshotted on the lead.
type Quote struct {
	SystemSizeKwp               float64       `json:"systemSizeKwp"`
	PanelCount                  int           `json:"panelCount"`
	PanelWatt                   int           `json:"panelWatt"`
	PriceLow                    int           `json:"priceLow"`
	PriceHigh                   int           `json:"priceHigh"`
	CostBreakdown               CostBreakdown `json:"costBreakdown"`
	EstAnnualGenerationKWh      int           `json:"estAnnualGenerationKWh"`
	AssumedAnnualConsumptionKWh int           `json:"assumedAnnualConsumptionKWh"`
	SelfConsumptionFraction     float64       `json:"selfConsumptionFraction"`
	SelfConsumptionKWh          int           `json:"selfConsumptionKWh"`
	AnnualBillSavings           int           `json:"annualBillSavings"`
	AnnualSEGIncome             int           `json:"annualSegIncome"`
	TotalAnnualBenefit          int           `json:"totalAnnualBenefit"`
	SimplePaybackYears          *float64      `json:"simplePaybackYears"`
	SavingsModel                string        `json:"savingsModel"`
}

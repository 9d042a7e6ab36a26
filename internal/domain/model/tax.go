package model

import "github.com/shopspring/decimal"

// TaxCalculationInput carries the shared inputs of the three tax calculations.
type TaxCalculationInput struct {
	PropertyPrice decimal.Decimal
	// PublicPrice is the officially assessed price; zero means it is
	// estimated from PropertyPrice.
	PublicPrice decimal.Decimal
	// PurchasePrice and SalePrice drive the transfer tax; a zero SalePrice
	// skips it.
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	RegionCode    string
	AreaM2        float64
	HouseCount    int
	HoldingYears  int
	IsFirstHome   bool
}

// AcquisitionTax is the one-off tax due on purchase.
type AcquisitionTax struct {
	Principal         decimal.Decimal
	EducationTax      decimal.Decimal
	RuralTax          decimal.Decimal
	LocalSurcharge    decimal.Decimal
	Total             decimal.Decimal
	AppliedRatePct    float64
	EffectiveRatePct  float64
	FirstHomeDiscount bool
}

// TaxBracket describes the income-tax bracket a transfer fell into.
type TaxBracket struct {
	Name    string
	RatePct float64
}

// TransferTax is the capital-gains tax due on sale.
type TransferTax struct {
	Gain              decimal.Decimal
	LongTermDeduction decimal.Decimal
	BasicDeduction    decimal.Decimal
	TaxableBase       decimal.Decimal
	Principal         decimal.Decimal
	LocalSurcharge    decimal.Decimal
	Total             decimal.Decimal
	Bracket           TaxBracket
	LongTermRatePct   float64
	EffectiveRatePct  float64
}

// HoldingTax is the annual property and comprehensive real-estate tax.
type HoldingTax struct {
	PublicPrice      decimal.Decimal
	TaxBase          decimal.Decimal
	Principal        decimal.Decimal
	LocalSurcharge   decimal.Decimal
	ComprehensiveTax decimal.Decimal
	Total            decimal.Decimal
	EffectiveRatePct float64
}

// TaxResult combines all three calculations with two summary totals.
type TaxResult struct {
	Acquisition       AcquisitionTax
	Transfer          TransferTax
	Holding           HoldingTax
	InitialCost       decimal.Decimal
	AnnualHoldingCost decimal.Decimal
}

package service

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/port"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
	"github.com/bibbank/bib/services/realcare-service/pkg/money"
)

// floorWon truncates a tax amount to whole won.
func floorWon(d decimal.Decimal) decimal.Decimal {
	return money.Won(d).Floor().Amount()
}

// progressiveRate is one row of a quick-deduction tax table: tax on a base in
// the row is base*RatePct/100 - QuickDeduction.
type progressiveRate struct {
	Name           string
	RatePct        float64
	QuickDeduction float64
}

func (r progressiveRate) apply(base decimal.Decimal) decimal.Decimal {
	tax := base.Mul(decimal.NewFromFloat(r.RatePct)).Div(hundred).Sub(decimal.NewFromFloat(r.QuickDeduction))
	return floorWon(decimal.Max(decimal.Zero, tax))
}

type rateSelector func(model.AcquisitionTaxRates) float64

// Acquisition tax.
var (
	acquisitionTiers = valueobject.MustTierTable(valueobject.AtMost,
		rateSelector(func(r model.AcquisitionTaxRates) float64 { return r.Above900M }),
		valueobject.Tier[rateSelector]{Limit: 6e8, Value: func(r model.AcquisitionTaxRates) float64 { return r.UpTo600M }},
		valueobject.Tier[rateSelector]{Limit: 9e8, Value: func(r model.AcquisitionTaxRates) float64 { return r.UpTo900M }},
	)

	firstHomeDiscountPct   = 0.5
	firstHomeFloorPct      = 0.4
	firstHomePriceLimit    = decimal.NewFromInt(600_000_000)
	educationSurchargeRate = decimal.NewFromFloat(0.2)
	ruralSurchargeRate     = decimal.NewFromFloat(0.2)
	ruralExemptAreaM2      = 85.0
)

// Transfer tax.
var (
	basicDeduction     = decimal.NewFromInt(2_500_000)
	transferLocalRate  = decimal.NewFromFloat(0.1)
	longTermDeductions = valueobject.MustTierTable(valueobject.AtLeast, 0.0,
		valueobject.Tier[float64]{Limit: 15, Value: 30},
		valueobject.Tier[float64]{Limit: 14, Value: 28},
		valueobject.Tier[float64]{Limit: 13, Value: 26},
		valueobject.Tier[float64]{Limit: 12, Value: 24},
		valueobject.Tier[float64]{Limit: 11, Value: 22},
		valueobject.Tier[float64]{Limit: 10, Value: 20},
		valueobject.Tier[float64]{Limit: 9, Value: 18},
		valueobject.Tier[float64]{Limit: 8, Value: 16},
		valueobject.Tier[float64]{Limit: 7, Value: 14},
		valueobject.Tier[float64]{Limit: 6, Value: 12},
		valueobject.Tier[float64]{Limit: 5, Value: 10},
		valueobject.Tier[float64]{Limit: 4, Value: 8},
		valueobject.Tier[float64]{Limit: 3, Value: 6},
	)
	incomeTaxBrackets = valueobject.MustTierTable(valueobject.AtMost,
		progressiveRate{Name: "over 1B", RatePct: 45, QuickDeduction: 65_940_000},
		valueobject.Tier[progressiveRate]{Limit: 14e6, Value: progressiveRate{Name: "up to 14M", RatePct: 6}},
		valueobject.Tier[progressiveRate]{Limit: 50e6, Value: progressiveRate{Name: "14M-50M", RatePct: 15, QuickDeduction: 1_260_000}},
		valueobject.Tier[progressiveRate]{Limit: 88e6, Value: progressiveRate{Name: "50M-88M", RatePct: 24, QuickDeduction: 5_760_000}},
		valueobject.Tier[progressiveRate]{Limit: 150e6, Value: progressiveRate{Name: "88M-150M", RatePct: 35, QuickDeduction: 15_440_000}},
		valueobject.Tier[progressiveRate]{Limit: 300e6, Value: progressiveRate{Name: "150M-300M", RatePct: 38, QuickDeduction: 19_940_000}},
		valueobject.Tier[progressiveRate]{Limit: 500e6, Value: progressiveRate{Name: "300M-500M", RatePct: 40, QuickDeduction: 25_940_000}},
		valueobject.Tier[progressiveRate]{Limit: 1e9, Value: progressiveRate{Name: "500M-1B", RatePct: 42, QuickDeduction: 35_940_000}},
	)
	shortTermRates = valueobject.MustTierTable(valueobject.AtMost, progressiveRate{},
		valueobject.Tier[progressiveRate]{Limit: 0, Value: progressiveRate{Name: "held under 1 year", RatePct: 70}},
		valueobject.Tier[progressiveRate]{Limit: 1, Value: progressiveRate{Name: "held under 2 years", RatePct: 60}},
	)
)

// Holding tax.
var (
	fairValueRatio      = decimal.NewFromFloat(0.6)
	publicPriceRatio    = decimal.NewFromFloat(0.7)
	comprehensiveSingle = decimal.NewFromInt(1_200_000_000)
	comprehensiveMulti  = decimal.NewFromInt(900_000_000)
	propertyTaxBrackets = valueobject.MustTierTable(valueobject.AtMost,
		progressiveRate{Name: "over 300M", RatePct: 0.4, QuickDeduction: 630_000},
		valueobject.Tier[progressiveRate]{Limit: 60e6, Value: progressiveRate{Name: "up to 60M", RatePct: 0.1}},
		valueobject.Tier[progressiveRate]{Limit: 150e6, Value: progressiveRate{Name: "60M-150M", RatePct: 0.15, QuickDeduction: 30_000}},
		valueobject.Tier[progressiveRate]{Limit: 300e6, Value: progressiveRate{Name: "150M-300M", RatePct: 0.25, QuickDeduction: 180_000}},
	)
	comprehensiveBrackets = valueobject.MustTierTable(valueobject.AtMost,
		progressiveRate{Name: "over 9.4B", RatePct: 2.7, QuickDeduction: 101_800_000},
		valueobject.Tier[progressiveRate]{Limit: 3e8, Value: progressiveRate{Name: "up to 300M", RatePct: 0.5}},
		valueobject.Tier[progressiveRate]{Limit: 6e8, Value: progressiveRate{Name: "300M-600M", RatePct: 0.7, QuickDeduction: 600_000}},
		valueobject.Tier[progressiveRate]{Limit: 12e8, Value: progressiveRate{Name: "600M-1.2B", RatePct: 1.0, QuickDeduction: 2_400_000}},
		valueobject.Tier[progressiveRate]{Limit: 25e8, Value: progressiveRate{Name: "1.2B-2.5B", RatePct: 1.3, QuickDeduction: 6_000_000}},
		valueobject.Tier[progressiveRate]{Limit: 50e8, Value: progressiveRate{Name: "2.5B-5B", RatePct: 1.5, QuickDeduction: 11_000_000}},
		valueobject.Tier[progressiveRate]{Limit: 94e8, Value: progressiveRate{Name: "5B-9.4B", RatePct: 2.0, QuickDeduction: 36_000_000}},
	)
)

// NotApplicableBracket names the bracket of a transfer with no taxable gain.
const NotApplicableBracket = "N/A"

// TaxCalculator estimates acquisition, transfer and holding taxes. The three
// calculations are independent of each other.
type TaxCalculator struct {
	registry port.RegulationRegistry
}

// NewTaxCalculator creates a calculator backed by the given registry.
func NewTaxCalculator(registry port.RegulationRegistry) *TaxCalculator {
	return &TaxCalculator{registry: registry}
}

func clampHouseCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func ratePct(amount, base decimal.Decimal) float64 {
	if !base.IsPositive() {
		return 0
	}
	return amount.Div(base).Mul(hundred).InexactFloat64()
}

// Acquisition computes the one-off tax due on purchase.
func (c *TaxCalculator) Acquisition(in model.TaxCalculationInput) model.AcquisitionTax {
	price := in.PropertyPrice
	if !price.IsPositive() {
		return model.AcquisitionTax{}
	}
	rates := c.registry.Lookup(in.RegionCode).AcquisitionRates()
	houses := clampHouseCount(in.HouseCount)

	var rate float64
	switch {
	case houses >= 3:
		rate = rates.MultiHouse3
	case houses == 2:
		rate = rates.MultiHouse2
	default:
		rate = acquisitionTiers.Lookup(price.InexactFloat64())(rates)
	}

	discounted := false
	if in.IsFirstHome && houses <= 1 && price.LessThanOrEqual(firstHomePriceLimit) {
		reduced := max(rate-firstHomeDiscountPct, firstHomeFloorPct)
		if reduced < rate {
			rate = reduced
			discounted = true
		}
	}

	principal := floorWon(price.Mul(decimal.NewFromFloat(rate)).Div(hundred))
	education := floorWon(principal.Mul(educationSurchargeRate))
	rural := decimal.Zero
	if in.AreaM2 > ruralExemptAreaM2 && houses <= 1 {
		rural = floorWon(principal.Mul(ruralSurchargeRate))
	}
	local := education.Add(rural)
	total := principal.Add(local)

	return model.AcquisitionTax{
		Principal:         principal,
		EducationTax:      education,
		RuralTax:          rural,
		LocalSurcharge:    local,
		Total:             total,
		AppliedRatePct:    rate,
		EffectiveRatePct:  ratePct(total, price),
		FirstHomeDiscount: discounted,
	}
}

// Transfer computes the capital-gains tax on a sale. Without a positive gain
// every amount is zero and the bracket is "N/A".
func (c *TaxCalculator) Transfer(in model.TaxCalculationInput) model.TransferTax {
	gain := in.SalePrice.Sub(in.PurchasePrice)
	if !in.SalePrice.IsPositive() || !gain.IsPositive() {
		return model.TransferTax{Bracket: model.TaxBracket{Name: NotApplicableBracket}}
	}

	years := max(in.HoldingYears, 0)
	ltPct := longTermDeductions.Lookup(float64(min(years, 15)))
	ltDeduction := floorWon(gain.Mul(decimal.NewFromFloat(ltPct)).Div(hundred))
	taxable := decimal.Max(decimal.Zero, gain.Sub(ltDeduction).Sub(basicDeduction))

	bracket, idx := shortTermRates.Find(float64(years))
	if idx < 0 {
		bracket = incomeTaxBrackets.Lookup(taxable.InexactFloat64())
	}
	principal := bracket.apply(taxable)
	local := floorWon(principal.Mul(transferLocalRate))
	total := principal.Add(local)

	return model.TransferTax{
		Gain:              gain,
		LongTermDeduction: ltDeduction,
		BasicDeduction:    basicDeduction,
		TaxableBase:       taxable,
		Principal:         principal,
		LocalSurcharge:    local,
		Total:             total,
		Bracket:           model.TaxBracket{Name: bracket.Name, RatePct: bracket.RatePct},
		LongTermRatePct:   ltPct,
		EffectiveRatePct:  ratePct(total, gain),
	}
}

// Holding computes the annual property and comprehensive real-estate tax.
// A missing public price is estimated at 70% of the property price.
func (c *TaxCalculator) Holding(in model.TaxCalculationInput) model.HoldingTax {
	public := in.PublicPrice
	if !public.IsPositive() {
		public = floorWon(in.PropertyPrice.Mul(publicPriceRatio))
	}
	if !public.IsPositive() {
		return model.HoldingTax{}
	}
	region := c.registry.Lookup(in.RegionCode)
	houses := clampHouseCount(in.HouseCount)

	base := floorWon(public.Mul(fairValueRatio))
	principal := propertyTaxBrackets.Lookup(base.InexactFloat64()).apply(base)
	education := floorWon(principal.Mul(educationSurchargeRate))

	comprehensive := decimal.Zero
	if public.GreaterThan(comprehensiveSingle) || houses >= 2 {
		deduction := comprehensiveSingle
		if houses >= 2 {
			deduction = comprehensiveMulti
		}
		compBase := floorWon(decimal.Max(decimal.Zero, public.Sub(deduction)).Mul(fairValueRatio))
		comprehensive = floorWon(comprehensiveBrackets.Lookup(compBase.InexactFloat64()).apply(compBase).
			Mul(decimal.NewFromFloat(region.HoldingMultiplier())))
	}

	total := principal.Add(education).Add(comprehensive)
	return model.HoldingTax{
		PublicPrice:      public,
		TaxBase:          base,
		Principal:        principal,
		LocalSurcharge:   education,
		ComprehensiveTax: comprehensive,
		Total:            total,
		EffectiveRatePct: ratePct(total, public),
	}
}

// CalculateAll runs the three calculations with shared inputs. InitialCost is
// the acquisition total; AnnualHoldingCost is the holding total.
func (c *TaxCalculator) CalculateAll(in model.TaxCalculationInput) model.TaxResult {
	acq := c.Acquisition(in)
	hold := c.Holding(in)
	return model.TaxResult{
		Acquisition:       acq,
		Transfer:          c.Transfer(in),
		Holding:           hold,
		InitialCost:       acq.Total,
		AnnualHoldingCost: hold.Total,
	}
}

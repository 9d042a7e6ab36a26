package service

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
)

// Standard DSR limits in percent.
const (
	StandardDSRLimitPct   = 40.0
	VulnerableDSRLimitPct = 60.0
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// DSRInput carries the inputs of a debt-service-ratio evaluation.
type DSRInput struct {
	AnnualIncome       decimal.Decimal
	LoanAmount         decimal.Decimal
	ExistingAnnualDebt decimal.Decimal
	RepaymentMode      valueobject.RepaymentMode
	AnnualRatePct      float64
	DSRLimitPct        float64
	TermYears          int
}

// DSRResult is the outcome of a DSR evaluation. MaxAdditionalLoan is the
// largest new loan the income supports on top of existing debt at the limit.
type DSRResult struct {
	MonthlyPayment        decimal.Decimal
	NewAnnualPayment      decimal.Decimal
	ExistingAnnualPayment decimal.Decimal
	TotalAnnualPayment    decimal.Decimal
	MaxAdditionalLoan     decimal.Decimal
	DSRPct                float64
	LimitPct              float64
	IsWithinLimit         bool
}

// DSRCalculator performs amortization-based debt service calculations.
type DSRCalculator struct{}

// NewDSRCalculator returns a new calculator instance.
func NewDSRCalculator() *DSRCalculator {
	return &DSRCalculator{}
}

// MonthlyPayment returns the regular monthly payment in whole won.
//
// Interest-only loans pay P*r each month; the principal is excluded from the
// regular payment even though DSR is computed against it.
func (c *DSRCalculator) MonthlyPayment(
	principal decimal.Decimal,
	annualRatePct float64,
	termYears int,
	mode valueobject.RepaymentMode,
) decimal.Decimal {
	if termYears <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}
	r := model.MonthlyRate(annualRatePct)
	if mode.IsInterestOnly() {
		return principal.Mul(decimal.NewFromFloat(r)).Round(0)
	}
	return decimal.NewFromFloat(model.LevelPayment(principal.InexactFloat64(), r, termYears*12)).Round(0)
}

// MaxLoan solves the inverse problem: the largest amortizing loan whose
// payment, added to existingAnnualDebt, stays within dsrLimitPct of income.
// It returns zero when existing debt already consumes the ceiling.
func (c *DSRCalculator) MaxLoan(
	annualIncome decimal.Decimal,
	annualRatePct float64,
	termYears int,
	existingAnnualDebt decimal.Decimal,
	dsrLimitPct float64,
) decimal.Decimal {
	if termYears <= 0 || !annualIncome.IsPositive() || dsrLimitPct <= 0 {
		return decimal.Zero
	}
	ceiling := annualIncome.Mul(decimal.NewFromFloat(dsrLimitPct)).Div(hundred)
	available := ceiling.Sub(existingAnnualDebt)
	if !available.IsPositive() {
		return decimal.Zero
	}
	monthly := available.Div(twelve).InexactFloat64()
	pv := model.PresentValue(monthly, model.MonthlyRate(annualRatePct), termYears*12)
	return decimal.NewFromFloat(pv).Floor()
}

// Calculate evaluates the DSR of taking LoanAmount on top of existing debt.
// A non-positive income yields a 0% ratio that is within limit only when no
// payment is due at all.
func (c *DSRCalculator) Calculate(in DSRInput) DSRResult {
	monthly := c.MonthlyPayment(in.LoanAmount, in.AnnualRatePct, in.TermYears, in.RepaymentMode)
	newAnnual := monthly.Mul(twelve)
	existing := in.ExistingAnnualDebt
	if existing.IsNegative() {
		existing = decimal.Zero
	}
	total := newAnnual.Add(existing)

	res := DSRResult{
		MonthlyPayment:        monthly,
		NewAnnualPayment:      newAnnual,
		ExistingAnnualPayment: existing,
		TotalAnnualPayment:    total,
		LimitPct:              in.DSRLimitPct,
		MaxAdditionalLoan:     c.MaxLoan(in.AnnualIncome, in.AnnualRatePct, in.TermYears, existing, in.DSRLimitPct),
	}

	if !in.AnnualIncome.IsPositive() {
		res.IsWithinLimit = total.IsZero()
		return res
	}

	res.DSRPct = total.Div(in.AnnualIncome).Mul(hundred).InexactFloat64()
	res.IsWithinLimit = res.DSRPct <= in.DSRLimitPct
	return res
}

package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
)

// UserFinancials is the buyer's financial profile. Monetary amounts are whole won.
type UserFinancials struct {
	AnnualIncome       decimal.Decimal
	TotalAssets        decimal.Decimal
	CashAssets         decimal.Decimal
	TotalDebt          decimal.Decimal
	MonthlyDebtPayment decimal.Decimal
	HouseCount         int
	IsFirstHome        bool
}

// EffectiveHouseCount is the house count used for tier lookups: negative
// counts are clamped to zero and a first-home buyer always counts as zero.
//
// The first-home override is kept exactly as the lending rules define it and
// is deliberately not applied to tax calculations.
func (f UserFinancials) EffectiveHouseCount() int {
	if f.IsFirstHome || f.HouseCount < 0 {
		return 0
	}
	return f.HouseCount
}

// OwnershipTier returns the LTV tier of the buyer.
func (f UserFinancials) OwnershipTier() valueobject.OwnershipTier {
	return valueobject.OwnershipTierForHouseCount(f.EffectiveHouseCount())
}

// ExistingAnnualDebtPayment annualises the monthly payment on existing debt.
func (f UserFinancials) ExistingAnnualDebtPayment() decimal.Decimal {
	if f.MonthlyDebtPayment.IsNegative() {
		return decimal.Zero
	}
	return f.MonthlyDebtPayment.Mul(decimal.NewFromInt(12))
}

// MonthlyIncome is annual income divided by twelve.
func (f UserFinancials) MonthlyIncome() decimal.Decimal {
	return f.AnnualIncome.Div(decimal.NewFromInt(12))
}

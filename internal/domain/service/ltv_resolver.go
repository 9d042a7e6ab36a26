package service

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
)

// LTVResolver picks the loan-to-value ceiling for a buyer in a region.
type LTVResolver struct{}

// NewLTVResolver returns a new resolver.
func NewLTVResolver() *LTVResolver {
	return &LTVResolver{}
}

// ApplicableLTV returns the ceiling in percent. First-home buyers and buyers
// with no house get the first-home tier, one house gets owned1, two or more
// get owned2Plus.
func (r *LTVResolver) ApplicableLTV(reg model.RegionRegulation, f model.UserFinancials) float64 {
	return reg.LTV().For(f.OwnershipTier())
}

// MaxLoan is price times the applicable ceiling, truncated to whole won.
func (r *LTVResolver) MaxLoan(reg model.RegionRegulation, f model.UserFinancials, price decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromFloat(r.ApplicableLTV(reg, f))).Div(hundred).Floor()
}

package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
)

// RealityScoreInput is everything the feasibility engine needs for one property.
type RealityScoreInput struct {
	PropertyPrice decimal.Decimal
	Financials    UserFinancials
	RegionCode    string
	LoanTermYears int
	AnnualRatePct float64
	RepaymentMode valueobject.RepaymentMode
}

// ScoreBreakdown holds the four sub-scores, each in [0,25].
type ScoreBreakdown struct {
	LTVScore int
	DSRScore int
	GapScore int
	PTIScore int
}

// Total is the sum of the sub-scores (0-100).
func (b ScoreBreakdown) Total() int {
	return b.LTVScore + b.DSRScore + b.GapScore + b.PTIScore
}

// FinancialAnalysis is the derived loan and cash picture behind a score.
type FinancialAnalysis struct {
	MaxLoanByLTV     decimal.Decimal
	MaxLoanByDSR     decimal.Decimal
	MaxLoanAmount    decimal.Decimal
	ActualLoanAmount decimal.Decimal
	RequiredCash     decimal.Decimal
	AvailableCash    decimal.Decimal
	GapAmount        decimal.Decimal
	MonthlyRepayment decimal.Decimal
	LimitingFactor   valueobject.LimitingFactor
	DSRPct           float64
	DSRLimitPct      float64
	PTIPct           float64
	ApplicableLTVPct float64
}

// HasGap reports whether available cash falls short of the required cash.
func (a FinancialAnalysis) HasGap() bool { return a.GapAmount.IsPositive() }

// RealityScoreResult is the full outcome of a feasibility assessment.
// Consumers treat it as read-only.
type RealityScoreResult struct {
	Region    RegionRegulation
	Grade     valueobject.Grade
	Summary   string
	Risks     []RiskFactor
	Analysis  FinancialAnalysis
	Breakdown ScoreBreakdown
	Score     int
}

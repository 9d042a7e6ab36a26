package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/port"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
	"github.com/bibbank/bib/services/realcare-service/pkg/money"
)

// Sub-score staircases. Upper-bound metrics use AtMost tables so that a value
// exactly on a threshold stays in the better bucket.
var (
	dsrScores = valueobject.MustTierTable(valueobject.AtMost, 0,
		valueobject.Tier[int]{Limit: 25, Value: 25},
		valueobject.Tier[int]{Limit: 30, Value: 22},
		valueobject.Tier[int]{Limit: 35, Value: 18},
		valueobject.Tier[int]{Limit: 40, Value: 14},
		valueobject.Tier[int]{Limit: 50, Value: 10},
		valueobject.Tier[int]{Limit: 60, Value: 5},
	)
	gapScores = valueobject.MustTierTable(valueobject.AtMost, 0,
		valueobject.Tier[int]{Limit: 0, Value: 25},
		valueobject.Tier[int]{Limit: 0.05, Value: 22},
		valueobject.Tier[int]{Limit: 0.10, Value: 18},
		valueobject.Tier[int]{Limit: 0.15, Value: 14},
		valueobject.Tier[int]{Limit: 0.20, Value: 10},
		valueobject.Tier[int]{Limit: 0.30, Value: 5},
	)
	ptiScores = valueobject.MustTierTable(valueobject.AtMost, 0,
		valueobject.Tier[int]{Limit: 0.20, Value: 25},
		valueobject.Tier[int]{Limit: 0.25, Value: 22},
		valueobject.Tier[int]{Limit: 0.30, Value: 18},
		valueobject.Tier[int]{Limit: 0.35, Value: 14},
		valueobject.Tier[int]{Limit: 0.40, Value: 10},
		valueobject.Tier[int]{Limit: 0.50, Value: 5},
	)
	ltvScores = valueobject.MustTierTable(valueobject.AtLeast, 0,
		valueobject.Tier[int]{Limit: 70, Value: 25},
		valueobject.Tier[int]{Limit: 60, Value: 22},
		valueobject.Tier[int]{Limit: 50, Value: 18},
		valueobject.Tier[int]{Limit: 40, Value: 14},
		valueobject.Tier[int]{Limit: 30, Value: 10},
		valueobject.Tier[int]{Limit: 20, Value: 5},
	)
)

// DSRScore maps a DSR percentage onto its 0-25 sub-score.
func DSRScore(dsrPct float64) int { return dsrScores.Lookup(dsrPct) }

// GapScore maps the gap-to-price ratio onto its 0-25 sub-score.
func GapScore(gapRatio float64) int { return gapScores.Lookup(gapRatio) }

// PTIScore maps the payment-to-income ratio (0-1) onto its 0-25 sub-score.
func PTIScore(ptiRatio float64) int { return ptiScores.Lookup(ptiRatio) }

// LTVScore maps the applicable LTV percentage onto its 0-25 sub-score.
func LTVScore(ltvPct float64) int { return ltvScores.Lookup(ltvPct) }

// EngineOption configures a RealityScoreEngine.
type EngineOption func(*RealityScoreEngine)

// WithDSRPolicy overrides the DSR limit policy.
func WithDSRPolicy(p DSRPolicy) EngineOption {
	return func(e *RealityScoreEngine) { e.policy = p }
}

// RealityScoreEngine combines lending limits, debt service and available cash
// into a 0-100 feasibility score. It holds no mutable state and is safe for
// concurrent use.
type RealityScoreEngine struct {
	registry port.RegulationRegistry
	dsr      *DSRCalculator
	ltv      *LTVResolver
	risks    *RiskIdentifier
	policy   DSRPolicy
}

// NewRealityScoreEngine creates an engine backed by the given registry.
func NewRealityScoreEngine(registry port.RegulationRegistry, opts ...EngineOption) *RealityScoreEngine {
	e := &RealityScoreEngine{
		registry: registry,
		dsr:      NewDSRCalculator(),
		ltv:      NewLTVResolver(),
		risks:    NewRiskIdentifier(),
		policy:   DefaultDSRPolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry exposes the regulation registry the engine resolves regions with.
func (e *RealityScoreEngine) Registry() port.RegulationRegistry { return e.registry }

// DSR exposes the engine's DSR calculator.
func (e *RealityScoreEngine) DSR() *DSRCalculator { return e.dsr }

// Policy exposes the engine's DSR limit policy.
func (e *RealityScoreEngine) Policy() DSRPolicy { return e.policy }

// Calculate runs a full feasibility assessment. A non-positive price yields a
// zero score with an empty analysis.
func (e *RealityScoreEngine) Calculate(in model.RealityScoreInput) model.RealityScoreResult {
	region := e.registry.Lookup(in.RegionCode)

	if !in.PropertyPrice.IsPositive() {
		return model.RealityScoreResult{
			Region:  region,
			Grade:   valueobject.GradeForScore(0),
			Summary: "No assessment: the property price must be positive.",
			Risks:   []model.RiskFactor{},
		}
	}

	analysis := e.Analyze(region, in)
	breakdown := e.score(analysis, in.PropertyPrice)
	total := breakdown.Total()
	grade := valueobject.GradeForScore(total)

	return model.RealityScoreResult{
		Region:    region,
		Grade:     grade,
		Summary:   summarize(total, grade, analysis),
		Risks:     e.risks.Identify(analysis, region, in.Financials),
		Analysis:  analysis,
		Breakdown: breakdown,
		Score:     total,
	}
}

// Analyze derives the loan and cash picture for a purchase in region.
//
// The feasible loan is the smaller of the LTV and DSR ceilings, with ties
// going to LTV. Any cash shortfall overrides the limiting factor with CASH.
func (e *RealityScoreEngine) Analyze(region model.RegionRegulation, in model.RealityScoreInput) model.FinancialAnalysis {
	fin := in.Financials
	price := in.PropertyPrice
	limitPct, _ := e.policy.LimitFor(fin)
	existing := fin.ExistingAnnualDebtPayment()
	cash := fin.CashAssets
	if cash.IsNegative() {
		cash = decimal.Zero
	}

	ltvPct := e.ltv.ApplicableLTV(region, fin)
	byLTV := e.ltv.MaxLoan(region, fin, price)

	probe := e.dsr.Calculate(DSRInput{
		AnnualIncome:       fin.AnnualIncome,
		LoanAmount:         byLTV,
		ExistingAnnualDebt: existing,
		RepaymentMode:      in.RepaymentMode,
		AnnualRatePct:      in.AnnualRatePct,
		DSRLimitPct:        limitPct,
		TermYears:          in.LoanTermYears,
	})
	byDSR := probe.MaxAdditionalLoan

	maxLoan, factor := byLTV, valueobject.LimitingFactorLTV
	if byDSR.LessThan(byLTV) {
		maxLoan, factor = byDSR, valueobject.LimitingFactorDSR
	}

	required := price.Sub(maxLoan)
	gap := decimal.Max(decimal.Zero, required.Sub(cash))
	if gap.IsPositive() {
		factor = valueobject.LimitingFactorCash
	}

	actual := decimal.Max(decimal.Zero, decimal.Min(price.Sub(cash), maxLoan))
	actualDSR := e.dsr.Calculate(DSRInput{
		AnnualIncome:       fin.AnnualIncome,
		LoanAmount:         actual,
		ExistingAnnualDebt: existing,
		RepaymentMode:      in.RepaymentMode,
		AnnualRatePct:      in.AnnualRatePct,
		DSRLimitPct:        limitPct,
		TermYears:          in.LoanTermYears,
	})

	var ptiPct float64
	if fin.AnnualIncome.IsPositive() {
		ptiPct = actualDSR.MonthlyPayment.Mul(twelve).Div(fin.AnnualIncome).Mul(hundred).InexactFloat64()
	}

	return model.FinancialAnalysis{
		MaxLoanByLTV:     byLTV,
		MaxLoanByDSR:     byDSR,
		MaxLoanAmount:    maxLoan,
		ActualLoanAmount: actual,
		RequiredCash:     required,
		AvailableCash:    cash,
		GapAmount:        gap,
		MonthlyRepayment: actualDSR.MonthlyPayment,
		LimitingFactor:   factor,
		DSRPct:           actualDSR.DSRPct,
		DSRLimitPct:      limitPct,
		PTIPct:           ptiPct,
		ApplicableLTVPct: ltvPct,
	}
}

func (e *RealityScoreEngine) score(a model.FinancialAnalysis, price decimal.Decimal) model.ScoreBreakdown {
	gapRatio := a.GapAmount.Div(price).InexactFloat64()
	return model.ScoreBreakdown{
		LTVScore: LTVScore(a.ApplicableLTVPct),
		DSRScore: DSRScore(a.DSRPct),
		GapScore: GapScore(gapRatio),
		PTIScore: PTIScore(a.PTIPct / 100),
	}
}

func summarize(score int, grade valueobject.Grade, a model.FinancialAnalysis) string {
	s := fmt.Sprintf("Reality score %d/100 (grade %s). Maximum loan %s, limited by %s.",
		score, grade.String(), money.Won(a.MaxLoanAmount), a.LimitingFactor.String())
	if a.HasGap() {
		s += fmt.Sprintf(" Cash shortfall of %s.", money.Won(a.GapAmount))
	}
	return s
}

package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
)

// ScoreDeadBand is the score delta inside which waiting and buying now are
// reported as similar. The bound itself is inside the band.
const ScoreDeadBand = 5

// ScenarioComparator contrasts buying now with buying after a wait.
type ScenarioComparator struct {
	engine *RealityScoreEngine
}

// NewScenarioComparator wraps an engine.
func NewScenarioComparator(engine *RealityScoreEngine) *ScenarioComparator {
	return &ScenarioComparator{engine: engine}
}

// ProjectInput moves base forward by waitYears under the assumptions. Price
// and income compound annually, cash grows linearly by the base income times
// the savings rate for every year waited, and the interest rate shifts by
// RateDeltaPct per year without going below zero. Negative wait years are
// treated as zero.
func ProjectInput(base model.RealityScoreInput, waitYears int, a model.ScenarioAssumptions) model.RealityScoreInput {
	years := max(waitYears, 0)
	y := float64(years)

	out := base
	out.PropertyPrice = compound(base.PropertyPrice, a.PriceGrowthPct, y)
	out.Financials.AnnualIncome = compound(base.Financials.AnnualIncome, a.IncomeGrowthPct, y)
	out.Financials.CashAssets = base.Financials.CashAssets.Add(
		decimal.Max(decimal.Zero, base.Financials.AnnualIncome).
			Mul(decimal.NewFromFloat(a.SavingsRate)).
			Mul(decimal.NewFromInt(int64(years))),
	).Floor()
	out.AnnualRatePct = math.Max(0, base.AnnualRatePct+a.RateDeltaPct*y)
	return out
}

func compound(v decimal.Decimal, pct, years float64) decimal.Decimal {
	if years == 0 {
		return v
	}
	return v.Mul(decimal.NewFromFloat(math.Pow(1+pct/100, years))).Floor()
}

// Recommend classifies a later-minus-now score delta.
func Recommend(delta int) valueobject.Recommendation {
	switch {
	case delta > ScoreDeadBand:
		return valueobject.RecommendWait
	case delta < -ScoreDeadBand:
		return valueobject.RecommendBuyNow
	default:
		return valueobject.RecommendSimilar
	}
}

// Compare scores the base input and its projection independently.
func (c *ScenarioComparator) Compare(
	base model.RealityScoreInput,
	waitYears int,
	a model.ScenarioAssumptions,
) model.ScenarioComparison {
	later := ProjectInput(base, waitYears, a)
	nowResult := c.engine.Calculate(base)
	laterResult := c.engine.Calculate(later)
	delta := laterResult.Score - nowResult.Score
	rec := Recommend(delta)

	return model.ScenarioComparison{
		Now:            nowResult,
		Later:          laterResult,
		LaterInput:     later,
		Recommendation: rec,
		Message:        recommendationMessage(rec, max(waitYears, 0), delta),
		Assumptions:    a,
		WaitYears:      max(waitYears, 0),
		ScoreDelta:     delta,
	}
}

func recommendationMessage(rec valueobject.Recommendation, years, delta int) string {
	switch rec {
	case valueobject.RecommendWait:
		return fmt.Sprintf("Waiting %d year(s) improves the score by %d points.", years, delta)
	case valueobject.RecommendBuyNow:
		return fmt.Sprintf("Buying now scores %d points higher than waiting %d year(s).", -delta, years)
	default:
		return fmt.Sprintf("Waiting %d year(s) changes the score by %d points; the outcomes are similar.", years, delta)
	}
}

package model

import "github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"

// ScenarioAssumptions are the annual drift rates used to project a purchase
// into the future. Growth rates and the rate delta are percentages; SavingsRate
// is the share of annual income saved, in [0,1].
type ScenarioAssumptions struct {
	PriceGrowthPct  float64
	IncomeGrowthPct float64
	SavingsRate     float64
	RateDeltaPct    float64
}

// DefaultScenarioAssumptions returns the baseline projection.
func DefaultScenarioAssumptions() ScenarioAssumptions {
	return ScenarioAssumptions{
		PriceGrowthPct:  3,
		IncomeGrowthPct: 3,
		SavingsRate:     0.3,
		RateDeltaPct:    0,
	}
}

// ScenarioComparison contrasts buying now with buying after WaitYears.
type ScenarioComparison struct {
	Now            RealityScoreResult
	Later          RealityScoreResult
	LaterInput     RealityScoreInput
	Recommendation valueobject.Recommendation
	Message        string
	Assumptions    ScenarioAssumptions
	WaitYears      int
	ScoreDelta     int
}

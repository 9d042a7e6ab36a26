package event

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/realcare-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	aggregateAssessment = "FeasibilityAssessment"
	aggregateScenario   = "ScenarioComparison"
	aggregateTax        = "TaxCalculation"
)

// ---------------------------------------------------------------------------
// Assessment Events
// ---------------------------------------------------------------------------

// FeasibilityAssessed is raised after a reality score has been computed.
type FeasibilityAssessed struct {
	events.BaseEvent
	RegionCode     string          `json:"region_code"`
	Grade          string          `json:"grade"`
	LimitingFactor string          `json:"limiting_factor"`
	PropertyPrice  decimal.Decimal `json:"property_price"`
	MaxLoanAmount  decimal.Decimal `json:"max_loan_amount"`
	GapAmount      decimal.Decimal `json:"gap_amount"`
	Score          int             `json:"score"`
	RiskCount      int             `json:"risk_count"`
}

func NewFeasibilityAssessed(
	assessmentID, tenantID, regionCode string,
	price decimal.Decimal, score int, grade, limitingFactor string,
	maxLoan, gap decimal.Decimal, riskCount int,
) FeasibilityAssessed {
	return FeasibilityAssessed{
		BaseEvent:      events.NewBaseEvent("realcare.feasibility.assessed", assessmentID, aggregateAssessment, tenantID),
		RegionCode:     regionCode,
		PropertyPrice:  price,
		Score:          score,
		Grade:          grade,
		LimitingFactor: limitingFactor,
		MaxLoanAmount:  maxLoan,
		GapAmount:      gap,
		RiskCount:      riskCount,
	}
}

// ---------------------------------------------------------------------------
// Scenario Events
// ---------------------------------------------------------------------------

// ScenarioCompared is raised after a buy-now versus wait comparison.
type ScenarioCompared struct {
	events.BaseEvent
	RegionCode     string `json:"region_code"`
	Recommendation string `json:"recommendation"`
	WaitYears      int    `json:"wait_years"`
	NowScore       int    `json:"now_score"`
	LaterScore     int    `json:"later_score"`
}

func NewScenarioCompared(
	comparisonID, tenantID, regionCode string,
	waitYears, nowScore, laterScore int, recommendation string,
) ScenarioCompared {
	return ScenarioCompared{
		BaseEvent:      events.NewBaseEvent("realcare.scenario.compared", comparisonID, aggregateScenario, tenantID),
		RegionCode:     regionCode,
		WaitYears:      waitYears,
		NowScore:       nowScore,
		LaterScore:     laterScore,
		Recommendation: recommendation,
	}
}

// ---------------------------------------------------------------------------
// Tax Events
// ---------------------------------------------------------------------------

// TaxesCalculated is raised after a tax estimate has been produced.
type TaxesCalculated struct {
	events.BaseEvent
	RegionCode        string          `json:"region_code"`
	InitialCost       decimal.Decimal `json:"initial_cost"`
	AnnualHoldingCost decimal.Decimal `json:"annual_holding_cost"`
	TransferTax       decimal.Decimal `json:"transfer_tax"`
}

func NewTaxesCalculated(
	calculationID, tenantID, regionCode string,
	initialCost, annualHoldingCost, transferTax decimal.Decimal,
) TaxesCalculated {
	return TaxesCalculated{
		BaseEvent:         events.NewBaseEvent("realcare.taxes.calculated", calculationID, aggregateTax, tenantID),
		RegionCode:        regionCode,
		InitialCost:       initialCost,
		AnnualHoldingCost: annualHoldingCost,
		TransferTax:       transferTax,
	}
}

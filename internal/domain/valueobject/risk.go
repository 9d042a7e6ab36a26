package valueobject

// RiskSeverity ranks a risk factor for presentation.
type RiskSeverity string

const (
	SeverityCritical RiskSeverity = "CRITICAL"
	SeverityWarning  RiskSeverity = "WARNING"
	SeverityInfo     RiskSeverity = "INFO"
)

// Rank orders severities, most severe first.
func (s RiskSeverity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// RiskCategory groups risk factors by the concern they describe.
type RiskCategory string

const (
	RiskCategoryLoan       RiskCategory = "LOAN"
	RiskCategoryFunds      RiskCategory = "FUNDS"
	RiskCategoryDSR        RiskCategory = "DSR"
	RiskCategoryPTI        RiskCategory = "PTI"
	RiskCategoryRegulation RiskCategory = "REGULATION"
	RiskCategoryTax        RiskCategory = "TAX"
)

var riskCategoryOrder = map[RiskCategory]int{
	RiskCategoryLoan:       0,
	RiskCategoryFunds:      1,
	RiskCategoryDSR:        2,
	RiskCategoryPTI:        3,
	RiskCategoryRegulation: 4,
	RiskCategoryTax:        5,
}

// Rank orders categories within a severity band. Unknown categories sort last.
func (c RiskCategory) Rank() int {
	if r, ok := riskCategoryOrder[c]; ok {
		return r
	}
	return len(riskCategoryOrder)
}

// Recommendation is the outcome of a wait-versus-buy comparison.
type Recommendation string

const (
	RecommendWait    Recommendation = "WAIT"
	RecommendBuyNow  Recommendation = "BUY_NOW"
	RecommendSimilar Recommendation = "SIMILAR"
)

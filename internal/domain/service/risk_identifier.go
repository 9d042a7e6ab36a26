package service

import (
	"fmt"
	"sort"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
	"github.com/bibbank/bib/services/realcare-service/pkg/money"
)

// Risk thresholds in percent.
const (
	dsrWarningPct  = StandardDSRLimitPct
	dsrNearPct     = 30.0
	ptiWarningPct  = 35.0
	multiHouseRisk = 2
)

// Risk codes.
const (
	RiskCodeLoanBlocked   = "LOAN_BLOCKED"
	RiskCodeCashShortfall = "CASH_SHORTFALL"
	RiskCodeDSRExceeded   = "DSR_EXCEEDED"
	RiskCodeDSRNearLimit  = "DSR_NEAR_LIMIT"
	RiskCodePTIHigh       = "PTI_HIGH"
	RiskCodeSpeculative   = "SPECULATIVE_ZONE"
	RiskCodeMultiHouseTax = "MULTI_HOUSE_TAX"
)

// RiskIdentifier derives advisory risk factors from a feasibility analysis.
// It never changes the score.
type RiskIdentifier struct{}

// NewRiskIdentifier returns a new identifier.
func NewRiskIdentifier() *RiskIdentifier {
	return &RiskIdentifier{}
}

// Identify evaluates every rule and returns the findings ordered by severity,
// then category. The result is never nil.
func (r *RiskIdentifier) Identify(
	a model.FinancialAnalysis,
	region model.RegionRegulation,
	fin model.UserFinancials,
) []model.RiskFactor {
	risks := make([]model.RiskFactor, 0, 4)

	if a.ApplicableLTVPct <= 0 {
		risks = append(risks, model.RiskFactor{
			Severity:    valueobject.SeverityCritical,
			Category:    valueobject.RiskCategoryLoan,
			Code:        RiskCodeLoanBlocked,
			Title:       "Mortgage not available",
			Message:     fmt.Sprintf("Buyers in your ownership tier cannot borrow against property in %s.", region.NameEn()),
			Suggestion:  "Consider a non-regulated region or selling an existing home first.",
			ScoreImpact: LTVScore(0) - LTVScore(100),
		})
	}

	if a.HasGap() {
		risks = append(risks, model.RiskFactor{
			Severity:    valueobject.SeverityCritical,
			Category:    valueobject.RiskCategoryFunds,
			Code:        RiskCodeCashShortfall,
			Title:       "Insufficient cash",
			Message:     fmt.Sprintf("Required cash exceeds available cash by %s.", money.Won(a.GapAmount)),
			Suggestion:  "Lower the target price or build savings before buying.",
			ScoreImpact: gapImpact(a),
		})
	}

	switch {
	case a.DSRPct > dsrWarningPct:
		risks = append(risks, model.RiskFactor{
			Severity:    valueobject.SeverityWarning,
			Category:    valueobject.RiskCategoryDSR,
			Code:        RiskCodeDSRExceeded,
			Title:       "High debt service ratio",
			Message:     fmt.Sprintf("DSR of %.1f%% exceeds the standard %.0f%% limit.", a.DSRPct, dsrWarningPct),
			Suggestion:  "Extend the loan term or reduce existing debt.",
			ScoreImpact: DSRScore(a.DSRPct) - DSRScore(dsrWarningPct),
		})
	case a.DSRPct > dsrNearPct:
		risks = append(risks, model.RiskFactor{
			Severity: valueobject.SeverityInfo,
			Category: valueobject.RiskCategoryDSR,
			Code:     RiskCodeDSRNearLimit,
			Title:    "DSR near limit",
			Message:  fmt.Sprintf("DSR of %.1f%% leaves little room for additional borrowing.", a.DSRPct),
		})
	}

	if a.PTIPct > ptiWarningPct {
		risks = append(risks, model.RiskFactor{
			Severity:    valueobject.SeverityWarning,
			Category:    valueobject.RiskCategoryPTI,
			Code:        RiskCodePTIHigh,
			Title:       "Heavy monthly repayment",
			Message:     fmt.Sprintf("Repayments take %.1f%% of monthly income.", a.PTIPct),
			Suggestion:  "Keep repayments under a third of monthly income.",
			ScoreImpact: PTIScore(a.PTIPct/100) - PTIScore(ptiWarningPct/100),
		})
	}

	if region.IsSpeculative() {
		risks = append(risks, model.RiskFactor{
			Severity:   valueobject.SeverityWarning,
			Category:   valueobject.RiskCategoryRegulation,
			Code:       RiskCodeSpeculative,
			Title:      "Speculative overheated zone",
			Message:    fmt.Sprintf("%s is a speculative overheated zone with tighter lending rules.", region.NameEn()),
			Suggestion: "Check residency and disposal obligations before contracting.",
		})
	}

	if fin.HouseCount >= multiHouseRisk {
		risks = append(risks, model.RiskFactor{
			Severity:   valueobject.SeverityInfo,
			Category:   valueobject.RiskCategoryTax,
			Code:       RiskCodeMultiHouseTax,
			Title:      "Multi-house taxation",
			Message:    fmt.Sprintf("Owning %d houses triggers heavier acquisition and holding taxes.", fin.HouseCount),
			Suggestion: "Estimate taxes before committing.",
		})
	}

	sort.SliceStable(risks, func(i, j int) bool {
		si, sj := risks[i].Severity.Rank(), risks[j].Severity.Rank()
		if si != sj {
			return si < sj
		}
		return risks[i].Category.Rank() < risks[j].Category.Rank()
	})
	return risks
}

func gapImpact(a model.FinancialAnalysis) int {
	price := a.RequiredCash.Add(a.MaxLoanAmount)
	if !price.IsPositive() {
		return 0
	}
	return GapScore(a.GapAmount.Div(price).InexactFloat64()) - GapScore(0)
}

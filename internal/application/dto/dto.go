package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
)

// ErrInvalidRequest is wrapped by every request validation failure.
var ErrInvalidRequest = errors.New("invalid request")

// Input ranges accepted at the boundary.
const (
	MaxLoanTermYears = 50
	MaxAnnualRatePct = 30.0
	MaxWaitYears     = 30
	MaxBatchSize     = 100
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// FinancialsRequest is the buyer's financial profile.
type FinancialsRequest struct {
	AnnualIncome       decimal.Decimal `json:"annual_income" yaml:"annual_income"`
	TotalAssets        decimal.Decimal `json:"total_assets" yaml:"total_assets"`
	CashAssets         decimal.Decimal `json:"cash_assets" yaml:"cash_assets"`
	TotalDebt          decimal.Decimal `json:"total_debt" yaml:"total_debt"`
	MonthlyDebtPayment decimal.Decimal `json:"monthly_debt_payment" yaml:"monthly_debt_payment"`
	HouseCount         int             `json:"house_count" yaml:"house_count"`
	IsFirstHome        bool            `json:"is_first_home" yaml:"is_first_home"`
}

// Validate checks the profile for negative amounts.
func (f FinancialsRequest) Validate() error {
	for name, v := range map[string]decimal.Decimal{
		"annual_income":        f.AnnualIncome,
		"total_assets":         f.TotalAssets,
		"cash_assets":          f.CashAssets,
		"total_debt":           f.TotalDebt,
		"monthly_debt_payment": f.MonthlyDebtPayment,
	} {
		if v.IsNegative() {
			return invalid("%s must not be negative", name)
		}
	}
	if f.HouseCount < 0 {
		return invalid("house_count must not be negative")
	}
	return nil
}

// ToModel converts the request into the domain profile.
func (f FinancialsRequest) ToModel() model.UserFinancials {
	return model.UserFinancials{
		AnnualIncome:       f.AnnualIncome,
		TotalAssets:        f.TotalAssets,
		CashAssets:         f.CashAssets,
		TotalDebt:          f.TotalDebt,
		MonthlyDebtPayment: f.MonthlyDebtPayment,
		HouseCount:         f.HouseCount,
		IsFirstHome:        f.IsFirstHome,
	}
}

// AssessFeasibilityRequest carries the data needed to score a purchase.
type AssessFeasibilityRequest struct {
	TenantID      string            `json:"tenant_id" yaml:"tenant_id"`
	PropertyPrice decimal.Decimal   `json:"property_price" yaml:"property_price"`
	Financials    FinancialsRequest `json:"financials" yaml:"financials"`
	RegionCode    string            `json:"region_code" yaml:"region_code"`
	LoanTermYears int               `json:"loan_term_years" yaml:"loan_term_years"`
	AnnualRatePct float64           `json:"annual_rate_pct" yaml:"annual_rate_pct"`
	RepaymentMode string            `json:"repayment_mode,omitempty" yaml:"repayment_mode"`
}

// Validate enforces the accepted input ranges.
func (r AssessFeasibilityRequest) Validate() error {
	if !r.PropertyPrice.IsPositive() {
		return invalid("property_price must be positive")
	}
	if r.LoanTermYears <= 0 || r.LoanTermYears > MaxLoanTermYears {
		return invalid("loan_term_years must be between 1 and %d", MaxLoanTermYears)
	}
	if r.AnnualRatePct < 0 || r.AnnualRatePct > MaxAnnualRatePct {
		return invalid("annual_rate_pct must be between 0 and %v", MaxAnnualRatePct)
	}
	if _, err := valueobject.NewRepaymentMode(r.RepaymentMode); err != nil {
		return invalid("%v", err)
	}
	return r.Financials.Validate()
}

// ToInput validates the request and converts it into an engine input.
func (r AssessFeasibilityRequest) ToInput() (model.RealityScoreInput, error) {
	if err := r.Validate(); err != nil {
		return model.RealityScoreInput{}, err
	}
	mode, _ := valueobject.NewRepaymentMode(r.RepaymentMode)
	return model.RealityScoreInput{
		PropertyPrice: r.PropertyPrice,
		Financials:    r.Financials.ToModel(),
		RegionCode:    r.RegionCode,
		LoanTermYears: r.LoanTermYears,
		AnnualRatePct: r.AnnualRatePct,
		RepaymentMode: mode,
	}, nil
}

// CalculateDSRRequest carries a standalone debt-service evaluation.
// A zero DSRLimitPct selects the limit from the buyer profile.
type CalculateDSRRequest struct {
	AnnualIncome       decimal.Decimal `json:"annual_income" yaml:"annual_income"`
	LoanAmount         decimal.Decimal `json:"loan_amount" yaml:"loan_amount"`
	MonthlyDebtPayment decimal.Decimal `json:"monthly_debt_payment" yaml:"monthly_debt_payment"`
	RepaymentMode      string          `json:"repayment_mode,omitempty" yaml:"repayment_mode"`
	AnnualRatePct      float64         `json:"annual_rate_pct" yaml:"annual_rate_pct"`
	DSRLimitPct        float64         `json:"dsr_limit_pct,omitempty" yaml:"dsr_limit_pct"`
	TermYears          int             `json:"term_years" yaml:"term_years"`
	IsFirstHome        bool            `json:"is_first_home" yaml:"is_first_home"`
}

// Validate enforces the accepted input ranges.
func (r CalculateDSRRequest) Validate() error {
	if r.AnnualIncome.IsNegative() || r.LoanAmount.IsNegative() || r.MonthlyDebtPayment.IsNegative() {
		return invalid("amounts must not be negative")
	}
	if r.TermYears <= 0 || r.TermYears > MaxLoanTermYears {
		return invalid("term_years must be between 1 and %d", MaxLoanTermYears)
	}
	if r.AnnualRatePct < 0 || r.AnnualRatePct > MaxAnnualRatePct {
		return invalid("annual_rate_pct must be between 0 and %v", MaxAnnualRatePct)
	}
	if r.DSRLimitPct < 0 || r.DSRLimitPct > 100 {
		return invalid("dsr_limit_pct must be between 0 and 100")
	}
	if _, err := valueobject.NewRepaymentMode(r.RepaymentMode); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// CalculateTaxesRequest carries the inputs of the three tax calculations.
type CalculateTaxesRequest struct {
	TenantID      string          `json:"tenant_id" yaml:"tenant_id"`
	PropertyPrice decimal.Decimal `json:"property_price" yaml:"property_price"`
	PublicPrice   decimal.Decimal `json:"public_price" yaml:"public_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price" yaml:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price" yaml:"sale_price"`
	RegionCode    string          `json:"region_code" yaml:"region_code"`
	AreaM2        float64         `json:"area_m2" yaml:"area_m2"`
	HouseCount    int             `json:"house_count" yaml:"house_count"`
	HoldingYears  int             `json:"holding_years" yaml:"holding_years"`
	IsFirstHome   bool            `json:"is_first_home" yaml:"is_first_home"`
}

// Validate enforces the accepted input ranges.
func (r CalculateTaxesRequest) Validate() error {
	if !r.PropertyPrice.IsPositive() {
		return invalid("property_price must be positive")
	}
	if r.PublicPrice.IsNegative() || r.PurchasePrice.IsNegative() || r.SalePrice.IsNegative() {
		return invalid("prices must not be negative")
	}
	if r.AreaM2 < 0 {
		return invalid("area_m2 must not be negative")
	}
	if r.HouseCount < 0 || r.HoldingYears < 0 {
		return invalid("house_count and holding_years must not be negative")
	}
	return nil
}

// ToInput converts the request into the domain tax input.
func (r CalculateTaxesRequest) ToInput() model.TaxCalculationInput {
	return model.TaxCalculationInput{
		PropertyPrice: r.PropertyPrice,
		PublicPrice:   r.PublicPrice,
		PurchasePrice: r.PurchasePrice,
		SalePrice:     r.SalePrice,
		RegionCode:    r.RegionCode,
		AreaM2:        r.AreaM2,
		HouseCount:    r.HouseCount,
		HoldingYears:  r.HoldingYears,
		IsFirstHome:   r.IsFirstHome,
	}
}

// AssumptionsRequest overrides the default projection rates. Nil fields keep
// their defaults.
type AssumptionsRequest struct {
	PriceGrowthPct  *float64 `json:"price_growth_pct,omitempty" yaml:"price_growth_pct"`
	IncomeGrowthPct *float64 `json:"income_growth_pct,omitempty" yaml:"income_growth_pct"`
	SavingsRate     *float64 `json:"savings_rate,omitempty" yaml:"savings_rate"`
	RateDeltaPct    *float64 `json:"rate_delta_pct,omitempty" yaml:"rate_delta_pct"`
}

// ToModel merges the overrides onto the default assumptions.
func (a *AssumptionsRequest) ToModel() model.ScenarioAssumptions {
	out := model.DefaultScenarioAssumptions()
	if a == nil {
		return out
	}
	if a.PriceGrowthPct != nil {
		out.PriceGrowthPct = *a.PriceGrowthPct
	}
	if a.IncomeGrowthPct != nil {
		out.IncomeGrowthPct = *a.IncomeGrowthPct
	}
	if a.SavingsRate != nil {
		out.SavingsRate = *a.SavingsRate
	}
	if a.RateDeltaPct != nil {
		out.RateDeltaPct = *a.RateDeltaPct
	}
	return out
}

// CompareScenariosRequest asks whether buying now beats waiting.
type CompareScenariosRequest struct {
	Base        AssessFeasibilityRequest `json:"base" yaml:"base"`
	Assumptions *AssumptionsRequest      `json:"assumptions,omitempty" yaml:"assumptions"`
	WaitYears   int                      `json:"wait_years" yaml:"wait_years"`
}

// Validate enforces the accepted input ranges.
func (r CompareScenariosRequest) Validate() error {
	if err := r.Base.Validate(); err != nil {
		return err
	}
	if r.WaitYears < 1 || r.WaitYears > MaxWaitYears {
		return invalid("wait_years must be between 1 and %d", MaxWaitYears)
	}
	a := r.Assumptions.ToModel()
	if a.SavingsRate < 0 || a.SavingsRate > 1 {
		return invalid("savings_rate must be between 0 and 1")
	}
	if a.PriceGrowthPct <= -100 || a.IncomeGrowthPct <= -100 {
		return invalid("growth rates must be above -100")
	}
	return nil
}

// BatchCompareScenariosRequest carries independent comparisons.
type BatchCompareScenariosRequest struct {
	TenantID string                    `json:"tenant_id" yaml:"tenant_id"`
	Items    []CompareScenariosRequest `json:"items" yaml:"items"`
}

// Validate checks the batch size and every item.
func (r BatchCompareScenariosRequest) Validate() error {
	if len(r.Items) == 0 || len(r.Items) > MaxBatchSize {
		return invalid("batch must contain between 1 and %d items", MaxBatchSize)
	}
	for i, item := range r.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// GetRegionRequest identifies a region.
type GetRegionRequest struct {
	Code string `json:"code" yaml:"code"`
}

// RepaymentScheduleRequest describes a loan to amortize.
type RepaymentScheduleRequest struct {
	StartDate     time.Time       `json:"start_date" yaml:"start_date"`
	Principal     decimal.Decimal `json:"principal" yaml:"principal"`
	RepaymentMode string          `json:"repayment_mode,omitempty" yaml:"repayment_mode"`
	AnnualRatePct float64         `json:"annual_rate_pct" yaml:"annual_rate_pct"`
	TermMonths    int             `json:"term_months" yaml:"term_months"`
}

// Validate enforces the accepted input ranges.
func (r RepaymentScheduleRequest) Validate() error {
	if !r.Principal.IsPositive() {
		return invalid("principal must be positive")
	}
	if r.TermMonths <= 0 || r.TermMonths > MaxLoanTermYears*12 {
		return invalid("term_months must be between 1 and %d", MaxLoanTermYears*12)
	}
	if r.AnnualRatePct < 0 || r.AnnualRatePct > MaxAnnualRatePct {
		return invalid("annual_rate_pct must be between 0 and %v", MaxAnnualRatePct)
	}
	if _, err := valueobject.NewRepaymentMode(r.RepaymentMode); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// RegionResponse is the external representation of a regulation profile.
type RegionResponse struct {
	EffectiveDate     time.Time `json:"effective_date"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	NameEn            string    `json:"name_en"`
	LTVFirstHomePct   float64   `json:"ltv_first_home_pct"`
	LTVOwned1Pct      float64   `json:"ltv_owned_1_pct"`
	LTVOwned2PlusPct  float64   `json:"ltv_owned_2_plus_pct"`
	HoldingMultiplier float64   `json:"holding_multiplier"`
	IsSpeculative     bool      `json:"is_speculative"`
	IsAdjusted        bool      `json:"is_adjusted"`
	IsDefault         bool      `json:"is_default"`
}

// ScoreBreakdownResponse carries the four sub-scores.
type ScoreBreakdownResponse struct {
	LTV int `json:"ltv"`
	DSR int `json:"dsr"`
	Gap int `json:"gap"`
	PTI int `json:"pti"`
}

// AnalysisResponse is the external representation of the loan and cash picture.
type AnalysisResponse struct {
	MaxLoanByLTV     decimal.Decimal `json:"max_loan_by_ltv"`
	MaxLoanByDSR     decimal.Decimal `json:"max_loan_by_dsr"`
	MaxLoanAmount    decimal.Decimal `json:"max_loan_amount"`
	ActualLoanAmount decimal.Decimal `json:"actual_loan_amount"`
	RequiredCash     decimal.Decimal `json:"required_cash"`
	AvailableCash    decimal.Decimal `json:"available_cash"`
	GapAmount        decimal.Decimal `json:"gap_amount"`
	MonthlyRepayment decimal.Decimal `json:"monthly_repayment"`
	LimitingFactor   string          `json:"limiting_factor"`
	DSRPct           float64         `json:"dsr_pct"`
	DSRLimitPct      float64         `json:"dsr_limit_pct"`
	PTIPct           float64         `json:"pti_pct"`
	ApplicableLTVPct float64         `json:"applicable_ltv_pct"`
}

// RiskResponse is the external representation of a risk factor.
type RiskResponse struct {
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Suggestion  string `json:"suggestion,omitempty"`
	ScoreImpact int    `json:"score_impact"`
}

// RealityScoreResponse is the external representation of an assessment.
type RealityScoreResponse struct {
	ID        string                 `json:"id"`
	Grade     string                 `json:"grade"`
	Summary   string                 `json:"summary"`
	Region    RegionResponse         `json:"region"`
	Risks     []RiskResponse         `json:"risks"`
	Analysis  AnalysisResponse       `json:"analysis"`
	Breakdown ScoreBreakdownResponse `json:"breakdown"`
	Score     int                    `json:"score"`
}

// DSRResponse is the external representation of a DSR evaluation.
type DSRResponse struct {
	MonthlyPayment        decimal.Decimal `json:"monthly_payment"`
	NewAnnualPayment      decimal.Decimal `json:"new_annual_payment"`
	ExistingAnnualPayment decimal.Decimal `json:"existing_annual_payment"`
	TotalAnnualPayment    decimal.Decimal `json:"total_annual_payment"`
	MaxAdditionalLoan     decimal.Decimal `json:"max_additional_loan"`
	LimitRule             string          `json:"limit_rule"`
	DSRPct                float64         `json:"dsr_pct"`
	LimitPct              float64         `json:"limit_pct"`
	IsWithinLimit         bool            `json:"is_within_limit"`
}

// AcquisitionTaxResponse is the one-off purchase tax.
type AcquisitionTaxResponse struct {
	Principal         decimal.Decimal `json:"principal"`
	EducationTax      decimal.Decimal `json:"education_tax"`
	RuralTax          decimal.Decimal `json:"rural_tax"`
	LocalSurcharge    decimal.Decimal `json:"local_surcharge"`
	Total             decimal.Decimal `json:"total"`
	AppliedRatePct    float64         `json:"applied_rate_pct"`
	EffectiveRatePct  float64         `json:"effective_rate_pct"`
	FirstHomeDiscount bool            `json:"first_home_discount"`
}

// TransferTaxResponse is the capital-gains tax.
type TransferTaxResponse struct {
	Gain              decimal.Decimal `json:"gain"`
	LongTermDeduction decimal.Decimal `json:"long_term_deduction"`
	BasicDeduction    decimal.Decimal `json:"basic_deduction"`
	TaxableBase       decimal.Decimal `json:"taxable_base"`
	Principal         decimal.Decimal `json:"principal"`
	LocalSurcharge    decimal.Decimal `json:"local_surcharge"`
	Total             decimal.Decimal `json:"total"`
	Bracket           string          `json:"bracket"`
	BracketRatePct    float64         `json:"bracket_rate_pct"`
	LongTermRatePct   float64         `json:"long_term_rate_pct"`
	EffectiveRatePct  float64         `json:"effective_rate_pct"`
}

// HoldingTaxResponse is the annual holding tax.
type HoldingTaxResponse struct {
	PublicPrice      decimal.Decimal `json:"public_price"`
	TaxBase          decimal.Decimal `json:"tax_base"`
	Principal        decimal.Decimal `json:"principal"`
	LocalSurcharge   decimal.Decimal `json:"local_surcharge"`
	ComprehensiveTax decimal.Decimal `json:"comprehensive_tax"`
	Total            decimal.Decimal `json:"total"`
	EffectiveRatePct float64         `json:"effective_rate_pct"`
}

// TaxResponse combines the three calculations.
type TaxResponse struct {
	ID                string                 `json:"id"`
	Acquisition       AcquisitionTaxResponse `json:"acquisition"`
	Transfer          TransferTaxResponse    `json:"transfer"`
	Holding           HoldingTaxResponse     `json:"holding"`
	InitialCost       decimal.Decimal        `json:"initial_cost"`
	AnnualHoldingCost decimal.Decimal        `json:"annual_holding_cost"`
}

// AssumptionsResponse echoes the projection rates that were applied.
type AssumptionsResponse struct {
	PriceGrowthPct  float64 `json:"price_growth_pct"`
	IncomeGrowthPct float64 `json:"income_growth_pct"`
	SavingsRate     float64 `json:"savings_rate"`
	RateDeltaPct    float64 `json:"rate_delta_pct"`
}

// ScenarioResponse is the external representation of a comparison.
type ScenarioResponse struct {
	ID             string               `json:"id"`
	Recommendation string               `json:"recommendation"`
	Message        string               `json:"message"`
	Now            RealityScoreResponse `json:"now"`
	Later          RealityScoreResponse `json:"later"`
	Assumptions    AssumptionsResponse  `json:"assumptions"`
	WaitYears      int                  `json:"wait_years"`
	ScoreDelta     int                  `json:"score_delta"`
}

// BatchScenarioResponse preserves the order of the request items.
type BatchScenarioResponse struct {
	Results []ScenarioResponse `json:"results"`
}

// RegionListResponse lists every known region plus the fallback profile.
type RegionListResponse struct {
	Version string           `json:"version"`
	Regions []RegionResponse `json:"regions"`
	Default RegionResponse   `json:"default"`
}

// AmortizationEntryResponse represents a single repayment schedule entry.
type AmortizationEntryResponse struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// RepaymentScheduleResponse is a full schedule with totals.
type RepaymentScheduleResponse struct {
	Entries       []AmortizationEntryResponse `json:"entries"`
	TotalInterest decimal.Decimal             `json:"total_interest"`
	TotalPaid     decimal.Decimal             `json:"total_paid"`
}

package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/service"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
)

// CalculateDSRUseCase evaluates a loan against the borrower's DSR limit.
type CalculateDSRUseCase struct {
	calculator *service.DSRCalculator
	policy     service.DSRPolicy
}

// NewCalculateDSRUseCase wires dependencies.
func NewCalculateDSRUseCase(calculator *service.DSRCalculator, policy service.DSRPolicy) *CalculateDSRUseCase {
	return &CalculateDSRUseCase{calculator: calculator, policy: policy}
}

// Execute returns the DSR of the requested loan. An explicit limit in the
// request takes precedence over the policy.
func (uc *CalculateDSRUseCase) Execute(
	ctx context.Context,
	req dto.CalculateDSRRequest,
) (resp dto.DSRResponse, err error) {
	_, span := tracer.Start(ctx, "CalculateDSR")
	defer func() { endSpan(span, err) }()

	if err := req.Validate(); err != nil {
		return dto.DSRResponse{}, fmt.Errorf("validate request: %w", err)
	}
	mode, _ := valueobject.NewRepaymentMode(req.RepaymentMode)

	fin := model.UserFinancials{
		AnnualIncome:       req.AnnualIncome,
		MonthlyDebtPayment: req.MonthlyDebtPayment,
		IsFirstHome:        req.IsFirstHome,
	}
	limit, rule := uc.policy.LimitFor(fin)
	if req.DSRLimitPct > 0 {
		limit, rule = req.DSRLimitPct, "requested"
	}

	res := uc.calculator.Calculate(service.DSRInput{
		AnnualIncome:       req.AnnualIncome,
		LoanAmount:         req.LoanAmount,
		ExistingAnnualDebt: fin.ExistingAnnualDebtPayment(),
		RepaymentMode:      mode,
		AnnualRatePct:      req.AnnualRatePct,
		DSRLimitPct:        limit,
		TermYears:          req.TermYears,
	})

	return dto.DSRResponse{
		MonthlyPayment:        res.MonthlyPayment,
		NewAnnualPayment:      res.NewAnnualPayment,
		ExistingAnnualPayment: res.ExistingAnnualPayment,
		TotalAnnualPayment:    res.TotalAnnualPayment,
		MaxAdditionalLoan:     res.MaxAdditionalLoan,
		LimitRule:             rule,
		DSRPct:                res.DSRPct,
		LimitPct:              res.LimitPct,
		IsWithinLimit:         res.IsWithinLimit,
	}, nil
}

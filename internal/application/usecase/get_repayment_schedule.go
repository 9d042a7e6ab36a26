package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
)

// GetRepaymentScheduleUseCase builds a month-by-month repayment table.
type GetRepaymentScheduleUseCase struct {
	now func() time.Time
}

// NewGetRepaymentScheduleUseCase wires dependencies.
func NewGetRepaymentScheduleUseCase() *GetRepaymentScheduleUseCase {
	return &GetRepaymentScheduleUseCase{now: time.Now}
}

// Execute returns the schedule and its totals. A zero start date starts the
// schedule today.
func (uc *GetRepaymentScheduleUseCase) Execute(
	ctx context.Context,
	req dto.RepaymentScheduleRequest,
) (resp dto.RepaymentScheduleResponse, err error) {
	_, span := tracer.Start(ctx, "GetRepaymentSchedule")
	defer func() { endSpan(span, err) }()

	if err := req.Validate(); err != nil {
		return dto.RepaymentScheduleResponse{}, fmt.Errorf("validate request: %w", err)
	}
	mode, _ := valueobject.NewRepaymentMode(req.RepaymentMode)
	start := req.StartDate
	if start.IsZero() {
		start = uc.now().UTC().Truncate(24 * time.Hour)
	}

	schedule := model.GenerateRepaymentSchedule(req.Principal, req.AnnualRatePct, req.TermMonths, mode, start)
	interest, paid := model.ScheduleTotals(schedule)

	entries := make([]dto.AmortizationEntryResponse, len(schedule))
	for i, e := range schedule {
		entries[i] = dto.AmortizationEntryResponse{
			Period:           e.Period,
			DueDate:          e.DueDate,
			Principal:        e.Principal,
			Interest:         e.Interest,
			Total:            e.Total,
			RemainingBalance: e.RemainingBalance,
		}
	}
	return dto.RepaymentScheduleResponse{
		Entries:       entries,
		TotalInterest: interest,
		TotalPaid:     paid,
	}, nil
}

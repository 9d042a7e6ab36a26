package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
	"github.com/bibbank/bib/services/realcare-service/internal/application/usecase"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/event"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/service"
)

func TestAssessFeasibility_Execute(t *testing.T) {
	t.Run("scores the purchase and publishes an event", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		metrics := &mockMetricsRecorder{}
		uc := usecase.NewAssessFeasibilityUseCase(service.NewRealityScoreEngine(testRegistry(t)), publisher, metrics, nil)

		resp, err := uc.Execute(context.Background(), validAssessRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, 60, resp.Score)
		assert.Equal(t, "C", resp.Grade)
		assert.Equal(t, "CASH", resp.Analysis.LimitingFactor)
		assert.True(t, decimal.NewFromInt(150_000_000).Equal(resp.Analysis.GapAmount))
		assert.Equal(t, gangnam, resp.Region.Code)
		assert.Len(t, resp.Risks, 3)
		assert.Equal(t, "CRITICAL", resp.Risks[0].Severity)

		assert.Equal(t, 1, metrics.assessments)
		assert.Equal(t, 60, metrics.lastScore)

		require.Len(t, publisher.publishedEvents, 1)
		evt, ok := publisher.publishedEvents[0].(event.FeasibilityAssessed)
		require.True(t, ok)
		assert.Equal(t, "realcare.feasibility.assessed", evt.EventType())
		assert.Equal(t, resp.ID, evt.AggregateID())
		assert.Equal(t, "tenant-001", evt.TenantID())
		assert.Equal(t, 60, evt.Score)
	})

	t.Run("unknown region falls back to the default profile", func(t *testing.T) {
		uc := usecase.NewAssessFeasibilityUseCase(service.NewRealityScoreEngine(testRegistry(t)), &mockEventPublisher{}, &mockMetricsRecorder{}, nil)

		req := validAssessRequest()
		req.RegionCode = "00000"
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.True(t, resp.Region.IsDefault)
		assert.Equal(t, 70.0, resp.Analysis.ApplicableLTVPct)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		uc := usecase.NewAssessFeasibilityUseCase(service.NewRealityScoreEngine(testRegistry(t)), publisher, &mockMetricsRecorder{}, nil)

		tests := map[string]func(*dto.AssessFeasibilityRequest){
			"zero price":      func(r *dto.AssessFeasibilityRequest) { r.PropertyPrice = decimal.Zero },
			"zero term":       func(r *dto.AssessFeasibilityRequest) { r.LoanTermYears = 0 },
			"negative rate":   func(r *dto.AssessFeasibilityRequest) { r.AnnualRatePct = -1 },
			"negative cash":   func(r *dto.AssessFeasibilityRequest) { r.Financials.CashAssets = decimal.NewFromInt(-1) },
			"negative houses": func(r *dto.AssessFeasibilityRequest) { r.Financials.HouseCount = -1 },
			"unknown mode":    func(r *dto.AssessFeasibilityRequest) { r.RepaymentMode = "BALLOON" },
		}
		for name, mutate := range tests {
			t.Run(name, func(t *testing.T) {
				req := validAssessRequest()
				mutate(&req)
				_, err := uc.Execute(context.Background(), req)
				require.Error(t, err)
				assert.True(t, errors.Is(err, dto.ErrInvalidRequest))
				assert.Contains(t, err.Error(), "validate request")
			})
		}
		assert.Zero(t, publisher.calls)
	})

	t.Run("fails when event publishing fails", func(t *testing.T) {
		publisher := &mockEventPublisher{
			publishFunc: func(_ context.Context, _ ...event.DomainEvent) error {
				return fmt.Errorf("kafka unavailable")
			},
		}
		uc := usecase.NewAssessFeasibilityUseCase(service.NewRealityScoreEngine(testRegistry(t)), publisher, &mockMetricsRecorder{}, nil)

		_, err := uc.Execute(context.Background(), validAssessRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "publish events")
	})
}

func TestCalculateDSR_ExecuteWithPolicy(t *testing.T) {
	uc := usecase.NewCalculateDSRUseCase(service.NewDSRCalculator(), service.DefaultDSRPolicy())

	t.Run("limit from policy", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.CalculateDSRRequest{
			AnnualIncome:       decimal.NewFromInt(60_000_000),
			LoanAmount:         decimal.NewFromInt(200_000_000),
			MonthlyDebtPayment: decimal.NewFromInt(500_000),
			AnnualRatePct:      4.5,
			TermYears:          30,
		})
		require.NoError(t, err)
		assert.Equal(t, "standard", resp.LimitRule)
		assert.Equal(t, 40.0, resp.LimitPct)
		assert.True(t, decimal.NewFromInt(1_013_371).Equal(resp.MonthlyPayment))
		assert.True(t, decimal.NewFromInt(6_000_000).Equal(resp.ExistingAnnualPayment))
		assert.True(t, resp.IsWithinLimit)
	})

	t.Run("explicit limit wins", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.CalculateDSRRequest{
			AnnualIncome:  decimal.NewFromInt(60_000_000),
			LoanAmount:    decimal.NewFromInt(200_000_000),
			AnnualRatePct: 4.5,
			TermYears:     30,
			DSRLimitPct:   20,
			IsFirstHome:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "requested", resp.LimitRule)
		assert.False(t, resp.IsWithinLimit)
	})

	t.Run("first-home buyers get the higher limit", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.CalculateDSRRequest{
			AnnualIncome:  decimal.NewFromInt(60_000_000),
			LoanAmount:    decimal.NewFromInt(200_000_000),
			AnnualRatePct: 4.5,
			TermYears:     30,
			IsFirstHome:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "first_home_buyer", resp.LimitRule)
		assert.Equal(t, 60.0, resp.LimitPct)
	})

	t.Run("rejects zero term", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.CalculateDSRRequest{AnnualIncome: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, dto.ErrInvalidRequest)
	})
}

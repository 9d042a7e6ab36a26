package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
	"github.com/bibbank/bib/services/realcare-service/internal/application/usecase"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/event"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/service"
)

func TestCalculateTaxes_Execute(t *testing.T) {
	t.Run("computes all taxes and publishes", func(t *testing.T) {
		registry := testRegistry(t)
		publisher := &mockEventPublisher{}
		metrics := &mockMetricsRecorder{}
		uc := usecase.NewCalculateTaxesUseCase(service.NewTaxCalculator(registry), registry, publisher, metrics, nil)

		resp, err := uc.Execute(context.Background(), dto.CalculateTaxesRequest{
			TenantID:      "tenant-001",
			PropertyPrice: decimal.NewFromInt(500_000_000),
			AreaM2:        84,
			IsFirstHome:   true,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.True(t, decimal.NewFromInt(3_000_000).Equal(resp.Acquisition.Total))
		assert.True(t, resp.InitialCost.Equal(resp.Acquisition.Total))
		assert.True(t, resp.AnnualHoldingCost.Equal(resp.Holding.Total))
		assert.Equal(t, "N/A", resp.Transfer.Bracket)
		assert.Equal(t, 1, metrics.taxRuns)

		require.Len(t, publisher.publishedEvents, 1)
		evt, ok := publisher.publishedEvents[0].(event.TaxesCalculated)
		require.True(t, ok)
		assert.Equal(t, "DEFAULT", evt.RegionCode)
	})

	t.Run("rejects negative sale price", func(t *testing.T) {
		registry := testRegistry(t)
		uc := usecase.NewCalculateTaxesUseCase(service.NewTaxCalculator(registry), registry, &mockEventPublisher{}, &mockMetricsRecorder{}, nil)

		_, err := uc.Execute(context.Background(), dto.CalculateTaxesRequest{
			PropertyPrice: decimal.NewFromInt(500_000_000),
			SalePrice:     decimal.NewFromInt(-1),
		})
		assert.ErrorIs(t, err, dto.ErrInvalidRequest)
	})
}

func TestRegionUseCases(t *testing.T) {
	registry := testRegistry(t)

	t.Run("get known region", func(t *testing.T) {
		resp, err := usecase.NewGetRegionUseCase(registry).Execute(context.Background(), dto.GetRegionRequest{Code: gangnam})
		require.NoError(t, err)
		assert.Equal(t, "Gangnam-gu", resp.NameEn)
		assert.Equal(t, 50.0, resp.LTVFirstHomePct)
		assert.True(t, resp.IsSpeculative)
		assert.False(t, resp.IsDefault)
	})

	t.Run("get unknown region", func(t *testing.T) {
		resp, err := usecase.NewGetRegionUseCase(registry).Execute(context.Background(), dto.GetRegionRequest{Code: "nowhere"})
		require.NoError(t, err)
		assert.True(t, resp.IsDefault)
		assert.Equal(t, 70.0, resp.LTVFirstHomePct)
	})

	t.Run("list", func(t *testing.T) {
		resp, err := usecase.NewListRegionsUseCase(registry).Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "2023.1", resp.Version)
		require.Len(t, resp.Regions, 1)
		assert.Equal(t, gangnam, resp.Regions[0].Code)
		assert.True(t, resp.Default.IsDefault)
	})
}

func TestGetRepaymentSchedule_Execute(t *testing.T) {
	uc := usecase.NewGetRepaymentScheduleUseCase()
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("amortizing", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.RepaymentScheduleRequest{
			StartDate:     start,
			Principal:     decimal.NewFromInt(120_000_000),
			AnnualRatePct: 4.5,
			TermMonths:    120,
		})
		require.NoError(t, err)
		require.Len(t, resp.Entries, 120)
		assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), resp.Entries[0].DueDate)
		assert.True(t, resp.Entries[119].RemainingBalance.IsZero())
		assert.True(t, resp.TotalPaid.Sub(resp.TotalInterest).Equal(decimal.NewFromInt(120_000_000)))
	})

	t.Run("bullet alias", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.RepaymentScheduleRequest{
			StartDate:     start,
			Principal:     decimal.NewFromInt(100_000_000),
			AnnualRatePct: 6,
			TermMonths:    12,
			RepaymentMode: "BULLET",
		})
		require.NoError(t, err)
		require.Len(t, resp.Entries, 12)
		assert.True(t, resp.Entries[0].Principal.IsZero())
		assert.True(t, decimal.NewFromInt(500_000).Equal(resp.Entries[0].Interest))
		assert.True(t, decimal.NewFromInt(100_000_000).Equal(resp.Entries[11].Principal))
	})

	t.Run("rejects zero principal", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.RepaymentScheduleRequest{TermMonths: 12})
		assert.ErrorIs(t, err, dto.ErrInvalidRequest)
	})
}

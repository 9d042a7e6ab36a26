package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/event"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
)

// --- Mock implementations ---

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
	calls           int
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	m.calls++
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockMetricsRecorder struct {
	mu          sync.Mutex
	assessments int
	comparisons int
	taxRuns     int
	lastScore   int
}

func (m *mockMetricsRecorder) RecordAssessment(_ context.Context, result model.RealityScoreResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments++
	m.lastScore = result.Score
}

func (m *mockMetricsRecorder) RecordComparison(_ context.Context, _ model.ScenarioComparison) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comparisons++
}

func (m *mockMetricsRecorder) RecordTaxCalculation(_ context.Context, _ model.TaxResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taxRuns++
}

// --- Fixtures ---

const gangnam = "11680"

func testRegistry(t *testing.T) *model.RegulationRegistry {
	t.Helper()
	gn, err := model.NewRegionRegulation(model.RegionRegulationParams{
		Code:        gangnam,
		Name:        "강남구",
		NameEn:      "Gangnam-gu",
		Speculative: true,
		Adjusted:    true,
		LTV:         model.LTVLimits{FirstHome: 50, Owned1: 40, Owned2Plus: 0},
		AcquisitionRates: model.AcquisitionTaxRates{
			UpTo600M: 1, UpTo900M: 2, Above900M: 3, MultiHouse2: 8, MultiHouse3: 12,
		},
		HoldingMultiplier: 1,
	})
	require.NoError(t, err)
	reg, err := model.NewRegulationRegistry("2023.1", model.DefaultRegionRegulation(), gn)
	require.NoError(t, err)
	return reg
}

func validAssessRequest() dto.AssessFeasibilityRequest {
	return dto.AssessFeasibilityRequest{
		TenantID:      "tenant-001",
		PropertyPrice: decimal.NewFromInt(900_000_000),
		Financials: dto.FinancialsRequest{
			AnnualIncome: decimal.NewFromInt(80_000_000),
			TotalAssets:  decimal.NewFromInt(300_000_000),
			CashAssets:   decimal.NewFromInt(300_000_000),
			IsFirstHome:  true,
		},
		RegionCode:    gangnam,
		LoanTermYears: 30,
		AnnualRatePct: 4.5,
	}
}

package metrics

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
)

func newTestRecorder(t *testing.T) (*Recorder, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	rec, err := NewRecorder(provider)
	require.NoError(t, err)
	return rec, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecordAssessment(t *testing.T) {
	rec, reader := newTestRecorder(t)

	res := model.RealityScoreResult{
		Region: model.DefaultRegionRegulation(),
		Grade:  valueobject.GradeC,
		Score:  60,
		Analysis: model.FinancialAnalysis{
			LimitingFactor: valueobject.LimitingFactorCash,
			GapAmount:      decimal.NewFromInt(150_000_000),
		},
		Risks: []model.RiskFactor{
			{Code: "CASH_SHORTFALL", Severity: valueobject.SeverityCritical},
			{Code: "DSR_NEAR_LIMIT", Severity: valueobject.SeverityInfo},
		},
	}
	rec.RecordAssessment(context.Background(), res)
	rec.RecordAssessment(context.Background(), res)

	metrics := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, metrics["realcare_assessments"]))
	assert.Equal(t, int64(2), sumOf(t, metrics["realcare_cash_shortfalls"]))
	assert.Equal(t, int64(4), sumOf(t, metrics["realcare_risk_factors"]))

	hist, ok := metrics["realcare_reality_score"].Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.Equal(t, int64(120), hist.DataPoints[0].Sum)
}

func TestRecordComparisonAndTaxes(t *testing.T) {
	rec, reader := newTestRecorder(t)

	rec.RecordComparison(context.Background(), model.ScenarioComparison{
		Recommendation: valueobject.RecommendWait,
		WaitYears:      3,
	})
	rec.RecordTaxCalculation(context.Background(), model.TaxResult{
		InitialCost: decimal.NewFromInt(5_500_000),
	})

	metrics := collect(t, reader)
	assert.Equal(t, int64(1), sumOf(t, metrics["realcare_scenario_comparisons"]))
	assert.Equal(t, int64(1), sumOf(t, metrics["realcare_tax_calculations"]))

	hist, ok := metrics["realcare_initial_tax_cost"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, 5_500_000.0, hist.DataPoints[0].Sum)
}

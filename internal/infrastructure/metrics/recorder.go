// Package metrics records assessment outcomes as OpenTelemetry instruments.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
)

const meterName = "realcare-service"

// Recorder implements port.MetricsRecorder.
type Recorder struct {
	assessments  metric.Int64Counter
	scores       metric.Int64Histogram
	gaps         metric.Int64Counter
	risks        metric.Int64Counter
	comparisons  metric.Int64Counter
	taxRuns      metric.Int64Counter
	initialCosts metric.Float64Histogram
}

// NewRecorder creates the instruments on a meter from provider.
func NewRecorder(provider metric.MeterProvider) (*Recorder, error) {
	m := provider.Meter(meterName)
	var (
		r   Recorder
		err error
	)

	if r.assessments, err = m.Int64Counter("realcare_assessments",
		metric.WithDescription("Feasibility assessments by grade and limiting factor")); err != nil {
		return nil, fmt.Errorf("create assessments counter: %w", err)
	}
	if r.scores, err = m.Int64Histogram("realcare_reality_score",
		metric.WithDescription("Distribution of reality scores"),
		metric.WithExplicitBucketBoundaries(20, 40, 55, 70, 85, 100)); err != nil {
		return nil, fmt.Errorf("create score histogram: %w", err)
	}
	if r.gaps, err = m.Int64Counter("realcare_cash_shortfalls",
		metric.WithDescription("Assessments where available cash falls short")); err != nil {
		return nil, fmt.Errorf("create shortfall counter: %w", err)
	}
	if r.risks, err = m.Int64Counter("realcare_risk_factors",
		metric.WithDescription("Risk factors raised by code and severity")); err != nil {
		return nil, fmt.Errorf("create risk counter: %w", err)
	}
	if r.comparisons, err = m.Int64Counter("realcare_scenario_comparisons",
		metric.WithDescription("Scenario comparisons by recommendation")); err != nil {
		return nil, fmt.Errorf("create comparison counter: %w", err)
	}
	if r.taxRuns, err = m.Int64Counter("realcare_tax_calculations",
		metric.WithDescription("Tax estimates produced")); err != nil {
		return nil, fmt.Errorf("create tax counter: %w", err)
	}
	if r.initialCosts, err = m.Float64Histogram("realcare_initial_tax_cost",
		metric.WithDescription("Acquisition tax due on purchase"),
		metric.WithUnit("KRW")); err != nil {
		return nil, fmt.Errorf("create initial cost histogram: %w", err)
	}

	return &r, nil
}

func (r *Recorder) RecordAssessment(ctx context.Context, res model.RealityScoreResult) {
	region := attribute.String("region", res.Region.Code())
	r.assessments.Add(ctx, 1, metric.WithAttributes(
		region,
		attribute.String("grade", res.Grade.String()),
		attribute.String("limiting_factor", res.Analysis.LimitingFactor.String()),
	))
	r.scores.Record(ctx, int64(res.Score), metric.WithAttributes(region))
	if res.Analysis.HasGap() {
		r.gaps.Add(ctx, 1, metric.WithAttributes(region))
	}
	for _, risk := range res.Risks {
		r.risks.Add(ctx, 1, metric.WithAttributes(
			attribute.String("code", risk.Code),
			attribute.String("severity", string(risk.Severity)),
		))
	}
}

func (r *Recorder) RecordComparison(ctx context.Context, cmp model.ScenarioComparison) {
	r.comparisons.Add(ctx, 1, metric.WithAttributes(
		attribute.String("recommendation", string(cmp.Recommendation)),
		attribute.Int("wait_years", cmp.WaitYears),
	))
}

func (r *Recorder) RecordTaxCalculation(ctx context.Context, res model.TaxResult) {
	r.taxRuns.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("first_home_discount", res.Acquisition.FirstHomeDiscount),
		attribute.Bool("comprehensive", res.Holding.ComprehensiveTax.IsPositive()),
	))
	r.initialCosts.Record(ctx, res.InitialCost.InexactFloat64())
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/event"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/port"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/service"
	"github.com/bibbank/bib/services/realcare-service/pkg/events"
)

// CompareScenariosUseCase contrasts buying now with buying after a wait.
type CompareScenariosUseCase struct {
	comparator *service.ScenarioComparator
	registry   port.RegulationRegistry
	publisher  port.EventPublisher
	metrics    port.MetricsRecorder
	logger     *slog.Logger
}

// NewCompareScenariosUseCase wires dependencies.
func NewCompareScenariosUseCase(
	comparator *service.ScenarioComparator,
	registry port.RegulationRegistry,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *CompareScenariosUseCase {
	return &CompareScenariosUseCase{
		comparator: comparator,
		registry:   registry,
		publisher:  publisher,
		metrics:    metrics,
		logger:     orDefault(logger),
	}
}

// Execute runs one comparison and publishes a ScenarioCompared event.
func (uc *CompareScenariosUseCase) Execute(
	ctx context.Context,
	req dto.CompareScenariosRequest,
) (resp dto.ScenarioResponse, err error) {
	ctx, span := tracer.Start(ctx, "CompareScenarios")
	defer func() { endSpan(span, err) }()

	if err := req.Validate(); err != nil {
		return dto.ScenarioResponse{}, fmt.Errorf("validate request: %w", err)
	}
	warnUnknownRegion(ctx, uc.logger, uc.registry, req.Base.RegionCode)

	id, cmp, err := uc.compare(ctx, req)
	if err != nil {
		return dto.ScenarioResponse{}, err
	}
	if err := uc.publisher.Publish(ctx, scenarioEvent(id, req.Base.TenantID, cmp)); err != nil {
		return dto.ScenarioResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.DebugContext(ctx, "scenarios compared",
		"comparison_id", id,
		"wait_years", cmp.WaitYears,
		"recommendation", string(cmp.Recommendation),
		"score_delta", cmp.ScoreDelta,
	)
	return toScenarioResponse(id, cmp), nil
}

// compare runs the comparator on an already validated request.
func (uc *CompareScenariosUseCase) compare(
	ctx context.Context,
	req dto.CompareScenariosRequest,
) (string, model.ScenarioComparison, error) {
	in, err := req.Base.ToInput()
	if err != nil {
		return "", model.ScenarioComparison{}, fmt.Errorf("validate request: %w", err)
	}
	cmp := uc.comparator.Compare(in, req.WaitYears, req.Assumptions.ToModel())
	uc.metrics.RecordComparison(ctx, cmp)
	return uuid.NewString(), cmp, nil
}

func scenarioEvent(id, tenantID string, cmp model.ScenarioComparison) event.ScenarioCompared {
	return event.NewScenarioCompared(
		id, tenantID, cmp.Now.Region.Code(),
		cmp.WaitYears, cmp.Now.Score, cmp.Later.Score, string(cmp.Recommendation),
	)
}

// BatchCompareScenariosUseCase evaluates many independent comparisons
// concurrently.
type BatchCompareScenariosUseCase struct {
	single      *CompareScenariosUseCase
	concurrency int
}

// NewBatchCompareScenariosUseCase wires dependencies. A non-positive
// concurrency evaluates items one at a time.
func NewBatchCompareScenariosUseCase(single *CompareScenariosUseCase, concurrency int) *BatchCompareScenariosUseCase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchCompareScenariosUseCase{single: single, concurrency: concurrency}
}

// Execute validates every item up front, evaluates them with bounded
// parallelism and publishes all events in one call. Results keep the order of
// the request items.
func (uc *BatchCompareScenariosUseCase) Execute(
	ctx context.Context,
	req dto.BatchCompareScenariosRequest,
) (resp dto.BatchScenarioResponse, err error) {
	ctx, span := tracer.Start(ctx, "BatchCompareScenarios")
	defer func() { endSpan(span, err) }()

	if err := req.Validate(); err != nil {
		return dto.BatchScenarioResponse{}, fmt.Errorf("validate request: %w", err)
	}

	ids := make([]string, len(req.Items))
	results := make([]model.ScenarioComparison, len(req.Items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for i, item := range req.Items {
		i, item := i, item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id, cmp, err := uc.single.compare(gctx, item)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			ids[i], results[i] = id, cmp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dto.BatchScenarioResponse{}, fmt.Errorf("compare scenarios: %w", err)
	}

	var collector events.EventCollector
	out := make([]dto.ScenarioResponse, len(results))
	for i, cmp := range results {
		collector.Record(scenarioEvent(ids[i], req.TenantID, cmp))
		out[i] = toScenarioResponse(ids[i], cmp)
	}
	if err := uc.single.publisher.Publish(ctx, collector.ClearEvents()...); err != nil {
		return dto.BatchScenarioResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.single.logger.DebugContext(ctx, "batch scenarios compared", "items", len(out))
	return dto.BatchScenarioResponse{Results: out}, nil
}

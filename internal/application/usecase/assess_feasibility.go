package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/event"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/port"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/service"
)

// AssessFeasibilityUseCase scores a single purchase and publishes the outcome.
type AssessFeasibilityUseCase struct {
	engine    *service.RealityScoreEngine
	publisher port.EventPublisher
	metrics   port.MetricsRecorder
	logger    *slog.Logger
}

// NewAssessFeasibilityUseCase wires dependencies.
func NewAssessFeasibilityUseCase(
	engine *service.RealityScoreEngine,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *AssessFeasibilityUseCase {
	return &AssessFeasibilityUseCase{
		engine:    engine,
		publisher: publisher,
		metrics:   metrics,
		logger:    orDefault(logger),
	}
}

// Execute validates the request, runs the engine and emits a
// FeasibilityAssessed event.
func (uc *AssessFeasibilityUseCase) Execute(
	ctx context.Context,
	req dto.AssessFeasibilityRequest,
) (resp dto.RealityScoreResponse, err error) {
	ctx, span := tracer.Start(ctx, "AssessFeasibility")
	defer func() { endSpan(span, err) }()

	// 1. Validate and convert.
	in, err := req.ToInput()
	if err != nil {
		return dto.RealityScoreResponse{}, fmt.Errorf("validate request: %w", err)
	}
	warnUnknownRegion(ctx, uc.logger, uc.engine.Registry(), req.RegionCode)

	// 2. Score.
	result := uc.engine.Calculate(in)
	id := uuid.NewString()
	span.SetAttributes(
		attribute.String("realcare.region", result.Region.Code()),
		attribute.Int("realcare.score", result.Score),
	)
	uc.metrics.RecordAssessment(ctx, result)

	// 3. Publish.
	evt := event.NewFeasibilityAssessed(
		id, req.TenantID, result.Region.Code(),
		in.PropertyPrice, result.Score, result.Grade.String(), result.Analysis.LimitingFactor.String(),
		result.Analysis.MaxLoanAmount, result.Analysis.GapAmount, len(result.Risks),
	)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.RealityScoreResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.DebugContext(ctx, "feasibility assessed",
		"assessment_id", id,
		"region_code", result.Region.Code(),
		"score", result.Score,
		"grade", result.Grade.String(),
	)
	return toRealityScoreResponse(id, result), nil
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func warnUnknownRegion(ctx context.Context, logger *slog.Logger, registry port.RegulationRegistry, code string) {
	if _, ok := registry.Resolve(code); !ok {
		logger.WarnContext(ctx, "unknown region code, using default regulation",
			"region_code", code,
			"registry_version", registry.Version(),
		)
	}
}

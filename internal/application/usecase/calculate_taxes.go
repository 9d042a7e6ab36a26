package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/event"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/port"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/service"
)

// CalculateTaxesUseCase estimates acquisition, transfer and holding taxes.
type CalculateTaxesUseCase struct {
	calculator *service.TaxCalculator
	registry   port.RegulationRegistry
	publisher  port.EventPublisher
	metrics    port.MetricsRecorder
	logger     *slog.Logger
}

// NewCalculateTaxesUseCase wires dependencies.
func NewCalculateTaxesUseCase(
	calculator *service.TaxCalculator,
	registry port.RegulationRegistry,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *CalculateTaxesUseCase {
	return &CalculateTaxesUseCase{
		calculator: calculator,
		registry:   registry,
		publisher:  publisher,
		metrics:    metrics,
		logger:     orDefault(logger),
	}
}

// Execute runs all three tax calculations.
func (uc *CalculateTaxesUseCase) Execute(
	ctx context.Context,
	req dto.CalculateTaxesRequest,
) (resp dto.TaxResponse, err error) {
	ctx, span := tracer.Start(ctx, "CalculateTaxes")
	defer func() { endSpan(span, err) }()

	if err := req.Validate(); err != nil {
		return dto.TaxResponse{}, fmt.Errorf("validate request: %w", err)
	}
	warnUnknownRegion(ctx, uc.logger, uc.registry, req.RegionCode)

	result := uc.calculator.CalculateAll(req.ToInput())
	id := uuid.NewString()
	uc.metrics.RecordTaxCalculation(ctx, result)

	evt := event.NewTaxesCalculated(
		id, req.TenantID, uc.registry.Lookup(req.RegionCode).Code(),
		result.InitialCost, result.AnnualHoldingCost, result.Transfer.Total,
	)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.TaxResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.DebugContext(ctx, "taxes calculated",
		"calculation_id", id,
		"initial_cost", result.InitialCost.String(),
		"annual_holding_cost", result.AnnualHoldingCost.String(),
	)
	return toTaxResponse(id, result), nil
}

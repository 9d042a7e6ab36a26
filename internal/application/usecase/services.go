package usecase

import (
	"log/slog"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/port"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/service"
)

// Dependencies are the adapters every use case is built from.
type Dependencies struct {
	Registry         port.RegulationRegistry
	Publisher        port.EventPublisher
	Metrics          port.MetricsRecorder
	Logger           *slog.Logger
	BatchConcurrency int
}

// Services is the full set of application operations over one regulation
// table. It is safe for concurrent use.
type Services struct {
	Assess       *AssessFeasibilityUseCase
	DSR          *CalculateDSRUseCase
	Taxes        *CalculateTaxesUseCase
	Compare      *CompareScenariosUseCase
	BatchCompare *BatchCompareScenariosUseCase
	GetRegion    *GetRegionUseCase
	ListRegions  *ListRegionsUseCase
	Schedule     *GetRepaymentScheduleUseCase
}

// NewServices builds the domain services once and wires every use case to
// them.
func NewServices(deps Dependencies) *Services {
	engine := service.NewRealityScoreEngine(deps.Registry)
	compare := NewCompareScenariosUseCase(
		service.NewScenarioComparator(engine), deps.Registry, deps.Publisher, deps.Metrics, deps.Logger,
	)

	return &Services{
		Assess:       NewAssessFeasibilityUseCase(engine, deps.Publisher, deps.Metrics, deps.Logger),
		DSR:          NewCalculateDSRUseCase(engine.DSR(), engine.Policy()),
		Taxes:        NewCalculateTaxesUseCase(service.NewTaxCalculator(deps.Registry), deps.Registry, deps.Publisher, deps.Metrics, deps.Logger),
		Compare:      compare,
		BatchCompare: NewBatchCompareScenariosUseCase(compare, deps.BatchConcurrency),
		GetRegion:    NewGetRegionUseCase(deps.Registry),
		ListRegions:  NewListRegionsUseCase(deps.Registry),
		Schedule:     NewGetRepaymentScheduleUseCase(),
	}
}

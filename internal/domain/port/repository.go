package port

import (
	"context"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/event"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Reference data ports
// ---------------------------------------------------------------------------

// RegulationRegistry resolves region codes to regulation profiles. Lookup
// never fails: unknown codes yield the default non-regulated profile.
type RegulationRegistry interface {
	Lookup(code string) model.RegionRegulation
	Resolve(code string) (model.RegionRegulation, bool)
	Codes() []string
	Default() model.RegionRegulation
	Version() string
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Telemetry port
// ---------------------------------------------------------------------------

// MetricsRecorder records outcomes of engine runs.
type MetricsRecorder interface {
	RecordAssessment(ctx context.Context, result model.RealityScoreResult)
	RecordComparison(ctx context.Context, comparison model.ScenarioComparison)
	RecordTaxCalculation(ctx context.Context, result model.TaxResult)
}

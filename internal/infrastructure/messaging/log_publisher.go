package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/event"
)

// LogEventPublisher implements port.EventPublisher by writing each event to
// the structured log. It is used when no Kafka brokers are configured and by
// the CLI.
type LogEventPublisher struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogEventPublisher creates a publisher that logs events at level.
func NewLogEventPublisher(logger *slog.Logger, level slog.Level) *LogEventPublisher {
	return &LogEventPublisher{logger: logger, level: level}
}

func (p *LogEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		p.logger.Log(ctx, p.level, "domain event",
			"event_type", evt.EventType(),
			"event_id", evt.EventID(),
			"aggregate_id", evt.AggregateID(),
			"tenant_id", evt.TenantID(),
			"payload", json.RawMessage(payload),
		)
	}
	return nil
}

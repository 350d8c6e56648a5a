package audit

import (
	"context"
	"log/slog"
	"time"
)

// LogPublisher writes audit events to the structured log. Always available;
// used standalone or alongside the Kafka publisher.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	p.logger.InfoContext(ctx, event.Action,
		"log_type", "audit",
		"owner_id", event.OwnerID,
		"persona_id", event.PersonaID,
		"email", event.Email,
		"request_id", event.RequestID,
	)
	return nil
}

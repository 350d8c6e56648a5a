// Package audit records structured lifecycle events for persona mutations.
package audit

import (
	"context"
	"time"
)

// Actions emitted by the persona lifecycle manager.
const (
	EventPersonaCreated = "persona.created"
	EventPersonaUpdated = "persona.updated"
	EventPersonaDeleted = "persona.deleted"
)

// Event is one audit record. Email appears only on creation events, where
// it is the fact being reserved.
type Event struct {
	Action    string    `json:"action"`
	OwnerID   string    `json:"owner_id"`
	PersonaID string    `json:"persona_id"`
	Email     string    `json:"email,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers audit events to a sink. Implementations must be safe
// for concurrent use.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

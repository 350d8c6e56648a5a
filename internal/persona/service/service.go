// Package service implements the persona lifecycle manager: it sequences
// validation, email policy, and store calls for create/show/list/edit/
// delete, and applies ownership scoping with the caller identity passed
// explicitly into every operation.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks PersonaStore,EmailPolicy,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"persona/internal/audit"
	"persona/internal/persona/emailpolicy"
	"persona/internal/persona/models"
	"persona/internal/persona/validation"
	"persona/internal/platform/metrics"
	id "persona/pkg/domain"
	dErrors "persona/pkg/domain-errors"
	"persona/pkg/platform/sentinel"
	"persona/pkg/requestcontext"
)

// PersonaStore is the document store contract consumed by the lifecycle
// manager. Scoped writes (UpdateProfile, Delete) report sentinel.ErrNotFound
// for both a missing record and an ownership mismatch.
type PersonaStore interface {
	Insert(ctx context.Context, p *models.Persona) error
	FindByID(ctx context.Context, personaID id.PersonaID) (*models.Persona, error)
	FindByEmail(ctx context.Context, email string) (*models.Persona, error)
	ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Persona, error)
	UpdateProfile(ctx context.Context, personaID id.PersonaID, owner id.UserID, update *models.Profile) error
	Delete(ctx context.Context, personaID id.PersonaID, owner id.UserID) error
}

// EmailPolicy is the domain allow-list and uniqueness policy consulted on
// creation only.
type EmailPolicy interface {
	AssertDomainAllowed(email string) error
	AssertAvailable(ctx context.Context, email string, owner id.UserID) error
	Reserve(ctx context.Context, email string, owner id.UserID) error
}

// AuditPublisher records lifecycle mutations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates the persona lifecycle.
type Service struct {
	personas PersonaStore
	policy   EmailPolicy
	logger   *slog.Logger
	auditor  AuditPublisher
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditor = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service.
func New(personas PersonaStore, policy EmailPolicy, opts ...Option) *Service {
	s := &Service{
		personas: personas,
		policy:   policy,
		tracer:   otel.Tracer("persona/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the profile, enforces the email policy, and inserts the
// persona stamped with the caller as owner.
//
// The ledger reservation runs before the persona insert and is atomic, so
// two concurrent creates with the same email admit exactly one persona: the
// loser fails on Reserve with a conflict and writes nothing. If the insert
// itself fails after a successful reservation the email stays reserved for
// this owner, which the append-only ledger permits: the owner can simply
// retry, and nobody else could ever have claimed that email anyway.
func (s *Service) Create(ctx context.Context, caller id.Caller, req *models.CreatePersonaRequest) (*models.Persona, error) {
	ctx, span := s.tracer.Start(ctx, "persona.Create")
	defer span.End()

	if err := requireUser(caller); err != nil {
		return nil, err
	}

	req.Email = emailpolicy.Normalize(req.Email)
	if err := validation.ValidateCreate(req); err != nil {
		return nil, err
	}
	if err := s.policy.AssertDomainAllowed(req.Email); err != nil {
		return nil, err
	}
	if err := s.policy.AssertAvailable(ctx, req.Email, caller.UserID); err != nil {
		s.countConflict(err)
		return nil, err
	}

	p, err := models.NewPersona(caller.UserID, req, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.policy.Reserve(ctx, req.Email, caller.UserID); err != nil {
		s.countConflict(err)
		return nil, err
	}

	if err := s.personas.Insert(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			// Backstop unique index on the personas table; the ledger
			// normally rejects first.
			return nil, dErrors.New(dErrors.CodeConflict, "email is already in use")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create persona")
	}

	s.logAudit(ctx, audit.Event{
		Action:    audit.EventPersonaCreated,
		OwnerID:   caller.UserID.String(),
		PersonaID: p.ID.String(),
		Email:     p.Email,
	})
	if s.metrics != nil {
		s.metrics.PersonasCreated.Inc()
	}
	return p, nil
}

// List returns all personas owned by the caller, in store order.
func (s *Service) List(ctx context.Context, caller id.Caller) ([]*models.Persona, error) {
	ctx, span := s.tracer.Start(ctx, "persona.List")
	defer span.End()

	if err := requireUser(caller); err != nil {
		return nil, err
	}
	personas, err := s.personas.ListByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list personas")
	}
	return personas, nil
}

// Show returns the persona only when it exists and the caller owns it. The
// two failure causes are deliberately indistinguishable so existence cannot
// be probed across owners.
func (s *Service) Show(ctx context.Context, caller id.Caller, personaID id.PersonaID) (*models.Persona, error) {
	ctx, span := s.tracer.Start(ctx, "persona.Show")
	defer span.End()

	if err := requireUser(caller); err != nil {
		return nil, err
	}
	p, err := s.personas.FindByID(ctx, personaID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, errPersonaNotFound()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load persona")
	}
	if p.OwnerID != caller.UserID {
		return nil, errPersonaNotFound()
	}
	return p, nil
}

// ShowByEmail is the privileged lookup for companion services. Only the
// system caller may use it; it bypasses ownership scoping entirely.
func (s *Service) ShowByEmail(ctx context.Context, caller id.Caller, email string) (*models.Persona, error) {
	ctx, span := s.tracer.Start(ctx, "persona.ShowByEmail")
	defer span.End()

	if !caller.IsSystem() {
		return nil, dErrors.New(dErrors.CodeForbidden, "operation requires the system caller")
	}
	p, err := s.personas.FindByEmail(ctx, emailpolicy.Normalize(email))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, errPersonaNotFound()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load persona")
	}
	return p, nil
}

// Edit applies a partial profile update scoped to the caller. Email and
// identifiers are not part of the edit schema and can never change here;
// those keys are dropped before this method sees them.
func (s *Service) Edit(ctx context.Context, caller id.Caller, personaID id.PersonaID, req *models.EditPersonaRequest) (*models.Persona, error) {
	ctx, span := s.tracer.Start(ctx, "persona.Edit")
	defer span.End()

	if err := requireUser(caller); err != nil {
		return nil, err
	}
	if err := validation.ValidateEdit(req); err != nil {
		return nil, err
	}

	err := s.personas.UpdateProfile(ctx, personaID, caller.UserID, &req.Profile)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, errPersonaNotFound()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update persona")
	}

	s.logAudit(ctx, audit.Event{
		Action:    audit.EventPersonaUpdated,
		OwnerID:   caller.UserID.String(),
		PersonaID: personaID.String(),
	})

	// Return the freshly reloaded record through the scoped read path.
	return s.Show(ctx, caller, personaID)
}

// Delete removes the persona scoped to the caller. The used-email ledger is
// untouched: the email stays reserved for its original owner forever.
func (s *Service) Delete(ctx context.Context, caller id.Caller, personaID id.PersonaID) error {
	ctx, span := s.tracer.Start(ctx, "persona.Delete")
	defer span.End()

	if err := requireUser(caller); err != nil {
		return err
	}
	err := s.personas.Delete(ctx, personaID, caller.UserID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return errPersonaNotFound()
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete persona")
	}

	s.logAudit(ctx, audit.Event{
		Action:    audit.EventPersonaDeleted,
		OwnerID:   caller.UserID.String(),
		PersonaID: personaID.String(),
	})
	if s.metrics != nil {
		s.metrics.PersonasDeleted.Inc()
	}
	return nil
}

// requireUser gates operations that need ownership scoping. The system
// caller is exempt from scoping only on ShowByEmail, never here.
func requireUser(caller id.Caller) error {
	if caller.IsSystem() {
		return dErrors.New(dErrors.CodeForbidden, "operation requires a user caller")
	}
	if caller.UserID.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "caller identity is required")
	}
	return nil
}

// errPersonaNotFound is the merged not-found-or-forbidden failure. One
// shape for both causes.
func errPersonaNotFound() error {
	return dErrors.New(dErrors.CodeNotFound, "persona not found")
}

func (s *Service) countConflict(err error) {
	if s.metrics != nil && dErrors.HasCode(err, dErrors.CodeConflict) {
		s.metrics.EmailConflicts.Inc()
	}
}

func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, event.Action,
			"log_type", "audit",
			"owner_id", event.OwnerID,
			"persona_id", event.PersonaID,
			"request_id", event.RequestID,
		)
	}
	if s.auditor != nil {
		_ = s.auditor.Emit(ctx, event)
	}
}

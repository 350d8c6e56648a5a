// Package handler exposes the persona lifecycle over HTTP. It decodes
// requests, resolves the caller set by the auth middleware, and delegates to
// the service; no business rules live here.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"persona/internal/persona/models"
	"persona/internal/platform/metrics"
	"persona/internal/platform/middleware"
	id "persona/pkg/domain"
	dErrors "persona/pkg/domain-errors"
	"persona/pkg/platform/httputil"
	"persona/pkg/requestcontext"
)

// Service defines the persona operations the handler needs.
type Service interface {
	Create(ctx context.Context, caller id.Caller, req *models.CreatePersonaRequest) (*models.Persona, error)
	List(ctx context.Context, caller id.Caller) ([]*models.Persona, error)
	Show(ctx context.Context, caller id.Caller, personaID id.PersonaID) (*models.Persona, error)
	ShowByEmail(ctx context.Context, caller id.Caller, email string) (*models.Persona, error)
	Edit(ctx context.Context, caller id.Caller, personaID id.PersonaID, req *models.EditPersonaRequest) (*models.Persona, error)
	Delete(ctx context.Context, caller id.Caller, personaID id.PersonaID) error
}

// Handler handles persona endpoints.
type Handler struct {
	logger   *slog.Logger
	personas Service
	metrics  *metrics.Metrics
	verifier middleware.CallerVerifier
}

// New creates a persona Handler.
func New(
	personas Service,
	logger *slog.Logger,
	m *metrics.Metrics,
	verifier middleware.CallerVerifier) *Handler {
	return &Handler{
		logger:   logger,
		personas: personas,
		metrics:  m,
		verifier: verifier,
	}
}

// Register mounts the persona routes with the shared middleware chain.
func (h *Handler) Register(r chi.Router) {
	personaRouter := chi.NewRouter()
	personaRouter.Use(middleware.Recovery(h.logger))
	personaRouter.Use(middleware.RequestID)
	personaRouter.Use(middleware.Logger(h.logger))
	personaRouter.Use(middleware.Timeout(30 * time.Second))
	personaRouter.Use(middleware.ContentTypeJSON)
	personaRouter.Use(middleware.Latency(h.metrics))
	personaRouter.Use(middleware.RequireAuth(h.verifier, h.logger))
	personaRouter.Post("/personas", h.handleCreate)
	personaRouter.Get("/personas", h.handleList)
	personaRouter.Get("/personas/by-email", h.handleShowByEmail)
	personaRouter.Get("/personas/{personaID}", h.handleShow)
	personaRouter.Patch("/personas/{personaID}", h.handleEdit)
	personaRouter.Delete("/personas/{personaID}", h.handleDelete)

	r.Mount("/", personaRouter)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	var req models.CreatePersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "invalid create persona request", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	p, err := h.personas.Create(ctx, caller, &req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to create persona", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	personas, err := h.personas.List(ctx, caller)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list personas", err)
		return
	}
	if personas == nil {
		personas = []*models.Persona{}
	}
	httputil.WriteJSON(w, http.StatusOK, personas)
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	personaID, err := id.ParsePersonaID(chi.URLParam(r, "personaID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := h.personas.Show(ctx, caller, personaID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load persona", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleShowByEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "email query parameter is required"))
		return
	}

	p, err := h.personas.ShowByEmail(ctx, caller, email)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load persona by email", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	personaID, err := id.ParsePersonaID(chi.URLParam(r, "personaID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req models.EditPersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "invalid edit persona request", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	p, err := h.personas.Edit(ctx, caller, personaID, &req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to update persona", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	personaID, err := id.ParsePersonaID(chi.URLParam(r, "personaID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.personas.Delete(ctx, caller, personaID); err != nil {
		h.writeServiceError(ctx, w, "failed to delete persona", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// caller reads the identity the auth middleware resolved. Absence means the
// route was mounted without RequireAuth, which is a wiring bug.
func (h *Handler) caller(w http.ResponseWriter, ctx context.Context) (id.Caller, bool) {
	caller, ok := requestcontext.GetCaller(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "caller missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return id.Caller{}, false
	}
	return caller, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.Is(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
	} else {
		h.warn(ctx, msg, err)
	}
	httputil.WriteError(w, err)
}

func (h *Handler) warn(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}

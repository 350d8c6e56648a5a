// Package persona implements the persona document store. Reads and scoped
// writes are atomic at the single-record level; no multi-record
// transactions are offered or required.
package persona

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"persona/internal/persona/models"
	id "persona/pkg/domain"
	"persona/pkg/platform/sentinel"
	"persona/pkg/requestcontext"
)

// InMemory is a mutex-guarded persona store for tests and single-process
// runs. Records are cloned on the way in and out so callers never share
// memory with the store.
type InMemory struct {
	mu       sync.RWMutex
	personas map[id.PersonaID]*models.Persona
}

func NewInMemory() *InMemory {
	return &InMemory{personas: make(map[id.PersonaID]*models.Persona)}
}

// Insert stores the persona and assigns its ID.
func (s *InMemory) Insert(ctx context.Context, p *models.Persona) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = id.PersonaID(uuid.New())
	s.personas[p.ID] = p.Clone()
	return nil
}

// FindByID returns the persona regardless of owner. Ownership scoping is
// the service's concern on reads so that "absent" and "not yours" can be
// merged there.
func (s *InMemory) FindByID(ctx context.Context, personaID id.PersonaID) (*models.Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.personas[personaID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *InMemory) FindByEmail(ctx context.Context, email string) (*models.Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.personas {
		if p.Email == email {
			return p.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Persona
	for _, p := range s.personas {
		if p.OwnerID == owner {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// UpdateProfile applies the present fields of the update to the persona,
// scoped to the owner. A missing record and a record owned by someone else
// both report sentinel.ErrNotFound.
func (s *InMemory) UpdateProfile(ctx context.Context, personaID id.PersonaID, owner id.UserID, update *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.personas[personaID]
	if !ok || p.OwnerID != owner {
		return sentinel.ErrNotFound
	}
	p.ApplyProfile(update, requestcontext.Now(ctx))
	return nil
}

// Delete removes the persona, scoped to the owner. The used-email ledger is
// untouched by design.
func (s *InMemory) Delete(ctx context.Context, personaID id.PersonaID, owner id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.personas[personaID]
	if !ok || p.OwnerID != owner {
		return sentinel.ErrNotFound
	}
	delete(s.personas, personaID)
	return nil
}

// Count reports the number of stored personas. Test helper.
func (s *InMemory) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.personas)
}

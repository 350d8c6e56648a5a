// Package usedemail implements the append-only used-email ledger. All
// implementations guarantee an atomic reserve: of any number of concurrent
// reservations for one email by different owners, exactly one wins.
package usedemail

import (
	"context"
	"sync"

	"persona/internal/persona/models"
	id "persona/pkg/domain"
	"persona/pkg/platform/sentinel"
	"persona/pkg/requestcontext"
)

// InMemory is a mutex-guarded ledger for tests and single-process runs.
type InMemory struct {
	mu      sync.Mutex
	entries map[string]models.UsedEmail
}

func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[string]models.UsedEmail)}
}

// Reserve claims the email under the lock, which makes check-and-insert a
// single step. Re-reserving by the same owner is a no-op success.
func (s *InMemory) Reserve(ctx context.Context, email string, owner id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[email]; ok {
		if entry.OwnerID == owner {
			return nil
		}
		return sentinel.ErrAlreadyUsed
	}
	s.entries[email] = models.UsedEmail{
		Email:      email,
		OwnerID:    owner,
		ReservedAt: requestcontext.Now(ctx),
	}
	return nil
}

func (s *InMemory) FindByEmail(ctx context.Context, email string) (*models.UsedEmail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := entry
	return &out, nil
}

// Count reports the number of ledger entries. Test helper.
func (s *InMemory) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

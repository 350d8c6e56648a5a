// Package emailpolicy enforces the two email rules of the persona system:
// domain allow-listing and global cross-owner uniqueness backed by the
// used-email ledger.
package emailpolicy

import (
	"context"
	"errors"
	"strings"

	"persona/internal/persona/models"
	id "persona/pkg/domain"
	dErrors "persona/pkg/domain-errors"
	"persona/pkg/platform/sentinel"
	strs "persona/pkg/platform/strings"
)

// Ledger is the append-only used-email store consumed by the policy.
// Reserve must be atomic: concurrent reservations of the same email by
// different owners admit exactly one winner. Entries are never removed.
type Ledger interface {
	// Reserve claims the email for the owner. Succeeds when the email is
	// unclaimed or already claimed by the same owner; returns
	// sentinel.ErrAlreadyUsed when another owner holds it.
	Reserve(ctx context.Context, email string, owner id.UserID) error
	// FindByEmail returns the ledger entry for the email, or
	// sentinel.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.UsedEmail, error)
}

// Policy owns the configured domain allow-list and the check/reserve
// sequence against the ledger.
type Policy struct {
	domains []string
	ledger  Ledger
}

// New builds a Policy. Domains are compared case-insensitively against the
// host part of candidate emails.
func New(domains []string, ledger Ledger) *Policy {
	return &Policy{domains: strs.DedupeAndTrimLower(domains), ledger: ledger}
}

// Normalize lowercases an email for policy and ledger purposes. The ledger
// stores normalized emails so that uniqueness is case-insensitive.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AssertDomainAllowed checks that the email's host exactly matches one
// entry of the allow-list.
func (p *Policy) AssertDomainAllowed(email string) error {
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return dErrors.NewField("email", "must be a valid email address")
	}
	host := strings.ToLower(email[at+1:])
	for _, d := range p.domains {
		if host == d {
			return nil
		}
	}
	return dErrors.Newf(dErrors.CodeDomainNotAllowed,
		"email domain %q is not allowed; allowed domains: %s", host, strings.Join(p.domains, ", "))
}

// AssertAvailable checks the ledger for a reservation by a different owner.
// A reservation held by the requesting owner is not a conflict: an owner may
// re-create a persona with their own previously used email. This is the
// narrow, deliberate reuse policy; entries are never cleared, so an email
// deleted with its persona stays reserved for its original owner forever.
func (p *Policy) AssertAvailable(ctx context.Context, email string, owner id.UserID) error {
	entry, err := p.ledger.FindByEmail(ctx, Normalize(email))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check email availability")
	}
	if entry.OwnerID == owner {
		return nil
	}
	// Generic conflict: must not leak which owner holds the email.
	return dErrors.New(dErrors.CodeConflict, "email is already in use")
}

// Reserve atomically claims the email for the owner. Losing a concurrent
// race surfaces as the same generic conflict as a sequential duplicate.
func (p *Policy) Reserve(ctx context.Context, email string, owner id.UserID) error {
	err := p.ledger.Reserve(ctx, Normalize(email), owner)
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return dErrors.New(dErrors.CodeConflict, "email is already in use")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reserve email")
	}
	return nil
}

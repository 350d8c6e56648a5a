package models

import (
	"time"

	id "persona/pkg/domain"
	dErrors "persona/pkg/domain-errors"
)

// Persona is the aggregate root for a user-owned profile record.
//
// Invariants:
//   - Exactly one owner, stamped from the authenticated caller at creation
//     and immutable afterwards
//   - Exactly one email, unique across all personas of all owners and
//     immutable after creation
//   - ID is store-assigned and immutable
//
// Email uniqueness is enforced by the used-email ledger, not by this type:
// a ledger entry is reserved atomically before the persona is inserted and
// is never released, even when the persona is deleted. See emailpolicy.
type Persona struct {
	ID        id.PersonaID `json:"id"`
	OwnerID   id.UserID    `json:"owner_id"`
	Email     string       `json:"email"`
	Alias     string       `json:"alias,omitempty"`
	FirstName string       `json:"first_name,omitempty"`
	LastName  string       `json:"last_name,omitempty"`
	Age       *int         `json:"age,omitempty"`
	Birthday  string       `json:"birthday,omitempty"`
	Gender    string       `json:"gender,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Address   Address      `json:"address"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Address is the nested address object of a persona. Line1 is required
// whenever an address is supplied; Line2 may be present and empty.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

// Profile carries the optional, caller-editable persona fields. Pointer
// fields distinguish "absent" from "present but zero"; absent fields are
// left untouched on edit (field-level last write wins).
//
// The struct itself is the field allow-list: keys outside it are dropped at
// JSON decode time, which is the input-shaping layer ahead of validation.
// Email and identifiers are deliberately not part of Profile, so they can
// never be changed through the edit path.
type Profile struct {
	Alias     *string  `json:"alias,omitempty"`
	FirstName *string  `json:"first_name,omitempty"`
	LastName  *string  `json:"last_name,omitempty"`
	Age       *int     `json:"age,omitempty"`
	Birthday  *string  `json:"birthday,omitempty"`
	Gender    *string  `json:"gender,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
	Address   *Address `json:"address,omitempty"`
}

// IsEmpty reports whether no field is present at all.
func (p *Profile) IsEmpty() bool {
	return p.Alias == nil && p.FirstName == nil && p.LastName == nil &&
		p.Age == nil && p.Birthday == nil && p.Gender == nil &&
		p.Phone == nil && p.Address == nil
}

// CreatePersonaRequest is the payload for persona creation. Email is the
// only required field.
type CreatePersonaRequest struct {
	Email string `json:"email"`
	Profile
}

// EditPersonaRequest is the payload for partial edits. It intentionally has
// no email or id fields; those keys in an incoming body are silently
// dropped, never applied.
type EditPersonaRequest struct {
	Profile
}

// NewPersona builds a persona from a validated create request. The ID is
// left nil for the store to assign.
func NewPersona(owner id.UserID, req *CreatePersonaRequest, now time.Time) (*Persona, error) {
	if owner.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "persona owner is required")
	}
	if req.Email == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "persona email is required")
	}
	p := &Persona{
		OwnerID:   owner,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.applyProfile(&req.Profile, now)
	return p, nil
}

// ApplyProfile copies the present fields of an edit onto the persona.
func (p *Persona) ApplyProfile(update *Profile, now time.Time) {
	p.applyProfile(update, now)
}

func (p *Persona) applyProfile(in *Profile, now time.Time) {
	if in.Alias != nil {
		p.Alias = *in.Alias
	}
	if in.FirstName != nil {
		p.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		p.LastName = *in.LastName
	}
	if in.Age != nil {
		age := *in.Age
		p.Age = &age
	}
	if in.Birthday != nil {
		p.Birthday = *in.Birthday
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	p.UpdatedAt = now
}

// Clone returns a deep copy so in-memory stores never hand out aliased
// records.
func (p *Persona) Clone() *Persona {
	out := *p
	if p.Age != nil {
		age := *p.Age
		out.Age = &age
	}
	return &out
}

// UsedEmail is an append-only ledger entry recording which owner first
// claimed an email. Entries are created at persona creation and never
// removed; deleting a persona leaves its email permanently reserved so it
// can never be recycled by another user.
type UsedEmail struct {
	Email      string    `json:"email"`
	OwnerID    id.UserID `json:"owner_id"`
	ReservedAt time.Time `json:"reserved_at"`
}

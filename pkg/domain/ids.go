// Package domain defines the typed identifiers shared across the persona
// service. Wrapping uuid.UUID in distinct named types makes cross-type
// assignment a compile error: a UserID can never be passed where a PersonaID
// is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "persona/pkg/domain-errors"
)

// UserID identifies the authenticated owner of personas.
type UserID uuid.UUID

// PersonaID identifies a persona record. Assigned by the store on insert and
// immutable afterwards.
type PersonaID uuid.UUID

func (id UserID) String() string    { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id PersonaID) String() string { return uuid.UUID(id).String() }
func (id PersonaID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// Defined types do not inherit uuid.UUID's marshalling, so the text
// representation is restated here; without it IDs would encode as byte
// arrays in JSON.

func (id UserID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = UserID(u)
	return nil
}

func (id PersonaID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *PersonaID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = PersonaID(u)
	return nil
}

// ParseUserID parses a string into a UserID. Empty, malformed, and nil UUIDs
// are rejected; these arrive from trust boundaries (tokens, URLs) and must
// never silently become the zero ID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(u), nil
}

// ParsePersonaID parses a string into a PersonaID with the same rules as
// ParseUserID.
func ParsePersonaID(s string) (PersonaID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return PersonaID{}, err
	}
	return PersonaID(u), nil
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return u, nil
}

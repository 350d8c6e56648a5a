// Package validation checks persona profile payloads against a fixed
// per-operation rule table. The allow-list itself is the typed request
// struct (unknown keys never survive decoding); this package enforces
// required-ness, formats, ranges, and the nested address rules on whatever
// fields are present.
//
// Validation stops at the first violation and reports the offending field
// with a human-readable reason. Input is never mutated.
package validation

import (
	"regexp"
	"time"

	"persona/internal/persona/models"
	dErrors "persona/pkg/domain-errors"
)

const birthdayLayout = "2006-01-02"

var (
	// Shape only; domain allow-listing is the email policy's concern.
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

	// International-phone-like: optional +, 7 to 15 digits, no separators.
	phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{6,14}$`)
)

// profileRule checks one optional profile field. A rule runs only when its
// field is present; fn returns a reason string on violation, "" otherwise.
type profileRule struct {
	field string
	fn    func(p *models.Profile) string
}

// profileRules is the fixed rule table shared by the create and edit
// schemas. Order matters: violations are reported first-wins in this order.
var profileRules = []profileRule{
	{"age", func(p *models.Profile) string {
		if p.Age != nil && *p.Age < 0 {
			return "must be a non-negative integer"
		}
		return ""
	}},
	{"birthday", func(p *models.Profile) string {
		if p.Birthday == nil {
			return ""
		}
		if _, err := time.Parse(birthdayLayout, *p.Birthday); err != nil {
			return "must be a date in YYYY-MM-DD format"
		}
		return ""
	}},
	{"phone", func(p *models.Profile) string {
		if p.Phone != nil && !phonePattern.MatchString(*p.Phone) {
			return "must be an international phone number"
		}
		return ""
	}},
	{"address.line1", func(p *models.Profile) string {
		if p.Address != nil && p.Address.Line1 == "" {
			return "is required when an address is supplied"
		}
		return ""
	}},
}

// ValidateCreate checks a creation payload: the required-field pass (email)
// runs first, then the email shape rule, then the shared profile rules.
func ValidateCreate(req *models.CreatePersonaRequest) error {
	if req.Email == "" {
		return dErrors.NewField("email", "is required")
	}
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	return ValidateProfile(&req.Profile)
}

// ValidateEdit checks a partial-edit payload. Edits have no required
// fields; an entirely empty update is rejected so a no-op PATCH cannot
// bump timestamps.
func ValidateEdit(req *models.EditPersonaRequest) error {
	if req.IsEmpty() {
		return dErrors.New(dErrors.CodeValidation, "update contains no editable fields")
	}
	return ValidateProfile(&req.Profile)
}

// ValidateProfile runs the shared rule table over the present fields,
// stopping at the first violation.
func ValidateProfile(p *models.Profile) error {
	for _, r := range profileRules {
		if reason := r.fn(p); reason != "" {
			return dErrors.NewField(r.field, reason)
		}
	}
	return nil
}

// ValidateEmail checks the syntactic shape of an email address.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return dErrors.NewField("email", "must be a valid email address")
	}
	return nil
}

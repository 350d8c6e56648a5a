// Package dErrors provides coded domain errors. Services return these so
// transports can map failures to protocol responses without inspecting error
// strings, and so callers can branch on the kind of failure rather than its
// wording.
package dErrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodeValidation marks a malformed or disallowed field in a request
	// payload. Field carries the offending field name.
	CodeValidation Code = "validation"
	// CodeInvalidInput marks malformed scalar input at a trust boundary
	// (ids, tokens, query parameters).
	CodeInvalidInput Code = "invalid_input"
	// CodeBadRequest marks a request that could not be decoded at all.
	CodeBadRequest Code = "bad_request"
	// CodeConflict marks a uniqueness conflict, e.g. an email already
	// reserved by another owner. The message must not disclose who holds
	// the conflicting resource.
	CodeConflict Code = "conflict"
	// CodeDomainNotAllowed marks an email whose host is outside the
	// configured allow-list. The message names the allowed set.
	CodeDomainNotAllowed Code = "email_domain_not_allowed"
	// CodeNotFound covers both a missing record and a record owned by a
	// different caller. The two are deliberately indistinguishable so that
	// existence cannot be probed across owners.
	CodeNotFound Code = "not_found"
	// CodeForbidden marks a privileged operation invoked by a caller that
	// lacks the privilege.
	CodeForbidden Code = "forbidden"
	// CodeUnauthorized marks a missing or unverifiable caller identity.
	CodeUnauthorized Code = "unauthorized"
	// CodeInvariantViolation marks a broken model invariant detected by a
	// constructor. Services translate these to CodeValidation at the API
	// boundary.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal marks an infrastructure failure (store, broker). Never
	// converted to a success value.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. Field is set only for validation errors.
type Error struct {
	Code    Code
	Message string
	Field   string
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewField creates a validation error naming the offending field.
func NewField(field, message string) *Error {
	return &Error{Code: CodeValidation, Message: message, Field: field}
}

// Wrap attaches a code and message to an underlying error, keeping the cause
// reachable through errors.Unwrap.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err or any error in its chain carries the code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		if err == nil {
			return false
		}
	}
	return false
}

// Is is a readable alias for HasCode at call sites that branch on codes.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf returns the code of the outermost domain error in the chain, or
// CodeInternal when err is not a domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// FieldOf returns the field of the outermost domain error, or "".
func FieldOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}

package domain

// CallerKind distinguishes end users from trusted inter-service callers.
type CallerKind string

const (
	CallerKindUser   CallerKind = "user"
	CallerKindSystem CallerKind = "system"
)

// Caller is the resolved identity of a request, threaded explicitly into
// every lifecycle operation. System callers carry no user ID; they are
// exempt from ownership scoping for privileged reads only.
type Caller struct {
	UserID UserID
	Kind   CallerKind
}

// UserCaller builds a caller for an authenticated end user.
func UserCaller(userID UserID) Caller {
	return Caller{UserID: userID, Kind: CallerKindUser}
}

// SystemCaller builds the distinguished inter-service caller.
func SystemCaller() Caller {
	return Caller{Kind: CallerKindSystem}
}

// IsSystem reports whether the caller is a trusted inter-service identity.
func (c Caller) IsSystem() bool { return c.Kind == CallerKindSystem }

// Package identity resolves raw bearer tokens into caller identities. It is
// the only place that knows tokens are HS256 JWTs; the rest of the service
// sees an opaque "verify token, get caller" call.
package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "persona/pkg/domain"
	dErrors "persona/pkg/domain-errors"
)

// Claims are the token claims the persona service understands. Subject is
// the user ID for user tokens; the kind claim marks trusted inter-service
// tokens, which carry no user identity.
type Claims struct {
	Kind string `json:"kind,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates tokens and produces caller identities.
type Verifier struct {
	signingKey []byte
	issuer     string
}

func NewVerifier(signingKey, issuer string) *Verifier {
	return &Verifier{signingKey: []byte(signingKey), issuer: issuer}
}

// Verify parses and validates a token, returning the resolved caller.
func (v *Verifier) Verify(tokenString string) (id.Caller, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.signingKey, nil
	}, jwt.WithIssuer(v.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return id.Caller{}, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return id.Caller{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return id.Caller{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if claims.Kind == string(id.CallerKindSystem) {
		return id.SystemCaller(), nil
	}

	userID, err := id.ParseUserID(claims.Subject)
	if err != nil {
		return id.Caller{}, dErrors.New(dErrors.CodeUnauthorized, "token subject is not a valid user id")
	}
	return id.UserCaller(userID), nil
}

// Mint issues a token for the given caller. Used by tests and by operators
// issuing system tokens for companion services.
func (v *Verifier) Mint(caller id.Caller, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	if caller.IsSystem() {
		claims.Kind = string(id.CallerKindSystem)
	} else {
		claims.Subject = caller.UserID.String()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.signingKey)
}

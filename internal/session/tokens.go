package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "caslkey/pkg/domain"
	dErrors "caslkey/pkg/domain-errors"
)

// Claims are carried by session tokens.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Tokens issues and validates HS256 session tokens.
type Tokens struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

func NewTokens(signingKey, issuer string, ttl time.Duration) *Tokens {
	return &Tokens{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
		now:        time.Now,
	}
}

// WithClock overrides the time source for issuing and validation.
func (t *Tokens) WithClock(now func() time.Time) *Tokens {
	t.now = now
	return t
}

// Issue signs a token for sid and returns it with its expiry.
func (t *Tokens) Issue(sid id.SessionID) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		SessionID: sid.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    t.issuer,
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(t.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Validate checks signature, algorithm, issuer and expiry and returns the
// session the token was issued for.
func (t *Tokens) Validate(tokenString string) (id.SessionID, error) {
	if tokenString == "" {
		return id.SessionID{}, dErrors.New(dErrors.CodeUnauthorized, "missing session token")
	}
	claims := new(Claims)
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return t.signingKey, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return id.SessionID{}, dErrors.New(dErrors.CodeUnauthorized, "session token expired")
		}
		return id.SessionID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}
	if !parsed.Valid {
		return id.SessionID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}

	sid, err := id.ParseSessionID(claims.SessionID)
	if err != nil {
		return id.SessionID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}
	return sid, nil
}

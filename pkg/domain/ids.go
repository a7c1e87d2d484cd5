// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"

	dErrors "caslkey/pkg/domain-errors"
)

// SessionID identifies one hosted wizard session.
type SessionID uuid.UUID

// CASLKeyID is the guest identifier: "CK" followed by five characters from
// an alphabet without look-alike glyphs (no I, O, 0, 1).
type CASLKeyID string

const (
	caslKeyPrefix   = "CK"
	caslKeyAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	caslKeyRandLen  = 5
)

// NewSessionID returns a random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

// ParseSessionID validates a session ID received at a trust boundary.
func ParseSessionID(s string) (SessionID, error) {
	if s == "" {
		return SessionID(uuid.Nil), dErrors.New(dErrors.CodeInvalidInput, "session ID cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return SessionID(uuid.Nil), dErrors.New(dErrors.CodeInvalidInput, "invalid session ID")
	}
	return SessionID(parsed), nil
}

func (id SessionID) String() string { return uuid.UUID(id).String() }
func (id SessionID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// NewCASLKeyID draws a fresh identifier. Uniqueness is enforced by the backend,
// not here.
func NewCASLKeyID() CASLKeyID {
	var b strings.Builder
	b.Grow(len(caslKeyPrefix) + caslKeyRandLen)
	b.WriteString(caslKeyPrefix)
	max := big.NewInt(int64(len(caslKeyAlphabet)))
	for range caslKeyRandLen {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand never fails on supported platforms
			panic(err)
		}
		b.WriteByte(caslKeyAlphabet[n.Int64()])
	}
	return CASLKeyID(b.String())
}

// ParseCASLKeyID checks the identifier shape.
func ParseCASLKeyID(s string) (CASLKeyID, error) {
	if len(s) != len(caslKeyPrefix)+caslKeyRandLen || !strings.HasPrefix(s, caslKeyPrefix) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid CASL Key ID")
	}
	for _, r := range s[len(caslKeyPrefix):] {
		if !strings.ContainsRune(caslKeyAlphabet, r) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "invalid CASL Key ID")
		}
	}
	return CASLKeyID(s), nil
}

func (id CASLKeyID) String() string { return string(id) }
func (id CASLKeyID) IsNil() bool    { return id == "" }

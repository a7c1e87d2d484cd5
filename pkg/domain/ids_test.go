package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "caslkey/pkg/domain-errors"
)

func TestNewCASLKeyID_Shape(t *testing.T) {
	for range 200 {
		id := NewCASLKeyID()
		require.Len(t, id.String(), 7)
		assert.Equal(t, "CK", id.String()[:2])
		assert.NotContains(t, id.String()[2:], "0")
		assert.NotContains(t, id.String()[2:], "1")
		assert.NotContains(t, id.String()[2:], "I")
		assert.NotContains(t, id.String()[2:], "O")

		parsed, err := ParseCASLKeyID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}
}

func TestParseCASLKeyID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"valid", "CKAB2C3", true},
		{"empty", "", false},
		{"wrong prefix", "XKAB2C3", false},
		{"too short", "CKAB2", false},
		{"ambiguous glyph", "CKAB0C3", false},
		{"lowercase", "CKab2c3", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCASLKeyID(tt.input)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestParseSessionID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseSessionID("")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseSessionID("not-a-uuid")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		u := uuid.New()
		id, err := ParseSessionID(u.String())
		require.NoError(t, err)
		assert.Equal(t, SessionID(u), id)
		assert.False(t, id.IsNil())
	})
}

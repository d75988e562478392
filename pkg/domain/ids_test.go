package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "leadengine/pkg/domain-errors"
)

// TestParseVisitorID_Invariants validates the parsing invariant:
// "visitor IDs must be valid, non-empty, non-nil UUIDs"
func TestParseVisitorID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseVisitorID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseVisitorID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseVisitorID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		got, err := ParseVisitorID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, VisitorID(valid), got)
	})
}

// TestParseID_CookieTampering covers values a tampered cookie or header might carry.
func TestParseID_CookieTampering(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errVisitor := ParseVisitorID(tt.input)
			_, errPageView := ParsePageViewID(tt.input)
			if tt.wantErr {
				require.Error(t, errVisitor)
				require.Error(t, errPageView)
				assert.True(t, dErrors.HasCode(errVisitor, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, errVisitor)
				require.NoError(t, errPageView)
			}
		})
	}
}

func TestNewIDs_AreNotNil(t *testing.T) {
	assert.False(t, NewVisitorID().IsNil())
	assert.False(t, NewPageViewID().IsNil())
	assert.False(t, NewLeadID().IsNil())
	assert.NotEqual(t, NewVisitorID(), NewVisitorID())
}

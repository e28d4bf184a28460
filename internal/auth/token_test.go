package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

func TestVerifyToken(t *testing.T) {
	verifier := NewVerifier("secret")
	userId := uuid.New()

	tests := []struct {
		name        string
		token       func() string
		expected    uuid.UUID
		expectedErr error
	}{
		{
			name: "given valid token should return subject as userId",
			token: func() string {
				token, err := verifier.IssueToken(userId, time.Hour)
				require.NoError(t, err)
				return token
			},
			expected: userId,
		},
		{
			name: "given token signed with other key should return invalid token",
			token: func() string {
				token, err := NewVerifier("other").IssueToken(userId, time.Hour)
				require.NoError(t, err)
				return token
			},
			expected:    uuid.Nil,
			expectedErr: inErrors.ErrTokenInvalid,
		},
		{
			name: "given expired token should return invalid token",
			token: func() string {
				token, err := verifier.IssueToken(userId, -time.Hour)
				require.NoError(t, err)
				return token
			},
			expected:    uuid.Nil,
			expectedErr: inErrors.ErrTokenInvalid,
		},
		{
			name:        "given garbage should return invalid token",
			token:       func() string { return "not-a-token" },
			expected:    uuid.Nil,
			expectedErr: inErrors.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := verifier.VerifyToken(context.Background(), tt.token())
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestUserIdFromContext(t *testing.T) {
	assert.Equal(t, uuid.Nil, UserIdFromContext(context.Background()))

	userId := uuid.New()
	c := AttachUserIdToContext(context.Background(), userId)
	assert.Equal(t, userId, UserIdFromContext(c))
}

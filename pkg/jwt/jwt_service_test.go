package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Recipe-Share-Backend/domain"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTServiceWith("test-secret", time.Hour)

	token := svc.GenerateToken("user-1", "cook@example.com", "cook")
	require.NotEmpty(t, token)

	claims, err := svc.GetClaimsByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "cook@example.com", claims.Email)
	assert.Equal(t, "cook", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewJWTServiceWith("test-secret", -time.Minute)

	token := svc.GenerateToken("user-1", "cook@example.com", "cook")

	_, err := svc.GetClaimsByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenSignedWithOtherKeyRejected(t *testing.T) {
	issuer := NewJWTServiceWith("key-one", time.Hour)
	verifier := NewJWTServiceWith("key-two", time.Hour)

	token := issuer.GenerateToken("user-1", "cook@example.com", "cook")

	_, err := verifier.GetClaimsByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestMalformedTokenRejected(t *testing.T) {
	svc := NewJWTServiceWith("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.GetClaimsByToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	}
}

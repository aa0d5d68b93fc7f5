package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	verifier := NewVerifier(testSecret)
	signed := signToken(t, testSecret, &Claims{
		AccountID: "acct-1",
		Email:     "asha@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := verifier.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
	assert.Equal(t, "asha@example.com", claims.Email)
}

func TestVerifyWrongSecret(t *testing.T) {
	verifier := NewVerifier(testSecret)
	signed := signToken(t, "other-secret", &Claims{AccountID: "acct-1"})

	_, err := verifier.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	verifier := NewVerifier(testSecret)
	signed := signToken(t, testSecret, &Claims{
		AccountID: "acct-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := verifier.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyMissingSubject(t *testing.T) {
	verifier := NewVerifier(testSecret)
	signed := signToken(t, testSecret, &Claims{Email: "asha@example.com"})

	_, err := verifier.Verify(signed)
	assert.ErrorContains(t, err, "missing subject")
}

func TestVerifyRejectsGarbage(t *testing.T) {
	verifier := NewVerifier(testSecret)

	_, err := verifier.Verify("not-a-token")
	assert.Error(t, err)
}

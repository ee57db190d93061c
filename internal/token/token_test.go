package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	tokenStr, err := svc.Issue("user-1", "admin@example.com", "Admin")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := svc.Verify(tokenStr)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.ID)
	require.Equal(t, "admin@example.com", claims.Email)
	require.Equal(t, "Admin", claims.Name)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewService("secret-a", time.Hour)
	verifier := NewService("secret-b", time.Hour)

	tokenStr, err := issuer.Issue("user-1", "admin@example.com", "Admin")
	require.NoError(t, err)

	_, err = verifier.Verify(tokenStr)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	tokenStr, err := svc.Issue("user-1", "admin@example.com", "Admin")
	require.NoError(t, err)

	_, err = svc.Verify(tokenStr)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	_, err := svc.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const secret = "unit-test-secret"

func TestSignAndVerify(t *testing.T) {
	signed, err := Sign("507f1f77bcf86cd799439011", secret, time.Hour)
	require.NoError(t, err)

	claims, err := Verify(signed, secret)
	require.NoError(t, err)
	require.Equal(t, "507f1f77bcf86cd799439011", claims.Subject)
	require.WithinDuration(t, time.Now(), claims.IssuedAt.Time, 5*time.Second)
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, err := Sign("507f1f77bcf86cd799439011", secret, time.Hour)
	require.NoError(t, err)

	_, err = Verify(signed, "another-secret")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	signed, err := Sign("507f1f77bcf86cd799439011", secret, -time.Minute)
	require.NoError(t, err)

	_, err = Verify(signed, secret)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := Verify("not.a.token", secret)
	require.ErrorIs(t, err, ErrInvalidToken)
}
